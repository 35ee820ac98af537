package mocktree

import (
	"errors"
	"log/slog"
)

// Sentinel errors.
var (
	ErrInvalidOption = errors.New("invalid option")
	ErrInvalidInput  = errors.New("invalid input")
	ErrEncode        = errors.New("encode")
)

// Result is the outcome of [Reconcile].
type Result struct {
	// Root is the reconciled tree, or nil when neither a template nor a value
	// was available.
	Root *Node
	// Incompatible reports whether the value's structure diverges from the
	// template anywhere in the tree.
	Incompatible bool
}

// Reconcile merges a raw JSON mock value into a template tree.
//
// A nil raw means no mock value has been provided yet; the template is
// returned untouched and compatible. A raw value that is not valid JSON is
// treated as one opaque string and matched against the template root itself,
// which is only compatible with a [TypeString] template. Otherwise the value
// is parsed, built with [StatusRemoved] under the template root's key, and
// its children are merged into the template's with [Merge]. The result is a
// copy of the template root with only its children replaced. Keys in the
// result are unique (see [UniqueKeys]).
//
// When template is nil the value tree is returned as-is with every node
// marked [StatusAdded].
//
// Use [Pipeline] to reconcile YAML values or to choose the logger.
func Reconcile(template *Node, raw *string) Result {
	return reconcile(template, raw, FormatJSON, slog.Default())
}

func reconcile(template *Node, raw *string, format Format, logger *slog.Logger) Result {
	if raw == nil {
		return Result{Root: template}
	}

	v, err := ParseValue(*raw, format)
	if err != nil {
		logger.Debug("mock value is not parseable, treating it as a string",
			slog.String("format", string(format)),
			slog.Any("error", err),
		)

		v = *raw
	}

	if template == nil {
		return Result{Root: Build("", v, StatusAdded, "")}
	}

	value := Build(template.Label, v, StatusRemoved, "")
	if value == nil {
		// A null document satisfies no template.
		return Result{Root: template, Incompatible: true}
	}

	value = rekey(value, template.Key)

	if err != nil || !template.Type.IsContainer() {
		merged, incompatible := Merge([]*Node{template}, []*Node{value}, false)

		return Result{Root: UniqueKeys(merged[0]), Incompatible: incompatible}
	}

	children, incompatible := Merge(template.Children, value.Children, template.Type == TypeArray)

	root := template.clone()
	root.Children = children

	return Result{
		Root:         UniqueKeys(root),
		Incompatible: incompatible || !template.Type.Compatible(value.Type),
	}
}
