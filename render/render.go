package render

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"golang.org/x/term"

	"go.jacobcolvin.com/mocktree"
)

// Sentinel errors.
var (
	ErrInvalidOption = errors.New("invalid option")
	ErrWriteOutput   = errors.New("write output")
)

// Output selects how a [mocktree.View] is written.
type Output string

// Output formats.
const (
	OutputText Output = "text"
	OutputJSON Output = "json"
)

// Color selects when text output is styled.
type Color string

// Color modes.
const (
	ColorAuto   Color = "auto"
	ColorAlways Color = "always"
	ColorNever  Color = "never"
)

// GetAllOutputStrings returns all valid output format strings.
func GetAllOutputStrings() []string {
	return []string{string(OutputText), string(OutputJSON)}
}

// GetAllColorStrings returns all valid color mode strings.
func GetAllColorStrings() []string {
	return []string{string(ColorAuto), string(ColorAlways), string(ColorNever)}
}

// ParseOutput parses an output format string.
func ParseOutput(s string) (Output, error) {
	o := Output(strings.ToLower(s))
	if !slices.Contains(GetAllOutputStrings(), string(o)) {
		return "", fmt.Errorf("%w: unknown output %q", ErrInvalidOption, s)
	}

	return o, nil
}

// ParseColor parses a color mode string.
func ParseColor(s string) (Color, error) {
	c := Color(strings.ToLower(s))
	if !slices.Contains(GetAllColorStrings(), string(c)) {
		return "", fmt.Errorf("%w: unknown color mode %q", ErrInvalidOption, s)
	}

	return c, nil
}

// Renderer writes reconciled trees.
//
// Create instances with [NewRenderer] or [Config.NewRenderer].
type Renderer struct {
	styles styles
	output Output
	color  Color
	indent int
}

// Option configures a [Renderer].
type Option func(*Renderer)

// NewRenderer creates a [Renderer]. By default it writes text and styles it
// only when writing to a terminal.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		output: OutputText,
		color:  ColorAuto,
		indent: 2,
		styles: defaultStyles(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// WithOutput sets the output format.
func WithOutput(o Output) Option {
	return func(r *Renderer) {
		r.output = o
	}
}

// WithColor sets when text output is styled.
func WithColor(c Color) Option {
	return func(r *Renderer) {
		r.color = c
	}
}

// WithIndent sets the JSON indentation width. Zero writes compact JSON.
func WithIndent(n int) Option {
	return func(r *Renderer) {
		r.indent = n
	}
}

// Render writes v to w in the configured output format.
func (r *Renderer) Render(w io.Writer, v *mocktree.View) error {
	if r.output == OutputJSON {
		return r.JSON(w, v)
	}

	return r.Text(w, v)
}

// Text draws the tree in v with box-drawing connectors, one node per line.
func (r *Renderer) Text(w io.Writer, v *mocktree.View) error {
	bw := bufio.NewWriter(w)
	st := r.styles
	if !r.colored(w) {
		st = styles{}
	}

	if v.Tree != nil {
		// The root is drawn without connectors or a status marker.
		writeRow(bw, st, "", v.Tree, true)

		v.Tree.Walk(func(n *mocktree.Node) bool {
			br, ok := v.Branches[n.Key]
			if ok {
				writeRow(bw, st, guidePrefix(br.Guides), n, false)
			}

			return true
		})
	}

	if v.Incompatible {
		fmt.Fprintln(bw, st.warn.render("incompatible with template"))
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	return nil
}

type document struct {
	Tree         *mocktree.Node `json:"tree"`
	Incompatible bool           `json:"incompatible"`
}

// JSON writes v as {"incompatible": bool, "tree": node}.
func (r *Renderer) JSON(w io.Writer, v *mocktree.View) error {
	var (
		out []byte
		err error
	)

	doc := document{Incompatible: v.Incompatible, Tree: v.Tree}
	if r.indent > 0 {
		out, err = json.MarshalIndent(doc, "", strings.Repeat(" ", r.indent))
	} else {
		out, err = json.Marshal(doc)
	}

	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	out = append(out, '\n')

	_, err = w.Write(out)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	return nil
}

func (r *Renderer) colored(w io.Writer) bool {
	switch r.color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	case ColorAuto:
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	f, ok := w.(*os.File)

	return ok && term.IsTerminal(int(f.Fd()))
}

// guidePrefix turns branch guides into the connector text drawn before a
// node's label.
func guidePrefix(guides []mocktree.Guide) string {
	var sb strings.Builder

	last := len(guides) - 1
	for i, g := range guides {
		switch {
		case i < last && g == mocktree.GuideVisible:
			sb.WriteString("│  ")
		case i < last:
			sb.WriteString("   ")
		case g == mocktree.GuideVisible:
			sb.WriteString("├─ ")
		case g == mocktree.GuideHalf:
			sb.WriteString("└─ ")
		default:
			sb.WriteString("   ")
		}
	}

	return sb.String()
}

func writeRow(w io.Writer, st styles, prefix string, n *mocktree.Node, root bool) {
	var line strings.Builder

	line.WriteString(n.Label)

	if !n.Type.IsContainer() {
		line.WriteString(": ")
		line.WriteString(displayValue(n))
	}

	text := line.String()

	switch {
	case root:
		text = st.value.render(text)
	case n.Status == mocktree.StatusAdded:
		text = st.added.render("+ " + text)
	case n.Status == mocktree.StatusRemoved:
		text = st.removed.render("- " + text)
	default:
		text = st.value.render(text)
	}

	tag := typeTag(n)
	if text != "" {
		tag = " " + tag
	}

	if n.Type.IsContainer() && n.Children == nil {
		tag += " …"
	}

	fmt.Fprintln(w, st.guide.render(prefix)+text+st.tag.render(tag))
}

func displayValue(n *mocktree.Node) string {
	if n.Type == mocktree.TypeString {
		return strconv.Quote(n.DisplayValue)
	}

	return n.DisplayValue
}

func typeTag(n *mocktree.Node) string {
	if n.Type == mocktree.TypeArray && n.ChildrenType != "" {
		return fmt.Sprintf("(%s[%s])", n.Type, n.ChildrenType)
	}

	return fmt.Sprintf("(%s)", n.Type)
}

// style is a nil-safe wrapper that renders text unchanged when unset.
type style struct {
	s *lipgloss.Style
}

func (s style) render(text string) string {
	if s.s == nil || text == "" {
		return text
	}

	return s.s.Render(text)
}

type styles struct {
	added   style
	removed style
	value   style
	guide   style
	tag     style
	warn    style
}

func defaultStyles() styles {
	added := lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	removed := lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Strikethrough(true)
	value := lipgloss.NewStyle()
	guide := lipgloss.NewStyle().Faint(true)
	tag := lipgloss.NewStyle().Faint(true)
	warn := lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)

	return styles{
		added:   style{&added},
		removed: style{&removed},
		value:   style{&value},
		guide:   style{&guide},
		tag:     style{&tag},
		warn:    style{&warn},
	}
}
