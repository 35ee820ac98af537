package mocktree

import "log/slog"

// View is everything a tree view needs to display a reconciled mock.
type View struct {
	// Branches maps the key of every drawn node in Tree to its connectors.
	Branches map[string]Branch
	// Tree is the (optionally pruned) tree to display.
	Tree *Node
	Result
}

// Pipeline runs reconciliation, pruning, and branch annotation.
//
// A Pipeline holds no mutable state and is safe for concurrent use. Callers
// re-run it whenever the template or the raw value changes, and may memoize
// on that pair.
//
// Create instances with [NewPipeline] or [Config.NewPipeline].
type Pipeline struct {
	logger *slog.Logger
	format Format
	prune  bool
}

// Option configures a [Pipeline].
type Option func(*Pipeline)

// NewPipeline creates a [Pipeline] with the given options. By default values
// are parsed as JSON, trees are pruned, and logs go to [slog.Default].
func NewPipeline(opts ...Option) *Pipeline {
	p := &Pipeline{
		format: FormatJSON,
		prune:  true,
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// WithFormat sets the syntax of raw mock values.
func WithFormat(format Format) Option {
	return func(p *Pipeline) {
		p.format = format
	}
}

// WithPrune enables or disables collapsing of optional template-only
// containers.
func WithPrune(prune bool) Option {
	return func(p *Pipeline) {
		p.prune = prune
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// Format returns the syntax the pipeline parses raw values with.
func (p *Pipeline) Format() Format {
	return p.format
}

// Reconcile is [Reconcile] using the pipeline's format and logger.
func (p *Pipeline) Reconcile(template *Node, raw *string) Result {
	return reconcile(template, raw, p.format, p.logger)
}

// Run reconciles raw against template and derives the display metadata.
func (p *Pipeline) Run(template *Node, raw *string) *View {
	res := p.Reconcile(template, raw)

	tree := res.Root
	if p.prune {
		tree = Prune(tree)
	}

	view := &View{
		Result:   res,
		Tree:     tree,
		Branches: Annotate(tree),
	}

	p.logger.Debug("reconciled mock",
		slog.Bool("provided", raw != nil),
		slog.Bool("incompatible", res.Incompatible),
		slog.Int("rows", len(view.Branches)),
		slog.Int("depth", tree.Depth()),
	)

	return view
}

// Count returns the number of nodes in the tree with each status. The root
// is included; after [Reconcile] it keeps the template root's status.
func Count(n *Node) map[Status]int {
	counts := make(map[Status]int)

	n.Walk(func(c *Node) bool {
		counts[c.Status]++

		return true
	})

	return counts
}
