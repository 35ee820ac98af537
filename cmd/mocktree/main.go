// Command mocktree reconciles mock tool responses against the schema they
// are meant to satisfy and draws the result as a tree.
//
// # Usage
//
//	mocktree reconcile --schema FILE [flags] [MOCK|-]
//	mocktree reconcile --infer SAMPLE [--infer SAMPLE ...] [flags] [MOCK|-]
//	mocktree template --schema FILE | --infer SAMPLE [flags]
//	mocktree version
//
// reconcile marks every node of the mock as matching the template, missing
// from the mock ("+"), or surplus in the mock ("-"). Without a MOCK argument
// the template is drawn as-is. With --patch it prints a JSON merge patch
// that makes the mock compatible instead of the tree.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"go.jacobcolvin.com/mocktree"
	"go.jacobcolvin.com/mocktree/log"
	"go.jacobcolvin.com/mocktree/profile"
	"go.jacobcolvin.com/mocktree/render"
	"go.jacobcolvin.com/mocktree/schematree"
	"go.jacobcolvin.com/mocktree/version"
)

// Sentinel errors.
var (
	ErrReadInput    = errors.New("read input")
	ErrWriteOutput  = errors.New("write output")
	ErrIncompatible = errors.New("mock is incompatible with template")
	ErrNoTemplate   = errors.New("no template")
)

func main() {
	a := newApp(os.Stdin, os.Stdout, os.Stderr)
	a.setDefaultLogger = true

	err := a.execute(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)

		if errors.Is(err, ErrIncompatible) {
			os.Exit(2)
		}

		os.Exit(1)
	}
}

type app struct {
	stdin    io.Reader
	stdout   io.Writer
	stderr   io.Writer
	logger   *slog.Logger
	profiler *profile.Profiler

	logCfg     *log.Config
	profileCfg *profile.Config

	setDefaultLogger bool
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *app {
	return &app{
		stdin:      stdin,
		stdout:     stdout,
		stderr:     stderr,
		logCfg:     log.NewConfig(),
		profileCfg: profile.NewConfig(),
		logger:     slog.New(slog.DiscardHandler),
	}
}

// execute runs the command line args and writes any requested profiles.
func (a *app) execute(args []string) error {
	root := a.rootCommand()
	root.SetArgs(args)
	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	err := root.Execute()

	if a.profiler != nil {
		err = errors.Join(err, a.profiler.Stop())
	}

	return err
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "mocktree",
		Short: "Reconcile mock values against their schema",
		Long: `mocktree compares a mock tool response with the JSON Schema it should
satisfy, marking fields missing from the mock and fields the schema does not
declare, and draws the result as a tree.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return a.setup()
		},
	}

	a.logCfg.RegisterFlags(root.PersistentFlags())
	a.profileCfg.RegisterFlags(root.PersistentFlags())

	root.AddCommand(a.reconcileCommand(), a.templateCommand(), a.versionCommand())

	a.registerCompletions(root, a.logCfg.RegisterCompletions, a.profileCfg.RegisterCompletions)

	return root
}

func (a *app) setup() error {
	logger, err := a.logCfg.NewLogger(a.stderr)
	if err != nil {
		return err
	}

	a.logger = logger
	if a.setDefaultLogger {
		slog.SetDefault(logger)
	}

	if a.profileCfg.Enabled() {
		a.profiler = a.profileCfg.NewProfiler()

		err = a.profiler.Start()
		if err != nil {
			a.profiler = nil

			return err
		}
	}

	return nil
}

type reconcileOptions struct {
	template         *schematree.Config
	tree             *mocktree.Config
	render           *render.Config
	failIncompatible bool
	patch            bool
}

func (a *app) reconcileCommand() *cobra.Command {
	opts := &reconcileOptions{
		template: schematree.NewConfig(),
		tree:     mocktree.NewConfig(),
		render:   render.NewConfig(),
	}

	cmd := &cobra.Command{
		Use:   "reconcile [flags] [MOCK|-]",
		Short: "Reconcile a mock value against a template and draw the result",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.runReconcile(opts, args)
		},
	}

	flags := cmd.Flags()
	opts.template.RegisterFlags(flags)
	opts.tree.RegisterFlags(flags)
	opts.render.RegisterFlags(flags)
	flags.BoolVar(&opts.failIncompatible, "fail-incompatible", false,
		"exit with status 2 when the mock is incompatible with the template")
	flags.BoolVar(&opts.patch, "patch", false,
		"print a JSON merge patch that makes the mock compatible instead of the tree")

	a.registerCompletions(cmd, opts.template.RegisterCompletions, opts.tree.RegisterCompletions,
		opts.render.RegisterCompletions)

	return cmd
}

func (a *app) runReconcile(opts *reconcileOptions, args []string) error {
	tmpl, err := opts.template.Load()
	if err != nil {
		return err
	}

	pipelineOpts := []mocktree.Option{mocktree.WithLogger(a.logger)}
	if tmpl == nil {
		// Without a template every node is added, so pruning would hide
		// every container.
		pipelineOpts = append(pipelineOpts, mocktree.WithPrune(false))
	}

	pipeline, err := opts.tree.NewPipeline(pipelineOpts...)
	if err != nil {
		return err
	}

	renderer, err := opts.render.NewRenderer()
	if err != nil {
		return err
	}

	raw, err := a.readMock(args)
	if err != nil {
		return err
	}

	if tmpl == nil && raw == nil {
		return fmt.Errorf("%w: set --%s or --%s, or pass a mock", ErrNoTemplate,
			opts.template.Flags.Schema, opts.template.Flags.Infer)
	}

	if opts.patch {
		return a.writePatch(pipeline, tmpl, raw)
	}

	view := pipeline.Run(tmpl, raw)

	err = renderer.Render(a.stdout, view)
	if err != nil {
		return err
	}

	if opts.failIncompatible && view.Incompatible {
		return ErrIncompatible
	}

	return nil
}

func (a *app) writePatch(pipeline *mocktree.Pipeline, tmpl *mocktree.Node, raw *string) error {
	if tmpl == nil {
		return ErrNoTemplate
	}

	if raw == nil {
		return fmt.Errorf("%w: --patch needs a mock value", ErrReadInput)
	}

	res := pipeline.Reconcile(tmpl, raw)

	patch, err := mocktree.RepairPatch(*raw, res.Root, pipeline.Format())
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(a.stdout, "%s\n", patch)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	return nil
}

// readMock returns the mock value named by args, or nil when no mock is
// given.
func (a *app) readMock(args []string) (*string, error) {
	if len(args) == 0 {
		return nil, nil //nolint:nilnil // No mock value is a valid input.
	}

	var (
		data []byte
		err  error
	)

	if args[0] == "-" {
		data, err = io.ReadAll(a.stdin)
		if err != nil {
			return nil, fmt.Errorf("%w: stdin: %w", ErrReadInput, err)
		}
	} else {
		data, err = os.ReadFile(args[0]) //nolint:gosec // Mock path from CLI argument is expected.
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
		}
	}

	raw := string(data)

	return &raw, nil
}

type templateOptions struct {
	template *schematree.Config
	tree     *mocktree.Config
	render   *render.Config
}

func (a *app) templateCommand() *cobra.Command {
	opts := &templateOptions{
		template: schematree.NewConfig(),
		tree:     mocktree.NewConfig(),
		render:   render.NewConfig(),
	}

	cmd := &cobra.Command{
		Use:   "template [flags]",
		Short: "Draw the template built from a schema or samples",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return a.runTemplate(opts)
		},
	}

	flags := cmd.Flags()
	opts.template.RegisterFlags(flags)
	opts.render.RegisterFlags(flags)
	flags.BoolVar(&opts.tree.Prune, opts.tree.Flags.Prune, false,
		"collapse optional objects and arrays")

	a.registerCompletions(cmd, opts.template.RegisterCompletions, opts.render.RegisterCompletions)

	return cmd
}

func (a *app) runTemplate(opts *templateOptions) error {
	tmpl, err := opts.template.Load()
	if err != nil {
		return err
	}

	if tmpl == nil {
		return fmt.Errorf("%w: set --%s or --%s", ErrNoTemplate,
			opts.template.Flags.Schema, opts.template.Flags.Infer)
	}

	pipeline, err := opts.tree.NewPipeline(mocktree.WithLogger(a.logger))
	if err != nil {
		return err
	}

	renderer, err := opts.render.NewRenderer()
	if err != nil {
		return err
	}

	return renderer.Render(a.stdout, pipeline.Run(tmpl, nil))
}

func (a *app) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(a.stdout, version.Get())
			if err != nil {
				return fmt.Errorf("%w: %w", ErrWriteOutput, err)
			}

			return nil
		},
	}
}

func (a *app) registerCompletions(cmd *cobra.Command, registers ...func(*cobra.Command) error) {
	for _, register := range registers {
		err := register(cmd)
		if err != nil {
			fmt.Fprintf(a.stderr, "register completions: %v\n", err)
		}
	}
}
