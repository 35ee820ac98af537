package mocktree_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/mocktree"
)

func TestPipelineRun(t *testing.T) {
	t.Parallel()

	tmpl := templateNode("", "root", mocktree.TypeObject, true,
		templateNode("", "name", mocktree.TypeString, true),
		templateNode("", "meta", mocktree.TypeObject, false,
			templateNode("", "tag", mocktree.TypeString, true),
		),
	)

	var buf bytes.Buffer

	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tcs := map[string]struct {
		opts      []mocktree.Option
		wantRows  int
		wantDepth int
	}{
		"pruned": {
			opts:      nil,
			wantRows:  2,
			wantDepth: 1,
		},
		"unpruned": {
			opts:      []mocktree.Option{mocktree.WithPrune(false)},
			wantRows:  3,
			wantDepth: 2,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			p := mocktree.NewPipeline(tc.opts...)
			view := p.Run(tmpl, ptr(`{"name":"x"}`))

			assert.False(t, view.Incompatible)
			assert.Len(t, view.Branches, tc.wantRows)
			assert.Equal(t, tc.wantDepth, view.Tree.Depth())

			for key := range view.Branches {
				assert.NotNil(t, view.Tree.Find(key), key)
			}
		})
	}

	p := mocktree.NewPipeline(mocktree.WithLogger(logger))
	p.Run(tmpl, nil)
	assert.Contains(t, buf.String(), "reconciled mock")
	assert.Contains(t, buf.String(), "provided=false")
}

func TestPipelineYAML(t *testing.T) {
	t.Parallel()

	p := mocktree.NewPipeline(mocktree.WithFormat(mocktree.FormatYAML))
	assert.Equal(t, mocktree.FormatYAML, p.Format())

	res := p.Reconcile(scalarTemplate(), ptr("bool: true\nnum: 1\nstr: s\n"))
	assert.False(t, res.Incompatible)
	assert.Equal(t, "s", res.Root.Find("response-str").RealValue)
}

func TestCount(t *testing.T) {
	t.Parallel()

	res := mocktree.Reconcile(scalarTemplate(), ptr(scenarioMock))

	// The root is a copy of the template root and keeps its added status.
	assert.Equal(t, map[mocktree.Status]int{
		mocktree.StatusDefault: 3,
		mocktree.StatusAdded:   2,
		mocktree.StatusRemoved: 1,
	}, mocktree.Count(res.Root))
}

func TestConfig(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		args       []string
		wantFormat mocktree.Format
		wantPrune  bool
		wantErr    bool
	}{
		"defaults": {
			args:       nil,
			wantFormat: mocktree.FormatJSON,
			wantPrune:  true,
		},
		"yaml without pruning": {
			args:       []string{"--format", "yaml", "--prune=false"},
			wantFormat: mocktree.FormatYAML,
			wantPrune:  false,
		},
		"short flag": {
			args:       []string{"-f", "yaml"},
			wantFormat: mocktree.FormatYAML,
			wantPrune:  true,
		},
		"invalid format": {
			args:    []string{"--format", "toml"},
			wantErr: true,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cfg := mocktree.NewConfig()
			fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
			cfg.RegisterFlags(fs)
			require.NoError(t, fs.Parse(tc.args))

			p, err := cfg.NewPipeline()
			if tc.wantErr {
				require.ErrorIs(t, err, mocktree.ErrInvalidOption)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.wantFormat, p.Format())
			assert.Equal(t, tc.wantPrune, cfg.Prune)
		})
	}
}

func TestConfigCustomFlags(t *testing.T) {
	t.Parallel()

	cfg := mocktree.Flags{Format: "mock-format", Prune: "mock-prune"}.NewConfig()

	cmd := &cobra.Command{Use: "test"}
	cfg.RegisterFlags(cmd.Flags())
	require.NoError(t, cfg.RegisterCompletions(cmd))

	require.NoError(t, cmd.Flags().Parse([]string{"--mock-format", "yaml"}))
	assert.Equal(t, "yaml", cfg.Format)

	fn, ok := cmd.GetFlagCompletionFunc("mock-format")
	require.True(t, ok)

	got, directive := fn(cmd, nil, "")
	assert.Equal(t, []cobra.Completion{"json", "yaml"}, got)
	assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)
}
