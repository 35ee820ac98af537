package schematree

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"go.jacobcolvin.com/mocktree"
)

// Flags holds CLI flag names for template configuration, allowing callers to
// customize flag names while keeping sensible defaults.
type Flags struct {
	Schema string
	Infer  string
	Label  string
}

// NewConfig creates a new [Config] embedding these flag names.
func (f Flags) NewConfig() *Config {
	return &Config{
		Flags: f,
		Label: "response",
	}
}

// Config holds CLI flag values selecting where a template comes from.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Use [Config.Load] to build the template.
type Config struct {
	Flags  Flags
	Schema string
	Label  string
	Infer  []string
}

// NewConfig returns a new [Config] with default flag names.
func NewConfig() *Config {
	f := Flags{
		Schema: "schema",
		Infer:  "infer",
		Label:  "label",
	}

	return f.NewConfig()
}

// RegisterFlags adds template flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&c.Schema, c.Flags.Schema, "s", "",
		"JSON Schema file (JSON or YAML) describing the expected value")
	flags.StringSliceVar(&c.Infer, c.Flags.Infer, nil,
		"sample file to infer the template from (repeatable)")
	flags.StringVar(&c.Label, c.Flags.Label, "response",
		"label of the template root")
}

// RegisterCompletions registers shell completions for template flags on cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	docs := cobra.FixedCompletions([]string{"json", "yaml", "yml"}, cobra.ShellCompDirectiveFilterFileExt)

	for _, flag := range []string{c.Flags.Schema, c.Flags.Infer} {
		err := cmd.RegisterFlagCompletionFunc(flag, docs)
		if err != nil {
			return fmt.Errorf("registering %s completion: %w", flag, err)
		}
	}

	err := cmd.RegisterFlagCompletionFunc(c.Flags.Label, cobra.NoFileCompletions)
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Label, err)
	}

	return nil
}

// Load builds the configured template. It returns a nil node and no error
// when neither a schema nor samples are configured.
func (c *Config) Load() (*mocktree.Node, error) {
	if c.Schema != "" && len(c.Infer) > 0 {
		return nil, fmt.Errorf("%w: --%s and --%s are mutually exclusive",
			ErrInvalidOption, c.Flags.Schema, c.Flags.Infer)
	}

	if c.Label == "" {
		return nil, fmt.Errorf("%w: empty --%s", ErrInvalidOption, c.Flags.Label)
	}

	switch {
	case c.Schema != "":
		data, err := os.ReadFile(c.Schema) //nolint:gosec // Schema path from CLI flag is expected.
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
		}

		return Parse(c.Label, data)

	case len(c.Infer) > 0:
		samples := make([][]byte, 0, len(c.Infer))

		for _, path := range c.Infer {
			data, err := os.ReadFile(path) //nolint:gosec // Sample path from CLI flag is expected.
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
			}

			samples = append(samples, data)
		}

		return Infer(c.Label, samples...)
	}

	return nil, nil //nolint:nilnil // No template is a valid configuration.
}
