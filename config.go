package mocktree

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Flags holds CLI flag names for reconciliation configuration, allowing
// callers to customize flag names while keeping sensible defaults.
type Flags struct {
	Format string
	Prune  string
}

// NewConfig creates a new [Config] embedding these flag names.
func (f Flags) NewConfig() *Config {
	return &Config{
		Flags:  f,
		Format: string(FormatJSON),
		Prune:  true,
	}
}

// Config holds CLI flag values for reconciliation configuration.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Use [Config.NewPipeline] to create a [Pipeline].
type Config struct {
	Flags  Flags
	Format string
	Prune  bool
}

// NewConfig returns a new [Config] with default flag names.
func NewConfig() *Config {
	f := Flags{
		Format: "format",
		Prune:  "prune",
	}

	return f.NewConfig()
}

// RegisterFlags adds reconciliation flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&c.Format, c.Flags.Format, "f", string(FormatJSON),
		fmt.Sprintf("mock value format, one of: %s", GetAllFormatStrings()))
	flags.BoolVar(&c.Prune, c.Flags.Prune, true,
		"collapse optional objects and arrays missing from the mock")
}

// RegisterCompletions registers shell completions for reconciliation flags on
// cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	err := cmd.RegisterFlagCompletionFunc(c.Flags.Format,
		cobra.FixedCompletions(GetAllFormatStrings(), cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Format, err)
	}

	return nil
}

// NewPipeline creates a [Pipeline] using this [Config]. Additional options
// are applied after the configured ones.
func (c *Config) NewPipeline(opts ...Option) (*Pipeline, error) {
	format, err := ParseFormat(c.Format)
	if err != nil {
		return nil, err
	}

	all := append([]Option{WithFormat(format), WithPrune(c.Prune)}, opts...)

	return NewPipeline(all...), nil
}
