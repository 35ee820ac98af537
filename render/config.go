package render

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Flags holds CLI flag names for render configuration, allowing callers to
// customize flag names while keeping sensible defaults.
type Flags struct {
	Output string
	Color  string
	Indent string
}

// NewConfig creates a new [Config] embedding these flag names.
func (f Flags) NewConfig() *Config {
	return &Config{
		Flags:  f,
		Output: string(OutputText),
		Color:  string(ColorAuto),
		Indent: 2,
	}
}

// Config holds CLI flag values for render configuration.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Use [Config.NewRenderer] to create a [Renderer].
type Config struct {
	Flags  Flags
	Output string
	Color  string
	Indent int
}

// NewConfig returns a new [Config] with default flag names.
func NewConfig() *Config {
	f := Flags{
		Output: "output",
		Color:  "color",
		Indent: "indent",
	}

	return f.NewConfig()
}

// RegisterFlags adds render flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&c.Output, c.Flags.Output, "o", string(OutputText),
		fmt.Sprintf("output format, one of: %s", GetAllOutputStrings()))
	flags.StringVar(&c.Color, c.Flags.Color, string(ColorAuto),
		fmt.Sprintf("when to color text output, one of: %s", GetAllColorStrings()))
	flags.IntVar(&c.Indent, c.Flags.Indent, 2, "JSON indentation width (0 for compact output)")
}

// RegisterCompletions registers shell completions for render flags on cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	err := cmd.RegisterFlagCompletionFunc(c.Flags.Output,
		cobra.FixedCompletions(GetAllOutputStrings(), cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Output, err)
	}

	err = cmd.RegisterFlagCompletionFunc(c.Flags.Color,
		cobra.FixedCompletions(GetAllColorStrings(), cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Color, err)
	}

	err = cmd.RegisterFlagCompletionFunc(c.Flags.Indent, cobra.NoFileCompletions)
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Indent, err)
	}

	return nil
}

// NewRenderer creates a [Renderer] using this [Config]. Additional options
// are applied after the configured ones.
func (c *Config) NewRenderer(opts ...Option) (*Renderer, error) {
	output, err := ParseOutput(c.Output)
	if err != nil {
		return nil, err
	}

	color, err := ParseColor(c.Color)
	if err != nil {
		return nil, err
	}

	if c.Indent < 0 {
		return nil, fmt.Errorf("%w: negative indent %d", ErrInvalidOption, c.Indent)
	}

	all := append([]Option{WithOutput(output), WithColor(color), WithIndent(c.Indent)}, opts...)

	return NewRenderer(all...), nil
}
