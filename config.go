package debugstream

import (
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// ErrInvalidOption indicates a configuration value that cannot be resolved
// into stream options.
var ErrInvalidOption = errors.New("invalid option")

// Color display modes accepted by [Config].
const (
	// ColorAuto enables coloring when the destination is a terminal.
	ColorAuto = "auto"
	// ColorAlways forces coloring on.
	ColorAlways = "always"
	// ColorNever disables coloring.
	ColorNever = "never"
)

// Flags holds CLI flag names for stream configuration, allowing callers to
// customize flag names while keeping sensible defaults via [NewConfig].
type Flags struct {
	Color               string
	Basepath            string
	BasepathReplacement string
	ShowProcess         string
	ProcessName         string
	MaxExceptionLines   string
	ShowDate            string
	ShowPid             string
	ShowLoggerName      string
	ShowLevel           string
	ShowMetadata        string
	ShowPrefixes        string
	Indent              string
	Width               string
}

// NewConfig creates a new [Config] embedding these flag names.
func (f Flags) NewConfig() *Config {
	return &Config{
		Flags:        f,
		Color:        ColorAuto,
		ShowDate:     true,
		ShowPid:      true,
		ShowName:     true,
		ShowLevel:    true,
		ShowMetadata: true,
		ShowPrefixes: true,
		Indent:       "  ",
	}
}

// Config holds stream configuration as plain values, suitable for CLI flags
// or a YAML document.
//
// Create instances with [NewConfig], register CLI flags with
// [Config.RegisterFlags], optionally merge a YAML document with
// [Config.FromYAML], then build a [Stream] with [Config.NewStream].
type Config struct {
	Flags Flags `yaml:"-"`

	// Color is one of [ColorAuto], [ColorAlways], or [ColorNever].
	Color string `yaml:"color"`

	// Colors overrides per-level color lists, keyed by level name.
	Colors map[string][]string `yaml:"colors"`

	Basepath            string `yaml:"basepath"`
	BasepathReplacement string `yaml:"basepathReplacement"`
	ShowProcess         bool   `yaml:"showProcess"`
	ProcessName         string `yaml:"processName"`
	MaxExceptionLines   int    `yaml:"maxExceptionLines"`
	ShowDate            bool   `yaml:"showDate"`
	ShowPid             bool   `yaml:"showPid"`
	ShowName            bool   `yaml:"showLoggerName"`
	ShowLevel           bool   `yaml:"showLevel"`
	ShowMetadata        bool   `yaml:"showMetadata"`
	ShowPrefixes        bool   `yaml:"showPrefixes"`
	Indent              string `yaml:"indent"`
	Width               int    `yaml:"width"`
}

// NewConfig returns a new [Config] with default flag names and default
// display settings.
func NewConfig() *Config {
	f := Flags{
		Color:               "color",
		Basepath:            "basepath",
		BasepathReplacement: "basepath-replacement",
		ShowProcess:         "show-process",
		ProcessName:         "process-name",
		MaxExceptionLines:   "max-exception-lines",
		ShowDate:            "show-date",
		ShowPid:             "show-pid",
		ShowLoggerName:      "show-logger-name",
		ShowLevel:           "show-level",
		ShowMetadata:        "show-metadata",
		ShowPrefixes:        "show-prefixes",
		Indent:              "indent",
		Width:               "width",
	}

	return f.NewConfig()
}

// RegisterFlags adds stream flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.Color, c.Flags.Color, c.Color,
		fmt.Sprintf("color mode, one of: %s, %s, %s", ColorAuto, ColorAlways, ColorNever))
	flags.StringVar(&c.Basepath, c.Flags.Basepath, c.Basepath,
		"root path stripped from source and stack annotations")
	flags.StringVar(&c.BasepathReplacement, c.Flags.BasepathReplacement, c.BasepathReplacement,
		"replacement for the stripped root path")
	flags.BoolVar(&c.ShowProcess, c.Flags.ShowProcess, c.ShowProcess,
		"include the process name in the header")
	flags.StringVar(&c.ProcessName, c.Flags.ProcessName, c.ProcessName,
		"override the auto-detected process name")
	flags.IntVar(&c.MaxExceptionLines, c.Flags.MaxExceptionLines, c.MaxExceptionLines,
		"cap stack traces at N lines (0 = unlimited)")
	flags.BoolVar(&c.ShowDate, c.Flags.ShowDate, c.ShowDate, "show the date column")
	flags.BoolVar(&c.ShowPid, c.Flags.ShowPid, c.ShowPid, "show the process id")
	flags.BoolVar(&c.ShowName, c.Flags.ShowLoggerName, c.ShowName, "show the logger name")
	flags.BoolVar(&c.ShowLevel, c.Flags.ShowLevel, c.ShowLevel, "show the level tag")
	flags.BoolVar(&c.ShowMetadata, c.Flags.ShowMetadata, c.ShowMetadata,
		"dump unconsumed fields as metadata lines")
	flags.BoolVar(&c.ShowPrefixes, c.Flags.ShowPrefixes, c.ShowPrefixes, "show prefix segments")
	flags.StringVar(&c.Indent, c.Flags.Indent, c.Indent, "side-value indentation")
	flags.IntVar(&c.Width, c.Flags.Width, c.Width,
		"column width for metadata truncation (0 = detect)")
}

// RegisterCompletions registers shell completions for stream flags on cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	modes := []string{ColorAuto, ColorAlways, ColorNever}

	err := cmd.RegisterFlagCompletionFunc(c.Flags.Color,
		cobra.FixedCompletions(modes, cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Color, err)
	}

	return nil
}

// FromYAML merges settings from a YAML document over c. Only keys present
// in the document are changed.
func (c *Config) FromYAML(data []byte) error {
	err := yaml.Unmarshal(data, c)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidOption, err)
	}

	return nil
}

// NewStream creates a [Stream] writing to w, resolved from the values
// stored in c.
func (c *Config) NewStream(w io.Writer) (*Stream, error) {
	opts := []Option{WithOutput(w)}

	switch c.Color {
	case "", ColorAuto:
	case ColorAlways:
		opts = append(opts, WithForceColor())
	case ColorNever:
		opts = append(opts, WithoutColors())
	default:
		return nil, fmt.Errorf("%w: unknown color mode %q", ErrInvalidOption, c.Color)
	}

	if len(c.Colors) > 0 {
		levelColors := make(map[Level][]string, len(c.Colors))

		for name, colors := range c.Colors {
			lvl, err := ParseLevel(name)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrInvalidOption, err)
			}

			levelColors[lvl] = colors
		}

		opts = append(opts, WithColors(levelColors))
	}

	if c.Basepath != "" {
		opts = append(opts, WithBasepath(c.Basepath, c.BasepathReplacement))
	}

	if c.ShowProcess {
		opts = append(opts, WithShowProcess())
	}

	if c.ProcessName != "" {
		opts = append(opts, WithProcessName(c.ProcessName))
	}

	if c.MaxExceptionLines > 0 {
		opts = append(opts, WithMaxExceptionLines(c.MaxExceptionLines))
	}

	if !c.ShowDate {
		opts = append(opts, WithoutDate())
	}

	if !c.ShowPid {
		opts = append(opts, WithoutPid())
	}

	if !c.ShowName {
		opts = append(opts, WithoutLoggerName())
	}

	if !c.ShowLevel {
		opts = append(opts, WithoutLevel())
	}

	if !c.ShowMetadata {
		opts = append(opts, WithoutMetadata())
	}

	if !c.ShowPrefixes {
		opts = append(opts, WithoutPrefixes())
	}

	if c.Indent != "" {
		opts = append(opts, WithIndent(c.Indent))
	}

	if c.Width > 0 {
		opts = append(opts, WithWidth(c.Width))
	}

	return New(opts...), nil
}
