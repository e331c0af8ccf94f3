// Command bunyanfmt renders Bunyan JSON log lines as human-readable text.
//
// It reads newline-delimited JSON records from stdin or from the given
// files and writes rendered lines to stdout. Lines that are not valid JSON
// records pass through verbatim unless --strict is set, so piping mixed
// output through bunyanfmt is safe.
//
//	myapp | bunyanfmt --basepath /src/myapp
//	bunyanfmt --strict --color always app.log
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/debug"

	"charm.land/log/v2"
	"github.com/spf13/cobra"

	debugstream "github.com/jwalton/bunyan-debug-stream"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "bunyanfmt"})

	cfg := debugstream.NewConfig()

	var (
		configFile  string
		strict      bool
		showVersion bool
	)

	rootCmd := &cobra.Command{
		Use:   "bunyanfmt [flags] [file ...]",
		Short: "Render Bunyan JSON logs as human-readable text",
		Long: `bunyanfmt reads newline-delimited Bunyan JSON records from stdin or from
files and writes rendered, optionally colorized lines to stdout. Lines that
are not valid JSON records pass through verbatim unless --strict is set.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(_ *cobra.Command, args []string) error {
			if showVersion {
				fmt.Println(versionString())
				return nil
			}

			return run(cfg, logger, configFile, strict, args)
		},
	}

	cfg.RegisterFlags(rootCmd.Flags())
	rootCmd.Flags().StringVar(&configFile, "config", "", "YAML config file")
	rootCmd.Flags().BoolVar(&strict, "strict", false,
		"fail on lines that are not valid JSON records")
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "print version and exit")

	completionErr := cfg.RegisterCompletions(rootCmd)
	if completionErr != nil {
		logger.Warn("registering completions", "err", completionErr)
	}

	err := rootCmd.Execute()
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

func run(cfg *debugstream.Config, logger *log.Logger, configFile string, strict bool, args []string) error {
	if configFile != "" {
		data, err := os.ReadFile(configFile) //nolint:gosec // Config path from CLI flag is expected.
		if err != nil {
			return fmt.Errorf("reading config: %w", err)
		}

		err = cfg.FromYAML(data)
		if err != nil {
			return fmt.Errorf("config %s: %w", configFile, err)
		}
	}

	stream, err := cfg.NewStream(os.Stdout)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		args = []string{"-"}
	}

	failed := false

	for _, arg := range args {
		err := renderFile(stream, arg, strict)
		if err != nil {
			if strict {
				return err
			}

			logger.Warn("skipping input", "file", arg, "err", err)

			failed = true
		}
	}

	if failed {
		return errors.New("some inputs could not be read")
	}

	return nil
}

// renderFile streams one input through the debug stream, line by line. In
// lenient mode unparseable lines pass through verbatim.
func renderFile(stream *debugstream.Stream, name string, strict bool) error {
	var in io.Reader

	if name == "-" {
		in = os.Stdin
	} else {
		f, err := os.Open(name) //nolint:gosec // Input path from CLI args is expected.
		if err != nil {
			return err
		}
		defer f.Close() //nolint:errcheck // Read-only file.

		in = f
	}

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		_, err := stream.Write(line)
		if err == nil {
			continue
		}

		if errors.Is(err, debugstream.ErrMalformedEntry) && !strict {
			fmt.Println(string(line))
			continue
		}

		return err
	}

	return scanner.Err()
}

func versionString() string {
	version := "unknown"

	buildInfo, ok := debug.ReadBuildInfo()
	if ok && buildInfo.Main.Version != "" {
		version = buildInfo.Main.Version
	}

	return fmt.Sprintf("bunyanfmt %s (%s, %s/%s)",
		version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
