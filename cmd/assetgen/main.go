package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"time"

	"github.com/fatih/color"
	"github.com/hashicorp/go-hclog"
	"github.com/mattn/go-colorable"
	"github.com/spf13/cobra"

	"github.com/provide-io/flavor/go/assetgen/pkg/asset/literal"
	"github.com/provide-io/flavor/go/assetgen/pkg/logging"
)

const version = "0.1.0"

var (
	logLevel    string
	preset      presetValue
	payload     transformValue
	license     string
	licenseFile string
	packageName string
	macros      map[string]string
	mode        string
	stamp       bool
	manifestArg string
	versionFlag bool
)

func getBuilderTimestamp() string {
	// Try to get vcs.time from build info
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.time" {
				if t, err := time.Parse(time.RFC3339, setting.Value); err == nil {
					return t.UTC().Format(time.RFC3339)
				}
			}
		}
	}
	// Fallback to binary modification time
	if exePath, err := os.Executable(); err == nil {
		if stat, err := os.Stat(exePath); err == nil {
			return stat.ModTime().UTC().Format(time.RFC3339)
		}
	}
	return time.Now().UTC().Format(time.RFC3339)
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "assetgen %s\n", version)
	fmt.Fprintf(w, "Built: %s\n", getBuilderTimestamp())
}

func newRootCmd() *cobra.Command {
	preset = presetValue{name: literal.PresetCanonical}
	payload = transformValue{}

	rootCmd := &cobra.Command{
		Use:   "assetgen",
		Short: "Compile static resources into source declarations",
		Long: `assetgen embeds JPEG images, ICO icons and HTML pages into C or Go
sources as constant byte arrays and strings, so the host program needs no
file I/O at run time.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if versionFlag {
				printVersion(cmd.OutOrStdout())
				return nil
			}
			return cmd.Help()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.SetNormalizeFunc(normalizeFlagName)
	flags.StringVar(&logLevel, "log-level", "", "Log level (trace, debug, info, warn, error, json:<level>)")
	flags.Var(&preset, "preset", presetUsage())
	flags.Var(&payload, "transform", transformUsage())
	flags.StringVar(&license, "license", "", "License text for the file preamble")
	flags.StringVar(&licenseFile, "license-file", "", "Read the license text from a file")
	flags.StringVar(&packageName, "package", "", "Go package clause (go preset)")
	flags.StringToStringVar(&macros, "macro", nil, "HTML placeholder substitution, e.g. VERSION=US_VERSION (repeatable)")
	flags.StringVar(&mode, "mode", "", "Output file mode (default 0644)")
	flags.BoolVar(&stamp, "stamp", false, "Record the source checksum in the preamble")
	rootCmd.Flags().BoolVarP(&versionFlag, "version", "V", false, "Show version information")

	rootCmd.AddCommand(
		newCompileCmd("jpeg", "Embed a JPEG image with its dimensions"),
		newCompileCmd("ico", "Embed an ICO icon"),
		newCompileCmd("html", "Embed an HTML page as a string constant"),
		newBuildCmd(),
		newCheckCmd(),
		newInspectCmd(),
		newSysoCmd(),
	)
	return rootCmd
}

func newLogger() hclog.Logger {
	cfg := logging.ResolveLevel(logLevel)
	logger := logging.NewLogger("assetgen", cfg, nil)
	logger.Debug("Log level", "level", cfg.Level, "source", cfg.Source)
	return logger
}

func printError(w io.Writer, err error) {
	red := color.New(color.FgRed, color.Bold)
	red.Fprint(w, "✗ ")
	fmt.Fprintln(w, err)
}

func main() {
	// Handle --version or -V before cobra parses other flags
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-V") {
		printVersion(os.Stdout)
		os.Exit(0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		printError(colorable.NewColorableStderr(), err)
		stop()
		os.Exit(1)
	}
}
