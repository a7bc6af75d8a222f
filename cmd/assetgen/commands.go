package main

import (
	"fmt"
	"os"
	"runtime"
	"slices"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/provide-io/flavor/go/assetgen/pkg"
	"github.com/provide-io/flavor/go/assetgen/pkg/asset/batch"
	"github.com/provide-io/flavor/go/assetgen/pkg/asset/compiler"
	"github.com/provide-io/flavor/go/assetgen/pkg/asset/ico"
	"github.com/provide-io/flavor/go/assetgen/pkg/utils/permissions"
)

func compileOptions() (pkg.CompileOptions, error) {
	opts := pkg.CompileOptions{
		Preset:  preset.name,
		License: license,
		Package: packageName,
		Macros:  macros,
		Mode:    mode,
		Stamp:   stamp,
	}
	if len(payload.chain) > 0 {
		opts.Transform = payload.chain.String()
	}
	if licenseFile != "" {
		if license != "" {
			return opts, fmt.Errorf("--license and --license-file are mutually exclusive")
		}
		text, err := os.ReadFile(licenseFile)
		if err != nil {
			return opts, fmt.Errorf("failed to read license file: %w", err)
		}
		opts.License = string(text)
	}
	if _, err := permissions.ParseOctalString(mode); err != nil {
		return opts, err
	}
	return opts, nil
}

// newCompileCmd mirrors the one-file generators: <src> <dst> <name>.
func newCompileCmd(kindName, short string) *cobra.Command {
	return &cobra.Command{
		Use:   kindName + " <src> <dst> <name>",
		Short: short,
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := compiler.ParseKind(kindName)
			if err != nil {
				return err
			}
			opts, err := compileOptions()
			if err != nil {
				return err
			}
			opts.Logger = newLogger()

			res, err := pkg.CompileFile(cmd.Context(), kind, args[0], args[1], args[2], opts)
			if err != nil {
				return err
			}
			opts.Logger.Info("✅ Done", "output", res.Entry.Output, "status", res.Status.String(), "size", res.Size)
			return nil
		},
	}
}

func newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Compile every asset listed in a manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			logger.Info("🧱 Building assets", "manifest", manifestArg)

			results, err := pkg.BuildManifest(cmd.Context(), manifestArg, logger)
			written, current := 0, 0
			for _, res := range results {
				switch res.Status {
				case batch.StatusWritten:
					written++
				case batch.StatusUpToDate:
					current++
				}
			}
			logger.Info("🏁 Build finished", "written", written, "up_to_date", current, "total", len(results))
			return err
		},
	}
	cmd.Flags().StringVarP(&manifestArg, "manifest", "m", "", "Path to the asset manifest (required)")
	if err := cmd.MarkFlagRequired("manifest"); err != nil {
		panic(err)
	}
	return cmd
}

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify generated sources are up to date without writing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return pkg.VerifyOutputsWithLogger(cmd.Context(), manifestArg, newLogger())
		},
	}
	cmd.Flags().StringVarP(&manifestArg, "manifest", "m", "", "Path to the asset manifest (required)")
	if err := cmd.MarkFlagRequired("manifest"); err != nil {
		panic(err)
	}
	return cmd
}

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file.jpg>",
		Short: "List the marker segments of a JPEG up to the first scan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := pkg.InspectJPEG(args[0])
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "OFFSET\tMARKER\tLENGTH")
			for _, seg := range info.Segments {
				fmt.Fprintf(w, "%d\t%s\t%d\n", seg.Offset, seg.Marker, seg.Length)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if info.Frame != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "frame: %dx%d\n", info.Frame.Width, info.Frame.Height)
			}
			if info.Err != nil {
				return fmt.Errorf("%s: %w", args[0], info.Err)
			}
			return nil
		},
	}
}

func newSysoCmd() *cobra.Command {
	var arch string

	cmd := &cobra.Command{
		Use:   "syso <icon.ico> [out.syso]",
		Short: "Turn an ICO into a Windows resource object the Go linker picks up",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var dst string
			if len(args) == 2 {
				dst = args[1]
			}
			logger := newLogger()

			out, err := pkg.WriteIconResource(args[0], dst, arch, logger)
			if err != nil {
				return err
			}
			logger.Info("✅ Wrote icon resource", "output", out, "arch", arch)
			return nil
		},
	}

	defaultArch := runtime.GOARCH
	if !slices.Contains(ico.Archs, defaultArch) {
		defaultArch = "amd64"
	}
	cmd.Flags().StringVar(&arch, "arch", defaultArch, fmt.Sprintf("Target architecture (%v)", ico.Archs))
	return cmd
}
