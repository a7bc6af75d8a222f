// Package assemble wraps compiled fragments in a preamble and writes the
// resulting source files.
package assemble

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/provide-io/flavor/go/assetgen/internal/workspace"
	"github.com/provide-io/flavor/go/assetgen/pkg/asset/literal"
	"github.com/provide-io/flavor/go/assetgen/pkg/utils/permissions"
)

// GeneratedMarker heads every Go file the assembler writes.
const GeneratedMarker = "// Code generated by assetgen. DO NOT EDIT."

// DefaultPackage is used for Go output when Package is empty.
const DefaultPackage = "assets"

// Assembler turns a fragment into a complete source file.
type Assembler struct {
	// License is placed at the top of every file. Empty omits it.
	License string
	Target  literal.Target
	// Package is the Go package clause.
	Package string
	// Stamp records the source checksum in the preamble.
	Stamp bool
	// Mode is the output file mode; zero means permissions.DefaultOutputPerms.
	Mode   os.FileMode
	Logger hclog.Logger
}

// Assemble returns the complete file text. header is the file a C source
// includes and may be empty; checksum is written only when Stamp is set.
func (a *Assembler) Assemble(fragment, header, checksum string) string {
	var b strings.Builder
	if a.Target == literal.TargetGo {
		a.goPreamble(&b, checksum)
	} else {
		a.cPreamble(&b, header, checksum)
	}
	b.WriteString(fragment)
	return b.String()
}

func (a *Assembler) cPreamble(b *strings.Builder, header, checksum string) {
	if lines := licenseLines(a.License); len(lines) > 0 {
		b.WriteString("/*\n")
		for _, line := range lines {
			if line == "" {
				b.WriteString("\n")
				continue
			}
			b.WriteString("    " + line + "\n")
		}
		b.WriteString("*/\n\n")
	}
	stamped := a.Stamp && checksum != ""
	if stamped {
		fmt.Fprintf(b, "/* source %s */\n", checksum)
	}
	if header != "" {
		fmt.Fprintf(b, "#include \"%s\"\n\n\n", header)
	} else if stamped {
		b.WriteString("\n")
	}
}

func (a *Assembler) goPreamble(b *strings.Builder, checksum string) {
	b.WriteString(GeneratedMarker + "\n")
	if a.Stamp && checksum != "" {
		fmt.Fprintf(b, "// source %s\n", checksum)
	}
	b.WriteString("\n")
	if lines := licenseLines(a.License); len(lines) > 0 {
		for _, line := range lines {
			if line == "" {
				b.WriteString("//\n")
				continue
			}
			b.WriteString("// " + line + "\n")
		}
		b.WriteString("\n")
	}

	pkg := a.Package
	if pkg == "" {
		pkg = DefaultPackage
	}
	fmt.Fprintf(b, "package %s\n\n", pkg)
}

func licenseLines(license string) []string {
	license = strings.TrimSpace(license)
	if license == "" {
		return nil
	}
	lines := strings.Split(license, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t\r")
	}
	return lines
}

func (a *Assembler) logger() hclog.Logger {
	if a.Logger == nil {
		return hclog.NewNullLogger()
	}
	return a.Logger
}

func (a *Assembler) mode() os.FileMode {
	if a.Mode == 0 {
		return permissions.DefaultOutputPerms
	}
	return a.Mode
}

// WriteFile stages text next to path and then replaces path with it, so a
// reader sees either the old file or the complete new one.
func (a *Assembler) WriteFile(path, text string) error {
	logger := a.logger().With("path", path)

	if err := workspace.EnsureParent(path); err != nil {
		return err
	}

	tempPath := workspace.TempPath(path)
	perm := uint16(a.mode().Perm())
	logger.Debug("Staging output",
		"temp_path", tempPath,
		"bytes", len(text),
		"mode", permissions.FormatOctal(perm))
	if !permissions.IsOwnerWritable(perm) {
		logger.Warn("Output is read-only for its owner", "mode", permissions.FormatOctal(perm))
	}
	if err := os.WriteFile(tempPath, []byte(text), a.mode()); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	// WriteFile honours the umask; the final file gets the configured mode.
	if err := os.Chmod(tempPath, a.mode()); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	if err := atomicReplace(tempPath, path, logger); err != nil {
		os.Remove(tempPath)
		logger.Debug("Cleaned up temp file after error", "temp_path", tempPath)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// Unchanged reports whether path already holds exactly text.
func Unchanged(path, text string) bool {
	existing, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return bytes.Equal(existing, []byte(text))
}
