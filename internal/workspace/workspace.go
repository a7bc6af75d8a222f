// Package workspace resolves the paths a build reads from and writes to
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// BaseDirEnv overrides the directory relative manifest paths resolve against.
const BaseDirEnv = "ASSETGEN_BASE_DIR"

// BaseDir returns the directory relative paths resolve against: the
// environment override if set, otherwise fallback, otherwise the working
// directory.
func BaseDir(fallback string) string {
	if dir := os.Getenv(BaseDirEnv); dir != "" {
		return dir
	}
	if fallback != "" {
		return fallback
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

// Resolve joins p onto base unless p is already absolute.
func Resolve(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

// HeaderName is the header a generated C file includes: the output's base
// name with its extension replaced by .h.
func HeaderName(outPath string) string {
	base := filepath.Base(outPath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".h"
}

// TempPath is where output is staged before it replaces outPath.
func TempPath(outPath string) string {
	return outPath + ".tmp"
}

// EnsureParent creates the directory that will hold path.
func EnsureParent(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	return nil
}
