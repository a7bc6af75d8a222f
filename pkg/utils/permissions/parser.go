// Package permissions parses the file mode generated sources are written with
package permissions

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// DefaultOutputPerms is rw-r--r--.
const DefaultOutputPerms = 0o644

// ParseOctalString parses an octal permission string into a uint16.
// Handles formats like "644", "0644", "0o644". Empty means the default.
// The result must keep the owner read bit: generated files are read back
// by the up-to-date check.
func ParseOctalString(s string) (uint16, error) {
	if s == "" {
		return DefaultOutputPerms, nil
	}

	trimmed := strings.TrimPrefix(s, "0o")
	trimmed = strings.TrimPrefix(trimmed, "0")
	if trimmed == "" {
		return DefaultOutputPerms, fmt.Errorf("invalid permission string %q: owner must be able to read the file", s)
	}

	val, err := strconv.ParseUint(trimmed, 8, 16)
	if err != nil {
		return DefaultOutputPerms, fmt.Errorf("invalid permission string %q: %w", s, err)
	}
	if val > 0o777 {
		return DefaultOutputPerms, fmt.Errorf("invalid permission string %q: only permission bits are allowed", s)
	}
	if val&0o400 == 0 {
		return DefaultOutputPerms, fmt.Errorf("invalid permission string %q: owner must be able to read the file", s)
	}

	return uint16(val), nil
}

// ParseFileMode is ParseOctalString as an os.FileMode.
func ParseFileMode(s string) (os.FileMode, error) {
	perm, err := ParseOctalString(s)
	if err != nil {
		return DefaultOutputPerms, err
	}
	return os.FileMode(perm), nil
}

// FormatOctal formats a permission value as an octal string
func FormatOctal(perm uint16) string {
	return fmt.Sprintf("0%o", perm)
}

// IsOwnerWritable checks the owner write bit
func IsOwnerWritable(perm uint16) bool {
	return perm&0o200 != 0
}
