package literal

import (
	"fmt"
	"go/token"
	"regexp"
	"strings"

	asseterrors "github.com/provide-io/flavor/go/assetgen/pkg/asset/errors"
)

// Role identifies which declaration of an asset a symbol names.
type Role int

const (
	RoleData Role = iota
	RoleSize
	RoleWidth
	RoleHeight
	RoleRawSize // payload size before a transform
	RolePage    // HTML text constant
)

func (r Role) String() string {
	switch r {
	case RoleData:
		return "DATA"
	case RoleSize:
		return "SIZE"
	case RoleWidth:
		return "WIDTH"
	case RoleHeight:
		return "HEIGHT"
	case RoleRawSize:
		return "RAW_SIZE"
	case RolePage:
		return "PAGE"
	default:
		return fmt.Sprintf("ROLE_%d", int(r))
	}
}

// NamingScheme maps a logical asset name and a role to a symbol. All
// declarations of one asset go through the same scheme, so they agree.
type NamingScheme func(name string, role Role) string

var (
	namePattern    = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
	cSymbolPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// ValidateName checks that name can be spliced into a symbol.
func ValidateName(name string) error {
	if !namePattern.MatchString(name) {
		return fmt.Errorf("%w: %q (letters, digits and underscore only)", asseterrors.ErrInvalidName, name)
	}
	return nil
}

// ValidateSymbol checks that a composed symbol is an identifier in target.
// A scheme without a prefix can put a leading digit first: 404_JPG_SIZE.
func ValidateSymbol(sym string, target Target) error {
	if target == TargetGo {
		if !token.IsIdentifier(sym) {
			return fmt.Errorf("%w: %q is not a Go identifier", asseterrors.ErrInvalidName, sym)
		}
		return nil
	}
	if !cSymbolPattern.MatchString(sym) {
		return fmt.Errorf("%w: %q is not a C identifier", asseterrors.ErrInvalidName, sym)
	}
	return nil
}

// PrefixedScheme produces <prefix>_<name>_<kind>_<role>, with the size
// named DATA_SIZE: US_BLANK_JPEG_WIDTH, US_BLANK_JPEG_DATA_SIZE.
func PrefixedScheme(prefix, kind string) NamingScheme {
	return func(name string, role Role) string {
		var suffix string
		switch role {
		case RoleSize:
			suffix = "DATA_SIZE"
		case RoleRawSize:
			suffix = "DATA_RAW_SIZE"
		default:
			suffix = role.String()
		}
		return join("_", prefix, name, kind, suffix)
	}
}

// LegacyScheme produces <name>_<kind>_<role>: BLANK_JPG_SIZE.
func LegacyScheme(kind string) NamingScheme {
	return func(name string, role Role) string {
		return join("_", name, kind, role.String())
	}
}

// HTMLScheme produces <prefix>_HTML_<name>_PAGE.
func HTMLScheme(prefix string) NamingScheme {
	return func(name string, role Role) string {
		return join("_", prefix, "HTML", name, role.String())
	}
}

// CamelScheme produces exported Go identifiers: blank_image with kind
// JPEG becomes BlankImageJPEGWidth.
func CamelScheme(kind string) NamingScheme {
	return func(name string, role Role) string {
		var b strings.Builder
		b.WriteString(camel(name))
		b.WriteString(kind)
		b.WriteString(camel(strings.ToLower(role.String())))
		return b.String()
	}
}

func camel(s string) string {
	var b strings.Builder
	for _, part := range strings.Split(s, "_") {
		if part == "" {
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}

func join(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
