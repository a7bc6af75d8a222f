package literal

import (
	"fmt"
	"sort"

	asseterrors "github.com/provide-io/flavor/go/assetgen/pkg/asset/errors"
)

// Target is the source language the declarations are written in.
type Target int

const (
	TargetC Target = iota
	TargetGo
)

func (t Target) String() string {
	switch t {
	case TargetC:
		return "c"
	case TargetGo:
		return "go"
	default:
		return fmt.Sprintf("target(%d)", int(t))
	}
}

// TokenStyle selects how one byte is spelled.
type TokenStyle int

const (
	// TokenHexUpper is 0x plus two uppercase digits: 0x0A, 0xFF.
	TokenHexUpper TokenStyle = iota
	// TokenHexShort is the unpadded lowercase form older generated
	// headers carry: 0xa, 0xff.
	TokenHexShort
)

// Format controls the textual layout of the generated declarations.
type Format struct {
	Target   Target
	Token    TokenStyle
	RowWidth int    // tokens per row
	Indent   string // indentation unit for rows

	// TrailingComma ends the last row with a comma. Go output always
	// has one.
	TrailingComma bool
	// SpaceBeforeData puts a blank line between the size and the array.
	SpaceBeforeData bool

	// C type names.
	DimType  string
	SizeType string
	ByteType string
}

const (
	PresetCanonical = "canonical"
	PresetUStreamer = "ustreamer"
	PresetLegacy    = "legacy"
	PresetGo        = "go"
)

// Preset bundles a layout with the naming convention that goes with it.
type Preset struct {
	Name   string
	Format Format
	// Naming returns the scheme for a resource kind tag (JPEG, ICO, ...).
	Naming func(kind string) NamingScheme
	// HTMLNaming names text pages.
	HTMLNaming NamingScheme
}

var presets = map[string]Preset{
	PresetCanonical: {
		Name: PresetCanonical,
		Format: Format{
			Target:   TargetC,
			Token:    TokenHexUpper,
			RowWidth: 21,
			Indent:   "\t",
			DimType:  "unsigned",
			SizeType: "size_t",
			ByteType: "uint8_t",
		},
		Naming:     func(kind string) NamingScheme { return PrefixedScheme("US", kind) },
		HTMLNaming: HTMLScheme("US"),
	},
	PresetUStreamer: {
		Name: PresetUStreamer,
		Format: Format{
			Target:        TargetC,
			Token:         TokenHexUpper,
			RowWidth:      20,
			Indent:        "\t",
			TrailingComma: true,
			DimType:       "unsigned",
			SizeType:      "size_t",
			ByteType:      "uint8_t",
		},
		Naming:     func(kind string) NamingScheme { return PrefixedScheme("US", kind) },
		HTMLNaming: HTMLScheme("US"),
	},
	PresetLegacy: {
		Name: PresetLegacy,
		Format: Format{
			Target:          TargetC,
			Token:           TokenHexShort,
			RowWidth:        21,
			Indent:          "\t",
			SpaceBeforeData: true,
			DimType:         "unsigned",
			SizeType:        "unsigned long",
			ByteType:        "unsigned char",
		},
		Naming: func(kind string) NamingScheme {
			if kind == "JPEG" {
				kind = "JPG"
			}
			return LegacyScheme(kind)
		},
		HTMLNaming: HTMLScheme(""),
	},
	PresetGo: {
		Name: PresetGo,
		Format: Format{
			Target:        TargetGo,
			Token:         TokenHexUpper,
			RowWidth:      21,
			Indent:        "\t",
			TrailingComma: true,
		},
		Naming: CamelScheme,
		HTMLNaming: func(name string, role Role) string {
			return CamelScheme("HTML")(name, role)
		},
	},
}

// LookupPreset returns the named preset.
func LookupPreset(name string) (Preset, error) {
	p, ok := presets[name]
	if !ok {
		return Preset{}, fmt.Errorf("%w: %q (have %v)", asseterrors.ErrUnknownPreset, name, PresetNames())
	}
	return p, nil
}

// PresetNames lists the known presets in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
