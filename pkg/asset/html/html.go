// Package html renders a text template as a string constant, splicing
// %NAME% placeholders into references to build-time macros.
package html

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	asseterrors "github.com/provide-io/flavor/go/assetgen/pkg/asset/errors"
	"github.com/provide-io/flavor/go/assetgen/pkg/asset/literal"
)

// Options configures placeholder substitution.
type Options struct {
	// Macros maps a placeholder name to the symbol that replaces it:
	// {"VERSION": "US_VERSION"} turns %VERSION% into US_VERSION.
	Macros map[string]string
	// Indent prefixes every line of C output.
	Indent string
}

// DefaultOptions substitutes %VERSION% with US_VERSION.
func DefaultOptions() Options {
	return Options{
		Macros: map[string]string{"VERSION": "US_VERSION"},
		Indent: "\t",
	}
}

// Encoder renders pages.
type Encoder struct {
	Target  literal.Target
	Naming  literal.NamingScheme
	Options Options
}

// NewEncoder builds an Encoder from a literal preset.
func NewEncoder(p literal.Preset, opts Options) *Encoder {
	return &Encoder{Target: p.Format.Target, Naming: p.HTMLNaming, Options: opts}
}

// Encode renders text, trimmed of surrounding whitespace, as a single
// string declaration. CRLF and lone CR line endings become LF.
func (e *Encoder) Encode(name, text string) (string, error) {
	if err := literal.ValidateName(name); err != nil {
		return "", err
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%w: page %q is blank", asseterrors.ErrEmptyInput, name)
	}

	sym := e.Naming(name, literal.RolePage)
	if err := literal.ValidateSymbol(sym, e.Target); err != nil {
		return "", err
	}
	if e.Target == literal.TargetGo {
		return e.encodeGo(sym, text), nil
	}
	return e.encodeC(sym, text), nil
}

// encodeC writes a backslash-continued C string literal. Only double
// quotes are escaped; everything else is copied through.
func (e *Encoder) encodeC(sym, text string) string {
	text = strings.ReplaceAll(text, `"`, `\"`)
	for _, key := range e.macroKeys() {
		text = strings.ReplaceAll(text, "%"+key+"%", `" `+e.Options.Macros[key]+` "`)
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		line = e.Options.Indent + line
		if strings.TrimSpace(line) != "" {
			lines[i] = line + ` \`
		} else {
			lines[i] = line + `\`
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "const char *const %s = \" \\\n", sym)
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n\";\n")
	return b.String()
}

// encodeGo writes a quoted Go string, concatenated with the macro
// identifiers where placeholders were.
func (e *Encoder) encodeGo(sym, text string) string {
	parts := []string{strconv.Quote(text)}
	for _, key := range e.macroKeys() {
		placeholder := "%" + key + "%"
		var next []string
		for _, part := range parts {
			if !strings.HasPrefix(part, `"`) || !strings.Contains(part, placeholder) {
				next = append(next, part)
				continue
			}
			raw, _ := strconv.Unquote(part)
			for i, piece := range strings.Split(raw, placeholder) {
				if i > 0 {
					next = append(next, e.Options.Macros[key])
				}
				if piece != "" {
					next = append(next, strconv.Quote(piece))
				}
			}
		}
		parts = next
	}

	decl := "const"
	if len(parts) > 1 {
		decl = "var"
	}
	return fmt.Sprintf("%s %s = %s\n", decl, sym, strings.Join(parts, " + "))
}

func (e *Encoder) macroKeys() []string {
	keys := make([]string, 0, len(e.Options.Macros))
	for key := range e.Options.Macros {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
