// Package literal renders binary payloads as compilable byte-array
// declarations with size and dimension constants.
//
// Output is a pure function of the input, the Format and the NamingScheme:
// encoding the same asset twice yields byte-identical text, so generated
// files stay reproducible and diff cleanly.
package literal

import (
	"fmt"
	"strconv"
	"strings"

	asseterrors "github.com/provide-io/flavor/go/assetgen/pkg/asset/errors"
)

// Dimensions is the optional pixel size emitted as WIDTH and HEIGHT.
type Dimensions struct {
	Width  uint
	Height uint
}

// Input is one asset to encode.
type Input struct {
	Name       string
	Data       []byte
	Dimensions *Dimensions
	// RawSize, when positive, is emitted as RAW_SIZE: the payload length
	// before a transform such as gzip.
	RawSize int
}

// Encoder renders declarations for assets.
type Encoder struct {
	Format Format
	Naming NamingScheme
}

// NewEncoder builds an Encoder from a preset for the given kind tag.
func NewEncoder(p Preset, kind string) *Encoder {
	return &Encoder{Format: p.Format, Naming: p.Naming(kind)}
}

// Encode returns the declarations for in: dimension constants first, then
// the raw size and size, then the data array.
func (e *Encoder) Encode(in Input) (string, error) {
	if len(in.Data) == 0 {
		return "", fmt.Errorf("%w: asset %q has no bytes", asseterrors.ErrEmptyInput, in.Name)
	}
	if err := ValidateName(in.Name); err != nil {
		return "", err
	}

	symbol := func(role Role) (string, error) {
		sym := e.Naming(in.Name, role)
		if err := ValidateSymbol(sym, e.Format.Target); err != nil {
			return "", err
		}
		return sym, nil
	}

	var b strings.Builder

	if in.Dimensions != nil {
		for _, d := range []struct {
			role  Role
			value uint
		}{
			{RoleWidth, in.Dimensions.Width},
			{RoleHeight, in.Dimensions.Height},
		} {
			sym, err := symbol(d.role)
			if err != nil {
				return "", err
			}
			b.WriteString(e.declareConst(e.Format.DimType, sym, uint64(d.value)))
		}
		b.WriteString("\n")
	}

	if in.RawSize > 0 {
		sym, err := symbol(RoleRawSize)
		if err != nil {
			return "", err
		}
		b.WriteString(e.declareConst(e.Format.SizeType, sym, uint64(in.RawSize)))
	}

	sizeSym, err := symbol(RoleSize)
	if err != nil {
		return "", err
	}
	b.WriteString(e.declareConst(e.Format.SizeType, sizeSym, uint64(len(in.Data))))
	if e.Format.SpaceBeforeData {
		b.WriteString("\n")
	}

	dataSym, err := symbol(RoleData)
	if err != nil {
		return "", err
	}
	b.WriteString(e.declareArray(dataSym, RenderArray(in.Data, e.Format)))

	return b.String(), nil
}

func (e *Encoder) declareConst(ctype, sym string, value uint64) string {
	if e.Format.Target == TargetGo {
		return fmt.Sprintf("const %s = %d\n", sym, value)
	}
	return fmt.Sprintf("const %s %s = %d;\n", ctype, sym, value)
}

func (e *Encoder) declareArray(sym, body string) string {
	if e.Format.Target == TargetGo {
		return fmt.Sprintf("var %s = []byte%s\n", sym, body)
	}
	return fmt.Sprintf("const %s %s[] = %s;\n", e.Format.ByteType, sym, body)
}

// Token spells one byte.
func Token(v byte, style TokenStyle) string {
	if style == TokenHexShort {
		return "0x" + strconv.FormatUint(uint64(v), 16)
	}
	return fmt.Sprintf("0x%02X", v)
}

// Rows splits data into rows of at most f.RowWidth tokens.
func Rows(data []byte, f Format) [][]string {
	width := f.RowWidth
	if width <= 0 {
		width = max(len(data), 1)
	}
	rows := make([][]string, 0, (len(data)+width-1)/width)
	for start := 0; start < len(data); start += width {
		end := min(start+width, len(data))
		row := make([]string, 0, end-start)
		for _, v := range data[start:end] {
			row = append(row, Token(v, f.Token))
		}
		rows = append(rows, row)
	}
	return rows
}

// RenderArray renders the aggregate initializer, braces included.
func RenderArray(data []byte, f Format) string {
	rows := Rows(data, f)
	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = strings.Join(row, ", ")
	}

	var b strings.Builder
	b.WriteString("{\n")
	b.WriteString(f.Indent)
	b.WriteString(strings.Join(lines, ",\n"+f.Indent))
	if f.TrailingComma || f.Target == TargetGo {
		b.WriteString(",")
	}
	b.WriteString("\n}")
	return b.String()
}

// ParseTokens reads back the bytes of the first initializer in text.
func ParseTokens(text string) ([]byte, error) {
	open := strings.Index(text, "{")
	if open < 0 {
		return nil, fmt.Errorf("%w: no initializer found", asseterrors.ErrMalformedInput)
	}
	end := strings.Index(text[open:], "}")
	if end < 0 {
		return nil, fmt.Errorf("%w: unterminated initializer", asseterrors.ErrMalformedInput)
	}

	var out []byte
	for _, tok := range strings.Split(text[open+1:open+end], ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		v, err := strconv.ParseUint(tok, 0, 8)
		if err != nil {
			return nil, fmt.Errorf("%w: token %q: %v", asseterrors.ErrMalformedInput, tok, err)
		}
		out = append(out, byte(v))
	}
	return out, nil
}
