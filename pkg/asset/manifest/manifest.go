// Package manifest loads and validates batch build descriptions.
package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/provide-io/flavor/go/assetgen/internal/workspace"
	"github.com/provide-io/flavor/go/assetgen/pkg/asset/checksum"
	"github.com/provide-io/flavor/go/assetgen/pkg/asset/compiler"
	asseterrors "github.com/provide-io/flavor/go/assetgen/pkg/asset/errors"
	"github.com/provide-io/flavor/go/assetgen/pkg/asset/html"
	"github.com/provide-io/flavor/go/assetgen/pkg/asset/literal"
	"github.com/provide-io/flavor/go/assetgen/pkg/asset/transform"
	"github.com/provide-io/flavor/go/assetgen/pkg/utils/permissions"
)

// Plan is a validated manifest with every path resolved and every
// setting parsed.
type Plan struct {
	Preset   literal.Preset
	License  string
	Package  string
	HTML     html.Options
	Mode     os.FileMode
	Jobs     int
	Stamp    bool
	Checksum checksum.Algorithm
	Entries  []Entry
}

// Entry is one asset ready to compile.
type Entry struct {
	Kind      compiler.Kind
	Source    string
	Output    string
	Name      string
	Transform transform.Chain
}

// Load reads and parses the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return Parse(data)
}

// Parse decodes a manifest. Unknown fields are rejected so typos do not
// silently fall back to defaults.
func Parse(data []byte) (*Manifest, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var m Manifest
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("%w: %v", asseterrors.ErrInvalidManifest, err)
	}
	return &m, nil
}

// LoadPlan loads the manifest at path and resolves it against its own
// directory, or ASSETGEN_BASE_DIR when set.
func LoadPlan(path string) (*Plan, error) {
	m, err := Load(path)
	if err != nil {
		return nil, err
	}
	return m.Plan(workspace.BaseDir(filepath.Dir(path)))
}

// Plan validates m and resolves relative paths against baseDir. Every
// problem found is reported, joined into one error.
func (m *Manifest) Plan(baseDir string) (*Plan, error) {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", asseterrors.ErrInvalidManifest, fmt.Sprintf(format, args...)))
	}
	// wrapped keeps cause reachable through errors.Is.
	wrapped := func(cause error, format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s: %w", asseterrors.ErrInvalidManifest, fmt.Sprintf(format, args...), cause))
	}

	plan := &Plan{
		Package: m.Package,
		Jobs:    m.Jobs,
		Stamp:   m.Stamp,
		HTML:    html.DefaultOptions(),
	}

	presetName := m.Preset
	if presetName == "" {
		presetName = literal.PresetCanonical
	}
	preset, err := literal.LookupPreset(presetName)
	if err != nil {
		wrapped(err, "preset")
	}
	plan.Preset = preset
	if m.Package != "" && !token.IsIdentifier(m.Package) {
		invalid("package %q is not a Go identifier", m.Package)
	}

	switch {
	case m.License != "" && m.LicenseFile != "":
		invalid("license and license_file are mutually exclusive")
	case m.LicenseFile != "":
		text, err := os.ReadFile(workspace.Resolve(baseDir, m.LicenseFile))
		if err != nil {
			wrapped(err, "license_file")
		}
		plan.License = string(text)
	default:
		plan.License = m.License
	}

	if m.Macros != nil {
		plan.HTML.Macros = m.Macros
	}
	for key, sym := range plan.HTML.Macros {
		if err := literal.ValidateName(key); err != nil {
			wrapped(err, "macro placeholder")
		}
		if err := literal.ValidateName(sym); err != nil {
			wrapped(err, "macro %s", key)
		}
	}

	mode, err := permissions.ParseFileMode(m.Mode)
	if err != nil {
		wrapped(err, "mode")
	}
	plan.Mode = mode

	if m.Jobs < 0 {
		invalid("jobs must not be negative, got %d", m.Jobs)
	}

	algo, err := checksum.ParseAlgorithm(m.Checksum)
	if err != nil {
		wrapped(err, "checksum")
	}
	plan.Checksum = algo

	defaultChain, err := transform.Parse(m.Transform)
	if err != nil {
		wrapped(err, "transform")
	}

	if len(m.Assets) == 0 {
		invalid("no assets listed")
	}

	outputs := make(map[string]int)
	symbols := make(map[string]int)
	for i, a := range m.Assets {
		entry, entryErrs := resolveEntry(a, baseDir, defaultChain)
		for _, err := range entryErrs {
			wrapped(err, "assets[%d]", i)
		}
		if len(entryErrs) > 0 {
			continue
		}

		if prev, dup := outputs[entry.Output]; dup {
			invalid("assets[%d]: output %s is also written by assets[%d]", i, a.Output, prev)
		}
		outputs[entry.Output] = i

		// Symbols are unique per kind; two assets with one name would
		// collide when linked into the same program.
		key := entry.Kind.Tag() + "/" + entry.Name
		if prev, dup := symbols[key]; dup {
			invalid("assets[%d]: %s name %s is also used by assets[%d]", i, entry.Kind, entry.Name, prev)
		}
		symbols[key] = i

		plan.Entries = append(plan.Entries, entry)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return plan, nil
}

func resolveEntry(a Asset, baseDir string, defaultChain transform.Chain) (Entry, []error) {
	var errs []error
	entry := Entry{Transform: defaultChain}

	if a.Source == "" {
		errs = append(errs, errors.New("source is required"))
	}
	if a.Output == "" {
		errs = append(errs, errors.New("output is required"))
	}
	entry.Source = workspace.Resolve(baseDir, a.Source)
	entry.Output = workspace.Resolve(baseDir, a.Output)

	var err error
	if a.Kind != "" {
		entry.Kind, err = compiler.ParseKind(a.Kind)
	} else if a.Source != "" {
		entry.Kind, err = compiler.KindFromPath(a.Source)
	}
	if err != nil {
		errs = append(errs, err)
	}

	entry.Name = a.Name
	if entry.Name == "" && a.Source != "" {
		entry.Name = DeriveName(a.Source)
	}
	if err := literal.ValidateName(entry.Name); err != nil {
		errs = append(errs, err)
	}

	if a.Transform != "" {
		chain, err := transform.Parse(a.Transform)
		if err != nil {
			errs = append(errs, err)
		}
		entry.Transform = chain
	}
	// The manifest default applies to binary kinds only.
	if entry.Kind == compiler.KindHTML {
		if a.Transform != "" && len(entry.Transform) > 0 {
			errs = append(errs, fmt.Errorf("%w: html pages cannot be transformed", asseterrors.ErrUnknownTransform))
		}
		entry.Transform = nil
	}

	return entry, errs
}

// DeriveName turns a file name into a symbol fragment: data/blank-640.jpg
// becomes BLANK_640.
func DeriveName(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	var b strings.Builder
	for _, r := range base {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(unicode.ToUpper(r))
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
