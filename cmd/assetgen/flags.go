package main

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/provide-io/flavor/go/assetgen/pkg/asset/literal"
	"github.com/provide-io/flavor/go/assetgen/pkg/asset/transform"
)

// presetValue is a --preset flag that only accepts known presets.
type presetValue struct {
	name string
}

var _ pflag.Value = (*presetValue)(nil)

func (p *presetValue) String() string {
	return p.name
}

func (p *presetValue) Set(s string) error {
	if _, err := literal.LookupPreset(s); err != nil {
		return err
	}
	p.name = s
	return nil
}

func (p *presetValue) Type() string {
	return "preset"
}

// transformValue is a --transform flag such as "gzip" or "bzip2|gzip".
type transformValue struct {
	chain transform.Chain
}

var _ pflag.Value = (*transformValue)(nil)

func (t *transformValue) String() string {
	if len(t.chain) == 0 {
		return ""
	}
	return t.chain.String()
}

func (t *transformValue) Set(s string) error {
	chain, err := transform.Parse(s)
	if err != nil {
		return err
	}
	t.chain = chain
	return nil
}

func (t *transformValue) Type() string {
	return "transform"
}

// normalizeFlagName lets --log_level and --log-level mean the same flag.
func normalizeFlagName(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

func presetUsage() string {
	return fmt.Sprintf("Output preset (%s)", strings.Join(literal.PresetNames(), ", "))
}

func transformUsage() string {
	return fmt.Sprintf("Payload transform: raw or a |-separated chain of %s", strings.Join(transform.Names(), ", "))
}
