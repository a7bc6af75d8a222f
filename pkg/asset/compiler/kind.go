package compiler

import (
	"fmt"
	"path/filepath"
	"strings"

	asseterrors "github.com/provide-io/flavor/go/assetgen/pkg/asset/errors"
)

// Kind is the closed set of resource types the compiler understands.
type Kind int

const (
	KindJPEG Kind = iota + 1 // dimensions scanned, bytes embedded
	KindICO                  // bytes embedded after container check
	KindHTML                 // text embedded with placeholder substitution
)

func (k Kind) String() string {
	switch k {
	case KindJPEG:
		return "jpeg"
	case KindICO:
		return "ico"
	case KindHTML:
		return "html"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Tag is the uppercase form spliced into symbol names.
func (k Kind) Tag() string {
	return strings.ToUpper(k.String())
}

// Set implements pflag.Value.
func (k *Kind) Set(s string) error {
	parsed, err := ParseKind(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Type implements pflag.Value.
func (k *Kind) Type() string {
	return "kind"
}

// ParseKind resolves a kind name. jpg and htm are accepted as aliases.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "jpeg", "jpg":
		return KindJPEG, nil
	case "ico":
		return KindICO, nil
	case "html", "htm":
		return KindHTML, nil
	default:
		return 0, fmt.Errorf("%w: %q", asseterrors.ErrUnknownKind, s)
	}
}

// KindFromPath guesses the kind from a file extension.
func KindFromPath(path string) (Kind, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return 0, fmt.Errorf("%w: %s has no extension", asseterrors.ErrUnknownKind, path)
	}
	return ParseKind(ext)
}
