package pkg

import (
	"errors"

	asseterrors "github.com/provide-io/flavor/go/assetgen/pkg/asset/errors"
)

var (
	// Input errors 🧱
	ErrMalformedInput     = asseterrors.ErrMalformedInput
	ErrDimensionsNotFound = asseterrors.ErrDimensionsNotFound
	ErrEmptyInput         = asseterrors.ErrEmptyInput
	ErrInvalidIcon        = asseterrors.ErrInvalidIcon

	// Configuration errors ⚙️
	ErrInvalidName      = asseterrors.ErrInvalidName
	ErrUnknownKind      = asseterrors.ErrUnknownKind
	ErrUnknownTransform = asseterrors.ErrUnknownTransform
	ErrUnknownPreset    = asseterrors.ErrUnknownPreset
	ErrInvalidManifest  = asseterrors.ErrInvalidManifest

	// Verification errors 🔍
	ErrStaleOutput        = asseterrors.ErrStaleOutput
	ErrVerificationFailed = errors.New("❌ generated sources verification failed")
)

// AssetError is the failure type every compile error is reported as.
type AssetError = asseterrors.AssetError
