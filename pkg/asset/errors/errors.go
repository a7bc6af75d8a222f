package errors

import (
	"errors"
	"fmt"
)

var (
	// Input errors 🧱
	ErrMalformedInput     = errors.New("❌ malformed input")
	ErrDimensionsNotFound = errors.New("❌ jpeg dimensions not found")
	ErrEmptyInput         = errors.New("❌ empty input")
	ErrInvalidIcon        = errors.New("❌ invalid ico container")

	// Configuration errors ⚙️
	ErrInvalidName      = errors.New("❌ invalid symbol name")
	ErrUnknownKind      = errors.New("❌ unknown resource kind")
	ErrUnknownTransform = errors.New("❌ unknown payload transform")
	ErrUnknownPreset    = errors.New("❌ unknown format preset")
	ErrInvalidManifest  = errors.New("❌ invalid manifest")

	// Output errors 📄
	ErrStaleOutput = errors.New("⚠️ generated file is out of date")
)

// AssetError reports a fatal failure while compiling one resource file.
type AssetError struct {
	Path string // source file
	Op   string // stage that failed: read, scan, encode, write, check
	Err  error
}

func (e *AssetError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Path, e.Op, e.Err)
}

func (e *AssetError) Unwrap() error {
	return e.Err
}

// Wrap attaches path and stage to err. A nil err stays nil, and an err
// that already carries an AssetError is returned unchanged.
func Wrap(path, op string, err error) error {
	if err == nil {
		return nil
	}
	var ae *AssetError
	if errors.As(err, &ae) {
		return err
	}
	return &AssetError{Path: path, Op: op, Err: err}
}
