package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestWrap(t *testing.T) {
	if Wrap("a.jpg", "scan", nil) != nil {
		t.Fatal("Wrap(nil) should stay nil")
	}

	err := Wrap("a.jpg", "scan", fmt.Errorf("%w: segment overruns stream", ErrMalformedInput))
	if got, want := err.Error(), "a.jpg: scan: ❌ malformed input: segment overruns stream"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, ErrMalformedInput) {
		t.Error("errors.Is lost the sentinel")
	}

	outer := Wrap("other.c", "write", err)
	var ae *AssetError
	if !errors.As(outer, &ae) || ae.Path != "a.jpg" || ae.Op != "scan" {
		t.Errorf("Wrap replaced an existing AssetError: %v", outer)
	}

	bare := &AssetError{Path: "b.ico", Err: ErrInvalidIcon}
	if got, want := bare.Error(), "b.ico: ❌ invalid ico container"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
