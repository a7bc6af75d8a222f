package compress

import (
	"bytes"
	"errors"
	"testing"

	"github.com/hashicorp/go-hclog"

	asseterrors "github.com/provide-io/flavor/go/assetgen/pkg/asset/errors"
	"github.com/provide-io/flavor/go/assetgen/pkg/asset/transform"
)

// TestChainRoundTrip checks every chain reverses to its input
func TestChainRoundTrip(t *testing.T) {
	logger := hclog.New(&hclog.LoggerOptions{
		Name:  "compress_test",
		Level: hclog.Trace,
	})

	payload := bytes.Repeat([]byte("<html><body>assetgen</body></html>\n"), 64)

	testCases := []struct {
		name string
		spec string
		ops  int
	}{
		{name: "raw", spec: "raw", ops: 0},
		{name: "empty", spec: "", ops: 0},
		{name: "gzip", spec: "gzip", ops: 1},
		{name: "bzip2", spec: "BZIP2", ops: 1},
		{name: "bzip2 then gzip", spec: "bzip2 | gzip", ops: 2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			chain, err := transform.Parse(tc.spec)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tc.spec, err)
			}
			if len(chain) != tc.ops {
				t.Fatalf("Parse(%q) = %d operations, want %d", tc.spec, len(chain), tc.ops)
			}

			packed, err := chain.Apply(payload)
			if err != nil {
				t.Fatalf("Apply() error = %v", err)
			}
			logger.Debug("📦 Applied chain", "chain", chain.String(), "in", len(payload), "out", len(packed))

			again, err := chain.Apply(payload)
			if err != nil {
				t.Fatalf("second Apply() error = %v", err)
			}
			if !bytes.Equal(packed, again) {
				t.Errorf("Apply() is not deterministic for %s", chain)
			}

			unpacked, err := chain.Reverse(packed)
			if err != nil {
				t.Fatalf("Reverse() error = %v", err)
			}
			if !bytes.Equal(unpacked, payload) {
				t.Errorf("Reverse(Apply(x)) != x for %s", chain)
			}

			logger.Info("✅ Test passed", "test", tc.name)
		})
	}
}

func TestParseUnknown(t *testing.T) {
	_, err := transform.Parse("gzip|zstd")
	if !errors.Is(err, asseterrors.ErrUnknownTransform) {
		t.Errorf("Parse() error = %v, want ErrUnknownTransform", err)
	}
}

func TestRegistered(t *testing.T) {
	names := transform.Names()
	if len(names) != 2 || names[0] != "bzip2" || names[1] != "gzip" {
		t.Errorf("Names() = %v, want [bzip2 gzip]", names)
	}

	op, err := transform.Get("gzip")
	if err != nil {
		t.Fatalf("Get(gzip) error = %v", err)
	}
	if op.ID() != transform.OpGzip {
		t.Errorf("gzip ID = 0x%02x, want 0x%02x", op.ID(), transform.OpGzip)
	}

	var chain transform.Chain
	if chain.String() != "raw" {
		t.Errorf("empty chain String() = %q, want raw", chain.String())
	}
}
