package compiler

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	stdjpeg "image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	asseterrors "github.com/provide-io/flavor/go/assetgen/pkg/asset/errors"
	"github.com/provide-io/flavor/go/assetgen/pkg/asset/html"
	"github.com/provide-io/flavor/go/assetgen/pkg/asset/literal"
	"github.com/provide-io/flavor/go/assetgen/pkg/asset/transform"
)

func testLogger() hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:  "compiler_test",
		Level: hclog.Trace,
	})
}

func encodeJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	require.NoError(t, stdjpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

// singleICO wraps one PNG image in an ICO container.
func singleICO(t *testing.T, size int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	img.SetNRGBA(0, 0, color.NRGBA{G: 0xFF, A: 0xFF})
	var pngBuf bytes.Buffer
	require.NoError(t, png.Encode(&pngBuf, img))

	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, [3]uint16{0, 1, 1})
	buf.Write([]byte{uint8(size), uint8(size), 0, 0})
	binary.Write(&buf, binary.LittleEndian, [2]uint16{1, 32})
	binary.Write(&buf, binary.LittleEndian, [2]uint32{uint32(pngBuf.Len()), 22})
	buf.Write(pngBuf.Bytes())
	return buf.Bytes()
}

func newCompiler(t *testing.T, preset string, chain string) *Compiler {
	t.Helper()
	p, err := literal.LookupPreset(preset)
	require.NoError(t, err)
	c, err := transform.Parse(chain)
	require.NoError(t, err)
	return New(Options{Preset: p, Transform: c, HTML: html.DefaultOptions()}, testLogger())
}

func TestParseKind(t *testing.T) {
	testCases := map[string]Kind{
		"jpeg": KindJPEG,
		"JPG":  KindJPEG,
		".jpg": KindJPEG,
		"ico":  KindICO,
		"html": KindHTML,
		".htm": KindHTML,
		"HTML": KindHTML,
	}
	for in, want := range testCases {
		got, err := ParseKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseKind("png")
	assert.ErrorIs(t, err, asseterrors.ErrUnknownKind)

	k, err := KindFromPath("share/favicon.ico")
	require.NoError(t, err)
	assert.Equal(t, KindICO, k)
	assert.Equal(t, "ICO", k.Tag())

	_, err = KindFromPath("Makefile")
	assert.ErrorIs(t, err, asseterrors.ErrUnknownKind)
}

func TestCompileJPEG(t *testing.T) {
	data := encodeJPEG(t, 64, 48)
	c := newCompiler(t, literal.PresetCanonical, "")

	res, err := c.Compile(RawAsset{Path: "blank.jpg", Name: "BLANK", Kind: KindJPEG, Data: data})
	require.NoError(t, err)

	require.NotNil(t, res.Frame)
	assert.Equal(t, uint16(64), res.Frame.Width)
	assert.Equal(t, uint16(48), res.Frame.Height)
	assert.Equal(t, len(data), res.Size)
	assert.Contains(t, res.Fragment, "const unsigned US_BLANK_JPEG_WIDTH = 64;\n")
	assert.Contains(t, res.Fragment, "const unsigned US_BLANK_JPEG_HEIGHT = 48;\n")
	assert.NotContains(t, res.Fragment, "RAW_SIZE")

	decoded, err := literal.ParseTokens(res.Fragment)
	require.NoError(t, err)
	assert.Equal(t, data, decoded)
}

func TestCompileICO(t *testing.T) {
	data := singleICO(t, 16)
	c := newCompiler(t, literal.PresetUStreamer, "")

	res, err := c.Compile(RawAsset{Path: "favicon.ico", Name: "FAVICON", Kind: KindICO, Data: data})
	require.NoError(t, err)

	require.NotNil(t, res.Icon)
	assert.Len(t, res.Icon.Images, 1)
	assert.Nil(t, res.Frame)
	assert.NotContains(t, res.Fragment, "WIDTH")
	assert.True(t, strings.HasPrefix(res.Fragment, "const size_t US_FAVICON_ICO_DATA_SIZE = "), res.Fragment)
}

func TestCompileTransformed(t *testing.T) {
	data := encodeJPEG(t, 32, 32)
	c := newCompiler(t, literal.PresetCanonical, "gzip")

	res, err := c.Compile(RawAsset{Path: "x.jpg", Name: "X", Kind: KindJPEG, Data: data})
	require.NoError(t, err)

	assert.Equal(t, len(data), res.RawSize)
	assert.Contains(t, res.Fragment, "US_X_JPEG_DATA_RAW_SIZE = ")
	assert.Contains(t, res.Fragment, "const unsigned US_X_JPEG_WIDTH = 32;\n")

	payload, err := literal.ParseTokens(res.Fragment)
	require.NoError(t, err)
	assert.Equal(t, res.Size, len(payload))

	chain, err := transform.Parse("gzip")
	require.NoError(t, err)
	restored, err := chain.Reverse(payload)
	require.NoError(t, err)
	assert.Equal(t, data, restored)
}

func TestCompileHTML(t *testing.T) {
	c := newCompiler(t, literal.PresetUStreamer, "")

	res, err := c.Compile(RawAsset{Path: "index.html", Name: "INDEX", Kind: KindHTML, Data: []byte("<p>%VERSION%</p>\n")})
	require.NoError(t, err)
	assert.Equal(t, "const char *const US_HTML_INDEX_PAGE = \" \\\n\t<p>\" US_VERSION \"</p> \\\n\";\n", res.Fragment)

	_, err = newCompiler(t, literal.PresetUStreamer, "gzip").
		Compile(RawAsset{Path: "index.html", Name: "INDEX", Kind: KindHTML, Data: []byte("<p></p>")})
	assert.ErrorIs(t, err, asseterrors.ErrUnknownTransform)
}

func TestCompileErrorsCarryPath(t *testing.T) {
	c := newCompiler(t, literal.PresetCanonical, "")

	testCases := []struct {
		name     string
		asset    RawAsset
		expected error
		op       string
	}{
		{
			name:     "empty jpeg",
			asset:    RawAsset{Path: "a.jpg", Name: "A", Kind: KindJPEG},
			expected: asseterrors.ErrEmptyInput,
			op:       "scan",
		},
		{
			name:     "truncated jpeg",
			asset:    RawAsset{Path: "b.jpg", Name: "B", Kind: KindJPEG, Data: []byte{0xFF, 0xD8, 0xFF}},
			expected: asseterrors.ErrMalformedInput,
			op:       "scan",
		},
		{
			name:     "jpeg without frame",
			asset:    RawAsset{Path: "c.jpg", Name: "C", Kind: KindJPEG, Data: []byte{0xFF, 0xD8, 0xFF, 0xD9}},
			expected: asseterrors.ErrDimensionsNotFound,
			op:       "scan",
		},
		{
			name:     "bad name",
			asset:    RawAsset{Path: "d.jpg", Name: "bad-name", Kind: KindJPEG, Data: encodeJPEG(t, 1, 1)},
			expected: asseterrors.ErrInvalidName,
			op:       "encode",
		},
		{
			name:     "not an icon",
			asset:    RawAsset{Path: "e.ico", Name: "E", Kind: KindICO, Data: []byte("GIF89a")},
			expected: asseterrors.ErrInvalidIcon,
			op:       "validate",
		},
		{
			name:     "unknown kind",
			asset:    RawAsset{Path: "f.bin", Name: "F", Data: []byte{1}},
			expected: asseterrors.ErrUnknownKind,
			op:       "dispatch",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := c.Compile(tc.asset)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.expected)

			var ae *asseterrors.AssetError
			require.ErrorAs(t, err, &ae)
			assert.Equal(t, tc.asset.Path, ae.Path)
			assert.Equal(t, tc.op, ae.Op)
		})
	}
}
