package html

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	asseterrors "github.com/provide-io/flavor/go/assetgen/pkg/asset/errors"
	"github.com/provide-io/flavor/go/assetgen/pkg/asset/literal"
)

func preset(t *testing.T, name string) literal.Preset {
	t.Helper()
	p, err := literal.LookupPreset(name)
	require.NoError(t, err)
	return p
}

const page = `

<!DOCTYPE html>
<html>
<head><title>uStreamer</title></head>

<body class="main">v%VERSION%</body>
</html>
`

func TestEncodeC(t *testing.T) {
	enc := NewEncoder(preset(t, literal.PresetUStreamer), DefaultOptions())

	out, err := enc.Encode("INDEX", page)
	require.NoError(t, err)

	expected := "const char *const US_HTML_INDEX_PAGE = \" \\\n" +
		"\t<!DOCTYPE html> \\\n" +
		"\t<html> \\\n" +
		"\t<head><title>uStreamer</title></head> \\\n" +
		"\t\\\n" +
		"\t<body class=\\\"main\\\">v\" US_VERSION \"</body> \\\n" +
		"\t</html> \\\n" +
		"\";\n"
	assert.Equal(t, expected, out)
}

func TestEncodeLineEndings(t *testing.T) {
	enc := NewEncoder(preset(t, literal.PresetUStreamer), DefaultOptions())

	expected := "const char *const US_HTML_INDEX_PAGE = \" \\\n" +
		"\t<p> \\\n" +
		"\t\\\n" +
		"\t<b> \\\n" +
		"\";\n"

	for name, text := range map[string]string{
		"lf":   "<p>\n\n<b>\n",
		"crlf": "<p>\r\n\r\n<b>\r\n",
		"cr":   "<p>\r\r<b>\r",
	} {
		t.Run(name, func(t *testing.T) {
			out, err := enc.Encode("INDEX", text)
			require.NoError(t, err)
			assert.NotContains(t, out, "\r")
			assert.Equal(t, expected, out)
		})
	}

	goEnc := NewEncoder(preset(t, literal.PresetGo), DefaultOptions())
	out, err := goEnc.Encode("index", "<p>\r\n<b>\r\n")
	require.NoError(t, err)
	assert.Equal(t, "const IndexHTMLPage = \"<p>\\n<b>\"\n", out)
}

func TestEncodeRejectsInvalidGoSymbol(t *testing.T) {
	enc := NewEncoder(preset(t, literal.PresetGo), DefaultOptions())
	_, err := enc.Encode("404", "<p>missing</p>")
	assert.ErrorIs(t, err, asseterrors.ErrInvalidName)

	out, err := NewEncoder(preset(t, literal.PresetLegacy), DefaultOptions()).Encode("404", "<p>missing</p>")
	require.NoError(t, err)
	assert.Contains(t, out, "HTML_404_PAGE")
}

func TestEncodeGo(t *testing.T) {
	enc := NewEncoder(preset(t, literal.PresetGo), DefaultOptions())

	out, err := enc.Encode("index", page)
	require.NoError(t, err)
	assert.Equal(t,
		"var IndexHTMLPage = \"<!DOCTYPE html>\\n<html>\\n<head><title>uStreamer</title></head>\\n\\n<body class=\\\"main\\\">v\" + US_VERSION + \"</body>\\n</html>\"\n",
		out)

	out, err = enc.Encode("plain", "<p>hi</p>")
	require.NoError(t, err)
	assert.Equal(t, "const PlainHTMLPage = \"<p>hi</p>\"\n", out)
}

func TestEncodeMacros(t *testing.T) {
	enc := NewEncoder(preset(t, literal.PresetCanonical), Options{
		Macros: map[string]string{"VERSION": "APP_VERSION", "NAME": "APP_NAME"},
	})

	out, err := enc.Encode("ABOUT", "%NAME% %VERSION%")
	require.NoError(t, err)
	assert.Equal(t, "const char *const US_HTML_ABOUT_PAGE = \" \\\n\" APP_NAME \" \" APP_VERSION \" \\\n\";\n", out)
}

func TestEncodeErrors(t *testing.T) {
	enc := NewEncoder(preset(t, literal.PresetCanonical), DefaultOptions())

	_, err := enc.Encode("BLANK", " \n\t\n")
	assert.ErrorIs(t, err, asseterrors.ErrEmptyInput)

	_, err = enc.Encode("bad-name", "<p></p>")
	assert.ErrorIs(t, err, asseterrors.ErrInvalidName)
}
