package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveLevel(t *testing.T) {
	testCases := []struct {
		name     string
		cli      string
		env      string
		jsonEnv  string
		expected Config
	}{
		{"default", "", "", "", Config{Level: "info", Source: "default"}},
		{"env", "", "debug", "", Config{Level: "debug", Source: EnvLogLevel}},
		{"cli wins", "trace", "debug", "", Config{Level: "trace", Source: "CLI --log-level"}},
		{"json prefix", "json:warn", "", "", Config{Level: "warn", Source: "CLI --log-level", JSON: true}},
		{"bare json", "", "json", "", Config{Level: "info", Source: EnvLogLevel, JSON: true}},
		{"json env", "error", "", "1", Config{Level: "error", Source: "CLI --log-level", JSON: true}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(EnvLogLevel, tc.env)
			t.Setenv(EnvJSONLog, tc.jsonEnv)
			assert.Equal(t, tc.expected, ResolveLevel(tc.cli))
		})
	}
}

func TestNewLoggerText(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("assetgen", Config{Level: "debug"}, &buf)

	logger.Debug("compiled", "path", "blank.jpg")
	logger.Trace("hidden")

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, LinePrefix), out)
	assert.Contains(t, out, "assetgen: compiled: path=blank.jpg")
	assert.NotContains(t, out, "hidden")
	assert.NotContains(t, out, "\x1b[", "colour written to a non-terminal")
}

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("assetgen", Config{Level: "info", JSON: true}, &buf)
	logger.Info("built", "assets", 3)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "built", entry["@message"])
	assert.Equal(t, "assetgen", entry["@module"])
	assert.EqualValues(t, 3, entry["assets"])
}

func TestPrefixWriter(t *testing.T) {
	var buf bytes.Buffer
	pw := NewPrefixWriter("> ", &buf)

	n, err := pw.Write([]byte("one\ntw"))
	require.NoError(t, err)
	assert.Equal(t, 6, n)
	assert.Equal(t, "> one\n", buf.String())

	_, err = pw.Write([]byte("o\nthree"))
	require.NoError(t, err)
	assert.Equal(t, "> one\n> two\n", buf.String())

	require.NoError(t, pw.Flush())
	assert.Equal(t, "> one\n> two\n> three\n", buf.String())
	require.NoError(t, pw.Flush())
	assert.Equal(t, "> one\n> two\n> three\n", buf.String())
}

func TestPrefixWriterConcurrent(t *testing.T) {
	var buf bytes.Buffer
	logger := hclog.New(&hclog.LoggerOptions{
		Output: NewPrefixWriter(LinePrefix, &buf),
		Level:  hclog.Info,
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				logger.Info("tick", "worker", worker)
			}
		}(i)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 400)
	for _, line := range lines {
		assert.True(t, strings.HasPrefix(line, LinePrefix), line)
	}
}
