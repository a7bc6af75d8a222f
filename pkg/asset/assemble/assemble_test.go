package assemble

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provide-io/flavor/go/assetgen/pkg/asset/literal"
)

const fragment = "const size_t US_X_ICO_DATA_SIZE = 1;\nconst uint8_t US_X_ICO_DATA[] = {\n\t0x00,\n};\n"

func TestAssembleC(t *testing.T) {
	a := &Assembler{
		License: "uStreamer - Lightweight and fast MJPEG-HTTP streamer.\n\nCopyright (C) 2018-2023",
		Target:  literal.TargetC,
	}

	expected := "/*\n" +
		"    uStreamer - Lightweight and fast MJPEG-HTTP streamer.\n" +
		"\n" +
		"    Copyright (C) 2018-2023\n" +
		"*/\n" +
		"\n" +
		"#include \"favicon_ico.h\"\n" +
		"\n" +
		"\n" +
		fragment
	assert.Equal(t, expected, a.Assemble(fragment, "favicon_ico.h", "sha256:abc"))
}

func TestAssembleCStampAndBare(t *testing.T) {
	a := &Assembler{Target: literal.TargetC, Stamp: true}
	assert.Equal(t,
		"/* source sha256:abc */\n#include \"x.h\"\n\n\n"+fragment,
		a.Assemble(fragment, "x.h", "sha256:abc"))
	assert.Equal(t,
		"/* source sha256:abc */\n\n"+fragment,
		a.Assemble(fragment, "", "sha256:abc"))

	bare := &Assembler{Target: literal.TargetC}
	assert.Equal(t, fragment, bare.Assemble(fragment, "", "sha256:abc"))
}

func TestAssembleGo(t *testing.T) {
	a := &Assembler{
		License: "Copyright (C) 2018-2023\n\nGPLv3",
		Target:  literal.TargetGo,
		Package: "webui",
		Stamp:   true,
	}
	body := "var BlankJPEGData = []byte{\n\t0x01,\n}\n"

	expected := GeneratedMarker + "\n" +
		"// source sha256:abc\n" +
		"\n" +
		"// Copyright (C) 2018-2023\n" +
		"//\n" +
		"// GPLv3\n" +
		"\n" +
		"package webui\n" +
		"\n" +
		body
	assert.Equal(t, expected, a.Assemble(body, "ignored.h", "sha256:abc"))

	plain := &Assembler{Target: literal.TargetGo}
	assert.Equal(t, GeneratedMarker+"\n\npackage assets\n\n"+body, plain.Assemble(body, "", ""))
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "blank_jpeg.c")

	a := &Assembler{
		Target: literal.TargetC,
		Mode:   0o640,
		Logger: hclog.New(&hclog.LoggerOptions{Name: "assemble_test", Level: hclog.Trace}),
	}

	require.NoError(t, a.WriteFile(path, "first\n"))
	require.NoError(t, a.WriteFile(path, "second\n"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second\n", string(data))

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file left behind")

	assert.True(t, Unchanged(path, "second\n"))
	assert.False(t, Unchanged(path, "first\n"))
	assert.False(t, Unchanged(filepath.Join(dir, "missing.c"), ""))

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o640), info.Mode().Perm())
	}
}

func TestWriteFileReadOnlyMode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("MoveFileEx refuses to replace a read-only file")
	}

	var logs bytes.Buffer
	a := &Assembler{
		Target: literal.TargetC,
		Mode:   0o444,
		Logger: hclog.New(&hclog.LoggerOptions{Name: "assemble_test", Level: hclog.Debug, Output: &logs}),
	}

	path := filepath.Join(t.TempDir(), "favicon_ico.c")
	require.NoError(t, a.WriteFile(path, "first\n"))
	require.NoError(t, a.WriteFile(path, "second\n"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o444), info.Mode().Perm())
	assert.Contains(t, logs.String(), "mode=0444")
	assert.Contains(t, logs.String(), "Output is read-only for its owner")
}

func TestWriteFileFailureKeepsOriginal(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("directory permissions behave differently on Windows")
	}
	if os.Geteuid() == 0 {
		t.Skip("root ignores directory permissions")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "out.c")
	a := &Assembler{Target: literal.TargetC}
	require.NoError(t, a.WriteFile(path, "original\n"))

	require.NoError(t, os.Chmod(dir, 0o555))
	t.Cleanup(func() { os.Chmod(dir, 0o755) })

	assert.Error(t, a.WriteFile(path, "replacement\n"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "original\n", string(data))
}
