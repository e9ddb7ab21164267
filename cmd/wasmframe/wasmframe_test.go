package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDoDumpEmptyModule(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.wasm")
	require.NoError(t, os.WriteFile(path, []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}, 0o644))

	var stdout, stderr bytes.Buffer
	rc := doMain(&stdout, &stderr, []string{"dump", path})
	require.Equal(t, 0, rc)
	require.Contains(t, stdout.String(), "header: version=1")
}

func TestDoDumpMissingFile(t *testing.T) {
	var stdout, stderr bytes.Buffer
	rc := doMain(&stdout, &stderr, []string{"dump", "/does/not/exist.wasm"})
	require.Equal(t, 1, rc)
	require.Contains(t, stderr.String(), "error reading wasm binary")
}

func TestDoMainNoCommandPrintsUsage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	rc := doMain(&stdout, &stderr, nil)
	require.Equal(t, 0, rc)
	require.Contains(t, stderr.String(), "wasmframe CLI")
}
