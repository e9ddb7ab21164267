package binary

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wasmframe/wasmframe/internal/wasm"
)

func TestDecodeFunctionType(t *testing.T) {
	// (param i32 i64) (result f32)
	c := NewCursor([]byte{0x60, 0x02, 0x7f, 0x7e, 0x01, 0x7d})
	ft, err := decodeFunctionType(c)
	require.NoError(t, err)
	require.Equal(t, wasm.FunctionType{
		Params:  []wasm.ValueType{wasm.ValueTypeI32, wasm.ValueTypeI64},
		Results: []wasm.ValueType{wasm.ValueTypeF32},
	}, ft)
}

func TestDecodeFunctionTypeRejectsBadForm(t *testing.T) {
	c := NewCursor([]byte{0x61, 0x00, 0x00})
	_, err := decodeFunctionType(c)
	require.Error(t, err)
}

func TestDecodeLimitsWithoutMax(t *testing.T) {
	c := NewCursor([]byte{0x00, 0x01})
	lim, err := decodeLimits(c)
	require.NoError(t, err)
	require.Equal(t, wasm.Limits{Min: 1}, lim)
}

func TestDecodeLimitsWithMax(t *testing.T) {
	c := NewCursor([]byte{0x01, 0x01, 0x02})
	lim, err := decodeLimits(c)
	require.NoError(t, err)
	require.NotNil(t, lim.Max)
	require.Equal(t, uint32(1), lim.Min)
	require.Equal(t, uint32(2), *lim.Max)
}

func TestDecodeGlobalType(t *testing.T) {
	c := NewCursor([]byte{0x7f, 0x01})
	gt, err := decodeGlobalType(c)
	require.NoError(t, err)
	require.Equal(t, wasm.GlobalType{ValType: wasm.ValueTypeI32, Mutable: true}, gt)
}

func TestDecodeGlobalTypeRejectsBadMutability(t *testing.T) {
	c := NewCursor([]byte{0x7f, 0x02})
	_, err := decodeGlobalType(c)
	require.Error(t, err)
}

func TestDecodeImportFunc(t *testing.T) {
	// module "a", name "b", func import, type index 1
	c := NewCursor([]byte{0x01, 'a', 0x01, 'b', 0x00, 0x01})
	imp, err := decodeImport(c)
	require.NoError(t, err)
	require.Equal(t, wasm.Import{Module: "a", Name: "b", Kind: wasm.ImportKindFunc, DescFunc: 1}, imp)
}

func TestDecodeImportMemory(t *testing.T) {
	c := NewCursor([]byte{0x01, 'a', 0x01, 'b', 0x02, 0x00, 0x01})
	imp, err := decodeImport(c)
	require.NoError(t, err)
	require.Equal(t, wasm.ImportKindMemory, imp.Kind)
	require.NotNil(t, imp.DescMem)
	require.Equal(t, uint32(1), imp.DescMem.Min)
}

func TestDecodeExport(t *testing.T) {
	c := NewCursor([]byte{0x01, 'x', 0x00, 0x02})
	exp, err := decodeExport(c)
	require.NoError(t, err)
	require.Equal(t, wasm.Export{Name: "x", Kind: wasm.ExternalKindFunc, Index: 2}, exp)
}

func TestDecodeExternalKindRejectsOutOfRange(t *testing.T) {
	c := NewCursor([]byte{0x04})
	_, err := decodeExternalKind(c)
	require.Error(t, err)
}
