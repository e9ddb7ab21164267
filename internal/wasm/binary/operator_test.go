package binary

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wasmframe/wasmframe/internal/wasm"
)

func TestDecodeOperatorNoImmediate(t *testing.T) {
	c := NewCursor([]byte{wasm.OpcodeI32Add})
	op, err := decodeOperator(c)
	require.NoError(t, err)
	require.Equal(t, wasm.OpcodeI32Add, op.Opcode)
}

func TestDecodeOperatorBlock(t *testing.T) {
	c := NewCursor([]byte{wasm.OpcodeBlock, 0x7f})
	op, err := decodeOperator(c)
	require.NoError(t, err)
	require.Equal(t, wasm.ValueTypeI32, op.BlockType)
}

func TestDecodeOperatorBrTable(t *testing.T) {
	c := NewCursor([]byte{wasm.OpcodeBrTable, 0x02, 0x00, 0x01, 0x02})
	op, err := decodeOperator(c)
	require.NoError(t, err)
	require.Equal(t, []wasm.Index{0, 1}, op.TargetTable)
	require.Equal(t, wasm.Index(2), op.Default)
}

func TestDecodeOperatorCallIndirectRejectsNonZeroReserved(t *testing.T) {
	c := NewCursor([]byte{wasm.OpcodeCallIndirect, 0x00, 0x01})
	_, err := decodeOperator(c)
	require.Error(t, err)
}

func TestDecodeOperatorMemArg(t *testing.T) {
	c := NewCursor([]byte{wasm.OpcodeI32Load, 0x02, 0x04})
	op, err := decodeOperator(c)
	require.NoError(t, err)
	require.Equal(t, wasm.MemArg{Align: 2, Offset: 4}, op.Mem)
}

func TestDecodeOperatorMemoryGrowRejectsNonZeroReserved(t *testing.T) {
	c := NewCursor([]byte{wasm.OpcodeMemoryGrow, 0x01})
	_, err := decodeOperator(c)
	require.Error(t, err)
}

func TestDecodeOperatorConstsPreserveRawBits(t *testing.T) {
	c := NewCursor([]byte{wasm.OpcodeI32Const, 0x7f})
	op, err := decodeOperator(c)
	require.NoError(t, err)
	require.Equal(t, int32(-1), op.I32)

	c = NewCursor([]byte{wasm.OpcodeF64Const, 0, 0, 0, 0, 0, 0, 0xf8, 0x7f})
	op, err = decodeOperator(c)
	require.NoError(t, err)
	require.Equal(t, uint64(0x7ff8000000000000), op.F64Bits)
}

func TestDecodeOperatorRejectsReservedGapByte(t *testing.T) {
	for _, b := range []byte{0x06, 0x12, 0x1c, 0x25} {
		c := NewCursor([]byte{b})
		_, err := decodeOperator(c)
		require.Error(t, err, b)
	}
}

func TestDecodeOperatorRejectsOutOfRangeByte(t *testing.T) {
	c := NewCursor([]byte{0xc0})
	_, err := decodeOperator(c)
	require.Error(t, err)
}

func TestDecodeExprStopsAtFirstEnd(t *testing.T) {
	c := NewCursor([]byte{wasm.OpcodeI32Const, 0x05, wasm.OpcodeEnd})
	ops, err := decodeExpr(c)
	require.NoError(t, err)
	require.Len(t, ops, 2)
	require.Equal(t, wasm.OpcodeEnd, ops[1].Opcode)
	require.True(t, c.IsEmpty())
}

func TestDecodeFunctionBodyRequiresTrailingEnd(t *testing.T) {
	c := NewCursor([]byte{wasm.OpcodeNop})
	_, err := decodeFunctionBody(c)
	require.Error(t, err)
}

func TestDecodeFunctionBodyConsumesNestedBlocks(t *testing.T) {
	c := NewCursor([]byte{
		wasm.OpcodeBlock, byte(wasm.ValueTypeEmptyBlockType),
		wasm.OpcodeNop,
		wasm.OpcodeEnd,
		wasm.OpcodeEnd,
	})
	ops, err := decodeFunctionBody(c)
	require.NoError(t, err)
	require.Len(t, ops, 4)
	require.Equal(t, wasm.OpcodeEnd, ops[len(ops)-1].Opcode)
}
