package binary

import "github.com/wasmframe/wasmframe/internal/wasm"

// decodeMemArg reads the (align, offset) pair carried by every load/store
// instruction.
func decodeMemArg(c *Cursor) (wasm.MemArg, error) {
	align, err := c.ReadVarU32()
	if err != nil {
		return wasm.MemArg{}, err
	}
	offset, err := c.ReadVarU32()
	if err != nil {
		return wasm.MemArg{}, err
	}
	return wasm.MemArg{Align: align, Offset: offset}, nil
}

// decodeReservedByte reads the single zero byte that must follow
// memory.size and memory.grow, and the table index byte after
// call_indirect's type index. Both are required to be 0x00.
func decodeReservedByte(c *Cursor) (byte, error) {
	b, err := c.ReadVarU8()
	if err != nil {
		return 0, err
	}
	if b != 0 {
		return 0, wasm.NewInvalidOperatorError(b)
	}
	return b, nil
}

// decodeOperator reads exactly one instruction, including whatever
// immediates its opcode carries. Reserved-gap and out-of-range bytes fail
// with InvalidOperator.
func decodeOperator(c *Cursor) (wasm.Operator, error) {
	op, err := c.ReadByte()
	if err != nil {
		return wasm.Operator{}, err
	}

	switch op {
	case wasm.OpcodeUnreachable, wasm.OpcodeNop, wasm.OpcodeElse, wasm.OpcodeEnd,
		wasm.OpcodeReturn, wasm.OpcodeDrop, wasm.OpcodeSelect:
		return wasm.Operator{Opcode: op}, nil

	case wasm.OpcodeBlock, wasm.OpcodeLoop, wasm.OpcodeIf:
		bt, err := decodeBlockType(c)
		if err != nil {
			return wasm.Operator{}, err
		}
		return wasm.Operator{Opcode: op, BlockType: bt}, nil

	case wasm.OpcodeBr, wasm.OpcodeBrIf:
		depth, err := c.ReadVarU32()
		if err != nil {
			return wasm.Operator{}, err
		}
		return wasm.Operator{Opcode: op, RelativeDepth: depth}, nil

	case wasm.OpcodeBrTable:
		count, err := c.ReadVarU32()
		if err != nil {
			return wasm.Operator{}, err
		}
		targets := make([]wasm.Index, count)
		for i := range targets {
			if targets[i], err = c.ReadVarU32(); err != nil {
				return wasm.Operator{}, err
			}
		}
		def, err := c.ReadVarU32()
		if err != nil {
			return wasm.Operator{}, err
		}
		return wasm.Operator{Opcode: op, TargetTable: targets, Default: def}, nil

	case wasm.OpcodeCall:
		idx, err := c.ReadVarU32()
		if err != nil {
			return wasm.Operator{}, err
		}
		return wasm.Operator{Opcode: op, FuncIndex: idx}, nil

	case wasm.OpcodeCallIndirect:
		typeIdx, err := c.ReadVarU32()
		if err != nil {
			return wasm.Operator{}, err
		}
		reserved, err := decodeReservedByte(c)
		if err != nil {
			return wasm.Operator{}, err
		}
		return wasm.Operator{Opcode: op, TypeIndex: typeIdx, Reserved: reserved}, nil

	case wasm.OpcodeLocalGet, wasm.OpcodeLocalSet, wasm.OpcodeLocalTee:
		idx, err := c.ReadVarU32()
		if err != nil {
			return wasm.Operator{}, err
		}
		return wasm.Operator{Opcode: op, LocalIndex: idx}, nil

	case wasm.OpcodeGlobalGet, wasm.OpcodeGlobalSet:
		idx, err := c.ReadVarU32()
		if err != nil {
			return wasm.Operator{}, err
		}
		return wasm.Operator{Opcode: op, GlobalIndex: idx}, nil

	case wasm.OpcodeI32Load, wasm.OpcodeI64Load, wasm.OpcodeF32Load, wasm.OpcodeF64Load,
		wasm.OpcodeI32Load8S, wasm.OpcodeI32Load8U, wasm.OpcodeI32Load16S, wasm.OpcodeI32Load16U,
		wasm.OpcodeI64Load8S, wasm.OpcodeI64Load8U, wasm.OpcodeI64Load16S, wasm.OpcodeI64Load16U,
		wasm.OpcodeI64Load32S, wasm.OpcodeI64Load32U,
		wasm.OpcodeI32Store, wasm.OpcodeI64Store, wasm.OpcodeF32Store, wasm.OpcodeF64Store,
		wasm.OpcodeI32Store8, wasm.OpcodeI32Store16, wasm.OpcodeI64Store8, wasm.OpcodeI64Store16, wasm.OpcodeI64Store32:
		mem, err := decodeMemArg(c)
		if err != nil {
			return wasm.Operator{}, err
		}
		return wasm.Operator{Opcode: op, Mem: mem}, nil

	case wasm.OpcodeMemorySize, wasm.OpcodeMemoryGrow:
		reserved, err := decodeReservedByte(c)
		if err != nil {
			return wasm.Operator{}, err
		}
		return wasm.Operator{Opcode: op, Reserved: reserved}, nil

	case wasm.OpcodeI32Const:
		v, err := c.ReadVarI32()
		if err != nil {
			return wasm.Operator{}, err
		}
		return wasm.Operator{Opcode: op, I32: v}, nil

	case wasm.OpcodeI64Const:
		v, err := c.ReadVarI64()
		if err != nil {
			return wasm.Operator{}, err
		}
		return wasm.Operator{Opcode: op, I64: v}, nil

	case wasm.OpcodeF32Const:
		bits, err := c.ReadVarF32()
		if err != nil {
			return wasm.Operator{}, err
		}
		return wasm.Operator{Opcode: op, F32Bits: bits}, nil

	case wasm.OpcodeF64Const:
		bits, err := c.ReadVarF64()
		if err != nil {
			return wasm.Operator{}, err
		}
		return wasm.Operator{Opcode: op, F64Bits: bits}, nil

	case wasm.OpcodeI32Eqz, wasm.OpcodeI32Eq, wasm.OpcodeI32Ne,
		wasm.OpcodeI32LtS, wasm.OpcodeI32LtU, wasm.OpcodeI32GtS, wasm.OpcodeI32GtU,
		wasm.OpcodeI32LeS, wasm.OpcodeI32LeU, wasm.OpcodeI32GeS, wasm.OpcodeI32GeU,
		wasm.OpcodeI64Eqz, wasm.OpcodeI64Eq, wasm.OpcodeI64Ne,
		wasm.OpcodeI64LtS, wasm.OpcodeI64LtU, wasm.OpcodeI64GtS, wasm.OpcodeI64GtU,
		wasm.OpcodeI64LeS, wasm.OpcodeI64LeU, wasm.OpcodeI64GeS, wasm.OpcodeI64GeU,
		wasm.OpcodeF32Eq, wasm.OpcodeF32Ne, wasm.OpcodeF32Lt, wasm.OpcodeF32Gt, wasm.OpcodeF32Le, wasm.OpcodeF32Ge,
		wasm.OpcodeF64Eq, wasm.OpcodeF64Ne, wasm.OpcodeF64Lt, wasm.OpcodeF64Gt, wasm.OpcodeF64Le, wasm.OpcodeF64Ge,
		wasm.OpcodeI32Clz, wasm.OpcodeI32Ctz, wasm.OpcodeI32Popcnt,
		wasm.OpcodeI32Add, wasm.OpcodeI32Sub, wasm.OpcodeI32Mul, wasm.OpcodeI32DivS, wasm.OpcodeI32DivU,
		wasm.OpcodeI32RemS, wasm.OpcodeI32RemU, wasm.OpcodeI32And, wasm.OpcodeI32Or, wasm.OpcodeI32Xor,
		wasm.OpcodeI32Shl, wasm.OpcodeI32ShrS, wasm.OpcodeI32ShrU, wasm.OpcodeI32Rotl, wasm.OpcodeI32Rotr,
		wasm.OpcodeI64Clz, wasm.OpcodeI64Ctz, wasm.OpcodeI64Popcnt,
		wasm.OpcodeI64Add, wasm.OpcodeI64Sub, wasm.OpcodeI64Mul, wasm.OpcodeI64DivS, wasm.OpcodeI64DivU,
		wasm.OpcodeI64RemS, wasm.OpcodeI64RemU, wasm.OpcodeI64And, wasm.OpcodeI64Or, wasm.OpcodeI64Xor,
		wasm.OpcodeI64Shl, wasm.OpcodeI64ShrS, wasm.OpcodeI64ShrU, wasm.OpcodeI64Rotl, wasm.OpcodeI64Rotr,
		wasm.OpcodeF32Abs, wasm.OpcodeF32Neg, wasm.OpcodeF32Ceil, wasm.OpcodeF32Floor,
		wasm.OpcodeF32Trunc, wasm.OpcodeF32Nearest, wasm.OpcodeF32Sqrt,
		wasm.OpcodeF32Add, wasm.OpcodeF32Sub, wasm.OpcodeF32Mul, wasm.OpcodeF32Div, wasm.OpcodeF32Min, wasm.OpcodeF32Max, wasm.OpcodeF32Copysign,
		wasm.OpcodeF64Abs, wasm.OpcodeF64Neg, wasm.OpcodeF64Ceil, wasm.OpcodeF64Floor,
		wasm.OpcodeF64Trunc, wasm.OpcodeF64Nearest, wasm.OpcodeF64Sqrt,
		wasm.OpcodeF64Add, wasm.OpcodeF64Sub, wasm.OpcodeF64Mul, wasm.OpcodeF64Div, wasm.OpcodeF64Min, wasm.OpcodeF64Max, wasm.OpcodeF64Copysign,
		wasm.OpcodeI32WrapI64,
		wasm.OpcodeI32TruncF32S, wasm.OpcodeI32TruncF32U, wasm.OpcodeI32TruncF64S, wasm.OpcodeI32TruncF64U,
		wasm.OpcodeI64ExtendI32S, wasm.OpcodeI64ExtendI32U,
		wasm.OpcodeI64TruncF32S, wasm.OpcodeI64TruncF32U, wasm.OpcodeI64TruncF64S, wasm.OpcodeI64TruncF64U,
		wasm.OpcodeF32ConvertI32S, wasm.OpcodeF32ConvertI32U, wasm.OpcodeF32ConvertI64S, wasm.OpcodeF32ConvertI64U,
		wasm.OpcodeF32DemoteF64,
		wasm.OpcodeF64ConvertI32S, wasm.OpcodeF64ConvertI32U, wasm.OpcodeF64ConvertI64S, wasm.OpcodeF64ConvertI64U,
		wasm.OpcodeF64PromoteF32,
		wasm.OpcodeI32ReinterpretF32, wasm.OpcodeI64ReinterpretF64, wasm.OpcodeF32ReinterpretI32, wasm.OpcodeF64ReinterpretI64:
		return wasm.Operator{Opcode: op}, nil

	default:
		return wasm.Operator{}, wasm.NewInvalidOperatorError(op)
	}
}

// decodeExpr reads operators up to and including the first End, the shape
// every constant initializer expression (global, element offset, data
// offset) takes in the MVP. Block nesting is not tracked: an End that
// closes a nested block also ends the expression.
func decodeExpr(c *Cursor) ([]wasm.Operator, error) {
	var ops []wasm.Operator
	for {
		op, err := decodeOperator(c)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
		if op.Opcode == wasm.OpcodeEnd {
			return ops, nil
		}
	}
}

// decodeFunctionBody reads operators until the cursor — bounded to exactly
// this code entry's byte length — is exhausted. The final operator read
// must be End; any other outcome is a malformed function body.
func decodeFunctionBody(c *Cursor) ([]wasm.Operator, error) {
	var ops []wasm.Operator
	for !c.IsEmpty() {
		op, err := decodeOperator(c)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	if len(ops) == 0 || ops[len(ops)-1].Opcode != wasm.OpcodeEnd {
		return nil, wasm.NewInvalidSectionError(byte(wasm.SectionIDCode))
	}
	return ops, nil
}
