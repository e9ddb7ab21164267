package binary

import "github.com/wasmframe/wasmframe/internal/wasm"

// decodeValueType reads one of the four MVP value type tags.
func decodeValueType(c *Cursor) (wasm.ValueType, error) {
	b, err := c.ReadByte()
	if err != nil {
		return 0, err
	}
	switch wasm.ValueType(b) {
	case wasm.ValueTypeI32, wasm.ValueTypeI64, wasm.ValueTypeF32, wasm.ValueTypeF64:
		return wasm.ValueType(b), nil
	default:
		return 0, wasm.NewInvalidTypeError(int32(b))
	}
}

// decodeBlockType reads a block/loop/if signature: either the empty marker
// or a single result value type. The MVP binary format never encodes a
// multi-value block type.
func decodeBlockType(c *Cursor) (wasm.ValueType, error) {
	b, err := c.ReadByte()
	if err != nil {
		return 0, err
	}
	switch wasm.ValueType(b) {
	case wasm.ValueTypeEmptyBlockType, wasm.ValueTypeI32, wasm.ValueTypeI64, wasm.ValueTypeF32, wasm.ValueTypeF64:
		return wasm.ValueType(b), nil
	default:
		return 0, wasm.NewInvalidTypeError(int32(b))
	}
}

// decodeElemType reads a table's element type, which in the MVP is always
// funcref.
func decodeElemType(c *Cursor) (wasm.ValueType, error) {
	b, err := c.ReadByte()
	if err != nil {
		return 0, err
	}
	if wasm.ValueType(b) != wasm.ValueTypeFuncref {
		return 0, wasm.NewInvalidTypeError(int32(b))
	}
	return wasm.ValueType(b), nil
}

// decodeName reads a var_u32 byte length followed by that many UTF-8 bytes.
func decodeName(c *Cursor) (string, error) {
	n, err := c.ReadVarU32()
	if err != nil {
		return "", err
	}
	return c.ReadStr(int(n))
}

// decodeLimits reads the (flags, min[, max]) resizable-limits encoding
// shared by table and memory types.
func decodeLimits(c *Cursor) (wasm.Limits, error) {
	flags, err := c.ReadVarU8()
	if err != nil {
		return wasm.Limits{}, err
	}
	min, err := c.ReadVarU32()
	if err != nil {
		return wasm.Limits{}, err
	}
	if flags == 0 {
		return wasm.Limits{Min: min}, nil
	}
	max, err := c.ReadVarU32()
	if err != nil {
		return wasm.Limits{}, err
	}
	return wasm.Limits{Min: min, Max: &max}, nil
}

func decodeTableType(c *Cursor) (wasm.Table, error) {
	if _, err := decodeElemType(c); err != nil {
		return wasm.Table{}, err
	}
	lim, err := decodeLimits(c)
	if err != nil {
		return wasm.Table{}, err
	}
	return wasm.Table{Min: lim.Min, Max: lim.Max}, nil
}

func decodeMemoryType(c *Cursor) (wasm.Memory, error) {
	lim, err := decodeLimits(c)
	if err != nil {
		return wasm.Memory{}, err
	}
	return wasm.Memory{Min: lim.Min, Max: lim.Max}, nil
}

func decodeGlobalType(c *Cursor) (wasm.GlobalType, error) {
	vt, err := decodeValueType(c)
	if err != nil {
		return wasm.GlobalType{}, err
	}
	m, err := c.ReadVarU8()
	if err != nil {
		return wasm.GlobalType{}, err
	}
	switch wasm.Mutability(m) {
	case wasm.MutabilityConst:
		return wasm.GlobalType{ValType: vt, Mutable: false}, nil
	case wasm.MutabilityVar:
		return wasm.GlobalType{ValType: vt, Mutable: true}, nil
	default:
		return wasm.GlobalType{}, wasm.NewInvalidKindTypeError(m)
	}
}

func decodeFunctionType(c *Cursor) (wasm.FunctionType, error) {
	form, err := c.ReadByte()
	if err != nil {
		return wasm.FunctionType{}, err
	}
	if wasm.ValueType(form) != wasm.ValueTypeFunc {
		return wasm.FunctionType{}, wasm.NewInvalidTypeError(int32(form))
	}
	paramCount, err := c.ReadVarU32()
	if err != nil {
		return wasm.FunctionType{}, err
	}
	params := make([]wasm.ValueType, paramCount)
	for i := range params {
		if params[i], err = decodeValueType(c); err != nil {
			return wasm.FunctionType{}, err
		}
	}
	resultCount, err := c.ReadVarU32()
	if err != nil {
		return wasm.FunctionType{}, err
	}
	results := make([]wasm.ValueType, resultCount)
	for i := range results {
		if results[i], err = decodeValueType(c); err != nil {
			return wasm.FunctionType{}, err
		}
	}
	return wasm.FunctionType{Params: params, Results: results}, nil
}

func decodeExternalKind(c *Cursor) (wasm.ExternalKind, error) {
	b, err := c.ReadByte()
	if err != nil {
		return 0, err
	}
	switch wasm.ExternalKind(b) {
	case wasm.ExternalKindFunc, wasm.ExternalKindTable, wasm.ExternalKindMemory, wasm.ExternalKindGlobal:
		return wasm.ExternalKind(b), nil
	default:
		return 0, wasm.NewInvalidKindTypeError(b)
	}
}

func decodeImportKind(c *Cursor) (wasm.ImportKind, error) {
	b, err := c.ReadByte()
	if err != nil {
		return 0, err
	}
	switch wasm.ImportKind(b) {
	case wasm.ImportKindFunc, wasm.ImportKindTable, wasm.ImportKindMemory, wasm.ImportKindGlobal:
		return wasm.ImportKind(b), nil
	default:
		return 0, wasm.NewInvalidKindTypeError(b)
	}
}

func decodeImport(c *Cursor) (wasm.Import, error) {
	mod, err := decodeName(c)
	if err != nil {
		return wasm.Import{}, err
	}
	name, err := decodeName(c)
	if err != nil {
		return wasm.Import{}, err
	}
	kind, err := decodeImportKind(c)
	if err != nil {
		return wasm.Import{}, err
	}
	imp := wasm.Import{Module: mod, Name: name, Kind: kind}
	switch kind {
	case wasm.ImportKindFunc:
		if imp.DescFunc, err = c.ReadVarU32(); err != nil {
			return wasm.Import{}, err
		}
	case wasm.ImportKindTable:
		t, err := decodeTableType(c)
		if err != nil {
			return wasm.Import{}, err
		}
		imp.DescTable = &t
	case wasm.ImportKindMemory:
		m, err := decodeMemoryType(c)
		if err != nil {
			return wasm.Import{}, err
		}
		imp.DescMem = &m
	case wasm.ImportKindGlobal:
		g, err := decodeGlobalType(c)
		if err != nil {
			return wasm.Import{}, err
		}
		imp.DescGlobal = &g
	}
	return imp, nil
}

func decodeExport(c *Cursor) (wasm.Export, error) {
	name, err := decodeName(c)
	if err != nil {
		return wasm.Export{}, err
	}
	kind, err := decodeExternalKind(c)
	if err != nil {
		return wasm.Export{}, err
	}
	idx, err := c.ReadVarU32()
	if err != nil {
		return wasm.Export{}, err
	}
	return wasm.Export{Name: name, Kind: kind, Index: idx}, nil
}
