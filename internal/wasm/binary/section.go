package binary

import "github.com/wasmframe/wasmframe/internal/wasm"

const (
	magic   uint32 = 0x6d736100 // "\0asm", little-endian
	version uint32 = 1
)

// DecodeHeader reads and validates the 8-byte module header, returning the
// version field (always 1 for the MVP).
func DecodeHeader(c *Cursor) (uint32, error) {
	got, err := c.ReadU32()
	if err != nil {
		return 0, err
	}
	if got != magic {
		return 0, wasm.NewInvalidMagicNumberError(got)
	}
	v, err := c.ReadU32()
	if err != nil {
		return 0, err
	}
	if v != version {
		return 0, wasm.NewInvalidVersionError(v)
	}
	return v, nil
}

// NextSection reads the next section's id and length and carves a
// length-bounded sub-cursor over its payload. done is true once c has no
// more bytes left.
func NextSection(c *Cursor) (id wasm.SectionID, sub *Cursor, done bool, err error) {
	if c.IsEmpty() {
		return 0, nil, true, nil
	}
	b, err := c.ReadByte()
	if err != nil {
		return 0, nil, false, err
	}
	if b > byte(wasm.SectionIDData) {
		return 0, nil, false, wasm.NewInvalidSectionError(b)
	}
	size, err := c.ReadVarU32()
	if err != nil {
		return 0, nil, false, err
	}
	sub, err = c.Sub(size)
	if err != nil {
		return 0, nil, false, err
	}
	return wasm.SectionID(b), sub, false, nil
}

// requireExhausted fails with InvalidSection if sub still has unread bytes
// once its declared entries have all been decoded.
func requireExhausted(id wasm.SectionID, sub *Cursor) error {
	if !sub.IsEmpty() {
		return wasm.NewInvalidSectionError(byte(id))
	}
	return nil
}

// DecodeTypeSection reads the type section's vector of function signatures.
func DecodeTypeSection(sub *Cursor) ([]wasm.FunctionType, error) {
	n, err := sub.ReadVarU32()
	if err != nil {
		return nil, err
	}
	out := make([]wasm.FunctionType, n)
	for i := range out {
		if out[i], err = decodeFunctionType(sub); err != nil {
			return nil, err
		}
	}
	return out, requireExhausted(wasm.SectionIDType, sub)
}

// DecodeImportSection reads the import section's vector of imports.
func DecodeImportSection(sub *Cursor) ([]wasm.Import, error) {
	n, err := sub.ReadVarU32()
	if err != nil {
		return nil, err
	}
	out := make([]wasm.Import, n)
	for i := range out {
		if out[i], err = decodeImport(sub); err != nil {
			return nil, err
		}
	}
	return out, requireExhausted(wasm.SectionIDImport, sub)
}

// DecodeFunctionSection reads the function section's vector of type
// indices, one per function defined in the code section.
func DecodeFunctionSection(sub *Cursor) ([]wasm.Index, error) {
	n, err := sub.ReadVarU32()
	if err != nil {
		return nil, err
	}
	out := make([]wasm.Index, n)
	for i := range out {
		if out[i], err = sub.ReadVarU32(); err != nil {
			return nil, err
		}
	}
	return out, requireExhausted(wasm.SectionIDFunction, sub)
}

// DecodeTableSection reads the table section's vector of table types. The
// MVP permits at most one table, but this decoder does not itself enforce
// module-level cardinality limits; see the root package doc comment.
func DecodeTableSection(sub *Cursor) ([]wasm.Table, error) {
	n, err := sub.ReadVarU32()
	if err != nil {
		return nil, err
	}
	out := make([]wasm.Table, n)
	for i := range out {
		if out[i], err = decodeTableType(sub); err != nil {
			return nil, err
		}
	}
	return out, requireExhausted(wasm.SectionIDTable, sub)
}

// DecodeMemorySection reads the memory section's vector of memory types.
func DecodeMemorySection(sub *Cursor) ([]wasm.Memory, error) {
	n, err := sub.ReadVarU32()
	if err != nil {
		return nil, err
	}
	out := make([]wasm.Memory, n)
	for i := range out {
		if out[i], err = decodeMemoryType(sub); err != nil {
			return nil, err
		}
	}
	return out, requireExhausted(wasm.SectionIDMemory, sub)
}

// DecodeGlobalSection reads the global section's vector of globals.
func DecodeGlobalSection(sub *Cursor) ([]wasm.Global, error) {
	n, err := sub.ReadVarU32()
	if err != nil {
		return nil, err
	}
	out := make([]wasm.Global, n)
	for i := range out {
		gt, err := decodeGlobalType(sub)
		if err != nil {
			return nil, err
		}
		init, err := decodeExpr(sub)
		if err != nil {
			return nil, err
		}
		out[i] = wasm.Global{Type: gt, Init: init}
	}
	return out, requireExhausted(wasm.SectionIDGlobal, sub)
}

// DecodeExportSection reads the export section's vector of exports.
func DecodeExportSection(sub *Cursor) ([]wasm.Export, error) {
	n, err := sub.ReadVarU32()
	if err != nil {
		return nil, err
	}
	out := make([]wasm.Export, n)
	for i := range out {
		if out[i], err = decodeExport(sub); err != nil {
			return nil, err
		}
	}
	return out, requireExhausted(wasm.SectionIDExport, sub)
}

// DecodeStartSection reads the start section's single function index.
func DecodeStartSection(sub *Cursor) (wasm.Index, error) {
	idx, err := sub.ReadVarU32()
	if err != nil {
		return 0, err
	}
	return idx, requireExhausted(wasm.SectionIDStart, sub)
}

// DecodeElementSection reads the element section's vector of active
// element segments.
func DecodeElementSection(sub *Cursor) ([]wasm.ElementSegment, error) {
	n, err := sub.ReadVarU32()
	if err != nil {
		return nil, err
	}
	out := make([]wasm.ElementSegment, n)
	for i := range out {
		tableIdx, err := sub.ReadVarU32()
		if err != nil {
			return nil, err
		}
		offset, err := decodeExpr(sub)
		if err != nil {
			return nil, err
		}
		count, err := sub.ReadVarU32()
		if err != nil {
			return nil, err
		}
		init := make([]wasm.Index, count)
		for j := range init {
			if init[j], err = sub.ReadVarU32(); err != nil {
				return nil, err
			}
		}
		out[i] = wasm.ElementSegment{TableIndex: tableIdx, Offset: offset, Init: init}
	}
	return out, requireExhausted(wasm.SectionIDElement, sub)
}

// DecodeCodeSection reads the code section's vector of function bodies.
func DecodeCodeSection(sub *Cursor) ([]wasm.Code, error) {
	n, err := sub.ReadVarU32()
	if err != nil {
		return nil, err
	}
	out := make([]wasm.Code, n)
	for i := range out {
		bodySize, err := sub.ReadVarU32()
		if err != nil {
			return nil, err
		}
		body, err := sub.Sub(bodySize)
		if err != nil {
			return nil, err
		}
		localCount, err := body.ReadVarU32()
		if err != nil {
			return nil, err
		}
		var locals []wasm.ValueType
		for j := uint32(0); j < localCount; j++ {
			count, err := body.ReadVarU32()
			if err != nil {
				return nil, err
			}
			vt, err := decodeValueType(body)
			if err != nil {
				return nil, err
			}
			for k := uint32(0); k < count; k++ {
				locals = append(locals, vt)
			}
		}
		ops, err := decodeFunctionBody(body)
		if err != nil {
			return nil, err
		}
		out[i] = wasm.Code{Locals: locals, Body: ops}
	}
	return out, requireExhausted(wasm.SectionIDCode, sub)
}

// DecodeDataSection reads the data section's vector of active data
// segments.
func DecodeDataSection(sub *Cursor) ([]wasm.DataSegment, error) {
	n, err := sub.ReadVarU32()
	if err != nil {
		return nil, err
	}
	out := make([]wasm.DataSegment, n)
	for i := range out {
		memIdx, err := sub.ReadVarU32()
		if err != nil {
			return nil, err
		}
		offset, err := decodeExpr(sub)
		if err != nil {
			return nil, err
		}
		size, err := sub.ReadVarU32()
		if err != nil {
			return nil, err
		}
		init, err := sub.ReadRange(int(size))
		if err != nil {
			return nil, err
		}
		out[i] = wasm.DataSegment{MemoryIndex: memIdx, Offset: offset, Init: append([]byte(nil), init...)}
	}
	return out, requireExhausted(wasm.SectionIDData, sub)
}

// DecodeCustomSection reads the custom section's name followed by its
// opaque remaining payload, which this decoder never interprets further.
func DecodeCustomSection(sub *Cursor) (wasm.CustomSection, error) {
	name, err := decodeName(sub)
	if err != nil {
		return wasm.CustomSection{}, err
	}
	rest, err := sub.ReadRange(sub.Len())
	if err != nil {
		return wasm.CustomSection{}, err
	}
	return wasm.CustomSection{Name: name, Data: append([]byte(nil), rest...)}, nil
}
