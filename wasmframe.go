// Package wasmframe is a streaming, pull-style decoder for version 1
// (MVP) WebAssembly binary modules. A Cursor yields one Frame per call to
// Next: first the module header, then one Frame per top-level section in
// file order, then a terminal End or ParserError frame. The Cursor reads
// the caller's input slice without copying it, so the input must outlive
// the Cursor. The entities in a returned Frame own their contents (names,
// data segment bytes and custom payloads are copied out of the input), so
// a Frame does not depend on the input once Next has returned it.
//
// This package decodes structure only. It does not validate a module
// against the WebAssembly type system (e.g. table/memory cardinality
// limits, branch target validity, stack typing) and it never executes
// code; see the root DESIGN document for the full list of what is and
// isn't in scope.
package wasmframe

import (
	"github.com/wasmframe/wasmframe/internal/wasm"
	"github.com/wasmframe/wasmframe/internal/wasm/binary"
)

// Re-exported entity types, so that callers never need to import the
// internal packages directly.
type (
	Index          = wasm.Index
	ValueType      = wasm.ValueType
	Mutability     = wasm.Mutability
	Limits         = wasm.Limits
	GlobalType     = wasm.GlobalType
	FunctionType   = wasm.FunctionType
	Table          = wasm.Table
	Memory         = wasm.Memory
	ExternalKind   = wasm.ExternalKind
	Export         = wasm.Export
	ImportKind     = wasm.ImportKind
	Import         = wasm.Import
	Global         = wasm.Global
	ElementSegment = wasm.ElementSegment
	Code           = wasm.Code
	DataSegment    = wasm.DataSegment
	CustomSection  = wasm.CustomSection
	SectionID      = wasm.SectionID
	Opcode         = wasm.Opcode
	Operator       = wasm.Operator
	MemArg         = wasm.MemArg
	DecodeError    = wasm.DecodeError
	ErrorKind      = wasm.ErrorKind
)

const (
	SectionIDCustom   = wasm.SectionIDCustom
	SectionIDType     = wasm.SectionIDType
	SectionIDImport   = wasm.SectionIDImport
	SectionIDFunction = wasm.SectionIDFunction
	SectionIDTable    = wasm.SectionIDTable
	SectionIDMemory   = wasm.SectionIDMemory
	SectionIDGlobal   = wasm.SectionIDGlobal
	SectionIDExport   = wasm.SectionIDExport
	SectionIDStart    = wasm.SectionIDStart
	SectionIDElement  = wasm.SectionIDElement
	SectionIDCode     = wasm.SectionIDCode
	SectionIDData     = wasm.SectionIDData
)

// FrameKind tags which variant a Frame is.
type FrameKind int

const (
	FrameHead FrameKind = iota
	FrameSection
	FrameEnd
	FrameParserError
)

func (k FrameKind) String() string {
	switch k {
	case FrameHead:
		return "Head"
	case FrameSection:
		return "Section"
	case FrameEnd:
		return "End"
	case FrameParserError:
		return "ParserError"
	default:
		return "Unknown"
	}
}

// Section is a single decoded top-level section. Only the fields that
// correspond to ID are populated; the rest are left at their zero value.
type Section struct {
	ID SectionID

	Types     []FunctionType  // SectionIDType
	Imports   []Import        // SectionIDImport
	Functions []Index         // SectionIDFunction
	Tables    []Table         // SectionIDTable
	Memories  []Memory        // SectionIDMemory
	Globals   []Global        // SectionIDGlobal
	Exports   []Export        // SectionIDExport
	Start     *Index          // SectionIDStart
	Elements  []ElementSegment // SectionIDElement
	Code      []Code          // SectionIDCode
	Data      []DataSegment   // SectionIDData
	Custom    *CustomSection  // SectionIDCustom
}

// Frame is one event yielded by Cursor.Next: exactly one of its fields
// beyond Kind is meaningful, selected by Kind.
type Frame struct {
	Kind FrameKind

	// Version is populated for FrameHead.
	Version uint32

	// Section is populated for FrameSection.
	Section *Section

	// Err is populated for FrameParserError. Its concrete type is always
	// *DecodeError.
	Err error
}

// Cursor walks a byte slice section by section. It is not safe for
// concurrent use.
type Cursor struct {
	bc         *binary.Cursor
	headerDone bool
	terminal   *Frame
}

// NewCursor wraps data for streaming decode. data is borrowed, not copied.
func NewCursor(data []byte) *Cursor {
	return &Cursor{bc: binary.NewCursor(data)}
}

// Next advances the cursor and returns the next Frame. Once it has
// returned a FrameEnd or FrameParserError frame, every subsequent call
// returns that same terminal frame again without reading further.
func (c *Cursor) Next() Frame {
	if c.terminal != nil {
		return *c.terminal
	}

	if !c.headerDone {
		c.headerDone = true
		v, err := binary.DecodeHeader(c.bc)
		if err != nil {
			return c.fail(err)
		}
		return Frame{Kind: FrameHead, Version: v}
	}

	id, sub, done, err := binary.NextSection(c.bc)
	if err != nil {
		return c.fail(err)
	}
	if done {
		f := Frame{Kind: FrameEnd}
		c.terminal = &f
		return f
	}

	sec, err := decodeSection(id, sub)
	if err != nil {
		return c.fail(err)
	}
	return Frame{Kind: FrameSection, Section: &sec}
}

func (c *Cursor) fail(err error) Frame {
	f := Frame{Kind: FrameParserError, Err: err}
	c.terminal = &f
	return f
}

func decodeSection(id SectionID, sub *binary.Cursor) (Section, error) {
	sec := Section{ID: id}
	var err error
	switch id {
	case SectionIDCustom:
		cs, e := binary.DecodeCustomSection(sub)
		err = e
		sec.Custom = &cs
	case SectionIDType:
		sec.Types, err = binary.DecodeTypeSection(sub)
	case SectionIDImport:
		sec.Imports, err = binary.DecodeImportSection(sub)
	case SectionIDFunction:
		sec.Functions, err = binary.DecodeFunctionSection(sub)
	case SectionIDTable:
		sec.Tables, err = binary.DecodeTableSection(sub)
	case SectionIDMemory:
		sec.Memories, err = binary.DecodeMemorySection(sub)
	case SectionIDGlobal:
		sec.Globals, err = binary.DecodeGlobalSection(sub)
	case SectionIDExport:
		sec.Exports, err = binary.DecodeExportSection(sub)
	case SectionIDStart:
		idx, e := binary.DecodeStartSection(sub)
		err = e
		sec.Start = &idx
	case SectionIDElement:
		sec.Elements, err = binary.DecodeElementSection(sub)
	case SectionIDCode:
		sec.Code, err = binary.DecodeCodeSection(sub)
	case SectionIDData:
		sec.Data, err = binary.DecodeDataSection(sub)
	default:
		err = wasm.NewInvalidSectionError(byte(id))
	}
	if err != nil {
		return Section{}, err
	}
	return sec, nil
}
