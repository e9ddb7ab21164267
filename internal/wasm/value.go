package wasm

import "fmt"

// Index is a position in one of a module's several index spaces (type,
// function, table, memory, global). It is always encoded as a var_u32.
type Index = uint32

// ValueType is the tagged "Type" enum of the WebAssembly MVP binary format:
// it doubles as a value type (local/param/result/global type) and, for the
// two reserved tags at the bottom, as a block-type or function-form marker.
// Only the seven MVP-legal tags below are ever produced by this decoder;
// post-MVP additions (v128, externref, typed function references) are out
// of scope.
//
// See https://webassembly.github.io/spec/core/binary/types.html
type ValueType byte

const (
	ValueTypeI32 ValueType = 0x7f
	ValueTypeI64 ValueType = 0x7e
	ValueTypeF32 ValueType = 0x7d
	ValueTypeF64 ValueType = 0x7c
	// ValueTypeFuncref is the spec's "AnyRef", a placeholder standing in for
	// the single MVP reference type (funcref), used only as a table element
	// type.
	ValueTypeFuncref ValueType = 0x70
	// ValueTypeFunc is the "form" byte that begins every type section entry.
	ValueTypeFunc ValueType = 0x60
	// ValueTypeEmptyBlockType marks a block/loop/if with no result value.
	ValueTypeEmptyBlockType ValueType = 0x40
)

func (t ValueType) String() string {
	switch t {
	case ValueTypeI32:
		return "i32"
	case ValueTypeI64:
		return "i64"
	case ValueTypeF32:
		return "f32"
	case ValueTypeF64:
		return "f64"
	case ValueTypeFuncref:
		return "funcref"
	case ValueTypeFunc:
		return "func"
	case ValueTypeEmptyBlockType:
		return "emptyblock"
	default:
		return fmt.Sprintf("0x%x", byte(t))
	}
}

// Mutability is whether a global can be assigned to after module
// instantiation.
type Mutability byte

const (
	MutabilityConst Mutability = 0x00
	MutabilityVar   Mutability = 0x01
)

func (m Mutability) String() string {
	if m == MutabilityVar {
		return "var"
	}
	return "const"
}

// Limits is the (initial, optional maximum) pair shared by table and memory
// types, called ResizableLimit in the spec.
//
// See https://webassembly.github.io/spec/core/binary/types.html#limits
type Limits struct {
	Min uint32
	Max *uint32
}

// GlobalType is a global's declared value type and mutability, called
// GlobalArg in the spec.
type GlobalType struct {
	ValType ValueType
	Mutable bool
}

// FunctionType is a type section entry: a function signature.
type FunctionType struct {
	Params  []ValueType
	Results []ValueType
}

// Table is a table section (or import) entry. MVP tables only ever hold
// funcref elements.
type Table struct {
	Min uint32
	Max *uint32
}

// Memory is a memory section (or import) entry, measured in 64KiB pages.
type Memory struct {
	Min uint32
	Max *uint32
}

// ExternalKind tags what kind of entity an Export refers to.
type ExternalKind byte

const (
	ExternalKindFunc   ExternalKind = 0x00
	ExternalKindTable  ExternalKind = 0x01
	ExternalKindMemory ExternalKind = 0x02
	ExternalKindGlobal ExternalKind = 0x03
)

func (k ExternalKind) String() string {
	switch k {
	case ExternalKindFunc:
		return "func"
	case ExternalKindTable:
		return "table"
	case ExternalKindMemory:
		return "memory"
	case ExternalKindGlobal:
		return "global"
	default:
		return fmt.Sprintf("0x%x", byte(k))
	}
}

// Export is an export section entry.
type Export struct {
	Name  string
	Kind  ExternalKind
	Index Index
}

// ImportKind tags what kind of entity an Import provides.
type ImportKind byte

const (
	ImportKindFunc   ImportKind = 0x00
	ImportKindTable  ImportKind = 0x01
	ImportKindMemory ImportKind = 0x02
	ImportKindGlobal ImportKind = 0x03
)

func (k ImportKind) String() string {
	switch k {
	case ImportKindFunc:
		return "func"
	case ImportKindTable:
		return "table"
	case ImportKindMemory:
		return "memory"
	case ImportKindGlobal:
		return "global"
	default:
		return fmt.Sprintf("0x%x", byte(k))
	}
}

// Import is an import section entry. Exactly one of DescFunc, DescTable,
// DescMem or DescGlobal is meaningful, selected by Kind.
type Import struct {
	Module, Name string
	Kind         ImportKind
	DescFunc     Index
	DescTable    *Table
	DescMem      *Memory
	DescGlobal   *GlobalType
}
