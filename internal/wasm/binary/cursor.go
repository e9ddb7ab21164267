// Package binary implements the WebAssembly MVP binary format: the byte
// cursor, the section dispatcher and the per-section entity and operator
// decoders described by the module this package belongs to.
package binary

import (
	"encoding/binary"
	"unicode/utf8"

	"github.com/wasmframe/wasmframe/internal/leb128"
	"github.com/wasmframe/wasmframe/internal/wasm"
)

// Cursor is a read-only positional view over an immutable byte buffer. It
// never copies the buffer: Sub returns a length-bounded borrow of the same
// backing array, so the caller's input must outlive every Cursor derived
// from it.
type Cursor struct {
	buf []byte
	pos int
}

// NewCursor wraps buf for reading from its first byte.
func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Len returns the number of unread bytes.
func (c *Cursor) Len() int { return len(c.buf) - c.pos }

// IsEmpty reports whether the cursor's position has reached the end of its
// buffer.
func (c *Cursor) IsEmpty() bool { return c.pos >= len(c.buf) }

// Position returns the cursor's current offset into its buffer.
func (c *Cursor) Position() int { return c.pos }

// ReadRange returns the next n bytes without copying them, advancing the
// cursor past them. It fails with ErrEOF if fewer than n bytes remain.
func (c *Cursor) ReadRange(n int) ([]byte, error) {
	if n < 0 || c.pos+n > len(c.buf) {
		return nil, wasm.ErrEOFErr
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

// ReadByte reads a single byte.
func (c *Cursor) ReadByte() (byte, error) {
	b, err := c.ReadRange(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadU32 reads a fixed-width little-endian uint32 (used only for the
// module header's magic and version fields).
func (c *Cursor) ReadU32() (uint32, error) {
	b, err := c.ReadRange(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// ReadStr reads n bytes and decodes them as UTF-8.
func (c *Cursor) ReadStr(n int) (string, error) {
	b, err := c.ReadRange(n)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", wasm.NewFromUTF8Error()
	}
	return string(b), nil
}

// ReadVarU32 reads an unsigned LEB128 varint of up to 5 bytes.
func (c *Cursor) ReadVarU32() (uint32, error) {
	v, n, err := leb128.LoadUint32(c.buf[c.pos:])
	if err != nil {
		return 0, wasm.NewInvalidLEB128Error()
	}
	c.pos += int(n)
	return v, nil
}

// ReadVarU64 reads an unsigned LEB128 varint of up to 10 bytes.
func (c *Cursor) ReadVarU64() (uint64, error) {
	v, n, err := leb128.LoadUint64(c.buf[c.pos:])
	if err != nil {
		return 0, wasm.NewInvalidLEB128Error()
	}
	c.pos += int(n)
	return v, nil
}

// ReadVarI32 reads a signed LEB128 varint of up to 5 bytes, sign-extended
// from the last significant bit.
func (c *Cursor) ReadVarI32() (int32, error) {
	v, n, err := leb128.LoadInt32(c.buf[c.pos:])
	if err != nil {
		return 0, wasm.NewInvalidLEB128Error()
	}
	c.pos += int(n)
	return v, nil
}

// ReadVarI64 reads a signed LEB128 varint of up to 10 bytes.
func (c *Cursor) ReadVarI64() (int64, error) {
	v, n, err := leb128.LoadInt64(c.buf[c.pos:])
	if err != nil {
		return 0, wasm.NewInvalidLEB128Error()
	}
	c.pos += int(n)
	return v, nil
}

// ReadVarU8 reads a one-byte unsigned LEB128 value; the high bit must be
// clear.
func (c *Cursor) ReadVarU8() (uint8, error) {
	v, n, err := leb128.LoadVarU8(c.buf[c.pos:])
	if err != nil {
		return 0, wasm.NewInvalidLEB128Error()
	}
	c.pos += int(n)
	return v, nil
}

// ReadVarI8 reads a one-byte signed LEB128 value; the high bit must be
// clear.
func (c *Cursor) ReadVarI8() (int8, error) {
	v, n, err := leb128.LoadVarI8(c.buf[c.pos:])
	if err != nil {
		return 0, wasm.NewInvalidLEB128Error()
	}
	c.pos += int(n)
	return v, nil
}

// ReadVarF32 reads 4 little-endian bytes and returns their raw bit pattern,
// preserving NaN payloads instead of normalizing through a float64 value.
func (c *Cursor) ReadVarF32() (uint32, error) {
	b, err := c.ReadRange(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// ReadVarF64 reads 8 little-endian bytes and returns their raw bit pattern.
func (c *Cursor) ReadVarF64() (uint64, error) {
	b, err := c.ReadRange(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// Sub carves a length-bounded sub-cursor of exactly n bytes from the head of
// c, advancing c past them. The sub-cursor shares c's backing array.
func (c *Cursor) Sub(n uint32) (*Cursor, error) {
	b, err := c.ReadRange(int(n))
	if err != nil {
		return nil, err
	}
	return &Cursor{buf: b}, nil
}
