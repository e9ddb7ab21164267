// Package leb128 decodes LEB128 variable-length integers from byte slices,
// per https://webassembly.github.io/spec/core/binary/values.html#integers
package leb128

import "fmt"

// maxVarintLenN mirrors encoding/binary's naming: the maximum number of bytes
// a LEB128 varint may occupy for a given bit width, per the WebAssembly spec
// (ceil(bits/7), plus the sign/continuation bit accounting below).
const (
	maxVarintLen32 = 5
	maxVarintLen33 = 5
	maxVarintLen64 = 10
)

// ErrOverflow is returned when a varint's encoded length exceeds the maximum
// permitted for its target width.
var ErrOverflow = fmt.Errorf("leb128: invalid LEB128 encoding")

// LoadUint32 decodes an unsigned 32-bit LEB128 varint from the head of buf.
// It returns the decoded value and the number of bytes consumed.
func LoadUint32(buf []byte) (ret uint32, bytesRead uint64, err error) {
	v, n, err := loadUnsigned(buf, 32, maxVarintLen32)
	return uint32(v), n, err
}

// LoadUint64 decodes an unsigned 64-bit LEB128 varint from the head of buf.
func LoadUint64(buf []byte) (ret uint64, bytesRead uint64, err error) {
	return loadUnsigned(buf, 64, maxVarintLen64)
}

// LoadInt32 decodes a signed 32-bit LEB128 varint from the head of buf,
// performing sign extension from the last significant bit.
func LoadInt32(buf []byte) (ret int32, bytesRead uint64, err error) {
	v, n, err := loadSigned(buf, 32, maxVarintLen32)
	return int32(v), n, err
}

// LoadInt64 decodes a signed 64-bit LEB128 varint from the head of buf.
func LoadInt64(buf []byte) (ret int64, bytesRead uint64, err error) {
	return loadSigned(buf, 64, maxVarintLen64)
}

// LoadVarU8 decodes a one-byte unsigned LEB128 value: the high bit of the
// single byte must be clear.
func LoadVarU8(buf []byte) (ret uint8, bytesRead uint64, err error) {
	if len(buf) < 1 {
		return 0, 0, ErrOverflow
	}
	b := buf[0]
	if b&0x80 != 0 {
		return 0, 0, ErrOverflow
	}
	return b, 1, nil
}

// LoadVarI8 decodes a one-byte signed LEB128 value: the high bit of the
// single byte must be clear, and bit 6 sign-extends the result.
func LoadVarI8(buf []byte) (ret int8, bytesRead uint64, err error) {
	if len(buf) < 1 {
		return 0, 0, ErrOverflow
	}
	b := buf[0]
	if b&0x80 != 0 {
		return 0, 0, ErrOverflow
	}
	if b&0x40 != 0 {
		b |= 0x80
	}
	return int8(b), 1, nil
}

func loadUnsigned(buf []byte, bits int, maxLen int) (uint64, uint64, error) {
	var result uint64
	var shift uint
	for i := 0; i < maxLen; i++ {
		if i >= len(buf) {
			return 0, 0, ErrOverflow
		}
		b := buf[i]
		if shift+7 > uint(bits) {
			// final permitted byte: only the bits that fit in `bits` may be set.
			mask := uint64(1<<uint(bits-int(shift))) - 1
			if uint64(b&0x7f)&^mask != 0 {
				return 0, 0, ErrOverflow
			}
		}
		result |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return result, uint64(i + 1), nil
		}
		shift += 7
	}
	return 0, 0, ErrOverflow
}

func loadSigned(buf []byte, bits int, maxLen int) (int64, uint64, error) {
	var result int64
	var shift uint
	var b byte
	i := 0
	for ; i < maxLen; i++ {
		if i >= len(buf) {
			return 0, 0, ErrOverflow
		}
		b = buf[i]
		result |= int64(b&0x7f) << shift
		shift += 7
		if b&0x80 == 0 {
			break
		}
	}
	if i == maxLen && b&0x80 != 0 {
		return 0, 0, ErrOverflow
	}
	// sign extend if the sign bit of the final byte's significant bits is set
	// and we have not yet filled the full width.
	if shift < 64 && b&0x40 != 0 {
		result |= -1 << shift
	}
	if bits < 64 {
		// validate that the decoded value fits in the target width once
		// sign-extended to 64 bits, matching the WebAssembly spec's
		// requirement that excess bits all agree with the sign bit.
		min, max := int64(-1)<<uint(bits-1), int64(1)<<uint(bits-1)-1
		if result < min || result > max {
			return 0, 0, ErrOverflow
		}
	}
	return result, uint64(i + 1), nil
}
