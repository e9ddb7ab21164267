package leb128

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadUint32(t *testing.T) {
	for _, c := range []struct {
		name   string
		bytes  []byte
		exp    uint32
		expErr bool
	}{
		{name: "zero", bytes: []byte{0x00}, exp: 0},
		{name: "one byte", bytes: []byte{0x04}, exp: 4},
		{name: "two bytes", bytes: []byte{0x80, 0x7f}, exp: 16256},
		{name: "three bytes", bytes: []byte{0xe5, 0x8e, 0x26}, exp: 624485},
		{name: "four bytes", bytes: []byte{0x80, 0x80, 0x80, 0x4f}, exp: 165675008},
		{name: "max uint32, five bytes", bytes: []byte{0xff, 0xff, 0xff, 0xff, 0xf}, exp: math.MaxUint32},
		{name: "six bytes overflows the 5 byte limit", bytes: []byte{0x83, 0x80, 0x80, 0x80, 0x80, 0x00}, expErr: true},
		{name: "excess high bits set in final byte", bytes: []byte{0x82, 0x80, 0x80, 0x80, 0x70}, expErr: true},
		{name: "never terminates within five bytes", bytes: []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x00}, expErr: true},
		{name: "truncated", bytes: []byte{0x80}, expErr: true},
	} {
		t.Run(c.name, func(t *testing.T) {
			actual, n, err := LoadUint32(c.bytes)
			if c.expErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, c.exp, actual)
			if len(c.bytes) <= 5 {
				require.Equal(t, uint64(len(c.bytes)), n)
			}
		})
	}
}

func TestLoadUint64(t *testing.T) {
	for _, c := range []struct {
		name   string
		bytes  []byte
		exp    uint64
		expErr bool
	}{
		{name: "small", bytes: []byte{0x04}, exp: 4},
		{name: "max uint32", bytes: []byte{0xff, 0xff, 0xff, 0xff, 0xf}, exp: math.MaxUint32},
		{name: "max uint64, ten bytes", bytes: []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x1}, exp: math.MaxUint64},
		{name: "excess high bits in final byte", bytes: []byte{0x89, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x71}, expErr: true},
	} {
		t.Run(c.name, func(t *testing.T) {
			actual, n, err := LoadUint64(c.bytes)
			if c.expErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, c.exp, actual)
			require.Equal(t, uint64(len(c.bytes)), n)
		})
	}
}

func TestLoadInt32(t *testing.T) {
	for i, c := range []struct {
		bytes  []byte
		exp    int32
		expErr bool
	}{
		{bytes: []byte{0x13}, exp: 19},
		{bytes: []byte{0x00}, exp: 0},
		{bytes: []byte{0x04}, exp: 4},
		{bytes: []byte{0xFF, 0x00}, exp: 127},
		{bytes: []byte{0x81, 0x01}, exp: 129},
		{bytes: []byte{0x7f}, exp: -1},
		{bytes: []byte{0x81, 0x7f}, exp: -127},
		{bytes: []byte{0xFF, 0x7e}, exp: -129},
		{bytes: []byte{math.MaxUint8 & 0xff, 0xff, 0xff, 0xff, 0x0f}, expErr: true},
		{bytes: []byte{0xff, 0xff, 0xff, 0xff, 0x4f}, expErr: true},
		{bytes: []byte{0x80, 0x80, 0x80, 0x80, 0x70}, expErr: true},
	} {
		t.Run("", func(t *testing.T) {
			actual, n, err := LoadInt32(c.bytes)
			if c.expErr {
				require.Error(t, err, i)
				return
			}
			require.NoError(t, err, i)
			require.Equal(t, c.exp, actual, i)
			require.Equal(t, uint64(len(c.bytes)), n, i)
		})
	}
}

func TestLoadInt64(t *testing.T) {
	for _, c := range []struct {
		bytes []byte
		exp   int64
	}{
		{bytes: []byte{0x00}, exp: 0},
		{bytes: []byte{0x04}, exp: 4},
		{bytes: []byte{0xFF, 0x00}, exp: 127},
		{bytes: []byte{0x81, 0x01}, exp: 129},
		{bytes: []byte{0x7f}, exp: -1},
		{bytes: []byte{0x81, 0x7f}, exp: -127},
		{bytes: []byte{0xFF, 0x7e}, exp: -129},
		{
			bytes: []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x7f},
			exp:   math.MinInt64,
		},
	} {
		actual, n, err := LoadInt64(c.bytes)
		require.NoError(t, err)
		require.Equal(t, c.exp, actual)
		require.Equal(t, uint64(len(c.bytes)), n)
	}
}

func TestLoadVarU8(t *testing.T) {
	actual, n, err := LoadVarU8([]byte{0x00})
	require.NoError(t, err)
	require.Equal(t, uint8(0), actual)
	require.Equal(t, uint64(1), n)

	_, _, err = LoadVarU8([]byte{0x80})
	require.Error(t, err)
}

func TestLoadVarI8(t *testing.T) {
	actual, _, err := LoadVarI8([]byte{0x7f})
	require.NoError(t, err)
	require.Equal(t, int8(-1), actual)

	_, _, err = LoadVarI8([]byte{0xff})
	require.Error(t, err)
}
