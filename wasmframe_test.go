package wasmframe_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wasmframe/wasmframe"
)

func header() []byte {
	return []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}
}

// S1: the empty module is just the 8 byte header with no sections.
func TestCursorEmptyModule(t *testing.T) {
	c := wasmframe.NewCursor(header())

	head := c.Next()
	require.Equal(t, wasmframe.FrameHead, head.Kind)
	require.Equal(t, uint32(1), head.Version)

	end := c.Next()
	require.Equal(t, wasmframe.FrameEnd, end.Kind)

	// Terminal frames repeat rather than panicking or reading further.
	require.Equal(t, end, c.Next())
}

// S2: a module with a single type section declaring one nullary function
// type.
func TestCursorOneType(t *testing.T) {
	data := append(header(), 0x01, 0x04, 0x01, 0x60, 0x00, 0x00)
	c := wasmframe.NewCursor(data)

	require.Equal(t, wasmframe.FrameHead, c.Next().Kind)

	f := c.Next()
	require.Equal(t, wasmframe.FrameSection, f.Kind)
	require.Equal(t, wasmframe.SectionIDType, f.Section.ID)
	require.Len(t, f.Section.Types, 1)
	require.Empty(t, f.Section.Types[0].Params)
	require.Empty(t, f.Section.Types[0].Results)

	require.Equal(t, wasmframe.FrameEnd, c.Next().Kind)
}

// S3: a header with a corrupted magic number fails immediately, before any
// section is read.
func TestCursorBadMagic(t *testing.T) {
	data := []byte{0x00, 0x61, 0x73, 0x6e, 0x01, 0x00, 0x00, 0x00}
	c := wasmframe.NewCursor(data)

	f := c.Next()
	require.Equal(t, wasmframe.FrameParserError, f.Kind)
	require.ErrorContains(t, f.Err, "magic")
}

// S4: a header with an unsupported version fails the same way.
func TestCursorBadVersion(t *testing.T) {
	data := []byte{0x00, 0x61, 0x73, 0x6d, 0x02, 0x00, 0x00, 0x00}
	c := wasmframe.NewCursor(data)

	f := c.Next()
	require.Equal(t, wasmframe.FrameParserError, f.Kind)
	require.ErrorContains(t, f.Err, "version")
}

// S5: a module declaring a start function.
func TestCursorStartSection(t *testing.T) {
	data := append(header(), 0x08, 0x01, 0x00)
	c := wasmframe.NewCursor(data)

	require.Equal(t, wasmframe.FrameHead, c.Next().Kind)

	f := c.Next()
	require.Equal(t, wasmframe.FrameSection, f.Kind)
	require.Equal(t, wasmframe.SectionIDStart, f.Section.ID)
	require.Equal(t, wasmframe.Index(0), *f.Section.Start)

	require.Equal(t, wasmframe.FrameEnd, c.Next().Kind)
}

// S6: a code section with one function body of no locals and a bare
// end instruction.
func TestCursorMinimalFunctionBody(t *testing.T) {
	data := append(header(), 0x0a, 0x04, 0x01, 0x02, 0x00, 0x0b)
	c := wasmframe.NewCursor(data)

	require.Equal(t, wasmframe.FrameHead, c.Next().Kind)

	f := c.Next()
	require.Equal(t, wasmframe.FrameSection, f.Kind)
	require.Equal(t, wasmframe.SectionIDCode, f.Section.ID)
	require.Len(t, f.Section.Code, 1)
	require.Empty(t, f.Section.Code[0].Locals)
	require.Len(t, f.Section.Code[0].Body, 1)
	require.Equal(t, wasmframe.Opcode(0x0b), f.Section.Code[0].Body[0].Opcode)

	require.Equal(t, wasmframe.FrameEnd, c.Next().Kind)
}

func TestCursorSectionCountMismatchFails(t *testing.T) {
	// type section declares a length of 5 bytes but the body is malformed
	// for that length: a count that says one entry, but 1 trailing junk
	// byte left over once that entry is decoded.
	data := append(header(), 0x01, 0x05, 0x01, 0x60, 0x00, 0x00, 0xff)
	c := wasmframe.NewCursor(data)
	require.Equal(t, wasmframe.FrameHead, c.Next().Kind)

	f := c.Next()
	require.Equal(t, wasmframe.FrameParserError, f.Kind)
}

func TestModuleNameFromCustom(t *testing.T) {
	payload := []byte{0x00, 0x04, 0x03, 'f', 'o', 'o'}
	name, ok := wasmframe.ModuleNameFromCustom("name", payload)
	require.True(t, ok)
	require.Equal(t, "foo", name)
}

func TestModuleNameFromCustomIgnoresOtherSections(t *testing.T) {
	_, ok := wasmframe.ModuleNameFromCustom("producers", []byte{0x00})
	require.False(t, ok)
}

func TestModuleNameFromCustomDegradesOnMalformedPayload(t *testing.T) {
	_, ok := wasmframe.ModuleNameFromCustom("name", []byte{0x00, 0xff})
	require.False(t, ok)
}
