package wasmframe

import (
	"github.com/wasmframe/wasmframe/internal/wasm/binary"
)

// ModuleNameFromCustom extracts the module name carried by the "name"
// custom section's module name subsection, if present. It is an opt-in
// convenience over a CustomSection already produced by Cursor.Next: it
// never runs automatically and never changes what Next yields.
//
// payload is CustomSection.Data; name is CustomSection.Name. ok is false
// whenever name isn't "name", the payload is too short, malformed, or
// simply doesn't carry a module name subsection — callers get a negative
// result instead of an error for anything but the exact match they asked
// for.
func ModuleNameFromCustom(name string, payload []byte) (string, bool) {
	if name != "name" {
		return "", false
	}
	c := binary.NewCursor(payload)
	for !c.IsEmpty() {
		subID, err := c.ReadByte()
		if err != nil {
			return "", false
		}
		size, err := c.ReadVarU32()
		if err != nil {
			return "", false
		}
		sub, err := c.Sub(size)
		if err != nil {
			return "", false
		}
		const moduleNameSubsectionID = 0
		if subID != moduleNameSubsectionID {
			continue
		}
		nameLen, err := sub.ReadVarU32()
		if err != nil {
			return "", false
		}
		got, err := sub.ReadStr(int(nameLen))
		if err != nil {
			return "", false
		}
		return got, true
	}
	return "", false
}
