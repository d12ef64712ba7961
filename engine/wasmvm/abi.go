package wasmvm

import "github.com/tetratelabs/wazero/api"

// packPtrLen packs a guest pointer and length into a single i64.
// Upper 32 bits: pointer, lower 32 bits: length.
func packPtrLen(ptr, length uint32) uint64 {
	return (uint64(ptr) << 32) | uint64(length)
}

// unpackPtrLen unpacks a pointer and length from a packed i64.
func unpackPtrLen(packed uint64) (ptr, length uint32) {
	ptr = uint32(packed >> 32)           //nolint:gosec // G115: packed format stores 32-bit values
	length = uint32(packed & 0xFFFFFFFF) //nolint:gosec // G115: packed format stores 32-bit values
	return ptr, length
}

// readGuestString reads a packed ptr/len text region from guest memory.
// The returned string is a copy; guest memory may move on the next
// allocation.
func readGuestString(m api.Module, packed uint64) (string, bool) {
	ptr, length := unpackPtrLen(packed)
	if length == 0 {
		return "", true
	}
	data, ok := m.Memory().Read(ptr, length)
	if !ok {
		return "", false
	}
	return string(data), true
}
