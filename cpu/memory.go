package cpu

import (
	"encoding/binary"
)

const (
	MEMORY_SIZE = 16 << 20 // Bytes of flat memory.
)

// Memory is the flat, byte addressed store shared by code, data and stack.
// Accesses are little-endian and need no alignment.
type Memory []byte

// NewMemory returns a zeroed memory of MEMORY_SIZE bytes.
func NewMemory() Memory {
	return make(Memory, MEMORY_SIZE)
}

// span returns the bytes covered by an access, or an error if any of
// them fall outside memory.
func (mem Memory) span(addr uint32, size CodeSize) (data []byte, err error) {
	width := size.Bytes()
	if width == 0 {
		err = ErrOperandSize
		return
	}

	end := uint64(addr) + uint64(width)
	if end > uint64(len(mem)) {
		err = ErrAddress{Address: addr, Size: size}
		return
	}

	data = mem[addr:end]
	return
}

// Read returns the zero-extended value at addr.
func (mem Memory) Read(addr uint32, size CodeSize) (value uint32, err error) {
	data, err := mem.span(addr, size)
	if err != nil {
		return
	}

	switch size {
	case SIZE_BYTE:
		value = uint32(data[0])
	case SIZE_WORD:
		value = uint32(binary.LittleEndian.Uint16(data))
	case SIZE_DWORD:
		value = binary.LittleEndian.Uint32(data)
	}

	return
}

// Write stores value at addr. Byte and word writes of values that do
// not fit the width fail with ErrOperandWidth.
func (mem Memory) Write(addr uint32, value uint32, size CodeSize) (err error) {
	data, err := mem.span(addr, size)
	if err != nil {
		return
	}

	if value > size.Limit() {
		err = ErrOperandWidth
		return
	}

	switch size {
	case SIZE_BYTE:
		data[0] = uint8(value)
	case SIZE_WORD:
		binary.LittleEndian.PutUint16(data, uint16(value))
	case SIZE_DWORD:
		binary.LittleEndian.PutUint32(data, value)
	}

	return
}
