package cpu

import (
	"iter"
)

// Program is an assembled listing.
type Program struct {
	Opcodes []Opcode
}

// Debug locates the opcode covering an address.
type Debug struct {
	*Opcode
	Index int // Index of the code within the opcode, or -1 for data.
}

// Debug returns the opcode whose bytes cover ip.
func (prog *Program) Debug(ip uint32) (dbg Debug) {
	for n, op := range prog.Opcodes {
		if ip < op.Ip || ip >= op.Ip+uint32(op.Len()) {
			continue
		}

		dbg = Debug{
			Opcode: &prog.Opcodes[n],
			Index:  -1,
		}

		at := op.Ip
		for index, code := range op.Codes {
			if ip >= at && ip < at+uint32(code.Len()) {
				dbg.Index = index
				break
			}
			at += uint32(code.Len())
		}
		break
	}

	return
}

// Binary returns the memory image of the program, starting at address 0.
func (prog *Program) Binary() (image []byte) {
	for _, op := range prog.Opcodes {
		end := int(op.Ip) + op.Len()
		if end > len(image) {
			image = append(image, make([]byte, end-len(image))...)
		}
		copy(image[op.Ip:], op.Bytes())
	}

	return
}

// Codes iterates over each code and its address.
func (prog *Program) Codes() iter.Seq2[uint32, Code] {
	return func(yield func(ip uint32, code Code) bool) {
		for _, op := range prog.Opcodes {
			ip := op.Ip
			for _, code := range op.Codes {
				if !yield(ip, code) {
					return
				}
				ip += uint32(code.Len())
			}
		}
	}
}
