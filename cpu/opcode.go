package cpu

import (
	"encoding/binary"
	"fmt"
)

// CodeClass is the instruction family, held in bits 0-2 of the word.
type CodeClass int

//go:generate go tool stringer -linecomment -type=CodeClass
const (
	OP_MOV = CodeClass(0) // mov
	OP_ARI = CodeClass(1) // ari
	OP_TST = CodeClass(2) // tst
	OP_FLO = CodeClass(3) // flo
	OP_LOG = CodeClass(4) // log
	OP_STA = CodeClass(5) // sta
	OP_CPU = CodeClass(6) // cpu
	OP_PRT = CodeClass(7) // prt
)

// CodeTarget names a register, or the constant stream, for one operand side.
type CodeTarget int

//go:generate go tool stringer -linecomment -type=CodeTarget
const (
	TARGET_CONST = CodeTarget(0) // const
	TARGET_A     = CodeTarget(1) // a
	TARGET_B     = CodeTarget(2) // b
	TARGET_C     = CodeTarget(3) // c
	TARGET_D     = CodeTarget(4) // d
	TARGET_S     = CodeTarget(5) // s
	TARGET_T     = CodeTarget(6) // t
	TARGET_X     = CodeTarget(7) // x
)

// Register returns the register bank index of the target.
func (target CodeTarget) Register() (reg int, ok bool) {
	if target <= TARGET_CONST || target > TARGET_X {
		return
	}

	return int(target - TARGET_A), true
}

// CodeFlags are the per-side pointer bits.
type CodeFlags int

const (
	FLAG_SRC_PTR = CodeFlags(1 << 0) // Source is dereferenced.
	FLAG_DST_PTR = CodeFlags(1 << 1) // Destination is dereferenced.
)

// CodeSize is the width of immediates and memory accesses.
type CodeSize int

//go:generate go tool stringer -linecomment -type=CodeSize
const (
	SIZE_BYTE  = CodeSize(0) // b
	SIZE_WORD  = CodeSize(1) // w
	SIZE_DWORD = CodeSize(2) // d
)

// Bytes returns the width in bytes, or 0 for an undefined size.
func (size CodeSize) Bytes() int {
	switch size {
	case SIZE_BYTE:
		return 1
	case SIZE_WORD:
		return 2
	case SIZE_DWORD:
		return 4
	}
	return 0
}

// Limit returns the largest value representable at the size.
func (size CodeSize) Limit() uint32 {
	switch size {
	case SIZE_BYTE:
		return 0xff
	case SIZE_WORD:
		return 0xffff
	}
	return 0xffffffff
}

// CodeAriOp is an arithmetic sub-operation.
type CodeAriOp int

//go:generate go tool stringer -linecomment -type=CodeAriOp
const (
	ARI_OP_ADD = CodeAriOp(0) // add
	ARI_OP_SUB = CodeAriOp(1) // sub
	ARI_OP_MUL = CodeAriOp(2) // mul
	ARI_OP_DIV = CodeAriOp(3) // div
	ARI_OP_MOD = CodeAriOp(4) // mod
	ARI_OP_SHR = CodeAriOp(5) // shr
	ARI_OP_SHL = CodeAriOp(6) // shl
)

// CodeTestOp is a comparison sub-operation.
type CodeTestOp int

//go:generate go tool stringer -linecomment -type=CodeTestOp
const (
	TEST_OP_EQ = CodeTestOp(0) // eq
	TEST_OP_GT = CodeTestOp(1) // gt
	TEST_OP_LT = CodeTestOp(2) // lt
	TEST_OP_GE = CodeTestOp(3) // ge
	TEST_OP_LE = CodeTestOp(4) // le
)

// CodeFlowOp is a flow control sub-operation.
type CodeFlowOp int

//go:generate go tool stringer -linecomment -type=CodeFlowOp
const (
	FLOW_OP_JMP  = CodeFlowOp(0) // jmp
	FLOW_OP_TJMP = CodeFlowOp(1) // tjmp
	FLOW_OP_FJMP = CodeFlowOp(2) // fjmp
	FLOW_OP_RJMP = CodeFlowOp(3) // rjmp
	FLOW_OP_CALL = CodeFlowOp(4) // call
	FLOW_OP_INT  = CodeFlowOp(5) // int
	FLOW_OP_RET  = CodeFlowOp(6) // ret
	FLOW_OP_IRET = CodeFlowOp(7) // iret
)

// CodeLogicOp is a bitwise sub-operation.
type CodeLogicOp int

//go:generate go tool stringer -linecomment -type=CodeLogicOp
const (
	LOGIC_OP_AND = CodeLogicOp(0) // and
	LOGIC_OP_OR  = CodeLogicOp(1) // or
	LOGIC_OP_XOR = CodeLogicOp(2) // xor
	LOGIC_OP_NOT = CodeLogicOp(3) // not
)

// CodeStackOp is a stack sub-operation.
type CodeStackOp int

//go:generate go tool stringer -linecomment -type=CodeStackOp
const (
	STACK_OP_PUSH = CodeStackOp(0) // push
	STACK_OP_POP  = CodeStackOp(1) // pop
)

// CodeCpuOp is a CPU state sub-operation.
type CodeCpuOp int

//go:generate go tool stringer -linecomment -type=CodeCpuOp
const (
	CPU_OP_HLT   = CodeCpuOp(0) // hlt
	CPU_OP_CLI   = CodeCpuOp(1) // cli
	CPU_OP_STI   = CodeCpuOp(2) // sti
	CPU_OP_RST   = CodeCpuOp(3) // rst
	CPU_OP_SETVE = CodeCpuOp(4) // setve
)

// Instruction is the field view of a 16-bit instruction word.
//
//	bits  0-2   Class
//	bits  3-5   Source
//	bits  6-8   Destination
//	bits  9-10  Flags
//	bits 11-12  Size
//	bits 13-15  Data
//
// No field is validated; out of range patterns survive a round trip.
type Instruction struct {
	Class       CodeClass
	Source      CodeTarget
	Destination CodeTarget
	Flags       CodeFlags
	Size        CodeSize
	Data        uint8
}

// Decode unpacks an instruction word.
func Decode(word uint16) (in Instruction) {
	in = Instruction{
		Class:       CodeClass((word >> 0) & 0x7),
		Source:      CodeTarget((word >> 3) & 0x7),
		Destination: CodeTarget((word >> 6) & 0x7),
		Flags:       CodeFlags((word >> 9) & 0x3),
		Size:        CodeSize((word >> 11) & 0x3),
		Data:        uint8((word >> 13) & 0x7),
	}
	return
}

// Encode packs the instruction into its word.
func (in Instruction) Encode() (word uint16) {
	word |= (uint16(in.Class) & 0x7) << 0
	word |= (uint16(in.Source) & 0x7) << 3
	word |= (uint16(in.Destination) & 0x7) << 6
	word |= (uint16(in.Flags) & 0x3) << 9
	word |= (uint16(in.Size) & 0x3) << 11
	word |= (uint16(in.Data) & 0x7) << 13
	return
}

// SourceOperand returns the addressing of the source side.
func (in Instruction) SourceOperand() Operand {
	return makeOperand(in.Source, in.Flags&FLAG_SRC_PTR != 0)
}

// DestinationOperand returns the addressing of the destination side.
func (in Instruction) DestinationOperand() Operand {
	return makeOperand(in.Destination, in.Flags&FLAG_DST_PTR != 0)
}

// String returns the mnemonic form, followed by the raw word.
func (in Instruction) String() string {
	word := in.Encode()
	return fmt.Sprintf("%v [0x%04x %016b]", in.Operation(), word, word)
}

// Code is an assembled instruction: the word and the immediates that
// follow it in the code stream, in the order they are consumed.
type Code struct {
	Word       uint16
	Immediates []uint32
}

// makeCode packs the fields of an instruction into a Code.
func makeCode(class CodeClass, data uint8, size CodeSize, src, dst Operand, imms ...uint32) Code {
	src_target, src_ptr := src.fields()
	dst_target, dst_ptr := dst.fields()

	var flags CodeFlags
	if src_ptr {
		flags |= FLAG_SRC_PTR
	}
	if dst_ptr {
		flags |= FLAG_DST_PTR
	}

	in := Instruction{
		Class:       class,
		Source:      src_target,
		Destination: dst_target,
		Flags:       flags,
		Size:        size,
		Data:        data,
	}

	return Code{Word: in.Encode(), Immediates: imms}
}

// MakeCodeMove creates a move from src to dst.
func MakeCodeMove(size CodeSize, src, dst Operand, imms ...uint32) Code {
	return makeCode(OP_MOV, 0, size, src, dst, imms...)
}

// MakeCodeAri creates an arithmetic operation, X = src op dst.
func MakeCodeAri(op CodeAriOp, size CodeSize, src, dst Operand, imms ...uint32) Code {
	return makeCode(OP_ARI, uint8(op), size, src, dst, imms...)
}

// MakeCodeTest creates a comparison, T = src op dst.
func MakeCodeTest(op CodeTestOp, size CodeSize, src, dst Operand, imms ...uint32) Code {
	return makeCode(OP_TST, uint8(op), size, src, dst, imms...)
}

// MakeCodeFlow creates a flow control operation targeting src.
func MakeCodeFlow(op CodeFlowOp, size CodeSize, src Operand, imms ...uint32) Code {
	return makeCode(OP_FLO, uint8(op), size, src, Register(TARGET_A), imms...)
}

// MakeCodeLogic creates a bitwise operation, X = src op dst.
func MakeCodeLogic(op CodeLogicOp, size CodeSize, src, dst Operand, imms ...uint32) Code {
	return makeCode(OP_LOG, uint8(op), size, src, dst, imms...)
}

// MakeCodePush creates a push of src.
func MakeCodePush(size CodeSize, src Operand, imms ...uint32) Code {
	return makeCode(OP_STA, uint8(STACK_OP_PUSH), size, src, Register(TARGET_A), imms...)
}

// MakeCodePop creates a pop into dst.
func MakeCodePop(size CodeSize, dst Operand) Code {
	return makeCode(OP_STA, uint8(STACK_OP_POP), size, Register(TARGET_A), dst)
}

// MakeCodeCpu creates a CPU state operation.
func MakeCodeCpu(op CodeCpuOp, size CodeSize, src, dst Operand, imms ...uint32) Code {
	return makeCode(OP_CPU, uint8(op), size, src, dst, imms...)
}

// Instruction returns the field view of the code word.
func (code Code) Instruction() Instruction {
	return Decode(code.Word)
}

// Len returns the number of bytes the code occupies in memory.
func (code Code) Len() int {
	return 2 + len(code.Immediates)*code.Instruction().Size.Bytes()
}

// Bytes returns the little-endian wire form of the code.
func (code Code) Bytes() (data []byte) {
	data = binary.LittleEndian.AppendUint16(data, code.Word)

	size := code.Instruction().Size
	for _, imm := range code.Immediates {
		switch size {
		case SIZE_BYTE:
			data = append(data, uint8(imm))
		case SIZE_WORD:
			data = binary.LittleEndian.AppendUint16(data, uint16(imm))
		case SIZE_DWORD:
			data = binary.LittleEndian.AppendUint32(data, imm)
		}
	}

	return
}

// String returns the mnemonic form of this code and its immediates.
func (code Code) String() string {
	return fmt.Sprintf("%v imm:%#v", code.Instruction().Operation(), code.Immediates)
}
