package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInstruction_RoundTrip(t *testing.T) {
	assert := assert.New(t)

	for word := range 0x10000 {
		in := Decode(uint16(word))
		if !assert.Equal(uint16(word), in.Encode(), "0x%04x", word) {
			break
		}
	}
}

func TestInstruction_Fields(t *testing.T) {
	assert := assert.New(t)

	// add.w [b], #  : class 1, src 2, dst 0, flags src-ptr, size 1, data 0
	word := uint16(0b000_01_01_000_010_001)
	in := Decode(word)
	assert.Equal(OP_ARI, in.Class)
	assert.Equal(TARGET_B, in.Source)
	assert.Equal(TARGET_CONST, in.Destination)
	assert.Equal(FLAG_SRC_PTR, in.Flags)
	assert.Equal(SIZE_WORD, in.Size)
	assert.Equal(uint8(0), in.Data)

	assert.Equal(Indirect(TARGET_B), in.SourceOperand())
	assert.Equal(Immediate, in.DestinationOperand())
	assert.Equal(OpArithmetic{Op: ARI_OP_ADD, Size: SIZE_WORD, Src: Indirect(TARGET_B), Dst: Immediate},
		in.Operation())
	assert.Contains(in.String(), "add.w [b] #")
}

func TestMakeCode(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name string
		code Code
		op   Operation
		len  int
	}){
		{"mov", MakeCodeMove(SIZE_DWORD, Immediate, Register(TARGET_A), 1500),
			OpMove{Size: SIZE_DWORD, Src: Immediate, Dst: Register(TARGET_A)}, 6},
		{"mov_abs", MakeCodeMove(SIZE_WORD, Absolute, Indirect(TARGET_D), 0x40),
			OpMove{Size: SIZE_WORD, Src: Absolute, Dst: Indirect(TARGET_D)}, 4},
		{"sub", MakeCodeAri(ARI_OP_SUB, SIZE_BYTE, Register(TARGET_B), Immediate, 1),
			OpArithmetic{Op: ARI_OP_SUB, Size: SIZE_BYTE, Src: Register(TARGET_B), Dst: Immediate}, 3},
		{"le", MakeCodeTest(TEST_OP_LE, SIZE_DWORD, Immediate, Immediate, 1, 2),
			OpTest{Op: TEST_OP_LE, Size: SIZE_DWORD, Src: Immediate, Dst: Immediate}, 10},
		{"rjmp", MakeCodeFlow(FLOW_OP_RJMP, SIZE_BYTE, Immediate, 0xfc),
			OpFlow{Op: FLOW_OP_RJMP, Size: SIZE_BYTE, Src: Immediate}, 3},
		{"not", MakeCodeLogic(LOGIC_OP_NOT, SIZE_DWORD, Register(TARGET_C), Register(TARGET_A)),
			OpLogic{Op: LOGIC_OP_NOT, Size: SIZE_DWORD, Src: Register(TARGET_C), Dst: Register(TARGET_A)}, 2},
		{"push", MakeCodePush(SIZE_WORD, Immediate, 7),
			OpPush{Size: SIZE_WORD, Src: Immediate}, 4},
		{"pop", MakeCodePop(SIZE_DWORD, Register(TARGET_T)),
			OpPop{Size: SIZE_DWORD, Dst: Register(TARGET_T)}, 2},
		{"setve", MakeCodeCpu(CPU_OP_SETVE, SIZE_WORD, Immediate, Immediate, 1, 0x100),
			OpCpu{Op: CPU_OP_SETVE, Size: SIZE_WORD, Src: Immediate, Dst: Immediate}, 6},
	}

	for _, entry := range table {
		assert.Equal(entry.op, entry.code.Instruction().Operation(), entry.name)
		assert.Equal(entry.len, entry.code.Len(), entry.name)
		assert.Equal(entry.len, len(entry.code.Bytes()), entry.name)
	}
}

func TestCode_Bytes(t *testing.T) {
	assert := assert.New(t)

	code := MakeCodeMove(SIZE_DWORD, Immediate, Register(TARGET_A), 0x11223344)
	data := code.Bytes()
	assert.Equal([]byte{uint8(code.Word), uint8(code.Word >> 8), 0x44, 0x33, 0x22, 0x11}, data)

	code = MakeCodeTest(TEST_OP_EQ, SIZE_WORD, Immediate, Immediate, 0x1234, 0x5678)
	data = code.Bytes()
	assert.Equal([]byte{0x34, 0x12, 0x78, 0x56}, data[2:])
}

func TestOperation_Invalid(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		class  CodeClass
		data   uint8
		reason FaultReason
	}){
		{OP_ARI, 7, FAULT_ARITHMETIC},
		{OP_TST, 5, FAULT_TEST},
		{OP_TST, 7, FAULT_TEST},
		{OP_LOG, 4, FAULT_LOGIC},
		{OP_STA, 2, FAULT_STACK},
		{OP_CPU, 5, FAULT_CPU},
		{OP_PRT, 0, FAULT_CORE},
		{OP_PRT, 3, FAULT_CORE},
	}

	for _, entry := range table {
		in := Instruction{Class: entry.class, Source: TARGET_A, Destination: TARGET_A, Size: SIZE_DWORD, Data: entry.data}
		op, ok := in.Operation().(OpInvalid)
		if assert.True(ok, in.String()) {
			assert.Equal(entry.reason, op.Reason)
			assert.Equal(entry.data, op.Data)
			assert.Equal(entry.class, op.Class())
		}
	}

	// Moves have no Data field.
	in := Instruction{Class: OP_MOV, Source: TARGET_A, Destination: TARGET_B, Data: 7}
	assert.Equal(OpInvalid{Reason: FAULT_CORE, Family: OP_MOV, Data: 7}, in.Operation())
}

func TestCodeSize(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(1, SIZE_BYTE.Bytes())
	assert.Equal(2, SIZE_WORD.Bytes())
	assert.Equal(4, SIZE_DWORD.Bytes())
	assert.Equal(0, CodeSize(3).Bytes())

	assert.Equal(uint32(0xff), SIZE_BYTE.Limit())
	assert.Equal(uint32(0xffff), SIZE_WORD.Limit())
	assert.Equal(uint32(0xffffffff), SIZE_DWORD.Limit())
}

func TestCodeTarget_Register(t *testing.T) {
	assert := assert.New(t)

	_, ok := TARGET_CONST.Register()
	assert.False(ok)

	reg, ok := TARGET_A.Register()
	assert.True(ok)
	assert.Equal(REG_A, reg)

	reg, ok = TARGET_X.Register()
	assert.True(ok)
	assert.Equal(REG_X, reg)
}
