package cpu

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	asm.Predefine("STACK_TOP", "0x10000")

	prog, err := asm.Parse(strings.NewReader(""))
	assert.NoError(err)
	assert.Equal(0, len(prog.Opcodes))

	assert.Equal("0", asm.Equate["LINENO"])
	assert.Equal("0x10000", asm.Equate["STACK_TOP"])
}

func opEqual(t *testing.T, expected, opcodes []Opcode) {
	assert := assert.New(t)

	assert.Equal(len(expected), len(opcodes))
	if len(expected) == len(opcodes) {
		for n := range len(expected) {
			assert.Equal(expected[n], opcodes[n])
		}
	}
}

func parse(t *testing.T, program ...string) *Program {
	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	require.NoError(t, err)
	return prog
}

func TestAssemblerMove(t *testing.T) {
	program := []string{
		"mov.d 1500 a",
		"mov.w [a] [0x40]",
		"mov b, c ; comment",
		"mov.b 'A' d",
		"hlt",
	}

	prog := parse(t, program...)

	expected := []Opcode{
		{LineNo: 1, Ip: 0, Words: []string{"mov.d", "1500", "a"},
			Codes: []Code{MakeCodeMove(SIZE_DWORD, Immediate, Register(TARGET_A), 1500)}},
		{LineNo: 2, Ip: 6, Words: []string{"mov.w", "[a]", "[0x40]"},
			Codes: []Code{MakeCodeMove(SIZE_WORD, Indirect(TARGET_A), Absolute, 0x40)}},
		{LineNo: 3, Ip: 10, Words: []string{"mov", "b", "c"},
			Codes: []Code{MakeCodeMove(SIZE_DWORD, Register(TARGET_B), Register(TARGET_C))}},
		{LineNo: 4, Ip: 12, Words: []string{"mov.b", "65", "d"},
			Codes: []Code{MakeCodeMove(SIZE_BYTE, Immediate, Register(TARGET_D), 65)}},
		{LineNo: 5, Ip: 15, Words: []string{"hlt"},
			Codes: []Code{MakeCodeCpu(CPU_OP_HLT, SIZE_DWORD, Register(TARGET_A), Register(TARGET_A))}},
	}

	opEqual(t, expected, prog.Opcodes)
}

func TestAssemblerUnits(t *testing.T) {
	program := []string{
		"sub.d b 1",
		"le.w 2 [c]",
		"not x",
		"xor a b",
		"push.w 7",
		"pop t",
		"setve.b 3 0x40",
		"rjmp.b -4",
		"ret",
		"iret",
		"sti",
		"nop",
	}

	prog := parse(t, program...)

	codes := []Code{
		MakeCodeAri(ARI_OP_SUB, SIZE_DWORD, Register(TARGET_B), Immediate, 1),
		MakeCodeTest(TEST_OP_LE, SIZE_WORD, Immediate, Indirect(TARGET_C), 2),
		MakeCodeLogic(LOGIC_OP_NOT, SIZE_DWORD, Register(TARGET_X), Register(TARGET_A)),
		MakeCodeLogic(LOGIC_OP_XOR, SIZE_DWORD, Register(TARGET_A), Register(TARGET_B)),
		MakeCodePush(SIZE_WORD, Immediate, 7),
		MakeCodePop(SIZE_DWORD, Register(TARGET_T)),
		MakeCodeCpu(CPU_OP_SETVE, SIZE_BYTE, Immediate, Immediate, 3, 0x40),
		MakeCodeFlow(FLOW_OP_RJMP, SIZE_BYTE, Immediate, 0xfc),
		MakeCodeFlow(FLOW_OP_RET, SIZE_DWORD, Register(TARGET_A)),
		MakeCodeFlow(FLOW_OP_IRET, SIZE_DWORD, Register(TARGET_A)),
		MakeCodeCpu(CPU_OP_STI, SIZE_DWORD, Register(TARGET_A), Register(TARGET_A)),
		MakeCodeMove(SIZE_DWORD, Register(TARGET_A), Register(TARGET_A)),
	}

	assert := assert.New(t)
	if assert.Equal(len(codes), len(prog.Opcodes)) {
		for n, code := range codes {
			assert.Equal(code.Word, prog.Opcodes[n].Codes[0].Word, program[n])
			assert.Equal(code.Immediates, prog.Opcodes[n].Codes[0].Immediates, program[n])
		}
	}
}

func TestAssemblerEqu(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		".equ CONST_10 0x10",
		".equ COUNTER c",
		"mov CONST_10 a",
		"mov $(CONST_10 + CONST_10) COUNTER",
		".equ CONST_30 $(2 * CONST_10 + CONST_10)",
		"mov.w [CONST_30] b",
		"mov $(LINENO * 8 + 0x10) d",
	}

	prog := parse(t, program...)

	if assert.Equal(4, len(prog.Opcodes)) {
		assert.Equal(MakeCodeMove(SIZE_DWORD, Immediate, Register(TARGET_A), 0x10), prog.Opcodes[0].Codes[0])
		assert.Equal(MakeCodeMove(SIZE_DWORD, Immediate, Register(TARGET_C), 0x20), prog.Opcodes[1].Codes[0])
		assert.Equal(MakeCodeMove(SIZE_WORD, Absolute, Register(TARGET_B), 0x30), prog.Opcodes[2].Codes[0])
		assert.Equal(MakeCodeMove(SIZE_DWORD, Immediate, Register(TARGET_D), 7*8+0x10), prog.Opcodes[3].Codes[0])
	}
}

func TestAssemblerMacro(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		".macro SETADD rn v w",
		"mov v rn",
		"add rn w",
		".endm",
		"SETADD a 8 8",
		".macro SPIN",
		"@loop: jmp.w @loop",
		".endm",
		"SPIN",
	}

	prog := parse(t, program...)

	expected := []Opcode{
		{LineNo: 2, Ip: 0, Words: []string{"mov", "8", "a"},
			Codes: []Code{MakeCodeMove(SIZE_DWORD, Immediate, Register(TARGET_A), 8)}},
		{LineNo: 3, Ip: 6, Words: []string{"add", "a", "8"},
			Codes: []Code{MakeCodeAri(ARI_OP_ADD, SIZE_DWORD, Register(TARGET_A), Immediate, 8)}},
		{LineNo: 7, Ip: 12, Words: []string{"jmp.w", "SPIN_7_loop"},
			Codes: []Code{MakeCodeFlow(FLOW_OP_JMP, SIZE_WORD, Immediate, 12)},
			Links: []Link{{Code: 0, Imm: 0, Label: "SPIN_7_loop"}}},
	}

	opEqual(t, expected, prog.Opcodes)

	_, err := (&Assembler{}).Parse(strings.NewReader(".macro A\n.macro B\n.endm\n.endm"))
	assert.ErrorIs(err, ErrMacroNesting)

	_, err = (&Assembler{}).Parse(strings.NewReader(".macro A\nnop"))
	assert.ErrorIs(err, ErrMacroLonely)

	_, err = (&Assembler{}).Parse(strings.NewReader(".endm"))
	assert.ErrorIs(err, ErrMacroLonelyEndm)

	_, err = (&Assembler{}).Parse(strings.NewReader(".macro A x\nmov x a\n.endm\nA"))
	assert.ErrorIs(err, ErrMacroSyntax)
}

func TestAssemblerLabel(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"jmp.w R0",
		"R1: mov 0x20 b",
		"jmp R2",
		"R0: AND_ALSO:",
		"call.d R1",
		"R2:",
		"",
		"mov [R0] c",
	}

	prog := parse(t, program...)

	if assert.Equal(5, len(prog.Opcodes)) {
		// jmp.w (4), mov.d (6), jmp.d (6), call.d (6)
		assert.Equal([]uint32{16}, prog.Opcodes[0].Codes[0].Immediates)
		assert.Equal([]uint32{22}, prog.Opcodes[2].Codes[0].Immediates)
		assert.Equal([]uint32{4}, prog.Opcodes[3].Codes[0].Immediates)
		assert.Equal(uint32(22), prog.Opcodes[4].Ip)
		assert.Equal([]uint32{16}, prog.Opcodes[4].Codes[0].Immediates)
	}
}

func TestAssemblerData(t *testing.T) {
	assert := assert.New(t)

	prog := parse(t,
		".byte 1 0xff -1",
		".word 0x1234 5",
		".dword 0x11223344",
		"here: nop",
	)

	if assert.Equal(4, len(prog.Opcodes)) {
		assert.Equal([]byte{1, 0xff, 0xff}, prog.Opcodes[0].Data)
		assert.Equal([]byte{0x34, 0x12, 5, 0}, prog.Opcodes[1].Data)
		assert.Equal([]byte{0x44, 0x33, 0x22, 0x11}, prog.Opcodes[2].Data)
		assert.Equal(uint32(3+4+4), prog.Opcodes[3].Ip)
	}
}

func TestAssemblerPseudo(t *testing.T) {
	assert := assert.New(t)

	prog := parse(t, "inc.w c", "dec b")

	if assert.Equal(2, len(prog.Opcodes)) {
		assert.Equal([]Code{
			MakeCodeAri(ARI_OP_ADD, SIZE_WORD, Register(TARGET_C), Immediate, 1),
			MakeCodeMove(SIZE_WORD, Register(TARGET_X), Register(TARGET_C)),
		}, prog.Opcodes[0].Codes)
		assert.Equal([]Code{
			MakeCodeAri(ARI_OP_SUB, SIZE_DWORD, Register(TARGET_B), Immediate, 1),
			MakeCodeMove(SIZE_DWORD, Register(TARGET_X), Register(TARGET_B)),
		}, prog.Opcodes[1].Codes)
		assert.Equal(uint32(4+2), prog.Opcodes[1].Ip)
	}
}

func TestAssemblerErrors(t *testing.T) {
	table := [](struct {
		name    string
		program string
		err     error
	}){
		{"size", "mov.q a b", ErrOpcodeSize},
		{"missing", "mov a", ErrOpcodeMissing},
		{"extra", "hlt a", ErrOpcodeExtraArgs},
		{"invalid", "frob a b", ErrInstructionInvalid},
		{"width", "mov.b 300 a", ErrOperandWidth},
		{"pop_s", "pop s", ErrPopTarget},
		{"pop_const", "pop 5", ErrPopTarget},
		{"equ", ".equ A", ErrEquateSyntax},
		{"equ_dup", ".equ A 1\n.equ A 2", ErrEquateDuplicate},
		{"label_dup", "x: nop\nx: nop", ErrLabelDuplicate},
	}

	for _, entry := range table {
		assert := assert.New(t)

		asm := &Assembler{}
		_, err := asm.Parse(strings.NewReader(entry.program))
		assert.ErrorIs(err, entry.err, entry.name)

		var syntax *ErrSyntax
		assert.True(errors.As(err, &syntax), entry.name)
	}
}

func TestAssemblerLabelErrors(t *testing.T) {
	assert := assert.New(t)

	_, err := (&Assembler{}).Parse(strings.NewReader("jmp nowhere"))
	var missing ErrLabelMissing
	if assert.True(errors.As(err, &missing)) {
		assert.Equal(ErrLabelMissing("nowhere"), missing)
	}

	program := "jmp.b far\n" + strings.Repeat(".dword 0 0 0 0\n", 20) + "far: hlt"
	_, err = (&Assembler{}).Parse(strings.NewReader(program))
	var label_range ErrLabelRange
	if assert.True(errors.As(err, &label_range)) {
		assert.Equal(ErrLabelRange("far"), label_range)
	}

	_, err = (&Assembler{}).Parse(strings.NewReader("mov $(1 +) a"))
	assert.Error(err)
}

func TestAssemblerRun(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"        mov.d 0 a       ; sum",
		"        mov.d 10 b      ; counter",
		"loop:   add.d a b",
		"        mov.d x a",
		"        dec.d b",
		"        eq.d b 0",
		"        fjmp.d loop",
		"        hlt",
	}

	prog := parse(t, program...)

	cpu := NewCpu()
	assert.NoError(cpu.LoadImage(prog.Binary()))
	cpu.Register[REG_S] = testStack

	runToHalt(t, cpu)
	assert.Equal(uint32(55), cpu.Register[REG_A])
	assert.Equal(uint32(0), cpu.Register[REG_B])
}

func TestAssemblerRelative(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"        mov.d 0 a",
		"        mov.d 0 b",
		"        rjmp.b target",
		"        mov.d 99 b",
		"target: mov.d 7 a",
		"back:   inc.d c",
		"        eq.d c 3",
		"        tjmp.d done",
		"        rjmp.b back",
		"done:   hlt",
	}

	prog := parse(t, program...)

	if !assert.Equal(10, len(prog.Opcodes)) {
		return
	}
	// Offsets count from the end of the rjmp.
	assert.Equal([]uint32{21 - 15}, prog.Opcodes[2].Codes[0].Immediates)
	assert.Equal([]uint32{uint32(0x100+27-50) & 0xff}, prog.Opcodes[8].Codes[0].Immediates)

	cpu := NewCpu()
	assert.NoError(cpu.LoadImage(prog.Binary()))
	cpu.Register[REG_S] = testStack

	runToHalt(t, cpu)
	assert.Equal(uint32(7), cpu.Register[REG_A])
	assert.Equal(uint32(0), cpu.Register[REG_B])
	assert.Equal(uint32(3), cpu.Register[REG_C])
	assert.Equal(uint32(52), cpu.Ip)
}

func TestAssemblerRelativeRange(t *testing.T) {
	assert := assert.New(t)

	padding := strings.Repeat(".dword 0 0 0 0\n", 20)
	table := []string{
		"rjmp.b far\n" + padding + "far: hlt",
		"near: nop\n" + padding + "rjmp.b near",
	}

	for _, program := range table {
		_, err := (&Assembler{}).Parse(strings.NewReader(program))
		var label_range ErrLabelRange
		assert.True(errors.As(err, &label_range), program)
	}

	// The widest byte offsets still fit.
	prog := parse(t, "rjmp.b end", strings.Repeat(".byte 0\n", 127)+"end: hlt")
	assert.Equal([]uint32{127}, prog.Opcodes[0].Codes[0].Immediates)
}

func TestAssemblerCharComment(t *testing.T) {
	prog := parse(t, "mov.b ';' a ; semicolon", "mov.b '\\\\' b ; backslash")

	expected := []Opcode{
		{LineNo: 1, Ip: 0, Words: []string{"mov.b", "59", "a"},
			Codes: []Code{MakeCodeMove(SIZE_BYTE, Immediate, Register(TARGET_A), 59)}},
		{LineNo: 2, Ip: 3, Words: []string{"mov.b", "92", "b"},
			Codes: []Code{MakeCodeMove(SIZE_BYTE, Immediate, Register(TARGET_B), 92)}},
	}

	opEqual(t, expected, prog.Opcodes)
}

func TestAssemblerFault(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()

	asm := &Assembler{}
	for key, value := range cpu.Defines() {
		asm.Predefine(key, value)
	}

	program := []string{
		"        mov.d 0x10000 s",
		"        setve.d VECTOR_DIVIDE handler",
		"        div.d 1 a",
		"        hlt",
		"handler:",
		"        pop.d c          ; faulting I",
		"        mov.d 0x99 [0x8000]",
		"        iret",
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	if !assert.NoError(err) {
		return
	}

	assert.NoError(cpu.LoadImage(prog.Binary()))
	runToHalt(t, cpu)

	value, err := cpu.Memory.Read(0x8000, SIZE_DWORD)
	assert.NoError(err)
	assert.Equal(uint32(0x99), value)
	assert.Equal(0, cpu.Depth())
	assert.Equal(uint32(0x10000), cpu.Register[REG_S])
}
