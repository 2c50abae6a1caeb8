// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Macro represents a macro definition in the assembly language.
type Macro struct {
	LineNo int      // Line number of the macro definition.
	Args   []string // Arguments for the macro.
	Lines  []string // Lines of macro text to expand.
}

// Link is an immediate to be patched with the address of a label.
type Link struct {
	Code     int    // Index into Opcode.Codes.
	Imm      int    // Index into Code.Immediates.
	Label    string // Label to resolve.
	Relative bool   // Patch with the offset from the end of the code.
}

// Opcode represents a line of assembled code with its source location and generated output.
type Opcode struct {
	LineNo int
	Ip     uint32
	Words  []string
	Codes  []Code
	Data   []byte // Output of data directives.
	Links  []Link
}

// Len returns the number of bytes the opcode occupies in memory.
func (op *Opcode) Len() (n int) {
	for _, code := range op.Codes {
		n += code.Len()
	}
	return n + len(op.Data)
}

// Bytes returns the memory image of the opcode.
func (op *Opcode) Bytes() (data []byte) {
	for _, code := range op.Codes {
		data = append(data, code.Bytes()...)
	}
	return append(data, op.Data...)
}

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
}

// Assembler is a single pass macro assembler for the coresim machine.
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembler actions.
	Opcode  []Opcode // List of generated opcodes.

	predefine map[string]string   // Predefines
	Label     map[string]uint32   // Map of labels to addresses.
	Equate    map[string]string   // Map of equates.
	Macro     map[string](*Macro) // Map of macros.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// targetMap is a map of register names to targets.
var targetMap = map[string]CodeTarget{
	"a": TARGET_A,
	"b": TARGET_B,
	"c": TARGET_C,
	"d": TARGET_D,
	"s": TARGET_S,
	"t": TARGET_T,
	"x": TARGET_X,
}

// sizeMap maps mnemonic suffixes to operand sizes.
var sizeMap = map[string]CodeSize{
	"b": SIZE_BYTE,
	"w": SIZE_WORD,
	"d": SIZE_DWORD,
}

var labelRe = regexp.MustCompile(`^[A-Za-z_.][A-Za-z0-9_.]*$`)

// valueOf returns the value of a simple word.
func (asm *Assembler) valueOf(word string) (value uint32, err error) {
	invert := false
	if len(word) > 1 && word[0] == '~' {
		invert = true
		word = word[1:]
	}
	v64, err := strconv.ParseInt(word, 0, 64)
	if err != nil || v64 > 0xffffffff || v64 < -int64(0x80000000) {
		err = ErrParseNumber(word)
		return
	}

	value = uint32(v64)

	if invert {
		value = ^value
	}

	return
}

// fit checks that value can be encoded at size. Negative values are
// accepted when their two's complement fits, and are truncated.
func fit(value uint32, size CodeSize) (out uint32, err error) {
	limit := size.Limit()
	if value <= limit {
		return value, nil
	}

	half := int64(limit/2) + 1
	if signed := int64(int32(value)); signed < 0 && signed >= -half {
		return value & limit, nil
	}

	err = ErrOperandWidth
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value uint32, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var value32 uint32
		value32, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			continue
		}
		pred[key] = starlark.MakeInt64(int64(value32))
	}
	err = nil
	for key, addr := range asm.Label {
		if _, ok := pred[key]; !ok {
			pred[key] = starlark.MakeInt64(int64(addr))
		}
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = uint32(st_int64)
	return
}

// stripComment removes a ';' comment, skipping ';' in character literals.
func stripComment(text string) string {
	quoted := false
	for n := 0; n < len(text); n++ {
		switch text[n] {
		case '\\':
			if quoted {
				n++
			}
		case '\'':
			quoted = !quoted
		case ';':
			if !quoted {
				return text[:n]
			}
		}
	}
	return text
}

// parseLine parses a single line as an opcode.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do 'x' evaluations
	re := regexp.MustCompile(`'\\?[^']'`)
	line = re.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			str = str[1:]
			switch str {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			case "t":
				str = "\t"
			case "0":
				str = "\000"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%v", str[0])
	})

	// Do $() evaluations
	re = regexp.MustCompile(`\$\([^\$]*\)`)
	line = re.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%#x", value)
	})
	if err != nil {
		return
	}

	line = strings.ReplaceAll(line, ",", " ")
	words = slices.DeleteFunc(strings.Split(line, " "), func(a string) bool { return len(a) == 0 })

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for n, word := range words {
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		asm.Label[label] = asm.currentIp()
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	// .macro processing
	macro, ok := asm.Macro[words[0]]
	if ok {
		name := words[0]

		args := words[1:]
		if len(args) != len(macro.Args) {
			err = ErrMacroSyntax
			return
		}
		// Turn args into equs
		old_equate := maps.Clone(asm.Equate)
		for n, arg := range macro.Args {
			asm.Equate[arg] = words[1+n]
		}
		defer func() { asm.Equate = old_equate }()

		for n, line := range macro.Lines {
			lineno := macro.LineNo + n

			line = strings.ReplaceAll(line, "@", fmt.Sprintf("%v_%v_", name, lineno))
			words, err = asm.parseLine(line, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
				return
			}

			err = asm.parseWords(words, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
				return
			}
		}

		words = nil
		return
	}

	return
}

// currentIp gets the address of the next byte to be assembled.
func (asm *Assembler) currentIp() uint32 {
	if len(asm.Opcode) == 0 {
		return 0
	}

	last := &asm.Opcode[len(asm.Opcode)-1]

	return last.Ip + uint32(last.Len())
}

// Parse parses an input stream into a Program containing opcodes.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {

	scanner := bufio.NewScanner(input)

	var line string
	var lineno int
	var macro *Macro

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Label = make(map[string]uint32, 16)
	asm.Opcode = asm.Opcode[:0]
	if asm.Macro == nil {
		asm.Macro = make(map[string](*Macro))
	}
	clear(asm.Macro)
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		line = strings.TrimSpace(stripComment(text))
		words := strings.Fields(line)

		// .macro NAME arg...
		if len(words) > 0 && words[0] == ".macro" {
			if macro != nil {
				err = ErrMacroNesting
				return
			}
			if len(words) < 2 {
				err = ErrMacroSyntax
				return
			}
			_, ok := asm.Macro[words[1]]
			if ok {
				err = ErrMacroDuplicate
				return
			}
			macro = &Macro{
				LineNo: lineno + 1,
			}
			if len(words) > 2 {
				macro.Args = words[2:]
			}
			asm.Macro[words[1]] = macro
			continue
		}

		if len(words) > 0 && words[0] == ".endm" {
			if macro == nil {
				err = ErrMacroLonelyEndm
				return
			}
			macro = nil
			continue
		}

		if macro != nil {
			macro.Lines = append(macro.Lines, line)
			continue
		}

		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	if macro != nil {
		err = ErrMacroLonely
		return
	}

	// Final linking of labels.
	for n := range asm.Opcode {
		op := &asm.Opcode[n]
		for _, link := range op.Links {
			ip, ok := asm.Label[link.Label]
			if !ok {
				err = ErrLabelMissing(link.Label)
				return
			}
			code := &op.Codes[link.Code]
			limit := code.Instruction().Size.Limit()
			if link.Relative {
				end := op.Ip
				for _, prior := range op.Codes[:link.Code+1] {
					end += uint32(prior.Len())
				}
				offset := int64(ip) - int64(end)
				half := int64(limit/2) + 1
				if offset < -half || offset >= half {
					err = ErrLabelRange(link.Label)
					return
				}
				code.Immediates[link.Imm] = uint32(offset) & limit
				continue
			}
			if ip > limit {
				err = ErrLabelRange(link.Label)
				return
			}
			code.Immediates[link.Imm] = ip
		}
	}

	prog = &Program{
		Opcodes: slices.Clone(asm.Opcode),
	}

	return
}

// aluMap maps arithmetic opcode names.
var aluMap = map[string]CodeAriOp{
	"add": ARI_OP_ADD,
	"sub": ARI_OP_SUB,
	"mul": ARI_OP_MUL,
	"div": ARI_OP_DIV,
	"mod": ARI_OP_MOD,
	"shr": ARI_OP_SHR,
	"shl": ARI_OP_SHL,
}

// testMap maps comparison opcode names.
var testMap = map[string]CodeTestOp{
	"eq": TEST_OP_EQ,
	"gt": TEST_OP_GT,
	"lt": TEST_OP_LT,
	"ge": TEST_OP_GE,
	"le": TEST_OP_LE,
}

// logicMap maps binary bitwise opcode names.
var logicMap = map[string]CodeLogicOp{
	"and": LOGIC_OP_AND,
	"or":  LOGIC_OP_OR,
	"xor": LOGIC_OP_XOR,
}

// flowMap maps flow control opcode names that take a target.
var flowMap = map[string]CodeFlowOp{
	"jmp":  FLOW_OP_JMP,
	"tjmp": FLOW_OP_TJMP,
	"fjmp": FLOW_OP_FJMP,
	"rjmp": FLOW_OP_RJMP,
	"call": FLOW_OP_CALL,
	"int":  FLOW_OP_INT,
}

// cpuMap maps operand-less CPU state opcode names.
var cpuMap = map[string]CodeCpuOp{
	"hlt": CPU_OP_HLT,
	"cli": CPU_OP_CLI,
	"sti": CPU_OP_STI,
	"rst": CPU_OP_RST,
}

// operand is a parsed operand word.
type operand struct {
	Operand
	value uint32 // Immediate value, for constant targets.
	label string // Label to link into the immediate.
}

// parseOperand parses a register, [register], value, label, [value] or [label].
func (asm *Assembler) parseOperand(word string, size CodeSize) (op operand, err error) {
	inner := word
	pointer := false
	if len(word) > 2 && word[0] == '[' && word[len(word)-1] == ']' {
		pointer = true
		inner = word[1 : len(word)-1]
		equate, ok := asm.Equate[inner]
		if ok {
			inner = equate
		}
	}

	target, ok := targetMap[inner]
	if ok {
		op.Operand = makeOperand(target, pointer)
		return
	}

	op.Operand = makeOperand(TARGET_CONST, pointer)

	value, err := asm.valueOf(inner)
	if err == nil {
		op.value, err = fit(value, size)
		return
	}

	if labelRe.MatchString(inner) {
		err = nil
		op.label = inner
		return
	}

	err = ErrParseOperand(word)
	return
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	var codes []Code
	var links []Link
	var data []byte

	// no-op
	if len(words) == 0 {
		return
	}

	initial_words := words

	defer func() {
		if err != nil || (len(codes) == 0 && len(data) == 0) {
			return
		}
		opcode := Opcode{LineNo: lineno, Ip: asm.currentIp(), Words: initial_words,
			Codes: codes, Data: data, Links: links}
		asm.Opcode = append(asm.Opcode, opcode)
	}()

	name, suffix, has_suffix := strings.Cut(words[0], ".")
	if name == "" {
		// Data directive.
		name, suffix, has_suffix = "."+suffix, "", false
	}
	size := SIZE_DWORD
	if has_suffix {
		var ok bool
		size, ok = sizeMap[suffix]
		if !ok {
			err = ErrOpcodeSize
			return
		}
	}
	args := words[1:]

	want := func(n int) bool {
		switch {
		case len(args) < n:
			err = ErrOpcodeMissing
		case len(args) > n:
			err = ErrOpcodeExtraArgs
		}
		return err == nil
	}

	// Labels of rjmp are linked as offsets.
	var relative bool

	// emit assembles one code from the argument words, collecting
	// immediates and label links in the order the CPU consumes them.
	emit := func(build func(ops ...Operand) Code, words ...string) {
		var ops []Operand
		var imms []uint32
		var labels []Link
		for _, word := range words {
			var op operand
			op, err = asm.parseOperand(word, size)
			if err != nil {
				return
			}
			ops = append(ops, op.Operand)
			if op.Target != TARGET_CONST {
				continue
			}
			if len(op.label) != 0 {
				labels = append(labels, Link{Code: len(codes), Imm: len(imms), Label: op.label, Relative: relative})
			}
			imms = append(imms, op.value)
		}
		code := build(ops...)
		code.Immediates = imms
		codes = append(codes, code)
		links = append(links, labels...)
	}

	// Pseudo-op substitutions
	switch {
	case name == "nop":
		if !want(0) {
			return
		}
		name, args = "mov", []string{"a", "a"}
	case name == "inc" || name == "dec":
		if !want(1) {
			return
		}
		if _, ok := targetMap[args[0]]; !ok {
			err = ErrParseOperand(args[0])
			return
		}
		op := map[string]CodeAriOp{"inc": ARI_OP_ADD, "dec": ARI_OP_SUB}[name]
		emit(func(ops ...Operand) Code { return MakeCodeAri(op, size, ops[0], ops[1]) }, args[0], "1")
		if err != nil {
			return
		}
		name, args = "mov", []string{"x", args[0]}
	}

	if ari, ok := aluMap[name]; ok {
		if want(2) {
			emit(func(ops ...Operand) Code { return MakeCodeAri(ari, size, ops[0], ops[1]) }, args...)
		}
		return
	}

	if tst, ok := testMap[name]; ok {
		if want(2) {
			emit(func(ops ...Operand) Code { return MakeCodeTest(tst, size, ops[0], ops[1]) }, args...)
		}
		return
	}

	if logic, ok := logicMap[name]; ok {
		if want(2) {
			emit(func(ops ...Operand) Code { return MakeCodeLogic(logic, size, ops[0], ops[1]) }, args...)
		}
		return
	}

	if flow, ok := flowMap[name]; ok {
		if want(1) {
			relative = flow == FLOW_OP_RJMP
			emit(func(ops ...Operand) Code { return MakeCodeFlow(flow, size, ops[0]) }, args...)
		}
		return
	}

	if state, ok := cpuMap[name]; ok {
		if want(0) {
			emit(func(ops ...Operand) Code {
				return MakeCodeCpu(state, size, Register(TARGET_A), Register(TARGET_A))
			})
		}
		return
	}

	switch name {
	case "mov":
		if want(2) {
			emit(func(ops ...Operand) Code { return MakeCodeMove(size, ops[0], ops[1]) }, args...)
		}
	case "not":
		if want(1) {
			emit(func(ops ...Operand) Code {
				return MakeCodeLogic(LOGIC_OP_NOT, size, ops[0], Register(TARGET_A))
			}, args...)
		}
	case "ret", "iret":
		if want(0) {
			op := map[string]CodeFlowOp{"ret": FLOW_OP_RET, "iret": FLOW_OP_IRET}[name]
			emit(func(ops ...Operand) Code { return MakeCodeFlow(op, size, Register(TARGET_A)) })
		}
	case "push":
		if want(1) {
			emit(func(ops ...Operand) Code { return MakeCodePush(size, ops[0]) }, args...)
		}
	case "pop":
		if want(1) {
			if _, ok := targetMap[args[0]]; !ok || args[0] == "s" {
				err = ErrPopTarget
				return
			}
			emit(func(ops ...Operand) Code { return MakeCodePop(size, ops[0]) }, args...)
		}
	case "setve":
		if want(2) {
			emit(func(ops ...Operand) Code { return MakeCodeCpu(CPU_OP_SETVE, size, ops[0], ops[1]) }, args...)
		}
	case ".byte", ".word", ".dword":
		if len(args) == 0 {
			err = ErrOpcodeMissing
			return
		}
		size = map[string]CodeSize{".byte": SIZE_BYTE, ".word": SIZE_WORD, ".dword": SIZE_DWORD}[name]
		for _, word := range args {
			var value uint32
			value, err = asm.valueOf(word)
			if err != nil {
				return
			}
			value, err = fit(value, size)
			if err != nil {
				return
			}
			switch size {
			case SIZE_BYTE:
				data = append(data, uint8(value))
			case SIZE_WORD:
				data = binary.LittleEndian.AppendUint16(data, uint16(value))
			case SIZE_DWORD:
				data = binary.LittleEndian.AppendUint32(data, value)
			}
		}
	default:
		err = ErrInstructionInvalid
	}

	return
}
