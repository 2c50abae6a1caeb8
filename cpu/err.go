package cpu

import (
	"github.com/ezrec/coresim/translate"
)

var f = translate.From
var e = translate.Error

var (
	// Host-level errors: these terminate a Tick and are never seen by
	// the guest program.
	ErrAddressRange   = e("address out of range")
	ErrOperandWidth   = e("operand size mismatch")
	ErrOperandSize    = e("operand size invalid")
	ErrTargetInvalid  = e("destination not writable")
	ErrPopTarget      = e("pop destination invalid")
	ErrVectorIndex    = e("interrupt vector out of range")
	ErrInterruptNone  = e("no interrupt in service")
	ErrInterruptDepth = e("interrupt nesting too deep")
	ErrImageSize      = e("image larger than memory")

	// Assembler errors
	ErrEquateSyntax       = e(".equ syntax")
	ErrEquateDuplicate    = e(".equ duplicated")
	ErrLabelDuplicate     = e("label duplicated")
	ErrMacroSyntax        = e(".macro syntax")
	ErrMacroNesting       = e(".macro in .macro prohibited")
	ErrMacroDuplicate     = e(".macro duplicated")
	ErrMacroLonely        = e(".macro without .endm")
	ErrMacroLonelyEndm    = e(".endm without .macro")
	ErrOpcodeExtraArgs    = e("excessive arguments")
	ErrOpcodeMissing      = e("operand missing")
	ErrOpcodeSize         = e("size suffix invalid")
	ErrInstructionInvalid = e("instruction invalid")
	ErrTargetMissing      = e("target missing")
)

// ErrInstruction records the word of the instruction that failed.
type ErrInstruction uint16

func (ei ErrInstruction) Error() string {
	return f("instruction 0x%04x %v", uint16(ei), Decode(uint16(ei)).Operation())
}

func (ei ErrInstruction) Is(err error) (ok bool) {
	_, ok = err.(ErrInstruction)
	return
}

// ErrAddress records the address and width of a failed memory access.
type ErrAddress struct {
	Address uint32
	Size    CodeSize
}

func (err ErrAddress) Error() string {
	return f("address 0x%08x size %v", err.Address, err.Size)
}

func (err ErrAddress) Unwrap() error {
	return ErrAddressRange
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

// ErrLabelRange is a label whose address does not fit its immediate.
type ErrLabelRange string

func (el ErrLabelRange) Error() string {
	return f("label %v out of immediate range", string(el))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseOperand string

func (err ErrParseOperand) Error() string {
	return f("'%v' is not an operand", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

type ErrMacro struct {
	Macro string
	Line  int
	Err   error
}

func (err ErrMacro) Error() string {
	return f("macro %v line %v %v", err.Macro, err.Line, err.Err.Error())
}

func (err ErrMacro) Unwrap() error {
	return err.Err
}
