package cpu

import (
	"fmt"
)

// CodeMode is the addressing mode of one operand side.
type CodeMode int

//go:generate go tool stringer -linecomment -type=CodeMode
const (
	MODE_IMMEDIATE = CodeMode(0) // imm
	MODE_ABSOLUTE  = CodeMode(1) // abs
	MODE_REGISTER  = CodeMode(2) // reg
	MODE_INDIRECT  = CodeMode(3) // ind
)

// Operand is the addressing of one side of an instruction.
type Operand struct {
	Mode   CodeMode
	Target CodeTarget
}

var (
	// Immediate reads the literal following the instruction.
	Immediate = Operand{Mode: MODE_IMMEDIATE, Target: TARGET_CONST}
	// Absolute dereferences the literal following the instruction.
	Absolute = Operand{Mode: MODE_ABSOLUTE, Target: TARGET_CONST}
)

// Register addresses a register directly.
func Register(target CodeTarget) Operand {
	return Operand{Mode: MODE_REGISTER, Target: target}
}

// Indirect addresses the memory a register points at.
func Indirect(target CodeTarget) Operand {
	return Operand{Mode: MODE_INDIRECT, Target: target}
}

func makeOperand(target CodeTarget, pointer bool) (op Operand) {
	op.Target = target
	switch {
	case target == TARGET_CONST && pointer:
		op.Mode = MODE_ABSOLUTE
	case target == TARGET_CONST:
		op.Mode = MODE_IMMEDIATE
	case pointer:
		op.Mode = MODE_INDIRECT
	default:
		op.Mode = MODE_REGISTER
	}
	return
}

// fields returns the target and pointer bit encoding the operand.
func (op Operand) fields() (target CodeTarget, pointer bool) {
	switch op.Mode {
	case MODE_IMMEDIATE:
		return TARGET_CONST, false
	case MODE_ABSOLUTE:
		return TARGET_CONST, true
	case MODE_INDIRECT:
		return op.Target, true
	}
	return op.Target, false
}

// Sized returns true if reading the operand goes through a sized access.
func (op Operand) Sized() bool {
	return op.Mode != MODE_REGISTER
}

func (op Operand) String() string {
	switch op.Mode {
	case MODE_IMMEDIATE:
		return "#"
	case MODE_ABSOLUTE:
		return "[#]"
	case MODE_INDIRECT:
		return "[" + op.Target.String() + "]"
	}
	return op.Target.String()
}

// Operation is an instruction decoded into its family. Only the fields a
// family uses are carried; unknown sub-operations decode to OpInvalid.
type Operation interface {
	Class() CodeClass
	String() string
}

// OpMove copies Src into Dst.
type OpMove struct {
	Size     CodeSize
	Src, Dst Operand
}

// OpArithmetic computes X = Src op Dst.
type OpArithmetic struct {
	Op       CodeAriOp
	Size     CodeSize
	Src, Dst Operand
}

// OpTest computes T = Src op Dst.
type OpTest struct {
	Op       CodeTestOp
	Size     CodeSize
	Src, Dst Operand
}

// OpFlow transfers control using Src as target, offset or vector.
type OpFlow struct {
	Op   CodeFlowOp
	Size CodeSize
	Src  Operand
}

// OpLogic computes X = Src op Dst, or X = ^Src.
type OpLogic struct {
	Op       CodeLogicOp
	Size     CodeSize
	Src, Dst Operand
}

// OpPush pushes Src.
type OpPush struct {
	Size CodeSize
	Src  Operand
}

// OpPop pops into Dst.
type OpPop struct {
	Size CodeSize
	Dst  Operand
}

// OpCpu changes processor state.
type OpCpu struct {
	Op       CodeCpuOp
	Size     CodeSize
	Src, Dst Operand
}

// OpInvalid is an opcode or sub-operation with no defined meaning.
type OpInvalid struct {
	Reason FaultReason
	Family CodeClass
	Data   uint8
}

func (OpMove) Class() CodeClass       { return OP_MOV }
func (OpArithmetic) Class() CodeClass { return OP_ARI }
func (OpTest) Class() CodeClass       { return OP_TST }
func (OpFlow) Class() CodeClass       { return OP_FLO }
func (OpLogic) Class() CodeClass      { return OP_LOG }
func (OpPush) Class() CodeClass       { return OP_STA }
func (OpPop) Class() CodeClass        { return OP_STA }
func (OpCpu) Class() CodeClass        { return OP_CPU }
func (op OpInvalid) Class() CodeClass { return op.Family }

func (op OpMove) String() string {
	return fmt.Sprintf("mov.%v %v %v", op.Size, op.Src, op.Dst)
}

func (op OpArithmetic) String() string {
	return fmt.Sprintf("%v.%v %v %v", op.Op, op.Size, op.Src, op.Dst)
}

func (op OpTest) String() string {
	return fmt.Sprintf("%v.%v %v %v", op.Op, op.Size, op.Src, op.Dst)
}

func (op OpFlow) String() string {
	switch op.Op {
	case FLOW_OP_RET, FLOW_OP_IRET:
		return op.Op.String()
	}
	return fmt.Sprintf("%v.%v %v", op.Op, op.Size, op.Src)
}

func (op OpLogic) String() string {
	if op.Op == LOGIC_OP_NOT {
		return fmt.Sprintf("%v.%v %v", op.Op, op.Size, op.Src)
	}
	return fmt.Sprintf("%v.%v %v %v", op.Op, op.Size, op.Src, op.Dst)
}

func (op OpPush) String() string {
	return fmt.Sprintf("push.%v %v", op.Size, op.Src)
}

func (op OpPop) String() string {
	return fmt.Sprintf("pop.%v %v", op.Size, op.Dst)
}

func (op OpCpu) String() string {
	if op.Op == CPU_OP_SETVE {
		return fmt.Sprintf("%v.%v %v %v", op.Op, op.Size, op.Src, op.Dst)
	}
	return op.Op.String()
}

func (op OpInvalid) String() string {
	return fmt.Sprintf("invalid %v:%d", op.Family, op.Data)
}

// Operation decodes the instruction into its family variant.
func (in Instruction) Operation() Operation {
	src := in.SourceOperand()
	dst := in.DestinationOperand()
	size := in.Size
	data := in.Data

	invalid := func(reason FaultReason) Operation {
		return OpInvalid{Reason: reason, Family: in.Class, Data: data}
	}

	switch in.Class {
	case OP_MOV:
		if data != 0 {
			return invalid(FAULT_CORE)
		}
		return OpMove{Size: size, Src: src, Dst: dst}
	case OP_ARI:
		if CodeAriOp(data) > ARI_OP_SHL {
			return invalid(FAULT_ARITHMETIC)
		}
		return OpArithmetic{Op: CodeAriOp(data), Size: size, Src: src, Dst: dst}
	case OP_TST:
		if CodeTestOp(data) > TEST_OP_LE {
			return invalid(FAULT_TEST)
		}
		return OpTest{Op: CodeTestOp(data), Size: size, Src: src, Dst: dst}
	case OP_FLO:
		if CodeFlowOp(data) > FLOW_OP_IRET {
			return invalid(FAULT_FLOW)
		}
		return OpFlow{Op: CodeFlowOp(data), Size: size, Src: src}
	case OP_LOG:
		if CodeLogicOp(data) > LOGIC_OP_NOT {
			return invalid(FAULT_LOGIC)
		}
		return OpLogic{Op: CodeLogicOp(data), Size: size, Src: src, Dst: dst}
	case OP_STA:
		switch CodeStackOp(data) {
		case STACK_OP_PUSH:
			return OpPush{Size: size, Src: src}
		case STACK_OP_POP:
			return OpPop{Size: size, Dst: dst}
		}
		return invalid(FAULT_STACK)
	case OP_CPU:
		if CodeCpuOp(data) > CPU_OP_SETVE {
			return invalid(FAULT_CPU)
		}
		return OpCpu{Op: CodeCpuOp(data), Size: size, Src: src, Dst: dst}
	}

	// OP_PRT is reserved.
	return invalid(FAULT_CORE)
}
