package cpu

import (
	"log"
)

const (
	VECTOR_COUNT          = 256 // Entries in the interrupt vector table.
	VECTOR_DIVIDE         = 0   // Divide or modulo by zero.
	VECTOR_INVALID        = 1   // Unrecognized opcode or sub-operation.
	INTERRUPT_DEPTH_LIMIT = 16  // Nested interrupt frames before a double fault.
)

// FaultReason identifies the unit that rejected an instruction.
type FaultReason int

//go:generate go tool stringer -linecomment -type=FaultReason
const (
	FAULT_CORE       = FaultReason(0) // core
	FAULT_ARITHMETIC = FaultReason(1) // arithmetic
	FAULT_TEST       = FaultReason(2) // test
	FAULT_FLOW       = FaultReason(3) // flow
	FAULT_LOGIC      = FaultReason(4) // logic
	FAULT_STACK      = FaultReason(5) // stack
	FAULT_CPU        = FaultReason(6) // cpu
)

// Servicing returns true while at least one interrupt context is active.
func (cpu *Cpu) Servicing() bool {
	return cpu.depth > 0
}

// Depth returns the number of active interrupt contexts.
func (cpu *Cpu) Depth() int {
	return cpu.depth
}

// Raise delivers an interrupt: the context is saved on the stack as
// I, A, B, C, D, S, T, X and execution continues at the vector. S is
// saved as it was before the first push. Raise is not gated by
// InterruptsEnabled; a raise while servicing nests.
func (cpu *Cpu) Raise(vector uint8) (err error) {
	if cpu.depth >= INTERRUPT_DEPTH_LIMIT {
		err = ErrInterruptDepth
		return
	}

	if cpu.Verbose {
		log.Printf("cpu: interrupt %d at %08x", vector, cpu.Ip)
	}

	sp := cpu.Register[REG_S]
	context := [...]uint32{
		cpu.Ip,
		cpu.Register[REG_A],
		cpu.Register[REG_B],
		cpu.Register[REG_C],
		cpu.Register[REG_D],
		sp,
		cpu.Register[REG_T],
		cpu.Register[REG_X],
	}

	for _, value := range context {
		err = cpu.push(value, SIZE_DWORD)
		if err != nil {
			cpu.Register[REG_S] = sp
			return
		}
	}

	cpu.depth++
	cpu.Halted = false
	cpu.Ip = cpu.Vector[vector]

	return
}

// ReturnFromInterrupt restores the context saved by Raise, popping
// X, T, S, D, C, B, A and I. S takes the value of its saved slot once
// the frame is consumed.
func (cpu *Cpu) ReturnFromInterrupt() (err error) {
	if cpu.depth == 0 {
		err = ErrInterruptNone
		return
	}

	var context [8]uint32
	for n := len(context) - 1; n >= 0; n-- {
		context[n], err = cpu.pop(SIZE_DWORD)
		if err != nil {
			return
		}
	}

	cpu.Ip = context[0]
	cpu.Register[REG_A] = context[1]
	cpu.Register[REG_B] = context[2]
	cpu.Register[REG_C] = context[3]
	cpu.Register[REG_D] = context[4]
	cpu.Register[REG_S] = context[5]
	cpu.Register[REG_T] = context[6]
	cpu.Register[REG_X] = context[7]

	cpu.depth--

	return
}

// raiseFault delivers a synchronous fault. After the context, the frame
// words are pushed in order, then the faulting I, so that at handler
// entry the faulting I is on top of the stack with the frame below it.
// Handlers pop these words before iret.
func (cpu *Cpu) raiseFault(vector uint8, frame ...uint32) (err error) {
	fault_ip := cpu.Ip

	err = cpu.Raise(vector)
	if err != nil {
		return
	}

	for _, word := range append(frame, fault_ip) {
		err = cpu.push(word, SIZE_DWORD)
		if err != nil {
			return
		}
	}

	return
}

// raiseInvalid delivers the invalid-opcode fault: [I, Data, reason].
func (cpu *Cpu) raiseInvalid(op OpInvalid) error {
	return cpu.raiseFault(VECTOR_INVALID, uint32(op.Reason), uint32(op.Data))
}
