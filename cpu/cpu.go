package cpu

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"
)

// Register bank indexes.
const (
	REG_A = iota
	REG_B
	REG_C
	REG_D
	REG_S // Stack pointer.
	REG_T // Test result.
	REG_X // Arithmetic and logic result.
	REGISTER_COUNT
)

var _cpu_defines = map[string]string{
	"MEMORY_SIZE":    fmt.Sprintf("0x%x", MEMORY_SIZE),
	"VECTOR_DIVIDE":  fmt.Sprintf("%d", VECTOR_DIVIDE),
	"VECTOR_INVALID": fmt.Sprintf("%d", VECTOR_INVALID),

	"FAULT_CORE":       fmt.Sprintf("%d", FAULT_CORE),
	"FAULT_ARITHMETIC": fmt.Sprintf("%d", FAULT_ARITHMETIC),
	"FAULT_TEST":       fmt.Sprintf("%d", FAULT_TEST),
	"FAULT_FLOW":       fmt.Sprintf("%d", FAULT_FLOW),
	"FAULT_LOGIC":      fmt.Sprintf("%d", FAULT_LOGIC),
	"FAULT_STACK":      fmt.Sprintf("%d", FAULT_STACK),
	"FAULT_CPU":        fmt.Sprintf("%d", FAULT_CPU),
}

// Cpu is the simulation context of one machine. A Cpu is not safe for
// concurrent use; independent machines need independent Cpus.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Ip       uint32                 // Current instruction pointer.
	Register [REGISTER_COUNT]uint32 // Register bank A, B, C, D, S, T, X.
	Memory   Memory                 // Code, data and stack.
	Vector   [VECTOR_COUNT]uint32   // Interrupt vector table.

	Halted            bool // Set by hlt, cleared by a delivered interrupt.
	InterruptsEnabled bool // Gates the int instruction.

	Ticks int // Instructions executed since reset.

	depth int // Active interrupt contexts.
}

// NewCpu creates a new CPU with zeroed memory.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{
		Memory: NewMemory(),
	}

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	row := func(name string, strval string) {
		text += fmt.Sprintf("% 5s: %v\n", name, strval)
	}
	word := func(val uint32) string {
		return fmt.Sprintf("%04X_%04X", val>>16, val&0xffff)
	}

	row("ip", word(cpu.Ip))
	for target := TARGET_A; target <= TARGET_X; target++ {
		reg, _ := target.Register()
		row(target.String(), word(cpu.Register[reg]))
	}

	if val, ok := cpu.Peek(0); ok {
		row("stack", word(val))
	} else {
		row("stack", "----_----")
	}

	row("flags", fmt.Sprintf("halt:%v ie:%v depth:%d", cpu.Halted, cpu.InterruptsEnabled, cpu.depth))

	return
}

// Reset the CPU state.
// - Zeros the registers and the instruction pointer.
// - Clears the halt and interrupt servicing state.
// - Zeros the tick counter.
// Memory, the vector table and InterruptsEnabled are kept.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	clear(cpu.Register[:])
	cpu.Ip = 0
	cpu.Halted = false
	cpu.depth = 0
	cpu.Ticks = 0
}

// LoadImage copies image to address 0, then resets the CPU. Memory
// past the image is left untouched.
func (cpu *Cpu) LoadImage(image []byte) (err error) {
	if len(image) > len(cpu.Memory) {
		err = ErrImageSize
		return
	}

	copy(cpu.Memory, image)

	if cpu.Verbose {
		log.Printf("cpu: loaded %d bytes", len(image))
	}

	cpu.Reset()

	return
}

// Fetch reads the instruction word at Ip and advances past it.
func (cpu *Cpu) Fetch() (in Instruction, err error) {
	word, err := cpu.fetchImmediate(SIZE_WORD)
	if err != nil {
		return
	}

	in = Decode(uint16(word))
	return
}

// Tick executes a single instruction. While halted outside of an
// interrupt, a tick does nothing.
// Machine faults are delivered as interrupts inside the tick; the
// returned error is always a host-level failure.
func (cpu *Cpu) Tick() (err error) {
	if cpu.Halted && !cpu.Servicing() {
		return
	}

	ip := cpu.Ip
	in, err := cpu.Fetch()
	if err != nil {
		return
	}

	if cpu.Verbose {
		log.Printf("%08x: %v", ip, in)
	}

	err = cpu.Execute(in)
	if err != nil {
		return
	}

	cpu.Ticks++

	return
}

// Execute executes a single decoded instruction, whose word has already
// been consumed from the code stream.
func (cpu *Cpu) Execute(in Instruction) (err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrInstruction(in.Encode()), err)
		}
	}()

	switch op := in.Operation().(type) {
	case OpMove:
		err = cpu.execMove(op)
	case OpArithmetic:
		err = cpu.execArithmetic(op)
	case OpTest:
		err = cpu.execTest(op)
	case OpFlow:
		err = cpu.execFlow(op)
	case OpLogic:
		err = cpu.execLogic(op)
	case OpPush:
		err = cpu.execPush(op)
	case OpPop:
		err = cpu.execPop(op)
	case OpCpu:
		err = cpu.execCpu(op)
	case OpInvalid:
		err = cpu.raiseInvalid(op)
	}

	return
}
