// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/coresim/cpu"
	"github.com/ezrec/coresim/internal"
)

const (
	STACK_TOP = cpu.MEMORY_SIZE // Initial stack pointer; the stack grows down from the end of memory.
)

var _emulator_defines = map[string]string{
	"STACK_TOP": fmt.Sprintf("0x%x", STACK_TOP),
}

// Emulator state. CPU + program listing.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently running program listing.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(),
		Program: &cpu.Program{},
	}

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
	)
}

// Reset loads the program image at address 0 and resets the CPU, with
// the stack pointer at STACK_TOP.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose

	err = emu.Cpu.LoadImage(emu.Program.Binary())
	if err != nil {
		return
	}

	emu.Cpu.Register[cpu.REG_S] = STACK_TOP

	return
}

// Ticks returns the total ticks since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// Code returns the current instruction code.
func (emu *Emulator) Code() cpu.Code {
	for ip, code := range emu.Program.Codes() {
		if emu.Cpu.Ip == ip {
			return code
		}
	}

	return cpu.Code{}
}

// LineNo returns the current line number for the executing opcode.
func (emu *Emulator) LineNo() int {
	dbg := emu.Program.Debug(emu.Cpu.Ip)
	if dbg.Opcode == nil {
		return 0
	}

	return dbg.Opcode.LineNo
}

// Done returns true once the CPU has halted outside of an interrupt.
func (emu *Emulator) Done() bool {
	return emu.Cpu.Halted && !emu.Cpu.Servicing()
}

// Tick performs a single tick of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	if emu.Done() {
		done = true
		return
	}

	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Err: err}
		}
	}()

	err = emu.Cpu.Tick()
	if err != nil {
		return
	}

	done = emu.Done()

	return
}

// Run ticks until the program halts. A limit of zero or less runs
// without bound.
func (emu *Emulator) Run(limit int) (err error) {
	for n := 0; limit <= 0 || n < limit; n++ {
		var done bool
		done, err = emu.Tick()
		if err != nil || done {
			return
		}
	}

	err = ErrTickLimit
	return
}

// Service raises an interrupt from the host and runs its handler until
// it returns. A limit of zero or less runs without bound.
func (emu *Emulator) Service(vector uint8, limit int) (err error) {
	depth := emu.Cpu.Depth()

	if emu.Verbose {
		log.Printf("emulator: service vector %d", vector)
	}

	err = emu.Cpu.Raise(vector)
	if err != nil {
		err = &ErrRuntime{LineNo: emu.LineNo(), Err: err}
		return
	}

	for n := 0; limit <= 0 || n < limit; n++ {
		if emu.Cpu.Depth() <= depth {
			return
		}
		_, err = emu.Tick()
		if err != nil {
			return
		}
	}

	if emu.Cpu.Depth() > depth {
		err = ErrTickLimit
	}

	return
}
