// Package cpu implements the processor core and assembler of the coresim machine.
//
// The CPU has seven 32-bit registers (a, b, c, d, s, t, x), an instruction
// pointer, 16 MiB of flat byte addressed memory shared by code, data and a
// downward growing stack, and a 256 entry interrupt vector table.
//
// Instructions are 16-bit little-endian words, optionally followed by
// 1, 2 or 4 byte immediates. Division by zero and unrecognized
// sub-operations are delivered to the guest as interrupts 0 and 1; every
// other failure is returned to the host from Tick.
//
// The assembler provides a line oriented assembly language for the
// instruction set, supporting macros, labels, equates, and compile-time
// expression evaluation.
package cpu
