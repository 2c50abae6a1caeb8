package cpu

// The stack lives in Memory and grows down from S: a push decrements S
// by the operand width and writes at the new S; a pop reads at S and
// then increments it. S only moves when the access succeeds.

func (cpu *Cpu) push(value uint32, size CodeSize) (err error) {
	sp := cpu.Register[REG_S] - uint32(size.Bytes())

	err = cpu.Memory.Write(sp, value, size)
	if err != nil {
		return
	}

	cpu.Register[REG_S] = sp
	return
}

func (cpu *Cpu) pop(size CodeSize) (value uint32, err error) {
	sp := cpu.Register[REG_S]

	value, err = cpu.Memory.Read(sp, size)
	if err != nil {
		return
	}

	cpu.Register[REG_S] = sp + uint32(size.Bytes())
	return
}

// Peek returns the value n dwords below the top of the stack.
func (cpu *Cpu) Peek(n int) (value uint32, ok bool) {
	value, err := cpu.Memory.Read(cpu.Register[REG_S]+uint32(4*n), SIZE_DWORD)
	ok = err == nil
	return
}
