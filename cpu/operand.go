package cpu

// fetchImmediate consumes a literal of the given size at Ip.
func (cpu *Cpu) fetchImmediate(size CodeSize) (value uint32, err error) {
	value, err = cpu.Memory.Read(cpu.Ip, size)
	if err != nil {
		return
	}

	cpu.Ip += uint32(size.Bytes())
	return
}

// register returns the bank index of a register operand.
func register(op Operand) (reg int, err error) {
	reg, ok := op.Target.Register()
	if !ok {
		err = ErrTargetInvalid
	}
	return
}

// read resolves an operand to a value. Immediates are consumed from the
// code stream; memory reads are zero-extended from size.
func (cpu *Cpu) read(op Operand, size CodeSize) (value uint32, err error) {
	switch op.Mode {
	case MODE_IMMEDIATE:
		value, err = cpu.fetchImmediate(size)
	case MODE_ABSOLUTE:
		var addr uint32
		addr, err = cpu.fetchImmediate(size)
		if err != nil {
			return
		}
		value, err = cpu.Memory.Read(addr, size)
	case MODE_REGISTER, MODE_INDIRECT:
		var reg int
		reg, err = register(op)
		if err != nil {
			return
		}
		value = cpu.Register[reg]
		if op.Mode == MODE_INDIRECT {
			value, err = cpu.Memory.Read(value, size)
		}
	default:
		err = ErrTargetInvalid
	}

	return
}

// location is a resolved, writable destination.
type location struct {
	memory  bool   // Store to memory at addr, else to register reg.
	reg     int    // Register bank index.
	address uint32 // Memory address.
}

// locate resolves where a destination operand stores, consuming the
// address literal of an absolute operand.
func (cpu *Cpu) locate(op Operand, size CodeSize) (loc location, err error) {
	switch op.Mode {
	case MODE_ABSOLUTE:
		loc.memory = true
		loc.address, err = cpu.fetchImmediate(size)
	case MODE_REGISTER:
		loc.reg, err = register(op)
	case MODE_INDIRECT:
		var reg int
		reg, err = register(op)
		if err != nil {
			return
		}
		loc.memory = true
		loc.address = cpu.Register[reg]
	default:
		// Immediates are not writable.
		err = ErrTargetInvalid
	}

	return
}

// store writes value to a resolved location.
func (cpu *Cpu) store(loc location, value uint32, size CodeSize) (err error) {
	if loc.memory {
		return cpu.Memory.Write(loc.address, value, size)
	}

	cpu.Register[loc.reg] = value
	return
}

// operands resolves the source and then the destination, both read as
// values. The destination is not written.
func (cpu *Cpu) operands(src, dst Operand, size CodeSize) (a, b uint32, err error) {
	a, err = cpu.read(src, size)
	if err != nil {
		return
	}

	b, err = cpu.read(dst, size)
	return
}
