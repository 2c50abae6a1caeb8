package cpu

// signExtend widens a value read at size to a signed 32-bit offset.
func signExtend(value uint32, size CodeSize) int32 {
	switch size {
	case SIZE_BYTE:
		return int32(int8(value))
	case SIZE_WORD:
		return int32(int16(value))
	}
	return int32(value)
}

func (cpu *Cpu) execMove(op OpMove) (err error) {
	value, err := cpu.read(op.Src, op.Size)
	if err != nil {
		return
	}

	loc, err := cpu.locate(op.Dst, op.Size)
	if err != nil {
		return
	}

	return cpu.store(loc, value, op.Size)
}

// execArithmetic computes X = a op b, with a the source and b the
// destination read as a value.
func (cpu *Cpu) execArithmetic(op OpArithmetic) (err error) {
	a, b, err := cpu.operands(op.Src, op.Dst, op.Size)
	if err != nil {
		return
	}

	var x uint32
	switch op.Op {
	case ARI_OP_ADD:
		x = a + b
	case ARI_OP_SUB:
		x = a - b
	case ARI_OP_MUL:
		x = a * b
	case ARI_OP_DIV, ARI_OP_MOD:
		if b == 0 {
			return cpu.raiseFault(VECTOR_DIVIDE)
		}
		if op.Op == ARI_OP_DIV {
			x = a / b
		} else {
			x = a % b
		}
	case ARI_OP_SHR:
		x = a >> (b & 0x1f)
	case ARI_OP_SHL:
		x = a << (b & 0x1f)
	}

	cpu.Register[REG_X] = x
	return
}

func (cpu *Cpu) execTest(op OpTest) (err error) {
	a, b, err := cpu.operands(op.Src, op.Dst, op.Size)
	if err != nil {
		return
	}

	var result bool
	switch op.Op {
	case TEST_OP_EQ:
		result = a == b
	case TEST_OP_GT:
		result = a > b
	case TEST_OP_LT:
		result = a < b
	case TEST_OP_GE:
		result = a >= b
	case TEST_OP_LE:
		result = a <= b
	}

	cpu.Register[REG_T] = 0
	if result {
		cpu.Register[REG_T] = 1
	}
	return
}

func (cpu *Cpu) execFlow(op OpFlow) (err error) {
	switch op.Op {
	case FLOW_OP_RET:
		var ip uint32
		ip, err = cpu.pop(SIZE_DWORD)
		if err == nil {
			cpu.Ip = ip
		}
		return
	case FLOW_OP_IRET:
		return cpu.ReturnFromInterrupt()
	}

	value, err := cpu.read(op.Src, op.Size)
	if err != nil {
		return
	}

	switch op.Op {
	case FLOW_OP_JMP:
		cpu.Ip = value
	case FLOW_OP_TJMP:
		if cpu.Register[REG_T] != 0 {
			cpu.Ip = value
		}
	case FLOW_OP_FJMP:
		if cpu.Register[REG_T] == 0 {
			cpu.Ip = value
		}
	case FLOW_OP_RJMP:
		offset := int32(value)
		if op.Src.Sized() {
			offset = signExtend(value, op.Size)
		}
		cpu.Ip += uint32(offset)
	case FLOW_OP_CALL:
		err = cpu.push(cpu.Ip, SIZE_DWORD)
		if err != nil {
			return
		}
		cpu.Ip = value
	case FLOW_OP_INT:
		// Masked interrupts are dropped without checking the vector.
		if !cpu.InterruptsEnabled {
			return
		}
		if value >= VECTOR_COUNT {
			err = ErrVectorIndex
			return
		}
		err = cpu.Raise(uint8(value))
	}

	return
}

func (cpu *Cpu) execLogic(op OpLogic) (err error) {
	if op.Op == LOGIC_OP_NOT {
		var a uint32
		a, err = cpu.read(op.Src, op.Size)
		if err != nil {
			return
		}
		cpu.Register[REG_X] = ^a
		return
	}

	a, b, err := cpu.operands(op.Src, op.Dst, op.Size)
	if err != nil {
		return
	}

	switch op.Op {
	case LOGIC_OP_AND:
		cpu.Register[REG_X] = a & b
	case LOGIC_OP_OR:
		cpu.Register[REG_X] = a | b
	case LOGIC_OP_XOR:
		cpu.Register[REG_X] = a ^ b
	}
	return
}

func (cpu *Cpu) execPush(op OpPush) (err error) {
	value, err := cpu.read(op.Src, op.Size)
	if err != nil {
		return
	}

	return cpu.push(value, op.Size)
}

// execPop pops into A, B, C, D, T or X. Popping into S, a constant or
// through a pointer is rejected.
func (cpu *Cpu) execPop(op OpPop) (err error) {
	if op.Dst.Mode != MODE_REGISTER || op.Dst.Target == TARGET_S {
		err = ErrPopTarget
		return
	}

	reg, err := register(op.Dst)
	if err != nil {
		return
	}

	value, err := cpu.pop(op.Size)
	if err != nil {
		return
	}

	cpu.Register[reg] = value
	return
}

func (cpu *Cpu) execCpu(op OpCpu) (err error) {
	switch op.Op {
	case CPU_OP_HLT:
		cpu.Halted = true
	case CPU_OP_CLI:
		cpu.InterruptsEnabled = false
	case CPU_OP_STI:
		cpu.InterruptsEnabled = true
	case CPU_OP_RST:
		cpu.Reset()
	case CPU_OP_SETVE:
		var index, address uint32
		index, address, err = cpu.operands(op.Src, op.Dst, op.Size)
		if err != nil {
			return
		}
		if index >= VECTOR_COUNT {
			err = ErrVectorIndex
			return
		}
		cpu.Vector[index] = address
	}
	return
}
