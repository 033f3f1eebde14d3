package nes

// execute carries out inst's effect on the CPU and bus. pc is the address
// the instruction was fetched from; PC itself has already been advanced by
// inst.Size (Step does this before calling execute), so control-flow
// instructions below overwrite PC rather than offset it from pc.
func (c *CPU) execute(inst Instruction, pc uint16) {
	r := c.resolveAddress(inst)

	switch inst.Kind {
	case KindBreak:
		c.brk()

	case KindLoadRegister:
		v := r.load(c)
		c.setReg(inst.Reg, v)
		c.updateZeroNegative(v)

	case KindStoreRegister:
		r.store(c, c.getReg(inst.Reg))

	case KindTransferRegisterTo:
		var v byte
		switch inst.Mnemonic {
		case "TAX", "TAY":
			v = c.A
		case "TXA":
			v = c.X
		case "TYA":
			v = c.Y
		}
		c.setReg(inst.Reg, v)
		c.updateZeroNegative(v)

	case KindTransferStackPointerToX:
		c.X = c.SP
		c.updateZeroNegative(c.X)

	case KindTransferXToStackPointer:
		c.SP = c.X // TXS does not touch any flag

	case KindPushAccumulator:
		c.push(c.A)

	case KindPullAccumulator:
		c.A = c.pull()
		c.updateZeroNegative(c.A)

	case KindPushStatusRegister:
		c.push(byte(c.Status) | byte(FlagBreak) | byte(FlagUnused))

	case KindPullStatusRegister:
		c.pullStatus()

	case KindAddWithCarry:
		c.addWithCarry(r.load(c))

	case KindSubtractWithCarry:
		c.addWithCarry(r.load(c) ^ 0xFF)

	case KindLogicalAND:
		c.A &= r.load(c)
		c.updateZeroNegative(c.A)

	case KindExclusiveOR:
		c.A ^= r.load(c)
		c.updateZeroNegative(c.A)

	case KindBitwiseOR:
		c.A |= r.load(c)
		c.updateZeroNegative(c.A)

	case KindShiftLeft:
		v := r.load(c)
		carry := v&0x80 != 0
		v <<= 1
		c.setFlag(FlagCarry, carry)
		r.store(c, v)
		c.updateZeroNegative(v)

	case KindShiftRight:
		v := r.load(c)
		carry := v&0x01 != 0
		v >>= 1
		c.setFlag(FlagCarry, carry)
		r.store(c, v)
		c.updateZeroNegative(v)

	case KindRotateLeft:
		v := r.load(c)
		var oldCarry byte
		if c.GetFlag(FlagCarry) {
			oldCarry = 1
		}
		newCarry := v&0x80 != 0
		v = v<<1 | oldCarry
		c.setFlag(FlagCarry, newCarry)
		r.store(c, v)
		c.updateZeroNegative(v)

	case KindRotateRight:
		v := r.load(c)
		oldCarry := c.GetFlag(FlagCarry)
		newCarry := v&0x01 != 0
		v >>= 1
		if oldCarry {
			v |= 0x80
		}
		c.setFlag(FlagCarry, newCarry)
		r.store(c, v)
		c.updateZeroNegative(v)

	case KindIncrement:
		v := r.load(c) + 1
		r.store(c, v)
		c.updateZeroNegative(v)

	case KindIncrementRegister:
		v := c.getReg(inst.Reg) + 1
		c.setReg(inst.Reg, v)
		c.updateZeroNegative(v)

	case KindDecrement:
		v := r.load(c) - 1
		r.store(c, v)
		c.updateZeroNegative(v)

	case KindDecrementRegister:
		v := c.getReg(inst.Reg) - 1
		c.setReg(inst.Reg, v)
		c.updateZeroNegative(v)

	case KindCompareRegister:
		reg := c.getReg(inst.Reg)
		m := r.load(c)
		diff := reg - m
		c.setFlag(FlagCarry, reg >= m)
		c.setFlag(FlagZero, reg == m)
		c.setFlag(FlagNegative, diff&0x80 != 0)

	case KindBitTest:
		m := r.load(c)
		c.setFlag(FlagZero, c.A&m == 0)
		c.setFlag(FlagOverflow, m&0x40 != 0)
		c.setFlag(FlagNegative, m&0x80 != 0)

	case KindBranch:
		if c.testCond(inst.Cond) {
			c.PC = uint16(int32(c.PC) + int32(inst.Operand.relative))
		}

	case KindJump:
		c.PC = r.addr

	case KindJumpToSubroutine:
		c.pushAddress(c.PC - 1)
		c.PC = r.addr

	case KindReturnFromSubroutine:
		c.PC = c.pullAddress() + 1

	case KindReturnFromInterrupt:
		c.pullStatus()
		c.PC = c.pullAddress()

	case KindClearStatusFlag:
		c.setFlag(inst.Flag, false)

	case KindSetStatusFlag:
		c.setFlag(inst.Flag, true)

	case KindNoOperation:
		// nothing to do

	case KindDoubleNoOperation, KindTripleNoOperation:
		r.load(c) // the real CPU still drives the address bus for its read

	case KindLoadAccumulatorAndX:
		v := r.load(c)
		c.A = v
		c.X = v
		c.updateZeroNegative(v)

	case KindStoreAccumulatorAndX:
		r.store(c, c.A&c.X)
	}
}

func (c *CPU) getReg(reg Register) byte {
	switch reg {
	case RegA:
		return c.A
	case RegX:
		return c.X
	case RegY:
		return c.Y
	default:
		return 0
	}
}

func (c *CPU) setReg(reg Register, v byte) {
	switch reg {
	case RegA:
		c.A = v
	case RegX:
		c.X = v
	case RegY:
		c.Y = v
	}
}

// addWithCarry implements ADC; SBC is ADC against the bitwise complement of
// its operand (a-b == a+^b+1 in two's complement, and carry already
// supplies the +1), so it reuses this directly.
func (c *CPU) addWithCarry(v byte) {
	a := c.A
	var carryIn uint16
	if c.GetFlag(FlagCarry) {
		carryIn = 1
	}
	sum := uint16(a) + uint16(v) + carryIn
	result := byte(sum)

	c.setFlag(FlagCarry, sum > 0xFF)
	c.setFlag(FlagOverflow, (a^v)&0x80 == 0 && (a^result)&0x80 != 0)

	c.A = result
	c.updateZeroNegative(result)
}

// pullStatus implements the pull half of PLP and RTI: Break and the unused
// bit are wiring artifacts that exist only in a pushed byte, never as
// resident flags, so a pull strips both back off.
func (c *CPU) pullStatus() {
	pulled := StatusFlag(c.pull())
	c.Status = pulled &^ (FlagBreak | FlagUnused)
}

func (c *CPU) testCond(cond Conditional) bool {
	switch cond {
	case Equal:
		return c.GetFlag(FlagZero)
	case NotEqual:
		return !c.GetFlag(FlagZero)
	case CarrySet:
		return c.GetFlag(FlagCarry)
	case CarryClear:
		return !c.GetFlag(FlagCarry)
	case Minus:
		return c.GetFlag(FlagNegative)
	case Positive:
		return !c.GetFlag(FlagNegative)
	case OverflowSet:
		return c.GetFlag(FlagOverflow)
	case OverflowClear:
		return !c.GetFlag(FlagOverflow)
	default:
		return false
	}
}

// brk implements BRK: it behaves like a hardware interrupt latched by the
// instruction stream itself, except it pushes status with Break set so a
// handler can distinguish it from IRQ/NMI.
func (c *CPU) brk() {
	c.pushAddress(c.PC + 1)
	c.push(byte(c.Status) | byte(FlagBreak) | byte(FlagUnused))
	c.setFlag(FlagInterruptDisable, true)
	c.PC = c.bus.ReadAddress(irqVector)
}
