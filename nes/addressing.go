package nes

// resolved is what the addressing evaluator computes from the CPU's
// current state and an instruction's addressing mode: either an effective
// 16-bit address to read/write through the bus, an 8-bit immediate value,
// or (for Accumulator mode) a flag telling the executor to operate on A
// directly instead of memory.
type resolved struct {
	addr        uint16
	isAccum     bool
	isImmediate bool
	immediate   byte
}

// resolveAddress computes the effective address or immediate value for
// inst's addressing mode, honoring zero-page wrap and the JMP-indirect
// page-boundary bug (the high byte wraps within the same page instead of
// crossing into the next one, reproducing the original hardware quirk).
func (c *CPU) resolveAddress(inst Instruction) resolved {
	switch inst.Mode {
	case Implied:
		return resolved{}

	case Accumulator:
		return resolved{isAccum: true}

	case Immediate:
		return resolved{isImmediate: true, immediate: inst.Operand.immediate}

	case ZeroPage:
		return resolved{addr: uint16(inst.Operand.addr8)}

	case ZeroPageX:
		return resolved{addr: uint16(inst.Operand.addr8 + c.X)} // wraps within the zero page

	case ZeroPageY:
		return resolved{addr: uint16(inst.Operand.addr8 + c.Y)}

	case Absolute:
		return resolved{addr: inst.Operand.addr16}

	case AbsoluteX:
		return resolved{addr: inst.Operand.addr16 + uint16(c.X)}

	case AbsoluteY:
		return resolved{addr: inst.Operand.addr16 + uint16(c.Y)}

	case IndirectX:
		ptr := inst.Operand.addr8 + c.X // 8-bit wrap
		lo := c.bus.Read(uint16(ptr))
		hi := c.bus.Read(uint16(ptr + 1)) // high-byte fetch wraps within the zero page
		return resolved{addr: uint16(hi)<<8 | uint16(lo)}

	case IndirectY:
		lo := c.bus.Read(uint16(inst.Operand.addr8))
		hi := c.bus.Read(uint16(inst.Operand.addr8 + 1)) // zero-page wrap
		base := uint16(hi)<<8 | uint16(lo)
		return resolved{addr: base + uint16(c.Y)}

	case Indirect:
		ptr := inst.Operand.addr16
		lo := c.bus.Read(ptr)
		var hi byte
		if byte(ptr) == 0xFF {
			// JMP ($xxFF) bug: the high byte is fetched from $xx00,
			// not the following page.
			hi = c.bus.Read(ptr & 0xFF00)
		} else {
			hi = c.bus.Read(ptr + 1)
		}
		return resolved{addr: uint16(hi)<<8 | uint16(lo)}
	}

	return resolved{}
}

// load reads the operand's value: the accumulator, an immediate, or a
// memory read through r.addr.
func (r resolved) load(c *CPU) byte {
	switch {
	case r.isImmediate:
		return r.immediate
	case r.isAccum:
		return c.A
	default:
		return c.bus.Read(r.addr)
	}
}

// store writes v back to wherever r pointed: the accumulator or memory.
func (r resolved) store(c *CPU, v byte) {
	if r.isAccum {
		c.A = v
		return
	}
	c.bus.Write(r.addr, v)
}
