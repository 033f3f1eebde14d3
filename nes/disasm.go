package nes

import (
	"fmt"
	"strings"
)

// Disassemble renders inst, fetched from pc, in the nestest reference trace
// format: PC, raw bytes, mnemonic with operand and computed-address suffix,
// then a register dump - all reflecting CPU state *before* inst executes,
// since Step calls this ahead of execute.
func Disassemble(inst Instruction, pc uint16, c *CPU, bus *Bus) string {
	bytesField := rawBytesField(inst, pc, bus)

	mnemonic := inst.Mnemonic
	if inst.Illegal {
		mnemonic = "*" + mnemonic
	}

	asm := mnemonic
	if operand := operandText(inst, pc, c, bus); operand != "" {
		asm += " " + operand
	}

	line := fmt.Sprintf("%04X  %s %s", pc, bytesField, asm)
	for len(line) < 48 {
		line += " "
	}

	return fmt.Sprintf("%sA:%02X X:%02X Y:%02X P:%02X SP:%02X",
		line, c.A, c.X, c.Y, byte(c.Status)|byte(FlagUnused), c.SP)
}

// rawBytesField renders the instruction's encoded bytes, space-separated
// and padded to line up the mnemonic column regardless of instruction
// length. The field shrinks by one for undocumented opcodes, since their
// mnemonic carries a leading '*' that would otherwise push later columns
// out of alignment.
func rawBytesField(inst Instruction, pc uint16, bus *Bus) string {
	parts := make([]string, inst.Size)
	for i := byte(0); i < inst.Size; i++ {
		parts[i] = fmt.Sprintf("%02X", bus.Read(pc+uint16(i)))
	}
	width := 9
	if inst.Illegal {
		width = 8
	}
	return fmt.Sprintf("%-*s", width, strings.Join(parts, " "))
}

// operandText renders an instruction's addressing-mode syntax together with
// its computed-address suffix, matching nestest's trace format for each
// addressing mode.
func operandText(inst Instruction, pc uint16, c *CPU, bus *Bus) string {
	if inst.Kind == KindBranch {
		target := uint16(int32(pc) + int32(inst.Size) + int32(inst.Operand.relative))
		return fmt.Sprintf("$%04X", target)
	}

	switch inst.Mode {
	case Implied:
		return ""

	case Accumulator:
		return "A"

	case Immediate:
		return fmt.Sprintf("#$%02X", inst.Operand.immediate)

	case ZeroPage:
		addr := inst.Operand.addr8
		base := fmt.Sprintf("$%02X", addr)
		if isControlFlow(inst.Kind) {
			return base
		}
		return base + fmt.Sprintf(" = %02X", bus.Read(uint16(addr)))

	case ZeroPageX:
		addr := inst.Operand.addr8
		eff := addr + c.X
		return fmt.Sprintf("$%02X,X @ %02X = %02X", addr, eff, bus.Read(uint16(eff)))

	case ZeroPageY:
		addr := inst.Operand.addr8
		eff := addr + c.Y
		return fmt.Sprintf("$%02X,Y @ %02X = %02X", addr, eff, bus.Read(uint16(eff)))

	case Absolute:
		addr := inst.Operand.addr16
		base := fmt.Sprintf("$%04X", addr)
		if isControlFlow(inst.Kind) {
			return base
		}
		return base + fmt.Sprintf(" = %02X", bus.Read(addr))

	case AbsoluteX:
		addr := inst.Operand.addr16
		eff := addr + uint16(c.X)
		return fmt.Sprintf("$%04X,X @ %04X = %02X", addr, eff, bus.Read(eff))

	case AbsoluteY:
		addr := inst.Operand.addr16
		eff := addr + uint16(c.Y)
		return fmt.Sprintf("$%04X,Y @ %04X = %02X", addr, eff, bus.Read(eff))

	case Indirect:
		// Only JMP uses this mode; the suffix shows the resolved target,
		// honoring the page-boundary bug.
		target := c.resolveAddress(inst).addr
		return fmt.Sprintf("($%04X) = %04X", inst.Operand.addr16, target)

	case IndirectX:
		addr := inst.Operand.addr8
		ptr := addr + c.X
		target := c.resolveAddress(inst).addr
		return fmt.Sprintf("($%02X,X) @ %02X = %04X = %02X", addr, ptr, target, bus.Read(target))

	case IndirectY:
		addr := inst.Operand.addr8
		lo := bus.Read(uint16(addr))
		hi := bus.Read(uint16(addr + 1))
		base := uint16(hi)<<8 | uint16(lo)
		target := c.resolveAddress(inst).addr
		return fmt.Sprintf("($%02X),Y = %04X @ %04X = %02X", addr, base, target, bus.Read(target))
	}

	return ""
}

// isControlFlow reports whether kind's plain ZeroPage/Absolute operand is an
// address to jump to rather than a memory cell to peek at - JMP and JSR
// never get the " = VV" suffix other memory operands do.
func isControlFlow(kind Kind) bool {
	return kind == KindJump || kind == KindJumpToSubroutine
}
