package nes

import "github.com/pkg/errors"

// opcodeEntry is the decoder's per-opcode metadata: everything needed to
// build an Instruction except the operand bytes, which depend on the bytes
// actually fetched.
type opcodeEntry struct {
	kind     Kind
	reg      Register
	mode     AddressingMode
	cond     Conditional
	flag     StatusFlag
	mnemonic string
	size     byte
	cycles   byte
	illegal  bool
}

var invalidEntry = opcodeEntry{}

// opcodes is the single source of truth for opcode size and cycle counts;
// the decoder computes them once so the executor never has to.
var opcodes = buildOpcodeTable()

// Decode is a pure function from the bytes at [PC, PC+1, PC+2] to a tagged
// Instruction. b must contain at least one byte; only as many further
// bytes as the instruction's size demands are read.
func Decode(b []byte) (Instruction, error) {
	if len(b) < 1 {
		return Instruction{}, errors.New("nes: decode requires at least one byte")
	}

	op := b[0]
	e := opcodes[op]
	if e == invalidEntry {
		return Instruction{}, errors.Wrapf(ErrUnknownOpcode, "opcode $%02X", op)
	}

	inst := Instruction{
		Opcode:   op,
		Mnemonic: e.mnemonic,
		Illegal:  e.illegal,
		Kind:     e.kind,
		Reg:      e.reg,
		Mode:     e.mode,
		Cond:     e.cond,
		Flag:     e.flag,
		Size:     e.size,
		Cycles:   e.cycles,
	}

	byteAt := func(i int) byte {
		if i < len(b) {
			return b[i]
		}
		return 0
	}

	switch e.kind {
	case KindBranch:
		inst.Operand = Operand{kind: operandRelative, relative: int8(byteAt(1))}
		return inst, nil
	}

	switch e.mode {
	case Implied, Accumulator:
		// no operand
	case Immediate:
		inst.Operand = Operand{kind: operandImmediate, immediate: byteAt(1)}
	case ZeroPage, ZeroPageX, ZeroPageY, IndirectX, IndirectY:
		inst.Operand = Operand{kind: operandAddr8, addr8: byteAt(1)}
	case Absolute, AbsoluteX, AbsoluteY, Indirect:
		inst.Operand = Operand{kind: operandAddr16, addr16: uint16(byteAt(2))<<8 | uint16(byteAt(1))}
	}

	return inst, nil
}

func buildOpcodeTable() [256]opcodeEntry {
	var t [256]opcodeEntry

	set := func(op byte, kind Kind, reg Register, mode AddressingMode, mnemonic string, size, cycles byte) {
		t[op] = opcodeEntry{kind: kind, reg: reg, mode: mode, mnemonic: mnemonic, size: size, cycles: cycles}
	}
	setIllegal := func(op byte, kind Kind, reg Register, mode AddressingMode, mnemonic string, size, cycles byte) {
		t[op] = opcodeEntry{kind: kind, reg: reg, mode: mode, mnemonic: mnemonic, size: size, cycles: cycles, illegal: true}
	}
	setBranch := func(op byte, cond Conditional, mnemonic string) {
		t[op] = opcodeEntry{kind: KindBranch, cond: cond, mnemonic: mnemonic, size: 2, cycles: 2}
	}
	setFlag := func(op byte, kind Kind, flag StatusFlag, mnemonic string) {
		t[op] = opcodeEntry{kind: kind, flag: flag, mode: Implied, mnemonic: mnemonic, size: 1, cycles: 2}
	}

	// BRK is encoded as a single byte; the real 6502 still skips a padding
	// byte when it services the break, which is why the executor pushes
	// PC+1 (on top of the size-1 auto-advance Step already applied) rather
	// than the plain post-fetch PC.
	set(0x00, KindBreak, RegNone, Implied, "BRK", 1, 7)

	// LDA/LDX/LDY
	for _, e := range []struct {
		op     byte
		mode   AddressingMode
		size   byte
		cycles byte
	}{
		{0xA9, Immediate, 2, 2}, {0xA5, ZeroPage, 2, 3}, {0xB5, ZeroPageX, 2, 4},
		{0xAD, Absolute, 3, 4}, {0xBD, AbsoluteX, 3, 4}, {0xB9, AbsoluteY, 3, 4},
		{0xA1, IndirectX, 2, 6}, {0xB1, IndirectY, 2, 5},
	} {
		set(e.op, KindLoadRegister, RegA, e.mode, "LDA", e.size, e.cycles)
	}
	for _, e := range []struct {
		op     byte
		mode   AddressingMode
		size   byte
		cycles byte
	}{
		{0xA2, Immediate, 2, 2}, {0xA6, ZeroPage, 2, 3}, {0xB6, ZeroPageY, 2, 4},
		{0xAE, Absolute, 3, 4}, {0xBE, AbsoluteY, 3, 4},
	} {
		set(e.op, KindLoadRegister, RegX, e.mode, "LDX", e.size, e.cycles)
	}
	for _, e := range []struct {
		op     byte
		mode   AddressingMode
		size   byte
		cycles byte
	}{
		{0xA0, Immediate, 2, 2}, {0xA4, ZeroPage, 2, 3}, {0xB4, ZeroPageX, 2, 4},
		{0xAC, Absolute, 3, 4}, {0xBC, AbsoluteX, 3, 4},
	} {
		set(e.op, KindLoadRegister, RegY, e.mode, "LDY", e.size, e.cycles)
	}

	// STA/STX/STY
	for _, e := range []struct {
		op     byte
		mode   AddressingMode
		size   byte
		cycles byte
	}{
		{0x85, ZeroPage, 2, 3}, {0x95, ZeroPageX, 2, 4}, {0x8D, Absolute, 3, 4},
		{0x9D, AbsoluteX, 3, 5}, {0x99, AbsoluteY, 3, 5}, {0x81, IndirectX, 2, 6}, {0x91, IndirectY, 2, 6},
	} {
		set(e.op, KindStoreRegister, RegA, e.mode, "STA", e.size, e.cycles)
	}
	set(0x86, KindStoreRegister, RegX, ZeroPage, "STX", 2, 3)
	set(0x96, KindStoreRegister, RegX, ZeroPageY, "STX", 2, 4)
	set(0x8E, KindStoreRegister, RegX, Absolute, "STX", 3, 4)
	set(0x84, KindStoreRegister, RegY, ZeroPage, "STY", 2, 3)
	set(0x94, KindStoreRegister, RegY, ZeroPageX, "STY", 2, 4)
	set(0x8C, KindStoreRegister, RegY, Absolute, "STY", 3, 4)

	// Transfers
	set(0xAA, KindTransferRegisterTo, RegX, Implied, "TAX", 1, 2) // A->X
	set(0xA8, KindTransferRegisterTo, RegY, Implied, "TAY", 1, 2) // A->Y
	set(0x8A, KindTransferRegisterTo, RegA, Implied, "TXA", 1, 2) // X->A
	set(0x98, KindTransferRegisterTo, RegA, Implied, "TYA", 1, 2) // Y->A
	set(0xBA, KindTransferStackPointerToX, RegNone, Implied, "TSX", 1, 2)
	set(0x9A, KindTransferXToStackPointer, RegNone, Implied, "TXS", 1, 2)

	// Stack
	set(0x48, KindPushAccumulator, RegNone, Implied, "PHA", 1, 3)
	set(0x68, KindPullAccumulator, RegNone, Implied, "PLA", 1, 4)
	set(0x08, KindPushStatusRegister, RegNone, Implied, "PHP", 1, 3)
	set(0x28, KindPullStatusRegister, RegNone, Implied, "PLP", 1, 4)

	// ADC
	for _, e := range []struct {
		op     byte
		mode   AddressingMode
		size   byte
		cycles byte
	}{
		{0x69, Immediate, 2, 2}, {0x65, ZeroPage, 2, 3}, {0x75, ZeroPageX, 2, 4},
		{0x6D, Absolute, 3, 4}, {0x7D, AbsoluteX, 3, 4}, {0x79, AbsoluteY, 3, 4},
		{0x61, IndirectX, 2, 6}, {0x71, IndirectY, 2, 5},
	} {
		set(e.op, KindAddWithCarry, RegNone, e.mode, "ADC", e.size, e.cycles)
	}

	// SBC (+ undocumented $EB alias)
	for _, e := range []struct {
		op     byte
		mode   AddressingMode
		size   byte
		cycles byte
	}{
		{0xE9, Immediate, 2, 2}, {0xE5, ZeroPage, 2, 3}, {0xF5, ZeroPageX, 2, 4},
		{0xED, Absolute, 3, 4}, {0xFD, AbsoluteX, 3, 4}, {0xF9, AbsoluteY, 3, 4},
		{0xE1, IndirectX, 2, 6}, {0xF1, IndirectY, 2, 5},
	} {
		set(e.op, KindSubtractWithCarry, RegNone, e.mode, "SBC", e.size, e.cycles)
	}
	setIllegal(0xEB, KindSubtractWithCarry, RegNone, Immediate, "SBC", 2, 2)

	// AND/EOR/ORA
	for _, group := range []struct {
		kind Kind
		name string
		ops  [8]byte
	}{
		{KindLogicalAND, "AND", [8]byte{0x29, 0x25, 0x35, 0x2D, 0x3D, 0x39, 0x21, 0x31}},
		{KindExclusiveOR, "EOR", [8]byte{0x49, 0x45, 0x55, 0x4D, 0x5D, 0x59, 0x41, 0x51}},
		{KindBitwiseOR, "ORA", [8]byte{0x09, 0x05, 0x15, 0x0D, 0x1D, 0x19, 0x01, 0x11}},
	} {
		modes := [8]AddressingMode{Immediate, ZeroPage, ZeroPageX, Absolute, AbsoluteX, AbsoluteY, IndirectX, IndirectY}
		sizes := [8]byte{2, 2, 2, 3, 3, 3, 2, 2}
		cycles := [8]byte{2, 3, 4, 4, 4, 4, 6, 5}
		for i, op := range group.ops {
			set(op, group.kind, RegNone, modes[i], group.name, sizes[i], cycles[i])
		}
	}

	// ASL/LSR/ROL/ROR (memory + accumulator)
	for _, group := range []struct {
		kind Kind
		name string
		acc  byte
		zp   byte
		zpx  byte
		abs  byte
		absx byte
	}{
		{KindShiftLeft, "ASL", 0x0A, 0x06, 0x16, 0x0E, 0x1E},
		{KindShiftRight, "LSR", 0x4A, 0x46, 0x56, 0x4E, 0x5E},
		{KindRotateLeft, "ROL", 0x2A, 0x26, 0x36, 0x2E, 0x3E},
		{KindRotateRight, "ROR", 0x6A, 0x66, 0x76, 0x6E, 0x7E},
	} {
		set(group.acc, group.kind, RegNone, Accumulator, group.name, 1, 2)
		set(group.zp, group.kind, RegNone, ZeroPage, group.name, 2, 5)
		set(group.zpx, group.kind, RegNone, ZeroPageX, group.name, 2, 6)
		set(group.abs, group.kind, RegNone, Absolute, group.name, 3, 6)
		set(group.absx, group.kind, RegNone, AbsoluteX, group.name, 3, 7)
	}

	// INC/DEC (memory)
	set(0xE6, KindIncrement, RegNone, ZeroPage, "INC", 2, 5)
	set(0xF6, KindIncrement, RegNone, ZeroPageX, "INC", 2, 6)
	set(0xEE, KindIncrement, RegNone, Absolute, "INC", 3, 6)
	set(0xFE, KindIncrement, RegNone, AbsoluteX, "INC", 3, 7)
	set(0xC6, KindDecrement, RegNone, ZeroPage, "DEC", 2, 5)
	set(0xD6, KindDecrement, RegNone, ZeroPageX, "DEC", 2, 6)
	set(0xCE, KindDecrement, RegNone, Absolute, "DEC", 3, 6)
	set(0xDE, KindDecrement, RegNone, AbsoluteX, "DEC", 3, 7)

	// INX/INY/DEX/DEY
	set(0xE8, KindIncrementRegister, RegX, Implied, "INX", 1, 2)
	set(0xC8, KindIncrementRegister, RegY, Implied, "INY", 1, 2)
	set(0xCA, KindDecrementRegister, RegX, Implied, "DEX", 1, 2)
	set(0x88, KindDecrementRegister, RegY, Implied, "DEY", 1, 2)

	// CMP/CPX/CPY
	for _, e := range []struct {
		op     byte
		mode   AddressingMode
		size   byte
		cycles byte
	}{
		{0xC9, Immediate, 2, 2}, {0xC5, ZeroPage, 2, 3}, {0xD5, ZeroPageX, 2, 4},
		{0xCD, Absolute, 3, 4}, {0xDD, AbsoluteX, 3, 4}, {0xD9, AbsoluteY, 3, 4},
		{0xC1, IndirectX, 2, 6}, {0xD1, IndirectY, 2, 5},
	} {
		set(e.op, KindCompareRegister, RegA, e.mode, "CMP", e.size, e.cycles)
	}
	set(0xE0, KindCompareRegister, RegX, Immediate, "CPX", 2, 2)
	set(0xE4, KindCompareRegister, RegX, ZeroPage, "CPX", 2, 3)
	set(0xEC, KindCompareRegister, RegX, Absolute, "CPX", 3, 4)
	set(0xC0, KindCompareRegister, RegY, Immediate, "CPY", 2, 2)
	set(0xC4, KindCompareRegister, RegY, ZeroPage, "CPY", 2, 3)
	set(0xCC, KindCompareRegister, RegY, Absolute, "CPY", 3, 4)

	// BIT
	set(0x24, KindBitTest, RegNone, ZeroPage, "BIT", 2, 3)
	set(0x2C, KindBitTest, RegNone, Absolute, "BIT", 3, 4)

	// Branches
	setBranch(0xF0, Equal, "BEQ")
	setBranch(0xD0, NotEqual, "BNE")
	setBranch(0xB0, CarrySet, "BCS")
	setBranch(0x90, CarryClear, "BCC")
	setBranch(0x30, Minus, "BMI")
	setBranch(0x10, Positive, "BPL")
	setBranch(0x70, OverflowSet, "BVS")
	setBranch(0x50, OverflowClear, "BVC")

	// Jumps / subroutines
	set(0x4C, KindJump, RegNone, Absolute, "JMP", 3, 3)
	set(0x6C, KindJump, RegNone, Indirect, "JMP", 3, 5)
	set(0x20, KindJumpToSubroutine, RegNone, Absolute, "JSR", 3, 6)
	set(0x60, KindReturnFromSubroutine, RegNone, Implied, "RTS", 1, 6)
	set(0x40, KindReturnFromInterrupt, RegNone, Implied, "RTI", 1, 6)

	// Flags
	setFlag(0x18, KindClearStatusFlag, FlagCarry, "CLC")
	setFlag(0xD8, KindClearStatusFlag, FlagDecimalMode, "CLD")
	setFlag(0x58, KindClearStatusFlag, FlagInterruptDisable, "CLI")
	setFlag(0xB8, KindClearStatusFlag, FlagOverflow, "CLV")
	setFlag(0x38, KindSetStatusFlag, FlagCarry, "SEC")
	setFlag(0xF8, KindSetStatusFlag, FlagDecimalMode, "SED")
	setFlag(0x78, KindSetStatusFlag, FlagInterruptDisable, "SEI")

	// NOP
	set(0xEA, KindNoOperation, RegNone, Implied, "NOP", 1, 2)
	for _, op := range []byte{0x1A, 0x3A, 0x5A, 0x7A, 0xDA, 0xFA} {
		setIllegal(op, KindNoOperation, RegNone, Implied, "NOP", 1, 2)
	}

	// DOP - undocumented 2-byte NOP
	for _, e := range []struct {
		op   byte
		mode AddressingMode
	}{
		{0x04, ZeroPage}, {0x44, ZeroPage}, {0x64, ZeroPage},
		{0x14, ZeroPageX}, {0x34, ZeroPageX}, {0x54, ZeroPageX}, {0x74, ZeroPageX}, {0xD4, ZeroPageX}, {0xF4, ZeroPageX},
		{0x80, Immediate}, {0x82, Immediate}, {0x89, Immediate}, {0xC2, Immediate}, {0xE2, Immediate},
	} {
		cycles := byte(3)
		if e.mode == ZeroPageX {
			cycles = 4
		} else if e.mode == Immediate {
			cycles = 2
		}
		setIllegal(e.op, KindDoubleNoOperation, RegNone, e.mode, "NOP", 2, cycles)
	}

	// TOP - undocumented 3-byte NOP
	setIllegal(0x0C, KindTripleNoOperation, RegNone, Absolute, "NOP", 3, 4)
	for _, op := range []byte{0x1C, 0x3C, 0x5C, 0x7C, 0xDC, 0xFC} {
		setIllegal(op, KindTripleNoOperation, RegNone, AbsoluteX, "NOP", 3, 4)
	}

	// LAX - undocumented, loads A and X together
	set2 := func(op byte, mode AddressingMode, size, cycles byte) {
		setIllegal(op, KindLoadAccumulatorAndX, RegNone, mode, "LAX", size, cycles)
	}
	set2(0xA7, ZeroPage, 2, 3)
	set2(0xB7, ZeroPageY, 2, 4)
	set2(0xAF, Absolute, 3, 4)
	set2(0xBF, AbsoluteY, 3, 4)
	set2(0xA3, IndirectX, 2, 6)
	set2(0xB3, IndirectY, 2, 5)

	// SAX - undocumented, stores A & X
	set3 := func(op byte, mode AddressingMode, size, cycles byte) {
		setIllegal(op, KindStoreAccumulatorAndX, RegNone, mode, "SAX", size, cycles)
	}
	set3(0x87, ZeroPage, 2, 3)
	set3(0x97, ZeroPageY, 2, 4)
	set3(0x8F, Absolute, 3, 4)
	set3(0x83, IndirectX, 2, 6)

	return t
}
