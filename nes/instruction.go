package nes

import "fmt"

// Register selects which general purpose register a generic load, store,
// transfer, increment/decrement, or compare operates on.
type Register byte

const (
	RegNone Register = iota
	RegA
	RegX
	RegY
)

func (r Register) String() string {
	switch r {
	case RegA:
		return "A"
	case RegX:
		return "X"
	case RegY:
		return "Y"
	default:
		return ""
	}
}

// AddressingMode selects how an opcode's operand byte(s) are interpreted to
// yield an effective address or an immediate value.
//
// https://www.nesdev.org/wiki/CPU_addressing_modes
type AddressingMode byte

const (
	Implied AddressingMode = iota
	Accumulator
	Immediate
	ZeroPage
	ZeroPageX
	ZeroPageY
	Absolute
	AbsoluteX
	AbsoluteY
	Indirect
	IndirectX
	IndirectY
)

// Conditional selects the flag test a Branch instruction guards on.
type Conditional byte

const (
	Equal Conditional = iota
	NotEqual
	CarrySet
	CarryClear
	Minus
	Positive
	OverflowSet
	OverflowClear
)

// StatusFlag names a single bit of the processor status register. The bit
// positions match the canonical 6502 layout: NV1B DIZC.
type StatusFlag byte

const (
	FlagCarry            StatusFlag = 1 << 0
	FlagZero             StatusFlag = 1 << 1
	FlagInterruptDisable StatusFlag = 1 << 2
	FlagDecimalMode      StatusFlag = 1 << 3
	FlagBreak            StatusFlag = 1 << 4
	FlagUnused           StatusFlag = 1 << 5
	FlagOverflow         StatusFlag = 1 << 6
	FlagNegative         StatusFlag = 1 << 7
)

// Kind tags the instruction family. Each family is parameterized by some
// combination of Reg, Mode, Cond, and Flag rather than being its own Go
// type; dispatch is a switch on Kind, not a type switch, so adding an
// addressing mode to an existing family never means adding a new type.
type Kind int

const (
	KindBreak Kind = iota
	KindLoadRegister
	KindStoreRegister
	KindTransferRegisterTo
	KindTransferStackPointerToX
	KindTransferXToStackPointer
	KindPushAccumulator
	KindPullAccumulator
	KindPushStatusRegister
	KindPullStatusRegister
	KindAddWithCarry
	KindSubtractWithCarry
	KindLogicalAND
	KindExclusiveOR
	KindBitwiseOR
	KindShiftLeft
	KindShiftRight
	KindRotateLeft
	KindRotateRight
	KindIncrement
	KindIncrementRegister
	KindDecrement
	KindDecrementRegister
	KindCompareRegister
	KindBitTest
	KindBranch
	KindJump
	KindJumpToSubroutine
	KindReturnFromSubroutine
	KindReturnFromInterrupt
	KindClearStatusFlag
	KindSetStatusFlag
	KindNoOperation
	KindDoubleNoOperation
	KindTripleNoOperation
	KindLoadAccumulatorAndX
	KindStoreAccumulatorAndX
)

// operandKind tags which of the four operand shapes an Instruction carries.
type operandKind byte

const (
	operandNone operandKind = iota
	operandImmediate
	operandAddr8
	operandAddr16
	operandRelative
)

// Operand is the decoded operand of an Instruction: absent, an 8-bit
// immediate, an 8-bit (zero page) address, a 16-bit address, or a signed
// 8-bit branch offset.
type Operand struct {
	kind      operandKind
	immediate byte
	addr8     byte
	addr16    uint16
	relative  int8
}

func (o Operand) String() string {
	switch o.kind {
	case operandImmediate:
		return fmt.Sprintf("#$%02X", o.immediate)
	case operandAddr8:
		return fmt.Sprintf("$%02X", o.addr8)
	case operandAddr16:
		return fmt.Sprintf("$%04X", o.addr16)
	case operandRelative:
		return fmt.Sprintf("%+d", o.relative)
	default:
		return ""
	}
}

// Instruction is a fully decoded 6502 instruction: the opcode's family
// (Kind), the register/mode/condition/flag that parameterize it, its
// operand, and the size/cycle metadata the decoder computed once so the
// executor never has to recompute it.
type Instruction struct {
	Opcode   byte
	Mnemonic string
	Illegal  bool

	Kind Kind
	Reg  Register
	Mode AddressingMode
	Cond Conditional
	Flag StatusFlag

	Operand Operand

	Size   byte
	Cycles byte
}
