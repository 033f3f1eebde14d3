package nes

import "io"

const (
	nmiVector   = uint16(0xFFFA)
	resetVector = uint16(0xFFFC)
	irqVector   = uint16(0xFFFE)

	stackBase = uint16(0x0100)
)

type pendingInterrupt byte

const (
	interruptNone pendingInterrupt = iota
	interruptIRQ
	interruptNMI
)

// CPU is the MOS 6502 register file and execution state. It holds no
// memory of its own; every read and write goes through the Bus it is bound
// to.
type CPU struct {
	A, X, Y byte
	SP      byte
	PC      uint16
	Status  StatusFlag

	Cycles uint64

	bus *Bus

	pending pendingInterrupt

	// Trace, if non-nil, receives one disassembled line per instruction in
	// the nestest trace format.
	Trace io.Writer
}

// NewCPU returns a CPU bound to bus. Call Init or SetPC before Step.
func NewCPU(bus *Bus) *CPU {
	return &CPU{
		bus:    bus,
		SP:     0xFD,
		Status: FlagInterruptDisable,
	}
}

// Init reads the reset vector at $FFFC/$FFFD and sets PC from it, matching
// cold-boot behavior. A, X, Y are left at 0; SP at $FD; Status has only
// InterruptDisable set. Break and Unused are never resident bits of Status -
// they exist only in a pushed byte (see pullStatus) or a rendered one (see
// Disassemble's P: column).
func (c *CPU) Init() {
	c.A, c.X, c.Y = 0, 0, 0
	c.SP = 0xFD
	c.Status = FlagInterruptDisable
	c.PC = c.bus.ReadAddress(resetVector)
}

// SetPC sets the program counter directly, bypassing the reset vector.
// Used by test harnesses such as nestest's automated mode, which enters at
// $C000 regardless of what the ROM's reset vector contains.
func (c *CPU) SetPC(pc uint16) {
	c.PC = pc
}

// GetFlag reports whether every bit in f is set in Status.
func (c *CPU) GetFlag(f StatusFlag) bool {
	return c.Status&f == f
}

func (c *CPU) setFlag(f StatusFlag, on bool) {
	if on {
		c.Status |= f
	} else {
		c.Status &^= f
	}
}

func (c *CPU) updateZeroNegative(v byte) {
	c.setFlag(FlagZero, v == 0)
	c.setFlag(FlagNegative, v&0x80 != 0)
}

// RequestIRQ sets a pending maskable interrupt. It is observed between
// instructions, never mid-instruction. While InterruptDisable is set a
// pending IRQ is not serviced; it stays pending until a later Step finds
// the flag clear.
func (c *CPU) RequestIRQ() {
	if c.pending == interruptNone {
		c.pending = interruptIRQ
	}
}

// RequestNMI sets a pending non-maskable interrupt. NMI cannot be masked
// by InterruptDisable and takes priority over a simultaneously pending IRQ.
func (c *CPU) RequestNMI() {
	c.pending = interruptNMI
}

func (c *CPU) serviceInterrupt() {
	switch c.pending {
	case interruptIRQ:
		if c.GetFlag(FlagInterruptDisable) {
			return
		}
		c.pushAddress(c.PC)
		c.push(byte(c.Status&^FlagBreak) | byte(FlagUnused))
		c.setFlag(FlagInterruptDisable, true)
		c.PC = c.bus.ReadAddress(irqVector)
		c.Cycles += 7
	case interruptNMI:
		c.pushAddress(c.PC)
		c.push(byte(c.Status&^FlagBreak) | byte(FlagUnused))
		c.setFlag(FlagInterruptDisable, true)
		c.PC = c.bus.ReadAddress(nmiVector)
		c.Cycles += 7
	}
	c.pending = interruptNone
}

// Step decodes and executes exactly one instruction, first servicing any
// pending interrupt. It returns ErrBreak if the instruction was BRK, and
// ErrUnknownOpcode (wrapped) if the byte at PC does not decode.
func (c *CPU) Step() error {
	c.serviceInterrupt()

	pc := c.PC
	raw := [3]byte{c.bus.Read(pc), c.bus.Read(pc + 1), c.bus.Read(pc + 2)}

	inst, err := Decode(raw[:])
	if err != nil {
		return err
	}

	if c.Trace != nil {
		io.WriteString(c.Trace, Disassemble(inst, pc, c, c.bus)+"\n")
	}

	c.PC += uint16(inst.Size)
	c.Cycles += uint64(inst.Cycles)

	c.execute(inst, pc)

	if inst.Kind == KindBreak {
		return ErrBreak
	}
	return nil
}

// push writes v to the stack page ($0100+SP) and decrements SP.
func (c *CPU) push(v byte) {
	c.bus.Write(stackBase+uint16(c.SP), v)
	c.SP--
}

// pull increments SP and reads the stack page. SP wraps modulo 256 within
// page $01, the same as real hardware; a guard against the wrap would be
// wrong, not defensive.
func (c *CPU) pull() byte {
	c.SP++
	return c.bus.Read(stackBase + uint16(c.SP))
}

func (c *CPU) pushAddress(addr uint16) {
	c.push(byte(addr >> 8))
	c.push(byte(addr))
}

func (c *CPU) pullAddress() uint16 {
	lo := uint16(c.pull())
	hi := uint16(c.pull())
	return hi<<8 | lo
}
