package nes

// RegisterAccess records a single read or write that landed in the PPU or
// APU/IO register-stub windows: the address touched, the byte read or
// written, and which direction it was.
type RegisterAccess struct {
	Addr  uint16
	Value byte
	Write bool
}

const registerAccessLogSize = 8

// Bus is the flat 16-bit address space the CPU (and, in a full console, the
// PPU and APU) share. It is the single mutable surface through which the
// core interacts with the outside world; the CPU never owns memory of its
// own beyond its registers.
//
// ╔═════════════════╤════════════════════════════════╗
// ║ Address Range    │ Purpose                        ║
// ╠═════════════════╪════════════════════════════════╣
// ║ $0000 - $07FF    │ 2 KiB internal RAM              ║
// ║ $0800 - $1FFF    │ mirrors of RAM (addr & $07FF)    ║
// ║ $2000 - $2007    │ PPU registers (stub)             ║
// ║ $2008 - $3FFF    │ mirrors of PPU regs (addr&$2007) ║
// ║ $4000 - $4017    │ APU / I-O registers (stub)       ║
// ║ $4018 - $401F    │ unmapped                         ║
// ║ $4020 - $FFFF    │ cartridge space: PRG-ROM         ║
// ╚═════════════════╧════════════════════════════════╝
//
// The PPU and APU are not emulated here; their register windows are
// exposed as plain byte storage so a future PPU/APU has a stable memory
// map to attach to, without this core having to implement their behavior.
type Bus struct {
	ram     [2048]byte
	ppuRegs [8]byte
	apuIO   [24]byte // $4000-$4017

	prg []byte // cartridge PRG-ROM, 16384 or 32768 bytes once a ROM is loaded

	// accessLog is a ring buffer of the last registerAccessLogSize PPU/APU
	// register touches, kept purely so a caller debugging register-stub
	// traffic (there's no real PPU/APU behind it yet) can inspect recent
	// history instead of wiring up ad hoc print statements.
	accessLog   [registerAccessLogSize]RegisterAccess
	accessCount uint64
}

// NewBus returns a Bus with zeroed RAM and no cartridge loaded. Reads from
// cartridge space return 0 until LoadROM or LoadProgram is called.
func NewBus() *Bus {
	return &Bus{}
}

// Read returns the byte at addr, applying the mirroring and register-window
// rules of the memory map above.
func (b *Bus) Read(addr uint16) byte {
	switch {
	case addr < 0x2000:
		return b.ram[addr&0x07FF]

	case addr < 0x4000:
		idx := (addr - 0x2000) & 0x0007
		v := b.ppuRegs[idx]
		b.recordAccess(addr, v, false)
		return v

	case addr <= 0x4017:
		v := b.apuIO[addr-0x4000]
		b.recordAccess(addr, v, false)
		return v

	case addr < 0x4020:
		return 0

	case addr >= 0x8000:
		return b.readPRG(addr)

	default:
		return 0
	}
}

// Write stores value at addr, applying the same mirroring rules as Read.
// Writes into cartridge ROM space are silently ignored: this core supports
// no mapper, so PRG-ROM is read-only once loaded.
func (b *Bus) Write(addr uint16, value byte) {
	switch {
	case addr < 0x2000:
		b.ram[addr&0x07FF] = value

	case addr < 0x4000:
		idx := (addr - 0x2000) & 0x0007
		b.ppuRegs[idx] = value
		b.recordAccess(addr, value, true)

	case addr <= 0x4017:
		b.apuIO[addr-0x4000] = value
		b.recordAccess(addr, value, true)

	default:
		// $4018-$401F unmapped, $4020-$7FFF unmapped expansion space (no
		// mapper support), $8000-$FFFF is ROM: all silently ignored.
	}
}

// ReadAddress reads a little-endian 16-bit value starting at addr.
func (b *Bus) ReadAddress(addr uint16) uint16 {
	lo := b.Read(addr)
	hi := b.Read(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}

func (b *Bus) recordAccess(addr uint16, value byte, write bool) {
	b.accessLog[b.accessCount%registerAccessLogSize] = RegisterAccess{Addr: addr, Value: value, Write: write}
	b.accessCount++
}

// LastPPUAccess returns the most recent register-stub touches, oldest
// first, capping out at registerAccessLogSize entries. It covers both the
// PPU and APU/IO windows, since both are the same kind of unimplemented
// register stub.
func (b *Bus) LastPPUAccess() []RegisterAccess {
	n := b.accessCount
	if n > registerAccessLogSize {
		n = registerAccessLogSize
	}
	out := make([]RegisterAccess, n)
	start := b.accessCount - n
	for i := uint64(0); i < n; i++ {
		out[i] = b.accessLog[(start+i)%registerAccessLogSize]
	}
	return out
}

func (b *Bus) readPRG(addr uint16) byte {
	if len(b.prg) == 0 {
		return 0
	}
	if len(b.prg) == 0x4000 {
		// 16 KiB ROMs are mirrored into both $8000-$BFFF and $C000-$FFFF.
		return b.prg[addr&0x3FFF]
	}
	return b.prg[(addr-0x8000)%uint16(len(b.prg))]
}

// LoadProgram writes raw bytes directly into the backing store at addr,
// bypassing the ROM-is-read-only rule in Write. It exists for test
// harnesses (the easy6502 suite, the snake demo) that want to poke a
// program directly into RAM (addr < $2000) or into cartridge space (addr >=
// $8000) without constructing an iNES image. If addr lands in cartridge
// space and no ROM has been loaded yet, a 32 KiB PRG bank is allocated to
// back it.
func (b *Bus) LoadProgram(data []byte, addr uint16) {
	for i, v := range data {
		a := addr + uint16(i)
		switch {
		case a < 0x2000:
			b.ram[a&0x07FF] = v
		case a >= 0x8000:
			if len(b.prg) == 0 {
				b.prg = make([]byte, 0x8000)
			}
			b.prg[(a-0x8000)%uint16(len(b.prg))] = v
		}
	}
}
