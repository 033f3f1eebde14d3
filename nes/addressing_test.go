package nes

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveAddress_zeroPageXWraps(t *testing.T) {
	bus := NewBus()
	cpu := NewCPU(bus)
	cpu.X = 0xFF

	inst := Instruction{Mode: ZeroPageX, Operand: Operand{addr8: 0x80}}
	r := cpu.resolveAddress(inst)

	require.Equal(t, uint16(0x7F), r.addr, "ZeroPageX $80,X with X=$FF")
}

func TestResolveAddress_indirectXWrapsPointerFetch(t *testing.T) {
	bus := NewBus()
	cpu := NewCPU(bus)
	cpu.X = 0x01

	// ptr = $FF + $01 = $00 (8-bit wrap); low byte at $00, high byte at $01
	// (also zero-page wrapped, not $0100).
	bus.Write(0x0000, 0x34)
	bus.Write(0x0001, 0x12)

	inst := Instruction{Mode: IndirectX, Operand: Operand{addr8: 0xFF}}
	r := cpu.resolveAddress(inst)

	require.Equal(t, uint16(0x1234), r.addr, "IndirectX $FF,X with X=$01")
}

func TestResolveAddress_indirectYAddsAfterFetch(t *testing.T) {
	bus := NewBus()
	cpu := NewCPU(bus)
	cpu.Y = 0x10

	bus.Write(0x0010, 0x00)
	bus.Write(0x0011, 0x02)

	inst := Instruction{Mode: IndirectY, Operand: Operand{addr8: 0x10}}
	r := cpu.resolveAddress(inst)

	require.Equal(t, uint16(0x0210), r.addr, "IndirectY ($10),Y with Y=$10")
}

func TestResolveAddress_jmpIndirectPageBoundaryBug(t *testing.T) {
	bus := NewBus()
	cpu := NewCPU(bus)

	// The pointer lives in RAM: $2000-$3FFF is the mirrored PPU register
	// window, where $xx00 and $(xx+1)00 would alias the same register.
	bus.Write(0x02FF, 0x80)
	bus.Write(0x0200, 0x50) // the byte the buggy fetch reads for the high byte
	bus.Write(0x0300, 0x60) // what a non-buggy fetch would have read instead

	inst := Instruction{Mode: Indirect, Operand: Operand{addr16: 0x02FF}}
	r := cpu.resolveAddress(inst)

	require.Equal(t, uint16(0x5080), r.addr, "Indirect $02FF, want the page-boundary bug honored")
}

func TestResolveAddress_accumulatorAndImmediate(t *testing.T) {
	bus := NewBus()
	cpu := NewCPU(bus)
	cpu.A = 0x77

	accum := cpu.resolveAddress(Instruction{Mode: Accumulator})
	require.True(t, accum.isAccum)
	require.Equal(t, byte(0x77), accum.load(cpu))

	imm := cpu.resolveAddress(Instruction{Mode: Immediate, Operand: Operand{immediate: 0x09}})
	require.True(t, imm.isImmediate)
	require.Equal(t, byte(0x09), imm.load(cpu))
}
