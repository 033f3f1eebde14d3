package nes

import "testing"

func TestBus_ramMirroring(t *testing.T) {
	b := NewBus()
	b.Write(0x0010, 0x42)

	for _, mirror := range []uint16{0x0010, 0x0810, 0x1010, 0x1810} {
		if got := b.Read(mirror); got != 0x42 {
			t.Errorf("Read($%04X) = $%02X, want $42", mirror, got)
		}
	}
}

func TestBus_ppuRegisterMirroring(t *testing.T) {
	b := NewBus()
	b.Write(0x2002, 0x80)

	for _, mirror := range []uint16{0x2002, 0x200A, 0x2FFA} {
		if got := b.Read(mirror); got != 0x80 {
			t.Errorf("Read($%04X) = $%02X, want $80", mirror, got)
		}
	}
}

func TestBus_unmappedReadsZero(t *testing.T) {
	b := NewBus()
	for _, addr := range []uint16{0x4018, 0x401F, 0x4020, 0x7FFF} {
		if got := b.Read(addr); got != 0 {
			t.Errorf("Read($%04X) = $%02X, want $00", addr, got)
		}
	}
}

func TestBus_ReadAddress_littleEndian(t *testing.T) {
	b := NewBus()
	b.Write(0x0000, 0x34)
	b.Write(0x0001, 0x12)

	if got := b.ReadAddress(0x0000); got != 0x1234 {
		t.Errorf("ReadAddress($0000) = $%04X, want $1234", got)
	}
}

func TestBus_LastPPUAccess_ringBufferKeepsMostRecentEight(t *testing.T) {
	b := NewBus()
	for i := 0; i < 10; i++ {
		b.Write(0x2000, byte(i))
	}
	b.Read(0x4000)

	got := b.LastPPUAccess()
	if len(got) != registerAccessLogSize {
		t.Fatalf("len(LastPPUAccess()) = %d, want %d", len(got), registerAccessLogSize)
	}

	// 11 accesses in all: the first three writes (values 0, 1 and 2) fell
	// off the front of the ring.
	if got[0].Value != 3 || got[0].Addr != 0x2000 || !got[0].Write {
		t.Errorf("LastPPUAccess()[0] = %+v, want {Addr:$2000 Value:3 Write:true}", got[0])
	}
	last := got[len(got)-1]
	if last.Addr != 0x4000 || last.Write {
		t.Errorf("LastPPUAccess()[last] = %+v, want a read of $4000", last)
	}
}

func TestBus_LastPPUAccess_fewerThanCapacity(t *testing.T) {
	b := NewBus()
	b.Write(0x2001, 0x55)

	got := b.LastPPUAccess()
	if len(got) != 1 {
		t.Fatalf("len(LastPPUAccess()) = %d, want 1", len(got))
	}
	if got[0].Addr != 0x2001 || got[0].Value != 0x55 {
		t.Errorf("LastPPUAccess()[0] = %+v, want {Addr:$2001 Value:$55}", got[0])
	}
}

func TestBus_LoadProgram(t *testing.T) {
	b := NewBus()
	b.LoadProgram([]byte{0xA9, 0x10}, 0x0200)

	if got := b.Read(0x0200); got != 0xA9 {
		t.Errorf("Read($0200) = $%02X, want $A9", got)
	}
	if got := b.Read(0x0201); got != 0x10 {
		t.Errorf("Read($0201) = $%02X, want $10", got)
	}
}
