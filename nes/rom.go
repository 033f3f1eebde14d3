package nes

import (
	"bytes"

	"github.com/pkg/errors"
)

const (
	inesHeaderSize = 16
	prgBankSize    = 16384 // 16 KiB
	chrBankSize    = 8192  // 8 KiB
)

var inesMagic = [4]byte{'N', 'E', 'S', 0x1A}

// LoadROM parses an iNES-format cartridge image and installs its PRG-ROM
// into cartridge space. Only the PRG payload matters to the CPU core: CHR
// data is read past (so a well-formed file parses cleanly) but discarded,
// since this core has no renderer to hand it to.
//
// A 16 KiB PRG-ROM is mirrored into both the $8000-$BFFF and $C000-$FFFF
// banks, per the memory map in bus.go.
func (b *Bus) LoadROM(data []byte) error {
	if len(data) < inesHeaderSize || !bytes.Equal(data[0:4], inesMagic[:]) {
		return errors.Wrap(ErrInvalidROM, "missing NES\\x1A magic")
	}

	prgUnits := int(data[4])
	prgSize := prgUnits * prgBankSize
	if prgSize != 16384 && prgSize != 32768 {
		return errors.Wrapf(ErrInvalidROM, "unsupported prg size: %d bytes", prgSize)
	}

	offset := inesHeaderSize
	if offset+prgSize > len(data) {
		return errors.Wrap(ErrInvalidROM, "truncated prg data")
	}

	prg := make([]byte, prgSize)
	copy(prg, data[offset:offset+prgSize])
	b.prg = prg

	return nil
}
