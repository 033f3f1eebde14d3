package nes

import (
	"testing"
)

func iNESHeader(prgUnits, chrUnits byte) []byte {
	return []byte{'N', 'E', 'S', 0x1A, prgUnits, chrUnits, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
}

func TestLoadROM(t *testing.T) {
	tests := []struct {
		name    string
		rom     []byte
		wantErr bool
	}{
		{
			name:    "empty",
			rom:     nil,
			wantErr: true,
		},
		{
			name:    "bad magic",
			rom:     append([]byte{'N', 'O', 'S', 0x1A}, make([]byte, 16380)...),
			wantErr: true,
		},
		{
			name:    "unsupported prg size",
			rom:     append(iNESHeader(3, 1), make([]byte, 3*prgBankSize)...),
			wantErr: true,
		},
		{
			name:    "truncated",
			rom:     append(iNESHeader(1, 1), make([]byte, 100)...),
			wantErr: true,
		},
		{
			name:    "16k prg",
			rom:     append(iNESHeader(1, 1), make([]byte, prgBankSize+chrBankSize)...),
			wantErr: false,
		},
		{
			name:    "32k prg",
			rom:     append(iNESHeader(2, 0), make([]byte, 2*prgBankSize)...),
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBus()
			err := b.LoadROM(tt.rom)
			if (err != nil) != tt.wantErr {
				t.Fatalf("LoadROM() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadROM_mirrors16KAcrossBothBanks(t *testing.T) {
	prg := make([]byte, prgBankSize)
	prg[0] = 0x42
	prg[prgBankSize-1] = 0x99

	rom := append(iNESHeader(1, 0), prg...)

	b := NewBus()
	if err := b.LoadROM(rom); err != nil {
		t.Fatalf("LoadROM() error = %v", err)
	}

	if got := b.Read(0x8000); got != 0x42 {
		t.Errorf("Read($8000) = $%02X, want $42", got)
	}
	if got := b.Read(0xC000); got != 0x42 {
		t.Errorf("Read($C000) = $%02X, want $42 (mirrored bank)", got)
	}
	if got := b.Read(0xFFFF); got != 0x99 {
		t.Errorf("Read($FFFF) = $%02X, want $99", got)
	}
}
