package nes

import "github.com/pkg/errors"

// The core recognizes exactly three error kinds: a malformed ROM, an
// opcode the decoder does not recognize, and BRK surfacing as a
// distinguished terminal condition rather than a panic. Internal
// conditions such as stack pointer wraparound are not errors - real
// hardware wraps silently, so modeling that as a Go error would make the
// emulation diverge from what it's emulating.
var (
	ErrInvalidROM    = errors.New("nes: invalid rom")
	ErrUnknownOpcode = errors.New("nes: unknown opcode")
	ErrBreak         = errors.New("nes: break")
)

// IsBreak reports whether err is (or wraps) ErrBreak, the signal a BRK
// instruction raises. Harnesses that treat BRK as a normal end-of-program
// marker should check this before treating an error as fatal.
func IsBreak(err error) bool {
	return errors.Is(err, ErrBreak)
}
