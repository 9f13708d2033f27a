package isa

import "errors"

// Sentinel errors for the seven kinds in spec §7. Matched with
// errors.Is, the same way the teacher VM compares vm.errcode against
// package-level sentinels such as errSegmentationFault.
var (
	ErrInvalidInstruction = errors.New("invalid instruction")
	ErrInvalidRegister    = errors.New("invalid register")
	ErrInvalidNumber      = errors.New("invalid number")
	ErrInvalidParameter   = errors.New("invalid parameter")
	ErrInvalidICode       = errors.New("invalid icode")
	ErrOutOfBounds        = errors.New("out of bounds")
	ErrIO                 = errors.New("i/o error")
)
