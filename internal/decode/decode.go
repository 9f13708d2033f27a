// Package decode turns the byte at the program counter into a decoded
// Instruction, reading whatever additional fixed-offset bytes its
// ICode calls for. This is the Go shape of the teacher's byte-at-PC
// switch in exec.go, generalized from a flat bytecode stream to Y86-64's
// icode/ifun/operand layout, and grounded on the original's
// executer/instructions.rs Instruction::new dispatch.
package decode

import (
	"fmt"

	"github.com/tarikeshaq/y86-lib/internal/isa"
	"github.com/tarikeshaq/y86-lib/internal/state"
)

// Instruction is the immutable decoded form of one instruction, per
// spec §3. RA/RB are isa.RNONE when the icode has no such operand;
// HasValC reports whether ValC carries a meaningful immediate or
// displacement.
type Instruction struct {
	ICode    isa.ICode
	IFun     byte
	RA       isa.Register
	RB       isa.Register
	ValC     uint64
	HasValC  bool
	Location uint64
	ValP     uint64
}

// Decode reads the instruction at s.GetPC(), per the fixed-offset
// layout the §3 invariant defines for each icode.
func Decode(s *state.State) (*Instruction, error) {
	pc := s.GetPC()
	opcodeByte, err := s.ReadByte(pc)
	if err != nil {
		return nil, err
	}

	icode := isa.ICodeFromByte(opcodeByte)
	ifun := opcodeByte & 0x0F

	instr := &Instruction{
		ICode:    icode,
		IFun:     ifun,
		RA:       isa.RNONE,
		RB:       isa.RNONE,
		Location: pc,
	}

	switch icode {
	case isa.HALT, isa.NOP, isa.RET:
		instr.ValP = pc + 1

	case isa.RRMOVXX, isa.OPQ:
		ra, rb, err := readRegisterPair(s, pc+1)
		if err != nil {
			return nil, err
		}
		instr.RA, instr.RB = ra, rb
		instr.ValP = pc + 2

	case isa.PUSHQ, isa.POPQ:
		ra, _, err := readRegisterPair(s, pc+1)
		if err != nil {
			return nil, err
		}
		instr.RA = ra
		instr.ValP = pc + 2

	case isa.JXX, isa.CALL:
		valC, err := s.ReadLE(pc + 1)
		if err != nil {
			return nil, err
		}
		instr.ValC, instr.HasValC = valC, true
		instr.ValP = pc + 9

	case isa.IRMOVQ:
		_, rb, err := readRegisterPair(s, pc+1)
		if err != nil {
			return nil, err
		}
		valC, err := s.ReadLE(pc + 2)
		if err != nil {
			return nil, err
		}
		instr.RB = rb
		instr.ValC, instr.HasValC = valC, true
		instr.ValP = pc + 10

	case isa.RMMOVQ, isa.MRMOVQ:
		ra, rb, err := readRegisterPair(s, pc+1)
		if err != nil {
			return nil, err
		}
		valC, err := s.ReadLE(pc + 2)
		if err != nil {
			return nil, err
		}
		instr.RA, instr.RB = ra, rb
		instr.ValC, instr.HasValC = valC, true
		instr.ValP = pc + 10

	default:
		return nil, fmt.Errorf("%w: byte 0x%02x at pc 0x%x", isa.ErrInvalidICode, opcodeByte, pc)
	}

	return instr, nil
}

// readRegisterPair splits the byte at address into rA (high nibble)
// and rB (low nibble).
func readRegisterPair(s *state.State, address uint64) (isa.Register, isa.Register, error) {
	b, err := s.ReadByte(address)
	if err != nil {
		return 0, 0, err
	}
	return isa.Register(b >> 4), isa.Register(b & 0x0F), nil
}
