// Package exec carries out the state mutation an already-decoded
// Instruction calls for: register/memory writes, condition-code
// updates, and PC advancement. Grounded on the original's
// executer/instructions.rs execute_* methods, kept as one switch over
// ICode the way the teacher's exec.go does for its bytecode dispatch.
package exec

import (
	"fmt"

	"github.com/tarikeshaq/y86-lib/internal/decode"
	"github.com/tarikeshaq/y86-lib/internal/isa"
	"github.com/tarikeshaq/y86-lib/internal/state"
)

// Execute mutates s according to instr and advances the program
// counter. Callers are expected to have already special-cased HALT as
// a stop condition (§4.4: "HALT: no state change"); calling Execute on
// a HALT instruction is a harmless no-op here too, for symmetry.
func Execute(instr *decode.Instruction, s *state.State) error {
	switch instr.ICode {
	case isa.HALT:
		return nil

	case isa.NOP:
		s.SetPC(instr.ValP)
		return nil

	case isa.RRMOVXX:
		if Cond(instr.IFun, s.GetCC()) {
			s.SetRegister(instr.RB, s.GetRegister(instr.RA))
		}
		s.SetPC(instr.ValP)
		return nil

	case isa.IRMOVQ:
		s.SetRegister(instr.RB, instr.ValC)
		s.SetPC(instr.ValP)
		return nil

	case isa.RMMOVQ:
		address := instr.ValC + s.GetRegister(instr.RB)
		if err := s.WriteLE(address, s.GetRegister(instr.RA)); err != nil {
			return err
		}
		s.SetPC(instr.ValP)
		return nil

	case isa.MRMOVQ:
		address := instr.ValC + s.GetRegister(instr.RB)
		value, err := s.ReadLE(address)
		if err != nil {
			return err
		}
		s.SetRegister(instr.RA, value)
		s.SetPC(instr.ValP)
		return nil

	case isa.OPQ:
		return executeOPQ(instr, s)

	case isa.JXX:
		if Cond(instr.IFun, s.GetCC()) {
			s.SetPC(instr.ValC)
		} else {
			s.SetPC(instr.ValP)
		}
		return nil

	case isa.CALL:
		address := s.GetRegister(isa.RSP) - 8
		if err := s.WriteLE(address, instr.ValP); err != nil {
			return err
		}
		s.SetRegister(isa.RSP, address)
		s.SetPC(instr.ValC)
		return nil

	case isa.RET:
		address := s.GetRegister(isa.RSP)
		value, err := s.ReadLE(address)
		if err != nil {
			return err
		}
		s.SetRegister(isa.RSP, address+8)
		s.SetPC(value)
		return nil

	case isa.PUSHQ:
		address := s.GetRegister(isa.RSP) - 8
		if err := s.WriteLE(address, s.GetRegister(instr.RA)); err != nil {
			return err
		}
		s.SetRegister(isa.RSP, address)
		s.SetPC(instr.ValP)
		return nil

	case isa.POPQ:
		address := s.GetRegister(isa.RSP)
		value, err := s.ReadLE(address)
		if err != nil {
			return err
		}
		s.SetRegister(isa.RSP, address+8)
		s.SetRegister(instr.RA, value)
		s.SetPC(instr.ValP)
		return nil

	default:
		return fmt.Errorf("%w: icode %s", isa.ErrInvalidICode, instr.ICode)
	}
}

// executeOPQ performs the signed 64-bit arithmetic op selected by
// instr.IFun, updates ZERO/SIGN (never both — see §4.4), and advances
// PC.
func executeOPQ(instr *decode.Instruction, s *state.State) error {
	raVal := int64(s.GetRegister(instr.RA))
	rbVal := int64(s.GetRegister(instr.RB))

	var result int64
	switch instr.IFun {
	case 0:
		result = rbVal + raVal
	case 1:
		result = rbVal - raVal
	case 2:
		result = rbVal & raVal
	case 3:
		result = rbVal ^ raVal
	case 4:
		result = rbVal * raVal
	case 5:
		result = rbVal / raVal
	case 6:
		result = rbVal % raVal
	default:
		return fmt.Errorf("%w: opq ifun %d", isa.ErrInvalidICode, instr.IFun)
	}

	switch {
	case result == 0:
		s.SetCC(state.CCZero)
	case result < 0:
		s.SetCC(state.CCSign)
	default:
		s.SetCC(0)
	}

	s.SetRegister(instr.RB, uint64(result))
	s.SetPC(instr.ValP)
	return nil
}

// Cond evaluates the branch/move condition named by ifun against the
// current condition code, per the §4.4 predicate table.
func Cond(ifun byte, cc uint8) bool {
	switch ifun {
	case 0: // unconditional
		return true
	case 1: // LE
		return cc&state.CCZero != 0 || cc&state.CCSign != 0
	case 2: // L
		return cc&state.CCSign != 0
	case 3: // E
		return cc&state.CCZero != 0
	case 4: // NE
		return cc&state.CCZero == 0
	case 5: // GE
		return cc&state.CCSign == 0
	case 6: // G
		return cc&state.CCSign == 0 && cc&state.CCZero == 0
	default:
		return false
	}
}
