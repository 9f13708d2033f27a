// Package state holds the mutable Y86-64 machine: registers, flat byte
// memory, condition codes and the program counter. It is the runtime
// counterpart to the static tables in internal/isa.
package state

import (
	"encoding/binary"
	"fmt"

	"github.com/tarikeshaq/y86-lib/internal/isa"
)

// Condition code bits (§3: "a 3-bit field with ZERO (bit 0) and SIGN
// (bit 1)"). Overflow is specified by Y86-64 at large but this core
// never sets it — see the OPQ executor and SPEC_FULL.md's Open
// Question #2 for why that gap is intentionally preserved.
const (
	CCZero uint8 = 0x1
	CCSign uint8 = 0x2
)

const numRegisters = 16

// State is the machine a debug session operates on. The byte image is
// loaded once at construction and mutated in place for the life of the
// session, mirroring the teacher's VM struct and the original's
// executer::State.
type State struct {
	registers     [numRegisters]uint64
	memory        []byte
	conditionCode uint8
	pc            uint64
}

// New loads image into a fresh machine: 16 zeroed registers, zeroed
// condition code, and pc advanced past any leading zero-byte padding
// (the implicit entry-point skip described in spec §4.2).
func New(image []byte) *State {
	s := &State{
		memory: image,
	}
	for s.pc < uint64(len(s.memory)) && s.memory[s.pc] == 0 {
		s.pc++
	}
	return s
}

// ProgramSize is the length of the loaded image; memory never grows
// past it (§9 Open Question #3).
func (s *State) ProgramSize() uint64 {
	return uint64(len(s.memory))
}

func (s *State) GetRegister(id isa.Register) uint64 {
	return s.registers[id]
}

func (s *State) SetRegister(id isa.Register, value uint64) {
	s.registers[id] = value
}

func (s *State) GetCC() uint8 {
	return s.conditionCode
}

func (s *State) SetCC(cc uint8) {
	s.conditionCode = cc
}

func (s *State) GetPC() uint64 {
	return s.pc
}

func (s *State) SetPC(pc uint64) {
	s.pc = pc
}

// ReadByte returns the single byte at address. An out-of-range address
// is an error per §7 OutOfBounds.
func (s *State) ReadByte(address uint64) (byte, error) {
	if address >= uint64(len(s.memory)) {
		return 0, fmt.Errorf("%w: read byte at 0x%x", isa.ErrOutOfBounds, address)
	}
	return s.memory[address], nil
}

// ReadLE reads 8 consecutive bytes starting at address and reassembles
// them little-endian (byte 0 is least-significant), per §3's
// little-endian invariant.
func (s *State) ReadLE(address uint64) (uint64, error) {
	if address+8 > uint64(len(s.memory)) {
		return 0, fmt.Errorf("%w: read 8 bytes at 0x%x", isa.ErrOutOfBounds, address)
	}
	return binary.LittleEndian.Uint64(s.memory[address : address+8]), nil
}

// WriteLE writes value as 8 little-endian bytes starting at address.
func (s *State) WriteLE(address uint64, value uint64) error {
	if address+8 > uint64(len(s.memory)) {
		return fmt.Errorf("%w: write 8 bytes at 0x%x", isa.ErrOutOfBounds, address)
	}
	binary.LittleEndian.PutUint64(s.memory[address:address+8], value)
	return nil
}
