package state

import (
	"errors"
	"fmt"
	"testing"

	"github.com/tarikeshaq/y86-lib/internal/isa"
)

func assert(t *testing.T, cond bool, format string, args ...any) {
	if !cond {
		t.Fatalf(fmt.Sprintf("%v %s", cond, format), args...)
	}
}

func TestNewSkipsLeadingZeroBytes(t *testing.T) {
	s := New([]byte{0, 0, 0, 0x30})
	assert(t, s.GetPC() == 3, "expected PC to skip to first non-zero byte, got %d", s.GetPC())
}

func TestNewAllZeroImage(t *testing.T) {
	s := New([]byte{0, 0, 0})
	assert(t, s.GetPC() == 3, "all-zero image should leave PC at length, got %d", s.GetPC())
}

func TestRegisters(t *testing.T) {
	s := New(make([]byte, 16))
	s.SetRegister(isa.RAX, 42)
	assert(t, s.GetRegister(isa.RAX) == 42, "expected 42, got %d", s.GetRegister(isa.RAX))
	assert(t, s.GetRegister(isa.RCX) == 0, "unset register should read 0")
}

func TestReadWriteLE(t *testing.T) {
	s := New(make([]byte, 16))
	err := s.WriteLE(0, 0x0102030405060708)
	assert(t, err == nil, "write should succeed: %v", err)

	got, err := s.ReadLE(0)
	assert(t, err == nil, "read should succeed: %v", err)
	assert(t, got == 0x0102030405060708, "expected round-trip value, got 0x%x", got)

	b, err := s.ReadByte(0)
	assert(t, err == nil, "read byte should succeed: %v", err)
	assert(t, b == 0x08, "expected least-significant byte first, got 0x%x", b)
}

func TestOutOfBounds(t *testing.T) {
	s := New(make([]byte, 4))
	_, err := s.ReadLE(0)
	assert(t, errors.Is(err, isa.ErrOutOfBounds), "reading 8 bytes from a 4-byte image should be out of bounds")

	_, err = s.ReadByte(10)
	assert(t, errors.Is(err, isa.ErrOutOfBounds), "reading past image length should be out of bounds")
}

func TestConditionCode(t *testing.T) {
	s := New(make([]byte, 4))
	s.SetCC(CCZero)
	assert(t, s.GetCC() == CCZero, "expected CCZero set")
}
