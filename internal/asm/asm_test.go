package asm

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/tarikeshaq/y86-lib/internal/isa"
)

func assert(t *testing.T, cond bool, format string, args ...any) {
	if !cond {
		t.Fatalf(fmt.Sprintf("%v %s", cond, format), args...)
	}
}

func assembleLines(t *testing.T, source string) []byte {
	lines := strings.Split(strings.TrimSpace(source), "\n")
	image, err := Assemble(lines)
	assert(t, err == nil, "assemble failed: %v", err)
	return image
}

func TestAssembleHaltOnly(t *testing.T) {
	image := assembleLines(t, `halt`)
	assert(t, len(image) == 1, "expected 1 byte, got %d", len(image))
	assert(t, image[0] == byte(isa.HALT)<<4, "expected halt opcode, got 0x%x", image[0])
}

func TestAssembleIRMOVQEncoding(t *testing.T) {
	image := assembleLines(t, `irmovq 0x2a, %rbx`)
	assert(t, len(image) == 10, "expected 10 bytes, got %d", len(image))
	assert(t, image[0] == byte(isa.IRMOVQ)<<4, "expected irmovq opcode")
	assert(t, image[1] == 0xF3, "expected reg byte 0xF3 (RNONE<<4|rbx), got 0x%x", image[1])
	assert(t, image[2] == 0x2a, "expected immediate low byte 0x2a, got 0x%x", image[2])
}

func TestAssembleRmmovqOperandOrder(t *testing.T) {
	// rmmovq rA, D(rB) — reg byte is (rA<<4|rB): source register first.
	image := assembleLines(t, `rmmovq %rax, 0x8(%rbx)`)
	assert(t, image[1] == 0x03, "expected reg byte 0x03 (rax<<4|rbx), got 0x%x", image[1])
	assert(t, image[2] == 0x08, "expected displacement byte 0x08, got 0x%x", image[2])
}

func TestAssembleMrmovqOperandOrder(t *testing.T) {
	// mrmovq D(rB), rA — same reg byte layout, operands read in reverse
	// text order: destination register comes after the comma.
	image := assembleLines(t, `mrmovq 0x8(%rbx), %rax`)
	assert(t, image[1] == 0x03, "expected reg byte 0x03 (rax<<4|rbx), got 0x%x", image[1])
	assert(t, image[2] == 0x08, "expected displacement byte 0x08, got 0x%x", image[2])
}

func TestAssemblePushqPopq(t *testing.T) {
	image := assembleLines(t, `pushq %r10`)
	assert(t, image[1] == 0xAF, "expected reg byte 0xAF (r10<<4|RNONE), got 0x%x", image[1])
}

func TestLabelSubstitutionForwardReference(t *testing.T) {
	image := assembleLines(t, `
		jmp skip
		irmovq 0x1, %rax
	skip:
		halt
	`)
	// jmp is 9 bytes at addr 0; irmovq is 10 bytes at addr 9; skip at 19.
	assert(t, len(image) == 20, "expected 20 total bytes, got %d", len(image))
	assert(t, image[19] == byte(isa.HALT)<<4, "expected halt at label address 19")
}

func TestLabelPrefixCollision(t *testing.T) {
	// "loop2" must substitute before "loop" so the longer label isn't
	// corrupted by a partial match on its prefix.
	image := assembleLines(t, `
	loop:
		irmovq 0x1, %rax
	loop2:
		jmp loop2
	`)
	assert(t, len(image) == 19, "expected 19 bytes, got %d", len(image))
	assert(t, image[11] == 0x0a, "expected jmp target loop2 = 0xa, got 0x%x", image[11])
}

func TestPosDirective(t *testing.T) {
	image := assembleLines(t, `
		.pos 0x10
		halt
	`)
	assert(t, len(image) == 17, "expected image padded out to 17 bytes, got %d", len(image))
	for i := 0; i < 16; i++ {
		assert(t, image[i] == 0, "expected zero padding before .pos region, byte %d was 0x%x", i, image[i])
	}
	assert(t, image[16] == byte(isa.HALT)<<4, "expected halt at 0x10")
}

func TestQuadDirective(t *testing.T) {
	image := assembleLines(t, `.quad 0x0102030405060708`)
	assert(t, len(image) == 8, "expected 8 bytes, got %d", len(image))
	assert(t, image[0] == 0x08, "expected little-endian low byte first, got 0x%x", image[0])
	assert(t, image[7] == 0x01, "expected little-endian high byte last, got 0x%x", image[7])
}

func TestUnknownMnemonicFails(t *testing.T) {
	_, err := Assemble([]string{"bogus %rax, %rbx"})
	assert(t, errors.Is(err, isa.ErrInvalidInstruction), "expected ErrInvalidInstruction, got %v", err)
}

func TestUnknownRegisterFails(t *testing.T) {
	_, err := Assemble([]string{"irmovq 0x1, %notareg"})
	assert(t, errors.Is(err, isa.ErrInvalidRegister), "expected ErrInvalidRegister, got %v", err)
}

func TestScenarioE1MinimalEncode(t *testing.T) {
	image := assembleLines(t, `halt`)
	assert(t, len(image) == 1 && image[0] == 0x00, "expected single 0x00 byte, got %v", image)
}

func TestScenarioE2IrmovqAndPosGap(t *testing.T) {
	image := assembleLines(t, `
		.pos 0
		irmovq $0x10, %rax
		irmovq stack, %rsp
		halt
		.pos 0x100
	stack:
	`)
	expectedHead := []byte{
		0x30, 0xF0, 0x10, 0, 0, 0, 0, 0, 0, 0,
		0x30, 0xF4, 0x00, 0x01, 0, 0, 0, 0, 0, 0,
	}
	assert(t, len(image) == 0x100, "expected image length 0x100, got 0x%x", len(image))
	for i, b := range expectedHead {
		assert(t, image[i] == b, "byte %d: expected 0x%02x, got 0x%02x", i, b, image[i])
	}
	for i := len(expectedHead); i < 0x100; i++ {
		assert(t, image[i] == 0, "expected zero padding at byte %d, got 0x%02x", i, image[i])
	}
}

func TestCommentAndDollarStripping(t *testing.T) {
	image := assembleLines(t, `irmovq $0x5, %rax   # load the constant 5`)
	assert(t, len(image) == 10, "expected 10 bytes, got %d", len(image))
	assert(t, image[2] == 0x5, "expected immediate 0x5, got 0x%x", image[2])
}
