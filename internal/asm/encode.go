package asm

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/tarikeshaq/y86-lib/internal/isa"
)

// substituteLabels replaces every occurrence of a known label with its
// hex-formatted absolute address, longest label first so a label that
// is a prefix of another (or of a register/mnemonic token) can't steal
// a partial match. A label is only considered present when preceded by
// a space in the line, guarding against matching inside an opcode or
// register name (spec.md §4.1 pass 2 step 1).
func substituteLabels(line string, labels map[string]uint64) string {
	names := make([]string, 0, len(labels))
	for name := range labels {
		names = append(names, name)
	}
	// Longest-first so e.g. "loop2" substitutes before "loop".
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && len(names[j-1]) < len(names[j]); j-- {
			names[j-1], names[j] = names[j], names[j-1]
		}
	}

	for _, name := range names {
		if strings.Contains(line, " "+name) {
			line = strings.ReplaceAll(line, " "+name, fmt.Sprintf(" 0x%x", labels[name]))
		}
	}
	return line
}

// encodeLine encodes one (already label-substituted, label-prefix-
// stripped) instruction or .quad body into its byte form, per the
// per-mnemonic encoding table in spec.md §4.1.
func encodeLine(body string) ([]byte, error) {
	if strings.Contains(body, ".quad") {
		return encodeQuad(body)
	}

	fields := strings.SplitN(body, " ", 2)
	mnemonic := fields[0]
	operands := ""
	if len(fields) > 1 {
		operands = strings.TrimSpace(fields[1])
	}

	opcode, icode, err := isa.OpcodeForMnemonic(mnemonic)
	if err != nil {
		return nil, fmt.Errorf("line %q: %w", body, err)
	}

	switch icode {
	case isa.HALT, isa.NOP, isa.RET:
		return []byte{opcode}, nil

	case isa.RRMOVXX, isa.OPQ:
		ra, rb, err := parseTwoRegisters(operands)
		if err != nil {
			return nil, fmt.Errorf("line %q: %w", body, err)
		}
		return []byte{opcode, formByte(byte(ra), byte(rb))}, nil

	case isa.PUSHQ, isa.POPQ:
		ra, err := isa.RegisterFromName(strings.TrimSpace(operands))
		if err != nil {
			return nil, fmt.Errorf("line %q: %w", body, err)
		}
		return []byte{opcode, formByte(byte(ra), byte(isa.RNONE))}, nil

	case isa.JXX, isa.CALL:
		if operands == "" {
			return nil, fmt.Errorf("line %q: %w", body, isa.ErrInvalidParameter)
		}
		dest, err := parseNumber(operands)
		if err != nil {
			return nil, fmt.Errorf("line %q: %w", body, err)
		}
		out := make([]byte, 0, 9)
		out = append(out, opcode)
		return appendLE(out, dest), nil

	case isa.IRMOVQ:
		valStr, regStr, err := splitTwoOperands(operands)
		if err != nil {
			return nil, fmt.Errorf("line %q: %w", body, err)
		}
		val, err := parseNumber(valStr)
		if err != nil {
			return nil, fmt.Errorf("line %q: %w", body, err)
		}
		rb, err := isa.RegisterFromName(regStr)
		if err != nil {
			return nil, fmt.Errorf("line %q: %w", body, err)
		}
		out := make([]byte, 0, 10)
		out = append(out, opcode, formByte(byte(isa.RNONE), byte(rb)))
		return appendLE(out, val), nil

	case isa.RMMOVQ:
		regStr, memStr, err := splitTwoOperands(operands)
		if err != nil {
			return nil, fmt.Errorf("line %q: %w", body, err)
		}
		ra, err := isa.RegisterFromName(regStr)
		if err != nil {
			return nil, fmt.Errorf("line %q: %w", body, err)
		}
		disp, rb, err := parseMemOperand(memStr)
		if err != nil {
			return nil, fmt.Errorf("line %q: %w", body, err)
		}
		out := make([]byte, 0, 10)
		out = append(out, opcode, formByte(byte(ra), byte(rb)))
		return appendLE(out, disp), nil

	case isa.MRMOVQ:
		memStr, regStr, err := splitTwoOperands(operands)
		if err != nil {
			return nil, fmt.Errorf("line %q: %w", body, err)
		}
		disp, rb, err := parseMemOperand(memStr)
		if err != nil {
			return nil, fmt.Errorf("line %q: %w", body, err)
		}
		ra, err := isa.RegisterFromName(regStr)
		if err != nil {
			return nil, fmt.Errorf("line %q: %w", body, err)
		}
		out := make([]byte, 0, 10)
		out = append(out, opcode, formByte(byte(ra), byte(rb)))
		return appendLE(out, disp), nil

	default:
		return nil, fmt.Errorf("line %q: %w: %s", body, isa.ErrInvalidInstruction, mnemonic)
	}
}

// encodeQuad encodes a ".quad V" directive as 8 little-endian bytes.
func encodeQuad(body string) ([]byte, error) {
	idx := strings.Index(body, ".quad")
	val := strings.TrimSpace(body[idx+len(".quad"):])
	v, err := parseNumber(val)
	if err != nil {
		return nil, fmt.Errorf("line %q: %w", body, err)
	}
	return appendLE(nil, v), nil
}

func formByte(first, second byte) byte {
	return ((first << 4) & 0xF0) | (second & 0x0F)
}

func appendLE(out []byte, val uint64) []byte {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], val)
	return append(out, buf[:]...)
}

// splitTwoOperands splits a comma-separated "a, b" operand list into
// its two trimmed parts. Missing either side is a syntactic error.
func splitTwoOperands(operands string) (string, string, error) {
	parts := strings.SplitN(operands, ",", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("%w: expected two comma-separated operands in %q", isa.ErrInvalidParameter, operands)
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), nil
}

func parseTwoRegisters(operands string) (isa.Register, isa.Register, error) {
	aStr, bStr, err := splitTwoOperands(operands)
	if err != nil {
		return 0, 0, err
	}
	ra, err := isa.RegisterFromName(aStr)
	if err != nil {
		return 0, 0, err
	}
	rb, err := isa.RegisterFromName(bStr)
	if err != nil {
		return 0, 0, err
	}
	return ra, rb, nil
}

// parseMemOperand parses "D(%reg)" into its displacement and register.
// An absent D is a syntactic error; the core never defaults it to 0
// (spec.md §4.1).
func parseMemOperand(operand string) (uint64, isa.Register, error) {
	open := strings.IndexByte(operand, '(')
	closeIdx := strings.IndexByte(operand, ')')
	if open < 0 || closeIdx < open {
		return 0, 0, fmt.Errorf("%w: malformed memory operand %q", isa.ErrInvalidParameter, operand)
	}

	dispStr := strings.TrimSpace(operand[:open])
	if dispStr == "" {
		return 0, 0, fmt.Errorf("%w: missing displacement in %q", isa.ErrInvalidParameter, operand)
	}
	disp, err := parseNumber(dispStr)
	if err != nil {
		return 0, 0, err
	}

	regStr := strings.TrimSpace(operand[open+1 : closeIdx])
	reg, err := isa.RegisterFromName(regStr)
	if err != nil {
		return 0, 0, err
	}

	return disp, reg, nil
}
