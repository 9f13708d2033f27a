package asm

import (
	"fmt"
	"strings"

	"github.com/tarikeshaq/y86-lib/internal/isa"
)

// discoverLabels is assembler pass 1 (spec.md §4.1): walk the
// normalized lines tracking curr_addr, recording label -> absolute
// address, and advancing curr_addr by each line's encoded size.
func discoverLabels(lines []string) (map[string]uint64, error) {
	labels := make(map[string]uint64)
	currAddr := uint64(0)

	for _, raw := range lines {
		line := normalizeLine(raw)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ".pos") {
			addr, err := parseNumber(strings.TrimSpace(line[len(".pos"):]))
			if err != nil {
				return nil, err
			}
			currAddr = addr
			continue
		}

		label, body, hasLabel := splitLabel(line)
		if hasLabel {
			labels[label] = currAddr
		}

		if body == "" {
			continue
		}

		if strings.Contains(body, ".quad") {
			currAddr += 8
			continue
		}

		size, err := instrSize(body)
		if err != nil {
			return nil, err
		}
		currAddr += size
	}

	return labels, nil
}

// instrSize returns the fixed encoded length (§3 invariant) of the
// instruction named by the body's leading mnemonic.
func instrSize(body string) (uint64, error) {
	mnemonic := strings.Fields(body)[0]
	_, icode, err := isa.OpcodeForMnemonic(mnemonic)
	if err != nil {
		return 0, fmt.Errorf("line %q: %w", body, err)
	}
	return uint64(icode.Len()), nil
}
