package asm

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tarikeshaq/y86-lib/internal/isa"
)

// parseNumber accepts a decimal or 0x-prefixed hex literal and returns
// its unsigned 64-bit value. Grounded on the original's
// number_parser.rs parse_num, a deliberately trivial helper per
// spec.md §1 ("a trivial helper; the core assumes it").
func parseNumber(value string) (uint64, error) {
	value = strings.TrimSpace(value)
	if strings.HasPrefix(value, "0x") {
		n, err := strconv.ParseUint(value[2:], 16, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %s", isa.ErrInvalidNumber, value)
		}
		return n, nil
	}
	n, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", isa.ErrInvalidNumber, value)
	}
	return n, nil
}
