package debugger

import (
	"fmt"
	"strings"

	"github.com/tarikeshaq/y86-lib/internal/decode"
	"github.com/tarikeshaq/y86-lib/internal/isa"
)

// FormatInstruction renders instr the way executer/print.rs's
// print_instruction does: four leading spaces, mnemonic, a per-icode
// operand tail, and a trailing "   #PC = 0x..." marker. spec.md leaves
// exact spacing a presentation concern; this matches the original
// verbatim since it costs nothing and gives worked examples something
// to diff against.
func FormatInstruction(instr *decode.Instruction) string {
	opcode := byte(instr.ICode)<<4 | instr.IFun
	mnemonic, ok := isa.MnemonicForOpcode(opcode)
	if !ok {
		mnemonic = "???"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "    %s", mnemonic)

	switch instr.ICode {
	case isa.IRMOVQ:
		fmt.Fprintf(&b, " $0x%x, %s", instr.ValC, instr.RB)
	case isa.PUSHQ, isa.POPQ:
		fmt.Fprintf(&b, " %s", instr.RA)
	case isa.JXX, isa.CALL:
		fmt.Fprintf(&b, " 0x%x", instr.ValC)
	case isa.RMMOVQ:
		fmt.Fprintf(&b, " %s, 0x%x(%s)", instr.RA, instr.ValC, instr.RB)
	case isa.MRMOVQ:
		fmt.Fprintf(&b, " 0x%x(%s), %s", instr.ValC, instr.RB, instr.RA)
	case isa.RRMOVXX, isa.OPQ:
		fmt.Fprintf(&b, " %s, %s", instr.RA, instr.RB)
	}

	fmt.Fprintf(&b, "   #PC = 0x%x", instr.Location)
	return b.String()
}
