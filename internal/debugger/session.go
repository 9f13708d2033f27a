// Package debugger implements the interactive REPL over a running
// machine: step/next/run execution control, breakpoints, and register/
// memory inspection. Grounded on the original's executer::debug main
// loop and executer/commands.rs's command dispatch, reshaped around a
// session object instead of a global lazy_static breakpoint set (per
// SPEC_FULL.md's Open Question / Design Note decision), and on the
// teacher's run.go for the bufio-backed REPL idiom.
package debugger

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tarikeshaq/y86-lib/internal/decode"
	"github.com/tarikeshaq/y86-lib/internal/exec"
	"github.com/tarikeshaq/y86-lib/internal/isa"
	"github.com/tarikeshaq/y86-lib/internal/state"
)

// registersShown is the exact register range the "registers" command
// dumps: %rax..%r13. %r14 and the RNONE sentinel are deliberately
// excluded, matching both commands.rs's print_all_registers((0..14))
// and spec.md's debugger table.
const registersShown = 14

// Session is one interactive debugging session over a machine. It owns
// its own breakpoint set, so multiple sessions never interfere.
type Session struct {
	state       *state.State
	breakpoints *BreakpointSet
	in          *bufio.Reader
	out         io.Writer
	errOut      io.Writer
}

// NewSession wires a machine to a REPL reading from in and writing to
// out/errOut.
func NewSession(s *state.State, in io.Reader, out, errOut io.Writer) *Session {
	return &Session{
		state:       s,
		breakpoints: NewBreakpointSet(),
		in:          bufio.NewReader(in),
		out:         out,
		errOut:      errOut,
	}
}

// Run drives the REPL until the user types "quit" or stdin closes:
// decode the instruction at the current PC, print it, prompt, read one
// line, and dispatch it as a command.
func (s *Session) Run() error {
	for {
		instr, err := decode.Decode(s.state)
		if err != nil {
			return err
		}
		fmt.Fprintln(s.out, FormatInstruction(instr))
		fmt.Fprint(s.out, ">    ")

		line, err := s.in.ReadString('\n')
		if err != nil && line == "" {
			return nil
		}
		line = strings.TrimSpace(line)

		if strings.HasPrefix(line, "quit") {
			return nil
		}

		if dispatchErr := s.dispatch(line, instr); dispatchErr != nil {
			fmt.Fprintln(s.errOut, dispatchErr)
		}
	}
}

// dispatch runs one REPL command line against the instruction already
// decoded at the current PC, mirroring executer/commands.rs::run's
// first-space command-name split.
func (s *Session) dispatch(line string, current *decode.Instruction) error {
	command := line
	arg := ""
	if idx := strings.IndexByte(line, ' '); idx >= 0 {
		command = line[:idx]
		arg = strings.TrimSpace(line[idx+1:])
	}

	switch command {
	case "step":
		return exec.Execute(current, s.state)
	case "run":
		return s.run(current)
	case "next":
		return s.next(current)
	case "jump":
		return s.jump(arg)
	case "break":
		return s.setBreakpoint(arg)
	case "delete":
		return s.deleteBreakpoint(arg)
	case "registers":
		s.printRegisters()
		return nil
	case "examine":
		return s.examine(arg)
	default:
		fmt.Fprintln(s.errOut, "Invalid command, please try again")
		return nil
	}
}

// run executes current, then keeps decoding and executing forward
// instructions until the next one to run sits on a breakpoint or is
// HALT — the stop-before-execute semantics of executer/commands.rs's
// run_run.
func (s *Session) run(current *decode.Instruction) error {
	if err := exec.Execute(current, s.state); err != nil {
		return err
	}
	curr, err := decode.Decode(s.state)
	if err != nil {
		return err
	}
	for !s.breakpoints.Contains(curr.Location) && curr.ICode != isa.HALT {
		if err := exec.Execute(curr, s.state); err != nil {
			return err
		}
		curr, err = decode.Decode(s.state)
		if err != nil {
			return err
		}
	}
	return nil
}

// next behaves like run but additionally stops once the PC reaches
// current's ValP, so a "next" issued on a call steps over it instead
// of diving in (executer/commands.rs's run_next).
func (s *Session) next(current *decode.Instruction) error {
	valP := current.ValP
	if err := exec.Execute(current, s.state); err != nil {
		return err
	}
	curr, err := decode.Decode(s.state)
	if err != nil {
		return err
	}
	for !s.breakpoints.Contains(curr.Location) && curr.ICode != isa.HALT && s.state.GetPC() != valP {
		if err := exec.Execute(curr, s.state); err != nil {
			return err
		}
		curr, err = decode.Decode(s.state)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) jump(arg string) error {
	addr, err := parseHexAddress(arg)
	if err != nil {
		return err
	}
	s.state.SetPC(addr)
	return nil
}

// SetBreakpointArg sets a breakpoint from a raw "0x..." or bare hex
// address string, for callers (e.g. a --break CLI flag) that don't run
// through the REPL's command dispatch.
func (s *Session) SetBreakpointArg(arg string) error {
	return s.setBreakpoint(arg)
}

func (s *Session) setBreakpoint(arg string) error {
	addr, err := parseHexAddress(arg)
	if err != nil {
		return err
	}
	s.breakpoints.Add(addr)
	return nil
}

func (s *Session) deleteBreakpoint(arg string) error {
	addr, err := parseHexAddress(arg)
	if err != nil {
		return err
	}
	s.breakpoints.Remove(addr)
	return nil
}

func (s *Session) printRegisters() {
	for id := isa.Register(0); id < registersShown; id++ {
		fmt.Fprintf(s.out, "       #R[%s] = 0x%x\n", id, s.state.GetRegister(id))
	}
}

func (s *Session) examine(arg string) error {
	addr, err := parseHexAddress(arg)
	if err != nil {
		return err
	}
	value, err := s.state.ReadLE(addr)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "      #M_8[0x%x]  = 0x%x\n", addr, value)
	return nil
}

// parseHexAddress parses a REPL argument the way jump/break/delete/
// examine do in the original: an optional "0x" prefix is stripped and
// the remainder is always read as hexadecimal, never decimal.
func parseHexAddress(arg string) (uint64, error) {
	if arg == "" {
		return 0, fmt.Errorf("%w: missing address argument", isa.ErrInvalidParameter)
	}
	trimmed := strings.TrimPrefix(arg, "0x")
	addr, err := strconv.ParseUint(trimmed, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", isa.ErrInvalidParameter, arg)
	}
	return addr, nil
}
