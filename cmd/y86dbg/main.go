package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tarikeshaq/y86-lib/internal/debugger"
	"github.com/tarikeshaq/y86-lib/internal/state"
	"github.com/tarikeshaq/y86-lib/internal/y86log"
)

func main() {
	log := y86log.Default()

	var breakpoints []string

	rootCmd := &cobra.Command{
		Use:   "y86dbg [image file]",
		Short: "Load a Y86-64 image and start an interactive debug session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			image, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			s := state.New(image)
			log.Infof("## Opened %s, starting PC 0x%x", args[0], s.GetPC())

			session := debugger.NewSession(s, os.Stdin, os.Stdout, os.Stderr)
			for _, raw := range breakpoints {
				if err := session.SetBreakpointArg(raw); err != nil {
					return fmt.Errorf("--break %s: %w", raw, err)
				}
			}

			return session.Run()
		},
	}
	rootCmd.Flags().StringArrayVar(&breakpoints, "break", nil, "set a breakpoint address before starting (repeatable)")

	if err := rootCmd.Execute(); err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
}
