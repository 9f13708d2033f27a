package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tarikeshaq/y86-lib/internal/asm"
	"github.com/tarikeshaq/y86-lib/internal/y86log"
)

func main() {
	log := y86log.Default()

	var output string

	rootCmd := &cobra.Command{
		Use:   "y86asm [source files...]",
		Short: "Assemble Y86-64 source into a flat binary image",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := readLines(args)
			if err != nil {
				return err
			}

			image, err := asm.Assemble(lines)
			if err != nil {
				return fmt.Errorf("assemble: %w", err)
			}

			out := os.Stdout
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}

			if _, err := out.Write(image); err != nil {
				return err
			}

			fmt.Fprintf(log.Err, "assembled %d source line(s) into %d byte(s)\n", len(lines), len(image))
			return nil
		},
	}
	rootCmd.Flags().StringVarP(&output, "output", "o", "", "output image path (default: stdout)")

	if err := rootCmd.Execute(); err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
}

// readLines concatenates every source file's lines, in argument order,
// into one line slice for asm.Assemble.
func readLines(paths []string) ([]string, error) {
	var lines []string
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		closeErr := f.Close()
		if err := scanner.Err(); err != nil {
			return nil, err
		}
		if closeErr != nil {
			return nil, closeErr
		}
	}
	return lines, nil
}
