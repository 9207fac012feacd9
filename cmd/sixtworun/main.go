// Command sixtworun loads a raw 6502 binary image into RAM and runs it
// instruction-by-instruction, printing final register state.
package main

import (
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/retrogoat/m6502/cpu"
	"github.com/retrogoat/m6502/decode"
	"github.com/retrogoat/m6502/memory"
	"github.com/spf13/cobra"
)

var (
	loadAddr  uint16
	startAddr uint16
	useVector bool
	maxSteps  int
	trace     bool
)

func main() {
	root := &cobra.Command{
		Use:   "sixtworun <file>",
		Short: "Run a raw 6502 binary image to completion or a step limit",
		Args:  cobra.ExactArgs(1),
		RunE:  run,
	}
	root.Flags().Uint16Var(&loadAddr, "addr", 0x0000, "address the image is loaded at")
	root.Flags().Uint16Var(&startAddr, "start", 0x0000, "initial PC (ignored if --reset-vector is set)")
	root.Flags().BoolVar(&useVector, "reset-vector", false, "start PC from the reset vector at 0xFFFC instead of --start")
	root.Flags().IntVar(&maxSteps, "max-steps", 10000, "stop after this many instructions")
	root.Flags().BoolVar(&trace, "trace", false, "print each instruction as it executes")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("sixtworun: %w", err)
	}

	ram, err := memory.NewRAM(65536, nil)
	if err != nil {
		return fmt.Errorf("sixtworun: %w", err)
	}
	ram.Load(loadAddr, data)

	c := cpu.New(decode.NMOS)
	if useVector {
		c.Reset(ram)
	} else {
		c.PC = startAddr
	}

	out := cmd.OutOrStdout()
	for i := 0; i < maxSteps; i++ {
		if trace {
			fmt.Fprintf(out, "%04X: A=%02X X=%02X Y=%02X S=%02X P=%02X\n",
				c.PC, c.A, c.X, c.Y, c.S, c.GetStatus(false))
		}
		if err := c.Step(ram); err != nil {
			fmt.Fprintf(out, "halted: %v\n", err)
			break
		}
	}

	fmt.Fprintln(out, spew.Sdump(c))
	return nil
}
