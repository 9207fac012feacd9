// Command sixtwodisasm disassembles a raw binary image of 6502 code.
package main

import (
	"fmt"
	"os"

	"github.com/retrogoat/m6502/decode"
	"github.com/retrogoat/m6502/disasm"
	"github.com/retrogoat/m6502/memory"
	"github.com/spf13/cobra"
)

var (
	loadAddr uint16
	count    int
)

func main() {
	root := &cobra.Command{
		Use:   "sixtwodisasm <file>",
		Short: "Disassemble a raw 6502 binary image",
		Args:  cobra.ExactArgs(1),
		RunE:  run,
	}
	root.Flags().Uint16Var(&loadAddr, "addr", 0x0000, "address the image is loaded at")
	root.Flags().IntVar(&count, "count", 32, "number of instructions to disassemble")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("sixtwodisasm: %w", err)
	}

	ram, err := memory.NewRAM(65536, nil)
	if err != nil {
		return fmt.Errorf("sixtwodisasm: %w", err)
	}
	ram.Load(loadAddr, data)

	pc := loadAddr
	for i := 0; i < count; i++ {
		text, length := disasm.Step(decode.NMOS, pc, ram)
		fmt.Fprintf(cmd.OutOrStdout(), "%04X  %s\n", pc, text)
		pc += uint16(length)
	}
	return nil
}
