// Package disasm renders one instruction at a program counter as 6502
// assembly text, driven by decode.Variant and bus.Bus so it works against
// any variant and any address space, not just a flat RAM image.
package disasm

import (
	"fmt"

	"github.com/retrogoat/m6502/bus"
	"github.com/retrogoat/m6502/decode"
)

// Step disassembles the single instruction at pc, returning its text and
// the number of bytes it occupies (1-3). It never writes to b. It does read
// the opcode and operand bytes through b.Read, so any side effects a Bus
// attaches to reads (such as RAM updating its databus value) still happen.
func Step(variant *decode.Variant, pc uint16, b bus.Bus) (string, int) {
	op := b.Read(pc)
	instr, mode, ok := variant.Decode(op)
	if !ok {
		return fmt.Sprintf(".byte $%02X", op), 1
	}

	switch mode {
	case decode.IMP:
		return instr.String(), 1
	case decode.ACC:
		return fmt.Sprintf("%s A", instr), 1
	case decode.IMM:
		v := b.Read(pc + 1)
		return fmt.Sprintf("%s #$%02X", instr, v), 2
	case decode.ZPG:
		v := b.Read(pc + 1)
		return fmt.Sprintf("%s $%02X", instr, v), 2
	case decode.ZPX:
		v := b.Read(pc + 1)
		return fmt.Sprintf("%s $%02X,X", instr, v), 2
	case decode.ZPY:
		v := b.Read(pc + 1)
		return fmt.Sprintf("%s $%02X,Y", instr, v), 2
	case decode.REL:
		d := int8(b.Read(pc + 1))
		target := uint16(int32(pc) + 2 + int32(d))
		return fmt.Sprintf("%s $%04X", instr, target), 2
	case decode.ABS:
		addr := readAbs(b, pc+1)
		return fmt.Sprintf("%s $%04X", instr, addr), 3
	case decode.ABX:
		addr := readAbs(b, pc+1)
		return fmt.Sprintf("%s $%04X,X", instr, addr), 3
	case decode.ABY:
		addr := readAbs(b, pc+1)
		return fmt.Sprintf("%s $%04X,Y", instr, addr), 3
	case decode.IND:
		addr := readAbs(b, pc+1)
		return fmt.Sprintf("%s ($%04X)", instr, addr), 3
	case decode.INX:
		v := b.Read(pc + 1)
		return fmt.Sprintf("%s ($%02X,X)", instr, v), 2
	case decode.INY:
		v := b.Read(pc + 1)
		return fmt.Sprintf("%s ($%02X),Y", instr, v), 2
	default:
		return instr.String(), 1
	}
}

func readAbs(b bus.Bus, addr uint16) uint16 {
	lo := b.Read(addr)
	hi := b.Read(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}
