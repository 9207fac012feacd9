package cpu

import (
	"github.com/retrogoat/m6502/bus"
	"github.com/retrogoat/m6502/decode"
)

// execute runs one decoded operation against its already-evaluated input.
// mode is only needed to distinguish accumulator addressing from memory
// addressing on the shift/rotate group and to describe an unhandled
// instruction in UnimplementedOperationError; every other instruction
// ignores it.
func (c *CPU) execute(b bus.Bus, instr decode.Instruction, mode decode.AddressingMode, in OperationInput) error {
	switch instr {
	case decode.LDA:
		c.A = c.operand(b, in)
		c.setZN(c.A)
	case decode.LDX:
		c.X = c.operand(b, in)
		c.setZN(c.X)
	case decode.LDY:
		c.Y = c.operand(b, in)
		c.setZN(c.Y)
	case decode.STA:
		b.Write(in.Addr, c.A)
	case decode.STX:
		b.Write(in.Addr, c.X)
	case decode.STY:
		b.Write(in.Addr, c.Y)

	case decode.TAX:
		c.X = c.A
		c.setZN(c.X)
	case decode.TAY:
		c.Y = c.A
		c.setZN(c.Y)
	case decode.TXA:
		c.A = c.X
		c.setZN(c.A)
	case decode.TYA:
		c.A = c.Y
		c.setZN(c.A)
	case decode.TSX:
		c.X = c.S
		c.setZN(c.X)
	case decode.TXS:
		c.S = c.X // does not affect flags

	case decode.ADC:
		c.A = c.addWithCarry(c.A, c.operand(b, in))
	case decode.SBC:
		c.A = c.addWithCarry(c.A, ^c.operand(b, in))

	case decode.AND:
		c.A &= c.operand(b, in)
		c.setZN(c.A)
	case decode.ORA:
		c.A |= c.operand(b, in)
		c.setZN(c.A)
	case decode.EOR:
		c.A ^= c.operand(b, in)
		c.setZN(c.A)

	case decode.CMP:
		c.compare(c.A, c.operand(b, in))
	case decode.CPX:
		c.compare(c.X, c.operand(b, in))
	case decode.CPY:
		c.compare(c.Y, c.operand(b, in))

	case decode.ASL:
		c.rmw(b, mode, in, func(v uint8) uint8 {
			c.C = v&0x80 != 0
			return v << 1
		})
	case decode.LSR:
		c.rmw(b, mode, in, func(v uint8) uint8 {
			c.C = v&0x01 != 0
			return v >> 1
		})
	case decode.ROL:
		c.rmw(b, mode, in, func(v uint8) uint8 {
			carryIn := c.C
			c.C = v&0x80 != 0
			r := v << 1
			if carryIn {
				r |= 0x01
			}
			return r
		})
	case decode.ROR:
		c.rmw(b, mode, in, func(v uint8) uint8 {
			carryIn := c.C
			c.C = v&0x01 != 0
			r := v >> 1
			if carryIn {
				r |= 0x80
			}
			return r
		})

	case decode.INC:
		v := b.Read(in.Addr) + 1
		b.Write(in.Addr, v)
		c.setZN(v)
	case decode.DEC:
		v := b.Read(in.Addr) - 1
		b.Write(in.Addr, v)
		c.setZN(v)
	case decode.INX:
		c.X++
		c.setZN(c.X)
	case decode.INY:
		c.Y++
		c.setZN(c.Y)
	case decode.DEX:
		c.X--
		c.setZN(c.X)
	case decode.DEY:
		c.Y--
		c.setZN(c.Y)

	case decode.BIT:
		v := c.operand(b, in)
		c.Z = c.A&v == 0
		c.N = v&0x80 != 0
		c.V = v&0x40 != 0

	case decode.BCC:
		c.branch(!c.C, in)
	case decode.BCS:
		c.branch(c.C, in)
	case decode.BEQ:
		c.branch(c.Z, in)
	case decode.BNE:
		c.branch(!c.Z, in)
	case decode.BMI:
		c.branch(c.N, in)
	case decode.BPL:
		c.branch(!c.N, in)
	case decode.BVC:
		c.branch(!c.V, in)
	case decode.BVS:
		c.branch(c.V, in)

	case decode.JMP:
		c.PC = in.Addr
	case decode.JSR:
		ret := c.PC - 1
		c.push(b, uint8(ret>>8))
		c.push(b, uint8(ret))
		c.PC = in.Addr
	case decode.RTS:
		lo := c.pop(b)
		hi := c.pop(b)
		c.PC = uint16(hi)<<8 | uint16(lo)
		c.PC++
	case decode.RTI:
		c.SetStatus(c.pop(b))
		lo := c.pop(b)
		hi := c.pop(b)
		c.PC = uint16(hi)<<8 | uint16(lo)
	case decode.BRK:
		c.PC++ // skip the signature/padding byte following the opcode
		c.interruptSequence(b, true, IRQVector)

	case decode.PHA:
		c.push(b, c.A)
	case decode.PHP:
		c.push(b, c.GetStatus(true))
	case decode.PLA:
		c.A = c.pop(b)
		c.setZN(c.A)
	case decode.PLP:
		c.SetStatus(c.pop(b))

	case decode.CLC:
		c.C = false
	case decode.SEC:
		c.C = true
	case decode.CLI:
		c.I = false
	case decode.SEI:
		c.I = true
	case decode.CLV:
		c.V = false
	case decode.CLD:
		c.D = false
	case decode.SED:
		c.D = true

	case decode.NOP:
		// intentionally nothing

	default:
		return UnimplementedOperationError{Instruction: instr, Mode: mode}
	}
	return nil
}

// operand resolves an OperationInput to the byte value an instruction
// actually reads: the literal for Immediate, a memory fetch for Address.
// Implicit/Relative never reach here for value-consuming instructions.
func (c *CPU) operand(b bus.Bus, in OperationInput) uint8 {
	if in.Kind == Immediate {
		return in.Value
	}
	return b.Read(in.Addr)
}

// rmw runs a read-modify-write transform against either the accumulator
// (ACC addressing) or a memory location, setting Z/N from the result.
func (c *CPU) rmw(b bus.Bus, mode decode.AddressingMode, in OperationInput, f func(uint8) uint8) {
	if mode == decode.ACC {
		c.A = f(c.A)
		c.setZN(c.A)
		return
	}
	v := f(b.Read(in.Addr))
	b.Write(in.Addr, v)
	c.setZN(v)
}

// addWithCarry implements the shared ADC/SBC flag math: SBC is ADC with its
// operand's bits complemented, which is why both route through here. sum is
// computed in a 16-bit accumulator so the eventual carry bit isn't lost.
func (c *CPU) addWithCarry(a, m uint8) uint8 {
	carryIn := uint16(0)
	if c.C {
		carryIn = 1
	}
	sum := uint16(a) + uint16(m) + carryIn
	result := uint8(sum)
	c.C = sum > 0xFF
	c.V = (a^result)&(m^result)&0x80 != 0
	c.setZN(result)
	return result
}

// compare implements CMP/CPX/CPY: subtract without storing the result,
// setting C/Z/N as if SBC had run with the carry flag forced in.
func (c *CPU) compare(reg, m uint8) {
	r := reg - m
	c.C = reg >= m
	c.setZN(r)
}

// branch adds a relative displacement to PC when taken is true. 16-bit
// wraparound addition is exactly what a real 6502's PC does here.
func (c *CPU) branch(taken bool, in OperationInput) {
	if taken {
		c.PC += in.Addr
	}
}

func (c *CPU) push(b bus.Bus, v uint8) {
	b.Write(stackBase|uint16(c.S), v)
	c.S--
}

func (c *CPU) pop(b bus.Bus) uint8 {
	c.S++
	return b.Read(stackBase | uint16(c.S))
}
