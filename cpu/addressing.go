package cpu

import (
	"github.com/retrogoat/m6502/bus"
	"github.com/retrogoat/m6502/decode"
)

// evalAddressing consumes whatever operand bytes mode requires, advancing PC
// as it goes, and returns the OperationInput the executor needs. It never
// reads the operand's target location (no load-before-store surprises for
// RMW instructions); it only computes where or what the operand is.
func (c *CPU) evalAddressing(b bus.Bus, mode decode.AddressingMode) OperationInput {
	switch mode {
	case decode.IMP, decode.ACC:
		return OperationInput{Kind: Implicit}

	case decode.IMM:
		v := c.fetch(b)
		return OperationInput{Kind: Immediate, Value: v}

	case decode.ZPG:
		addr := uint16(c.fetch(b))
		return OperationInput{Kind: Address, Addr: addr}

	case decode.ZPX:
		addr := uint16(c.fetch(b) + c.X)
		return OperationInput{Kind: Address, Addr: addr}

	case decode.ZPY:
		addr := uint16(c.fetch(b) + c.Y)
		return OperationInput{Kind: Address, Addr: addr}

	case decode.REL:
		d := c.fetch(b)
		return OperationInput{Kind: Relative, Addr: uint16(int16(int8(d)))}

	case decode.ABS:
		return OperationInput{Kind: Address, Addr: c.fetchAbs(b)}

	case decode.ABX:
		return OperationInput{Kind: Address, Addr: c.fetchAbs(b) + uint16(c.X)}

	case decode.ABY:
		return OperationInput{Kind: Address, Addr: c.fetchAbs(b) + uint16(c.Y)}

	case decode.IND:
		ptr := c.fetchAbs(b)
		addr := c.readU16WrapLow(b, uint8(ptr>>8), uint8(ptr))
		return OperationInput{Kind: Address, Addr: addr}

	case decode.INX:
		zp := c.fetch(b) + c.X
		addr := c.readU16WrapLow(b, 0, zp)
		return OperationInput{Kind: Address, Addr: addr}

	case decode.INY:
		zp := c.fetch(b)
		base := c.readU16WrapLow(b, 0, zp)
		return OperationInput{Kind: Address, Addr: base + uint16(c.Y)}

	default:
		return OperationInput{Kind: Implicit}
	}
}

// fetch reads the byte at PC and advances PC.
func (c *CPU) fetch(b bus.Bus) uint8 {
	v := b.Read(c.PC)
	c.PC++
	return v
}

// fetchAbs reads a little-endian 16-bit operand at PC and advances PC by two.
func (c *CPU) fetchAbs(b bus.Bus) uint16 {
	lo := c.fetch(b)
	hi := c.fetch(b)
	return uint16(hi)<<8 | uint16(lo)
}

// readU16WrapLow reads a little-endian 16-bit value from the two bytes at
// (high:low) and (high:low+1), where low+1 wraps within the page (high stays
// fixed). This is both the NMOS JMP (IND) indirection bug — a pointer that
// straddles a page boundary (low == 0xFF) reads its high byte from the start
// of the SAME page rather than the next one — and, with high pinned at 0x00,
// the ordinary zero-page wrap used by indexed-indirect and indirect-indexed
// addressing.
func (c *CPU) readU16WrapLow(b bus.Bus, high, low uint8) uint16 {
	lo := b.Read(uint16(high)<<8 | uint16(low))
	hi := b.Read(uint16(high)<<8 | uint16(low+1))
	return uint16(hi)<<8 | uint16(lo)
}
