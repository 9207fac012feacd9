package cpu

import "github.com/retrogoat/m6502/bus"

// Reset puts the CPU into its power-on sequence: the interrupt disable flag
// is set, the stack pointer drops by three (mirroring three phantom stack
// reads a real 6502 performs instead of an actual push, since reset never
// writes the interrupt frame), and PC is loaded from ResetVector. Unlike
// IRQ/NMI, nothing is pushed to the stack.
func (c *CPU) Reset(b bus.Bus) {
	c.I = true
	c.S -= 3
	c.PC = c.readVector(b, ResetVector)
}

// IRQ services a maskable interrupt request if the interrupt disable flag
// allows it. A driver is expected to call this between Step calls once it
// observes a peripheral's IRQ line asserted; the core does no polling of
// its own (see irqline.Scheduler for a driver-side helper).
func (c *CPU) IRQ(b bus.Bus) {
	if c.I {
		return
	}
	c.interruptSequence(b, false, IRQVector)
}

// NMI services a non-maskable interrupt unconditionally; I has no effect on
// it, matching real hardware.
func (c *CPU) NMI(b bus.Bus) {
	c.interruptSequence(b, false, NMIVector)
}

// interruptSequence is the stack discipline shared by IRQ, NMI, and BRK:
// push PC high, PC low, then the status byte (with B set only for a
// software BRK), set I, and load PC from vector.
func (c *CPU) interruptSequence(b bus.Bus, brk bool, vector uint16) {
	c.push(b, uint8(c.PC>>8))
	c.push(b, uint8(c.PC))
	c.push(b, c.GetStatus(brk))
	c.I = true
	c.PC = c.readVector(b, vector)
}

// readVector loads a little-endian 16-bit pointer from the two bytes at
// addr/addr+1.
func (c *CPU) readVector(b bus.Bus, addr uint16) uint16 {
	lo := b.Read(addr)
	hi := b.Read(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}
