package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func run(t *testing.T, c *CPU, m *flatMemory, at uint16, program ...uint8) {
	t.Helper()
	copy(m.mem[at:], program)
	c.PC = at
	assert.NoError(t, c.Step(m))
}

func TestLDAImmediateSetsFlags(t *testing.T) {
	c, m := newTestCPU()
	run(t, c, m, 0x0200, 0xA9, 0x00) // LDA #$00
	assert.Equal(t, uint8(0), c.A)
	assert.True(t, c.Z)
	assert.False(t, c.N)

	run(t, c, m, 0x0202, 0xA9, 0x80) // LDA #$80
	assert.Equal(t, uint8(0x80), c.A)
	assert.False(t, c.Z)
	assert.True(t, c.N)
}

func TestCLCSEC(t *testing.T) {
	c, m := newTestCPU()
	c.C = false
	run(t, c, m, 0x0200, 0x38) // SEC
	assert.True(t, c.C)
	run(t, c, m, 0x0201, 0x18) // CLC
	assert.False(t, c.C)
}

func TestADCSignedOverflow(t *testing.T) {
	c, m := newTestCPU()
	c.A = 0x7F // +127
	c.C = false
	run(t, c, m, 0x0200, 0x69, 0x01) // ADC #$01 -> 128, signed overflow
	assert.Equal(t, uint8(0x80), c.A)
	assert.True(t, c.V, "adding two positives producing a negative result must set V")
	assert.True(t, c.N)
	assert.False(t, c.C)
}

func TestADCUnsignedCarry(t *testing.T) {
	c, m := newTestCPU()
	c.A = 0xFF
	c.C = false
	run(t, c, m, 0x0200, 0x69, 0x01) // ADC #$01 -> 0x00 with carry
	assert.Equal(t, uint8(0x00), c.A)
	assert.True(t, c.C)
	assert.True(t, c.Z)
	assert.False(t, c.V)
}

func TestSBCBorrow(t *testing.T) {
	c, m := newTestCPU()
	c.A = 0x00
	c.C = true // no pending borrow
	run(t, c, m, 0x0200, 0xE9, 0x01) // SBC #$01 -> 0xFF, borrow occurs so C clears
	assert.Equal(t, uint8(0xFF), c.A)
	assert.False(t, c.C)
	assert.True(t, c.N)
}

func TestCMPFlags(t *testing.T) {
	c, m := newTestCPU()
	c.A = 0x10
	run(t, c, m, 0x0200, 0xC9, 0x10) // CMP #$10 -> equal
	assert.True(t, c.Z)
	assert.True(t, c.C)
	assert.Equal(t, uint8(0x10), c.A, "CMP must not modify A")

	run(t, c, m, 0x0202, 0xC9, 0x20) // CMP #$20 -> A < M
	assert.False(t, c.C)
	assert.False(t, c.Z)
}

func TestASLAccumulatorAndMemory(t *testing.T) {
	c, m := newTestCPU()
	c.A = 0x81
	run(t, c, m, 0x0200, 0x0A) // ASL A
	assert.Equal(t, uint8(0x02), c.A)
	assert.True(t, c.C)

	m.mem[0x0050] = 0x40
	run(t, c, m, 0x0201, 0x06, 0x50) // ASL $50
	assert.Equal(t, uint8(0x80), m.mem[0x0050])
	assert.False(t, c.C)
}

func TestRORCarryChaining(t *testing.T) {
	c, m := newTestCPU()
	c.A = 0x01
	c.C = true
	run(t, c, m, 0x0200, 0x6A) // ROR A
	assert.Equal(t, uint8(0x80), c.A, "incoming carry must rotate into bit 7")
	assert.True(t, c.C, "outgoing bit 0 becomes the new carry")
}

func TestINCDECMemory(t *testing.T) {
	c, m := newTestCPU()
	m.mem[0x0060] = 0xFF
	run(t, c, m, 0x0200, 0xE6, 0x60) // INC $60
	assert.Equal(t, uint8(0x00), m.mem[0x0060])
	assert.True(t, c.Z)

	run(t, c, m, 0x0202, 0xC6, 0x60) // DEC $60
	assert.Equal(t, uint8(0xFF), m.mem[0x0060])
	assert.True(t, c.N)
}

func TestBITFlagsLeaveAccumulatorAlone(t *testing.T) {
	c, m := newTestCPU()
	c.A = 0x0F
	m.mem[0x0070] = 0xC0 // bits 7,6 set, none overlapping A
	run(t, c, m, 0x0200, 0x24, 0x70) // BIT $70
	assert.True(t, c.Z)
	assert.True(t, c.N)
	assert.True(t, c.V)
	assert.Equal(t, uint8(0x0F), c.A)
}

func TestBranchTakenAndNotTaken(t *testing.T) {
	c, m := newTestCPU()
	c.Z = true
	run(t, c, m, 0x0200, 0xF0, 0x05) // BEQ +5
	assert.Equal(t, uint16(0x0207), c.PC)

	c.Z = false
	run(t, c, m, 0x0300, 0xF0, 0x05) // BEQ +5, not taken
	assert.Equal(t, uint16(0x0302), c.PC)
}

func TestJSRRTSRoundTrip(t *testing.T) {
	c, m := newTestCPU()
	c.S = 0xFF
	run(t, c, m, 0x0200, 0x20, 0x00, 0x03) // JSR $0300
	assert.Equal(t, uint16(0x0300), c.PC)
	assert.Equal(t, uint8(0xFD), c.S)

	run(t, c, m, 0x0300, 0x60) // RTS
	assert.Equal(t, uint16(0x0203), c.PC, "RTS resumes at the byte after JSR's operand")
	assert.Equal(t, uint8(0xFF), c.S)
}

func TestPHPPLPRoundTrip(t *testing.T) {
	c, m := newTestCPU()
	c.S = 0xFF
	c.N, c.V, c.C = true, false, true
	run(t, c, m, 0x0200, 0x08) // PHP

	c.N, c.V, c.C = false, true, false
	run(t, c, m, 0x0201, 0x28) // PLP
	assert.True(t, c.N)
	assert.False(t, c.V)
	assert.True(t, c.C)
	assert.Equal(t, uint8(0xFF), c.S)
}

func TestZeroPageWrapIndirectX(t *testing.T) {
	c, m := newTestCPU()
	c.X = 0xFF
	c.A = 0x00
	m.mem[0x0200] = 0xA1 // LDA (indirect,X)
	m.mem[0x0201] = 0x02 // base 0x02, +0xFF wraps to 0x01
	m.mem[0x0001] = 0x34
	m.mem[0x0002] = 0x12
	m.mem[0x1234] = 0x99
	c.PC = 0x0200
	assert.NoError(t, c.Step(m))
	assert.Equal(t, uint8(0x99), c.A)
}
