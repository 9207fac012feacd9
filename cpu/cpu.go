// Package cpu implements the MOS 6502 (NMOS) instruction interpreter:
// opcode decoding, addressing-mode evaluation, operation execution, the
// interrupt protocol, and the stack discipline. It never touches memory
// directly — every transaction goes through the bus.Bus passed at the call
// site — and it never models cycle-level bus timing: Step runs one whole
// instruction before returning, matching a real 6502 only at
// per-instruction granularity.
package cpu

import (
	"fmt"

	"github.com/retrogoat/m6502/bus"
	"github.com/retrogoat/m6502/decode"
)

// Vector addresses in the last page of the address space, each a
// little-endian 16-bit pointer.
const (
	NMIVector   = uint16(0xFFFA)
	ResetVector = uint16(0xFFFC)
	IRQVector   = uint16(0xFFFE)
)

// Packed status byte bit positions (used only by GetStatus/SetStatus; the
// flags themselves are stored as individual bools — see registers.go).
const (
	statusNegative  = uint8(0x80)
	statusOverflow  = uint8(0x40)
	statusAlwaysOne = uint8(0x20)
	statusBreak     = uint8(0x10)
	statusDecimal   = uint8(0x08)
	statusInterrupt = uint8(0x04)
	statusZero      = uint8(0x02)
	statusCarry     = uint8(0x01)
)

// stackBase is where the 8-bit stack pointer S is mapped: the effective
// address of a stack byte is 0x0100 | S.
const stackBase = uint16(0x0100)

// CPU holds the full architectural state of a 6502: the three general
// registers, the stack pointer, the program counter, and the six status
// flags. It owns no memory of its own; every entry point takes a bus.Bus.
type CPU struct {
	A, X, Y uint8
	S       uint8
	PC      uint16

	C, Z, I, D, V, N bool

	variant *decode.Variant
}

// New creates a CPU for the given variant in its architectural zero state
// (all registers and flags cleared). Drivers that want a real power-on PC
// should follow New with Reset, which loads PC from the reset vector.
func New(variant *decode.Variant) *CPU {
	return &CPU{variant: variant}
}

// UnknownOpcodeError is returned by Step when the decoder has no entry for
// the fetched opcode. PC is the address the opcode was fetched from (PC has
// already advanced past it by the time this error is returned).
type UnknownOpcodeError struct {
	Opcode uint8
	PC     uint16
}

// Error implements the error interface.
func (e UnknownOpcodeError) Error() string {
	return fmt.Sprintf("cpu: unknown opcode 0x%02X at PC 0x%04X", e.Opcode, e.PC)
}

// UnimplementedOperationError is returned by Step if the executor has no
// handler for an (Instruction, AddressingMode) pair the decoder produced.
// This should be unreachable for any opcode decode.Variant.Decode reports
// as valid; it exists as a defensive backstop, not a documented runtime
// error path.
type UnimplementedOperationError struct {
	Instruction decode.Instruction
	Mode        decode.AddressingMode
}

// Error implements the error interface.
func (e UnimplementedOperationError) Error() string {
	return fmt.Sprintf("cpu: unimplemented operation %s/%s", e.Instruction, e.Mode)
}

// InputKind tags what an OperationInput carries.
type InputKind int

const (
	// Implicit means the operation takes no operand (implied/accumulator
	// addressing).
	Implicit InputKind = iota
	// Immediate carries a literal operand byte in Value.
	Immediate
	// Relative carries a sign-extended 8-bit branch displacement, held as
	// a 16-bit two's-complement offset, in Addr.
	Relative
	// Address carries a fully computed 16-bit effective address in Addr.
	Address
)

// OperationInput is what the addressing-mode evaluator hands to the
// operation executor: either nothing, a literal value, a branch
// displacement, or an effective address.
type OperationInput struct {
	Kind  InputKind
	Value uint8
	Addr  uint16
}

// Step fetches the opcode at PC (advancing PC by one), decodes it, evaluates
// its addressing mode (consuming 0-2 further operand bytes and advancing PC
// accordingly), and executes the operation. It is atomic from the caller's
// perspective: either the whole instruction completes or an error is
// returned describing why it could not.
func (c *CPU) Step(b bus.Bus) error {
	opcodePC := c.PC
	op := b.Read(c.PC)
	c.PC++

	instr, mode, ok := c.variant.Decode(op)
	if !ok {
		return UnknownOpcodeError{Opcode: op, PC: opcodePC}
	}

	input := c.evalAddressing(b, mode)
	return c.execute(b, instr, mode, input)
}
