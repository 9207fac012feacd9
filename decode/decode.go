// Package decode maps an opcode byte to an (Instruction, AddressingMode)
// pair for a given 6502 variant. It is the only variant-dependent component
// of the core: a different flavor (65C02, etc.) is a different Variant
// value, not a different interpreter.
package decode

// Instruction identifies one of the 56 documented NMOS 6502 mnemonics.
type Instruction int

const (
	ADC Instruction = iota
	AND
	ASL
	BCC
	BCS
	BEQ
	BIT
	BMI
	BNE
	BPL
	BRK
	BVC
	BVS
	CLC
	CLD
	CLI
	CLV
	CMP
	CPX
	CPY
	DEC
	DEX
	DEY
	EOR
	INC
	INX
	INY
	JMP
	JSR
	LDA
	LDX
	LDY
	LSR
	NOP
	ORA
	PHA
	PHP
	PLA
	PLP
	ROL
	ROR
	RTI
	RTS
	SBC
	SEC
	SED
	SEI
	STA
	STX
	STY
	TAX
	TAY
	TSX
	TXA
	TXS
	TYA
)

var instructionNames = [...]string{
	ADC: "ADC", AND: "AND", ASL: "ASL", BCC: "BCC", BCS: "BCS",
	BEQ: "BEQ", BIT: "BIT", BMI: "BMI", BNE: "BNE", BPL: "BPL",
	BRK: "BRK", BVC: "BVC", BVS: "BVS", CLC: "CLC", CLD: "CLD",
	CLI: "CLI", CLV: "CLV", CMP: "CMP", CPX: "CPX", CPY: "CPY",
	DEC: "DEC", DEX: "DEX", DEY: "DEY", EOR: "EOR", INC: "INC",
	INX: "INX", INY: "INY", JMP: "JMP", JSR: "JSR", LDA: "LDA",
	LDX: "LDX", LDY: "LDY", LSR: "LSR", NOP: "NOP", ORA: "ORA",
	PHA: "PHA", PHP: "PHP", PLA: "PLA", PLP: "PLP", ROL: "ROL",
	ROR: "ROR", RTI: "RTI", RTS: "RTS", SBC: "SBC", SEC: "SEC",
	SED: "SED", SEI: "SEI", STA: "STA", STX: "STX", STY: "STY",
	TAX: "TAX", TAY: "TAY", TSX: "TSX", TXA: "TXA", TXS: "TXS",
	TYA: "TYA",
}

// String implements fmt.Stringer.
func (i Instruction) String() string {
	if int(i) < 0 || int(i) >= len(instructionNames) {
		return "UNKNOWN"
	}
	return instructionNames[i]
}

// AddressingMode identifies how an instruction's operand is fetched.
type AddressingMode int

const (
	IMP AddressingMode = iota // implied/no operand
	ACC                       // operates on the accumulator directly
	IMM                       // literal byte follows the opcode
	ZPG                       // zero page
	ZPX                       // zero page, X
	ZPY                       // zero page, Y
	REL                       // relative (branches)
	ABS                       // absolute
	ABX                       // absolute, X
	ABY                       // absolute, Y
	IND                       // indirect (JMP only)
	INX                       // indexed indirect (zero page, X)
	INY                       // indirect indexed (zero page), Y
)

var addressingModeNames = [...]string{
	IMP: "IMP", ACC: "ACC", IMM: "IMM", ZPG: "ZPG", ZPX: "ZPX",
	ZPY: "ZPY", REL: "REL", ABS: "ABS", ABX: "ABX", ABY: "ABY",
	IND: "IND", INX: "INX", INY: "INY",
}

// String implements fmt.Stringer.
func (m AddressingMode) String() string {
	if int(m) < 0 || int(m) >= len(addressingModeNames) {
		return "UNKNOWN"
	}
	return addressingModeNames[m]
}

// Entry is one populated slot of a Variant's opcode table.
type Entry struct {
	Instruction Instruction
	Mode        AddressingMode
}

// Variant is a pluggable 6502 flavor: nothing but a 256-entry opcode table.
// Switching CPU flavors means supplying a different Variant, never touching
// the addressing-mode evaluator or operation executor.
type Variant struct {
	name  string
	table [256]*Entry
}

// Name identifies the variant, e.g. for error messages.
func (v *Variant) Name() string {
	return v.name
}

// Decode maps opcode to its (Instruction, AddressingMode) pair. ok is false
// for any opcode this variant does not implement.
func (v *Variant) Decode(opcode uint8) (instr Instruction, mode AddressingMode, ok bool) {
	e := v.table[opcode]
	if e == nil {
		return 0, 0, false
	}
	return e.Instruction, e.Mode, true
}

func newVariant(name string, entries map[uint8]Entry) *Variant {
	v := &Variant{name: name}
	for op, e := range entries {
		entry := e
		v.table[op] = &entry
	}
	return v
}

// NMOS is the base NMOS 6502 variant: exactly the 151 documented opcodes.
// Every other byte value decodes as "illegal" (ok == false), which the
// stepper treats as fatal.
var NMOS = newVariant("NMOS", map[uint8]Entry{
	0x69: {ADC, IMM}, 0x65: {ADC, ZPG}, 0x75: {ADC, ZPX}, 0x6D: {ADC, ABS},
	0x7D: {ADC, ABX}, 0x79: {ADC, ABY}, 0x61: {ADC, INX}, 0x71: {ADC, INY},

	0x29: {AND, IMM}, 0x25: {AND, ZPG}, 0x35: {AND, ZPX}, 0x2D: {AND, ABS},
	0x3D: {AND, ABX}, 0x39: {AND, ABY}, 0x21: {AND, INX}, 0x31: {AND, INY},

	0x0A: {ASL, ACC}, 0x06: {ASL, ZPG}, 0x16: {ASL, ZPX}, 0x0E: {ASL, ABS},
	0x1E: {ASL, ABX},

	0x24: {BIT, ZPG}, 0x2C: {BIT, ABS},

	0x10: {BPL, REL}, 0x30: {BMI, REL}, 0x50: {BVC, REL}, 0x70: {BVS, REL},
	0x90: {BCC, REL}, 0xB0: {BCS, REL}, 0xD0: {BNE, REL}, 0xF0: {BEQ, REL},

	0x00: {BRK, IMP},

	0xC9: {CMP, IMM}, 0xC5: {CMP, ZPG}, 0xD5: {CMP, ZPX}, 0xCD: {CMP, ABS},
	0xDD: {CMP, ABX}, 0xD9: {CMP, ABY}, 0xC1: {CMP, INX}, 0xD1: {CMP, INY},

	0xE0: {CPX, IMM}, 0xE4: {CPX, ZPG}, 0xEC: {CPX, ABS},
	0xC0: {CPY, IMM}, 0xC4: {CPY, ZPG}, 0xCC: {CPY, ABS},

	0xC6: {DEC, ZPG}, 0xD6: {DEC, ZPX}, 0xCE: {DEC, ABS}, 0xDE: {DEC, ABX},

	0x49: {EOR, IMM}, 0x45: {EOR, ZPG}, 0x55: {EOR, ZPX}, 0x4D: {EOR, ABS},
	0x5D: {EOR, ABX}, 0x59: {EOR, ABY}, 0x41: {EOR, INX}, 0x51: {EOR, INY},

	0x18: {CLC, IMP}, 0x38: {SEC, IMP}, 0x58: {CLI, IMP}, 0x78: {SEI, IMP},
	0xB8: {CLV, IMP}, 0xD8: {CLD, IMP}, 0xF8: {SED, IMP},

	0xE6: {INC, ZPG}, 0xF6: {INC, ZPX}, 0xEE: {INC, ABS}, 0xFE: {INC, ABX},

	0x4C: {JMP, ABS}, 0x6C: {JMP, IND}, 0x20: {JSR, ABS},

	0xA9: {LDA, IMM}, 0xA5: {LDA, ZPG}, 0xB5: {LDA, ZPX}, 0xAD: {LDA, ABS},
	0xBD: {LDA, ABX}, 0xB9: {LDA, ABY}, 0xA1: {LDA, INX}, 0xB1: {LDA, INY},

	0xA2: {LDX, IMM}, 0xA6: {LDX, ZPG}, 0xB6: {LDX, ZPY}, 0xAE: {LDX, ABS},
	0xBE: {LDX, ABY},

	0xA0: {LDY, IMM}, 0xA4: {LDY, ZPG}, 0xB4: {LDY, ZPX}, 0xAC: {LDY, ABS},
	0xBC: {LDY, ABX},

	0x4A: {LSR, ACC}, 0x46: {LSR, ZPG}, 0x56: {LSR, ZPX}, 0x4E: {LSR, ABS},
	0x5E: {LSR, ABX},

	0xEA: {NOP, IMP},

	0x09: {ORA, IMM}, 0x05: {ORA, ZPG}, 0x15: {ORA, ZPX}, 0x0D: {ORA, ABS},
	0x1D: {ORA, ABX}, 0x19: {ORA, ABY}, 0x01: {ORA, INX}, 0x11: {ORA, INY},

	0xAA: {TAX, IMP}, 0x8A: {TXA, IMP}, 0xCA: {DEX, IMP}, 0xE8: {INX, IMP},
	0xA8: {TAY, IMP}, 0x98: {TYA, IMP}, 0x88: {DEY, IMP}, 0xC8: {INY, IMP},

	0x2A: {ROL, ACC}, 0x26: {ROL, ZPG}, 0x36: {ROL, ZPX}, 0x2E: {ROL, ABS},
	0x3E: {ROL, ABX},

	0x6A: {ROR, ACC}, 0x66: {ROR, ZPG}, 0x76: {ROR, ZPX}, 0x6E: {ROR, ABS},
	0x7E: {ROR, ABX},

	0x40: {RTI, IMP}, 0x60: {RTS, IMP},

	0xE9: {SBC, IMM}, 0xE5: {SBC, ZPG}, 0xF5: {SBC, ZPX}, 0xED: {SBC, ABS},
	0xFD: {SBC, ABX}, 0xF9: {SBC, ABY}, 0xE1: {SBC, INX}, 0xF1: {SBC, INY},

	0x9A: {TXS, IMP}, 0xBA: {TSX, IMP}, 0x48: {PHA, IMP}, 0x68: {PLA, IMP},
	0x08: {PHP, IMP}, 0x28: {PLP, IMP},

	0x85: {STA, ZPG}, 0x95: {STA, ZPX}, 0x8D: {STA, ABS}, 0x9D: {STA, ABX},
	0x99: {STA, ABY}, 0x81: {STA, INX}, 0x91: {STA, INY},

	0x86: {STX, ZPG}, 0x96: {STX, ZPY}, 0x8E: {STX, ABS},
	0x84: {STY, ZPG}, 0x94: {STY, ZPX}, 0x8C: {STY, ABS},
})
