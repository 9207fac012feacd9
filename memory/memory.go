// Package memory provides concrete bus.Bus implementations for composing a
// 6502 family memory map: a flat RAM bank and a Router that maps several
// banks into one 16-bit address space. The cpu package never imports this
// package; it is the reference implementation a host machine furnishes the
// Bus the core depends on.
package memory

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/retrogoat/m6502/bus"
)

// Bank is a bus.Bus with power-on semantics and databus-retention, the way
// real memory-mapped hardware exposes whatever value last crossed the bus
// even on an invalid read. A chain of Banks (via Parent) lets a host query
// the outermost databus value from any point in the map.
type Bank interface {
	bus.Bus
	// PowerOn resets the bank to its power-on state. Implementation
	// specific as to whether that is randomized or all zeros.
	PowerOn()
	// Parent holds a reference (if non-nil) to the next level memory
	// controller, so a chain of these can find the outermost one.
	Parent() Bank
	// DatabusVal returns the last value seen to cross the data bus.
	DatabusVal() uint8
}

// LatestDatabusVal hunts up a chain of Banks until it finds the outermost
// one and returns the DatabusVal from it.
func LatestDatabusVal(b Bank) uint8 {
	if b.Parent() != nil {
		return LatestDatabusVal(b.Parent())
	}
	return b.DatabusVal()
}

// RAM implements Bank over a flat byte slice. Addressing wraps modulo the
// bank size, so a bank smaller than 64K aliases across the 16-bit address
// space the same way real partial address decoding would.
type RAM struct {
	mem        []uint8
	parent     Bank
	databusVal uint8
}

// NewRAM creates a R/W RAM bank of the given size, which must be a power of
// two no larger than 64K. parent may be nil.
func NewRAM(size int, parent Bank) (*RAM, error) {
	if size <= 0 || size&(size-1) != 0 {
		return nil, fmt.Errorf("memory: invalid size %d, must be a power of 2", size)
	}
	if size > 1<<16 {
		return nil, fmt.Errorf("memory: invalid size %d, larger than 64K", size)
	}
	return &RAM{mem: make([]uint8, size), parent: parent}, nil
}

// Read implements bus.Bus.
func (r *RAM) Read(addr uint16) uint8 {
	addr &= uint16(len(r.mem) - 1)
	val := r.mem[addr]
	r.databusVal = val
	return val
}

// Write implements bus.Bus.
func (r *RAM) Write(addr uint16, val uint8) {
	addr &= uint16(len(r.mem) - 1)
	r.databusVal = val
	r.mem[addr] = val
}

// Load copies data into the bank starting at offset, wrapping addresses
// that run past the end of the bank.
func (r *RAM) Load(offset uint16, data []uint8) {
	for i, b := range data {
		r.Write(offset+uint16(i), b)
	}
}

// PowerOn implements Bank by randomizing the contents, matching real SRAM
// power-on behavior (and the indeterminate-memory assumptions §8's tests
// are written to tolerate).
func (r *RAM) PowerOn() {
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i := range r.mem {
		r.mem[i] = uint8(rnd.Intn(256))
	}
}

// Parent implements Bank.
func (r *RAM) Parent() Bank {
	return r.parent
}

// DatabusVal implements Bank.
func (r *RAM) DatabusVal() uint8 {
	return r.databusVal
}

// mapping is one entry in a Router's address space.
type mapping struct {
	base uint16
	size int
	bus  bus.Bus
}

func (m mapping) contains(addr uint16) bool {
	return int(addr) >= int(m.base) && int(addr) < int(m.base)+m.size
}

// Router composes several bus.Bus instances into a single flat 16-bit
// address space, the way a host machine's memory decoder would: RAM, ROM,
// and MMIO banks mapped at disjoint base addresses. The cpu core only ever
// sees the Router, never the banks behind it.
type Router struct {
	mappings []mapping
	openBus  uint8
}

// NewRouter creates an empty Router. Reads to unmapped addresses return
// 0xFF (the conventional open-bus value); writes to unmapped addresses are
// dropped.
func NewRouter() *Router {
	return &Router{openBus: 0xFF}
}

// SetOpenBusValue overrides the value returned for reads to unmapped
// addresses.
func (rt *Router) SetOpenBusValue(v uint8) {
	rt.openBus = v
}

// Map installs b so addresses [base, base+size) route to it. Panics on
// overlap with an existing mapping: that is a configuration error a driver
// should fix, not a runtime condition to recover from.
func (rt *Router) Map(base uint16, size int, b bus.Bus) {
	nm := mapping{base: base, size: size, bus: b}
	for _, m := range rt.mappings {
		if overlaps(m, nm) {
			panic(fmt.Sprintf("memory: mapping [%04X,%04X) overlaps existing [%04X,%04X)",
				nm.base, int(nm.base)+nm.size, m.base, int(m.base)+m.size))
		}
	}
	rt.mappings = append(rt.mappings, nm)
}

func overlaps(a, b mapping) bool {
	aEnd := int(a.base) + a.size
	bEnd := int(b.base) + b.size
	return int(a.base) < bEnd && int(b.base) < aEnd
}

// Read implements bus.Bus, routing to the mapped bank or returning the
// open-bus value.
func (rt *Router) Read(addr uint16) uint8 {
	for _, m := range rt.mappings {
		if m.contains(addr) {
			return m.bus.Read(addr - m.base)
		}
	}
	return rt.openBus
}

// Write implements bus.Bus, routing to the mapped bank or dropping the
// write if nothing is mapped there.
func (rt *Router) Write(addr uint16, val uint8) {
	for _, m := range rt.mappings {
		if m.contains(addr) {
			m.bus.Write(addr-m.base, val)
			return
		}
	}
}
