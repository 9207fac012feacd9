package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRAMWrapsAddressing(t *testing.T) {
	r, err := NewRAM(256, nil)
	require.NoError(t, err)

	r.Write(0x00FF, 0x42)
	assert.Equal(t, uint8(0x42), r.Read(0x01FF), "a 256 byte bank should alias every 256 addresses")
	assert.Equal(t, uint8(0x42), r.DatabusVal())
}

func TestRAMInvalidSize(t *testing.T) {
	_, err := NewRAM(100, nil)
	assert.Error(t, err, "100 is not a power of 2")

	_, err = NewRAM(1<<17, nil)
	assert.Error(t, err, "larger than 64K")
}

func TestLatestDatabusVal(t *testing.T) {
	parent, err := NewRAM(16, nil)
	require.NoError(t, err)
	child, err := NewRAM(16, parent)
	require.NoError(t, err)

	parent.Write(0x0, 0xAA)
	child.Write(0x0, 0xBB)

	assert.Equal(t, uint8(0xAA), LatestDatabusVal(child), "should hunt up to the outermost parent")
}

func TestRouterMapsDisjointRegions(t *testing.T) {
	rt := NewRouter()
	ram, err := NewRAM(0x1000, nil)
	require.NoError(t, err)
	rom, err := NewRAM(0x1000, nil)
	require.NoError(t, err)
	rom.Write(0x10, 0x55)

	rt.Map(0x0000, 0x1000, ram)
	rt.Map(0x8000, 0x1000, rom)

	rt.Write(0x0010, 0x99)
	assert.Equal(t, uint8(0x99), rt.Read(0x0010))
	assert.Equal(t, uint8(0x55), rt.Read(0x8010))
	assert.Equal(t, uint8(0xFF), rt.Read(0x4000), "unmapped reads should return the open bus value")
}

func TestRouterOverlapPanics(t *testing.T) {
	rt := NewRouter()
	a, _ := NewRAM(0x100, nil)
	b, _ := NewRAM(0x100, nil)
	rt.Map(0x0000, 0x100, a)

	assert.Panics(t, func() {
		rt.Map(0x0080, 0x100, b)
	})
}

func TestRAMLoad(t *testing.T) {
	r, err := NewRAM(0x100, nil)
	require.NoError(t, err)
	r.Load(0x10, []uint8{1, 2, 3})
	assert.Equal(t, uint8(1), r.Read(0x10))
	assert.Equal(t, uint8(2), r.Read(0x11))
	assert.Equal(t, uint8(3), r.Read(0x12))
}
