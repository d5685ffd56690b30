package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdd8SetsHalfCarryAndCarry(t *testing.T) {
	c := newTestCpu(t, nil)
	r := c.add8(0x0F, 0x01)
	assert.Equal(t, byte(0x10), r)
	assert.True(t, c.FlagH())
	assert.False(t, c.FlagC())

	r = c.add8(0xFF, 0x01)
	assert.Equal(t, byte(0x00), r)
	assert.True(t, c.FlagZ())
	assert.True(t, c.FlagC())
}

func TestSub8SetsBorrowFlags(t *testing.T) {
	c := newTestCpu(t, nil)
	r := c.sub8(0x10, 0x01)
	assert.Equal(t, byte(0x0F), r)
	assert.True(t, c.FlagH())
	assert.False(t, c.FlagC())
	assert.True(t, c.FlagN())

	r = c.sub8(0x00, 0x01)
	assert.Equal(t, byte(0xFF), r)
	assert.True(t, c.FlagC())
}

func TestAnd8AlwaysSetsHalfCarry(t *testing.T) {
	c := newTestCpu(t, nil)
	r := c.and8(0xFF, 0x00)
	assert.Equal(t, byte(0x00), r)
	assert.True(t, c.FlagZ())
	assert.True(t, c.FlagH())
	assert.False(t, c.FlagC())
}

func TestXorOr8ClearFlags(t *testing.T) {
	c := newTestCpu(t, nil)
	c.xor8(0xFF, 0xFF)
	assert.True(t, c.FlagZ())
	assert.False(t, c.FlagH())
	assert.False(t, c.FlagC())

	c.or8(0x00, 0x00)
	assert.True(t, c.FlagZ())
}

func TestAddHL16HalfCarryFromBit11(t *testing.T) {
	c := newTestCpu(t, nil)
	c.HL = 0x0FFF
	c.addHL16(0x0001)
	assert.Equal(t, uint16(0x1000), c.HL)
	assert.True(t, c.FlagH())
	assert.False(t, c.FlagC())
}

func TestAddHL16CarryFromBit15(t *testing.T) {
	c := newTestCpu(t, nil)
	c.HL = 0xFFFF
	c.addHL16(0x0001)
	assert.Equal(t, uint16(0x0000), c.HL)
	assert.True(t, c.FlagC())
}

func TestAddSPSignedNegativeOffset(t *testing.T) {
	// A negative offset is added as its unsigned low byte, so 0xF8+0xF8
	// carries out of both bit 3 and bit 7.
	result, h, cy := addSPSigned(0xFFF8, -8)
	assert.Equal(t, uint16(0xFFF0), result)
	assert.True(t, h)
	assert.True(t, cy)

	result, h, cy = addSPSigned(0x0000, 1)
	assert.Equal(t, uint16(0x0001), result)
	assert.False(t, h)
	assert.False(t, cy)
}

func TestRlcaClearsZRegardlessOfResult(t *testing.T) {
	c := newTestCpu(t, []byte{0x07, 0x00}) // RLCA with A=0
	c.SetA(0x00)
	c.SetFlagZ(true)
	c.Step()
	assert.Equal(t, byte(0x00), c.A())
	assert.False(t, c.FlagZ(), "RLCA always clears Z even when the result is 0")
}

func TestSwapNibbles(t *testing.T) {
	c := newTestCpu(t, nil)
	r := c.swap(0xA5)
	assert.Equal(t, byte(0x5A), r)
}
