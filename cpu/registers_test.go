package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestR16memPostIncrementDecrement(t *testing.T) {
	c := newTestCpu(t, nil)
	c.HL = 0x8000

	addr := c.r16memAddr(2) // HL+
	assert.Equal(t, uint16(0x8000), addr)
	assert.Equal(t, uint16(0x8001), c.HL)

	addr = c.r16memAddr(3) // HL-
	assert.Equal(t, uint16(0x8001), addr)
	assert.Equal(t, uint16(0x8000), c.HL)
}

func TestCondTrue(t *testing.T) {
	c := newTestCpu(t, nil)
	c.SetFlagZ(false)
	c.SetFlagC(true)

	assert.True(t, c.condTrue(0), "NZ")
	assert.False(t, c.condTrue(1), "Z")
	assert.False(t, c.condTrue(2), "NC")
	assert.True(t, c.condTrue(3), "C")
}

func TestR8DirectRoundTrip(t *testing.T) {
	c := newTestCpu(t, nil)
	for idx := byte(0); idx < 8; idx++ {
		if idx == 6 {
			continue
		}
		c.setR8Direct(idx, 0xAB)
		assert.Equal(t, byte(0xAB), c.getR8Direct(idx))
	}
}

func TestSetR16StkAFMasksLowNibble(t *testing.T) {
	c := newTestCpu(t, nil)
	c.setR16Stk(3, 0xABCF)
	assert.Equal(t, uint16(0xABC0), c.AF)
}
