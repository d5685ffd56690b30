package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestR8DstAndSrcFields(t *testing.T) {
	c := newTestCpu(t, nil)
	c.opcode = 0x7E // LD A,(HL): dst=A(7), src=(HL)(6)
	assert.Equal(t, byte(7), c.r8Dst())
	assert.Equal(t, byte(6), c.r8Src())
}

func TestR16FieldSharedAcrossOperandKinds(t *testing.T) {
	c := newTestCpu(t, nil)
	c.opcode = 0x21 // LD HL,imm16
	assert.Equal(t, byte(2), c.r16Field())

	c.opcode = 0xE5 // PUSH HL
	assert.Equal(t, byte(2), c.r16Field())
}

func TestCondField(t *testing.T) {
	c := newTestCpu(t, nil)
	cases := map[byte]byte{0x20: 0, 0x28: 1, 0x30: 2, 0x38: 3}
	for op, want := range cases {
		c.opcode = op
		assert.Equal(t, want, c.condField())
	}
}

func TestRstVector(t *testing.T) {
	c := newTestCpu(t, nil)
	c.opcode = 0xEF // RST 28h
	assert.Equal(t, uint16(0x28), c.rstVector())
}
