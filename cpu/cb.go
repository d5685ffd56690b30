package cpu

import "sm83/mask"

// stepCB dispatches the 256 CB-prefixed opcodes: rotate/shift (group 0),
// BIT (group 1), RES (group 2), SET (group 3), each parameterized by a
// 3-bit bit-index/op-select field and a 3-bit r8 operand field. A register
// operand costs one cycle beyond the sub-opcode fetch; [HL] costs two more
// (read, then write-back) except for BIT, which never writes back.
func (c *Cpu) stepCB() {
	if c.mCycle == 0 {
		c.cbOpcode = c.Bus.Read(c.PC)
		c.PC++
		c.mCycle++
		return
	}

	reg := mask.Range(c.cbOpcode, mask.I6, mask.I8)
	group := mask.Range(c.cbOpcode, mask.I1, mask.I2)
	bitIdx := mask.Range(c.cbOpcode, mask.I3, mask.I5)

	if reg != 6 {
		v := c.getR8Direct(reg)
		result, writeBack := c.cbApply(group, bitIdx, v)
		if writeBack {
			c.setR8Direct(reg, result)
		}
		c.prefetch()
		return
	}

	if group == 1 { // BIT b,[HL]: no write-back
		switch c.mCycle {
		case 1:
			v := c.Bus.Read(c.HL)
			c.cbApply(group, bitIdx, v)
			c.mCycle++
		case 2:
			c.prefetch()
		}
		return
	}

	switch c.mCycle {
	case 1:
		c.tmp = uint16(c.Bus.Read(c.HL))
		c.mCycle++
	case 2:
		result, _ := c.cbApply(group, bitIdx, byte(c.tmp))
		c.Bus.Write(c.HL, result)
		c.mCycle++
	case 3:
		c.prefetch()
	}
}

// cbApply performs one CB-family operation, returning the new value and
// whether it should be written back to its operand (false for BIT).
func (c *Cpu) cbApply(group, bitIdx, v byte) (byte, bool) {
	switch group {
	case 0:
		return c.cbRotateShift(bitIdx, v), true
	case 1:
		c.SetFlagZ(v&(1<<bitIdx) == 0)
		c.SetFlagN(false)
		c.SetFlagH(true)
		return v, false
	case 2:
		return v &^ (1 << bitIdx), true
	case 3:
		return v | (1 << bitIdx), true
	}
	panic("cpu: cbApply: bad group")
}

func (c *Cpu) cbRotateShift(op, v byte) byte {
	switch op {
	case 0:
		return c.rlc(v)
	case 1:
		return c.rrc(v)
	case 2:
		return c.rl(v)
	case 3:
		return c.rr(v)
	case 4:
		return c.sla(v)
	case 5:
		return c.sra(v)
	case 6:
		return c.swap(v)
	case 7:
		return c.srl(v)
	}
	panic("cpu: cbRotateShift: bad op")
}
