package cpu

import "sm83/mask"

// stepMain dispatches every non-CB opcode. Each instruction family below
// runs its own c.mCycle-indexed state machine and calls c.prefetch() on its
// final cycle, overlapping the next opcode's fetch the way real SM83
// hardware does.
//
// Routing uses bitmasks rather than a 256-entry literal switch: most
// instruction families repeat across 4 or 8 opcodes that differ only in
// which operand field they select, so the dispatch masks out exactly that
// field and compares against the family's base opcode.
func (c *Cpu) stepMain() {
	op := c.opcode
	switch {
	case op == 0x00:
		c.iNop()
	case op == 0x10:
		c.iStop()
	case op == 0x76:
		c.iHalt()
	case op == 0x08:
		c.iLdImm16Sp()
	case op == 0x18:
		c.iJrImm8()
	case op&0xE7 == 0x20:
		c.iJrCond()
	case op&0xCF == 0x01:
		c.iLdR16Imm16()
	case op&0xCF == 0x03:
		c.iIncR16()
	case op&0xCF == 0x0B:
		c.iDecR16()
	case op&0xCF == 0x09:
		c.iAddHLR16()
	case op&0xC7 == 0x02:
		c.iLdR16memA()
	case op&0xC7 == 0x04:
		c.iIncR8()
	case op&0xC7 == 0x05:
		c.iDecR8()
	case op&0xC7 == 0x06:
		c.iLdR8Imm8()
	case op&0xC7 == 0x07:
		c.iRotAccOrMisc()
	case op&0xC0 == 0x40:
		c.iLdR8R8()
	case op&0xC0 == 0x80:
		c.iAluR8()
	case op == 0xC9:
		c.iRet()
	case op == 0xD9:
		c.iReti()
	case op&0xE7 == 0xC0:
		c.iRetCond()
	case op == 0xC3:
		c.iJpImm16()
	case op == 0xE9:
		c.iJpHL()
	case op&0xE7 == 0xC2:
		c.iJpCond()
	case op == 0xCD:
		c.iCallImm16()
	case op&0xE7 == 0xC4:
		c.iCallCond()
	case op&0xCF == 0xC1:
		c.iPopR16stk()
	case op&0xCF == 0xC5:
		c.iPushR16stk()
	case op&0xC7 == 0xC7:
		c.iRst()
	case op&0xC7 == 0xC6:
		c.iAluImm8()
	case op == 0xE0:
		c.iLdhImm8A()
	case op == 0xF0:
		c.iLdhAImm8()
	case op == 0xE2:
		c.iLdhCA()
	case op == 0xF2:
		c.iLdhAC()
	case op == 0xEA:
		c.iLdImm16A()
	case op == 0xFA:
		c.iLdAImm16()
	case op == 0xE8:
		c.iAddSpImm8()
	case op == 0xF8:
		c.iLdHLSpImm8()
	case op == 0xF9:
		c.iLdSpHL()
	case op == 0xF3:
		c.iDi()
	case op == 0xFB:
		c.iEi()
	default:
		c.lock()
	}
}

func (c *Cpu) iNop() { c.prefetch() }

func (c *Cpu) iStop() {
	c.Bus.Read(c.PC) // the mandatory padding byte, discarded
	c.PC++
	c.Stopped = true
}

// Resume wakes the CPU from STOP (normally triggered by a joypad edge) and
// performs the deferred opcode fetch.
func (c *Cpu) Resume() {
	c.Stopped = false
	c.prefetch()
}

func (c *Cpu) iHalt() {
	if !c.IME && c.pendingInterrupts() {
		c.haltBugFetch()
		return
	}
	c.Halted = true
}

// haltBugFetch reproduces the HALT bug: the opcode after HALT is read
// without advancing PC, so the following Step re-reads and executes the
// same byte a second time.
func (c *Cpu) haltBugFetch() {
	if c.eiPending > 0 {
		c.eiPending--
		if c.eiPending == 0 {
			c.IME = true
		}
	}
	c.opcode = c.Bus.Read(c.PC)
	c.mCycle = 0
}

func (c *Cpu) iJrImm8() {
	switch c.mCycle {
	case 0:
		c.tmp = uint16(c.Bus.Read(c.PC))
		c.PC++
		c.mCycle++
	case 1:
		c.PC = uint16(int32(c.PC) + int32(int8(c.tmp)))
		c.mCycle++
	case 2:
		c.prefetch()
	}
}

func (c *Cpu) iJrCond() {
	switch c.mCycle {
	case 0:
		c.tmp = uint16(c.Bus.Read(c.PC))
		c.PC++
		if !c.condTrue(c.condField()) {
			c.mCycle = 2 // not taken: skip straight to the prefetch cycle
		} else {
			c.mCycle++
		}
	case 1:
		c.PC = uint16(int32(c.PC) + int32(int8(c.tmp)))
		c.mCycle++
	case 2:
		c.prefetch()
	}
}

func (c *Cpu) iLdR16Imm16() {
	field := c.r16Field()
	switch c.mCycle {
	case 0:
		c.tmp = uint16(c.Bus.Read(c.PC))
		c.PC++
		c.mCycle++
	case 1:
		c.tmp = mask.Word(c.Bus.Read(c.PC), byte(c.tmp))
		c.PC++
		c.mCycle++
	case 2:
		c.setR16(field, c.tmp)
		c.prefetch()
	}
}

func (c *Cpu) iIncR16() {
	field := c.r16Field()
	switch c.mCycle {
	case 0:
		c.setR16(field, c.getR16(field)+1)
		c.mCycle++
	case 1:
		c.prefetch()
	}
}

func (c *Cpu) iDecR16() {
	field := c.r16Field()
	switch c.mCycle {
	case 0:
		c.setR16(field, c.getR16(field)-1)
		c.mCycle++
	case 1:
		c.prefetch()
	}
}

func (c *Cpu) iAddHLR16() {
	field := c.r16Field()
	switch c.mCycle {
	case 0:
		c.addHL16(c.getR16(field))
		c.mCycle++
	case 1:
		c.prefetch()
	}
}

// iLdR16memA covers both LD [r16mem],A and LD A,[r16mem]; bit 3 of the
// opcode (zeroed out of the dispatch mask) selects the direction.
func (c *Cpu) iLdR16memA() {
	field := c.r16Field()
	load := c.opcode&0x08 != 0
	switch c.mCycle {
	case 0:
		addr := c.r16memAddr(field)
		if load {
			c.tmp = uint16(c.Bus.Read(addr))
		} else {
			c.Bus.Write(addr, c.A())
		}
		c.mCycle++
	case 1:
		if load {
			c.SetA(byte(c.tmp))
		}
		c.prefetch()
	}
}

func (c *Cpu) iIncR8() {
	dst := c.r8Dst()
	if dst != 6 {
		c.setR8Direct(dst, c.inc8(c.getR8Direct(dst)))
		c.prefetch()
		return
	}
	switch c.mCycle {
	case 0:
		c.tmp = uint16(c.Bus.Read(c.HL))
		c.mCycle++
	case 1:
		c.Bus.Write(c.HL, c.inc8(byte(c.tmp)))
		c.mCycle++
	case 2:
		c.prefetch()
	}
}

func (c *Cpu) iDecR8() {
	dst := c.r8Dst()
	if dst != 6 {
		c.setR8Direct(dst, c.dec8(c.getR8Direct(dst)))
		c.prefetch()
		return
	}
	switch c.mCycle {
	case 0:
		c.tmp = uint16(c.Bus.Read(c.HL))
		c.mCycle++
	case 1:
		c.Bus.Write(c.HL, c.dec8(byte(c.tmp)))
		c.mCycle++
	case 2:
		c.prefetch()
	}
}

func (c *Cpu) iLdR8Imm8() {
	dst := c.r8Dst()
	switch c.mCycle {
	case 0:
		c.tmp = uint16(c.Bus.Read(c.PC))
		c.PC++
		if dst != 6 {
			c.setR8Direct(dst, byte(c.tmp))
		}
		c.mCycle++
	case 1:
		if dst == 6 {
			c.Bus.Write(c.HL, byte(c.tmp))
			c.mCycle++
		} else {
			c.prefetch()
		}
	case 2:
		c.prefetch()
	}
}

// iRotAccOrMisc dispatches RLCA/RRCA/RLA/RRA/DAA/CPL/SCF/CCF, selected by
// the same 3-bit field that normally picks an r8 destination.
func (c *Cpu) iRotAccOrMisc() {
	switch c.r8Dst() {
	case 0:
		c.SetA(c.rlc(c.A()))
		c.SetFlagZ(false)
	case 1:
		c.SetA(c.rrc(c.A()))
		c.SetFlagZ(false)
	case 2:
		c.SetA(c.rl(c.A()))
		c.SetFlagZ(false)
	case 3:
		c.SetA(c.rr(c.A()))
		c.SetFlagZ(false)
	case 4:
		c.daa()
	case 5:
		c.SetA(c.A() ^ 0xFF)
		c.SetFlagN(true)
		c.SetFlagH(true)
	case 6:
		c.SetFlagN(false)
		c.SetFlagH(false)
		c.SetFlagC(true)
	case 7:
		c.SetFlagN(false)
		c.SetFlagH(false)
		c.SetFlagC(!c.FlagC())
	}
	c.prefetch()
}

func (c *Cpu) iLdR8R8() {
	dst, src := c.r8Dst(), c.r8Src()
	switch {
	case dst == 6:
		switch c.mCycle {
		case 0:
			c.Bus.Write(c.HL, c.getR8Direct(src))
			c.mCycle++
		case 1:
			c.prefetch()
		}
	case src == 6:
		switch c.mCycle {
		case 0:
			c.tmp = uint16(c.Bus.Read(c.HL))
			c.mCycle++
		case 1:
			c.setR8Direct(dst, byte(c.tmp))
			c.prefetch()
		}
	default:
		c.setR8Direct(dst, c.getR8Direct(src))
		c.prefetch()
	}
}

func (c *Cpu) iAluR8() {
	op, src := c.r8Dst(), c.r8Src()
	if src != 6 {
		c.aluApply(op, c.getR8Direct(src))
		c.prefetch()
		return
	}
	switch c.mCycle {
	case 0:
		c.tmp = uint16(c.Bus.Read(c.HL))
		c.mCycle++
	case 1:
		c.aluApply(op, byte(c.tmp))
		c.prefetch()
	}
}

func (c *Cpu) iAluImm8() {
	op := c.r8Dst()
	switch c.mCycle {
	case 0:
		c.tmp = uint16(c.Bus.Read(c.PC))
		c.PC++
		c.aluApply(op, byte(c.tmp))
		c.mCycle++
	case 1:
		c.prefetch()
	}
}

func (c *Cpu) aluApply(op, v byte) {
	a := c.A()
	switch op {
	case 0:
		c.SetA(c.add8(a, v))
	case 1:
		c.SetA(c.adc8(a, v))
	case 2:
		c.SetA(c.sub8(a, v))
	case 3:
		c.SetA(c.sbc8(a, v))
	case 4:
		c.SetA(c.and8(a, v))
	case 5:
		c.SetA(c.xor8(a, v))
	case 6:
		c.SetA(c.or8(a, v))
	case 7:
		c.cp8(a, v)
	}
}

func (c *Cpu) iRet() {
	switch c.mCycle {
	case 0:
		c.tmp = uint16(c.Bus.Read(c.SP))
		c.SP++
		c.mCycle++
	case 1:
		c.tmp = mask.Word(c.Bus.Read(c.SP), byte(c.tmp))
		c.SP++
		c.mCycle++
	case 2:
		c.PC = c.tmp
		c.mCycle++
	case 3:
		c.prefetch()
	}
}

func (c *Cpu) iReti() {
	switch c.mCycle {
	case 0:
		c.tmp = uint16(c.Bus.Read(c.SP))
		c.SP++
		c.mCycle++
	case 1:
		c.tmp = mask.Word(c.Bus.Read(c.SP), byte(c.tmp))
		c.SP++
		c.mCycle++
	case 2:
		c.PC = c.tmp
		c.IME = true
		c.mCycle++
	case 3:
		c.prefetch()
	}
}

func (c *Cpu) iRetCond() {
	switch c.mCycle {
	case 0:
		if !c.condTrue(c.condField()) {
			c.mCycle = 4 // not taken: 2 cycles total, land on the prefetch case
		} else {
			c.mCycle++
		}
	case 1:
		c.tmp = uint16(c.Bus.Read(c.SP))
		c.SP++
		c.mCycle++
	case 2:
		c.tmp = mask.Word(c.Bus.Read(c.SP), byte(c.tmp))
		c.SP++
		c.mCycle++
	case 3:
		c.PC = c.tmp
		c.mCycle++
	case 4:
		c.prefetch()
	}
}

func (c *Cpu) iJpImm16() {
	switch c.mCycle {
	case 0:
		c.tmp = uint16(c.Bus.Read(c.PC))
		c.PC++
		c.mCycle++
	case 1:
		c.tmp = mask.Word(c.Bus.Read(c.PC), byte(c.tmp))
		c.PC++
		c.mCycle++
	case 2:
		c.PC = c.tmp
		c.mCycle++
	case 3:
		c.prefetch()
	}
}

func (c *Cpu) iJpHL() {
	c.PC = c.HL
	c.prefetch()
}

func (c *Cpu) iJpCond() {
	switch c.mCycle {
	case 0:
		c.tmp = uint16(c.Bus.Read(c.PC))
		c.PC++
		c.mCycle++
	case 1:
		c.tmp = mask.Word(c.Bus.Read(c.PC), byte(c.tmp))
		c.PC++
		if !c.condTrue(c.condField()) {
			c.mCycle = 3 // not taken: 3 cycles total
		} else {
			c.mCycle++
		}
	case 2:
		c.PC = c.tmp
		c.mCycle++
	case 3:
		c.prefetch()
	}
}

func (c *Cpu) iCallImm16() {
	switch c.mCycle {
	case 0:
		c.tmp = uint16(c.Bus.Read(c.PC))
		c.PC++
		c.mCycle++
	case 1:
		c.tmp = mask.Word(c.Bus.Read(c.PC), byte(c.tmp))
		c.PC++
		c.mCycle++
	case 2:
		c.mCycle++ // internal delay
	case 3:
		c.SP--
		c.Bus.Write(c.SP, byte(c.PC>>8))
		c.mCycle++
	case 4:
		c.SP--
		c.Bus.Write(c.SP, byte(c.PC))
		c.PC = c.tmp
		c.mCycle++
	case 5:
		c.prefetch()
	}
}

func (c *Cpu) iCallCond() {
	switch c.mCycle {
	case 0:
		c.tmp = uint16(c.Bus.Read(c.PC))
		c.PC++
		c.mCycle++
	case 1:
		c.tmp = mask.Word(c.Bus.Read(c.PC), byte(c.tmp))
		c.PC++
		if !c.condTrue(c.condField()) {
			c.mCycle = 5 // not taken: 3 cycles total
		} else {
			c.mCycle++
		}
	case 2:
		c.mCycle++ // internal delay
	case 3:
		c.SP--
		c.Bus.Write(c.SP, byte(c.PC>>8))
		c.mCycle++
	case 4:
		c.SP--
		c.Bus.Write(c.SP, byte(c.PC))
		c.PC = c.tmp
		c.mCycle++
	case 5:
		c.prefetch()
	}
}

func (c *Cpu) iPopR16stk() {
	field := c.r16Field()
	switch c.mCycle {
	case 0:
		c.tmp = uint16(c.Bus.Read(c.SP))
		c.SP++
		c.mCycle++
	case 1:
		c.tmp = mask.Word(c.Bus.Read(c.SP), byte(c.tmp))
		c.SP++
		c.setR16Stk(field, c.tmp)
		c.mCycle++
	case 2:
		c.prefetch()
	}
}

func (c *Cpu) iPushR16stk() {
	field := c.r16Field()
	switch c.mCycle {
	case 0:
		c.mCycle++ // internal delay
	case 1:
		v := c.getR16Stk(field)
		c.SP--
		c.Bus.Write(c.SP, byte(v>>8))
		c.mCycle++
	case 2:
		v := c.getR16Stk(field)
		c.SP--
		c.Bus.Write(c.SP, byte(v))
		c.mCycle++
	case 3:
		c.prefetch()
	}
}

func (c *Cpu) iRst() {
	target := c.rstVector()
	switch c.mCycle {
	case 0:
		c.mCycle++ // internal delay
	case 1:
		c.SP--
		c.Bus.Write(c.SP, byte(c.PC>>8))
		c.mCycle++
	case 2:
		c.SP--
		c.Bus.Write(c.SP, byte(c.PC))
		c.PC = target
		c.mCycle++
	case 3:
		c.prefetch()
	}
}

func (c *Cpu) iLdhImm8A() {
	switch c.mCycle {
	case 0:
		c.tmp = uint16(c.Bus.Read(c.PC))
		c.PC++
		c.mCycle++
	case 1:
		c.Bus.Write(0xFF00|c.tmp, c.A())
		c.mCycle++
	case 2:
		c.prefetch()
	}
}

func (c *Cpu) iLdhAImm8() {
	switch c.mCycle {
	case 0:
		c.tmp = uint16(c.Bus.Read(c.PC))
		c.PC++
		c.mCycle++
	case 1:
		c.tmp = uint16(c.Bus.Read(0xFF00 | c.tmp))
		c.mCycle++
	case 2:
		c.SetA(byte(c.tmp))
		c.prefetch()
	}
}

func (c *Cpu) iLdhCA() {
	switch c.mCycle {
	case 0:
		c.Bus.Write(0xFF00|uint16(c.C()), c.A())
		c.mCycle++
	case 1:
		c.prefetch()
	}
}

func (c *Cpu) iLdhAC() {
	switch c.mCycle {
	case 0:
		c.tmp = uint16(c.Bus.Read(0xFF00 | uint16(c.C())))
		c.mCycle++
	case 1:
		c.SetA(byte(c.tmp))
		c.prefetch()
	}
}

func (c *Cpu) iLdImm16A() {
	switch c.mCycle {
	case 0:
		c.tmp = uint16(c.Bus.Read(c.PC))
		c.PC++
		c.mCycle++
	case 1:
		c.tmp = mask.Word(c.Bus.Read(c.PC), byte(c.tmp))
		c.PC++
		c.mCycle++
	case 2:
		c.Bus.Write(c.tmp, c.A())
		c.mCycle++
	case 3:
		c.prefetch()
	}
}

func (c *Cpu) iLdAImm16() {
	switch c.mCycle {
	case 0:
		c.tmp = uint16(c.Bus.Read(c.PC))
		c.PC++
		c.mCycle++
	case 1:
		c.tmp = mask.Word(c.Bus.Read(c.PC), byte(c.tmp))
		c.PC++
		c.mCycle++
	case 2:
		c.tmp = uint16(c.Bus.Read(c.tmp))
		c.mCycle++
	case 3:
		c.SetA(byte(c.tmp))
		c.prefetch()
	}
}

func (c *Cpu) iLdImm16Sp() {
	switch c.mCycle {
	case 0:
		c.tmp = uint16(c.Bus.Read(c.PC))
		c.PC++
		c.mCycle++
	case 1:
		c.tmp = mask.Word(c.Bus.Read(c.PC), byte(c.tmp))
		c.PC++
		c.mCycle++
	case 2:
		c.Bus.Write(c.tmp, byte(c.SP))
		c.mCycle++
	case 3:
		c.Bus.Write(c.tmp+1, byte(c.SP>>8))
		c.mCycle++
	case 4:
		c.prefetch()
	}
}

func (c *Cpu) iAddSpImm8() {
	switch c.mCycle {
	case 0:
		c.tmp = uint16(c.Bus.Read(c.PC))
		c.PC++
		c.mCycle++
	case 1:
		result, h, cy := addSPSigned(c.SP, int8(c.tmp))
		c.SP = result
		c.SetFlagZ(false)
		c.SetFlagN(false)
		c.SetFlagH(h)
		c.SetFlagC(cy)
		c.mCycle++
	case 2:
		c.mCycle++ // internal delay
	case 3:
		c.prefetch()
	}
}

func (c *Cpu) iLdHLSpImm8() {
	switch c.mCycle {
	case 0:
		c.tmp = uint16(c.Bus.Read(c.PC))
		c.PC++
		c.mCycle++
	case 1:
		result, h, cy := addSPSigned(c.SP, int8(c.tmp))
		c.HL = result
		c.SetFlagZ(false)
		c.SetFlagN(false)
		c.SetFlagH(h)
		c.SetFlagC(cy)
		c.mCycle++
	case 2:
		c.prefetch()
	}
}

func (c *Cpu) iLdSpHL() {
	switch c.mCycle {
	case 0:
		c.SP = c.HL
		c.mCycle++
	case 1:
		c.prefetch()
	}
}

func (c *Cpu) iDi() {
	c.IME = false
	c.eiPending = 0
	c.prefetch()
}

func (c *Cpu) iEi() {
	c.eiPending = 2
	c.prefetch()
}
