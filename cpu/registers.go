package cpu

// Flag bits within F, the low byte of AF. The low nibble of F always reads
// as zero: F masks it off on read, and SetF and setR16Stk (POP AF) mask it
// off on write.
const (
	flagZ byte = 1 << 7
	flagN byte = 1 << 6
	flagH byte = 1 << 5
	flagC byte = 1 << 4
)

func (c *Cpu) A() byte { return byte(c.AF >> 8) }
func (c *Cpu) F() byte { return byte(c.AF) & 0xF0 }
func (c *Cpu) B() byte { return byte(c.BC >> 8) }
func (c *Cpu) C() byte { return byte(c.BC) }
func (c *Cpu) D() byte { return byte(c.DE >> 8) }
func (c *Cpu) E() byte { return byte(c.DE) }
func (c *Cpu) H() byte { return byte(c.HL >> 8) }
func (c *Cpu) L() byte { return byte(c.HL) }

func (c *Cpu) SetA(v byte) { c.AF = uint16(v)<<8 | c.AF&0x00FF }
func (c *Cpu) SetF(v byte) { c.AF = c.AF&0xFF00 | uint16(v&0xF0) }
func (c *Cpu) SetB(v byte) { c.BC = uint16(v)<<8 | c.BC&0x00FF }
func (c *Cpu) SetC(v byte) { c.BC = c.BC&0xFF00 | uint16(v) }
func (c *Cpu) SetD(v byte) { c.DE = uint16(v)<<8 | c.DE&0x00FF }
func (c *Cpu) SetE(v byte) { c.DE = c.DE&0xFF00 | uint16(v) }
func (c *Cpu) SetH(v byte) { c.HL = uint16(v)<<8 | c.HL&0x00FF }
func (c *Cpu) SetL(v byte) { c.HL = c.HL&0xFF00 | uint16(v) }

func (c *Cpu) FlagZ() bool { return c.AF&uint16(flagZ) != 0 }
func (c *Cpu) FlagN() bool { return c.AF&uint16(flagN) != 0 }
func (c *Cpu) FlagH() bool { return c.AF&uint16(flagH) != 0 }
func (c *Cpu) FlagC() bool { return c.AF&uint16(flagC) != 0 }

func (c *Cpu) SetFlagZ(v bool) { c.setFlagBit(flagZ, v) }
func (c *Cpu) SetFlagN(v bool) { c.setFlagBit(flagN, v) }
func (c *Cpu) SetFlagH(v bool) { c.setFlagBit(flagH, v) }
func (c *Cpu) SetFlagC(v bool) { c.setFlagBit(flagC, v) }

func (c *Cpu) setFlagBit(bit byte, v bool) {
	f := c.F()
	if v {
		f |= bit
	} else {
		f &^= bit
	}
	c.SetF(f)
}

// getR8Direct reads one of the six plain 8-bit registers plus A, addressed
// by the standard SM83 r8 index (0=B 1=C 2=D 3=E 4=H 5=L 7=A). Index 6
// names [HL], which needs a bus access and is handled by callers.
func (c *Cpu) getR8Direct(idx byte) byte {
	switch idx {
	case 0:
		return c.B()
	case 1:
		return c.C()
	case 2:
		return c.D()
	case 3:
		return c.E()
	case 4:
		return c.H()
	case 5:
		return c.L()
	case 7:
		return c.A()
	}
	panic("cpu: getR8Direct called with idx 6 ([HL])")
}

func (c *Cpu) setR8Direct(idx byte, v byte) {
	switch idx {
	case 0:
		c.SetB(v)
	case 1:
		c.SetC(v)
	case 2:
		c.SetD(v)
	case 3:
		c.SetE(v)
	case 4:
		c.SetH(v)
	case 5:
		c.SetL(v)
	case 7:
		c.SetA(v)
	default:
		panic("cpu: setR8Direct called with idx 6 ([HL])")
	}
}

// getR16/setR16 address the four r16 pairs (BC, DE, HL, SP) used by 16-bit
// loads, INC/DEC r16, and ADD HL,r16.
func (c *Cpu) getR16(idx byte) uint16 {
	switch idx {
	case 0:
		return c.BC
	case 1:
		return c.DE
	case 2:
		return c.HL
	case 3:
		return c.SP
	}
	panic("cpu: getR16 out of range")
}

func (c *Cpu) setR16(idx byte, v uint16) {
	switch idx {
	case 0:
		c.BC = v
	case 1:
		c.DE = v
	case 2:
		c.HL = v
	case 3:
		c.SP = v
	default:
		panic("cpu: setR16 out of range")
	}
}

// getR16Stk/setR16Stk address the four r16stk pairs (BC, DE, HL, AF) used
// by PUSH/POP. POP AF forces F's low nibble back to zero.
func (c *Cpu) getR16Stk(idx byte) uint16 {
	switch idx {
	case 0:
		return c.BC
	case 1:
		return c.DE
	case 2:
		return c.HL
	case 3:
		return c.AF
	}
	panic("cpu: getR16Stk out of range")
}

func (c *Cpu) setR16Stk(idx byte, v uint16) {
	switch idx {
	case 0:
		c.BC = v
	case 1:
		c.DE = v
	case 2:
		c.HL = v
	case 3:
		c.AF = v & 0xFFF0
	default:
		panic("cpu: setR16Stk out of range")
	}
}

// r16memAddr resolves one of the four r16mem operands (BC, DE, HL+, HL-),
// applying HL's post-increment/-decrement as the address is taken.
func (c *Cpu) r16memAddr(idx byte) uint16 {
	switch idx {
	case 0:
		return c.BC
	case 1:
		return c.DE
	case 2:
		addr := c.HL
		c.HL++
		return addr
	case 3:
		addr := c.HL
		c.HL--
		return addr
	}
	panic("cpu: r16memAddr out of range")
}

// condTrue evaluates one of the four branch conditions (NZ, Z, NC, C).
func (c *Cpu) condTrue(idx byte) bool {
	switch idx {
	case 0:
		return !c.FlagZ()
	case 1:
		return c.FlagZ()
	case 2:
		return !c.FlagC()
	case 3:
		return c.FlagC()
	}
	panic("cpu: condTrue out of range")
}
