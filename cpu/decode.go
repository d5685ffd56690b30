package cpu

import "sm83/mask"

// Bit-field accessors for the opcode currently loaded in c.opcode. Field
// positions follow the standard SM83 opcode table: most instruction
// families differ only by which 2 or 3-bit field selects an operand, so a
// single opcode byte plus these accessors replaces the usual 256-entry
// literal table for the families that repeat.

// r8Dst extracts the 3-bit destination register field (bits 5-3).
func (c *Cpu) r8Dst() byte { return mask.Range(c.opcode, mask.I3, mask.I5) }

// r8Src extracts the 3-bit source register field (bits 2-0).
func (c *Cpu) r8Src() byte { return mask.Range(c.opcode, mask.I6, mask.I8) }

// r16Field extracts the 2-bit r16/r16stk/r16mem field (bits 5-4), shared by
// all three operand kinds since they always occupy the same bit position.
func (c *Cpu) r16Field() byte { return mask.Range(c.opcode, mask.I3, mask.I4) }

// condField extracts the 2-bit condition field (bits 4-3) used by
// conditional JR/JP/CALL/RET.
func (c *Cpu) condField() byte { return mask.Range(c.opcode, mask.I4, mask.I5) }

// rstVector returns the target address encoded in an RST opcode (bits 5-3
// times 8).
func (c *Cpu) rstVector() uint16 { return uint16(c.r8Dst()) * 8 }
