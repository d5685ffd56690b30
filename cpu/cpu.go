// Package cpu implements the SM83 8-bit microprocessor, the CPU used in the
// original Game Boy. It is a cycle-accurate instruction interpreter: Step
// advances the core by exactly one M-cycle, issuing at most one bus access,
// and the final M-cycle of every instruction overlaps the prefetch of the
// next opcode.
package cpu

import (
	"sm83/bus"
)

// illegalOpcodes lock up the CPU on real hardware instead of doing
// something well-defined; the core reproduces the lockup rather than
// crashing.
var illegalOpcodes = map[byte]bool{
	0xD3: true, 0xDB: true, 0xDD: true, 0xE3: true, 0xE4: true,
	0xEB: true, 0xEC: true, 0xED: true, 0xF4: true, 0xFC: true, 0xFD: true,
}

// Cpu is a single-threaded, purely synchronous state machine. It owns no
// memory of its own beyond its registers; every byte of program, data, and
// I/O is reached through Bus.
type Cpu struct {
	Bus *bus.Bus

	// Register pairs. Each pair is stored as a single 16-bit value; the
	// high/low halves are exposed through accessor methods (registers.go)
	// rather than an endian-dependent overlapping struct, so the
	// in-memory representation never leaks to callers.
	AF, BC, DE, HL uint16
	PC, SP         uint16

	// Instruction execution state, carried between Step calls.
	opcode byte // the opcode currently being executed
	mCycle int  // zero-based index of the next M-cycle within opcode
	tmp    uint16

	cbOpcode byte // sub-opcode fetched by a 0xCB prefix, valid once mCycle>0

	IME bool // interrupt master enable
	// eiPending counts down the two prefetches that stand between EI and
	// IME actually turning on: EI's own prefetch decrements it to 1, and
	// the following instruction's prefetch decrements it to 0 and sets IME.
	eiPending int
	Halted    bool
	Stopped   bool
	Locked    bool // true after executing an illegal opcode; CPU no-ops forever

	servicingInterrupt bool // true while the 5-cycle dispatch sequence is in flight
	intCycle           int  // cycle index within the dispatch sequence

	// Trace, when set, causes Step to log each instruction boundary to
	// the configured tracer (see Tracer).
	Trace  bool
	Tracer func(c *Cpu)
}

// New constructs a Cpu with all registers zeroed and PC at 0, wired to the
// given bus. This is the "no boot ROM" reset state; construction performs
// the implicit first fetch of the byte at PC=0.
func New(b *bus.Bus) *Cpu {
	c := &Cpu{Bus: b}
	c.primeFetch()
	return c
}

// ResetPostBoot sets the registers to the documented post-boot-ROM state,
// for callers that model a boot ROM having already run.
func (c *Cpu) ResetPostBoot() {
	c.AF = 0x01B0
	c.BC = 0x0013
	c.DE = 0x00D8
	c.HL = 0x014D
	c.SP = 0xFFFE
	c.PC = 0x0100
	c.IME = false
	c.Halted = false
	c.primeFetch()
}

// primeFetch performs the very first opcode fetch, which — unlike every
// later fetch — isn't overlapped with a preceding instruction's last cycle.
func (c *Cpu) primeFetch() {
	c.opcode = c.Bus.Read(c.PC)
	c.PC++
	c.mCycle = 0
}

// Step advances the CPU by exactly one M-cycle: at most one bus access,
// any purely-internal register updates, and on the final cycle of an
// instruction, the overlapped prefetch of the next opcode.
func (c *Cpu) Step() {
	if c.Locked {
		return
	}

	if c.Stopped {
		return
	}

	if c.Halted {
		if !c.pendingInterrupts() {
			return
		}
		c.Halted = false
		if !c.IME {
			// No dispatch follows: just perform the deferred opcode fetch.
			c.prefetch()
			return
		}
	}

	if c.mCycle == 0 && c.IME && c.pendingInterrupts() {
		c.beginInterruptDispatch()
	}

	if c.servicingInterrupt {
		c.stepInterruptDispatch()
		return
	}

	if c.mCycle == 0 && c.Trace && c.Tracer != nil {
		c.Tracer(c)
	}

	c.dispatch()
}

// prefetch reads the next opcode, overlapped with the final M-cycle of the
// instruction that just completed, and applies any EI effect scheduled by
// that instruction.
func (c *Cpu) prefetch() {
	if c.eiPending > 0 {
		c.eiPending--
		if c.eiPending == 0 {
			c.IME = true
		}
	}
	c.opcode = c.Bus.Read(c.PC)
	c.PC++
	c.mCycle = 0
}

// lock puts the CPU into the permanent-no-op state real hardware enters on
// one of the eleven undefined opcodes.
func (c *Cpu) lock() {
	c.Locked = true
}

func (c *Cpu) dispatch() {
	if illegalOpcodes[c.opcode] {
		c.lock()
		return
	}
	if c.opcode == 0xCB {
		c.stepCB()
		return
	}
	c.stepMain()
}
