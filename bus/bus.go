// Package bus routes the SM83's byte-addressable 16-bit address space to
// the attached devices: cartridge ROM/RAM, work RAM, OAM, IO registers,
// high RAM, and the interrupt-enable register.
//
// The PPU, APU, and peripheral IO registers are not simulated; their
// address ranges are backed by plain byte arrays so programs can still
// read back what they wrote.
package bus

import "sm83/cartridge"

const (
	vramStart = 0x8000
	vramEnd   = 0x9FFF

	ramStart = 0xA000
	ramEnd   = 0xBFFF

	wramStart = 0xC000
	wramEnd   = 0xDFFF

	echoStart = 0xE000
	echoEnd   = 0xFDFF

	oamStart = 0xFE00
	oamEnd   = 0xFE9F

	prohibitedStart = 0xFEA0
	prohibitedEnd   = 0xFEFF

	ioStart = 0xFF00
	ioEnd   = 0xFF7F

	hramStart = 0xFF80
	hramEnd   = 0xFFFE

	ieAddr = 0xFFFF

	// IF, the interrupt-flag register, lives inside the IO block.
	IFAddr = 0xFF0F
)

// Bus is the central dispatch point for all CPU-visible memory accesses.
// The CPU never caches a route: every Read/Write re-dispatches on addr.
type Bus struct {
	Cart *cartridge.Cartridge

	vram [vramEnd - vramStart + 1]byte
	wram [wramEnd - wramStart + 1]byte
	oam  [oamEnd - oamStart + 1]byte
	io   [ioEnd - ioStart + 1]byte
	hram [hramEnd - hramStart + 1]byte
	ie   byte
}

// New constructs a Bus wired to the given cartridge.
func New(cart *cartridge.Cartridge) *Bus {
	return &Bus{Cart: cart}
}

// Read performs a single unconditional byte read, routed by address range.
func (b *Bus) Read(addr uint16) byte {
	switch {
	case addr <= 0x7FFF:
		return b.Cart.ROMRead(addr)
	case addr >= vramStart && addr <= vramEnd:
		return b.vram[addr-vramStart]
	case addr >= ramStart && addr <= ramEnd:
		return b.Cart.RAMRead(addr)
	case addr >= wramStart && addr <= wramEnd:
		return b.wram[addr-wramStart]
	case addr >= echoStart && addr <= echoEnd:
		return b.wram[addr-echoStart]
	case addr >= oamStart && addr <= oamEnd:
		return b.oam[addr-oamStart]
	case addr >= prohibitedStart && addr <= prohibitedEnd:
		return 0xFF
	case addr >= ioStart && addr <= ioEnd:
		return b.io[addr-ioStart]
	case addr >= hramStart && addr <= hramEnd:
		return b.hram[addr-hramStart]
	case addr == ieAddr:
		return b.ie
	default:
		return 0xFF
	}
}

// Write performs a single unconditional byte write, routed the same way as
// Read.
func (b *Bus) Write(addr uint16, val byte) {
	switch {
	case addr <= 0x7FFF:
		b.Cart.ROMWrite(addr, val)
	case addr >= vramStart && addr <= vramEnd:
		b.vram[addr-vramStart] = val
	case addr >= ramStart && addr <= ramEnd:
		b.Cart.RAMWrite(addr, val)
	case addr >= wramStart && addr <= wramEnd:
		b.wram[addr-wramStart] = val
	case addr >= echoStart && addr <= echoEnd:
		b.wram[addr-echoStart] = val
	case addr >= oamStart && addr <= oamEnd:
		b.oam[addr-oamStart] = val
	case addr >= prohibitedStart && addr <= prohibitedEnd:
		// discarded
	case addr >= ioStart && addr <= ioEnd:
		b.io[addr-ioStart] = val
	case addr >= hramStart && addr <= hramEnd:
		b.hram[addr-hramStart] = val
	case addr == ieAddr:
		b.ie = val
	}
}
