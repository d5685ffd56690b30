// Package cartridge loads a Game Boy ROM image, parses its header, and
// exposes the mapper contract the bus routes ROM/external-RAM accesses
// through.
//
// Only cartridge type 0x00 ("ROM-only") is supported; anything else is
// reported as an unsupported-mapper load error. A richer mapper protocol
// (bank-switch control registers) is future work — see DESIGN.md.
package cartridge

import (
	"fmt"
	"os"
)

const (
	minSize = 32 * 1024
	maxSize = 8 * 1024 * 1024

	headerStart    = 0x0100
	headerChecksum = 0x014D
)

// MapperType identifies the bank-switching scheme selected by the
// cartridge-type header byte.
type MapperType int

const (
	MapperROMOnly MapperType = iota
	MapperUnsupported
)

func mapperTypeOf(cartType byte) MapperType {
	switch cartType {
	case 0x00:
		return MapperROMOnly
	default:
		return MapperUnsupported
	}
}

// Header is the parsed contents of the cartridge header at 0x0100-0x014F.
type Header struct {
	Entry           [4]byte
	Logo            [48]byte
	Title           string
	CGBFlag         byte
	NewLicenseeCode [2]byte
	SGBFlag         byte
	CartridgeType   byte
	ROMSizeCode     byte
	RAMSizeCode     byte
	DestinationCode byte
	OldLicenseeCode byte
	MaskROMVersion  byte
	HeaderChecksum  byte
	GlobalChecksum  uint16
}

// Mapper is the minimal read/write contract the Cpu's bus issues ROM and
// external-RAM accesses through. A richer protocol (bank-switch registers)
// is future work.
type Mapper interface {
	ROMRead(addr uint16) byte
	ROMWrite(addr uint16, val byte)
	RAMRead(addr uint16) byte
	RAMWrite(addr uint16, val byte)
}

// Cartridge owns the raw ROM bytes and the mapper that interprets them.
type Cartridge struct {
	Header Header
	Type   MapperType

	mapper Mapper
}

// Load parses raw ROM bytes into a Cartridge, validating size and header
// checksum, and builds the mapper selected by the cartridge-type byte.
func Load(data []byte) (*Cartridge, error) {
	if !isPowerOfTwoLen(len(data)) || len(data) < minSize || len(data) > maxSize {
		return nil, fmt.Errorf("cartridge: invalid rom size %d bytes (must be a power of two in [%d, %d])", len(data), minSize, maxSize)
	}
	if len(data) < headerChecksum+1 {
		return nil, fmt.Errorf("cartridge: rom too small to contain a header")
	}

	h := parseHeader(data)

	if got, want := headerChecksumOf(data), h.HeaderChecksum; got != want {
		return nil, fmt.Errorf("cartridge: header checksum mismatch: computed 0x%02x, header says 0x%02x", got, want)
	}

	mt := mapperTypeOf(h.CartridgeType)
	if mt == MapperUnsupported {
		return nil, fmt.Errorf("cartridge: unsupported mapper (cartridge type 0x%02x)", h.CartridgeType)
	}

	return &Cartridge{
		Header: h,
		Type:   mt,
		mapper: newROMOnly(data),
	}, nil
}

// LoadFile reads a ROM image from disk and parses it via Load.
func LoadFile(path string) (*Cartridge, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cartridge: %w", err)
	}
	return Load(data)
}

func isPowerOfTwoLen(n int) bool {
	return n > 0 && n&(n-1) == 0
}

func parseHeader(data []byte) Header {
	var h Header
	copy(h.Entry[:], data[headerStart:headerStart+4])
	copy(h.Logo[:], data[0x0104:0x0104+48])

	title := data[0x0134 : 0x0134+16]
	end := len(title)
	for end > 0 && title[end-1] == 0 {
		end--
	}
	h.Title = string(title[:end])

	h.CGBFlag = data[0x0143]
	copy(h.NewLicenseeCode[:], data[0x0144:0x0146])
	h.SGBFlag = data[0x0146]
	h.CartridgeType = data[0x0147]
	h.ROMSizeCode = data[0x0148]
	h.RAMSizeCode = data[0x0149]
	h.DestinationCode = data[0x014A]
	h.OldLicenseeCode = data[0x014B]
	h.MaskROMVersion = data[0x014C]
	h.HeaderChecksum = data[0x014D]
	h.GlobalChecksum = uint16(data[0x014E])<<8 | uint16(data[0x014F])
	return h
}

// headerChecksumOf reproduces the cartridge header checksum:
// x = 0; for i in 0x134..=0x14C: x = x - rom[i] - 1.
func headerChecksumOf(data []byte) byte {
	var x byte
	for i := 0x0134; i <= 0x014C; i++ {
		x = x - data[i] - 1
	}
	return x
}

// ROMRead routes a CPU-visible ROM address ([0x0000, 0x7FFF]) to the mapper.
func (c *Cartridge) ROMRead(addr uint16) byte { return c.mapper.ROMRead(addr) }

// ROMWrite routes a mapper control-register write; ROM-only carts discard it.
func (c *Cartridge) ROMWrite(addr uint16, val byte) { c.mapper.ROMWrite(addr, val) }

// RAMRead routes a CPU-visible external-RAM address ([0xA000, 0xBFFF]).
func (c *Cartridge) RAMRead(addr uint16) byte { return c.mapper.RAMRead(addr) }

// RAMWrite routes an external-RAM write.
func (c *Cartridge) RAMWrite(addr uint16, val byte) { c.mapper.RAMWrite(addr, val) }
