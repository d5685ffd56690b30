package bus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sm83/cartridge"
)

func newTestBus(t *testing.T) *Bus {
	t.Helper()
	data := make([]byte, 32*1024)
	data[0x0147] = 0x00
	var x byte
	for i := 0x0134; i <= 0x014C; i++ {
		x = x - data[i] - 1
	}
	data[0x014D] = x

	cart, err := cartridge.Load(data)
	require.NoError(t, err)
	return New(cart)
}

func TestRomRoutedToCartridge(t *testing.T) {
	b := newTestBus(t)
	b.Cart.ROMRead(0x0000) // sanity: doesn't panic
	assert.Equal(t, b.Read(0x0000), b.Cart.ROMRead(0x0000))
}

func TestWramReadWrite(t *testing.T) {
	b := newTestBus(t)
	b.Write(0xC000, 0x42)
	assert.Equal(t, byte(0x42), b.Read(0xC000))
	b.Write(0xDFFF, 0x24)
	assert.Equal(t, byte(0x24), b.Read(0xDFFF))
}

func TestEchoMirrorsWram(t *testing.T) {
	b := newTestBus(t)
	b.Write(0xC010, 0x99)
	assert.Equal(t, byte(0x99), b.Read(0xE010))

	b.Write(0xE020, 0x55)
	assert.Equal(t, byte(0x55), b.Read(0xC020))
}

func TestProhibitedRegion(t *testing.T) {
	b := newTestBus(t)
	assert.Equal(t, byte(0xFF), b.Read(0xFEA0))
	b.Write(0xFEA0, 0x11)
	assert.Equal(t, byte(0xFF), b.Read(0xFEA0))
}

func TestHighRamAndInterruptEnable(t *testing.T) {
	b := newTestBus(t)
	b.Write(0xFF80, 0x01)
	assert.Equal(t, byte(0x01), b.Read(0xFF80))
	b.Write(0xFFFE, 0x02)
	assert.Equal(t, byte(0x02), b.Read(0xFFFE))

	b.Write(0xFFFF, 0x1F)
	assert.Equal(t, byte(0x1F), b.Read(0xFFFF))
}

func TestIOBlockIncludesIF(t *testing.T) {
	b := newTestBus(t)
	b.Write(IFAddr, 0x05)
	assert.Equal(t, byte(0x05), b.Read(IFAddr))
}

func TestOamReadWrite(t *testing.T) {
	b := newTestBus(t)
	b.Write(0xFE00, 0x7F)
	assert.Equal(t, byte(0x7F), b.Read(0xFE00))
}
