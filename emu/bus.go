package emu

// PortDevice is a platform's I/O port decoder. Ports arrive as the full
// 16-bit Z80 address so devices can see the B register on A8-A15.
type PortDevice interface {
	In(port uint16) uint8
	Out(port uint16, val uint8)
}

// Bus adapts a memory Decoder and a PortDevice into the go-chip-z80 Bus
// interface.
type Bus struct {
	mem *Decoder
	io  PortDevice
}

// NewBus creates a Bus over the given memory map and port device.
func NewBus(mem *Decoder, io PortDevice) *Bus {
	return &Bus{mem: mem, io: io}
}

func (b *Bus) Fetch(addr uint16) uint8      { return b.mem.Read(addr) }
func (b *Bus) Read(addr uint16) uint8       { return b.mem.Read(addr) }
func (b *Bus) Write(addr uint16, val uint8) { b.mem.Write(addr, val) }
func (b *Bus) In(port uint16) uint8         { return b.io.In(port) }
func (b *Bus) Out(port uint16, val uint8)   { b.io.Out(port, val) }
