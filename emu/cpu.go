package emu

import (
	"encoding/binary"
	"fmt"

	"github.com/user-none/go-chip-z80"
)

// CPU is the processor collaborator driven by the scheduler. The scheduler
// only needs bounded execution, an elapsed cycle counter, interrupt requests
// with a data byte, and opaque state save/restore.
type CPU interface {
	Reset()
	// ExecuteCycles runs for a budget of n cycles and returns the cycles
	// consumed.
	ExecuteCycles(n int) int
	// RequestInterrupt raises a maskable interrupt; data is the byte placed
	// on the bus during acknowledge (IM2 vector low byte, IM0 opcode).
	RequestInterrupt(data uint8)
	ElapsedCycles() uint64
	SetElapsedCycles(n uint64)
	SaveState() []byte
	LoadState(data []byte) error
}

// Compile-time interface check.
var _ CPU = (*Z80)(nil)

// z80StateSize is the library state plus elapsed(8), pending(1), data(1).
// The INT line itself travels in the library state.
const z80StateSize = z80.SerializeSize + 10

// Z80 adapts go-chip-z80 to the CPU contract.
//
// The Z80 INT input is level triggered while the hardware here pulses it, so
// a request holds the line until the CPU acknowledges it (IFF1 drops) or
// until the end of the execution slice that follows the request, whichever
// comes first. A request made while interrupts are disabled is therefore
// lost, as on the boards.
type Z80 struct {
	cpu     *z80.CPU
	elapsed uint64

	intPending bool
	intData    uint8
}

// NewZ80 creates a Z80 wired to bus.
func NewZ80(bus *Bus) *Z80 {
	return &Z80{cpu: z80.New(bus)}
}

// Reset resets the core and drops any pending interrupt. The elapsed counter
// is left alone; callers reset it explicitly.
func (c *Z80) Reset() {
	c.cpu.Reset()
	c.intPending = false
}

func (c *Z80) releaseINT() {
	if c.intPending {
		c.cpu.INT(false, c.intData)
	}
	c.intPending = false
}

// ExecuteCycles steps instructions until the budget is spent. Instruction
// overrun is carried by the core as a deficit, so the return value never
// exceeds n.
func (c *Z80) ExecuteCycles(n int) int {
	consumed := 0
	for consumed < n {
		var prevIFF1 bool
		if c.intPending {
			prevIFF1 = c.cpu.Registers().IFF1
		}

		step := c.cpu.StepCycles(n - consumed)
		if step == 0 {
			// Stalled core: idle out the slice so time keeps moving.
			consumed = n
			break
		}
		consumed += step

		if c.intPending && prevIFF1 && !c.cpu.Registers().IFF1 {
			c.releaseINT()
		}
	}
	c.elapsed += uint64(consumed)
	c.releaseINT()
	return consumed
}

// RequestInterrupt asserts INT with data for the next execution slice.
func (c *Z80) RequestInterrupt(data uint8) {
	c.intPending = true
	c.intData = data
	c.cpu.INT(true, data)
}

// NMI triggers a non-maskable interrupt.
func (c *Z80) NMI() {
	c.cpu.NMI()
}

func (c *Z80) ElapsedCycles() uint64     { return c.elapsed }
func (c *Z80) SetElapsedCycles(n uint64) { c.elapsed = n }

// SaveState returns the core registers followed by the adapter's own state.
func (c *Z80) SaveState() []byte {
	data := make([]byte, z80StateSize)
	// Serialize only fails on a short buffer.
	_ = c.cpu.Serialize(data)
	off := z80.SerializeSize
	binary.LittleEndian.PutUint64(data[off:], c.elapsed)
	off += 8
	if c.intPending {
		data[off] = 1
	}
	data[off+1] = c.intData
	return data
}

// LoadState restores a blob produced by SaveState. A rejected blob leaves
// the CPU untouched.
func (c *Z80) LoadState(data []byte) error {
	if len(data) != z80StateSize {
		return fmt.Errorf("%w: cpu state is %d bytes, want %d", ErrStateCorrupt, len(data), z80StateSize)
	}
	// Deserialize checks size and version before it writes anything.
	if err := c.cpu.Deserialize(data[:z80.SerializeSize]); err != nil {
		return fmt.Errorf("%w: %v", ErrStateCorrupt, err)
	}
	off := z80.SerializeSize
	c.elapsed = binary.LittleEndian.Uint64(data[off:])
	off += 8
	c.intPending = data[off] != 0
	c.intData = data[off+1]
	return nil
}
