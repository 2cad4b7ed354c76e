package emu

import (
	"encoding/binary"
	"errors"
	"testing"
)

// fakeCPU burns exactly the cycles it is given. onExecute runs at the start
// of every slice so tests can poke the bus mid-frame.
type fakeCPU struct {
	elapsed    uint64
	overrun    int
	interrupts []uint8
	resets     int
	onExecute  func(n int)
}

func (c *fakeCPU) Reset() { c.resets++ }

func (c *fakeCPU) ExecuteCycles(n int) int {
	if c.onExecute != nil {
		c.onExecute(n)
	}
	n += c.overrun
	c.elapsed += uint64(n)
	return n
}

func (c *fakeCPU) RequestInterrupt(data uint8) { c.interrupts = append(c.interrupts, data) }
func (c *fakeCPU) ElapsedCycles() uint64       { return c.elapsed }
func (c *fakeCPU) SetElapsedCycles(n uint64)   { c.elapsed = n }

func (c *fakeCPU) SaveState() []byte {
	data := make([]byte, 8)
	binary.LittleEndian.PutUint64(data, c.elapsed)
	return data
}

func (c *fakeCPU) LoadState(data []byte) error {
	if len(data) != 8 {
		return errors.New("fake cpu state size")
	}
	c.elapsed = binary.LittleEndian.Uint64(data)
	return nil
}

// captureSink keeps a copy of each presented frame.
type captureSink struct {
	frames  int
	pix     []uint32
	width   int
	visible int
}

func (s *captureSink) PresentFrame(fb *Framebuffer, originX, originY, width, visibleHeight int) {
	s.frames++
	s.pix = append(s.pix[:0], fb.Pix...)
	s.width = width
	s.visible = visibleHeight
}

// newTestMachine builds a machine around a fakeCPU.
func newTestMachine(t *testing.T, variant Variant, rom []byte) (*Machine, *fakeCPU) {
	t.Helper()
	cpu := &fakeCPU{}
	m, err := newMachine(variant, rom, func(*Bus) CPU { return cpu })
	if err != nil {
		t.Fatalf("newMachine(%s): %v", variant, err)
	}
	return m, cpu
}

// runLines steps n scanlines.
func runLines(m *Machine, n int) {
	for i := 0; i < n; i++ {
		m.StepScanline()
	}
}
