package emu

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

// fakePSG records register writes and clock changes.
type fakePSG struct {
	regs   [16]uint8
	writes int
	clock  float64
	resets int
}

func (p *fakePSG) WriteRegister(reg, val uint8) {
	p.regs[reg&0x0f] = val
	p.writes++
}

func (p *fakePSG) Register(reg uint8) uint8 { return p.regs[reg&0x0f] }
func (p *fakePSG) SetClock(hz float64)      { p.clock = hz }
func (p *fakePSG) Reset()                   { p.resets++ }

// TestAstrocadeSound_Tones verifies tone registers become AY periods.
func TestAstrocadeSound_Tones(t *testing.T) {
	testCases := []struct {
		addr   uint8
		val    uint8
		lo, hi uint8
		reg    uint8
	}{
		{1, 0x00, 0x01, 0x00, 0},
		{1, 0x10, 0x21, 0x00, 0},
		{2, 0x7f, 0xff, 0x00, 2},
		{3, 0xff, 0xff, 0x01, 4},
	}
	for _, tc := range testCases {
		psg := &fakePSG{}
		s := NewAstrocadeSound(psg, log.New(&bytes.Buffer{}, "", 0))
		s.Write(tc.addr, tc.val)
		if psg.regs[tc.reg] != tc.lo || psg.regs[tc.reg+1] != tc.hi {
			t.Errorf("register %d = 0x%02X: expected period 0x%X%02X, got 0x%X%02X",
				tc.addr, tc.val, tc.hi, tc.lo, psg.regs[tc.reg+1], psg.regs[tc.reg])
		}
	}
}

// TestAstrocadeSound_MasterOscillator verifies register 0 sets the clock and
// disables noise.
func TestAstrocadeSound_MasterOscillator(t *testing.T) {
	psg := &fakePSG{}
	s := NewAstrocadeSound(psg, log.New(&bytes.Buffer{}, "", 0))

	s.Write(0, 15)
	if expected := float64(astrocadeSoundClock*16) / 16; psg.clock != expected {
		t.Errorf("clock: expected %v, got %v", expected, psg.clock)
	}
	if psg.regs[ayMixer] != 0xf8 {
		t.Errorf("mixer: expected tones on and noise off (0xF8), got 0x%02X", psg.regs[ayMixer])
	}

	s.Write(0, 0)
	if expected := float64(astrocadeSoundClock * 16); psg.clock != expected {
		t.Errorf("clock for 0: expected %v, got %v", expected, psg.clock)
	}
}

// TestAstrocadeSound_Volumes verifies the packed volume registers.
func TestAstrocadeSound_Volumes(t *testing.T) {
	psg := &fakePSG{}
	s := NewAstrocadeSound(psg, log.New(&bytes.Buffer{}, "", 0))

	s.Write(5, 0xf7)
	s.Write(6, 0x3c)
	if psg.regs[ayVolumeC] != 0x07 {
		t.Errorf("volume C: expected 0x7, got 0x%X", psg.regs[ayVolumeC])
	}
	if psg.regs[ayVolumeA] != 0x0c || psg.regs[ayVolumeB] != 0x03 {
		t.Errorf("volumes A/B: expected 0xC/0x3, got 0x%X/0x%X", psg.regs[ayVolumeA], psg.regs[ayVolumeB])
	}
}

// TestAstrocadeSound_Unsupported verifies vibrato and noise writes are
// logged and leave the PSG alone.
func TestAstrocadeSound_Unsupported(t *testing.T) {
	psg := &fakePSG{}
	var buf bytes.Buffer
	s := NewAstrocadeSound(psg, log.New(&buf, "", 0))

	s.Write(4, 0x12)
	s.Write(7, 0x34)
	if psg.writes != 0 {
		t.Errorf("expected no PSG writes, got %d", psg.writes)
	}
	if n := strings.Count(buf.String(), "unsupported"); n != 2 {
		t.Errorf("expected 2 log lines, got %d: %q", n, buf.String())
	}

	// Only the low three address bits count.
	s.Write(0x0d, 0x09)
	if psg.regs[ayVolumeC] != 0x09 {
		t.Errorf("register 0x0D: expected volume C 0x9, got 0x%X", psg.regs[ayVolumeC])
	}
}

// TestAYPort_SelectData verifies the latch pair.
func TestAYPort_SelectData(t *testing.T) {
	psg := &fakePSG{}
	p := NewAYPort(psg)

	p.Select(0x1a)
	if p.Selected() != 0x0a {
		t.Errorf("selected: expected 0x0A, got 0x%02X", p.Selected())
	}
	p.Data(0x55)
	p.Data(0x0f)
	if psg.regs[0x0a] != 0x0f || psg.writes != 2 {
		t.Errorf("register 10: expected 0x0F after 2 writes, got 0x%02X after %d", psg.regs[0x0a], psg.writes)
	}
}
