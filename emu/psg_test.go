package emu

import (
	"errors"
	"testing"
)

func newTestPSG() *SNPSG {
	return NewSNPSG(astrocadeSoundClock, astrocadeSoundClock, 48000)
}

// TestSNPSG_SilentOnReset verifies every voice starts attenuated.
func TestSNPSG_SilentOnReset(t *testing.T) {
	p := newTestPSG()
	for ch := 0; ch < 4; ch++ {
		if v := p.Chip().GetVolume(ch); v != 0x0F {
			t.Errorf("channel %d: expected attenuation 0xF, got 0x%X", ch, v)
		}
	}
}

// TestSNPSG_Divider verifies AY periods map onto the chip's divider.
func TestSNPSG_Divider(t *testing.T) {
	p := newTestPSG()

	testCases := []struct {
		lo, hi   uint8
		expected uint16
	}{
		{100, 0, 50},
		{0x00, 0x01, 128},
		{0, 0, 1},          // period 0 behaves as 1
		{1, 0, 1},          // rounds up from 0.5
		{0xff, 0x0f, 1023}, // clamped
		{0x00, 0xf1, 128},  // upper nibble of the high byte ignored
	}
	for _, tc := range testCases {
		p.WriteRegister(0, tc.lo)
		p.WriteRegister(1, tc.hi)
		if got := p.Chip().GetToneReg(0); got != tc.expected {
			t.Errorf("period 0x%X%02X: expected divider %d, got %d", tc.hi, tc.lo, tc.expected, got)
		}
	}
}

// TestSNPSG_SetClock verifies a clock change retunes all voices.
func TestSNPSG_SetClock(t *testing.T) {
	p := newTestPSG()
	p.WriteRegister(2, 100)

	p.SetClock(astrocadeSoundClock * 2)
	if got := p.Chip().GetToneReg(1); got != 25 {
		t.Errorf("doubled clock: expected divider 25, got %d", got)
	}
	if p.Clock() != astrocadeSoundClock*2 {
		t.Errorf("clock: expected %d, got %v", astrocadeSoundClock*2, p.Clock())
	}

	p.SetClock(0)
	if p.Clock() != astrocadeSoundClock*2 {
		t.Errorf("zero clock should be ignored, got %v", p.Clock())
	}
}

// TestSNPSG_Volume verifies volumes invert into attenuation and the mixer
// mutes disabled tones.
func TestSNPSG_Volume(t *testing.T) {
	p := newTestPSG()

	p.WriteRegister(ayMixer, 0x3e) // tone A only
	p.WriteRegister(ayVolumeA, 0x0f)
	p.WriteRegister(ayVolumeB, 0x0a)

	if v := p.Chip().GetVolume(0); v != 0x00 {
		t.Errorf("channel A: expected attenuation 0x0, got 0x%X", v)
	}
	if v := p.Chip().GetVolume(1); v != 0x0f {
		t.Errorf("channel B muted by mixer: expected 0xF, got 0x%X", v)
	}

	p.WriteRegister(ayMixer, 0x3c)
	if v := p.Chip().GetVolume(1); v != 0x05 {
		t.Errorf("channel B enabled: expected 0x5, got 0x%X", v)
	}
}

// TestSNPSG_Noise verifies the noise voice follows the loudest
// noise-enabled channel and the noise period.
func TestSNPSG_Noise(t *testing.T) {
	p := newTestPSG()

	p.WriteRegister(ayVolumeA, 0x06)
	p.WriteRegister(ayVolumeC, 0x0c)
	p.WriteRegister(ayNoise, 0x10)
	p.WriteRegister(ayMixer, 0x1f) // noise on C only
	if v := p.Chip().GetVolume(3); v != 15-0x0c {
		t.Errorf("noise volume: expected 0x%X, got 0x%X", 15-0x0c, v)
	}
	if r := p.Chip().GetNoiseReg(); r != 0x06 {
		t.Errorf("noise register: expected white noise rate 2 (0x6), got 0x%X", r)
	}

	p.WriteRegister(ayNoise, 0x03)
	if r := p.Chip().GetNoiseReg(); r != 0x04 {
		t.Errorf("short noise period: expected 0x4, got 0x%X", r)
	}

	p.WriteRegister(ayMixer, 0xff)
	if v := p.Chip().GetVolume(3); v != 0x0f {
		t.Errorf("noise disabled: expected 0xF, got 0x%X", v)
	}
}

// TestSNPSG_Samples verifies Run collects samples and ClearSamples drops
// them.
func TestSNPSG_Samples(t *testing.T) {
	p := newTestPSG()
	p.Run(astrocadeSoundClock / 60)
	n := len(p.Samples())
	if n < 785 || n > 815 {
		t.Errorf("one frame of cycles: expected about 800 samples, got %d", n)
	}
	p.Run(0)
	if len(p.Samples()) != n {
		t.Errorf("Run(0) added samples")
	}
	p.ClearSamples()
	if len(p.Samples()) != 0 {
		t.Errorf("expected empty buffer after ClearSamples, got %d", len(p.Samples()))
	}
}

// TestSNPSG_State verifies the register file and clock survive a round
// trip and bad blobs are refused.
func TestSNPSG_State(t *testing.T) {
	p := newTestPSG()
	p.SetClock(1000000)
	p.WriteRegister(0, 0x42)
	p.WriteRegister(ayVolumeA, 0x09)
	data := p.SaveState()
	if len(data) != snpsgStateSize {
		t.Fatalf("state size: expected %d, got %d", snpsgStateSize, len(data))
	}

	q := newTestPSG()
	if err := q.LoadState(data); err != nil {
		t.Fatalf("LoadState: %v", err)
	}
	if q.Register(0) != 0x42 || q.Register(ayVolumeA) != 0x09 || q.Clock() != 1000000 {
		t.Errorf("restored: expected reg0=0x42 volA=0x9 clock=1000000, got 0x%02X 0x%X %v",
			q.Register(0), q.Register(ayVolumeA), q.Clock())
	}
	if q.Chip().GetToneReg(0) != p.Chip().GetToneReg(0) {
		t.Errorf("chip tone: expected %d, got %d", p.Chip().GetToneReg(0), q.Chip().GetToneReg(0))
	}

	if err := q.LoadState(data[:10]); !errors.Is(err, ErrStateCorrupt) {
		t.Errorf("short state: expected ErrStateCorrupt, got %v", err)
	}

	// An unknown chip version is refused before the register file changes.
	bad := newTestPSG().SaveState()
	bad[ayRegCount+8] = 0xEE
	if err := q.LoadState(bad); !errors.Is(err, ErrStateCorrupt) {
		t.Errorf("chip version: expected ErrStateCorrupt, got %v", err)
	}
	if q.Register(0) != 0x42 || q.Clock() != 1000000 {
		t.Errorf("rejected state: expected reg0=0x42 clock=1000000, got 0x%02X %v", q.Register(0), q.Clock())
	}
}

// TestSNPSG_NoiseShiftKept verifies volume, mixer and same-rate period
// writes leave the running noise shift register alone, while a new rate
// restarts it.
func TestSNPSG_NoiseShiftKept(t *testing.T) {
	initial := newTestPSG().Chip().GetNoiseShift()

	p := newTestPSG()
	p.WriteRegister(ayNoise, 0x03)
	p.WriteRegister(ayMixer, 0x37) // noise on A only
	p.WriteRegister(ayVolumeA, 0x0f)
	p.Run(astrocadeSoundClock / 60)

	running := p.Chip().GetNoiseShift()
	if running == initial {
		t.Fatalf("shift register did not advance from 0x%04X", initial)
	}

	p.WriteRegister(ayVolumeA, 0x08)
	p.WriteRegister(ayVolumeB, 0x04)
	p.WriteRegister(ayMixer, 0x2f)
	p.WriteRegister(ayNoise, 0x05)
	if got := p.Chip().GetNoiseShift(); got != running {
		t.Errorf("after volume, mixer and period writes: expected 0x%04X, got 0x%04X", running, got)
	}

	p.WriteRegister(ayNoise, 0x1f)
	if got := p.Chip().GetNoiseShift(); got != initial {
		t.Errorf("after rate change: expected restart at 0x%04X, got 0x%04X", initial, got)
	}
}
