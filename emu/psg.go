package emu

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/user-none/go-chip-sn76489"
)

// Compile-time interface check.
var _ PSG = (*SNPSG)(nil)

// snpsgStateSize is registers(16) + clock(8) + chip state.
const snpsgStateSize = ayRegCount + 8 + sn76489.SerializeSize

// SNPSG renders the AY style register file through an SN76489 tone
// generator. The chip runs at a fixed clock; AY periods are rescaled onto
// its 10-bit dividers whenever a period or the AY clock changes.
//
//	AY tone:  f = C / (16 * P)
//	SN tone:  f = S / (32 * N)   =>   N = S * P / (2 * C)
type SNPSG struct {
	chip       *sn76489.SN76489
	chipClock  int
	sampleRate int
	bufSize    int

	clock float64 // AY input clock
	regs  [ayRegCount]uint8

	samples []float32
}

// NewSNPSG creates a PSG whose chip is clocked at chipClock (the CPU clock,
// so Run takes CPU cycles) with the AY side clocked at clockHz.
func NewSNPSG(chipClock int, clockHz float64, sampleRate int) *SNPSG {
	p := &SNPSG{
		chipClock:  chipClock,
		sampleRate: sampleRate,
		bufSize:    1024,
		clock:      clockHz,
		samples:    make([]float32, 0, 2048),
	}
	p.Reset()
	return p
}

// Reset clears the register file and restarts the chip silent.
func (p *SNPSG) Reset() {
	p.chip = sn76489.New(p.chipClock, p.sampleRate, p.bufSize, sn76489.Sega)
	p.regs = [ayRegCount]uint8{}
	p.syncAll()
}

// Register returns the stored value of reg.
func (p *SNPSG) Register(reg uint8) uint8 {
	return p.regs[reg&0x0f]
}

// WriteRegister stores val and pushes the affected chip registers.
func (p *SNPSG) WriteRegister(reg, val uint8) {
	reg &= 0x0f
	p.regs[reg] = val

	switch {
	case reg < ayNoise:
		p.syncTone(int(reg / 2))
	case reg == ayNoise:
		p.syncNoiseRate()
	case reg == ayMixer:
		for ch := 0; ch < 3; ch++ {
			p.syncVolume(ch)
		}
		p.syncNoiseVolume()
	case reg <= ayVolumeC:
		p.syncVolume(int(reg - ayVolumeA))
		p.syncNoiseVolume()
	}
}

// SetClock changes the AY input clock and retunes all voices.
func (p *SNPSG) SetClock(hz float64) {
	if hz <= 0 {
		return
	}
	p.clock = hz
	for ch := 0; ch < 3; ch++ {
		p.syncTone(ch)
	}
}

// Clock returns the AY input clock.
func (p *SNPSG) Clock() float64 {
	return p.clock
}

func (p *SNPSG) syncAll() {
	for ch := 0; ch < 3; ch++ {
		p.syncTone(ch)
		p.syncVolume(ch)
	}
	p.syncNoiseRate()
	p.syncNoiseVolume()
}

// period returns the 12-bit tone period of ch; 0 behaves as 1.
func (p *SNPSG) period(ch int) int {
	v := int(p.regs[ch*2]) | int(p.regs[ch*2+1]&0x0f)<<8
	if v == 0 {
		v = 1
	}
	return v
}

// divider maps an AY tone period onto the chip's 10-bit divider.
func (p *SNPSG) divider(period int) uint16 {
	n := math.Round(float64(p.chipClock) * float64(period) / (2 * p.clock))
	if n < 1 {
		n = 1
	}
	if n > 1023 {
		n = 1023
	}
	return uint16(n)
}

func (p *SNPSG) syncTone(ch int) {
	n := p.divider(p.period(ch))
	p.chip.Write(0x80 | uint8(ch)<<5 | uint8(n&0x0f))
	p.chip.Write(uint8(n>>4) & 0x3f)
}

func (p *SNPSG) toneEnabled(ch int) bool {
	return p.regs[ayMixer]&(1<<ch) == 0
}

func (p *SNPSG) noiseEnabled(ch int) bool {
	return p.regs[ayMixer]&(1<<(ch+3)) == 0
}

func (p *SNPSG) syncVolume(ch int) {
	atten := uint8(15)
	if p.toneEnabled(ch) {
		atten = 15 - p.regs[ayVolumeA+ch]&0x0f
	}
	p.chip.Write(0x90 | uint8(ch)<<5 | atten)
}

// syncNoiseVolume drives the noise voice at the loudest noise-enabled
// channel's volume.
func (p *SNPSG) syncNoiseVolume() {
	var loudest uint8
	for ch := 0; ch < 3; ch++ {
		if v := p.regs[ayVolumeA+ch] & 0x0f; p.noiseEnabled(ch) && v > loudest {
			loudest = v
		}
	}
	p.chip.Write(0xF0 | (15 - loudest))
}

// syncNoiseRate selects white noise with the shift rate picked from the
// noise period. A noise control write restarts the chip's shift register,
// so it is only written when the setting changes.
func (p *SNPSG) syncNoiseRate() {
	var rate uint8
	switch np := p.regs[ayNoise] & 0x1f; {
	case np < 8:
		rate = 0
	case np < 16:
		rate = 1
	default:
		rate = 2
	}
	if ctl := 0x04 | rate; p.chip.GetNoiseReg() != ctl {
		p.chip.Write(0xE0 | ctl)
	}
}

// Run clocks the chip for cycles CPU cycles and collects the samples it
// produced.
func (p *SNPSG) Run(cycles int) {
	if cycles <= 0 {
		return
	}
	p.chip.GenerateSamples(cycles)
	buffer, count := p.chip.GetBuffer()
	if count > 0 {
		p.samples = append(p.samples, buffer[:count]...)
	}
}

// Samples returns the mono samples collected since the last ClearSamples.
func (p *SNPSG) Samples() []float32 {
	return p.samples
}

// ClearSamples empties the sample buffer, keeping its storage.
func (p *SNPSG) ClearSamples() {
	p.samples = p.samples[:0]
}

// Chip exposes the underlying tone generator for inspection.
func (p *SNPSG) Chip() *sn76489.SN76489 {
	return p.chip
}

// SaveState returns the register file, AY clock and chip state.
func (p *SNPSG) SaveState() []byte {
	data := make([]byte, snpsgStateSize)
	copy(data, p.regs[:])
	binary.LittleEndian.PutUint64(data[ayRegCount:], math.Float64bits(p.clock))
	_ = p.chip.Serialize(data[ayRegCount+8:])
	return data
}

// LoadState restores a blob produced by SaveState.
func (p *SNPSG) LoadState(data []byte) error {
	if len(data) != snpsgStateSize {
		return fmt.Errorf("%w: psg state is %d bytes, want %d", ErrStateCorrupt, len(data), snpsgStateSize)
	}
	// Deserialize checks size and version before it writes anything.
	if err := p.chip.Deserialize(data[ayRegCount+8:]); err != nil {
		return fmt.Errorf("%w: %v", ErrStateCorrupt, err)
	}
	copy(p.regs[:], data[:ayRegCount])
	p.clock = math.Float64frombits(binary.LittleEndian.Uint64(data[ayRegCount:]))
	return nil
}
