package emu

import "log"

// PSG is a three voice tone generator addressed through an AY-3-8910 style
// register file: 0/1, 2/3, 4/5 hold 12-bit tone periods (low byte, high
// nibble), 6 the noise period, 7 the mixer (active low tone bits 0-2, noise
// bits 3-5) and 8-10 the 4-bit channel volumes.
type PSG interface {
	WriteRegister(reg, val uint8)
	Register(reg uint8) uint8
	SetClock(hz float64)
	Reset()
}

// AY register indexes.
const (
	ayToneA    = 0
	ayNoise    = 6
	ayMixer    = 7
	ayVolumeA  = 8
	ayVolumeB  = 9
	ayVolumeC  = 10
	ayRegCount = 16
)

// astrocadeSoundClock is the master clock the Astrocade sound divider
// works from.
const astrocadeSoundClock = 1789000

// AstrocadeSound translates the Astrocade sound ports onto a PSG.
type AstrocadeSound struct {
	psg PSG
	log *log.Logger
}

// NewAstrocadeSound creates the adapter.
func NewAstrocadeSound(psg PSG, logger *log.Logger) *AstrocadeSound {
	return &AstrocadeSound{psg: psg, log: logger}
}

// Write handles a write to sound register addr (0-7).
func (s *AstrocadeSound) Write(addr, val uint8) {
	switch addr &= 7; addr {
	case 0:
		// Master oscillator. Setting it also leaves noise disabled.
		s.psg.SetClock(float64(astrocadeSoundClock*16) / float64(int(val)+1))
		s.psg.WriteRegister(ayMixer, 0x07^0xff)
	case 1, 2, 3:
		reg := (addr - 1) * 2
		period := int(val)*2 + 1
		s.psg.WriteRegister(ayToneA+reg, uint8(period))
		s.psg.WriteRegister(ayToneA+reg+1, uint8(period>>8))
	case 5:
		s.psg.WriteRegister(ayVolumeC, val&0x0f)
	case 6:
		s.psg.WriteRegister(ayVolumeA, val&0x0f)
		s.psg.WriteRegister(ayVolumeB, (val>>4)&0x0f)
	default:
		// Vibrato and noise volume have no counterpart.
		s.log.Printf("sound: unsupported register %d = %02x", addr, val)
	}
}

// AYPort is the select/data latch pair used to reach a PSG through two I/O
// ports.
type AYPort struct {
	psg      PSG
	selected uint8
}

// NewAYPort creates a latch in front of psg.
func NewAYPort(psg PSG) *AYPort {
	return &AYPort{psg: psg}
}

// Select latches the register index for following data writes.
func (p *AYPort) Select(reg uint8) {
	p.selected = reg & 0x0f
}

// Data writes val to the selected register.
func (p *AYPort) Data(val uint8) {
	p.psg.WriteRegister(p.selected, val)
}

// Selected returns the latched register index.
func (p *AYPort) Selected() uint8 {
	return p.selected
}
