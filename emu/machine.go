package emu

import (
	"fmt"
	"hash/crc32"
	"io"
	"log"
	"slices"
)

const sampleRate = 48000

// watchdogFrames is the watchdog reload value when it is enabled.
const watchdogFrames = 256

// board is the per-variant hardware behind a Machine.
type board interface {
	Hardware
	PortDevice

	memoryMap() []AddressRange
	reset()
	setButtons(player int, buttons uint32)
	setPaddle(n int, v uint8)

	ramBytes() []byte
	inputBytes() []byte
	paletteColors() []uint32
	videoRegs() VideoRegisters
	restoreVideo(regs VideoRegisters, palette []uint32)
}

// Machine is one running board: CPU, bus, video, sound and the scanline
// scheduler that drives them. Machines share nothing, so several may run
// side by side.
type Machine struct {
	cfg Config
	log *log.Logger

	hw    board
	vic   *VicDual
	astro *Astrocade

	mem   *Decoder
	bus   *Bus
	cpu   CPU
	psg   *SNPSG
	fb    *Framebuffer
	dirty *DirtyLines
	sched *Scheduler

	romCRC uint32
}

// NewMachine builds a machine of the given variant running rom.
func NewMachine(variant Variant, rom []byte) (*Machine, error) {
	return newMachine(variant, rom, func(b *Bus) CPU { return NewZ80(b) })
}

func newMachine(variant Variant, rom []byte, newCPU func(*Bus) CPU) (*Machine, error) {
	cfg, err := ConfigFor(variant)
	if err != nil {
		return nil, err
	}

	m := &Machine{
		cfg:    cfg,
		log:    log.New(io.Discard, "", 0),
		fb:     NewFramebuffer(cfg.Width, cfg.Height),
		dirty:  NewDirtyLines(cfg.Height),
		romCRC: crc32.ChecksumIEEE(rom),
	}
	m.psg = NewSNPSG(int(cfg.CPUClockHz), cfg.AYClockHz, sampleRate)

	if cfg.Astrocade() {
		m.astro, err = NewAstrocade(&m.cfg, rom, m.psg, m.fb, m.dirty, m.log)
		m.hw = m.astro
	} else {
		m.vic, err = NewVicDual(&m.cfg, rom, m.psg, m.fb, m.dirty, m.log)
		m.hw = m.vic
	}
	if err != nil {
		return nil, err
	}

	m.mem = NewDecoder(m.hw.memoryMap())
	m.mem.Unmapped = m.unmapped
	m.bus = NewBus(m.mem, m.hw)
	m.cpu = newCPU(m.bus)
	m.sched = NewScheduler(m.cpu, m.hw, m.fb, m.dirty, cfg.Timing())
	m.sched.SetWatchdog(Watchdog{Initial: watchdogFrames}, m.watchdogFired)

	if m.astro != nil {
		m.astro.kick = m.sched.KickWatchdog
	} else {
		m.vic.resetCPU = m.cpu.Reset
	}

	m.Reset()
	return m, nil
}

func (m *Machine) unmapped(write bool, addr uint16, val uint8) {
	if write {
		m.log.Printf("bus: unmapped write %04x = %02x", addr, val)
	} else {
		m.log.Printf("bus: unmapped read %04x", addr)
	}
}

func (m *Machine) watchdogFired() {
	m.log.Printf("watchdog expired, resetting")
	m.Reset()
}

// SetLogger routes diagnostics to l. The machine keeps its own logger so
// components holding it see the change.
func (m *Machine) SetLogger(l *log.Logger) {
	if l == nil {
		m.log.SetOutput(io.Discard)
		return
	}
	m.log.SetOutput(l.Writer())
	m.log.SetPrefix(l.Prefix())
	m.log.SetFlags(l.Flags())
}

// SetWatchdog enables or disables the watchdog.
func (m *Machine) SetWatchdog(enabled bool) {
	m.sched.SetWatchdog(Watchdog{Enabled: enabled, Initial: watchdogFrames}, m.watchdogFired)
}

// SetSink sets where finished frames are presented.
func (m *Machine) SetSink(sink VideoSink) {
	m.sched.SetSink(sink)
}

// Reset resets the CPU and sound and restarts the frame with a zero cycle
// count. Memory is left as is.
func (m *Machine) Reset() {
	m.cpu.Reset()
	m.cpu.SetElapsedCycles(0)
	m.sched.Reset()
	m.psg.Reset()
	m.hw.reset()
}

// AdvanceFrame runs the remainder of the current frame.
func (m *Machine) AdvanceFrame(novideo bool) {
	m.sched.AdvanceFrame(novideo)
}

// StepScanline runs one scanline and reports whether the frame finished.
func (m *Machine) StepScanline() bool {
	return m.sched.StepScanline(false)
}

// ReadAddress returns the byte the CPU would read at addr. Memory reads
// have no side effects on these boards.
func (m *Machine) ReadAddress(addr uint16) uint8 {
	return m.mem.Read(addr)
}

// SetButtons applies an emucore button mask for player.
func (m *Machine) SetButtons(player int, buttons uint32) {
	m.hw.setButtons(player, buttons)
}

// SetPaddle sets analog paddle n.
func (m *Machine) SetPaddle(n int, v uint8) {
	m.hw.setPaddle(n, v)
}

// LoadBIOS replaces the Astrocade BIOS and resets.
func (m *Machine) LoadBIOS(data []byte) error {
	if m.astro == nil || m.cfg.BIOSSize == 0 {
		return fmt.Errorf("%s has no BIOS", m.cfg.Variant)
	}
	if err := m.astro.LoadBIOS(data); err != nil {
		return err
	}
	m.Reset()
	return nil
}

// Config returns the machine's configuration.
func (m *Machine) Config() Config { return m.cfg }

// Framebuffer returns the live framebuffer.
func (m *Machine) Framebuffer() *Framebuffer { return m.fb }

// VisibleHeight returns the number of lines currently presented.
func (m *Machine) VisibleHeight() int { return m.hw.VisibleHeight() }

// RAM returns the live RAM.
func (m *Machine) RAM() []byte { return m.hw.ramBytes() }

// WriteRAM overwrites RAM from data and redraws the screen.
func (m *Machine) WriteRAM(data []byte) {
	copy(m.hw.ramBytes(), data)
	m.dirty.MarkAll()
}

// Inputs returns the live input registers.
func (m *Machine) Inputs() []byte { return m.hw.inputBytes() }

// CPU returns the CPU collaborator.
func (m *Machine) CPU() CPU { return m.cpu }

// PSG returns the sound generator.
func (m *Machine) PSG() *SNPSG { return m.psg }

// Line returns the next scanline the scheduler will run.
func (m *Machine) Line() int { return m.sched.Line() }

// ROMCRC returns the CRC32 of the ROM the machine was built with.
func (m *Machine) ROMCRC() uint32 { return m.romCRC }

// SaveState captures the machine between scanlines.
func (m *Machine) SaveState() *Snapshot {
	return &Snapshot{
		Variant:  m.cfg.Variant,
		CPU:      m.cpu.SaveState(),
		RAM:      slices.Clone(m.hw.ramBytes()),
		Palette:  slices.Clone(m.hw.paletteColors()),
		Regs:     m.hw.videoRegs(),
		Inputs:   slices.Clone(m.hw.inputBytes()),
		PSG:      m.psg.SaveState(),
		Line:     m.sched.Line(),
		TargetFP: m.sched.TargetFP(),
	}
}

// LoadState restores s. Every part is checked before anything changes, so
// a rejected snapshot leaves the machine untouched.
func (m *Machine) LoadState(s *Snapshot) error {
	switch {
	case s.Variant != m.cfg.Variant:
		return fmt.Errorf("%w: have %s, state is %s", ErrStateVariant, m.cfg.Variant, s.Variant)
	case len(s.RAM) != len(m.hw.ramBytes()):
		return fmt.Errorf("%w: state has %d bytes, machine has %d", ErrStateRAMSize, len(s.RAM), len(m.hw.ramBytes()))
	case len(s.Palette) != len(m.hw.paletteColors()):
		return fmt.Errorf("%w: palette has %d entries", ErrStateLayout, len(s.Palette))
	case len(s.Inputs) != len(m.hw.inputBytes()):
		return fmt.Errorf("%w: %d input registers", ErrStateLayout, len(s.Inputs))
	case len(s.PSG) != snpsgStateSize:
		return fmt.Errorf("%w: psg state is %d bytes", ErrStateLayout, len(s.PSG))
	case s.Line < 0 || s.Line >= m.cfg.Scanlines:
		return fmt.Errorf("%w: scanline %d", ErrStateLayout, s.Line)
	}

	// The PSG and CPU each reject a bad blob without changing. The PSG goes
	// first so a CPU rejection only has the PSG to roll back.
	prevPSG := m.psg.SaveState()
	if err := m.psg.LoadState(s.PSG); err != nil {
		return err
	}
	if err := m.cpu.LoadState(s.CPU); err != nil {
		_ = m.psg.LoadState(prevPSG)
		return err
	}
	copy(m.hw.ramBytes(), s.RAM)
	copy(m.hw.inputBytes(), s.Inputs)
	m.hw.restoreVideo(s.Regs, s.Palette)
	m.sched.restore(s.Line, s.TargetFP)
	m.dirty.MarkAll()
	return nil
}
