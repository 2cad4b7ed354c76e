package emu

import "log"

// VIC Dual board layout.
const (
	vicVideoRAM   = 0x000 // 32x28 tile codes
	vicCharRAM    = 0x800 // 256 glyphs, 8 bytes each
	vicVisible    = 224
	vicVBlankLine = 0xe0
	vicVSyncEnd   = 0xf0
	vicTimerHz    = 500
	// Frames a coin press keeps further coin resets suppressed.
	vicCoinHoldFrames = 66
)

// vicDualColors is the fixed 3-bit RGB output of the board.
var vicDualColors = [8]uint32{
	0xFF000000, // black
	0xFFFF0000, // red
	0xFF00FF00, // green
	0xFFFFFF00, // yellow
	0xFF0000FF, // blue
	0xFFFF00FF, // magenta
	0xFF00FFFF, // cyan
	0xFFFFFFFF, // white
}

var vicDualDefaultPROM = [32]uint8{
	0xe0, 0x60, 0x20, 0x60, 0xc0, 0x60, 0x40, 0xc0,
	0x20, 0x40, 0x60, 0x80, 0xa0, 0xc0, 0xe0, 0x0e,
	0xe0, 0xe0, 0xe0, 0xe0, 0x60, 0x60, 0x60, 0x60,
	0xe0, 0xe0, 0xe0, 0xe0, 0xe0, 0xe0, 0xe0, 0xe0,
}

// Input register defaults: everything active low except the coin bit.
var vicDualInputDefaults = [4]uint8{0xff, 0xff, 0xff, 0xff ^ 0x08}

// vicButton maps an emucore button bit onto an input register bit.
type vicButton struct {
	bit       uint
	reg       int
	mask      uint8
	activeLow bool
}

var vicDualButtons = []vicButton{
	{bit: 0, reg: 1, mask: 0x40, activeLow: true}, // up
	{bit: 1, reg: 1, mask: 0x80, activeLow: true}, // down
	{bit: 2, reg: 1, mask: 0x10, activeLow: true}, // left
	{bit: 3, reg: 1, mask: 0x20, activeLow: true}, // right
	{bit: 4, reg: 2, mask: 0x20, activeLow: true}, // fire 1
	{bit: 5, reg: 2, mask: 0x40, activeLow: true}, // fire 2
	{bit: 6, reg: 2, mask: 0x10, activeLow: true}, // start 1
	{bit: 7, reg: 3, mask: 0x20, activeLow: true}, // start 2
	{bit: 8, reg: 3, mask: 0x08},                  // coin
}

const vicCoinButton = 1 << 8

// VicDual is the Sega/Gremlin VIC Dual board: a tile raster over 4KB of RAM
// with a color PROM and an AY sound chip behind a select/data port pair.
type VicDual struct {
	cfg *Config

	rom     []byte
	ram     [0x1000]uint8
	prom    [32]uint8
	in      [4]uint8
	palBank uint8

	ay    *AYPort
	psg   *SNPSG
	fb    *Framebuffer
	dirty *DirtyLines
	log   *log.Logger

	cyclesPerTimerTick float64

	resetCPU    func()
	coinHold    int
	prevButtons uint32
}

// NewVicDual loads rom and builds the board. A ROM long enough to carry a
// color PROM at 0x4000 with a non-zero first or last byte supplies its own.
func NewVicDual(cfg *Config, rom []byte, psg *SNPSG, fb *Framebuffer, dirty *DirtyLines, logger *log.Logger) (*VicDual, error) {
	padded, err := padImage(rom, cfg.ROMSize, "rom")
	if err != nil {
		return nil, err
	}

	v := &VicDual{
		cfg:                cfg,
		rom:                padded,
		prom:               vicDualDefaultPROM,
		in:                 vicDualInputDefaults,
		ay:                 NewAYPort(psg),
		psg:                psg,
		fb:                 fb,
		dirty:              dirty,
		log:                logger,
		cyclesPerTimerTick: cfg.CPUClockHz / (2 * vicTimerHz),
	}
	if len(rom) >= 0x4020 && (rom[0x4000] != 0 || rom[0x401f] != 0) {
		copy(v.prom[:], rom[0x4000:0x4020])
	}
	return v, nil
}

func (v *VicDual) memoryMap() []AddressRange {
	return []AddressRange{
		{Low: 0x0000, High: 0x7fff, Mask: 0x3fff, Read: v.readROM},
		{Low: 0x8000, High: 0xffff, Mask: 0x0fff, Read: v.readRAM, Write: v.writeRAM},
	}
}

func (v *VicDual) readROM(addr uint16) uint8 { return v.rom[addr] }
func (v *VicDual) readRAM(addr uint16) uint8 { return v.ram[addr] }

func (v *VicDual) writeRAM(addr uint16, val uint8) {
	if v.ram[addr] == val {
		return
	}
	v.ram[addr] = val
	switch {
	case addr < 0x400:
		top := int(addr>>5) << 3
		v.dirty.MarkRange(top, top+8)
	case addr >= vicCharRAM:
		v.dirty.MarkAll()
	}
}

// In reads input register port&3.
func (v *VicDual) In(port uint16) uint8 {
	return v.in[port&3]
}

// Out decodes the port address bit by bit; several devices can be hit by
// one write.
func (v *VicDual) Out(port uint16, val uint8) {
	if port&0x01 != 0 {
		v.ay.Select(val & 0x0f)
	}
	if port&0x02 != 0 {
		v.ay.Data(val)
	}
	if port&0x40 != 0 && v.palBank != val&3 {
		v.palBank = val & 3
		v.dirty.MarkAll()
	}
}

// SampleInputs drives the 500Hz timer bit and the vblank status bit.
func (v *VicDual) SampleInputs(line int, elapsed uint64) {
	tick := uint8(uint64(float64(elapsed)/v.cyclesPerTimerTick) & 1)
	v.in[2] = v.in[2]&^0x08 | tick<<3

	switch line {
	case vicVBlankLine:
		v.in[1] |= 0x08
	case vicVSyncEnd:
		v.in[1] &^= 0x08
	}
}

// Interrupt is never enabled; software polls the vblank bit.
func (v *VicDual) Interrupt() InterruptConfig {
	return InterruptConfig{}
}

func (v *VicDual) EndLine(line int, cycles int) {
	v.psg.Run(cycles)
	if line == v.cfg.Scanlines-1 && v.coinHold > 0 {
		v.coinHold--
	}
}

// RenderLine decodes tile row y>>3 into framebuffer line y.
func (v *VicDual) RenderLine(y int) {
	if y < 0 || y >= vicVisible {
		return
	}
	row := v.fb.Row(y)
	tiles := vicVideoRAM + (y>>3)<<5
	yy := y & 7
	for xx := 0; xx < 32; xx++ {
		code := v.ram[tiles+xx]
		data := v.ram[vicCharRAM+int(code)<<3+yy]
		col := int(code>>5) + int(v.palBank)<<3
		color1 := vicDualColors[(v.prom[col]>>1)&7]
		color2 := vicDualColors[(v.prom[col]>>5)&7]
		px := row[xx*8 : xx*8+8]
		for i := 0; i < 8; i++ {
			if data&(0x80>>i) != 0 {
				px[i] = color2
			} else {
				px[i] = color1
			}
		}
	}
}

func (v *VicDual) VisibleHeight() int { return vicVisible }

func (v *VicDual) reset() {
	v.coinHold = 0
	v.dirty.MarkAll()
}

// setButtons applies an emucore button mask. A coin press resets the CPU
// unless another coin arrived recently.
func (v *VicDual) setButtons(player int, buttons uint32) {
	if player != 0 {
		return
	}
	for _, b := range vicDualButtons {
		pressed := buttons&(1<<b.bit) != 0
		if pressed != b.activeLow {
			v.in[b.reg] |= b.mask
		} else {
			v.in[b.reg] &^= b.mask
		}
	}

	if buttons&vicCoinButton != 0 && v.prevButtons&vicCoinButton == 0 {
		if v.coinHold == 0 && v.resetCPU != nil {
			v.resetCPU()
		}
		v.coinHold = vicCoinHoldFrames
	}
	v.prevButtons = buttons
}

func (v *VicDual) setPaddle(int, uint8) {}

func (v *VicDual) ramBytes() []byte        { return v.ram[:] }
func (v *VicDual) inputBytes() []byte      { return v.in[:] }
func (v *VicDual) paletteColors() []uint32 { return vicDualColors[:] }

func (v *VicDual) videoRegs() VideoRegisters {
	return VideoRegisters{
		PaletteBank: v.palBank,
		PSGSelect:   v.ay.Selected(),
	}
}

// restoreVideo ignores the palette, which is fixed on this board.
func (v *VicDual) restoreVideo(regs VideoRegisters, _ []uint32) {
	v.palBank = regs.PaletteBank & 3
	v.ay.Select(regs.PSGSelect)
}
