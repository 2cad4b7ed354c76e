package emu

import "log"

// astrocadeMinimalBIOS jumps into a cartridge carrying the 0x55 sentinel at
// 0x2000, or into the built-in menu address otherwise. It stands in for the
// real BIOS when none is loaded.
var astrocadeMinimalBIOS = []byte{
	0xf3, 0x21, 0x00, 0x20, 0x7e, 0xfe, 0x55, 0xca, 0x0d, 0x00, 0xc3, 0xab, 0x0e,
	0x31, 0xce, 0x4f, 0xcd, 0x84, 0x02, 0x21, 0x05, 0x20, 0x7e, 0x23, 0x66, 0x6f,
	0xe9,
}

// Astrocade I/O ports, low 5 bits of the port address.
const (
	acPortCollision = 0x08
	acPortHORCB     = 0x09
	acPortVERBL     = 0x0a
	acPortPaletteB  = 0x0b
	acPortMagic     = 0x0c
	acPortINFBK     = 0x0d
	acPortINMOD     = 0x0e
	acPortINLIN     = 0x0f
	acPortSound     = 0x10 // through 0x17
	acPortSoundB    = 0x18
	acPortXPAND     = 0x19
	acPortHand1     = 0x10 // read: hand controller 1, watchdog
	acPortKeypad    = 0x14 // read: keypad columns 0x14-0x17
	acPortPaddle    = 0x1c // 0x1c-0x1d
)

// Hand controller bits: four directions then the trigger.
var astrocadeHandBits = [5]uint8{0x01, 0x02, 0x04, 0x08, 0x10}

// AstrocadeKeypad lists the keypad keys in button order, four columns of
// six keys read through ports 0x14-0x17.
var AstrocadeKeypad = [24]string{
	"P", "/", "X", "-", ",", "=",
	"Z", "H", "9", "6", "3", ".",
	"A", "S", "8", "5", "2", "0",
	"C", "R", "7", "4", "1", "E",
}

// astrocadeKeypadBase is the emucore button bit of the first keypad key.
const astrocadeKeypadBase = 5

// Astrocade is the Bally Astrocade video and I/O chip set: 2-bit pixel
// screen RAM written through the magic blitter, an 8 entry palette split by
// a horizontal color boundary, and a scanline interrupt.
type Astrocade struct {
	cfg *Config

	bios []byte
	rom  []byte
	ram  []byte

	in      [0x20]uint8
	dips    [0x20]uint8
	paddles [2]uint8
	palette [8]uint32
	blit    Blitter

	horcb uint8
	verbl uint8
	inmod uint8
	inlin uint8
	infbk uint8

	rowBytes    int // screen bytes per line
	screenBytes int

	sound *AstrocadeSound
	psg   *SNPSG
	fb    *Framebuffer
	dirty *DirtyLines
	log   *log.Logger

	kick func()
}

// NewAstrocade builds an Astrocade of the configured variant around rom.
func NewAstrocade(cfg *Config, rom []byte, psg *SNPSG, fb *Framebuffer, dirty *DirtyLines, logger *log.Logger) (*Astrocade, error) {
	a := &Astrocade{
		cfg:         cfg,
		ram:         make([]byte, cfg.RAMSize),
		rowBytes:    cfg.Width / 4,
		screenBytes: cfg.Width / 4 * cfg.Height,
		verbl:       uint8(cfg.Height),
		sound:       NewAstrocadeSound(psg, logger),
		psg:         psg,
		fb:          fb,
		dirty:       dirty,
		log:         logger,
	}
	copy(a.palette[:], astrocadeMasterPalette[:8])
	for _, d := range cfg.Dips {
		a.dips[d.Port&0x1f] = d.Value
	}
	a.in = a.dips

	var err error
	if cfg.BIOSSize > 0 {
		bios := astrocadeMinimalBIOS
		if cfg.ROMIsBIOS {
			bios = rom
			rom = nil
		}
		if a.bios, err = padImage(bios, cfg.BIOSSize, "bios"); err != nil {
			return nil, err
		}
	}
	if a.rom, err = padImage(rom, cfg.ROMSize, "rom"); err != nil {
		return nil, err
	}
	return a, nil
}

// LoadBIOS replaces the BIOS image.
func (a *Astrocade) LoadBIOS(data []byte) error {
	if a.cfg.BIOSSize == 0 {
		return nil
	}
	bios, err := padImage(data, a.cfg.BIOSSize, "bios")
	if err != nil {
		return err
	}
	a.bios = bios
	return nil
}

func (a *Astrocade) memoryMap() []AddressRange {
	if a.cfg.Arcade {
		return []AddressRange{
			{Low: 0x4000, High: 0x7fff, Mask: 0x3fff, Read: a.readRAM, Write: a.writeRAM},
			{Low: 0xd000, High: 0xdfff, Mask: 0x0fff, Read: a.readStatic, Write: a.writeStatic},
			{Low: 0x0000, High: 0xafff, Mask: 0xffff, Read: a.readROM},
			{Low: 0x0000, High: 0x3fff, Mask: 0x3fff, Write: a.magicWrite},
		}
	}
	return []AddressRange{
		{Low: 0x0000, High: 0x1fff, Mask: 0x1fff, Read: a.readBIOS},
		{Low: 0x2000, High: 0x3fff, Mask: 0x1fff, Read: a.readROM},
		{Low: 0x4000, High: 0x4fff, Mask: 0x0fff, Read: a.readRAM, Write: a.writeRAM},
		{Low: 0x0000, High: 0x3fff, Mask: 0x3fff, Write: a.magicWrite},
	}
}

func (a *Astrocade) readBIOS(addr uint16) uint8 { return a.bios[addr] }
func (a *Astrocade) readROM(addr uint16) uint8  { return a.rom[addr] }

func (a *Astrocade) readRAM(addr uint16) uint8 {
	if int(addr) >= len(a.ram) {
		return 0
	}
	return a.ram[addr]
}

func (a *Astrocade) readStatic(addr uint16) uint8 {
	return a.readRAM(addr + 0x4000)
}

func (a *Astrocade) writeStatic(addr uint16, val uint8) {
	a.writeRAM(addr+0x4000, val)
}

// writeRAM commits a byte and redraws its four pixels when it is on screen.
func (a *Astrocade) writeRAM(addr uint16, val uint8) {
	if int(addr) >= len(a.ram) {
		return
	}
	a.ram[addr] = val
	a.updatePixels(int(addr), val)
}

// magicWrite runs a write through the blitter against the screen byte at
// addr, latches the collision mask and commits the result.
func (a *Astrocade) magicWrite(addr uint16, val uint8) {
	var old uint8
	if int(addr) < len(a.ram) {
		old = a.ram[addr]
	}
	v, mask := a.blit.Transform(val, old)
	a.in[acPortCollision] = a.in[acPortCollision]&0xf0 | mask | mask<<4
	a.writeRAM(addr, v)
}

// updatePixels expands one screen byte into four pixels, leftmost pixel
// from the top two bits. Columns left of the boundary use palette 4-7.
func (a *Astrocade) updatePixels(offset int, v uint8) {
	if offset >= a.screenBytes {
		return
	}
	var half uint32
	if offset%a.rowBytes < int(a.horcb&0x3f) {
		half = 4
	}
	px := a.fb.Pix[offset*4 : offset*4+4]
	px[0] = a.palette[half+uint32(v>>6&3)]
	px[1] = a.palette[half+uint32(v>>4&3)]
	px[2] = a.palette[half+uint32(v>>2&3)]
	px[3] = a.palette[half+uint32(v&3)]
}

// In reads input register port&0x1f. Reading the collision port clears it;
// reading hand controller 1 feeds the watchdog.
func (a *Astrocade) In(port uint16) uint8 {
	addr := port & 0x1f
	v := a.in[addr]
	switch addr {
	case acPortCollision:
		a.in[addr] = 0
	case acPortHand1:
		if a.kick != nil {
			a.kick()
		}
	}
	return v
}

// Out handles the video, interrupt and sound ports. The palette and sound
// ports at 0x0b and 0x18 are written by OTIR, which leaves the register
// index in B on the upper half of the port address.
func (a *Astrocade) Out(port uint16, val uint8) {
	addr := port & 0x1f
	switch {
	case addr < 8:
		a.setPalette(uint8(addr), val)
	case addr == acPortHORCB:
		a.horcb = val
		a.dirty.MarkAll()
	case addr == acPortVERBL:
		a.verbl = a.scaleLine(val)
		a.dirty.MarkAll()
	case addr == acPortPaletteB:
		a.setPalette(uint8(port>>8), val)
	case addr == acPortMagic:
		a.blit.SetOpcode(val)
	case addr == acPortINFBK:
		a.infbk = val
	case addr == acPortINMOD:
		a.inmod = val
	case addr == acPortINLIN:
		a.inlin = a.scaleLine(val)
	case addr >= acPortSound && addr < acPortSound+8:
		a.sound.Write(uint8(addr), val)
	case addr == acPortSoundB:
		a.sound.Write(uint8(port>>8), val)
	case addr == acPortXPAND:
		a.blit.SetExpand(val)
	default:
		a.log.Printf("astrocade: unhandled port write %02x = %02x", port&0xff, val)
	}
}

// scaleLine converts a line register value; the console counts in half
// lines.
func (a *Astrocade) scaleLine(val uint8) uint8 {
	if a.cfg.Arcade {
		return val
	}
	return val >> 1
}

func (a *Astrocade) setPalette(index, val uint8) {
	a.palette[index&7] = astrocadeMasterPalette[val]
	a.dirty.MarkAll()
}

// SampleInputs loads the paddle axes at the top of the frame.
func (a *Astrocade) SampleInputs(line int, _ uint64) {
	if line == 0 {
		a.in[acPortPaddle] = a.paddles[0]
		a.in[acPortPaddle+1] = a.paddles[1]
	}
}

// Interrupt fires on INLIN when INMOD bit 3 is set, with INFBK as the
// vector.
func (a *Astrocade) Interrupt() InterruptConfig {
	return InterruptConfig{
		Line:    int(a.inlin),
		Enabled: a.inmod&0x08 != 0,
		Data:    a.infbk,
	}
}

func (a *Astrocade) EndLine(_ int, cycles int) {
	a.psg.Run(cycles)
}

// RenderLine re-expands line y from screen RAM.
func (a *Astrocade) RenderLine(y int) {
	if y < 0 || y >= a.cfg.Height {
		return
	}
	start := y * a.rowBytes
	for i := start; i < start+a.rowBytes; i++ {
		a.updatePixels(i, a.ram[i])
	}
}

// VisibleHeight is the VERBL line count, capped at the screen height.
func (a *Astrocade) VisibleHeight() int {
	if h := int(a.verbl); h < a.cfg.Height {
		return h
	}
	return a.cfg.Height
}

func (a *Astrocade) reset() {
	a.dirty.MarkAll()
}

// setButtons maps the four hand controllers onto ports 0x10-0x13 and the
// keypad of player one onto ports 0x14-0x17. Keys read active high over the
// port's dip switch default.
func (a *Astrocade) setButtons(player int, buttons uint32) {
	if player < 0 || player > 3 {
		return
	}
	port := acPortHand1 + player
	v := a.dips[port]
	for i, mask := range astrocadeHandBits {
		if buttons&(1<<i) != 0 {
			v |= mask
		}
	}
	a.in[port] = v

	if player != 0 {
		return
	}
	for col := 0; col < 4; col++ {
		p := acPortKeypad + col
		kv := a.dips[p]
		for row := 0; row < 6; row++ {
			if buttons&(1<<(astrocadeKeypadBase+col*6+row)) != 0 {
				kv |= 1 << row
			}
		}
		a.in[p] = kv
	}
}

// setPaddle sets paddle n (0 or 1); it is sampled at the next frame start.
func (a *Astrocade) setPaddle(n int, v uint8) {
	if n >= 0 && n < len(a.paddles) {
		a.paddles[n] = v
	}
}

func (a *Astrocade) ramBytes() []byte        { return a.ram }
func (a *Astrocade) inputBytes() []byte      { return a.in[:] }
func (a *Astrocade) paletteColors() []uint32 { return a.palette[:] }

func (a *Astrocade) videoRegs() VideoRegisters {
	return VideoRegisters{
		MagicOp:     a.blit.opcode,
		ShiftCarry:  a.blit.shiftCarry,
		Expand:      a.blit.expand,
		ExpandLower: a.blit.expandLower,
		HORCB:       a.horcb,
		VERBL:       a.verbl,
		INMOD:       a.inmod,
		INLIN:       a.inlin,
		INFBK:       a.infbk,
	}
}

func (a *Astrocade) restoreVideo(regs VideoRegisters, palette []uint32) {
	a.blit = Blitter{
		opcode:      regs.MagicOp,
		shiftCarry:  regs.ShiftCarry,
		expand:      regs.Expand,
		expandLower: regs.ExpandLower,
	}
	a.horcb = regs.HORCB
	a.verbl = regs.VERBL
	a.inmod = regs.INMOD
	a.inlin = regs.INLIN
	a.infbk = regs.INFBK
	copy(a.palette[:], palette)
}
