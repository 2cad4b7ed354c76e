package emu

import (
	"strconv"

	emucore "github.com/user-none/eblitui/api"
)

// Compile-time interface checks.
var _ emucore.Emulator = (*Emulator)(nil)
var _ emucore.SaveStater = (*Emulator)(nil)
var _ emucore.MemoryInspector = (*Emulator)(nil)
var _ emucore.MemoryMapper = (*Emulator)(nil)
var _ VideoSink = (*Emulator)(nil)

// Core identification reported to frontends.
const (
	Name    = "z80arcade"
	Version = "0.1.0"
)

// maxFrameSkip bounds the frame_skip core option.
const maxFrameSkip = 3

// Emulator adapts a Machine to the emucore host interfaces.
type Emulator struct {
	m   *Machine
	cfg Config

	// RGBA output, rotated for vertical boards.
	rgba   []byte
	stride int
	height int

	frameSkip int

	audioBuffer []int16
}

// NewEmulator creates an emulator of the given variant running rom.
func NewEmulator(variant Variant, rom []byte) (*Emulator, error) {
	m, err := NewMachine(variant, rom)
	if err != nil {
		return nil, err
	}
	return newEmulator(m), nil
}

func newEmulator(m *Machine) *Emulator {
	cfg := m.Config()
	e := &Emulator{
		m:           m,
		cfg:         cfg,
		rgba:        make([]byte, cfg.Width*cfg.Height*4),
		audioBuffer: make([]int16, 0, 2048),
	}
	if cfg.Rotated {
		e.stride = cfg.Height * 4
		e.height = cfg.Width
	} else {
		e.stride = cfg.Width * 4
		e.height = cfg.Height
	}
	m.SetSink(e)
	return e
}

// Machine returns the underlying machine.
func (e *Emulator) Machine() *Machine {
	return e.m
}

// PresentFrame converts the finished ARGB frame to RGBA, turning vertical
// boards 90 degrees counter-clockwise.
func (e *Emulator) PresentFrame(fb *Framebuffer, originX, originY, width, visibleHeight int) {
	if !e.cfg.Rotated {
		for y := 0; y < visibleHeight; y++ {
			src := fb.Pix[(originY+y)*fb.Width+originX:]
			dst := e.rgba[y*e.stride:]
			for x := 0; x < width; x++ {
				putRGBA(dst[x*4:], src[x])
			}
		}
		e.height = visibleHeight
		return
	}

	// Source (x, y) lands at column y, row width-1-x.
	for y := 0; y < visibleHeight; y++ {
		src := fb.Pix[(originY+y)*fb.Width+originX:]
		for x := 0; x < width; x++ {
			off := (width-1-x)*e.stride + y*4
			putRGBA(e.rgba[off:], src[x])
		}
	}
	e.height = width
}

func putRGBA(dst []byte, p uint32) {
	dst[0] = byte(p >> 16)
	dst[1] = byte(p >> 8)
	dst[2] = byte(p)
	dst[3] = 0xFF
}

// RunFrame executes frame_skip silent frames without video, then one
// presented frame. Audio from the presented frame only is kept.
func (e *Emulator) RunFrame() {
	e.audioBuffer = e.audioBuffer[:0]

	for i := 0; i < e.frameSkip; i++ {
		e.m.AdvanceFrame(true)
	}
	e.m.psg.ClearSamples()
	e.m.AdvanceFrame(false)

	// Mono to stereo at half level; both speakers carry the same signal.
	for _, sample := range e.m.psg.Samples() {
		s := int16(sample * 32767 * 0.5)
		e.audioBuffer = append(e.audioBuffer, s, s)
	}
}

// GetFramebuffer returns RGBA pixel data for the current frame.
func (e *Emulator) GetFramebuffer() []byte {
	return e.rgba[:e.stride*e.height]
}

// GetFramebufferStride returns the bytes per framebuffer row.
func (e *Emulator) GetFramebufferStride() int {
	return e.stride
}

// GetActiveHeight returns the number of valid framebuffer rows.
func (e *Emulator) GetActiveHeight() int {
	return e.height
}

// GetAudioSamples returns the last frame's audio as 16-bit stereo PCM.
func (e *Emulator) GetAudioSamples() []int16 {
	return e.audioBuffer
}

// SetInput applies a button mask for player.
func (e *Emulator) SetInput(player int, buttons uint32) {
	e.m.SetButtons(player, buttons)
}

// SetPaddle sets analog paddle n.
func (e *Emulator) SetPaddle(n int, v uint8) {
	e.m.SetPaddle(n, v)
}

// GetRegion always reports NTSC.
func (e *Emulator) GetRegion() Region {
	return RegionNTSC
}

// SetRegion is a no-op; timing is fixed per board.
func (e *Emulator) SetRegion(Region) {}

// GetTiming returns FPS and scanline count.
func (e *Emulator) GetTiming() emucore.Timing {
	return emucore.Timing{
		FPS:       e.cfg.FPS,
		Scanlines: e.cfg.Scanlines,
	}
}

// SetOption applies a core option change identified by key.
func (e *Emulator) SetOption(key string, value string) {
	switch key {
	case "watchdog":
		e.m.SetWatchdog(value == "true")
	case "frame_skip":
		n, err := strconv.Atoi(value)
		if err != nil {
			return
		}
		e.frameSkip = min(max(n, 0), maxFrameSkip)
	}
}

// Close releases any resources held by the emulator.
func (e *Emulator) Close() {}

// =============================================================================
// Save State Serialization
// =============================================================================

// Serialize captures the machine into a save state blob.
func (e *Emulator) Serialize() ([]byte, error) {
	return EncodeSnapshot(e.m.SaveState(), e.m.ROMCRC()), nil
}

// Deserialize restores a save state. A blob that fails any check leaves the
// running machine unchanged.
func (e *Emulator) Deserialize(data []byte) error {
	s, err := DecodeSnapshot(data, e.cfg.Variant, e.m.ROMCRC())
	if err != nil {
		return err
	}
	return e.m.LoadState(s)
}

// VerifyState checks if a save state is valid without loading it.
func (e *Emulator) VerifyState(data []byte) error {
	_, err := DecodeSnapshot(data, e.cfg.Variant, e.m.ROMCRC())
	return err
}

// =============================================================================
// MemoryInspector / MemoryMapper
// =============================================================================

// ReadMemory reads the CPU address space starting at addr.
func (e *Emulator) ReadMemory(addr uint32, buf []byte) uint32 {
	var count uint32
	for i := range buf {
		cur := addr + uint32(i)
		if cur > 0xFFFF {
			return count
		}
		buf[i] = e.m.ReadAddress(uint16(cur))
		count++
	}
	return count
}

// MemoryMap returns a list of available memory regions with sizes.
func (e *Emulator) MemoryMap() []emucore.MemoryRegion {
	if e.cfg.Arcade {
		return []emucore.MemoryRegion{
			{Type: emucore.MemorySystemRAM, Size: 0x5000},
		}
	}
	return []emucore.MemoryRegion{
		{Type: emucore.MemorySystemRAM, Size: 0x1000},
	}
}

// ReadRegion returns a copy of the specified memory region.
func (e *Emulator) ReadRegion(regionType int) []byte {
	switch regionType {
	case emucore.MemorySystemRAM:
		ram := e.m.RAM()
		out := make([]byte, len(ram))
		copy(out, ram)
		return out
	default:
		return nil
	}
}

// WriteRegion writes data to the specified memory region.
func (e *Emulator) WriteRegion(regionType int, data []byte) {
	if regionType == emucore.MemorySystemRAM {
		e.m.WriteRAM(data)
	}
}
