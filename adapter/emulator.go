package adapter

import (
	"log"

	"github.com/user-none/eblitui/coreif"
	"github.com/user-none/z80arcade/emu"
)

// Compile-time interface checks.
var (
	_ coreif.Emulator        = (*Emulator)(nil)
	_ coreif.SaveStater      = (*Emulator)(nil)
	_ coreif.MemoryInspector = (*Emulator)(nil)
	_ coreif.MemoryMapper    = (*Emulator)(nil)
)

// Emulator presents an emu.Emulator to the frontends. Region and memory
// types are translated; everything else passes straight through.
type Emulator struct {
	*emu.Emulator
}

// GetRegion always reports NTSC.
func (e *Emulator) GetRegion() coreif.Region {
	return coreif.Region(e.Emulator.GetRegion())
}

// SetRegion is a no-op; timing is fixed per board.
func (e *Emulator) SetRegion(coreif.Region) {}

// GetTiming returns FPS and scanline count.
func (e *Emulator) GetTiming() coreif.Timing {
	t := e.Emulator.GetTiming()
	return coreif.Timing{FPS: t.FPS, Scanlines: t.Scanlines}
}

// SetBIOS installs a BIOS image. Only the Astrocade cartridge console takes
// one; a bad image is logged and the built-in BIOS stays.
func (e *Emulator) SetBIOS(key string, data []byte) {
	if key != biosKey || len(data) == 0 {
		return
	}
	if err := e.Machine().LoadBIOS(data); err != nil {
		log.Printf("adapter: %s: %v", key, err)
	}
}

// Start has nothing to finalize; options take effect as they are set.
func (e *Emulator) Start() {}

// MemoryMap lists the RAM exposed to frontends.
func (e *Emulator) MemoryMap() []coreif.MemoryRegion {
	regions := e.Emulator.MemoryMap()
	out := make([]coreif.MemoryRegion, len(regions))
	for i, r := range regions {
		out[i] = coreif.MemoryRegion{Type: r.Type, Size: r.Size}
	}
	return out
}
