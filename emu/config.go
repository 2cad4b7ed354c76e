package emu

import (
	"errors"
	"fmt"
)

// Variant selects one of the supported boards.
type Variant int

const (
	VariantVicDual Variant = iota
	VariantAstrocade
	VariantAstrocadeBIOS
	VariantAstrocadeArcade
)

var variantNames = [...]string{
	VariantVicDual:         "vicdual",
	VariantAstrocade:       "astrocade",
	VariantAstrocadeBIOS:   "astrocade-bios",
	VariantAstrocadeArcade: "astrocade-arcade",
}

// ErrUnknownVariant is returned for a variant id or name with no config.
var ErrUnknownVariant = errors.New("unknown platform variant")

// ErrROMTooLarge is returned when a ROM or BIOS image does not fit its map.
var ErrROMTooLarge = errors.New("rom image too large")

func (v Variant) String() string {
	if v < 0 || int(v) >= len(variantNames) {
		return fmt.Sprintf("Variant(%d)", int(v))
	}
	return variantNames[v]
}

// ParseVariant resolves a variant name such as "astrocade-arcade".
func ParseVariant(name string) (Variant, error) {
	for i, n := range variantNames {
		if n == name {
			return Variant(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
}

// Variants lists every supported variant.
func Variants() []Variant {
	return []Variant{VariantVicDual, VariantAstrocade, VariantAstrocadeBIOS, VariantAstrocadeArcade}
}

// DipDefault is a power-on value for one input register.
type DipDefault struct {
	Port  uint8
	Value uint8
}

// Config holds everything that differs between variants. It is fixed at
// construction time.
type Config struct {
	Variant Variant
	Title   string

	// Framebuffer size in native orientation.
	Width  int
	Height int
	// Rotated displays are presented turned 90 degrees counter-clockwise.
	Rotated bool

	CPUClockHz    float64
	AYClockHz     float64 // initial sound chip clock
	Scanlines     int
	CyclesPerLine float64
	FPS           int

	RAMSize  int
	ROMSize  int // ROM images are zero padded to this size
	BIOSSize int // 0 when the board has no separate BIOS

	// Arcade selects the Astrocade arcade memory map and full-rate
	// INLIN/VERBL registers.
	Arcade bool
	// ROMIsBIOS loads the supplied image into the BIOS slot.
	ROMIsBIOS bool

	Dips []DipDefault
}

const (
	vicDualXTAL      = 15468000.0
	vicDualCPUClock  = vicDualXTAL / 8
	vicDualScanlines = 0x106
	astrocadeCPU     = 1789000.0
)

var configs = map[Variant]Config{
	VariantVicDual: {
		Variant:    VariantVicDual,
		Title:      "VIC Dual",
		Width:      256,
		Height:     224,
		Rotated:    true,
		CPUClockHz: vicDualCPUClock,
		AYClockHz:  1789772,
		Scanlines:  vicDualScanlines,
		// Horizontal sync runs at XTAL/3 over 262 lines.
		CyclesPerLine: vicDualCPUClock / (vicDualXTAL / 3 / vicDualScanlines),
		FPS:           60,
		RAMSize:       0x1000,
		ROMSize:       0x4040,
	},
	VariantAstrocade: {
		Variant:       VariantAstrocade,
		Title:         "Bally Astrocade",
		Width:         160,
		Height:        102,
		CPUClockHz:    astrocadeCPU,
		AYClockHz:     astrocadeCPU,
		Scanlines:     102,
		CyclesPerLine: astrocadeCPU / (60 * 102),
		FPS:           60,
		RAMSize:       0x1000,
		ROMSize:       0x2000,
		BIOSSize:      0x2000,
	},
	VariantAstrocadeBIOS: {
		Variant:       VariantAstrocadeBIOS,
		Title:         "Bally Astrocade (BIOS)",
		Width:         160,
		Height:        102,
		CPUClockHz:    astrocadeCPU,
		AYClockHz:     astrocadeCPU,
		Scanlines:     102,
		CyclesPerLine: astrocadeCPU / (60 * 102),
		FPS:           60,
		RAMSize:       0x1000,
		ROMSize:       0x2000,
		BIOSSize:      0x2000,
		ROMIsBIOS:     true,
	},
	VariantAstrocadeArcade: {
		Variant:       VariantAstrocadeArcade,
		Title:         "Bally/Midway Astrocade Arcade",
		Width:         320,
		Height:        204,
		CPUClockHz:    astrocadeCPU,
		AYClockHz:     astrocadeCPU,
		Scanlines:     204,
		CyclesPerLine: astrocadeCPU / (60 * 204),
		FPS:           60,
		RAMSize:       0x5000,
		ROMSize:       0xb000,
		Arcade:        true,
		Dips: []DipDefault{
			{Port: 0x10, Value: 0xff},
			{Port: 0x13, Value: 0xfe},
		},
	},
}

// ConfigFor returns the configuration of v.
func ConfigFor(v Variant) (Config, error) {
	cfg, ok := configs[v]
	if !ok {
		return Config{}, fmt.Errorf("%w: %d", ErrUnknownVariant, int(v))
	}
	return cfg, nil
}

// Timing returns the scheduler timing for the config.
func (c *Config) Timing() Timing {
	return Timing{
		CPUClockHz:      c.CPUClockHz,
		Scanlines:       c.Scanlines,
		CyclesPerLineFP: cyclesPerLineFP(c.CyclesPerLine),
		FPS:             c.FPS,
	}
}

// Astrocade reports whether the variant uses the Astrocade hardware.
func (c *Config) Astrocade() bool {
	return c.Variant != VariantVicDual
}

// padImage copies data into a zeroed buffer of size bytes.
func padImage(data []byte, size int, what string) ([]byte, error) {
	if len(data) > size {
		return nil, fmt.Errorf("%w: %s is %d bytes, limit %d", ErrROMTooLarge, what, len(data), size)
	}
	buf := make([]byte, size)
	copy(buf, data)
	return buf, nil
}
