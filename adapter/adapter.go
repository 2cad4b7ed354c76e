package adapter

import (
	"github.com/user-none/eblitui/coreif"
	"github.com/user-none/z80arcade/emu"
)

// Compile-time interface check.
var _ coreif.CoreFactory = (*Factory)(nil)

// biosKey names the Astrocade BIOS slot offered to frontends.
const biosKey = "astrocade_bios"

// Factory implements coreif.CoreFactory for one board variant.
type Factory struct {
	Variant emu.Variant
}

// NewFactory returns a factory for the named variant.
func NewFactory(name string) (*Factory, error) {
	v, err := emu.ParseVariant(name)
	if err != nil {
		return nil, err
	}
	return &Factory{Variant: v}, nil
}

var vicDualButtons = []coreif.Button{
	{Name: "Fire 1", ID: 4, DefaultKey: "J", DefaultPad: "A"},
	{Name: "Fire 2", ID: 5, DefaultKey: "K", DefaultPad: "B"},
	{Name: "Start 1", ID: 6, DefaultKey: "Enter", DefaultPad: "Start"},
	{Name: "Start 2", ID: 7, DefaultKey: "Backspace", DefaultPad: "Back"},
	{Name: "Coin", ID: 8, DefaultKey: "Space", DefaultPad: "Guide"},
}

// astrocadeButtons returns the trigger followed by the 24 keypad keys. The
// directions are the fixed bits 0-3.
func astrocadeButtons() []coreif.Button {
	buttons := []coreif.Button{
		{Name: "Trigger", ID: 4, DefaultKey: "J", DefaultPad: "A"},
	}
	for i, key := range emu.AstrocadeKeypad {
		b := coreif.Button{Name: "Keypad " + key, ID: 5 + i}
		switch key {
		case "=":
			b.DefaultKey, b.DefaultPad = "Enter", "Start"
		case "0", "1", "2", "3", "4", "5", "6", "7", "8", "9":
			b.DefaultKey = "Digit" + key
		}
		buttons = append(buttons, b)
	}
	return buttons
}

func coreOptions() []coreif.CoreOption {
	return []coreif.CoreOption{
		{
			Key:         "watchdog",
			Label:       "Watchdog",
			Description: "Reset the CPU when the game stops polling its hand controls",
			Type:        coreif.CoreOptionBool,
			Default:     "false",
			Category:    coreif.CoreOptionCategoryCore,
		},
		{
			Key:         "frame_skip",
			Label:       "Frame Skip",
			Description: "Frames emulated without video for every frame shown",
			Type:        coreif.CoreOptionSelect,
			Default:     "0",
			Values:      []string{"0", "1", "2", "3"},
			Category:    coreif.CoreOptionCategoryVideo,
		},
	}
}

// SystemInfo returns system metadata for UI configuration.
func (f *Factory) SystemInfo() coreif.SystemInfo {
	cfg, err := emu.ConfigFor(f.Variant)
	if err != nil {
		return coreif.SystemInfo{Name: emu.Name}
	}

	width, height := cfg.Width, cfg.Height
	if cfg.Rotated {
		width, height = height, width
	}

	info := coreif.SystemInfo{
		Name:             emu.Name + "-" + f.Variant.String(),
		ConsoleName:      cfg.Title,
		Extensions:       []string{".bin", ".rom"},
		ScreenWidth:      width,
		MaxScreenHeight:  height,
		PixelAspectRatio: 1.0,
		SampleRate:       48000,
		Players:          2,
		CoreOptions:      coreOptions(),
		DataDirName:      emu.Name,
		CoreName:         emu.Name,
		CoreVersion:      emu.Version,
		SerializeSize:    emu.SerializeSize(f.Variant),
	}

	mame := []coreif.MetadataVariant{{Name: cfg.Title, RDBName: "MAME", ThumbnailRepo: "MAME"}}
	switch f.Variant {
	case emu.VariantVicDual:
		info.Buttons = vicDualButtons
		info.MetadataVariants = mame
		info.ConsoleID = 27
	case emu.VariantAstrocadeArcade:
		info.Buttons = astrocadeButtons()
		info.MetadataVariants = mame
		info.ConsoleID = 27
		info.Players = 4
	default:
		info.Buttons = astrocadeButtons()
		info.Extensions = append(info.Extensions, ".a")
		info.MetadataVariants = []coreif.MetadataVariant{{
			Name:          cfg.Title,
			RDBName:       "Bally - Astrocade",
			ThumbnailRepo: "Bally_-_Astrocade",
		}}
		info.Players = 4
		if f.Variant == emu.VariantAstrocade {
			info.BIOSOptions = []coreif.BIOSOption{{
				Key:   biosKey,
				Label: "Astrocade BIOS",
				Variants: []coreif.BIOSVariant{
					{Label: "Bally Astrocade", Filename: "astrocade.bin"},
				},
			}}
		}
	}
	return info
}

// CreateEmulator creates a new emulator instance with the given ROM. These
// boards only shipped as NTSC so the region is ignored.
func (f *Factory) CreateEmulator(rom []byte, region coreif.Region) (coreif.Emulator, error) {
	e, err := emu.NewEmulator(f.Variant, rom)
	if err != nil {
		return nil, err
	}
	return &Emulator{Emulator: e}, nil
}

// DetectRegion always reports NTSC. The bool return indicates the region
// was known rather than guessed.
func (f *Factory) DetectRegion(rom []byte) (coreif.Region, bool) {
	return coreif.Region(emu.DefaultRegion()), true
}
