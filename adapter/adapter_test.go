package adapter

import (
	"errors"
	"testing"

	"github.com/user-none/eblitui/coreif"
	"github.com/user-none/z80arcade/emu"
)

// TestFactory_SystemInfo verifies per-variant geometry and buttons.
func TestFactory_SystemInfo(t *testing.T) {
	testCases := []struct {
		variant       emu.Variant
		width, height int
		buttons       int
	}{
		{emu.VariantVicDual, 224, 256, 5},
		{emu.VariantAstrocade, 160, 102, 25},
		{emu.VariantAstrocadeBIOS, 160, 102, 25},
		{emu.VariantAstrocadeArcade, 320, 204, 25},
	}
	for _, tc := range testCases {
		info := (&Factory{Variant: tc.variant}).SystemInfo()
		if info.ScreenWidth != tc.width || info.MaxScreenHeight != tc.height {
			t.Errorf("%s: expected %dx%d, got %dx%d",
				tc.variant, tc.width, tc.height, info.ScreenWidth, info.MaxScreenHeight)
		}
		if len(info.Buttons) != tc.buttons {
			t.Errorf("%s: expected %d buttons, got %d", tc.variant, tc.buttons, len(info.Buttons))
		}
		if info.SerializeSize != emu.SerializeSize(tc.variant) || info.SerializeSize == 0 {
			t.Errorf("%s: serialize size %d", tc.variant, info.SerializeSize)
		}
		if info.SampleRate != 48000 {
			t.Errorf("%s: expected 48000Hz, got %d", tc.variant, info.SampleRate)
		}
	}
}

// TestFactory_ButtonIDs verifies button ids are unique and above the
// direction bits.
func TestFactory_ButtonIDs(t *testing.T) {
	for _, v := range emu.Variants() {
		seen := map[int]bool{}
		for _, b := range (&Factory{Variant: v}).SystemInfo().Buttons {
			if b.ID < 4 || b.ID > 31 {
				t.Errorf("%s %s: id %d out of range", v, b.Name, b.ID)
			}
			if seen[b.ID] {
				t.Errorf("%s %s: duplicate id %d", v, b.Name, b.ID)
			}
			seen[b.ID] = true
		}
	}
}

// TestFactory_Options verifies the core options are advertised.
func TestFactory_Options(t *testing.T) {
	info := (&Factory{Variant: emu.VariantAstrocade}).SystemInfo()
	keys := map[string]coreif.CoreOption{}
	for _, o := range info.CoreOptions {
		keys[o.Key] = o
	}
	if o, ok := keys["watchdog"]; !ok || o.Type != coreif.CoreOptionBool {
		t.Errorf("watchdog: expected a bool option, got %+v", o)
	}
	if o, ok := keys["frame_skip"]; !ok || len(o.Values) != 4 {
		t.Errorf("frame_skip: expected four values, got %+v", o)
	}
}

// TestNewFactory verifies variant names resolve.
func TestNewFactory(t *testing.T) {
	f, err := NewFactory("astrocade-arcade")
	if err != nil || f.Variant != emu.VariantAstrocadeArcade {
		t.Errorf("expected astrocade-arcade, got %v %v", f, err)
	}
	if _, err := NewFactory("sms"); !errors.Is(err, emu.ErrUnknownVariant) {
		t.Errorf("expected ErrUnknownVariant, got %v", err)
	}
}

// TestFactory_CreateEmulator verifies emulators are built and ROM errors
// surface.
func TestFactory_CreateEmulator(t *testing.T) {
	f := &Factory{Variant: emu.VariantVicDual}
	e, err := f.CreateEmulator([]byte{0x18, 0xfe}, coreif.RegionNTSC)
	if err != nil {
		t.Fatalf("CreateEmulator: %v", err)
	}
	e.RunFrame()
	if len(e.GetFramebuffer()) == 0 {
		t.Errorf("expected a framebuffer after one frame")
	}

	if _, err := f.CreateEmulator(make([]byte, 0x10000), coreif.RegionNTSC); !errors.Is(err, emu.ErrROMTooLarge) {
		t.Errorf("oversized rom: expected ErrROMTooLarge, got %v", err)
	}

	region, ok := f.DetectRegion(nil)
	if region != coreif.RegionNTSC || !ok {
		t.Errorf("DetectRegion: expected NTSC, got %v %v", region, ok)
	}
}

// TestFactory_Metadata verifies metadata lookups and the BIOS slot.
func TestFactory_Metadata(t *testing.T) {
	testCases := []struct {
		variant emu.Variant
		rdb     string
		bios    int
	}{
		{emu.VariantVicDual, "MAME", 0},
		{emu.VariantAstrocade, "Bally - Astrocade", 1},
		{emu.VariantAstrocadeBIOS, "Bally - Astrocade", 0},
		{emu.VariantAstrocadeArcade, "MAME", 0},
	}
	for _, tc := range testCases {
		info := (&Factory{Variant: tc.variant}).SystemInfo()
		if len(info.MetadataVariants) != 1 || info.MetadataVariants[0].RDBName != tc.rdb {
			t.Errorf("%s: expected rdb %q, got %+v", tc.variant, tc.rdb, info.MetadataVariants)
		}
		if len(info.BIOSOptions) != tc.bios {
			t.Errorf("%s: expected %d bios options, got %d", tc.variant, tc.bios, len(info.BIOSOptions))
		}
		if info.PixelAspectRatio != 1.0 {
			t.Errorf("%s: expected square pixels, got %v", tc.variant, info.PixelAspectRatio)
		}
	}
	if o := (&Factory{Variant: emu.VariantAstrocade}).SystemInfo().BIOSOptions[0]; o.Key != biosKey || o.Required {
		t.Errorf("astrocade bios: expected optional %q, got %+v", biosKey, o)
	}
}

// TestEmulator_Timing verifies timing and region pass through.
func TestEmulator_Timing(t *testing.T) {
	e, err := (&Factory{Variant: emu.VariantAstrocade}).CreateEmulator([]byte{0x55}, coreif.RegionPAL)
	if err != nil {
		t.Fatalf("CreateEmulator: %v", err)
	}
	if tm := e.GetTiming(); tm.FPS != 60 || tm.Scanlines != 102 {
		t.Errorf("timing: expected 60fps 102 lines, got %+v", tm)
	}
	e.SetRegion(coreif.RegionPAL)
	if r := e.GetRegion(); r != coreif.RegionNTSC {
		t.Errorf("region: expected NTSC, got %v", r)
	}

	mm, ok := e.(coreif.MemoryMapper)
	if !ok {
		t.Fatalf("expected a MemoryMapper")
	}
	regions := mm.MemoryMap()
	if len(regions) != 1 || regions[0].Type != coreif.MemorySystemRAM || regions[0].Size != 0x1000 {
		t.Errorf("memory map: expected 4KB system RAM, got %+v", regions)
	}
}

// TestEmulator_SetBIOS verifies a BIOS image reaches the machine under its
// key and other keys are ignored.
func TestEmulator_SetBIOS(t *testing.T) {
	e, err := (&Factory{Variant: emu.VariantAstrocade}).CreateEmulator([]byte{0x55}, coreif.RegionNTSC)
	if err != nil {
		t.Fatalf("CreateEmulator: %v", err)
	}
	m := e.(*Emulator).Machine()

	e.SetBIOS("other_bios", []byte{0x76})
	if got := m.ReadAddress(0x0000); got == 0x76 {
		t.Errorf("unknown key: expected the BIOS unchanged")
	}

	e.SetBIOS(biosKey, []byte{0x76, 0x00})
	e.Start()
	if got := m.ReadAddress(0x0000); got != 0x76 {
		t.Errorf("bios byte 0: expected 0x76, got 0x%02X", got)
	}

	// Oversized images are refused and logged.
	e.SetBIOS(biosKey, make([]byte, 0x4000))
	if got := m.ReadAddress(0x0000); got != 0x76 {
		t.Errorf("oversized bios: expected previous image kept, got 0x%02X", got)
	}
}
