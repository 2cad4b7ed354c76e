package emu

import (
	emucore "github.com/user-none/eblitui/api"
)

// Region is an alias for emucore.Region.
type Region = emucore.Region

const (
	RegionNTSC = emucore.RegionNTSC
	RegionPAL  = emucore.RegionPAL
)

// DefaultRegion returns the only region these boards shipped in.
func DefaultRegion() Region {
	return RegionNTSC
}

// astrocadeCartSentinel is the first byte of every Astrocade cartridge;
// the BIOS checks it before jumping in.
const astrocadeCartSentinel = 0x55

// DetectVariant guesses the board a ROM image was dumped from. The result
// is a hint; ok is false when nothing identifies the image.
func DetectVariant(rom []byte) (Variant, bool) {
	switch {
	case len(rom) == 0:
		return VariantVicDual, false
	case rom[0] == astrocadeCartSentinel && len(rom) <= 0x2000:
		return VariantAstrocade, true
	case len(rom) <= 0x4040:
		return VariantVicDual, false
	case len(rom) <= 0xb000:
		return VariantAstrocadeArcade, false
	}
	return VariantVicDual, false
}
