package main

import (
	libretro "github.com/user-none/eblitui/libretro"
	"github.com/user-none/z80arcade/adapter"
	"github.com/user-none/z80arcade/emu"
)

func init() {
	libretro.RegisterFactory(&adapter.Factory{Variant: emu.VariantAstrocade}, []libretro.RetropadMapping{
		{RetroID: libretro.JoypadA, BitID: 4},      // Trigger
		{RetroID: libretro.JoypadB, BitID: 5},      // Keypad P
		{RetroID: libretro.JoypadStart, BitID: 10}, // Keypad =
	})
}

func main() {}
