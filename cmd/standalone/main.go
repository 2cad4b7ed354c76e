//go:build !libretro && !ios

package main

import (
	"flag"
	"log"
	"strconv"

	"github.com/user-none/eblitui/standalone"
	"github.com/user-none/z80arcade/adapter"
	"github.com/user-none/z80arcade/romloader"
)

func main() {
	romPath := flag.String("rom", "", "path to ROM file (opens UI if not provided)")
	platform := flag.String("platform", "astrocade", "board: vicdual, astrocade, astrocade-bios or astrocade-arcade")
	watchdog := flag.Bool("watchdog", false, "reset the CPU when the game stops polling its controls")
	frameSkip := flag.Int("frame-skip", 0, "frames emulated without video for every frame shown (0-3)")
	biosPath := flag.String("bios", "", "path to an Astrocade BIOS image")
	flag.Parse()

	factory, err := adapter.NewFactory(*platform)
	if err != nil {
		log.Fatal(err)
	}

	if *romPath != "" {
		options := map[string]string{}
		if *watchdog {
			options["watchdog"] = "true"
		}
		if *frameSkip > 0 {
			options["frame_skip"] = strconv.Itoa(*frameSkip)
		}
		var bios map[string][]byte
		if *biosPath != "" {
			data, _, err := romloader.LoadROM(*biosPath)
			if err != nil {
				log.Fatal(err)
			}
			bios = map[string][]byte{"astrocade_bios": data}
		}
		if err := standalone.RunDirect(factory, *romPath, "ntsc", options, bios); err != nil {
			log.Fatal(err)
		}
		return
	}

	if err := standalone.Run(factory); err != nil {
		log.Fatal(err)
	}
}
