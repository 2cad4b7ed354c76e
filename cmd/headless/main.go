// Command headless runs a board without a window, for scripted captures
// and regression runs.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/user-none/z80arcade/cli"
	"github.com/user-none/z80arcade/emu"
	"github.com/user-none/z80arcade/romloader"
)

func main() {
	platform := flag.String("platform", "", "board: vicdual, astrocade, astrocade-bios or astrocade-arcade (guessed from the ROM if empty)")
	romPath := flag.String("rom", "", "path to ROM file")
	biosPath := flag.String("bios", "", "path to Astrocade BIOS image")
	frames := flag.Int("frames", 600, "number of frames to run")
	input := flag.String("input", "", "scripted input, e.g. coin@60,start@120+10,2:fire@300")
	pngPath := flag.String("png", "", "write the last frame to this PNG file")
	scale := flag.Int("scale", 1, "PNG scale factor")
	wavPath := flag.String("wav", "", "record audio to this WAV file")
	savePath := flag.String("save", "", "write a save state when done")
	loadPath := flag.String("load", "", "load a save state before running")
	watchdog := flag.Bool("watchdog", false, "reset the CPU when the game stops polling its controls")
	verbose := flag.Bool("v", false, "log bus diagnostics")
	flag.Parse()

	logger := log.New(os.Stderr, "z80arcade: ", log.Ltime)

	var rom []byte
	if *romPath != "" {
		data, name, err := romloader.LoadROM(*romPath)
		if err != nil {
			logger.Fatalf("Failed to load ROM: %v", err)
		}
		logger.Printf("loaded %s (%d bytes)", name, len(data))
		rom = data
	}

	variant := emu.VariantAstrocade
	if *platform != "" {
		v, err := emu.ParseVariant(*platform)
		if err != nil {
			logger.Fatal(err)
		}
		variant = v
	} else if rom != nil {
		v, ok := emu.DetectVariant(rom)
		if !ok {
			logger.Printf("could not identify the ROM, assuming %s", v)
		}
		variant = v
	}

	e, err := emu.NewEmulator(variant, rom)
	if err != nil {
		logger.Fatal(err)
	}
	m := e.Machine()
	if *verbose {
		m.SetLogger(logger)
	}
	m.SetWatchdog(*watchdog)

	if *biosPath != "" {
		bios, _, err := romloader.LoadROM(*biosPath)
		if err != nil {
			logger.Fatalf("Failed to load BIOS: %v", err)
		}
		if err := m.LoadBIOS(bios); err != nil {
			logger.Fatal(err)
		}
	}

	r := cli.NewRunner(e, logger)
	if *input != "" {
		events, err := cli.ParseInputScript(*input)
		if err != nil {
			logger.Fatal(err)
		}
		r.SetInputScript(events)
	}
	if *loadPath != "" {
		if err := r.LoadState(*loadPath); err != nil {
			logger.Fatalf("Failed to load state: %v", err)
		}
	}
	if *wavPath != "" {
		if err := r.RecordAudio(*wavPath); err != nil {
			logger.Fatal(err)
		}
	}

	if err := r.Run(*frames); err != nil {
		logger.Fatal(err)
	}
	if err := r.Close(); err != nil {
		logger.Fatal(err)
	}
	logger.Printf("ran %d frames of %s", r.Frame(), variant)

	if *pngPath != "" {
		if err := r.Screenshot(*pngPath, *scale); err != nil {
			logger.Fatal(err)
		}
	}
	if *savePath != "" {
		if err := r.SaveState(*savePath); err != nil {
			logger.Fatalf("Failed to save state: %v", err)
		}
	}
}
