// Package emuios provides a gomobile-compatible interface to the emulator.
package emuios

import (
	"fmt"
	"hash/crc32"
	"os"
	"path/filepath"

	"github.com/user-none/z80arcade/emu"
	"github.com/user-none/z80arcade/romloader"
)

// ExtractResult contains the result of ROM extraction
type ExtractResult struct {
	Crc32    string // Hex string, e.g., "AABBCCDD"
	Filename string // Original filename from archive, e.g., "Gorf.bin"
}

// currentEmu holds the emulator state (unexported)
var currentEmu *emulatorState

type emulatorState struct {
	emulator  *emu.Emulator
	frameData []byte
	audioData []byte
	stateData []byte
}

// InitFromPath creates an emulator from a ROM file path.
// Automatically extracts from ZIP/7z/gzip/xz/RAR if needed.
// platform is a board name such as "astrocade"; empty guesses from the ROM.
// Returns true on success, false on error.
func InitFromPath(path string, platform string) bool {
	rom, _, err := romloader.LoadROM(path)
	if err != nil {
		return false
	}

	variant, _ := emu.DetectVariant(rom)
	if platform != "" {
		if variant, err = emu.ParseVariant(platform); err != nil {
			return false
		}
	}

	e, err := emu.NewEmulator(variant, rom)
	if err != nil {
		return false
	}
	currentEmu = &emulatorState{emulator: e}
	return true
}

// LoadBIOS replaces the Astrocade BIOS. Returns true on success.
func LoadBIOS(path string) bool {
	if currentEmu == nil {
		return false
	}
	bios, _, err := romloader.LoadROM(path)
	if err != nil {
		return false
	}
	return currentEmu.emulator.Machine().LoadBIOS(bios) == nil
}

// Close releases the emulator.
func Close() {
	currentEmu = nil
}

// RunFrame executes one frame of emulation.
func RunFrame() {
	if currentEmu == nil {
		return
	}
	e := currentEmu.emulator
	e.RunFrame()

	currentEmu.frameData = e.GetFramebuffer()

	// Convert audio samples to bytes
	samples := e.GetAudioSamples()
	if len(samples) > 0 {
		currentEmu.audioData = make([]byte, len(samples)*2)
		for i, s := range samples {
			currentEmu.audioData[i*2] = byte(s)
			currentEmu.audioData[i*2+1] = byte(s >> 8)
		}
	} else {
		currentEmu.audioData = nil
	}
}

// FrameWidth returns the display width, after rotation for vertical boards.
func FrameWidth() int {
	if currentEmu == nil {
		return 0
	}
	return currentEmu.emulator.GetFramebufferStride() / 4
}

// FrameHeight returns the display height, after rotation for vertical
// boards.
func FrameHeight() int {
	if currentEmu == nil {
		return 0
	}
	return currentEmu.emulator.GetActiveHeight()
}

// GetFrameData returns the RGBA frame buffer.
func GetFrameData() []byte {
	if currentEmu == nil {
		return nil
	}
	return currentEmu.frameData
}

// GetAudioData returns the entire audio buffer.
func GetAudioData() []byte {
	if currentEmu == nil {
		return nil
	}
	return currentEmu.audioData
}

// SetInput sets a player's button mask.
func SetInput(player int, buttons int) {
	if currentEmu != nil {
		currentEmu.emulator.SetInput(player, uint32(buttons))
	}
}

// SetPaddle sets an Astrocade paddle position.
func SetPaddle(n int, value int) {
	if currentEmu != nil {
		currentEmu.emulator.SetPaddle(n, uint8(value))
	}
}

// SetOption applies a core option such as "watchdog" or "frame_skip".
func SetOption(key, value string) {
	if currentEmu != nil {
		currentEmu.emulator.SetOption(key, value)
	}
}

// Platform returns the board name of the running emulator.
func Platform() string {
	if currentEmu == nil {
		return ""
	}
	return currentEmu.emulator.Machine().Config().Variant.String()
}

// SaveState creates a save state. Returns true on success.
func SaveState() bool {
	if currentEmu == nil {
		return false
	}
	data, err := currentEmu.emulator.Serialize()
	if err != nil {
		currentEmu.stateData = nil
		return false
	}
	currentEmu.stateData = data
	return true
}

// StateLen returns the length of the last saved state.
func StateLen() int {
	if currentEmu == nil {
		return 0
	}
	return len(currentEmu.stateData)
}

// StateByte returns a single byte from the saved state at index i.
func StateByte(i int) int {
	if currentEmu == nil || i < 0 || i >= len(currentEmu.stateData) {
		return 0
	}
	return int(currentEmu.stateData[i])
}

// LoadState loads a save state. Returns true on success.
func LoadState(data []byte) bool {
	if currentEmu == nil {
		return false
	}
	return currentEmu.emulator.Deserialize(data) == nil
}

// DetectPlatformFromPath returns the guessed board name for a ROM file.
func DetectPlatformFromPath(path string) string {
	rom, _, err := romloader.LoadROM(path)
	if err != nil {
		return ""
	}
	v, _ := emu.DetectVariant(rom)
	return v.String()
}

// GetFPS returns the target FPS. Every board runs at 60.
func GetFPS() int {
	return 60
}

// GetCRC32FromPath calculates the CRC32 checksum of a ROM file.
// Automatically extracts from ZIP/7z/gzip/xz/RAR if needed.
// Returns -1 on error.
func GetCRC32FromPath(path string) int64 {
	rom, _, err := romloader.LoadROM(path)
	if err != nil {
		return -1
	}

	return int64(crc32.ChecksumIEEE(rom))
}

// ExtractAndStoreROM extracts a ROM from an archive (or copies a raw ROM),
// calculates its CRC32, and stores it as {destDir}/{CRC32}.bin.
// If a file with the same CRC32 already exists, it skips writing.
// Returns the CRC32 and original filename on success, or an error.
func ExtractAndStoreROM(srcPath, destDir string) (*ExtractResult, error) {
	rom, filename, err := romloader.LoadROM(srcPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load ROM: %w", err)
	}

	crc := crc32.ChecksumIEEE(rom)
	crcHex := fmt.Sprintf("%08X", crc)

	destPath := filepath.Join(destDir, crcHex+".bin")

	// Same CRC means same content
	if _, err := os.Stat(destPath); err == nil {
		return &ExtractResult{Crc32: crcHex, Filename: filename}, nil
	}

	if err := os.WriteFile(destPath, rom, 0644); err != nil {
		return nil, fmt.Errorf("failed to write ROM: %w", err)
	}

	return &ExtractResult{Crc32: crcHex, Filename: filename}, nil
}
