package emuios

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTestROM(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "game.bin")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to create test ROM: %v", err)
	}
	return path
}

// TestBridge_Lifecycle verifies init, frames and save states.
func TestBridge_Lifecycle(t *testing.T) {
	path := writeTestROM(t, []byte{0x18, 0xfe})
	if !InitFromPath(path, "vicdual") {
		t.Fatalf("InitFromPath failed")
	}
	defer Close()

	if Platform() != "vicdual" {
		t.Errorf("platform: expected vicdual, got %q", Platform())
	}
	RunFrame()
	if FrameWidth() != 224 || FrameHeight() != 256 {
		t.Errorf("expected 224x256, got %dx%d", FrameWidth(), FrameHeight())
	}
	if len(GetFrameData()) != 224*256*4 {
		t.Errorf("frame data: got %d bytes", len(GetFrameData()))
	}
	if len(GetAudioData()) == 0 {
		t.Errorf("expected audio after a frame")
	}

	if !SaveState() || StateLen() == 0 {
		t.Fatalf("SaveState failed")
	}
	state := make([]byte, StateLen())
	for i := range state {
		state[i] = byte(StateByte(i))
	}
	RunFrame()
	if !LoadState(state) {
		t.Errorf("LoadState rejected its own state")
	}
	if LoadState(state[:8]) {
		t.Errorf("LoadState accepted a truncated state")
	}
	if LoadBIOS(path) {
		t.Errorf("LoadBIOS: VIC Dual has no BIOS")
	}
}

// TestBridge_Errors verifies failures report false and a closed bridge is
// inert.
func TestBridge_Errors(t *testing.T) {
	path := writeTestROM(t, []byte{0x00})
	if InitFromPath(path, "sms") {
		t.Errorf("unknown platform accepted")
	}
	if InitFromPath(filepath.Join(t.TempDir(), "missing.bin"), "") {
		t.Errorf("missing file accepted")
	}

	Close()
	RunFrame()
	if GetFrameData() != nil || SaveState() || FrameWidth() != 0 {
		t.Errorf("closed bridge should do nothing")
	}
}

// TestBridge_ExtractAndStoreROM verifies ROMs are stored by CRC.
func TestBridge_ExtractAndStoreROM(t *testing.T) {
	path := writeTestROM(t, []byte{0x55, 0x01, 0x02})
	dest := t.TempDir()

	res, err := ExtractAndStoreROM(path, dest)
	if err != nil {
		t.Fatalf("ExtractAndStoreROM: %v", err)
	}
	if res.Filename != "game.bin" {
		t.Errorf("filename: expected game.bin, got %q", res.Filename)
	}
	if GetCRC32FromPath(path) < 0 {
		t.Errorf("CRC32 failed")
	}
	if _, err := os.Stat(filepath.Join(dest, res.Crc32+".bin")); err != nil {
		t.Errorf("stored ROM missing: %v", err)
	}
	if DetectPlatformFromPath(path) != "astrocade" {
		t.Errorf("expected astrocade, got %q", DetectPlatformFromPath(path))
	}
}
