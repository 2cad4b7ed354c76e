package emu

import (
	"bytes"
	"errors"
	"testing"

	"github.com/user-none/go-chip-z80"
)

func newTestZ80(t *testing.T) *Z80 {
	t.Helper()
	m, err := NewMachine(VariantVicDual, testVicDualProgram)
	if err != nil {
		t.Fatalf("NewMachine: %v", err)
	}
	c, ok := m.CPU().(*Z80)
	if !ok {
		t.Fatalf("expected a *Z80, got %T", m.CPU())
	}
	return c
}

// TestZ80_StateRoundTrip verifies loading a state and saving it again gives
// the same bytes, including the core's interrupt data byte.
func TestZ80_StateRoundTrip(t *testing.T) {
	testCases := []struct {
		name  string
		setup func(c *Z80)
	}{
		{"after reset", func(c *Z80) { c.Reset() }},
		{"interrupt pending", func(c *Z80) { c.RequestInterrupt(0x3c) }},
		{"after a slice", func(c *Z80) {
			c.RequestInterrupt(0xff)
			c.ExecuteCycles(200)
		}},
	}
	for _, tc := range testCases {
		c := newTestZ80(t)
		tc.setup(c)
		blob := c.SaveState()

		d := newTestZ80(t)
		if err := d.LoadState(blob); err != nil {
			t.Fatalf("%s: LoadState: %v", tc.name, err)
		}
		if got := d.SaveState(); !bytes.Equal(got, blob) {
			t.Errorf("%s: state after load differs from the loaded blob", tc.name)
		}
	}
}

// TestZ80_INTHeldForOneSlice verifies a request holds INT through the next
// slice only when the CPU never acknowledges it.
func TestZ80_INTHeldForOneSlice(t *testing.T) {
	c := newTestZ80(t)
	c.RequestInterrupt(0x20)
	if line := c.SaveState()[43]; line != 1 {
		t.Fatalf("after request: expected INT asserted, got %d", line)
	}
	c.ExecuteCycles(100)
	state := c.SaveState()
	if state[43] != 0 {
		t.Errorf("after one slice: expected INT released, got %d", state[43])
	}
	if state[z80.SerializeSize+8] != 0 {
		t.Errorf("after one slice: expected no pending request")
	}
}

// TestZ80_LoadStateRejected verifies a bad blob is refused and leaves the
// CPU as it was.
func TestZ80_LoadStateRejected(t *testing.T) {
	c := newTestZ80(t)
	c.ExecuteCycles(500)
	before := c.SaveState()

	badVersion := newTestZ80(t).SaveState()
	badVersion[0] = 0xEE
	testCases := []struct {
		name string
		data []byte
	}{
		{"short", before[:10]},
		{"version", badVersion},
	}
	for _, tc := range testCases {
		if err := c.LoadState(tc.data); !errors.Is(err, ErrStateCorrupt) {
			t.Errorf("%s: expected ErrStateCorrupt, got %v", tc.name, err)
		}
		if got := c.SaveState(); !bytes.Equal(got, before) {
			t.Errorf("%s: cpu state changed after a rejected load", tc.name)
		}
	}
}
