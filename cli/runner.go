// Package cli provides a headless runner for the emulator. It steps frames
// without a window, replays scripted input and records audio, screenshots
// and save states.
package cli

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/user-none/z80arcade/emu"
	"github.com/user-none/z80arcade/wavwriter"
	"golang.org/x/image/draw"
)

// ErrBadInput is returned for an input script entry that does not parse.
var ErrBadInput = errors.New("bad input script entry")

// buttonBits names the emucore button bits scripts may press.
var buttonBits = map[string]uint32{
	"up":      1 << 0,
	"down":    1 << 1,
	"left":    1 << 2,
	"right":   1 << 3,
	"fire":    1 << 4,
	"trigger": 1 << 4,
	"fire2":   1 << 5,
	"start":   1 << 6,
	"start2":  1 << 7,
	"coin":    1 << 8,
}

// InputEvent holds buttons down for player from Frame for Hold frames.
type InputEvent struct {
	Frame   int
	Hold    int
	Player  int
	Buttons uint32
}

// ParseInputScript parses a comma separated list of button@frame[+hold]
// entries, optionally prefixed with a player number as in "2:fire@120".
// Hold defaults to one frame.
func ParseInputScript(script string) ([]InputEvent, error) {
	var events []InputEvent
	for _, entry := range strings.Split(script, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		ev := InputEvent{Hold: 1}

		if p, rest, ok := strings.Cut(entry, ":"); ok {
			n, err := strconv.Atoi(p)
			if err != nil || n < 1 || n > 4 {
				return nil, fmt.Errorf("%w: %q: player", ErrBadInput, entry)
			}
			ev.Player = n - 1
			entry = rest
		}

		name, when, ok := strings.Cut(entry, "@")
		if !ok {
			return nil, fmt.Errorf("%w: %q: missing @frame", ErrBadInput, entry)
		}
		bit, ok := buttonBits[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("%w: %q: unknown button", ErrBadInput, entry)
		}
		ev.Buttons = bit

		frame, hold, hasHold := strings.Cut(when, "+")
		var err error
		if ev.Frame, err = strconv.Atoi(frame); err != nil || ev.Frame < 0 {
			return nil, fmt.Errorf("%w: %q: frame", ErrBadInput, entry)
		}
		if hasHold {
			if ev.Hold, err = strconv.Atoi(hold); err != nil || ev.Hold < 1 {
				return nil, fmt.Errorf("%w: %q: hold", ErrBadInput, entry)
			}
		}
		events = append(events, ev)
	}
	slices.SortStableFunc(events, func(a, b InputEvent) int { return a.Frame - b.Frame })
	return events, nil
}

// Runner wraps an emulator for headless mode. Like any frontend it owns
// input: the emulator never polls for it.
type Runner struct {
	emulator *emu.Emulator
	events   []InputEvent
	wav      *wavwriter.Writer
	log      *log.Logger
	frame    int
}

// NewRunner creates a new Runner wrapping the given emulator.
func NewRunner(e *emu.Emulator, logger *log.Logger) *Runner {
	return &Runner{emulator: e, log: logger}
}

// SetInputScript sets the scripted input replayed by Run.
func (r *Runner) SetInputScript(events []InputEvent) {
	r.events = events
}

// RecordAudio starts writing every frame's audio to path.
func (r *Runner) RecordAudio(path string) error {
	w, err := wavwriter.Create(path, 48000)
	if err != nil {
		return err
	}
	r.wav = w
	return nil
}

// Close finishes any recording.
func (r *Runner) Close() error {
	if r.wav == nil {
		return nil
	}
	err := r.wav.Close()
	if r.log != nil {
		r.log.Printf("wrote %d audio frames", r.wav.Frames())
	}
	r.wav = nil
	return err
}

// Frame returns the number of frames run.
func (r *Runner) Frame() int {
	return r.frame
}

// Run executes n frames.
func (r *Runner) Run(n int) error {
	for i := 0; i < n; i++ {
		r.applyInput()
		r.emulator.RunFrame()
		if r.wav != nil {
			if err := r.wav.Write(r.emulator.GetAudioSamples()); err != nil {
				return err
			}
		}
		r.frame++
	}
	return nil
}

// applyInput presses every scripted button active this frame.
func (r *Runner) applyInput() {
	var buttons [4]uint32
	for _, ev := range r.events {
		if ev.Frame > r.frame {
			break
		}
		if r.frame < ev.Frame+ev.Hold {
			buttons[ev.Player] |= ev.Buttons
		}
	}
	for p, b := range buttons {
		r.emulator.SetInput(p, b)
	}
}

// Image returns the current frame as an RGBA image.
func (r *Runner) Image() *image.RGBA {
	stride := r.emulator.GetFramebufferStride()
	height := r.emulator.GetActiveHeight()
	img := image.NewRGBA(image.Rect(0, 0, stride/4, height))
	copy(img.Pix, r.emulator.GetFramebuffer()[:stride*height])
	return img
}

// Screenshot writes the current frame to path as a PNG, enlarged by an
// integer scale with nearest neighbour sampling.
func (r *Runner) Screenshot(path string, scale int) error {
	var img image.Image = r.Image()
	if scale > 1 {
		b := img.Bounds()
		dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
		draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
		img = dst
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create screenshot: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode screenshot: %w", err)
	}
	return f.Close()
}

// SaveState writes a save state to path.
func (r *Runner) SaveState(path string) error {
	data, err := r.emulator.Serialize()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadState restores a save state from path.
func (r *Runner) LoadState(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return r.emulator.Deserialize(data)
}
