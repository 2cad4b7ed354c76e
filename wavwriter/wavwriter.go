// Package wavwriter records interleaved 16-bit stereo frames to a WAV file.
package wavwriter

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	channels  = 2
	bitDepth  = 16
	pcmFormat = 1
)

// ErrOddSamples is returned for a buffer that does not hold whole stereo
// frames.
var ErrOddSamples = errors.New("stereo buffer has an odd sample count")

// Writer appends emulator audio to a WAV stream.
type Writer struct {
	enc    *wav.Encoder
	buf    *audio.IntBuffer
	file   *os.File
	frames int
}

// New returns a Writer encoding to w at sampleRate.
func New(w io.WriteSeeker, sampleRate int) *Writer {
	return &Writer{
		enc: wav.NewEncoder(w, sampleRate, bitDepth, channels, pcmFormat),
		buf: &audio.IntBuffer{
			Format:         &audio.Format{NumChannels: channels, SampleRate: sampleRate},
			SourceBitDepth: bitDepth,
		},
	}
}

// Create opens path for writing and returns a Writer over it. Close also
// closes the file.
func Create(path string, sampleRate int) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create wav: %w", err)
	}
	w := New(f, sampleRate)
	w.file = f
	return w, nil
}

// Write appends interleaved left/right samples.
func (w *Writer) Write(samples []int16) error {
	if len(samples)%channels != 0 {
		return ErrOddSamples
	}
	if len(samples) == 0 {
		return nil
	}
	data := w.buf.Data[:0]
	for _, s := range samples {
		data = append(data, int(s))
	}
	w.buf.Data = data
	if err := w.enc.Write(w.buf); err != nil {
		return fmt.Errorf("failed to write wav: %w", err)
	}
	w.frames += len(samples) / channels
	return nil
}

// Frames returns the number of stereo frames written.
func (w *Writer) Frames() int {
	return w.frames
}

// Close finalizes the WAV header.
func (w *Writer) Close() error {
	err := w.enc.Close()
	if w.file != nil {
		if cerr := w.file.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
