package emu

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
)

// Snapshot errors.
var (
	ErrStateTooShort = errors.New("save state too short")
	ErrStateMagic    = errors.New("invalid save state magic")
	ErrStateVariant  = errors.New("save state is for a different platform")
	ErrStateROM      = errors.New("save state is for a different ROM")
	ErrStateCorrupt  = errors.New("save state data is corrupted")
	ErrStateRAMSize  = errors.New("save state RAM size mismatch")
	ErrStateLayout   = errors.New("save state layout mismatch")
)

// VideoRegisters are the scalar video, blitter and interrupt registers. Each
// board uses the subset it has.
type VideoRegisters struct {
	MagicOp     uint8
	ShiftCarry  uint8
	Expand      uint8
	ExpandLower bool
	HORCB       uint8
	VERBL       uint8
	INMOD       uint8
	INLIN       uint8
	INFBK       uint8
	PaletteBank uint8
	PSGSelect   uint8
}

// videoRegistersSize is the encoded size of VideoRegisters.
const videoRegistersSize = 11

// Snapshot is everything needed to resume a machine between two scanlines.
type Snapshot struct {
	Variant  Variant
	CPU      []byte
	RAM      []byte
	Palette  []uint32
	Regs     VideoRegisters
	Inputs   []byte
	PSG      []byte
	Line     int
	TargetFP uint64
}

// Save state header.
const (
	stateMagic      = "Z80ArcadeSav"
	stateHeaderSize = 22 // magic(12) + variant(2) + romCRC(4) + dataCRC(4)
)

// SerializeSize returns the encoded save state size for variant, or 0 for
// an unknown variant.
func SerializeSize(v Variant) int {
	cfg, err := ConfigFor(v)
	if err != nil {
		return 0
	}
	inputs := len(vicDualInputDefaults)
	if cfg.Astrocade() {
		inputs = 0x20
	}
	return stateHeaderSize +
		4 + z80StateSize +
		4 + cfg.RAMSize +
		2 + 4*8 +
		videoRegistersSize +
		2 + inputs +
		4 + snpsgStateSize +
		4 + 8
}

// EncodeSnapshot serializes s for the ROM with checksum romCRC.
func EncodeSnapshot(s *Snapshot, romCRC uint32) []byte {
	size := stateHeaderSize +
		4 + len(s.CPU) +
		4 + len(s.RAM) +
		2 + 4*len(s.Palette) +
		videoRegistersSize +
		2 + len(s.Inputs) +
		4 + len(s.PSG) +
		4 + // line
		8 // target
	data := make([]byte, size)

	copy(data[0:12], stateMagic)
	binary.LittleEndian.PutUint16(data[12:14], uint16(s.Variant))
	binary.LittleEndian.PutUint32(data[14:18], romCRC)

	w := stateWriter{buf: data, off: stateHeaderSize}
	w.blob32(s.CPU)
	w.blob32(s.RAM)
	w.u16(uint16(len(s.Palette)))
	for _, c := range s.Palette {
		w.u32(c)
	}
	w.regs(s.Regs)
	w.u16(uint16(len(s.Inputs)))
	w.bytes(s.Inputs)
	w.blob32(s.PSG)
	w.u32(uint32(s.Line))
	w.u64(s.TargetFP)

	binary.LittleEndian.PutUint32(data[18:22], crc32.ChecksumIEEE(data[stateHeaderSize:]))
	return data
}

// DecodeSnapshot checks the header and checksums of data and decodes it.
// Nothing is returned unless the whole blob is intact.
func DecodeSnapshot(data []byte, variant Variant, romCRC uint32) (*Snapshot, error) {
	if len(data) < stateHeaderSize {
		return nil, ErrStateTooShort
	}
	if string(data[0:12]) != stateMagic {
		return nil, ErrStateMagic
	}
	if v := Variant(binary.LittleEndian.Uint16(data[12:14])); v != variant {
		return nil, fmt.Errorf("%w: have %s, state is %s", ErrStateVariant, variant, v)
	}
	if binary.LittleEndian.Uint32(data[14:18]) != romCRC {
		return nil, ErrStateROM
	}
	if binary.LittleEndian.Uint32(data[18:22]) != crc32.ChecksumIEEE(data[stateHeaderSize:]) {
		return nil, ErrStateCorrupt
	}

	r := stateReader{buf: data, off: stateHeaderSize}
	s := &Snapshot{Variant: variant}
	s.CPU = r.blob32()
	s.RAM = r.blob32()
	if n := int(r.u16()); r.ok(4 * n) {
		s.Palette = make([]uint32, n)
		for i := range s.Palette {
			s.Palette[i] = r.u32()
		}
	}
	s.Regs = r.regs()
	s.Inputs = r.bytes(int(r.u16()))
	s.PSG = r.blob32()
	s.Line = int(r.u32())
	s.TargetFP = r.u64()
	if r.err || r.off != len(data) {
		return nil, fmt.Errorf("%w: malformed body", ErrStateCorrupt)
	}
	return s, nil
}

type stateWriter struct {
	buf []byte
	off int
}

func (w *stateWriter) u16(v uint16) {
	binary.LittleEndian.PutUint16(w.buf[w.off:], v)
	w.off += 2
}

func (w *stateWriter) u32(v uint32) {
	binary.LittleEndian.PutUint32(w.buf[w.off:], v)
	w.off += 4
}

func (w *stateWriter) u64(v uint64) {
	binary.LittleEndian.PutUint64(w.buf[w.off:], v)
	w.off += 8
}

func (w *stateWriter) bytes(b []byte) {
	w.off += copy(w.buf[w.off:], b)
}

func (w *stateWriter) blob32(b []byte) {
	w.u32(uint32(len(b)))
	w.bytes(b)
}

func (w *stateWriter) regs(r VideoRegisters) {
	var lower uint8
	if r.ExpandLower {
		lower = 1
	}
	w.bytes([]byte{
		r.MagicOp, r.ShiftCarry, r.Expand, lower, r.HORCB, r.VERBL,
		r.INMOD, r.INLIN, r.INFBK, r.PaletteBank, r.PSGSelect,
	})
}

// stateReader reads little-endian fields, latching err on the first
// out-of-range read and returning zero values after that.
type stateReader struct {
	buf []byte
	off int
	err bool
}

func (r *stateReader) ok(n int) bool {
	if r.err || n < 0 || r.off+n > len(r.buf) {
		r.err = true
		return false
	}
	return true
}

func (r *stateReader) u16() uint16 {
	if !r.ok(2) {
		return 0
	}
	v := binary.LittleEndian.Uint16(r.buf[r.off:])
	r.off += 2
	return v
}

func (r *stateReader) u32() uint32 {
	if !r.ok(4) {
		return 0
	}
	v := binary.LittleEndian.Uint32(r.buf[r.off:])
	r.off += 4
	return v
}

func (r *stateReader) u64() uint64 {
	if !r.ok(8) {
		return 0
	}
	v := binary.LittleEndian.Uint64(r.buf[r.off:])
	r.off += 8
	return v
}

func (r *stateReader) bytes(n int) []byte {
	if !r.ok(n) {
		return nil
	}
	b := make([]byte, n)
	copy(b, r.buf[r.off:])
	r.off += n
	return b
}

func (r *stateReader) blob32() []byte {
	return r.bytes(int(r.u32()))
}

func (r *stateReader) regs() VideoRegisters {
	b := r.bytes(videoRegistersSize)
	if b == nil {
		return VideoRegisters{}
	}
	return VideoRegisters{
		MagicOp:     b[0],
		ShiftCarry:  b[1],
		Expand:      b[2],
		ExpandLower: b[3] != 0,
		HORCB:       b[4],
		VERBL:       b[5],
		INMOD:       b[6],
		INLIN:       b[7],
		INFBK:       b[8],
		PaletteBank: b[9],
		PSGSelect:   b[10],
	}
}
