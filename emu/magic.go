package emu

// Blitter is the Astrocade "magic" write transform. A CPU write into the
// magic window passes through expand, shift, flop and OR/XOR stages before
// it lands in screen RAM.
type Blitter struct {
	opcode      uint8
	shiftCarry  uint8
	expand      uint8
	expandLower bool
}

// Magic opcode bits.
const (
	magicShiftMask = 0x03
	magicExpand    = 0x08
	magicOR        = 0x10
	magicXOR       = 0x20
	magicFlop      = 0x40
)

// SetOpcode loads the magic register and clears the shift carry. Enabling
// expand restarts it on the upper nibble.
func (b *Blitter) SetOpcode(op uint8) {
	b.opcode = op
	b.shiftCarry = 0
	if op&magicExpand != 0 {
		b.expandLower = false
	}
}

// SetExpand loads the expand colors and restarts on the upper nibble.
func (b *Blitter) SetExpand(v uint8) {
	b.expand = v
	b.expandLower = false
}

// Opcode returns the magic register.
func (b *Blitter) Opcode() uint8 { return b.opcode }

// Transform runs v through the pipeline against the byte currently in RAM
// and returns the value to commit plus the 4-bit collision mask.
func (b *Blitter) Transform(v, old uint8) (uint8, uint8) {
	op := b.opcode

	if op&magicExpand != 0 {
		if !b.expandLower {
			v >>= 4
		}
		var out uint8
		for i := 0; i < 4; i++ {
			var pix uint8
			if v&1 != 0 {
				pix = (b.expand >> 2) & 3
			} else {
				pix = b.expand & 3
			}
			out |= pix << (i * 2)
			v >>= 1
		}
		v = out
		b.expandLower = !b.expandLower
	}

	sh := (op & magicShiftMask) << 1
	shifted := (v >> sh) | b.shiftCarry
	b.shiftCarry = uint8(uint16(v) << (8 - sh))
	v = shifted

	if op&magicFlop != 0 {
		v = flop(v)
	}

	if op&magicOR != 0 {
		v |= old
	}
	if op&magicXOR != 0 {
		v ^= old
	}

	return v, collision(old, v)
}

// flop mirrors the four 2-bit pixels of a byte.
func flop(v uint8) uint8 {
	return (v&0x03)<<6 | (v&0x0c)<<2 | (v&0x30)>>2 | (v&0xc0)>>6
}

// collision sets one bit per pixel lane that went from color 0 to non-zero.
// Lane bits 0-1 map to mask bit 3, lane bits 6-7 to mask bit 0.
func collision(old, v uint8) uint8 {
	var mask uint8
	for i := 0; i < 8; i += 2 {
		mask <<= 1
		if (old>>i)&3 == 0 && (v>>i)&3 != 0 {
			mask |= 1
		}
	}
	return mask
}
