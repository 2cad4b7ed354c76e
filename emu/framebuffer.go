package emu

// Framebuffer is a packed ARGB (0xAARRGGBB) pixel array, one uint32 per
// logical pixel, row-major.
type Framebuffer struct {
	Width  int
	Height int
	Pix    []uint32
}

// NewFramebuffer allocates a black, fully opaque framebuffer.
func NewFramebuffer(width, height int) *Framebuffer {
	fb := &Framebuffer{
		Width:  width,
		Height: height,
		Pix:    make([]uint32, width*height),
	}
	for i := range fb.Pix {
		fb.Pix[i] = 0xFF000000
	}
	return fb
}

// Row returns the pixels of line y.
func (fb *Framebuffer) Row(y int) []uint32 {
	return fb.Pix[y*fb.Width : (y+1)*fb.Width]
}

// VideoSink receives the finished frame. Only the region starting at
// (originX, originY) of the given width and visible height is meaningful.
type VideoSink interface {
	PresentFrame(fb *Framebuffer, originX, originY, width, visibleHeight int)
}

// DirtyLines tracks which scanlines need re-rasterizing.
type DirtyLines struct {
	lines []bool
	count int
}

// NewDirtyLines creates a tracker with every line dirty so the first frame is
// drawn in full.
func NewDirtyLines(n int) *DirtyLines {
	d := &DirtyLines{lines: make([]bool, n)}
	d.MarkAll()
	return d
}

// Mark flags line y. Out of range lines are ignored.
func (d *DirtyLines) Mark(y int) {
	if y < 0 || y >= len(d.lines) || d.lines[y] {
		return
	}
	d.lines[y] = true
	d.count++
}

// MarkRange flags lines [from, to).
func (d *DirtyLines) MarkRange(from, to int) {
	for y := from; y < to; y++ {
		d.Mark(y)
	}
}

// MarkAll invalidates the whole frame.
func (d *DirtyLines) MarkAll() {
	for i := range d.lines {
		d.lines[i] = true
	}
	d.count = len(d.lines)
}

// Take reports whether y was dirty and clears it.
func (d *DirtyLines) Take(y int) bool {
	if y < 0 || y >= len(d.lines) || !d.lines[y] {
		return false
	}
	d.lines[y] = false
	d.count--
	return true
}

// IsDirty reports whether y is waiting to be redrawn.
func (d *DirtyLines) IsDirty(y int) bool {
	return y >= 0 && y < len(d.lines) && d.lines[y]
}

// Count returns the number of dirty lines.
func (d *DirtyLines) Count() int {
	return d.count
}
