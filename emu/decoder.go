package emu

// AddressRange maps an inclusive address window onto a read and/or write
// handler. The address is reduced with Mask before the handler sees it, so a
// small device can be mirrored across a larger window.
type AddressRange struct {
	Low   uint16
	High  uint16
	Mask  uint16
	Read  func(addr uint16) uint8
	Write func(addr uint16, val uint8)
}

func (r *AddressRange) contains(addr uint16) bool {
	return addr >= r.Low && addr <= r.High
}

// Decoder dispatches bus accesses by range lookup. Ranges are checked in
// declaration order and the first match wins; overlapping ranges are never
// re-sorted.
type Decoder struct {
	reads  []AddressRange
	writes []AddressRange

	// Unmapped, when set, observes accesses that matched no range.
	Unmapped func(write bool, addr uint16, val uint8)
}

// NewDecoder builds the read and write dispatch tables. Ranges without a Read
// handler are left out of the read table and likewise for writes. The tables
// are not modified after construction.
func NewDecoder(ranges []AddressRange) *Decoder {
	d := &Decoder{}
	for _, r := range ranges {
		if r.Read != nil {
			d.reads = append(d.reads, r)
		}
		if r.Write != nil {
			d.writes = append(d.writes, r)
		}
	}
	return d
}

// Read returns the value from the first matching range, or 0 (open bus) when
// nothing is mapped at addr.
func (d *Decoder) Read(addr uint16) uint8 {
	for i := range d.reads {
		r := &d.reads[i]
		if r.contains(addr) {
			return r.Read(addr & r.Mask)
		}
	}
	if d.Unmapped != nil {
		d.Unmapped(false, addr, 0)
	}
	return 0
}

// Write hands val to the first matching range. Unmapped writes are dropped.
func (d *Decoder) Write(addr uint16, val uint8) {
	for i := range d.writes {
		r := &d.writes[i]
		if r.contains(addr) {
			r.Write(addr&r.Mask, val)
			return
		}
	}
	if d.Unmapped != nil {
		d.Unmapped(true, addr, val)
	}
}
