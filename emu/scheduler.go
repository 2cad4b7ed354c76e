package emu

// InterruptConfig says when the platform wants an interrupt during a frame.
type InterruptConfig struct {
	Line    int
	Enabled bool
	Data    uint8
}

// Hardware is the per-platform side of the scanline loop. Every method is
// called synchronously from StepScanline, in this order per line:
// SampleInputs, (CPU slice), Interrupt, EndLine, RenderLine.
type Hardware interface {
	// SampleInputs refreshes input registers before the CPU slice of line.
	SampleInputs(line int, elapsed uint64)
	// Interrupt returns the current interrupt configuration.
	Interrupt() InterruptConfig
	// EndLine runs after the CPU slice with the cycles it consumed.
	EndLine(line int, cycles int)
	// RenderLine rasterizes line from backing memory into the framebuffer.
	RenderLine(line int)
	// VisibleHeight is the number of lines presented to the sink.
	VisibleHeight() int
}

// Timing describes a platform's scanline pacing.
type Timing struct {
	CPUClockHz      float64
	Scanlines       int    // scanlines per frame
	CyclesPerLineFP uint64 // 16.16 fixed point
	FPS             int
}

// FrameState is the scheduler's position within a frame.
type FrameState int

const (
	AwaitingFrame FrameState = iota
	RunningScanline
	FrameComplete
)

func (s FrameState) String() string {
	switch s {
	case AwaitingFrame:
		return "AwaitingFrame"
	case RunningScanline:
		return "RunningScanline"
	case FrameComplete:
		return "FrameComplete"
	default:
		return "Unknown"
	}
}

// Watchdog resets the machine when software stops kicking it for Initial
// frames. Disabled unless Enabled is set.
type Watchdog struct {
	Enabled bool
	Initial int
	counter int
}

// Scheduler advances the CPU one scanline at a time, delivering interrupts
// and refreshing dirty lines in between.
type Scheduler struct {
	cpu    CPU
	hw     Hardware
	fb     *Framebuffer
	sink   VideoSink
	dirty  *DirtyLines
	timing Timing

	line     int
	state    FrameState
	targetFP uint64 // absolute cycle target since reset, 16.16

	watchdog   Watchdog
	onWatchdog func()
}

// NewScheduler wires the loop together. sink may be nil.
func NewScheduler(cpu CPU, hw Hardware, fb *Framebuffer, dirty *DirtyLines, timing Timing) *Scheduler {
	return &Scheduler{
		cpu:    cpu,
		hw:     hw,
		fb:     fb,
		dirty:  dirty,
		timing: timing,
	}
}

// SetSink sets the frame consumer.
func (s *Scheduler) SetSink(sink VideoSink) {
	s.sink = sink
}

// SetWatchdog configures the watchdog; fire is called on expiry.
func (s *Scheduler) SetWatchdog(w Watchdog, fire func()) {
	s.watchdog = w
	s.watchdog.counter = w.Initial
	s.onWatchdog = fire
}

// KickWatchdog reloads the watchdog counter.
func (s *Scheduler) KickWatchdog() {
	s.watchdog.counter = s.watchdog.Initial
}

// Reset returns to the start of a frame with a zero cycle target. The CPU's
// elapsed counter must be zeroed alongside.
func (s *Scheduler) Reset() {
	s.line = 0
	s.targetFP = 0
	s.state = AwaitingFrame
	s.watchdog.counter = s.watchdog.Initial
}

// Line returns the next scanline to run.
func (s *Scheduler) Line() int { return s.line }

// State returns the frame state.
func (s *Scheduler) State() FrameState { return s.state }

// AdvanceFrame runs scanlines until the current frame completes. When
// novideo is set no line is rasterized and nothing is presented; dirty lines
// stay pending for the next video frame.
func (s *Scheduler) AdvanceFrame(novideo bool) {
	for !s.StepScanline(novideo) {
	}
}

// StepScanline runs one scanline and reports whether it ended the frame.
// It is safe to call between any two scanlines, which is where debuggers
// and snapshots re-enter.
func (s *Scheduler) StepScanline(novideo bool) bool {
	n := s.line
	s.state = RunningScanline

	s.hw.SampleInputs(n, s.cpu.ElapsedCycles())

	s.targetFP += s.timing.CyclesPerLineFP
	target := s.targetFP >> 16
	cycles := 0
	if elapsed := s.cpu.ElapsedCycles(); target > elapsed {
		cycles = s.cpu.ExecuteCycles(int(target - elapsed))
	}

	if ic := s.hw.Interrupt(); ic.Enabled && ic.Line == n {
		s.cpu.RequestInterrupt(ic.Data)
	}

	s.hw.EndLine(n, cycles)

	if !novideo && s.dirty.Take(n) {
		s.hw.RenderLine(n)
	}

	s.line++
	if s.line < s.timing.Scanlines {
		return false
	}
	s.line = 0
	s.endFrame(novideo)
	return true
}

func (s *Scheduler) endFrame(novideo bool) {
	s.state = FrameComplete
	if !novideo {
		// Lines invalidated after their slot passed this frame.
		for y := 0; y < s.fb.Height && s.dirty.Count() > 0; y++ {
			if s.dirty.Take(y) {
				s.hw.RenderLine(y)
			}
		}
		if s.sink != nil {
			h := s.hw.VisibleHeight()
			if h > s.fb.Height {
				h = s.fb.Height
			}
			s.sink.PresentFrame(s.fb, 0, 0, s.fb.Width, h)
		}
	}

	if s.watchdog.Enabled {
		s.watchdog.counter--
		if s.watchdog.counter <= 0 {
			s.watchdog.counter = s.watchdog.Initial
			if s.onWatchdog != nil {
				s.onWatchdog()
			}
		}
	}
}

// TargetFP returns the absolute 16.16 cycle target, for snapshots.
func (s *Scheduler) TargetFP() uint64 { return s.targetFP }

func (s *Scheduler) restore(line int, targetFP uint64) {
	s.line = line
	s.targetFP = targetFP
	if line == 0 {
		s.state = AwaitingFrame
	} else {
		s.state = RunningScanline
	}
}

// cyclesPerLineFP converts a fractional cycles-per-line figure to 16.16.
func cyclesPerLineFP(cycles float64) uint64 {
	return uint64(cycles*65536 + 0.5)
}
