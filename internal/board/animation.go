package board

import "time"

const (
	DefaultDuration = 300 * time.Millisecond
	MinDuration     = 200 * time.Millisecond
	MaxDuration     = 300 * time.Millisecond

	// nominalFrame stands in for the elapsed time on a loop's first tick.
	nominalFrame = 16 * time.Millisecond
)

// FrameID identifies a scheduled frame callback.
type FrameID uint64

// Scheduler runs a callback on the next frame. Implementations must call fn
// on the goroutine that owns the board.
type Scheduler interface {
	RequestFrame(fn func(now time.Time)) FrameID
	CancelFrame(id FrameID)
}

// Driver advances animating pieces once per frame until they all land.
type Driver struct {
	scheduler Scheduler
	duration  time.Duration
	onTick    func()

	pieces  []*DisplayedPiece
	frame   FrameID
	running bool
	gen     uint64
	last    time.Time
}

// NewDriver clamps duration into [MinDuration, MaxDuration]; zero selects
// DefaultDuration. onTick runs after every frame that moved something.
func NewDriver(s Scheduler, duration time.Duration, onTick func()) *Driver {
	switch {
	case duration == 0:
		duration = DefaultDuration
	case duration < MinDuration:
		duration = MinDuration
	case duration > MaxDuration:
		duration = MaxDuration
	}
	return &Driver{scheduler: s, duration: duration, onTick: onTick}
}

func (d *Driver) Duration() time.Duration { return d.duration }

func (d *Driver) Running() bool { return d.running }

// Start replaces any running loop. The set of pieces it advances is fixed
// here: only pieces animating now are tracked until the next Start. It
// reports whether a loop was started.
func (d *Driver) Start(pieces []*DisplayedPiece) bool {
	d.Stop()

	var animating []*DisplayedPiece
	for _, p := range pieces {
		if p.Animating() {
			animating = append(animating, p)
		}
	}
	if len(animating) == 0 {
		return false
	}

	d.pieces = animating
	d.running = true
	d.last = time.Time{}
	d.schedule()
	return true
}

// Stop cancels the pending frame. Safe to call when idle.
func (d *Driver) Stop() {
	d.gen++
	if !d.running {
		return
	}
	d.scheduler.CancelFrame(d.frame)
	d.running = false
	d.pieces = nil
}

func (d *Driver) schedule() {
	gen := d.gen
	d.frame = d.scheduler.RequestFrame(func(now time.Time) {
		d.step(gen, now)
	})
}

func (d *Driver) step(gen uint64, now time.Time) {
	// a frame that slipped past CancelFrame belongs to an old loop
	if gen != d.gen || !d.running {
		return
	}

	dt := nominalFrame
	if !d.last.IsZero() {
		dt = max(now.Sub(d.last), 0)
	}
	d.last = now
	by := dt.Seconds() / d.duration.Seconds()

	active := false
	for _, p := range d.pieces {
		p.advance(by)
		if p.Animating() {
			active = true
		}
	}
	if d.onTick != nil {
		d.onTick()
	}

	if !active {
		d.running = false
		d.pieces = nil
		return
	}
	d.schedule()
}
