package breakout

// FrameID identifies a requested frame.
type FrameID uint64

// FrameQueue schedules at most one callback for the next display refresh.
type FrameQueue struct {
	next    FrameID
	pending FrameID
	fn      func()
}

// Request schedules fn for the next Run, replacing any pending callback.
func (f *FrameQueue) Request(fn func()) FrameID {
	f.next++
	f.pending = f.next
	f.fn = fn
	return f.pending
}

// Cancel drops the pending callback if id still names it.
func (f *FrameQueue) Cancel(id FrameID) {
	if id != 0 && id == f.pending {
		f.pending = 0
		f.fn = nil
	}
}

// Pending reports whether a callback is scheduled.
func (f *FrameQueue) Pending() bool { return f.fn != nil }

// Run invokes the pending callback, if any. The callback may request the
// next frame.
func (f *FrameQueue) Run() bool {
	fn := f.fn
	if fn == nil {
		return false
	}
	f.fn = nil
	f.pending = 0
	fn()
	return true
}
