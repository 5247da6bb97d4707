package algo

// ThrottleConfig is expressed in virtual milliseconds.
type ThrottleConfig struct {
	Tick         int64 // Clock advance per event
	Interval     int64 // Minimum gap between forwarded events
	MaxForwarded int   // Forwarding stops after this many

	// StrictInterval forwards only once the gap exceeds Interval.
	// Otherwise a gap equal to Interval is enough.
	StrictInterval bool
}

// DefaultThrottleConfig is 100ms per event, 300ms between forwards, 100 forwards.
func DefaultThrottleConfig() ThrottleConfig {
	return ThrottleConfig{Tick: 100, Interval: 300, MaxForwarded: 100}
}

// Throttle rate-limits a stream on a logical clock. Dropped events are not queued.
type Throttle struct {
	cfg       ThrottleConfig
	clock     int64
	last      int64
	forwarded int
}

func NewThrottle(cfg ThrottleConfig) *Throttle {
	return &Throttle{cfg: cfg}
}

// Next advances the clock by one tick and reports whether this event is forwarded,
// together with the virtual time it was seen at.
func (t *Throttle) Next() (now int64, forward bool) {
	t.clock += t.cfg.Tick
	if t.forwarded >= t.cfg.MaxForwarded {
		return t.clock, false
	}
	gap := t.clock - t.last
	if gap < t.cfg.Interval || (t.cfg.StrictInterval && gap == t.cfg.Interval) {
		return t.clock, false
	}
	t.last = t.clock
	t.forwarded++
	return t.clock, true
}

// Forwarded is the number of events let through so far.
func (t *Throttle) Forwarded() int {
	return t.forwarded
}

// Exhausted reports whether the forwarding cap has been reached.
func (t *Throttle) Exhausted() bool {
	return t.forwarded >= t.cfg.MaxForwarded
}

// Clock is the current virtual time.
func (t *Throttle) Clock() int64 {
	return t.clock
}
