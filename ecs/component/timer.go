package component

import "time"

type TimerMode int

const (
	TimerOnce TimerMode = iota
	TimerRepeating
)

// Timer counts elapsed frame time up to Duration. A repeating timer wraps
// Elapsed modulo Duration when it fires, so overshoot carries into the next
// period.
type Timer struct {
	Duration time.Duration
	Elapsed  time.Duration
	Mode     TimerMode

	finished      bool
	timesFinished int
}

func NewTimer(d time.Duration, mode TimerMode) Timer {
	return Timer{Duration: d, Mode: mode}
}

func NewRepeatingTimer(d time.Duration) Timer {
	return NewTimer(d, TimerRepeating)
}

// Tick advances the timer by dt.
func (t *Timer) Tick(dt time.Duration) {
	if t == nil {
		return
	}
	t.timesFinished = 0
	if t.Mode == TimerOnce && t.finished {
		return
	}
	t.finished = false
	if dt < 0 {
		dt = 0
	}

	if t.Duration <= 0 {
		t.Elapsed = 0
		t.finished = true
		t.timesFinished = 1
		return
	}

	t.Elapsed += dt
	if t.Elapsed < t.Duration {
		return
	}

	t.finished = true
	if t.Mode == TimerRepeating {
		t.timesFinished = int(t.Elapsed / t.Duration)
		t.Elapsed %= t.Duration
		return
	}
	t.timesFinished = 1
	t.Elapsed = t.Duration
}

// JustFinished reports whether the last Tick completed at least one period.
func (t *Timer) JustFinished() bool {
	return t != nil && t.timesFinished > 0
}

// TimesFinishedThisTick returns how many periods the last Tick completed.
func (t *Timer) TimesFinishedThisTick() int {
	if t == nil {
		return 0
	}
	return t.timesFinished
}

// Finished reports whether a one-shot timer has run out, or whether a
// repeating timer fired on the last Tick.
func (t *Timer) Finished() bool {
	return t != nil && t.finished
}

func (t *Timer) Remaining() time.Duration {
	if t == nil || t.Elapsed >= t.Duration {
		return 0
	}
	return t.Duration - t.Elapsed
}

func (t *Timer) Reset() {
	if t == nil {
		return
	}
	t.Elapsed = 0
	t.finished = false
	t.timesFinished = 0
}
