// Package loading debounces a loading flag so that brief loads never flash
// an indicator and a shown indicator stays up long enough to be read.
package loading

import "time"

const (
	DefaultDelay      = 150 * time.Millisecond
	DefaultMinDisplay = 500 * time.Millisecond
)

// State of the indicator.
type State int

const (
	Idle State = iota
	PendingShow
	Visible
	PendingHide
)

func (st State) String() string {
	switch st {
	case PendingShow:
		return "pending-show"
	case Visible:
		return "visible"
	case PendingHide:
		return "pending-hide"
	}
	return "idle"
}

// Timer asks the caller to call Fire with Token once After has elapsed.
type Timer struct {
	Token uint64
	After time.Duration
}

// Debounce is the indicator state machine.
// It holds no clock or goroutine, time arrives with each call.
type Debounce struct {
	Delay      time.Duration
	MinDisplay time.Duration

	state   State
	shownAt time.Time
	token   uint64
}

// New creates an idle debounce, zero durations take the defaults.
func New(delay, minDisplay time.Duration) Debounce {

	if delay <= 0 {
		delay = DefaultDelay
	}
	if minDisplay <= 0 {
		minDisplay = DefaultMinDisplay
	}

	return Debounce{
		Delay:      delay,
		MinDisplay: minDisplay,
	}
}

// Timings changes the durations used for timers scheduled from here on,
// zero durations take the defaults.
func (db Debounce) Timings(delay, minDisplay time.Duration) Debounce {

	next := New(delay, minDisplay)
	db.Delay = next.Delay
	db.MinDisplay = next.MinDisplay
	return db
}

// State returns the current state.
func (db Debounce) State() State {
	return db.state
}

// Visible reports whether the indicator is showing.
func (db Debounce) Visible() bool {
	return db.state == Visible || db.state == PendingHide
}

// ShownAt returns when the indicator last became visible.
func (db Debounce) ShownAt() time.Time {
	return db.shownAt
}

// Set reports the raw loading flag at now.
// A non-nil timer is to be scheduled, any earlier timer is void from here on.
func (db Debounce) Set(loading bool, now time.Time) (Debounce, *Timer) {

	switch {
	case db.state == Idle && loading:
		db.state = PendingShow
		return db.schedule(db.Delay)

	case db.state == PendingShow && !loading:
		db.state = Idle
		db.token++

	case db.state == Visible && !loading:
		elapsed := now.Sub(db.shownAt)
		if elapsed >= db.MinDisplay {
			db.state = Idle
			db.shownAt = time.Time{}
			return db, nil
		}
		db.state = PendingHide
		return db.schedule(db.MinDisplay - elapsed)

	case db.state == PendingHide && loading:
		db.state = Visible
		db.token++
	}

	return db, nil
}

// Fire reports that the timer carrying token has elapsed at now.
// Tokens that have been superseded are ignored.
func (db Debounce) Fire(token uint64, now time.Time) Debounce {

	if token != db.token {
		return db
	}

	switch db.state {
	case PendingShow:
		db.state = Visible
		db.shownAt = now
	case PendingHide:
		db.state = Idle
		db.shownAt = time.Time{}
	}
	return db
}

// Stop cancels any pending timer and hides the indicator.
func (db Debounce) Stop() Debounce {

	db.state = Idle
	db.shownAt = time.Time{}
	db.token++
	return db
}

// unexported

func (db Debounce) schedule(after time.Duration) (Debounce, *Timer) {

	db.token++
	return db, &Timer{Token: db.token, After: after}
}
