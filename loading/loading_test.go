package loading

import (
	"testing"
	"time"
)

var t0 = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func at(ms int) time.Time {
	return t0.Add(time.Duration(ms) * time.Millisecond)
}

func TestDefaults(t *testing.T) {

	db := New(0, 0)
	if db.Delay != DefaultDelay || db.MinDisplay != DefaultMinDisplay {
		t.Errorf("got %s/%s, want defaults", db.Delay, db.MinDisplay)
	}
	if db.State() != Idle || db.Visible() {
		t.Errorf("new debounce should be idle and hidden")
	}
}

func TestFastLoadNeverShows(t *testing.T) {

	db, timer := New(0, 0).Set(true, at(0))
	if timer == nil || timer.After != DefaultDelay {
		t.Fatalf("expected show timer after %s, got %+v", DefaultDelay, timer)
	}

	db, hide := db.Set(false, at(100))
	if hide != nil {
		t.Errorf("unexpected timer %+v", hide)
	}

	db = db.Fire(timer.Token, at(150))
	if db.Visible() || db.State() != Idle {
		t.Errorf("stale show timer made indicator visible: %s", db.State())
	}
}

func TestMinimumDisplay(t *testing.T) {

	db, show := New(0, 0).Set(true, at(0))
	db = db.Fire(show.Token, at(150))
	if db.State() != Visible {
		t.Fatalf("got %s, want visible", db.State())
	}

	db, hide := db.Set(false, at(200))
	if hide == nil {
		t.Fatalf("expected hide timer")
	}
	if hide.After != 450*time.Millisecond {
		t.Errorf("got hide after %s, want 450ms", hide.After)
	}
	if !db.Visible() {
		t.Errorf("indicator must stay visible while pending hide")
	}

	db = db.Fire(hide.Token, at(650))
	if db.Visible() {
		t.Errorf("indicator should be hidden after minimum display")
	}
}

func TestLongLoadHidesImmediately(t *testing.T) {

	db, show := New(0, 0).Set(true, at(0))
	db = db.Fire(show.Token, at(150))

	db, timer := db.Set(false, at(2000))
	if timer != nil {
		t.Errorf("unexpected timer %+v", timer)
	}
	if db.State() != Idle {
		t.Errorf("got %s, want idle", db.State())
	}
}

func TestReloadWhilePendingHide(t *testing.T) {

	db, show := New(0, 0).Set(true, at(0))
	db = db.Fire(show.Token, at(150))
	db, hide := db.Set(false, at(300))

	db, timer := db.Set(true, at(400))
	if timer != nil {
		t.Errorf("unexpected timer %+v", timer)
	}
	if db.State() != Visible {
		t.Fatalf("got %s, want visible", db.State())
	}
	if !db.ShownAt().Equal(at(150)) {
		t.Errorf("shownAt moved to %s", db.ShownAt())
	}

	db = db.Fire(hide.Token, at(650))
	if db.State() != Visible {
		t.Errorf("cancelled hide timer took effect: %s", db.State())
	}
}

func TestRedundantSets(t *testing.T) {

	db, show := New(0, 0).Set(true, at(0))
	db, again := db.Set(true, at(50))
	if again != nil {
		t.Errorf("repeat true should not reschedule")
	}

	db = db.Fire(show.Token, at(150))
	if db.State() != Visible {
		t.Fatalf("got %s, want visible", db.State())
	}

	_, idle := New(0, 0).Set(false, at(0))
	if idle != nil {
		t.Errorf("false while idle should not schedule")
	}
}

func TestStop(t *testing.T) {

	db, show := New(10*time.Millisecond, 20*time.Millisecond).Set(true, at(0))
	db = db.Stop()
	db = db.Fire(show.Token, at(10))
	if db.State() != Idle {
		t.Errorf("got %s after stop, want idle", db.State())
	}
}

func TestTimings(t *testing.T) {

	db, _ := New(0, 0).Set(true, at(0))
	db = db.Timings(40*time.Millisecond, 0)

	if db.State() != PendingShow {
		t.Errorf("timings should leave state alone, got %s", db.State())
	}
	if db.MinDisplay != DefaultMinDisplay {
		t.Errorf("zero min display should take the default, got %s", db.MinDisplay)
	}

	db = db.Stop()
	_, timer := db.Set(true, at(10))
	if timer == nil || timer.After != 40*time.Millisecond {
		t.Errorf("got %+v, want show timer after 40ms", timer)
	}
}
