/*
 *    Copyright (c) 2024 Unrud <unrud@outlook.com>
 *
 *    This file is part of Touchpad-Gestures.
 *
 *    Touchpad-Gestures is free software: you can redistribute it and/or modify
 *    it under the terms of the GNU General Public License as published by
 *    the Free Software Foundation, either version 3 of the License, or
 *    (at your option) any later version.
 *
 *    Touchpad-Gestures is distributed in the hope that it will be useful,
 *    but WITHOUT ANY WARRANTY; without even the implied warranty of
 *    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 *    GNU General Public License for more details.
 *
 *    You should have received a copy of the GNU General Public License
 *    along with Touchpad-Gestures.  If not, see <http://www.gnu.org/licenses/>.
 */

package timer

import (
	"errors"
	"testing"
	"time"
)

var epoch = time.Unix(1000, 0)

func TestManualFiresInDeadlineOrder(t *testing.T) {
	m := NewManual(epoch)
	var fired []string
	a := m.NewTimer("a", func(now time.Time) { fired = append(fired, "a") })
	b := m.NewTimer("b", func(now time.Time) { fired = append(fired, "b") })
	if err := a.Set(epoch.Add(30 * time.Millisecond)); err != nil {
		t.Fatal(err)
	}
	if err := b.Set(epoch.Add(10 * time.Millisecond)); err != nil {
		t.Fatal(err)
	}
	m.Advance(20 * time.Millisecond)
	if len(fired) != 1 || fired[0] != "b" {
		t.Fatalf("fired %v, want [b]", fired)
	}
	m.Advance(20 * time.Millisecond)
	if len(fired) != 2 || fired[1] != "a" {
		t.Fatalf("fired %v, want [b a]", fired)
	}
	if got := m.Now(); !got.Equal(epoch.Add(40 * time.Millisecond)) {
		t.Errorf("now = %v", got)
	}
}

func TestManualCallbackTime(t *testing.T) {
	m := NewManual(epoch)
	var at time.Time
	tm := m.NewTimer("t", func(now time.Time) { at = now })
	tm.Set(epoch.Add(15 * time.Millisecond))
	m.Advance(100 * time.Millisecond)
	if !at.Equal(epoch.Add(15 * time.Millisecond)) {
		t.Errorf("callback at %v, want deadline", at)
	}
}

func TestManualRearmFromCallback(t *testing.T) {
	m := NewManual(epoch)
	count := 0
	var tm Timer
	tm = m.NewTimer("periodic", func(now time.Time) {
		count++
		tm.Set(now.Add(10 * time.Millisecond))
	})
	tm.Set(epoch.Add(10 * time.Millisecond))
	m.Advance(55 * time.Millisecond)
	if count != 5 {
		t.Errorf("count = %d, want 5", count)
	}
	if !tm.Armed() {
		t.Error("periodic timer should still be armed")
	}
}

func TestManualCancelAndDestroy(t *testing.T) {
	m := NewManual(epoch)
	fired := false
	tm := m.NewTimer("t", func(time.Time) { fired = true })
	tm.Set(epoch.Add(time.Millisecond))
	tm.Cancel()
	m.Advance(time.Second)
	if fired {
		t.Error("cancelled timer fired")
	}
	tm.Destroy()
	if err := tm.Set(epoch); !errors.Is(err, ErrDestroyed) {
		t.Errorf("Set after Destroy = %v", err)
	}
	if m.Pending() != 0 {
		t.Errorf("pending = %d", m.Pending())
	}
}

func TestManualFailArm(t *testing.T) {
	m := NewManual(epoch)
	tm := m.NewTimer("t", func(time.Time) {})
	m.FailArm(true)
	if err := tm.Set(epoch); !errors.Is(err, ErrExhausted) {
		t.Errorf("Set = %v, want ErrExhausted", err)
	}
	if tm.Armed() {
		t.Error("timer armed after failed Set")
	}
}

func TestWheelDispatch(t *testing.T) {
	w := NewWheel()
	defer w.Close()
	fired := make(chan time.Time, 1)
	tm := w.NewTimer("t", func(now time.Time) { fired <- now })
	if err := tm.Set(w.Now().Add(time.Millisecond)); err != nil {
		t.Fatal(err)
	}
	select {
	case e := <-w.Expired():
		w.Dispatch(e)
	case <-time.After(time.Second):
		t.Fatal("no expiration")
	}
	select {
	case <-fired:
	default:
		t.Fatal("callback not run by Dispatch")
	}
	if tm.Armed() {
		t.Error("timer still armed after dispatch")
	}
}

func TestWheelDropsStaleExpiry(t *testing.T) {
	w := NewWheel()
	defer w.Close()
	fired := false
	tm := w.NewTimer("t", func(time.Time) { fired = true })
	tm.Set(w.Now())
	var e Expiry
	select {
	case e = <-w.Expired():
	case <-time.After(time.Second):
		t.Fatal("no expiration")
	}
	tm.Cancel()
	w.Dispatch(e)
	if fired {
		t.Error("stale expiration ran the callback")
	}
	tm.Set(w.Now().Add(time.Hour))
	w.Dispatch(e)
	if fired {
		t.Error("expiration from an earlier arming ran the callback")
	}
	tm.Destroy()
}

func TestWheelLimit(t *testing.T) {
	w := NewWheel()
	defer w.Close()
	w.limit = 1
	a := w.NewTimer("a", func(time.Time) {})
	b := w.NewTimer("b", func(time.Time) {})
	deadline := w.Now().Add(time.Hour)
	if err := a.Set(deadline); err != nil {
		t.Fatal(err)
	}
	if err := a.Set(deadline); err != nil {
		t.Errorf("re-arming an armed timer: %v", err)
	}
	if err := b.Set(deadline); !errors.Is(err, ErrExhausted) {
		t.Errorf("Set = %v, want ErrExhausted", err)
	}
	a.Cancel()
	if err := b.Set(deadline); err != nil {
		t.Errorf("Set after cancel: %v", err)
	}
	b.Destroy()
}
