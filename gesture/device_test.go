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

package gesture

import (
	"math"
	"testing"
	"time"

	"github.com/unrud/touchpad-gestures/inputcontrol"
	"github.com/unrud/touchpad-gestures/timer"
)

var epoch = time.Unix(1000, 0)

// testGeometry is a 100 mm x 70 mm touchpad with 10 units per mm.
var testGeometry = NewGeometry(0, 1000, 0, 700, 10, 10)

type motion struct{ x, y float64 }

type keyStroke struct {
	key   inputcontrol.Key
	press bool
}

type recordingSink struct {
	motions []motion
	keys    []keyStroke
}

func (s *recordingSink) PointerMotion(now time.Time, deltaX, deltaY float64) {
	s.motions = append(s.motions, motion{deltaX, deltaY})
}

func (s *recordingSink) KeyEvent(now time.Time, key inputcontrol.Key, press bool) {
	s.keys = append(s.keys, keyStroke{key, press})
}

// strokes returns the completed key strokes, checking that every press is
// followed by its release.
func (s *recordingSink) strokes(t *testing.T) []inputcontrol.Key {
	t.Helper()
	if len(s.keys)%2 != 0 {
		t.Fatalf("unpaired key events %v", s.keys)
	}
	var keys []inputcontrol.Key
	for i := 0; i < len(s.keys); i += 2 {
		press, release := s.keys[i], s.keys[i+1]
		if !press.press || release.press || press.key != release.key {
			t.Fatalf("bad key stroke %v %v", press, release)
		}
		keys = append(keys, press.key)
	}
	return keys
}

type recordingObserver struct {
	transitions []Transition
}

func (o *recordingObserver) observe(t Transition) {
	o.transitions = append(o.transitions, t)
}

func (o *recordingObserver) states() []string {
	var states []string
	for _, t := range o.transitions {
		states = append(states, t.To)
	}
	return states
}

type fixture struct {
	scheduler *timer.Manual
	sink      *recordingSink
	observer  *recordingObserver
	device    *Device
}

func newFixture() *fixture {
	f := &fixture{
		scheduler: timer.NewManual(epoch),
		sink:      &recordingSink{},
		observer:  &recordingObserver{},
	}
	f.device = NewDevice(Config{
		Name:      "test",
		Slots:     2,
		Geometry:  testGeometry,
		Scheduler: f.scheduler,
		Sink:      f.sink,
		Observer:  f.observer.observe,
	})
	return f
}

func (f *fixture) touch(slot int, x, y float64, contact ContactState, drag bool) {
	f.device.NotifyTouchFrame(slot, Point{x, y}, contact, drag, f.scheduler.Now())
}

func (f *fixture) swipe(fingers int, x, y float64) {
	f.device.NotifyFourFingerFrame(fingers, Vector{x, y}, f.scheduler.Now())
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestDeviceIgnoresUnknownSlots(t *testing.T) {
	f := newFixture()
	f.touch(-1, 10, 350, ContactBegin, true)
	f.touch(2, 10, 350, ContactBegin, true)
	if f.device.EdgeMotion(2) != nil || f.device.EdgeMotion(-1) != nil {
		t.Error("unknown slot returned a machine")
	}
	if len(f.observer.transitions) != 0 {
		t.Errorf("transitions %v", f.observer.transitions)
	}
	if f.device.Slots() != 2 {
		t.Errorf("slots = %d", f.device.Slots())
	}
}

func TestDeviceCloseDestroysTimers(t *testing.T) {
	f := newFixture()
	f.touch(0, 10, 350, ContactBegin, true)
	f.touch(1, 990, 350, ContactBegin, true)
	for i := 0; i < 3; i++ {
		f.swipe(4, 0, -2)
	}
	if got := f.scheduler.Pending(); got != 3 {
		t.Fatalf("pending = %d, want 3", got)
	}
	f.device.Close()
	if got := f.scheduler.Pending(); got != 0 {
		t.Fatalf("pending after close = %d", got)
	}
	f.touch(0, 10, 350, ContactUpdate, true)
	f.swipe(4, 0, -2)
	f.scheduler.Advance(time.Second)
	if len(f.sink.motions) != 0 || len(f.sink.keys) != 0 {
		t.Errorf("output after close: %v %v", f.sink.motions, f.sink.keys)
	}
	if got := f.scheduler.Pending(); got != 0 {
		t.Errorf("pending after input on closed device = %d", got)
	}
}

func TestDeviceStopEdgeMotion(t *testing.T) {
	f := newFixture()
	f.touch(0, 10, 350, ContactBegin, true)
	f.touch(1, 500, 350, ContactBegin, true)
	f.scheduler.Advance(edgeMotionDelay)
	f.device.StopEdgeMotion(f.scheduler.Now())
	for slot := 0; slot < 2; slot++ {
		if s := f.device.EdgeMotion(slot).State(); s != EdgeIdle {
			t.Errorf("slot %d in %v", slot, s)
		}
	}
	if got := f.scheduler.Pending(); got != 0 {
		t.Errorf("pending = %d", got)
	}
	f.scheduler.Advance(time.Second)
	if len(f.sink.motions) != 0 {
		t.Errorf("motion after stop: %v", f.sink.motions)
	}
}
