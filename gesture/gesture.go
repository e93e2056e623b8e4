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

// Package gesture interprets multi-touch frames into synthesized pointer
// motion and key events.
//
// Two state machines live here. EdgeMotion keeps a tap-and-drag going when
// the finger reaches the border of the touchpad by moving the pointer
// towards that border for as long as the finger stays there. Swipe turns a
// four-finger swipe into volume (vertical) or brightness (horizontal) key
// steps.
//
// Both machines are driven by frames from the caller and by their own
// timer from a timer.Scheduler. Frame calls and timer callbacks may come
// from different goroutines; each machine serialises them behind its own
// lock. Output goes to a Sink and is emitted after that lock is released.
package gesture

import (
	"time"

	"github.com/unrud/touchpad-gestures/inputcontrol"
)

// Sink receives synthesized output. Motion is relative, in normalized
// (1000 dpi) units, before any pointer acceleration.
type Sink interface {
	PointerMotion(now time.Time, deltaX, deltaY float64)
	KeyEvent(now time.Time, key inputcontrol.Key, press bool)
}

// Transition describes a state change of one of the machines. Slot is -1
// for the swipe machine.
type Transition struct {
	Machine string
	Slot    int
	From    string
	To      string
	Event   string
	Time    time.Time
}

// Observer is called after every state change, outside of the machine's
// lock. It must not call back into the machine that reported it.
type Observer func(Transition)

const (
	machineEdgeMotion = "edge-motion"
	machineSwipe      = "swipe"
)

func notify(observer Observer, transitions []Transition) {
	if observer == nil {
		return
	}
	for _, t := range transitions {
		observer(t)
	}
}
