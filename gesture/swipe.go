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
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/unrud/touchpad-gestures/inputcontrol"
	"github.com/unrud/touchpad-gestures/timer"
)

const swipeFingers = 4

// Direction classification, in normalized units.
const (
	swipeMinDelta      = 0.15
	swipeDominantRatio = 1.5
	swipeDebounce      = 3
)

// Speed weighting: slow movements count more than fast ones, so a careful
// swipe can still step precisely.
const (
	swipeSlowMagnitude  = 2.0
	swipeFastMagnitude  = 15.0
	swipeSlowMultiplier = 2.0
	swipeFastMultiplier = 0.5
)

const (
	swipeVerticalThreshold   = 8.0
	swipeHorizontalThreshold = 10.0
)

const (
	swipeInterval   = 80 * time.Millisecond
	swipeInactivity = 200 * time.Millisecond
	swipeCooldown   = 150 * time.Millisecond
)

type Direction int

const (
	DirectionNone Direction = iota
	DirectionUp
	DirectionDown
	DirectionLeft
	DirectionRight
)

func (d Direction) String() string {
	switch d {
	case DirectionNone:
		return "none"
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

func (d Direction) Vertical() bool {
	return d == DirectionUp || d == DirectionDown
}

func (d Direction) Horizontal() bool {
	return d == DirectionLeft || d == DirectionRight
}

func (d Direction) key() inputcontrol.Key {
	switch d {
	case DirectionUp:
		return inputcontrol.KeyVolumeUp
	case DirectionDown:
		return inputcontrol.KeyVolumeDown
	case DirectionLeft:
		return inputcontrol.KeyBrightnessDown
	default:
		return inputcontrol.KeyBrightnessUp
	}
}

// ClassifyDirection returns the dominant direction of a per-frame delta.
// Deltas that are too small, or too close to a diagonal, have none.
func ClassifyDirection(delta Vector) Direction {
	ax, ay := math.Abs(delta.X), math.Abs(delta.Y)
	if math.IsNaN(ax) || math.IsNaN(ay) {
		return DirectionNone
	}
	if ax < swipeMinDelta && ay < swipeMinDelta {
		return DirectionNone
	}
	switch {
	case ay > ax*swipeDominantRatio:
		if delta.Y < 0 {
			return DirectionUp
		}
		return DirectionDown
	case ax > ay*swipeDominantRatio:
		if delta.X < 0 {
			return DirectionLeft
		}
		return DirectionRight
	}
	return DirectionNone
}

// SwipeSpeedMultiplier interpolates linearly between the slow and the fast
// multiplier over the magnitude of a frame's movement.
func SwipeSpeedMultiplier(magnitude float64) float64 {
	switch {
	case math.IsNaN(magnitude) || magnitude <= swipeSlowMagnitude:
		return swipeSlowMultiplier
	case magnitude >= swipeFastMagnitude:
		return swipeFastMultiplier
	}
	t := (magnitude - swipeSlowMagnitude) / (swipeFastMagnitude - swipeSlowMagnitude)
	return swipeSlowMultiplier + (swipeFastMultiplier-swipeSlowMultiplier)*t
}

type SwipeState int

const (
	SwipeIdle SwipeState = iota
	SwipeDetecting
	SwipeVerticalActive
	SwipeHorizontalActive
	SwipeCooldown
)

func (s SwipeState) String() string {
	switch s {
	case SwipeIdle:
		return "idle"
	case SwipeDetecting:
		return "detecting"
	case SwipeVerticalActive:
		return "vertical-active"
	case SwipeHorizontalActive:
		return "horizontal-active"
	case SwipeCooldown:
		return "cooldown"
	}
	return fmt.Sprintf("SwipeState(%d)", int(s))
}

func (s SwipeState) active() bool {
	return s == SwipeVerticalActive || s == SwipeHorizontalActive
}

// Swipe is the four-finger swipe machine of a device. Its timer is armed
// whenever the state is not SwipeIdle.
type Swipe struct {
	lock     sync.Mutex
	sink     Sink
	observer Observer
	timer    timer.Timer
	closed   bool

	state         SwipeState
	locked        Direction
	candidate     Direction
	matches       int
	accumulated   float64
	steps         int
	lastEvent     time.Time
	cooldownStart time.Time
}

func newSwipe(name string, scheduler timer.Scheduler, sink Sink, observer Observer) *Swipe {
	s := &Swipe{sink: sink, observer: observer}
	s.timer = scheduler.NewTimer(name+" swipe", s.onTimer)
	return s
}

func (s *Swipe) State() SwipeState {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.state
}

func (s *Swipe) LockedDirection() Direction {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.locked
}

// Accumulated returns the displacement not yet turned into key steps.
func (s *Swipe) Accumulated() float64 {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.accumulated
}

// Steps returns the number of key steps emitted since the direction was
// locked.
func (s *Swipe) Steps() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.steps
}

// HandleFrame processes the movement of a multi-finger gesture frame. Only
// four-finger frames are considered.
func (s *Swipe) HandleFrame(fingers int, delta Vector, now time.Time) {
	if fingers != swipeFingers {
		return
	}
	var key keyAction
	var transitions []Transition

	s.lock.Lock()
	if s.closed || s.state == SwipeCooldown {
		s.lock.Unlock()
		return
	}
	direction := ClassifyDirection(delta)
	if s.state == SwipeIdle && direction == DirectionNone {
		s.lock.Unlock()
		return
	}
	s.lastEvent = now
	switch s.state {
	case SwipeIdle:
		if err := s.timer.Set(now.Add(swipeInterval)); err != nil {
			break
		}
		s.candidate = direction
		s.matches = 1
		transitions = s.setStateLocked(SwipeDetecting, "frame", now, transitions)
	case SwipeDetecting:
		transitions = s.detectLocked(direction, now, transitions)
	case SwipeVerticalActive, SwipeHorizontalActive:
		if s.accumulateLocked(direction, delta) {
			key = s.stepLocked(now)
		}
	}
	s.lock.Unlock()

	key.emit(s.sink)
	notify(s.observer, transitions)
}

// End finishes the current gesture: an active swipe cools down, a swipe
// still being detected is dropped.
func (s *Swipe) End(now time.Time) {
	var transitions []Transition
	s.lock.Lock()
	switch {
	case s.closed:
	case s.state.active():
		s.lastEvent = now
		s.cooldownStart = now
		transitions = s.setStateLocked(SwipeCooldown, "end", now, transitions)
	case s.state == SwipeDetecting:
		transitions = s.resetLocked("end", now, transitions)
	}
	s.lock.Unlock()
	notify(s.observer, transitions)
}

// Close releases the timer. The machine ignores all input afterwards.
func (s *Swipe) Close() {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.timer.Cancel()
	s.timer.Destroy()
	s.state = SwipeIdle
	s.locked = DirectionNone
	s.accumulated = 0
}

func (s *Swipe) onTimer(now time.Time) {
	var key keyAction
	var transitions []Transition

	s.lock.Lock()
	if s.closed || s.state == SwipeIdle {
		s.lock.Unlock()
		return
	}
	switch {
	case now.Sub(s.lastEvent) > swipeInactivity:
		transitions = s.resetLocked("timeout", now, transitions)
	case s.state == SwipeCooldown:
		if now.Sub(s.cooldownStart) >= swipeCooldown {
			transitions = s.resetLocked("cooldown", now, transitions)
		}
	case s.state.active():
		key = s.stepLocked(now)
	}
	if s.state != SwipeIdle {
		if err := s.timer.Set(now.Add(swipeInterval)); err != nil {
			transitions = s.resetLocked("timer", now, transitions)
		}
	}
	s.lock.Unlock()

	key.emit(s.sink)
	notify(s.observer, transitions)
}

// detectLocked debounces the direction. Must be called with lock held.
func (s *Swipe) detectLocked(direction Direction, now time.Time, transitions []Transition) []Transition {
	switch {
	case direction == DirectionNone:
		return transitions
	case direction != s.candidate:
		s.candidate = direction
		s.matches = 1
		return transitions
	}
	s.matches++
	if s.matches < swipeDebounce {
		return transitions
	}
	s.locked = s.candidate
	s.accumulated = 0
	s.steps = 0
	state := SwipeHorizontalActive
	if s.locked.Vertical() {
		state = SwipeVerticalActive
	}
	return s.setStateLocked(state, "lock", now, transitions)
}

// accumulateLocked adds the speed weighted movement along the locked axis
// and reports whether the frame counted. Must be called with lock held.
func (s *Swipe) accumulateLocked(direction Direction, delta Vector) bool {
	var movement float64
	switch {
	case s.state == SwipeVerticalActive && direction.Vertical():
		movement = delta.Y
	case s.state == SwipeHorizontalActive && direction.Horizontal():
		movement = delta.X
	default:
		return false
	}
	if direction != s.locked {
		s.locked = direction
		s.accumulated = 0
	}
	s.accumulated += movement * SwipeSpeedMultiplier(delta.Length())
	return true
}

// stepLocked emits at most one key step, keeping the displacement beyond
// the threshold. Must be called with lock held.
func (s *Swipe) stepLocked(now time.Time) keyAction {
	threshold := swipeHorizontalThreshold
	if s.state == SwipeVerticalActive {
		threshold = swipeVerticalThreshold
	}
	if math.Abs(s.accumulated) < threshold {
		return keyAction{}
	}
	s.accumulated -= math.Copysign(threshold, s.accumulated)
	s.steps++
	return keyAction{key: s.locked.key(), now: now, ok: true}
}

// resetLocked returns to SwipeIdle. Must be called with lock held.
func (s *Swipe) resetLocked(event string, now time.Time, transitions []Transition) []Transition {
	s.timer.Cancel()
	s.locked = DirectionNone
	s.candidate = DirectionNone
	s.matches = 0
	s.accumulated = 0
	s.steps = 0
	return s.setStateLocked(SwipeIdle, event, now, transitions)
}

// setStateLocked must be called with lock held.
func (s *Swipe) setStateLocked(state SwipeState, event string, now time.Time, transitions []Transition) []Transition {
	if state == s.state {
		return transitions
	}
	transitions = append(transitions, Transition{
		Machine: machineSwipe,
		Slot:    -1,
		From:    s.state.String(),
		To:      state.String(),
		Event:   event,
		Time:    now,
	})
	s.state = state
	return transitions
}
