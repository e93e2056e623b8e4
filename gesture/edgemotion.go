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
	"sync"
	"time"

	"github.com/unrud/touchpad-gestures/timer"
)

const (
	// edgeMotionDelay keeps brief edge grazes from moving the pointer.
	edgeMotionDelay    = 150 * time.Millisecond
	edgeMotionInterval = 16 * time.Millisecond
)

type ContactState int

const (
	ContactNone ContactState = iota
	ContactHovering
	ContactBegin
	ContactUpdate
	ContactMaybeEnd
	ContactEnd
)

type EdgeState int

const (
	EdgeIdle EdgeState = iota
	EdgeDraggingCentered
	EdgeEntry
	EdgeActive
	EdgeExit
)

func (s EdgeState) String() string {
	switch s {
	case EdgeIdle:
		return "idle"
	case EdgeDraggingCentered:
		return "dragging-centered"
	case EdgeEntry:
		return "edge-entry"
	case EdgeActive:
		return "edge-active"
	case EdgeExit:
		return "edge-exit"
	}
	return fmt.Sprintf("EdgeState(%d)", int(s))
}

// NextEdgeState is the transition table of the edge motion machine.
func NextEdgeState(current EdgeState, dragActive bool, edges Edge) EdgeState {
	if !dragActive {
		return EdgeIdle
	}
	switch current {
	case EdgeEntry, EdgeActive:
		if edges == EdgeNone {
			return EdgeExit
		}
		return EdgeActive
	default:
		if edges == EdgeNone {
			return EdgeDraggingCentered
		}
		return EdgeEntry
	}
}

// EdgeMotion is the edge motion machine of one touch slot.
//
// Its timer is armed exactly while the state is EdgeEntry (entry delay) or
// EdgeActive (motion tick). If the timer cannot be armed the machine stays
// in EdgeEntry without a timer and never moves the pointer until the touch
// leaves the edge.
type EdgeMotion struct {
	lock     sync.Mutex
	slot     int
	geometry Geometry
	sink     Sink
	observer Observer
	timer    timer.Timer
	closed   bool

	state          EdgeState
	edges          Edge
	speedX, speedY float64
	lastMotion     time.Time
	direction      Vector

	position   Point
	dragActive bool
}

func newEdgeMotion(name string, slot int, geometry Geometry, scheduler timer.Scheduler,
	sink Sink, observer Observer) *EdgeMotion {
	e := &EdgeMotion{
		slot:     slot,
		geometry: geometry,
		sink:     sink,
		observer: observer,
	}
	e.timer = scheduler.NewTimer(fmt.Sprintf("%s (%d) edgemotion", name, slot), e.onTimer)
	return e
}

func (e *EdgeMotion) State() EdgeState {
	e.lock.Lock()
	defer e.lock.Unlock()
	return e.state
}

func (e *EdgeMotion) Edges() Edge {
	e.lock.Lock()
	defer e.lock.Unlock()
	return e.edges
}

// Direction returns the unit vector of the current edge motion.
func (e *EdgeMotion) Direction() Vector {
	e.lock.Lock()
	defer e.lock.Unlock()
	return e.direction
}

// HandleFrame processes one frame of the touch. Frames for touches that are
// not in contact are ignored; ending touches release the drag.
func (e *EdgeMotion) HandleFrame(position Point, contact ContactState, dragActive bool, now time.Time) {
	var event string
	switch contact {
	case ContactBegin:
		event = "touch"
	case ContactUpdate:
		event = "motion"
	case ContactMaybeEnd, ContactEnd:
		event = "release"
		dragActive = false
	default:
		return
	}

	e.lock.Lock()
	if e.closed {
		e.lock.Unlock()
		return
	}
	e.position = e.geometry.Clamp(position)
	e.dragActive = dragActive
	edges := EdgeNone
	if dragActive {
		edges = DetectEdges(e.geometry, e.position)
	}
	var transitions []Transition
	next := NextEdgeState(e.state, dragActive, edges)
	if e.state == EdgeEntry && next == EdgeActive {
		// promotion is left to the entry delay
		next = EdgeEntry
	}
	if next == e.state {
		if next == EdgeEntry || next == EdgeActive {
			e.updateEdgesLocked(edges)
		}
	} else {
		transitions = e.setStateLocked(next, edges, event, now, transitions)
	}
	e.lock.Unlock()

	notify(e.observer, transitions)
}

// Stop forces the machine back to EdgeIdle.
func (e *EdgeMotion) Stop(now time.Time) {
	e.lock.Lock()
	var transitions []Transition
	if !e.closed && e.state != EdgeIdle {
		e.dragActive = false
		transitions = e.setStateLocked(EdgeIdle, EdgeNone, "stop", now, transitions)
	}
	e.lock.Unlock()
	notify(e.observer, transitions)
}

// Close releases the timer. The machine ignores all input afterwards.
func (e *EdgeMotion) Close() {
	e.lock.Lock()
	defer e.lock.Unlock()
	if e.closed {
		return
	}
	e.closed = true
	e.timer.Cancel()
	e.timer.Destroy()
	e.state = EdgeIdle
	e.edges = EdgeNone
}

func (e *EdgeMotion) onTimer(now time.Time) {
	var motion motionAction
	var transitions []Transition

	e.lock.Lock()
	switch {
	case e.closed:
	case e.state == EdgeEntry:
		transitions = e.activateLocked(now, transitions)
	case e.state == EdgeActive:
		motion, transitions = e.tickLocked(now, transitions)
	}
	e.lock.Unlock()

	motion.emit(e.sink)
	notify(e.observer, transitions)
}

// activateLocked ends the entry delay. Must be called with lock held.
func (e *EdgeMotion) activateLocked(now time.Time, transitions []Transition) []Transition {
	edges := DetectEdges(e.geometry, e.position)
	next := NextEdgeState(EdgeEntry, e.dragActive, edges)
	if next != EdgeActive {
		return e.setStateLocked(next, edges, "timeout", now, transitions)
	}
	if err := e.timer.Set(now.Add(edgeMotionInterval)); err != nil {
		return transitions
	}
	transitions = append(transitions, e.transition(EdgeEntry, EdgeActive, "timeout", now))
	e.state = EdgeActive
	e.updateEdgesLocked(edges)
	e.lastMotion = now
	return transitions
}

// tickLocked emits the motion accumulated since the last tick and re-arms
// the timer. Must be called with lock held.
func (e *EdgeMotion) tickLocked(now time.Time, transitions []Transition) (motionAction, []Transition) {
	var motion motionAction
	edges := DetectEdges(e.geometry, e.position)
	next := NextEdgeState(EdgeActive, e.dragActive, edges)
	if next != EdgeActive {
		return motion, e.setStateLocked(next, edges, "tick", now, transitions)
	}
	e.updateEdgesLocked(edges)
	if e.lastMotion.IsZero() {
		e.lastMotion = now
	}
	delta := edgeMotionDelta(e.direction, now.Sub(e.lastMotion), e.speedX, e.speedY)
	if !negligible(delta) {
		motion = motionAction{delta: delta, now: now, ok: true}
		e.lastMotion = now
	}
	if err := e.timer.Set(now.Add(edgeMotionInterval)); err != nil {
		e.state = EdgeEntry
		e.lastMotion = time.Time{}
		transitions = append(transitions, e.transition(EdgeActive, EdgeEntry, "tick", now))
	}
	return motion, transitions
}

// setStateLocked cancels the timer, enters state and arms the timer again
// if the new state needs it. Must be called with lock held.
func (e *EdgeMotion) setStateLocked(state EdgeState, edges Edge, event string,
	now time.Time, transitions []Transition) []Transition {
	e.timer.Cancel()
	transitions = append(transitions, e.transition(e.state, state, event, now))
	e.state = state
	e.lastMotion = time.Time{}
	switch state {
	case EdgeEntry:
		e.updateEdgesLocked(edges)
		// an arm failure leaves the machine in EdgeEntry without a timer
		e.timer.Set(now.Add(edgeMotionDelay))
	default:
		e.edges = EdgeNone
		e.direction = Vector{}
		e.speedX, e.speedY = 0, 0
	}
	return transitions
}

// updateEdgesLocked must be called with lock held.
func (e *EdgeMotion) updateEdgesLocked(edges Edge) {
	e.edges = edges
	e.direction = EdgeDirection(edges)
	e.speedX, e.speedY = EdgeSpeedMultipliers(e.geometry, e.position, edges)
}

func (e *EdgeMotion) transition(from, to EdgeState, event string, now time.Time) Transition {
	return Transition{
		Machine: machineEdgeMotion,
		Slot:    e.slot,
		From:    from.String(),
		To:      to.String(),
		Event:   event,
		Time:    now,
	}
}
