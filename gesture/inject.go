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
	"time"

	"github.com/unrud/touchpad-gestures/inputcontrol"
)

const (
	// edgeMotionSpeedMM is the pointer speed at a multiplier of 1.
	edgeMotionSpeedMM = 30.0
	// motionEpsilon is the smallest displacement, in normalized units,
	// worth emitting.
	motionEpsilon = 0.01
)

// edgeMotionDelta is the displacement produced by moving along direction
// for elapsed time, with the speed of each axis scaled separately.
func edgeMotionDelta(direction Vector, elapsed time.Duration, speedX, speedY float64) Vector {
	if elapsed <= 0 {
		return Vector{}
	}
	distance := mmToNormalized(edgeMotionSpeedMM * elapsed.Seconds())
	delta := direction.Scale(distance*speedX, distance*speedY)
	if math.IsNaN(delta.X) || math.IsNaN(delta.Y) {
		return Vector{}
	}
	return delta
}

func negligible(delta Vector) bool {
	return math.Abs(delta.X) < motionEpsilon && math.Abs(delta.Y) < motionEpsilon
}

// motionAction is prepared under a machine's lock and emitted after it is
// released.
type motionAction struct {
	delta Vector
	now   time.Time
	ok    bool
}

func (a motionAction) emit(sink Sink) {
	if !a.ok || sink == nil {
		return
	}
	sink.PointerMotion(a.now, a.delta.X, a.delta.Y)
}

type keyAction struct {
	key inputcontrol.Key
	now time.Time
	ok  bool
}

// emit sends a full key stroke.
func (a keyAction) emit(sink Sink) {
	if !a.ok || sink == nil {
		return
	}
	sink.KeyEvent(a.now, a.key, true)
	sink.KeyEvent(a.now, a.key, false)
}
