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

// Package timer provides one-shot alarms whose expirations are delivered
// to a single consumer, so that callbacks never run concurrently with the
// code that arms and cancels them.
package timer

import (
	"errors"
	"time"
)

var (
	ErrDestroyed = errors.New("timer destroyed")
	ErrExhausted = errors.New("too many armed timers")
)

// Func is invoked with the time at which the expiration is processed.
type Func func(now time.Time)

// Timer is a one-shot alarm. Setting an armed timer moves its deadline.
type Timer interface {
	Set(deadline time.Time) error
	Cancel()
	Destroy()
	Armed() bool
}

type Scheduler interface {
	Now() time.Time
	NewTimer(name string, fn Func) Timer
}
