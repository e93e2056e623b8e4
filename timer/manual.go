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
	"fmt"
	"sync"
	"time"
)

// Manual is a Scheduler driven by virtual time. Callbacks run from Advance,
// on the caller's goroutine, in deadline order.
type Manual struct {
	lock    sync.Mutex
	now     time.Time
	timers  []*manualTimer
	failArm bool
}

func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

func (m *Manual) Now() time.Time {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.now
}

func (m *Manual) NewTimer(name string, fn Func) Timer {
	m.lock.Lock()
	defer m.lock.Unlock()
	t := &manualTimer{manual: m, name: name, fn: fn}
	m.timers = append(m.timers, t)
	return t
}

// FailArm makes every following Set fail with ErrExhausted.
func (m *Manual) FailArm(fail bool) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.failArm = fail
}

// Pending returns the number of armed timers.
func (m *Manual) Pending() int {
	m.lock.Lock()
	defer m.lock.Unlock()
	n := 0
	for _, t := range m.timers {
		if t.armed {
			n++
		}
	}
	return n
}

// Advance moves virtual time forward by d, firing every timer that falls
// due on the way. Timers armed by callbacks fire too if they fall due
// before the target time.
func (m *Manual) Advance(d time.Duration) {
	m.lock.Lock()
	target := m.now.Add(d)
	m.lock.Unlock()
	for {
		m.lock.Lock()
		var next *manualTimer
		for _, t := range m.timers {
			if !t.armed || t.deadline.After(target) {
				continue
			}
			if next == nil || t.deadline.Before(next.deadline) {
				next = t
			}
		}
		if next == nil {
			m.now = target
			m.lock.Unlock()
			return
		}
		if next.deadline.After(m.now) {
			m.now = next.deadline
		}
		next.armed = false
		now := m.now
		fn := next.fn
		m.lock.Unlock()
		fn(now)
	}
}

type manualTimer struct {
	manual    *Manual
	name      string
	fn        Func
	deadline  time.Time
	armed     bool
	destroyed bool
}

func (t *manualTimer) Set(deadline time.Time) error {
	m := t.manual
	m.lock.Lock()
	defer m.lock.Unlock()
	if t.destroyed {
		return fmt.Errorf("%s: %w", t.name, ErrDestroyed)
	}
	if m.failArm {
		return fmt.Errorf("%s: %w", t.name, ErrExhausted)
	}
	t.deadline = deadline
	t.armed = true
	return nil
}

func (t *manualTimer) Cancel() {
	t.manual.lock.Lock()
	defer t.manual.lock.Unlock()
	t.armed = false
}

func (t *manualTimer) Destroy() {
	t.manual.lock.Lock()
	defer t.manual.lock.Unlock()
	t.armed = false
	t.destroyed = true
}

func (t *manualTimer) Armed() bool {
	t.manual.lock.Lock()
	defer t.manual.lock.Unlock()
	return t.armed
}
