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

const defaultLimit = 256

// Expiry is a pending expiration. It must be handed back to Dispatch on the
// goroutine that owns the timers' callbacks.
type Expiry struct {
	timer *wheelTimer
	gen   uint64
}

// Wheel arms timers with time.AfterFunc but never runs callbacks itself:
// expirations are queued on Expired() and run by Dispatch.
type Wheel struct {
	lock    sync.Mutex
	armed   int
	limit   int
	expired chan Expiry
	done    chan struct{}
	closed  bool
}

func NewWheel() *Wheel {
	return &Wheel{
		limit:   defaultLimit,
		expired: make(chan Expiry, defaultLimit),
		done:    make(chan struct{}),
	}
}

func (w *Wheel) Now() time.Time {
	return time.Now()
}

func (w *Wheel) Expired() <-chan Expiry {
	return w.expired
}

func (w *Wheel) NewTimer(name string, fn Func) Timer {
	return &wheelTimer{wheel: w, name: name, fn: fn}
}

// Dispatch runs the callback of an expiration, unless the timer was
// cancelled, re-armed or destroyed after the expiration was queued.
func (w *Wheel) Dispatch(e Expiry) {
	t := e.timer
	w.lock.Lock()
	if t.destroyed || !t.armed || t.gen != e.gen {
		w.lock.Unlock()
		return
	}
	t.armed = false
	w.armed--
	fn := t.fn
	w.lock.Unlock()
	fn(time.Now())
}

// Close stops delivering expirations. Armed timers are left to expire
// silently.
func (w *Wheel) Close() {
	w.lock.Lock()
	defer w.lock.Unlock()
	if w.closed {
		return
	}
	w.closed = true
	close(w.done)
}

type wheelTimer struct {
	wheel     *Wheel
	name      string
	fn        Func
	timer     *time.Timer
	gen       uint64
	armed     bool
	destroyed bool
}

func (t *wheelTimer) Set(deadline time.Time) error {
	w := t.wheel
	w.lock.Lock()
	defer w.lock.Unlock()
	if t.destroyed || w.closed {
		return fmt.Errorf("%s: %w", t.name, ErrDestroyed)
	}
	if !t.armed && w.armed >= w.limit {
		return fmt.Errorf("%s: %w", t.name, ErrExhausted)
	}
	t.stopLocked()
	if !t.armed {
		t.armed = true
		w.armed++
	}
	t.gen++
	e := Expiry{timer: t, gen: t.gen}
	delay := time.Until(deadline)
	if delay < 0 {
		delay = 0
	}
	t.timer = time.AfterFunc(delay, func() {
		select {
		case w.expired <- e:
		case <-w.done:
		}
	})
	return nil
}

func (t *wheelTimer) Cancel() {
	w := t.wheel
	w.lock.Lock()
	defer w.lock.Unlock()
	t.cancelLocked()
}

func (t *wheelTimer) Destroy() {
	w := t.wheel
	w.lock.Lock()
	defer w.lock.Unlock()
	t.cancelLocked()
	t.destroyed = true
}

func (t *wheelTimer) Armed() bool {
	w := t.wheel
	w.lock.Lock()
	defer w.lock.Unlock()
	return t.armed
}

func (t *wheelTimer) cancelLocked() {
	t.stopLocked()
	if t.armed {
		t.armed = false
		t.wheel.armed--
	}
	t.gen++
}

func (t *wheelTimer) stopLocked() {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

func (t *wheelTimer) String() string {
	return t.name
}
