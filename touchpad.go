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

package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/holoplot/go-evdev"

	"github.com/unrud/touchpad-gestures/gesture"
)

const swipeFingers = 4

var errNoTouchpad = errors.New("no multi-touch touchpad found")

// touchpadHandler is the part of gesture.Device the frame assembler feeds.
type touchpadHandler interface {
	NotifyTouchFrame(slot int, position gesture.Point, contact gesture.ContactState, dragActive bool, now time.Time)
	NotifyFourFingerFrame(fingers int, delta gesture.Vector, now time.Time)
	EndFourFingerGesture(now time.Time)
	StopEdgeMotion(now time.Time)
}

type touchSlot struct {
	position gesture.Point
	previous gesture.Point
	active   bool
	began    bool
	ended    bool
	moved    bool
}

// frameAssembler collects the events of the multi-touch slot protocol and
// reports complete frames on SYN_REPORT.
type frameAssembler struct {
	geometry gesture.Geometry
	slots    []touchSlot
	slot     int
	button   bool
	quadTap  bool
	fingers  int
	dropped  bool
}

func newFrameAssembler(geometry gesture.Geometry, slots int) *frameAssembler {
	return &frameAssembler{
		geometry: geometry,
		slots:    make([]touchSlot, slots),
	}
}

func (a *frameAssembler) current() *touchSlot {
	if a.slot < 0 || a.slot >= len(a.slots) {
		return nil
	}
	return &a.slots[a.slot]
}

func (a *frameAssembler) handle(event *evdev.InputEvent, now time.Time, h touchpadHandler) {
	switch event.Type {
	case evdev.EV_ABS:
		a.handleAbs(event.Code, event.Value)
	case evdev.EV_KEY:
		pressed := event.Value != 0
		switch event.Code {
		case evdev.BTN_LEFT:
			a.button = pressed
		case evdev.BTN_TOOL_QUADTAP:
			a.quadTap = pressed
		}
	case evdev.EV_SYN:
		switch event.Code {
		case evdev.SYN_DROPPED:
			a.dropped = true
		case evdev.SYN_REPORT:
			if a.dropped {
				a.resync(now, h)
				return
			}
			a.flush(now, h)
		}
	}
}

func (a *frameAssembler) handleAbs(code evdev.EvCode, value int32) {
	if code == evdev.ABS_MT_SLOT {
		a.slot = int(value)
		return
	}
	s := a.current()
	if s == nil {
		return
	}
	switch code {
	case evdev.ABS_MT_TRACKING_ID:
		if value < 0 {
			if s.active {
				s.ended = true
			}
			s.active = false
		} else {
			s.active = true
			s.began = true
			s.ended = false
		}
	case evdev.ABS_MT_POSITION_X:
		s.position.X = float64(value)
		s.moved = true
	case evdev.ABS_MT_POSITION_Y:
		s.position.Y = float64(value)
		s.moved = true
	}
}

func (a *frameAssembler) flush(now time.Time, h touchpadHandler) {
	fingers := 0
	var sum gesture.Vector
	moving := 0
	for i := range a.slots {
		s := &a.slots[i]
		var contact gesture.ContactState
		switch {
		case s.began && s.active:
			contact = gesture.ContactBegin
		case s.active:
			contact = gesture.ContactUpdate
			if s.moved {
				sum.X += s.position.X - s.previous.X
				sum.Y += s.position.Y - s.previous.Y
			}
			moving++
		case s.ended || s.began:
			contact = gesture.ContactEnd
		}
		if s.active {
			fingers++
		}
		if contact != gesture.ContactNone {
			h.NotifyTouchFrame(i, s.position, contact, a.button && s.active, now)
		}
		s.previous = s.position
		s.began, s.ended, s.moved = false, false, false
	}
	if a.quadTap && fingers < swipeFingers {
		fingers = swipeFingers
	}
	if fingers == swipeFingers && moving > 0 && a.fingers == swipeFingers {
		delta := gesture.Vector{X: sum.X / float64(moving), Y: sum.Y / float64(moving)}
		h.NotifyFourFingerFrame(fingers, a.geometry.Normalized(delta), now)
	} else if fingers != swipeFingers && a.fingers == swipeFingers {
		h.EndFourFingerGesture(now)
	}
	a.fingers = fingers
}

// resync drops all state after the kernel buffer overflowed. Touches are
// picked up again when the kernel reports them.
func (a *frameAssembler) resync(now time.Time, h touchpadHandler) {
	a.dropped = false
	h.StopEdgeMotion(now)
	if a.fingers == swipeFingers {
		h.EndFourFingerGesture(now)
	}
	for i := range a.slots {
		a.slots[i] = touchSlot{}
	}
	a.fingers = 0
}

type touchpad struct {
	device   *evdev.InputDevice
	name     string
	geometry gesture.Geometry
	slots    int
}

func openTouchpad(path string) (*touchpad, error) {
	device, err := evdev.Open(path)
	if err != nil {
		return nil, err
	}
	abs, err := device.AbsInfos()
	if err != nil {
		device.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	slotInfo, haveSlots := abs[evdev.ABS_MT_SLOT]
	x, haveX := abs[evdev.ABS_MT_POSITION_X]
	y, haveY := abs[evdev.ABS_MT_POSITION_Y]
	if !haveSlots || !haveX || !haveY {
		device.Close()
		return nil, fmt.Errorf("%s: %w", path, errNoTouchpad)
	}
	geometry := gesture.NewGeometry(
		float64(x.Minimum), float64(x.Maximum),
		float64(y.Minimum), float64(y.Maximum),
		float64(x.Resolution), float64(y.Resolution))
	return &touchpad{
		device:   device,
		name:     filepath.Base(path),
		geometry: geometry,
		slots:    int(slotInfo.Maximum) + 1,
	}, nil
}

// findTouchpad returns the first input device speaking the multi-touch
// slot protocol.
func findTouchpad() (*touchpad, error) {
	paths, err := evdev.ListDevicePaths()
	if err != nil {
		return nil, err
	}
	for _, p := range paths {
		if t, err := openTouchpad(p.Path); err == nil {
			return t, nil
		}
	}
	return nil, errNoTouchpad
}

// readEvents forwards events until the device fails or is closed.
func (t *touchpad) readEvents(events chan<- *evdev.InputEvent, errs chan<- error) {
	for {
		event, err := t.device.ReadOne()
		if err != nil {
			errs <- fmt.Errorf("%s: %w", t.name, err)
			return
		}
		events <- event
	}
}

func (t *touchpad) Close() error {
	return t.device.Close()
}
