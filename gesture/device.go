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
	"time"

	"github.com/unrud/touchpad-gestures/timer"
)

type Config struct {
	// Name identifies the device in timer names, usually its system name.
	Name      string
	Slots     int
	Geometry  Geometry
	Scheduler timer.Scheduler
	Sink      Sink
	Observer  Observer
}

// Device owns the machines of one touchpad: an EdgeMotion per touch slot
// and a single Swipe.
type Device struct {
	edgeMotion []*EdgeMotion
	swipe      *Swipe
}

func NewDevice(cfg Config) *Device {
	d := &Device{
		swipe: newSwipe(cfg.Name, cfg.Scheduler, cfg.Sink, cfg.Observer),
	}
	for slot := 0; slot < cfg.Slots; slot++ {
		d.edgeMotion = append(d.edgeMotion, newEdgeMotion(cfg.Name, slot,
			cfg.Geometry, cfg.Scheduler, cfg.Sink, cfg.Observer))
	}
	return d
}

// NotifyTouchFrame forwards the state of one touch after a frame. Unknown
// slots are ignored.
func (d *Device) NotifyTouchFrame(slot int, position Point, contact ContactState, dragActive bool, now time.Time) {
	if e := d.EdgeMotion(slot); e != nil {
		e.HandleFrame(position, contact, dragActive, now)
	}
}

// NotifyFourFingerFrame forwards the movement of a multi-finger frame, in
// normalized units.
func (d *Device) NotifyFourFingerFrame(fingers int, delta Vector, now time.Time) {
	d.swipe.HandleFrame(fingers, delta, now)
}

func (d *Device) EndFourFingerGesture(now time.Time) {
	d.swipe.End(now)
}

// StopEdgeMotion returns every touch to EdgeIdle.
func (d *Device) StopEdgeMotion(now time.Time) {
	for _, e := range d.edgeMotion {
		e.Stop(now)
	}
}

func (d *Device) EdgeMotion(slot int) *EdgeMotion {
	if slot < 0 || slot >= len(d.edgeMotion) {
		return nil
	}
	return d.edgeMotion[slot]
}

func (d *Device) Swipe() *Swipe {
	return d.swipe
}

func (d *Device) Slots() int {
	return len(d.edgeMotion)
}

// Close destroys the timers of all machines.
func (d *Device) Close() {
	for _, e := range d.edgeMotion {
		e.Close()
	}
	d.swipe.Close()
}
