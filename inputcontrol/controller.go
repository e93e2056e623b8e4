/*
 *    Copyright (c) 2018 Unrud <unrud@outlook.com>
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

package inputcontrol

import (
	"fmt"
	"sort"
)

type Key int

const (
	KeyVolumeDown Key = iota
	KeyVolumeUp
	KeyBrightnessDown
	KeyBrightnessUp
	KeyLimit
)

func (k Key) String() string {
	switch k {
	case KeyVolumeDown:
		return "KEY_VOLUMEDOWN"
	case KeyVolumeUp:
		return "KEY_VOLUMEUP"
	case KeyBrightnessDown:
		return "KEY_BRIGHTNESSDOWN"
	case KeyBrightnessUp:
		return "KEY_BRIGHTNESSUP"
	}
	return fmt.Sprintf("Key(%d)", int(k))
}

type ControllerInfo struct {
	Name string
	Init func() (Controller, error)

	priority int
}

var Controllers []ControllerInfo

func RegisterController(name string, init func() (Controller, error), priority int) {
	Controllers = append(Controllers, ControllerInfo{name, init, priority})
	sort.SliceStable(Controllers, func(i, j int) bool {
		return Controllers[i].priority < Controllers[j].priority
	})
}

type UnsupportedPlatformError struct {
	err error
}

func NewUnsupportedPlatformError(err error) UnsupportedPlatformError {
	return UnsupportedPlatformError{err}
}

func (e UnsupportedPlatformError) Error() string {
	return e.err.Error()
}

func (e UnsupportedPlatformError) Unwrap() error {
	return e.err
}

type Controller interface {
	Close() error
	KeyboardKey(key Key, press bool) error
	PointerMove(deltaX, deltaY int) error
}
