//go:build portal || x11

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

import "fmt"

type Keysym int32

// X11/XF86keysym.h
const (
	xf86xkMonBrightnessUp   Keysym = 0x1008ff02
	xf86xkMonBrightnessDown Keysym = 0x1008ff03
	xf86xkAudioLowerVolume  Keysym = 0x1008ff11
	xf86xkAudioRaiseVolume  Keysym = 0x1008ff13
)

func KeyToKeysym(key Key) (Keysym, error) {
	switch key {
	case KeyVolumeDown:
		return xf86xkAudioLowerVolume, nil
	case KeyVolumeUp:
		return xf86xkAudioRaiseVolume, nil
	case KeyBrightnessDown:
		return xf86xkMonBrightnessDown, nil
	case KeyBrightnessUp:
		return xf86xkMonBrightnessUp, nil
	}
	return 0, fmt.Errorf("key not mapped to keysym: %#v", key)
}
