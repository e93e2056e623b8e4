//go:build uinput

/*
 *    Copyright (c) 2023 De_Coder github.com/ps100000
 *    Copyright (c) 2023 Unrud <unrud@outlook.com>
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
	"errors"
	"fmt"
	"os"

	"github.com/bendahl/uinput"
)

const uinputPath = "/dev/uinput"

var uinputKeys = [KeyLimit]int{
	KeyVolumeDown:     uinput.KeyVolumedown,
	KeyVolumeUp:       uinput.KeyVolumeup,
	KeyBrightnessDown: uinput.KeyBrightnessdown,
	KeyBrightnessUp:   uinput.KeyBrightnessup,
}

type uinputController struct {
	keyboard uinput.Keyboard
	mouse    uinput.Mouse
}

func init() {
	RegisterController("uinput", InitUinputController, 0)
}

func InitUinputController() (Controller, error) {
	if _, err := os.Stat(uinputPath); err != nil {
		return nil, UnsupportedPlatformError{err}
	}
	keyboard, err := uinput.CreateKeyboard(uinputPath, []byte("touchpad-gestures-keyboard"))
	if err != nil {
		if errors.Is(err, os.ErrPermission) {
			return nil, UnsupportedPlatformError{err}
		}
		return nil, err
	}
	mouse, err := uinput.CreateMouse(uinputPath, []byte("touchpad-gestures-mouse"))
	if err != nil {
		keyboard.Close()
		return nil, err
	}
	return &uinputController{keyboard, mouse}, nil
}

func (p *uinputController) Close() error {
	if err := p.keyboard.Close(); err != nil {
		p.mouse.Close()
		return err
	}
	return p.mouse.Close()
}

func (p *uinputController) KeyboardKey(key Key, press bool) error {
	if key < 0 || key >= KeyLimit {
		return fmt.Errorf("unsupported key: %#v", key)
	}
	if press {
		return p.keyboard.KeyDown(uinputKeys[key])
	}
	return p.keyboard.KeyUp(uinputKeys[key])
}

func (p *uinputController) PointerMove(deltaX, deltaY int) error {
	return p.mouse.Move(int32(deltaX), int32(deltaY))
}
