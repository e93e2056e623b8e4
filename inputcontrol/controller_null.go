//go:build null

/*
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

import "go.uber.org/zap"

type nullController struct{}

func init() {
	RegisterController("null", InitNullController, 1000)
}

func InitNullController() (Controller, error) {
	return &nullController{}, nil
}

func (p *nullController) Close() error {
	return nil
}

func (p *nullController) KeyboardKey(key Key, press bool) error {
	zap.L().Info("KeyboardKey", zap.Stringer("key", key), zap.Bool("press", press))
	return nil
}

func (p *nullController) PointerMove(deltaX, deltaY int) error {
	zap.L().Info("PointerMove", zap.Int("deltaX", deltaX), zap.Int("deltaY", deltaY))
	return nil
}
