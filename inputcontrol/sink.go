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

package inputcontrol

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Sink feeds synthesized gesture output into a Controller. Motion arrives
// in fractional units and is carried over until it adds up to whole
// controller steps.
type Sink struct {
	lock           sync.Mutex
	controller     Controller
	logger         *zap.Logger
	scale          float64
	accumX, accumY float64
}

func NewSink(controller Controller, scale float64, logger *zap.Logger) *Sink {
	if logger == nil {
		logger = zap.L()
	}
	return &Sink{controller: controller, scale: scale, logger: logger}
}

func (s *Sink) PointerMotion(now time.Time, deltaX, deltaY float64) {
	s.lock.Lock()
	dx, dy := s.extractIntegerDelta(deltaX*s.scale, deltaY*s.scale)
	s.lock.Unlock()
	if dx == 0 && dy == 0 {
		return
	}
	if err := s.controller.PointerMove(dx, dy); err != nil {
		s.logger.Warn("pointer motion failed", zap.Error(err),
			zap.Int("deltaX", dx), zap.Int("deltaY", dy))
	}
}

func (s *Sink) KeyEvent(now time.Time, key Key, press bool) {
	if err := s.controller.KeyboardKey(key, press); err != nil {
		s.logger.Warn("key event failed", zap.Error(err),
			zap.Stringer("key", key), zap.Bool("press", press))
	}
}

// extractIntegerDelta must be called with lock held.
func (s *Sink) extractIntegerDelta(dx, dy float64) (int, int) {
	s.accumX += dx
	s.accumY += dy
	ix, iy := int(s.accumX), int(s.accumY)
	s.accumX -= float64(ix)
	s.accumY -= float64(iy)
	return ix, iy
}
