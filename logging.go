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
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/unrud/touchpad-gestures/gesture"
)

func newLogger(debug, color bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	if color {
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	if !debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
		cfg.Development = false
	}
	return cfg.Build()
}

// logTransitions returns an observer that logs every state change at debug
// level.
func logTransitions(logger *zap.Logger) gesture.Observer {
	return func(t gesture.Transition) {
		if ce := logger.Check(zap.DebugLevel, "transition"); ce != nil {
			fields := []zap.Field{
				zap.String("machine", t.Machine),
				zap.String("from", t.From),
				zap.String("to", t.To),
				zap.String("event", t.Event),
			}
			if t.Slot >= 0 {
				fields = append(fields, zap.Int("slot", t.Slot))
			}
			ce.Write(fields...)
		}
	}
}

func observeAll(observers ...gesture.Observer) gesture.Observer {
	return func(t gesture.Transition) {
		for _, o := range observers {
			if o != nil {
				o(t)
			}
		}
	}
}
