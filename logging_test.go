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
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/unrud/touchpad-gestures/gesture"
)

func TestLogTransitions(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	observe := logTransitions(zap.New(core))
	observe(gesture.Transition{Machine: "swipe", Slot: -1, From: "idle", To: "detecting", Event: "frame"})
	observe(gesture.Transition{Machine: "edge-motion", Slot: 2, From: "idle", To: "edge-entry", Event: "touch"})
	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("%d entries", len(entries))
	}
	if _, ok := entries[0].ContextMap()["slot"]; ok {
		t.Error("swipe transition logged with slot")
	}
	if slot := entries[1].ContextMap()["slot"]; slot != int64(2) {
		t.Errorf("slot %v", slot)
	}
}

func TestLogTransitionsAboveDebug(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logTransitions(zap.New(core))(gesture.Transition{Machine: "swipe", Slot: -1})
	if logs.Len() != 0 {
		t.Error("transition logged at info level")
	}
}

func TestObserveAll(t *testing.T) {
	var a, b int
	observe := observeAll(func(gesture.Transition) { a++ }, nil, func(gesture.Transition) { b++ })
	observe(gesture.Transition{})
	if a != 1 || b != 1 {
		t.Errorf("a=%d b=%d", a, b)
	}
}
