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

// Package terminal holds helpers for the interactive console output of the
// daemon.
package terminal

import (
	"os"

	"golang.org/x/term"
)

const (
	ForegroundWhite = "\x1b[37m"
	ForegroundReset = "\x1b[39m"
	BackgroundBlack = "\x1b[40m"
	BackgroundReset = "\x1b[49m"
)

func SupportsColor(fd uintptr) bool {
	return term.IsTerminal(int(fd)) && os.Getenv("TERM") != "dumb"
}

func SetTitle(title string) bool {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return false
	}
	os.Stdout.Write([]byte("\x1b]2;" + title + "\x07"))
	os.Stdout.Sync()
	return true
}
