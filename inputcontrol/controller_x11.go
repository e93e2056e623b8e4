//go:build x11

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

// #cgo LDFLAGS: -lX11 -lXrandr -lXtst
// #include <stdlib.h>
// #include <X11/Xlib.h>
// #include <X11/extensions/Xrandr.h>
// #include <X11/extensions/XTest.h>
// Window MacroDefaultRootWindow(Display *dpy) {
//     return DefaultRootWindow(dpy);
// }
import "C"
import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"unsafe"
)

var errDisplayClosed = errors.New("X server connection closed")

type x11Controller struct {
	display *C.Display
	lock    sync.Mutex
}

func init() {
	RegisterController("X11", InitX11Controller, 2)
}

func InitX11Controller() (Controller, error) {
	display := C.XOpenDisplay(nil)
	if display == nil {
		return nil, UnsupportedPlatformError{
			errors.New("failed to connect to X server")}
	}
	p := &x11Controller{display: display}
	if p.xIsXwayland() {
		p.Close()
		return nil, UnsupportedPlatformError{
			errors.New("X server is Xwayland")}
	}
	return p, nil
}

func (p *x11Controller) xIsXwayland() bool {
	// Detection method from https://gitlab.freedesktop.org/xorg/app/xisxwayland/-/blob/xisxwayland-2/xisxwayland.c
	var opcode, event, error, major, minor C.int
	xwaylandExtensionName := C.CString("XWAYLAND")
	defer C.free(unsafe.Pointer(xwaylandExtensionName))
	if C.XQueryExtension(p.display, xwaylandExtensionName, &opcode, &event, &error) != 0 {
		return true
	}
	if C.XRRQueryExtension(p.display, &event, &error) == 0 ||
		C.XRRQueryVersion(p.display, &major, &minor) == 0 {
		return false
	}
	resources := C.XRRGetScreenResourcesCurrent(p.display, C.MacroDefaultRootWindow(p.display))
	if resources == nil {
		return false
	}
	defer C.XRRFreeScreenResources(resources)
	if resources.noutput < 1 {
		return false
	}
	output := C.XRRGetOutputInfo(p.display, resources, *resources.outputs)
	if output == nil {
		return false
	}
	defer C.XRRFreeOutputInfo(output)
	return strings.HasPrefix(C.GoString(output.name), "XWAYLAND")
}

func (p *x11Controller) Close() error {
	p.lock.Lock()
	defer p.lock.Unlock()
	if p.display == nil {
		return errDisplayClosed
	}
	C.XCloseDisplay(p.display)
	p.display = nil
	return nil
}

// Media keys are expected to be mapped by the keyboard layout; unlike text
// input they are never remapped onto a spare keycode.
func (p *x11Controller) KeyboardKey(key Key, press bool) error {
	keysym, err := KeyToKeysym(key)
	if err != nil {
		return err
	}
	p.lock.Lock()
	defer p.lock.Unlock()
	if p.display == nil {
		return errDisplayClosed
	}
	keycode := C.XKeysymToKeycode(p.display, C.KeySym(keysym))
	if keycode == 0 {
		return fmt.Errorf("keysym %#x not mapped to any keycode", int32(keysym))
	}
	var pressC C.int = C.False
	if press {
		pressC = C.True
	}
	C.XTestFakeKeyEvent(p.display, C.uint(keycode), pressC, 0)
	C.XFlush(p.display)
	return nil
}

func (p *x11Controller) PointerMove(deltaX, deltaY int) error {
	p.lock.Lock()
	defer p.lock.Unlock()
	if p.display == nil {
		return errDisplayClosed
	}
	C.XTestFakeRelativeMotionEvent(p.display, C.int(deltaX), C.int(deltaY), 0)
	C.XFlush(p.display)
	return nil
}
