//go:build portal

/*
 *    Copyright (c) 2022-2024 Unrud <unrud@outlook.com>
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
	"path/filepath"

	"github.com/godbus/dbus/v5"
	"go.uber.org/zap"
)

const (
	deviceKeyboard uint32 = 1
	devicePointer  uint32 = 2

	keyReleased uint32 = 0
	keyPressed  uint32 = 1

	untilRevoked uint32 = 2

	restoreTokenFileName = "touchpad_gestures_portals_restore_token"
)

type portalController struct {
	bus           *dbus.Conn
	remoteDesktop dbus.BusObject
	sessionHandle dbus.ObjectPath
}

func init() {
	RegisterController("RemoteDesktop portal", InitPortalController, 1)
}

func InitPortalController() (Controller, error) {
	bus, err := dbus.SessionBusPrivate()
	if err != nil {
		return nil, UnsupportedPlatformError{err}
	}
	cleanupBus := true
	defer func() {
		if cleanupBus {
			bus.Close()
		}
	}()
	if err := bus.Auth(nil); err != nil {
		return nil, UnsupportedPlatformError{err}
	}
	if err := bus.Hello(); err != nil {
		return nil, UnsupportedPlatformError{err}
	}
	remoteDesktop := bus.Object("org.freedesktop.portal.Desktop",
		"/org/freedesktop/portal/desktop")
	version, err := remoteDesktop.GetProperty(
		"org.freedesktop.portal.RemoteDesktop.version")
	if err != nil {
		return nil, UnsupportedPlatformError{err}
	}
	supportsRestoreTokens := false
	if v, ok := version.Value().(uint32); ok && v >= 2 {
		supportsRestoreTokens = true
	}
	var restoreTokenFilePath, restoreToken string
	if supportsRestoreTokens {
		restoreTokenFilePath, restoreToken = loadRestoreToken()
	} else {
		zap.L().Info("portals implementation does not support restore tokens")
	}
	availableDeviceTypesV, err := remoteDesktop.GetProperty(
		"org.freedesktop.portal.RemoteDesktop.AvailableDeviceTypes")
	if err != nil {
		return nil, UnsupportedPlatformError{err}
	}
	availableDeviceTypes, ok := availableDeviceTypesV.Value().(uint32)
	if !ok {
		return nil, UnsupportedPlatformError{
			errors.New("unexpected 'AvailableDeviceTypes' return type")}
	}
	if availableDeviceTypes&deviceKeyboard == 0 {
		return nil, UnsupportedPlatformError{
			errors.New("keyboard source type not supported")}
	}
	if availableDeviceTypes&devicePointer == 0 {
		return nil, UnsupportedPlatformError{
			errors.New("pointer source type not supported")}
	}
	inVardict := map[string]dbus.Variant{
		"session_handle_token": dbus.MakeVariant("t"),
	}
	result, outVardict, err := getResponse(bus, remoteDesktop,
		"org.freedesktop.portal.RemoteDesktop.CreateSession", 0, inVardict)
	if err != nil {
		return nil, UnsupportedPlatformError{err}
	}
	if result != 0 {
		return nil, UnsupportedPlatformError{
			fmt.Errorf("calling 'CreateSession' failed (%v)", result)}
	}
	sessionHandleS, ok := outVardict["session_handle"].Value().(string)
	if !ok {
		return nil, UnsupportedPlatformError{
			errors.New("'session_handle' missing from 'CreateSession' return value")}
	}
	sessionHandle := dbus.ObjectPath(sessionHandleS)
	inVardict = map[string]dbus.Variant{
		"types": dbus.MakeVariant(deviceKeyboard | devicePointer),
	}
	if supportsRestoreTokens {
		if restoreToken != "" {
			inVardict["restore_token"] = dbus.MakeVariant(restoreToken)
		}
		inVardict["persist_mode"] = dbus.MakeVariant(untilRevoked)
	}
	result, _, err = getResponse(bus, remoteDesktop,
		"org.freedesktop.portal.RemoteDesktop.SelectDevices", 0, sessionHandle, inVardict)
	if err != nil {
		return nil, UnsupportedPlatformError{err}
	}
	if result != 0 {
		return nil, UnsupportedPlatformError{
			fmt.Errorf("calling 'SelectDevices' failed (%v)", result)}
	}
	result, outVardict, err = getResponse(bus, remoteDesktop,
		"org.freedesktop.portal.RemoteDesktop.Start", 0, sessionHandle, "",
		map[string]dbus.Variant{})
	if err != nil {
		return nil, UnsupportedPlatformError{err}
	}
	if result != 0 {
		return nil, errors.New("keyboard or pointer access denied")
	}
	if supportsRestoreTokens {
		saveRestoreToken(restoreTokenFilePath, outVardict)
	}
	devices, ok := outVardict["devices"].Value().(uint32)
	if !ok {
		return nil, UnsupportedPlatformError{
			errors.New("'devices' missing from 'Start' return value")}
	}
	if devices&deviceKeyboard == 0 || devices&devicePointer == 0 {
		return nil, errors.New("keyboard or pointer access denied")
	}
	cleanupBus = false
	return &portalController{bus: bus, remoteDesktop: remoteDesktop,
		sessionHandle: sessionHandle}, nil
}

func loadRestoreToken() (path, token string) {
	cacheDirectory, err := os.UserCacheDir()
	if err != nil {
		zap.L().Warn("cannot locate restore token file", zap.Error(err))
		return "", ""
	}
	path = filepath.Join(cacheDirectory, restoreTokenFileName)
	b, err := os.ReadFile(path)
	if err != nil {
		zap.L().Info("no restore token", zap.Error(err))
		return path, ""
	}
	return path, string(b)
}

func saveRestoreToken(path string, outVardict map[string]dbus.Variant) {
	restoreToken, ok := outVardict["restore_token"].Value().(string)
	if !ok {
		zap.L().Warn("failed to get new restore token")
		return
	}
	if path == "" {
		return
	}
	if err := os.WriteFile(path, []byte(restoreToken), 0600); err != nil {
		zap.L().Warn("failed to write restore token", zap.Error(err))
	}
}

func getResponse(bus *dbus.Conn, object dbus.BusObject, method string,
	flags dbus.Flags, args ...interface{}) (uint32, map[string]dbus.Variant, error) {
	ch := make(chan *dbus.Signal, 512)
	bus.Signal(ch)
	defer bus.RemoveSignal(ch)
	var requestPath dbus.ObjectPath
	if err := object.Call(method, flags, args...).Store(&requestPath); err != nil {
		return 0, nil, err
	}
	for s := range ch {
		if s.Path != requestPath || s.Name != "org.freedesktop.portal.Request.Response" {
			continue
		}
		if len(s.Body) != 2 {
			return 0, nil, errors.New("unexpected 'Response' return length")
		}
		result, ok := s.Body[0].(uint32)
		if !ok {
			return 0, nil, errors.New("unexpected 'Response' return type")
		}
		outVardict, ok := s.Body[1].(map[string]dbus.Variant)
		if !ok {
			return 0, nil, errors.New("unexpected 'Response' return type")
		}
		return result, outVardict, nil
	}
	return 0, nil, errors.New("session bus closed")
}

func (p *portalController) Close() error {
	return p.bus.Close()
}

func (p *portalController) KeyboardKey(key Key, press bool) error {
	keysym, err := KeyToKeysym(key)
	if err != nil {
		return err
	}
	state := keyReleased
	if press {
		state = keyPressed
	}
	return p.remoteDesktop.Call(
		"org.freedesktop.portal.RemoteDesktop.NotifyKeyboardKeysym",
		0, p.sessionHandle, map[string]dbus.Variant{}, int32(keysym), state).Store()
}

func (p *portalController) PointerMove(deltaX, deltaY int) error {
	return p.remoteDesktop.Call("org.freedesktop.portal.RemoteDesktop.NotifyPointerMotion",
		0, p.sessionHandle, map[string]dbus.Variant{}, float64(deltaX), float64(deltaY)).Store()
}
