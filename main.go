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
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/holoplot/go-evdev"
	"go.uber.org/zap"

	"github.com/unrud/touchpad-gestures/gesture"
	"github.com/unrud/touchpad-gestures/inputcontrol"
	"github.com/unrud/touchpad-gestures/terminal"
	"github.com/unrud/touchpad-gestures/timer"
)

const (
	version       string = "0.1.0"
	prettyAppName string = "Touchpad Gestures"
	configName    string = "touchpad-gestures.conf"
)

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, configName)
}

// selectController initializes the first controller that works on this
// platform, or the one named.
func selectController(name string) (inputcontrol.Controller, string, error) {
	if len(inputcontrol.Controllers) == 0 {
		return nil, "", errors.New("compiled without controller")
	}
	var platformErrors []string
	for _, controllerInfo := range inputcontrol.Controllers {
		if name != "" && controllerInfo.Name != name {
			continue
		}
		controller, err := controllerInfo.Init()
		if err == nil {
			return controller, controllerInfo.Name, nil
		}
		var platformErr inputcontrol.UnsupportedPlatformError
		if !errors.As(err, &platformErr) {
			return nil, "", fmt.Errorf("%s controller: %w", controllerInfo.Name, err)
		}
		platformErrors = append(platformErrors,
			fmt.Sprintf("%s controller: %v", controllerInfo.Name, err))
	}
	if len(platformErrors) == 0 {
		return nil, "", fmt.Errorf("unknown controller %q", name)
	}
	return nil, "", fmt.Errorf("unsupported platform:\n%s", strings.Join(platformErrors, "\n"))
}

func startMonitor(bind string, m *monitor, logger *zap.Logger) error {
	listener, err := net.Listen("tcp", bind)
	if err != nil {
		return fmt.Errorf("monitor: %w", err)
	}
	url, err := monitorURL(listener, bind)
	if err != nil {
		listener.Close()
		return fmt.Errorf("monitor: %w", err)
	}
	fmt.Println(url)
	if qrCode, err := terminal.GenerateQRCode(url, terminal.SupportsColor(os.Stdout.Fd())); err == nil {
		fmt.Print(qrCode)
	} else {
		logger.Warn("QR code error", zap.Error(err))
	}
	go func() {
		if err := m.serve(listener); err != nil {
			logger.Error("monitor stopped", zap.Error(err))
		}
	}()
	return nil
}

// run is the event loop. Touchpad events and timer expirations are handled
// on this goroutine only.
func run(tp *touchpad, device *gesture.Device, wheel *timer.Wheel, logger *zap.Logger) error {
	events := make(chan *evdev.InputEvent, 64)
	errs := make(chan error, 1)
	go tp.readEvents(events, errs)
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(signals)
	assembler := newFrameAssembler(tp.geometry, tp.slots)
	for {
		select {
		case event := <-events:
			assembler.handle(event, wheel.Now(), device)
		case expiry := <-wheel.Expired():
			wheel.Dispatch(expiry)
		case err := <-errs:
			device.StopEdgeMotion(wheel.Now())
			return err
		case sig := <-signals:
			logger.Info("exiting", zap.Stringer("signal", sig))
			device.StopEdgeMotion(wheel.Now())
			return nil
		}
	}
}

func main() {
	terminal.SetTitle(prettyAppName)
	var configPath, devicePath, controllerName, monitorBind string
	var showVersion, debug bool
	flag.BoolVar(&showVersion, "version", false, "show program's version number and exit")
	flag.StringVar(&configPath, "config", defaultConfigPath(), "configuration file")
	flag.StringVar(&devicePath, "device", "", "touchpad event device (default: first multi-touch device)")
	flag.StringVar(&controllerName, "controller", "", "output controller (default: first supported)")
	flag.StringVar(&monitorBind, "monitor", "", "serve the transition monitor on [HOSTNAME]:PORT")
	flag.BoolVar(&debug, "debug", false, "log state transitions")
	flag.Parse()
	if showVersion {
		fmt.Println(version)
		return
	}
	var o overrides
	configRequired := false
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "config":
			configRequired = true
		case "device":
			o.device = &devicePath
		case "controller":
			o.controller = &controllerName
		case "monitor":
			o.monitor = &monitorBind
		}
	})

	logger, err := newLogger(debug, terminal.SupportsColor(os.Stderr.Fd()))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	cfg, err := loadConfig(configPath, configRequired)
	if err != nil {
		logger.Fatal("loading configuration failed", zap.Error(err))
	}
	o.apply(&cfg)

	controller, name, err := selectController(cfg.Output.Controller)
	if err != nil {
		logger.Fatal("no output controller", zap.Error(err))
	}
	defer controller.Close()
	logger.Info("using controller", zap.String("controller", name))

	var tp *touchpad
	if cfg.Device.Path != "" {
		tp, err = openTouchpad(cfg.Device.Path)
	} else {
		tp, err = findTouchpad()
	}
	if err != nil {
		logger.Fatal("opening touchpad failed", zap.Error(err))
	}
	defer tp.Close()
	logger.Info("using touchpad", zap.String("device", tp.name), zap.Int("slots", tp.slots),
		zap.Float64("widthMM", tp.geometry.UnitsToMMX(tp.geometry.MaxX-tp.geometry.MinX)),
		zap.Float64("heightMM", tp.geometry.UnitsToMMY(tp.geometry.MaxY-tp.geometry.MinY)))

	observers := []gesture.Observer{logTransitions(logger)}
	if cfg.Monitor.Enabled {
		m := newMonitor(logger)
		if err := startMonitor(cfg.Monitor.Bind, m, logger); err != nil {
			logger.Fatal("starting monitor failed", zap.Error(err))
		}
		observers = append(observers, m.observe)
	}

	wheel := timer.NewWheel()
	defer wheel.Close()
	device := gesture.NewDevice(gesture.Config{
		Name:      tp.name,
		Slots:     tp.slots,
		Geometry:  tp.geometry,
		Scheduler: wheel,
		Sink:      inputcontrol.NewSink(controller, cfg.Output.MoveSpeed, logger),
		Observer:  observeAll(observers...),
	})
	defer device.Close()

	if err := run(tp, device, wheel, logger); err != nil {
		logger.Error("reading touchpad failed", zap.Error(err))
	}
}
