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
	"fmt"
	"io/fs"

	"gopkg.in/gcfg.v1"
)

const defaultMonitorBind = "127.0.0.1:0"

type config struct {
	Device struct {
		Path string
	}
	Output struct {
		Controller string
		MoveSpeed  float64 `gcfg:"move-speed"`
	}
	Monitor struct {
		Enabled bool
		Bind    string
	}
}

func defaultConfig() config {
	var cfg config
	cfg.Output.MoveSpeed = 1
	cfg.Monitor.Bind = defaultMonitorBind
	return cfg
}

// loadConfig reads path on top of the defaults. A missing file is only an
// error if it was asked for explicitly.
func loadConfig(path string, required bool) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	if err := gcfg.ReadFileInto(&cfg, path); err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return defaultConfig(), nil
		}
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, validateConfig(cfg)
}

func parseConfig(text string) (config, error) {
	cfg := defaultConfig()
	if err := gcfg.ReadStringInto(&cfg, text); err != nil {
		return cfg, err
	}
	return cfg, validateConfig(cfg)
}

func validateConfig(cfg config) error {
	if cfg.Output.MoveSpeed <= 0 {
		return fmt.Errorf("invalid move speed %v", cfg.Output.MoveSpeed)
	}
	return nil
}

// overrides holds the command line flags that were set explicitly.
type overrides struct {
	device, controller, monitor *string
}

func (o overrides) apply(cfg *config) {
	if o.device != nil {
		cfg.Device.Path = *o.device
	}
	if o.controller != nil {
		cfg.Output.Controller = *o.controller
	}
	if o.monitor != nil {
		cfg.Monitor.Enabled = *o.monitor != ""
		if *o.monitor != "" {
			cfg.Monitor.Bind = *o.monitor
		}
	}
}
