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
	"fmt"
	"net"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/websocket"

	"github.com/unrud/touchpad-gestures/gesture"
)

func (m *monitor) clientCount() int {
	m.lock.Lock()
	defer m.lock.Unlock()
	return len(m.clients)
}

func TestMonitorStreamsTransitions(t *testing.T) {
	m := newMonitor(zap.NewNop())
	server := httptest.NewServer(m.handler())
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	ws, err := websocket.Dial(url, "", server.URL)
	if err != nil {
		t.Fatal(err)
	}
	defer ws.Close()
	deadline := time.Now().Add(5 * time.Second)
	for m.clientCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client not subscribed")
		}
		time.Sleep(time.Millisecond)
	}

	m.observe(gesture.Transition{
		Machine: "edge-motion",
		Slot:    1,
		From:    "edge-entry",
		To:      "edge-active",
		Event:   "timeout",
		Time:    time.Unix(1, 500*int64(time.Millisecond)),
	})
	var message transitionMessage
	if err := websocket.JSON.Receive(ws, &message); err != nil {
		t.Fatal(err)
	}
	want := transitionMessage{"edge-motion", 1, "edge-entry", "edge-active", "timeout", 1500}
	if message != want {
		t.Errorf("got %+v, want %+v", message, want)
	}

	ws.Close()
	for m.clientCount() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("client not unsubscribed")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestMonitorDropsForSlowClients(t *testing.T) {
	m := newMonitor(zap.NewNop())
	c := m.subscribe()
	defer m.unsubscribe(c)
	for i := 0; i < 2*monitorBacklog; i++ {
		m.observe(gesture.Transition{Machine: "swipe", Slot: -1})
	}
	if len(c) != monitorBacklog {
		t.Errorf("%d queued, want %d", len(c), monitorBacklog)
	}
}

func TestMonitorURL(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer listener.Close()
	url, err := monitorURL(listener, "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	port := listener.Addr().(*net.TCPAddr).Port
	if want := fmt.Sprintf("http://127.0.0.1:%d/", port); url != want {
		t.Errorf("got %q, want %q", url, want)
	}
}
