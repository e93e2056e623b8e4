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
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/websocket"

	"github.com/unrud/touchpad-gestures/gesture"
)

// monitorBacklog is the number of transitions buffered per client before
// further transitions are dropped for it.
const monitorBacklog = 64

type transitionMessage struct {
	Machine string `json:"machine"`
	Slot    int    `json:"slot"`
	From    string `json:"from"`
	To      string `json:"to"`
	Event   string `json:"event"`
	Time    int64  `json:"time"`
}

func newTransitionMessage(t gesture.Transition) transitionMessage {
	return transitionMessage{
		Machine: t.Machine,
		Slot:    t.Slot,
		From:    t.From,
		To:      t.To,
		Event:   t.Event,
		Time:    t.Time.UnixNano() / int64(time.Millisecond),
	}
}

// monitor streams state transitions to websocket clients.
type monitor struct {
	lock    sync.Mutex
	clients map[chan transitionMessage]struct{}
	logger  *zap.Logger
}

func newMonitor(logger *zap.Logger) *monitor {
	return &monitor{
		clients: make(map[chan transitionMessage]struct{}),
		logger:  logger,
	}
}

// observe never blocks; slow clients miss transitions.
func (m *monitor) observe(t gesture.Transition) {
	message := newTransitionMessage(t)
	m.lock.Lock()
	defer m.lock.Unlock()
	for c := range m.clients {
		select {
		case c <- message:
		default:
		}
	}
}

func (m *monitor) subscribe() chan transitionMessage {
	c := make(chan transitionMessage, monitorBacklog)
	m.lock.Lock()
	m.clients[c] = struct{}{}
	m.lock.Unlock()
	return c
}

func (m *monitor) unsubscribe(c chan transitionMessage) {
	m.lock.Lock()
	delete(m.clients, c)
	m.lock.Unlock()
}

func (m *monitor) handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/", webdataHandler())
	mux.Handle("/ws", websocket.Handler(m.serveClient))
	return mux
}

func (m *monitor) serveClient(ws *websocket.Conn) {
	c := m.subscribe()
	defer m.unsubscribe(c)
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		var message string
		for {
			if err := websocket.Message.Receive(ws, &message); err != nil {
				return
			}
		}
	}()
	m.logger.Debug("monitor client connected", zap.String("remote", ws.Request().RemoteAddr))
	for {
		select {
		case message := <-c:
			if err := websocket.JSON.Send(ws, message); err != nil {
				return
			}
		case <-closed:
			m.logger.Debug("monitor client disconnected")
			return
		}
	}
}

func (m *monitor) serve(listener net.Listener) error {
	return http.Serve(listener, m.handler())
}

// monitorURL is the address clients on the local network can reach the
// monitor at.
func monitorURL(listener net.Listener, bind string) (string, error) {
	addr := listener.Addr().(*net.TCPAddr)
	bindHost, _, err := net.SplitHostPort(bind)
	if err != nil {
		return "", err
	}
	host := ""
	for _, b := range addr.IP {
		if b != 0 {
			host = bindHost
			break
		}
	}
	if host == "" {
		host = findDefaultHost()
	}
	domain := host
	if addr.Port != 80 {
		domain = net.JoinHostPort(host, strconv.Itoa(addr.Port))
	}
	return "http://" + domain + "/", nil
}
