// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Vaktlabs

package cmd

import (
	"bufio"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"go.bug.st/serial"
	"golang.org/x/term"
)

// Connection is a byte channel to the gauge bus, serial or websocket.
type Connection interface {
	io.Reader
	io.Writer
	io.Closer
}

// ErrConnectionClosed is returned when reading from a websocket whose
// peer has gone away.
var ErrConnectionClosed = errors.New("websocket connection closed")

// serialConn is a Connection over a local serial port.
type serialConn struct {
	serial.Port
}

// OpenSerialConnection opens a serial port at 8N1, the gauges' fixed
// frame format; only the baud rate varies.
func OpenSerialConnection(portName string, baudRate int) (Connection, error) {
	port, err := serial.Open(portName, &serial.Mode{
		BaudRate: baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", portName, err)
	}
	return &serialConn{Port: port}, nil
}

// wsConn adapts a websocket bridge into a byte stream. The bridge relays
// bus bytes as binary messages; one message may carry several frames or a
// fraction of one, so leftovers are kept between Read calls.
type wsConn struct {
	conn    *websocket.Conn
	pending []byte
	failed  bool
}

func (w *wsConn) Read(p []byte) (int, error) {
	if len(w.pending) == 0 {
		if w.failed {
			return 0, ErrConnectionClosed
		}
		data, err := w.nextBinaryMessage()
		if err != nil {
			w.failed = true
			return 0, err
		}
		w.pending = data
	}
	n := copy(p, w.pending)
	w.pending = w.pending[n:]
	return n, nil
}

// nextBinaryMessage skips control and text traffic until a binary
// message arrives.
func (w *wsConn) nextBinaryMessage() ([]byte, error) {
	for {
		messageType, data, err := w.conn.ReadMessage()
		if err != nil {
			return nil, err
		}
		if messageType == websocket.BinaryMessage {
			return data, nil
		}
	}
}

func (w *wsConn) Write(p []byte) (int, error) {
	if err := w.conn.WriteMessage(websocket.BinaryMessage, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (w *wsConn) Close() error {
	return w.conn.Close()
}

// OpenWebSocketConnection dials a websocket bridge, optionally with HTTP
// Basic auth and (for wss://) relaxed certificate checking.
func OpenWebSocketConnection(wsURL, username, password string, skipSSLVerify bool) (Connection, error) {
	u, err := url.Parse(wsURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return nil, fmt.Errorf("unsupported URL scheme: %s (use ws:// or wss://)", u.Scheme)
	}

	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	if u.Scheme == "wss" {
		dialer.TLSClientConfig = &tls.Config{InsecureSkipVerify: skipSSLVerify}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	headers := http.Header{}
	if username != "" && password != "" {
		headers.Set("Authorization", "Basic "+
			basicAuth(username, password))
	}

	conn, resp, err := dialer.DialContext(ctx, wsURL, headers)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("websocket connect (HTTP %d): %w", resp.StatusCode, err)
		}
		return nil, fmt.Errorf("websocket connect: %w", err)
	}
	return &wsConn{conn: conn}, nil
}

func basicAuth(username, password string) string {
	r := http.Request{Header: http.Header{}}
	r.SetBasicAuth(username, password)
	return strings.TrimPrefix(r.Header.Get("Authorization"), "Basic ")
}

// GetPassword resolves the websocket password: environment first, then a
// no-echo terminal prompt, then plain stdin when no terminal is attached.
func GetPassword() (string, error) {
	if pw := os.Getenv("THYRAGAUGE_PASSWORD"); pw != "" {
		return pw, nil
	}

	fmt.Fprint(os.Stderr, "Password: ")
	defer fmt.Fprintln(os.Stderr)

	if raw, err := term.ReadPassword(int(syscall.Stdin)); err == nil {
		return string(raw), nil
	}

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// OpenConnection opens whichever transport the flags selected and
// returns it with a printable description. Websocket wins when both are
// given, matching the flag help.
func OpenConnection() (Connection, string, error) {
	switch {
	case wsURL != "":
		password := ""
		if wsUsername != "" {
			var err error
			if password, err = GetPassword(); err != nil {
				return nil, "", err
			}
		}
		conn, err := OpenWebSocketConnection(wsURL, wsUsername, password, wsNoSSLVerify)
		if err != nil {
			return nil, "", err
		}
		return conn, fmt.Sprintf("WebSocket: %s", wsURL), nil

	case portName != "":
		conn, err := OpenSerialConnection(portName, baudRate)
		if err != nil {
			return nil, "", err
		}
		return conn, fmt.Sprintf("Serial: %s @ %d baud", portName, baudRate), nil

	default:
		return nil, "", errors.New("either --port or --url must be specified")
	}
}
