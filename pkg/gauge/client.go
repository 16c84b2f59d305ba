// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Vaktlabs

package gauge

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/vaktlabs/thyragauge/pkg/thyra"
	"github.com/vaktlabs/thyragauge/pkg/thyra1"
)

// ErrNoResponse reports that the gauge did not answer within the request
// timeout. Transport-level failures carry their own errors.
var ErrNoResponse = errors.New("gauge: no response")

// DefaultTimeout bounds one request/reply exchange unless overridden.
const DefaultTimeout = 2 * time.Second

// Client drives one gauge over an injected byte transport. Requests are
// serialized: one outstanding exchange at a time, no pipelining. The
// connection lifecycle (opening, pairing, closing) belongs to the caller.
type Client struct {
	conn     io.ReadWriter
	deviceID int
	timeout  time.Duration
	log      *zap.Logger

	mu      sync.Mutex
	framer  thyra.Framer
	replies chan thyra1.Request
}

// ClientOption configures a client.
type ClientOption func(*Client)

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.timeout = d }
}

// WithClientLogger attaches a logger; the default discards everything.
func WithClientLogger(log *zap.Logger) ClientOption {
	return func(c *Client) { c.log = log }
}

// NewClient builds a client for the gauge at deviceID and starts reading
// replies from conn. The reader goroutine exits when conn's Read fails, so
// closing the underlying connection tears the client down.
func NewClient(conn io.ReadWriter, deviceID int, opts ...ClientOption) *Client {
	c := &Client{
		conn:     conn,
		deviceID: deviceID,
		timeout:  DefaultTimeout,
		log:      zap.NewNop(),
		replies:  make(chan thyra1.Request, 8),
	}
	for _, opt := range opts {
		opt(c)
	}
	go c.readLoop()
	return c
}

// readLoop segments incoming bytes into frames and queues decoded replies
// addressed to this client's device. Replies nobody is waiting for are
// dropped once the queue fills.
func (c *Client) readLoop() {
	var (
		framer thyra.Framer
		pend   []byte
		buf    = make([]byte, 256)
	)
	for {
		n, err := c.conn.Read(buf)
		if n > 0 {
			pend = append(pend, buf[:n]...)
			for {
				consumed, deviceID, payload := framer.Decode(pend)
				if consumed == 0 {
					break
				}
				pend = pend[consumed:]
				if payload == nil || deviceID != c.deviceID {
					continue
				}
				req, derr := thyra1.DecodePayload(payload)
				if derr != nil {
					continue
				}
				select {
				case c.replies <- req:
				default:
					c.log.Debug("dropped unawaited reply",
						zap.Stringer("verb", req.Verb()))
				}
			}
		}
		if err != nil {
			if err != io.EOF {
				c.log.Debug("read loop stopped", zap.Error(err))
			}
			return
		}
	}
}

// roundTrip sends one request and waits for the matching reply. Stale
// replies queued before the send are discarded; a reply under a different
// verb is ignored and the wait continues.
func (c *Client) roundTrip(ctx context.Context, req thyra1.Request) (thyra1.Request, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for drained := false; !drained; {
		select {
		case <-c.replies:
		default:
			drained = true
		}
	}

	frame := c.framer.Encode(req.Payload(), c.deviceID, 0)
	if _, err := c.conn.Write(frame); err != nil {
		return thyra1.Request{}, fmt.Errorf("gauge: send: %w", err)
	}

	deadline := time.NewTimer(c.timeout)
	defer deadline.Stop()
	for {
		select {
		case reply := <-c.replies:
			if reply.VerbByte() != req.VerbByte() {
				c.log.Debug("mismatched reply verb",
					zap.Stringer("got", reply.Verb()),
					zap.Stringer("want", req.Verb()))
				continue
			}
			return reply, nil
		case <-ctx.Done():
			return thyra1.Request{}, ctx.Err()
		case <-deadline.C:
			return thyra1.Request{}, ErrNoResponse
		}
	}
}

// Model reads the instrument model identifier.
func (c *Client) Model(ctx context.Context) (string, error) {
	reply, err := c.roundTrip(ctx, thyra1.NewRequest('T', ""))
	if err != nil {
		return "", err
	}
	return reply.Data(), nil
}

// Measure reads the current pressure.
func (c *Client) Measure(ctx context.Context) (float64, error) {
	reply, err := c.roundTrip(ctx, thyra1.NewRequest('M', ""))
	if err != nil {
		return 0, err
	}
	value, ok := thyra.DecodePressure(reply.Data())
	if !ok {
		return 0, fmt.Errorf("gauge: bad pressure code %q", reply.Data())
	}
	return value, nil
}

// SetPressure writes the pressure register. Useful against the emulator;
// real instruments reject it.
func (c *Client) SetPressure(ctx context.Context, value float64) error {
	code, err := thyra.EncodePressure(value)
	if err != nil {
		return err
	}
	return c.writeEcho(ctx, 'm', code)
}

// Setpoint reads the addressed setpoint (1 or 2).
func (c *Client) Setpoint(ctx context.Context, index int) (float64, error) {
	reply, err := c.roundTrip(ctx, thyra1.NewRequest('S', strconv.Itoa(index)))
	if err != nil {
		return 0, err
	}
	value, ok := thyra.DecodePressure(reply.Data())
	if !ok {
		return 0, fmt.Errorf("gauge: bad pressure code %q", reply.Data())
	}
	return value, nil
}

// SetSetpoint selects the addressed setpoint, then writes it.
func (c *Client) SetSetpoint(ctx context.Context, index int, value float64) error {
	code, err := thyra.EncodePressure(value)
	if err != nil {
		return err
	}
	if err := c.writeEcho(ctx, 's', strconv.Itoa(index)); err != nil {
		return err
	}
	return c.writeEcho(ctx, 's', code)
}

// Calibration reads the addressed calibration factor (1 or 2).
func (c *Client) Calibration(ctx context.Context, index int) (float64, error) {
	reply, err := c.roundTrip(ctx, thyra1.NewRequest('C', strconv.Itoa(index)))
	if err != nil {
		return 0, err
	}
	value, ok := thyra.DecodeCalibration(reply.Data())
	if !ok {
		return 0, fmt.Errorf("gauge: bad calibration code %q", reply.Data())
	}
	return value, nil
}

// SetCalibration selects the addressed calibration factor, then writes it.
func (c *Client) SetCalibration(ctx context.Context, index int, value float64) error {
	if value < 0 {
		return fmt.Errorf("gauge: negative calibration %v", value)
	}
	if err := c.writeEcho(ctx, 'c', strconv.Itoa(index)); err != nil {
		return err
	}
	return c.writeEcho(ctx, 'c', thyra.EncodeCalibration(value))
}

// AdjustAtmosphere arms and applies the atmosphere adjustment.
func (c *Client) AdjustAtmosphere(ctx context.Context) error {
	if err := c.writeEcho(ctx, 'j', "1"); err != nil {
		return err
	}
	return c.writeEcho(ctx, 'j', AtmosphereCode)
}

// AdjustZero arms and applies the zero adjustment.
func (c *Client) AdjustZero(ctx context.Context) error {
	if err := c.writeEcho(ctx, 'j', "0"); err != nil {
		return err
	}
	return c.writeEcho(ctx, 'j', ZeroCode)
}

// PenningState reads the Penning stage on/off state.
func (c *Client) PenningState(ctx context.Context) (bool, error) {
	return c.readFlag(ctx, 'I')
}

// SetPenningState switches the Penning stage.
func (c *Client) SetPenningState(ctx context.Context, on bool) error {
	return c.writeEcho(ctx, 'i', flagData(on))
}

// PenningSync reads the Penning synchronization flag.
func (c *Client) PenningSync(ctx context.Context) (bool, error) {
	return c.readFlag(ctx, 'W')
}

// SetPenningSync switches the Penning synchronization flag.
func (c *Client) SetPenningSync(ctx context.Context, on bool) error {
	return c.writeEcho(ctx, 'w', flagData(on))
}

// ReadData sends a raw verb and returns the reply data verbatim. Escape
// hatch for commands the typed API does not cover.
func (c *Client) ReadData(ctx context.Context, verb byte, data string) (string, error) {
	reply, err := c.roundTrip(ctx, thyra1.NewRequest(verb, data))
	if err != nil {
		return "", err
	}
	return reply.Data(), nil
}

// writeEcho performs a write exchange and checks the instrument echoed the
// exact data back, which is how the protocol acknowledges applied writes.
func (c *Client) writeEcho(ctx context.Context, verb byte, data string) error {
	reply, err := c.roundTrip(ctx, thyra1.NewRequest(verb, data))
	if err != nil {
		return err
	}
	if reply.Data() != data {
		return fmt.Errorf("gauge: write rejected: sent %q, got %q", data, reply.Data())
	}
	return nil
}

func (c *Client) readFlag(ctx context.Context, verb byte) (bool, error) {
	reply, err := c.roundTrip(ctx, thyra1.NewRequest(verb, ""))
	if err != nil {
		return false, err
	}
	v, err := strconv.Atoi(reply.Data())
	if err != nil {
		return false, fmt.Errorf("gauge: bad flag reply %q", reply.Data())
	}
	return v != 0, nil
}

func flagData(on bool) string {
	if on {
		return "1"
	}
	return "0"
}
