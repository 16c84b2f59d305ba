// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Vaktlabs

package gauge

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/vaktlabs/thyragauge/pkg/thyra"
	"github.com/vaktlabs/thyragauge/pkg/thyra1"
	"github.com/vaktlabs/thyragauge/pkg/thyra2"
)

// Dialect selects which PDU generation an emulator answers.
type Dialect int

const (
	DialectV1 Dialect = iota + 1
	DialectV2
)

// Emulator is one virtual gauge: a device id, a register file and an
// interpreter behind a framer. Feed it raw wire bytes and it produces
// complete reply frames. Register state is mutex-guarded so a serving
// emulator can be inspected and poked concurrently.
type Emulator struct {
	deviceID int
	dialect  Dialect
	log      *zap.Logger

	mu     sync.Mutex
	regs   Registers
	interp *Interpreter
	framer thyra.Framer
	buf    []byte
}

// EmulatorOption configures an emulator.
type EmulatorOption func(*Emulator)

// WithDialect selects the PDU generation (DialectV1 by default).
func WithDialect(d Dialect) EmulatorOption {
	return func(e *Emulator) { e.dialect = d }
}

// WithLogger attaches a logger; the default discards everything.
func WithLogger(log *zap.Logger) EmulatorOption {
	return func(e *Emulator) { e.log = log }
}

// NewEmulator builds a virtual gauge answering on deviceID.
func NewEmulator(deviceID int, opts ...EmulatorOption) *Emulator {
	e := &Emulator{
		deviceID: deviceID,
		dialect:  DialectV1,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.interp = NewInterpreter(&e.regs)
	return e
}

// DeviceID returns the bus address the emulator answers on.
func (e *Emulator) DeviceID() int {
	return e.deviceID
}

// Feed appends raw bytes to the receive buffer, segments every complete
// frame out of it and returns the encoded reply frames. Frames addressed
// to other devices and malformed frames are consumed silently. Partial
// trailing input stays buffered for the next call.
func (e *Emulator) Feed(input []byte) [][]byte {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.buf = append(e.buf, input...)

	var replies [][]byte
	for {
		consumed, deviceID, payload := e.framer.Decode(e.buf)
		if consumed == 0 {
			break
		}
		e.buf = e.buf[consumed:]
		if payload == nil {
			e.log.Debug("dropped malformed frame", zap.Int("consumed", consumed))
			continue
		}
		if deviceID != e.deviceID {
			e.log.Debug("ignored frame for other device",
				zap.Int("device", deviceID))
			continue
		}
		if reply := e.dispatch(payload); reply != nil {
			replies = append(replies, e.framer.Encode(reply, e.deviceID, 0))
		}
	}
	if len(e.buf) == 0 {
		e.buf = nil
	}
	return replies
}

// dispatch decodes one frame payload per the configured dialect and runs
// it. A nil return means no reply is sent.
func (e *Emulator) dispatch(payload []byte) []byte {
	switch e.dialect {
	case DialectV2:
		return e.dispatchV2(payload)
	default:
		return e.dispatchV1(payload)
	}
}

func (e *Emulator) dispatchV1(payload []byte) []byte {
	req, err := thyra1.DecodePayload(payload)
	if err != nil {
		e.log.Debug("undecodable payload", zap.ByteString("payload", payload))
		return nil
	}
	reply := e.interp.Execute(req)
	e.log.Debug("executed command",
		zap.Stringer("verb", req.Verb()),
		zap.String("data", req.Data()),
		zap.String("reply", reply))
	return req.Reply(reply).Payload()
}

// dispatchV2 answers measurement and device-type reads; everything else is
// acknowledged by echoing the request data back under the reply code.
func (e *Emulator) dispatchV2(payload []byte) []byte {
	req, err := thyra2.DecodeRequestPayload(payload)
	if err != nil {
		e.log.Debug("undecodable payload", zap.ByteString("payload", payload))
		return nil
	}

	var data string
	switch {
	case req.Access() == thyra2.Read && req.Verb() == thyra2.CmdMeasure:
		data = fmt.Sprintf("%06d", e.regs.Pressure.Uint32())
	case req.Access() == thyra2.Read && req.Verb() == thyra2.CmdDeviceType:
		data = ModelName
	default:
		data = req.Data()
	}
	return req.Reply(data).Encode()
}

// Serve reads from rw until it fails or ctx is canceled, feeding bytes
// through the emulator and writing every reply frame back.
func (e *Emulator) Serve(ctx context.Context, rw io.ReadWriter) error {
	e.log.Info("emulator serving",
		zap.Int("device", e.deviceID),
		zap.Int("dialect", int(e.dialect)))

	buf := make([]byte, 256)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		n, err := rw.Read(buf)
		if n > 0 {
			for _, reply := range e.Feed(buf[:n]) {
				if _, werr := rw.Write(reply); werr != nil {
					return fmt.Errorf("gauge: write reply: %w", werr)
				}
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("gauge: read: %w", err)
		}
	}
}

// Pressure returns the current pressure register as a physical value.
func (e *Emulator) Pressure() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	v, _ := thyra.DecodePressure(fmt.Sprintf("%06d", e.regs.Pressure.Uint32()))
	return v
}

// SetPressure stores a physical pressure value into the register pair.
func (e *Emulator) SetPressure(value float64) error {
	code, err := thyra.EncodePressure(value)
	if err != nil {
		return err
	}
	n, _ := strconv.Atoi(code)
	e.mu.Lock()
	defer e.mu.Unlock()
	e.regs.Pressure.SetUint32(uint32(n))
	return nil
}

// Setpoint returns the addressed setpoint as a physical value.
func (e *Emulator) Setpoint(index int) (float64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	p := e.regs.setpoint(index)
	if p == nil {
		return 0, fmt.Errorf("gauge: no setpoint %d", index)
	}
	v, _ := thyra.DecodePressure(fmt.Sprintf("%06d", p.Uint32()))
	return v, nil
}

// SetSetpoint stores a physical value into the addressed setpoint.
func (e *Emulator) SetSetpoint(index int, value float64) error {
	code, err := thyra.EncodePressure(value)
	if err != nil {
		return err
	}
	n, _ := strconv.Atoi(code)
	e.mu.Lock()
	defer e.mu.Unlock()
	p := e.regs.setpoint(index)
	if p == nil {
		return fmt.Errorf("gauge: no setpoint %d", index)
	}
	p.SetUint32(uint32(n))
	return nil
}

// Calibration returns the addressed calibration factor.
func (e *Emulator) Calibration(index int) (float64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	p := e.regs.calibration(index)
	if p == nil {
		return 0, fmt.Errorf("gauge: no calibration %d", index)
	}
	return float64(p.Uint32()) / 100, nil
}

// SetCalibration stores a calibration factor into the addressed register.
func (e *Emulator) SetCalibration(index int, value float64) error {
	if value < 0 {
		return fmt.Errorf("gauge: negative calibration %v", value)
	}
	code := thyra.EncodeCalibration(value)
	n, _ := strconv.Atoi(code)
	e.mu.Lock()
	defer e.mu.Unlock()
	p := e.regs.calibration(index)
	if p == nil {
		return fmt.Errorf("gauge: no calibration %d", index)
	}
	p.SetUint32(uint32(n))
	return nil
}

// PenningState reports whether the Penning stage is on.
func (e *Emulator) PenningState() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.regs.PenningState != 0
}

// SetPenningState switches the Penning stage.
func (e *Emulator) SetPenningState(on bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.regs.PenningState = boolWord(on)
}

// PenningSync reports the Penning synchronization flag.
func (e *Emulator) PenningSync() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.regs.PenningSync != 0
}

// SetPenningSync switches the Penning synchronization flag.
func (e *Emulator) SetPenningSync(on bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.regs.PenningSync = boolWord(on)
}

func boolWord(on bool) uint16 {
	if on {
		return 1
	}
	return 0
}
