// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Vaktlabs

package gauge

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// loopConn is an in-memory bus: everything written is fed straight to the
// emulator and its reply frames come back out of Read.
type loopConn struct {
	emu  *Emulator
	ch   chan []byte
	rest []byte
}

func newLoopConn(emu *Emulator) *loopConn {
	return &loopConn{emu: emu, ch: make(chan []byte, 16)}
}

func (l *loopConn) Write(p []byte) (int, error) {
	for _, reply := range l.emu.Feed(p) {
		l.ch <- reply
	}
	return len(p), nil
}

func (l *loopConn) Read(p []byte) (int, error) {
	if len(l.rest) == 0 {
		l.rest = <-l.ch
	}
	n := copy(p, l.rest)
	l.rest = l.rest[n:]
	return n, nil
}

func newTestPair(t *testing.T) (*Client, *Emulator) {
	t.Helper()
	emu := NewEmulator(1)
	client := NewClient(newLoopConn(emu), 1, WithTimeout(time.Second))
	return client, emu
}

func TestClient_Model(t *testing.T) {
	client, _ := newTestPair(t)

	model, err := client.Model(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "MTM09D", model)
}

func TestClient_MeasureAndSetPressure(t *testing.T) {
	client, emu := newTestPair(t)
	ctx := context.Background()

	require.NoError(t, emu.SetPressure(1.23e-3))
	value, err := client.Measure(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 1.23e-3, value, 1e-6)

	require.NoError(t, client.SetPressure(ctx, 12.34))
	assert.InDelta(t, 12.34, emu.Pressure(), 1e-2)
}

func TestClient_Setpoints(t *testing.T) {
	client, emu := newTestPair(t)
	ctx := context.Background()

	require.NoError(t, client.SetSetpoint(ctx, 1, 0.0123))
	value, err := client.Setpoint(ctx, 1)
	require.NoError(t, err)
	assert.InDelta(t, 0.0123, value, 1e-5)

	// The other slot must stay untouched.
	sp2, err := emu.Setpoint(2)
	require.NoError(t, err)
	assert.Zero(t, sp2)
}

func TestClient_Calibration(t *testing.T) {
	client, _ := newTestPair(t)
	ctx := context.Background()

	require.NoError(t, client.SetCalibration(ctx, 2, 0.987))
	value, err := client.Calibration(ctx, 2)
	require.NoError(t, err)
	assert.InDelta(t, 0.99, value, 1e-9)

	assert.Error(t, client.SetCalibration(ctx, 2, -1))
}

func TestClient_Adjustments(t *testing.T) {
	client, emu := newTestPair(t)
	ctx := context.Background()

	require.NoError(t, client.AdjustAtmosphere(ctx))
	assert.InDelta(t, 1000.0, emu.Pressure(), 1e-6)

	require.NoError(t, client.AdjustZero(ctx))
	assert.Zero(t, emu.Pressure())
}

func TestClient_Penning(t *testing.T) {
	client, emu := newTestPair(t)
	ctx := context.Background()

	on, err := client.PenningState(ctx)
	require.NoError(t, err)
	assert.False(t, on)

	require.NoError(t, client.SetPenningState(ctx, true))
	assert.True(t, emu.PenningState())

	require.NoError(t, client.SetPenningSync(ctx, true))
	sync, err := client.PenningSync(ctx)
	require.NoError(t, err)
	assert.True(t, sync)
}

func TestClient_ReadData(t *testing.T) {
	client, _ := newTestPair(t)

	data, err := client.ReadData(context.Background(), 'T', "")
	require.NoError(t, err)
	assert.Equal(t, "MTM09D", data)
}

func TestClient_NoResponse(t *testing.T) {
	emu := NewEmulator(1)
	// Client addresses a device that is not on the bus.
	client := NewClient(newLoopConn(emu), 9, WithTimeout(50*time.Millisecond))

	_, err := client.Model(context.Background())
	assert.ErrorIs(t, err, ErrNoResponse)
}

func TestClient_ContextCanceled(t *testing.T) {
	emu := NewEmulator(1)
	client := NewClient(newLoopConn(emu), 9, WithTimeout(time.Minute))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := client.Model(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
