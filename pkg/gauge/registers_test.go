// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Vaktlabs

package gauge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPair_WordOrder(t *testing.T) {
	var p Pair
	p.SetUint32(0x00012345)

	assert.Equal(t, uint16(0x0001), p[0], "high word first")
	assert.Equal(t, uint16(0x2345), p[1])
	assert.Equal(t, uint32(0x00012345), p.Uint32())
}

func TestPair_RoundTrip(t *testing.T) {
	for _, v := range []uint32{0, 1, 987620, 100023, 0xFFFFFFFF} {
		var p Pair
		p.SetUint32(v)
		assert.Equal(t, v, p.Uint32())
	}
}

func TestRegisters_Addressing(t *testing.T) {
	var r Registers

	assert.Same(t, &r.Setpoint1, r.setpoint(1))
	assert.Same(t, &r.Setpoint2, r.setpoint(2))
	assert.Nil(t, r.setpoint(0))
	assert.Nil(t, r.setpoint(3))

	assert.Same(t, &r.Cal1, r.calibration(1))
	assert.Same(t, &r.Cal2, r.calibration(2))
	assert.Nil(t, r.calibration(5))
}
