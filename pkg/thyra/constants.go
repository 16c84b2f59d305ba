// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Vaktlabs

// Package thyra implements the ASCII framing discipline shared by the
// Thyracont/Erstevak RS485 gauge protocols, together with the numeric
// codes the gauges use for pressure and calibration values.
//
// A frame carries a 3-digit decimal device id, a payload, a one-byte
// checksum and a carriage-return terminator. There is no start byte; the
// stream is segmented by scanning for the terminator. The payload layout
// inside the envelope is dialect-specific (see packages thyra1 and
// thyra2).
package thyra

// Frame delimiters and sizes.
const (
	// EndByte terminates every frame. There is no start delimiter.
	EndByte = '\r'

	// DeviceIDSize is the width of the ASCII decimal device id prefix.
	DeviceIDSize = 3

	// MinFrameSize is the smallest byte count worth scanning: device id,
	// a one-byte payload, the checksum and the terminator.
	MinFrameSize = 6

	// MaxDeviceID is the largest address expressible in three digits.
	MaxDeviceID = 999
)

// Pressure code layout: 4 mantissa digits followed by 2 biased exponent
// digits. The exponent bias keeps vacuum-range exponents non-negative.
const (
	PressureCodeSize = 6
	mantissaDigits   = 4
	exponentBias     = 20
)
