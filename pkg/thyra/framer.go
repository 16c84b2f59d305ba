// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Vaktlabs

package thyra

import (
	"bytes"
	"fmt"
)

// Framer segments a raw byte stream into device-addressed, checksummed
// frames and encodes outgoing frames. It keeps no state of its own: Decode
// re-scans whatever buffer the caller passes, so the caller owns
// accumulation and may retry with a grown buffer after a short read.
type Framer struct{}

// NewFramer creates a framer for the gauge ASCII envelope.
func NewFramer() *Framer {
	return &Framer{}
}

// Decode extracts the first complete frame from buf.
//
// It returns the number of bytes consumed, the frame's device id and its
// payload. Three outcomes are possible:
//
//   - (0, 0, nil): not enough bytes yet. Nothing was consumed; the caller
//     must accumulate more input and call again with the same bytes.
//   - (n>0, 0, nil): a complete but malformed frame (bad checksum, bad
//     device id, too short). The n bytes up to and including the
//     terminator are consumed so the garbage is never re-parsed.
//   - (n>0, id, payload): a valid frame.
//
// Consecutive frames in one buffer are decoded by repeated calls, each
// consuming exactly one frame.
func (f *Framer) Decode(buf []byte) (int, int, []byte) {
	if len(buf) < MinFrameSize {
		return 0, 0, nil
	}

	end := bytes.IndexByte(buf, EndByte)
	if end < 0 {
		// Incomplete frame: leave the bytes for the next call.
		return 0, 0, nil
	}
	consumed := end + 1

	// A delimited frame needs at least the id digits and a checksum byte.
	if end < DeviceIDSize+1 {
		return consumed, 0, nil
	}

	deviceID, ok := parseDeviceID(buf[:DeviceIDSize])
	if !ok {
		return consumed, 0, nil
	}

	// The checksum covers the raw device id digits and the payload.
	if !VerifyChecksum(buf[:end-1], buf[end-1]) {
		return consumed, 0, nil
	}

	return consumed, deviceID, buf[DeviceIDSize : end-1]
}

// Encode builds a complete frame: zero-padded device id, payload, checksum
// over both, and the terminator. The transaction id is part of the host
// framework's hook signature and is not carried on the wire.
func (f *Framer) Encode(payload []byte, deviceID int, _ int) []byte {
	frame := make([]byte, 0, DeviceIDSize+len(payload)+2)
	frame = append(frame, fmt.Sprintf("%03d", deviceID)...)
	frame = append(frame, payload...)
	frame = append(frame, Checksum(frame), EndByte)
	return frame
}

func parseDeviceID(digits []byte) (int, bool) {
	id := 0
	for _, d := range digits {
		if d < '0' || d > '9' {
			return 0, false
		}
		id = id*10 + int(d-'0')
	}
	return id, true
}
