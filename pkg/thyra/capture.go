// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Vaktlabs

package thyra

import (
	"errors"
	"io"
	"time"

	"github.com/fxamacker/cbor/v2"
)

// Record is one captured frame event: the raw wire bytes of a delimited
// frame together with the decode outcome. Records are written as a CBOR
// stream so captures can be replayed against an emulator or inspected
// offline.
type Record struct {
	Time     time.Time `cbor:"1,keyasint"`
	DeviceID int       `cbor:"2,keyasint"`
	Raw      []byte    `cbor:"3,keyasint"`
	Valid    bool      `cbor:"4,keyasint"`
}

// CaptureWriter appends frame records to a CBOR stream.
type CaptureWriter struct {
	enc *cbor.Encoder
}

// NewCaptureWriter creates a capture writer on w.
func NewCaptureWriter(w io.Writer) *CaptureWriter {
	return &CaptureWriter{enc: cbor.NewEncoder(w)}
}

// Write appends one record.
func (c *CaptureWriter) Write(rec Record) error {
	return c.enc.Encode(rec)
}

// CaptureReader reads frame records back from a CBOR stream.
type CaptureReader struct {
	dec *cbor.Decoder
}

// NewCaptureReader creates a capture reader on r.
func NewCaptureReader(r io.Reader) *CaptureReader {
	return &CaptureReader{dec: cbor.NewDecoder(r)}
}

// Read returns the next record, or io.EOF at end of stream.
func (c *CaptureReader) Read() (Record, error) {
	var rec Record
	err := c.dec.Decode(&rec)
	if errors.Is(err, io.ErrUnexpectedEOF) {
		err = io.EOF
	}
	return rec, err
}
