// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Vaktlabs

// Package thyra1 implements the first-generation gauge PDU: a single
// ASCII verb byte followed by up to six bytes of ASCII data, carried in
// the shared envelope of package thyra.
package thyra1

import (
	"errors"
	"unicode/utf8"
)

// MaxDataSize caps the data field. Longer data is silently truncated on
// construction and decode; the instruments never emit more.
const MaxDataSize = 6

// ErrBadPayload reports a frame payload that does not parse as a PDU.
// Callers drop the frame; the error never propagates past the decode
// boundary as a fault.
var ErrBadPayload = errors.New("thyra1: malformed frame payload")

// Request is one command (or reply) of the first-generation protocol.
// The zero value is the empty pass-through command.
type Request struct {
	verb byte
	data string
}

// NewRequest builds a request from a verb byte and data. Data beyond
// MaxDataSize is dropped.
func NewRequest(verb byte, data string) Request {
	return Request{verb: verb, data: truncate(data)}
}

// DecodePayload parses a raw frame payload: byte 0 is the verb, the rest
// is data (capped to MaxDataSize). Payloads that are not valid text fail
// with ErrBadPayload.
func DecodePayload(raw []byte) (Request, error) {
	if len(raw) == 0 {
		return Request{}, ErrBadPayload
	}
	if !utf8.Valid(raw) {
		return Request{}, ErrBadPayload
	}
	return Request{verb: raw[0], data: truncate(string(raw[1:]))}, nil
}

// Verb returns the resolved verb variant.
func (r Request) Verb() Verb {
	return VerbOf(r.verb)
}

// VerbByte returns the raw verb byte (0 for the empty command).
func (r Request) VerbByte() byte {
	return r.verb
}

// FunctionCode returns the verb's ASCII code point, the slot this
// protocol uses where a register-oriented protocol would carry a function
// code.
func (r Request) FunctionCode() int {
	return int(r.verb)
}

// Data returns the ASCII data field.
func (r Request) Data() string {
	return r.data
}

// Encode returns the data bytes only. The verb travels at the head of the
// frame payload and is prepended by Payload; dispatch layers that already
// know the verb consume Encode output directly.
func (r Request) Encode() []byte {
	return []byte(r.data)
}

// Payload returns the full frame payload for the framer: the verb byte
// followed by the data bytes.
func (r Request) Payload() []byte {
	if r.verb == 0 {
		return []byte(r.data)
	}
	p := make([]byte, 0, 1+len(r.data))
	p = append(p, r.verb)
	return append(p, r.data...)
}

// Reply builds the response carrying data back under the same verb.
func (r Request) Reply(data string) Request {
	return Request{verb: r.verb, data: truncate(data)}
}

func truncate(data string) string {
	if len(data) > MaxDataSize {
		return data[:MaxDataSize]
	}
	return data
}
