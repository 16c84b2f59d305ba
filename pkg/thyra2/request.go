// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Vaktlabs

package thyra2

import (
	"errors"
	"fmt"
	"strconv"
	"unicode/utf8"
)

// Well-known command mnemonics. The instrument command set is much
// larger; these are the ones the toolkit drives directly.
const (
	CmdMeasure       = "MV" // measurement value
	CmdDeviceType    = "TD" // device type / model
	CmdProductName   = "PN"
	CmdDeviceSerial  = "SD"
	CmdHeadSerial    = "SH"
	CmdDisplayUnits  = "DU"
	CmdHours         = "OH" // operating hours
	CmdResponseDelay = "RD"
)

// ErrBadPayload reports a frame payload that does not parse as a PDU.
var ErrBadPayload = errors.New("thyra2: malformed frame payload")

// Request is one command (or reply) of the second-generation protocol.
type Request struct {
	access AccessCode
	verb   string
	data   string
}

// MaxDataSize is the largest data field the two-digit length can declare.
const MaxDataSize = 99

// NewRequest builds a request. The verb is clipped to its two-character
// mnemonic and the data to MaxDataSize.
func NewRequest(access AccessCode, verb string, data string) Request {
	if len(verb) > 2 {
		verb = verb[:2]
	}
	if len(data) > MaxDataSize {
		data = data[:MaxDataSize]
	}
	return Request{access: access, verb: verb, data: data}
}

// DecodePayload parses a raw frame payload:
//
//	<access digit><verb 2 bytes><length 2 digits><data "length" bytes>
//
// The access digit is decremented to recover the request code, except for
// the reply-only Streaming and Error codes. Any structural problem (bad
// access code, short payload, bad length digits, truncated or non-text
// data) fails with ErrBadPayload; no parse fault escapes the decode
// boundary.
func DecodePayload(raw []byte) (Request, error) {
	return decode(raw, true)
}

// DecodeRequestPayload parses a raw frame payload as a request, taking the
// access digit at face value. Instrument-side code (the emulator) uses
// this; hosts decode replies with DecodePayload.
func DecodeRequestPayload(raw []byte) (Request, error) {
	return decode(raw, false)
}

func decode(raw []byte, reply bool) (Request, error) {
	if len(raw) < 5 || !utf8.Valid(raw) {
		return Request{}, ErrBadPayload
	}

	digit := raw[0]
	if digit < '0' || digit > '9' {
		return Request{}, ErrBadPayload
	}
	code := int(digit - '0')
	if reply && code != int(Streaming) && code != int(Error) {
		code--
	}
	access, err := AccessCodeOf(code)
	if err != nil {
		return Request{}, ErrBadPayload
	}

	verb := string(raw[1:3])

	length, err := strconv.Atoi(string(raw[3:5]))
	if err != nil || length < 0 {
		return Request{}, ErrBadPayload
	}
	if len(raw) < 5+length {
		return Request{}, ErrBadPayload
	}

	return Request{access: access, verb: verb, data: string(raw[5 : 5+length])}, nil
}

// Access returns the PDU's access code.
func (r Request) Access() AccessCode {
	return r.access
}

// Verb returns the two-character command mnemonic.
func (r Request) Verb() string {
	return r.verb
}

// Data returns the data field.
func (r Request) Data() string {
	return r.data
}

// Encode produces the frame payload: access digit, mnemonic, zero-padded
// two-digit data length, then the data bytes.
func (r Request) Encode() []byte {
	return []byte(fmt.Sprintf("%1d%s%02d%s", int(r.access), r.verb, len(r.data), r.data))
}

// Reply builds the response PDU carrying data back under the same verb,
// with the access code advanced per the reply rule.
func (r Request) Reply(data string) Request {
	return Request{access: r.access.Reply(), verb: r.verb, data: data}
}

// IsError reports whether this PDU carries a device error mnemonic.
func (r Request) IsError() bool {
	return r.access == Error
}
