// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Vaktlabs

// Package thyra2 implements the second-generation gauge PDU: an access
// code digit, a two-character command mnemonic and a length-prefixed data
// field, carried in the same envelope as the first-generation protocol.
package thyra2

import "fmt"

// AccessCode classifies a PDU. Requests use Read, Write, FactoryDefault
// or Binary; the instrument answers with the code incremented by one.
// Streaming and Error only ever appear in replies and are never
// incremented.
type AccessCode int

const (
	Read           AccessCode = 0
	Write          AccessCode = 2
	FactoryDefault AccessCode = 4
	Streaming      AccessCode = 6
	Error          AccessCode = 7
	Binary         AccessCode = 8
)

// AccessCodeOf converts a numeric value to its AccessCode.
func AccessCodeOf(value int) (AccessCode, error) {
	switch AccessCode(value) {
	case Read, Write, FactoryDefault, Binary, Streaming, Error:
		return AccessCode(value), nil
	default:
		return 0, fmt.Errorf("thyra2: unknown access code %d", value)
	}
}

// Reply returns the access code the instrument uses when answering a
// request with this code. Streaming and Error are terminal.
func (a AccessCode) Reply() AccessCode {
	if a == Streaming || a == Error {
		return a
	}
	return a + 1
}

func (a AccessCode) String() string {
	switch a {
	case Read:
		return "READ"
	case Write:
		return "WRITE"
	case FactoryDefault:
		return "FACTORY_DEFAULT"
	case Binary:
		return "BINARY"
	case Streaming:
		return "STREAMING"
	case Error:
		return "ERROR"
	default:
		return fmt.Sprintf("ACCESS(%d)", int(a))
	}
}
