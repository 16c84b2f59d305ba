// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Vaktlabs

package thyra

// Checksum computes the one-byte frame checksum: the byte sum modulo 64,
// offset by 64. The result is always in the printable ASCII range [64,127].
func Checksum(msg []byte) byte {
	sum := 0
	for _, b := range msg {
		sum += int(b)
	}
	return byte(sum%64 + 64)
}

// VerifyChecksum reports whether candidate is the checksum of msg.
func VerifyChecksum(msg []byte, candidate byte) bool {
	return Checksum(msg) == candidate
}
