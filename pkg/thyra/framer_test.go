// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Vaktlabs

package thyra

import (
	"bytes"
	"testing"
)

// ============================================================
// Checksum Tests
// ============================================================

func TestChecksum_KnownValue(t *testing.T) {
	// "001T" = 48+48+49+84 = 229; 229 % 64 + 64 = 101 ('e')
	got := Checksum([]byte("001T"))
	if got != 101 {
		t.Errorf("Checksum(\"001T\") = %d, want 101", got)
	}
}

func TestChecksum_Range(t *testing.T) {
	inputs := [][]byte{
		nil,
		{},
		[]byte("M"),
		[]byte("001T"),
		[]byte("999m987620"),
		bytes.Repeat([]byte{0xFF}, 64),
	}
	for _, msg := range inputs {
		c := Checksum(msg)
		if c < 64 || c > 127 {
			t.Errorf("Checksum(%q) = %d, outside printable range [64,127]", msg, c)
		}
	}
}

func TestChecksum_Empty(t *testing.T) {
	if got := Checksum(nil); got != 64 {
		t.Errorf("Checksum(nil) = %d, want 64", got)
	}
}

func TestVerifyChecksum(t *testing.T) {
	msg := []byte("001T")
	c := Checksum(msg)
	if !VerifyChecksum(msg, c) {
		t.Error("VerifyChecksum rejected its own checksum")
	}
	if VerifyChecksum(msg, c+1) {
		t.Error("VerifyChecksum accepted a wrong checksum")
	}
}

// ============================================================
// Framer Tests
// ============================================================

// frame builds a valid wire frame for tests.
func frame(deviceID string, payload string) []byte {
	body := []byte(deviceID + payload)
	return append(append(body, Checksum(body)), EndByte)
}

func TestFramerDecode_CompleteFrame(t *testing.T) {
	f := NewFramer()
	consumed, id, payload := f.Decode(frame("001", "T"))

	if consumed != 6 {
		t.Errorf("consumed = %d, want 6", consumed)
	}
	if id != 1 {
		t.Errorf("device id = %d, want 1", id)
	}
	if string(payload) != "T" {
		t.Errorf("payload = %q, want \"T\"", payload)
	}
}

func TestFramerDecode_NoTerminator(t *testing.T) {
	f := NewFramer()
	consumed, id, payload := f.Decode([]byte("001T@x"))

	if consumed != 0 || id != 0 || payload != nil {
		t.Errorf("incomplete frame: got (%d, %d, %q), want (0, 0, nil)", consumed, id, payload)
	}
}

func TestFramerDecode_TooShort(t *testing.T) {
	f := NewFramer()
	consumed, id, payload := f.Decode([]byte("00\r"))

	if consumed != 0 || id != 0 || payload != nil {
		t.Errorf("short buffer: got (%d, %d, %q), want (0, 0, nil)", consumed, id, payload)
	}
}

func TestFramerDecode_BadChecksum(t *testing.T) {
	f := NewFramer()
	// 'A' (65) is not the checksum of "001S".
	consumed, id, payload := f.Decode([]byte("001SA\r"))

	if consumed != 6 {
		t.Errorf("consumed = %d, want 6 (malformed frames are still consumed)", consumed)
	}
	if id != 0 || payload != nil {
		t.Errorf("malformed frame yielded (%d, %q), want (0, nil)", id, payload)
	}
}

func TestFramerDecode_BadDeviceID(t *testing.T) {
	f := NewFramer()
	body := []byte("0x1T")
	data := append(append(body, Checksum(body)), EndByte)

	consumed, id, payload := f.Decode(data)
	if consumed != len(data) || id != 0 || payload != nil {
		t.Errorf("non-decimal id: got (%d, %d, %q), want (%d, 0, nil)", consumed, id, payload, len(data))
	}
}

func TestFramerDecode_BackToBackFrames(t *testing.T) {
	f := NewFramer()
	data := append(frame("001", "S"), frame("002", "M")...)

	consumed1, id1, payload1 := f.Decode(data)
	if consumed1 != 6 || id1 != 1 || string(payload1) != "S" {
		t.Fatalf("first frame: got (%d, %d, %q)", consumed1, id1, payload1)
	}

	consumed2, id2, payload2 := f.Decode(data[consumed1:])
	if consumed2 != 6 || id2 != 2 || string(payload2) != "M" {
		t.Fatalf("second frame: got (%d, %d, %q)", consumed2, id2, payload2)
	}
}

func TestFramerDecode_GarbageThenFrame(t *testing.T) {
	f := NewFramer()
	data := append([]byte("junk\r"), frame("007", "M123456")...)

	// First call consumes the delimited garbage without producing a frame.
	consumed, id, _ := f.Decode(data)
	if consumed != 5 || id != 0 {
		t.Fatalf("garbage: got (%d, %d), want (5, 0)", consumed, id)
	}

	consumed, id, payload := f.Decode(data[consumed:])
	if id != 7 || string(payload) != "M123456" {
		t.Fatalf("frame after garbage: got (%d, %d, %q)", consumed, id, payload)
	}
}

func TestFramerEncode(t *testing.T) {
	f := NewFramer()

	got := f.Encode([]byte("S"), 1, 0)
	want := frame("001", "S")
	if !bytes.Equal(got, want) {
		t.Errorf("Encode = %q, want %q", got, want)
	}
}

func TestFramerEncode_ZeroPadsDeviceID(t *testing.T) {
	f := NewFramer()

	got := f.Encode([]byte("M"), 123, 0)
	if !bytes.HasPrefix(got, []byte("123M")) {
		t.Errorf("Encode = %q, want prefix \"123M\"", got)
	}
	if got[len(got)-1] != EndByte {
		t.Errorf("frame not terminated: %q", got)
	}
	if !VerifyChecksum(got[:len(got)-2], got[len(got)-2]) {
		t.Errorf("encoded frame fails checksum verification: %q", got)
	}
}

func TestFramerRoundTrip(t *testing.T) {
	f := NewFramer()
	payloads := []string{"T", "M123456", "s1", "j100023"}

	for _, p := range payloads {
		wire := f.Encode([]byte(p), 42, 0)
		consumed, id, payload := f.Decode(wire)
		if consumed != len(wire) {
			t.Errorf("payload %q: consumed %d of %d bytes", p, consumed, len(wire))
		}
		if id != 42 {
			t.Errorf("payload %q: device id = %d, want 42", p, id)
		}
		if string(payload) != p {
			t.Errorf("payload %q: round-tripped to %q", p, payload)
		}
	}
}
