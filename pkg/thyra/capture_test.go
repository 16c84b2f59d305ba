// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Vaktlabs

package thyra

import (
	"bytes"
	"io"
	"testing"
	"time"
)

func TestCaptureRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewCaptureWriter(&buf)

	records := []Record{
		{Time: time.Unix(1700000000, 0).UTC(), DeviceID: 1, Raw: frame("001", "T"), Valid: true},
		{Time: time.Unix(1700000001, 0).UTC(), DeviceID: 0, Raw: []byte("001SA\r"), Valid: false},
	}
	for _, rec := range records {
		if err := w.Write(rec); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}

	r := NewCaptureReader(&buf)
	for i, want := range records {
		got, err := r.Read()
		if err != nil {
			t.Fatalf("Read record %d: %v", i, err)
		}
		if got.DeviceID != want.DeviceID || got.Valid != want.Valid || !bytes.Equal(got.Raw, want.Raw) {
			t.Errorf("record %d = %+v, want %+v", i, got, want)
		}
		if !got.Time.Equal(want.Time) {
			t.Errorf("record %d time = %v, want %v", i, got.Time, want.Time)
		}
	}

	if _, err := r.Read(); err != io.EOF {
		t.Errorf("expected io.EOF after last record, got %v", err)
	}
}
