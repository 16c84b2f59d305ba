// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Vaktlabs

package thyra

import (
	"math"
	"testing"
)

func TestEncodePressure(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  string
	}{
		{"millibar range", 1.23e-3, "123017"},
		{"below one", 0.9876, "987619"},
		{"above ten", 12.34, "123421"},
		{"zero keeps exponent -1", 0.0, "000019"},
		{"large", 9999.0, "999923"},
		{"atmosphere", 1000.0, "100023"},
		{"mantissa carry", 9.9996, "100021"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EncodePressure(tt.value)
			if err != nil {
				t.Fatalf("EncodePressure(%v) error: %v", tt.value, err)
			}
			if got != tt.want {
				t.Errorf("EncodePressure(%v) = %q, want %q", tt.value, got, tt.want)
			}
			if len(got) != PressureCodeSize {
				t.Errorf("EncodePressure(%v) produced %d digits, want %d", tt.value, len(got), PressureCodeSize)
			}
		})
	}
}

func TestEncodePressure_Unrepresentable(t *testing.T) {
	for _, v := range []float64{math.Inf(1), math.Inf(-1), math.NaN(), -1.0} {
		if _, err := EncodePressure(v); err == nil {
			t.Errorf("EncodePressure(%v) succeeded, want error", v)
		}
	}
}

func TestDecodePressure(t *testing.T) {
	tests := []struct {
		code string
		want float64
	}{
		{"123417", 1.234e-3},
		{"987619", 0.9876},
		{"123421", 12.34},
		{"000019", 0.0},
		{"000020", 0.0}, // zero mantissa decodes to zero at any exponent
		{"999923", 9999.0},
	}

	for _, tt := range tests {
		got, ok := DecodePressure(tt.code)
		if !ok {
			t.Errorf("DecodePressure(%q) not ok", tt.code)
			continue
		}
		if math.Abs(got-tt.want) > 1e-3*math.Max(1, tt.want) {
			t.Errorf("DecodePressure(%q) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestDecodePressure_Malformed(t *testing.T) {
	for _, code := range []string{"abc123", "12345", "1234567", "", "12 417", "-23417"} {
		if _, ok := DecodePressure(code); ok {
			t.Errorf("DecodePressure(%q) ok, want rejection", code)
		}
	}
}

func TestPressureRoundTrip(t *testing.T) {
	values := []float64{1.23e-3, 0.9876, 12.34, 0.0, 9999.0}

	for _, v := range values {
		code, err := EncodePressure(v)
		if err != nil {
			t.Fatalf("EncodePressure(%v) error: %v", v, err)
		}
		got, ok := DecodePressure(code)
		if !ok {
			t.Fatalf("DecodePressure(%q) not ok", code)
		}
		tol := 1e-3 * math.Max(math.Abs(v), 1e-6)
		if v == 0 {
			tol = 1e-12
		}
		if math.Abs(got-v) > tol {
			t.Errorf("round trip %v -> %q -> %v", v, code, got)
		}
	}
}

func TestEncodeCalibration(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{1.23, "123"},
		{0.987, "99"}, // rounds up
		{10.0, "1000"},
		{0.0, "0"},
		{1.2345, "123"},
		{0.995, "100"},
	}

	for _, tt := range tests {
		if got := EncodeCalibration(tt.value); got != tt.want {
			t.Errorf("EncodeCalibration(%v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestDecodeCalibration(t *testing.T) {
	tests := []struct {
		code string
		want float64
	}{
		{"123", 1.23},
		{"99", 0.99},
		{"1000", 10.0},
		{"0", 0.0},
	}

	for _, tt := range tests {
		got, ok := DecodeCalibration(tt.code)
		if !ok || got != tt.want {
			t.Errorf("DecodeCalibration(%q) = (%v, %v), want (%v, true)", tt.code, got, ok, tt.want)
		}
	}
}

func TestDecodeCalibration_Malformed(t *testing.T) {
	for _, code := range []string{"abc", "", "12.3", "-5", "1e2"} {
		if _, ok := DecodeCalibration(code); ok {
			t.Errorf("DecodeCalibration(%q) ok, want rejection", code)
		}
	}
}

func TestCalibrationRoundTrip(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{1.23, 1.23},
		{0.987, 0.99}, // rounding is part of the contract
		{10.0, 10.0},
		{0.0, 0.0},
	}

	for _, tt := range tests {
		code := EncodeCalibration(tt.in)
		got, ok := DecodeCalibration(code)
		if !ok || got != tt.want {
			t.Errorf("round trip %v -> %q -> (%v, %v), want %v", tt.in, code, got, ok, tt.want)
		}
	}
}
