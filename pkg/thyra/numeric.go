// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Vaktlabs

package thyra

import (
	"fmt"
	"math"
	"strconv"
)

// The gauges exchange all numeric quantities as fixed ASCII decimal codes.
//
// Pressure uses a 6-digit scientific code: round(mantissa*1000) as four
// digits, then the decimal exponent plus 20 as two digits. A true zero is
// encoded with mantissa 0000 and exponent -1 (biased 19); instrument
// firmware emits this asymmetric form, so it is preserved rather than
// normalized to exponent 0.
//
// Calibration factors use an unpadded decimal code: round(value*100).

// EncodePressure converts a non-negative pressure in mbar to its 6-digit
// wire code. Infinite and NaN values cannot be represented and return an
// error.
func EncodePressure(value float64) (string, error) {
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return "", fmt.Errorf("pressure %v has no decimal exponent", value)
	}
	if value < 0 {
		return "", fmt.Errorf("pressure %v is negative", value)
	}

	mantissa, exponent := 0.0, -1
	if value != 0 {
		exponent = int(math.Floor(math.Log10(math.Abs(value))))
		mantissa = value / math.Pow(10, float64(exponent))
	}

	code := int(math.Round(mantissa * 1000))
	// Rounding can carry the mantissa past four digits (9.9996 -> 10000);
	// renormalize so the code stays six digits.
	if code >= 10000 {
		code /= 10
		exponent++
	}

	return fmt.Sprintf("%04d%02d", code, exponent+exponentBias), nil
}

// DecodePressure parses a 6-digit pressure code. Malformed input (wrong
// length, non-digit bytes) yields ok=false rather than an error: on the
// wire it simply means "no usable value".
func DecodePressure(code string) (float64, bool) {
	if len(code) != PressureCodeSize || !allDigits(code) {
		return 0, false
	}

	mantissa, _ := strconv.Atoi(code[:mantissaDigits])
	exponent, _ := strconv.Atoi(code[mantissaDigits:])

	// mantissa is value*1000, so the effective exponent drops by three.
	return float64(mantissa) * math.Pow(10, float64(exponent-exponentBias-3)), true
}

// EncodeCalibration converts a calibration factor to its wire code:
// round(value*100) in plain decimal, no padding (1.23 -> "123", 0 -> "0").
func EncodeCalibration(value float64) string {
	return strconv.Itoa(int(math.Round(value * 100)))
}

// DecodeCalibration parses a calibration code. Only unsigned integer
// strings are accepted; anything else yields ok=false.
func DecodeCalibration(code string) (float64, bool) {
	if len(code) == 0 || !allDigits(code) {
		return 0, false
	}
	n, err := strconv.Atoi(code)
	if err != nil {
		return 0, false
	}
	return float64(n) / 100, true
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
