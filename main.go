// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Vaktlabs

// thyragauge - CLI for Thyracont/Erstevak vacuum gauges on RS485.
//
// Provides commands for reading gauges, logging raw protocol traffic,
// and emulating a gauge for offline testing.

package main

import (
	"os"

	"github.com/vaktlabs/thyragauge/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
