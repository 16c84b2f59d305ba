// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Vaktlabs

package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vaktlabs/thyragauge/pkg/gauge"
)

var (
	emulateDialect  string
	emulatePressure float64
)

var emulateCmd = &cobra.Command{
	Use:   "emulate",
	Short: "Answer the bus as a virtual gauge",
	Long: `Run a virtual gauge on the connection: frames addressed to --device are
decoded, executed against an in-memory register file and answered exactly
like instrument firmware would. Frames for other devices are ignored, so
the emulator can share a bus.

Typically pointed at one end of a virtual serial pair (socat) or a
websocket bridge while the software under test talks to the other end.`,
	RunE: runEmulate,
}

func init() {
	emulateCmd.Flags().StringVar(&emulateDialect, "dialect", "v1", "Protocol dialect: v1 or v2")
	emulateCmd.Flags().Float64Var(&emulatePressure, "pressure", 1000.0, "Initial pressure value")
	rootCmd.AddCommand(emulateCmd)
}

func runEmulate(cmd *cobra.Command, args []string) error {
	var dialect gauge.Dialect
	switch strings.ToLower(emulateDialect) {
	case "v1":
		dialect = gauge.DialectV1
	case "v2":
		dialect = gauge.DialectV2
	default:
		return fmt.Errorf("unknown dialect %q (use v1 or v2)", emulateDialect)
	}

	conn, connInfo, err := OpenConnection()
	if err != nil {
		return err
	}
	defer conn.Close()

	emu := gauge.NewEmulator(deviceID,
		gauge.WithDialect(dialect),
		gauge.WithLogger(logger))
	if err := emu.SetPressure(emulatePressure); err != nil {
		return fmt.Errorf("initial pressure: %w", err)
	}

	fmt.Printf("Thyragauge - Emulator\n")
	fmt.Printf("Connection: %s\n", connInfo)
	fmt.Printf("Device: %03d, dialect %s, pressure %.4g\n", deviceID, emulateDialect, emulatePressure)
	fmt.Printf("Press Ctrl+C to exit\n\n")

	if err := emu.Serve(cmd.Context(), conn); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("emulator stopped", zap.Error(err))
		return err
	}
	return nil
}
