// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Vaktlabs

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vaktlabs/thyragauge/pkg/gauge"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Read a full snapshot of the gauge state",
	Long: `Query the gauge for its model, current pressure, both setpoints, both
calibration factors and the Penning stage state, and print them in one
table.`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	conn, connInfo, err := OpenConnection()
	if err != nil {
		return err
	}
	defer conn.Close()

	logger.Info("reading gauge status",
		zap.String("connection", connInfo),
		zap.Int("device", deviceID))

	client := gauge.NewClient(conn, deviceID, gauge.WithClientLogger(logger))
	ctx := cmd.Context()

	model, err := client.Model(ctx)
	if err != nil {
		return fmt.Errorf("model: %w", err)
	}
	fmt.Printf("Device %03d (%s)\n", deviceID, connInfo)
	fmt.Printf("  Model:        %s\n", model)

	if pressure, err := client.Measure(ctx); err == nil {
		fmt.Printf("  Pressure:     %.4g mbar\n", pressure)
	} else {
		fmt.Printf("  Pressure:     unavailable (%v)\n", err)
	}

	for i := 1; i <= 2; i++ {
		printValue(ctx, fmt.Sprintf("Setpoint %d", i), func(ctx context.Context) (float64, error) {
			return client.Setpoint(ctx, i)
		})
	}
	for i := 1; i <= 2; i++ {
		printValue(ctx, fmt.Sprintf("Calibration %d", i), func(ctx context.Context) (float64, error) {
			return client.Calibration(ctx, i)
		})
	}

	if on, err := client.PenningState(ctx); err == nil {
		fmt.Printf("  Penning:      %s\n", onOff(on))
	}
	if sync, err := client.PenningSync(ctx); err == nil {
		fmt.Printf("  Penning sync: %s\n", onOff(sync))
	}
	return nil
}

func printValue(ctx context.Context, label string, read func(context.Context) (float64, error)) {
	if v, err := read(ctx); err == nil {
		fmt.Printf("  %-13s %.4g\n", label+":", v)
	} else {
		fmt.Printf("  %-13s unavailable (%v)\n", label+":", err)
	}
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
