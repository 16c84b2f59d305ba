// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Vaktlabs

package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vaktlabs/thyragauge/pkg/gauge"
)

var (
	measureInterval time.Duration
	measureCount    int
)

var measureCmd = &cobra.Command{
	Use:   "measure",
	Short: "Read the current pressure",
	Long: `Read the pressure once, or repeatedly with --interval. With --count 0
the readout continues until interrupted.`,
	RunE: runMeasure,
}

func init() {
	measureCmd.Flags().DurationVarP(&measureInterval, "interval", "i", 0, "Repeat every interval (0 = single reading)")
	measureCmd.Flags().IntVarP(&measureCount, "count", "n", 0, "Stop after this many readings (0 = forever)")
	rootCmd.AddCommand(measureCmd)
}

func runMeasure(cmd *cobra.Command, args []string) error {
	conn, connInfo, err := OpenConnection()
	if err != nil {
		return err
	}
	defer conn.Close()

	logger.Debug("measuring", zap.String("connection", connInfo))
	client := gauge.NewClient(conn, deviceID, gauge.WithClientLogger(logger))
	ctx := cmd.Context()

	if measureInterval == 0 {
		pressure, err := client.Measure(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("%.4g\n", pressure)
		return nil
	}

	ticker := time.NewTicker(measureInterval)
	defer ticker.Stop()

	for taken := 0; measureCount == 0 || taken < measureCount; taken++ {
		pressure, err := client.Measure(ctx)
		if err != nil {
			logger.Warn("reading failed", zap.Error(err))
		} else {
			fmt.Printf("%s  %.4g\n", time.Now().Format(time.RFC3339), pressure)
		}
		select {
		case <-ticker.C:
		case <-ctx.Done():
			return nil
		}
	}
	return nil
}
