// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Vaktlabs

package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vaktlabs/thyragauge/pkg/thyra"
)

var (
	replayTiming bool
	replaySpeed  float64
)

var replayCmd = &cobra.Command{
	Use:   "replay <capture-file>",
	Short: "Replay a CBOR capture onto the connection",
	Long: `Read a capture file produced by sniff --capture and write its frames
back onto the connection. With --timing the original inter-frame gaps are
reproduced, scaled by --speed.`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().BoolVarP(&replayTiming, "timing", "t", false, "Reproduce the original inter-frame timing")
	replayCmd.Flags().Float64VarP(&replaySpeed, "speed", "s", 1.0, "Timing scale factor (2.0 = twice as fast)")
	rootCmd.AddCommand(replayCmd)
}

func runReplay(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open capture file: %w", err)
	}
	defer f.Close()

	conn, connInfo, err := OpenConnection()
	if err != nil {
		return err
	}
	defer conn.Close()

	logger.Info("replaying capture",
		zap.String("file", args[0]),
		zap.String("connection", connInfo))

	reader := thyra.NewCaptureReader(f)
	var (
		sent int
		prev time.Time
	)
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read capture: %w", err)
		}

		if replayTiming && !prev.IsZero() && replaySpeed > 0 {
			gap := rec.Time.Sub(prev)
			if gap > 0 {
				time.Sleep(time.Duration(float64(gap) / replaySpeed))
			}
		}
		prev = rec.Time

		if _, err := conn.Write(rec.Raw); err != nil {
			return fmt.Errorf("write frame: %w", err)
		}
		sent++
	}

	fmt.Printf("Replayed %d frames\n", sent)
	return nil
}
