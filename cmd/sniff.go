// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Vaktlabs

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/vaktlabs/thyragauge/pkg/thyra"
	"github.com/vaktlabs/thyragauge/pkg/thyra1"
)

var sniffCapturePath string

var sniffCmd = &cobra.Command{
	Use:   "sniff",
	Short: "Display raw bus traffic in human-readable form",
	Long: `Continuously segment and display frames as they arrive, including
malformed ones (bad checksum, garbage between frames). Decoded commands are
shown with their verb names.

With --capture, every delimited frame is also appended to a CBOR capture
file that the replay command can play back.`,
	RunE: runSniff,
}

func init() {
	sniffCmd.Flags().StringVarP(&sniffCapturePath, "capture", "c", "", "Append frames to a CBOR capture file")
	rootCmd.AddCommand(sniffCmd)
}

func runSniff(cmd *cobra.Command, args []string) error {
	conn, connInfo, err := OpenConnection()
	if err != nil {
		return err
	}
	defer conn.Close()

	var capture *thyra.CaptureWriter
	if sniffCapturePath != "" {
		f, err := os.OpenFile(sniffCapturePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open capture file: %w", err)
		}
		defer f.Close()
		capture = thyra.NewCaptureWriter(f)
	}

	fmt.Printf("Thyragauge - Bus Sniffer\n")
	fmt.Printf("Connection: %s\n", connInfo)
	fmt.Printf("Press Ctrl+C to exit\n\n")

	color := term.IsTerminal(int(os.Stdout.Fd()))
	var (
		framer thyra.Framer
		pend   []byte
		buf    = make([]byte, 256)
	)

	for {
		n, err := conn.Read(buf)
		if err != nil {
			if err == ErrConnectionClosed {
				logger.Info("connection closed")
				return nil
			}
			logger.Warn("read error", zap.Error(err))
			continue
		}

		pend = append(pend, buf[:n]...)
		for {
			consumed, dev, payload := framer.Decode(pend)
			if consumed == 0 {
				break
			}
			raw := pend[:consumed]
			printFrame(dev, raw, payload, color)
			if capture != nil {
				if err := capture.Write(thyra.Record{
					Time:     time.Now(),
					DeviceID: dev,
					Raw:      append([]byte(nil), raw...),
					Valid:    payload != nil,
				}); err != nil {
					logger.Warn("capture write failed", zap.Error(err))
				}
			}
			pend = pend[consumed:]
		}
	}
}

func printFrame(dev int, raw, payload []byte, color bool) {
	stamp := time.Now().Format("15:04:05.000")

	if payload == nil {
		if color {
			fmt.Printf("%s \x1b[31m[BAD ] %q\x1b[0m\n", stamp, raw)
		} else {
			fmt.Printf("%s [BAD ] %q\n", stamp, raw)
		}
		return
	}

	// Second-generation payloads (and anything else unrecognized) are
	// shown raw rather than through the one-byte-verb decode.
	verb := "RAW"
	data := string(payload)
	if req, err := thyra1.DecodePayload(payload); err == nil && req.Verb() != thyra1.VerbUnknown {
		verb = req.Verb().String()
		data = req.Data()
	}
	if color {
		fmt.Printf("%s \x1b[32m[%03d ]\x1b[0m %-18s %q\n", stamp, dev, verb, data)
	} else {
		fmt.Printf("%s [%03d ] %-18s %q\n", stamp, dev, verb, data)
	}
}
