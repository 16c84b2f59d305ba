// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Vaktlabs

// Package cmd wires the gauge protocol stack to serial ports, websocket
// bridges and the terminal.
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	// Serial connection flags
	portName string
	baudRate int

	// WebSocket connection flags
	wsURL         string
	wsUsername    string
	wsNoSSLVerify bool

	deviceID int

	logFile string
	verbose bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "thyragauge",
	Short: "Vacuum gauge protocol toolkit",
	Long: `Thyragauge - a CLI for talking to RS485 vacuum gauges, sniffing their
bus traffic and emulating one for offline testing.

Connection modes:
  Serial:    --port /dev/ttyUSB0 [--baud 9600]
  WebSocket: --url ws://host/path [--username user]

For WebSocket authentication, the password is read from the
THYRAGAUGE_PASSWORD environment variable, or prompted interactively if not
set. The --password flag is intentionally not provided to avoid leaking
credentials in shell history.`,
	Version: "1.0.0",
}

func init() {
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return setup()
	}

	pf := rootCmd.PersistentFlags()

	pf.StringVarP(&portName, "port", "p", "", "Serial port device")
	pf.IntVarP(&baudRate, "baud", "b", 9600, "Baud rate (serial only)")

	pf.StringVarP(&wsURL, "url", "u", "", "WebSocket URL (ws:// or wss://)")
	pf.StringVar(&wsUsername, "username", "", "Username for HTTP Basic auth")
	pf.BoolVar(&wsNoSSLVerify, "no-ssl-verify", false, "Skip TLS certificate verification (wss:// only)")

	pf.IntVarP(&deviceID, "device", "d", 1, "Gauge bus address (0-999)")

	pf.StringVar(&logFile, "log-file", "", "Write logs to a rotated file instead of stderr")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Debug logging")
}

// setup resolves configuration (flags > env > config file) and builds the
// logger. Runs once before any subcommand.
func setup() error {
	viper.SetConfigName(".thyragauge")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME")
	viper.SetEnvPrefix("THYRAGAUGE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return fmt.Errorf("read config: %w", err)
		}
	}

	for name, target := range map[string]any{
		"port":     &portName,
		"baud":     &baudRate,
		"url":      &wsURL,
		"username": &wsUsername,
		"device":   &deviceID,
		"log-file": &logFile,
	} {
		if !rootCmd.PersistentFlags().Changed(name) && viper.IsSet(name) {
			switch t := target.(type) {
			case *string:
				*t = viper.GetString(name)
			case *int:
				*t = viper.GetInt(name)
			}
		}
	}

	if deviceID < 0 || deviceID > 999 {
		return fmt.Errorf("device id %d out of range 0-999", deviceID)
	}

	var err error
	logger, err = buildLogger()
	return err
}

func buildLogger() (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	if logFile == "" {
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(level)
		return cfg.Build()
	}

	sink := zapcore.AddSync(&lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
	})
	encoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	return zap.New(zapcore.NewCore(encoder, sink, level)), nil
}

// Execute runs the root command.
func Execute() error {
	defer func() {
		if logger != nil {
			_ = logger.Sync()
		}
	}()
	return rootCmd.Execute()
}
