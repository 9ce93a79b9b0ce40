// rawpack encodes textual value lists into native byte order binary files
// and dumps them back.
//
// Usage:
//
//	rawpack encode [-c config.yaml] [-o dir] [--metrics] FILE...
//	rawpack dump [--hex] FILE
//
// Each input line names a type and one or more values:
//
//	i32 1 2 3
//	f64 0.5
//	bool true
//	hex deadbeef
//
// Blank lines and lines starting with # are ignored.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dacapoday/rawout/internal/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type flags struct {
	config        string
	bufferSize    int
	maxBufferSize int
	unbounded     bool
	verbose       bool
	metrics       bool
	outDir        string
	hex           bool
}

func newRootCmd() *cobra.Command {
	var fl flags

	root := &cobra.Command{
		Use:           "rawpack",
		Short:         "Encode and inspect native byte order value files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&fl.verbose, "verbose", "v", false, "log buffer events at debug level")

	encodeCmd := &cobra.Command{
		Use:   "encode FILE...",
		Short: "Encode value lists to <out>/<name>.bin",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, &fl)
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg, fl.verbose)
			if err != nil {
				return err
			}
			defer logger.Sync()
			return runEncode(cmd.Context(), cmd.OutOrStdout(), cfg, logger, fl.outDir, args)
		},
	}
	encodeCmd.Flags().StringVarP(&fl.config, "config", "c", "", "YAML configuration file")
	encodeCmd.Flags().IntVar(&fl.bufferSize, "buffer-size", 0, "initial buffer size in bytes")
	encodeCmd.Flags().IntVar(&fl.maxBufferSize, "max-buffer-size", 0, "maximum buffer size in bytes")
	encodeCmd.Flags().BoolVar(&fl.unbounded, "unbounded", false, "let the buffer grow without limit")
	encodeCmd.Flags().BoolVar(&fl.metrics, "metrics", false, "print buffer metrics when done")
	encodeCmd.Flags().StringVarP(&fl.outDir, "out", "o", ".", "output directory")
	root.AddCommand(encodeCmd)

	dumpCmd := &cobra.Command{
		Use:   "dump FILE",
		Short: "Print a file, as a hex dump when writing to a terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(cmd.OutOrStdout(), args[0], fl.hex)
		},
	}
	dumpCmd.Flags().BoolVar(&fl.hex, "hex", false, "always print a hex dump")
	root.AddCommand(dumpCmd)

	return root
}

func loadConfig(cmd *cobra.Command, fl *flags) (*config.File, error) {
	cfg := config.Default()
	if fl.config != "" {
		var err error
		if cfg, err = config.Load(fl.config); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("buffer-size") {
		cfg.BufferSize = fl.bufferSize
	}
	if cmd.Flags().Changed("max-buffer-size") {
		cfg.MaxBufferSize = fl.maxBufferSize
	}
	if cmd.Flags().Changed("unbounded") {
		cfg.Unbounded = fl.unbounded
	}
	if cmd.Flags().Changed("metrics") {
		cfg.Metrics = fl.metrics
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *config.File, verbose bool) (*zap.Logger, error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	zc := zap.NewProductionConfig()
	zc.Encoding = "console"
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return zc.Build()
}
