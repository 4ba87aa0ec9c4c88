// Package cmd provides the runnable commands for pipezipctl.
package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/arloliu/pipezip"
)

const (
	flagLevel      = "level"
	flagWindow     = "window"
	flagWorkers    = "workers"
	flagLogLevel   = "log-level"
	envPrefix      = "PIPEZIP"
	supportedKinds = "deflate|gzip|zlib|zstd"
)

var log = logrus.New()

// Execute is pipezipctl's entrypoint, registering the compress,
// decompress, and batch subcommands on a cobra root command and wiring viper for
// PIPEZIP_*-prefixed environment overrides of the same flags.
func Execute() error {
	rootCmd := &cobra.Command{
		Use:           "pipezipctl",
		Short:         "compress or decompress a file with the pipezip parallel block engine",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.PersistentFlags().String(flagLogLevel, "info", "log level: debug|info|warn|error")
	rootCmd.PersistentFlags().Int(flagWorkers, 0, "worker pool size (0 = GOMAXPROCS)")
	rootCmd.PersistentFlags().Int(flagWindow, 0, "in-flight job window size (0 = engine default)")
	rootCmd.PersistentFlags().String(flagLevel, "default", "compression level: fastest|fast|default|good|best, or a codec-native integer")

	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		return fmt.Errorf("binding persistent flags: %w", err)
	}
	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()

	cobra.OnInitialize(initLogger)

	rootCmd.AddCommand(compressCommand(), decompressCommand(), batchCommand())

	return rootCmd.Execute()
}

func initLogger() {
	lvl, err := logrus.ParseLevel(viper.GetString(flagLogLevel))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	log.SetOutput(os.Stderr)
}

// logrusFields builds the structured fields logged for one stream
// operation: codec, elapsed duration, and input/output sizes when the
// corresponding os.FileInfo was obtainable.
func logrusFields(kindArg string, inStat, outStat os.FileInfo, elapsed time.Duration) logrus.Fields {
	fields := logrus.Fields{
		"codec":   kindArg,
		"elapsed": elapsed.String(),
	}
	if inStat != nil {
		fields["bytes_in"] = inStat.Size()
	}
	if outStat != nil {
		fields["bytes_out"] = outStat.Size()
	}

	return fields
}

// parseLevel accepts one of the five symbolic presets (case-insensitive)
// or a bare integer, which is passed through as an Explicit level and
// clamped into the target codec's native range when a compression context
// is created.
func parseLevel(s string) (pipezip.Level, error) {
	switch strings.ToLower(s) {
	case "fastest":
		return pipezip.Fastest(), nil
	case "fast":
		return pipezip.Fast(), nil
	case "", "default":
		return pipezip.DefaultLevel(), nil
	case "good":
		return pipezip.Good(), nil
	case "best":
		return pipezip.Best(), nil
	default:
		n, err := strconv.Atoi(s)
		if err != nil {
			return pipezip.Level{}, fmt.Errorf("unsupported level %q, want one of fastest|fast|default|good|best or an integer", s)
		}

		return pipezip.Explicit(n), nil
	}
}

func parseKind(s string) (pipezip.Kind, error) {
	switch strings.ToLower(s) {
	case "deflate":
		return pipezip.Deflate, nil
	case "gzip":
		return pipezip.Gzip, nil
	case "zlib":
		return pipezip.Zlib, nil
	case "zstd":
		return pipezip.Zstd, nil
	default:
		return 0, fmt.Errorf("unsupported codec %q, want one of %s", s, supportedKinds)
	}
}
