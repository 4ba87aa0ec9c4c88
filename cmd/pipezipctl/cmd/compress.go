package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/arloliu/pipezip"
	"github.com/arloliu/pipezip/internal/workerpool"
)

func compressCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compress <codec> <in> <out>",
		Short: "compress a file with the given codec (" + supportedKinds + ")",
		Args:  cobra.ExactArgs(3),
		RunE: func(_ *cobra.Command, args []string) error {
			return runStream(args[0], args[1], args[2], true)
		},
	}

	return cmd
}

func decompressCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decompress <codec> <in> <out>",
		Short: "decompress a pipezip container produced by the compress subcommand",
		Args:  cobra.ExactArgs(3),
		RunE: func(_ *cobra.Command, args []string) error {
			return runStream(args[0], args[1], args[2], false)
		},
	}

	return cmd
}

func runStream(kindArg, inPath, outPath string, compress bool) error {
	kind, err := parseKind(kindArg)
	if err != nil {
		return err
	}

	level, err := parseLevel(viper.GetString(flagLevel))
	if err != nil {
		return err
	}

	in, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", inPath, err)
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outPath, err)
	}
	defer out.Close()

	wp := workerpool.NewFixedPool(viper.GetInt(flagWorkers))
	defer wp.Close()

	var opts []pipezip.Option
	if n := viper.GetInt(flagWindow); n > 0 {
		opts = append(opts, pipezip.WithWindowSize(n))
	}

	inst, err := pipezip.New(wp, kind, level, opts...)
	if err != nil {
		return fmt.Errorf("creating %s instance: %w", kindArg, err)
	}
	defer inst.Destroy()

	start := time.Now()

	if compress {
		err = inst.Compress(in, out)
	} else {
		err = inst.Decompress(in, out)
	}

	elapsed := time.Since(start)

	inStat, _ := in.Stat()
	outStat, _ := out.Stat()

	verb := "compress"
	if !compress {
		verb = "decompress"
	}

	entry := log.WithFields(logrusFields(kindArg, inStat, outStat, elapsed))
	if err != nil {
		entry.WithError(err).Error(verb + " failed")
		return err
	}
	entry.Info(verb + " complete")

	return nil
}
