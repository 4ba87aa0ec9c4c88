package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/arloliu/pipezip"
	"github.com/arloliu/pipezip/internal/workerpool"
)

// batchCommand compresses every file given on the command line onto a
// single shared worker pool, one Instance per file, driving them
// concurrently with errgroup. This is the CLI's own outer concurrency —
// separate from, and coarser-grained than, the per-chunk concurrency each
// Instance.Compress call uses internally on the same pool.
func batchCommand() *cobra.Command {
	var suffix string

	cmd := &cobra.Command{
		Use:   "batch <codec> <file...>",
		Short: "compress multiple files concurrently, writing <file><suffix> next to each",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			kind, err := parseKind(args[0])
			if err != nil {
				return err
			}

			level, err := parseLevel(viper.GetString(flagLevel))
			if err != nil {
				return err
			}
			files := args[1:]

			wp := workerpool.NewFixedPool(viper.GetInt(flagWorkers))
			defer wp.Close()

			g := new(errgroup.Group)
			for _, f := range files {
				f := f
				g.Go(func() error {
					return compressOneFile(wp, kind, level, f, f+suffix)
				})
			}

			return g.Wait()
		},
	}
	cmd.Flags().StringVar(&suffix, "suffix", ".pzp", "suffix appended to each output file")

	return cmd
}

func compressOneFile(wp workerpool.Pool, kind pipezip.Kind, level pipezip.Level, inPath, outPath string) error {
	inst, err := pipezip.New(wp, kind, level)
	if err != nil {
		return fmt.Errorf("%s: creating instance: %w", filepath.Base(inPath), err)
	}
	defer inst.Destroy()

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

	if err := inst.Compress(in, out); err != nil {
		return fmt.Errorf("%s: %w", filepath.Base(inPath), err)
	}

	log.WithField("file", inPath).Info("batch compress complete")

	return nil
}
