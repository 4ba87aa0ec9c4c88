// Command pipezipctl is a standalone command-line driver for the pipezip
// engine: compress or decompress a single file, or compress several files
// at once, logging codec, duration, and byte counts for each single-file
// stream operation.
package main

import (
	"fmt"
	"os"

	"github.com/arloliu/pipezip/cmd/pipezipctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
