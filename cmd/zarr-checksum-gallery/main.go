package main

import (
	"fmt"
	"os"

	"zarr-checksum-gallery/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "zarr-checksum-gallery: %v\n", err)
		os.Exit(1)
	}
}
