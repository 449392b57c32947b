// Package cli wires the cobra command tree that dispatches to the
// traversal-strategy gallery in internal/strategy: one subcommand per
// strategy token, sharing a set of global persistent flags.
package cli

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"zarr-checksum-gallery/internal/config"
	"zarr-checksum-gallery/internal/logging"
	"zarr-checksum-gallery/internal/strategy"
)

var (
	flagDebug           bool
	flagTrace           bool
	flagExcludeDotfiles bool
	flagConfigPath      string
)

var cfg *config.Config

// Execute builds and runs the root command against the process's
// arguments, returning the error (if any) its selected subcommand
// produced.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "zarr-checksum-gallery",
		Short:         "Compute a deterministic directory checksum for a DANDI Zarr-asset tree",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(flagConfigPath)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			cfg = loaded
			return nil
		},
	}

	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "log one line per completed file and directory")
	root.PersistentFlags().BoolVar(&flagTrace, "trace", false, "log worker-internal events in addition to --debug")
	root.PersistentFlags().BoolVarP(&flagExcludeDotfiles, "exclude-dotfiles", "E", false, "skip entries under dotfile-style directories (.git, .dandi, ...)")
	root.PersistentFlags().StringVar(&flagConfigPath, "config", "", "path to a YAML configuration file")

	for _, token := range strategyTokens {
		root.AddCommand(newStrategyCmd(token))
	}
	root.AddCommand(newCompareCmd())

	return root
}

// loggerFromFlags builds the stderr diagnostic logger implied by the
// --debug/--trace persistent flags.
func loggerFromFlags() *logging.Logger {
	level := logging.LevelSilent
	switch {
	case flagTrace:
		level = logging.LevelTrace
	case flagDebug:
		level = logging.LevelDebug
	}
	return logging.New(level, os.Stderr)
}

// exclusionSet returns the active dotfile-exclusion set, or nil if
// -E/--exclude-dotfiles was not given.
func exclusionSet() []string {
	if !flagExcludeDotfiles {
		return nil
	}
	if cfg != nil && len(cfg.ExcludeDotfiles) > 0 {
		return cfg.ExcludeDotfiles
	}
	return config.DefaultExcludeDotfiles
}

func defaultThreads() int {
	if cfg != nil && cfg.DefaultThreads > 0 {
		return cfg.DefaultThreads
	}
	return runtime.NumCPU()
}

func defaultWorkers() int {
	if cfg != nil && cfg.DefaultWorkers > 0 {
		return cfg.DefaultWorkers
	}
	return runtime.NumCPU()
}

func baseOptions(rootPath string, threads, workers int) strategy.Options {
	return strategy.Options{
		RootPath:        rootPath,
		ExcludeDotfiles: exclusionSet(),
		Threads:         threads,
		Workers:         workers,
		Logger:          loggerFromFlags(),
	}
}
