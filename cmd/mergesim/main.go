// SPDX-License-Identifier: MIT
// Command mergesim draws a synthetic merger sample from a YAML configuration
// and prints its summary statistics.
//
//	mergesim validate -c mergesim.yaml
//	mergesim run -c mergesim.yaml [--size N]
package main

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/katalvlaran/mergesim/mktsample"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "mergesim",
		Short:        "Generate synthetic market samples for merger simulation",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "mergesim.yaml", "path to the YAML config file")

	root.AddCommand(newValidateCmd(&configPath), newRunCmd(&configPath))

	return root
}

func newValidateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check a config file without drawing anything",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := LoadAndValidate(*configPath)
			if err != nil {
				return err
			}
			s := cfg.Sample
			fmt.Fprintf(cmd.OutOrStdout(),
				"ok: %d rows, %s shares (%s recapture), %s prices, %s/%s margins, filing test %s\n",
				s.SampleSize, s.Shares.Dist, s.Shares.Recapture, s.PriceSym,
				s.Margins.Dist, s.Margins.Firm2, s.Filing)

			return nil
		},
	}
}

func newRunCmd(configPath *string) *cobra.Command {
	var size int

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Draw a sample and print its summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := LoadAndValidate(*configPath)
			if err != nil {
				return err
			}
			if size > 0 {
				cfg.Sample.SampleSize = size
			}

			return run(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg)
		},
	}
	cmd.Flags().IntVar(&size, "size", 0, "override sample.sample_size")

	return cmd
}

// run draws one sample with cfg and writes the summary to out; logs go to logw.
func run(out, logw io.Writer, cfg *Config) error {
	runID := uuid.New()
	logger := newLogger(logw, cfg.Logging).With("run_id", runID.String())

	seeds := cfg.Run.Seeds
	if len(seeds) == 0 {
		var err error
		if seeds, err = freshSeeds(mktsample.SeedsNeeded(cfg.Sample.Shares.Dist, cfg.Sample.PriceSym)); err != nil {
			return err
		}
		cfg.Run.Seeds = seeds
	}
	logger.Info("generating sample",
		"size", cfg.Sample.SampleSize, "seeds", seeds, "generator", cfg.Run.Generator,
		"threads", cfg.Run.Threads)

	ms, err := mktsample.Generate(cfg.Sample,
		mktsample.WithSeeds(cfg.Run.seedPools()...),
		mktsample.WithThreads(cfg.Run.Threads),
		mktsample.WithChunkRows(cfg.Run.ChunkRows),
		mktsample.WithLogger(logger))
	if err != nil {
		logger.Error("generation failed", "error", err)
		return err
	}

	sum := ms.Summary()
	logger.Info("sample ready", "rows", sum.Rows)
	fmt.Fprintf(out, "run %s\n%s\n", runID, sum)

	return nil
}

func newLogger(w io.Writer, cfg LoggingConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.level()}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}

	return slog.New(slog.NewTextHandler(w, opts))
}

// freshSeeds draws n integer seeds from the OS so a run can be repeated by
// copying them into run.seeds.
func freshSeeds(n int) ([]uint64, error) {
	buf := make([]byte, 8*n)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("read OS entropy: %w", err)
	}
	out := make([]uint64, n)
	for i := range out {
		out[i] = binary.LittleEndian.Uint64(buf[8*i:])
	}

	return out, nil
}
