// SPDX-License-Identifier: MIT
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/matcompose/aggregate"
	"github.com/katalvlaran/matcompose/compose"
	"github.com/katalvlaran/matcompose/matrix"
)

// invertFlags mirrors the command line of `matcompose invert`.
type invertFlags struct {
	sparse         bool
	rows, cols     int
	workers        int
	partitions     int
	strategy       string
	layout         string
	flat           bool
	legacyRowCheck bool
}

func newInvertCmd(a *app) *cobra.Command {
	f := &invertFlags{}
	cmd := &cobra.Command{
		Use:   "invert [file]",
		Short: "Compose a matrix from CSV (stdin when no file) and print its inverse",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				fh, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer fh.Close()
				in = fh
			}
			return a.runInvert(cmd, f, in)
		},
	}

	fl := cmd.Flags()
	fl.BoolVar(&f.sparse, "sparse", false, "input is row,col,value triples")
	fl.IntVar(&f.rows, "rows", 0, "declared row count (sparse: required; dense: defaults to line count)")
	fl.IntVar(&f.cols, "cols", 0, "declared column count (sparse only)")
	fl.IntVar(&f.workers, "workers", 0, "max concurrent workers (0 = GOMAXPROCS)")
	fl.IntVar(&f.partitions, "partitions", 4, "number of input partitions, one worker state each")
	fl.StringVar(&f.strategy, "strategy", aggregate.DefaultStrategy.String(), "merge strategy: tree or chain")
	fl.StringVar(&f.layout, "layout", "row", "layout of --flat output: row or col")
	fl.BoolVar(&f.flat, "flat", false, "print the flat buffer in --layout instead of a grid")
	fl.BoolVar(&f.legacyRowCheck, "legacy-row-check", false, "compare dense row length against the row count")

	return cmd
}

func (a *app) runInvert(cmd *cobra.Command, f *invertFlags, in io.Reader) error {
	strategy, err := aggregate.ParseStrategy(f.strategy)
	if err != nil {
		return err
	}
	layout, err := matrix.ParseLayout(f.layout)
	if err != nil {
		return err
	}
	if f.workers < 0 {
		return fmt.Errorf("--workers must be >= 0, got %d", f.workers)
	}

	var composeOpts []compose.Option
	if f.legacyRowCheck {
		composeOpts = append(composeOpts, compose.WithLegacyRowLengthCheck())
	}
	opts := []aggregate.Option{
		aggregate.WithWorkers(f.workers),
		aggregate.WithStrategy(strategy),
		aggregate.WithLogger(a.logger),
		aggregate.WithComposeOptions(composeOpts...),
	}

	var state *compose.State
	if f.sparse {
		cells, err := readSparseCells(in)
		if err != nil {
			return err
		}
		a.logger.Info("sparse input read", "cells", len(cells), "rows", f.rows, "cols", f.cols)
		state, err = aggregate.ComposeSparse(cmd.Context(), f.rows, f.cols, aggregate.Split(cells, f.partitions), opts...)
		if err != nil {
			return err
		}
	} else {
		rows, err := readDenseRows(in)
		if err != nil {
			return err
		}
		n := f.rows
		if n == 0 {
			n = len(rows)
		}
		a.logger.Info("dense input read", "rows", len(rows), "declared", n)
		state, err = aggregate.ComposeDense(cmd.Context(), n, aggregate.Split(rows, f.partitions), opts...)
		if err != nil {
			return err
		}
	}

	inv, err := compose.Invert(state, layout)
	if err != nil {
		return err
	}
	if inv == nil {
		a.logger.Warn("no input rows; nothing to invert")
		return nil
	}

	return writeInverse(a.out, inv, f.flat)
}

// writeInverse prints either the flat buffer (one line) or the true inverse as a grid.
func writeInverse(w io.Writer, inv *compose.Inverse, flat bool) error {
	if flat {
		_, err := fmt.Fprintln(w, formatFloats(inv.Data))
		return err
	}
	row := make([]float64, inv.Cols)
	for i := 0; i < inv.Rows; i++ {
		for j := range row {
			v, err := inv.At(i, j)
			if err != nil {
				return err
			}
			row[j] = v
		}
		if _, err := fmt.Fprintln(w, formatFloats(row)); err != nil {
			return err
		}
	}

	return nil
}

func formatFloats(vals []float64) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}

	return strings.Join(parts, ",")
}
