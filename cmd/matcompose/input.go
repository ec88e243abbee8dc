// SPDX-License-Identifier: MIT
package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/matcompose/aggregate"
)

var errMalformedInput = errors.New("matcompose: malformed input")

// newCSVReader returns a reader tolerant of ragged lines and comments; shape
// checks belong to compose, not to the parser.
func newCSVReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	return cr
}

// readDenseRows parses one matrix row per record; the row index is the record number.
func readDenseRows(r io.Reader) ([]aggregate.Row, error) {
	cr := newCSVReader(r)
	var rows []aggregate.Row
	for idx := 0; ; idx++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errMalformedInput, err)
		}
		vals, err := parseFloats(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", idx, err)
		}
		rows = append(rows, aggregate.Row{Index: idx, Values: vals})
	}

	return rows, nil
}

// readSparseCells parses one "row,col,value" triple per record.
func readSparseCells(r io.Reader) ([]aggregate.Cell, error) {
	cr := newCSVReader(r)
	var cells []aggregate.Cell
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errMalformedInput, err)
		}
		if len(rec) != 3 {
			return nil, fmt.Errorf("record %d: want row,col,value, got %d fields: %w", line, len(rec), errMalformedInput)
		}
		i, err := strconv.Atoi(strings.TrimSpace(rec[0]))
		if err != nil {
			return nil, fmt.Errorf("record %d row: %w", line, errors.Join(errMalformedInput, err))
		}
		j, err := strconv.Atoi(strings.TrimSpace(rec[1]))
		if err != nil {
			return nil, fmt.Errorf("record %d col: %w", line, errors.Join(errMalformedInput, err))
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(rec[2]), 64)
		if err != nil {
			return nil, fmt.Errorf("record %d value: %w", line, errors.Join(errMalformedInput, err))
		}
		cells = append(cells, aggregate.Cell{Row: i, Col: j, Value: v})
	}

	return cells, nil
}

func parseFloats(rec []string) ([]float64, error) {
	out := make([]float64, len(rec))
	for k, f := range rec {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, errors.Join(errMalformedInput, err)
		}
		out[k] = v
	}

	return out, nil
}
