package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/matcompose/aggregate"
	"github.com/katalvlaran/matcompose/compose"
	"github.com/katalvlaran/matcompose/matrix"
)

// run executes the root command with args over stdin and returns stdout and stderr.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd(&out, &errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()

	return out.String(), errOut.String(), err
}

// parseGrid turns comma-separated output lines into one flat slice.
func parseGrid(t *testing.T, s string) []float64 {
	t.Helper()
	var vals []float64
	for _, line := range strings.Split(strings.TrimSpace(s), "\n") {
		for _, f := range strings.Split(line, ",") {
			v, err := strconv.ParseFloat(f, 64)
			require.NoError(t, err)
			vals = append(vals, v)
		}
	}

	return vals
}

const upperTriangular = "2,2\n0,4\n"

func TestInvertDenseGrid(t *testing.T) {
	t.Parallel()

	out, _, err := run(t, upperTriangular, "invert")
	require.NoError(t, err)
	require.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 2)
	require.InDeltaSlice(t, []float64{0.5, -0.25, 0, 0.25}, parseGrid(t, out), 1e-12)
}

func TestInvertFlatLayouts(t *testing.T) {
	t.Parallel()

	out, _, err := run(t, upperTriangular, "invert", "--flat", "--layout", "row")
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{0.5, -0.25, 0, 0.25}, parseGrid(t, out), 1e-12)

	out, _, err = run(t, upperTriangular, "invert", "--flat", "--layout", "col", "--strategy", "chain", "--workers", "1")
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{0.5, 0, -0.25, 0.25}, parseGrid(t, out), 1e-12)
}

func TestInvertSparse(t *testing.T) {
	t.Parallel()

	in := "# diagonal\n0,0,4\n1,1,4\n2,2,4\n"
	out, _, err := run(t, in, "invert", "--sparse", "--rows", "3", "--cols", "3", "--partitions", "3")
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{0.25, 0, 0, 0, 0.25, 0, 0, 0, 0.25}, parseGrid(t, out), 1e-12)
}

func TestInvertFromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "m.csv")
	require.NoError(t, os.WriteFile(path, []byte(upperTriangular), 0o600))

	out, _, err := run(t, "", "invert", path)
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{0.5, -0.25, 0, 0.25}, parseGrid(t, out), 1e-12)
}

func TestInvertEmptyInput(t *testing.T) {
	t.Parallel()

	out, logs, err := run(t, "", "invert")
	require.NoError(t, err)
	require.Empty(t, out)
	require.Contains(t, logs, "nothing to invert")
}

func TestInvertDebugLogs(t *testing.T) {
	t.Parallel()

	_, logs, err := run(t, upperTriangular, "--log-level", "debug", "invert")
	require.NoError(t, err)
	require.Contains(t, logs, "dense input read")
	require.Contains(t, logs, "partial states reduced")
}

func TestInvertErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		stdin   string
		args    []string
		wantErr error
	}{
		{"singular", "1,2\n2,4\n", []string{"invert"}, matrix.ErrSingular},
		{"non-square", "1,2,3\n4,5,6\n", []string{"invert"}, matrix.ErrNonSquare},
		{"ragged rows", "1,2\n3\n", []string{"invert", "--partitions", "1"}, compose.ErrShapeMismatch},
		{"ragged across partitions", "1,2\n3\n", []string{"invert"}, compose.ErrIncompatibleStates},
		{"legacy row check", "1,2,3\n4,5,6\n", []string{"invert", "--legacy-row-check", "--partitions", "1"}, compose.ErrShapeMismatch},
		{"bad number", "1,x\n", []string{"invert"}, errMalformedInput},
		{"bad triple", "0,0\n", []string{"invert", "--sparse", "--rows", "1", "--cols", "1"}, errMalformedInput},
		{"sparse out of range", "0,3,1\n", []string{"invert", "--sparse", "--rows", "2", "--cols", "2"}, compose.ErrIndexOutOfRange},
		{"unknown strategy", upperTriangular, []string{"invert", "--strategy", "star"}, aggregate.ErrUnknownStrategy},
		{"unknown layout", upperTriangular, []string{"invert", "--layout", "diagonal"}, matrix.ErrUnknownLayout},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := run(t, tc.stdin, tc.args...)
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestInvertFlagErrors(t *testing.T) {
	t.Parallel()

	_, _, err := run(t, upperTriangular, "invert", "--workers", "-1")
	require.Error(t, err)

	_, _, err = run(t, upperTriangular, "--log-level", "loud", "invert")
	require.Error(t, err)

	_, _, err = run(t, "", "invert", filepath.Join(t.TempDir(), "missing.csv"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadSparseCells(t *testing.T) {
	t.Parallel()

	cells, err := readSparseCells(strings.NewReader(" 1, 0, -2.5\n# skipped\n0,1,3e2\n"))
	require.NoError(t, err)
	require.Equal(t, []aggregate.Cell{{Row: 1, Col: 0, Value: -2.5}, {Row: 0, Col: 1, Value: 300}}, cells)
}

func TestReadDenseRows(t *testing.T) {
	t.Parallel()

	rows, err := readDenseRows(strings.NewReader("1, 2\n3,4\n"))
	require.NoError(t, err)
	require.Equal(t, []aggregate.Row{{Index: 0, Values: []float64{1, 2}}, {Index: 1, Values: []float64{3, 4}}}, rows)

	_, err = readDenseRows(strings.NewReader("1,\"2\n"))
	require.ErrorIs(t, err, errMalformedInput)
}
