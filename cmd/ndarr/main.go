// Command ndarr is a small matrix calculator over the ndarr engine.
// Matrices are given as text, rows separated by semicolons and
// elements by commas: "1,2;3,4".
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/go-ndarr/ndarr"
	"github.com/go-ndarr/ndarr/linalg"
)

func parseMatrix(text string) (*ndarr.Array, error) {
	var rows [][]float64
	for _, rowText := range strings.Split(text, ";") {
		var row []float64
		for _, cell := range strings.Split(rowText, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return nil, fmt.Errorf("bad matrix element %q: %w", cell, err)
			}
			row = append(row, v)
		}
		if len(rows) > 0 && len(row) != len(rows[0]) {
			return nil, fmt.Errorf("ragged matrix: row %d has %d elements, expected %d", len(rows), len(row), len(rows[0]))
		}
		rows = append(rows, row)
	}
	return ndarr.FromNested(rows, 0)
}

func parseVector(text string) (*ndarr.Array, error) {
	var vals []float64
	for _, cell := range strings.Split(text, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
		if err != nil {
			return nil, fmt.Errorf("bad vector element %q: %w", cell, err)
		}
		vals = append(vals, v)
	}
	return ndarr.FromFloat64s(vals)
}

func printMatrix(a *ndarr.Array) {
	shape := a.Shape()
	for i := 0; i < shape[0]; i++ {
		parts := make([]string, shape[1])
		for j := 0; j < shape[1]; j++ {
			v, _ := a.At(i, j)
			parts[j] = strconv.FormatFloat(v.Float(), 'g', -1, 64)
		}
		fmt.Println(strings.Join(parts, " "))
	}
}

func printVector(a *ndarr.Array) {
	n := a.Shape()[0]
	parts := make([]string, n)
	for i := 0; i < n; i++ {
		v, _ := a.At(i)
		parts[i] = strconv.FormatFloat(v.Float(), 'g', -1, 64)
	}
	fmt.Println(strings.Join(parts, " "))
}

func newDetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "det MATRIX",
		Short: "Determinant of a square matrix",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			m, err := parseMatrix(args[0])
			if err != nil {
				return err
			}
			d, err := linalg.Det(m)
			if err != nil {
				return err
			}
			fmt.Println(strconv.FormatFloat(d, 'g', -1, 64))
			return nil
		},
	}
}

func newInvCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inv MATRIX",
		Short: "Inverse of a square matrix",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			m, err := parseMatrix(args[0])
			if err != nil {
				return err
			}
			out, err := linalg.Inv(m)
			if err != nil {
				return err
			}
			printMatrix(out)
			return nil
		},
	}
}

func newSolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "solve MATRIX VECTOR",
		Short: "Solve the linear system A*x = b",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			m, err := parseMatrix(args[0])
			if err != nil {
				return err
			}
			b, err := parseVector(args[1])
			if err != nil {
				return err
			}
			x, err := linalg.Solve(m, b)
			if err != nil {
				return err
			}
			printVector(x)
			return nil
		},
	}
}

func newEchelonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "echelon MATRIX",
		Short: "Row-echelon form of a matrix",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			m, err := parseMatrix(args[0])
			if err != nil {
				return err
			}
			out, err := linalg.RowEchelon(m)
			if err != nil {
				return err
			}
			printMatrix(out)
			return nil
		},
	}
}

func newCLI() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "ndarr",
		Short:         "Matrix calculator built on the ndarr array engine",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	rootCmd.AddCommand(
		newDetCmd(),
		newInvCmd(),
		newSolveCmd(),
		newEchelonCmd(),
	)
	return rootCmd
}

func main() {
	if err := newCLI().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
