// Command screenot applies adaptive singular value hard thresholding to a
// matrix read from CSV.
//
// Usage:
//
//	screenot -k 10 data.csv
//	screenot -k 5 -strategy winsorize -o denoised.csv data.csv
//	screenot -k 10 -stats data.csv
//
// Without a file argument the matrix is read from stdin.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"gonum.org/v1/gonum/mat"

	screenot "github.com/cran/ScreeNOT"
	"github.com/cran/ScreeNOT/spectrum"
)

func main() {
	k := flag.Int("k", 0, "upper bound on the number of signal components")
	strategy := flag.String("strategy", "impute", "pseudo-noise strategy: impute, winsorize or zero")
	tol := flag.Float64("tol", 0, "absolute tolerance of the threshold search (0 = default)")
	stats := flag.Bool("stats", false, "print spectrum statistics")
	output := flag.String("o", "", "write the reconstructed matrix as CSV to this file")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: screenot [flags] [matrix.csv]\n\n")
		fmt.Fprintf(os.Stderr, "Computes the optimal singular value hard threshold for a noisy matrix\n")
		fmt.Fprintf(os.Stderr, "and reports the threshold and the retained rank.\n")
		fmt.Fprintf(os.Stderr, "Without a file argument the matrix is read from stdin.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  screenot -k 10 data.csv\n")
		fmt.Fprintf(os.Stderr, "  screenot -k 5 -strategy winsorize -o denoised.csv data.csv\n")
	}
	flag.Parse()

	strat, err := spectrum.ParseStrategy(*strategy)
	if err != nil {
		fail(err)
	}

	in := os.Stdin
	if flag.NArg() > 0 {
		f, err := os.Open(flag.Arg(0))
		if err != nil {
			fail(err)
		}
		defer f.Close()
		in = f
	}

	m, err := readMatrix(in)
	if err != nil {
		fail(err)
	}

	var svd mat.SVD
	if ok := svd.Factorize(m, mat.SVDThin); !ok {
		fail(fmt.Errorf("SVD factorization failed"))
	}

	values := svd.Values(nil)

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	opts := []screenot.Option{screenot.WithStrategy(strat)}
	if *tol > 0 {
		opts = append(opts, screenot.WithTolerance(*tol))
	}

	res, err := screenot.AdaptiveHardThresholdSVD(&u, values, &v, *k, opts...)
	if err != nil {
		fail(err)
	}

	rows, cols := m.Dims()
	printResult(rows, cols, strat, res)

	if *stats {
		printStats(spectrum.Calculate(values))
	}

	if *output != "" {
		if err := writeMatrix(res.Xest, *output); err != nil {
			fail(err)
		}
	}
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "screenot:", err)
	os.Exit(1)
}

func printResult(rows, cols int, strat spectrum.Strategy, res *screenot.Result) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Matrix\t%dx%d\n", rows, cols)
	fmt.Fprintf(tw, "Strategy\t%s\n", strat)
	fmt.Fprintf(tw, "Threshold\t%.6g\n", res.Threshold)
	fmt.Fprintf(tw, "Retained rank\t%d\n", res.Rank)
	tw.Flush()
}

func printStats(s spectrum.Stats) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "\nSpectrum\t\n")
	fmt.Fprintf(tw, "Count\t%d\n", s.Count)
	fmt.Fprintf(tw, "Max\t%.6g\n", s.Max)
	fmt.Fprintf(tw, "Min\t%.6g\n", s.Min)
	fmt.Fprintf(tw, "Mean\t%.6g\n", s.Mean)
	fmt.Fprintf(tw, "Median\t%.6g\n", s.Median)
	fmt.Fprintf(tw, "Energy\t%.6g\n", s.Energy)
	fmt.Fprintf(tw, "Variance\t%.6g\n", s.Variance)
	fmt.Fprintf(tw, "Stable rank\t%.4g\n", s.StableRank)
	tw.Flush()
}

// readMatrix parses a CSV stream of numeric rows into a dense matrix. All
// rows must have the same number of columns.
func readMatrix(r io.Reader) (*mat.Dense, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	var (
		data []float64
		rows int
		cols int
	)

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if cols == 0 {
			cols = len(record)
		} else if len(record) != cols {
			return nil, fmt.Errorf("row %d has %d columns, want %d", rows+1, len(record), cols)
		}

		for _, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: %v", rows+1, err)
			}
			data = append(data, v)
		}
		rows++
	}

	if rows == 0 {
		return nil, fmt.Errorf("empty matrix")
	}

	return mat.NewDense(rows, cols, data), nil
}

func writeMatrix(m *mat.Dense, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	rows, cols := m.Dims()
	record := make([]string, cols)

	for i := range rows {
		for j := range cols {
			record[j] = strconv.FormatFloat(m.At(i, j), 'g', -1, 64)
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()

	return w.Error()
}
