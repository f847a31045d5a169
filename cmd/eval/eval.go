package eval

import (
	"fmt"
	"log"
	"math"
	"strconv"

	"github.com/montanaflynn/stats"
	"github.com/spf13/cobra"

	"git.sr.ht/~flobar/remfit/cmd/internal"
	"git.sr.ht/~flobar/remfit/pkg/remfit/engine"
)

// CMD defines the remfit eval command.  It fetches the label and
// prediction columns of a scored dataset and reports simple
// agreement statistics; the heavy evaluation metrics stay on the
// engine.
var CMD = &cobra.Command{
	Use:   "eval",
	Short: "Evaluate predictions against labels",
	Run:   run,
}

var flags = struct {
	internal.Flags
	data, label, prediction string
	n                       int
}{}

func init() {
	flags.Init(CMD)
	CMD.Flags().StringVarP(&flags.data, "data", "d", "",
		"set the scored dataset")
	CMD.Flags().StringVarP(&flags.label, "label", "L", "label",
		"set the label column")
	CMD.Flags().StringVarP(&flags.prediction, "prediction", "p", "prediction",
		"set the prediction column")
	CMD.Flags().IntVarP(&flags.n, "rows", "n", 10000,
		"set the number of rows to evaluate")
}

func run(_ *cobra.Command, _ []string) {
	_, e, err := flags.Connect()
	chk(err)
	ctx, cancel := flags.Context()
	defer cancel()
	columns, err := e.Schema(ctx, engine.Dataset(flags.data))
	chk(err)
	li, pi := index(columns, flags.label), index(columns, flags.prediction)
	if li < 0 || pi < 0 {
		chk(fmt.Errorf("eval %s: missing column %s or %s", flags.data, flags.label, flags.prediction))
	}
	rows, err := e.Head(ctx, engine.Dataset(flags.data), flags.n)
	chk(err)
	if len(rows) == 0 {
		chk(fmt.Errorf("eval %s: no rows", flags.data))
	}
	var matches int
	var residuals []float64
	for _, row := range rows {
		if row[li] == row[pi] {
			matches++
		}
		l, lerr := strconv.ParseFloat(row[li], 64)
		p, perr := strconv.ParseFloat(row[pi], 64)
		if lerr == nil && perr == nil {
			residuals = append(residuals, math.Abs(l-p))
		}
	}
	fmt.Printf("rows: %d\n", len(rows))
	fmt.Printf("accuracy: %f\n", float64(matches)/float64(len(rows)))
	if len(residuals) == 0 {
		return
	}
	mean, err := stats.Mean(residuals)
	chk(err)
	dev, err := stats.StandardDeviation(residuals)
	chk(err)
	max, err := stats.Max(residuals)
	chk(err)
	fmt.Printf("meanAbsErr: %f\n", mean)
	fmt.Printf("stdDevAbsErr: %f\n", dev)
	fmt.Printf("maxAbsErr: %f\n", max)
}

func index(columns []string, name string) int {
	for i, col := range columns {
		if col == name {
			return i
		}
	}
	return -1
}

func chk(err error) {
	if err != nil {
		log.Fatalf("error: %v", err)
	}
}
