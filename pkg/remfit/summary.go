package remfit

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"gonum.org/v1/gonum/mat"

	"git.sr.ht/~flobar/remfit/pkg/remfit/engine"
)

// Table is a labeled matrix reshaped from the flat arrays the engine
// reports.  Tables are immutable once built.
type Table struct {
	Rows []string
	Cols []string
	data *mat.Dense
}

// newTable builds a table from a flat array in column-major order,
// the layout the engine uses for multi-class coefficient blocks.
func newTable(rows, cols []string, flat []float64) (*Table, error) {
	r, c := len(rows), len(cols)
	if r < 1 || c < 1 {
		return nil, fmt.Errorf("table: bad dimensions %dx%d", r, c)
	}
	if r*c != len(flat) {
		return nil, fmt.Errorf("table: cannot reshape %d values into %dx%d", len(flat), r, c)
	}
	data := mat.NewDense(r, c, nil)
	for j := 0; j < c; j++ {
		for i := 0; i < r; i++ {
			data.Set(i, j, flat[j*r+i])
		}
	}
	return &Table{Rows: rows, Cols: cols, data: data}, nil
}

// At returns the value at row i, column j.
func (t *Table) At(i, j int) float64 {
	return t.data.At(i, j)
}

// Dims returns the row and column count.
func (t *Table) Dims() (int, int) {
	return t.data.Dims()
}

// Matrix returns the underlying matrix.
func (t *Table) Matrix() mat.Matrix {
	return t.data
}

// Flatten returns the table's values as a flat array in column-major
// order, the inverse of the reshaping.
func (t *Table) Flatten() []float64 {
	r, c := t.data.Dims()
	flat := make([]float64, 0, r*c)
	for j := 0; j < c; j++ {
		for i := 0; i < r; i++ {
			flat = append(flat, t.data.At(i, j))
		}
	}
	return flat
}

func (t *Table) String() string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 2, 0, 2, ' ', 0)
	fmt.Fprintf(w, "\t%s\n", strings.Join(t.Cols, "\t"))
	for i, row := range t.Rows {
		fmt.Fprintf(w, "%s", row)
		for j := range t.Cols {
			fmt.Fprintf(w, "\t%g", t.data.At(i, j))
		}
		fmt.Fprintln(w)
	}
	w.Flush()
	return b.String()
}

// estimateCol is the column label of single-column (binary)
// coefficient tables.
const estimateCol = "Estimate"

// coefficientTable reshapes a flat coefficient block into a table of
// one row per feature.  Binary models get the single column
// "Estimate"; multinomial blocks one column per class label.
func coefficientTable(info *engine.ModelInfo) (*Table, error) {
	nrow := len(info.Features)
	if nrow == 0 {
		return nil, fmt.Errorf("summary: no features reported")
	}
	if len(info.Coefficients)%nrow != 0 {
		return nil, fmt.Errorf("summary: cannot reshape %d coefficients into %d rows",
			len(info.Coefficients), nrow)
	}
	ncol := len(info.Coefficients) / nrow
	cols := []string{estimateCol}
	if ncol > 1 {
		if len(info.Labels) != ncol {
			return nil, fmt.Errorf("summary: %d class labels for %d coefficient columns",
				len(info.Labels), ncol)
		}
		cols = info.Labels
	}
	return newTable(info.Features, cols, info.Coefficients)
}
