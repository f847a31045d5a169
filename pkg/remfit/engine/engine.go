package engine

import (
	"context"
	"math"
)

// Handle references a model held by the engine.  Handles are opaque
// and owned by exactly one local model value; they stay valid until
// the engine session ends.
type Handle string

// Dataset references a table registered with the engine.
type Dataset string

// FitRequest describes a single remote training run.
type FitRequest struct {
	Kind    string  `json:"kind"`
	Dataset Dataset `json:"dataset"`
	Formula string  `json:"formula"`
	Params  Params  `json:"params"`
}

// ModelInfo holds the raw introspection data of a fitted model as the
// engine reports it.  Coefficient blocks are flat arrays in
// column-major order; the bindings reshape them into labeled tables.
type ModelInfo struct {
	Features     []string  `json:"features"`
	Labels       []string  `json:"labels"`
	Coefficients []float64 `json:"coefficients"`
	Apriori      []float64 `json:"apriori"`
	Tables       []float64 `json:"tables"`
	Weights      []float64 `json:"weights"`
	Layers       []int64   `json:"layers"`
	NumClasses   int64     `json:"numClasses"`
	NumFeatures  int64     `json:"numFeatures"`
}

// Engine is the typed interface to the remote computation engine.
// One method per remote operation; all calls are synchronous and
// block until the engine answers.
type Engine interface {
	// Fit runs a training job and returns the handle of the
	// fitted model.  Fit blocks until the job finishes or fails;
	// failures are reported as-is without retries.
	Fit(ctx context.Context, req FitRequest) (Handle, error)

	// Transform applies a fitted model to a dataset and returns
	// the reference of the result with the added prediction
	// column.  Schema mismatches are signaled by the engine.
	Transform(ctx context.Context, h Handle, data Dataset) (Dataset, error)

	// Info retrieves the raw summary arrays of a model.
	Info(ctx context.Context, h Handle) (*ModelInfo, error)

	// Save persists a model under path.  If overwrite is false and
	// the path is occupied the engine answers with ErrExists.
	Save(ctx context.Context, h Handle, path string, overwrite bool) error

	// Load reads a previously saved model of the given kind.
	Load(ctx context.Context, kind, path string) (Handle, error)

	// CreateDataset registers a new dataset with the given columns.
	CreateDataset(ctx context.Context, name string, columns []string) (Dataset, error)

	// AppendRows appends rows to a dataset.
	AppendRows(ctx context.Context, data Dataset, rows [][]string) error

	// Head returns the first n rows of a dataset.
	Head(ctx context.Context, data Dataset, n int) ([][]string, error)

	// Schema returns the column names of a dataset.
	Schema(ctx context.Context, data Dataset) ([]string, error)
}

// Param is a single named argument of a fit call.
type Param struct {
	Name  string      `json:"name"`
	Value interface{} `json:"value"`
}

// Params is the ordered argument list of a fit call.  The order is
// fixed per model kind so that two equal configurations always
// produce the same wire form.
type Params []Param

// AddFloat appends a float parameter.
func (ps *Params) AddFloat(name string, val float64) {
	*ps = append(*ps, Param{Name: name, Value: val})
}

// AddInt appends an integer parameter.  Integers are widened to
// int64 before crossing the engine boundary.
func (ps *Params) AddInt(name string, val int64) {
	*ps = append(*ps, Param{Name: name, Value: val})
}

// AddBool appends a boolean parameter.
func (ps *Params) AddBool(name string, val bool) {
	*ps = append(*ps, Param{Name: name, Value: val})
}

// AddString appends a string parameter.  An empty string marks an
// absent optional column name and is not forwarded.
func (ps *Params) AddString(name, val string) {
	if val == "" {
		return
	}
	*ps = append(*ps, Param{Name: name, Value: val})
}

// AddFloats appends a float array parameter.  NaN entries mark
// missing values and are dropped.
func (ps *Params) AddFloats(name string, vals []float64) {
	kept := make([]float64, 0, len(vals))
	for _, v := range vals {
		if math.IsNaN(v) {
			continue
		}
		kept = append(kept, v)
	}
	*ps = append(*ps, Param{Name: name, Value: kept})
}

// AddInts appends an integer array parameter, widened to int64.
func (ps *Params) AddInts(name string, vals []int64) {
	kept := make([]int64, 0, len(vals))
	kept = append(kept, vals...)
	*ps = append(*ps, Param{Name: name, Value: kept})
}
