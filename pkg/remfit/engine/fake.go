package engine

import (
	"context"
	"fmt"
)

// Fake is an in-memory Engine for tests.  It records fit requests
// verbatim, serves canned model infos and mimics the engine's save
// semantics.  Fake is not safe for concurrent use.
type Fake struct {
	// FitRequests records every fit call in order.
	FitRequests []FitRequest
	// Infos holds the canned info served for each handle.  Fits
	// attach NextInfo to the handle they return.
	Infos    map[Handle]*ModelInfo
	NextInfo *ModelInfo
	// FitErr, if set, is returned by the next fit call.
	FitErr error
	// Saved maps occupied paths to the saved handle.
	Saved map[string]Handle

	datasets map[Dataset][]string
	rows     map[Dataset][][]string
	nhandle  int
}

// NewFake creates an empty fake engine.
func NewFake() *Fake {
	return &Fake{
		Infos:    make(map[Handle]*ModelInfo),
		Saved:    make(map[string]Handle),
		datasets: make(map[Dataset][]string),
		rows:     make(map[Dataset][][]string),
	}
}

// Fit implements Engine.
func (f *Fake) Fit(_ context.Context, req FitRequest) (Handle, error) {
	if f.FitErr != nil {
		err := f.FitErr
		f.FitErr = nil
		return "", err
	}
	f.FitRequests = append(f.FitRequests, req)
	f.nhandle++
	h := Handle(fmt.Sprintf("%s-%d", req.Kind, f.nhandle))
	if f.NextInfo != nil {
		f.Infos[h] = f.NextInfo
	}
	return h, nil
}

// Transform implements Engine.
func (f *Fake) Transform(_ context.Context, h Handle, data Dataset) (Dataset, error) {
	if _, ok := f.Infos[h]; !ok {
		return "", fmt.Errorf("transform: %s: %w", h, ErrNotFound)
	}
	out := data + "-predictions"
	if columns, ok := f.datasets[data]; ok {
		f.datasets[out] = append(append([]string{}, columns...), "prediction")
		f.rows[out] = f.rows[data]
	}
	return out, nil
}

// Info implements Engine.
func (f *Fake) Info(_ context.Context, h Handle) (*ModelInfo, error) {
	info, ok := f.Infos[h]
	if !ok {
		return nil, fmt.Errorf("info: %s: %w", h, ErrNotFound)
	}
	return info, nil
}

// Save implements Engine.
func (f *Fake) Save(_ context.Context, h Handle, path string, overwrite bool) error {
	if _, ok := f.Saved[path]; ok && !overwrite {
		return fmt.Errorf("save %s: %w", path, ErrExists)
	}
	f.Saved[path] = h
	return nil
}

// Load implements Engine.
func (f *Fake) Load(_ context.Context, kind, path string) (Handle, error) {
	h, ok := f.Saved[path]
	if !ok {
		return "", fmt.Errorf("load %s: %w", path, ErrNotFound)
	}
	return h, nil
}

// CreateDataset implements Engine.
func (f *Fake) CreateDataset(_ context.Context, name string, columns []string) (Dataset, error) {
	data := Dataset(name)
	f.datasets[data] = columns
	return data, nil
}

// AppendRows implements Engine.
func (f *Fake) AppendRows(_ context.Context, data Dataset, rows [][]string) error {
	if _, ok := f.datasets[data]; !ok {
		return fmt.Errorf("appendRows %s: %w", data, ErrNotFound)
	}
	f.rows[data] = append(f.rows[data], rows...)
	return nil
}

// Head implements Engine.
func (f *Fake) Head(_ context.Context, data Dataset, n int) ([][]string, error) {
	rows, ok := f.rows[data]
	if !ok {
		if _, ok := f.datasets[data]; !ok {
			return nil, fmt.Errorf("head %s: %w", data, ErrNotFound)
		}
	}
	if n < 0 {
		n = 0
	}
	if n > len(rows) {
		n = len(rows)
	}
	return rows[:n], nil
}

// Schema implements Engine.
func (f *Fake) Schema(_ context.Context, data Dataset) ([]string, error) {
	columns, ok := f.datasets[data]
	if !ok {
		return nil, fmt.Errorf("schema %s: %w", data, ErrNotFound)
	}
	return columns, nil
}

// Columns returns the schema of a registered dataset.
func (f *Fake) Columns(data Dataset) []string {
	return f.datasets[data]
}

// Rows returns all rows appended to a dataset.
func (f *Fake) Rows(data Dataset) [][]string {
	return f.rows[data]
}

var _ Engine = &Fake{}
