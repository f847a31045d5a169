package remfit

import (
	"context"
	"fmt"

	"git.sr.ht/~flobar/remfit/pkg/remfit/engine"
)

// SVCConfig holds the hyperparameters of a linear support vector
// classifier.  The engine enforces the value ranges; this layer only
// normalizes the representation.
type SVCConfig struct {
	RegParam         float64 `json:"regParam"`         // >= 0
	MaxIter          int     `json:"maxIter"`          // > 0
	Tol              float64 `json:"tol"`              // > 0
	Standardization  bool    `json:"standardization"`  //
	Threshold        float64 `json:"threshold"`        //
	WeightCol        string  `json:"weightCol"`        // optional; "" means absent
	AggregationDepth int     `json:"aggregationDepth"` // >= 2
}

func (c SVCConfig) params() engine.Params {
	var ps engine.Params
	ps.AddFloat("regParam", c.RegParam)
	ps.AddInt("maxIter", int64(c.MaxIter))
	ps.AddFloat("tol", c.Tol)
	ps.AddBool("standardization", c.Standardization)
	ps.AddFloat("threshold", c.Threshold)
	ps.AddString("weightCol", c.WeightCol)
	ps.AddInt("aggregationDepth", int64(c.AggregationDepth))
	return ps
}

// SVCModel is a fitted or loaded linear SVC.
type SVCModel struct {
	Model
}

// SVCSummary describes a fitted linear SVC.
type SVCSummary struct {
	Coefficients *Table
	NumClasses   int
	NumFeatures  int
}

// FitSVC fits a linear SVC on the given dataset.
func FitSVC(ctx context.Context, e engine.Engine, data engine.Dataset, formula string, cfg SVCConfig) (*SVCModel, error) {
	m, err := fitModel(ctx, e, KindSVC, data, formula, cfg.params())
	if err != nil {
		return nil, err
	}
	return &SVCModel{Model: m}, nil
}

// ReadSVC loads a previously saved linear SVC.
func ReadSVC(ctx context.Context, e engine.Engine, path string) (*SVCModel, error) {
	m, err := Read(ctx, e, KindSVC, path)
	if err != nil {
		return nil, err
	}
	return &SVCModel{Model: *m}, nil
}

// Summary retrieves and reshapes the model's coefficients.  The
// engine's SVC wrapper drops the introspection data on reload, so
// summaries of loaded models fail with engine.ErrUnsupported.
func (m *SVCModel) Summary(ctx context.Context, e engine.Engine) (*SVCSummary, error) {
	if m.Loaded() {
		return nil, fmt.Errorf("summary %s: loaded model: %w", m.Kind(), engine.ErrUnsupported)
	}
	info, err := e.Info(ctx, m.Handle())
	if err != nil {
		return nil, fmt.Errorf("summary %s: %v", m.Kind(), err)
	}
	coef, err := coefficientTable(info)
	if err != nil {
		return nil, fmt.Errorf("summary %s: %v", m.Kind(), err)
	}
	return &SVCSummary{
		Coefficients: coef,
		NumClasses:   int(info.NumClasses),
		NumFeatures:  int(info.NumFeatures),
	}, nil
}
