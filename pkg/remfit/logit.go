package remfit

import (
	"context"
	"fmt"

	"git.sr.ht/~flobar/remfit/pkg/remfit/engine"
)

// Families of the logistic regression model.
const (
	FamilyAuto        = "auto"
	FamilyBinomial    = "binomial"
	FamilyMultinomial = "multinomial"
)

// LogitConfig holds the hyperparameters of a logistic regression.
// Value ranges are enforced by the engine.
type LogitConfig struct {
	RegParam         float64   `json:"regParam"`         // >= 0
	ElasticNetParam  float64   `json:"elasticNetParam"`  // in [0, 1]
	MaxIter          int       `json:"maxIter"`          // > 0
	Tol              float64   `json:"tol"`              // > 0
	Family           string    `json:"family"`           // auto, binomial or multinomial
	Standardization  bool      `json:"standardization"`  //
	Thresholds       []float64 `json:"thresholds"`       // per-class; NaN entries are dropped
	WeightCol        string    `json:"weightCol"`        // optional; "" means absent
	AggregationDepth int       `json:"aggregationDepth"` // >= 2
}

func (c LogitConfig) params() engine.Params {
	var ps engine.Params
	ps.AddFloat("regParam", c.RegParam)
	ps.AddFloat("elasticNetParam", c.ElasticNetParam)
	ps.AddInt("maxIter", int64(c.MaxIter))
	ps.AddFloat("tol", c.Tol)
	ps.AddString("family", c.Family)
	ps.AddBool("standardization", c.Standardization)
	if len(c.Thresholds) > 0 {
		ps.AddFloats("thresholds", c.Thresholds)
	}
	ps.AddString("weightCol", c.WeightCol)
	ps.AddInt("aggregationDepth", int64(c.AggregationDepth))
	return ps
}

// LogitModel is a fitted or loaded logistic regression.
type LogitModel struct {
	Model
}

// LogitSummary describes a fitted logistic regression.  Binary
// models report one coefficient column labeled "Estimate";
// multinomial models one column per class label.
type LogitSummary struct {
	Coefficients *Table
	NumClasses   int
	NumFeatures  int
}

// FitLogit fits a logistic regression on the given dataset.
func FitLogit(ctx context.Context, e engine.Engine, data engine.Dataset, formula string, cfg LogitConfig) (*LogitModel, error) {
	m, err := fitModel(ctx, e, KindLogit, data, formula, cfg.params())
	if err != nil {
		return nil, err
	}
	return &LogitModel{Model: m}, nil
}

// ReadLogit loads a previously saved logistic regression.
func ReadLogit(ctx context.Context, e engine.Engine, path string) (*LogitModel, error) {
	m, err := Read(ctx, e, KindLogit, path)
	if err != nil {
		return nil, err
	}
	return &LogitModel{Model: *m}, nil
}

// Summary retrieves and reshapes the model's coefficients.
// Summaries of loaded models fail with engine.ErrUnsupported.
func (m *LogitModel) Summary(ctx context.Context, e engine.Engine) (*LogitSummary, error) {
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
	return &LogitSummary{
		Coefficients: coef,
		NumClasses:   int(info.NumClasses),
		NumFeatures:  int(info.NumFeatures),
	}, nil
}
