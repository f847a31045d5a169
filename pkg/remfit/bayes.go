package remfit

import (
	"context"
	"fmt"

	"git.sr.ht/~flobar/remfit/pkg/remfit/engine"
)

// BayesConfig holds the hyperparameters of a naive Bayes classifier.
type BayesConfig struct {
	Smoothing float64 `json:"smoothing"` // >= 0
}

func (c BayesConfig) params() engine.Params {
	var ps engine.Params
	ps.AddFloat("smoothing", c.Smoothing)
	return ps
}

// BayesModel is a fitted or loaded naive Bayes classifier.
type BayesModel struct {
	Model
}

// BayesSummary describes a fitted naive Bayes classifier: the class
// priors as a single-row table labeled by class, and the
// conditional-probability table with one row per class and one
// column per feature.
type BayesSummary struct {
	Apriori *Table
	Tables  *Table
}

// FitBayes fits a naive Bayes classifier on the given dataset.
func FitBayes(ctx context.Context, e engine.Engine, data engine.Dataset, formula string, cfg BayesConfig) (*BayesModel, error) {
	m, err := fitModel(ctx, e, KindBayes, data, formula, cfg.params())
	if err != nil {
		return nil, err
	}
	return &BayesModel{Model: m}, nil
}

// ReadBayes loads a previously saved naive Bayes classifier.
func ReadBayes(ctx context.Context, e engine.Engine, path string) (*BayesModel, error) {
	m, err := Read(ctx, e, KindBayes, path)
	if err != nil {
		return nil, err
	}
	return &BayesModel{Model: *m}, nil
}

// Summary retrieves and reshapes the class priors and the
// conditional probabilities.  The engine's naive Bayes wrapper keeps
// this data across save and load, so summaries of loaded models
// work.
func (m *BayesModel) Summary(ctx context.Context, e engine.Engine) (*BayesSummary, error) {
	info, err := e.Info(ctx, m.Handle())
	if err != nil {
		return nil, fmt.Errorf("summary %s: %v", m.Kind(), err)
	}
	if len(info.Labels) == 0 {
		return nil, fmt.Errorf("summary %s: no class labels reported", m.Kind())
	}
	apriori, err := newTable([]string{""}, info.Labels, info.Apriori)
	if err != nil {
		return nil, fmt.Errorf("summary %s: %v", m.Kind(), err)
	}
	tables, err := newTable(info.Labels, info.Features, info.Tables)
	if err != nil {
		return nil, fmt.Errorf("summary %s: %v", m.Kind(), err)
	}
	return &BayesSummary{Apriori: apriori, Tables: tables}, nil
}
