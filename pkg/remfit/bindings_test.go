package remfit

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"git.sr.ht/~flobar/remfit/pkg/remfit/engine"
)

var logitInfo = &engine.ModelInfo{
	Features:     []string{"(Intercept)", "f1", "f2"},
	Labels:       []string{"no", "yes"},
	Coefficients: []float64{.1, .2, .3},
	NumClasses:   2,
	NumFeatures:  2,
}

func TestFitSummary(t *testing.T) {
	e := engine.NewFake()
	e.NextInfo = logitInfo
	ctx := context.Background()
	m, err := FitLogit(ctx, e, "iris", "label ~ .", LogitConfig{MaxIter: 100})
	if err != nil {
		t.Fatalf("got error: %v", err)
	}
	if m.Loaded() {
		t.Fatalf("expected a fitted model")
	}
	s, err := m.Summary(ctx, e)
	if err != nil {
		t.Fatalf("got error: %v", err)
	}
	r, c := s.Coefficients.Dims()
	if r != len(logitInfo.Features) || c != 1 {
		t.Fatalf("expected %dx1; got %dx%d", len(logitInfo.Features), r, c)
	}
	if !reflect.DeepEqual(s.Coefficients.Flatten(), logitInfo.Coefficients) {
		t.Fatalf("expected %v; got %v", logitInfo.Coefficients, s.Coefficients.Flatten())
	}
	if s.NumClasses != 2 || s.NumFeatures != 2 {
		t.Fatalf("expected 2/2; got %d/%d", s.NumClasses, s.NumFeatures)
	}
}

func TestEmptyWeightColAbsent(t *testing.T) {
	e := engine.NewFake()
	ctx := context.Background()
	empty := LogitConfig{RegParam: .1, MaxIter: 10, Tol: 1e-6, Family: FamilyAuto, AggregationDepth: 2}
	set := empty
	set.WeightCol = "w"
	if _, err := FitLogit(ctx, e, "d", "y ~ .", empty); err != nil {
		t.Fatalf("got error: %v", err)
	}
	if _, err := FitLogit(ctx, e, "d", "y ~ .", set); err != nil {
		t.Fatalf("got error: %v", err)
	}
	if len(e.FitRequests) != 2 {
		t.Fatalf("expected 2 fit requests; got %d", len(e.FitRequests))
	}
	for _, p := range e.FitRequests[0].Params {
		if p.Name == "weightCol" {
			t.Fatalf("expected no weightCol parameter; got %v", p)
		}
	}
	// The empty-column argument list equals the set-column one with
	// the weight argument removed.
	var rest engine.Params
	for _, p := range e.FitRequests[1].Params {
		if p.Name != "weightCol" {
			rest = append(rest, p)
		}
	}
	if len(rest) == len(e.FitRequests[1].Params) {
		t.Fatalf("expected a weightCol parameter in %v", e.FitRequests[1].Params)
	}
	if !reflect.DeepEqual(e.FitRequests[0].Params, rest) {
		t.Fatalf("expected %v; got %v", rest, e.FitRequests[0].Params)
	}
}

func TestSVCWeightColForwarded(t *testing.T) {
	e := engine.NewFake()
	ctx := context.Background()
	cfg := SVCConfig{MaxIter: 10, WeightCol: "w", AggregationDepth: 2}
	if _, err := FitSVC(ctx, e, "d", "y ~ .", cfg); err != nil {
		t.Fatalf("got error: %v", err)
	}
	var found bool
	for _, p := range e.FitRequests[0].Params {
		if p.Name == "weightCol" && p.Value == "w" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected weightCol parameter in %v", e.FitRequests[0].Params)
	}
}

func TestMLPLayerValidation(t *testing.T) {
	for _, tc := range []struct {
		name   string
		layers []int
	}{
		{"nil", nil},
		{"single", []int{5}},
		{"all missing", []int{0, 0, -1}},
		{"one after drop", []int{-1, 3}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			e := engine.NewFake()
			cfg := MLPConfig{Layers: tc.layers, MaxIter: 10, BlockSize: 128}
			_, err := FitMLP(context.Background(), e, "d", "y ~ .", cfg)
			if err == nil {
				t.Fatalf("expected an error")
			}
			if !errors.Is(err, engine.ErrInvalidConfig) {
				t.Fatalf("expected an invalid configuration error; got %v", err)
			}
			if len(e.FitRequests) != 0 {
				t.Fatalf("expected no remote call; got %d", len(e.FitRequests))
			}
		})
	}
}

func TestMLPLayersDropMissing(t *testing.T) {
	e := engine.NewFake()
	cfg := MLPConfig{Layers: []int{4, 0, 5, -2, 3}, MaxIter: 10, BlockSize: 128}
	if _, err := FitMLP(context.Background(), e, "d", "y ~ .", cfg); err != nil {
		t.Fatalf("got error: %v", err)
	}
	var got interface{}
	for _, p := range e.FitRequests[0].Params {
		if p.Name == "layers" {
			got = p.Value
		}
	}
	if !reflect.DeepEqual(got, []int64{4, 5, 3}) {
		t.Fatalf("expected [4 5 3]; got %v", got)
	}
}

func TestMLPSummary(t *testing.T) {
	e := engine.NewFake()
	e.NextInfo = &engine.ModelInfo{
		Layers:  []int64{4, 5, 3},
		Weights: make([]float64, 43),
	}
	ctx := context.Background()
	m, err := FitMLP(ctx, e, "d", "y ~ .", MLPConfig{Layers: []int{4, 5, 3}, MaxIter: 10, BlockSize: 128})
	if err != nil {
		t.Fatalf("got error: %v", err)
	}
	s, err := m.Summary(ctx, e)
	if err != nil {
		t.Fatalf("got error: %v", err)
	}
	if s.NumOfInputs != 4 || s.NumOfOutputs != 3 {
		t.Fatalf("expected 4/3; got %d/%d", s.NumOfInputs, s.NumOfOutputs)
	}
	if !reflect.DeepEqual(s.Layers, []int{4, 5, 3}) {
		t.Fatalf("expected [4 5 3]; got %v", s.Layers)
	}
	if len(s.Weights) != 43 {
		t.Fatalf("expected 43 weights; got %d", len(s.Weights))
	}
}

func TestMLPSummaryBadWeightCount(t *testing.T) {
	e := engine.NewFake()
	e.NextInfo = &engine.ModelInfo{
		Layers:  []int64{4, 5, 3},
		Weights: make([]float64, 42),
	}
	ctx := context.Background()
	m, err := FitMLP(ctx, e, "d", "y ~ .", MLPConfig{Layers: []int{4, 5, 3}, MaxIter: 10, BlockSize: 128})
	if err != nil {
		t.Fatalf("got error: %v", err)
	}
	if _, err := m.Summary(ctx, e); err == nil {
		t.Fatalf("expected an error")
	}
}

func TestBayesSummary(t *testing.T) {
	e := engine.NewFake()
	e.NextInfo = &engine.ModelInfo{
		Features: []string{"f1", "f2", "f3"},
		Labels:   []string{"0", "1"},
		Apriori:  []float64{.25, .75},
		Tables:   []float64{1, 2, 3, 4, 5, 6},
	}
	ctx := context.Background()
	m, err := FitBayes(ctx, e, "d", "y ~ .", BayesConfig{Smoothing: 1})
	if err != nil {
		t.Fatalf("got error: %v", err)
	}
	s, err := m.Summary(ctx, e)
	if err != nil {
		t.Fatalf("got error: %v", err)
	}
	if r, c := s.Apriori.Dims(); r != 1 || c != 2 {
		t.Fatalf("expected 1x2 priors; got %dx%d", r, c)
	}
	if r, c := s.Tables.Dims(); r != 2 || c != 3 {
		t.Fatalf("expected 2x3 tables; got %dx%d", r, c)
	}
	if !reflect.DeepEqual(s.Tables.Rows, []string{"0", "1"}) {
		t.Fatalf("expected class rows; got %v", s.Tables.Rows)
	}
}

func TestBayesSummaryNoFeatures(t *testing.T) {
	e := engine.NewFake()
	e.NextInfo = &engine.ModelInfo{
		Labels:  []string{"0", "1"},
		Apriori: []float64{.5, .5},
	}
	ctx := context.Background()
	m, err := FitBayes(ctx, e, "d", "y ~ .", BayesConfig{})
	if err != nil {
		t.Fatalf("got error: %v", err)
	}
	if _, err := m.Summary(ctx, e); err == nil {
		t.Fatalf("expected an error")
	}
}

func TestSaveOverwrite(t *testing.T) {
	e := engine.NewFake()
	e.NextInfo = logitInfo
	ctx := context.Background()
	m, err := FitLogit(ctx, e, "d", "y ~ .", LogitConfig{MaxIter: 10})
	if err != nil {
		t.Fatalf("got error: %v", err)
	}
	if err := m.Save(ctx, e, "/models/m1", false); err != nil {
		t.Fatalf("got error: %v", err)
	}
	err = m.Save(ctx, e, "/models/m1", false)
	if !errors.Is(err, engine.ErrExists) {
		t.Fatalf("expected an already-exists error; got %v", err)
	}
	if err := m.Save(ctx, e, "/models/m1", true); err != nil {
		t.Fatalf("got error: %v", err)
	}
}

func TestLoadedSummaryUnsupported(t *testing.T) {
	e := engine.NewFake()
	e.NextInfo = logitInfo
	ctx := context.Background()
	m, err := FitSVC(ctx, e, "d", "y ~ .", SVCConfig{MaxIter: 10})
	if err != nil {
		t.Fatalf("got error: %v", err)
	}
	if err := m.Save(ctx, e, "/models/svc", false); err != nil {
		t.Fatalf("got error: %v", err)
	}
	m2, err := ReadSVC(ctx, e, "/models/svc")
	if err != nil {
		t.Fatalf("got error: %v", err)
	}
	if !m2.Loaded() {
		t.Fatalf("expected a loaded model")
	}
	if _, err := m2.Summary(ctx, e); !errors.Is(err, engine.ErrUnsupported) {
		t.Fatalf("expected an unsupported operation error; got %v", err)
	}
	// Prediction still works on loaded models.
	if _, err := m2.Predict(ctx, e, "d2"); err != nil {
		t.Fatalf("got error: %v", err)
	}
}

func TestLoadedBayesSummary(t *testing.T) {
	e := engine.NewFake()
	e.NextInfo = &engine.ModelInfo{
		Features: []string{"f1"},
		Labels:   []string{"0", "1"},
		Apriori:  []float64{.5, .5},
		Tables:   []float64{.1, .9},
	}
	ctx := context.Background()
	m, err := FitBayes(ctx, e, "d", "y ~ .", BayesConfig{})
	if err != nil {
		t.Fatalf("got error: %v", err)
	}
	if err := m.Save(ctx, e, "/models/nb", false); err != nil {
		t.Fatalf("got error: %v", err)
	}
	m2, err := ReadBayes(ctx, e, "/models/nb")
	if err != nil {
		t.Fatalf("got error: %v", err)
	}
	if _, err := m2.Summary(ctx, e); err != nil {
		t.Fatalf("got error: %v", err)
	}
}

func TestBadFormulaNoRemoteCall(t *testing.T) {
	e := engine.NewFake()
	_, err := FitLogit(context.Background(), e, "d", "y + x", LogitConfig{})
	if !errors.Is(err, engine.ErrInvalidConfig) {
		t.Fatalf("expected an invalid configuration error; got %v", err)
	}
	if len(e.FitRequests) != 0 {
		t.Fatalf("expected no remote call; got %d", len(e.FitRequests))
	}
}

func TestFitErrorPropagates(t *testing.T) {
	e := engine.NewFake()
	e.FitErr = errors.New("executor lost")
	_, err := FitSVC(context.Background(), e, "d", "y ~ .", SVCConfig{})
	if err == nil || err.Error() != "executor lost" {
		t.Fatalf("expected the engine error unchanged; got %v", err)
	}
}

func TestReadUnknownKind(t *testing.T) {
	e := engine.NewFake()
	_, err := Read(context.Background(), e, "forest", "/models/x")
	if !errors.Is(err, engine.ErrInvalidConfig) {
		t.Fatalf("expected an invalid configuration error; got %v", err)
	}
}
