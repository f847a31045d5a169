package remfit

import (
	"context"
	"fmt"

	"git.sr.ht/~flobar/remfit/pkg/remfit/engine"
)

// MLPConfig holds the hyperparameters of a multilayer perceptron
// classifier.  Layer sizes below 1 mark missing entries and are
// dropped before validation.
type MLPConfig struct {
	Layers         []int     `json:"layers"`         // sizes from input to output layer
	BlockSize      int       `json:"blockSize"`      // > 0
	Solver         string    `json:"solver"`         // optional; gd or l-bfgs
	MaxIter        int       `json:"maxIter"`        // > 0
	Tol            float64   `json:"tol"`            // > 0
	StepSize       float64   `json:"stepSize"`       // > 0
	Seed           string    `json:"seed"`           // optional; integer as string
	InitialWeights []float64 `json:"initialWeights"` // optional; NaN entries are dropped
}

// layerSizes drops missing entries from the configured layer sizes.
func (c MLPConfig) layerSizes() []int64 {
	sizes := make([]int64, 0, len(c.Layers))
	for _, l := range c.Layers {
		if l < 1 {
			continue
		}
		sizes = append(sizes, int64(l))
	}
	return sizes
}

func (c MLPConfig) params(layers []int64) engine.Params {
	var ps engine.Params
	ps.AddInts("layers", layers)
	ps.AddInt("blockSize", int64(c.BlockSize))
	ps.AddString("solver", c.Solver)
	ps.AddInt("maxIter", int64(c.MaxIter))
	ps.AddFloat("tol", c.Tol)
	ps.AddFloat("stepSize", c.StepSize)
	ps.AddString("seed", c.Seed)
	if len(c.InitialWeights) > 0 {
		ps.AddFloats("initialWeights", c.InitialWeights)
	}
	return ps
}

// MLPModel is a fitted or loaded multilayer perceptron classifier.
type MLPModel struct {
	Model
}

// MLPSummary describes the architecture and weights of a fitted
// perceptron.
type MLPSummary struct {
	NumOfInputs  int
	NumOfOutputs int
	Layers       []int
	Weights      []float64
}

// FitMLP fits a multilayer perceptron on the given dataset.  The
// layer-size array must contain more than one entry after dropping
// missing values; shorter arrays fail with engine.ErrInvalidConfig
// before any remote call.
func FitMLP(ctx context.Context, e engine.Engine, data engine.Dataset, formula string, cfg MLPConfig) (*MLPModel, error) {
	layers := cfg.layerSizes()
	if len(layers) <= 1 {
		return nil, fmt.Errorf("fit %s: layers must contain at least two entries: %w",
			KindMLP, engine.ErrInvalidConfig)
	}
	m, err := fitModel(ctx, e, KindMLP, data, formula, cfg.params(layers))
	if err != nil {
		return nil, err
	}
	return &MLPModel{Model: m}, nil
}

// ReadMLP loads a previously saved perceptron.
func ReadMLP(ctx context.Context, e engine.Engine, path string) (*MLPModel, error) {
	m, err := Read(ctx, e, KindMLP, path)
	if err != nil {
		return nil, err
	}
	return &MLPModel{Model: *m}, nil
}

// Summary decomposes the engine's layer array into the number of
// inputs (first entry), the number of outputs (last entry) and the
// flat weight vector of the fully-connected architecture.  Summaries
// of loaded models fail with engine.ErrUnsupported.
func (m *MLPModel) Summary(ctx context.Context, e engine.Engine) (*MLPSummary, error) {
	if m.Loaded() {
		return nil, fmt.Errorf("summary %s: loaded model: %w", m.Kind(), engine.ErrUnsupported)
	}
	info, err := e.Info(ctx, m.Handle())
	if err != nil {
		return nil, fmt.Errorf("summary %s: %v", m.Kind(), err)
	}
	if len(info.Layers) < 2 {
		return nil, fmt.Errorf("summary %s: bad layer array %v", m.Kind(), info.Layers)
	}
	if want := weightCount(info.Layers); int64(len(info.Weights)) != want {
		return nil, fmt.Errorf("summary %s: expected %d weights for layers %v; got %d",
			m.Kind(), want, info.Layers, len(info.Weights))
	}
	layers := make([]int, len(info.Layers))
	for i, l := range info.Layers {
		layers[i] = int(l)
	}
	return &MLPSummary{
		NumOfInputs:  layers[0],
		NumOfOutputs: layers[len(layers)-1],
		Layers:       layers,
		Weights:      info.Weights,
	}, nil
}

// weightCount returns the weight vector length of a fully-connected
// architecture, bias included: sum of (inputs+1)*outputs over
// consecutive layer pairs.
func weightCount(layers []int64) int64 {
	var n int64
	for i := 0; i+1 < len(layers); i++ {
		n += (layers[i] + 1) * layers[i+1]
	}
	return n
}
