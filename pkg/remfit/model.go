package remfit

import (
	"context"
	"fmt"

	"git.sr.ht/~flobar/remfit/pkg/remfit/engine"
)

// Model kinds as the engine names them.
const (
	KindSVC   = "svc"
	KindLogit = "logit"
	KindMLP   = "mlp"
	KindBayes = "bayes"
)

type state int

const (
	fitted state = iota
	loaded
)

// Model wraps the engine handle of a fitted or loaded model.  A
// model is immutable once built; the handle is owned by exactly one
// model value and never copied.
type Model struct {
	kind   string
	handle engine.Handle
	state  state
}

// Kind returns the model kind.
func (m *Model) Kind() string {
	return m.kind
}

// Handle returns the engine handle of the model.
func (m *Model) Handle() engine.Handle {
	return m.handle
}

// Loaded reports whether the model was read back from storage
// instead of freshly fitted.
func (m *Model) Loaded() bool {
	return m.state == loaded
}

// Predict applies the model to a dataset and returns the reference
// of the result with the added prediction column.  Predict delegates
// to the engine; schema mismatches are signaled remotely.
func (m *Model) Predict(ctx context.Context, e engine.Engine, data engine.Dataset) (engine.Dataset, error) {
	out, err := e.Transform(ctx, m.handle, data)
	if err != nil {
		return "", fmt.Errorf("predict %s: %v", m.kind, err)
	}
	return out, nil
}

// Save persists the model under path.  With overwrite unset an
// occupied path fails with engine.ErrExists; the path is not
// pre-checked locally.
func (m *Model) Save(ctx context.Context, e engine.Engine, path string, overwrite bool) error {
	if err := e.Save(ctx, m.handle, path, overwrite); err != nil {
		return fmt.Errorf("save %s: %v", m.kind, err)
	}
	return nil
}

// fitModel validates the formula, runs the remote fit and wraps the
// returned handle.  Remote failures propagate unchanged; there are
// no retries.
func fitModel(ctx context.Context, e engine.Engine, kind string, data engine.Dataset, formula string, params engine.Params) (Model, error) {
	f, err := ParseFormula(formula)
	if err != nil {
		return Model{}, err
	}
	Log("fit %s on %s with %s", kind, data, f)
	h, err := e.Fit(ctx, engine.FitRequest{
		Kind:    kind,
		Dataset: data,
		Formula: f.String(),
		Params:  params,
	})
	if err != nil {
		return Model{}, err
	}
	return Model{kind: kind, handle: h, state: fitted}, nil
}

// Read loads a previously saved model of the given kind.  The
// returned model can predict and be saved again; summaries of
// reloaded models are only available for kinds whose remote wrapper
// keeps the introspection data (see the kind-specific Read
// functions).
func Read(ctx context.Context, e engine.Engine, kind, path string) (*Model, error) {
	switch kind {
	case KindSVC, KindLogit, KindMLP, KindBayes:
	default:
		return nil, fmt.Errorf("read %s: unknown kind %q: %w", path, kind, engine.ErrInvalidConfig)
	}
	h, err := e.Load(ctx, kind, path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %v", path, err)
	}
	return &Model{kind: kind, handle: h, state: loaded}, nil
}
