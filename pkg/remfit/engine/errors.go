package engine

import "errors"

// Error kinds surfaced to callers.  The transport maps the engine's
// status signals onto these so that callers can test with errors.Is
// without knowing the wire protocol.
var (
	// ErrInvalidConfig marks a configuration the engine (or a
	// local pre-call check) rejects.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrExists marks a save path conflict without overwrite.
	ErrExists = errors.New("path already exists")

	// ErrUnsupported marks an operation the model's remote
	// wrapper cannot perform, e.g. a summary on a reloaded model.
	ErrUnsupported = errors.New("unsupported operation")

	// ErrNotFound marks a missing model, dataset or path.
	ErrNotFound = errors.New("not found")
)
