package source

import "fmt"

// ErrorKind classifies why a live fetch produced no usable rows.
type ErrorKind string

const (
	// KindSchemaMismatch means the worksheet answered but lacks required
	// columns.
	KindSchemaMismatch ErrorKind = "schema_mismatch"
	// KindConnection covers everything else: network errors, auth
	// failures, malformed responses.
	KindConnection ErrorKind = "connection"
)

// LoadError is the typed outcome of a failed fetch attempt. It never
// escapes the package as an error return; resolve maps it to the fallback
// dataset and surfaces only the kind and message on the snapshot.
type LoadError struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
