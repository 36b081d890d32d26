package resolver

import "github.com/cockroachdb/errors"

// Sentinel errors for source binding and document loading.
var (
	// ErrSourceUnavailable indicates the shared store namespace could not be bound.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrFileNotFound indicates the document path has no file.
	ErrFileNotFound = errors.New("document file not found")

	// ErrMalformedDocument indicates the document is not a JSON object.
	ErrMalformedDocument = errors.New("malformed document")

	// ErrKeyNotFound indicates no source defines the key.
	// Lookups fall back to the caller's default instead of returning it.
	ErrKeyNotFound = errors.New("key not found")

	// ErrUnsupportedValueType indicates a stored value does not decode into
	// the requested type. Lookups skip to the next source instead of
	// returning it.
	ErrUnsupportedValueType = errors.New("unsupported value type")
)
