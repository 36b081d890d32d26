package resolver

import (
	"bytes"
	"encoding/json"
	"io/fs"
	"log/slog"
	"sort"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/prefs/pkg/fileutil"
)

// DocumentStore holds a JSON object loaded from disk. Values stay in their
// raw encoding until a lookup decodes them.
type DocumentStore struct {
	values map[string]json.RawMessage
	path   string
	logger *slog.Logger
}

// NewDocumentStore returns an empty DocumentStore.
func NewDocumentStore(logger *slog.Logger) *DocumentStore {
	if logger == nil {
		logger = discardLogger()
	}
	return &DocumentStore{logger: logger}
}

// Name implements Source.
func (d *DocumentStore) Name() SourceName { return SourceDocument }

// Lookup implements Source.
func (d *DocumentStore) Lookup(key string) (json.RawMessage, bool) {
	raw, ok := d.values[key]
	if !ok || isNull(raw) {
		return nil, false
	}
	return raw, true
}

// Load reads path and replaces the in-memory document when it holds a JSON
// object. On any failure the previous document is kept.
//
// Errors:
//   - ErrFileNotFound if no file exists at path
//   - ErrMalformedDocument if the content is not a JSON object
func (d *DocumentStore) Load(path string) error {
	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return errors.Wrapf(ErrFileNotFound, "%s", path)
		}
		return errors.Wrapf(err, "reading document %s", path)
	}

	values, err := ParseDocument(data)
	if err != nil {
		return errors.Wrapf(err, "%s", path)
	}

	d.values = values
	d.path = path
	d.logger.Debug("document loaded", "path", path, "keys", len(values))
	return nil
}

// Loaded reports whether a document is held in memory.
func (d *DocumentStore) Loaded() bool { return d.values != nil }

// Path returns the path of the last successfully loaded document.
func (d *DocumentStore) Path() string { return d.path }

// Keys returns the document's top-level keys in sorted order.
func (d *DocumentStore) Keys() []string {
	keys := make([]string, 0, len(d.values))
	for k := range d.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ParseDocument decodes data as a top-level JSON object.
// Anything else (an array, a scalar, null, trailing data) wraps
// ErrMalformedDocument.
func ParseDocument(data []byte) (map[string]json.RawMessage, error) {
	var values map[string]json.RawMessage
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "decoding document"), ErrMalformedDocument)
	}
	if values == nil {
		return nil, errors.Wrap(ErrMalformedDocument, "document is null")
	}
	return values, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
