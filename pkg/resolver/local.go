package resolver

import (
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"
)

// LocalStore reads per-user managed preferences from a TOML file written
// by an external management channel. It always binds; a missing file is an
// empty store.
type LocalStore struct {
	*fileStore
}

// NewLocalStore returns a LocalStore reading path.
func NewLocalStore(path string, logger *slog.Logger) *LocalStore {
	if logger == nil {
		logger = discardLogger()
	}
	return &LocalStore{
		fileStore: newFileStore(SourceLocal, path, parseTOML, logger),
	}
}

// Path returns the managed preferences file path.
func (s *LocalStore) Path() string { return s.path }

// Keys returns the keys currently defined in the managed file.
func (s *LocalStore) Keys() []string { return s.keys() }

// Check parses the managed file without changing what lookups see.
// It reports whether the file exists; a missing file is not an error.
func (s *LocalStore) Check() (bool, error) { return s.check() }

func parseTOML(data []byte) (map[string]any, error) {
	values := map[string]any{}
	if err := toml.Unmarshal(data, &values); err != nil {
		return nil, errors.Wrap(err, "decoding TOML")
	}
	return values, nil
}
