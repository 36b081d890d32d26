package resolver

import (
	"encoding/json"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/prefs/pkg/fileutil"
)

// SourceName identifies where a resolved value came from.
type SourceName string

// Source names in priority order, followed by the pseudo-source used when
// the caller's default is returned.
const (
	SourceShared   SourceName = "shared"
	SourceLocal    SourceName = "local"
	SourceDocument SourceName = "document"
	SourceDefault  SourceName = "default"
)

// Source is a read-only key-value store consulted by a [Resolver].
type Source interface {
	// Name returns the source identifier used for provenance and logging.
	Name() SourceName

	// Lookup returns the JSON encoding of the value stored under key.
	// It reports false when the key is absent or its value is null.
	Lookup(key string) (json.RawMessage, bool)
}

// parseFunc decodes a whole store file into its top-level mapping.
type parseFunc func(data []byte) (map[string]any, error)

// fileStore is a Source backed by a file that other processes may rewrite.
// The file is re-read whenever its size or modification time changes.
type fileStore struct {
	name   SourceName
	path   string
	parse  parseFunc
	logger *slog.Logger

	stamped bool
	modTime time.Time
	size    int64
	values  map[string]any
}

func newFileStore(name SourceName, path string, parse parseFunc, logger *slog.Logger) *fileStore {
	return &fileStore{
		name:   name,
		path:   path,
		parse:  parse,
		logger: logger,
	}
}

func (s *fileStore) Name() SourceName { return s.name }

func (s *fileStore) Lookup(key string) (json.RawMessage, bool) {
	s.refresh()

	v, ok := s.values[key]
	if !ok || v == nil {
		return nil, false
	}

	raw, err := json.Marshal(v)
	if err != nil {
		s.logger.Debug("value cannot be represented as JSON",
			"source", s.name, "key", key, "error", err)
		return nil, false
	}
	return raw, true
}

// keys returns the top-level keys currently visible in the file.
func (s *fileStore) keys() []string {
	s.refresh()
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	return keys
}

// check reads and parses the file, reporting why it could not be used.
// A missing file is not an error.
func (s *fileStore) check() (exists bool, err error) {
	data, err := fileutil.ReadFileWithLimit(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return true, err
	}
	if _, err := s.parse(data); err != nil {
		return true, err
	}
	return true, nil
}

func (s *fileStore) refresh() {
	info, err := os.Stat(s.path)
	if err != nil {
		if s.values != nil {
			s.logger.Debug("store file removed", "source", s.name, "path", s.path)
		}
		s.stamped = false
		s.values = nil
		return
	}

	if s.stamped && info.ModTime().Equal(s.modTime) && info.Size() == s.size {
		return
	}
	s.stamped = true
	s.modTime = info.ModTime()
	s.size = info.Size()

	data, err := fileutil.ReadFileWithLimit(s.path)
	if err != nil {
		s.logger.Warn("reading store file", "source", s.name, "path", s.path, "error", err)
		s.values = nil
		return
	}

	values, err := s.parse(data)
	if err != nil {
		s.logger.Warn("parsing store file", "source", s.name, "path", s.path, "error", err)
		s.values = nil
		return
	}

	s.logger.Debug("store file read", "source", s.name, "path", s.path, "keys", len(values))
	s.values = values
}
