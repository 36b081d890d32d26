package resolver

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// SharedFileName is the preferences file inside a shared namespace directory.
const SharedFileName = "preferences.yaml"

// SharedStore reads preferences shared between processes through a
// namespace directory. The directory is provisioned outside this package;
// binding fails when it does not exist.
type SharedStore struct {
	namespace string
	dir       string
	*fileStore
}

// BindSharedStore binds to the namespace directory under root.
// It returns an error wrapping ErrSourceUnavailable when the namespace is
// malformed or its directory is missing.
func BindSharedStore(root, namespace string, logger *slog.Logger) (*SharedStore, error) {
	if err := validateNamespace(namespace); err != nil {
		return nil, err
	}
	if root == "" {
		return nil, errors.Wrap(ErrSourceUnavailable, "no shared root directory")
	}

	dir := filepath.Join(root, namespace)
	info, err := os.Stat(dir)
	if err != nil {
		return nil, errors.Wrapf(ErrSourceUnavailable, "namespace %q: %v", namespace, err)
	}
	if !info.IsDir() {
		return nil, errors.Wrapf(ErrSourceUnavailable, "namespace %q: %s is not a directory", namespace, dir)
	}

	if logger == nil {
		logger = discardLogger()
	}

	return &SharedStore{
		namespace: namespace,
		dir:       dir,
		fileStore: newFileStore(SourceShared, filepath.Join(dir, SharedFileName), parseYAML, logger),
	}, nil
}

// Namespace returns the bound namespace identifier.
func (s *SharedStore) Namespace() string { return s.namespace }

// Path returns the preferences file path.
func (s *SharedStore) Path() string { return s.path }

// Keys returns the keys currently defined in the shared file.
func (s *SharedStore) Keys() []string { return s.keys() }

// Check parses the shared file without changing what lookups see.
// It reports whether the file exists; a missing file is not an error.
func (s *SharedStore) Check() (bool, error) { return s.check() }

func validateNamespace(namespace string) error {
	switch {
	case namespace == "":
		return errors.Wrap(ErrSourceUnavailable, "empty namespace")
	case namespace == "." || namespace == "..":
		return errors.Wrapf(ErrSourceUnavailable, "invalid namespace %q", namespace)
	case strings.ContainsAny(namespace, `/\`+"\x00"):
		return errors.Wrapf(ErrSourceUnavailable, "invalid namespace %q", namespace)
	}
	return nil
}

func parseYAML(data []byte) (map[string]any, error) {
	var values map[string]any
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, errors.Wrap(err, "decoding YAML")
	}
	if values == nil {
		values = map[string]any{}
	}
	return values, nil
}
