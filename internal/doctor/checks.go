package doctor

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"runtime"
	"sort"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/prefs/internal/logging"
	"github.com/thoreinstein/prefs/pkg/fileutil"
	"github.com/thoreinstein/prefs/pkg/resolver"
)

const (
	categoryConfig    = "config"
	categorySources   = "sources"
	categoryCatalogue = "catalogue"
)

// ConfigCheck reports the outcome of loading the CLI's own config file.
// Load errors are captured by the caller, since a failed load must not
// stop the remaining checks from running with defaults.
type ConfigCheck struct {
	File    string
	LoadErr error
}

var _ Check = (*ConfigCheck)(nil)

// NewConfigCheck creates a check for a config load that used file and
// returned loadErr. An empty file means no config file was found.
func NewConfigCheck(file string, loadErr error) *ConfigCheck {
	return &ConfigCheck{File: file, LoadErr: loadErr}
}

// Name returns the unique identifier for this check.
func (c *ConfigCheck) Name() string { return "config" }

// Category returns the grouping for this check.
func (c *ConfigCheck) Category() string { return categoryConfig }

// Run reports the captured load result.
func (c *ConfigCheck) Run() *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Details:  map[string]any{},
	}
	if c.File != "" {
		result.Details["file"] = c.File
	}

	switch {
	case c.LoadErr != nil:
		result.Status = SeverityError
		result.Message = "config cannot be loaded"
		result.Details["error"] = c.LoadErr.Error()
		result.FixHint = "fix the config file or remove it to use defaults"
	case c.File == "":
		result.Status = SeverityInfo
		result.Message = "no config file, using defaults"
	default:
		result.Status = SeverityPass
		result.Message = "config loaded"
	}
	return result
}

// storeChecker is satisfied by the file-backed resolver stores.
type storeChecker interface {
	Path() string
	Keys() []string
	Check() (bool, error)
}

// SharedStoreCheck verifies that the shared namespace can be bound and that
// its preferences file parses.
type SharedStoreCheck struct {
	Root      string
	Namespace string
	Logger    *slog.Logger
}

var _ Check = (*SharedStoreCheck)(nil)

// NewSharedStoreCheck creates a check for the namespace under root.
func NewSharedStoreCheck(root, namespace string, logger *slog.Logger) *SharedStoreCheck {
	return &SharedStoreCheck{Root: root, Namespace: namespace, Logger: logger}
}

// Name returns the unique identifier for this check.
func (c *SharedStoreCheck) Name() string { return "shared-store" }

// Category returns the grouping for this check.
func (c *SharedStoreCheck) Category() string { return categorySources }

// Run binds the namespace and inspects its preferences file.
func (c *SharedStoreCheck) Run() *CheckResult {
	store, err := resolver.BindSharedStore(c.Root, c.Namespace, c.Logger)
	if err != nil {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityWarning,
			Message:  "shared store unavailable",
			Details: map[string]any{
				"namespace": c.Namespace,
				"root":      c.Root,
				"error":     err.Error(),
			},
			FixHint: fmt.Sprintf("create the directory %s/%s", c.Root, c.Namespace),
		}
	}
	result := checkStore(c.Name(), store)
	result.Details["namespace"] = c.Namespace
	return result
}

// LocalStoreCheck verifies that the local store file parses when present.
type LocalStoreCheck struct {
	Path   string
	Logger *slog.Logger
}

var _ Check = (*LocalStoreCheck)(nil)

// NewLocalStoreCheck creates a check for the local store at path.
func NewLocalStoreCheck(path string, logger *slog.Logger) *LocalStoreCheck {
	return &LocalStoreCheck{Path: path, Logger: logger}
}

// Name returns the unique identifier for this check.
func (c *LocalStoreCheck) Name() string { return "local-store" }

// Category returns the grouping for this check.
func (c *LocalStoreCheck) Category() string { return categorySources }

// Run inspects the local store file.
func (c *LocalStoreCheck) Run() *CheckResult {
	return checkStore(c.Name(), resolver.NewLocalStore(c.Path, c.Logger))
}

func checkStore(name string, s storeChecker) *CheckResult {
	result := &CheckResult{
		Name:     name,
		Category: categorySources,
		Details:  map[string]any{"path": s.Path()},
	}

	exists, err := s.Check()
	switch {
	case err != nil:
		result.Status = SeverityError
		result.Message = "store file cannot be parsed"
		result.Details["error"] = err.Error()
		result.FixHint = "fix the syntax of " + s.Path()
		return result
	case !exists:
		result.Status = SeverityInfo
		result.Message = "store file not present"
		return result
	}

	if hint, ok := permissionProblem(s.Path()); ok {
		result.Status = SeverityWarning
		result.Message = "store file is writable by other users"
		result.FixHint = hint
		return result
	}

	keys := s.Keys()
	result.Status = SeverityPass
	result.Message = fmt.Sprintf("%d keys", len(keys))
	result.Details["keys"] = len(keys)
	return result
}

// DocumentCheck verifies that the managed-settings document is a JSON object.
// It reads the file directly and never replaces a resolver's loaded document.
type DocumentCheck struct {
	Path string
}

var _ Check = (*DocumentCheck)(nil)

// NewDocumentCheck creates a check for the document at path.
func NewDocumentCheck(path string) *DocumentCheck {
	return &DocumentCheck{Path: path}
}

// Name returns the unique identifier for this check.
func (c *DocumentCheck) Name() string { return "document" }

// Category returns the grouping for this check.
func (c *DocumentCheck) Category() string { return categorySources }

// Run reads and parses the document.
func (c *DocumentCheck) Run() *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Details:  map[string]any{"path": c.Path},
	}

	data, err := fileutil.ReadFileWithLimit(c.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			result.Status = SeverityInfo
			result.Message = "document not present"
			return result
		}
		result.Status = SeverityError
		result.Message = "document cannot be read"
		result.Details["error"] = err.Error()
		return result
	}

	values, err := resolver.ParseDocument(data)
	if err != nil {
		result.Status = SeverityError
		result.Message = "document is not a JSON object"
		result.Details["error"] = err.Error()
		result.FixHint = "the document must contain a single top-level JSON object"
		return result
	}

	result.Status = SeverityPass
	result.Message = fmt.Sprintf("%d keys", len(values))
	result.Details["keys"] = len(values)
	return result
}

// CatalogueTypeCheck reports catalogued keys whose stored value has the
// wrong type in some source. Such values are skipped during resolution.
type CatalogueTypeCheck struct {
	Resolver *resolver.Resolver
}

var _ Check = (*CatalogueTypeCheck)(nil)

// NewCatalogueTypeCheck creates a type check over r's sources.
func NewCatalogueTypeCheck(r *resolver.Resolver) *CatalogueTypeCheck {
	return &CatalogueTypeCheck{Resolver: r}
}

// Name returns the unique identifier for this check.
func (c *CatalogueTypeCheck) Name() string { return "catalogue-types" }

// Category returns the grouping for this check.
func (c *CatalogueTypeCheck) Category() string { return categoryCatalogue }

// Run decodes every catalogued key in every source.
func (c *CatalogueTypeCheck) Run() *CheckResult {
	var mismatches []string
	for _, info := range resolver.Catalogue() {
		for source, raw := range c.Resolver.Values(info.Key) {
			if resolver.Conforms(info.Kind, raw) {
				continue
			}
			value := string(raw)
			if logging.ShouldMask(string(info.Key)) {
				value = logging.MaskValue(value)
			}
			mismatches = append(mismatches, fmt.Sprintf("%s: %s is not %s (got %s)",
				source, info.Key, info.Kind, value))
		}
	}
	sort.Strings(mismatches)

	if len(mismatches) == 0 {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityPass,
			Message:  "all stored values match their declared types",
		}
	}
	return &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   SeverityWarning,
		Message:  fmt.Sprintf("%d values ignored due to type mismatch", len(mismatches)),
		Details:  map[string]any{"mismatches": mismatches},
		FixHint:  "store values using the type listed by: prefs keys",
	}
}

// permissionProblem reports world-writable files. Unix permissions do not
// apply on Windows.
func permissionProblem(path string) (string, bool) {
	if runtime.GOOS == "windows" {
		return "", false
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", false
	}
	if info.Mode().Perm()&0o002 == 0 {
		return "", false
	}
	return "chmod 644 " + path, true
}

// NewSourceRunner registers the standard checks for the sources described by
// opts, with type checks run against r. Checks in first run before them.
func NewSourceRunner(opts resolver.Options, r *resolver.Resolver, first ...Check) *Runner {
	opts = opts.WithDefaults()
	runner := NewRunner()
	for _, c := range first {
		runner.AddCheck(c)
	}
	runner.AddCheck(NewSharedStoreCheck(opts.SharedRoot, opts.Namespace, opts.Logger))
	runner.AddCheck(NewLocalStoreCheck(opts.LocalPath, opts.Logger))
	runner.AddCheck(NewDocumentCheck(r.DocumentPath()))
	runner.AddCheck(NewCatalogueTypeCheck(r))
	return runner
}
