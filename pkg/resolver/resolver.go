package resolver

import (
	"encoding/json"
	"log/slog"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/prefs/internal/logging"
	"github.com/thoreinstein/prefs/internal/paths"
)

// DefaultNamespace is the shared store namespace bound when Options leaves
// it empty.
const DefaultNamespace = "group.prefs.managed"

// Options configures the sources bound by New. Empty fields fall back to the
// conventional locations from the paths package.
type Options struct {
	// Namespace names the shared store directory under SharedRoot.
	Namespace string

	// SharedRoot is the directory holding shared namespaces.
	SharedRoot string

	// LocalPath is the managed preferences TOML file.
	LocalPath string

	// DocumentPath is the JSON document loaded at construction and on Reload.
	DocumentPath string

	// Logger receives diagnostics. Defaults to a discarding logger.
	Logger *slog.Logger
}

// Sources holds pre-built sources for NewFromSources. A nil Shared or Local
// source is treated as unavailable.
type Sources struct {
	Shared       Source
	Local        Source
	Document     *DocumentStore
	DocumentPath string
}

// Resolver answers typed lookups against the shared, local and document
// sources in that order.
type Resolver struct {
	shared       Source
	local        Source
	document     *DocumentStore
	documentPath string
	logger       *slog.Logger
}

// Resolution is the outcome of a lookup along with its provenance.
type Resolution[T any] struct {
	Key    Key
	Value  T
	Source SourceName
	Found  bool
}

// WithDefaults returns a copy of o with empty fields set to their
// conventional values.
func (o Options) WithDefaults() Options {
	if o.Logger == nil {
		o.Logger = discardLogger()
	}
	if o.Namespace == "" {
		o.Namespace = DefaultNamespace
	}
	if o.SharedRoot == "" {
		o.SharedRoot = paths.SharedRoot()
	}
	if o.LocalPath == "" {
		o.LocalPath = paths.LocalStorePath()
	}
	if o.DocumentPath == "" {
		o.DocumentPath = paths.DocumentPath()
	}
	return o
}

// New binds all sources and loads the document store from its conventional
// path. A shared store that cannot be bound is logged and stays unavailable
// for the lifetime of the Resolver.
func New(opts Options) *Resolver {
	opts = opts.WithDefaults()
	logger := opts.Logger

	r := &Resolver{
		local:        NewLocalStore(opts.LocalPath, logger),
		document:     NewDocumentStore(logger),
		documentPath: opts.DocumentPath,
		logger:       logger,
	}

	shared, err := BindSharedStore(opts.SharedRoot, opts.Namespace, logger)
	if err != nil {
		logger.Warn("shared store unavailable", "namespace", opts.Namespace, "error", err)
	} else {
		r.shared = shared
	}

	r.LoadDocumentStore("")
	return r
}

// NewFromSources builds a Resolver around existing sources. The document
// store is used as is; call LoadDocumentStore to populate it.
func NewFromSources(src Sources, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = discardLogger()
	}
	doc := src.Document
	if doc == nil {
		doc = NewDocumentStore(logger)
	}
	return &Resolver{
		shared:       src.Shared,
		local:        src.Local,
		document:     doc,
		documentPath: src.DocumentPath,
		logger:       logger,
	}
}

// sources returns the bound sources in priority order.
func (r *Resolver) sources() []Source {
	out := make([]Source, 0, 3)
	if r.shared != nil {
		out = append(out, r.shared)
	}
	if r.local != nil {
		out = append(out, r.local)
	}
	out = append(out, r.document)
	return out
}

func resolve[T any](r *Resolver, key Key, decode Decoder[T], def T) Resolution[T] {
	for _, src := range r.sources() {
		raw, ok := src.Lookup(string(key))
		if !ok {
			continue
		}
		v, ok := decode(raw)
		if !ok {
			r.logger.Debug("type mismatch, trying next source", "key", key, "source", src.Name())
			continue
		}
		r.logger.Debug("resolved", "key", key, "source", src.Name())
		return Resolution[T]{Key: key, Value: v, Source: src.Name(), Found: true}
	}
	r.logger.Debug("using default", "key", key)
	return Resolution[T]{Key: key, Value: def, Source: SourceDefault}
}

// ResolveBool resolves key as a boolean.
func (r *Resolver) ResolveBool(key Key, def bool) Resolution[bool] {
	return resolve(r, key, DecodeBool, def)
}

// ResolveNumber resolves key as a number.
func (r *Resolver) ResolveNumber(key Key, def float64) Resolution[float64] {
	return resolve(r, key, DecodeNumber, def)
}

// ResolveString resolves key as a string.
func (r *Resolver) ResolveString(key Key, def string) Resolution[string] {
	return resolve(r, key, DecodeString, def)
}

// ResolveOptionalString resolves key as a string that may be absent.
func (r *Resolver) ResolveOptionalString(key Key, def *string) Resolution[*string] {
	return resolve(r, key, DecodeOptionalString, def)
}

// ResolveStrings resolves key as a list of strings.
func (r *Resolver) ResolveStrings(key Key, def []string) Resolution[[]string] {
	return resolve(r, key, DecodeStrings, def)
}

// ResolveRecords resolves key as a list of objects.
func (r *Resolver) ResolveRecords(key Key, def []Record) Resolution[[]Record] {
	return resolve(r, key, DecodeRecords, def)
}

// Bool returns the first boolean stored under key, or def.
func (r *Resolver) Bool(key Key, def bool) bool { return r.ResolveBool(key, def).Value }

// Number returns the first number stored under key, or def.
func (r *Resolver) Number(key Key, def float64) float64 { return r.ResolveNumber(key, def).Value }

// String returns the first string stored under key, or def.
func (r *Resolver) String(key Key, def string) string { return r.ResolveString(key, def).Value }

// OptionalString returns the first string stored under key, or def.
func (r *Resolver) OptionalString(key Key, def *string) *string {
	return r.ResolveOptionalString(key, def).Value
}

// Strings returns the first string list stored under key, or def.
func (r *Resolver) Strings(key Key, def []string) []string { return r.ResolveStrings(key, def).Value }

// Records returns the first object list stored under key, or def.
func (r *Resolver) Records(key Key, def []Record) []Record { return r.ResolveRecords(key, def).Value }

// HasValue reports whether any source holds a non-null value for key,
// whatever its type.
func (r *Resolver) HasValue(key Key) bool {
	for _, src := range r.sources() {
		if _, ok := src.Lookup(string(key)); ok {
			return true
		}
	}
	return false
}

// Raw returns the undecoded value from the highest-priority source holding
// key. It returns an error wrapping ErrKeyNotFound when no source has it.
func (r *Resolver) Raw(key Key) (Resolution[json.RawMessage], error) {
	for _, src := range r.sources() {
		if raw, ok := src.Lookup(string(key)); ok {
			return Resolution[json.RawMessage]{Key: key, Value: raw, Source: src.Name(), Found: true}, nil
		}
	}
	return Resolution[json.RawMessage]{Key: key, Source: SourceDefault},
		errors.Wrapf(ErrKeyNotFound, "%s", key)
}

// Values returns the raw value every source holds for key, keyed by source.
// Sources without the key are omitted.
func (r *Resolver) Values(key Key) map[SourceName]json.RawMessage {
	out := make(map[SourceName]json.RawMessage)
	for _, src := range r.sources() {
		if raw, ok := src.Lookup(string(key)); ok {
			out[src.Name()] = raw
		}
	}
	return out
}

// LoadDocumentStore loads the document at path, or at the conventional
// path when path is empty. Failures are logged and leave the current
// document in place.
func (r *Resolver) LoadDocumentStore(path string) {
	err := r.LoadDocumentStoreErr(path)
	switch {
	case err == nil:
	case errors.Is(err, ErrFileNotFound):
		r.logger.Info("no document file, keeping current document", "path", r.pathOrDefault(path))
	case errors.Is(err, ErrMalformedDocument):
		r.logger.Error("document is not a JSON object, keeping current document",
			"path", r.pathOrDefault(path), "error", err)
	default:
		r.logger.Error("loading document failed, keeping current document",
			"path", r.pathOrDefault(path), "error", err)
	}
}

// LoadDocumentStoreErr is LoadDocumentStore for callers that need to know
// why a load failed. It returns errors wrapping ErrFileNotFound or
// ErrMalformedDocument. The current document is kept on any error.
func (r *Resolver) LoadDocumentStoreErr(path string) error {
	return r.document.Load(r.pathOrDefault(path))
}

// Reload re-reads the document from its conventional path. The shared and
// local stores are not re-bound.
func (r *Resolver) Reload() {
	r.LoadDocumentStore("")
}

// SourceAvailability reports whether each source is bound, or for the
// document store, whether a document is in memory.
func (r *Resolver) SourceAvailability() map[SourceName]bool {
	return map[SourceName]bool{
		SourceShared:   r.shared != nil,
		SourceLocal:    r.local != nil,
		SourceDocument: r.document.Loaded(),
	}
}

// Shared returns the shared source, or nil when it is unavailable.
func (r *Resolver) Shared() Source { return r.shared }

// Local returns the local source.
func (r *Resolver) Local() Source { return r.local }

// Document returns the document store.
func (r *Resolver) Document() *DocumentStore { return r.document }

// DocumentPath returns the conventional document path used by Reload.
func (r *Resolver) DocumentPath() string { return r.documentPath }

func (r *Resolver) pathOrDefault(path string) string {
	if path != "" {
		return path
	}
	return r.documentPath
}

func discardLogger() *slog.Logger {
	return logging.NewDiscard()
}
