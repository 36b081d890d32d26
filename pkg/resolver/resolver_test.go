package resolver

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/prefs/internal/logging"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func newTestResolver(t *testing.T, shared, local map[string]any, document string) *Resolver {
	t.Helper()
	src := Sources{DocumentPath: filepath.Join(t.TempDir(), "doc.json")}
	if shared != nil {
		src.Shared = mapSource{name: SourceShared, values: shared}
	}
	src.Local = mapSource{name: SourceLocal, values: local}
	r := NewFromSources(src, logging.ForTest(t))
	if document != "" {
		writeFile(t, src.DocumentPath, document)
		require.NoError(t, r.LoadDocumentStoreErr(""))
	}
	return r
}

func TestGet_DefaultWhenAbsentEverywhere(t *testing.T) {
	r := newTestResolver(t, map[string]any{}, map[string]any{}, `{}`)

	assert.True(t, r.Bool("Missing", true))
	assert.False(t, r.Bool("Missing", false))
	assert.Equal(t, 42.5, r.Number("Missing", 42.5))
	assert.Equal(t, "dflt", r.String("Missing", "dflt"))
	assert.Nil(t, r.OptionalString("Missing", nil))

	def := "fallback"
	assert.Same(t, &def, r.OptionalString("Missing", &def))
	assert.Equal(t, []string{"a"}, r.Strings("Missing", []string{"a"}))
	assert.Equal(t, []Record{{"k": "v"}}, r.Records("Missing", []Record{{"k": "v"}}))

	res := r.ResolveNumber("Missing", 7)
	assert.False(t, res.Found)
	assert.Equal(t, SourceDefault, res.Source)
	assert.Equal(t, Key("Missing"), res.Key)
}

func TestGet_SingleSourceWins(t *testing.T) {
	tests := []struct {
		name   string
		shared map[string]any
		local  map[string]any
		doc    string
		want   SourceName
	}{
		{"shared only", map[string]any{"K": "s"}, nil, `{}`, SourceShared},
		{"local only", nil, map[string]any{"K": "l"}, `{}`, SourceLocal},
		{"document only", nil, nil, `{"K": "d"}`, SourceDocument},
		{"shared wrong type, local right", map[string]any{"K": 1}, map[string]any{"K": "l"}, `{}`, SourceLocal},
		{"shared and local wrong type", map[string]any{"K": true}, map[string]any{"K": []int{1}}, `{"K": "d"}`, SourceDocument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestResolver(t, tt.shared, tt.local, tt.doc)
			res := r.ResolveString("K", "default")
			require.True(t, res.Found)
			assert.Equal(t, tt.want, res.Source)
			assert.NotEqual(t, "default", res.Value)
		})
	}
}

func TestGet_PriorityLaw(t *testing.T) {
	shared := newMockSource(SourceShared).has("EnableBetaFeatures", true)
	local := newMockSource(SourceLocal)
	r := NewFromSources(Sources{Shared: shared, Local: local}, logging.ForTest(t))

	res := r.ResolveBool(KeyEnableBetaFeatures, false)

	assert.True(t, res.Value)
	assert.Equal(t, SourceShared, res.Source)
	// A match in the shared store stops the search.
	local.AssertNotCalled(t, "Lookup", mock.Anything)
	shared.AssertExpectations(t)
}

func TestGet_SharedBeatsLocalRegardlessOfLocalContent(t *testing.T) {
	for _, localValue := range []any{false, true} {
		r := newTestResolver(t,
			map[string]any{"HideSecurityDashboard": true},
			map[string]any{"HideSecurityDashboard": localValue},
			`{"HideSecurityDashboard": false}`)
		assert.True(t, r.ShouldHideSecurityDashboard())
	}
}

func TestGet_TypeMismatchFallsThrough(t *testing.T) {
	shared := newMockSource(SourceShared).has("AutoLogoutTimeInterval", "thirty minutes")
	local := newMockSource(SourceLocal).has("AutoLogoutTimeInterval", 1200)
	r := NewFromSources(Sources{Shared: shared, Local: local}, logging.ForTest(t))

	assert.True(t, r.HasValue(KeyAutoLogoutTimeInterval))
	assert.Equal(t, 1200.0, r.AutoLogoutTimeIntervalSeconds())

	res := r.ResolveNumber(KeyAutoLogoutTimeInterval, 0)
	assert.Equal(t, SourceLocal, res.Source)
}

func TestHasValue_IgnoresType(t *testing.T) {
	r := newTestResolver(t, nil, map[string]any{"EnableSingleSignOn": "yes"}, `{}`)

	assert.True(t, r.HasValue(KeyEnableSingleSignOn))
	assert.False(t, r.IsSingleSignOnEnabled(), "string value must not satisfy a boolean lookup")
	assert.False(t, r.HasValue("NotThere"))
}

func TestHasValue_NullIsAbsent(t *testing.T) {
	r := newTestResolver(t, nil, nil, `{"BrandingName": null}`)

	assert.False(t, r.HasValue(KeyBrandingName))
	assert.Nil(t, r.BrandingName())
}

func TestHasValue_ChecksAllSources(t *testing.T) {
	shared := newMockSource(SourceShared).lacks("X")
	local := newMockSource(SourceLocal).lacks("X")
	r := NewFromSources(Sources{Shared: shared, Local: local}, logging.ForTest(t))

	assert.False(t, r.HasValue("X"))
	shared.AssertCalled(t, "Lookup", "X")
	local.AssertCalled(t, "Lookup", "X")
}

func TestSharedOverDocument(t *testing.T) {
	r := newTestResolver(t,
		map[string]any{"AutoLogoutTimeInterval": 1800},
		nil,
		`{"AutoLogoutTimeInterval": 900}`)

	assert.Equal(t, 1800.0, r.AutoLogoutTimeIntervalSeconds())
	assert.Equal(t, 30*60, int(r.AutoLogoutTimeInterval().Seconds()))
}

func TestDocumentScenario(t *testing.T) {
	r := newTestResolver(t, map[string]any{}, map[string]any{},
		`{"BrandingName": "Acme", "EnableAdvancedFeatures": true}`)

	require.NotNil(t, r.BrandingName())
	assert.Equal(t, "Acme", *r.BrandingName())
	assert.True(t, r.AreAdvancedFeaturesEnabled())
	assert.False(t, r.ShouldHideConnectMenubar())
}

func TestLoadDocumentStore_Idempotent(t *testing.T) {
	r := newTestResolver(t, nil, nil, `{"EnableBetaFeatures": true, "AdditionalCapabilities": ["vpn", "ssh"]}`)

	r.LoadDocumentStore("")
	first := []any{r.AreBetaFeaturesEnabled(), r.AdditionalCapabilities()}
	r.LoadDocumentStore("")
	second := []any{r.AreBetaFeaturesEnabled(), r.AdditionalCapabilities()}

	assert.Equal(t, first, second)
	assert.Equal(t, []string{"vpn", "ssh"}, r.AdditionalCapabilities())
}

func TestLoadDocumentStore_MissingFileKeepsDocument(t *testing.T) {
	r := newTestResolver(t, nil, nil, `{"BrandingName": "Acme"}`)

	missing := filepath.Join(t.TempDir(), "nope.json")
	r.LoadDocumentStore(missing)

	require.NotNil(t, r.BrandingName())
	assert.Equal(t, "Acme", *r.BrandingName())
	assert.True(t, r.SourceAvailability()[SourceDocument])

	err := r.LoadDocumentStoreErr(missing)
	assert.True(t, errors.Is(err, ErrFileNotFound), "got %v", err)
}

func TestLoadDocumentStore_MalformedKeepsDocument(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"top-level array", `[{"BrandingName": "Evil"}]`},
		{"scalar", `"BrandingName"`},
		{"null", `null`},
		{"truncated", `{"BrandingName": "Evil"`},
		{"empty", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestResolver(t, nil, nil, `{"BrandingName": "Acme"}`)

			bad := filepath.Join(t.TempDir(), "bad.json")
			writeFile(t, bad, tt.content)

			r.LoadDocumentStore(bad)
			require.NotNil(t, r.BrandingName())
			assert.Equal(t, "Acme", *r.BrandingName())

			err := r.LoadDocumentStoreErr(bad)
			assert.True(t, errors.Is(err, ErrMalformedDocument), "got %v", err)
		})
	}
}

func TestReload_PicksUpChanges(t *testing.T) {
	r := newTestResolver(t, nil, nil, `{"EnableBetaFeatures": false}`)
	assert.False(t, r.AreBetaFeaturesEnabled())

	writeFile(t, r.DocumentPath(), `{"EnableBetaFeatures": true}`)
	assert.False(t, r.AreBetaFeaturesEnabled(), "document changes are invisible until reload")

	r.Reload()
	assert.True(t, r.AreBetaFeaturesEnabled())
}

func TestReload_RemovedFileKeepsDocument(t *testing.T) {
	r := newTestResolver(t, nil, nil, `{"DisableAnalytics": true}`)
	require.NoError(t, os.Remove(r.DocumentPath()))

	r.Reload()
	assert.True(t, r.IsAnalyticsDisabled())
}

func TestSourceAvailability(t *testing.T) {
	r := newTestResolver(t, nil, nil, "")
	assert.Equal(t, map[SourceName]bool{
		SourceShared:   false,
		SourceLocal:    true,
		SourceDocument: false,
	}, r.SourceAvailability())

	r = newTestResolver(t, map[string]any{}, nil, `{}`)
	assert.Equal(t, map[SourceName]bool{
		SourceShared:   true,
		SourceLocal:    true,
		SourceDocument: true,
	}, r.SourceAvailability())
}

func TestRaw(t *testing.T) {
	r := newTestResolver(t, nil, map[string]any{"Custom": map[string]any{"a": 1}}, `{}`)

	res, err := r.Raw("Custom")
	require.NoError(t, err)
	assert.Equal(t, SourceLocal, res.Source)
	assert.JSONEq(t, `{"a": 1}`, string(res.Value))

	_, err = r.Raw("Absent")
	assert.True(t, errors.Is(err, ErrKeyNotFound))
}

func TestValues(t *testing.T) {
	r := newTestResolver(t,
		map[string]any{"K": 1},
		map[string]any{"K": "two"},
		`{"K": [3]}`)

	got := r.Values("K")
	assert.Equal(t, map[SourceName]json.RawMessage{
		SourceShared:   json.RawMessage(`1`),
		SourceLocal:    json.RawMessage(`"two"`),
		SourceDocument: json.RawMessage(`[3]`),
	}, got)
}

func TestNew_BindsConventionalSources(t *testing.T) {
	root := t.TempDir()
	namespace := "group.test.shared"
	writeFile(t, filepath.Join(root, namespace, SharedFileName), "AutoLogoutTimeInterval: 1800\n")

	localPath := filepath.Join(t.TempDir(), "managed.toml")
	writeFile(t, localPath, "BrandingThemeColor = \"#336699\"\nAutoLogoutTimeInterval = 600\n")

	docPath := filepath.Join(t.TempDir(), "managed-settings.json")
	writeFile(t, docPath, `{"AutoLogoutTimeInterval": 900, "BrandingName": "Acme"}`)

	r := New(Options{
		Namespace:    namespace,
		SharedRoot:   root,
		LocalPath:    localPath,
		DocumentPath: docPath,
		Logger:       logging.ForTest(t),
	})

	assert.Equal(t, map[SourceName]bool{SourceShared: true, SourceLocal: true, SourceDocument: true},
		r.SourceAvailability())
	assert.Equal(t, 1800.0, r.AutoLogoutTimeIntervalSeconds())
	require.NotNil(t, r.BrandingThemeColor())
	assert.Equal(t, "#336699", *r.BrandingThemeColor())
	require.NotNil(t, r.BrandingName())
	assert.Equal(t, "Acme", *r.BrandingName())
}

func TestNew_SharedBindFailureIsPermanent(t *testing.T) {
	root := t.TempDir()
	namespace := "group.late"

	r := New(Options{
		Namespace:    namespace,
		SharedRoot:   root,
		LocalPath:    filepath.Join(t.TempDir(), "managed.toml"),
		DocumentPath: filepath.Join(t.TempDir(), "absent.json"),
		Logger:       logging.ForTest(t),
	})
	assert.False(t, r.SourceAvailability()[SourceShared])
	assert.Nil(t, r.Shared())

	// Provisioning the namespace later does not bind it.
	writeFile(t, filepath.Join(root, namespace, SharedFileName), "DisableSentryLogging: true\n")
	r.Reload()
	assert.False(t, r.SourceAvailability()[SourceShared])
	assert.False(t, r.IsSentryLoggingDisabled())
	assert.False(t, r.SourceAvailability()[SourceDocument])
}

func TestOptions_WithDefaults(t *testing.T) {
	opts := Options{LocalPath: "/tmp/managed.toml"}.WithDefaults()

	assert.Equal(t, DefaultNamespace, opts.Namespace)
	assert.Equal(t, "/tmp/managed.toml", opts.LocalPath)
	assert.NotEmpty(t, opts.SharedRoot)
	assert.NotEmpty(t, opts.DocumentPath)
	assert.NotNil(t, opts.Logger)
}
