package resolver

import (
	"encoding/json"

	"github.com/stretchr/testify/mock"
)

// mockSource implements Source with testify expectations.
type mockSource struct {
	mock.Mock
	name SourceName
}

func newMockSource(name SourceName) *mockSource {
	return &mockSource{name: name}
}

func (m *mockSource) Name() SourceName { return m.name }

func (m *mockSource) Lookup(key string) (json.RawMessage, bool) {
	args := m.Called(key)
	raw, _ := args.Get(0).(json.RawMessage)
	return raw, args.Bool(1)
}

// has stubs key to return the JSON encoding of v.
func (m *mockSource) has(key string, v any) *mockSource {
	raw, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	m.On("Lookup", key).Return(json.RawMessage(raw), true)
	return m
}

// lacks stubs key as absent.
func (m *mockSource) lacks(key string) *mockSource {
	m.On("Lookup", key).Return(nil, false)
	return m
}

// mapSource is a plain in-memory Source.
type mapSource struct {
	name   SourceName
	values map[string]any
}

func (s mapSource) Name() SourceName { return s.name }

func (s mapSource) Lookup(key string) (json.RawMessage, bool) {
	v, ok := s.values[key]
	if !ok || v == nil {
		return nil, false
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, false
	}
	return raw, true
}
