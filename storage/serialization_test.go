package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/prodir/core"
)

// mapStore is a minimal in-memory KeyValue for exercising the helpers
// without a real backend.
type mapStore struct {
	data map[string][]byte
}

var _ KeyValue = (*mapStore)(nil)

func newMapStore() *mapStore {
	return &mapStore{data: make(map[string][]byte)}
}

func (m *mapStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, found := m.data[key]
	return value, found, nil
}

func (m *mapStore) Set(ctx context.Context, key string, value []byte) error {
	m.data[key] = value
	return nil
}

func (m *mapStore) Remove(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func (m *mapStore) Update(ctx context.Context, key string, fn func(current []byte) ([]byte, error)) error {
	next, err := fn(m.data[key])
	if err != nil {
		return err
	}
	m.data[key] = next
	return nil
}

func (m *mapStore) Close() error {
	return nil
}

func TestMarshalUnmarshal(t *testing.T) {
	tests := []struct {
		name  string
		value any
	}{
		{"empty filter set", core.NewFilterSet()},
		{"ledger with counters", &core.Ledger{ParameterSuccess: map[string]int{"welding": 3}}},
		{"preferences", &core.Preferences{Theme: "dark", DefaultLocation: "Odense"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := Marshal(tt.value)
			require.NoError(t, err)
			require.NotEmpty(t, data)

			require.NoError(t, Unmarshal(data, tt.value))
		})
	}
}

func TestMarshal_Invalid(t *testing.T) {
	// Channels have no JSON representation.
	_, err := Marshal(make(chan int))
	assert.ErrorIs(t, err, ErrSerializationFailed)
}

func TestUnmarshal_Invalid(t *testing.T) {
	var prefs core.Preferences
	err := Unmarshal([]byte("{not json"), &prefs)
	assert.ErrorIs(t, err, ErrSerializationFailed)
}

func TestReadWriteJSON(t *testing.T) {
	ctx := context.Background()

	t.Run("roundtrip", func(t *testing.T) {
		kv := newMapStore()

		saved := &core.Preferences{Theme: "dark"}
		require.NoError(t, WriteJSON(ctx, kv, KeyUserPreferences, saved))

		var loaded core.Preferences
		found, err := ReadJSON(ctx, kv, KeyUserPreferences, &loaded)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "dark", loaded.Theme)
	})

	t.Run("absent key is not an error", func(t *testing.T) {
		kv := newMapStore()

		var loaded core.Preferences
		found, err := ReadJSON(ctx, kv, KeyUserPreferences, &loaded)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("corrupt stored value surfaces as serialization failure", func(t *testing.T) {
		kv := newMapStore()
		require.NoError(t, kv.Set(ctx, KeyUserPreferences, []byte("{not json")))

		var loaded core.Preferences
		_, err := ReadJSON(ctx, kv, KeyUserPreferences, &loaded)
		assert.ErrorIs(t, err, ErrSerializationFailed)
	})
}
