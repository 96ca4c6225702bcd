package badger

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/prodir/storage"
)

func TestStore_GetSetRemove(t *testing.T) {
	store, err := NewMemoryStore()
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()

	t.Run("absent key is not an error", func(t *testing.T) {
		value, found, err := store.Get(ctx, storage.KeyCompaniesCache)
		require.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, value)
	})

	t.Run("set then get roundtrip", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, storage.KeyCompaniesCache, []byte(`{"companies":[]}`)))

		value, found, err := store.Get(ctx, storage.KeyCompaniesCache)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, []byte(`{"companies":[]}`), value)
	})

	t.Run("set replaces previous value", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, storage.KeyUserPreferences, []byte(`{"theme":"light"}`)))
		require.NoError(t, store.Set(ctx, storage.KeyUserPreferences, []byte(`{"theme":"dark"}`)))

		value, found, err := store.Get(ctx, storage.KeyUserPreferences)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, []byte(`{"theme":"dark"}`), value)
	})

	t.Run("remove deletes the key", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, storage.KeySearchHistory, []byte(`[]`)))
		require.NoError(t, store.Remove(ctx, storage.KeySearchHistory))

		_, found, err := store.Get(ctx, storage.KeySearchHistory)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("remove of absent key is not an error", func(t *testing.T) {
		assert.NoError(t, store.Remove(ctx, "never-written"))
	})
}

func TestStore_Update(t *testing.T) {
	store, err := NewMemoryStore()
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()

	t.Run("fn receives nil for absent key", func(t *testing.T) {
		err := store.Update(ctx, "counter", func(current []byte) ([]byte, error) {
			assert.Nil(t, current)
			return []byte("1"), nil
		})
		require.NoError(t, err)

		value, found, err := store.Get(ctx, "counter")
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, []byte("1"), value)
	})

	t.Run("fn receives current value", func(t *testing.T) {
		err := store.Update(ctx, "counter", func(current []byte) ([]byte, error) {
			assert.Equal(t, []byte("1"), current)
			return []byte("2"), nil
		})
		require.NoError(t, err)
	})

	t.Run("fn error aborts the write", func(t *testing.T) {
		wantErr := assert.AnError
		err := store.Update(ctx, "counter", func(current []byte) ([]byte, error) {
			return nil, wantErr
		})
		assert.ErrorIs(t, err, wantErr)

		value, _, err := store.Get(ctx, "counter")
		require.NoError(t, err)
		assert.Equal(t, []byte("2"), value)
	})
}

func TestStore_ConcurrentUpdates(t *testing.T) {
	store, err := NewMemoryStore()
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "list", []byte(``)))

	// Serialized from the callers' side, which is how the services above the
	// store use Update: each logical turn finishes its read-modify-write
	// before the next begins.
	var mu sync.Mutex
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			mu.Lock()
			defer mu.Unlock()
			err := store.Update(ctx, "list", func(current []byte) ([]byte, error) {
				return append(current, 'x'), nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	value, found, err := store.Get(ctx, "list")
	require.NoError(t, err)
	require.True(t, found)
	assert.Len(t, value, 10)
}

func TestReadWriteJSON(t *testing.T) {
	store, err := NewMemoryStore()
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()

	type prefs struct {
		Theme string `json:"theme"`
	}

	var out prefs
	found, err := storage.ReadJSON(ctx, store, storage.KeyUserPreferences, &out)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, storage.WriteJSON(ctx, store, storage.KeyUserPreferences, prefs{Theme: "dark"}))

	found, err = storage.ReadJSON(ctx, store, storage.KeyUserPreferences, &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "dark", out.Theme)
}

func TestReadJSON_Corrupt(t *testing.T) {
	store, err := NewMemoryStore()
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.Set(ctx, storage.KeyAnalyticsLedger, []byte(`{not json`)))

	var out map[string]any
	_, err = storage.ReadJSON(ctx, store, storage.KeyAnalyticsLedger, &out)
	assert.ErrorIs(t, err, storage.ErrSerializationFailed)
}
