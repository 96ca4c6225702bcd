package analytics

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/poiesic/prodir/core"
	"github.com/poiesic/prodir/storage"
)

// maxHistory bounds the stored search history. Oldest entries are evicted.
const maxHistory = 50

// History is the bounded, newest-first record of past searches, kept
// separately from the ledger so it can be shown and cleared on its own.
type History struct {
	kv     storage.KeyValue
	logger *slog.Logger

	mu      sync.Mutex
	entries []core.HistoryEntry
}

// NewHistory creates a search history backed by the given store.
func NewHistory(kv storage.KeyValue, logger *slog.Logger) (*History, error) {
	if kv == nil {
		return nil, ErrStoreRequired
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &History{kv: kv, logger: logger}, nil
}

// Load initializes the history from the store. An absent key yields an
// empty history.
func (h *History) Load(ctx context.Context) error {
	var entries []core.HistoryEntry
	if _, err := storage.ReadJSON(ctx, h.kv, storage.KeySearchHistory, &entries); err != nil {
		return err
	}

	h.mu.Lock()
	h.entries = entries
	h.mu.Unlock()
	return nil
}

// Add prepends an entry, stamping the timestamp if unset. Persistence is
// best-effort.
func (h *History) Add(ctx context.Context, entry core.HistoryEntry) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = append([]core.HistoryEntry{entry}, h.entries...)
	if len(h.entries) > maxHistory {
		h.entries = h.entries[:maxHistory]
	}
	if err := storage.WriteJSON(ctx, h.kv, storage.KeySearchHistory, h.entries); err != nil {
		h.logger.Warn("error persisting search history", "err", err)
	}
	return nil
}

// Entries returns a copy of the history, newest first.
func (h *History) Entries() []core.HistoryEntry {
	h.mu.Lock()
	defer h.mu.Unlock()

	entries := make([]core.HistoryEntry, len(h.entries))
	copy(entries, h.entries)
	return entries
}

// Clear removes all history entries in memory and in the store.
func (h *History) Clear(ctx context.Context) error {
	h.mu.Lock()
	h.entries = nil
	h.mu.Unlock()
	return h.kv.Remove(ctx, storage.KeySearchHistory)
}
