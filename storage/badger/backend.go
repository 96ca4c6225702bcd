package badger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"

	"github.com/poiesic/prodir/storage"
)

// Store wraps a BadgerDB instance and implements storage.KeyValue.
type Store struct {
	db     *badger.DB
	logger *slog.Logger
}

var _ storage.KeyValue = (*Store)(nil)

// badgerLoggerAdapter adapts slog.Logger to badger.Logger interface.
type badgerLoggerAdapter struct {
	logger *slog.Logger
}

var _ badger.Logger = (*badgerLoggerAdapter)(nil)

func (bl *badgerLoggerAdapter) Errorf(msg string, items ...any) {
	bl.logger.Error(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Warningf(msg string, items ...any) {
	bl.logger.Warn(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Infof(msg string, items ...any) {
	bl.logger.Info(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Debugf(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

// NewStore opens a BadgerDB-backed key-value store at the specified path.
// Creates the directory if it doesn't exist.
func NewStore(filePath string) (storage.KeyValue, error) {
	return open(filePath, false)
}

func open(filePath string, inMemory bool) (*Store, error) {
	var opts badger.Options

	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		// Ensure directory exists
		info, err := os.Stat(filePath)
		if err != nil {
			if os.IsNotExist(err) {
				if err := os.MkdirAll(filePath, 0755); err != nil {
					return nil, err
				}
				info, err = os.Stat(filePath)
				if err != nil {
					return nil, err
				}
			} else {
				return nil, err
			}
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%s is not a directory", filePath)
		}
		opts = badger.DefaultOptions(filePath)
	}

	opts.Logger = &badgerLoggerAdapter{logger: slog.Default()}
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Store{
		db:     db,
		logger: slog.Default(),
	}, nil
}

// Close closes the BadgerDB database.
func (s *Store) Close() error {
	return s.db.Close()
}

// IsClosed returns true if the database is closed.
func (s *Store) IsClosed() bool {
	return s.db.IsClosed()
}

// withTx executes a function within a BadgerDB transaction.
// The transaction is discarded if fn returns an error.
func (s *Store) withTx(fn func(tx *badger.Txn) error, isWrite bool) error {
	if s.db.IsClosed() {
		return storage.ErrStorageClosed
	}
	tx := s.db.NewTransaction(isWrite)
	defer tx.Discard()
	return fn(tx)
}

// Get reads the value stored under key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	found := false

	err := s.withTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeStateKey(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		if err != nil {
			return err
		}
		found = true
		return nil
	}, false)
	if err != nil {
		return nil, false, err
	}

	return value, found, nil
}

// Set writes value under key, replacing any previous value.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	return s.withTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeStateKey(key), value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Remove deletes key. Removing an absent key is not an error.
func (s *Store) Remove(ctx context.Context, key string) error {
	return s.withTx(func(tx *badger.Txn) error {
		if err := tx.Delete(makeStateKey(key)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Update atomically applies fn to the current value of key and stores the
// result within a single transaction. fn receives nil when the key is absent.
func (s *Store) Update(ctx context.Context, key string, fn func(current []byte) ([]byte, error)) error {
	return s.withTx(func(tx *badger.Txn) error {
		var current []byte

		item, err := tx.Get(makeStateKey(key))
		if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		if err == nil {
			current, err = item.ValueCopy(nil)
			if err != nil {
				return err
			}
		}

		next, err := fn(current)
		if err != nil {
			return err
		}

		if err := tx.Set(makeStateKey(key), next); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}
