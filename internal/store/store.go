package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/utafrali/LocalBizGo/pkg/database"
	apperrors "github.com/utafrali/LocalBizGo/pkg/errors"
)

// Collection names used by the repositories.
const (
	Categories = "categories"
	Businesses = "businesses"
	Reviews    = "reviews"
	Users      = "users"
)

var (
	// ErrNotExist is returned by a Backend when the named collection has never
	// been saved.
	ErrNotExist = errors.New("collection does not exist")

	// ErrCorrupt marks a collection whose document is not a JSON array of records.
	ErrCorrupt = errors.New("corrupt collection")

	// ErrSkipWrite may be returned by a Mutate callback to finish the cycle
	// without saving. Mutate then returns nil.
	ErrSkipWrite = errors.New("skip write")
)

// Backend persists one document per named collection. Save always replaces
// the whole document.
type Backend interface {
	Load(ctx context.Context, collection string) ([]byte, error)
	Save(ctx context.Context, collection string, data []byte) error
	Close() error
}

// Locker is implemented by backends shared between processes. Mutate and
// Replace hold the backend lock for the collection, inside the in-process
// mutex, until the write is done. unlock must be called exactly once.
type Locker interface {
	Lock(ctx context.Context, collection string) (unlock func(context.Context) error, err error)
}

// Pinger is implemented by backends that can report their health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Store serializes access to the collections of a Backend. Every handle for
// the same collection name shares one mutex, held for the duration of each
// load or read-modify-write cycle.
type Store struct {
	backend Backend
	driver  string
	logger  *slog.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates a Store over backend. driver names the backend in logs, spans
// and metrics.
func New(driver string, backend Backend, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		backend: backend,
		driver:  driver,
		logger:  logger,
		locks:   make(map[string]*sync.Mutex),
	}
}

// Driver returns the backend name the store was created with.
func (s *Store) Driver() string {
	return s.driver
}

// Ping checks the backend when it supports health checks.
func (s *Store) Ping(ctx context.Context) error {
	if p, ok := s.backend.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

// Close closes the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

func (s *Store) lock(collection string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.locks[collection]
	if !ok {
		l = &sync.Mutex{}
		s.locks[collection] = l
	}
	return l
}

func (s *Store) load(ctx context.Context, collection string) (data []byte, err error) {
	ctx, end := database.TraceQuery(ctx, s.driver, "load", collection)
	start := time.Now()
	defer func() {
		observe(s.driver, collection, "load", start, err)
		end(err)
	}()

	data, err = s.backend.Load(ctx, collection)
	if errors.Is(err, ErrNotExist) {
		s.logger.InfoContext(ctx, "initializing empty collection",
			slog.String("collection", collection),
			slog.String("driver", s.driver),
		)
		data = []byte("[]")
		if err = s.save(ctx, collection, data); err != nil {
			return nil, fmt.Errorf("initialize %s: %w", collection, err)
		}
		return data, nil
	}
	if err != nil {
		return nil, apperrors.StorageUnavailable(fmt.Errorf("load %s: %w", collection, err))
	}
	return data, nil
}

func (s *Store) save(ctx context.Context, collection string, data []byte) (err error) {
	ctx, end := database.TraceQuery(ctx, s.driver, "save", collection)
	start := time.Now()
	defer func() {
		observe(s.driver, collection, "save", start, err)
		end(err)
	}()

	if err = s.backend.Save(ctx, collection, data); err != nil {
		return apperrors.StorageUnavailable(fmt.Errorf("save %s: %w", collection, err))
	}
	return nil
}

// lockBackend takes the backend's cross-process lock when it has one. The
// returned release never fails the operation; a failed unlock is logged and
// left to the backend's own expiry.
func (s *Store) lockBackend(ctx context.Context, collection string) (func(), error) {
	locker, ok := s.backend.(Locker)
	if !ok {
		return func() {}, nil
	}
	unlock, err := locker.Lock(ctx, collection)
	if err != nil {
		return nil, apperrors.StorageUnavailable(fmt.Errorf("lock %s: %w", collection, err))
	}
	return func() {
		if err := unlock(context.WithoutCancel(ctx)); err != nil {
			s.logger.WarnContext(ctx, "failed to release collection lock",
				slog.String("collection", collection),
				slog.String("driver", s.driver),
				slog.String("error", err.Error()),
			)
		}
	}, nil
}

// Collection is a typed handle on one named collection.
type Collection[T any] struct {
	store *Store
	name  string
}

// Open returns a handle on the named collection. Handles are cheap and share
// the store's per-collection lock.
func Open[T any](s *Store, name string) *Collection[T] {
	return &Collection[T]{store: s, name: name}
}

// Name returns the collection name.
func (c *Collection[T]) Name() string {
	return c.name
}

// List loads the whole collection in stored order.
func (c *Collection[T]) List(ctx context.Context) ([]T, error) {
	l := c.store.lock(c.name)
	l.Lock()
	defer l.Unlock()

	return c.read(ctx)
}

// Replace overwrites the collection with items.
func (c *Collection[T]) Replace(ctx context.Context, items []T) error {
	l := c.store.lock(c.name)
	l.Lock()
	defer l.Unlock()

	release, err := c.store.lockBackend(ctx, c.name)
	if err != nil {
		return err
	}
	defer release()

	return c.write(ctx, items)
}

// Mutate loads the collection, passes it to fn and saves what fn returns.
// The collection lock, and the backend lock when there is one, is held
// throughout. If fn returns an error nothing is
// saved; ErrSkipWrite is swallowed, any other error is returned as is.
func (c *Collection[T]) Mutate(ctx context.Context, fn func(items []T) ([]T, error)) error {
	l := c.store.lock(c.name)
	l.Lock()
	defer l.Unlock()

	release, err := c.store.lockBackend(ctx, c.name)
	if err != nil {
		return err
	}
	defer release()

	items, err := c.read(ctx)
	if err != nil {
		return err
	}

	next, err := fn(items)
	if errors.Is(err, ErrSkipWrite) {
		return nil
	}
	if err != nil {
		return err
	}
	return c.write(ctx, next)
}

func (c *Collection[T]) read(ctx context.Context) ([]T, error) {
	data, err := c.store.load(ctx, c.name)
	if err != nil {
		return nil, err
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, apperrors.StorageUnavailable(fmt.Errorf("%w %s: %v", ErrCorrupt, c.name, err))
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (c *Collection[T]) write(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := Encode(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.name, err)
	}
	return c.store.save(ctx, c.name, data)
}

// Encode renders records the way every backend stores them: a JSON array
// indented with two spaces.
func Encode[T any](items []T) ([]byte, error) {
	return json.MarshalIndent(items, "", "  ")
}
