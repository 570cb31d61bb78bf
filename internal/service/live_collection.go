package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/portfolio/internal/backend"
	"github.com/portfolio/internal/realtime"
	"go.uber.org/zap"
)

const refetchTimeout = 15 * time.Second

// LiveCollection keeps a mapped snapshot of one table in sync with the backend. Every
// mutation and every change notification triggers a full refetch; there is no optimistic
// patching and concurrent refetches are not coalesced, so the last one to finish wins.
type LiveCollection[R any, V any] struct {
	repo     backend.Repository[R]
	hub      *realtime.Hub
	table    string
	query    backend.Query
	mapRow   func(R) V
	notFound error
	logger   *zap.Logger

	mu          sync.RWMutex
	items       []V
	loaded      bool
	refetches   int
	baseCtx     context.Context
	unsubscribe func()
}

// CollectionOptions configures a LiveCollection.
type CollectionOptions[R any, V any] struct {
	Repo     backend.Repository[R]
	Hub      *realtime.Hub
	Table    string
	Query    backend.Query
	Map      func(R) V
	NotFound error
	Logger   *zap.Logger
}

func NewLiveCollection[R any, V any](opts CollectionOptions[R, V]) *LiveCollection[R, V] {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	notFound := opts.NotFound
	if notFound == nil {
		notFound = backend.ErrNotFound
	}
	return &LiveCollection[R, V]{
		repo:     opts.Repo,
		hub:      opts.Hub,
		table:    opts.Table,
		query:    opts.Query,
		mapRow:   opts.Map,
		notFound: notFound,
		logger:   logger.With(zap.String("table", opts.Table)),
		items:    []V{},
	}
}

// Start performs the initial read and subscribes to change notifications for the table.
// Calling Start twice only refetches.
func (c *LiveCollection[R, V]) Start(ctx context.Context) {
	c.mu.Lock()
	alreadyStarted := c.unsubscribe != nil
	if !alreadyStarted {
		c.baseCtx = context.WithoutCancel(ctx)
	}
	c.mu.Unlock()

	c.Refetch(ctx)

	if alreadyStarted || c.hub == nil {
		return
	}
	unsubscribe := c.hub.Subscribe(c.table, c.handleChange)
	c.mu.Lock()
	c.unsubscribe = unsubscribe
	c.mu.Unlock()
}

// Stop drops the change subscription.
func (c *LiveCollection[R, V]) Stop() {
	c.mu.Lock()
	unsubscribe := c.unsubscribe
	c.unsubscribe = nil
	c.mu.Unlock()
	if unsubscribe != nil {
		unsubscribe()
	}
}

func (c *LiveCollection[R, V]) handleChange(event realtime.Event) {
	c.mu.RLock()
	base := c.baseCtx
	c.mu.RUnlock()
	if base == nil {
		base = context.Background()
	}
	ctx, cancel := context.WithTimeout(base, refetchTimeout)
	defer cancel()

	c.logger.Debug("change notification, refetching",
		zap.String("type", string(event.Type)),
		zap.String("record_id", event.RecordID),
	)
	c.Refetch(ctx)
}

// Load reads every row in order and replaces the snapshot. A failed read empties the
// snapshot and returns the error.
func (c *LiveCollection[R, V]) Load(ctx context.Context) ([]V, error) {
	rows, err := c.repo.List(ctx, c.query)
	items := make([]V, 0, len(rows))
	if err == nil {
		for _, row := range rows {
			items = append(items, c.mapRow(row))
		}
	}

	c.mu.Lock()
	c.items = items
	c.loaded = true
	c.refetches++
	c.mu.Unlock()

	if err != nil {
		return c.copyItems(items), fmt.Errorf("list %s: %w", c.table, err)
	}
	return c.copyItems(items), nil
}

// Refetch is Load with read failures logged and degraded to an empty list.
func (c *LiveCollection[R, V]) Refetch(ctx context.Context) []V {
	items, err := c.Load(ctx)
	if err != nil {
		if errors.Is(err, backend.ErrUnconfigured) {
			c.logger.Debug("backend not configured, serving empty list")
		} else {
			c.logger.Warn("fetch failed, serving empty list", zap.Error(err))
		}
	}
	return items
}

// List returns the current snapshot, loading it on first use.
func (c *LiveCollection[R, V]) List(ctx context.Context) []V {
	c.mu.RLock()
	loaded := c.loaded
	items := c.items
	c.mu.RUnlock()
	if !loaded {
		return c.Refetch(ctx)
	}
	return c.copyItems(items)
}

// Refetches counts completed reads.
func (c *LiveCollection[R, V]) Refetches() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.refetches
}

// Row reads a single row straight from the backend.
func (c *LiveCollection[R, V]) Row(ctx context.Context, id string) (R, error) {
	row, err := c.repo.Get(ctx, id)
	if err != nil {
		return row, c.wrap(err)
	}
	return row, nil
}

// Create inserts row and refetches the table.
func (c *LiveCollection[R, V]) Create(ctx context.Context, row R) (R, error) {
	stored, err := c.repo.Insert(ctx, row)
	if err != nil {
		return stored, c.wrap(err)
	}
	c.Refetch(ctx)
	return stored, nil
}

// Update replaces the row with id and refetches the table.
func (c *LiveCollection[R, V]) Update(ctx context.Context, id string, row R) (R, error) {
	stored, err := c.repo.Update(ctx, id, row)
	if err != nil {
		return stored, c.wrap(err)
	}
	c.Refetch(ctx)
	return stored, nil
}

// Delete removes the row with id and refetches the table.
func (c *LiveCollection[R, V]) Delete(ctx context.Context, id string) error {
	if err := c.repo.Delete(ctx, id); err != nil {
		return c.wrap(err)
	}
	c.Refetch(ctx)
	return nil
}

func (c *LiveCollection[R, V]) wrap(err error) error {
	if errors.Is(err, backend.ErrNotFound) && !errors.Is(err, c.notFound) {
		return fmt.Errorf("%w: %w", c.notFound, err)
	}
	return err
}

func (c *LiveCollection[R, V]) copyItems(items []V) []V {
	out := make([]V, len(items))
	copy(out, items)
	return out
}
