package refresh

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/swapcell-dev/swapcell"
)

// DefaultInterval is the polling interval used when WithInterval is not
// given.
const DefaultInterval = 30 * time.Second

// Refresher polls a Source and swaps decoded values into a cell. Readers
// of the cell keep their snapshots across swaps; a failed fetch or decode
// leaves the current value in place.
type Refresher[T any] struct {
	cell   *swapcell.Cell[T]
	source Source
	decode func([]byte) (T, error)

	interval time.Duration
	logger   *slog.Logger
	onSwap   func(T)

	// version of the last successful fetch; only the Run/RefreshNow
	// goroutine touches it.
	version string
}

// Option configures a Refresher.
type Option[T any] func(*Refresher[T])

// WithInterval sets the polling interval.
func WithInterval[T any](d time.Duration) Option[T] {
	return func(r *Refresher[T]) {
		r.interval = d
	}
}

// WithLogger sets the logger. Defaults to slog.Default.
func WithLogger[T any](logger *slog.Logger) Option[T] {
	return func(r *Refresher[T]) {
		r.logger = logger
	}
}

// WithOnSwap registers a callback invoked after each successful swap with
// the newly installed value.
func WithOnSwap[T any](fn func(T)) Option[T] {
	return func(r *Refresher[T]) {
		r.onSwap = fn
	}
}

// New creates a refresher feeding cell from source. decode turns fetched
// bytes into a value of T; returning an error rejects the fetch and keeps
// the current value.
func New[T any](cell *swapcell.Cell[T], source Source, decode func([]byte) (T, error), opts ...Option[T]) *Refresher[T] {
	r := &Refresher[T]{
		cell:     cell,
		source:   source,
		decode:   decode,
		interval: DefaultInterval,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run polls until ctx is cancelled, performing one refresh immediately and
// then one per interval. Fetch and decode failures are logged and do not
// stop the loop. Returns ctx.Err.
func (r *Refresher[T]) Run(ctx context.Context) error {
	if err := r.RefreshNow(ctx); err != nil && !errors.Is(err, context.Canceled) {
		r.logger.Warn("refresh failed", "err", err)
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := r.RefreshNow(ctx); err != nil && !errors.Is(err, context.Canceled) {
				r.logger.Warn("refresh failed", "err", err)
			}
		}
	}
}

// RefreshNow performs a single fetch/decode/swap cycle. An unchanged
// source is a successful no-op.
func (r *Refresher[T]) RefreshNow(ctx context.Context) error {
	data, version, err := r.source.Fetch(ctx, r.version)
	if errors.Is(err, ErrNotModified) {
		return nil
	}
	if err != nil {
		return err
	}

	value, err := r.decode(data)
	if err != nil {
		return fmt.Errorf("refresh: decode: %w", err)
	}

	g := r.cell.Mutate()
	g.Set(value)
	g.Commit()
	r.version = version

	r.logger.Debug("refreshed cell", "version", version)
	if r.onSwap != nil {
		r.onSwap(value)
	}
	return nil
}
