package swapcell

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Cloner is implemented by types that know how to produce an independent
// deep copy of themselves. When T implements Cloner[T] and no WithCloneFunc
// option is given, Mutate uses Clone to build the guard's working copy.
type Cloner[T any] interface {
	Clone() T
}

// Cell is a shared container for a value of type T.
//
// A *Cell is the handle to the container: every goroutine holding the same
// pointer observes the same sequence of committed values. Copying the
// pointer is the O(1) duplication operation; the data itself is never
// copied by sharing a cell.
//
// The zero Cell is valid and holds the zero value of T. Cells with a
// custom clone function or observers must be created with New.
//
// A Cell must not be copied by value after first use.
type Cell[T any] struct {
	// cur points at the current reference version. It is the only shared
	// mutable state; readers load it, commits store it. There is no
	// compare-and-swap on the write path: commits are unconditional,
	// last writer wins.
	cur atomic.Pointer[T]

	// clone overrides the working-copy strategy when non-nil.
	clone func(T) T

	// observers receive lifecycle events. Fixed at construction time, so
	// reading the slice concurrently is safe.
	observers []Observer
}

// Option configures a Cell at construction time.
type Option[T any] func(*Cell[T])

// WithCloneFunc sets the function used to copy the current value into a
// guard's private buffer. Required for types whose value copy would share
// reference fields (maps, slices, pointers) unless T implements Cloner[T].
func WithCloneFunc[T any](fn func(T) T) Option[T] {
	return func(c *Cell[T]) {
		c.clone = fn
	}
}

// WithObserver attaches an observer to the cell. Multiple observers may be
// attached; they are notified in registration order.
func WithObserver[T any](o Observer) Option[T] {
	return func(c *Cell[T]) {
		if o != nil {
			c.observers = append(c.observers, o)
		}
	}
}

// New creates a cell whose first reference version is initial.
func New[T any](initial T, opts ...Option[T]) *Cell[T] {
	c := &Cell[T]{}
	for _, opt := range opts {
		opt(c)
	}
	c.cur.Store(&initial)
	return c
}

// Access returns the current snapshot of the cell.
//
// The returned pointer is owned by the caller in the sense that the value
// it points at never changes: later commits install fresh versions without
// touching old ones. Snapshots may be held for any length of time and
// passed freely between goroutines. Callers must not mutate the pointee;
// it is shared with every other reader of the same version.
//
// Access is wait-free: one atomic load, no lock, no copy. Two calls with
// no intervening commit return the identical pointer.
func (c *Cell[T]) Access() *T {
	p := c.snapshot()
	for _, o := range c.observers {
		o.ObserveAccess()
	}
	return p
}

// Mutate clones the current value into a private working copy and returns
// an active guard over it. This is the expensive path: cost is one full
// clone of T.
//
// Any number of guards may be active at once, each seeded from whatever
// version was current at its own creation. Guards do not coordinate; see
// the package documentation for the last-writer-wins consequences.
func (c *Cell[T]) Mutate() *Guard[T] {
	cur := c.snapshot()
	start := time.Now()
	val := c.cloneValue(*cur)
	d := time.Since(start)
	for _, o := range c.observers {
		o.ObserveMutate(d)
	}
	return &Guard[T]{cell: c, val: &val}
}

// Update runs fn against a private working copy of the current value and
// commits the copy when fn returns. The commit is deferred, so it happens
// exactly once on every exit path, including a panic unwinding out of fn;
// this mirrors Mutate followed by a guaranteed Commit and is the
// misuse-proof way to write the cell.
func (c *Cell[T]) Update(fn func(*T)) {
	g := c.Mutate()
	defer g.Commit()
	fn(g.val)
}

// String formats the current value.
func (c *Cell[T]) String() string {
	return fmt.Sprint(*c.snapshot())
}

// snapshot loads the current version without notifying observers,
// installing the zero value first if the cell has never been written.
func (c *Cell[T]) snapshot() *T {
	p := c.cur.Load()
	if p == nil {
		// Lazy init for zero-value cells. The CompareAndSwap makes the
		// zero version unique: losing the race means someone else
		// installed a version and the reload sees it.
		c.cur.CompareAndSwap(nil, new(T))
		p = c.cur.Load()
	}
	return p
}

// cloneValue builds an independent copy of v for a guard.
func (c *Cell[T]) cloneValue(v T) T {
	if c.clone != nil {
		return c.clone(v)
	}
	if cl, ok := any(v).(Cloner[T]); ok {
		return cl.Clone()
	}
	return v
}

// commit installs val as the new reference version. Unconditional by
// contract: there is no retry against versions committed since the guard
// was created.
func (c *Cell[T]) commit(val *T) {
	c.cur.Store(val)
	for _, o := range c.observers {
		o.ObserveCommit()
	}
}
