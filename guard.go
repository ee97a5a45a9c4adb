package swapcell

import "fmt"

// Guard is a writer's private working copy of a cell's value.
//
// A Guard is created by Cell.Mutate and is exclusively owned by the caller:
// nothing outside the guard can observe its contents until it commits, and
// readers of the cell keep seeing the pre-mutation version while the guard
// is active.
//
// A guard resolves exactly once, by Commit or by Discard. Using a guard
// after it has resolved is a programming error and panics, in the same
// spirit as unlocking an unlocked sync.Mutex. Prefer Cell.Update when the
// write fits in one function; it cannot be misused.
//
// A Guard must not be shared between goroutines.
type Guard[T any] struct {
	cell *Cell[T]

	// val is the working copy. nil marks the guard resolved.
	val *T
}

// Value returns the working copy for reading and mutation. The pointer is
// only valid until the guard resolves.
func (g *Guard[T]) Value() *T {
	if g.val == nil {
		panic("swapcell: Value on resolved Guard")
	}
	return g.val
}

// Set replaces the working copy wholesale.
func (g *Guard[T]) Set(v T) {
	if g.val == nil {
		panic("swapcell: Set on resolved Guard")
	}
	*g.val = v
}

// Commit installs the working copy as the cell's new reference version and
// resolves the guard. The store is atomic and unconditional: if another
// guard committed in the meantime, its version is replaced outright and
// that update is lost. This is the documented contract, not an error, and
// nothing is reported when it happens.
func (g *Guard[T]) Commit() {
	if g.val == nil {
		panic("swapcell: Commit on resolved Guard")
	}
	val := g.val
	g.val = nil
	g.cell.commit(val)
}

// Discard resolves the guard without writing anything back. The cell is
// left exactly as if the guard had never existed.
func (g *Guard[T]) Discard() {
	if g.val == nil {
		panic("swapcell: Discard on resolved Guard")
	}
	g.val = nil
	for _, o := range g.cell.observers {
		o.ObserveDiscard()
	}
}

// Active reports whether the guard has not yet resolved.
func (g *Guard[T]) Active() bool {
	return g.val != nil
}

// String formats the working copy. Panics if the guard has resolved.
func (g *Guard[T]) String() string {
	if g.val == nil {
		panic("swapcell: String on resolved Guard")
	}
	return fmt.Sprint(*g.val)
}
