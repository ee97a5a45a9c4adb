// Package swapcell provides a synchronisation cell that hands out owned,
// immutable snapshots of shared data.
//
// A Cell stores a reference version of a value. Readers call Access to get
// the current snapshot: an owned pointer that never changes, no matter how
// the cell evolves afterwards. Writers call Mutate to get a Guard holding a
// private clone of the current value; committing the guard atomically
// installs the clone as the new reference version.
//
// # Core Types
//
// Cell[T] is the shared container. A *Cell is the handle: copying the
// pointer shares the cell, it never copies the data.
//
//	cell := swapcell.New(Config{Port: 80})
//	snap := cell.Access()   // read (lock-free, owned snapshot)
//	g := cell.Mutate()      // write (clones the current value)
//	g.Value().Port = 8080
//	g.Commit()              // installs the clone atomically
//
// The closure form guarantees the writeback on every exit path, including
// panics:
//
//	cell.Update(func(c *Config) {
//	    c.Port = 8080
//	})
//
// # Consistency Model
//
// Readers never block writers and writers never block readers. There is no
// lock anywhere: reads are a single atomic load, commits a single atomic
// store. The price is that concurrent writers are not serialised against
// each other. Each commit replaces the reference version unconditionally,
// so when two guards overlap, whichever resolves last wins and the other
// update is silently lost. Every installed value is internally consistent
// (it is a clone of some valid prior version plus one writer's edits), but
// the cell is deliberately weaker than a mutex: it trades external
// consistency for wait-free reads.
//
// Holding snapshots is cheap but not free. A long-lived snapshot pins its
// version of the data in memory alongside every version installed since.
//
// # Cloning
//
// Mutate copies the whole value, which is the expensive path. Plain value
// types clone correctly by assignment. Types with reference fields (maps,
// slices, pointers) must either implement Cloner[T] or be constructed with
// WithCloneFunc, otherwise guards would share structure with live
// snapshots.
//
// # Thread Safety
//
// All Cell and Guard operations are safe for concurrent use, except that a
// single Guard must not be shared between goroutines: it is the private
// working copy of exactly one writer.
package swapcell
