// Package latch provides a high-level library API for file-backed lock
// markers.
//
// A lock is a named file in a lock directory whose existence signals an
// exclusive-use state for some external resource (a server, a switch, a
// config file). Callers attach arbitrary metadata to the lock; latch stores
// it in the lock file and hands it back on later status and unlock calls.
//
// # Concurrency
//
// Operations are synchronous filesystem calls with no internal locking or
// waiting:
//
//   - Lock with EnsureUnlocked uses the filesystem's create-exclusive
//     primitive, so at most one of several concurrent guarded callers wins.
//
//   - An unguarded Lock overwrites whatever is there; last write wins.
//
//   - Clients for different lock directories are fully independent.
//
// # Usage
//
//	client, err := latch.NewClient("/tmp/locks", latch.Options{})
//	rec, err := client.Lock("server-cluster3w1-2", map[string]any{
//	    "msg":     "Locking for maintenance in reference to ticket 65807417",
//	    "contact": "Billy Jenkins",
//	    "expire":  "2019-12-20 00:00:00",
//	})
//	// rec.Location is /tmp/locks/server-cluster3w1-2.lock
//
// An external sweeper can later read the expire key and delete the stale
// lock file; the engine itself never expires anything.
package latch
