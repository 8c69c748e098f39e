// Package optlock implements the node-local optimistic version lock: readers
// validate after the fact instead of blocking, writers take a short-held
// exclusive section, and a node can be marked permanently obsolete so late
// readers restart instead of touching freed state.
//
// The version word packs {locked: 1 bit, obsolete: 1 bit, counter: 62 bits}
// into a single atomic.Uint64, following the CAS-loop idiom used throughout
// gvisor's pkg/atomicbitops for lock-free bit/word transitions.
package optlock

import "sync/atomic"

const (
	lockedBit   uint64 = 1 << 0
	obsoleteBit uint64 = 1 << 1
	counterStep uint64 = 1 << 2
)

// Lock is an optimistic version lock. The zero value is unlocked, not
// obsolete, at version 0.
type Lock struct {
	word atomic.Uint64
}

// ReadLockOrRestart returns the current version and true iff the node is
// neither currently write-locked nor obsolete. A false result means the caller must restart the
// whole operation from the root.
func (l *Lock) ReadLockOrRestart() (version uint64, ok bool) {
	v := l.word.Load()
	if v&lockedBit != 0 || v&obsoleteBit != 0 {
		return 0, false
	}
	return v, true
}

// CheckOrRestart succeeds iff the lock's version is still exactly version.
func (l *Lock) CheckOrRestart(version uint64) bool {
	return l.word.Load() == version
}

// ReadUnlockOrRestart is CheckOrRestart under a different name, used at the
// end of a read critical section to validate the snapshot taken at
// ReadLockOrRestart time.
func (l *Lock) ReadUnlockOrRestart(version uint64) bool {
	return l.CheckOrRestart(version)
}

// IsObsolete reports whether the node has been permanently retired.
func (l *Lock) IsObsolete(version uint64) bool {
	return version&obsoleteBit != 0
}

// UpgradeToWriteLockOrRestart atomically sets the locked bit iff the word
// still equals version. On success the caller holds the write lock and must
// eventually call WriteUnlock or WriteUnlockObsolete.
func (l *Lock) UpgradeToWriteLockOrRestart(version uint64) bool {
	if version&lockedBit != 0 {
		return false
	}
	return l.word.CompareAndSwap(version, version|lockedBit)
}

// WriteLockOrRestart is UpgradeToWriteLockOrRestart starting from a fresh
// ReadLockOrRestart, provided for call sites that go straight to a write
// without an intervening read (e.g. rebuild).
func (l *Lock) WriteLockOrRestart() bool {
	version, ok := l.ReadLockOrRestart()
	if !ok {
		return false
	}
	return l.UpgradeToWriteLockOrRestart(version)
}

// WriteUnlock releases the write lock and bumps the version counter. Every
// store made under the write lock is visible to any goroutine whose
// subsequent ReadLockOrRestart observes the new version, by virtue of
// sync/atomic's sequential consistency on the version word.
func (l *Lock) WriteUnlock() {
	for {
		old := l.word.Load()
		next := (old &^ lockedBit) + counterStep
		if l.word.CompareAndSwap(old, next) {
			return
		}
	}
}

// WriteUnlockObsolete marks the node permanently retired: future
// ReadLockOrRestart calls on it always fail.
func (l *Lock) WriteUnlockObsolete() {
	for {
		old := l.word.Load()
		next := (old &^ lockedBit) | obsoleteBit
		next += counterStep
		if l.word.CompareAndSwap(old, next) {
			return
		}
	}
}
