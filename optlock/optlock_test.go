package optlock

import "testing"

func TestReadLockOrRestartSucceedsWhenUnlocked(t *testing.T) {
	var l Lock
	version, ok := l.ReadLockOrRestart()
	if !ok {
		t.Fatal("expected ReadLockOrRestart to succeed on a fresh lock")
	}
	if !l.CheckOrRestart(version) {
		t.Fatal("expected CheckOrRestart to succeed when nothing changed")
	}
}

func TestWriteLockBlocksConcurrentRead(t *testing.T) {
	var l Lock
	if !l.WriteLockOrRestart() {
		t.Fatal("expected WriteLockOrRestart to succeed on a fresh lock")
	}
	if _, ok := l.ReadLockOrRestart(); ok {
		t.Fatal("expected ReadLockOrRestart to fail while write-locked")
	}
	l.WriteUnlock()
	if _, ok := l.ReadLockOrRestart(); !ok {
		t.Fatal("expected ReadLockOrRestart to succeed after WriteUnlock")
	}
}

func TestWriteUnlockBumpsVersion(t *testing.T) {
	var l Lock
	v1, _ := l.ReadLockOrRestart()
	if !l.UpgradeToWriteLockOrRestart(v1) {
		t.Fatal("expected upgrade to succeed")
	}
	l.WriteUnlock()
	v2, ok := l.ReadLockOrRestart()
	if !ok {
		t.Fatal("expected read lock to succeed after unlock")
	}
	if v2 == v1 {
		t.Fatalf("expected version to change across a write, got %d both times", v1)
	}
}

func TestUpgradeFailsOnStaleVersion(t *testing.T) {
	var l Lock
	v1, _ := l.ReadLockOrRestart()
	if !l.UpgradeToWriteLockOrRestart(v1) {
		t.Fatal("expected first upgrade to succeed")
	}
	l.WriteUnlock()
	if l.UpgradeToWriteLockOrRestart(v1) {
		t.Fatal("expected upgrade on a stale version to fail")
	}
}

func TestWriteUnlockObsoleteRejectsFutureReaders(t *testing.T) {
	var l Lock
	v1, _ := l.ReadLockOrRestart()
	if !l.UpgradeToWriteLockOrRestart(v1) {
		t.Fatal("expected upgrade to succeed")
	}
	l.WriteUnlockObsolete()
	if _, ok := l.ReadLockOrRestart(); ok {
		t.Fatal("expected ReadLockOrRestart to fail once a lock is marked obsolete")
	}
	if !l.IsObsolete(l.word.Load()) {
		t.Fatal("expected IsObsolete to report true after WriteUnlockObsolete")
	}
}
