package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func TestAcquireLockExclusive(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "stepwise.db")

	first, err := AcquireLock(context.Background(), dbPath, 10*time.Millisecond)
	if err != nil {
		t.Fatalf("AcquireLock: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := AcquireLock(ctx, dbPath, 10*time.Millisecond); !errors.Is(err, ErrLocked) {
		t.Fatalf("expected ErrLocked while held, got %v", err)
	}

	if err := first.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}

	second, err := AcquireLock(context.Background(), dbPath, 10*time.Millisecond)
	if err != nil {
		t.Fatalf("AcquireLock after release: %v", err)
	}
	if err := second.Release(); err != nil {
		t.Errorf("Release: %v", err)
	}
}

func TestAcquireLockCanceled(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "stepwise.db")

	held, err := AcquireLock(context.Background(), dbPath, 10*time.Millisecond)
	if err != nil {
		t.Fatalf("AcquireLock: %v", err)
	}
	defer held.Release()

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(30*time.Millisecond, cancel)

	_, err = AcquireLock(ctx, dbPath, 10*time.Millisecond)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if errors.Is(err, ErrLocked) {
		t.Errorf("cancellation should not be reported as ErrLocked: %v", err)
	}
}

func TestAcquireLockMemory(t *testing.T) {
	l, err := AcquireLock(context.Background(), MemoryPath, time.Millisecond)
	if err != nil {
		t.Fatalf("AcquireLock(memory): %v", err)
	}
	if err := l.Release(); err != nil {
		t.Errorf("Release: %v", err)
	}
}
