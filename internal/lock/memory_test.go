package lock

import (
	"context"
	"testing"
	"time"
)

func TestMemory_ExclusiveUntilReleased(t *testing.T) {
	l := NewMemory()
	ctx := context.Background()

	ok, err := l.TryAcquire(ctx, "check:m1", time.Minute)
	if err != nil || !ok {
		t.Fatalf("first acquire: ok=%v err=%v", ok, err)
	}
	ok, _ = l.TryAcquire(ctx, "check:m1", time.Minute)
	if ok {
		t.Fatalf("second acquire should fail while held")
	}
	// a different key is independent
	ok, _ = l.TryAcquire(ctx, "check:m2", time.Minute)
	if !ok {
		t.Fatalf("different key should acquire")
	}

	if err := l.Release(ctx, "check:m1"); err != nil {
		t.Fatal(err)
	}
	ok, _ = l.TryAcquire(ctx, "check:m1", time.Minute)
	if !ok {
		t.Fatalf("acquire after release should succeed")
	}
}

func TestMemory_ExpiresByTTL(t *testing.T) {
	l := NewMemory()
	ctx := context.Background()

	if ok, _ := l.TryAcquire(ctx, "k", 10*time.Millisecond); !ok {
		t.Fatal("acquire failed")
	}
	time.Sleep(20 * time.Millisecond)
	if ok, _ := l.TryAcquire(ctx, "k", time.Minute); !ok {
		t.Fatalf("expired lease should be reacquirable")
	}
}
