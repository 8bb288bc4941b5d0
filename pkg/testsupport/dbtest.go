package testsupport

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/uptrace/bun"

	"github.com/zirospace/zirospace-cms/internal/store"
)

var dbSeq atomic.Int64

// NewSQLiteDB opens a private in-memory SQLite database through the same
// code path as the local store. It is closed when the test ends.
func NewSQLiteDB(t testing.TB) *bun.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_", "#", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_fk=1", name, dbSeq.Add(1))
	db, err := store.OpenLocal(context.Background(), dsn)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// SteppingClock returns a clock starting at start that advances by step on
// every call, so created_at ordering is deterministic.
func SteppingClock(start time.Time, step time.Duration) func() time.Time {
	var (
		mu  sync.Mutex
		now = start.UTC()
	)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		current := now
		now = now.Add(step)
		return current
	}
}

// SequentialIDs returns a generator yielding prefix-1, prefix-2, ...
func SequentialIDs(prefix string) func() string {
	var n atomic.Int64
	return func() string {
		return fmt.Sprintf("%s-%d", prefix, n.Add(1))
	}
}
