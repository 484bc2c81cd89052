package buffer

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"testing"
	"time"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "buffer.db"), "history")
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// enqueueN stamps items an hour into the future so any test passing below
// proves queue order is insertion order, not timestamp order.
func enqueueN(t *testing.T, store *Store, taskID string, n int) {
	t.Helper()
	base := time.Now().Add(time.Hour)
	for i := 0; i < n; i++ {
		err := store.Enqueue(Item{
			TaskID:    taskID,
			Data:      json.RawMessage(fmt.Sprintf(`{"seq":%d}`, i)),
			Timestamp: base.Add(time.Duration(i) * time.Millisecond),
		})
		if err != nil {
			t.Fatalf("enqueue %d failed: %v", i, err)
		}
	}
}

func TestStore_EnqueueAndDrainFIFO(t *testing.T) {
	store := openStore(t)
	enqueueN(t, store, "t1", 5)

	size, err := store.Size()
	if err != nil {
		t.Fatalf("size failed: %v", err)
	}
	if size != 5 {
		t.Fatalf("size = %d, want 5", size)
	}

	items, err := store.GetBatch(3)
	if err != nil {
		t.Fatalf("get batch failed: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("batch = %d items, want 3", len(items))
	}
	for i, item := range items {
		want := fmt.Sprintf(`{"seq":%d}`, i)
		if string(item.Data) != want {
			t.Errorf("item %d out of order: %s", i, item.Data)
		}
	}

	// GetBatch only reads; a second call sees the same head.
	again, _ := store.GetBatch(1)
	if string(again[0].Data) != `{"seq":0}` {
		t.Errorf("peek consumed the queue head: %s", again[0].Data)
	}

	for _, item := range items {
		if err := store.Remove(item); err != nil {
			t.Fatalf("remove failed: %v", err)
		}
	}
	size, _ = store.Size()
	if size != 2 {
		t.Errorf("size after remove = %d, want 2", size)
	}
}

func TestStore_Requeue(t *testing.T) {
	store := openStore(t)
	enqueueN(t, store, "t1", 2)

	items, _ := store.GetBatch(1)
	head := items[0]
	if err := store.Remove(head); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	head.Retries++
	if err := store.Requeue(head); err != nil {
		t.Fatalf("requeue failed: %v", err)
	}

	// The requeued item goes to the back of the queue even though the item
	// ahead of it carries a later timestamp.
	items, _ = store.GetBatch(2)
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if string(items[0].Data) != `{"seq":1}` {
		t.Errorf("requeued item kept its old position: %s", items[0].Data)
	}
	if items[1].Retries != 1 {
		t.Errorf("retries = %d, want 1", items[1].Retries)
	}
}

func TestStore_DropByTask(t *testing.T) {
	store := openStore(t)
	enqueueN(t, store, "t1", 3)
	enqueueN(t, store, "t2", 2)

	if err := store.DropByTask("t1"); err != nil {
		t.Fatalf("drop failed: %v", err)
	}

	items, _ := store.GetBatch(10)
	if len(items) != 2 {
		t.Fatalf("expected 2 surviving items, got %d", len(items))
	}
	for _, item := range items {
		if item.TaskID != "t2" {
			t.Errorf("item for deleted task survived: %+v", item)
		}
	}

	if err := store.DropByTask(""); err != nil {
		t.Fatalf("empty task id should be a no-op, got %v", err)
	}
}

func TestStore_Cleanup(t *testing.T) {
	store := openStore(t)

	old := time.Now().Add(-time.Hour)
	if err := store.Enqueue(Item{TaskID: "t1", Data: json.RawMessage(`{}`), Timestamp: old}); err != nil {
		t.Fatalf("enqueue failed: %v", err)
	}
	if err := store.Enqueue(Item{TaskID: "t1", Data: json.RawMessage(`{}`)}); err != nil {
		t.Fatalf("enqueue failed: %v", err)
	}

	if err := store.Cleanup(time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("cleanup failed: %v", err)
	}
	size, _ := store.Size()
	if size != 1 {
		t.Errorf("size after cleanup = %d, want 1", size)
	}
}

func TestStore_NilSafe(t *testing.T) {
	var store *Store
	if err := store.Close(); err != nil {
		t.Errorf("nil close returned %v", err)
	}
	if _, err := store.Size(); err == nil {
		t.Error("nil size should error")
	}
	if err := store.Enqueue(Item{}); err == nil {
		t.Error("nil enqueue should error")
	}
}
