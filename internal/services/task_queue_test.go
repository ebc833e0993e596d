package services

import (
	"context"
	"testing"
	"time"
)

func TestTaskTypeReconcile_Constant(t *testing.T) {
	if TaskTypeReconcile != "maintenance:reconcile" {
		t.Errorf("TaskTypeReconcile = %q, expected %q", TaskTypeReconcile, "maintenance:reconcile")
	}
}

func TestSyncQueue_IsAsync(t *testing.T) {
	q := NewSyncQueue()
	if q.IsAsync() {
		t.Error("SyncQueue.IsAsync() should be false")
	}
}

func TestSyncQueue_EnqueueWithoutProcessor(t *testing.T) {
	q := NewSyncQueue()

	// A task with no processor is dropped, not an error.
	if err := q.Enqueue(&ReconcileTask{}); err != nil {
		t.Errorf("Enqueue() without processor should not error, got %v", err)
	}
}

func TestSyncQueue_EnqueueRunsProcessor(t *testing.T) {
	q := NewSyncQueue()

	done := make(chan ReconcileOptions, 1)
	q.SetProcessor(func(ctx context.Context, task *ReconcileTask) error {
		done <- task.Options
		return nil
	})

	want := ReconcileOptions{Keep: KeepOldest, Mode: ModeHard, DryRun: true}
	if err := q.Enqueue(&ReconcileTask{Options: want}); err != nil {
		t.Fatalf("Enqueue() error = %v", err)
	}

	select {
	case got := <-done:
		if got != want {
			t.Errorf("processor received %+v, expected %+v", got, want)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("processor was not invoked")
	}
}

func TestSyncQueue_Close(t *testing.T) {
	q := NewSyncQueue()
	if err := q.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
