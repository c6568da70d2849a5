package watch

import (
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

func TestDebouncerBatchesChanges(t *testing.T) {
	var (
		mu      sync.Mutex
		batches [][]string
		done    = make(chan struct{})
	)

	d := NewDebouncer(20 * time.Millisecond)
	d.SetCallback(func(files []string) {
		mu.Lock()
		batches = append(batches, files)
		mu.Unlock()
		close(done)
	})
	defer d.Stop()

	// A burst of events for two files collapses into one batch
	d.Add("a.oiml.yml")
	d.Add("b.oiml.yml")
	d.Add("a.oiml.yml")

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("debouncer never flushed")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(batches) != 1 {
		t.Fatalf("batches = %d, want 1", len(batches))
	}
	got := batches[0]
	sort.Strings(got)
	if len(got) != 2 || got[0] != "a.oiml.yml" || got[1] != "b.oiml.yml" {
		t.Errorf("batch = %v", got)
	}
}

func TestDebouncerStopCancelsPendingFlush(t *testing.T) {
	fired := make(chan struct{}, 1)

	d := NewDebouncer(20 * time.Millisecond)
	d.SetCallback(func([]string) { fired <- struct{}{} })

	d.Add("a.oiml.yml")
	d.Stop()

	select {
	case <-fired:
		t.Error("callback fired after Stop")
	case <-time.After(60 * time.Millisecond):
	}
}

func TestWatcherRelevant(t *testing.T) {
	w, err := New([]string{"changes.oiml.yml"}, func([]string) {}, zap.NewNop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Stop()

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"watched file write", fsnotify.Event{Name: "changes.oiml.yml", Op: fsnotify.Write}, true},
		{"watched file create", fsnotify.Event{Name: "changes.oiml.yml", Op: fsnotify.Create}, true},
		{"unwatched sibling", fsnotify.Event{Name: "other.yml", Op: fsnotify.Write}, false},
		{"chmod only", fsnotify.Event{Name: "changes.oiml.yml", Op: fsnotify.Chmod}, false},
		{"hidden file", fsnotify.Event{Name: ".changes.oiml.yml.swp", Op: fsnotify.Write}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.relevant(tt.event); got != tt.want {
				t.Errorf("relevant(%v) = %v, want %v", tt.event, got, tt.want)
			}
		})
	}
}

func TestNewRequiresPaths(t *testing.T) {
	if _, err := New(nil, func([]string) {}, zap.NewNop()); err == nil {
		t.Error("New() with no paths should fail")
	}
}
