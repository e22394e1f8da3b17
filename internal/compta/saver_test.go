package compta

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/iarmy/compta/internal/model"
)

// fakeScheduler records scheduled callbacks so tests fire them by hand.
type fakeScheduler struct {
	mu        sync.Mutex
	pending   func()
	delays    []time.Duration
	seq       int
	pendingID int
	cancelled int
}

func (f *fakeScheduler) Schedule(d time.Duration, fn func()) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	id := f.seq
	f.delays = append(f.delays, d)
	f.pending = fn
	f.pendingID = id
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.cancelled++
		if f.pendingID == id {
			f.pending = nil
		}
	}
}

func (f *fakeScheduler) fire(t *testing.T) {
	t.Helper()
	f.mu.Lock()
	fn := f.pending
	f.pending = nil
	f.mu.Unlock()
	if fn == nil {
		t.Fatal("no flush scheduled")
	}
	fn()
}

type recordingFlush struct {
	mu    sync.Mutex
	calls []model.ComptaConfig
	err   error
}

func (r *recordingFlush) flush(_ context.Context, cfg model.ComptaConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, cfg)
	return r.err
}

func (r *recordingFlush) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func TestSaver_DebouncesEdits(t *testing.T) {
	session := NewSession(nil, nil, nil)
	sched := &fakeScheduler{}
	sink := &recordingFlush{}
	saver := NewSaver(context.Background(), session, sink.flush, sched, nil)
	session.OnChange(saver.MarkDirty)

	i := session.AddKeyword()
	session.SetKeywordName(i, "cb")
	session.SetKeywordColumn(i, "B")

	// Three edits, three schedules, two cancellations: only the last
	// timer survives.
	if len(sched.delays) != 3 {
		t.Fatalf("scheduled %d times, want 3", len(sched.delays))
	}
	if sched.cancelled != 2 {
		t.Errorf("cancelled %d timers, want 2", sched.cancelled)
	}
	for _, d := range sched.delays {
		if d != DebounceDelay {
			t.Errorf("delay = %v, want %v", d, DebounceDelay)
		}
	}
	if sink.count() != 0 {
		t.Fatal("flushed before the quiet period elapsed")
	}
	if saver.State() != SaveDirty {
		t.Errorf("state = %v, want SaveDirty", saver.State())
	}

	sched.fire(t)

	if sink.count() != 1 {
		t.Fatalf("flushed %d times, want 1", sink.count())
	}
	if saver.State() != SaveClean {
		t.Errorf("state after flush = %v, want SaveClean", saver.State())
	}
	if got := sink.calls[0].Keywords[0].Name; got != "CB" {
		t.Errorf("flushed name = %q, want CB", got)
	}
}

func TestSaver_FlushBypassesDebounce(t *testing.T) {
	session := NewSession(nil, nil, nil)
	sched := &fakeScheduler{}
	sink := &recordingFlush{}
	saver := NewSaver(context.Background(), session, sink.flush, sched, nil)
	session.OnChange(saver.MarkDirty)

	session.AddKeyword()
	if err := saver.Flush(context.Background()); err != nil {
		t.Fatalf("Flush() error: %v", err)
	}

	if sink.count() != 1 {
		t.Fatalf("flushed %d times, want 1", sink.count())
	}
	if saver.State() != SaveClean {
		t.Errorf("state = %v, want SaveClean", saver.State())
	}
	// The pending debounce timer was cancelled; firing nothing remains.
	sched.mu.Lock()
	pending := sched.pending
	sched.mu.Unlock()
	if pending != nil {
		t.Error("debounce timer survived an explicit Flush")
	}
}

func TestSaver_FailedFlushNotifies(t *testing.T) {
	session := NewSession(nil, nil, nil)
	sched := &fakeScheduler{}
	sink := &recordingFlush{err: errors.New("disk full")}

	var notified error
	saver := NewSaver(context.Background(), session, sink.flush, sched, func(err error) {
		notified = err
	})
	session.OnChange(saver.MarkDirty)

	session.AddKeyword()
	sched.fire(t)

	if notified == nil {
		t.Fatal("notify callback not invoked on failure")
	}
	// The model stays the source of truth; no rollback, no requeue.
	if saver.State() != SaveClean {
		t.Errorf("state = %v, want SaveClean", saver.State())
	}
	sched.mu.Lock()
	pending := sched.pending
	sched.mu.Unlock()
	if pending != nil {
		t.Error("failed flush must not reschedule itself")
	}
}

func TestSaver_EditDuringFlushStaysDirty(t *testing.T) {
	session := NewSession(nil, nil, nil)
	sched := &fakeScheduler{}

	var saver *Saver
	editDuringFlush := func(_ context.Context, _ model.ComptaConfig) error {
		// A concurrent edit lands while the write is in flight.
		saver.MarkDirty()
		return nil
	}
	saver = NewSaver(context.Background(), session, editDuringFlush, sched, nil)

	saver.MarkDirty()
	sched.fire(t)

	if saver.State() != SaveDirty {
		t.Errorf("state = %v, want SaveDirty (edit arrived mid-flush)", saver.State())
	}
}
