package compta

import (
	"context"
	"sync"
	"time"

	"github.com/iarmy/compta/internal/model"
)

// DebounceDelay is the quiet period after the last edit before the model
// is flushed to storage. Rapid successive edits keep resetting it, so a
// flush only happens once editing pauses.
const DebounceDelay = 1500 * time.Millisecond

// SaveState is the autosave machine's current state.
type SaveState int

// Autosave states: Clean -> Dirty -> Flushing -> Clean or Dirty.
const (
	SaveClean SaveState = iota
	SaveDirty
	SaveFlushing
)

// FlushFunc persists the serialized model. Implemented by the storage
// layer.
type FlushFunc func(ctx context.Context, cfg model.ComptaConfig) error

// Scheduler schedules a function to run after a delay and returns a
// cancel function. Injected so tests drive the machine without wall
// clocks.
type Scheduler interface {
	Schedule(d time.Duration, fn func()) (cancel func())
}

// TimerScheduler is the production Scheduler backed by time.AfterFunc.
type TimerScheduler struct{}

// Schedule runs fn after d on a timer goroutine.
func (TimerScheduler) Schedule(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// Saver debounces persistence of a session. Every MarkDirty cancels any
// pending flush and schedules a new one DebounceDelay later. A failed
// flush is surfaced through the notify callback and the in-memory model
// stays the source of truth; the next mutation's cycle is the only retry
// path.
type Saver struct {
	session *Session
	flush   FlushFunc
	sched   Scheduler
	notify  func(error)
	cancel  func()
	ctx     context.Context
	state   SaveState
	mu      sync.Mutex
}

// NewSaver wires a saver to a session. notify may be nil; a nil scheduler
// falls back to TimerScheduler.
func NewSaver(ctx context.Context, session *Session, flush FlushFunc, sched Scheduler, notify func(error)) *Saver {
	if sched == nil {
		sched = TimerScheduler{}
	}
	return &Saver{
		ctx:     ctx,
		session: session,
		flush:   flush,
		sched:   sched,
		notify:  notify,
	}
}

// MarkDirty records an edit and (re)schedules the trailing flush.
func (s *Saver) MarkDirty() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
	s.state = SaveDirty
	s.cancel = s.sched.Schedule(DebounceDelay, s.fire)
}

// Flush persists immediately, bypassing the debounce. Used by one-shot
// CLI commands and on editor exit.
func (s *Saver) Flush(ctx context.Context) error {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.state = SaveFlushing
	cfg := s.session.Serialize()
	s.mu.Unlock()

	err := s.flush(ctx, cfg)

	s.mu.Lock()
	if s.state == SaveFlushing {
		s.state = SaveClean
	}
	s.mu.Unlock()
	return err
}

// State returns the machine's current state.
func (s *Saver) State() SaveState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Saver) fire() {
	s.mu.Lock()
	s.cancel = nil
	s.state = SaveFlushing
	cfg := s.session.Serialize()
	s.mu.Unlock()

	err := s.flush(s.ctx, cfg)

	s.mu.Lock()
	// An edit during the flush moved us back to Dirty and scheduled a
	// fresh cycle; leave that alone.
	if s.state == SaveFlushing {
		s.state = SaveClean
	}
	s.mu.Unlock()

	if err != nil && s.notify != nil {
		s.notify(err)
	}
}
