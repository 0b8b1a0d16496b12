package cleanup

import (
	"log"
	"sync"
	"sync/atomic"
	"time"
)

// IdleCleaner is implemented by game.SessionManager.
type IdleCleaner interface {
	CleanupIdleSessions(maxIdle time.Duration) int
}

type Worker struct {
	Sessions IdleCleaner
	MaxIdle  time.Duration
	Interval time.Duration

	stop      chan struct{}
	stopOnce  sync.Once
	done      chan struct{}
	startOnce sync.Once
	started   atomic.Bool
}

func NewWorker(sessions IdleCleaner, maxIdle, interval time.Duration) *Worker {
	return &Worker{
		Sessions: sessions,
		MaxIdle:  maxIdle,
		Interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start runs one cleanup right away and then one per Interval until Stop.
// Calls after the first are no-ops.
func (w *Worker) Start() {
	w.startOnce.Do(func() {
		w.started.Store(true)
		go w.run()
		log.Println("[CLEANUP] Background worker started")
	})
}

func (w *Worker) run() {
	defer close(w.done)

	w.runCleanup()

	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			w.runCleanup()
		case <-w.stop:
			return
		}
	}
}

// Stop ends the worker and waits for a running cleanup to finish. Stopping a
// worker that never started returns immediately.
func (w *Worker) Stop() {
	w.stopOnce.Do(func() {
		close(w.stop)
	})
	if !w.started.Load() {
		return
	}
	<-w.done
	log.Println("[CLEANUP] Background worker stopped")
}

func (w *Worker) runCleanup() {
	removed := w.Sessions.CleanupIdleSessions(w.MaxIdle)
	if removed > 0 {
		log.Printf("[CLEANUP] Removed %d games idle for more than %s", removed, w.MaxIdle)
	}
}
