package backend

import (
	"context"
	"io"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// Sink receives change notifications from the backend. Exactly one sink is
// registered, at construction. Within one Poll the data-changed signal is
// delivered before the connection-status notification. Sink methods must
// return promptly; they are called on the polling goroutine.
type Sink interface {
	// RunsChanged signals that the cached run list was replaced.
	RunsChanged()
	// ConnectionStatusChanged signals a connection flip or a new error
	// message. errText is empty exactly when connected is true.
	ConnectionStatusChanged(connected bool, errText string)
}

// Client is the slice of the TensorBoard client the backend needs.
type Client interface {
	Runs(ctx context.Context) ([]string, error)
	Close()
}

// Backend owns the last-known-good snapshot of server state and turns polls
// into change notifications. It is the single writer of its cache; readers
// only ever see copies.
type Backend struct {
	client Client
	sink   Sink
	log    logrus.FieldLogger

	inFlight atomic.Bool

	mu        sync.Mutex
	runs      []string
	hasRuns   bool
	connected bool
	lastError string
}

// New builds a Backend around client, delivering notifications to sink.
// A nil logger discards all output.
func New(client Client, sink Sink, logger logrus.FieldLogger) *Backend {
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	return &Backend{
		client: client,
		sink:   sink,
		log:    logger,
	}
}

// Poll fetches the current run list, diffs it against the cache, updates the
// cache and emits zero, one or two notifications. Fetch failures never
// escape: they are absorbed into the snapshot and surfaced through the sink.
// Overlapping calls are dropped — the cache has a single writer, and the next
// scheduled tick is the retry.
func (b *Backend) Poll(ctx context.Context) {
	if !b.inFlight.CompareAndSwap(false, true) {
		b.log.Debug("poll skipped: previous poll still in flight")
		return
	}
	defer b.inFlight.Store(false)

	runs, err := b.client.Runs(ctx)
	if err != nil {
		b.log.WithError(err).Warn("poll failed")
		b.absorbFailure(err.Error())
		return
	}
	b.absorbSuccess(runs)
}

func (b *Backend) absorbSuccess(runs []string) {
	b.mu.Lock()
	dataChanged := !b.hasRuns || !equalRuns(b.runs, runs)
	if dataChanged {
		b.runs = append([]string(nil), runs...)
		b.hasRuns = true
	}
	statusChanged := !b.connected || b.lastError != ""
	if statusChanged {
		b.connected = true
		b.lastError = ""
	}
	b.mu.Unlock()

	if dataChanged {
		b.log.WithField("runs", len(runs)).Info("run list changed")
		b.sink.RunsChanged()
	}
	if statusChanged {
		b.log.Info("connected")
		b.sink.ConnectionStatusChanged(true, "")
	}
}

func (b *Backend) absorbFailure(errText string) {
	b.mu.Lock()
	// Repeated identical failures update nothing and stay silent; a new
	// message re-notifies so the UI can show it.
	changed := b.connected || b.lastError != errText
	if changed {
		b.connected = false
		b.lastError = errText
	}
	b.mu.Unlock()

	if changed {
		b.sink.ConnectionStatusChanged(false, errText)
	}
}

// Runs returns a copy of the cached run list, or nil before the first
// successful poll. Mutating the result does not touch the cache.
func (b *Backend) Runs() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.hasRuns {
		return nil
	}
	out := make([]string, len(b.runs))
	copy(out, b.runs)
	return out
}

// Connected reports whether the most recent poll succeeded.
func (b *Backend) Connected() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.connected
}

// LastError returns the most recent failure message, empty while connected.
func (b *Backend) LastError() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastError
}

// Cleanup releases the underlying client connection. Call once at shutdown.
func (b *Backend) Cleanup() {
	b.log.Debug("backend cleanup: closing client")
	b.client.Close()
}

// equalRuns is ordered equality — a reordered list counts as a change.
func equalRuns(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
