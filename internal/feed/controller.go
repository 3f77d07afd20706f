package feed

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/MusikAnimal/event-streams/internal/models"
)

// State is the connection lifecycle position.
type State int

const (
	Disconnected State = iota
	Connecting
	Connected
)

func (s State) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	}
	return "disconnected"
}

var (
	// ErrAlreadyRunning is returned by Start when a connection is already
	// open or opening.
	ErrAlreadyRunning = errors.New("feed: already connecting or connected")
)

// Source is the push transport the controller consumes. Subscribe blocks
// until the stream ends or ctx is cancelled, invoking onOpen once the
// connection is established and onMessage once per raw payload.
type Source interface {
	Subscribe(ctx context.Context, onOpen func(), onMessage func(data []byte)) error
}

// Snapshot is the immutable view the presentation layer pulls after each
// update signal.
type Snapshot struct {
	State   State
	Records []models.DisplayRecord
	Total   int
	Sample  Sample
	Err     error // last transport error, nil after a clean stop
}

// Controller owns one connection at a time: the transport handle, the
// filter snapshot, the buffer and the meter. Per-message processing is
// serialized by the transport goroutine; the mutex exists because Start,
// Stop and Snapshot arrive from the UI goroutine. Each Start bumps a
// session counter so callbacks from a torn-down transport or meter land as
// no-ops.
type Controller struct {
	source   Source
	notifier *Notifier
	valid    models.ValidValues
	interval time.Duration
	logger   *log.Logger

	mu      sync.Mutex
	state   State
	session int
	cancel  context.CancelFunc
	cfg     models.FilterConfig
	buffer  *Buffer
	meter   *Meter
	total   int
	sample  Sample
	lastErr error

	updates chan struct{}
}

// NewController wires a controller to its transport and collaborators.
// interval is the meter's sampling window.
func NewController(source Source, notifier *Notifier, valid models.ValidValues, interval time.Duration, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if interval <= 0 {
		interval = time.Second
	}
	return &Controller{
		source:   source,
		notifier: notifier,
		valid:    valid,
		interval: interval,
		logger:   logger,
		buffer:   NewBuffer(models.DefaultLimit),
		updates:  make(chan struct{}, 1),
	}
}

// Updates yields a coalesced signal whenever the snapshot changed.
func (c *Controller) Updates() <-chan struct{} {
	return c.updates
}

// State returns the current connection state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Snapshot returns the current observable state: records newest-first,
// cumulative count, last meter sample and connection state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		State:   c.state,
		Records: c.buffer.Records(),
		Total:   c.total,
		Sample:  c.sample,
		Err:     c.lastErr,
	}
}

// Start opens the stream with an immutable snapshot of the filter
// configuration. Valid only while disconnected; a second Start is rejected
// so duplicate transports and meters cannot exist.
func (c *Controller) Start(cfg models.FilterConfig) error {
	c.mu.Lock()
	if c.state != Disconnected {
		c.mu.Unlock()
		return ErrAlreadyRunning
	}
	cfg.Limit = models.ClampLimit(cfg.Limit)
	c.session++
	session := c.session
	c.cfg = cfg
	c.buffer = NewBuffer(cfg.Limit)
	c.total = 0
	c.sample = Sample{}
	c.lastErr = nil
	c.state = Connecting

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.mu.Unlock()

	c.logger.Info("starting feed", "limit", cfg.Limit)
	c.signal()

	go c.run(ctx, session)
	return nil
}

// Stop closes the transport and tears down the meter. Idempotent: calling
// it while disconnected is a no-op, and it is safe at any point after
// Start.
func (c *Controller) Stop() {
	c.mu.Lock()
	if c.state == Disconnected {
		c.mu.Unlock()
		return
	}
	c.teardownLocked(nil)
	c.mu.Unlock()

	c.logger.Info("feed stopped")
	c.signal()
}

// Clear empties the buffer and resets the cumulative counter without
// touching the connection.
func (c *Controller) Clear() {
	c.mu.Lock()
	c.buffer.Clear()
	c.total = 0
	c.mu.Unlock()
	c.signal()
}

// run owns the transport for one session; it returns when the stream ends.
func (c *Controller) run(ctx context.Context, session int) {
	err := c.source.Subscribe(ctx,
		func() { c.onOpen(session) },
		func(data []byte) { c.onMessage(session, data) },
	)

	// The transport closed on its own (error or EOF): treat as an
	// implicit Stop. If Stop already ran, the session is stale and there
	// is nothing to do.
	c.mu.Lock()
	if session != c.session || c.state == Disconnected {
		c.mu.Unlock()
		return
	}
	if ctx.Err() != nil {
		err = nil
	}
	c.teardownLocked(err)
	c.mu.Unlock()

	if err != nil {
		c.logger.Error("stream closed", "error", err)
	}
	c.signal()
}

// teardownLocked moves to Disconnected and invalidates all callbacks from
// the session being torn down. Caller holds the lock.
func (c *Controller) teardownLocked(err error) {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	if c.meter != nil {
		c.meter.Kill()
		c.meter = nil
	}
	c.session++
	c.state = Disconnected
	c.lastErr = err
}

func (c *Controller) onOpen(session int) {
	c.mu.Lock()
	if session != c.session || c.state != Connecting {
		c.mu.Unlock()
		return
	}
	c.state = Connected
	c.meter = NewMeter(c.interval, func(s Sample) { c.onSample(session, s) })
	c.mu.Unlock()

	c.logger.Info("stream connected")
	c.signal()
}

func (c *Controller) onSample(session int, s Sample) {
	c.mu.Lock()
	if session != c.session {
		c.mu.Unlock()
		return
	}
	c.sample = s
	c.mu.Unlock()
	c.signal()
}

// onMessage is the per-message pipeline: parse, filter, render, admit,
// meter, notify. It runs on the transport goroutine, one message at a
// time.
func (c *Controller) onMessage(session int, data []byte) {
	var ev models.Event
	if err := json.Unmarshal(data, &ev); err != nil {
		// Malformed payloads are dropped, never fatal.
		c.logger.Debug("dropping malformed message", "error", err)
		return
	}

	c.mu.Lock()
	if session != c.session || c.state == Disconnected {
		c.mu.Unlock()
		return
	}
	if !ShouldShow(ev, c.cfg, c.valid) {
		c.mu.Unlock()
		return
	}
	rec := Render(ev)
	c.buffer.Admit(rec)
	c.total++
	meter := c.meter
	c.mu.Unlock()

	if meter != nil {
		meter.Add(1)
	}
	c.notifier.Notify(rec)
	c.signal()
}

// signal is a non-blocking, coalescing notification to the UI.
func (c *Controller) signal() {
	select {
	case c.updates <- struct{}{}:
	default:
	}
}
