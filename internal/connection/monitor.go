// Package connection tracks whether the remote processing service is
// reachable. The monitor is the only writer of the shared ConnectionState.
package connection

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/ytget/vidgrab/internal/model"
)

// Pinger is implemented by the API client
type Pinger interface {
	Ping(ctx context.Context) error
}

// Monitor probes the service and exposes a tri-state signal
type Monitor struct {
	pinger Pinger
	logger *slog.Logger

	mu       sync.RWMutex
	state    model.ConnectionState
	onUpdate func(model.ConnectionState)
}

// NewMonitor creates a monitor in the checking state
func NewMonitor(pinger Pinger, logger *slog.Logger) *Monitor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Monitor{
		pinger: pinger,
		logger: logger,
		state:  model.ConnectionChecking,
	}
}

// SetUpdateCallback sets the callback invoked after every state change
func (m *Monitor) SetUpdateCallback(callback func(model.ConnectionState)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onUpdate = callback
}

// State returns the last known state
func (m *Monitor) State() model.ConnectionState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Probe pings the service once and records the result without passing
// through the visible checking state. Used at start-up and before submitting
// while disconnected.
func (m *Monitor) Probe(ctx context.Context) model.ConnectionState {
	state := model.ConnectionConnected
	if err := m.pinger.Ping(ctx); err != nil {
		state = model.ConnectionError
		m.logger.Debug("service unreachable", "err", err)
	}
	m.set(state)
	return state
}

// Check shows the checking state, then probes
func (m *Monitor) Check(ctx context.Context) model.ConnectionState {
	m.set(model.ConnectionChecking)
	return m.Probe(ctx)
}

// Watch probes immediately and then every interval until ctx is done.
// A non-positive interval probes once.
func (m *Monitor) Watch(ctx context.Context, interval time.Duration) {
	m.Probe(ctx)
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Probe(ctx)
		}
	}
}

func (m *Monitor) set(state model.ConnectionState) {
	m.mu.Lock()
	changed := m.state != state
	m.state = state
	callback := m.onUpdate
	m.mu.Unlock()

	if changed {
		m.logger.Info("connection state changed", "state", state)
		if callback != nil {
			callback(state)
		}
	}
}
