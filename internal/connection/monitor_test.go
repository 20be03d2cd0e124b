package connection

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/vidgrab/internal/model"
)

type fakePinger struct {
	calls atomic.Int32
	errs  []error
}

func (f *fakePinger) Ping(ctx context.Context) error {
	n := int(f.calls.Add(1)) - 1
	if len(f.errs) == 0 {
		return nil
	}
	if n >= len(f.errs) {
		n = len(f.errs) - 1
	}
	return f.errs[n]
}

func TestNewMonitor_StartsChecking(t *testing.T) {
	m := NewMonitor(&fakePinger{}, nil)

	assert.Equal(t, model.ConnectionChecking, m.State())
}

func TestProbe(t *testing.T) {
	refused := errors.New("connection refused")
	pinger := &fakePinger{errs: []error{refused, nil}}
	m := NewMonitor(pinger, nil)

	assert.Equal(t, model.ConnectionError, m.Probe(context.Background()))
	assert.Equal(t, model.ConnectionError, m.State())

	assert.Equal(t, model.ConnectionConnected, m.Probe(context.Background()))
	assert.Equal(t, model.ConnectionConnected, m.State())
	assert.Equal(t, int32(2), pinger.calls.Load())
}

func TestProbe_DoesNotFlickerThroughChecking(t *testing.T) {
	m := NewMonitor(&fakePinger{}, nil)
	m.Probe(context.Background())

	var mu sync.Mutex
	var seen []model.ConnectionState
	m.SetUpdateCallback(func(s model.ConnectionState) {
		mu.Lock()
		seen = append(seen, s)
		mu.Unlock()
	})

	m.Probe(context.Background())

	mu.Lock()
	defer mu.Unlock()
	assert.Empty(t, seen, "unchanged state must not notify")
}

func TestCheck_PassesThroughChecking(t *testing.T) {
	m := NewMonitor(&fakePinger{}, nil)
	m.Probe(context.Background())

	var seen []model.ConnectionState
	m.SetUpdateCallback(func(s model.ConnectionState) { seen = append(seen, s) })

	m.Check(context.Background())

	assert.Equal(t, []model.ConnectionState{model.ConnectionChecking, model.ConnectionConnected}, seen)
}

func TestWatch_StopsWithContext(t *testing.T) {
	pinger := &fakePinger{}
	m := NewMonitor(pinger, nil)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		m.Watch(ctx, 10*time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool { return pinger.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Watch did not return after cancel")
	}
	calls := pinger.calls.Load()
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, calls, pinger.calls.Load(), "no probes after Watch returned")
}

func TestWatch_NonPositiveIntervalProbesOnce(t *testing.T) {
	pinger := &fakePinger{}
	m := NewMonitor(pinger, nil)

	m.Watch(context.Background(), 0)

	assert.Equal(t, int32(1), pinger.calls.Load())
	assert.Equal(t, model.ConnectionConnected, m.State())
}
