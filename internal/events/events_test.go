package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	at := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	ev := New(7, at, "cmd-1", EventTypeWorkerHired, WorkerHiredData{JobID: "botnet", Cost: 10})

	if ev.ID != 7 || ev.CommandID != "cmd-1" || ev.Type != EventTypeWorkerHired {
		t.Fatalf("unexpected event %+v", ev)
	}
	if !ev.At.Equal(at) {
		t.Fatalf("expected At %v got %v", at, ev.At)
	}
	data, ok := ev.Data.(WorkerHiredData)
	require.True(t, ok)
	assert.Equal(t, "botnet", data.JobID)
}

type recordingSink struct {
	mu  sync.Mutex
	got []Event
}

func (r *recordingSink) Handle(_ context.Context, ev Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, ev)
	return nil
}

func TestDispatcherDeliversToAllSinks(t *testing.T) {
	a, b := &recordingSink{}, &recordingSink{}
	d := NewDispatcher(zerolog.Nop(), a, b, LogSink{Log: zerolog.Nop()})

	d.Publish(
		New(1, time.Now(), "c1", EventTypeDataCollected, DataCollectedData{Amount: 1}),
		New(2, time.Now(), "c2", EventTypeGameReset, GameResetData{}),
	)
	d.Close()

	assert.Len(t, a.got, 2)
	assert.Len(t, b.got, 2)
}

func TestDispatcherKeepsOrderPerSink(t *testing.T) {
	slow := &recordingSink{}
	jittery := SinkFunc(func(ctx context.Context, ev Event) error {
		time.Sleep(time.Duration(ev.ID%3) * time.Millisecond)
		return slow.Handle(ctx, ev)
	})
	d := NewDispatcher(zerolog.Nop(), jittery)
	defer d.Close()

	for i := uint64(1); i <= 30; i++ {
		d.Publish(New(i, time.Now(), "c", EventTypeDataSettled, DataSettledData{}))
	}
	require.NoError(t, d.Flush())

	slow.mu.Lock()
	defer slow.mu.Unlock()
	require.Len(t, slow.got, 30)
	for i, ev := range slow.got {
		assert.Equal(t, uint64(i+1), ev.ID)
	}
}

func TestFlushAfterCloseFails(t *testing.T) {
	d := NewDispatcher(zerolog.Nop(), &recordingSink{})
	d.Close()
	assert.Error(t, d.Flush())
}

func TestSinkFunc(t *testing.T) {
	called := false
	s := SinkFunc(func(_ context.Context, ev Event) error {
		called = ev.ID == 3
		return nil
	})
	require.NoError(t, s.Handle(context.Background(), Event{ID: 3}))
	assert.True(t, called)
}
