package workerpool

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitRunsTasks(t *testing.T) {
	p := New(3, 10, zerolog.Nop())

	var n atomic.Int32
	for i := 0; i < 10; i++ {
		require.NoError(t, p.Submit(func() error {
			n.Add(1)
			return nil
		}))
	}
	p.StopWait()

	assert.Equal(t, int32(10), n.Load())
}

func TestSubmitWaitReturnsError(t *testing.T) {
	p := New(1, 1, zerolog.Nop())
	defer p.StopWait()

	want := errors.New("boom")
	err := p.SubmitWait(func() error { return want })
	assert.ErrorIs(t, err, want)
}

func TestPanicDoesNotKillWorker(t *testing.T) {
	p := New(1, 4, zerolog.Nop())
	defer p.StopWait()

	require.NoError(t, p.Submit(func() error { panic("bad task") }))

	err := p.SubmitWait(func() error { return nil })
	assert.NoError(t, err)
}

func TestQueueFull(t *testing.T) {
	p := New(1, 1, zerolog.Nop())
	block := make(chan struct{})
	started := make(chan struct{})

	require.NoError(t, p.Submit(func() error {
		close(started)
		<-block
		return nil
	}))
	<-started
	require.NoError(t, p.Submit(func() error { return nil }))

	err := p.Submit(func() error { return nil })
	assert.ErrorIs(t, err, ErrQueueFull)

	close(block)
	p.StopWait()
}

func TestSubmitAfterStop(t *testing.T) {
	p := New(2, 2, zerolog.Nop())
	p.StopWait()
	p.StopWait()

	assert.ErrorIs(t, p.Submit(func() error { return nil }), ErrStopped)
	assert.ErrorIs(t, p.SubmitWait(func() error { return nil }), ErrStopped)
}

func TestSingleWorkerKeepsOrderAndSubmitWaitIsBarrier(t *testing.T) {
	p := New(1, 64, zerolog.Nop())
	defer p.StopWait()

	var (
		mu  sync.Mutex
		got []int
	)
	for i := 0; i < 50; i++ {
		i := i
		require.NoError(t, p.Submit(func() error {
			time.Sleep(time.Duration(50-i) * 10 * time.Microsecond)
			mu.Lock()
			got = append(got, i)
			mu.Unlock()
			return nil
		}))
	}
	require.NoError(t, p.SubmitWait(func() error { return nil }))

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, 50)
	for i, v := range got {
		assert.Equal(t, i, v)
	}
}
