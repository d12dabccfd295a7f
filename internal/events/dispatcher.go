package events

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"datathieves/internal/workerpool"
)

// Sink receives game events. Implementations must be safe for concurrent use.
type Sink interface {
	Handle(ctx context.Context, ev Event) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, ev Event) error

func (f SinkFunc) Handle(ctx context.Context, ev Event) error { return f(ctx, ev) }

// Dispatcher fans events out to sinks so a slow sink never blocks the game
// loop. Each sink has its own single-worker lane, so a sink sees events in
// the order they were published.
type Dispatcher struct {
	lanes   []lane
	log     zerolog.Logger
	timeout time.Duration
}

type lane struct {
	sink Sink
	pool *workerpool.Pool
}

const laneQueue = 256

func NewDispatcher(log zerolog.Logger, sinks ...Sink) *Dispatcher {
	d := &Dispatcher{log: log, timeout: 5 * time.Second}
	for _, s := range sinks {
		d.lanes = append(d.lanes, lane{sink: s, pool: workerpool.New(1, laneQueue, log)})
	}
	return d
}

// Publish queues evs for every sink. Events are dropped, with a warning,
// when a lane is full.
func (d *Dispatcher) Publish(evs ...Event) {
	for _, ev := range evs {
		for _, l := range d.lanes {
			ev, s := ev, l.sink
			err := l.pool.Submit(func() error {
				ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
				defer cancel()
				return s.Handle(ctx, ev)
			})
			if err != nil {
				d.log.Warn().Err(err).Str("type", string(ev.Type)).Uint64("event_id", ev.ID).Msg("events.dropped")
			}
		}
	}
}

// Flush blocks until every event published so far has reached its sinks.
func (d *Dispatcher) Flush() error {
	var errs []error
	for _, l := range d.lanes {
		if err := l.pool.SubmitWait(func() error { return nil }); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close delivers everything already queued and stops the lanes.
func (d *Dispatcher) Close() {
	for _, l := range d.lanes {
		l.pool.StopWait()
	}
}

// LogSink writes every event to a zerolog logger.
type LogSink struct {
	Log zerolog.Logger
}

func (l LogSink) Handle(_ context.Context, ev Event) error {
	l.Log.Info().
		Uint64("event_id", ev.ID).
		Str("save_id", ev.SaveID).
		Str("command_id", ev.CommandID).
		Str("type", string(ev.Type)).
		Interface("data", ev.Data).
		Msg("game.event")
	return nil
}
