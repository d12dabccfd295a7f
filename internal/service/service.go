package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"datathieves/internal/catalog"
	"datathieves/internal/clock"
	"datathieves/internal/commands"
	"datathieves/internal/config"
	"datathieves/internal/domain"
	"datathieves/internal/events"
)

// Publisher receives the events produced by each command, in event ID
// order. Publish is called with the service lock held and must not block.
type Publisher interface {
	Publish(evs ...events.Event)
}

type Option func(*GameService)

// WithPublisher forwards emitted events to p.
func WithPublisher(p Publisher) Option {
	return func(s *GameService) { s.pub = p }
}

// WithSaveID overrides the save slot from the config.
func WithSaveID(id string) Option {
	return func(s *GameService) { s.st.SaveID = id }
}

type GameService struct {
	mu  sync.Mutex
	cfg config.Config
	cat *catalog.Catalog
	clk clock.Clock
	st  domain.GameState
	pub Publisher

	lastEventID uint64
	subs        map[int]chan domain.GameState
	nextSub     int
}

func NewGameService(cfg config.Config, cat *catalog.Catalog, clk clock.Clock, opts ...Option) *GameService {
	s := &GameService{
		cfg:  cfg,
		cat:  cat,
		clk:  clk,
		subs: make(map[int]chan domain.GameState),
	}
	s.st = s.freshState(cfg.SaveID, clk.Now())
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *GameService) freshState(saveID string, now time.Time) domain.GameState {
	return domain.GameState{
		SaveID:         saveID,
		StashedMoney:   domain.Gelds(s.cfg.StartingMoney),
		AvailableJobs:  s.cat.Jobs(),
		Workers:        []domain.Worker{},
		FirstStartedAt: now,
		LastSettledAt:  now,
	}
}

// Restore replaces the in-memory state with a persisted one. Jobs that
// the catalog no longer knows are dropped together with their workers, and
// new catalog jobs are appended at level 1. Offline progress is paid on the
// next Settle.
func (s *GameService) Restore(st domain.GameState) error {
	if st.SaveID == "" {
		return fmt.Errorf("restore: %w: empty save id", domain.ErrInvalidState)
	}

	restored := st.Clone()
	known := make(map[string]domain.GameJob, len(restored.AvailableJobs))
	for _, j := range restored.AvailableJobs {
		known[j.ID] = j
	}

	jobs := make([]domain.GameJob, 0, len(s.cat.Templates))
	for _, fresh := range s.cat.Jobs() {
		if saved, ok := known[fresh.ID]; ok && saved.Level.Level >= 1 {
			saved.Name = fresh.Name
			jobs = append(jobs, saved)
			continue
		}
		jobs = append(jobs, fresh)
	}
	restored.AvailableJobs = jobs

	workers := make([]domain.Worker, 0, len(restored.Workers))
	seen := make(map[string]bool, len(restored.Workers))
	for _, w := range restored.Workers {
		if _, ok := restored.Job(w.JobID); !ok || seen[w.JobID] {
			continue
		}
		seen[w.JobID] = true
		workers = append(workers, w)
	}
	restored.Workers = workers

	s.mu.Lock()
	s.st = restored
	snap := s.st.Clone()
	s.notifyLocked(snap)
	s.mu.Unlock()
	return nil
}

// GetState returns a deep copy of the current state.
func (s *GameService) GetState() domain.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.Clone()
}

// Settle pays every worker for its completed cycles and returns the amount minted.
func (s *GameService) Settle() domain.Gelds {
	cmd := &commands.Settle{}
	_, _, _ = s.Execute(cmd)
	return domain.Gelds(cmd.Minted)
}

// Execute applies cmd to the game state. On error the state is unchanged.
func (s *GameService) Execute(cmd commands.Command) (domain.GameState, []events.Event, error) {
	cmdID := cmd.CommandID()
	if cmdID == "" {
		cmdID = uuid.NewString()
	}

	s.mu.Lock()
	now := s.clk.Now()
	before := s.st.Version

	var evs []events.Event
	if ev, ok := s.settleLocked(now, cmdID); ok {
		evs = append(evs, ev)
	}

	var err error
	switch c := cmd.(type) {
	case commands.SyncState:
	case *commands.Settle:
		if len(evs) > 0 {
			c.Minted = uint64(evs[0].Data.(events.DataSettledData).Minted)
		}
	case *commands.CollectData:
		ev := s.collectLocked(now, cmdID)
		c.Collected = uint64(ev.Data.(events.DataCollectedData).Amount)
		evs = append(evs, ev)
	case commands.HireWorker:
		var ev events.Event
		if ev, err = s.hireLocked(now, cmdID, c.JobID); err == nil {
			evs = append(evs, ev)
		}
	case commands.UpgradeJob:
		var ev events.Event
		if ev, err = s.upgradeLocked(now, cmdID, c.JobID); err == nil {
			evs = append(evs, ev)
		}
	case commands.ResetGame:
		evs = append(evs, s.resetLocked(now, cmdID))
	default:
		err = fmt.Errorf("unsupported command %s", cmd.Name())
	}

	snap := s.st.Clone()
	if s.st.Version != before {
		s.notifyLocked(snap)
	}
	if s.pub != nil && len(evs) > 0 {
		s.pub.Publish(evs...)
	}
	s.mu.Unlock()

	return snap, evs, err
}

// Subscribe returns a channel that always holds the latest state after a
// change. Call the returned function to unsubscribe.
func (s *GameService) Subscribe() (<-chan domain.GameState, func()) {
	ch := make(chan domain.GameState, 1)

	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	ch <- s.st.Clone()
	s.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			close(ch)
			s.mu.Unlock()
		})
	}
}

func (s *GameService) notifyLocked(snap domain.GameState) {
	for _, ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		ch <- snap.Clone()
	}
}

func (s *GameService) newEventLocked(now time.Time, cmdID string, typ events.EventType, data any) events.Event {
	s.lastEventID++
	ev := events.New(s.lastEventID, now, cmdID, typ, data)
	ev.SaveID = s.st.SaveID
	return ev
}

func (s *GameService) settleLocked(now time.Time, cmdID string) (events.Event, bool) {
	from := s.st.LastSettledAt
	var minted domain.Gelds

	for i := range s.st.Workers {
		w := &s.st.Workers[i]
		job, ok := s.st.Job(w.JobID)
		if !ok {
			continue
		}
		d := job.Level.Duration
		if d <= 0 {
			continue
		}
		elapsed := now.Sub(w.LastPaidAt)
		if elapsed < d {
			continue
		}
		cycles := elapsed / d
		minted = minted.Add(job.Level.Earn.Mul(uint64(cycles)))
		w.LastPaidAt = w.LastPaidAt.Add(cycles * d)
	}

	if now.After(s.st.LastSettledAt) {
		s.st.LastSettledAt = now
	}
	if minted == 0 {
		return events.Event{}, false
	}

	s.st.StashedMoney = s.st.StashedMoney.Add(minted)
	s.st.Version++
	return s.newEventLocked(now, cmdID, events.EventTypeDataSettled, events.DataSettledData{
		Minted: minted,
		From:   from,
		To:     now,
	}), true
}

func (s *GameService) collectLocked(now time.Time, cmdID string) events.Event {
	amount := domain.Gelds(s.cfg.ClickReward)
	s.st.StashedMoney = s.st.StashedMoney.Add(amount)
	s.st.Version++
	return s.newEventLocked(now, cmdID, events.EventTypeDataCollected, events.DataCollectedData{
		Amount:  amount,
		Balance: s.st.StashedMoney,
	})
}

func (s *GameService) hireLocked(now time.Time, cmdID, jobID string) (events.Event, error) {
	job, ok := s.st.Job(jobID)
	if !ok {
		return events.Event{}, fmt.Errorf("hire %q: %w", jobID, domain.ErrUnknownJob)
	}
	if s.st.HasWorker(jobID) {
		return events.Event{}, fmt.Errorf("hire %q: %w", jobID, domain.ErrAlreadyOwned)
	}
	left, ok := s.st.StashedMoney.Sub(job.Level.Cost)
	if !ok {
		return events.Event{}, fmt.Errorf("hire %q: %w", jobID, domain.ErrInsufficientFunds)
	}

	s.st.StashedMoney = left
	s.st.Workers = append(s.st.Workers, domain.Worker{
		JobID:      jobID,
		HiredAt:    now,
		LastPaidAt: now,
	})
	s.st.Version++
	return s.newEventLocked(now, cmdID, events.EventTypeWorkerHired, events.WorkerHiredData{
		JobID: jobID,
		Cost:  job.Level.Cost,
	}), nil
}

func (s *GameService) upgradeLocked(now time.Time, cmdID, jobID string) (events.Event, error) {
	idx := -1
	for i, j := range s.st.AvailableJobs {
		if j.ID == jobID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return events.Event{}, fmt.Errorf("upgrade %q: %w", jobID, domain.ErrUnknownJob)
	}

	job := s.st.AvailableJobs[idx]
	left, ok := s.st.StashedMoney.Sub(job.Level.Cost)
	if !ok {
		return events.Event{}, fmt.Errorf("upgrade %q: %w", jobID, domain.ErrInsufficientFunds)
	}

	next := s.cat.Next(job)
	if next.Level.Cost <= job.Level.Cost || next.Level.Earn <= job.Level.Earn {
		return events.Event{}, fmt.Errorf("upgrade %q: %w", jobID, domain.ErrMaxLevel)
	}
	s.st.StashedMoney = left
	s.st.AvailableJobs[idx] = next
	s.st.Version++
	return s.newEventLocked(now, cmdID, events.EventTypeJobUpgraded, events.JobUpgradedData{
		JobID: jobID,
		Cost:  job.Level.Cost,
		From:  job.Level.Level,
		To:    next.Level.Level,
	}), nil
}

func (s *GameService) resetLocked(now time.Time, cmdID string) events.Event {
	discarded := s.st.StashedMoney
	version := s.st.Version
	s.st = s.freshState(s.st.SaveID, now)
	s.st.Version = version + 1
	return s.newEventLocked(now, cmdID, events.EventTypeGameReset, events.GameResetData{
		Discarded: discarded,
	})
}
