// Package viewmodel is the boundary the presentation layer talks to: an
// observable game-state stream and the player intents.
package viewmodel

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"datathieves/internal/catalog"
	"datathieves/internal/clock"
	"datathieves/internal/commands"
	"datathieves/internal/config"
	"datathieves/internal/domain"
	"datathieves/internal/events"
	"datathieves/internal/service"
	"datathieves/internal/store"
)

type Deps struct {
	Config  config.Config
	Catalog *catalog.Catalog
	Clock   clock.Clock
	Repo    store.Repository
	Sinks   []events.Sink
	Log     zerolog.Logger
}

type GameViewModel struct {
	svc  *service.GameService
	repo store.Repository
	cfg  config.Config
	log  zerolog.Logger
	disp *events.Dispatcher

	out   chan *domain.GameState
	unsub func()

	cancel context.CancelFunc
	g      *errgroup.Group

	saveMu    sync.Mutex
	clearOnce sync.Once
	clearErr  error
}

// New restores the configured save (or starts a fresh game) and starts the
// accrual and autosave loops. Call Clear to stop them.
func New(ctx context.Context, deps Deps) (*GameViewModel, error) {
	if deps.Catalog == nil {
		deps.Catalog = catalog.Default()
	}
	if deps.Clock == nil {
		deps.Clock = clock.RealClock{}
	}
	if deps.Repo == nil {
		return nil, errors.New("viewmodel: repository is required")
	}

	disp := events.NewDispatcher(deps.Log, deps.Sinks...)
	svc := service.NewGameService(deps.Config, deps.Catalog, deps.Clock, service.WithPublisher(disp))

	saved, err := deps.Repo.Load(ctx, deps.Config.SaveID)
	switch {
	case err == nil:
		if err := svc.Restore(saved); err != nil {
			disp.Close()
			return nil, fmt.Errorf("restore save %s: %w", deps.Config.SaveID, err)
		}
		minted := svc.Settle()
		deps.Log.Info().Str("save_id", deps.Config.SaveID).Uint64("offline_minted", uint64(minted)).Msg("game.restored")
	case errors.Is(err, domain.ErrNotFound):
		deps.Log.Info().Str("save_id", deps.Config.SaveID).Msg("game.new")
	default:
		disp.Close()
		return nil, fmt.Errorf("load save %s: %w", deps.Config.SaveID, err)
	}

	loopCtx, cancel := context.WithCancel(context.Background())
	g, gctx := errgroup.WithContext(loopCtx)

	sub, unsub := svc.Subscribe()
	vm := &GameViewModel{
		svc:    svc,
		repo:   deps.Repo,
		cfg:    deps.Config,
		log:    deps.Log,
		disp:   disp,
		out:    make(chan *domain.GameState, 1),
		unsub:  unsub,
		cancel: cancel,
		g:      g,
	}

	g.Go(func() error { return vm.forward(gctx, sub) })
	g.Go(func() error { return vm.tickLoop(gctx) })
	g.Go(func() error { return vm.autosaveLoop(gctx) })

	return vm, nil
}

// GameState is the observable state stream. It always holds the latest
// snapshot and is closed by Clear.
func (vm *GameViewModel) GameState() <-chan *domain.GameState {
	return vm.out
}

// Snapshot returns the current state without waiting on the stream.
func (vm *GameViewModel) Snapshot() domain.GameState {
	return vm.svc.GetState()
}

// ClickMoney adds the click reward to the bank.
func (vm *GameViewModel) ClickMoney(ctx context.Context) (domain.GameState, error) {
	return vm.execute(ctx, &commands.CollectData{ID: uuid.NewString()})
}

// AddWorker buys the worker for job.
func (vm *GameViewModel) AddWorker(ctx context.Context, job domain.GameJob) (domain.GameState, error) {
	return vm.execute(ctx, commands.HireWorker{ID: uuid.NewString(), JobID: job.ID})
}

// UpgradeJob pays to advance job one level.
func (vm *GameViewModel) UpgradeJob(ctx context.Context, job domain.GameJob) (domain.GameState, error) {
	return vm.execute(ctx, commands.UpgradeJob{ID: uuid.NewString(), JobID: job.ID})
}

// Reset wipes progress on the current save slot.
func (vm *GameViewModel) Reset(ctx context.Context) (domain.GameState, error) {
	return vm.execute(ctx, commands.ResetGame{ID: uuid.NewString()})
}

func (vm *GameViewModel) execute(ctx context.Context, cmd commands.Command) (domain.GameState, error) {
	st, _, err := vm.svc.Execute(cmd)
	if err != nil {
		vm.log.Debug().Err(err).Str("command", cmd.Name()).Str("command_id", cmd.CommandID()).Msg("command.rejected")
		return st, err
	}
	vm.log.Debug().Str("command", cmd.Name()).Str("command_id", cmd.CommandID()).Uint64("version", st.Version).Msg("command.applied")

	if vm.cfg.SaveOnMutation {
		if err := vm.save(ctx); err != nil {
			return st, fmt.Errorf("%w: %w", domain.ErrNotPersisted, err)
		}
	}
	return st, nil
}

// Clear stops the loops, flushes the event journal, writes a final save and
// closes the state stream.
// It is safe to call more than once.
func (vm *GameViewModel) Clear() error {
	vm.clearOnce.Do(func() {
		vm.cancel()
		if err := vm.g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
			vm.log.Warn().Err(err).Msg("viewmodel.loop_failed")
		}
		vm.unsub()

		if err := vm.disp.Flush(); err != nil {
			vm.log.Warn().Err(err).Msg("viewmodel.flush_failed")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		vm.clearErr = vm.save(ctx)

		vm.disp.Close()
		close(vm.out)
		vm.log.Info().Msg("viewmodel.cleared")
	})
	return vm.clearErr
}

func (vm *GameViewModel) save(ctx context.Context) error {
	vm.saveMu.Lock()
	defer vm.saveMu.Unlock()

	st := vm.svc.GetState()
	if err := vm.repo.Save(ctx, st); err != nil {
		vm.log.Error().Err(err).Str("save_id", st.SaveID).Msg("game.save_failed")
		return fmt.Errorf("save game: %w", err)
	}
	return nil
}

func (vm *GameViewModel) forward(ctx context.Context, sub <-chan domain.GameState) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case st, ok := <-sub:
			if !ok {
				return nil
			}
			snap := st
			select {
			case <-vm.out:
			default:
			}
			vm.out <- &snap
		}
	}
}

func (vm *GameViewModel) tickLoop(ctx context.Context) error {
	t := time.NewTicker(vm.cfg.TickInterval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			vm.svc.Settle()
		}
	}
}

func (vm *GameViewModel) autosaveLoop(ctx context.Context) error {
	t := time.NewTicker(vm.cfg.SaveInterval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			// Failures are logged in save and retried on the next tick.
			_ = vm.save(ctx)
		}
	}
}
