package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"datathieves/internal/httpapi"
	"datathieves/internal/infra"
	"datathieves/internal/viewmodel"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the game over HTTP",
	Long:  `Start an HTTP server that exposes the game state and the player intents as JSON endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := infra.NewStdoutLogger(cfg.AppEnv, debug)

	rt, err := openRuntime(ctx, log)
	if err != nil {
		return err
	}
	defer rt.closeFn()
	if servePort > 0 {
		rt.cfg.Port = servePort
	}

	vm, err := viewmodel.New(ctx, viewmodel.Deps{
		Config:  rt.cfg,
		Catalog: rt.catalog,
		Repo:    rt.repo,
		Sinks:   rt.sinks(log),
		Log:     log,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := vm.Clear(); err != nil {
			log.Error().Err(err).Msg("final save failed")
		}
	}()

	server := httpapi.NewServer(rt.cfg, httpapi.NewRouter(httpapi.NewApp(vm, log)))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", server.Addr()).Msg("API listening")
		return server.Start()
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), rt.cfg.HTTPIdleTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	log.Info().Msg("server stopped")
	return err
}
