package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"datathieves/internal/infra"
	"datathieves/internal/ui/tui"
	"datathieves/internal/viewmodel"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	RunE:  runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, closeLog, err := infra.NewFileLogger(cfg.SaveDir, debug)
	if err != nil {
		log = infra.NewLogger("production", debug, os.Stderr)
	} else {
		defer func() { _ = closeLog() }()
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	rt, err := openRuntime(ctx, log)
	if err != nil {
		return err
	}
	defer rt.closeFn()

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
	defer func() { _ = vm.Clear() }()

	return tui.Run(tui.Deps{Game: vm, Log: log})
}
