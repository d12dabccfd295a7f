package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"datathieves/internal/clock"
	"datathieves/internal/domain"
	"datathieves/internal/format"
	"datathieves/internal/service"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the bank and jobs of a save, including offline progress",
	RunE:  runStatus,
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete a save",
	RunE:  runReset,
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the job catalog",
	RunE:  runCatalog,
}

func init() {
	rootCmd.AddCommand(statusCmd, resetCmd, catalogCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	rt, err := openRuntime(ctx, diagLogger(cmd.ErrOrStderr()))
	if err != nil {
		return err
	}
	defer rt.closeFn()

	svc := service.NewGameService(rt.cfg, rt.catalog, clock.RealClock{})
	saved, err := rt.repo.Load(ctx, rt.cfg.SaveID)
	switch {
	case err == nil:
		if err := svc.Restore(saved); err != nil {
			return err
		}
		svc.Settle()
	case errors.Is(err, domain.ErrNotFound):
		fmt.Fprintf(cmd.OutOrStdout(), "No save %q yet, showing a new game.\n\n", rt.cfg.SaveID)
	default:
		return err
	}

	printState(cmd.OutOrStdout(), svc.GetState())
	return nil
}

func runReset(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	rt, err := openRuntime(ctx, diagLogger(cmd.ErrOrStderr()))
	if err != nil {
		return err
	}
	defer rt.closeFn()

	if err := rt.repo.Delete(ctx, rt.cfg.SaveID); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Save %q deleted.\n", rt.cfg.SaveID)
	return nil
}

func runCatalog(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCOST\tEARNS\tSECONDS")
	for _, j := range cat.Jobs() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n", j.ID, j.Name,
			format.HumanReadable(j.Level.Cost), format.HumanReadable(j.Level.Earn), format.Seconds(j.Level.Duration))
	}
	return w.Flush()
}

func printState(out io.Writer, st domain.GameState) {
	fmt.Fprintf(out, "Data Bank: %s Data\n\n", format.HumanReadable(st.StashedMoney))

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "JOB\tLEVEL\tCOST\tEARNS\tSECONDS\tSTATUS")
	for _, j := range st.AvailableJobs {
		status := "-"
		if st.HasWorker(j.ID) {
			status = "Purchased"
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%d\t%s\n", j.Name, j.Level.Level,
			format.HumanReadable(j.Level.Cost), format.HumanReadable(j.Level.Earn), format.Seconds(j.Level.Duration), status)
	}
	_ = w.Flush()
}
