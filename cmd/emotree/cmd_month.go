package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"emotree/cmd/emotree/ui"
	"emotree/internal/journal"
	"emotree/internal/watch"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	monthYear   int
	monthNumber int
	monthWatch  bool
	scatterN    int
)

var monthCmd = &cobra.Command{
	Use:   "month",
	Short: "Show a month's tree of ornaments",
	Long: `Renders the calendar of a month with one ornament per written day.
Ornaments not yet placed on the tree are dimmed.

With --watch the view is redrawn whenever another emotree process writes
to the journal.`,
	RunE: runMonth,
}

var reflectCmd = &cobra.Command{
	Use:   "reflect",
	Short: "Compose and save a reflection over a month's entries",
	RunE:  runReflect,
}

var scatterCmd = &cobra.Command{
	Use:   "scatter",
	Short: "Lay out gallery positions around the tree",
	RunE:  runScatter,
}

// selectedMonth returns the --year/--month flags, defaulting to the current month.
func selectedMonth() (int, int) {
	now := time.Now()
	year, month := monthYear, monthNumber
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = int(now.Month())
	}
	return year, month
}

func runMonth(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	rt, err := openRuntime(ctx, true)
	if err != nil {
		return err
	}
	defer rt.Close()

	year, month := selectedMonth()
	render := func(ctx context.Context) error {
		layout, err := rt.session.MonthLayout(ctx, year, month)
		if err != nil {
			return err
		}
		styles := rt.styles(ctx)
		fmt.Println(styles.Month(year, month, layout))
		if len(layout) > 0 {
			fmt.Print(styles.Ornaments(layout))
		}
		return nil
	}

	if err := render(ctx); err != nil {
		return err
	}
	if !monthWatch {
		return nil
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, err := watch.NewStoreWatcher(rt.cfg.StoragePath(rt.workspace), func(ctx context.Context) {
		fmt.Println()
		if err := render(ctx); err != nil {
			getLogger().Warn("failed to redraw month", zap.Error(err))
		}
	})
	if err != nil {
		return err
	}
	if err := w.Start(ctx); err != nil {
		w.Stop()
		return err
	}
	defer w.Stop()

	getLogger().Debug("watching journal", zap.String("path", rt.cfg.StoragePath(rt.workspace)))
	<-ctx.Done()
	return nil
}

func runReflect(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	rt, err := openRuntime(ctx, true)
	if err != nil {
		return err
	}
	defer rt.Close()
	styles := rt.styles(ctx)

	year, month := selectedMonth()
	r, err := rt.session.ComposeMonthlyReflection(ctx, year, month)
	if errors.Is(err, journal.ErrEmptyMonth) {
		fmt.Println(styles.Subtitle.Render(fmt.Sprintf("Nothing to reflect on: no entries in %d-%02d.", year, month)))
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Println(styles.MonthlyReflection(r))
	return nil
}

func runScatter(cmd *cobra.Command, args []string) error {
	if scatterN < 0 {
		return fmt.Errorf("--count must not be negative, got %d", scatterN)
	}
	styles := ui.DefaultStyles()
	session := journal.NewSession(nil)
	out := styles.Positions(session.Scatter(scatterN))
	if out == "" {
		fmt.Println(styles.Muted.Render("nothing to scatter"))
		return nil
	}
	fmt.Print(out)
	return nil
}
