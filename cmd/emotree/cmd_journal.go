package main

import (
	"errors"
	"fmt"

	"emotree/cmd/emotree/ui"
	"emotree/internal/journal"
	"emotree/internal/placement"
	"emotree/internal/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// writeCmd records today's entry
var writeCmd = &cobra.Command{
	Use:   "write [text]",
	Short: "Write today's journal entry",
	Long: `Classifies the text, composes a reflection and saves it as today's entry.
Only one entry can be written per day.

Example:
  emotree write "Nervous about tomorrow, but hopeful it goes well"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWrite,
}

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's entry and where it stands",
	RunE:  runToday,
}

var placeCmd = &cobra.Command{
	Use:   "place [entry-id]",
	Short: "Hang an entry's ornament on the tree (default: today's entry)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPlace,
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [text]",
	Short: "Preview how a text would be classified without saving it",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAnalyze,
}

func runWrite(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	rt, err := openRuntime(ctx, true)
	if err != nil {
		return err
	}
	defer rt.Close()
	styles := rt.styles(ctx)

	entry, err := rt.session.SubmitEntry(ctx, joinArgs(args))
	if errors.Is(err, journal.ErrAlreadyWritten) {
		fmt.Println(styles.Warning.Render("You've already written today."))
		if today, ok, terr := rt.session.TodayEntry(ctx); terr == nil && ok {
			fmt.Println(styles.Entry(today))
		}
		return nil
	}
	if err != nil {
		return err
	}

	getLogger().Info("entry written",
		zap.String("id", entry.ID),
		zap.String("emotion", string(entry.Emotion)),
		zap.Float64("intensity", entry.Intensity))

	fmt.Println(styles.Entry(entry))
	fmt.Println(styles.Muted.Render("Hang it on the tree with: emotree place"))
	return nil
}

func runToday(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	rt, err := openRuntime(ctx, true)
	if err != nil {
		return err
	}
	defer rt.Close()
	styles := rt.styles(ctx)

	phase, err := rt.session.Phase(ctx)
	if err != nil {
		return err
	}
	entry, ok, err := rt.session.TodayEntry(ctx)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println(styles.Subtitle.Render("No entry yet today. Write one with: emotree write \"...\""))
		fmt.Println(styles.Muted.Render("phase: " + phase.String()))
		return nil
	}

	fmt.Println(styles.Entry(entry))
	fmt.Println(styles.Muted.Render("phase: " + phase.String()))
	return nil
}

func runPlace(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	rt, err := openRuntime(ctx, true)
	if err != nil {
		return err
	}
	defer rt.Close()
	styles := rt.styles(ctx)

	var id string
	if len(args) > 0 {
		id = args[0]
	} else {
		today, ok, err := rt.session.TodayEntry(ctx)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println(styles.Subtitle.Render("Nothing to place: no entry written today."))
			return nil
		}
		id = today.ID
	}

	if err := rt.session.MarkPlaced(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("no entry with id %s", id)
		}
		return err
	}
	entry, err := rt.store.GetByID(ctx, id)
	if err != nil {
		return err
	}

	kind := rt.session.OrnamentKindFor(entry.Emotion)
	pos := rt.session.OrnamentPositionForDay(placement.DayOf(entry.Date))
	fmt.Printf("%s %s placed on %s at (%.0f, %.0f)\n",
		ui.Glyph(kind),
		styles.EmotionBadge(entry.Emotion),
		entry.Date.Format("Jan 2"),
		pos.X, pos.Y,
	)
	return nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	styles := ui.DefaultStyles()
	session := journal.NewSession(nil)
	fmt.Println(styles.Analysis(session.Analyze(joinArgs(args))))
	return nil
}
