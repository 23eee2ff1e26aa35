package main

import (
	"fmt"

	"emotree/internal/seed"
	"emotree/internal/types"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	prefsTheme      string
	prefsSound      bool
	prefsAnimations bool
	resetConfirm    bool
	seedCount       int
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show or change preferences",
	Long: `Without flags, prints the stored preferences. Flags that are given are
merged over the stored values.

Example:
  emotree prefs --theme night --sound=false`,
	RunE: runPrefs,
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete every entry, reflection and preference",
	RunE:  runReset,
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Fill an empty journal with sample entries",
	RunE:  runSeed,
}

func runPrefs(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	rt, err := openRuntime(ctx, true)
	if err != nil {
		return err
	}
	defer rt.Close()

	var patch types.PreferencesPatch
	flags := cmd.Flags()
	if flags.Changed("theme") {
		patch.Theme = &prefsTheme
	}
	if flags.Changed("sound") {
		patch.SoundEnabled = &prefsSound
	}
	if flags.Changed("animations") {
		patch.AnimationsEnabled = &prefsAnimations
	}

	var prefs types.Preferences
	if patch == (types.PreferencesPatch{}) {
		prefs, err = rt.session.Preferences(ctx)
	} else {
		prefs, err = rt.session.UpdatePreferences(ctx, patch)
	}
	if err != nil {
		return err
	}

	fmt.Print(rt.styles(ctx).Preferences(prefs))
	return nil
}

func runReset(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	rt, err := openRuntime(ctx, false)
	if err != nil {
		return err
	}
	defer rt.Close()
	styles := rt.styles(ctx)

	if !resetConfirm {
		fmt.Println(styles.Warning.Render("This deletes the whole journal. Re-run with --yes to confirm."))
		return nil
	}
	if err := rt.session.Reset(ctx); err != nil {
		return err
	}

	getLogger().Info("journal reset", zap.String("workspace", rt.workspace))
	fmt.Println(styles.Success.Render("Journal cleared."))
	return nil
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	rt, err := openRuntime(ctx, false)
	if err != nil {
		return err
	}
	defer rt.Close()
	styles := rt.styles(ctx)

	count := seedCount
	if count <= 0 {
		count = rt.cfg.Seed.Count
	}
	if count <= 0 {
		return fmt.Errorf("seed count must be positive, got %d", count)
	}

	added, err := rt.store.EnsureSeeded(ctx, count, seed.New().Generate)
	if err != nil {
		return err
	}
	if added == 0 {
		fmt.Println(styles.Subtitle.Render("Journal already has entries or was seeded before; nothing added."))
		return nil
	}

	getLogger().Info("seeded sample entries", zap.Int("count", added))
	fmt.Println(styles.Success.Render(fmt.Sprintf("Added %d sample entries.", added)))
	return nil
}
