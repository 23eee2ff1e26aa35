package logging

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readLog(t *testing.T, dir string, cat Category) string {
	t.Helper()
	path := filepath.Join(dir, time.Now().Format("2006-01-02")+"_"+string(cat)+".log")
	data, err := os.ReadFile(path)
	require.NoError(t, err, "expected log file for %s", cat)
	return string(data)
}

func TestAllCategoriesLog(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	require.NoError(t, Initialize(dir, Options{DebugMode: true, Level: "debug"}))
	t.Cleanup(CloseAll)

	assert.True(t, IsDebugMode())

	Boot("boot %d", 1)
	Store("store %d", 2)
	StoreDebug("store debug")
	Emotion("emotion %s", "joy")
	EmotionDebug("emotion debug")
	PlacementDebug("placement debug")
	Session("session")
	SessionDebug("session debug")
	Seed("seed")
	CloseAll()

	assert.Contains(t, readLog(t, dir, CategoryBoot), "boot 1")
	assert.Contains(t, readLog(t, dir, CategoryStore), "store debug")
	assert.Contains(t, readLog(t, dir, CategoryEmotion), "emotion joy")
	assert.Contains(t, readLog(t, dir, CategoryPlacement), "placement debug")
	assert.Contains(t, readLog(t, dir, CategorySession), "session debug")
	assert.Contains(t, readLog(t, dir, CategorySeed), "seed")
}

func TestProductionModeWritesNothing(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	require.NoError(t, Initialize(dir, Options{DebugMode: false}))
	t.Cleanup(CloseAll)

	Store("should not appear")
	Get(CategorySession).Error("nor this")

	_, err := os.Stat(dir)
	assert.True(t, os.IsNotExist(err), "logs dir must not be created in production mode")
	assert.False(t, IsCategoryEnabled(CategoryStore))
}

func TestCategoryFilter(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	require.NoError(t, Initialize(dir, Options{
		DebugMode:  true,
		Categories: map[string]bool{"store": false, "session": true},
	}))
	t.Cleanup(CloseAll)

	assert.False(t, IsCategoryEnabled(CategoryStore))
	assert.True(t, IsCategoryEnabled(CategorySession))
	assert.True(t, IsCategoryEnabled(CategoryEmotion), "unlisted categories default to enabled")

	Store("filtered")
	_, err := os.Stat(filepath.Join(dir, time.Now().Format("2006-01-02")+"_store.log"))
	assert.True(t, os.IsNotExist(err))
}

func TestLevelFiltering(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	require.NoError(t, Initialize(dir, Options{DebugMode: true, Level: "warn"}))
	t.Cleanup(CloseAll)

	l := Get(CategorySession)
	l.Info("quiet info")
	l.Warn("loud warning")
	CloseAll()

	content := readLog(t, dir, CategorySession)
	assert.NotContains(t, content, "quiet info")
	assert.Contains(t, content, "loud warning")
}

func TestJSONFormatAndStructuredLog(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	require.NoError(t, Initialize(dir, Options{DebugMode: true, JSONFormat: true}))
	t.Cleanup(CloseAll)

	Get(CategoryStore).StructuredLog("info", "entry saved", map[string]interface{}{"id": "e-1"})
	CloseAll()

	content := readLog(t, dir, CategoryStore)
	line := strings.TrimSpace(content)
	assert.True(t, strings.HasPrefix(line, "{"), "expected JSON lines, got %q", line)
	assert.Contains(t, content, `"msg":"entry saved"`)
	assert.Contains(t, content, `"id":"e-1"`)
	assert.Contains(t, content, `"cat":"store"`)
}

func TestConcurrentGet(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	require.NoError(t, Initialize(dir, Options{DebugMode: true}))
	t.Cleanup(CloseAll)

	var wg sync.WaitGroup
	got := make([]*Logger, 16)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = Get(CategoryStore)
		}(i)
	}
	wg.Wait()
	for _, l := range got {
		assert.Same(t, got[0], l)
	}
}

func TestInitializeRequiresDir(t *testing.T) {
	assert.Error(t, Initialize("", Options{}))
}

func TestTimer(t *testing.T) {
	timer := StartTimer(CategoryStore, "op")
	assert.GreaterOrEqual(t, timer.Stop(), time.Duration(0))
	assert.GreaterOrEqual(t, StartTimer(CategoryStore, "op").StopWithThreshold(time.Hour), time.Duration(0))
}
