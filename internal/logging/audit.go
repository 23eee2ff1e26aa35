package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// =============================================================================
// AUDIT EVENT TYPES
// =============================================================================

// AuditEventType names a journal mutation recorded in the audit trail.
type AuditEventType string

const (
	// Entry lifecycle
	AuditEntryWritten AuditEventType = "entry_written"
	AuditEntryPlaced  AuditEventType = "entry_placed"

	// Month summaries
	AuditReflectionComposed AuditEventType = "reflection_composed"

	// Settings and whole-journal operations
	AuditPreferencesUpdated AuditEventType = "preferences_updated"
	AuditJournalReset       AuditEventType = "journal_reset"
	AuditJournalSeeded      AuditEventType = "journal_seeded"

	// Failures
	AuditStoreError AuditEventType = "store_error"
)

// AuditEvent is one line of the audit trail.
type AuditEvent struct {
	EventType AuditEventType
	Target    string // entry id or month key
	Success   bool
	Duration  time.Duration
	Error     string
	Fields    map[string]interface{}
}

// =============================================================================
// AUDIT LOGGER
// =============================================================================

var (
	auditMu   sync.Mutex
	auditFile *os.File
	auditZap  *zap.Logger
)

// AuditLogger writes audit events tagged with a category.
type AuditLogger struct {
	category Category
}

// InitAudit opens <logs>/<date>_audit.log. The trail is JSON lines, one per
// event, and is only written in debug mode.
func InitAudit() error {
	if !IsDebugMode() {
		return nil
	}

	auditMu.Lock()
	defer auditMu.Unlock()

	if auditFile != nil {
		return nil
	}

	optsMu.RLock()
	dir := logsDir
	optsMu.RUnlock()

	path := filepath.Join(dir, fmt.Sprintf("%s_audit.log", time.Now().Format("2006-01-02")))
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to create audit log: %w", err)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.MessageKey = "event"
	encCfg.LevelKey = ""
	encCfg.EncodeTime = zapcore.EpochMillisTimeEncoder

	auditFile = file
	auditZap = zap.New(zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(file), zapcore.DebugLevel))
	return nil
}

// CloseAudit flushes and closes the audit log.
func CloseAudit() {
	auditMu.Lock()
	defer auditMu.Unlock()

	if auditZap != nil {
		_ = auditZap.Sync()
		auditZap = nil
	}
	if auditFile != nil {
		auditFile.Close()
		auditFile = nil
	}
}

// Audit returns an audit logger for the session category.
func Audit() *AuditLogger {
	return &AuditLogger{category: CategorySession}
}

// AuditFor returns an audit logger tagged with category.
func AuditFor(category Category) *AuditLogger {
	return &AuditLogger{category: category}
}

// Log writes an audit event. It is a no-op until InitAudit succeeds.
func (a *AuditLogger) Log(event AuditEvent) {
	auditMu.Lock()
	defer auditMu.Unlock()

	if auditZap == nil {
		return
	}

	fields := []zap.Field{
		zap.String("cat", string(a.category)),
		zap.String("target", event.Target),
		zap.Bool("success", event.Success),
	}
	if event.Duration > 0 {
		fields = append(fields, zap.Int64("dur_ms", event.Duration.Milliseconds()))
	}
	if event.Error != "" {
		fields = append(fields, zap.String("error", event.Error))
	}
	if len(event.Fields) > 0 {
		fields = append(fields, zap.Any("fields", event.Fields))
	}
	auditZap.Info(string(event.EventType), fields...)
}

// =============================================================================
// CONVENIENCE METHODS
// =============================================================================

// EntryWritten records a new journal entry.
func (a *AuditLogger) EntryWritten(id, day, emotion string, intensity float64) {
	a.Log(AuditEvent{
		EventType: AuditEntryWritten,
		Target:    id,
		Success:   true,
		Fields: map[string]interface{}{
			"day":       day,
			"emotion":   emotion,
			"intensity": intensity,
		},
	})
}

// EntryPlaced records an ornament hung on the tree.
func (a *AuditLogger) EntryPlaced(id string) {
	a.Log(AuditEvent{EventType: AuditEntryPlaced, Target: id, Success: true})
}

// ReflectionComposed records a stored monthly reflection.
func (a *AuditLogger) ReflectionComposed(month string, entries int, dominant string) {
	a.Log(AuditEvent{
		EventType: AuditReflectionComposed,
		Target:    month,
		Success:   true,
		Fields: map[string]interface{}{
			"entries":  entries,
			"dominant": dominant,
		},
	})
}

// PreferencesUpdated records the preferences after a merge.
func (a *AuditLogger) PreferencesUpdated(theme string, sound, animations bool) {
	a.Log(AuditEvent{
		EventType: AuditPreferencesUpdated,
		Success:   true,
		Fields: map[string]interface{}{
			"theme":      theme,
			"sound":      sound,
			"animations": animations,
		},
	})
}

// JournalReset records a full wipe.
func (a *AuditLogger) JournalReset() {
	a.Log(AuditEvent{EventType: AuditJournalReset, Success: true})
}

// JournalSeeded records sample entries written into an empty store.
func (a *AuditLogger) JournalSeeded(count int) {
	a.Log(AuditEvent{
		EventType: AuditJournalSeeded,
		Success:   true,
		Fields:    map[string]interface{}{"count": count},
	})
}

// StoreError records a failed store operation.
func (a *AuditLogger) StoreError(op string, duration time.Duration, err error) {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	a.Log(AuditEvent{
		EventType: AuditStoreError,
		Target:    op,
		Duration:  duration,
		Error:     msg,
	})
}
