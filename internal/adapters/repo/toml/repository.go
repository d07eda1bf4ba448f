package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/bnema/alexis-agent/internal/domain"
	"github.com/bnema/alexis-agent/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	SessionsPathKey       = "sessions.path"
	SessionsMaxRecordsKey = "sessions.max_records"

	defaultMaxRecords = 200
	sessionsFileMode  = 0o600
	sessionsDirMode   = 0o700
	sessionsConfigDir = ".config/alexis"
	sessionsFile      = "sessions.toml"
	tempFilePattern   = ".sessions-*.toml.tmp"
)

// Repository is the session ledger. Records are kept newest-last on disk and
// trimmed to maxRecords on every write.
type Repository struct {
	sessionsPath string
	maxRecords   int
	mu           *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.SessionRepository = (*Repository)(nil)

func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}
	cfg.SetDefault(SessionsPathKey, filepath.Join(homeDir, sessionsConfigDir, sessionsFile))
	cfg.SetDefault(SessionsMaxRecordsKey, defaultMaxRecords)

	sessionsPath := cfg.GetString(SessionsPathKey)
	if sessionsPath == "" {
		return nil, errors.New("sessions path is empty")
	}
	sessionsPath, err = normalizePath(sessionsPath)
	if err != nil {
		return nil, err
	}

	maxRecords := cfg.GetInt(SessionsMaxRecordsKey)
	if maxRecords <= 0 {
		maxRecords = defaultMaxRecords
	}

	return &Repository{sessionsPath: sessionsPath, maxRecords: maxRecords, mu: lockForPath(sessionsPath)}, nil
}

func (r *Repository) Path() string {
	return r.sessionsPath
}

// Save inserts or replaces the record with the same ID.
func (r *Repository) Save(ctx context.Context, record domain.SessionRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if record.ID == "" {
		return errors.New("session record has no id")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	encoded := toSchema(record)
	updated := false
	for i := range file.Sessions {
		if file.Sessions[i].ID == encoded.ID {
			file.Sessions[i] = encoded
			updated = true
			break
		}
	}
	if !updated {
		file.Sessions = append(file.Sessions, encoded)
	}
	if overflow := len(file.Sessions) - r.maxRecords; overflow > 0 {
		file.Sessions = file.Sessions[overflow:]
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeSchema(file)
}

// List returns the recorded sessions, most recently started first.
func (r *Repository) List(ctx context.Context) ([]domain.SessionRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	records := make([]domain.SessionRecord, 0, len(file.Sessions))
	for _, entry := range file.Sessions {
		records = append(records, fromSchema(entry))
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].StartedAt.After(records[j].StartedAt)
	})

	return records, nil
}

func (r *Repository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.sessionsPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{Version: currentSchemaVersion}, nil
		}
		return fileSchema{}, fmt.Errorf("read sessions file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode sessions file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func (r *Repository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	dir := filepath.Dir(r.sessionsPath)
	if err := os.MkdirAll(dir, sessionsDirMode); err != nil {
		return fmt.Errorf("create sessions directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode sessions file: %w", err)
	}

	tempFile, err := os.CreateTemp(dir, tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp sessions file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp sessions file: %w", err)
	}
	if err := tempFile.Chmod(sessionsFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp sessions file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp sessions file: %w", err)
	}
	if err := os.Rename(tempName, r.sessionsPath); err != nil {
		return fmt.Errorf("replace sessions file: %w", err)
	}
	cleanup = false

	return nil
}

func normalizePath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve sessions path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func toSchema(record domain.SessionRecord) sessionSchema {
	usage := usageSchema{
		InputTokens:       record.Usage.InputTokens,
		OutputTokens:      record.Usage.OutputTokens,
		CachedInputTokens: record.Usage.CachedInputTokens,
		TTSCharacters:     record.Usage.TTSCharacters,
	}
	if record.Usage.STTAudio > 0 {
		usage.STTAudio = record.Usage.STTAudio.String()
	}

	return sessionSchema{
		ID:           record.ID,
		Room:         record.Room,
		Identity:     record.Identity,
		StartedAt:    formatTime(record.StartedAt),
		EndedAt:      formatTime(record.EndedAt),
		FinalState:   string(record.FinalState),
		ToolCalls:    record.ToolCalls,
		ToolFailures: record.ToolFailures,
		Usage:        usage,
		Error:        record.Error,
	}
}

func fromSchema(entry sessionSchema) domain.SessionRecord {
	sttAudio, _ := time.ParseDuration(entry.Usage.STTAudio)

	return domain.SessionRecord{
		ID:           entry.ID,
		Room:         entry.Room,
		Identity:     entry.Identity,
		StartedAt:    parseTime(entry.StartedAt),
		EndedAt:      parseTime(entry.EndedAt),
		FinalState:   domain.SessionState(entry.FinalState),
		ToolCalls:    entry.ToolCalls,
		ToolFailures: entry.ToolFailures,
		Usage: domain.Usage{
			InputTokens:       entry.Usage.InputTokens,
			OutputTokens:      entry.Usage.OutputTokens,
			CachedInputTokens: entry.Usage.CachedInputTokens,
			TTSCharacters:     entry.Usage.TTSCharacters,
			STTAudio:          sttAudio,
		},
		Error: entry.Error,
	}
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.UTC().Format(time.RFC3339Nano)
}
