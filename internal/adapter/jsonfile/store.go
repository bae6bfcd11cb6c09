// Package jsonfile implements the default file-backed journal store: the mood
// log is one JSON array, the schedule one JSON object.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"vibematrix/internal/domain"
)

const (
	emptyLog      = "[]"
	emptySchedule = "null"
)

// Store reads and rewrites whole files. It is not safe for concurrent
// writers in separate processes.
type Store struct {
	logPath      string
	schedulePath string
	now          func() time.Time
	logger       *zap.Logger
}

var _ domain.MoodRepository = (*Store)(nil)
var _ domain.ScheduleRepository = (*Store)(nil)

// New creates a Store for the given log and schedule files.
func New(logPath, schedulePath string, logger *zap.Logger) *Store {
	return &Store{
		logPath:      logPath,
		schedulePath: schedulePath,
		now:          time.Now,
		logger:       logger,
	}
}

// WithClock replaces the timestamp source used by Append.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// LogPath is the mood log file.
func (s *Store) LogPath() string { return s.logPath }

// EnsureFiles writes empty placeholders for missing files. Failures are
// logged; the next write will report them again.
func (s *Store) EnsureFiles() {
	for path, placeholder := range map[string]string{s.logPath: emptyLog, s.schedulePath: emptySchedule} {
		if err := ensureFile(path, placeholder); err != nil {
			s.logger.Warn("could not create data file", zap.String("path", path), zap.Error(err))
		}
	}
}

func ensureFile(path, placeholder string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return writeFileAtomic(path, []byte(placeholder))
}

// LoadAll returns every logged entry. A missing, unreadable or corrupt log
// yields an empty history, never an error.
func (s *Store) LoadAll(ctx context.Context) ([]domain.MoodEntry, error) {
	data, err := os.ReadFile(s.logPath)
	if errors.Is(err, fs.ErrNotExist) {
		if err := ensureFile(s.logPath, emptyLog); err != nil {
			s.logger.Warn("could not create mood log", zap.String("path", s.logPath), zap.Error(err))
		}
		return []domain.MoodEntry{}, nil
	}
	if err != nil {
		s.logger.Warn("could not read mood log", zap.String("path", s.logPath), zap.Error(err))
		return []domain.MoodEntry{}, nil
	}

	var entries []domain.MoodEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		s.logger.Warn("mood log is not valid JSON, treating as empty", zap.String("path", s.logPath), zap.Error(err))
		return []domain.MoodEntry{}, nil
	}
	if entries == nil {
		entries = []domain.MoodEntry{}
	}
	return entries, nil
}

// Append stamps the input with the current time and a fresh id, then
// rewrites the log with the entry at the end.
func (s *Store) Append(ctx context.Context, in domain.MoodInput) (domain.MoodEntry, error) {
	entries, _ := s.LoadAll(ctx)
	e := domain.MoodEntry{
		ID:      uuid.NewString(),
		Name:    in.Name,
		Emoji:   in.Emoji,
		Message: in.Message,
		Date:    s.now(),
		Tag:     in.Tag,
	}
	entries = append(entries, e)

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return domain.MoodEntry{}, fmt.Errorf("encode mood log: %w", err)
	}
	if err := writeFileAtomic(s.logPath, data); err != nil {
		return domain.MoodEntry{}, fmt.Errorf("write mood log: %w", err)
	}
	return e, nil
}

// LoadSchedule returns the saved schedule, or nil when none is saved or the
// file cannot be parsed.
func (s *Store) LoadSchedule(ctx context.Context) (*domain.ScheduleConfig, error) {
	data, err := os.ReadFile(s.schedulePath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		s.logger.Warn("could not read schedule", zap.String("path", s.schedulePath), zap.Error(err))
		return nil, nil
	}

	if trimmed := bytes.TrimSpace(data); len(trimmed) == 0 || string(trimmed) == emptyLog {
		return nil, nil
	}

	var cfg *domain.ScheduleConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		s.logger.Warn("schedule is not valid JSON, ignoring", zap.String("path", s.schedulePath), zap.Error(err))
		return nil, nil
	}
	return cfg, nil
}

// SaveSchedule overwrites the schedule file.
func (s *Store) SaveSchedule(ctx context.Context, cfg domain.ScheduleConfig) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode schedule: %w", err)
	}
	return writeFileAtomic(s.schedulePath, data)
}

// ClearSchedule resets the schedule file to its empty placeholder.
func (s *Store) ClearSchedule(ctx context.Context) error {
	return writeFileAtomic(s.schedulePath, []byte(emptySchedule))
}

// writeFileAtomic replaces path via a temp file in the same directory.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
