// Package storage persists the task list and notification settings as two
// JSON blobs in a local sqlite database.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	_ "modernc.org/sqlite"

	"taken/internal/notify"
	"taken/internal/task"
)

const (
	keyTasks    = "tasks"
	keySettings = "settings"
)

type Store struct {
	db     *sql.DB
	logger *log.Logger
}

func Open(dbPath string, logger *log.Logger) (*Store, error) {
	if dbPath == "" {
		return nil, errors.New("db path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, err
	}
	dsn := sqliteDSN(dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db, logger: logger}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	const ddl = `
CREATE TABLE IF NOT EXISTS blobs (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at TEXT NOT NULL
);`
	_, err := s.db.Exec(ddl)
	return err
}

// LoadTasks reads the persisted task list. An absent key yields an empty
// list; a blob that fails decoding or schema validation is treated the same
// way, logged at warn level, and left in place until the next save.
func (s *Store) LoadTasks() ([]task.Task, error) {
	raw, ok, err := s.readBlob(keyTasks)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	if err := validateTaskBlob(raw); err != nil {
		s.logger.Warn("ignoring malformed task blob", "err", err)
		return nil, nil
	}
	var tasks []task.Task
	if err := json.Unmarshal(raw, &tasks); err != nil {
		s.logger.Warn("ignoring undecodable task blob", "err", err)
		return nil, nil
	}
	for i := range tasks {
		tasks[i] = tasks[i].Normalize()
	}
	return tasks, nil
}

func (s *Store) SaveTasks(tasks []task.Task) error {
	if tasks == nil {
		tasks = []task.Task{}
	}
	raw, err := json.Marshal(tasks)
	if err != nil {
		return err
	}
	return s.writeBlob(keyTasks, raw)
}

// LoadSettings returns the persisted notification settings, or the defaults
// when the key is absent or the blob does not decode.
func (s *Store) LoadSettings() (notify.Settings, error) {
	raw, ok, err := s.readBlob(keySettings)
	if err != nil {
		return notify.DefaultSettings(), err
	}
	if !ok {
		return notify.DefaultSettings(), nil
	}
	var cfg notify.Settings
	if err := json.Unmarshal(raw, &cfg); err != nil {
		s.logger.Warn("ignoring malformed settings blob", "err", err)
		return notify.DefaultSettings(), nil
	}
	return cfg.Normalize(), nil
}

func (s *Store) SaveSettings(cfg notify.Settings) error {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	return s.writeBlob(keySettings, raw)
}

func (s *Store) readBlob(key string) ([]byte, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM blobs WHERE key = ?;`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(value), true, nil
}

func (s *Store) writeBlob(key string, value []byte) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`INSERT INTO blobs (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at;`,
		key, string(value), now)
	return err
}

func sqliteDSN(path string) string {
	if strings.HasPrefix(path, "file:") {
		return path
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		path = abs
	}
	u := url.URL{
		Scheme: "file",
		Path:   path,
	}
	q := u.Query()
	q.Set("mode", "rwc")
	q.Set("_pragma", "busy_timeout(5000)")
	u.RawQuery = q.Encode()
	return u.String()
}
