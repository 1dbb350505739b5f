// Package backup snapshots the SQLite database before destructive operations
// such as retraining the scorer, and restores those snapshots on request.
package backup

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/natefinch/atomic"
	_ "modernc.org/sqlite"

	"github.com/julianstephens/tasklit/internal/constants"
	"github.com/julianstephens/tasklit/internal/logger"
)

// stampFormat sorts lexically in time order and is unique to the millisecond.
const stampFormat = "20060102-150405.000"

// ErrNoDatabase is returned when there is no database file to back up.
var ErrNoDatabase = errors.New("database does not exist")

type Info struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

type Manager struct {
	dbPath    string
	backupDir string
	keep      int
	now       func() time.Time
}

type Option func(*Manager)

// WithKeep sets how many backups survive rotation.
func WithKeep(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.keep = n
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// NewManager manages backups of dbPath in a directory next to it.
func NewManager(dbPath string, opts ...Option) *Manager {
	m := &Manager{
		dbPath:    dbPath,
		backupDir: filepath.Join(filepath.Dir(dbPath), constants.BackupDirName),
		keep:      constants.MaxBackups,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) Dir() string {
	return m.backupDir
}

// Create snapshots the database and rotates old backups.
func (m *Manager) Create() (string, error) {
	path, err := m.snapshot()
	if err != nil {
		return "", err
	}
	if err := m.rotate(); err != nil {
		logger.Warn("failed to rotate backups", "dir", m.backupDir, "error", err)
	}
	return path, nil
}

func (m *Manager) snapshot() (string, error) {
	if _, err := os.Stat(m.dbPath); errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", ErrNoDatabase, m.dbPath)
	}
	if err := os.MkdirAll(m.backupDir, 0o700); err != nil {
		return "", fmt.Errorf("creating backup directory: %w", err)
	}

	stamp := m.now().UTC()
	path := m.pathFor(stamp)
	for i := 0; fileExists(path); i++ {
		if i == 1000 {
			return "", fmt.Errorf("no free backup name for %s", stamp.Format(stampFormat))
		}
		stamp = stamp.Add(time.Millisecond)
		path = m.pathFor(stamp)
	}

	if err := vacuumInto(m.dbPath, path); err != nil {
		return "", fmt.Errorf("backing up database: %w", err)
	}
	logger.Info("database backed up", "path", path)
	return path, nil
}

func (m *Manager) pathFor(stamp time.Time) string {
	name := constants.BackupFilePrefix + stamp.Format(stampFormat) + constants.BackupFileSuffix
	return filepath.Join(m.backupDir, name)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// vacuumInto writes a compacted, consistent copy of src to dst.
func vacuumInto(src, dst string) error {
	db, err := sql.Open("sqlite", src+"?mode=ro")
	if err != nil {
		return err
	}
	defer db.Close()

	if err := verify(db); err != nil {
		return fmt.Errorf("source database is unreadable: %w", err)
	}
	if _, err := db.Exec("VACUUM INTO ?", dst); err != nil {
		return err
	}
	return nil
}

func verify(db *sql.DB) error {
	var n int
	return db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&n)
}

// List returns the backups newest first. Files that do not follow the backup
// naming scheme are ignored.
func (m *Manager) List() ([]Info, error) {
	entries, err := os.ReadDir(m.backupDir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading backup directory: %w", err)
	}

	var backups []Info
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, constants.BackupFilePrefix) || !strings.HasSuffix(name, constants.BackupFileSuffix) {
			continue
		}
		raw := strings.TrimSuffix(strings.TrimPrefix(name, constants.BackupFilePrefix), constants.BackupFileSuffix)
		stamp, err := time.Parse(stampFormat, raw)
		if err != nil {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, Info{
			Path:      filepath.Join(m.backupDir, name),
			Timestamp: stamp,
			Size:      info.Size(),
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})
	return backups, nil
}

func (m *Manager) rotate() error {
	backups, err := m.List()
	if err != nil {
		return err
	}
	for _, b := range backups[min(m.keep, len(backups)):] {
		if err := os.Remove(b.Path); err != nil {
			return fmt.Errorf("removing old backup %s: %w", b.Path, err)
		}
		logger.Debug("removed old backup", "path", b.Path)
	}
	return nil
}

// Restore replaces the database with the backup at path. The current database,
// if any, is snapshotted first without rotation so the restore can be undone.
// It returns the path of that safety snapshot, or "" when there was none.
func (m *Manager) Restore(path string) (string, error) {
	if err := verifyFile(path); err != nil {
		return "", fmt.Errorf("backup %s is not a valid database: %w", path, err)
	}

	var safety string
	if fileExists(m.dbPath) {
		var err error
		if safety, err = m.snapshot(); err != nil {
			return "", fmt.Errorf("backing up current database before restore: %w", err)
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening backup: %w", err)
	}
	defer f.Close()

	if err := atomic.WriteFile(m.dbPath, f); err != nil {
		return "", fmt.Errorf("restoring database: %w", err)
	}
	logger.Info("database restored", "from", path)
	return safety, nil
}

func verifyFile(path string) error {
	if !fileExists(path) {
		return fmt.Errorf("%s: %w", path, os.ErrNotExist)
	}
	db, err := sql.Open("sqlite", path+"?mode=ro")
	if err != nil {
		return err
	}
	defer db.Close()
	return verify(db)
}
