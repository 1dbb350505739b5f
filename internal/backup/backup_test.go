package backup

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T, rows int) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "tasklit.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(`CREATE TABLE kv (key TEXT PRIMARY KEY, value TEXT NOT NULL)`); err != nil {
		t.Fatalf("creating table: %v", err)
	}
	for i := 0; i < rows; i++ {
		if _, err := db.Exec(`INSERT INTO kv (key, value) VALUES (?, ?)`, string(rune('a'+i)), "v"); err != nil {
			t.Fatalf("inserting row: %v", err)
		}
	}
	return dbPath
}

func countRows(t *testing.T, path string) int {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("opening %s: %v", path, err)
	}
	defer db.Close()
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM kv`).Scan(&n); err != nil {
		t.Fatalf("counting rows in %s: %v", path, err)
	}
	return n
}

// stepClock advances one second per call.
func stepClock(start time.Time) func() time.Time {
	current := start
	return func() time.Time {
		current = current.Add(time.Second)
		return current
	}
}

func TestCreate(t *testing.T) {
	dbPath := setupTestDB(t, 2)
	mgr := NewManager(dbPath)

	path, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if filepath.Dir(path) != mgr.Dir() {
		t.Errorf("backup written to %s, want it in %s", path, mgr.Dir())
	}
	if n := countRows(t, path); n != 2 {
		t.Errorf("backup has %d rows, want 2", n)
	}
}

func TestCreateWithoutDatabase(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.db"))
	if _, err := mgr.Create(); !errors.Is(err, ErrNoDatabase) {
		t.Errorf("Create() error = %v, want ErrNoDatabase", err)
	}
}

func TestRotation(t *testing.T) {
	dbPath := setupTestDB(t, 1)
	mgr := NewManager(dbPath, WithKeep(3), WithClock(stepClock(time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC))))

	var created []string
	for i := 0; i < 5; i++ {
		path, err := mgr.Create()
		if err != nil {
			t.Fatalf("Create() #%d error = %v", i, err)
		}
		created = append(created, path)
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(backups) != 3 {
		t.Fatalf("List() returned %d backups, want 3", len(backups))
	}
	for i, want := range []string{created[4], created[3], created[2]} {
		if backups[i].Path != want {
			t.Errorf("backups[%d] = %s, want %s", i, backups[i].Path, want)
		}
	}
}

func TestSameInstantGetsUniqueNames(t *testing.T) {
	dbPath := setupTestDB(t, 1)
	fixed := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	mgr := NewManager(dbPath, WithClock(func() time.Time { return fixed }))

	seen := map[string]bool{}
	for i := 0; i < 3; i++ {
		path, err := mgr.Create()
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if seen[path] {
			t.Fatalf("duplicate backup path %s", path)
		}
		seen[path] = true
	}
}

func TestListIgnoresForeignFiles(t *testing.T) {
	dbPath := setupTestDB(t, 1)
	mgr := NewManager(dbPath)
	if _, err := mgr.Create(); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	for _, name := range []string{"notes.txt", "tasklit-garbage.db"} {
		if err := os.WriteFile(filepath.Join(mgr.Dir(), name), []byte("x"), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(backups) != 1 {
		t.Errorf("List() returned %d backups, want 1", len(backups))
	}
}

func TestListWithoutDirectory(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "tasklit.db"))
	backups, err := mgr.List()
	if err != nil || len(backups) != 0 {
		t.Errorf("List() = %v, %v; want empty", backups, err)
	}
}

func TestRestoreRejectsInvalidBackup(t *testing.T) {
	dbPath := setupTestDB(t, 1)
	mgr := NewManager(dbPath)

	bogus := filepath.Join(t.TempDir(), "bogus.db")
	if err := os.WriteFile(bogus, []byte("not a database at all, just text"), 0o600); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{bogus, filepath.Join(t.TempDir(), "absent.db")} {
		if _, err := mgr.Restore(path); err == nil {
			t.Errorf("Restore(%s) succeeded, want error", path)
		}
	}
	if n := countRows(t, dbPath); n != 1 {
		t.Errorf("database changed after failed restore: %d rows", n)
	}
}
