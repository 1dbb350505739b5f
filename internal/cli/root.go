package cli

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/tasklit/internal/backup"
	"github.com/julianstephens/tasklit/internal/interpreter"
	"github.com/julianstephens/tasklit/internal/keyring"
	"github.com/julianstephens/tasklit/internal/logger"
	"github.com/julianstephens/tasklit/internal/scorer"
	"github.com/julianstephens/tasklit/internal/session"
	"github.com/julianstephens/tasklit/internal/storage"
	"github.com/julianstephens/tasklit/internal/storage/postgres"
	"github.com/julianstephens/tasklit/internal/storage/sqlite"
	"github.com/julianstephens/tasklit/internal/utils"
)

// KeyringConfig selects the PostgreSQL connection string stored in the OS keyring.
const KeyringConfig = "keyring"

type Context struct {
	Store storage.Provider
	// Seed pins scorer initialisation and the priority blend; 0 means random.
	Seed int64
	Out  io.Writer
	// Confirm asks a yes/no question; nil prompts on the terminal.
	Confirm func(title string) (bool, error)

	sess *session.Session
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) printf(format string, args ...any) {
	fmt.Fprintf(c.out(), format, args...)
}

func (c *Context) println(args ...any) {
	fmt.Fprintln(c.out(), args...)
}

func (c *Context) confirm(title string) (bool, error) {
	if c.Confirm != nil {
		return c.Confirm(title)
	}
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	return ok, err
}

// Session builds the interpreter pipeline over the loaded store once and
// reuses it for the rest of the process.
func (c *Context) Session() (*session.Session, error) {
	if c.sess != nil {
		return c.sess, nil
	}
	settings, err := c.Store.GetSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	clock, err := utils.ClockFromSettings(settings)
	if err != nil {
		return nil, err
	}

	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	model := scorer.New(c.Store, scorer.WithSeed(seed), scorer.WithMaxEpochs(settings.MaxEpochs))
	interp := interpreter.New(model,
		interpreter.WithClock(clock),
		interpreter.WithRand(rand.New(rand.NewSource(seed))),
		interpreter.WithNeuralBlend(settings.NeuralBlend),
	)
	c.sess = session.New(interp, c.Store, settings.CanvasWidth)
	return c.sess, nil
}

// IsSQLite reports whether the store is the SQLite file store, the only kind
// that can be backed up.
func (c *Context) IsSQLite() bool {
	_, ok := c.Store.(*sqlite.Store)
	return ok
}

// PerformAutomaticBackup snapshots a SQLite store and only logs failures.
func (c *Context) PerformAutomaticBackup() {
	if !c.IsSQLite() {
		return
	}
	if _, err := backup.NewManager(c.Store.GetConfigPath()).Create(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// OpenStore picks a backend for the --config value: the OS keyring, a
// PostgreSQL URL, a .json file or, by default, a SQLite database file.
func OpenStore(config string) (storage.Provider, error) {
	if config == KeyringConfig {
		connStr, err := keyring.GetConnectionString()
		if errors.Is(err, keyring.ErrNotFound) {
			return nil, fmt.Errorf("no connection string in keyring, run 'tasklit keyring set' first: %w", err)
		}
		if err != nil {
			return nil, err
		}
		return postgres.New(connStr), nil
	}

	if postgres.IsConnString(config) {
		if _, err := postgres.ValidateConnString(config); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, fmt.Errorf("%w; store it with 'tasklit keyring set' and pass --config keyring", err)
			}
			return nil, err
		}
		return postgres.New(config), nil
	}

	path, err := ExpandHome(config)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return storage.NewJSONStore(path), nil
	}
	return sqlite.NewStore(path), nil
}
