package main

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/tasklit/internal/cli"
	"github.com/julianstephens/tasklit/internal/config"
	"github.com/julianstephens/tasklit/internal/constants"
	"github.com/julianstephens/tasklit/internal/errors"
	"github.com/julianstephens/tasklit/internal/logger"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Store location: a SQLite file, a .json file, a postgres:// URL, or 'keyring'." default:"${config}"`
	Debug   bool   `help:"Log debug output to stderr."`
	Seed    int64  `help:"Seed for scorer initialisation and priority blending; 0 is random."`

	Init  cli.InitCmd  `cmd:"" help:"Initialize tasklit storage and train the scorer."`
	Say   cli.SayCmd   `cmd:"" help:"Interpret a single command."`
	Repl  cli.ReplCmd  `cmd:"" help:"Read commands line by line."`
	Tui   cli.TuiCmd   `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Serve cli.ServeCmd `cmd:"" help:"Serve the HTTP API."`

	Canvas  cli.CanvasCmd  `cmd:"" help:"Render the task canvas."`
	Tasks   cli.TasksCmd   `cmd:"" help:"List stored tasks."`
	Done    cli.DoneCmd    `cmd:"" help:"Mark a task done."`
	Stats   cli.StatsCmd   `cmd:"" help:"Show scorer accuracy."`
	Retrain cli.RetrainCmd `cmd:"" help:"Retrain the scorer from scratch."`

	Settings cli.SettingsCmd `cmd:"" help:"Show or change settings."`
	Backup   struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Back up the SQLite database."`
		List    cli.BackupListCmd    `cmd:"" help:"List backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore a backup."`
	} `cmd:"" help:"Manage SQLite backups."`
	Keyring struct {
		Set    cli.KeyringSetCmd    `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
		Delete cli.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status cli.KeyringStatusCmd `cmd:"" help:"Show keyring availability."`
	} `cmd:"" help:"Manage the keyring-held connection string."`
}

func main() {
	wd, err := os.Getwd()
	if err != nil {
		errors.Fatalf("failed to get working directory: %w", err)
	}
	resolver, err := config.Resolver(config.Paths(wd, os.Environ())...)
	if err != nil {
		errors.Fatal(err)
	}

	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Natural-language task commands with a learned priority scorer"),
		kong.UsageOnError(),
		kong.Resolvers(resolver),
		kong.Vars{
			"version": constants.Version,
			"config":  constants.DefaultConfigPath,
			"port":    strconv.Itoa(constants.DefaultPort),
			"history": "~/." + constants.AppName + "_history",
		},
	)

	command := ctx.Command()
	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: logDir(CLI.Config),
		Stderr:    strings.HasPrefix(command, "serve"),
	}); err != nil {
		errors.Fatalf("failed to initialize logger: %w", err)
	}

	store, err := cli.OpenStore(CLI.Config)
	// keyring commands manage the credential OpenStore needs.
	if err != nil && !strings.HasPrefix(command, "keyring") {
		errors.Fatal(err)
	}

	if store != nil && !strings.HasPrefix(command, "init") && !strings.HasPrefix(command, "keyring") {
		if err := store.Load(); err != nil {
			errors.Fatalf("failed to load store (run '%s init' first?): %w", constants.AppName, err)
		}
	}
	if store != nil {
		defer store.Close()
	}

	appCtx := &cli.Context{
		Store: store,
		Seed:  CLI.Seed,
	}

	if err := ctx.Run(appCtx); err != nil {
		if store != nil {
			store.Close()
		}
		errors.Fatal(err)
	}
}

// logDir keeps logs next to a file store, and in the default config
// directory for database URLs and the keyring.
func logDir(cfg string) string {
	if cfg != cli.KeyringConfig && !strings.Contains(cfg, "://") {
		if path, err := cli.ExpandHome(cfg); err == nil {
			return filepath.Dir(path)
		}
	}
	path, err := cli.ExpandHome(constants.DefaultConfigPath)
	if err != nil {
		return "."
	}
	return filepath.Dir(path)
}
