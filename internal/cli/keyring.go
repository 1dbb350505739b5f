package cli

import (
	"errors"

	"github.com/julianstephens/tasklit/internal/keyring"
)

type KeyringSetCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL connection string; may include a password."`
}

func (c *KeyringSetCmd) Run(ctx *Context) error {
	if err := keyring.SetConnectionString(c.ConnectionString); err != nil {
		return err
	}
	ctx.println("✓ Connection string stored. Use --config keyring to connect.")
	return nil
}

type KeyringDeleteCmd struct{}

func (c *KeyringDeleteCmd) Run(ctx *Context) error {
	err := keyring.DeleteConnectionString()
	if errors.Is(err, keyring.ErrNotFound) {
		ctx.println("No connection string stored.")
		return nil
	}
	if err != nil {
		return err
	}
	ctx.println("✓ Connection string removed.")
	return nil
}

type KeyringStatusCmd struct{}

func (c *KeyringStatusCmd) Run(ctx *Context) error {
	if !keyring.IsAvailable() {
		ctx.println("OS keyring: unavailable")
		return nil
	}
	ctx.println("OS keyring: available")
	if _, err := keyring.GetConnectionString(); err == nil {
		ctx.println("Connection string: stored")
	} else {
		ctx.println("Connection string: not stored")
	}
	return nil
}
