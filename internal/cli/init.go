package cli

import (
	"errors"
	"fmt"
	"os"
)

type InitCmd struct {
	Force bool `help:"Delete an existing SQLite or JSON store before initializing."`
	Yes   bool `short:"y" help:"Skip the confirmation prompt for --force."`
}

func (c *InitCmd) Run(ctx *Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.printf("Initialized tasklit storage at: %s\n", ctx.Store.GetConfigPath())

	// Training on first use makes the first command fast.
	if _, err := ctx.Session(); err != nil {
		return err
	}
	return nil
}

func (c *InitCmd) reset(ctx *Context) error {
	path := ctx.Store.GetConfigPath()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	} else if err != nil {
		return fmt.Errorf("failed to access existing store: %w", err)
	}

	if !c.Yes {
		ok, err := ctx.confirm(fmt.Sprintf("Delete all tasks and learned weights in %s?", path))
		if err != nil {
			return err
		}
		if !ok {
			return errors.New("init cancelled")
		}
	}

	if err := ctx.Store.Close(); err != nil {
		return fmt.Errorf("failed to close existing store: %w", err)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete existing store: %w", err)
	}
	ctx.printf("Deleted existing store at: %s\n", path)
	return nil
}
