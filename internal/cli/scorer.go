package cli

import (
	"fmt"
	"path/filepath"

	"github.com/julianstephens/tasklit/internal/backup"
	"github.com/julianstephens/tasklit/internal/models"
)

type StatsCmd struct{}

func (c *StatsCmd) Run(ctx *Context) error {
	sess, err := ctx.Session()
	if err != nil {
		return err
	}
	ctx.printStats(sess.Stats())
	return nil
}

func (c *Context) printStats(stats models.TrainingStats) {
	c.printf("Training samples: %d\n", stats.SamplesCount)
	c.printf("Priority accuracy: %.1f%%\n", stats.AverageAccuracy*100)
}

type RetrainCmd struct {
	Epochs int  `help:"Maximum training epochs (0 uses the max_epochs setting)."`
	Yes    bool `short:"y" help:"Skip the confirmation prompt."`
}

func (c *RetrainCmd) Run(ctx *Context) error {
	if !c.Yes {
		ok, err := ctx.confirm("Discard the learned weights and retrain from scratch?")
		if err != nil {
			return err
		}
		if !ok {
			ctx.println("Retrain cancelled.")
			return nil
		}
	}

	if ctx.IsSQLite() {
		path, err := backup.NewManager(ctx.Store.GetConfigPath()).Create()
		if err != nil {
			return fmt.Errorf("backup before retrain failed: %w", err)
		}
		ctx.printf("✓ Backup created: %s\n", filepath.Base(path))
	}

	sess, err := ctx.Session()
	if err != nil {
		return err
	}
	ctx.printStats(sess.Retrain(c.Epochs))
	return nil
}
