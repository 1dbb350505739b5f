package cli

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/julianstephens/tasklit/internal/canvas"
	"github.com/julianstephens/tasklit/internal/models"
	"github.com/julianstephens/tasklit/internal/utils"
)

type TasksCmd struct {
	Pending bool `help:"Show only pending tasks."`
}

func (c *TasksCmd) Run(ctx *Context) error {
	sess, err := ctx.Session()
	if err != nil {
		return err
	}
	tasks, err := sess.Tasks()
	if err != nil {
		return err
	}
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	loc, err := utils.LoadLocation(settings.Timezone)
	if err != nil {
		return err
	}

	now := time.Now().In(loc)
	shown := 0
	for _, t := range tasks {
		if c.Pending && t.Status != models.StatusPending {
			continue
		}
		if shown == 0 {
			ctx.println("Tasks:")
		}
		shown++
		ctx.printf("  %s %s [%s, %s, %s] added %s\n",
			canvas.Glyph(t.Priority), t.Content, t.Category, t.Type, t.Status,
			humanize.RelTime(t.Created, now, "ago", "from now"))
		ctx.printf("      ID: %s\n", t.ID)
		if t.Due != nil {
			overdue := ""
			if utils.IsOverdue(t, now) {
				overdue = " (overdue)"
			}
			ctx.printf("      Due: %s%s\n", utils.FormatDue(*t.Due, loc), overdue)
		}
		if t.Context != "" {
			ctx.printf("      %s\n", t.Context)
		}
	}
	if shown == 0 {
		ctx.println("No tasks found")
	}
	return nil
}

type DoneCmd struct {
	ID string `arg:"" help:"ID of the task to mark done."`
}

func (c *DoneCmd) Run(ctx *Context) error {
	sess, err := ctx.Session()
	if err != nil {
		return err
	}
	task, err := sess.Complete(c.ID)
	if err != nil {
		return err
	}
	ctx.printf("✓ Completed: %s\n", task.Content)
	return nil
}
