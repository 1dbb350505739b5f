package cli

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/julianstephens/tasklit/internal/logger"
	"github.com/julianstephens/tasklit/internal/session"
)

const replPrompt = "tasklit> "

type ReplCmd struct {
	History string `help:"History file." default:"${history}"`
}

func (c *ReplCmd) Run(ctx *Context) error {
	sess, err := ctx.Session()
	if err != nil {
		return err
	}

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	history, err := ExpandHome(c.History)
	if err != nil {
		return err
	}
	if f, err := os.Open(history); err == nil {
		if _, err := line.ReadHistory(f); err != nil {
			logger.Warn("failed to read history", "path", history, "error", err)
		}
		f.Close()
	}
	defer saveHistory(line, history)

	ctx.println("Type a command, \"help\" for examples, or \"exit\" to quit.")
	for {
		input, err := line.Prompt(replPrompt)
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if quit := ctx.replLine(sess, input); quit {
			return nil
		}
		if strings.TrimSpace(input) != "" {
			line.AppendHistory(input)
		}
	}
}

// replLine handles one line and reports whether the loop should stop.
func (c *Context) replLine(sess *session.Session, input string) bool {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "":
		return false
	case "exit", "quit":
		return true
	case "help":
		c.println(replHelp)
		return false
	}
	res, err := sess.Handle(input)
	if err != nil {
		c.printf("Error: %v\n", err)
		return false
	}
	c.printResult(res)
	return false
}

const replHelp = `Examples:
  create an urgent meeting with the marketing team tomorrow
  add "Buy milk" task
  show
  delete <task id>`

func saveHistory(line *liner.State, path string) {
	f, err := os.Create(path)
	if err != nil {
		logger.Warn("failed to save history", "path", path, "error", err)
		return
	}
	defer f.Close()
	if _, err := line.WriteHistory(f); err != nil {
		logger.Warn("failed to save history", "path", path, "error", err)
	}
}
