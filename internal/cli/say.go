package cli

import (
	"strings"

	"github.com/julianstephens/tasklit/internal/session"
)

type SayCmd struct {
	Text []string `arg:"" help:"Command text, e.g. \"add an urgent report for the boss by friday\"."`
}

func (c *SayCmd) Run(ctx *Context) error {
	sess, err := ctx.Session()
	if err != nil {
		return err
	}
	res, err := sess.Handle(strings.Join(c.Text, " "))
	if err != nil {
		return err
	}
	ctx.printResult(res)
	return nil
}

// printResult writes the message, any suggestions and rendered output.
func (c *Context) printResult(res session.Result) {
	c.println(res.Command.Message)
	if t := res.Command.Task; t != nil && t.Content != "" {
		c.printf("  %s  [%s]\n", t.Content, t.ID)
		if t.Context != "" {
			c.printf("  %s\n", t.Context)
		}
	}
	for _, s := range res.Command.Suggestions {
		c.printf("  • %s\n", s)
	}
	if res.Output != "" {
		c.printf("\n%s", res.Output)
	}
}
