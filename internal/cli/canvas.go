package cli

type CanvasCmd struct {
	Advanced bool `help:"Include the dependency listing."`
}

func (c *CanvasCmd) Run(ctx *Context) error {
	sess, err := ctx.Session()
	if err != nil {
		return err
	}
	out, err := sess.Canvas(c.Advanced)
	if err != nil {
		return err
	}
	ctx.printf("%s", out)
	return nil
}
