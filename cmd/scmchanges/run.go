package main

type RunCmd struct {
	Repos []string `short:"r" name:"repo" help:"Repositories to run in. Default is all."`
	Args  []string `arg:"" passthrough:"" help:"Arguments to pass to the repository tool, like p4 or svn."`
}

func (c *RunCmd) Run(ctx *context) error {
	ws, err := ctx.workspace()
	if err != nil {
		return err
	}

	return ws.Run(ctx.ctx, c.Repos, c.Args...)
}
