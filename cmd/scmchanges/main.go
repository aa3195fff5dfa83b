package main

import (
	gocontext "context"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"

	"github.com/pescuma/scmchanges/lib/workspace"
)

var cli struct {
	Workspace string `short:"w" help:"Workspace file to store data. Default is ./.scmchanges/scmchanges.sqlite or ~/.scmchanges/scmchanges.sqlite if that does not exist."`

	Repo struct {
		Add struct {
			P4  RepoAddP4Cmd  `cmd:"" help:"Add a Perforce depot path."`
			Svn RepoAddSvnCmd `cmd:"" help:"Add a Subversion URL."`
		} `cmd:"" help:"Add a repository."`
		List   RepoListCmd   `cmd:"" help:"List repositories."`
		Remove RepoRemoveCmd `cmd:"" help:"Remove a repository and all its imported data."`
		Set    RepoSetCmd    `cmd:"" help:"Change a connection option of a repository."`
		Prop   RepoPropCmd   `cmd:"" help:"Read a property of a repository. Only svn supports it."`
	} `cmd:"" help:"Manage repositories."`

	Import ImportCmd `cmd:"" help:"Import change sets from the repositories."`

	Changes struct {
		List ChangesListCmd `cmd:"" help:"List imported change sets."`
		Show ChangesShowCmd `cmd:"" help:"Show one imported change set."`
	} `cmd:"" help:"Query imported change sets."`

	Diff struct {
		Filter DiffFilterCmd `cmd:"" help:"Remove whitespace only changes from a unified diff."`
		Files  DiffFilesCmd  `cmd:"" help:"Compare two files."`
	} `cmd:"" help:"Diff utilities."`

	Run RunCmd `cmd:"" help:"Run the repository tool with the connection options of each repository."`

	Config struct {
		Set  ConfigSetCmd  `cmd:"" help:"Set configuration parameters."`
		List ConfigListCmd `cmd:"" help:"List configuration parameters."`
	} `cmd:"" help:"Manage the workspace configuration."`

	Serve ServeCmd `cmd:"" help:"Serve the imported data as a JSON API."`
}

type context struct {
	ctx  gocontext.Context
	file string
	ws   *workspace.Workspace
}

// workspace opens the workspace on first use, so commands that don't need it don't create one.
func (c *context) workspace() (*workspace.Workspace, error) {
	if c.ws != nil {
		return c.ws, nil
	}

	ws, err := workspace.NewWorkspace(c.file)
	if err != nil {
		return nil, err
	}

	c.ws = ws
	return ws, nil
}

func (c *context) close() error {
	if c.ws == nil {
		return nil
	}

	return c.ws.Close()
}

func main() {
	ctx := kong.Parse(&cli, kong.ShortUsageOnError())

	sctx, stop := signal.NotifyContext(gocontext.Background(), os.Interrupt)
	defer stop()

	c := &context{
		ctx:  sctx,
		file: cli.Workspace,
	}

	err := ctx.Run(c)
	if cerr := c.close(); err == nil {
		err = cerr
	}
	ctx.FatalIfErrorf(err)
}
