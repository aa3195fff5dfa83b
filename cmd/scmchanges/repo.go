package main

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/samber/lo"

	"github.com/pescuma/scmchanges/lib/scm/p4"
	"github.com/pescuma/scmchanges/lib/scm/svn"
)

type RepoAddP4Cmd struct {
	Name   string `arg:"" help:"Name of the repository inside the workspace."`
	Path   string `arg:"" optional:"" help:"Depot path to import, like //depot/main/... Default is //..."`
	Port   string `short:"p" help:"Perforce server, used as p4 -p."`
	User   string `short:"u" help:"Perforce user, used as p4 -u."`
	Client string `short:"c" help:"Perforce client workspace, used as p4 -c."`
}

func (c *RepoAddP4Cmd) Run(ctx *context) error {
	ws, err := ctx.workspace()
	if err != nil {
		return err
	}

	data := lo.PickBy(map[string]string{
		p4.OptionPath:   c.Path,
		p4.OptionPort:   c.Port,
		p4.OptionUser:   c.User,
		p4.OptionClient: c.Client,
	}, func(_ string, v string) bool { return v != "" })

	repo, err := ws.AddRepository(c.Name, p4.Type.Name(), data)
	if err != nil {
		return err
	}

	fmt.Printf("Added p4 repository %v\n", repo.Name)
	return nil
}

type RepoAddSvnCmd struct {
	Name string `arg:"" help:"Name of the repository inside the workspace."`
	URL  string `arg:"" help:"URL to import, like svn://host/repo/trunk."`
	User string `short:"u" help:"Subversion user, used as svn --username."`
}

func (c *RepoAddSvnCmd) Run(ctx *context) error {
	ws, err := ctx.workspace()
	if err != nil {
		return err
	}

	data := map[string]string{svn.OptionURL: c.URL}
	if c.User != "" {
		data[svn.OptionUser] = c.User
	}

	repo, err := ws.AddRepository(c.Name, svn.Type.Name(), data)
	if err != nil {
		return err
	}

	fmt.Printf("Added svn repository %v\n", repo.Name)
	return nil
}

type RepoListCmd struct {
	Verbose bool `short:"v" help:"Show connection options."`
}

func (c *RepoListCmd) Run(ctx *context) error {
	ws, err := ctx.workspace()
	if err != nil {
		return err
	}

	repos, err := ws.ListRepositories()
	if err != nil {
		return err
	}

	for _, r := range repos {
		last := "never imported"
		if !r.LastSeen.IsZero() {
			last = "last change " + humanize.Time(r.LastSeen)
		}

		fmt.Printf("%v [%v] %v change sets, %v\n", r.Name, r.Type, humanize.Comma(int64(r.CountChangeSets())), last)

		if c.Verbose {
			for _, k := range sortedKeys(r.Data) {
				fmt.Printf("   %v = %v\n", k, r.Data[k])
			}
		}

		if r.LastError != "" {
			fmt.Printf("   last error: %v\n", strings.TrimSpace(r.LastError))
		}
	}

	return nil
}

type RepoRemoveCmd struct {
	Names []string `arg:"" help:"Names of the repositories to remove."`
}

func (c *RepoRemoveCmd) Run(ctx *context) error {
	ws, err := ctx.workspace()
	if err != nil {
		return err
	}

	for _, name := range c.Names {
		err = ws.RemoveRepository(name)
		if err != nil {
			return err
		}

		fmt.Printf("Removed %v\n", name)
	}

	return nil
}

type RepoSetCmd struct {
	Name  string `arg:"" help:"Name of the repository."`
	Key   string `arg:"" help:"Option to change (p4: port, user, client, path; svn: url, user)."`
	Value string `arg:"" optional:"" help:"Value to set. Empty removes the option."`
}

func (c *RepoSetCmd) Run(ctx *context) error {
	ws, err := ctx.workspace()
	if err != nil {
		return err
	}

	changed, err := ws.SetRepositoryConfig(c.Name, c.Key, c.Value)
	if err != nil {
		return err
	}

	if changed {
		fmt.Printf("Set '%v' '%v' = '%v'\n", c.Name, c.Key, c.Value)
	}
	return nil
}

type RepoPropCmd struct {
	Name     string `arg:"" help:"Name of the repository."`
	Property string `arg:"" help:"Property to read."`
}

func (c *RepoPropCmd) Run(ctx *context) error {
	ws, err := ctx.workspace()
	if err != nil {
		return err
	}

	v, err := ws.PropGet(ctx.ctx, c.Name, c.Property)
	if err != nil {
		return err
	}

	fmt.Println(v)
	return nil
}
