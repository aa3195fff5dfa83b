package main

import (
	"fmt"
	"strings"

	"github.com/aquilax/truncate"
	"github.com/dustin/go-humanize"
	"github.com/gertd/go-pluralize"
	"github.com/hashicorp/go-set/v2"
	"github.com/samber/lo"

	"github.com/pescuma/scmchanges/lib/diffs"
	"github.com/pescuma/scmchanges/lib/filters"
	"github.com/pescuma/scmchanges/lib/model"
)

type ChangesListCmd struct {
	Repo        string   `arg:"" help:"Repository to list."`
	Path        string   `short:"p" help:"Only list change sets touching a matching file. Accepts doublestar globs combined with | & and !."`
	User        []string `short:"u" help:"Only list change sets from these users."`
	Limit       int      `short:"n" default:"50" help:"Maximum number of change sets to list. 0 lists all."`
	Description int      `default:"60" help:"Maximum length of the descriptions. 0 shows the full text."`
}

func (c *ChangesListCmd) Run(ctx *context) error {
	ws, err := ctx.workspace()
	if err != nil {
		return err
	}

	var pathFilter filters.PathFilter
	if c.Path != "" {
		pathFilter, err = filters.ParsePathFilter(c.Path)
		if err != nil {
			return err
		}
	}

	users := set.From(c.User)

	repo, list, err := ws.ListChangeSets(c.Repo)
	if err != nil {
		return err
	}

	shown := 0
	for _, cs := range list {
		if c.Limit > 0 && shown >= c.Limit {
			break
		}

		if users.Size() > 0 && !users.Contains(cs.User) {
			continue
		}

		if pathFilter != nil {
			files, err := ws.LoadChangeSetFiles(repo, cs)
			if err != nil {
				return err
			}

			paths := lo.Map(files.List(), func(f *model.ChangeSetFile, _ int) string { return f.Path })
			if !filters.MatchesAny(pathFilter, paths) {
				continue
			}
		}

		description := cs.Description
		if c.Description > 0 {
			description = truncate.Truncate(description, c.Description, "...", truncate.PositionEnd)
		}

		fmt.Printf("%v  %-12v %-15v %v  %v\n", cs.Number, repo.UserName(cs.User), humanize.Time(cs.Date),
			linesText(cs), description)
		shown++
	}

	return nil
}

func linesText(cs *model.ChangeSet) string {
	if !cs.HasDetails() {
		return "(pending)"
	}

	return fmt.Sprintf("+%v -%v ~%v", cs.LinesAdded, cs.LinesDeleted, cs.LinesModified)
}

type ChangesShowCmd struct {
	Repo             string `arg:"" help:"Repository of the change set."`
	Number           int    `arg:"" help:"Number of the change set."`
	Diff             bool   `short:"d" help:"Show the diffs of the files."`
	IgnoreWhitespace bool   `help:"Remove hunks that only change whitespace."`
}

func (c *ChangesShowCmd) Run(ctx *context) error {
	ws, err := ctx.workspace()
	if err != nil {
		return err
	}

	repo, cs, files, err := ws.GetChangeSet(c.Repo, c.Number)
	if err != nil {
		return err
	}

	plural := pluralize.NewClient()

	fmt.Printf("Change %v by %v@%v on %v (%v)\n", cs.Number, repo.UserName(cs.User), cs.Client,
		cs.Date.Format("2006/01/02 15:04:05"), humanize.Time(cs.Date))
	fmt.Println()
	fmt.Printf("\t%v\n", cs.Description)
	fmt.Println()

	list := files.List()
	fmt.Printf("%v:\n", plural.Pluralize("file", len(list), true))

	for _, f := range list {
		diff := f.Diff
		stats := diffs.Stats{Modified: f.LinesModified, Added: f.LinesAdded, Deleted: f.LinesDeleted}
		if c.IgnoreWhitespace && !f.Binary {
			diff = diffs.FilterWhitespaceOnlyDiffs(diff)
			stats = diffs.CountChanges(diff)
		}

		kind := ""
		if f.Binary {
			kind = " (binary)"
		}

		fmt.Printf("   %v#%v %v%v  +%v -%v ~%v\n", f.Path, f.Revision, strings.ToLower(f.Change.String()), kind,
			countText(stats.Added), countText(stats.Deleted), countText(stats.Modified))

		if c.Diff && diff != "" {
			fmt.Println()
			fmt.Println(strings.ReplaceAll(diff, "\r\n", "\n"))
		}
	}

	return nil
}
