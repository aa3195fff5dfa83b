package main

import (
	"time"

	"github.com/pescuma/scmchanges/lib/importers/changes"
)

type ImportCmd struct {
	Repos            []string      `arg:"" optional:"" help:"Repositories to import. Default is all."`
	Incremental      bool          `default:"true" negatable:"" help:"Only list change sets newer than the last imported one."`
	LimitChanges     int           `help:"Maximum number of change sets to import, starting from the oldest."`
	After            time.Time     `help:"Only import change sets submitted after this date (inclusive)." format:"2006-01-02"`
	Before           time.Time     `help:"Only import change sets submitted before this date." format:"2006-01-02"`
	SaveEvery        time.Duration `default:"10m" help:"Save results while processing to avoid losing work."`
	IgnoreWhitespace bool          `help:"Remove hunks that only change whitespace before counting lines."`
	ResolveUsers     bool          `help:"Ask the server for the full name and email of new users."`
	Workers          int           `help:"Number of change sets described in parallel. Default is config import.workers or the number of CPUs."`
	Quiet            bool          `short:"q" help:"Don't show progress bars."`
}

func (c *ImportCmd) Run(ctx *context) error {
	ws, err := ctx.workspace()
	if err != nil {
		return err
	}

	return ws.ImportChanges(ctx.ctx, c.Repos, &changes.Options{
		Incremental:      c.Incremental,
		MaxChanges:       toOption(c.LimitChanges),
		After:            toOption(c.After),
		Before:           toOption(c.Before),
		SaveEvery:        toOption(c.SaveEvery),
		IgnoreWhitespace: c.IgnoreWhitespace,
		ResolveUsers:     c.ResolveUsers,
		Workers:          c.Workers,
		Quiet:            c.Quiet,
	})
}
