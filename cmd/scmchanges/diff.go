package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/pescuma/scmchanges/lib/diffs"
	"github.com/pescuma/scmchanges/lib/linediff"
	"github.com/pescuma/scmchanges/lib/utils"
)

type DiffFilterCmd struct {
	File  string `arg:"" optional:"" help:"Unified diff to filter. Default is stdin." type:"existingfile"`
	Stats bool   `short:"s" help:"Print line counts instead of the diff."`
}

func (c *DiffFilterCmd) Run(_ *context) error {
	var data []byte
	var err error
	if c.File == "" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(c.File)
	}
	if err != nil {
		return err
	}

	result := diffs.FilterWhitespaceOnlyDiffs(utils.NormalizeNewLines(string(data)))

	if c.Stats {
		printStats(diffs.CountChanges(result))
		return nil
	}

	fmt.Print(result)
	return nil
}

type DiffFilesCmd struct {
	Src              string `arg:"" help:"Original file." type:"existingfile"`
	Dst              string `arg:"" help:"Changed file." type:"existingfile"`
	Context          int    `short:"U" default:"3" help:"Number of unchanged lines around each change."`
	IgnoreWhitespace bool   `help:"Remove hunks that only change whitespace."`
	Stats            bool   `short:"s" help:"Print line counts instead of the diff."`
}

func (c *DiffFilesCmd) Run(_ *context) error {
	src, err := os.ReadFile(c.Src)
	if err != nil {
		return errors.Wrapf(err, "error reading %v", c.Src)
	}

	dst, err := os.ReadFile(c.Dst)
	if err != nil {
		return errors.Wrapf(err, "error reading %v", c.Dst)
	}

	result := linediff.Unified(utils.NormalizeNewLines(string(src)), utils.NormalizeNewLines(string(dst)), c.Context)
	if c.IgnoreWhitespace {
		result = diffs.FilterWhitespaceOnlyDiffs(result)
	}

	if c.Stats {
		printStats(diffs.CountChanges(result))
		return nil
	}

	if result != "" {
		fmt.Printf("--- %v\n+++ %v\n", c.Src, c.Dst)
		fmt.Print(result)
	}
	return nil
}

func printStats(stats diffs.Stats) {
	fmt.Printf("%v lines added, %v deleted, %v modified\n", stats.Added, stats.Deleted, stats.Modified)
}
