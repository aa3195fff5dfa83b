package diffs

import (
	"strings"

	"github.com/pescuma/scmchanges/lib/utils"
)

type Stats struct {
	Modified int
	Added    int
	Deleted  int
}

func (s Stats) Total() int {
	return s.Modified + s.Added + s.Deleted
}

// CountChanges counts the changed lines of a unified diff. Modified lines are deleted and added lines of the
// same block, without an unchanged line between them.
func CountChanges(diff string) Stats {
	var result Stats

	inHunk := false
	add := 0
	del := 0

	flush := func() {
		m := utils.Min(add, del)
		result.Modified += m
		result.Added += add - m
		result.Deleted += del - m

		add = 0
		del = 0
	}

	for _, line := range strings.Split(diff, "\n") {
		switch {
		case strings.HasPrefix(line, "@@"):
			flush()
			inHunk = true

		case isFileHeader(line):
			flush()
			inHunk = false

		case !inHunk:
			// Headers

		case strings.HasPrefix(line, "+"):
			add++

		case strings.HasPrefix(line, "-"):
			del++

		default:
			flush()
		}
	}

	flush()

	return result
}

func isFileHeader(line string) bool {
	return strings.HasPrefix(line, "Index: ") ||
		strings.HasPrefix(line, "diff ") ||
		(strings.HasPrefix(line, "====") && len(strings.TrimRight(line, "\r")) > 4)
}
