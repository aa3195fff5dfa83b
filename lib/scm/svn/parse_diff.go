package svn

import (
	"strings"

	"github.com/pescuma/scmchanges/lib/model"
	"github.com/pescuma/scmchanges/lib/utils"
)

const (
	indexPrefix   = "Index: "
	binaryMessage = "Cannot display: file marked as a binary type."
)

type FileDiff struct {
	Path   string
	Binary bool
	Diff   string
}

// ParseDiff splits the output of "svn diff" per file. Lines are terminated with \r\n and empty lines are skipped.
func ParseDiff(output string) []*FileDiff {
	var result []*FileDiff
	var current *FileDiff
	var sb strings.Builder

	finish := func() {
		if current != nil {
			current.Diff = sb.String()
			result = append(result, current)
		}
		sb.Reset()
	}

	for _, line := range strings.Split(utils.NormalizeNewLines(output), "\n") {
		switch {
		case strings.HasPrefix(line, indexPrefix):
			finish()
			current = &FileDiff{Path: strings.TrimSpace(line[len(indexPrefix):])}

		case current == nil, line == "":
			continue

		case strings.HasPrefix(line, "====") && strings.Trim(line, "=") == "":
			continue

		case line == binaryMessage:
			current.Binary = true

		default:
			sb.WriteString(line)
			sb.WriteString("\r\n")
		}
	}

	finish()

	return result
}

// AttachDiffs copies each diff into the file change whose path ends with the diff path.
// svn diff prints paths relative to the requested url, while svn log prints them relative to the repository root.
func AttachDiffs(details *model.ChangeSetDetails, diffs []*FileDiff) {
	for _, f := range details.FileChanges {
		var best *FileDiff

		for _, d := range diffs {
			if !matchesPath(f.Path, d.Path) {
				continue
			}
			if best == nil || len(d.Path) > len(best.Path) {
				best = d
			}
		}

		if best != nil {
			f.Diff = best.Diff
			f.Binary = f.Binary || best.Binary
		}
	}
}

func matchesPath(logPath, diffPath string) bool {
	logPath = strings.TrimPrefix(logPath, "/")
	diffPath = strings.TrimPrefix(diffPath, "/")

	return logPath == diffPath || strings.HasSuffix(logPath, "/"+diffPath)
}
