package p4

import (
	"strconv"
	"strings"

	"github.com/pescuma/scmchanges/lib/model"
	"github.com/pescuma/scmchanges/lib/utils"
)

const (
	affectedFilesMarker = "Affected files ..."
	differencesMarker   = "Differences ..."

	// "... " before each affected file
	affectedFilePrefixLen = 4
)

type describeState int

const (
	readingDescription describeState = iota
	readingAffectedFiles
	readingDifferences
)

// ParseDescribe parses the output of "p4 describe -du". Unknown structure produces a partial result.
func ParseDescribe(output string) *model.ChangeSetDetails {
	result := &model.ChangeSetDetails{}

	var description []string
	byPath := map[string]*model.FileChangeData{}
	diffs := map[*model.FileChangeData]*strings.Builder{}
	var current *model.FileChangeData

	state := readingDescription
	for _, line := range strings.Split(utils.NormalizeNewLines(output), "\n") {
		if line == "" {
			continue
		}

		switch state {
		case readingDescription:
			if line == affectedFilesMarker {
				state = readingAffectedFiles
				continue
			}

			if trimmed := strings.TrimSpace(line); trimmed != "" {
				description = append(description, trimmed)
			}

		case readingAffectedFiles:
			if line == differencesMarker {
				state = readingDifferences
				continue
			}

			file := parseAffectedFile(line)
			if file == nil {
				continue
			}

			result.FileChanges = append(result.FileChanges, file)
			byPath[file.Path] = file

		case readingDifferences:
			if isDiffHeader(line) {
				path, binary := parseDiffHeader(line)

				current = byPath[path]
				if current != nil && binary {
					current.Binary = true
				}
				continue
			}

			if current == nil {
				continue
			}

			sb, ok := diffs[current]
			if !ok {
				sb = &strings.Builder{}
				diffs[current] = sb
			}
			sb.WriteString(line)
			sb.WriteString("\r\n")
		}
	}

	result.Description = strings.Join(description, " ")

	for file, sb := range diffs {
		file.Diff = sb.String()
	}

	return result
}

// ... //depot/a.txt#3 edit
func parseAffectedFile(line string) *model.FileChangeData {
	if len(line) <= affectedFilePrefixLen {
		return nil
	}
	line = line[affectedFilePrefixLen:]

	hash := strings.IndexByte(line, '#')
	if hash < 0 {
		return nil
	}

	path := line[:hash]
	rev, action, _ := strings.Cut(line[hash+1:], " ")

	revision, err := strconv.Atoi(rev)
	if err != nil {
		revision = 0
	}

	return model.NewFileChangeData(path, revision, model.ParseP4Action(action))
}

// ==== //depot/a.txt#3 (text) ====
func isDiffHeader(line string) bool {
	return len(line) >= 8 && strings.HasPrefix(line, "====") && strings.HasSuffix(line, "====")
}

func parseDiffHeader(line string) (string, bool) {
	body := strings.TrimSpace(strings.Trim(line, "="))

	hash := strings.IndexByte(body, '#')
	if hash < 0 {
		return body, false
	}

	return body[:hash], isBinaryFileType(body[hash:])
}

// isBinaryFileType only accepts the literal "(binary)" kind. Other kinds, like "(ubinary)" or "(binary+l)", are text.
func isBinaryFileType(rest string) bool {
	return strings.Contains(rest, "(binary)")
}
