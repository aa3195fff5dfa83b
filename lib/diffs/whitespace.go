package diffs

import (
	"strings"
)

// FilterWhitespaceOnlyDiffs rewrites every removed-then-added block of a unified diff whose lines only differ in
// spaces and tabs as unchanged context lines. Other lines are kept as they are.
func FilterWhitespaceOnlyDiffs(diff string) string {
	lines := strings.Split(diff, "\n")
	result := make([]string, 0, len(lines))

	for i := 0; i < len(lines); {
		if !strings.HasPrefix(lines[i], "-") {
			result = append(result, lines[i])
			i++
			continue
		}

		start := i
		for i < len(lines) && strings.HasPrefix(lines[i], "-") {
			i++
		}
		removed := lines[start:i]

		start = i
		for i < len(lines) && strings.HasPrefix(lines[i], "+") {
			i++
		}
		added := lines[start:i]

		if isWhitespaceOnlyChange(removed, added) {
			for _, line := range added {
				result = append(result, " "+line[1:])
			}
		} else {
			result = append(result, removed...)
			result = append(result, added...)
		}
	}

	return strings.Join(result, "\n")
}

func isWhitespaceOnlyChange(removed, added []string) bool {
	if len(removed) != len(added) {
		return false
	}

	for i := range removed {
		if stripWhitespace(removed[i][1:]) != stripWhitespace(added[i][1:]) {
			return false
		}
	}

	return true
}

var whitespaceStripper = strings.NewReplacer(" ", "", "\t", "")

func stripWhitespace(line string) string {
	return whitespaceStripper.Replace(line)
}
