package p4

import (
	"strconv"
	"strings"
	"time"

	"github.com/pescuma/scmchanges/lib/model"
	"github.com/pescuma/scmchanges/lib/utils"
)

const dateFormat = "2006/01/02 15:04:05"

// ParseChangesList parses the output of "p4 changes -t", using the local time zone for dates.
func ParseChangesList(output string) *model.ChangesList {
	return ParseChangesListIn(output, time.Local)
}

// ParseChangesListIn parses the output of "p4 changes -t". It stops at the first malformed header and marks the
// result as truncated.
func ParseChangesListIn(output string, loc *time.Location) *model.ChangesList {
	result := &model.ChangesList{}

	for _, line := range strings.Split(utils.NormalizeNewLines(output), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		change, ok := parseChangeHeader(line, loc)
		if !ok {
			result.Truncated = true
			break
		}

		result.Changes = append(result.Changes, change)
	}

	return result
}

// Change 105 on 2008/01/02 10:11:12 by alice@CLIENT1 'fix bug'
func parseChangeHeader(line string, loc *time.Location) (*model.ChangeSetSummary, bool) {
	if i := strings.IndexByte(line, '\''); i > 0 {
		line = line[:i]
	}

	fields := strings.Fields(line)
	if len(fields) != 7 || fields[0] != "Change" {
		return nil, false
	}

	number, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, false
	}

	date, err := time.ParseInLocation(dateFormat, fields[3]+" "+fields[4], loc)
	if err != nil {
		return nil, false
	}

	user, client, _ := strings.Cut(fields[6], "@")

	return &model.ChangeSetSummary{
		Number: number,
		User:   user,
		Client: client,
		Date:   date,
	}, true
}
