package svn

import (
	"encoding/xml"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/pescuma/scmchanges/lib/model"
)

type LogEntry struct {
	Summary *model.ChangeSetSummary
	Details *model.ChangeSetDetails

	// CopiedFrom maps a path to the path@revision it was copied from.
	CopiedFrom map[string]string
}

type xmlLog struct {
	Entries []xmlLogEntry `xml:"logentry"`
}

type xmlLogEntry struct {
	Revision int       `xml:"revision,attr"`
	Author   string    `xml:"author"`
	Date     string    `xml:"date"`
	Paths    []xmlPath `xml:"paths>path"`
	Msg      string    `xml:"msg"`
}

type xmlPath struct {
	Action       string `xml:"action,attr"`
	Kind         string `xml:"kind,attr"`
	CopyFromPath string `xml:"copyfrom-path,attr"`
	CopyFromRev  string `xml:"copyfrom-rev,attr"`
	Path         string `xml:",chardata"`
}

// ParseLog parses the output of "svn log -v --xml", keeping the order of the entries.
func ParseLog(output string) ([]*LogEntry, error) {
	if strings.TrimSpace(output) == "" {
		return nil, nil
	}

	var log xmlLog
	err := xml.Unmarshal([]byte(output), &log)
	if err != nil {
		return nil, errors.Wrap(err, "invalid svn log output")
	}

	result := make([]*LogEntry, 0, len(log.Entries))
	for _, e := range log.Entries {
		entry, err := toLogEntry(&e)
		if err != nil {
			return nil, err
		}

		result = append(result, entry)
	}

	return result, nil
}

func toLogEntry(e *xmlLogEntry) (*LogEntry, error) {
	var date time.Time
	if e.Date != "" {
		var err error
		date, err = time.Parse(time.RFC3339Nano, strings.TrimSpace(e.Date))
		if err != nil {
			return nil, errors.Wrapf(err, "invalid date in revision %v", e.Revision)
		}
	}

	result := &LogEntry{
		Summary: &model.ChangeSetSummary{
			Number: e.Revision,
			User:   strings.TrimSpace(e.Author),
			Date:   date,
		},
		Details: &model.ChangeSetDetails{
			Description: joinLines(e.Msg),
		},
		CopiedFrom: map[string]string{},
	}

	for _, p := range e.Paths {
		if p.Kind == "dir" {
			continue
		}

		path := strings.TrimSpace(p.Path)

		file := model.NewFileChangeData(path, e.Revision, model.ParseSvnAction(p.Action))
		result.Details.FileChanges = append(result.Details.FileChanges, file)

		if p.CopyFromPath != "" {
			result.CopiedFrom[path] = p.CopyFromPath + "@" + p.CopyFromRev
		}
	}

	return result, nil
}

func joinLines(text string) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, " ")
}
