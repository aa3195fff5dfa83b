package svn

import (
	"testing"
	"time"

	"github.com/bloomberg/go-testgroup"

	"github.com/pescuma/scmchanges/lib/model"
)

const logOutput = `<?xml version="1.0" encoding="UTF-8"?>
<log>
<logentry
   revision="12">
<author>alice</author>
<date>2012-03-04T05:06:07.123456Z</date>
<paths>
<path
   kind="dir"
   action="A">/branches/b1</path>
<path
   action="M"
   prop-mods="false"
   text-mods="true"
   kind="file">/trunk/src/main.c</path>
<path
   copyfrom-path="/trunk/old.c"
   copyfrom-rev="11"
   action="A"
   kind="file">/trunk/src/new.c</path>
<path
   action="D"
   kind="file">/trunk/old.c</path>
</paths>
<msg>Move old.c
  to src/new.c
</msg>
</logentry>
<logentry
   revision="13">
<author>bob</author>
<date>2012-03-05T00:00:00.000000Z</date>
<paths>
<path
   action="R">/trunk/README</path>
</paths>
<msg></msg>
</logentry>
</log>
`

type ParseLogTests struct {
	entries []*LogEntry
}

func TestParseLog(t *testing.T) {
	t.Parallel()

	testgroup.RunInParallel(t, &ParseLogTests{})
}

func (g *ParseLogTests) PreGroup(t *testgroup.T) {
	var err error
	g.entries, err = ParseLog(logOutput)
	t.NoError(err)
}

func (g *ParseLogTests) KeepsEntryOrder(t *testgroup.T) {
	if !t.Len(g.entries, 2) {
		return
	}

	t.Equal(12, g.entries[0].Summary.Number)
	t.Equal(13, g.entries[1].Summary.Number)
}

func (g *ParseLogTests) ParsesSummary(t *testgroup.T) {
	s := g.entries[0].Summary

	t.Equal("alice", s.User)
	t.Equal("", s.Client)
	t.Equal(time.Date(2012, 3, 4, 5, 6, 7, 123456000, time.UTC), s.Date.UTC())
}

func (g *ParseLogTests) JoinsMessageLines(t *testgroup.T) {
	t.Equal("Move old.c to src/new.c", g.entries[0].Details.Description)
	t.Equal("", g.entries[1].Details.Description)
}

func (g *ParseLogTests) SkipsDirectories(t *testgroup.T) {
	files := g.entries[0].Details.FileChanges

	if !t.Len(files, 3) {
		return
	}

	t.Equal("/trunk/src/main.c", files[0].Path)
	t.Equal(model.ChangeTypeEdit, files[0].ChangeType)
	t.Equal(12, files[0].Revision)
	t.Equal(model.ChangeTypeAdd, files[1].ChangeType)
	t.Equal(model.ChangeTypeDelete, files[2].ChangeType)
}

func (g *ParseLogTests) KeepsPathsWithoutKind(t *testgroup.T) {
	files := g.entries[1].Details.FileChanges

	if !t.Len(files, 1) {
		return
	}

	t.Equal(model.ChangeTypeReplace, files[0].ChangeType)
}

func (g *ParseLogTests) KeepsCopySource(t *testgroup.T) {
	t.Equal(map[string]string{"/trunk/src/new.c": "/trunk/old.c@11"}, g.entries[0].CopiedFrom)
}

func (g *ParseLogTests) EmptyOutput(t *testgroup.T) {
	entries, err := ParseLog("  \n")

	t.NoError(err)
	t.Empty(entries)
}

func (g *ParseLogTests) InvalidXML(t *testgroup.T) {
	_, err := ParseLog("<log><logentry revision=\"1\">")

	t.Error(err)
}

func (g *ParseLogTests) InvalidDate(t *testgroup.T) {
	_, err := ParseLog(`<log><logentry revision="1"><date>yesterday</date></logentry></log>`)

	t.Error(err)
}
