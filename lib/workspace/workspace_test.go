package workspace

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pescuma/scmchanges/lib/consoles"
	"github.com/pescuma/scmchanges/lib/importers/changes"
	"github.com/pescuma/scmchanges/lib/runners"
	"github.com/pescuma/scmchanges/lib/scm/p4"
	"github.com/pescuma/scmchanges/lib/scm/svn"
	"github.com/pescuma/scmchanges/lib/storages/orm"
)

const changesOutput = "Change 11 on 2010/05/05 07:08:09 by alice@ws 'Fix bug'\n"

const describe11 = "Change 11 by alice@ws on 2010/05/05 07:08:09\n" +
	"\n" +
	"\tFix bug\n" +
	"\n" +
	"Affected files ...\n" +
	"\n" +
	"... //depot/main/a.c#3 edit\n" +
	"\n" +
	"Differences ...\n" +
	"\n" +
	"==== //depot/main/a.c#3 (text) ====\n" +
	"\n" +
	"@@ -1,2 +1,2 @@\n" +
	"-int b;\n" +
	"+int c;\n"

func newTestWorkspace(t *testing.T) (*Workspace, *runners.FakeRunner) {
	console := consoles.NewWriterConsole(io.Discard)

	storage, err := orm.NewGormStorage(orm.WithSqliteInMemory(), console)
	require.NoError(t, err)

	ws := newWorkspace(console, storage)
	t.Cleanup(func() { _ = ws.Close() })

	runner := runners.NewFakeRunner()
	ws.runner = runner

	return ws, runner
}

func TestAddRepository(t *testing.T) {
	t.Parallel()

	ws, _ := newTestWorkspace(t)

	repo, err := ws.AddRepository(" depot ", "P4", map[string]string{p4.OptionPath: "//depot/main/..."})
	require.NoError(t, err)

	assert.Equal(t, "depot", repo.Name)
	assert.Equal(t, "p4", repo.Type)
	assert.Equal(t, "//depot/main/...", repo.GetData(p4.OptionPath))

	_, err = ws.AddRepository("depot", "p4", nil)
	assert.EqualError(t, err, "repository already exists: depot")
}

func TestAddRepositoryValidatesOptions(t *testing.T) {
	t.Parallel()

	ws, _ := newTestWorkspace(t)

	_, err := ws.AddRepository("a", "git", nil)
	assert.Error(t, err)

	_, err = ws.AddRepository("a", "svn", map[string]string{"port": "1666"})
	assert.EqualError(t, err, "unknown svn option: port (known options: url, user)")

	_, err = ws.AddRepository("a", "svn", nil)
	assert.Error(t, err)

	repos, err := ws.ListRepositories()
	require.NoError(t, err)
	assert.Empty(t, repos)
}

func TestRemoveRepository(t *testing.T) {
	t.Parallel()

	ws, _ := newTestWorkspace(t)

	_, err := ws.AddRepository("trunk", "svn", map[string]string{svn.OptionURL: "svn://host/repo/trunk"})
	require.NoError(t, err)

	require.NoError(t, ws.RemoveRepository("trunk"))

	repos, err := ws.ListRepositories()
	require.NoError(t, err)
	assert.Empty(t, repos)

	assert.EqualError(t, ws.RemoveRepository("trunk"), "unknown repository: trunk")
}

func TestSetRepositoryConfig(t *testing.T) {
	t.Parallel()

	ws, _ := newTestWorkspace(t)

	_, err := ws.AddRepository("depot", "p4", nil)
	require.NoError(t, err)

	changed, err := ws.SetRepositoryConfig("depot", p4.OptionPort, "ssl:p4:1666")
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = ws.SetRepositoryConfig("depot", p4.OptionPort, "ssl:p4:1666")
	require.NoError(t, err)
	assert.False(t, changed)

	_, err = ws.SetRepositoryConfig("depot", p4.OptionPath, "depot/main")
	assert.Error(t, err)

	repo, err := ws.GetRepository("depot")
	require.NoError(t, err)
	assert.Equal(t, "", repo.GetData(p4.OptionPath))
	assert.Equal(t, "ssl:p4:1666", repo.GetData(p4.OptionPort))
}

func TestGlobalConfig(t *testing.T) {
	t.Parallel()

	ws, _ := newTestWorkspace(t)

	changed, err := ws.SetGlobalConfig(ConfigImportWorkers, "4")
	require.NoError(t, err)
	assert.True(t, changed)

	_, err = ws.SetGlobalConfig(ConfigImportWorkers, "none")
	assert.Error(t, err)

	_, err = ws.SetGlobalConfig(ConfigRunnerTimeout, "ten")
	assert.Error(t, err)

	_, err = ws.SetGlobalConfig("p4.exe", "/opt/p4")
	require.NoError(t, err)

	cfg, err := ws.ListGlobalConfig()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{ConfigImportWorkers: "4", "p4.exe": "/opt/p4"}, cfg)

	_, err = ws.SetGlobalConfig("p4.exe", "")
	require.NoError(t, err)

	cfg, err = ws.ListGlobalConfig()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{ConfigImportWorkers: "4"}, cfg)
}

func TestImportChangesUsesConfiguredExecutable(t *testing.T) {
	t.Parallel()

	ws, runner := newTestWorkspace(t)

	_, err := ws.AddRepository("depot", "p4", map[string]string{p4.OptionPath: "//depot/main/..."})
	require.NoError(t, err)
	_, err = ws.SetGlobalConfig("p4.exe", "/opt/p4")
	require.NoError(t, err)

	runner.Add(changesOutput, "/opt/p4", "changes", "-s", "submitted", "-t", "//depot/main/...")
	runner.Add(describe11, "/opt/p4", "describe", "-du", "11")

	err = ws.ImportChanges(context.Background(), nil, &changes.Options{Incremental: true, Quiet: true})
	require.NoError(t, err)

	repo, list, err := ws.ListChangeSets("depot")
	require.NoError(t, err)
	assert.Equal(t, 11, repo.LastChange)
	require.Len(t, list, 1)
	assert.Equal(t, "alice", list[0].User)

	_, cs, files, err := ws.GetChangeSet("depot", 11)
	require.NoError(t, err)
	assert.Equal(t, 1, cs.FilesEdited)
	require.Len(t, files.List(), 1)
	assert.Equal(t, "//depot/main/a.c", files.List()[0].Path)

	_, _, _, err = ws.GetChangeSet("depot", 12)
	assert.EqualError(t, err, "unknown change 12 in depot")
}

func TestPropGet(t *testing.T) {
	t.Parallel()

	ws, runner := newTestWorkspace(t)

	_, err := ws.AddRepository("trunk", "svn", map[string]string{svn.OptionURL: "svn://host/repo/trunk"})
	require.NoError(t, err)
	_, err = ws.AddRepository("depot", "p4", nil)
	require.NoError(t, err)

	runner.Add("v1.2\n", "svn", "propget", "release", "svn://host/repo/trunk")

	v, err := ws.PropGet(context.Background(), "trunk", "release")
	require.NoError(t, err)
	assert.Equal(t, "v1.2", v)

	_, err = ws.PropGet(context.Background(), "depot", "release")
	assert.EqualError(t, err, "p4 repositories don't support properties")
}

func TestNewWorkspaceUnknownStorage(t *testing.T) {
	t.Parallel()

	_, err := NewWorkspace("data.db")

	assert.EqualError(t, err, "unknown storage type for file data.db")
}
