package orm

import (
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pescuma/scmchanges/lib/consoles"
	"github.com/pescuma/scmchanges/lib/model"
	"github.com/pescuma/scmchanges/lib/storages"
)

func newTestStorage(t *testing.T) storages.Storage {
	s, err := NewGormStorage(WithSqliteInMemory(), consoles.NewWriterConsole(io.Discard))
	require.NoError(t, err)

	t.Cleanup(func() { _ = s.Close() })

	return s
}

// reopen simulates a new process by dropping the caches of s.
func reopen(s storages.Storage) storages.Storage {
	gs := s.(*gormStorage)
	return &gormStorage{db: gs.db, console: gs.console}
}

func TestConfigRoundTrip(t *testing.T) {
	t.Parallel()

	s := newTestStorage(t)

	config, err := s.LoadConfig()
	require.NoError(t, err)

	(*config)["p4.exe"] = "/opt/p4"
	(*config)["runner.timeout"] = "5m"
	require.NoError(t, s.WriteConfig())

	(*config)["runner.timeout"] = ""
	require.NoError(t, s.WriteConfig())

	loaded, err := reopen(s).LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"p4.exe": "/opt/p4"}, *loaded)
}

func TestRepositoriesRoundTrip(t *testing.T) {
	t.Parallel()

	s := newTestStorage(t)

	repos, err := s.LoadRepositories()
	require.NoError(t, err)

	date := time.Date(2010, 5, 5, 7, 8, 9, 0, time.UTC)

	repo := repos.GetOrCreate("depot")
	repo.Type = "p4"
	repo.SetData("path", "//depot/...")
	repo.Users["alice"] = "Alice <alice@example.com>"
	repo.LastChange = 11
	repo.LastError = "broken"
	repo.SeenAt(date)

	cs := repo.GetOrCreateChangeSet(11)
	cs.ApplySummary(&model.ChangeSetSummary{Number: 11, User: "alice", Client: "ws", Date: date})
	cs.Description = "Fix"

	require.NoError(t, s.WriteRepositories())

	loaded, err := reopen(s).LoadRepositories()
	require.NoError(t, err)

	lr := loaded.Get("depot")
	require.NotNil(t, lr)
	assert.Equal(t, repo.ID, lr.ID)
	assert.Equal(t, "p4", lr.Type)
	assert.Equal(t, "//depot/...", lr.GetData("path"))
	assert.Equal(t, "Alice <alice@example.com>", lr.UserName("alice"))
	assert.Equal(t, 11, lr.LastChange)
	assert.Equal(t, "broken", lr.LastError)

	lc := lr.GetChangeSet(11)
	require.NotNil(t, lc)
	assert.Equal(t, cs.ID, lc.ID)
	assert.Equal(t, "ws", lc.Client)
	assert.Equal(t, "Fix", lc.Description)
	assert.True(t, date.Equal(lc.Date))
	assert.False(t, lc.HasDetails())
	assert.Equal(t, -1, lc.LinesAdded)
}

func TestChangeSetFilesAreReplaced(t *testing.T) {
	t.Parallel()

	s := newTestStorage(t)

	repos, err := s.LoadRepositories()
	require.NoError(t, err)

	repo := repos.GetOrCreate("depot")
	cs := repo.GetOrCreateChangeSet(3)
	require.NoError(t, s.WriteRepository(repo))

	files := model.NewChangeSetFiles(repo.ID, cs.ID)
	a := files.GetOrCreate("//depot/a.c")
	a.Change = model.ChangeTypeEdit
	a.Diff = "-x\r\n+y\r\n"
	a.LinesModified = 1
	a.LinesAdded = 0
	a.LinesDeleted = 0
	files.GetOrCreate("//depot/b.png").Binary = true
	require.NoError(t, s.WriteChangeSetFiles([]*model.ChangeSetFiles{files}))

	files = model.NewChangeSetFiles(repo.ID, cs.ID)
	files.GetOrCreate("//depot/a.c").Change = model.ChangeTypeDelete
	require.NoError(t, s.WriteChangeSetFiles([]*model.ChangeSetFiles{files}))

	loaded, err := s.LoadChangeSetFiles(repo, cs)
	require.NoError(t, err)

	require.Equal(t, 1, loaded.Len())
	f := loaded.Get("//depot/a.c")
	assert.Equal(t, model.ChangeTypeDelete, f.Change)
	assert.Equal(t, "", f.Diff)
	assert.Equal(t, -1, f.LinesModified)
}

func TestDeleteRepository(t *testing.T) {
	t.Parallel()

	s := newTestStorage(t)

	repos, err := s.LoadRepositories()
	require.NoError(t, err)

	repo := repos.GetOrCreate("old")
	cs := repo.GetOrCreateChangeSet(1)
	repos.GetOrCreate("kept").GetOrCreateChangeSet(1)
	require.NoError(t, s.WriteRepositories())

	files := model.NewChangeSetFiles(repo.ID, cs.ID)
	files.GetOrCreate("a")
	require.NoError(t, s.WriteChangeSetFiles([]*model.ChangeSetFiles{files}))

	require.NoError(t, s.DeleteRepository(repo))
	assert.Nil(t, repos.Get("old"))

	loaded, err := reopen(s).LoadRepositories()
	require.NoError(t, err)

	assert.Nil(t, loaded.Get("old"))
	require.NotNil(t, loaded.Get("kept"))
	assert.Equal(t, 1, loaded.Get("kept").CountChangeSets())

	lf, err := s.LoadChangeSetFiles(repo, cs)
	require.NoError(t, err)
	assert.Equal(t, 0, lf.Len())
}

func TestWriteRepositoryRequiresLoad(t *testing.T) {
	t.Parallel()

	s := newTestStorage(t)

	err := s.WriteRepository(model.NewRepositories().GetOrCreate("x"))

	assert.Error(t, err)
}
