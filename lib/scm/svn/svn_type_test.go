package svn

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pescuma/scmchanges/lib/model"
	"github.com/pescuma/scmchanges/lib/runners"
)

const repoURL = "svn://host/repo/trunk"

func newTestRepo() *model.Repository {
	repo := model.NewRepositories().GetOrCreate("project")
	repo.Type = "svn"
	repo.SetData(OptionURL, repoURL)
	return repo
}

func TestValidate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, Type.Validate(newTestRepo()))
	assert.Error(t, Type.Validate(model.NewRepositories().GetOrCreate("empty")))
}

func TestCommandAddsUser(t *testing.T) {
	t.Parallel()

	repo := newTestRepo()
	repo.SetData(OptionUser, "alice")

	exe, args := Type.NewClient(repo, runners.NewFakeRunner(), "svn").Command("info")

	assert.Equal(t, "svn", exe)
	assert.Equal(t, []string{"--username", "alice", "info"}, args)
}

func TestListChanges(t *testing.T) {
	t.Parallel()

	runner := runners.NewFakeRunner().
		Add(logOutput, "svn", "log", "-r11:HEAD", "-v", "--xml", repoURL)

	result, err := Type.NewClient(newTestRepo(), runner, "svn").ListChanges(context.Background(), 10)

	require.NoError(t, err)
	assert.False(t, result.Truncated)
	require.Len(t, result.Changes, 2)
	assert.Equal(t, 12, result.Changes[0].Number)
	assert.Equal(t, "bob", result.Changes[1].User)
}

func TestListChangesAfterHead(t *testing.T) {
	t.Parallel()

	runner := runners.NewFakeRunner().
		AddFailure("svn: E160006: No such revision 14\n", 1, "svn", "log", "-r14:HEAD", "-v", "--xml", repoURL)

	result, err := Type.NewClient(newTestRepo(), runner, "svn").ListChanges(context.Background(), 13)

	require.NoError(t, err)
	assert.Empty(t, result.Changes)
}

func TestListChangesFailure(t *testing.T) {
	t.Parallel()

	runner := runners.NewFakeRunner().
		AddFailure("svn: E170013: Unable to connect\n", 1, "svn", "log", "-r1:HEAD", "-v", "--xml", repoURL)

	_, err := Type.NewClient(newTestRepo(), runner, "svn").ListChanges(context.Background(), 0)

	var re *runners.RunnerError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "svn: E170013: Unable to connect", re.Message)
}

func TestDescribeUsesCachedLog(t *testing.T) {
	t.Parallel()

	runner := runners.NewFakeRunner().
		Add(logOutput, "svn", "log", "-r1:HEAD", "-v", "--xml", repoURL).
		Add(diffOutput, "svn", "diff", "-r11:12", repoURL)

	c := Type.NewClient(newTestRepo(), runner, "svn")

	list, err := c.ListChanges(context.Background(), 0)
	require.NoError(t, err)

	details, err := c.Describe(context.Background(), list.Changes[0])
	require.NoError(t, err)

	assert.Equal(t, "Move old.c to src/new.c", details.Description)
	require.Len(t, details.FileChanges, 3)
	assert.Contains(t, details.FileChanges[0].Diff, "@@ -1,2 +1,2 @@")
	assert.Len(t, runner.Calls(), 2)
}

func TestDescribeWithoutCache(t *testing.T) {
	t.Parallel()

	runner := runners.NewFakeRunner().
		Add(logOutput, "svn", "log", "-r12:12", "-v", "--xml", repoURL).
		Add("", "svn", "diff", "-r11:12", repoURL)

	details, err := Type.NewClient(newTestRepo(), runner, "svn").
		Describe(context.Background(), &model.ChangeSetSummary{Number: 12})

	require.NoError(t, err)
	assert.Len(t, details.FileChanges, 3)
}

func TestPropGet(t *testing.T) {
	t.Parallel()

	runner := runners.NewFakeRunner().
		Add("^/vendor/lib lib\n\n", "svn", "propget", "svn:externals", repoURL)

	c := Type.NewClient(newTestRepo(), runner, "svn").(*Client)

	value, err := c.PropGet(context.Background(), "svn:externals")

	require.NoError(t, err)
	assert.Equal(t, "^/vendor/lib lib", value)
}
