package svn

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/pescuma/scmchanges/lib/model"
	"github.com/pescuma/scmchanges/lib/runners"
	"github.com/pescuma/scmchanges/lib/scm"
)

const (
	OptionURL  = "url"
	OptionUser = "user"

	noSuchRevisionCode = "E160006"
)

var Type scm.RepositoryType = &repositoryType{}

type repositoryType struct{}

func (t *repositoryType) Name() string {
	return "svn"
}

func (t *repositoryType) DefaultExecutable() string {
	return "svn"
}

func (t *repositoryType) Options() []string {
	return []string{OptionURL, OptionUser}
}

func (t *repositoryType) Validate(repo *model.Repository) error {
	if repo.GetData(OptionURL) == "" {
		return errors.Errorf("%v: svn repositories need an url", repo.Name)
	}

	return nil
}

func (t *repositoryType) NewClient(repo *model.Repository, runner runners.Runner, exe string) scm.Client {
	return &Client{
		runner:  runner,
		exe:     exe,
		url:     repo.GetData(OptionURL),
		user:    repo.GetData(OptionUser),
		entries: map[int]*LogEntry{},
	}
}

type Client struct {
	runner runners.Runner
	exe    string
	url    string
	user   string

	mutex   sync.Mutex
	entries map[int]*LogEntry
}

func (c *Client) Command(args ...string) (string, []string) {
	var result []string

	if c.user != "" {
		result = append(result, "--username", c.user)
	}

	return c.exe, append(result, args...)
}

func (c *Client) run(ctx context.Context, args ...string) (string, error) {
	exe, args := c.Command(args...)
	return runners.Check(ctx, c.runner, exe, args...)
}

func (c *Client) log(ctx context.Context, start string, end string) ([]*LogEntry, error) {
	out, err := c.run(ctx, "log", fmt.Sprintf("-r%v:%v", start, end), "-v", "--xml", c.url)
	if err != nil {
		return nil, err
	}

	entries, err := ParseLog(out)
	if err != nil {
		return nil, err
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	for _, e := range entries {
		c.entries[e.Summary.Number] = e
	}

	return entries, nil
}

// ListChanges returns the revisions oldest first, as printed by svn log.
func (c *Client) ListChanges(ctx context.Context, since int) (*model.ChangesList, error) {
	entries, err := c.log(ctx, strconv.Itoa(since+1), "HEAD")
	if err != nil {
		var re *runners.RunnerError
		if since > 0 && errors.As(err, &re) && strings.Contains(re.Message, noSuchRevisionCode) {
			return &model.ChangesList{}, nil
		}
		return nil, err
	}

	result := &model.ChangesList{}
	for _, e := range entries {
		result.Changes = append(result.Changes, e.Summary)
	}

	return result, nil
}

func (c *Client) Describe(ctx context.Context, change *model.ChangeSetSummary) (*model.ChangeSetDetails, error) {
	entry, err := c.getEntry(ctx, change.Number)
	if err != nil {
		return nil, err
	}

	out, err := c.run(ctx, "diff", fmt.Sprintf("-r%v:%v", change.Number-1, change.Number), c.url)
	if err != nil {
		return nil, err
	}

	details := cloneDetails(entry.Details)
	AttachDiffs(details, ParseDiff(out))

	return details, nil
}

func (c *Client) getEntry(ctx context.Context, revision int) (*LogEntry, error) {
	c.mutex.Lock()
	entry, ok := c.entries[revision]
	c.mutex.Unlock()

	if ok {
		return entry, nil
	}

	rev := strconv.Itoa(revision)
	entries, err := c.log(ctx, rev, rev)
	if err != nil {
		return nil, err
	}

	if len(entries) == 0 {
		return nil, errors.Errorf("revision %v not found in %v", revision, c.url)
	}

	return entries[0], nil
}

func (c *Client) PropGet(ctx context.Context, name string) (string, error) {
	out, err := c.run(ctx, "propget", name, c.url)
	if err != nil {
		return "", err
	}

	return strings.TrimRight(out, "\n"), nil
}

func cloneDetails(d *model.ChangeSetDetails) *model.ChangeSetDetails {
	result := &model.ChangeSetDetails{
		Description: d.Description,
	}

	for _, f := range d.FileChanges {
		c := *f
		result.FileChanges = append(result.FileChanges, &c)
	}

	return result
}
