package p4

import (
	"context"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/pescuma/scmchanges/lib/model"
	"github.com/pescuma/scmchanges/lib/runners"
	"github.com/pescuma/scmchanges/lib/scm"
)

const (
	OptionPort   = "port"
	OptionUser   = "user"
	OptionClient = "client"
	OptionPath   = "path"

	defaultPath = "//..."
)

var Type scm.RepositoryType = &repositoryType{}

type repositoryType struct{}

func (t *repositoryType) Name() string {
	return "p4"
}

func (t *repositoryType) DefaultExecutable() string {
	return "p4"
}

func (t *repositoryType) Options() []string {
	return []string{OptionPort, OptionUser, OptionClient, OptionPath}
}

func (t *repositoryType) Validate(repo *model.Repository) error {
	path := repo.GetData(OptionPath)
	if path != "" && !strings.HasPrefix(path, "//") {
		return errors.Errorf("%v: p4 path must be a depot path starting with //: %v", repo.Name, path)
	}

	return nil
}

func (t *repositoryType) NewClient(repo *model.Repository, runner runners.Runner, exe string) scm.Client {
	return &Client{
		runner: runner,
		exe:    exe,
		port:   repo.GetData(OptionPort),
		user:   repo.GetData(OptionUser),
		client: repo.GetData(OptionClient),
		path:   repo.GetData(OptionPath),
	}
}

type Client struct {
	runner runners.Runner
	exe    string
	port   string
	user   string
	client string
	path   string
}

func (c *Client) Command(args ...string) (string, []string) {
	var result []string

	if c.port != "" {
		result = append(result, "-p", c.port)
	}
	if c.user != "" {
		result = append(result, "-u", c.user)
	}
	if c.client != "" {
		result = append(result, "-c", c.client)
	}

	return c.exe, append(result, args...)
}

func (c *Client) run(ctx context.Context, args ...string) (string, error) {
	exe, args := c.Command(args...)
	return runners.Check(ctx, c.runner, exe, args...)
}

func (c *Client) selector(since int) string {
	path := c.path
	if path == "" {
		path = defaultPath
	}

	if since <= 0 {
		return path
	}

	return path + "@" + strconv.Itoa(since+1) + ",#head"
}

func (c *Client) ListChanges(ctx context.Context, since int) (*model.ChangesList, error) {
	out, err := c.run(ctx, "changes", "-s", "submitted", "-t", c.selector(since))
	if err != nil {
		return nil, err
	}

	return ParseChangesList(out), nil
}

func (c *Client) Describe(ctx context.Context, change *model.ChangeSetSummary) (*model.ChangeSetDetails, error) {
	out, err := c.run(ctx, "describe", "-du", strconv.Itoa(change.Number))
	if err != nil {
		return nil, err
	}

	return ParseDescribe(out), nil
}

func (c *Client) ResolveUser(ctx context.Context, name string) (*model.UserInfo, error) {
	out, err := c.run(ctx, "user", "-o", name)
	if err != nil {
		return nil, err
	}

	result := ParseUser(out)
	if result.Name == "" {
		result.Name = name
	}

	return result, nil
}
