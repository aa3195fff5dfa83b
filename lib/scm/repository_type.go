package scm

import (
	"context"

	"github.com/pescuma/scmchanges/lib/model"
	"github.com/pescuma/scmchanges/lib/runners"
)

// RepositoryType knows how to talk to one kind of source control server.
type RepositoryType interface {
	Name() string
	DefaultExecutable() string

	// Options lists the keys accepted in model.Repository.Data.
	Options() []string
	Validate(repo *model.Repository) error

	NewClient(repo *model.Repository, runner runners.Runner, exe string) Client
}

type Client interface {
	// ListChanges lists the submitted change sets with a number bigger than since. 0 lists all.
	ListChanges(ctx context.Context, since int) (*model.ChangesList, error)
	Describe(ctx context.Context, change *model.ChangeSetSummary) (*model.ChangeSetDetails, error)

	// Command returns the executable and the arguments needed to run args against the repository.
	Command(args ...string) (string, []string)
}

type UserResolver interface {
	ResolveUser(ctx context.Context, name string) (*model.UserInfo, error)
}

type PropertyReader interface {
	PropGet(ctx context.Context, name string) (string, error)
}
