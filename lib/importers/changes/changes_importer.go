package changes

import (
	"context"
	"sort"
	"time"

	"github.com/gertd/go-pluralize"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/pescuma/scmchanges/lib/consoles"
	"github.com/pescuma/scmchanges/lib/diffs"
	"github.com/pescuma/scmchanges/lib/model"
	"github.com/pescuma/scmchanges/lib/scm"
	"github.com/pescuma/scmchanges/lib/storages"
	"github.com/pescuma/scmchanges/lib/utils"
)

// ClientFactory creates the client used to talk to the server of a repository.
type ClientFactory = func(repo *model.Repository) (scm.Client, error)

type Importer struct {
	console consoles.Console
	storage storages.Storage
	clients ClientFactory

	pluralize *pluralize.Client
}

type Options struct {
	Incremental      bool
	MaxChanges       *int
	After            *time.Time
	Before           *time.Time
	SaveEvery        *time.Duration
	IgnoreWhitespace bool
	ResolveUsers     bool
	Workers          int
	Quiet            bool
}

func NewImporter(console consoles.Console, storage storages.Storage, clients ClientFactory) *Importer {
	return &Importer{
		console:   console,
		storage:   storage,
		clients:   clients,
		pluralize: pluralize.NewClient(),
	}
}

// Import imports the change sets of the named repositories, or of all of them when names is empty.
// Failures talking to a server are stored in the repository and do not stop the other repositories.
func (i *Importer) Import(ctx context.Context, names []string, opts *Options) error {
	reposDB, err := i.storage.LoadRepositories()
	if err != nil {
		return err
	}

	repos, err := selectRepositories(reposDB, names)
	if err != nil {
		return err
	}

	failed := 0
	for _, repo := range repos {
		err = i.importRepository(ctx, repo, opts)

		var ce *clientError
		if errors.As(err, &ce) {
			failed++
			i.console.Printf("%v: %v\n", repo.Name, ce.err)

			repo.SetLastError(ce.err)

			err = i.storage.WriteRepository(repo)
		}
		if err != nil {
			return err
		}
	}

	if failed > 0 {
		i.console.Printf("Failed to import %v\n", i.pluralize.Pluralize("repository", failed, true))
	}

	return nil
}

func selectRepositories(reposDB *model.Repositories, names []string) ([]*model.Repository, error) {
	if len(names) == 0 {
		return reposDB.List(), nil
	}

	var result []*model.Repository
	for _, name := range lo.Uniq(names) {
		repo := reposDB.Get(name)
		if repo == nil {
			return nil, errors.Errorf("unknown repository: %v", name)
		}

		result = append(result, repo)
	}

	return result, nil
}

type work struct {
	summary *model.ChangeSetSummary
	details *model.ChangeSetDetails
}

func (i *Importer) importRepository(ctx context.Context, repo *model.Repository, opts *Options) error {
	client, err := i.clients(repo)
	if err != nil {
		return &clientError{err}
	}

	since := 0
	if opts.Incremental {
		since = repo.LastChange
	}

	i.console.Printf("%v: Listing changes...\n", repo.Name)

	list, err := client.ListChanges(ctx, since)
	if err != nil {
		return &clientError{err}
	}

	if list.Truncated {
		i.console.Printf("%v: Change list output had an invalid line, using only the first %v\n",
			repo.Name, i.pluralize.Pluralize("change", len(list.Changes), true))
	}

	toImport := selectChanges(repo, list.Changes, opts)

	for _, s := range toImport {
		cs := repo.GetOrCreateChangeSet(s.Number)
		cs.ApplySummary(s)
		repo.SeenAt(s.Date)
	}

	if opts.ResolveUsers {
		err = i.resolveUsers(ctx, repo, client, toImport)
		if err != nil {
			return err
		}
	}

	if len(toImport) == 0 {
		i.console.Printf("%v: No new changes\n", repo.Name)

		repo.SetLastError(nil)
		return i.storage.WriteRepository(repo)
	}

	i.console.Printf("%v: Importing %v...\n", repo.Name, i.pluralize.Pluralize("change", len(toImport), true))

	writeResults := func(files []*model.ChangeSetFiles) error {
		err := i.storage.WriteRepository(repo)
		if err != nil {
			return err
		}

		return i.storage.WriteChangeSetFiles(files)
	}

	group := utils.ParallelFor(toImport,
		func(s *model.ChangeSetSummary) (*work, error) {
			details, err := client.Describe(ctx, s)
			if err != nil {
				return nil, &clientError{errors.Wrapf(err, "error describing change %v", s.Number)}
			}

			return &work{summary: s, details: details}, nil
		},
		utils.ParallelOptions{Routines: opts.Workers, Context: ctx},
	)

	bar := utils.IIf(opts.Quiet, utils.NewSilentProgressBar, utils.NewProgressBar)(len(toImport))
	start := time.Now()
	var filesToWrite []*model.ChangeSetFiles
	for w := range group.Output {
		bar.Describe(w.summary.Date.Format("2006-01-02 15"))

		cs := repo.GetChangeSet(w.summary.Number)
		filesToWrite = append(filesToWrite, applyDetails(repo, cs, w.details, opts))

		if opts.SaveEvery != nil && time.Since(start) >= *opts.SaveEvery {
			_ = bar.Clear()
			i.console.Printf("%v: Writing results...\n", repo.Name)

			err = writeResults(filesToWrite)
			if err != nil {
				group.Abort(err)
				break
			}

			filesToWrite = nil
			start = time.Now()
		}

		_ = bar.Add(1)
	}
	_ = bar.Finish()

	err = group.Wait()
	if err != nil {
		// Keep what was already described
		werr := writeResults(filesToWrite)
		if werr != nil {
			return werr
		}

		return err
	}

	repo.LastChange = utils.Max(repo.LastChange, lo.Max(lo.Map(toImport, func(s *model.ChangeSetSummary, _ int) int {
		return s.Number
	})))
	repo.SetLastError(nil)

	i.console.Printf("%v: Writing results...\n", repo.Name)

	return writeResults(filesToWrite)
}

// selectChanges returns the changes to describe, oldest first.
func selectChanges(repo *model.Repository, changes []*model.ChangeSetSummary, opts *Options) []*model.ChangeSetSummary {
	result := lo.Filter(changes, func(s *model.ChangeSetSummary, _ int) bool {
		if opts.After != nil && s.Date.Before(*opts.After) {
			return false
		}
		if opts.Before != nil && !s.Date.Before(*opts.Before) {
			return false
		}
		if opts.Incremental {
			cs := repo.GetChangeSet(s.Number)
			if cs != nil && cs.HasDetails() {
				return false
			}
		}
		return true
	})

	result = lo.UniqBy(result, func(s *model.ChangeSetSummary) int { return s.Number })

	sort.Slice(result, func(i, j int) bool {
		return result[i].Number < result[j].Number
	})

	if opts.MaxChanges != nil && len(result) > *opts.MaxChanges {
		result = result[:*opts.MaxChanges]
	}

	return result
}

func applyDetails(repo *model.Repository, cs *model.ChangeSet, details *model.ChangeSetDetails, opts *Options) *model.ChangeSetFiles {
	cs.Description = details.Description

	files := model.NewChangeSetFiles(repo.ID, cs.ID)

	for _, fc := range details.FileChanges {
		f := files.GetOrCreate(fc.Path)
		f.Revision = fc.Revision
		f.Change = fc.ChangeType
		f.Binary = fc.Binary

		diff := fc.Diff
		if opts.IgnoreWhitespace && !fc.Binary {
			diff = diffs.FilterWhitespaceOnlyDiffs(diff)
		}
		f.Diff = diff

		if !fc.Binary && diff != "" {
			stats := diffs.CountChanges(diff)
			f.LinesModified = stats.Modified
			f.LinesAdded = stats.Added
			f.LinesDeleted = stats.Deleted
		}
	}

	cs.ComputeTotals(files)

	return files
}

func (i *Importer) resolveUsers(ctx context.Context, repo *model.Repository, client scm.Client, changes []*model.ChangeSetSummary) error {
	resolver, ok := client.(scm.UserResolver)
	if !ok {
		return nil
	}

	logins := lo.Uniq(lo.Map(changes, func(s *model.ChangeSetSummary, _ int) string { return s.User }))
	logins = lo.Filter(logins, func(login string, _ int) bool {
		_, known := repo.Users[login]
		return login != "" && !known
	})

	if len(logins) == 0 {
		return nil
	}

	i.console.Printf("%v: Resolving %v...\n", repo.Name, i.pluralize.Pluralize("user", len(logins), true))

	for _, login := range logins {
		info, err := resolver.ResolveUser(ctx, login)
		if err != nil {
			return &clientError{errors.Wrapf(err, "error resolving user %v", login)}
		}

		repo.SetUser(login, info)
	}

	return nil
}

// clientError marks errors returned by the server of a repository, as opposed to storage errors.
type clientError struct {
	err error
}

func (e *clientError) Error() string {
	return e.err.Error()
}

func (e *clientError) Unwrap() error {
	return e.err
}
