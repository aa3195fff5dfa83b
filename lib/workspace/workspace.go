package workspace

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/abiosoft/lineprefix"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/pescuma/scmchanges/lib/consoles"
	"github.com/pescuma/scmchanges/lib/importers/changes"
	"github.com/pescuma/scmchanges/lib/model"
	"github.com/pescuma/scmchanges/lib/runners"
	"github.com/pescuma/scmchanges/lib/scm"
	"github.com/pescuma/scmchanges/lib/scm/p4"
	"github.com/pescuma/scmchanges/lib/scm/svn"
	"github.com/pescuma/scmchanges/lib/storages"
	"github.com/pescuma/scmchanges/lib/storages/orm"
	"github.com/pescuma/scmchanges/lib/utils"
)

const (
	ConfigRunnerTimeout = "runner.timeout"
	ConfigImportWorkers = "import.workers"
	exeConfigSuffix     = ".exe"
)

type Workspace struct {
	console  consoles.Console
	storage  storages.Storage
	registry *scm.Registry
	runner   runners.Runner
}

func NewWorkspace(file string) (*Workspace, error) {
	if file == "" {
		local, err := utils.FileExists("./.scmchanges")
		if err != nil {
			return nil, err
		}

		file = utils.IIf(local, "./.scmchanges/scmchanges.sqlite", "~/.scmchanges/scmchanges.sqlite")
	}

	console := consoles.NewStdOutConsole()

	var storage storages.Storage
	var err error
	switch {
	case file == ":memory:":
		storage, err = orm.NewGormStorage(orm.WithSqliteInMemory(), console)

	case strings.HasSuffix(file, ".sqlite"):
		file, err = utils.PathAbs(file)
		if err != nil {
			return nil, err
		}

		err = createWorkspaceDir(file)
		if err != nil {
			return nil, err
		}

		storage, err = orm.NewSqliteStorageFactory(console)(file)

	default:
		return nil, errors.Errorf("unknown storage type for file %v", file)
	}
	if err != nil {
		return nil, err
	}

	return newWorkspace(console, storage), nil
}

func newWorkspace(console consoles.Console, storage storages.Storage) *Workspace {
	return &Workspace{
		console:  console,
		storage:  storage,
		registry: scm.NewRegistry(p4.Type, svn.Type),
	}
}

func createWorkspaceDir(file string) error {
	path := filepath.Dir(file)

	if _, err := os.Stat(path); err != nil {
		fmt.Printf("Creating workspace at %v\n", path)
		err = os.MkdirAll(path, 0o700)
		if err != nil {
			return err
		}
	}

	return nil
}

func (w *Workspace) Close() error {
	return w.storage.Close()
}

func (w *Workspace) Console() consoles.Console {
	return w.console
}

func (w *Workspace) Execute(f func(consoles.Console, storages.Storage) error) error {
	return f(w.console, w.storage)
}

// SetGlobalConfig changes a config value. An empty value removes it.
func (w *Workspace) SetGlobalConfig(config string, value string) (bool, error) {
	err := validateConfig(config, value)
	if err != nil {
		return false, err
	}

	cfg, err := w.storage.LoadConfig()
	if err != nil {
		return false, err
	}

	v := (*cfg)[config]
	if v == value {
		return false, nil
	}

	(*cfg)[config] = value

	return true, w.storage.WriteConfig()
}

func validateConfig(config string, value string) error {
	if value == "" {
		return nil
	}

	switch config {
	case ConfigRunnerTimeout:
		_, err := time.ParseDuration(value)
		if err != nil {
			return errors.Wrapf(err, "invalid %v", config)
		}
	case ConfigImportWorkers:
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return errors.Errorf("invalid %v: %v (must be a positive number)", config, value)
		}
	}

	return nil
}

func (w *Workspace) ListGlobalConfig() (map[string]string, error) {
	cfg, err := w.storage.LoadConfig()
	if err != nil {
		return nil, err
	}

	return lo.PickBy(*cfg, func(_ string, v string) bool { return v != "" }), nil
}

func (w *Workspace) getConfig(key string) (string, error) {
	cfg, err := w.storage.LoadConfig()
	if err != nil {
		return "", err
	}

	return (*cfg)[key], nil
}

func (w *Workspace) getRunner() (runners.Runner, error) {
	if w.runner != nil {
		return w.runner, nil
	}

	timeout, err := w.getConfig(ConfigRunnerTimeout)
	if err != nil {
		return nil, err
	}

	opts := &runners.ExecOptions{}
	if timeout != "" {
		opts.Timeout, err = time.ParseDuration(timeout)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid %v", ConfigRunnerTimeout)
		}
	}

	w.runner = runners.NewExecRunner(opts)
	return w.runner, nil
}

func (w *Workspace) executable(t scm.RepositoryType) (string, error) {
	exe, err := w.getConfig(t.Name() + exeConfigSuffix)
	if err != nil {
		return "", err
	}

	return utils.Coalesce(exe, t.DefaultExecutable()), nil
}

func (w *Workspace) newClient(repo *model.Repository) (scm.Client, error) {
	t, err := w.registry.Get(repo.Type)
	if err != nil {
		return nil, err
	}

	err = t.Validate(repo)
	if err != nil {
		return nil, err
	}

	runner, err := w.getRunner()
	if err != nil {
		return nil, err
	}

	exe, err := w.executable(t)
	if err != nil {
		return nil, err
	}

	return t.NewClient(repo, runner, exe), nil
}

func (w *Workspace) AddRepository(name string, repoType string, data map[string]string) (*model.Repository, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("repository name can't be empty")
	}

	t, err := w.registry.Get(repoType)
	if err != nil {
		return nil, err
	}

	repos, err := w.storage.LoadRepositories()
	if err != nil {
		return nil, err
	}

	if repos.Get(name) != nil {
		return nil, errors.Errorf("repository already exists: %v", name)
	}

	for k := range data {
		if !lo.Contains(t.Options(), k) {
			return nil, errors.Errorf("unknown %v option: %v (known options: %v)", t.Name(), k, strings.Join(t.Options(), ", "))
		}
	}

	repo := repos.GetOrCreate(name)
	repo.Type = t.Name()
	for k, v := range data {
		repo.SetData(k, v)
	}

	err = t.Validate(repo)
	if err != nil {
		repos.Remove(name)
		return nil, err
	}

	return repo, w.storage.WriteRepository(repo)
}

func (w *Workspace) ListRepositories() ([]*model.Repository, error) {
	repos, err := w.storage.LoadRepositories()
	if err != nil {
		return nil, err
	}

	return repos.List(), nil
}

func (w *Workspace) GetRepository(name string) (*model.Repository, error) {
	repos, err := w.storage.LoadRepositories()
	if err != nil {
		return nil, err
	}

	repo := repos.Get(name)
	if repo == nil {
		return nil, errors.Errorf("unknown repository: %v", name)
	}

	return repo, nil
}

func (w *Workspace) RemoveRepository(name string) error {
	repo, err := w.GetRepository(name)
	if err != nil {
		return err
	}

	return w.storage.DeleteRepository(repo)
}

// SetRepositoryConfig changes one connection option of a repository. An empty value removes it.
func (w *Workspace) SetRepositoryConfig(name string, key string, value string) (bool, error) {
	repo, err := w.GetRepository(name)
	if err != nil {
		return false, err
	}

	t, err := w.registry.Get(repo.Type)
	if err != nil {
		return false, err
	}

	if !lo.Contains(t.Options(), key) {
		return false, errors.Errorf("unknown %v option: %v (known options: %v)", t.Name(), key, strings.Join(t.Options(), ", "))
	}

	old := repo.GetData(key)
	if !repo.SetData(key, value) {
		return false, nil
	}

	err = t.Validate(repo)
	if err != nil {
		repo.SetData(key, old)
		return false, err
	}

	return true, w.storage.WriteRepository(repo)
}

func (w *Workspace) ImportChanges(ctx context.Context, names []string, opts *changes.Options) error {
	if opts.Workers == 0 {
		workers, err := w.getConfig(ConfigImportWorkers)
		if err != nil {
			return err
		}

		if workers != "" {
			opts.Workers, err = strconv.Atoi(workers)
			if err != nil {
				return errors.Wrapf(err, "invalid %v", ConfigImportWorkers)
			}
		}
	}

	importer := changes.NewImporter(w.console, w.storage, w.newClient)
	return importer.Import(ctx, names, opts)
}

func (w *Workspace) PropGet(ctx context.Context, name string, property string) (string, error) {
	repo, err := w.GetRepository(name)
	if err != nil {
		return "", err
	}

	client, err := w.newClient(repo)
	if err != nil {
		return "", err
	}

	reader, ok := client.(scm.PropertyReader)
	if !ok {
		return "", errors.Errorf("%v repositories don't support properties", repo.Type)
	}

	return reader.PropGet(ctx, property)
}

// ListChangeSets returns the change sets of a repository, newest first.
func (w *Workspace) ListChangeSets(name string) (*model.Repository, []*model.ChangeSet, error) {
	repo, err := w.GetRepository(name)
	if err != nil {
		return nil, nil, err
	}

	return repo, repo.ListChangeSets(), nil
}

func (w *Workspace) GetChangeSet(name string, number int) (*model.Repository, *model.ChangeSet, *model.ChangeSetFiles, error) {
	repo, err := w.GetRepository(name)
	if err != nil {
		return nil, nil, nil, err
	}

	cs := repo.GetChangeSet(number)
	if cs == nil {
		return nil, nil, nil, errors.Errorf("unknown change %v in %v", number, name)
	}

	files, err := w.storage.LoadChangeSetFiles(repo, cs)
	if err != nil {
		return nil, nil, nil, err
	}

	return repo, cs, files, nil
}

func (w *Workspace) LoadChangeSetFiles(repo *model.Repository, cs *model.ChangeSet) (*model.ChangeSetFiles, error) {
	return w.storage.LoadChangeSetFiles(repo, cs)
}

// Run executes the repositories tool with args for each named repository, or for all when names is empty.
// The output of each run is prefixed with the repository name.
func (w *Workspace) Run(ctx context.Context, names []string, args ...string) error {
	var repos []*model.Repository
	if len(names) == 0 {
		all, err := w.ListRepositories()
		if err != nil {
			return err
		}
		repos = all

	} else {
		for _, name := range lo.Uniq(names) {
			repo, err := w.GetRepository(name)
			if err != nil {
				return err
			}
			repos = append(repos, repo)
		}
	}

	sort.Slice(repos, func(i, j int) bool {
		return repos[i].Name < repos[j].Name
	})

	for _, repo := range repos {
		client, err := w.newClient(repo)
		if err != nil {
			w.console.Printf("%v: %v\n", repo.Name, err)
			continue
		}

		exe, cmdArgs := client.Command(args...)

		cmd := exec.CommandContext(ctx, exe, cmdArgs...)

		w.console.Printf("%v: Executing '%v'\n", repo.Name, strings.Join(cmd.Args, "' '"))
		w.console.PushPrefix("%v: ", repo.Name)

		prefix := lineprefix.PrefixFunc(func() string {
			return w.console.Prepare("")
		})

		cmd.Stdin = os.Stdin
		cmd.Stdout = lineprefix.New(lineprefix.Writer(os.Stdout), prefix)
		cmd.Stderr = lineprefix.New(lineprefix.Writer(os.Stderr), prefix)

		err = cmd.Run()
		if err != nil {
			w.console.Printf("%v\n", err)
		}

		w.console.PopPrefix()
	}

	return nil
}
