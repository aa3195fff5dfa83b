package storages

import (
	"github.com/pescuma/scmchanges/lib/model"
)

type Storage interface {
	LoadConfig() (*map[string]string, error)
	WriteConfig() error

	LoadRepositories() (*model.Repositories, error)
	WriteRepositories() error
	WriteRepository(repo *model.Repository) error
	DeleteRepository(repo *model.Repository) error

	LoadChangeSetFiles(repo *model.Repository, cs *model.ChangeSet) (*model.ChangeSetFiles, error)
	WriteChangeSetFiles(files []*model.ChangeSetFiles) error

	Close() error
}

type Factory = func(path string) (Storage, error)
