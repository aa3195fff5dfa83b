package model

import (
	"sort"

	"github.com/samber/lo"
)

type Repositories struct {
	byName map[string]*Repository
	byID   map[ID]*Repository

	repoMaxID      ID
	changeSetMaxID ID
}

func NewRepositories() *Repositories {
	return &Repositories{
		byName: map[string]*Repository{},
		byID:   map[ID]*Repository{},
	}
}

func (s *Repositories) Get(name string) *Repository {
	return s.byName[name]
}

func (s *Repositories) GetOrCreate(name string) *Repository {
	return s.GetOrCreateEx(name, nil)
}

func (s *Repositories) GetOrCreateEx(name string, id *ID) *Repository {
	if len(name) == 0 {
		panic("empty name not supported")
	}

	result, ok := s.byName[name]

	if !ok {
		result = NewRepository(nextID(&s.repoMaxID, id), name, s)
		s.byName[name] = result
		s.byID[result.ID] = result
	}

	return result
}

func (s *Repositories) GetByID(id ID) *Repository {
	return s.byID[id]
}

func (s *Repositories) Remove(name string) *Repository {
	result, ok := s.byName[name]
	if !ok {
		return nil
	}

	delete(s.byName, name)
	delete(s.byID, result.ID)
	return result
}

func (s *Repositories) List() []*Repository {
	result := lo.Values(s.byName)

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}
