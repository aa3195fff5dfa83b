package scm

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

type Registry struct {
	types map[string]RepositoryType
}

func NewRegistry(types ...RepositoryType) *Registry {
	result := &Registry{
		types: map[string]RepositoryType{},
	}

	for _, t := range types {
		result.Register(t)
	}

	return result
}

func (r *Registry) Register(t RepositoryType) {
	name := strings.ToLower(t.Name())

	if _, ok := r.types[name]; ok {
		panic(fmt.Sprintf("repository type already registered: %v", name))
	}

	r.types[name] = t
}

func (r *Registry) Get(name string) (RepositoryType, error) {
	result, ok := r.types[strings.ToLower(name)]
	if !ok {
		return nil, errors.Errorf("unknown repository type: %v (known types: %v)", name, strings.Join(r.Names(), ", "))
	}

	return result, nil
}

func (r *Registry) Names() []string {
	result := lo.Keys(r.types)
	sort.Strings(result)
	return result
}
