package server

import (
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"github.com/pescuma/scmchanges/lib/filters"
	"github.com/pescuma/scmchanges/lib/model"
)

type RepoParams struct {
	Repo string `uri:"repo" binding:"required"`
}

type ReposListParams struct {
	GridParams
	Name string `form:"name"`
	Type string `form:"type"`
}

func (s *server) initRepos(r *gin.Engine) {
	r.GET("/api/repos", getP[ReposListParams](s.reposList))
	r.GET("/api/repos/:repo", getP[RepoParams](s.repoGet))
}

func (s *server) reposList(params *ReposListParams) (any, error) {
	nameFilter, err := filters.ParseStringFilter(params.Name)
	if err != nil {
		return nil, badRequest(err)
	}

	repos := lo.Filter(s.repos.List(), func(r *model.Repository, _ int) bool {
		return nameFilter(r.Name) && (params.Type == "" || r.Type == params.Type)
	})

	err = s.sortRepos(repos, params.Sort, params.Asc)
	if err != nil {
		return nil, err
	}

	return page(repos, params.GridParams, s.toRepo), nil
}

func (s *server) repoGet(params *RepoParams) (any, error) {
	repo, err := s.findRepo(params.Repo)
	if err != nil {
		return nil, err
	}

	return s.toRepo(repo), nil
}

func (s *server) findRepo(name string) (*model.Repository, error) {
	repo := s.repos.Get(name)
	if repo == nil {
		return nil, notFound("unknown repository %v", name)
	}

	return repo, nil
}
