package server

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-set/v2"
	"github.com/samber/lo"

	"github.com/pescuma/scmchanges/lib/diffs"
	"github.com/pescuma/scmchanges/lib/filters"
	"github.com/pescuma/scmchanges/lib/model"
)

type ChangesListParams struct {
	GridParams
	Repo string `uri:"repo" binding:"required"`
	Path string `form:"path"`
	User string `form:"user"`
}

type ChangeParams struct {
	Repo   string `uri:"repo" binding:"required"`
	Number int    `uri:"number" binding:"required"`
}

type ChangeFilesParams struct {
	Repo             string `uri:"repo" binding:"required"`
	Number           int    `uri:"number" binding:"required"`
	Path             string `form:"path"`
	IgnoreWhitespace bool   `form:"ignoreWhitespace"`
}

func (s *server) initChanges(r *gin.Engine) {
	r.GET("/api/repos/:repo/changes", getP[ChangesListParams](s.changesList))
	r.GET("/api/repos/:repo/changes/:number", getP[ChangeParams](s.changeGet))
	r.GET("/api/repos/:repo/changes/:number/files", getP[ChangeFilesParams](s.changeFiles))
}

func (s *server) changesList(params *ChangesListParams) (any, error) {
	repo, err := s.findRepo(params.Repo)
	if err != nil {
		return nil, err
	}

	pathFilter, err := filters.ParsePathFilter(params.Path)
	if err != nil {
		return nil, badRequest(err)
	}

	var users *set.Set[string]
	if params.User != "" {
		users = set.From(strings.Split(params.User, ","))
	}

	changes := repo.ListChangeSets()
	changes = lo.Filter(changes, func(c *model.ChangeSet, _ int) bool {
		return users == nil || users.Contains(c.User)
	})

	if params.Path != "" {
		var filtered []*model.ChangeSet
		for _, c := range changes {
			files, err := s.storage.LoadChangeSetFiles(repo, c)
			if err != nil {
				return nil, err
			}

			paths := lo.Map(files.List(), func(f *model.ChangeSetFile, _ int) string { return f.Path })
			if filters.MatchesAny(pathFilter, paths) {
				filtered = append(filtered, c)
			}
		}
		changes = filtered
	}

	err = s.sortChanges(changes, params.Sort, params.Asc)
	if err != nil {
		return nil, err
	}

	return page(changes, params.GridParams, func(c *model.ChangeSet) gin.H {
		return s.toChangeSet(repo, c)
	}), nil
}

func (s *server) findChange(repoName string, number int) (*model.Repository, *model.ChangeSet, error) {
	repo, err := s.findRepo(repoName)
	if err != nil {
		return nil, nil, err
	}

	c := repo.GetChangeSet(number)
	if c == nil {
		return nil, nil, notFound("unknown change %v in %v", number, repoName)
	}

	return repo, c, nil
}

func (s *server) changeGet(params *ChangeParams) (any, error) {
	repo, c, err := s.findChange(params.Repo, params.Number)
	if err != nil {
		return nil, err
	}

	files, err := s.storage.LoadChangeSetFiles(repo, c)
	if err != nil {
		return nil, err
	}

	result := s.toChangeSet(repo, c)
	result["files"] = lo.Map(files.List(), func(f *model.ChangeSetFile, _ int) gin.H {
		return s.toFile(f, false)
	})

	return result, nil
}

func (s *server) changeFiles(params *ChangeFilesParams) (any, error) {
	repo, c, err := s.findChange(params.Repo, params.Number)
	if err != nil {
		return nil, err
	}

	pathFilter, err := filters.ParsePathFilter(params.Path)
	if err != nil {
		return nil, badRequest(err)
	}

	files, err := s.storage.LoadChangeSetFiles(repo, c)
	if err != nil {
		return nil, err
	}

	result := []gin.H{}
	for _, f := range files.List() {
		if !pathFilter(f.Path) {
			continue
		}

		if params.IgnoreWhitespace && !f.Binary && f.Diff != "" {
			filtered := *f
			filtered.Diff = diffs.FilterWhitespaceOnlyDiffs(f.Diff)

			stats := diffs.CountChanges(filtered.Diff)
			filtered.LinesModified = stats.Modified
			filtered.LinesAdded = stats.Added
			filtered.LinesDeleted = stats.Deleted

			f = &filtered
		}

		result = append(result, s.toFile(f, true))
	}

	return result, nil
}
