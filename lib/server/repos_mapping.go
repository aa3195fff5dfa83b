package server

import (
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/pescuma/scmchanges/lib/model"
)

func (s *server) sortRepos(col []*model.Repository, field string, asc *bool) error {
	if field == "" {
		field = "name"
	}
	if asc == nil {
		asc = new(bool)
		*asc = field == "name" || field == "type"
	}

	switch field {
	case "name":
		sortBy(col, func(r *model.Repository) string { return r.Name }, *asc)
	case "type":
		sortBy(col, func(r *model.Repository) string { return r.Type }, *asc)
	case "changes":
		sortBy(col, func(r *model.Repository) int { return r.CountChangeSets() }, *asc)
	case "lastChange":
		sortBy(col, func(r *model.Repository) int { return r.LastChange }, *asc)
	case "lastSeen":
		sortBy(col, func(r *model.Repository) int64 { return r.LastSeen.Unix() }, *asc)
	default:
		return badRequest(errors.Errorf("unknown sort field: %s", field))
	}

	return nil
}

func (s *server) sortChanges(col []*model.ChangeSet, field string, asc *bool) error {
	if field == "" {
		field = "number"
	}
	if asc == nil {
		asc = new(bool)
		*asc = field == "user"
	}

	switch field {
	case "number":
		sortBy(col, func(c *model.ChangeSet) int { return c.Number }, *asc)
	case "date":
		sortBy(col, func(c *model.ChangeSet) int64 { return c.Date.Unix() }, *asc)
	case "user":
		sortBy(col, func(c *model.ChangeSet) string { return c.User }, *asc)
	case "lines":
		sortBy(col, func(c *model.ChangeSet) int { return c.LinesModified + c.LinesAdded + c.LinesDeleted }, *asc)
	default:
		return badRequest(errors.Errorf("unknown sort field: %s", field))
	}

	return nil
}

func (s *server) toRepo(r *model.Repository) gin.H {
	return gin.H{
		"id":         r.ID,
		"name":       r.Name,
		"type":       r.Type,
		"data":       r.Data,
		"lastChange": r.LastChange,
		"lastError":  r.LastError,
		"changes":    r.CountChangeSets(),
		"firstSeen":  encodeDate(r.FirstSeen),
		"lastSeen":   encodeDate(r.LastSeen),
	}
}

func (s *server) toChangeSet(repo *model.Repository, c *model.ChangeSet) gin.H {
	return gin.H{
		"id":            c.ID,
		"number":        c.Number,
		"user":          c.User,
		"userName":      repo.UserName(c.User),
		"client":        c.Client,
		"date":          encodeDate(c.Date),
		"description":   c.Description,
		"filesAdded":    encodeCount(c.FilesAdded),
		"filesDeleted":  encodeCount(c.FilesDeleted),
		"filesEdited":   encodeCount(c.FilesEdited),
		"filesReplaced": encodeCount(c.FilesReplaced),
		"linesModified": encodeCount(c.LinesModified),
		"linesAdded":    encodeCount(c.LinesAdded),
		"linesDeleted":  encodeCount(c.LinesDeleted),
	}
}

func (s *server) toFile(f *model.ChangeSetFile, withDiff bool) gin.H {
	result := gin.H{
		"path":          f.Path,
		"revision":      f.Revision,
		"change":        f.Change.String(),
		"binary":        f.Binary,
		"linesModified": encodeCount(f.LinesModified),
		"linesAdded":    encodeCount(f.LinesAdded),
		"linesDeleted":  encodeCount(f.LinesDeleted),
	}

	if withDiff {
		result["diff"] = f.Diff
	}

	return result
}
