package orm

import (
	"time"

	"github.com/pescuma/scmchanges/lib/model"
)

type sqlChangeSet struct {
	ID           model.ID
	RepositoryID model.ID `gorm:"index"`
	Number       int      `gorm:"index"`
	User         string
	Client       string
	Date         time.Time `gorm:"index"`
	Description  string

	FilesAdded    *int
	FilesDeleted  *int
	FilesEdited   *int
	FilesReplaced *int
	LinesModified *int
	LinesAdded    *int
	LinesDeleted  *int

	CreatedAt time.Time
	UpdatedAt time.Time

	Files []sqlChangeSetFile `gorm:"foreignKey:ChangeSetID"`
}

func newSqlChangeSet(r *model.Repository, c *model.ChangeSet) *sqlChangeSet {
	return &sqlChangeSet{
		ID:            c.ID,
		RepositoryID:  r.ID,
		Number:        c.Number,
		User:          c.User,
		Client:        c.Client,
		Date:          c.Date,
		Description:   c.Description,
		FilesAdded:    encodeCount(c.FilesAdded),
		FilesDeleted:  encodeCount(c.FilesDeleted),
		FilesEdited:   encodeCount(c.FilesEdited),
		FilesReplaced: encodeCount(c.FilesReplaced),
		LinesModified: encodeCount(c.LinesModified),
		LinesAdded:    encodeCount(c.LinesAdded),
		LinesDeleted:  encodeCount(c.LinesDeleted),
	}
}

func (s *sqlChangeSet) CacheKey() string {
	return s.ID.String()
}
