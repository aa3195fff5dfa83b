package orm

import (
	"github.com/pescuma/scmchanges/lib/model"
)

type sqlChangeSetFile struct {
	ChangeSetID  model.ID `gorm:"primaryKey"`
	Path         string   `gorm:"primaryKey"`
	RepositoryID model.ID `gorm:"index"`
	Revision     int
	Change       model.ChangeType
	Binary       bool
	Diff         string

	LinesModified *int
	LinesAdded    *int
	LinesDeleted  *int
}

func newSqlChangeSetFile(files *model.ChangeSetFiles, f *model.ChangeSetFile) *sqlChangeSetFile {
	return &sqlChangeSetFile{
		ChangeSetID:   files.ChangeSetID,
		Path:          f.Path,
		RepositoryID:  files.RepositoryID,
		Revision:      f.Revision,
		Change:        f.Change,
		Binary:        f.Binary,
		Diff:          f.Diff,
		LinesModified: encodeCount(f.LinesModified),
		LinesAdded:    encodeCount(f.LinesAdded),
		LinesDeleted:  encodeCount(f.LinesDeleted),
	}
}

func (s *sqlChangeSetFile) CacheKey() string {
	return compositeKey(s.ChangeSetID.String(), s.Path)
}
