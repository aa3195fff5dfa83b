package model

import (
	"time"
)

type ChangeSet struct {
	ID          ID
	Number      int
	User        string
	Client      string
	Date        time.Time
	Description string

	FilesAdded    int
	FilesDeleted  int
	FilesEdited   int
	FilesReplaced int

	LinesModified int
	LinesAdded    int
	LinesDeleted  int
}

func NewChangeSet(id ID, number int) *ChangeSet {
	return &ChangeSet{
		ID:            id,
		Number:        number,
		FilesAdded:    -1,
		FilesDeleted:  -1,
		FilesEdited:   -1,
		FilesReplaced: -1,
		LinesModified: -1,
		LinesAdded:    -1,
		LinesDeleted:  -1,
	}
}

func (c *ChangeSet) HasDetails() bool {
	return c.FilesAdded != -1
}

func (c *ChangeSet) ApplySummary(s *ChangeSetSummary) {
	c.User = s.User
	c.Client = s.Client
	c.Date = s.Date
}

// ComputeTotals sums the file counts of files. Line counts stay -1 when no file has them.
func (c *ChangeSet) ComputeTotals(files *ChangeSetFiles) {
	c.FilesAdded = 0
	c.FilesDeleted = 0
	c.FilesEdited = 0
	c.FilesReplaced = 0
	c.LinesModified = -1
	c.LinesAdded = -1
	c.LinesDeleted = -1

	for _, f := range files.List() {
		switch f.Change {
		case ChangeTypeAdd:
			c.FilesAdded++
		case ChangeTypeDelete:
			c.FilesDeleted++
		case ChangeTypeReplace:
			c.FilesReplaced++
		default:
			c.FilesEdited++
		}

		if f.LinesModified == -1 {
			continue
		}

		if c.LinesModified == -1 {
			c.LinesModified = 0
			c.LinesAdded = 0
			c.LinesDeleted = 0
		}

		c.LinesModified += f.LinesModified
		c.LinesAdded += f.LinesAdded
		c.LinesDeleted += f.LinesDeleted
	}
}
