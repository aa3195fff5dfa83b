package orm

import (
	"time"

	"github.com/pescuma/scmchanges/lib/model"
)

type sqlRepository struct {
	ID   model.ID
	Name string `gorm:"uniqueIndex"`
	Type string

	Data  map[string]string `gorm:"serializer:json"`
	Users map[string]string `gorm:"serializer:json"`

	LastError       string
	LastChange      int
	ChangeSetsTotal int
	FirstSeen       time.Time
	LastSeen        time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	ChangeSets []sqlChangeSet `gorm:"foreignKey:RepositoryID"`
}

func newSqlRepository(r *model.Repository) *sqlRepository {
	return &sqlRepository{
		ID:              r.ID,
		Name:            r.Name,
		Type:            r.Type,
		Data:            encodeMap(r.Data),
		Users:           encodeMap(r.Users),
		LastError:       r.LastError,
		LastChange:      r.LastChange,
		ChangeSetsTotal: r.CountChangeSets(),
		FirstSeen:       r.FirstSeen,
		LastSeen:        r.LastSeen,
	}
}

func (s *sqlRepository) CacheKey() string {
	return s.ID.String()
}
