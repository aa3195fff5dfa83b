package orm

import "time"

// sqlConfig is one workspace setting, like p4.exe or runner.timeout. Empty values are not stored.
type sqlConfig struct {
	Key   string `gorm:"primaryKey"`
	Value string `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func newSqlConfig(key string, value string) *sqlConfig {
	return &sqlConfig{Key: key, Value: value}
}

func (s *sqlConfig) CacheKey() string {
	return s.Key
}
