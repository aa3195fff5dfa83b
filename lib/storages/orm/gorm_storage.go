package orm

import (
	"log"
	"os"
	"reflect"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/pescuma/scmchanges/lib/consoles"
	"github.com/pescuma/scmchanges/lib/model"
	"github.com/pescuma/scmchanges/lib/storages"
)

type sqlTable interface {
	CacheKey() string
}

type gormStorage struct {
	mutex   sync.RWMutex
	db      *gorm.DB
	console consoles.Console

	repos  *model.Repositories
	config *map[string]string

	sqlConfigs    map[string]*sqlConfig
	sqlRepos      map[string]*sqlRepository
	sqlChangeSets map[string]*sqlChangeSet
}

func NewGormStorage(d gorm.Dialector, console consoles.Console) (storages.Storage, error) {
	l := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: false,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(d, &gorm.Config{
		NamingStrategy: &NamingStrategy{},
		Logger:         l,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// Each connection to :memory: is a new database
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&sqlConfig{},
		&sqlRepository{},
		&sqlChangeSet{},
		&sqlChangeSetFile{},
	)
	if err != nil {
		return nil, err
	}

	return &gormStorage{
		db:      db,
		console: console,
	}, nil
}

func (s *gormStorage) Close() error {
	db, err := s.db.DB()
	if err != nil {
		return err
	}

	return db.Close()
}

func createCache[T sqlTable](rows []T) map[string]T {
	return lo.Associate(rows, func(i T) (string, T) {
		return i.CacheKey(), i
	})
}

func (s *gormStorage) session() *gorm.DB {
	now := time.Now().Local()
	return s.db.Session(&gorm.Session{
		NowFunc:         func() time.Time { return now },
		CreateBatchSize: 300,
	})
}

func (s *gormStorage) LoadRepositories() (*model.Repositories, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.repos != nil {
		return s.repos, nil
	}

	s.console.Printf("Loading repositories...\n")

	result := model.NewRepositories()

	var repos []*sqlRepository
	err := s.db.Find(&repos).Error
	if err != nil {
		return nil, err
	}

	s.sqlRepos = createCache(repos)

	var changeSets []*sqlChangeSet
	err = s.db.Find(&changeSets).Error
	if err != nil {
		return nil, err
	}

	s.sqlChangeSets = createCache(changeSets)

	for _, sr := range repos {
		r := result.GetOrCreateEx(sr.Name, &sr.ID)
		r.Type = sr.Type
		r.Data = decodeMap(sr.Data)
		r.Users = decodeMap(sr.Users)
		r.LastError = sr.LastError
		r.LastChange = sr.LastChange
		r.FirstSeen = sr.FirstSeen
		r.LastSeen = sr.LastSeen
	}

	for _, sc := range changeSets {
		repo := result.GetByID(sc.RepositoryID)
		if repo == nil {
			return nil, errors.Errorf("change set %v references unknown repository %v", sc.Number, sc.RepositoryID)
		}

		c := repo.GetOrCreateChangeSetEx(sc.Number, &sc.ID)
		c.User = sc.User
		c.Client = sc.Client
		c.Date = sc.Date
		c.Description = sc.Description
		c.FilesAdded = decodeCount(sc.FilesAdded)
		c.FilesDeleted = decodeCount(sc.FilesDeleted)
		c.FilesEdited = decodeCount(sc.FilesEdited)
		c.FilesReplaced = decodeCount(sc.FilesReplaced)
		c.LinesModified = decodeCount(sc.LinesModified)
		c.LinesAdded = decodeCount(sc.LinesAdded)
		c.LinesDeleted = decodeCount(sc.LinesDeleted)
	}

	s.repos = result
	return result, nil
}

func (s *gormStorage) WriteRepositories() error {
	if s.repos == nil {
		return nil
	}

	return s.writeRepositories(s.repos.List())
}

func (s *gormStorage) WriteRepository(repo *model.Repository) error {
	if s.repos == nil {
		return errors.New("repos not loaded")
	}

	return s.writeRepositories([]*model.Repository{repo})
}

func (s *gormStorage) writeRepositories(repos []*model.Repository) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	sqlRepos := prepareChanges(repos, newSqlRepository, &s.sqlRepos)

	var sqlChangeSets []*sqlChangeSet
	for _, repo := range repos {
		for _, c := range repo.ListChangeSets() {
			sc := newSqlChangeSet(repo, c)
			if prepareChange(&s.sqlChangeSets, sc) {
				sqlChangeSets = append(sqlChangeSets, sc)
			}
		}
	}

	db := s.session()

	err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&sqlRepos).Error
	if err != nil {
		return err
	}

	addList(&s.sqlRepos, sqlRepos)

	err = db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&sqlChangeSets).Error
	if err != nil {
		return err
	}

	addList(&s.sqlChangeSets, sqlChangeSets)

	return nil
}

func (s *gormStorage) DeleteRepository(repo *model.Repository) error {
	if s.repos == nil {
		return errors.New("repos not loaded")
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("repository_id = ?", repo.ID).Delete(&sqlChangeSetFile{}).Error
		if err != nil {
			return err
		}

		err = tx.Where("repository_id = ?", repo.ID).Delete(&sqlChangeSet{}).Error
		if err != nil {
			return err
		}

		return tx.Delete(&sqlRepository{ID: repo.ID}).Error
	})
	if err != nil {
		return errors.Wrapf(err, "error deleting repository %v", repo.Name)
	}

	for _, c := range repo.ListChangeSets() {
		delete(s.sqlChangeSets, c.ID.String())
	}
	delete(s.sqlRepos, repo.ID.String())

	s.repos.Remove(repo.Name)

	return nil
}

func (s *gormStorage) LoadChangeSetFiles(repo *model.Repository, cs *model.ChangeSet) (*model.ChangeSetFiles, error) {
	if s.repos == nil {
		return nil, errors.New("repos not loaded")
	}

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	var files []*sqlChangeSetFile
	err := s.db.Where("change_set_id = ?", cs.ID).Find(&files).Error
	if err != nil {
		return nil, err
	}

	result := model.NewChangeSetFiles(repo.ID, cs.ID)
	for _, sf := range files {
		f := result.GetOrCreate(sf.Path)
		f.Revision = sf.Revision
		f.Change = sf.Change
		f.Binary = sf.Binary
		f.Diff = sf.Diff
		f.LinesModified = decodeCount(sf.LinesModified)
		f.LinesAdded = decodeCount(sf.LinesAdded)
		f.LinesDeleted = decodeCount(sf.LinesDeleted)
	}

	return result, nil
}

// WriteChangeSetFiles replaces all the files of each change set.
func (s *gormStorage) WriteChangeSetFiles(files []*model.ChangeSetFiles) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if len(files) == 0 {
		return nil
	}

	var sqlFiles []*sqlChangeSetFile
	for _, fs := range files {
		for _, f := range fs.List() {
			sqlFiles = append(sqlFiles, newSqlChangeSetFile(fs, f))
		}
	}

	changeSetIDs := lo.Map(files, func(fs *model.ChangeSetFiles, _ int) model.ID {
		return fs.ChangeSetID
	})

	return s.session().Transaction(func(tx *gorm.DB) error {
		err := tx.Where("change_set_id IN ?", changeSetIDs).Delete(&sqlChangeSetFile{}).Error
		if err != nil {
			return err
		}

		if len(sqlFiles) == 0 {
			return nil
		}

		return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&sqlFiles).Error
	})
}

func (s *gormStorage) LoadConfig() (*map[string]string, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.config != nil {
		return s.config, nil
	}

	result := map[string]string{}

	var sqlConfigs []*sqlConfig
	err := s.db.Find(&sqlConfigs).Error
	if err != nil {
		return nil, err
	}

	s.sqlConfigs = createCache(sqlConfigs)

	for _, sc := range sqlConfigs {
		result[sc.Key] = sc.Value
	}

	s.config = &result
	return &result, nil
}

// WriteConfig stores the loaded config. Keys removed from the map, or set to an empty value, are deleted.
func (s *gormStorage) WriteConfig() error {
	if s.config == nil {
		return nil
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	var sqlConfigs []*sqlConfig
	for k, v := range *s.config {
		if v == "" {
			continue
		}

		sc := newSqlConfig(k, v)
		if prepareChange(&s.sqlConfigs, sc) {
			sqlConfigs = append(sqlConfigs, sc)
		}
	}

	var deleted []string
	for k := range s.sqlConfigs {
		if (*s.config)[k] == "" {
			deleted = append(deleted, k)
		}
	}

	db := s.session()

	err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&sqlConfigs).Error
	if err != nil {
		return err
	}

	addList(&s.sqlConfigs, sqlConfigs)

	if len(deleted) > 0 {
		err = db.Where(clause.IN{Column: clause.Column{Name: "key"}, Values: lo.ToAnySlice(deleted)}).
			Delete(&sqlConfig{}).Error
		if err != nil {
			return err
		}

		for _, k := range deleted {
			delete(s.sqlConfigs, k)
			delete(*s.config, k)
		}
	}

	return nil
}

func addList[T sqlTable](target *map[string]T, toAdd []T) {
	for _, v := range toAdd {
		(*target)[v.CacheKey()] = v
	}
}

func prepareChanges[S sqlTable, M any](models []M, toSql func(M) S, cache *map[string]S) []S {
	var result []S
	for _, m := range models {
		s := toSql(m)
		if prepareChange(cache, s) {
			result = append(result, s)
		}
	}
	return result
}

func prepareChange[T sqlTable](byID *map[string]T, n T) bool {
	o, ok := (*byID)[n.CacheKey()]
	if ok {
		ro := reflect.Indirect(reflect.ValueOf(o))
		rn := reflect.Indirect(reflect.ValueOf(n))

		rn.FieldByName("CreatedAt").Set(ro.FieldByName("CreatedAt"))
		rn.FieldByName("UpdatedAt").Set(ro.FieldByName("UpdatedAt"))
	}

	if reflect.DeepEqual(n, o) {
		return false
	} else {
		(*byID)[n.CacheKey()] = n
		return true
	}
}
