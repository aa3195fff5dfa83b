package model

import (
	"sort"
	"time"

	"github.com/samber/lo"
)

type Repository struct {
	ID   ID
	Name string
	Type string

	// Data holds the type specific connection options, like port, user, client, path or url.
	Data map[string]string

	// Users maps a login to its resolved "Full Name <email>".
	Users map[string]string

	LastError  string
	LastChange int

	FirstSeen time.Time
	LastSeen  time.Time

	changeSetsByNumber map[int]*ChangeSet
	changeSetsByID     map[ID]*ChangeSet

	repositories *Repositories
}

func NewRepository(id ID, name string, repositories *Repositories) *Repository {
	return &Repository{
		ID:                 id,
		Name:               name,
		Data:               map[string]string{},
		Users:              map[string]string{},
		changeSetsByNumber: map[int]*ChangeSet{},
		changeSetsByID:     map[ID]*ChangeSet{},
		repositories:       repositories,
	}
}

func (r *Repository) GetData(key string) string {
	return r.Data[key]
}

func (r *Repository) SetData(key string, value string) bool {
	if value == "" {
		_, ok := r.Data[key]
		delete(r.Data, key)
		return ok
	}

	old, ok := r.Data[key]
	r.Data[key] = value
	return !ok || old != value
}

func (r *Repository) SetUser(login string, info *UserInfo) {
	r.Users[login] = info.String()
}

// UserName returns the resolved name of login, or login itself when it was never resolved.
func (r *Repository) UserName(login string) string {
	if name, ok := r.Users[login]; ok && name != "" {
		return name
	}
	return login
}

// SetLastError records the error of the last operation. A nil error clears it.
func (r *Repository) SetLastError(err error) {
	if err == nil {
		r.LastError = ""
	} else {
		r.LastError = err.Error()
	}
}

func (r *Repository) GetOrCreateChangeSet(number int) *ChangeSet {
	return r.GetOrCreateChangeSetEx(number, nil)
}

func (r *Repository) GetOrCreateChangeSetEx(number int, id *ID) *ChangeSet {
	result, ok := r.changeSetsByNumber[number]

	if !ok {
		result = NewChangeSet(nextID(&r.repositories.changeSetMaxID, id), number)
		r.changeSetsByNumber[number] = result
		r.changeSetsByID[result.ID] = result
	}

	return result
}

func (r *Repository) GetChangeSet(number int) *ChangeSet {
	return r.changeSetsByNumber[number]
}

func (r *Repository) GetChangeSetByID(id ID) *ChangeSet {
	return r.changeSetsByID[id]
}

func (r *Repository) ContainsChangeSet(number int) bool {
	_, ok := r.changeSetsByNumber[number]
	return ok
}

// ListChangeSets returns the change sets, newest first.
func (r *Repository) ListChangeSets() []*ChangeSet {
	result := lo.Values(r.changeSetsByNumber)

	sort.Slice(result, func(i, j int) bool {
		return result[i].Number > result[j].Number
	})

	return result
}

func (r *Repository) CountChangeSets() int {
	return len(r.changeSetsByNumber)
}

func (r *Repository) SeenAt(ts ...time.Time) {
	empty := time.Time{}

	for _, t := range ts {
		t = t.UTC().Round(time.Second)

		if r.FirstSeen == empty || t.Before(r.FirstSeen) {
			r.FirstSeen = t
		}
		if r.LastSeen == empty || t.After(r.LastSeen) {
			r.LastSeen = t
		}
	}
}
