package model

import "sort"

type ChangeSetFile struct {
	Path     string
	Revision int
	Change   ChangeType
	Binary   bool
	Diff     string

	LinesModified int
	LinesAdded    int
	LinesDeleted  int
}

func NewChangeSetFile(path string) *ChangeSetFile {
	return &ChangeSetFile{
		Path:          path,
		Change:        ChangeTypeUnknown,
		LinesModified: -1,
		LinesAdded:    -1,
		LinesDeleted:  -1,
	}
}

type ChangeSetFiles struct {
	RepositoryID ID
	ChangeSetID  ID
	byPath       map[string]*ChangeSetFile
}

func NewChangeSetFiles(repositoryID ID, changeSetID ID) *ChangeSetFiles {
	return &ChangeSetFiles{
		RepositoryID: repositoryID,
		ChangeSetID:  changeSetID,
		byPath:       make(map[string]*ChangeSetFile),
	}
}

func (l *ChangeSetFiles) GetOrCreate(path string) *ChangeSetFile {
	file, ok := l.byPath[path]

	if !ok {
		file = NewChangeSetFile(path)
		l.byPath[path] = file
	}

	return file
}

func (l *ChangeSetFiles) Get(path string) *ChangeSetFile {
	return l.byPath[path]
}

// List returns the files sorted by path.
func (l *ChangeSetFiles) List() []*ChangeSetFile {
	result := make([]*ChangeSetFile, 0, len(l.byPath))
	for _, f := range l.byPath {
		result = append(result, f)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Path < result[j].Path
	})

	return result
}

func (l *ChangeSetFiles) Len() int {
	return len(l.byPath)
}
