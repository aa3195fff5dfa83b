package model

type FileChangeData struct {
	Path       string
	Revision   int
	ChangeType ChangeType
	Binary     bool
	Diff       string
}

func NewFileChangeData(path string, revision int, changeType ChangeType) *FileChangeData {
	return &FileChangeData{
		Path:       path,
		Revision:   revision,
		ChangeType: changeType,
	}
}

type ChangeSetDetails struct {
	Description string
	FileChanges []*FileChangeData
}

func (d *ChangeSetDetails) FindFileChange(path string) *FileChangeData {
	for _, f := range d.FileChanges {
		if f.Path == path {
			return f
		}
	}
	return nil
}
