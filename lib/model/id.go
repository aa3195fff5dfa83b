package model

import "strconv"

// ID identifies a repository or a change set inside a workspace.
type ID int

func (i ID) String() string {
	return strconv.Itoa(int(i))
}

// nextID returns id when it was already assigned, keeping maxID as the biggest seen, or allocates a new one.
func nextID(maxID *ID, id *ID) ID {
	if id == nil {
		*maxID++
		return *maxID
	}

	*maxID = max(*maxID, *id)
	return *id
}
