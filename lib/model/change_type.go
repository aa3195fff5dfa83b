package model

import "strings"

type ChangeType int

const (
	ChangeTypeUnknown ChangeType = iota
	ChangeTypeAdd
	ChangeTypeDelete
	ChangeTypeEdit
	ChangeTypeReplace
)

func (c ChangeType) String() string {
	switch c {
	case ChangeTypeAdd:
		return "add"
	case ChangeTypeDelete:
		return "delete"
	case ChangeTypeEdit:
		return "edit"
	case ChangeTypeReplace:
		return "replace"
	default:
		return "unknown"
	}
}

// ParseP4Action converts the action column of p4 affected files into a ChangeType.
func ParseP4Action(action string) ChangeType {
	action = strings.ToLower(strings.TrimSpace(action))

	switch action {
	case "add", "branch", "move/add", "import":
		return ChangeTypeAdd
	case "delete", "move/delete", "purge":
		return ChangeTypeDelete
	case "edit", "integrate", "archive":
		return ChangeTypeEdit
	case "replace":
		return ChangeTypeReplace
	default:
		return ChangeTypeUnknown
	}
}

// ParseSvnAction converts the action letter of svn log paths into a ChangeType.
func ParseSvnAction(action string) ChangeType {
	switch strings.ToUpper(strings.TrimSpace(action)) {
	case "A":
		return ChangeTypeAdd
	case "D":
		return ChangeTypeDelete
	case "M":
		return ChangeTypeEdit
	case "R":
		return ChangeTypeReplace
	default:
		return ChangeTypeUnknown
	}
}
