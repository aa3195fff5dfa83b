package model

import "fmt"

type UserInfo struct {
	Name     string
	FullName string
	Email    string
}

func (u *UserInfo) String() string {
	switch {
	case u.FullName != "" && u.Email != "":
		return fmt.Sprintf("%v <%v>", u.FullName, u.Email)
	case u.FullName != "":
		return u.FullName
	case u.Email != "":
		return u.Email
	default:
		return u.Name
	}
}
