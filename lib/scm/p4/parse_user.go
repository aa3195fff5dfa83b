package p4

import (
	"strings"

	"github.com/pescuma/scmchanges/lib/model"
	"github.com/pescuma/scmchanges/lib/utils"
)

// ParseUser parses the form printed by "p4 user -o".
func ParseUser(output string) *model.UserInfo {
	result := &model.UserInfo{}

	for _, line := range strings.Split(utils.NormalizeNewLines(output), "\n") {
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "\t") {
			continue
		}

		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)

		switch key {
		case "User":
			result.Name = value
		case "Email":
			result.Email = value
		case "FullName":
			result.FullName = value
		}
	}

	return result
}
