package orm

import (
	"strings"

	"golang.org/x/exp/maps"
)

// Counts that were not computed yet are -1 in the model and NULL in the database.
func encodeCount(v int) *int {
	if v < 0 {
		return nil
	}
	return &v
}

func decodeCount(v *int) int {
	if v == nil {
		return -1
	}
	return *v
}

func encodeMap(m map[string]string) map[string]string {
	if len(m) == 0 {
		return nil
	}
	return maps.Clone(m)
}

// decodeMap never returns nil, so the model can write to the result.
func decodeMap(m map[string]string) map[string]string {
	result := make(map[string]string, len(m))
	maps.Copy(result, m)
	return result
}

func compositeKey(parts ...string) string {
	return strings.Join(parts, "\n")
}
