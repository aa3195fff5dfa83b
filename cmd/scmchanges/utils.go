package main

import (
	"fmt"
	"sort"

	"github.com/samber/lo"
)

func toOption[T comparable](d T) *T {
	var zero T
	if d == zero {
		return nil
	}
	return &d
}

func countText(v int) string {
	if v < 0 {
		return "-"
	}
	return fmt.Sprint(v)
}

func sortedKeys(m map[string]string) []string {
	keys := lo.Keys(m)
	sort.Strings(keys)
	return keys
}
