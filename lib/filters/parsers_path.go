package filters

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pkg/errors"
)

type PathFilter = func(path string) bool

// ParsePathFilter parses a glob over depot paths. Globs can be combined with "|" (any), "&" (all) and negated with "!".
func ParsePathFilter(rule string) (PathFilter, error) {
	rule = strings.TrimSpace(rule)

	switch {
	case rule == "":
		return func(path string) bool {
			return true
		}, nil

	case strings.Index(rule, "|") >= 0:
		clauses, err := ParsePathFilterList(strings.Split(rule, "|"))
		if err != nil {
			return nil, err
		}

		return func(path string) bool {
			result := false
			for _, f := range clauses {
				result = result || f(path)
			}
			return result
		}, nil

	case strings.Index(rule, "&") >= 0:
		clauses, err := ParsePathFilterList(strings.Split(rule, "&"))
		if err != nil {
			return nil, err
		}

		return func(path string) bool {
			result := true
			for _, f := range clauses {
				result = result && f(path)
			}
			return result
		}, nil

	case strings.HasPrefix(rule, "!"):
		f, err := ParsePathFilter(rule[1:])
		if err != nil {
			return nil, err
		}

		return func(path string) bool {
			return !f(path)
		}, nil

	default:
		if !doublestar.ValidatePattern(rule) {
			return nil, errors.Errorf("invalid path glob: %v", rule)
		}

		return func(path string) bool {
			m, err := doublestar.Match(rule, path)
			return err == nil && m
		}, nil
	}
}

func ParsePathFilterList(rules []string) ([]PathFilter, error) {
	result := make([]PathFilter, 0, len(rules))

	for _, rule := range rules {
		f, err := ParsePathFilter(rule)
		if err != nil {
			return nil, err
		}

		result = append(result, f)
	}

	return result, nil
}

// MatchesAny returns true if filter accepts at least one of paths.
func MatchesAny(filter PathFilter, paths []string) bool {
	for _, p := range paths {
		if filter(p) {
			return true
		}
	}
	return false
}
