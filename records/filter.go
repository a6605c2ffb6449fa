package records

import (
	"slices"
	"strings"
)

// Filter returns the items for which keep is true. The input is never
// mutated.
func Filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

// SortBy returns a sorted copy. The sort is stable so repeated sorts by
// different columns compose the way a table UI expects.
func SortBy[T any](items []T, less func(a, b T) bool) []T {
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b T) int {
		switch {
		case less(a, b):
			return -1
		case less(b, a):
			return 1
		default:
			return 0
		}
	})
	return out
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// Matches reports whether the query appears in any displayed field. An
// empty query matches everything.
func (s Student) Matches(query string) bool {
	if query == "" {
		return true
	}
	return containsFold(s.FirstName, query) ||
		containsFold(s.LastName, query) ||
		containsFold(s.Email, query)
}

func (p Professor) Matches(query string) bool {
	if query == "" {
		return true
	}
	return containsFold(p.FirstName, query) ||
		containsFold(p.LastName, query) ||
		containsFold(p.Email, query) ||
		containsFold(p.Specialty, query) ||
		containsFold(p.Degree, query)
}

func (c Course) Matches(query string) bool {
	if query == "" {
		return true
	}
	return containsFold(c.Name, query) || containsFold(c.Code, query)
}

func (p Project) Matches(query string) bool {
	if query == "" {
		return true
	}
	return containsFold(p.Title, query) ||
		containsFold(p.Summary, query) ||
		containsFold(p.Lead, query)
}

// SearchStudents filters by the table search box semantics.
func SearchStudents(items []Student, query string) []Student {
	return Filter(items, func(s Student) bool { return s.Matches(query) })
}

// SearchProfessors filters by the table search box semantics.
func SearchProfessors(items []Professor, query string) []Professor {
	return Filter(items, func(p Professor) bool { return p.Matches(query) })
}

// SearchCourses filters by the table search box semantics.
func SearchCourses(items []Course, query string) []Course {
	return Filter(items, func(c Course) bool { return c.Matches(query) })
}

// SearchProjects filters by the table search box semantics.
func SearchProjects(items []Project, query string) []Project {
	return Filter(items, func(p Project) bool { return p.Matches(query) })
}
