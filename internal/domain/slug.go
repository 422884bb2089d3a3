package domain

import (
	"regexp"
	"strconv"
	"strings"
)

var slugSeparator = regexp.MustCompile(`[^a-z0-9]+`)

// DefaultSlug is used when a title has no alphanumeric characters.
const DefaultSlug = "untitled"

// Slugify lowercases text, collapses every run of non [a-z0-9] characters
// into a single hyphen and trims hyphens from both ends.
func Slugify(text string) string {
	slug := slugSeparator.ReplaceAllString(strings.ToLower(text), "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		return DefaultSlug
	}
	return slug
}

// SlugSet tracks slugs already taken within one allocation scope
// (a batch import, or the existing rows of a table).
// Not safe for concurrent use.
type SlugSet struct {
	used map[string]struct{}
}

// NewSlugSet creates a set seeded with existing slugs.
func NewSlugSet(existing ...string) *SlugSet {
	s := &SlugSet{used: make(map[string]struct{}, len(existing))}
	for _, slug := range existing {
		s.used[slug] = struct{}{}
	}
	return s
}

// Has reports whether slug is taken.
func (s *SlugSet) Has(slug string) bool {
	_, ok := s.used[slug]
	return ok
}

// Allocate returns base if free, otherwise base-2, base-3, ... and marks
// the returned value as used.
func (s *SlugSet) Allocate(base string) string {
	slug := base
	for n := 2; s.Has(slug); n++ {
		slug = base + "-" + strconv.Itoa(n)
	}
	s.used[slug] = struct{}{}
	return slug
}

// Release frees a slug, e.g. when a record keeps its previous value.
func (s *SlugSet) Release(slug string) {
	delete(s.used, slug)
}

// Len returns the number of used slugs.
func (s *SlugSet) Len() int { return len(s.used) }
