package domain

import (
	"regexp"
	"strconv"
	"strings"
)

var yearPattern = regexp.MustCompile(`(1[5-9]\d{2}|20\d{2})`)

// ExtractYear finds the first plausible publication year (1500-2099) in s.
// Returns nil if none is present.
func ExtractYear(s string) *int {
	m := yearPattern.FindString(s)
	if m == "" {
		return nil
	}
	year, err := strconv.Atoi(m)
	if err != nil {
		return nil
	}
	return &year
}

// ValidYear reports whether an integer year falls in the accepted range.
func ValidYear(year int) bool {
	return year >= 1500 && year <= 2099
}

// SplitAuthors splits a comma-separated author list, dropping blanks.
func SplitAuthors(s string) []string {
	authors := []string{}
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			authors = append(authors, p)
		}
	}
	return authors
}

// ParsePositiveInt parses an untrusted positive integer (query string, form value).
// Missing, malformed or non-positive input yields def; anything above max is clamped.
func ParsePositiveInt(raw string, def, max int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return def
	}
	if n > max {
		return max
	}
	return n
}

// ParseFormBool interprets checkbox-style form values.
func ParseFormBool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// ParseSortOrder parses an optional integer sort order; anything unparsable is 0.
func ParseSortOrder(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return n
}

// TrimOr returns the trimmed value, or def if that is empty.
func TrimOr(s, def string) string {
	if t := strings.TrimSpace(s); t != "" {
		return t
	}
	return def
}
