package importer

import (
	"fmt"
	"strings"

	"github.com/heartmarshall/archive-backend/internal/domain"
)

// noCover is the placeholder the export uses for books without a cover.
const noCover = "No cover available"

// Normalize maps a raw entry to a book and allocates its slug from used.
// It reports false for entries that carry no title at all.
func Normalize(raw RawBook, used *domain.SlugSet) (domain.Book, bool) {
	info := googleInfo(raw.GoogleInfo)
	original := strings.TrimSpace(raw.OriginalTitle)
	googleTitle := stringField(info, "title")
	if original == "" && googleTitle == "" {
		return domain.Book{}, false
	}

	title := domain.TrimOr(googleTitle, domain.TrimOr(original, domain.DefaultContentTitle))
	if original == "" {
		original = title
	}

	b := domain.Book{
		Slug:             used.Allocate(domain.Slugify(original)),
		OriginalTitle:    original,
		Title:            title,
		Subtitle:         stringField(info, "subtitle"),
		Authors:          authors(info["authors"]),
		FirstPublishYear: publishedYear(info["publishedDate"]),
		Description:      stringField(info, "description"),
		GoogleInfo:       info,
	}
	if cover := strings.TrimSpace(raw.CoverURL); cover != "" && cover != noCover {
		b.CoverURL = &cover
	}
	return b, true
}

// googleInfo keeps object payloads only; markers such as "No result"
// become nil.
func googleInfo(v any) map[string]any {
	switch m := v.(type) {
	case map[string]any:
		return m
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out
	}
	return nil
}

func stringField(info map[string]any, key string) string {
	s, _ := info[key].(string)
	return strings.TrimSpace(s)
}

func authors(v any) []string {
	var raw []string
	switch a := v.(type) {
	case string:
		raw = []string{a}
	case []string:
		raw = a
	case []any:
		for _, item := range a {
			if s, ok := item.(string); ok {
				raw = append(raw, s)
			}
		}
	}

	out := []string{}
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func publishedYear(v any) *int {
	switch d := v.(type) {
	case nil:
		return nil
	case string:
		return domain.ExtractYear(d)
	default:
		return domain.ExtractYear(fmt.Sprint(d))
	}
}
