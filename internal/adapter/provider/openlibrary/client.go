// Package openlibrary searches the Open Library catalog.
package openlibrary

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/heartmarshall/archive-backend/internal/domain"
)

const (
	defaultBaseURL = "https://openlibrary.org"
	coverURLFormat = "https://covers.openlibrary.org/b/id/%d-L.jpg"
	maxBodyBytes   = 4 << 20
)

// Client calls the Open Library search API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a client. An empty baseURL uses openlibrary.org; a
// non-positive timeout defaults to 4s.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 4 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "openlibrary"),
	}
}

type searchResponse struct {
	Docs []searchDoc `json:"docs"`
}

type searchDoc struct {
	Key              string   `json:"key"`
	Title            string   `json:"title"`
	Subtitle         string   `json:"subtitle"`
	AuthorName       []string `json:"author_name"`
	FirstPublishYear int      `json:"first_publish_year"`
	CoverI           int64    `json:"cover_i"`
	ISBN             []string `json:"isbn"`
	EditionCount     int      `json:"edition_count"`
}

// Search returns up to limit catalog hits for query. Any failure is logged
// and yields an empty slice.
func (c *Client) Search(ctx context.Context, query string, limit int) []domain.CatalogBook {
	query = strings.TrimSpace(query)
	if query == "" || limit < 1 {
		return []domain.CatalogBook{}
	}

	docs, err := c.search(ctx, query, limit)
	if err != nil {
		c.log.WarnContext(ctx, "catalog search failed",
			slog.String("query", query),
			slog.String("error", err.Error()),
		)
		return []domain.CatalogBook{}
	}

	out := make([]domain.CatalogBook, 0, len(docs))
	for _, d := range docs {
		out = append(out, mapDoc(d))
	}
	c.log.DebugContext(ctx, "catalog search", slog.String("query", query), slog.Int("hits", len(out)))
	return out
}

func (c *Client) search(ctx context.Context, query string, limit int) ([]searchDoc, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search.json?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var body searchResponse
	if err := json.NewDecoder(http.MaxBytesReader(nil, resp.Body, maxBodyBytes)).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	if len(body.Docs) > limit {
		body.Docs = body.Docs[:limit]
	}
	return body.Docs, nil
}

func mapDoc(d searchDoc) domain.CatalogBook {
	b := domain.CatalogBook{
		OpenKey:      d.Key,
		Title:        strings.TrimSpace(d.Title),
		Subtitle:     strings.TrimSpace(d.Subtitle),
		Authors:      []string{},
		EditionCount: d.EditionCount,
	}
	for _, a := range d.AuthorName {
		if a = strings.TrimSpace(a); a != "" {
			b.Authors = append(b.Authors, a)
		}
	}
	if domain.ValidYear(d.FirstPublishYear) {
		y := d.FirstPublishYear
		b.FirstPublishYear = &y
	}
	if d.CoverI > 0 {
		b.CoverURL = fmt.Sprintf(coverURLFormat, d.CoverI)
	}
	if len(d.ISBN) > 0 {
		b.ISBN = d.ISBN[0]
	}
	return b
}
