// Package textfeed polls the iembot RSS mirrors of the SPC and WPC chat
// rooms for mesoscale discussions and other free-text bulletins that never
// appear on the alert API.
package textfeed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Bulletin is one item of a bulletin feed.
type Bulletin struct {
	Title     string
	Link      string
	Published string
}

// Key identifies a bulletin for change detection. iembot reuses titles, so
// the link (which carries the product timestamp) disambiguates.
func (b Bulletin) Key() string {
	return b.Link + "|" + b.Title
}

// Feed polls one RSS bulletin feed.
type Feed struct {
	name       string
	url        string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewFeed creates a poller for one feed. The name labels log lines and
// rendered messages ("SPC", "WPC").
func NewFeed(name, url string, logger *slog.Logger) *Feed {
	return &Feed{
		name: name,
		url:  url,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// Name returns the feed's display label.
func (f *Feed) Name() string { return f.name }

// Latest fetches the feed and returns its items, newest first, as the feed
// orders them.
func (f *Feed) Latest(ctx context.Context) ([]Bulletin, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s feed: %w", f.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%s feed error: status %d: %s", f.name, resp.StatusCode, body)
	}

	return parseRSS(resp.Body)
}

// parseRSS extracts items from an RSS document. goquery's XML handling
// lowercases tags, and the <link> element closes itself under the HTML
// parser, leaving the URL as a text sibling; both quirks are handled here.
func parseRSS(body io.Reader) ([]Bulletin, error) {
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	var items []Bulletin
	doc.Find("item").Each(func(_ int, s *goquery.Selection) {
		b := Bulletin{
			Title:     strings.TrimSpace(s.Find("title").Text()),
			Published: strings.TrimSpace(s.Find("pubdate").Text()),
		}
		if link := s.Find("link"); link.Length() > 0 && link.Get(0).NextSibling != nil {
			b.Link = strings.TrimSpace(link.Get(0).NextSibling.Data)
		}
		if b.Title != "" {
			items = append(items, b)
		}
	})

	return items, nil
}
