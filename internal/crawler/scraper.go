package crawler

import (
	"context"
	"fmt"

	"lightcat/internal/model"
)

// Scraper fetches and parses product pages of one site and language.
type Scraper struct {
	Fetcher *Fetcher
	BaseURL string
	Lang    string
}

func (s *Scraper) URL(slug string) string {
	base := s.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	return productURL(base, slug, s.Lang)
}

func (s *Scraper) Scrape(ctx context.Context, slug string) (model.SiteScrape, error) {
	u := s.URL(slug)
	html, err := s.Fetcher.Fetch(ctx, u)
	if err != nil {
		return model.SiteScrape{}, fmt.Errorf("fetch %s: %w", slug, err)
	}
	scrape, err := ParsePage(u, html)
	if err != nil {
		return model.SiteScrape{}, fmt.Errorf("parse %s: %w", slug, err)
	}
	return scrape, nil
}
