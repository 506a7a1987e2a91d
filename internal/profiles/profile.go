// Package profiles defines site profile configuration for the acquisition pipeline.
// A profile describes one external source site: where listing pages live, how to
// discover article links on them, how to extract fields from article pages, and
// which filtering rules protect the pipeline from injected spam links.
package profiles

import (
	"errors"
	"fmt"
)

// FieldSelectors holds the ordered selector fallback lists, one per extracted field.
// Selectors are tried in order; the first whose result passes the field's validity
// check wins.
type FieldSelectors struct {
	// Title selectors locate the article title
	Title []string `yaml:"title"`
	// Content selectors locate the main content block
	Content []string `yaml:"content"`
	// Summary selectors locate an author-provided summary, typically meta description
	Summary []string `yaml:"summary"`
	// Image selectors locate a representative image
	Image []string `yaml:"image"`
}

// Validate validates the field selectors.
func (s *FieldSelectors) Validate() error {
	if len(s.Title) == 0 {
		return errors.New("at least one title selector is required")
	}
	if len(s.Content) == 0 {
		return errors.New("at least one content selector is required")
	}
	return nil
}

// Profile is the immutable configuration for one source site.
type Profile struct {
	// Name is the unique identifier for the profile
	Name string `yaml:"name"`
	// BaseDomain is the domain links must belong to (subdomains included)
	BaseDomain string `yaml:"base_domain"`
	// Locale drives slug transliteration (e.g. "en", "vi")
	Locale string `yaml:"locale"`
	// ListingURLs are the seed pages scanned for article links
	ListingURLs []string `yaml:"listing_urls"`
	// LinkSelectors are tried against every listing page; matches accumulate
	LinkSelectors []string `yaml:"link_selectors"`
	// Selectors hold the per-field extraction fallback lists
	Selectors FieldSelectors `yaml:"selectors"`
	// BlockedDomains rejects any URL containing one of these substrings
	BlockedDomains []string `yaml:"blocked_domains"`
	// BlockedKeywords rejects any URL containing one of these, case-insensitively
	BlockedKeywords []string `yaml:"blocked_keywords"`
	// AllowPatterns is the positive path constraint; a URL must match at least one
	AllowPatterns []string `yaml:"allow_patterns"`
	// Tags are attached to every record imported through this profile
	Tags []string `yaml:"tags"`
	// Publish marks imported records as published immediately
	Publish bool `yaml:"publish"`
}

// Validate validates the profile configuration.
func (p *Profile) Validate() error {
	if p.Name == "" {
		return errors.New("name is required")
	}
	if p.BaseDomain == "" {
		return errors.New("base_domain is required")
	}
	if len(p.ListingURLs) == 0 {
		return errors.New("at least one listing_url is required")
	}
	if len(p.LinkSelectors) == 0 {
		return errors.New("at least one link_selector is required")
	}
	if len(p.AllowPatterns) == 0 {
		return errors.New("at least one allow_pattern is required")
	}
	if err := p.Selectors.Validate(); err != nil {
		return fmt.Errorf("profile %q: %w", p.Name, err)
	}
	return nil
}
