// Package crawler drives the end-to-end content acquisition run for one site:
// discover candidate links from the profile's listing pages, filter them,
// then fetch, extract, sanitize and persist each surviving candidate in turn.
//
// The design's core property is that one bad page can never abort the batch:
// every per-candidate failure mode downgrades to a skip or failure tally in
// the crawl report.
package crawler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/riftline/guidecrawl/internal/config"
	"github.com/riftline/guidecrawl/internal/extractor"
	"github.com/riftline/guidecrawl/internal/fetcher"
	"github.com/riftline/guidecrawl/internal/linkfilter"
	"github.com/riftline/guidecrawl/internal/logger"
	"github.com/riftline/guidecrawl/internal/profiles"
	"github.com/riftline/guidecrawl/internal/sanitizer"
	"github.com/riftline/guidecrawl/internal/slug"
	"github.com/riftline/guidecrawl/internal/storage"
)

// state names the phases of a crawl run.
type state string

const (
	stateIdle        state = "Idle"
	stateDiscovering state = "DiscoveringLinks"
	stateValidating  state = "ValidatingLinks"
	stateProcessing  state = "ProcessingQueue"
	stateCompleted   state = "Completed"
)

// skipPrefixes are anchor href schemes that can never be candidates.
var skipPrefixes = []string{"#", "javascript:", "mailto:", "tel:"}

// Params contains the dependencies for an Orchestrator.
type Params struct {
	Profile *profiles.Profile
	Fetcher fetcher.Interface
	Store   storage.RecordStore
	Config  *config.CrawlerConfig
	Logger  logger.Interface
}

// Orchestrator runs the acquisition pipeline for a single site profile.
// A run is sequential: one candidate at a time, with a politeness delay
// between any two fetches. Separate orchestrators for independent sites may
// run concurrently; a single orchestrator must not be shared across runs.
type Orchestrator struct {
	profile   *profiles.Profile
	fetcher   fetcher.Interface
	store     storage.RecordStore
	validator *linkfilter.Validator
	extractor *extractor.Extractor
	sanitizer *sanitizer.Sanitizer
	gate      *politenessGate
	logger    logger.Interface
	cfg       *config.CrawlerConfig
	state     state
}

// New creates an orchestrator for the given profile. The profile and
// dependencies are validated up front; a broken configuration fails here,
// before any network traffic.
func New(p Params) (*Orchestrator, error) {
	if p.Profile == nil {
		return nil, fmt.Errorf("%w: profile is required", ErrInvalidConfiguration)
	}
	if err := p.Profile.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}
	if p.Fetcher == nil {
		return nil, fmt.Errorf("%w: fetcher is required", ErrInvalidConfiguration)
	}
	if p.Store == nil {
		return nil, fmt.Errorf("%w: record store is required", ErrInvalidConfiguration)
	}
	if p.Config == nil {
		return nil, fmt.Errorf("%w: crawler config is required", ErrInvalidConfiguration)
	}
	if p.Logger == nil {
		p.Logger = logger.NewNoop()
	}

	return &Orchestrator{
		profile:   p.Profile,
		fetcher:   p.Fetcher,
		store:     p.Store,
		validator: linkfilter.New(p.Profile),
		extractor: extractor.New(p.Profile.Selectors),
		sanitizer: sanitizer.New(),
		gate:      newPolitenessGate(p.Config.PolitenessDelay),
		logger:    p.Logger.With("profile", p.Profile.Name),
		cfg:       p.Config,
		state:     stateIdle,
	}, nil
}

// Run executes the crawl and returns the report. On cancellation the report
// reflects the partial run and the context error is returned alongside it;
// already-persisted records remain persisted.
func (o *Orchestrator) Run(ctx context.Context) (*Report, error) {
	report := newReport(o.profile.Name)

	o.setState(stateDiscovering)
	candidates, err := o.discoverLinks(ctx)
	report.Discovered = len(candidates)
	if err != nil {
		report.CompletedAt = time.Now().UTC()
		return report, err
	}
	if len(candidates) == 0 {
		report.CompletedAt = time.Now().UTC()
		return report, ErrNoCandidates
	}

	o.setState(stateValidating)
	accepted := o.validateLinks(candidates, report)

	o.setState(stateProcessing)
	for _, candidate := range accepted {
		// Cooperative cancellation is checked between candidates only; an
		// in-flight fetch completes or times out normally first.
		if ctx.Err() != nil {
			report.CompletedAt = time.Now().UTC()
			o.logger.Warn("Run cancelled", "processed", len(report.Outcomes))
			return report, ctx.Err()
		}
		if err := o.processCandidate(ctx, candidate, report); err != nil {
			report.CompletedAt = time.Now().UTC()
			return report, err
		}
	}

	o.setState(stateCompleted)
	report.CompletedAt = time.Now().UTC()
	o.logger.Info("Crawl completed",
		"discovered", report.Discovered,
		"rejected", report.Rejected,
		"saved", report.Saved,
		"duplicates", report.Duplicates,
		"failed_extraction", report.FailedExtraction,
		"fetch_failures", report.FetchFailures)

	return report, nil
}

// setState records a phase transition.
func (o *Orchestrator) setState(next state) {
	o.logger.Debug("State transition", "from", string(o.state), "to", string(next))
	o.state = next
}

// discoverLinks fetches every listing page and accumulates the matches of
// every link selector into a deduplicated, discovery-ordered candidate list.
// A failing listing page contributes zero candidates without aborting the
// run.
func (o *Orchestrator) discoverLinks(ctx context.Context) ([]string, error) {
	seen := make(map[string]struct{})
	var ordered []string

	for _, listingURL := range o.profile.ListingURLs {
		if err := o.gate.Wait(ctx); err != nil {
			return ordered, err
		}

		page, err := o.fetcher.Fetch(ctx, listingURL)
		if err != nil {
			o.logger.Warn("Listing page fetch failed", "url", listingURL, "error", err)
			continue
		}

		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page.Body))
		if err != nil {
			o.logger.Warn("Listing page parse failed", "url", listingURL, "error", err)
			continue
		}

		base, err := url.Parse(page.URL)
		if err != nil {
			continue
		}

		found := 0
		for _, selector := range o.profile.LinkSelectors {
			doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
				link := absoluteHref(base, sel)
				if link == "" {
					return
				}
				if _, dup := seen[link]; dup {
					return
				}
				seen[link] = struct{}{}
				ordered = append(ordered, link)
				found++
			})
		}

		o.logger.Debug("Scanned listing page", "url", listingURL, "links", found)
	}

	return ordered, nil
}

// validateLinks applies the link validator to every candidate, records the
// rejections and truncates the surviving set to the configured maximum.
func (o *Orchestrator) validateLinks(candidates []string, report *Report) []string {
	accepted := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		if !o.validator.IsAcceptable(candidate) {
			report.record(candidate, OutcomeRejectedByValidator, "")
			continue
		}
		accepted = append(accepted, candidate)
	}

	if len(accepted) > o.cfg.MaxCandidates {
		o.logger.Info("Truncating candidate set",
			"accepted", len(accepted),
			"max", o.cfg.MaxCandidates)
		accepted = accepted[:o.cfg.MaxCandidates]
	}

	return accepted
}

// processCandidate runs the per-item sub-cycle for one URL. Every failure
// mode ends in a report entry; only context cancellation during the
// politeness wait is returned to the caller.
func (o *Orchestrator) processCandidate(ctx context.Context, candidate string, report *Report) error {
	if err := o.gate.Wait(ctx); err != nil {
		return err
	}

	page, err := o.fetcher.Fetch(ctx, candidate)
	if err != nil {
		report.record(candidate, OutcomeFailedFetch, "")
		return nil
	}
	report.Fetched++

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page.Body))
	if err != nil {
		o.logger.Warn("Page parse failed", "url", candidate, "error", err)
		report.record(candidate, OutcomeSkippedInsufficientContent, "")
		return nil
	}

	fields := o.extractor.Extract(doc)
	if fields.Title == "" || fields.ContentHTML == "" {
		report.record(candidate, OutcomeSkippedInsufficientContent, fields.Title)
		return nil
	}

	cleanContent := o.sanitizer.Sanitize(fields.ContentHTML)
	plain := sanitizer.PlainText(cleanContent)
	if utf8.RuneCountInString(plain) <= extractor.MinContentTextLen {
		report.record(candidate, OutcomeSkippedInsufficientContent, fields.Title)
		return nil
	}

	summary := fields.Summary
	if summary == "" {
		summary = extractor.Truncate(plain, extractor.SummaryMaxLen)
	}

	record := &storage.ContentRecord{
		Title:        fields.Title,
		Slug:         slug.Make(fields.Title, o.profile.Locale),
		CleanContent: cleanContent,
		Summary:      summary,
		ImageURL:     o.resolveImageURL(page.URL, fields.ImageURL),
		Tags:         o.profile.Tags,
		Published:    o.profile.Publish,
		SourceURL:    candidate,
	}

	if _, err := o.store.Create(ctx, record); err != nil {
		if errors.Is(err, storage.ErrDuplicateSlug) {
			o.logger.Debug("Skipping duplicate record", "slug", record.Slug)
			report.record(candidate, OutcomeSkippedDuplicate, fields.Title)
			return nil
		}
		o.logger.Error("Failed to persist record", "slug", record.Slug, "error", err)
		report.record(candidate, OutcomeFailedPersist, fields.Title)
		return nil
	}

	o.logger.Info("Saved record", "slug", record.Slug, "url", candidate)
	report.record(candidate, OutcomeSaved, fields.Title)
	return nil
}

// resolveImageURL absolutizes a possibly relative image URL against the page.
func (o *Orchestrator) resolveImageURL(pageURL, imageURL string) string {
	if imageURL == "" {
		return ""
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return imageURL
	}
	ref, err := url.Parse(imageURL)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

// absoluteHref resolves the selection's href against the listing page URL.
// Non-anchor selections fall back to the first anchor they contain. Only
// http(s) results qualify.
func absoluteHref(base *url.URL, sel *goquery.Selection) string {
	href, ok := sel.Attr("href")
	if !ok {
		href, ok = sel.Find("a").First().Attr("href")
	}
	if !ok || href == "" {
		return ""
	}

	for _, prefix := range skipPrefixes {
		if strings.HasPrefix(href, prefix) {
			return ""
		}
	}

	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}

	resolved := base.ResolveReference(ref)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	resolved.Fragment = ""

	return resolved.String()
}
