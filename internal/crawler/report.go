package crawler

import (
	"time"

	"github.com/google/uuid"
)

// Outcome classifies what happened to a single candidate URL.
type Outcome string

// Per-candidate outcomes. Every candidate ends in exactly one of these.
const (
	OutcomeSaved                      Outcome = "Saved"
	OutcomeSkippedDuplicate           Outcome = "SkippedDuplicate"
	OutcomeSkippedInsufficientContent Outcome = "SkippedInsufficientContent"
	OutcomeFailedFetch                Outcome = "FailedFetch"
	OutcomeFailedPersist              Outcome = "FailedPersist"
	OutcomeRejectedByValidator        Outcome = "RejectedByValidator"
)

// Entry is the per-candidate outcome record. Entries preserve discovery order.
type Entry struct {
	URL     string  `json:"url"`
	Outcome Outcome `json:"outcome"`
	Title   string  `json:"title,omitempty"`
}

// Report aggregates the results of one crawl run. Append-only while the run
// is in progress, immutable afterward.
type Report struct {
	// RunID uniquely identifies this run
	RunID string `json:"run_id"`
	// Profile is the name of the site profile crawled
	Profile string `json:"profile"`
	// StartedAt and CompletedAt bound the run
	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at"`

	// Discovered counts candidate links found on listing pages (deduplicated)
	Discovered int `json:"discovered"`
	// Rejected counts candidates dropped by the link validator
	Rejected int `json:"rejected"`
	// Fetched counts article pages fetched successfully
	Fetched int `json:"fetched"`
	// FailedExtraction counts pages without sufficient extractable content
	FailedExtraction int `json:"failed_extraction"`
	// Saved counts records persisted
	Saved int `json:"saved"`
	// Duplicates counts records skipped because their slug already existed
	Duplicates int `json:"duplicates"`
	// FetchFailures counts fetches that failed after retry exhaustion
	FetchFailures int `json:"fetch_failures"`
	// PersistFailures counts records that failed to persist for other reasons
	PersistFailures int `json:"persist_failures"`

	// Outcomes lists every candidate's outcome in discovery order
	Outcomes []Entry `json:"outcomes"`
}

// newReport creates an empty report for a run starting now.
func newReport(profile string) *Report {
	return &Report{
		RunID:     uuid.NewString(),
		Profile:   profile,
		StartedAt: time.Now().UTC(),
	}
}

// record appends a per-candidate outcome and bumps the matching counter.
func (r *Report) record(url string, outcome Outcome, title string) {
	r.Outcomes = append(r.Outcomes, Entry{URL: url, Outcome: outcome, Title: title})

	switch outcome {
	case OutcomeSaved:
		r.Saved++
	case OutcomeSkippedDuplicate:
		r.Duplicates++
	case OutcomeSkippedInsufficientContent:
		r.FailedExtraction++
	case OutcomeFailedFetch:
		r.FetchFailures++
	case OutcomeFailedPersist:
		r.PersistFailures++
	case OutcomeRejectedByValidator:
		r.Rejected++
	}
}
