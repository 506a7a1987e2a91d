// Package storage persists content records produced by the acquisition pipeline.
package storage

import (
	"context"
	"errors"
	"time"
)

// ErrDuplicateSlug is returned by Create when a record with the same slug
// already exists. Re-crawling previously imported content is an expected,
// frequent case; callers treat this as a skip, not a failure.
var ErrDuplicateSlug = errors.New("a record with this slug already exists")

// ContentRecord is the unit persisted by the pipeline. Once stored it is
// never mutated by the crawler: re-crawls of the same title are skipped so
// that manual edits to previously imported content survive.
type ContentRecord struct {
	// Title is the extracted article title
	Title string `json:"title"`
	// Slug is the unique key, derived from the title at creation time
	Slug string `json:"slug"`
	// CleanContent is the sanitized article content
	CleanContent string `json:"clean_content"`
	// Summary is a short description of the article
	Summary string `json:"summary"`
	// ImageURL is the representative image, if one was found
	ImageURL string `json:"image_url,omitempty"`
	// Tags are source-defined labels, in profile order
	Tags []string `json:"tags"`
	// Published controls end-user visibility
	Published bool `json:"published"`
	// SourceURL records provenance; not shown to end users
	SourceURL string `json:"source_url"`
}

// PersistedRecord identifies a stored record.
type PersistedRecord struct {
	// ID is the storage-assigned identifier
	ID string `json:"id"`
	// Slug is the record's unique key
	Slug string `json:"slug"`
	// CreatedAt is the persistence timestamp
	CreatedAt time.Time `json:"created_at"`
}

// RecordStore persists content records with slug uniqueness enforced
// atomically by the storage layer: two concurrent creates with the same slug
// can never both succeed.
type RecordStore interface {
	// Create persists the record, failing with ErrDuplicateSlug when the
	// slug is already taken.
	Create(ctx context.Context, record *ContentRecord) (*PersistedRecord, error)
}
