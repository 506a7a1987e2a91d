package crawler

import "errors"

// ErrNoCandidates is returned when discovery yields zero candidate links,
// either because every listing page fetch failed or because no link selector
// matched anything. Continuing with zero input is meaningless, so this fails
// the run, unlike per-candidate errors.
var ErrNoCandidates = errors.New("no candidate links discovered")

// ErrInvalidConfiguration is returned when the orchestrator is constructed
// with a broken profile or missing dependencies.
var ErrInvalidConfiguration = errors.New("invalid crawler configuration")
