// Package linkfilter decides whether discovered links are acceptable candidates.
// Third-party listing pages routinely carry injected gambling and adult spam
// anchors; the validator rejects those with a default-deny policy driven by the
// site profile's rules.
package linkfilter

import (
	"net/url"
	"strings"

	"github.com/riftline/guidecrawl/internal/profiles"
)

// Validator is a pure predicate over candidate URLs. It performs no I/O.
type Validator struct {
	baseDomain      string
	blockedDomains  []string
	blockedKeywords []string
	allowPatterns   []string
}

// New creates a validator from the profile's filtering rules.
func New(profile *profiles.Profile) *Validator {
	keywords := make([]string, 0, len(profile.BlockedKeywords))
	for _, kw := range profile.BlockedKeywords {
		keywords = append(keywords, strings.ToLower(kw))
	}

	return &Validator{
		baseDomain:      strings.ToLower(profile.BaseDomain),
		blockedDomains:  profile.BlockedDomains,
		blockedKeywords: keywords,
		allowPatterns:   profile.AllowPatterns,
	}
}

// IsAcceptable reports whether the URL passes every filtering rule:
// the host must be the base domain or a subdomain of it, the URL must not
// contain any blocked domain or keyword, and the path must match at least
// one allow pattern. A URL matching no allow pattern is rejected even when
// no blocklist term matches.
func (v *Validator) IsAcceptable(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}

	host := strings.ToLower(parsed.Hostname())
	if host != v.baseDomain && !strings.HasSuffix(host, "."+v.baseDomain) {
		return false
	}

	for _, blocked := range v.blockedDomains {
		if strings.Contains(rawURL, blocked) {
			return false
		}
	}

	lowered := strings.ToLower(rawURL)
	for _, keyword := range v.blockedKeywords {
		if strings.Contains(lowered, keyword) {
			return false
		}
	}

	for _, pattern := range v.allowPatterns {
		if strings.Contains(parsed.Path, pattern) {
			return true
		}
	}

	return false
}
