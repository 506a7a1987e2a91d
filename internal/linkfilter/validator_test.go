package linkfilter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/riftline/guidecrawl/internal/linkfilter"
	"github.com/riftline/guidecrawl/internal/profiles"
)

func newTestProfile() *profiles.Profile {
	return &profiles.Profile{
		Name:            "test-site",
		BaseDomain:      "guides.example.com",
		ListingURLs:     []string{"https://guides.example.com/articles"},
		LinkSelectors:   []string{"a.article-link"},
		BlockedDomains:  []string{"ads.partner.net"},
		BlockedKeywords: []string{"casino", "BetNow"},
		AllowPatterns:   []string{"/articles/", "/builds/"},
		Selectors: profiles.FieldSelectors{
			Title:   []string{"h1"},
			Content: []string{"article"},
		},
	}
}

func TestIsAcceptable(t *testing.T) {
	validator := linkfilter.New(newTestProfile())

	tests := []struct {
		name string
		url  string
		want bool
	}{
		{
			name: "on-domain allowed path",
			url:  "https://guides.example.com/articles/yasuo-build-guide",
			want: true,
		},
		{
			name: "subdomain allowed path",
			url:  "https://news.guides.example.com/builds/mid-tier-pc",
			want: true,
		},
		{
			name: "off-domain rejected",
			url:  "https://spam.example.net/articles/free-stuff",
			want: false,
		},
		{
			name: "lookalike domain rejected",
			url:  "https://evilguides.example.com.attacker.io/articles/x",
			want: false,
		},
		{
			name: "blocked domain substring",
			url:  "https://guides.example.com/articles/x?ref=ads.partner.net",
			want: false,
		},
		{
			name: "blocked keyword",
			url:  "https://guides.example.com/articles/best-casino-sites",
			want: false,
		},
		{
			name: "blocked keyword is case-insensitive",
			url:  "https://guides.example.com/articles/betnow-today",
			want: false,
		},
		{
			name: "on-domain but no allow pattern match is rejected",
			url:  "https://guides.example.com/tags/champions",
			want: false,
		},
		{
			name: "root page rejected by default-deny",
			url:  "https://guides.example.com/",
			want: false,
		},
		{
			name: "unparseable url rejected",
			url:  "://not-a-url",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, validator.IsAcceptable(tt.url))
		})
	}
}

func TestIsAcceptableIsPure(t *testing.T) {
	validator := linkfilter.New(newTestProfile())

	url := "https://guides.example.com/articles/yasuo-build-guide"
	first := validator.IsAcceptable(url)
	for range 10 {
		assert.Equal(t, first, validator.IsAcceptable(url))
	}
}
