package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/riftline/guidecrawl/internal/sanitizer"
)

func TestSanitizeRemovesNonContentElements(t *testing.T) {
	input := `<div>
		<script>track();</script>
		<style>.x{color:red}</style>
		<nav>Home / Guides</nav>
		<div class="advert-banner">Buy gold now</div>
		<div class="social-share">Share on social media</div>
		<div class="comment-form">Leave a comment</div>
		<p>The actual article content stays in place after sanitization.</p>
	</div>`

	clean := sanitizer.New().Sanitize(input)

	assert.Contains(t, clean, "The actual article content stays in place")
	assert.NotContains(t, clean, "track()")
	assert.NotContains(t, clean, "color:red")
	assert.NotContains(t, clean, "Home / Guides")
	assert.NotContains(t, clean, "Buy gold now")
	assert.NotContains(t, clean, "Share on social")
	assert.NotContains(t, clean, "Leave a comment")
}

func TestSanitizeKeepsClassesMerelyContainingAd(t *testing.T) {
	// "ad" must only match as a whole class token or as an affix, never as a
	// bare substring of an unrelated class name.
	input := `<div>
		<div class="download">Download the full build sheet here.</div>
		<h2 class="heading">Matchups and counters</h2>
		<div class="gradient">Rune gradient explanation text.</div>
		<div class="ad">Buy gold now</div>
		<div class="ad-slot">Sponsored slot</div>
		<div class="house-ads">Partner offers</div>
	</div>`

	clean := sanitizer.New().Sanitize(input)

	assert.Contains(t, clean, "Download the full build sheet")
	assert.Contains(t, clean, "Matchups and counters")
	assert.Contains(t, clean, "Rune gradient explanation")
	assert.NotContains(t, clean, "Buy gold now")
	assert.NotContains(t, clean, "Sponsored slot")
	assert.NotContains(t, clean, "Partner offers")
}

func TestSanitizeStripsAnchorsEntirely(t *testing.T) {
	input := `<p>Useful guide text that should definitely survive the cleanup stages.</p>` +
		`<p><a href="/x">Read more</a></p>` +
		`<p>Visit <a href="https://spam.example.net">this great site</a> today.</p>`

	clean := sanitizer.New().Sanitize(input)

	assert.NotContains(t, clean, "<a")
	assert.NotContains(t, clean, "Read more")
	assert.NotContains(t, clean, "this great site")
	assert.Contains(t, clean, "Useful guide text")
}

func TestSanitizeRemovesBoilerplateText(t *testing.T) {
	input := `<div>
		<p>Author: John</p>
		<p>1234 views</p>
		<p>Cập nhật: 12/03/2024</p>
		<p>A real paragraph of article content that carries actual meaning.</p>
	</div>`

	clean := sanitizer.New().Sanitize(input)

	assert.NotContains(t, clean, "Author: John")
	assert.NotContains(t, clean, "1234 views")
	assert.NotContains(t, clean, "12/03/2024")
	assert.Contains(t, clean, "A real paragraph of article content")
}

func TestSanitizeCollapsesEmptyContainersAndWhitespace(t *testing.T) {
	input := "<div><p>   </p><span>\n\t</span><p>Kept   content    with\n\nodd   spacing.</p></div>"

	clean := sanitizer.New().Sanitize(input)

	assert.NotContains(t, clean, "<span>")
	assert.Contains(t, clean, "Kept content with odd spacing.")
}

func TestSanitizeKeepsImageOnlyContainers(t *testing.T) {
	input := `<div><p><img src="/cover.png"></p><p>Text content long enough to stay around.</p></div>`

	clean := sanitizer.New().Sanitize(input)

	assert.Contains(t, clean, `<img src="/cover.png"`)
}

func TestSanitizeAnchorAndBylineScenario(t *testing.T) {
	input := `<div class="post-body">` +
		`<p>The guide explains the full rune page and item order for this champion.</p>` +
		`<a href="/x">Read more</a>` +
		`<p>Author: John</p>` +
		`</div>`

	clean := sanitizer.New().Sanitize(input)

	assert.NotContains(t, clean, "Read more")
	assert.NotContains(t, clean, "Author: John")
	assert.NotContains(t, clean, "<a")
	assert.Contains(t, clean, "full rune page and item order")
}

func TestSanitizeIsIdempotent(t *testing.T) {
	inputs := []string{
		`<div><p>Plain content paragraph that is already perfectly clean.</p></div>`,
		`<div><script>x</script><a href="/y">link</a><p>Author: Jane</p><p>Real text here.</p></div>`,
		`<p>unclosed paragraph with <b>markup`,
		``,
		`just plain text without any markup at all`,
	}

	s := sanitizer.New()
	for _, input := range inputs {
		once := s.Sanitize(input)
		twice := s.Sanitize(once)
		assert.Equal(t, once, twice, "sanitize must be idempotent for %q", input)
	}
}

func TestSanitizeNeverPanicsOnMalformedInput(t *testing.T) {
	inputs := []string{
		"<<<>>>",
		"<div><div><div>",
		"</p></div>",
		"\x00\x01garbage",
	}

	s := sanitizer.New()
	for _, input := range inputs {
		assert.NotPanics(t, func() { _ = s.Sanitize(input) })
	}
}

func TestPlainText(t *testing.T) {
	assert.Equal(t, "Hello world", sanitizer.PlainText("<p>Hello\n   world</p>"))
	assert.Equal(t, "", sanitizer.PlainText(""))
	assert.Equal(t, "no markup", sanitizer.PlainText("no markup"))
}
