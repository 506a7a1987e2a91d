// Package sanitizer cleans extracted article HTML into canonical content.
package sanitizer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// removeTags lists element types that never carry article content.
var removeTags = []string{
	"script", "style", "noscript", "iframe", "form", "button",
	"nav", "header", "footer", "aside",
}

// removePatterns lists class/id substrings marking ad, social, comment and
// navigation chrome. Matched case-sensitively against class and id attributes.
// The ad markers are affix-shaped ("ads", "ad-", "-ad") because the bare
// substring "ad" would also hit classes like "heading", "gradient" or
// "download"; the standalone token "ad" is matched separately as a whole word.
var removePatterns = []string{
	"ads", "ad-", "-ad", "advert", "banner", "sponsor", "promo",
	"share", "social",
	"comment",
	"breadcrumb", "pagination", "paging",
	"related", "sidebar", "widget", "menu",
}

// boilerplatePatterns strips site chrome text that survives element removal:
// bylines, view counters, update stamps and teaser lines. The Vietnamese
// variants match the sites this pipeline was built against.
var boilerplatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(author|by|tác giả|người viết)\s*:\s*[^.,;<]+`),
	regexp.MustCompile(`(?i)\b\d+\s*(views?|lượt xem)\b`),
	regexp.MustCompile(`(?i)(read more|see also|xem thêm|đọc thêm)\s*[:.]?[^.<]*`),
	regexp.MustCompile(`(?i)(updated?|cập nhật)\s*:?\s*\d{1,2}[/.-]\d{1,2}[/.-]\d{2,4}`),
}

// whitespaceRe collapses runs of whitespace in the final output.
var whitespaceRe = regexp.MustCompile(`\s+`)

// Sanitizer applies the cleanup stages in a fixed order. Sanitization never
// fails: when a stage cannot handle its input the content passes through
// unmodified from that stage onward, since partially cleaned content is
// strictly better than losing the record.
type Sanitizer struct{}

// New creates a sanitizer with the default cleanup rules.
func New() *Sanitizer {
	return &Sanitizer{}
}

// Sanitize runs the cleanup stages over the raw HTML and returns the clean
// content string. Idempotent: sanitizing already-clean content is a no-op.
func (s *Sanitizer) Sanitize(rawHTML string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return rawHTML
	}

	removeNonContent(doc)
	removeAnchors(doc)
	removeBoilerplateText(doc)
	collapseEmptyContainers(doc)

	cleaned, err := doc.Find("body").Html()
	if err != nil {
		return rawHTML
	}

	return strings.TrimSpace(whitespaceRe.ReplaceAllString(cleaned, " "))
}

// removeNonContent drops script/style blocks, ads, social widgets, comment
// sections and navigation elements.
func removeNonContent(doc *goquery.Document) {
	doc.Find(strings.Join(removeTags, ", ")).Remove()

	selectors := make([]string, 0, 2*len(removePatterns)+2)
	selectors = append(selectors, "[class~='ad']", "[id='ad']")
	for _, pattern := range removePatterns {
		selectors = append(selectors,
			fmt.Sprintf("[class*='%s']", pattern),
			fmt.Sprintf("[id*='%s']", pattern))
	}
	doc.Find(strings.Join(selectors, ", ")).Remove()
}

// removeAnchors strips hyperlinks entirely, tag and enclosed text both.
// Inbound links are a primary spam vector and carry no meaning once the
// content is re-hosted.
func removeAnchors(doc *goquery.Document) {
	doc.Find("a").Remove()
}

// removeBoilerplateText applies the curated boilerplate patterns to every
// text node in the document.
func removeBoilerplateText(doc *goquery.Document) {
	body := doc.Find("body")
	if body.Length() == 0 {
		return
	}
	for _, node := range body.Nodes {
		stripTextNodes(node)
	}
}

// stripTextNodes walks the node tree applying the boilerplate patterns to
// text nodes in place.
func stripTextNodes(node *html.Node) {
	if node.Type == html.TextNode {
		for _, pattern := range boilerplatePatterns {
			node.Data = pattern.ReplaceAllString(node.Data, "")
		}
		return
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		stripTextNodes(child)
	}
}

// collapseEmptyContainers removes paragraphs, divs and spans that hold only
// whitespace after the earlier stages. Containers keeping an image survive.
func collapseEmptyContainers(doc *goquery.Document) {
	doc.Find("p, div, span").Each(func(_ int, sel *goquery.Selection) {
		if strings.TrimSpace(sel.Text()) != "" {
			return
		}
		if sel.Find("img").Length() > 0 {
			return
		}
		sel.Remove()
	})
}

// PlainText returns the text content of an HTML fragment with whitespace
// normalized. Used for content-length checks and summary derivation.
func PlainText(htmlFragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlFragment))
	if err != nil {
		return strings.TrimSpace(whitespaceRe.ReplaceAllString(htmlFragment, " "))
	}
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(doc.Text(), " "))
}
