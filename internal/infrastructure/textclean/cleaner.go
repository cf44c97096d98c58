package textclean

import (
	"html"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/unicode/norm"

	"ReviewAnalyzer/internal/ports"
)

// markupTag matches a complete tag, comment or doctype.
var markupTag = regexp.MustCompile(`<(?:/?[A-Za-z][^<>]*|!--[^<>]*--|![A-Za-z][^<>]*)>`)

// Cleaner strips HTML markup from seed review text and normalizes it to NFC.
type Cleaner struct{}

var _ ports.TextCleaner = Cleaner{}

// NewCleaner returns a ready to use cleaner.
func NewCleaner() Cleaner {
	return Cleaner{}
}

// Clean returns whitespace-collapsed NFC text. Markup is removed only when the
// extracted text keeps every character outside the tags; otherwise the input is kept as is.
func (Cleaner) Clean(text string) string {
	if markupTag.MatchString(text) {
		if plain, ok := plainText(text); ok {
			text = plain
		}
	}
	text = norm.NFC.String(text)
	return strings.Join(strings.Fields(text), " ")
}

func plainText(fragment string) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", false
	}

	body := doc.Find("body")
	if body.Find("*").Length() == 0 {
		return "", false
	}
	body.Find("br").ReplaceWithHtml(" ")
	body.Find("p, div, li").AppendHtml(" ")
	plain := body.Text()

	// Unbalanced "<" swallows the rest of the input into a tag.
	want := html.UnescapeString(markupTag.ReplaceAllString(fragment, ""))
	if visible(plain) < visible(want) {
		return "", false
	}
	return plain, true
}

func visible(s string) int {
	n := 0
	for _, r := range s {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}
