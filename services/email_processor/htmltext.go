package email_processor

import (
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jaytaylor/html2text"
)

// ConvertHTMLToText renders HTML body content as readable plain text.
// Hyperlinks are normalized before conversion: the link text is kept with the
// target URL on its own line, or just the URL when the visible text already
// is the URL. Leading and trailing whitespace is trimmed.
func ConvertHTMLToText(src string) (string, error) {
	rewritten := rewriteAnchors(src)

	text, err := html2text.FromString(rewritten, html2text.Options{TextOnly: true})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func rewriteAnchors(src string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	if err != nil {
		return src
	}

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href := strings.TrimSpace(sel.AttrOr("href", ""))
		if href == "" {
			return
		}
		text := strings.TrimSpace(sel.Text())
		if text == "" || text == href {
			sel.SetHtml(html.EscapeString(href))
			return
		}
		sel.SetHtml(html.EscapeString(text) + "<br/>" + html.EscapeString(href))
	})

	out, err := doc.Html()
	if err != nil {
		return src
	}
	return out
}
