package fetcher

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/egoistcookie/playWright/internal/parser"
)

// The note editor renders one note at a time. These selectors follow its
// markup; the first that matches wins.
var (
	paragraphSelectors = []string{
		`div[data-block-type="paragraph"].css-1xgc5oj`,
		`span.css-wc3k03`,
		`div.css-1eawncy > span`,
	}
	bulbSpanSelector = `span[data-bulb-node-id]`
)

const untitled = "未命名笔记"

// extractNote reads a saved note editor page and renders it as one marker
// block. ok is false when the page has no note paragraphs or the text
// looks like script rather than prose.
func (l *Loader) extractNote(html string) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		l.logger.Debug("fetcher: parse html failed", "error", err)
		return "", false
	}

	paragraphs := noteParagraphs(doc)
	if len(paragraphs) == 0 {
		return "", false
	}

	body := strings.Join(paragraphs, "\n\n")
	if !l.rules.LooksLikeContent(body) {
		l.logger.Debug("fetcher: note body rejected as non-content", "length", len(body))
		return "", false
	}

	var sb strings.Builder
	sb.WriteString(parser.Marker(noteTitle(doc)))
	sb.WriteString("\n\n")
	sb.WriteString(body)
	sb.WriteString("\n\n")
	return sb.String(), true
}

// noteTitle tries the editor's title placeholder, the title input, the file
// list label, then the document title.
func noteTitle(doc *goquery.Document) string {
	if t := strings.TrimSpace(doc.Find("pre.top-title-placeholder").First().Text()); t != "" {
		return t
	}
	if v, ok := doc.Find(".title-widget input").First().Attr("value"); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	if t := strings.TrimSpace(doc.Find(".file-name span").First().Text()); t != "" {
		return t
	}
	if t := strings.TrimSpace(doc.Find("title").First().Text()); t != "" {
		return t
	}
	return untitled
}

func noteParagraphs(doc *goquery.Document) []string {
	for _, sel := range paragraphSelectors {
		nodes := doc.Find(sel)
		if nodes.Length() == 0 {
			continue
		}

		var out []string
		nodes.Each(func(_ int, s *goquery.Selection) {
			if t := paragraphText(s); t != "" {
				out = append(out, t)
			}
		})
		return out
	}
	return nil
}

// paragraphText prefers the editor's text span, and within it the first
// nested span, falling back to the paragraph's own text.
func paragraphText(s *goquery.Selection) string {
	bulb := s.Find(bulbSpanSelector).First()
	if bulb.Length() == 0 {
		return strings.TrimSpace(s.Text())
	}

	t := strings.TrimSpace(bulb.Text())
	if nested := strings.TrimSpace(bulb.Find("span").First().Text()); nested != "" {
		t = nested
	}
	return t
}
