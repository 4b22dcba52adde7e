package parser

import (
	"regexp"
	"strings"

	"github.com/egoistcookie/playWright/internal/domain"
	"github.com/egoistcookie/playWright/internal/text"
)

// MarkerRe matches the per-entry header written by the click-through
// collector: ###标题###[<title>] followed by whitespace.
var MarkerRe = regexp.MustCompile(`###标题###\[(.*?)\]\s+`)

// Marker renders the header line for title.
func Marker(title string) string {
	return "###标题###[" + title + "] "
}

// HasMarkers reports whether content is in marker-block format.
func HasMarkers(content string) bool {
	return MarkerRe.MatchString(content)
}

// MarkerBlock is one marker and the raw text up to the next marker.
type MarkerBlock struct {
	Title  string
	Offset int // byte offset of the marker in the input
	Text   string
}

// SplitMarkers splits content at each marker. Text before the first marker
// is ignored. Block text is trimmed but otherwise untouched.
func SplitMarkers(content string) []MarkerBlock {
	locs := MarkerRe.FindAllStringSubmatchIndex(content, -1)
	blocks := make([]MarkerBlock, 0, len(locs))
	for i, loc := range locs {
		end := len(content)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		blocks = append(blocks, MarkerBlock{
			Title:  content[loc[2]:loc[3]],
			Offset: loc[0],
			Text:   strings.TrimSpace(content[loc[1]:end]),
		})
	}
	return blocks
}

// MarkerParser parses marker-block input, one entry per marker.
// Bodies keep their blank-line paragraph breaks so paragraph dedup still
// has something to work with.
type MarkerParser struct{}

// NewMarkerParser creates a MarkerParser.
func NewMarkerParser() *MarkerParser {
	return &MarkerParser{}
}

// Parse implements Parser. Markers with a blank title are skipped.
func (MarkerParser) Parse(content string) []domain.Entry {
	var entries []domain.Entry
	for _, b := range SplitMarkers(content) {
		title := strings.TrimSpace(b.Title)
		if title == "" {
			continue
		}

		lines := strings.Split(b.Text, "\n")
		for i, line := range lines {
			lines[i] = text.StripMetadata(line)
		}

		entries = append(entries, domain.Entry{
			Title:   title,
			Content: strings.TrimSpace(strings.Join(lines, "\n")),
			Order:   len(entries),
		})
	}
	return entries
}
