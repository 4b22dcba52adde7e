// Package search finds recovered notes by keyword and by day.
//
// Notes are ranked on their passages (the non-blank lines of an entry), so a
// hit quotes the lines that matched rather than the whole entry. A day filter
// uses the date every entry title starts with.
package search

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/egoistcookie/playWright/internal/domain"
	"github.com/egoistcookie/playWright/internal/text"
)

// NoMatches is returned when nothing matches the query.
const NoMatches = "No matching entries found in the recovered notes."

// ErrEmptyQuery is returned when a query has neither keywords nor a date.
var ErrEmptyQuery = errors.New("query needs keywords or a date")

// Query selects notes from an export.
type Query struct {
	Text      string // keywords, may be empty when Date is set
	Date      string // optional day, in any layout ParseDay accepts
	MaxTokens int    // response budget (default domain.DefaultMaxTokens)
}

// Searcher answers queries against one export.
type Searcher interface {
	Search(exp *domain.Export, q Query) (string, error)
}

// Weights tunes ranking and rendering.
type Weights struct {
	Title       float64 // share of a term's idf earned by matching the title
	Phrase      float64 // bonus for a passage containing the query verbatim
	Extra       float64 // bonus per additional matching passage
	MaxPassages int     // passages quoted per note
	TrimRunes   int     // passage length when the first note overflows the budget
}

// DefaultWeights returns the weights used by NewNoteSearcher.
func DefaultWeights() Weights {
	return Weights{
		Title:       0.5,
		Phrase:      2.0,
		Extra:       0.25,
		MaxPassages: 3,
		TrimRunes:   80,
	}
}

// NoteSearcher ranks notes by the idf-weighted query terms their passages
// contain.
type NoteSearcher struct {
	w Weights
}

// NewNoteSearcher creates a searcher with DefaultWeights.
func NewNoteSearcher() *NoteSearcher {
	return &NoteSearcher{w: DefaultWeights()}
}

type passage struct {
	text  string
	lower string
	terms map[string]struct{}
}

type note struct {
	entry    domain.Entry
	day      Day
	dated    bool
	title    map[string]struct{}
	passages []passage
}

type hit struct {
	note    *note
	score   float64
	quoted  []int // passage indexes, best first
	matches int
}

func termSet(terms []string) map[string]struct{} {
	set := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		set[t] = struct{}{}
	}
	return set
}

func newNote(e domain.Entry) *note {
	n := &note{entry: e, title: termSet(text.NormalizeTerms(e.Title))}
	n.day, n.dated = EntryDate(e.Title)
	for _, line := range strings.Split(e.Content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		n.passages = append(n.passages, passage{
			text:  line,
			lower: strings.ToLower(line),
			terms: termSet(text.NormalizeTerms(line)),
		})
	}
	return n
}

// Search renders the notes matching q, best first, within the token budget.
func (s *NoteSearcher) Search(exp *domain.Export, q Query) (string, error) {
	phrase := strings.ToLower(strings.TrimSpace(q.Text))
	date := strings.TrimSpace(q.Date)
	if phrase == "" && date == "" {
		return "", ErrEmptyQuery
	}

	var (
		want     Day
		byDay    bool
		maxTotal = q.MaxTokens
	)
	if date != "" {
		d, err := ParseDay(date)
		if err != nil {
			return "", err
		}
		want, byDay = d, true
	}
	if maxTotal <= 0 {
		maxTotal = domain.DefaultMaxTokens
	}

	notes := make([]*note, 0, len(exp.Entries))
	for _, e := range exp.Entries {
		n := newNote(e)
		if byDay && (!n.dated || !n.day.Equal(want.Time)) {
			continue
		}
		notes = append(notes, n)
	}

	var hits []hit
	if phrase == "" {
		hits = s.all(notes)
	} else {
		terms := text.NormalizeTerms(phrase)
		if len(terms) == 0 {
			return NoMatches, nil
		}
		hits = s.rank(notes, termSet(terms), phrase)
	}
	if len(hits) == 0 {
		return NoMatches, nil
	}

	return s.render(exp.Source, len(exp.Entries), hits, maxTotal), nil
}

// all lists every note in input order, quoting its opening passages.
func (s *NoteSearcher) all(notes []*note) []hit {
	hits := make([]hit, 0, len(notes))
	for _, n := range notes {
		h := hit{note: n}
		for i := 0; i < len(n.passages) && i < s.w.MaxPassages; i++ {
			h.quoted = append(h.quoted, i)
		}
		hits = append(hits, h)
	}
	return hits
}

// rank scores notes against the query terms. A term's weight is its
// inverse passage frequency across the candidate notes.
func (s *NoteSearcher) rank(notes []*note, terms map[string]struct{}, phrase string) []hit {
	total := 0
	df := make(map[string]int, len(terms))
	for _, n := range notes {
		for _, p := range n.passages {
			total++
			for t := range terms {
				if _, ok := p.terms[t]; ok {
					df[t]++
				}
			}
		}
	}
	idf := func(t string) float64 {
		if df[t] == 0 {
			return 0
		}
		return math.Log(1 + float64(total)/float64(df[t]))
	}

	var hits []hit
	for _, n := range notes {
		type scored struct {
			idx   int
			score float64
		}
		var matched []scored
		for i, p := range n.passages {
			score := 0.0
			for t := range terms {
				if _, ok := p.terms[t]; ok {
					score += idf(t)
				}
			}
			if score > 0 && strings.Contains(p.lower, phrase) {
				score += s.w.Phrase
			}
			if score > 0 {
				matched = append(matched, scored{i, score})
			}
		}

		titleScore := 0.0
		for t := range terms {
			if _, ok := n.title[t]; ok {
				titleScore += s.w.Title * math.Max(idf(t), 1)
			}
		}
		if len(matched) == 0 && titleScore == 0 {
			continue
		}

		sort.SliceStable(matched, func(i, j int) bool { return matched[i].score > matched[j].score })

		h := hit{note: n, score: titleScore, matches: len(matched)}
		if len(matched) > 0 {
			h.score += matched[0].score + s.w.Extra*float64(len(matched)-1)
		}
		for i := 0; i < len(matched) && i < s.w.MaxPassages; i++ {
			h.quoted = append(h.quoted, matched[i].idx)
		}
		if len(h.quoted) == 0 && len(n.passages) > 0 {
			h.quoted = []int{0}
		}
		hits = append(hits, h)
	}

	// Best first; ties go to the earlier day, then to input order.
	sort.SliceStable(hits, func(i, j int) bool {
		a, b := hits[i], hits[j]
		if a.score != b.score {
			return a.score > b.score
		}
		if a.note.dated && b.note.dated && !a.note.day.Equal(b.note.day.Time) {
			return a.note.day.Before(b.note.day.Time)
		}
		return a.note.entry.Order < b.note.entry.Order
	})
	return hits
}

// render writes hits until the budget is spent. The first hit is always
// shown, with its passages trimmed if it would not fit.
func (s *NoteSearcher) render(source string, total int, hits []hit, maxTokens int) string {
	var out strings.Builder
	used, shown := 0, 0

	for _, h := range hits {
		block := s.formatHit(source, total, h, 0)
		cost := approxTokens(block)
		if used+cost > maxTokens {
			if shown > 0 {
				break
			}
			block = s.formatHit(source, total, h, s.w.TrimRunes)
			cost = approxTokens(block)
		}
		if shown > 0 {
			out.WriteByte('\n')
		}
		out.WriteString(block)
		used += cost
		shown++
	}

	if rest := len(hits) - shown; rest > 0 {
		fmt.Fprintf(&out, "\n(%d more matching notes not shown)\n", rest)
	}
	return out.String()
}

// formatHit renders one note: title, position and day, then the quoted
// passages. limit > 0 truncates each passage to limit runes.
func (s *NoteSearcher) formatHit(source string, total int, h hit, limit int) string {
	n := h.note
	var sb strings.Builder

	sb.WriteString("## ")
	sb.WriteString(n.entry.Title)
	sb.WriteByte('\n')

	fmt.Fprintf(&sb, "Source: %s, note %d of %d", source, n.entry.Order+1, total)
	if n.dated {
		sb.WriteString(", ")
		sb.WriteString(n.day.String())
	}
	sb.WriteByte('\n')

	for _, i := range h.quoted {
		line := n.passages[i].text
		if limit > 0 && utf8.RuneCountInString(line) > limit {
			line = string([]rune(line)[:limit]) + "…"
		}
		sb.WriteString("> ")
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	if extra := h.matches - len(h.quoted); extra > 0 {
		fmt.Fprintf(&sb, "(+%d more matching lines)\n", extra)
	}
	return sb.String()
}

// approxTokens estimates the token count of s: one per Han character and
// about one per four bytes of anything else.
func approxTokens(s string) int {
	han, other := 0, 0
	for _, r := range s {
		if unicode.Is(unicode.Han, r) {
			han++
		} else {
			other += utf8.RuneLen(r)
		}
	}
	return han + (other+3)/4
}
