package parser

import (
	"regexp"
	"strings"

	"github.com/egoistcookie/playWright/internal/text"
)

// LineKind tags what a scraped line is.
type LineKind int

const (
	// Body is ordinary note text.
	Body LineKind = iota
	// Title starts a new entry.
	Title
	// FileInfo is a bare "date + size" annotation; it ends the current entry.
	FileInfo
	// Noise is UI chrome and is discarded.
	Noise
)

func (k LineKind) String() string {
	switch k {
	case Title:
		return "title"
	case FileInfo:
		return "file-info"
	case Noise:
		return "noise"
	default:
		return "body"
	}
}

// Classification is the result of classifying one line.
type Classification struct {
	Kind LineKind
	Rule string // name of the matcher that fired, empty for Body
}

// TitlePattern is a named date-prefixed title shape.
type TitlePattern struct {
	Name string
	Re   *regexp.Regexp
}

// DefaultTitlePatterns are checked in order; the first match wins.
var DefaultTitlePatterns = []TitlePattern{
	{Name: "yyyymmdd", Re: regexp.MustCompile(`^\d{8}[-–]\S+`)},
	{Name: "cjk-date", Re: regexp.MustCompile(`^\d{4}年\d{1,2}月\d{1,2}日[-–]\S+`)},
	{Name: "20yymmdd", Re: regexp.MustCompile(`^20\d{2}\d{2}\d{2}[-–]\S+`)},
	{Name: "dashed-date", Re: regexp.MustCompile(`^\d{4}[-/]\d{1,2}[-/]\d{1,2}[-–]\S+`)},
	{Name: "year-2017-2019", Re: regexp.MustCompile(`^201[7-9]\d{5}[-–]\S+`)},
	{Name: "year-2020-2025", Re: regexp.MustCompile(`^202[0-5]\d{5}[-–]\S+`)},
}

// DefaultNoiseKeywords is the folder, menu and counter vocabulary of the note
// list. A line containing any of them is noise unless it is also a title.
var DefaultNoiseKeywords = []string{
	"总共", "项", "我的文件夹", "工作", "每周回顾", "我的资源", "写作",
	"行动", "学习", "杂事", "照片", "与我分享", "加星", "标签", "回收站",
	"云协作", "官网", "客户端下载", "新建", "到期", "页面文本内容",
	"导入", "导出", "分享", "协作", "设置",
}

type matcher struct {
	name  string
	kind  LineKind
	match func(line string) bool
}

// Classifier assigns a LineKind to trimmed lines by running an ordered list
// of named matchers: noise, file-info, then each title pattern.
type Classifier struct {
	titles   []TitlePattern
	noise    []string
	matchers []matcher
}

// NewClassifier builds a classifier. Nil arguments select the defaults.
func NewClassifier(titles []TitlePattern, noise []string) *Classifier {
	if titles == nil {
		titles = DefaultTitlePatterns
	}
	if noise == nil {
		noise = DefaultNoiseKeywords
	}

	c := &Classifier{titles: titles, noise: noise}

	c.matchers = append(c.matchers,
		matcher{name: "noise", kind: Noise, match: c.isNoise},
		matcher{name: "file-info", kind: FileInfo, match: text.IsFileInfo},
	)
	for _, p := range titles {
		c.matchers = append(c.matchers, matcher{name: p.Name, kind: Title, match: p.Re.MatchString})
	}
	return c
}

// Classify tags a single line. Surrounding whitespace is ignored.
func (c *Classifier) Classify(line string) Classification {
	line = strings.TrimSpace(line)
	for _, m := range c.matchers {
		if m.match(line) {
			return Classification{Kind: m.kind, Rule: m.name}
		}
	}
	return Classification{Kind: Body}
}

// TitleRule returns the name of the first title pattern matching line.
func (c *Classifier) TitleRule(line string) (string, bool) {
	for _, p := range c.titles {
		if p.Re.MatchString(line) {
			return p.Name, true
		}
	}
	return "", false
}

func (c *Classifier) isNoise(line string) bool {
	for _, kw := range c.noise {
		if kw != "" && strings.Contains(line, kw) {
			_, title := c.TitleRule(line)
			return !title
		}
	}
	return false
}
