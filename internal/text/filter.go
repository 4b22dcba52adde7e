package text

import (
	"regexp"
	"strings"
)

// DefaultNavigationKeywords is the UI vocabulary of the notes web app: folder
// names, menu labels, branding and help-center links. Any line containing one
// of these is treated as chrome, even when it is ordinary prose.
var DefaultNavigationKeywords = []string{
	"我的文件夹", "最近", "工作", "生活", "学习", "收藏", "回收站",
	"新建笔记", "导入", "导出", "分享", "协作", "设置",
	"编辑", "查看", "格式", "插入", "帮助",
	"网易", "有道云笔记", "用户协议", "隐私政策",
	"功能介绍", "使用教程", "帮助中心", "意见反馈",
}

var (
	blankRunRe      = regexp.MustCompile(`\n\s*\n\s*\n`)
	hSpaceRe        = regexp.MustCompile(`[^\S\n]+`)
	templateRe      = regexp.MustCompile(`\{\{[^}]*\}\}`)
	functionDefRe   = regexp.MustCompile(`function\s+\w+\s*\([^)]*\)\s*\{[^}]*\}`)
	assignStmtRe    = regexp.MustCompile(`\b(?:const|let|var)\s+\w+\s*=\s*[^;]*;`)
	lineEdgeSpaceRe = regexp.MustCompile(`(?m)^ +| +$`)
)

// ContentFilter strips UI chrome, HTML fragments and leaked script snippets
// from recovered text. It is lossy: a body line that happens to mention a
// navigation keyword is removed along with the chrome.
type ContentFilter struct {
	keywordRes []*regexp.Regexp
}

// NewContentFilter builds a filter for the given keywords.
// Passing no keywords uses DefaultNavigationKeywords.
func NewContentFilter(keywords ...string) *ContentFilter {
	if len(keywords) == 0 {
		keywords = DefaultNavigationKeywords
	}

	res := make([]*regexp.Regexp, 0, len(keywords))
	for _, kw := range keywords {
		if strings.TrimSpace(kw) == "" {
			continue
		}
		// Whole line holding the keyword, plus its newline
		res = append(res, regexp.MustCompile(`(?i).*`+regexp.QuoteMeta(kw)+`.*\n?`))
	}
	return &ContentFilter{keywordRes: res}
}

// Filter applies the chrome filter to content.
//
// Order: keyword lines removed, horizontal whitespace collapsed per line,
// runs of blank lines collapsed to one, outer whitespace trimmed, then HTML
// tags, {{...}} templates, function definitions and assignment statements
// stripped, and the result trimmed again.
func (f *ContentFilter) Filter(content string) string {
	for _, re := range f.keywordRes {
		content = re.ReplaceAllString(content, "")
	}

	content = hSpaceRe.ReplaceAllString(content, " ")
	content = lineEdgeSpaceRe.ReplaceAllString(content, "")
	content = blankRunRe.ReplaceAllString(content, "\n\n")
	content = strings.TrimSpace(content)

	content = htmlTagRe.ReplaceAllString(content, "")
	content = templateRe.ReplaceAllString(content, "")
	content = functionDefRe.ReplaceAllString(content, "")
	content = assignStmtRe.ReplaceAllString(content, "")

	return strings.TrimSpace(content)
}
