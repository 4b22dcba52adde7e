package text

import (
	"regexp"
	"strings"
)

// The notes list renders a "modified date + file size" annotation under each
// title, e.g. "2023.04.01 12 KB", and sometimes a full timestamp such as
// "2023-04-01 12:30:05 3KB". Scraped page text interleaves these with bodies.
var (
	// dateSizeTailRe: annotation at the end of a line
	dateSizeTailRe = regexp.MustCompile(`[ \t]*\d{4}\.\d{2}\.\d{2}[ \t]+\d+(?:\.\d+)?[ \t]*[KMG]?B$`)

	// dateSizeRe: annotation anywhere in a line, with surrounding spaces
	dateSizeRe = regexp.MustCompile(`[ \t]*\d{4}\.\d{2}\.\d{2}[ \t]+\d+(?:\.\d+)?[ \t]*[KMG]?B[ \t]*`)

	// shortDateSizeRe: single-digit month/day variant
	shortDateSizeRe = regexp.MustCompile(`[ \t]*\d{4}\.\d{1,2}\.\d{1,2}[ \t]+[\d.]+[ \t]+[KMG]B[ \t]*`)

	// timestampRe: date, clock time and optional size
	timestampRe = regexp.MustCompile(`(?i)[ \t]*\d{4}[-/.]\d{1,2}[-/.]\d{1,2}[ \t]*\d{1,2}:\d{2}(?::\d{2})?[ \t]*(?:\d+[KMG]?B?)?[ \t]*`)

	// fileInfoRe: a line that is nothing but a date-and-size annotation.
	// A bare timestamp has no size and is not file info.
	fileInfoRe = regexp.MustCompile(`(?i)^(?:\d{4}\.\d{1,2}\.\d{1,2}\s+\d+(?:\.\d+)?\s*[KMG]?B|\d{4}[-/.]\d{1,2}[-/.]\d{1,2}\s*\d{1,2}:\d{2}(?::\d{2})?\s*\d+(?:\.\d+)?\s*[KMG]?B)$`)
)

// IsFileInfo reports whether line (after trimming) consists solely of a
// modification-date-and-size annotation. Such a line ends the current entry.
// A timestamp without a size is left to StripMetadata.
func IsFileInfo(line string) bool {
	return fileInfoRe.MatchString(strings.TrimSpace(line))
}

// StripMetadata removes date/size and timestamp annotations from s, whether
// they make up the whole string or trail/sit inside a body line, and trims
// the result. Stripping is repeated until nothing changes, so
// StripMetadata(StripMetadata(x)) == StripMetadata(x).
func StripMetadata(s string) string {
	for {
		next := stripMetadataOnce(s)
		if next == s {
			return s
		}
		s = next
	}
}

func stripMetadataOnce(s string) string {
	s = dateSizeTailRe.ReplaceAllString(s, "")
	s = dateSizeRe.ReplaceAllString(s, " ")
	s = shortDateSizeRe.ReplaceAllString(s, " ")
	s = timestampRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
