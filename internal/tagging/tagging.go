// Package tagging derives coarse category tags from a book's title and
// summary with an ordered keyword rule list. Purely local, no state.
package tagging

import (
	"regexp"
	"strings"
)

type rule struct {
	pattern *regexp.Regexp
	tag     string
}

var rules = []rule{
	{regexp.MustCompile(`war|battle|soldier|army|king|empire`), "History"},
	{regexp.MustCompile(`magic|wizard|witch|dragon|spell`), "Fantasy"},
	{regexp.MustCompile(`space|alien|galaxy|future|robot`), "Sci-Fi"},
	{regexp.MustCompile(`love|romantic|marriage|heart`), "Romance"},
	{regexp.MustCompile(`kill|murder|crime|detective|mystery`), "Thriller"},
	{regexp.MustCompile(`children|kid|young|boy|girl`), "Kids"},
	{regexp.MustCompile(`india|bharat|desi|indian`), "India"},
	{regexp.MustCompile(`money|invest|rich|wealth|market`), "Finance"},
	{regexp.MustCompile(`cook|food|recipe|kitchen`), "Lifestyle"},
}

// AutoTags returns the deduplicated tags whose rules match the
// lower-cased title and summary. Callers treat the result as a set.
func AutoTags(title, summary string) []string {
	content := strings.ToLower(title + " " + summary)

	var tags []string
	seen := make(map[string]bool)
	for _, r := range rules {
		if r.pattern.MatchString(content) && !seen[r.tag] {
			seen[r.tag] = true
			tags = append(tags, r.tag)
		}
	}
	return tags
}
