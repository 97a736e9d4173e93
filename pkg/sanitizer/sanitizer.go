// Package sanitizer strips markup from user supplied free text before it is
// stored or indexed.
package sanitizer

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var policy = bluemonday.StrictPolicy()

var blockBreaks = strings.NewReplacer("</p>", " ", "<br>", " ", "</div>", " ")

// each round peels one level of entity escaping
const maxRounds = 8

// Text removes every tag, decodes entities and collapses whitespace.
// Escaped markup is decoded and sanitized again until the text is stable, so
// "&lt;b&gt;" cannot come back out as a live tag.
func Text(s string) string {
	for i := 0; i < maxRounds; i++ {
		next := html.UnescapeString(policy.Sanitize(blockBreaks.Replace(s)))
		if next == s {
			break
		}
		s = next
	}
	if strings.ContainsAny(s, "<>") && policy.Sanitize(s) != html.EscapeString(s) {
		// still nesting after maxRounds
		s = strings.NewReplacer("<", "", ">", "").Replace(s)
	}
	return strings.Join(strings.Fields(s), " ")
}
