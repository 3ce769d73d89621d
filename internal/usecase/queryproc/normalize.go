package queryproc

import (
	"regexp"
	"strings"

	"github.com/mediquery/mediquery/internal/taxonomy"
)

var (
	// Strip everything except word characters, whitespace, hyphen, and dot.
	strippedRe = regexp.MustCompile(`[^\w\s.-]`)
	spacesRe   = regexp.MustCompile(`\s+`)
)

// normalize lowercases, strips punctuation, collapses whitespace, and trims.
// The order is fixed: abbreviation matching downstream assumes lowercased,
// single-spaced text.
func normalize(text string) string {
	t := strings.ToLower(text)
	t = strippedRe.ReplaceAllString(t, "")
	t = spacesRe.ReplaceAllString(t, " ")
	return strings.TrimSpace(t)
}

type abbrevMatcher struct {
	re   *regexp.Regexp
	full string
}

func compileAbbreviations(abbrevs []taxonomy.Abbreviation) []abbrevMatcher {
	matchers := make([]abbrevMatcher, 0, len(abbrevs))
	for _, a := range abbrevs {
		matchers = append(matchers, abbrevMatcher{
			re:   regexp.MustCompile(`\b` + regexp.QuoteMeta(a.Short) + `\b`),
			full: a.Full,
		})
	}
	return matchers
}

// expandAbbreviations replaces every whole-word occurrence of each known
// abbreviation with its full phrase. Runs after normalization so matching
// happens on lowercased text only.
func (s *Service) expandAbbreviations(text string) string {
	for _, m := range s.abbrevs {
		text = m.re.ReplaceAllString(text, m.full)
	}
	return text
}
