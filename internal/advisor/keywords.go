package advisor

import (
	"regexp"
	"strings"
)

// maxKeywords caps how many search terms one LLM reply can trigger.
const maxKeywords = 2

var keywordMarkerRe = regexp.MustCompile(`(?i)^\s*search\s+keywords?\s*:\s*(.*)$`)

// ParseAdvice splits an LLM reply into advice text and search keywords.
// The first line matching the "Search Keywords: a, b" marker supplies the
// keywords and is removed from the advice; without a marker the full reply
// is advice and no scraping happens.
func ParseAdvice(raw string) (string, []string) {
	lines := strings.Split(raw, "\n")

	var (
		kept     []string
		keywords []string
		found    bool
	)

	for _, line := range lines {
		if !found {
			if m := keywordMarkerRe.FindStringSubmatch(line); m != nil {
				found = true
				keywords = splitKeywords(m[1])
				continue
			}
		}
		kept = append(kept, line)
	}

	advice := strings.TrimSpace(strings.Join(kept, "\n"))
	return advice, keywords
}

func splitKeywords(raw string) []string {
	keywords := []string{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		keywords = append(keywords, part)
		if len(keywords) == maxKeywords {
			break
		}
	}
	return keywords
}
