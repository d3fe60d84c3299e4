package advisor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAdvice(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		advice   string
		keywords []string
	}{
		{
			name:     "marker line with two keywords",
			raw:      "Try a belt!\nSearch Keywords: wide leather belts, gold buckles",
			advice:   "Try a belt!",
			keywords: []string{"wide leather belts", "gold buckles"},
		},
		{
			name:     "no marker means no keywords",
			raw:      "A scarf would tie this outfit together.",
			advice:   "A scarf would tie this outfit together.",
			keywords: nil,
		},
		{
			name:     "keywords capped at two",
			raw:      "Lots of options.\nSearch Keywords: boots, jackets, scarves, hats",
			advice:   "Lots of options.",
			keywords: []string{"boots", "jackets"},
		},
		{
			name:     "first marker wins",
			raw:      "Advice.\nSearch Keywords: red dress\nMore advice.\nSearch Keywords: blue dress",
			advice:   "Advice.\nMore advice.\nSearch Keywords: blue dress",
			keywords: []string{"red dress"},
		},
		{
			name:     "case insensitive marker",
			raw:      "Go bold.\nsearch keywords: statement earrings",
			advice:   "Go bold.",
			keywords: []string{"statement earrings"},
		},
		{
			name:     "singular marker form",
			raw:      "One thing.\nSearch Keyword: silk tie",
			advice:   "One thing.",
			keywords: []string{"silk tie"},
		},
		{
			name:     "empty segments are dropped",
			raw:      "Hmm.\nSearch Keywords: , linen shirts, ",
			advice:   "Hmm.",
			keywords: []string{"linen shirts"},
		},
		{
			name:     "marker with empty tail yields no keywords",
			raw:      "Nothing to shop for.\nSearch Keywords:",
			advice:   "Nothing to shop for.",
			keywords: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			advice, keywords := ParseAdvice(tt.raw)
			assert.Equal(t, tt.advice, advice)
			assert.Equal(t, tt.keywords, keywords)
		})
	}
}
