package intercept

import (
	"regexp"
	"strings"
)

// Reply is a canned response served without touching the LLM or the scrape
// pipeline. Keywords is always empty for intercepted prompts.
type Reply struct {
	Category string
	Advice   string
	Keywords []string
}

// rule pairs a predicate with its canned reply. Rules are evaluated in
// order and the first match wins, so the broad off-topic catch-all must
// stay last.
type rule struct {
	category string
	match    func(prompt string) bool
	advice   string
}

type Classifier struct {
	rules []rule
}

var (
	greetingRe = regexp.MustCompile(`^(hi+|hey+|hello+|yo|sup|howdy|namaste|good\s+(morning|afternoon|evening|day))[\s!.,]*$`)
	thanksRe   = regexp.MustCompile(`\b(thanks?|thank\s+you|thankyou|thx|awesome|amazing|great\s+job|well\s+done|love\s+(it|this|you))\b`)
	nameRe     = regexp.MustCompile(`\b(what('?s|\s+is)\s+your\s+name|who\s+are\s+you|your\s+name)\b`)
	personalRe = regexp.MustCompile(`\b(how\s+old\s+are\s+you|your\s+(age|number|phone|address|email|birthday)|where\s+(do\s+you\s+live|are\s+you\s+from))\b`)
	// Currency symbols are non-word characters, so they sit outside the
	// word-boundary group.
	priceRe = regexp.MustCompile(`\b(price|cost|how\s+much|budget|cheap|expensive|rupees|rs\.?)\b|[₹$]`)
)

// fashionTerms is the vocabulary that marks a prompt as on-topic. A prompt
// containing none of these hits the off-topic catch-all.
var fashionTerms = []string{
	"wear", "outfit", "dress", "shirt", "t-shirt", "tshirt", "top", "jeans",
	"pant", "trouser", "skirt", "saree", "sari", "kurta", "kurti", "lehenga",
	"jacket", "coat", "blazer", "hoodie", "sweater", "shoe", "sneaker",
	"heel", "sandal", "boot", "accessor", "jewel", "earring", "necklace",
	"bracelet", "ring", "watch", "bag", "handbag", "purse", "belt", "scarf",
	"style", "fashion", "look", "cloth", "apparel", "makeup", "lipstick",
	"skincare", "beauty", "hair", "color", "colour", "fabric", "ethnic",
	"casual", "formal", "party", "wedding", "occasion", "fit", "size",
	"shopping", "brand", "trend", "denim", "suit", "gown", "shorts",
}

func containsFashionTerm(prompt string) bool {
	for _, term := range fashionTerms {
		if strings.Contains(prompt, term) {
			return true
		}
	}
	return false
}

// NewClassifier builds the default ordered rule table.
func NewClassifier() *Classifier {
	return &Classifier{rules: []rule{
		{
			category: "greeting",
			match:    func(p string) bool { return greetingRe.MatchString(p) },
			advice:   "Hey there! I'm your personal stylist. Tell me about an outfit you're planning, or share a photo of a look you'd like advice on.",
		},
		{
			category: "thanks",
			match:    func(p string) bool { return thanksRe.MatchString(p) },
			advice:   "You're so welcome! Happy to help anytime you need styling advice.",
		},
		{
			category: "name",
			match:    func(p string) bool { return nameRe.MatchString(p) },
			advice:   "I'm Glam, your Glamourhall style assistant. Ask me anything about fashion!",
		},
		{
			category: "personal",
			match:    func(p string) bool { return personalRe.MatchString(p) },
			advice:   "Let's keep the spotlight on you! I'm here for your style questions, so tell me what you're planning to wear.",
		},
		{
			category: "price_only",
			match: func(p string) bool {
				return priceRe.MatchString(p) && !containsFashionTerm(p)
			},
			advice: "I can suggest pieces across budgets once I know what you're shopping for. What kind of item did you have in mind?",
		},
		{
			category: "off_topic",
			match:    func(p string) bool { return !containsFashionTerm(p) },
			advice:   "I'm all about fashion and self-care! Ask me about outfits, styling, or looks you want to try.",
		},
	}}
}

// Classify tests the prompt against the rule table in priority order.
// It returns nil when no rule matches, signaling the caller to run the full
// LLM-backed path.
func (c *Classifier) Classify(prompt string) *Reply {
	prompt = strings.ToLower(strings.TrimSpace(prompt))
	if prompt == "" {
		return nil
	}

	for _, r := range c.rules {
		if r.match(prompt) {
			return &Reply{
				Category: r.category,
				Advice:   r.advice,
				Keywords: []string{},
			}
		}
	}

	return nil
}
