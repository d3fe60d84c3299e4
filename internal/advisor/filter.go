package advisor

import (
	"regexp"

	"github.com/glamourhall/glamourhall/internal/models"
)

var (
	womenswearRe = regexp.MustCompile(`(?i)\b(women|woman|girls?)\b`)
	menswearRe   = regexp.MustCompile(`(?i)\b(men|man|boys?)\b`)
)

// FilterByGender drops products whose name signals the opposite gender
// category. Unset or other gender values pass everything through. The
// filter is order-preserving and never modifies its input.
func FilterByGender(products []models.Product, prefs models.Preferences) []models.Product {
	var exclude *regexp.Regexp

	switch prefs.Gender {
	case models.GenderMale:
		exclude = womenswearRe
	case models.GenderFemale:
		exclude = menswearRe
	default:
		return products
	}

	filtered := make([]models.Product, 0, len(products))
	for _, p := range products {
		if exclude.MatchString(p.Name) {
			continue
		}
		filtered = append(filtered, p)
	}

	return filtered
}
