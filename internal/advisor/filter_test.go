package advisor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/glamourhall/glamourhall/internal/models"
)

func TestFilterByGender(t *testing.T) {
	womens := models.Product{Name: "Women's Floral Dress", Price: "Rs. 1499"}
	mens := models.Product{Name: "Men's Casual Shirt", Price: "Rs. 999"}
	girls := models.Product{Name: "Girls Party Frock", Price: "Rs. 799"}
	boys := models.Product{Name: "Boys Denim Shorts", Price: "Rs. 599"}
	neutral := models.Product{Name: "Canvas Tote Bag", Price: "Rs. 499"}

	all := []models.Product{womens, mens, girls, boys, neutral}

	tests := []struct {
		name     string
		gender   string
		expected []models.Product
	}{
		{
			name:     "male excludes womenswear",
			gender:   models.GenderMale,
			expected: []models.Product{mens, boys, neutral},
		},
		{
			name:     "female excludes menswear",
			gender:   models.GenderFemale,
			expected: []models.Product{womens, girls, neutral},
		},
		{
			name:     "unset passes everything",
			gender:   "",
			expected: all,
		},
		{
			name:     "nonbinary passes everything",
			gender:   "nonbinary",
			expected: all,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterByGender(all, models.Preferences{Gender: tt.gender})
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestFilterByGenderWordBoundaries(t *testing.T) {
	// "Women's" contains "men" as a substring; only whole-word matches
	// may exclude, so the female filter keeps womenswear.
	products := []models.Product{
		{Name: "Women's Floral Dress", Price: "Rs. 1499"},
		{Name: "Men's Casual Shirt", Price: "Rs. 999"},
	}

	got := FilterByGender(products, models.Preferences{Gender: models.GenderFemale})

	assert.Equal(t, []models.Product{{Name: "Women's Floral Dress", Price: "Rs. 1499"}}, got)
}

func TestFilterByGenderPreservesOrder(t *testing.T) {
	products := []models.Product{
		{Name: "Scarf A", Price: "1"},
		{Name: "Women Top", Price: "2"},
		{Name: "Scarf B", Price: "3"},
		{Name: "Scarf C", Price: "4"},
	}

	got := FilterByGender(products, models.Preferences{Gender: models.GenderMale})

	assert.Equal(t, []models.Product{
		{Name: "Scarf A", Price: "1"},
		{Name: "Scarf B", Price: "3"},
		{Name: "Scarf C", Price: "4"},
	}, got)
}
