package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureHTML = `<!DOCTYPE html>
<html>
<body>
<ul class="results-base">
	<li class="product-base">
		<a href="/12345/blue-denim-jacket/buy">
			<img class="img-responsive" src="https://assets.example.com/denim.jpg" />
			<h3 class="product-brand">Levis</h3>
			<h4 class="product-product">Blue Denim Jacket</h4>
			<span class="product-discountedPrice">Rs. 2499</span>
		</a>
	</li>
	<li class="product-base">
		<a href="https://www.partner-shop.com/p/678">
			<h3 class="product-brand">Zara</h3>
			<h4 class="product-product">White Linen Shirt</h4>
			<span class="product-discountedPrice">Rs. 1799</span>
		</a>
	</li>
	<li class="product-base">
		<a href="/999/no-name/buy">
			<h3 class="product-brand">NoName</h3>
			<h4 class="product-product">   </h4>
			<span class="product-discountedPrice">Rs. 999</span>
		</a>
	</li>
	<li class="product-base">
		<a href="/1000/no-price/buy">
			<h3 class="product-brand">Brandless</h3>
			<h4 class="product-product">Priceless Scarf</h4>
			<span class="product-discountedPrice"></span>
		</a>
	</li>
</ul>
</body>
</html>`

func TestExtract(t *testing.T) {
	site := DefaultSite()

	products, err := Extract(fixtureHTML, site)
	require.NoError(t, err)

	// Cards with an empty name or price are dropped.
	require.Len(t, products, 2)

	assert.Equal(t, "Blue Denim Jacket", products[0].Name)
	assert.Equal(t, "Levis", products[0].Brand)
	assert.Equal(t, "Rs. 2499", products[0].Price)
	assert.Equal(t, "https://assets.example.com/denim.jpg", products[0].Image)
	assert.Equal(t, "https://www.myntra.com/12345/blue-denim-jacket/buy", products[0].URL)

	assert.Equal(t, "White Linen Shirt", products[1].Name)
	assert.Empty(t, products[1].Image)
	assert.Equal(t, "https://www.partner-shop.com/p/678", products[1].URL)
}

func TestExtractDeterministic(t *testing.T) {
	site := DefaultSite()

	first, err := Extract(fixtureHTML, site)
	require.NoError(t, err)

	second, err := Extract(fixtureHTML, site)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestExtractEmptyDocument(t *testing.T) {
	products, err := Extract("<html><body></body></html>", DefaultSite())
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestResolveURL(t *testing.T) {
	site := DefaultSite()

	tests := []struct {
		name     string
		href     string
		expected string
	}{
		{
			name:     "relative href resolves against origin",
			href:     "/foo/bar",
			expected: "https://www.myntra.com/foo/bar",
		},
		{
			name:     "absolute href passes through",
			href:     "https://other.example.com/p/1",
			expected: "https://other.example.com/p/1",
		},
		{
			name:     "empty href stays empty",
			href:     "",
			expected: "",
		},
		{
			name:     "whitespace-padded relative href",
			href:     "  /padded/path  ",
			expected: "https://www.myntra.com/padded/path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, site.ResolveURL(tt.href))
		})
	}
}

func TestSearchURL(t *testing.T) {
	site := DefaultSite()

	assert.Equal(t, "https://www.myntra.com/leather%20belts", site.SearchURL("leather belts"))
	assert.Equal(t, "https://www.myntra.com/jeans", site.SearchURL("jeans"))
}
