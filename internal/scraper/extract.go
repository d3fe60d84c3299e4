package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/glamourhall/glamourhall/internal/models"
)

// Extract parses rendered search-results HTML into product records. It is a
// pure function over the HTML string: no browser, no network. Cards missing
// a name or a price after trimming are dropped.
func Extract(html string, site Site) ([]models.Product, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	var products []models.Product

	doc.Find(site.CardSelector).Each(func(_ int, card *goquery.Selection) {
		p := models.Product{
			Name:  strings.TrimSpace(card.Find(site.NameSelector).First().Text()),
			Brand: strings.TrimSpace(card.Find(site.BrandSelector).First().Text()),
			Price: strings.TrimSpace(card.Find(site.PriceSelector).First().Text()),
		}

		if src, ok := card.Find(site.ImageSelector).First().Attr("src"); ok {
			p.Image = strings.TrimSpace(src)
		}

		if href, ok := card.Find(site.LinkSelector).First().Attr("href"); ok {
			p.URL = site.ResolveURL(href)
		}

		if p.Valid() {
			products = append(products, p)
		}
	})

	return products, nil
}
