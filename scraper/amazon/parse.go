package amazon

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"monster-deals/models"
	"monster-deals/services"
)

const (
	labelPrimary    = "primary listing"
	labelThirdParty = "third-party offer"
	labelUnlabeled  = "unlabeled"
)

const (
	searchCardSelector   = `div[data-component-type="s-search-result"]`
	primaryPriceSelector = `#corePrice_feature_div .a-price, #corePriceDisplay_desktop_feature_div .a-price, ` +
		`#apex_desktop .a-price, #price .a-price`
	legacyPriceSelector = `#priceblock_ourprice, #priceblock_dealprice, #price_inside_buybox`
	offerSelector       = `#aod-pinned-offer, #aod-offer`
)

// detailBlockSelectors are the page sections searched for pack/size text
// when the title does not carry it, in order.
var detailBlockSelectors = []string{
	"#feature-bullets",
	"#productOverview_feature_div",
	"#detailBullets_feature_div",
	"#productDetails_techSpec_section_1",
	"#productDescription",
}

type detailPage struct {
	Title        string
	Offers       []models.Offer
	DetailBlocks []string
}

// parseSearchPage returns the identifiers of the product cards on a search
// results page, in page order. Cards without an identifier are ignored.
func parseSearchPage(body []byte) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	var ids []string
	doc.Find(searchCardSelector).Each(func(_ int, card *goquery.Selection) {
		if id := strings.TrimSpace(card.AttrOr("data-asin", "")); id != "" {
			ids = append(ids, id)
		}
	})
	return ids, nil
}

func parseDetailPage(body []byte) (*detailPage, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	page := &detailPage{
		Title:  extractTitle(doc),
		Offers: extractOffers(doc),
	}
	for _, sel := range detailBlockSelectors {
		if text := collapse(doc.Find(sel).First().Text()); text != "" {
			page.DetailBlocks = append(page.DetailBlocks, text)
		}
	}
	return page, nil
}

func extractTitle(doc *goquery.Document) string {
	if t := collapse(doc.Find("#productTitle").First().Text()); t != "" {
		return t
	}
	if t := collapse(doc.Find("#title").First().Text()); t != "" {
		return t
	}
	return collapse(doc.Find(`meta[name="title"]`).AttrOr("content", ""))
}

// extractOffers collects prices in a fixed order: the primary listing, then
// each seller offer. The generic price marker is only consulted when neither
// produced anything, since it also matches prices of unrelated products.
func extractOffers(doc *goquery.Document) []models.Offer {
	var offers []models.Offer

	if price, ok := readPrice(doc.Find(primaryPriceSelector).Not(".a-text-price").First()); ok {
		offers = append(offers, models.Offer{Label: labelPrimary, Price: price})
	} else if price, ok := services.ParsePrice(doc.Find(legacyPriceSelector).First().Text()); ok {
		offers = append(offers, models.Offer{Label: labelPrimary, Price: price})
	}

	doc.Find(offerSelector).Each(func(_ int, offer *goquery.Selection) {
		price, ok := readPrice(offer.Find(".a-price").Not(".a-text-price").First())
		if !ok {
			return
		}
		seller := collapse(offer.Find("#aod-offer-soldBy a").First().Text())
		if seller == "" {
			seller = collapse(offer.Find("#aod-offer-soldBy .a-size-small").Last().Text())
		}
		if seller == "" {
			seller = labelThirdParty
		}
		offers = append(offers, models.Offer{Label: seller, Price: price})
	})

	if len(offers) > 0 {
		return offers
	}

	fallback := doc.Find(".a-price").Not(".a-text-price").First()
	if fallback.Length() == 0 {
		fallback = doc.Find(".a-price-whole").First().Parent()
	}
	if price, ok := readPrice(fallback); ok {
		offers = append(offers, models.Offer{Label: labelUnlabeled, Price: price})
	}
	return offers
}

// readPrice reads an a-price block: the screen-reader copy if present,
// otherwise the split whole and fraction parts.
func readPrice(sel *goquery.Selection) (float64, bool) {
	if sel.Length() == 0 {
		return 0, false
	}
	if off := strings.TrimSpace(sel.Find(".a-offscreen").First().Text()); off != "" {
		if price, ok := services.ParsePrice(off); ok {
			return price, true
		}
	}
	return services.AssemblePrice(
		sel.Find(".a-price-whole").First().Text(),
		sel.Find(".a-price-fraction").First().Text(),
	)
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
