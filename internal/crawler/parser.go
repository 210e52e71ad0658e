package crawler

import (
	"errors"
	"net/url"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"lightcat/internal/model"
)

var ErrNoProduct = errors.New("no product on page")

const (
	minDescriptionLength = 20
	maxImages            = 10
	defaultCategory      = "Lighting"

	titleSelector = "h1.inline.title-n.font26.serif"
)

// ParsePage extracts the site scrape of one product page. pageURL is the
// address the page was fetched from; slug and language derive from it and
// relative links resolve against it.
func ParsePage(pageURL, html string) (model.SiteScrape, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return model.SiteScrape{}, err
	}
	base, _ := url.Parse(pageURL)

	name := productName(doc)
	if name == "" {
		return model.SiteScrape{}, ErrNoProduct
	}

	s := model.SiteScrape{
		Slug:         SlugFromURL(pageURL),
		Manufacturer: model.Lodes,
		Language:     langFromURL(pageURL),
		SourceURL:    pageURL,
		Name:         name,
		Description:  description(doc),
		Images:       images(doc, base),
		Categories:   categories(doc),
		Attributes:   &model.Attributes{},
	}
	if s.Language == "" {
		s.Language = "en"
	}

	if d := ParseDesigner(strings.TrimSpace(doc.Find(titleSelector + " em").First().Text())); d != "" {
		s.Attributes.Set("Designer", d)
	}

	doc.Find("table.table-variante").Each(func(_ int, t *goquery.Selection) {
		rows, attrs := variantTable(t)
		s.VariantRows = append(s.VariantRows, rows...)
		for k, v := range attrs.All() {
			s.Attributes.Set(k, v)
		}
	})

	if href, ok := doc.Find(`a[href$=".pdf"]`).First().Attr("href"); ok {
		s.DatasheetURL = resolve(base, href)
	}

	var variants []string
	doc.Find("div.variante div.header-variante.relative div.left.col25.font26.serif").Each(func(_ int, h *goquery.Selection) {
		if v := cleanText(h.Text()); v != "" {
			variants = append(variants, v)
		}
	})
	if len(variants) > 0 {
		s.Attributes.Set("Variants", strings.Join(variants, ", "))
	}

	text := doc.Find("body").Text()
	if w, ok := ParseWeight(text); ok {
		s.Weight = &w
	}
	for k, v := range ExtractCertifications(text).All() {
		s.Attributes.SetIfMissing(k, v)
	}
	return s, nil
}

func productName(doc *goquery.Document) string {
	title := doc.Find(titleSelector).First()
	if title.Length() > 0 {
		if n := cleanText(title.Clone().Find("em").Remove().End().Text()); n != "" {
			return strings.TrimRight(n, " ,")
		}
	}
	head, _, _ := strings.Cut(doc.Find("title").First().Text(), "|")
	return strings.TrimSpace(head)
}

func description(doc *goquery.Document) string {
	for _, sel := range []string{"div.largh60.pos-Sinistra", "div.font26.serif.text-more"} {
		if t := strings.TrimSpace(doc.Find(sel).First().Text()); len(t) > minDescriptionLength {
			return t
		}
	}
	return ""
}

func images(doc *goquery.Document, base *url.URL) []string {
	var out []string
	doc.Find("img.carousel-cell-image").Each(func(_ int, img *goquery.Selection) {
		src, ok := img.Attr("src")
		if !ok || !IsProductImage(src) {
			return
		}
		full := resolve(base, FullResolution(src))
		if !slices.Contains(out, full) {
			out = append(out, full)
		}
	})
	if len(out) > maxImages {
		out = out[:maxImages]
	}
	return out
}

func categories(doc *goquery.Document) []string {
	var out []string
	crumbs := doc.Find("div.bread-crumbs.shadow")
	for _, sel := range []string{"span.bred2 a", "span.bred3 a"} {
		if t := cleanText(crumbs.Find(sel).First().Text()); t != "" {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return []string{defaultCategory}
	}
	return out
}

// variantTable reads one variant table. Header cells name the columns of
// the data rows; "Key: Value" headers and th/td rows are attributes.
func variantTable(t *goquery.Selection) ([]model.VariantRow, *model.Attributes) {
	var headers []string
	t.Find("thead th").Each(func(_ int, th *goquery.Selection) {
		headers = append(headers, cleanText(th.Text()))
	})
	attrs := ParseHeaderAttributes(headers)

	var rows []model.VariantRow
	t.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		th, tds := tr.Find("th"), tr.Find("td")
		if th.Length() == 1 && tds.Length() == 1 {
			if k, v := cleanText(th.Text()), cleanText(tds.Text()); k != "" && v != "" {
				attrs.Set(k, v)
			}
			return
		}
		var row model.VariantRow
		tds.Each(func(i int, td *goquery.Selection) {
			if i >= len(headers) || headers[i] == "" {
				return
			}
			if v := strings.TrimSpace(td.Text()); v != "" {
				row = append(row, model.Cell{Header: headers[i], Value: v})
			}
		})
		if len(row) > 0 {
			rows = append(rows, row)
		}
	})
	return rows, attrs
}

func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
