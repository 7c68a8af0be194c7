// Package yahoo holds the two Yahoo Finance collaborators: the scraped
// crypto listing page (secondary snapshot source) and the v8 chart API
// (historical closing prices).
package yahoo

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"CryptoVision/internal/domain/models"
	xhttp "CryptoVision/pkg/http"

	"golang.org/x/net/html"
)

// Scraper extracts asset quotes from the Yahoo Finance crypto listing page.
// The page blocks non-browser clients, hence the header set. Markup changes
// upstream silently reduce the row yield; the caller treats zero rows as a
// tier failure and falls through.
type Scraper struct {
	url     string
	maxRows int
	client  *xhttp.Client
}

// NewScraper creates a listing-page scraper capped at maxRows quotes.
func NewScraper(url string, maxRows int, client *xhttp.Client) *Scraper {
	return &Scraper{url: url, maxRows: maxRows, client: client}
}

func (s *Scraper) Name() string { return "yahoo-scrape" }

// Fetch downloads the listing page and extracts up to maxRows quotes.
func (s *Scraper) Fetch(ctx context.Context) ([]models.AssetQuote, error) {
	var body []byte
	err := s.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    s.url,
		Headers: map[string]string{
			"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
			"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
			"Accept-Language": "en-US,en;q=0.9",
			"Connection":      "close",
			"Cache-Control":   "no-cache",
		},
	}, &body)
	if err != nil {
		return nil, fmt.Errorf("yahoo listing: %w", err)
	}

	quotes, err := ParseListing(body, s.maxRows)
	if err != nil {
		return nil, fmt.Errorf("yahoo listing parse: %w", err)
	}
	return quotes, nil
}

// ParseListing walks the document tree for table rows carrying a
// data-row-key attribute and extracts symbol, name, and streamed price from
// each. A row is kept only when all three fields are present; prices missing
// a leading currency symbol get one. Extraction stops at maxRows.
func ParseListing(page []byte, maxRows int) ([]models.AssetQuote, error) {
	doc, err := html.Parse(bytes.NewReader(page))
	if err != nil {
		return nil, err
	}

	var quotes []models.AssetQuote
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if len(quotes) >= maxRows {
			return
		}
		if n.Type == html.ElementNode && n.Data == "tr" && hasAttr(n, "data-row-key") {
			if q, ok := parseRow(n); ok {
				quotes = append(quotes, q)
			}
			// rows do not nest; no need to descend further
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return quotes, nil
}

func parseRow(row *html.Node) (models.AssetQuote, bool) {
	symbol := strings.TrimSpace(attrOf(findNode(row, func(n *html.Node) bool {
		return hasAttr(n, "data-symbol")
	}), "data-symbol"))

	name := strings.TrimSpace(textOf(findNode(row, func(n *html.Node) bool {
		if v, ok := attr(n, "aria-label"); ok && strings.Contains(v, "Name") {
			return true
		}
		if v, ok := attr(n, "class"); ok && n.Data == "div" && strings.Contains(v, "yf-90gdtp") {
			return true
		}
		return false
	})))

	price := strings.TrimSpace(textOf(findNode(row, func(n *html.Node) bool {
		v, ok := attr(n, "data-field")
		return n.Data == "fin-streamer" && ok && v == "regularMarketPrice"
	})))

	if symbol == "" || name == "" || price == "" {
		return models.AssetQuote{}, false
	}
	if !strings.HasPrefix(price, "$") {
		price = "$" + price
	}

	return models.AssetQuote{Symbol: symbol, Name: name, Price: price}, true
}

func findNode(n *html.Node, match func(*html.Node) bool) *html.Node {
	if n == nil {
		return nil
	}
	if n.Type == html.ElementNode && match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findNode(c, match); found != nil {
			return found
		}
	}
	return nil
}

func textOf(n *html.Node) string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func attr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func attrOf(n *html.Node, key string) string {
	v, _ := attr(n, key)
	return v
}

func hasAttr(n *html.Node, key string) bool {
	_, ok := attr(n, key)
	return ok
}
