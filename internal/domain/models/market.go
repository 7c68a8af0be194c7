package models

import "time"

// AssetQuote is one row of the asset-selection list: a ticker normalized to
// the "<BASE>-USD" convention, a display name, and a pre-formatted price
// string ("$67,234.00").
type AssetQuote struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Price  string `json:"price"`
}

// MarketSnapshot is a point-in-time list of current asset quotes. At most 50
// entries, symbols unique within one snapshot.
type MarketSnapshot struct {
	Quotes    []AssetQuote `json:"quotes"`
	FetchedAt time.Time    `json:"fetched_at"`
}
