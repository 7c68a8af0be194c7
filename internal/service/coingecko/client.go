// Package coingecko implements the primary snapshot source: the CoinGecko
// markets endpoint, top assets by market capitalization.
package coingecko

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"CryptoVision/internal/domain/models"
	"CryptoVision/internal/service/ratelimit"
	xhttp "CryptoVision/pkg/http"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var pricePrinter = message.NewPrinter(language.AmericanEnglish)

// Client fetches current market quotes from CoinGecko.
type Client struct {
	baseURL  string
	maxCoins int
	client   *xhttp.Client

	limiter      *ratelimit.Limiter
	rateCapacity float64
	ratePerSec   float64
}

// Option configures Client.
type Option func(*Client)

// WithLimiter attaches a local token bucket for the anonymous CoinGecko
// quota. A declined call surfaces as a tier failure to the snapshot chain.
func WithLimiter(l *ratelimit.Limiter, capacity, perSec float64) Option {
	return func(c *Client) {
		c.limiter = l
		c.rateCapacity = capacity
		c.ratePerSec = perSec
	}
}

// New creates a CoinGecko client. maxCoins bounds the snapshot size.
func New(baseURL string, maxCoins int, client *xhttp.Client, opts ...Option) *Client {
	c := &Client{baseURL: strings.TrimRight(baseURL, "/"), maxCoins: maxCoins, client: client}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Name() string { return "coingecko" }

type marketCoin struct {
	Symbol       string  `json:"symbol"`
	Name         string  `json:"name"`
	CurrentPrice float64 `json:"current_price"`
}

// Fetch returns up to maxCoins quotes ranked by market cap. Symbols are
// uppercased and suffixed "-USD"; duplicates keep their first occurrence so
// a snapshot never lists the same ticker twice.
func (c *Client) Fetch(ctx context.Context) ([]models.AssetQuote, error) {
	if c.limiter != nil && !c.limiter.Allow(c.Name(), c.rateCapacity, c.ratePerSec) {
		return nil, fmt.Errorf("coingecko: local rate limit exceeded")
	}

	var coins []marketCoin
	err := c.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/coins/markets",
		Headers: map[string]string{
			"Accept":     "application/json",
			"User-Agent": "CryptoVision/1.0",
		},
		QueryParams: map[string][]string{
			"vs_currency": {"usd"},
			"order":       {"market_cap_desc"},
			"per_page":    {strconv.Itoa(c.maxCoins)},
			"page":        {"1"},
			"sparkline":   {"false"},
		},
	}, &coins)
	if err != nil {
		return nil, fmt.Errorf("coingecko markets: %w", err)
	}

	quotes := make([]models.AssetQuote, 0, len(coins))
	seen := make(map[string]struct{}, len(coins))
	for _, coin := range coins {
		if len(quotes) >= c.maxCoins {
			break
		}
		symbol := strings.ToUpper(coin.Symbol) + "-USD"
		if _, dup := seen[symbol]; dup {
			continue
		}
		seen[symbol] = struct{}{}
		quotes = append(quotes, models.AssetQuote{
			Symbol: symbol,
			Name:   coin.Name,
			Price:  FormatPrice(coin.CurrentPrice),
		})
	}

	return quotes, nil
}

// FormatPrice renders a USD price with locale-aware grouping and 2 to 6
// fraction digits ("$67,234.00", "$0.000123").
func FormatPrice(v float64) string {
	return "$" + pricePrinter.Sprintf("%v",
		number.Decimal(v, number.MinFractionDigits(2), number.MaxFractionDigits(6)))
}
