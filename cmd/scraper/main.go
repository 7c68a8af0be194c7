// Command scraper runs the Yahoo listing scrape once and prints the
// extracted quotes. Useful for checking whether the page markup still
// matches the extraction rules without starting the server.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"CryptoVision/internal/service/yahoo"
	xhttp "CryptoVision/pkg/http"
)

func main() {
	url := flag.String("url", "https://finance.yahoo.com/markets/crypto/all/?start=0&count=50", "listing page URL")
	max := flag.Int("max", 50, "maximum rows to extract")
	timeout := flag.Duration("timeout", 15*time.Second, "request timeout")
	flag.Parse()

	scraper := yahoo.NewScraper(*url, *max, xhttp.NewClient(xhttp.WithTimeout(*timeout)))

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	quotes, err := scraper.Fetch(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "scrape failed: %v\n", err)
		os.Exit(1)
	}
	if len(quotes) == 0 {
		fmt.Fprintln(os.Stderr, "scrape succeeded but extracted no rows; markup may have changed")
		os.Exit(1)
	}

	for _, q := range quotes {
		fmt.Printf("%-12s %-30s %s\n", q.Symbol, q.Name, q.Price)
	}
	fmt.Printf("\nextracted %d quotes\n", len(quotes))
}
