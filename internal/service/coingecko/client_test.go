package coingecko

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	xhttp "CryptoVision/pkg/http"
)

func TestFetchMapsAndTruncates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/coins/markets" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("order"); got != "market_cap_desc" {
			t.Fatalf("unexpected order %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"symbol":"btc","name":"Bitcoin","current_price":67234.12},
			{"symbol":"eth","name":"Ethereum","current_price":3456.7},
			{"symbol":"btc","name":"Bitcoin Clone","current_price":1},
			{"symbol":"doge","name":"Dogecoin","current_price":0.1234567}
		]`))
	}))
	defer srv.Close()

	c := New(srv.URL, 3, xhttp.NewClient())
	quotes, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(quotes) != 3 {
		t.Fatalf("expected 3 quotes (dup dropped), got %d", len(quotes))
	}
	if quotes[0].Symbol != "BTC-USD" || quotes[0].Name != "Bitcoin" {
		t.Fatalf("unexpected first quote %+v", quotes[0])
	}
	if quotes[0].Price != "$67,234.12" {
		t.Fatalf("unexpected formatted price %q", quotes[0].Price)
	}
	if quotes[2].Symbol != "DOGE-USD" {
		t.Fatalf("duplicate BTC should have been skipped, got %+v", quotes[2])
	}
}

func TestFetchNon2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := New(srv.URL, 50, xhttp.NewClient())
	if _, err := c.Fetch(context.Background()); err == nil {
		t.Fatal("expected error for non-2xx status")
	}
}

func TestFormatPrice(t *testing.T) {
	cases := map[float64]string{
		67234:     "$67,234.00",
		3456.7:    "$3,456.70",
		0.1234567: "$0.123457",
		0.54:      "$0.54",
	}
	for in, want := range cases {
		if got := FormatPrice(in); got != want {
			t.Fatalf("FormatPrice(%v) = %q, want %q", in, got, want)
		}
	}
}
