package yahoo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	xhttp "CryptoVision/pkg/http"
)

func chartServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("interval") != "1d" {
			t.Errorf("expected daily interval, got %q", r.URL.Query().Get("interval"))
		}
		if r.URL.Query().Get("events") != "div|split" {
			t.Errorf("expected div|split events, got %q", r.URL.Query().Get("events"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
}

func TestDailyClosesDropsNullsAndRounds(t *testing.T) {
	srv := chartServer(t, `{"chart":{"result":[{"indicators":{"quote":[{"close":[0.12,null,0.13444,null,0.135551]}]}}]}}`)
	defer srv.Close()

	c := NewChartClient(srv.URL, xhttp.NewClient())
	got, err := c.DailyCloses(context.Background(), "DOGE-USD", time.Now().AddDate(0, -5, 0), time.Now())
	if err != nil {
		t.Fatalf("daily closes: %v", err)
	}
	want := []float64{0.12, 0.13, 0.14}
	if len(got) != len(want) {
		t.Fatalf("expected %d closes, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("close[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestDailyClosesInvalidShape(t *testing.T) {
	srv := chartServer(t, `{"chart":{"result":[]}}`)
	defer srv.Close()

	c := NewChartClient(srv.URL, xhttp.NewClient())
	if _, err := c.DailyCloses(context.Background(), "BTC-USD", time.Now().AddDate(0, -5, 0), time.Now()); err == nil {
		t.Fatal("expected error for empty result")
	}
}

func TestDailyClosesAllNull(t *testing.T) {
	srv := chartServer(t, `{"chart":{"result":[{"indicators":{"quote":[{"close":[null,null]}]}}]}}`)
	defer srv.Close()

	c := NewChartClient(srv.URL, xhttp.NewClient())
	if _, err := c.DailyCloses(context.Background(), "BTC-USD", time.Now().AddDate(0, -5, 0), time.Now()); err == nil {
		t.Fatal("expected error when every close is null")
	}
}

func TestDailyClosesAPIError(t *testing.T) {
	srv := chartServer(t, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`)
	defer srv.Close()

	c := NewChartClient(srv.URL, xhttp.NewClient())
	if _, err := c.DailyCloses(context.Background(), "NOPE-USD", time.Now().AddDate(0, -5, 0), time.Now()); err == nil {
		t.Fatal("expected error from chart error payload")
	}
}
