package usecase

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"CryptoVision/internal/domain/models"
	"CryptoVision/internal/domain/repository"
	"CryptoVision/internal/service/cache"
	"CryptoVision/internal/service/fallback"
	"CryptoVision/pkg/logger"
)

const (
	snapshotKey      = "snapshot:current"
	snapshotStaleKey = "snapshot:last-known"
)

// staticQuotes is the terminal snapshot tier: a fixed list of well-known
// assets with illustrative prices. It is never empty, so the asset picker
// always has something to show.
var staticQuotes = []models.AssetQuote{
	{Symbol: "BTC-USD", Name: "Bitcoin", Price: "$67,234"},
	{Symbol: "ETH-USD", Name: "Ethereum", Price: "$3,456"},
	{Symbol: "BNB-USD", Name: "BNB", Price: "$598"},
	{Symbol: "XRP-USD", Name: "XRP", Price: "$0.54"},
	{Symbol: "ADA-USD", Name: "Cardano", Price: "$0.45"},
	{Symbol: "SOL-USD", Name: "Solana", Price: "$178"},
	{Symbol: "DOT-USD", Name: "Polkadot", Price: "$7.23"},
	{Symbol: "LINK-USD", Name: "Chainlink", Price: "$14.56"},
	{Symbol: "LTC-USD", Name: "Litecoin", Price: "$89.34"},
	{Symbol: "MATIC-USD", Name: "Polygon", Price: "$0.89"},
}

// SnapshotFetcher serves the current market snapshot from cache, refreshing
// through an ordered source chain when the cached copy expires. GetSnapshot
// never fails: live data degrades to scraped, then to the static list.
type SnapshotFetcher struct {
	log     *logger.Logger
	metrics repository.Metrics
	store   cache.BytesCache
	ttl     time.Duration
	chain   *fallback.Chain[[]models.AssetQuote]
	now     func() time.Time

	// guards the check-fetch-store sequence; concurrent refreshes would
	// hammer the upstreams for interchangeable results
	mu sync.Mutex
}

// SnapshotOption configures SnapshotFetcher.
type SnapshotOption func(*SnapshotFetcher)

// WithClock overrides the time source.
func WithClock(now func() time.Time) SnapshotOption {
	return func(f *SnapshotFetcher) { f.now = now }
}

// NewSnapshotFetcher builds the fetcher over an ordered list of sources,
// first source consulted first.
func NewSnapshotFetcher(
	log *logger.Logger,
	metrics repository.Metrics,
	store cache.BytesCache,
	ttl time.Duration,
	sources []repository.SnapshotSource,
	opts ...SnapshotOption,
) *SnapshotFetcher {
	tiers := make([]fallback.Source[[]models.AssetQuote], 0, len(sources))
	for _, src := range sources {
		src := src
		tiers = append(tiers, fallback.Source[[]models.AssetQuote]{
			Name: src.Name(),
			Fetch: func(ctx context.Context) ([]models.AssetQuote, error) {
				quotes, err := src.Fetch(ctx)
				if err != nil {
					metrics.RecordSourceFetch(src.Name(), "error")
					return nil, err
				}
				metrics.RecordSourceFetch(src.Name(), "ok")
				return quotes, nil
			},
		})
	}

	f := &SnapshotFetcher{
		log:     log,
		metrics: metrics,
		store:   store,
		ttl:     ttl,
		chain: fallback.NewChain(func(qs []models.AssetQuote) bool {
			return len(qs) > 0
		}, tiers...),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// GetSnapshot returns the current quote list, from cache when fresh. The
// returned list is never empty and the call never reports an error.
func (f *SnapshotFetcher) GetSnapshot(ctx context.Context) []models.AssetQuote {
	if quotes, ok := f.cached(snapshotKey); ok {
		f.metrics.RecordCacheLookup("hit")
		return quotes
	}
	f.metrics.RecordCacheLookup("miss")

	f.mu.Lock()
	defer f.mu.Unlock()

	// another request may have refreshed while we waited on the lock
	if quotes, ok := f.cached(snapshotKey); ok {
		f.metrics.RecordCacheLookup("hit")
		return quotes
	}

	return f.refresh(ctx)
}

// refresh runs the source chain and stores the winner. Anything unexpected
// escaping the chain degrades to the last known snapshot, then to the
// static list.
func (f *SnapshotFetcher) refresh(ctx context.Context) (quotes []models.AssetQuote) {
	start := time.Now()
	defer func() {
		f.metrics.RecordLatency("snapshot_refresh", time.Since(start).Seconds())
		if r := recover(); r != nil {
			f.log.Error("snapshot refresh panicked", logger.Any("panic", r))
			if stale, ok := f.cached(snapshotStaleKey); ok {
				quotes = stale
				return
			}
			quotes = staticQuotes
		}
	}()

	out := f.chain.Run(ctx, func() []models.AssetQuote { return staticQuotes })
	for _, err := range out.Errors {
		f.log.Warn("snapshot source failed", logger.Error(err))
	}
	if out.Tier == "default" {
		f.metrics.RecordFallback("snapshot", "static")
	}
	f.log.Info("snapshot refreshed",
		logger.String("tier", out.Tier),
		logger.Int("quotes", len(out.Value)),
	)

	f.cache(out.Value)
	return out.Value
}

func (f *SnapshotFetcher) cached(key string) ([]models.AssetQuote, bool) {
	b, ok, err := f.store.GetBytes(key)
	if err != nil || !ok {
		if err != nil {
			f.log.Warn("snapshot cache read failed", logger.Error(err))
		}
		return nil, false
	}
	var snap models.MarketSnapshot
	if err := json.Unmarshal(b, &snap); err != nil || len(snap.Quotes) == 0 {
		return nil, false
	}
	return snap.Quotes, true
}

func (f *SnapshotFetcher) cache(quotes []models.AssetQuote) {
	snap := models.MarketSnapshot{Quotes: quotes, FetchedAt: f.now()}
	b, err := json.Marshal(snap)
	if err != nil {
		f.log.Error("snapshot marshal failed", logger.Error(err))
		return
	}
	if err := f.store.SetBytes(snapshotKey, b, f.ttl); err != nil {
		f.log.Warn("snapshot cache write failed", logger.Error(err))
	}
	// kept without expiry as the stale copy for unexpected refresh failures
	if err := f.store.SetBytes(snapshotStaleKey, b, 0); err != nil {
		f.log.Warn("snapshot stale-copy write failed", logger.Error(err))
	}
}
