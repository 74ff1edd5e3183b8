// Package datacache is the single point of truth for backend resource
// lists. Fetches go through a time-boxed in-memory cache and every record
// comes back enriched with locale-formatted derived fields.
package datacache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gestloc/gestloc/internal/apiclient"
	"github.com/gestloc/gestloc/internal/constants"
	"github.com/gestloc/gestloc/internal/log"
	"github.com/gestloc/gestloc/internal/model"
)

// Cache keys. Bill keys get the serialized filters appended.
const (
	keyProperties = "properties"
	keyTenants    = "tenants"
	keyBills      = "bills"
	keyBillsStats = "bills-stats"
	keyExpenses   = "expenses"
)

// entry is one cached payload. Validity is checked lazily on read; expired
// entries are overwritten by the next fetch rather than evicted proactively.
type entry struct {
	payload   any
	fetchedAt time.Time
}

// Service caches and enriches backend resource lists. Construct it with New
// and share one instance; all methods are safe for concurrent use.
type Service struct {
	fetcher apiclient.Fetcher
	baseURL string
	ttl     time.Duration
	now     func() time.Time

	mu      sync.Mutex
	entries map[string]entry

	refreshMu   sync.Mutex
	stopRefresh chan struct{}
	refreshing  atomic.Bool
}

// New creates a Service over the given backend fetcher. baseURL is the
// backend origin, used to absolutize uploaded photo paths.
func New(fetcher apiclient.Fetcher, baseURL string) *Service {
	return &Service{
		fetcher: fetcher,
		baseURL: baseURL,
		ttl:     constants.ListCacheTTL,
		now:     time.Now,
		entries: make(map[string]entry),
	}
}

// lookup returns the cached payload for key if it is still within the TTL.
func (s *Service) lookup(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	if s.now().Sub(e.fetchedAt) >= s.ttl {
		return nil, false
	}
	return e.payload, true
}

// store caches a payload under key with the current timestamp.
func (s *Service) store(key string, payload any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry{payload: payload, fetchedAt: s.now()}
}

// ClearCache empties the cache. Subsequent fetches hit the network.
func (s *Service) ClearCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]entry)
}

// Properties returns the enriched property list, fetching when the cache is
// stale. Photo enrichment performs one extra request per property; a failing
// photo fetch degrades that property to an empty photo list instead of
// failing the whole call.
func (s *Service) Properties(ctx context.Context) ([]model.EnrichedProperty, error) {
	if cached, ok := s.lookup(keyProperties); ok {
		log.Debug("cache hit", "key", keyProperties)
		return cached.([]model.EnrichedProperty), nil
	}

	raw, err := s.fetcher.ListProperties(ctx)
	if err != nil {
		return nil, err
	}

	enriched := make([]model.EnrichedProperty, 0, len(raw))
	for _, p := range raw {
		photos, perr := s.fetcher.PropertyPhotos(ctx, p.ID)
		if perr != nil {
			log.Debug("photo fetch failed, continuing without photos",
				"property", p.ID, "error", perr)
			photos = nil
		}
		for i := range photos {
			photos[i].URL = s.NormalizePhotoURL(photos[i].URL)
		}
		enriched = append(enriched, enrichProperty(p, photos))
	}

	s.store(keyProperties, enriched)
	return enriched, nil
}

// Tenants returns the enriched tenant list, fetching when the cache is stale.
func (s *Service) Tenants(ctx context.Context) ([]model.EnrichedTenant, error) {
	if cached, ok := s.lookup(keyTenants); ok {
		log.Debug("cache hit", "key", keyTenants)
		return cached.([]model.EnrichedTenant), nil
	}

	raw, err := s.fetcher.ListTenants(ctx)
	if err != nil {
		return nil, err
	}

	enriched := make([]model.EnrichedTenant, 0, len(raw))
	for _, t := range raw {
		enriched = append(enriched, enrichTenant(t))
	}

	s.store(keyTenants, enriched)
	return enriched, nil
}

// Bills returns the enriched bill list for the given filters. Each distinct
// filter combination populates its own cache entry.
func (s *Service) Bills(ctx context.Context, filters apiclient.BillFilters) ([]model.EnrichedBill, error) {
	key := keyBills + "?" + filters.CacheKey()

	if cached, ok := s.lookup(key); ok {
		log.Debug("cache hit", "key", key)
		return cached.([]model.EnrichedBill), nil
	}

	raw, err := s.fetcher.ListBills(ctx, filters)
	if err != nil {
		return nil, err
	}

	now := s.now()
	enriched := make([]model.EnrichedBill, 0, len(raw))
	for _, b := range raw {
		enriched = append(enriched, enrichBill(b, now))
	}

	s.store(key, enriched)
	return enriched, nil
}

// BillsStats returns the backend's bill aggregates, cached.
func (s *Service) BillsStats(ctx context.Context) (*model.BillsStats, error) {
	if cached, ok := s.lookup(keyBillsStats); ok {
		log.Debug("cache hit", "key", keyBillsStats)
		return cached.(*model.BillsStats), nil
	}

	stats, err := s.fetcher.BillsStats(ctx)
	if err != nil {
		return nil, err
	}

	s.store(keyBillsStats, stats)
	return stats, nil
}

// Expenses returns the enriched expense list, fetching when the cache is
// stale.
func (s *Service) Expenses(ctx context.Context) ([]model.EnrichedExpense, error) {
	if cached, ok := s.lookup(keyExpenses); ok {
		log.Debug("cache hit", "key", keyExpenses)
		return cached.([]model.EnrichedExpense), nil
	}

	raw, err := s.fetcher.ListExpenses(ctx)
	if err != nil {
		return nil, err
	}

	enriched := make([]model.EnrichedExpense, 0, len(raw))
	for _, e := range raw {
		enriched = append(enriched, enrichExpense(e))
	}

	s.store(keyExpenses, enriched)
	return enriched, nil
}

// Summary is the aggregate the dashboard header displays.
type Summary struct {
	TotalProperties  int                     `json:"total_properties"`
	ActiveProperties int                     `json:"active_properties"`
	TotalTenants     int                     `json:"total_tenants"`
	ActiveTenants    int                     `json:"active_tenants"`
	PendingBills     int                     `json:"pending_bills"`
	OverdueBills     int                     `json:"overdue_bills"`
	PaidBills        int                     `json:"paid_bills"`
	Stats            *model.BillsStats       `json:"stats"`
	Expenses         []model.EnrichedExpense `json:"expenses"`
	TotalExpenses    float64                 `json:"total_expenses"`
	LastUpdated      time.Time               `json:"last_updated"`
}

// DashboardSummary fans out to all five resource fetches concurrently and
// assembles the aggregate. Any constituent failure fails the whole summary;
// this is an all-or-nothing aggregation, not a best-effort merge.
func (s *Service) DashboardSummary(ctx context.Context) (*Summary, error) {
	var (
		properties []model.EnrichedProperty
		tenants    []model.EnrichedTenant
		bills      []model.EnrichedBill
		stats      *model.BillsStats
		expenses   []model.EnrichedExpense
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		properties, err = s.Properties(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		tenants, err = s.Tenants(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		bills, err = s.Bills(gctx, apiclient.BillFilters{})
		return err
	})
	g.Go(func() error {
		var err error
		stats, err = s.BillsStats(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		expenses, err = s.Expenses(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := &Summary{
		TotalProperties: len(properties),
		TotalTenants:    len(tenants),
		Stats:           stats,
		Expenses:        expenses,
		LastUpdated:     s.now(),
	}

	for _, p := range properties {
		if p.Status == model.PropertyRented {
			summary.ActiveProperties++
		}
	}
	for _, t := range tenants {
		if t.Active {
			summary.ActiveTenants++
		}
	}
	for _, b := range bills {
		switch {
		case b.Status == model.BillPaid:
			summary.PaidBills++
		case b.Overdue:
			summary.OverdueBills++
		case b.Status == model.BillPending:
			summary.PendingBills++
		}
	}
	for _, e := range expenses {
		summary.TotalExpenses += e.Amount
	}

	return summary, nil
}
