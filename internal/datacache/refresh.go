package datacache

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/gestloc/gestloc/internal/apiclient"
	"github.com/gestloc/gestloc/internal/constants"
	"github.com/gestloc/gestloc/internal/format"
	"github.com/gestloc/gestloc/internal/log"
	"github.com/gestloc/gestloc/internal/model"
)

// RefreshAll drops the cache and re-fetches all five resources in parallel.
// It runs unattended on the auto-refresh timer, so failures are logged and
// swallowed rather than returned; results are discarded beyond repopulating
// the cache.
func (s *Service) RefreshAll(ctx context.Context) {
	s.ClearCache()

	var wg sync.WaitGroup
	run := func(name string, fetch func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fetch(); err != nil {
				log.Warn("refresh failed", "resource", name, "error", err)
			}
		}()
	}

	run(keyProperties, func() error { _, err := s.Properties(ctx); return err })
	run(keyTenants, func() error { _, err := s.Tenants(ctx); return err })
	run(keyBills, func() error { _, err := s.Bills(ctx, apiclient.BillFilters{}); return err })
	run(keyBillsStats, func() error { _, err := s.BillsStats(ctx); return err })
	run(keyExpenses, func() error { _, err := s.Expenses(ctx); return err })

	wg.Wait()
	log.Info("data refresh complete")
}

// StartAutoRefresh arms a repeating timer that calls RefreshAll. Calling it
// while a loop is already running replaces the previous timer, so there is
// never more than one. A tick that arrives while the previous refresh is
// still in flight is skipped, not queued.
func (s *Service) StartAutoRefresh(interval time.Duration) {
	if interval <= 0 {
		interval = constants.AutoRefreshInterval
	}

	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	if s.stopRefresh != nil {
		close(s.stopRefresh)
	}
	stop := make(chan struct{})
	s.stopRefresh = stop

	go s.refreshLoop(interval, stop)
}

// StopAutoRefresh stops future ticks. A refresh already in flight completes
// on its own.
func (s *Service) StopAutoRefresh() {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	if s.stopRefresh != nil {
		close(s.stopRefresh)
		s.stopRefresh = nil
	}
}

func (s *Service) refreshLoop(interval time.Duration, stop chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if !s.refreshing.CompareAndSwap(false, true) {
				log.Debug("refresh still in flight, skipping tick")
				continue
			}
			ctx, cancel := context.WithTimeout(context.Background(), interval)
			s.RefreshAll(ctx)
			cancel()
			s.refreshing.Store(false)
		}
	}
}

// NewBillDefaults returns the pre-filled form state for a new bill: the
// current month, due on its last day, pending.
func (s *Service) NewBillDefaults() model.NewBill {
	now := s.now()
	month := format.CurrentMonth(now)

	return model.NewBill{
		Month:       month,
		DueDate:     model.NewDate(format.LastDayOfMonth(now)),
		Description: "Loyer " + format.MonthFR(month),
		Status:      model.BillPending,
	}
}

// NormalizePhotoURL absolutizes an uploaded-photo path against the backend
// origin. Absolute URLs pass through; paths already rooted at the uploads
// prefix are joined to the origin; anything else is assumed to live under
// the uploads directory.
func (s *Service) NormalizePhotoURL(url string) string {
	switch {
	case url == "":
		return ""
	case strings.HasPrefix(url, "http://"), strings.HasPrefix(url, "https://"):
		return url
	case strings.HasPrefix(url, constants.UploadsPrefix):
		return s.baseURL + url
	default:
		return s.baseURL + constants.UploadsPrefix + strings.TrimPrefix(url, "/")
	}
}
