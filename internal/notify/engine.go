// Package notify synthesizes the notification feed. There is no backend
// notifications resource; every feed entry is derived from the bill, tenant
// and property collections on a poll cycle, and the whole list is replaced
// each cycle.
package notify

import (
	"context"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gestloc/gestloc/internal/apiclient"
	"github.com/gestloc/gestloc/internal/constants"
	"github.com/gestloc/gestloc/internal/format"
	"github.com/gestloc/gestloc/internal/log"
	"github.com/gestloc/gestloc/internal/model"
	"github.com/gestloc/gestloc/internal/readstate"
)

// Listener receives the full current notification list after every mutation.
type Listener func([]model.Notification)

// Config carries the engine's collaborators.
type Config struct {
	// Fetcher provides the source collections.
	Fetcher apiclient.Fetcher

	// Token returns the current auth token. An empty return means logged
	// out, which quiesces the feed without a stop call.
	Token func() string

	// Reads persists which notification ids have been read.
	Reads *readstate.Store

	// Actions handles notification actions. Nil means discard.
	Actions ActionHandler

	// SimulateMaintenance enables the randomized maintenance rule.
	SimulateMaintenance bool
}

// Engine derives, orders and holds the notification feed. Construct it with
// NewEngine and share one instance; all methods are safe for concurrent use.
type Engine struct {
	fetcher             apiclient.Fetcher
	token               func() string
	reads               *readstate.Store
	actions             ActionHandler
	simulateMaintenance bool
	rng                 *rand.Rand
	now                 func() time.Time

	mu            sync.Mutex
	notifications []model.Notification
	listeners     []listenerEntry
	nextListener  int
	lastFetched   time.Time

	pollMu   sync.Mutex
	stopPoll chan struct{}
}

type listenerEntry struct {
	id int
	fn Listener
}

// NewEngine creates an Engine from the given config.
func NewEngine(cfg Config) *Engine {
	actions := cfg.Actions
	if actions == nil {
		actions = NopActionHandler{}
	}
	token := cfg.Token
	if token == nil {
		token = func() string { return "" }
	}

	return &Engine{
		fetcher:             cfg.Fetcher,
		token:               token,
		reads:               cfg.Reads,
		actions:             actions,
		simulateMaintenance: cfg.SimulateMaintenance,
		rng:                 rand.New(rand.NewSource(time.Now().UnixNano())),
		now:                 time.Now,
	}
}

// AddListener registers a callback invoked synchronously, in registration
// order, with the full current list on every mutation. The returned closure
// unsubscribes.
func (e *Engine) AddListener(fn Listener) func() {
	e.mu.Lock()
	defer e.mu.Unlock()

	id := e.nextListener
	e.nextListener++
	e.listeners = append(e.listeners, listenerEntry{id: id, fn: fn})

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		for i, l := range e.listeners {
			if l.id == id {
				e.listeners = append(e.listeners[:i], e.listeners[i+1:]...)
				return
			}
		}
	}
}

// broadcast snapshots the list and listeners under the lock, then invokes
// the listeners outside it so a callback can re-enter the engine.
func (e *Engine) broadcast() {
	e.mu.Lock()
	list := e.snapshotLocked()
	listeners := make([]listenerEntry, len(e.listeners))
	copy(listeners, e.listeners)
	e.mu.Unlock()

	for _, l := range listeners {
		l.fn(list)
	}
}

func (e *Engine) snapshotLocked() []model.Notification {
	list := make([]model.Notification, len(e.notifications))
	copy(list, e.notifications)
	return list
}

// Notifications returns a copy of the current feed.
func (e *Engine) Notifications() []model.Notification {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// StartPolling performs one immediate fetch, then repeats on a fixed
// interval until StopPolling. A second call while already polling is a
// no-op. There is no backoff; a failing cycle logs and retries on the next
// tick.
func (e *Engine) StartPolling(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = constants.PollInterval
	}

	e.pollMu.Lock()
	defer e.pollMu.Unlock()

	if e.stopPoll != nil {
		log.Debug("notification polling already running")
		return
	}
	stop := make(chan struct{})
	e.stopPoll = stop

	go func() {
		e.FetchNotifications(ctx)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case <-ctx.Done():
				return
			case <-ticker.C:
				e.FetchNotifications(ctx)
			}
		}
	}()
}

// StopPolling stops future ticks. A fetch already in flight completes and
// still broadcasts its result.
func (e *Engine) StopPolling() {
	e.pollMu.Lock()
	defer e.pollMu.Unlock()

	if e.stopPoll != nil {
		close(e.stopPoll)
		e.stopPoll = nil
	}
}

// Polling reports whether the poll loop is armed.
func (e *Engine) Polling() bool {
	e.pollMu.Lock()
	defer e.pollMu.Unlock()
	return e.stopPoll != nil
}

// FetchNotifications runs one derivation cycle and replaces the feed.
//
// Without a token the feed is cleared and broadcast with no network call;
// this is how the engine goes quiet after logout. Otherwise the three source
// collections are fetched concurrently, each individually degraded to empty
// on failure, and the feed is derived once all three have settled.
func (e *Engine) FetchNotifications(ctx context.Context) []model.Notification {
	if e.token() == "" {
		log.Debug("no auth token, clearing notifications")
		e.mu.Lock()
		e.notifications = nil
		e.mu.Unlock()
		e.broadcast()
		return nil
	}

	var (
		bills      []model.Bill
		tenants    []model.Tenant
		properties []model.Property
		wg         sync.WaitGroup
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		var err error
		if bills, err = e.fetcher.ListBills(ctx, apiclient.BillFilters{}); err != nil {
			log.Warn("notification source fetch failed", "resource", "bills", "error", err)
			bills = nil
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if tenants, err = e.fetcher.ListTenants(ctx); err != nil {
			log.Warn("notification source fetch failed", "resource", "tenants", "error", err)
			tenants = nil
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if properties, err = e.fetcher.ListProperties(ctx); err != nil {
			log.Warn("notification source fetch failed", "resource", "properties", "error", err)
			properties = nil
		}
	}()
	wg.Wait()

	now := e.now()

	list := deriveOverdue(bills, now)
	list = append(list, deriveNewTenants(tenants, now)...)
	list = append(list, derivePayments(bills, now)...)
	if e.simulateMaintenance {
		list = append(list, deriveMaintenance(properties, e.rng, now)...)
	}
	list = append(list, systemBackup(now))

	for i := range list {
		list[i].TimestampFR = format.RelativeFR(list[i].Timestamp, now)
		if e.reads != nil && e.reads.IsRead(list[i].ID) {
			list[i].Read = true
		}
	}

	sortFeed(list)

	e.mu.Lock()
	e.notifications = list
	e.lastFetched = now
	e.mu.Unlock()

	log.Debug("notification cycle complete", "count", len(list))
	e.broadcast()
	return e.Notifications()
}

// sortFeed orders by priority, ties broken by most recent first. The sort
// is stable so equal entries keep derivation order.
func sortFeed(list []model.Notification) {
	sort.SliceStable(list, func(i, j int) bool {
		ri, rj := list[i].Priority.Rank(), list[j].Priority.Rank()
		if ri != rj {
			return ri < rj
		}
		return list[i].Timestamp.After(list[j].Timestamp)
	})
}

// MarkAsRead marks one notification read and persists the id. The feed
// slice is replaced, not mutated in place.
func (e *Engine) MarkAsRead(id string) {
	e.mu.Lock()
	next := make([]model.Notification, len(e.notifications))
	copy(next, e.notifications)
	for i := range next {
		if next[i].ID == id {
			next[i].Read = true
		}
	}
	e.notifications = next
	e.mu.Unlock()

	if e.reads != nil {
		if err := e.reads.MarkRead(id); err != nil {
			log.Warn("could not persist read state", "id", id, "error", err)
		}
	}
	e.broadcast()
}

// MarkAllAsRead marks the whole feed read and persists the ids.
func (e *Engine) MarkAllAsRead() {
	e.mu.Lock()
	next := make([]model.Notification, len(e.notifications))
	copy(next, e.notifications)
	ids := make([]string, 0, len(next))
	for i := range next {
		if !next[i].Read {
			ids = append(ids, next[i].ID)
		}
		next[i].Read = true
	}
	e.notifications = next
	e.mu.Unlock()

	if e.reads != nil && len(ids) > 0 {
		if err := e.reads.MarkManyRead(ids); err != nil {
			log.Warn("could not persist read state", "error", err)
		}
	}
	e.broadcast()
}

// RemoveNotification drops one entry from the feed. The entry reappears on
// the next cycle if its source record still qualifies, unless it has been
// marked read first.
func (e *Engine) RemoveNotification(id string) {
	e.mu.Lock()
	next := make([]model.Notification, 0, len(e.notifications))
	for _, n := range e.notifications {
		if n.ID != id {
			next = append(next, n)
		}
	}
	e.notifications = next
	e.mu.Unlock()

	e.broadcast()
}

// ExecuteAction dispatches the notification's action to the handler, then
// marks the notification read. Unknown action types are logged and ignored.
func (e *Engine) ExecuteAction(n model.Notification) {
	if n.Action != nil {
		var err error
		switch n.Action.Type {
		case model.ActionNavigate:
			err = e.actions.Navigate(n.Action.Section, n.Action.EntityID)
		case model.ActionOpenReceipt:
			err = e.actions.OpenReceipt(n.Action.BillID)
		default:
			log.Warn("unknown notification action", "type", n.Action.Type)
		}
		if err != nil {
			log.Warn("notification action failed", "id", n.ID, "error", err)
		}
	}

	e.MarkAsRead(n.ID)
}

// CreateNotification builds a full notification from a partial one,
// prepends it to the feed and broadcasts. This is the one push path into an
// otherwise poll-only feed.
func (e *Engine) CreateNotification(partial model.Notification) model.Notification {
	now := e.now()

	n := partial
	if n.ID == "" {
		n.ID = "custom-" + uuid.NewString()
	}
	if n.Type == "" {
		n.Type = model.NotifyCustom
	}
	if n.Priority == "" {
		n.Priority = model.PriorityMedium
	}
	if n.Timestamp.IsZero() {
		n.Timestamp = now
	}
	n.TimestampFR = format.RelativeFR(n.Timestamp, now)
	n.Read = false

	e.mu.Lock()
	e.notifications = append([]model.Notification{n}, e.notifications...)
	e.mu.Unlock()

	e.broadcast()
	return n
}

// Stats summarizes the current feed.
type Stats struct {
	Total       int                            `json:"total"`
	Unread      int                            `json:"unread"`
	ByType      map[model.NotificationType]int `json:"by_type"`
	ByPriority  map[model.Priority]int         `json:"by_priority"`
	LastUpdated time.Time                      `json:"last_updated"`
}

// GetStats aggregates the current feed without mutating it.
func (e *Engine) GetStats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := Stats{
		Total:       len(e.notifications),
		ByType:      make(map[model.NotificationType]int),
		ByPriority:  make(map[model.Priority]int),
		LastUpdated: e.lastFetched,
	}
	for _, n := range e.notifications {
		if !n.Read {
			s.Unread++
		}
		s.ByType[n.Type]++
		s.ByPriority[n.Priority]++
	}
	return s
}
