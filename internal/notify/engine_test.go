package notify

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gestloc/gestloc/internal/apiclient"
	"github.com/gestloc/gestloc/internal/model"
	"github.com/gestloc/gestloc/internal/readstate"
)

// fixedNow is the pinned clock for derivation tests.
var fixedNow = time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

// mockFetcher serves canned source collections and counts calls.
type mockFetcher struct {
	mu         sync.Mutex
	calls      int
	bills      []model.Bill
	tenants    []model.Tenant
	properties []model.Property
	billsErr   error
}

func (m *mockFetcher) bump() {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
}

func (m *mockFetcher) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *mockFetcher) ListBills(ctx context.Context, _ apiclient.BillFilters) ([]model.Bill, error) {
	m.bump()
	if m.billsErr != nil {
		return nil, m.billsErr
	}
	return m.bills, nil
}

func (m *mockFetcher) ListTenants(ctx context.Context) ([]model.Tenant, error) {
	m.bump()
	return m.tenants, nil
}

func (m *mockFetcher) ListProperties(ctx context.Context) ([]model.Property, error) {
	m.bump()
	return m.properties, nil
}

func (m *mockFetcher) BillsStats(ctx context.Context) (*model.BillsStats, error) {
	m.bump()
	return &model.BillsStats{}, nil
}

func (m *mockFetcher) ListExpenses(ctx context.Context) ([]model.Expense, error) {
	m.bump()
	return nil, nil
}

func (m *mockFetcher) PropertyPhotos(ctx context.Context, _ int64) ([]model.Photo, error) {
	m.bump()
	return nil, nil
}

func newTestEngine(t *testing.T, f *mockFetcher) *Engine {
	t.Helper()

	e := NewEngine(Config{
		Fetcher: f,
		Token:   func() string { return "test-token" },
		Reads:   readstate.NewStoreWithPath(filepath.Join(t.TempDir(), "read.json")),
	})
	e.now = func() time.Time { return fixedNow }
	return e
}

func findByID(list []model.Notification, id string) (model.Notification, bool) {
	for _, n := range list {
		if n.ID == id {
			return n, true
		}
	}
	return model.Notification{}, false
}

func TestFetchNotificationsOverdueBill(t *testing.T) {
	f := &mockFetcher{
		bills: []model.Bill{{
			ID:      1,
			Amount:  100,
			Month:   "2024-01",
			DueDate: model.NewDate(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
			Status:  model.BillPending,
		}},
	}
	e := newTestEngine(t, f)

	list := e.FetchNotifications(context.Background())

	var overdue []model.Notification
	for _, n := range list {
		if n.Type == model.NotifyOverdue {
			overdue = append(overdue, n)
		}
	}
	if len(overdue) != 1 {
		t.Fatalf("got %d overdue notifications, want 1", len(overdue))
	}

	n := overdue[0]
	if n.ID != "overdue-1" {
		t.Errorf("ID = %q, want overdue-1", n.ID)
	}
	if n.Priority != model.PriorityHigh {
		t.Errorf("Priority = %s, want high", n.Priority)
	}
	if !strings.Contains(n.Message, "9 jours") {
		t.Errorf("Message = %q, want it to mention 9 jours", n.Message)
	}

	// High priority sorts before the low-priority backup line.
	if list[0].ID != "overdue-1" {
		t.Errorf("list[0].ID = %q, overdue must sort first", list[0].ID)
	}
	if _, ok := findByID(list, "system-backup"); !ok {
		t.Error("the static system-backup notification must always be present")
	}
}

func TestFetchNotificationsIdsStableAcrossRuns(t *testing.T) {
	f := &mockFetcher{
		bills: []model.Bill{{
			ID:      7,
			Month:   "2024-01",
			DueDate: model.NewDate(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)),
			Status:  model.BillPending,
		}},
		tenants: []model.Tenant{{
			ID:        3,
			FirstName: "Marie",
			LastName:  "Curie",
			EntryDate: model.NewDate(time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC)),
		}},
	}
	e := newTestEngine(t, f)

	first := e.FetchNotifications(context.Background())
	second := e.FetchNotifications(context.Background())

	if len(first) != len(second) {
		t.Fatalf("run sizes differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Errorf("id %d changed across runs: %q vs %q", i, first[i].ID, second[i].ID)
		}
	}
	if _, ok := findByID(first, "overdue-7"); !ok {
		t.Error("missing overdue-7")
	}
	if _, ok := findByID(first, "tenant-3"); !ok {
		t.Error("missing tenant-3")
	}
}

func TestFetchNotificationsLogoutQuiescence(t *testing.T) {
	f := &mockFetcher{}
	e := NewEngine(Config{
		Fetcher: f,
		Token:   func() string { return "" },
	})
	e.now = func() time.Time { return fixedNow }

	var broadcast [][]model.Notification
	e.AddListener(func(list []model.Notification) {
		broadcast = append(broadcast, list)
	})

	list := e.FetchNotifications(context.Background())

	if len(list) != 0 {
		t.Errorf("got %d notifications, want 0", len(list))
	}
	if f.callCount() != 0 {
		t.Errorf("fetcher was called %d times, want 0", f.callCount())
	}
	if len(broadcast) != 1 || len(broadcast[0]) != 0 {
		t.Errorf("listeners must be notified with the cleared list, got %v", broadcast)
	}
}

func TestFetchNotificationsSourceFailureDegrades(t *testing.T) {
	f := &mockFetcher{
		billsErr: errors.New("bills endpoint down"),
		tenants: []model.Tenant{{
			ID:        5,
			FirstName: "Ada",
			LastName:  "Lovelace",
			EntryDate: model.NewDate(time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)),
		}},
	}
	e := newTestEngine(t, f)

	list := e.FetchNotifications(context.Background())

	if _, ok := findByID(list, "tenant-5"); !ok {
		t.Error("a failing bills fetch must not suppress tenant notifications")
	}
	if _, ok := findByID(list, "system-backup"); !ok {
		t.Error("system-backup must survive a source failure")
	}
}

func TestListenersInvokedInOrderAndUnsubscribe(t *testing.T) {
	e := newTestEngine(t, &mockFetcher{})

	var order []string
	e.AddListener(func([]model.Notification) { order = append(order, "first") })
	unsub := e.AddListener(func([]model.Notification) { order = append(order, "second") })
	e.AddListener(func([]model.Notification) { order = append(order, "third") })

	e.FetchNotifications(context.Background())
	want := []string{"first", "second", "third"}
	for i, w := range want {
		if order[i] != w {
			t.Fatalf("broadcast order = %v, want %v", order, want)
		}
	}

	order = nil
	unsub()
	e.FetchNotifications(context.Background())
	if len(order) != 2 || order[0] != "first" || order[1] != "third" {
		t.Errorf("after unsubscribe order = %v, want [first third]", order)
	}
}

func TestMarkAsReadPersistsAcrossEngines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "read.json")
	f := &mockFetcher{
		bills: []model.Bill{{
			ID:      1,
			Month:   "2024-01",
			DueDate: model.NewDate(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
			Status:  model.BillPending,
		}},
	}

	build := func() *Engine {
		e := NewEngine(Config{
			Fetcher: f,
			Token:   func() string { return "test-token" },
			Reads:   readstate.NewStoreWithPath(path),
		})
		e.now = func() time.Time { return fixedNow }
		return e
	}

	first := build()
	first.FetchNotifications(context.Background())
	first.MarkAsRead("overdue-1")

	second := build()
	list := second.FetchNotifications(context.Background())
	n, ok := findByID(list, "overdue-1")
	if !ok {
		t.Fatal("missing overdue-1")
	}
	if !n.Read {
		t.Error("read state must survive a new engine over the same store")
	}
}

func TestMarkAllAsRead(t *testing.T) {
	f := &mockFetcher{
		bills: []model.Bill{
			{ID: 1, Month: "2024-01", DueDate: model.NewDate(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)), Status: model.BillPending},
			{ID: 2, Month: "2024-01", DueDate: model.NewDate(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)), Status: model.BillPending},
		},
	}
	e := newTestEngine(t, f)
	e.FetchNotifications(context.Background())

	e.MarkAllAsRead()

	for _, n := range e.Notifications() {
		if !n.Read {
			t.Errorf("%s still unread after MarkAllAsRead", n.ID)
		}
	}
	if got := e.GetStats().Unread; got != 0 {
		t.Errorf("Unread = %d, want 0", got)
	}
}

func TestRemoveNotification(t *testing.T) {
	e := newTestEngine(t, &mockFetcher{})
	e.FetchNotifications(context.Background())

	if _, ok := findByID(e.Notifications(), "system-backup"); !ok {
		t.Fatal("expected system-backup in feed")
	}

	e.RemoveNotification("system-backup")

	if _, ok := findByID(e.Notifications(), "system-backup"); ok {
		t.Error("system-backup still present after removal")
	}
}

// recordingActions captures dispatched actions.
type recordingActions struct {
	navigated []string
	receipts  []int64
}

func (r *recordingActions) Navigate(section string, entityID int64) error {
	r.navigated = append(r.navigated, section)
	return nil
}

func (r *recordingActions) OpenReceipt(billID int64) error {
	r.receipts = append(r.receipts, billID)
	return nil
}

func TestExecuteAction(t *testing.T) {
	rec := &recordingActions{}
	f := &mockFetcher{
		bills: []model.Bill{{
			ID:      1,
			Month:   "2024-01",
			DueDate: model.NewDate(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
			Status:  model.BillPending,
		}},
	}
	e := NewEngine(Config{
		Fetcher: f,
		Token:   func() string { return "test-token" },
		Actions: rec,
	})
	e.now = func() time.Time { return fixedNow }

	list := e.FetchNotifications(context.Background())
	n, ok := findByID(list, "overdue-1")
	if !ok {
		t.Fatal("missing overdue-1")
	}

	e.ExecuteAction(n)

	if len(rec.navigated) != 1 || rec.navigated[0] != "bills" {
		t.Errorf("navigated = %v, want [bills]", rec.navigated)
	}
	got, _ := findByID(e.Notifications(), "overdue-1")
	if !got.Read {
		t.Error("executing an action must mark the notification read")
	}
}

func TestExecuteActionUnknownTypeIgnored(t *testing.T) {
	e := newTestEngine(t, &mockFetcher{})
	e.FetchNotifications(context.Background())

	n := model.Notification{
		ID:     "system-backup",
		Action: &model.Action{Type: "teleport"},
	}

	// Must not panic; unknown types are logged and the entry marked read.
	e.ExecuteAction(n)

	got, _ := findByID(e.Notifications(), "system-backup")
	if !got.Read {
		t.Error("notification should be read even for an unknown action type")
	}
}

func TestCreateNotificationDefaults(t *testing.T) {
	e := newTestEngine(t, &mockFetcher{})
	e.FetchNotifications(context.Background())

	created := e.CreateNotification(model.Notification{
		Title:   "Relevé annuel",
		Message: "Le relevé annuel est disponible",
	})

	if !strings.HasPrefix(created.ID, "custom-") {
		t.Errorf("ID = %q, want custom- prefix", created.ID)
	}
	if created.Type != model.NotifyCustom {
		t.Errorf("Type = %s, want custom", created.Type)
	}
	if created.Priority != model.PriorityMedium {
		t.Errorf("Priority = %s, want medium", created.Priority)
	}
	if !created.Timestamp.Equal(fixedNow) {
		t.Errorf("Timestamp = %v, want pinned now", created.Timestamp)
	}
	if created.Read {
		t.Error("created notifications start unread")
	}

	list := e.Notifications()
	if list[0].ID != created.ID {
		t.Error("created notification must be prepended")
	}
}

func TestGetStats(t *testing.T) {
	f := &mockFetcher{
		bills: []model.Bill{{
			ID:      1,
			Month:   "2024-01",
			DueDate: model.NewDate(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
			Status:  model.BillPending,
		}},
	}
	e := newTestEngine(t, f)
	e.FetchNotifications(context.Background())
	e.MarkAsRead("system-backup")

	stats := e.GetStats()
	if stats.Total != 2 {
		t.Errorf("Total = %d, want 2", stats.Total)
	}
	if stats.Unread != 1 {
		t.Errorf("Unread = %d, want 1", stats.Unread)
	}
	if stats.ByType[model.NotifyOverdue] != 1 || stats.ByType[model.NotifySystem] != 1 {
		t.Errorf("ByType = %v", stats.ByType)
	}
	if stats.ByPriority[model.PriorityHigh] != 1 {
		t.Errorf("ByPriority = %v", stats.ByPriority)
	}
	if !stats.LastUpdated.Equal(fixedNow) {
		t.Errorf("LastUpdated = %v, want pinned now", stats.LastUpdated)
	}
}

func TestStartPollingIdempotent(t *testing.T) {
	e := newTestEngine(t, &mockFetcher{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	e.StartPolling(ctx, time.Hour)
	e.StartPolling(ctx, time.Hour)

	if !e.Polling() {
		t.Error("engine should be polling after StartPolling")
	}

	e.StopPolling()
	if e.Polling() {
		t.Error("engine should not be polling after StopPolling")
	}
	e.StopPolling()
}
