package apiclient

import (
	"context"

	"github.com/gestloc/gestloc/internal/model"
)

// Fetcher defines the backend operations the data cache and notification
// engine depend on. The interface enables mocking the backend in unit tests.
type Fetcher interface {
	ListProperties(ctx context.Context) ([]model.Property, error)
	ListTenants(ctx context.Context) ([]model.Tenant, error)
	ListBills(ctx context.Context, filters BillFilters) ([]model.Bill, error)
	BillsStats(ctx context.Context) (*model.BillsStats, error)
	ListExpenses(ctx context.Context) ([]model.Expense, error)
	PropertyPhotos(ctx context.Context, propertyID int64) ([]model.Photo, error)
}

// Ensure Client implements the Fetcher interface.
var _ Fetcher = (*Client)(nil)
