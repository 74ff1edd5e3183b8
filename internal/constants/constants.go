// Package constants provides a centralized location for configuration
// values and magic numbers used throughout the gestloc application.
package constants

import "time"

// Cache and scheduling constants
const (
	// ListCacheTTL is the maximum age of a cached resource list before a
	// fetch goes back to the network.
	ListCacheTTL = 5 * time.Minute

	// AutoRefreshInterval is the default period of the data-cache
	// background refresh loop.
	AutoRefreshInterval = 2 * time.Minute

	// PollInterval is the default period of the notification poll loop.
	PollInterval = 30 * time.Second

	// RequestTimeout bounds a single backend HTTP request.
	RequestTimeout = 15 * time.Second
)

// Notification derivation windows and thresholds
const (
	// NewTenantWindow is how far back a tenant entry date still counts
	// as a new arrival.
	NewTenantWindow = 3 * 24 * time.Hour

	// RecentPaymentWindow is how far back a paid bill still produces a
	// payment notification.
	RecentPaymentWindow = 24 * time.Hour

	// DueSoonHighDays and DueSoonMediumDays are the day thresholds of
	// the bill priority cascade.
	DueSoonHighDays   = 3
	DueSoonMediumDays = 7

	// MaxMaintenanceNotifications caps the simulated maintenance sample
	// per poll cycle.
	MaxMaintenanceNotifications = 2
)

// Backend path constants
const (
	// UploadsPrefix is the path under which the backend serves uploaded
	// files.
	UploadsPrefix = "/uploads/"
)
