package model

import "time"

// NotificationType classifies a feed entry by the signal it was derived from.
type NotificationType string

const (
	NotifyOverdue     NotificationType = "overdue"
	NotifyNewTenant   NotificationType = "new_tenant"
	NotifyPayment     NotificationType = "payment"
	NotifyMaintenance NotificationType = "maintenance"
	NotifySystem      NotificationType = "system"
	NotifyCustom      NotificationType = "custom"
)

// Priority orders notifications in the feed.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank returns the sort rank of a priority, lower sorting first.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

// ActionType identifies what a notification action does when executed.
type ActionType string

const (
	ActionNavigate    ActionType = "navigate"
	ActionOpenReceipt ActionType = "open_receipt"
)

// Action is an optional UI reaction attached to a notification.
type Action struct {
	Type    ActionType `json:"type"`
	Label   string     `json:"label"`
	Section string     `json:"section,omitempty"`
	BillID  int64      `json:"bill_id,omitempty"`
	// EntityID targets a specific record within the section, 0 for none.
	EntityID int64 `json:"entity_id,omitempty"`
}

// Notification is a synthetic feed entry derived from the bill, tenant and
// property collections. The ID is deterministic for entries derived from a
// source record (e.g. "overdue-12"), which is what lets read state survive
// the full-list replacement performed on every poll cycle.
type Notification struct {
	ID          string           `json:"id"`
	Type        NotificationType `json:"type"`
	Priority    Priority         `json:"priority"`
	Title       string           `json:"title"`
	Message     string           `json:"message"`
	Detail      string           `json:"detail,omitempty"`
	Timestamp   time.Time        `json:"timestamp"`
	TimestampFR string           `json:"timestamp_fr"`
	Action      *Action          `json:"action,omitempty"`
	Read        bool             `json:"read"`
	Icon        string           `json:"icon"`
	Color       string           `json:"color"`
}
