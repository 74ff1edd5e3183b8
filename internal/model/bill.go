package model

// BillStatus represents the payment state of a bill.
type BillStatus string

const (
	BillPending   BillStatus = "PENDING"
	BillPaid      BillStatus = "PAID"
	BillCancelled BillStatus = "CANCELLED"
)

// BillPriority is the derived urgency of a bill. It is a strict ordered
// cascade computed at enrichment time, not a set of independent flags:
// paid bills are always low, whatever their due date.
type BillPriority string

const (
	BillPriorityLow      BillPriority = "low"
	BillPriorityMedium   BillPriority = "medium"
	BillPriorityHigh     BillPriority = "high"
	BillPriorityCritical BillPriority = "critical"
)

// Bill is a rent bill as returned by the backend.
type Bill struct {
	ID          int64      `json:"id"`
	TenantID    int64      `json:"tenant_id"`
	PropertyID  int64      `json:"property_id"`
	Amount      float64    `json:"amount"`
	Month       string     `json:"month"` // YYYY-MM
	DueDate     Date       `json:"due_date"`
	PaidDate    Date       `json:"paid_date"`
	Description string     `json:"description"`
	Status      BillStatus `json:"status"`
	UpdatedAt   Date       `json:"updated_at"`
}

// EnrichedBill is a Bill with derived presentation fields. Overdue and
// DaysUntilDue are computed on calendar days with time-of-day zeroed on
// both sides, so a bill due today is never overdue.
type EnrichedBill struct {
	Bill

	AmountFmt    string       `json:"amount_fmt"`
	DueDateFR    string       `json:"due_date_fr"`
	StatusLabel  string       `json:"status_label"`
	Overdue      bool         `json:"overdue"`
	DaysUntilDue int          `json:"days_until_due"`
	Priority     BillPriority `json:"priority"`
}

// BillsStats is the aggregate the backend computes over all bills.
type BillsStats struct {
	TotalBills    int     `json:"total_bills"`
	PendingCount  int     `json:"pending_count"`
	PaidCount     int     `json:"paid_count"`
	OverdueCount  int     `json:"overdue_count"`
	TotalAmount   float64 `json:"total_amount"`
	PendingAmount float64 `json:"pending_amount"`
	PaidAmount    float64 `json:"paid_amount"`
}

// NewBill is the pre-filled form state for creating a bill.
type NewBill struct {
	TenantID    int64      `json:"tenant_id"`
	PropertyID  int64      `json:"property_id"`
	Amount      float64    `json:"amount"`
	Month       string     `json:"month"`
	DueDate     Date       `json:"due_date"`
	Description string     `json:"description"`
	Status      BillStatus `json:"status"`
}

// Expense is a property expense as returned by the backend.
type Expense struct {
	ID         int64   `json:"id"`
	PropertyID int64   `json:"property_id"`
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
	Date       Date    `json:"date"`
	Notes      string  `json:"notes"`
}

// EnrichedExpense is an Expense with derived presentation fields.
type EnrichedExpense struct {
	Expense

	AmountFmt     string `json:"amount_fmt"`
	DateFR        string `json:"date_fr"`
	CategoryLabel string `json:"category_label"`
}
