package notify

import "github.com/gestloc/gestloc/internal/model"

// ActionHandler receives notification actions when the user acts on a feed
// entry. The engine dispatches and marks the notification read; what
// "navigate" or "open receipt" means is up to the consuming surface.
type ActionHandler interface {
	// Navigate opens a dashboard section, optionally focused on one record.
	Navigate(section string, entityID int64) error

	// OpenReceipt opens the rent receipt for a bill.
	OpenReceipt(billID int64) error
}

// NopActionHandler discards all actions. It is the default when no surface
// has registered a handler.
type NopActionHandler struct{}

func (NopActionHandler) Navigate(string, int64) error { return nil }
func (NopActionHandler) OpenReceipt(int64) error      { return nil }

var _ ActionHandler = NopActionHandler{}

func navigateAction(label, section string, entityID int64) *model.Action {
	return &model.Action{
		Type:     model.ActionNavigate,
		Label:    label,
		Section:  section,
		EntityID: entityID,
	}
}

func receiptAction(billID int64) *model.Action {
	return &model.Action{
		Type:   model.ActionOpenReceipt,
		Label:  "Voir la quittance",
		BillID: billID,
	}
}
