package notify

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/gestloc/gestloc/internal/constants"
	"github.com/gestloc/gestloc/internal/format"
	"github.com/gestloc/gestloc/internal/model"
)

// Derivation rules. Each rule is a pure function of the source records and
// the clock, and each derived notification gets a deterministic id built
// from the source record's id. That determinism is what lets read state
// survive the full-list replacement performed on every poll cycle; the
// simulated maintenance rule is the documented exception.

func deriveOverdue(bills []model.Bill, now time.Time) []model.Notification {
	var out []model.Notification
	for _, b := range bills {
		if b.Status == model.BillPaid {
			continue
		}
		days := format.DaysUntilDue(b.DueDate.Time, now)
		if days >= 0 {
			continue
		}
		out = append(out, model.Notification{
			ID:       fmt.Sprintf("overdue-%d", b.ID),
			Type:     model.NotifyOverdue,
			Priority: model.PriorityHigh,
			Title:    "Loyer en retard",
			Message: fmt.Sprintf("Le loyer de %s est en retard de %s",
				format.MonthFR(b.Month), format.Jours(-days)),
			Detail:    fmt.Sprintf("Montant dû : %s", format.EuroFR(b.Amount)),
			Timestamp: b.DueDate.Time,
			Action:    navigateAction("Voir la facture", "bills", b.ID),
			Icon:      "⚠",
			Color:     "red",
		})
	}
	return out
}

func deriveNewTenants(tenants []model.Tenant, now time.Time) []model.Notification {
	var out []model.Notification
	for _, t := range tenants {
		entry := t.EntryDate.Time
		if entry.IsZero() || entry.After(now) || now.Sub(entry) > constants.NewTenantWindow {
			continue
		}
		name := t.FirstName + " " + t.LastName
		out = append(out, model.Notification{
			ID:       fmt.Sprintf("tenant-%d", t.ID),
			Type:     model.NotifyNewTenant,
			Priority: model.PriorityMedium,
			Title:    "Nouveau locataire",
			Message: fmt.Sprintf("%s a emménagé le %s",
				name, format.DateFR(entry)),
			Timestamp: entry,
			Action:    navigateAction("Voir le locataire", "tenants", t.ID),
			Icon:      "👤",
			Color:     "blue",
		})
	}
	return out
}

func derivePayments(bills []model.Bill, now time.Time) []model.Notification {
	var out []model.Notification
	for _, b := range bills {
		if b.Status != model.BillPaid {
			continue
		}
		paidAt := b.PaidDate.Time
		if paidAt.IsZero() {
			paidAt = b.UpdatedAt.Time
		}
		if paidAt.IsZero() || now.Sub(paidAt) > constants.RecentPaymentWindow {
			continue
		}
		out = append(out, model.Notification{
			ID:       fmt.Sprintf("payment-%d", b.ID),
			Type:     model.NotifyPayment,
			Priority: model.PriorityLow,
			Title:    "Paiement reçu",
			Message: fmt.Sprintf("Paiement de %s reçu pour %s",
				format.EuroFR(b.Amount), format.MonthFR(b.Month)),
			Timestamp: paidAt,
			Action:    receiptAction(b.ID),
			Icon:      "✓",
			Color:     "green",
		})
	}
	return out
}

// deriveMaintenance samples random properties as placeholder maintenance
// signals. Ids are keyed by property so a sampled property keeps its id
// while it stays in the sample, but the sample itself changes every cycle.
func deriveMaintenance(properties []model.Property, rng *rand.Rand, now time.Time) []model.Notification {
	if len(properties) == 0 {
		return nil
	}

	picks := rng.Perm(len(properties))
	if len(picks) > constants.MaxMaintenanceNotifications {
		picks = picks[:constants.MaxMaintenanceNotifications]
	}

	var out []model.Notification
	for _, i := range picks {
		p := properties[i]
		name := p.Name
		if name == "" {
			name = p.Address
		}
		out = append(out, model.Notification{
			ID:        fmt.Sprintf("maintenance-%d", p.ID),
			Type:      model.NotifyMaintenance,
			Priority:  model.PriorityMedium,
			Title:     "Maintenance planifiée",
			Message:   fmt.Sprintf("Entretien à prévoir pour %s", name),
			Detail:    "Signal simulé",
			Timestamp: now,
			Action:    navigateAction("Voir le bien", "properties", p.ID),
			Icon:      "🔧",
			Color:     "yellow",
		})
	}
	return out
}

func systemBackup(now time.Time) model.Notification {
	return model.Notification{
		ID:        "system-backup",
		Type:      model.NotifySystem,
		Priority:  model.PriorityLow,
		Title:     "Sauvegarde",
		Message:   "Sauvegarde quotidienne effectuée",
		Timestamp: format.StartOfDay(now),
		Icon:      "💾",
		Color:     "gray",
	}
}
