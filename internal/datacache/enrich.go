package datacache

import (
	"strings"
	"time"

	"github.com/gestloc/gestloc/internal/constants"
	"github.com/gestloc/gestloc/internal/format"
	"github.com/gestloc/gestloc/internal/model"
)

// Enrichment attaches derived presentation fields to raw backend records.
// These are pure functions of the record at fetch time; enriched values are
// never mutated afterwards.

func enrichProperty(p model.Property, photos []model.Photo) model.EnrichedProperty {
	name := p.Name
	if name == "" {
		name = p.Address
	}

	var parts []string
	if p.Address != "" {
		parts = append(parts, p.Address)
	}
	if p.PostalCode != "" || p.City != "" {
		parts = append(parts, strings.TrimSpace(p.PostalCode+" "+p.City))
	}

	return model.EnrichedProperty{
		Property:    p,
		DisplayName: name,
		FullAddress: strings.Join(parts, ", "),
		RentFmt:     format.EuroFR(p.Rent),
		StatusLabel: propertyStatusLabel(p.Status),
		CreatedFR:   format.DateFR(p.CreatedAt.Time),
		Photos:      photos,
	}
}

func propertyStatusLabel(s model.PropertyStatus) string {
	switch s {
	case model.PropertyAvailable:
		return "Disponible"
	case model.PropertyRented:
		return "Loué"
	case model.PropertyWorks:
		return "En travaux"
	default:
		return string(s)
	}
}

func enrichTenant(t model.Tenant) model.EnrichedTenant {
	active := t.Status == model.TenantActive

	label := "Parti"
	if active {
		label = "Actif"
	}

	return model.EnrichedTenant{
		Tenant:      t,
		FullName:    strings.TrimSpace(t.FirstName + " " + t.LastName),
		Active:      active,
		StatusLabel: label,
		EntryFR:     format.DateFR(t.EntryDate.Time),
		RentFmt:     format.EuroFR(t.Rent),
	}
}

func enrichBill(b model.Bill, now time.Time) model.EnrichedBill {
	days := format.DaysUntilDue(b.DueDate.Time, now)
	overdue := b.Status != model.BillPaid && days < 0

	return model.EnrichedBill{
		Bill:         b,
		AmountFmt:    format.EuroFR(b.Amount),
		DueDateFR:    format.DateFR(b.DueDate.Time),
		StatusLabel:  billStatusLabel(b.Status, overdue),
		Overdue:      overdue,
		DaysUntilDue: days,
		Priority:     billPriority(b.Status, days),
	}
}

// billPriority is a strict ordered cascade: a paid bill is low priority no
// matter how far past due it is.
func billPriority(status model.BillStatus, daysUntilDue int) model.BillPriority {
	switch {
	case status == model.BillPaid:
		return model.BillPriorityLow
	case daysUntilDue < 0:
		return model.BillPriorityCritical
	case daysUntilDue <= constants.DueSoonHighDays:
		return model.BillPriorityHigh
	case daysUntilDue <= constants.DueSoonMediumDays:
		return model.BillPriorityMedium
	default:
		return model.BillPriorityLow
	}
}

func billStatusLabel(status model.BillStatus, overdue bool) string {
	switch {
	case status == model.BillPaid:
		return "Payée"
	case status == model.BillCancelled:
		return "Annulée"
	case overdue:
		return "En retard"
	default:
		return "En attente"
	}
}

var expenseCategories = map[string]string{
	"repairs":     "Réparations",
	"maintenance": "Entretien",
	"insurance":   "Assurance",
	"taxes":       "Taxes",
	"utilities":   "Charges",
	"other":       "Autre",
}

func enrichExpense(e model.Expense) model.EnrichedExpense {
	label, ok := expenseCategories[strings.ToLower(e.Category)]
	if !ok {
		label = e.Category
	}

	return model.EnrichedExpense{
		Expense:       e,
		AmountFmt:     format.EuroFR(e.Amount),
		DateFR:        format.DateFR(e.Date.Time),
		CategoryLabel: label,
	}
}
