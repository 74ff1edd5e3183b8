// Package model contains domain types for the gestloc application.
// These types are independent of the backend beyond their JSON tags.
package model

// PropertyStatus represents the rental state of a property.
type PropertyStatus string

const (
	PropertyAvailable PropertyStatus = "AVAILABLE"
	PropertyRented    PropertyStatus = "RENTED"
	PropertyWorks     PropertyStatus = "WORKS"
)

// Property is a rental property as returned by the backend.
type Property struct {
	ID         int64          `json:"id"`
	Name       string         `json:"name"`
	Address    string         `json:"address"`
	City       string         `json:"city"`
	PostalCode string         `json:"postal_code"`
	Type       string         `json:"type"`
	Surface    float64        `json:"surface"`
	Rooms      int            `json:"rooms"`
	Rent       float64        `json:"rent"`
	Charges    float64        `json:"charges"`
	Status     PropertyStatus `json:"status"`
	CreatedAt  Date           `json:"created_at"`
}

// Photo is an uploaded property photo.
type Photo struct {
	ID         int64  `json:"id"`
	PropertyID int64  `json:"property_id"`
	URL        string `json:"url"`
	IsPrimary  bool   `json:"is_primary"`
}

// EnrichedProperty is a Property with derived presentation fields attached
// at fetch time. Enriched records are never mutated; a fresh fetch replaces
// the whole cached slice.
type EnrichedProperty struct {
	Property

	DisplayName string  `json:"display_name"`
	FullAddress string  `json:"full_address"`
	RentFmt     string  `json:"rent_fmt"`
	StatusLabel string  `json:"status_label"`
	CreatedFR   string  `json:"created_fr"`
	Photos      []Photo `json:"photos"`
}

// TenantStatus represents the lease state of a tenant.
type TenantStatus string

const (
	TenantActive TenantStatus = "ACTIVE"
	TenantLeft   TenantStatus = "LEFT"
)

// Tenant is a renter as returned by the backend.
type Tenant struct {
	ID         int64        `json:"id"`
	PropertyID int64        `json:"property_id"`
	FirstName  string       `json:"first_name"`
	LastName   string       `json:"last_name"`
	Email      string       `json:"email"`
	Phone      string       `json:"phone"`
	Rent       float64      `json:"rent"`
	Status     TenantStatus `json:"status"`
	EntryDate  Date         `json:"entry_date"`
	ExitDate   Date         `json:"exit_date"`
}

// EnrichedTenant is a Tenant with derived presentation fields.
type EnrichedTenant struct {
	Tenant

	FullName    string `json:"full_name"`
	Active      bool   `json:"active"`
	StatusLabel string `json:"status_label"`
	EntryFR     string `json:"entry_fr"`
	RentFmt     string `json:"rent_fmt"`
}
