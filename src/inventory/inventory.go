// Package inventory is a self-contained stock list for business users. It
// shares no logic with the transaction core.
package inventory

import "time"

// Stock status labels surfaced to the UI.
const (
	StatusInStock    = "in-stock"
	StatusLowStock   = "low-stock"
	StatusOutOfStock = "out-of-stock"
)

// Item is one tracked inventory entry. TotalValue and Status are derived
// from the stored fields on every read.
type Item struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Quantity    int       `json:"quantity"`
	MinQuantity int       `json:"minQuantity"`
	UnitPrice   float64   `json:"unitPrice"`
	TotalValue  float64   `json:"totalValue"`
	Supplier    string    `json:"supplier"`
	LastUpdated time.Time `json:"lastUpdated"`
	Status      string    `json:"status"`
}

// derive fills the computed fields from the stored ones.
func (i *Item) derive() {
	i.TotalValue = float64(i.Quantity) * i.UnitPrice
	switch {
	case i.Quantity == 0:
		i.Status = StatusOutOfStock
	case i.Quantity <= i.MinQuantity:
		i.Status = StatusLowStock
	default:
		i.Status = StatusInStock
	}
}
