package utils

import (
	"math"

	"taxmate-backend/models"
)

// Totals are the three aggregate amounts of a draft, in won.
type Totals struct {
	TotalSupplyAmount int64 `json:"totalSupplyAmount"`
	TotalVatAmount    int64 `json:"totalVatAmount"`
	TotalAmount       int64 `json:"totalAmount"`
}

// CalculateTotals sums supply and VAT amounts over items, treating nil as 0.
// Pure; an empty list yields all zeros.
func CalculateTotals(items []models.LineItem) Totals {
	var supply, vat int64
	for _, item := range items {
		if item.SupplyAmount != nil {
			supply += *item.SupplyAmount
		}
		if item.VatAmount != nil {
			vat += *item.VatAmount
		}
	}
	return Totals{
		TotalSupplyAmount: supply,
		TotalVatAmount:    vat,
		TotalAmount:       supply + vat,
	}
}

// FloorVat computes the 10% VAT on a supply amount, floored to a whole won.
func FloorVat(supply int64) int64 {
	return int64(math.Floor(float64(supply) * 0.1))
}

// RecalculateItem rederives an item's supply and VAT amounts from quantity
// and unit price. Used on user edits; extraction-supplied amounts stay
// untouched until the user edits the item.
func RecalculateItem(item *models.LineItem) {
	var qty float64
	if item.Qty != nil {
		qty = *item.Qty
	}
	var price int64
	if item.UnitPrice != nil {
		price = *item.UnitPrice
	}
	supply := int64(math.Floor(qty * float64(price)))
	vat := FloorVat(supply)
	item.SupplyAmount = &supply
	item.VatAmount = &vat
}

// ApplyTotals writes freshly computed totals onto a draft.
func ApplyTotals(draft *models.InvoiceDraft) {
	t := CalculateTotals(draft.Items)
	draft.TotalSupplyAmount = t.TotalSupplyAmount
	draft.TotalVatAmount = t.TotalVatAmount
	draft.TotalAmount = t.TotalAmount
}
