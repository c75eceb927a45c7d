package models

// LineItem is one transaction line. SupplyAmount and VatAmount are derived
// from Qty × UnitPrice on user edits, but extraction may deliver them
// pre-computed, so they are stored rather than recomputed on read.
type LineItem struct {
	ID           string   `json:"id"` // stable within a draft, never reused
	Name         *string  `json:"name"`
	Spec         *string  `json:"spec"` // 규격, free text
	Qty          *float64 `json:"qty"`
	UnitPrice    *int64   `json:"unitPrice"`
	SupplyAmount *int64   `json:"supplyAmount"`
	VatAmount    *int64   `json:"vatAmount"`
}
