package models

import "time"

// Billing type: whether the invoice bills an amount due or receipts a
// payment already made.
const (
	BillingCharge  = "청구" // bill later
	BillingReceipt = "영수" // payment received
)

// InvoiceDraft is the aggregate root: an in-progress, editable tax invoice
// prior to formal issuance via HomeTax.
type InvoiceDraft struct {
	ID        string  `json:"id"`
	IssueDate *string `json:"issueDate"` // YYYY-MM-DD

	Supplier Party `json:"supplier"` // always the user's own profile
	Buyer    Party `json:"buyer"`

	Items []LineItem `json:"items"` // entry order, drives export slot assignment

	BillingType string `json:"billingType"`

	TotalSupplyAmount int64 `json:"totalSupplyAmount"`
	TotalVatAmount    int64 `json:"totalVatAmount"`
	TotalAmount       int64 `json:"totalAmount"`

	Confidence float64   `json:"confidence"` // 0.0–1.0, informational only
	Warnings   []Warning `json:"warnings"`

	// Set only for drafts created from a captured document; this is the one
	// signal distinguishing AI-registered drafts from manual ones.
	OriginalFileName string `json:"originalFileName,omitempty"`
}

// EmptyDraft is the canonical template for a fresh draft: today's issue
// date, the stored profile as supplier, no buyer data, no items.
func EmptyDraft(id string, supplier Party) InvoiceDraft {
	today := time.Now().Format("2006-01-02")
	return InvoiceDraft{
		ID:          id,
		IssueDate:   &today,
		Supplier:    supplier,
		Buyer:       Party{},
		Items:       []LineItem{},
		BillingType: BillingCharge,
		Warnings:    []Warning{},
	}
}
