package extraction

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"taxmate-backend/models"
)

// Normalize assembles a complete InvoiceDraft from an extraction payload.
// Missing top-level fields fall back to the empty-draft template; the
// supplier is always the stored profile, never the payload's idea of it
// (extraction cannot be trusted for the user's own identity). The caller
// must run the draft through ValidateDraft before using it.
func Normalize(p *Payload, supplier models.Party, fileName string) models.InvoiceDraft {
	draft := models.EmptyDraft(uuid.NewString(), supplier)
	draft.OriginalFileName = fileName

	if p == nil {
		return draft
	}

	if p.IssueDate != nil && *p.IssueDate != "" {
		draft.IssueDate = p.IssueDate
	}

	if p.Buyer != nil {
		draft.Buyer = models.Party{
			BizNo:   p.Buyer.BizNo,
			Name:    p.Buyer.Name,
			CeoName: p.Buyer.CeoName,
			Address: p.Buyer.Address,
			Email:   p.Buyer.Email,
		}
	}

	if p.BillingType != nil &&
		(*p.BillingType == models.BillingCharge || *p.BillingType == models.BillingReceipt) {
		draft.BillingType = *p.BillingType
	}

	// Item ids are positional and assigned here; an extracted zero stays a
	// zero, only an absent field becomes nil.
	draft.Items = make([]models.LineItem, 0, len(p.Items))
	for i, it := range p.Items {
		draft.Items = append(draft.Items, models.LineItem{
			ID:           fmt.Sprintf("%d", i),
			Name:         it.Name,
			Spec:         it.Spec,
			Qty:          it.Qty,
			UnitPrice:    toWon(it.UnitPrice),
			SupplyAmount: toWon(it.SupplyAmount),
			VatAmount:    toWon(it.VatAmount),
		})
	}

	draft.TotalSupplyAmount = wonOrZero(p.TotalSupplyAmount)
	draft.TotalVatAmount = wonOrZero(p.TotalVatAmount)
	draft.TotalAmount = wonOrZero(p.TotalAmount)

	if p.Confidence != nil {
		draft.Confidence = math.Max(0, math.Min(1, *p.Confidence))
	}

	return draft
}

func toWon(v *float64) *int64 {
	if v == nil {
		return nil
	}
	w := int64(math.Floor(*v))
	return &w
}

func wonOrZero(v *float64) int64 {
	if v == nil {
		return 0
	}
	return int64(math.Floor(*v))
}
