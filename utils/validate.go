package utils

import (
	"fmt"

	"taxmate-backend/models"
)

// ValidateDraft returns draft with Warnings replaced by a freshly computed
// list; no other field changes. Rules do not short-circuit, and their order
// is fixed so repeated runs produce an identical list.
func ValidateDraft(draft models.InvoiceDraft) models.InvoiceDraft {
	warnings := []models.Warning{}

	// Reported total vs item sum, with a 10-won tolerance for rounding slop.
	calcs := CalculateTotals(draft.Items)
	diff := draft.TotalAmount - calcs.TotalAmount
	if diff < 0 {
		diff = -diff
	}
	if diff > 10 {
		warnings = append(warnings, models.Warning{
			Code:      models.WarnTotalMismatch,
			Message:   "합계 금액이 품목 합계와 일치하지 않습니다.",
			FieldPath: "totalAmount",
		})
	}

	if draft.Buyer.Name == nil || *draft.Buyer.Name == "" {
		warnings = append(warnings, models.Warning{
			Code:      models.WarnMissingBuyerName,
			Message:   "거래처명이 없습니다.",
			FieldPath: "buyer.name",
		})
	}
	if draft.Buyer.BizNo == nil || *draft.Buyer.BizNo == "" {
		warnings = append(warnings, models.Warning{
			Code:      models.WarnMissingBizNo,
			Message:   "사업자번호가 없습니다.",
			FieldPath: "buyer.bizNo",
		})
	}

	if len(draft.Items) == 0 {
		warnings = append(warnings, models.Warning{
			Code:    models.WarnNoItems,
			Message: "품목이 없습니다.",
		})
	}

	// Buyer address, email and ceoName are optional; no warnings for those.
	for i, item := range draft.Items {
		if item.Name == nil || *item.Name == "" {
			warnings = append(warnings, models.Warning{
				Code:      models.WarnMissingItemName,
				Message:   fmt.Sprintf("%d번 품목명이 없습니다.", i+1),
				FieldPath: fmt.Sprintf("items[%d].name", i),
			})
		}
		if item.Qty == nil || *item.Qty <= 0 {
			warnings = append(warnings, models.Warning{
				Code:      models.WarnInvalidQty,
				Message:   fmt.Sprintf("%d번 수량을 확인해주세요.", i+1),
				FieldPath: fmt.Sprintf("items[%d].qty", i),
			})
		}
	}

	draft.Warnings = warnings
	return draft
}
