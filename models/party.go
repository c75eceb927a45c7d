package models

// Party is a business entity: either the supplier (the user's own business,
// "내 정보") or the buyer being billed.
type Party struct {
	BizNo   *string `json:"bizNo"`   // 사업자등록번호, digits and hyphens
	Name    *string `json:"name"`    // 상호
	CeoName *string `json:"ceoName"` // 대표자
	Address *string `json:"address"`
	Email   *string `json:"email"`
}

// SameParty reports whether two parties refer to the same counterparty:
// by registration number when both have one, otherwise by name.
func SameParty(a, b Party) bool {
	if a.BizNo != nil && *a.BizNo != "" && b.BizNo != nil && *b.BizNo != "" {
		return *a.BizNo == *b.BizNo
	}
	if a.Name != nil && b.Name != nil {
		return *a.Name == *b.Name
	}
	return false
}
