package models

// Warning codes form a closed set; the editor keys field highlighting off
// FieldPath, so paths must match the draft's JSON shape exactly.
const (
	WarnTotalMismatch    = "TOTAL_MISMATCH"
	WarnMissingBuyerName = "MISSING_BUYER_NAME"
	WarnMissingBizNo     = "MISSING_BIZ_NO"
	WarnNoItems          = "NO_ITEMS"
	WarnMissingItemName  = "MISSING_ITEM_NAME"
	WarnInvalidQty       = "INVALID_QTY"
	WarnItemsTruncated   = "ITEMS_TRUNCATED_FOR_EXPORT"
)

// Warning is a recoverable data-quality defect attached to a draft. It never
// blocks saving, editing or export.
type Warning struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	FieldPath string `json:"fieldPath,omitempty"` // e.g. "buyer.name", "items[2].qty"
}
