// Package extraction wraps the vision-model boundary: calling the service,
// repairing its output, and normalizing the loosely-typed result into a
// complete invoice draft.
package extraction

// Payload is the shape the extraction model is asked to return. Every field
// is optional; nothing about the structure is trusted until Normalize has
// coerced it field by field.
type Payload struct {
	IssueDate         *string       `json:"issueDate"`
	Buyer             *PartyPayload `json:"buyer"`
	Items             []ItemPayload `json:"items"`
	BillingType       *string       `json:"billingType"`
	TotalSupplyAmount *float64      `json:"totalSupplyAmount"`
	TotalVatAmount    *float64      `json:"totalVatAmount"`
	TotalAmount       *float64      `json:"totalAmount"`
	Confidence        *float64      `json:"confidence"`
}

type PartyPayload struct {
	BizNo   *string `json:"bizNo"`
	Name    *string `json:"name"`
	CeoName *string `json:"ceoName"`
	Address *string `json:"address"`
	Email   *string `json:"email"`
}

type ItemPayload struct {
	Name         *string  `json:"name"`
	Spec         *string  `json:"spec"`
	Qty          *float64 `json:"qty"`
	UnitPrice    *float64 `json:"unitPrice"`
	SupplyAmount *float64 `json:"supplyAmount"`
	VatAmount    *float64 `json:"vatAmount"`
}
