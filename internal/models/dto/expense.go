package dto

// ExpenseRequest is the payload for both create and full-field update.
// Amount is deliberately loose: clients send numbers or strings and
// unparseable values coerce to zero rather than failing the request.
type ExpenseRequest struct {
	Type        string `json:"type"`
	Amount      any    `json:"amount"`
	Category    string `json:"category"`
	Date        string `json:"date"`
	Description string `json:"description"`
}
