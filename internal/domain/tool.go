package domain

// Tool is a rentable item owned by exactly one user. Rental operations
// reference tools but never mutate them.
type Tool struct {
	ID              int32  `json:"id"`
	OwnerID         int32  `json:"owner_id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	Category        string `json:"category"`
	Metro           string `json:"metro"`
	DailyPriceCents int64  `json:"daily_price_cents"`
	DepositCents    int64  `json:"deposit_cents"`
	IsAvailable     bool   `json:"is_available"`
	CreatedOn       string `json:"created_on"`
}

// ToolAvailability is one calendar-day availability marker for a tool.
type ToolAvailability struct {
	ToolID      int32  `json:"tool_id"`
	Date        string `json:"date"`
	IsAvailable bool   `json:"is_available"`
}
