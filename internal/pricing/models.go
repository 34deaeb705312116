package pricing

// Currency is the charge currency for a booking.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyLKR Currency = "LKR"
)

// USDToLKRRate is the fixed conversion rate applied when an experience has no
// explicit LKR price. All arithmetic stays in integer minor units.
const USDToLKRRate = 330

// GuestCounts is the party composition for a booking.
type GuestCounts struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
}

// Total returns the party size.
func (g GuestCounts) Total() int {
	return g.Adults + g.Children
}

// LineItem is the priced contribution of a single experience.
type LineItem struct {
	ExperienceID   string   `json:"experience_id"`
	ExperienceName string   `json:"experience_name"`
	AdultUnitCents int64    `json:"adult_unit_cents"`
	ChildUnitCents int64    `json:"child_unit_cents"`
	Adults         int      `json:"adults"`
	Children       int      `json:"children"`
	SubtotalCents  int64    `json:"subtotal_cents"`
	Currency       Currency `json:"currency"`
}

// Quote is the full price breakdown for a selection.
type Quote struct {
	Items      []LineItem `json:"items"`
	TotalCents int64      `json:"total_cents"`
	Currency   Currency   `json:"currency"`
}
