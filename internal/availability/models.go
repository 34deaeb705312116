package availability

// AggregatedSlot is a slot offered by every experience in a selection.
// Available is the minimum remaining capacity across those experiences, so a
// party that fits the aggregate fits each experience individually. Capacity
// and Booked come from the most constrained experience for that slot.
type AggregatedSlot struct {
	Date      string `json:"date"`
	Time      string `json:"time"`
	Capacity  int    `json:"capacity"`
	Booked    int    `json:"booked"`
	Available int    `json:"available"`
}

// Key identifies the slot within a venue's schedule.
func (s AggregatedSlot) Key() string {
	return s.Date + "||" + s.Time
}
