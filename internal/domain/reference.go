package domain

// Immutable reference data maintained by an administrative process.
// One category per employee and per booking (e.g. "Lawncare").
type ServiceCategory struct {
	CategoryID int
	Name       string
}

// One of the fixed daily appointment windows (e.g. "7:30-9:30").
//
// Ordinal is the slot's rank within the day and is what all
// earlier/later reasoning uses; the label is display text only.
type TimeSlot struct {
	SlotID  int
	Label   string
	Ordinal int
}
