package domain

// SlotType tags one entry of a merged placement sequence.
type SlotType string

const (
	SlotContent   SlotType = "content"
	SlotPromotion SlotType = "promotion"
)

// PlacementSlot is one position in the rendered, merged sequence. It is
// derived fresh on every interleave call and never persisted. Position is
// content-relative: for a content slot it is the item's index in the
// original content sequence, for a promotion slot it is the number of
// content items preceding it. Tracking records persist this value, so it
// must not reflect the merged-array index.
type PlacementSlot struct {
	Type      SlotType
	Event     *Event
	Promotion *Promotion
	Position  int
}
