// Package rotation merges a content sequence with promotional placements at
// fixed intervals. The interleave is deterministic and stateless across
// calls; all bookkeeping lives inside one invocation.
package rotation

import "plaza-ads/internal/core/domain"

// Interval is the number of content items between promotion boundaries.
const Interval = 10

// Interleave walks events in order and, after every Interval-th item,
// attempts to insert one promotion chosen round-robin from promotions. No
// promotion is placed after the final content item even when it lands on a
// boundary.
//
// Each promotion id is inserted at most once per call: when the round-robin
// cursor lands on an already-used promotion the cursor still advances but
// the boundary stays empty. With a single promotion this means it appears
// once, at the first boundary, and later boundaries show nothing. That
// scarcity is intended: a listing pass should not repeat the same placement.
//
// Positions on promotion slots count preceding content items, not merged
// array indices, because that value is what tracking records persist.
func Interleave(events []domain.Event, promotions []domain.Promotion) []domain.PlacementSlot {
	slots := make([]domain.PlacementSlot, 0, len(events)+len(events)/Interval)

	cursor := 0
	used := make(map[string]struct{}, len(promotions))

	for i := range events {
		slots = append(slots, domain.PlacementSlot{
			Type:     domain.SlotContent,
			Event:    &events[i],
			Position: i,
		})

		after := i + 1
		if len(promotions) == 0 || after%Interval != 0 || after >= len(events) {
			continue
		}

		candidate := &promotions[cursor%len(promotions)]
		cursor++
		if _, ok := used[candidate.ID]; ok {
			// No retry at this boundary.
			continue
		}
		used[candidate.ID] = struct{}{}
		slots = append(slots, domain.PlacementSlot{
			Type:      domain.SlotPromotion,
			Promotion: candidate,
			Position:  after,
		})
	}
	return slots
}
