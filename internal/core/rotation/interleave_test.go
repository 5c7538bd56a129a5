package rotation

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"plaza-ads/internal/core/domain"
)

func makeEvents(n int) []domain.Event {
	events := make([]domain.Event, n)
	for i := range events {
		events[i] = domain.Event{ID: fmt.Sprintf("e%d", i), Title: fmt.Sprintf("Event %d", i)}
	}
	return events
}

func makePromotions(n int) []domain.Promotion {
	promos := make([]domain.Promotion, n)
	for i := range promos {
		promos[i] = domain.Promotion{ID: fmt.Sprintf("p%d", i+1), Headline: fmt.Sprintf("Promo %d", i+1)}
	}
	return promos
}

func promoPositions(slots []domain.PlacementSlot) map[int]string {
	out := map[int]string{}
	for _, s := range slots {
		if s.Type == domain.SlotPromotion {
			out[s.Position] = s.Promotion.ID
		}
	}
	return out
}

func TestInterleaveNoPromotions(t *testing.T) {
	events := makeEvents(15)
	slots := Interleave(events, nil)

	require.Len(t, slots, 15)
	for i, s := range slots {
		require.Equal(t, domain.SlotContent, s.Type)
		require.Equal(t, events[i].ID, s.Event.ID)
		require.Equal(t, i, s.Position)
	}
}

func TestInterleaveEmptyContent(t *testing.T) {
	slots := Interleave(nil, makePromotions(3))
	require.Empty(t, slots)
}

func TestInterleaveBoundaries(t *testing.T) {
	// 25 items: boundaries at 10 and 20; 25 is never a boundary because
	// there is no content after it.
	slots := Interleave(makeEvents(25), makePromotions(5))

	positions := promoPositions(slots)
	require.Len(t, positions, 2)
	require.Contains(t, positions, 10)
	require.Contains(t, positions, 20)
}

func TestInterleaveShortContent(t *testing.T) {
	// A boundary at 10 needs more content after it, so ten items or fewer
	// never show a promotion.
	for _, n := range []int{0, 1, 9, 10} {
		slots := Interleave(makeEvents(n), makePromotions(2))
		require.Len(t, slots, n, "content length %d", n)
	}
}

func TestInterleaveSinglePromotionScarcity(t *testing.T) {
	slots := Interleave(makeEvents(35), makePromotions(1))

	positions := promoPositions(slots)
	require.Equal(t, map[int]string{10: "p1"}, positions,
		"a lone promotion appears once, at the first boundary only")
}

func TestInterleaveRoundRobinDistinct(t *testing.T) {
	// 45 items give boundaries at 10, 20, 30 and 40. With three
	// promotions the fourth boundary wraps the cursor back onto an
	// already-used id and stays empty.
	slots := Interleave(makeEvents(45), makePromotions(3))

	positions := promoPositions(slots)
	require.Equal(t, map[int]string{10: "p1", 20: "p2", 30: "p3"}, positions)

	seen := map[string]int{}
	for _, id := range positions {
		seen[id]++
	}
	for id, n := range seen {
		require.Equal(t, 1, n, "promotion %s inserted more than once", id)
	}
}

func TestInterleaveEndToEnd(t *testing.T) {
	events := makeEvents(22)
	slots := Interleave(events, makePromotions(2))

	require.Len(t, slots, 24)

	// content 0..9, P1, content 10..19, P2, content 20..21
	for i := 0; i < 10; i++ {
		require.Equal(t, domain.SlotContent, slots[i].Type)
		require.Equal(t, events[i].ID, slots[i].Event.ID)
	}
	require.Equal(t, domain.SlotPromotion, slots[10].Type)
	require.Equal(t, "p1", slots[10].Promotion.ID)
	require.Equal(t, 10, slots[10].Position)

	for i := 11; i < 21; i++ {
		require.Equal(t, domain.SlotContent, slots[i].Type)
		require.Equal(t, events[i-1].ID, slots[i].Event.ID)
		require.Equal(t, i-1, slots[i].Position)
	}
	require.Equal(t, domain.SlotPromotion, slots[21].Type)
	require.Equal(t, "p2", slots[21].Promotion.ID)
	require.Equal(t, 20, slots[21].Position)

	require.Equal(t, events[20].ID, slots[22].Event.ID)
	require.Equal(t, events[21].ID, slots[23].Event.ID)
}
