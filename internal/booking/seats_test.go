package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeatSelections_TotalPrice(t *testing.T) {
	seats := make(SeatSelections)
	seats.Add("seg_1", SeatSelection{SeatID: "s1", Designator: "12A", Price: 12.50})
	seats.Add("seg_2", SeatSelection{SeatID: "s2", Designator: "14C"}) // free seat
	seats.Add("seg_3", SeatSelection{SeatID: "s3", Designator: "2F", Price: 8})

	assert.InDelta(t, 20.50, seats.TotalPrice(), 0.001)
}

func TestSeatSelections_AddReplaces(t *testing.T) {
	seats := make(SeatSelections)
	seats.Add("seg_1", SeatSelection{SeatID: "s1", Designator: "12A", Price: 10})
	seats.Add("seg_1", SeatSelection{SeatID: "s2", Designator: "15B", Price: 5})

	seat, ok := seats.Get("seg_1")
	require.True(t, ok)
	assert.Equal(t, "15B", seat.Designator)
	assert.InDelta(t, 5, seats.TotalPrice(), 0.001)
}

func TestSeatSelections_Remove(t *testing.T) {
	seats := make(SeatSelections)
	seats.Add("seg_1", SeatSelection{SeatID: "s1", Price: 10})
	seats.Remove("seg_1")
	seats.Remove("seg_missing") // no-op

	_, ok := seats.Get("seg_1")
	assert.False(t, ok)
	assert.Zero(t, seats.TotalPrice())
}

func TestSeatSelections_Services(t *testing.T) {
	seats := make(SeatSelections)
	seats.Add("seg_1", SeatSelection{SeatID: "s1", Designator: "12A", Price: 12.5})

	services := seats.Services()
	require.Len(t, services, 1)
	assert.Equal(t, "seg_1", services[0].SegmentID)
	assert.Equal(t, "s1", services[0].SeatID)
	assert.Equal(t, "12A", services[0].Designator)
	assert.Equal(t, "12.50", services[0].Amount)
}

func TestSeatSelections_ServicesEmpty(t *testing.T) {
	assert.Nil(t, make(SeatSelections).Services())
}
