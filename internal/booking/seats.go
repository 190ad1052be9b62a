package booking

import "airbook/pkg/airapi"

// SeatSelections tracks at most one seat per flight segment. Writes for
// different segments may land in any order; the last write for a given
// segment wins. Toggle (re-selecting the current seat to deselect) is a
// caller convention, not enforced here.
type SeatSelections map[string]SeatSelection

// Add records a selection for the segment, replacing any prior one.
func (s SeatSelections) Add(segmentID string, seat SeatSelection) {
	s[segmentID] = seat
}

// Remove drops the selection for the segment, if any.
func (s SeatSelections) Remove(segmentID string) {
	delete(s, segmentID)
}

// Get returns the selection and whether one exists.
func (s SeatSelections) Get(segmentID string) (SeatSelection, bool) {
	seat, ok := s[segmentID]
	return seat, ok
}

// TotalPrice sums the selection surcharges. A zero price is a free seat.
func (s SeatSelections) TotalPrice() float64 {
	var total float64
	for _, seat := range s {
		total += seat.Price
	}
	return total
}

// Services renders the selections in the order-creation wire form.
func (s SeatSelections) Services() []airapi.SeatService {
	if len(s) == 0 {
		return nil
	}
	services := make([]airapi.SeatService, 0, len(s))
	for segmentID, seat := range s {
		services = append(services, airapi.SeatService{
			SegmentID:  segmentID,
			SeatID:     seat.SeatID,
			Designator: seat.Designator,
			Amount:     formatAmount(seat.Price),
		})
	}
	return services
}
