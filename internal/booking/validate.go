package booking

import "fmt"

// RoundTripMismatch is the advisory diagnostic produced when the selected
// return offer does not start where the outbound ends. It never blocks
// submission; the caller decides whether to proceed or restart the search.
type RoundTripMismatch struct {
	OutboundDestination Airport `json:"outbound_destination"`
	ReturnOrigin        Airport `json:"return_origin"`
}

func (m *RoundTripMismatch) Message() string {
	return fmt.Sprintf(
		"your outbound flight arrives at %s but your return flight departs from %s, which may be a different city",
		m.OutboundDestination.IATACode, m.ReturnOrigin.IATACode)
}

// ValidateRoundTrip compares the outbound offer's final arrival airport with
// the return offer's first departure airport. Returns nil when they serve the
// same city, or when the itinerary is one-way (ret == nil).
func ValidateRoundTrip(outbound, ret *Offer) *RoundTripMismatch {
	if outbound == nil || ret == nil {
		return nil
	}
	if len(outbound.Slices) == 0 || len(ret.Slices) == 0 {
		return nil
	}

	outSlice := outbound.Slices[0]
	retSlice := ret.Slices[0]
	if len(outSlice.Segments) == 0 || len(retSlice.Segments) == 0 {
		return nil
	}

	arrival := outSlice.Segments[len(outSlice.Segments)-1].Destination
	departure := retSlice.Segments[0].Origin

	if SameCity(arrival, departure) {
		return nil
	}
	return &RoundTripMismatch{OutboundDestination: arrival, ReturnOrigin: departure}
}
