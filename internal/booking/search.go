package booking

import (
	"encoding/json"
	"fmt"

	"airbook/pkg/airapi"
)

// BuildSearchCriteria validates raw search input and compiles it into a
// criteria with derived slices. Validation short-circuits on the first fatal
// failure; skipped multi-city segments are reported as warnings, fatal only
// when none survive.
func BuildSearchCriteria(raw SearchInput) (*SearchCriteria, []string, error) {
	if raw.Origin == "" || raw.Destination == "" || raw.DepartureDate == "" {
		missing := make([]string, 0, 3)
		if raw.Origin == "" {
			missing = append(missing, "origin")
		}
		if raw.Destination == "" {
			missing = append(missing, "destination")
		}
		if raw.DepartureDate == "" {
			missing = append(missing, "departure_date")
		}
		return nil, nil, NewValidationError(fmt.Sprintf("missing required fields: %v", missing))
	}

	tripType := raw.TripType
	if tripType == "" {
		tripType = TripOneWay
	}

	if tripType == TripReturn && raw.ReturnDate == "" {
		return nil, nil, NewValidationError("return trip requires return_date")
	}

	var warnings []string
	var segments []MultiCitySegment
	if tripType == TripMultiCity {
		segments, warnings = parseSegments(raw.RawSegments)
		if len(segments) == 0 {
			return nil, warnings, NewValidationError("multi-city trip requires at least one valid segment")
		}
	}

	counts := PassengerCounts{Adults: raw.Adults, Children: raw.Children, Infants: raw.Infants}
	if counts.Adults < 1 {
		return nil, warnings, NewValidationError("at least one adult is required")
	}
	if counts.Total() > maxPassengers {
		return nil, warnings, NewValidationError("total passengers cannot exceed 9")
	}
	if counts.Infants > counts.Adults {
		return nil, warnings, NewValidationError("infants cannot exceed adults")
	}

	criteria := &SearchCriteria{
		TripType:   tripType,
		Counts:     counts,
		CabinClass: raw.CabinClass,
		Segments:   segments,
	}
	criteria.Slices = buildSlices(raw, tripType, segments)

	return criteria, warnings, nil
}

func parseSegments(rawSegments []string) ([]MultiCitySegment, []string) {
	segments := make([]MultiCitySegment, 0, len(rawSegments))
	var warnings []string

	for i, rawSeg := range rawSegments {
		var seg MultiCitySegment
		if err := json.Unmarshal([]byte(rawSeg), &seg); err != nil {
			warnings = append(warnings, fmt.Sprintf("segment %d skipped: invalid JSON", i))
			continue
		}
		if seg.Origin == "" || seg.Destination == "" || seg.Date == "" {
			warnings = append(warnings, fmt.Sprintf("segment %d skipped: incomplete", i))
			continue
		}
		segments = append(segments, seg)
	}
	return segments, warnings
}

func buildSlices(raw SearchInput, tripType TripType, segments []MultiCitySegment) []Slice {
	switch tripType {
	case TripMultiCity:
		slices := make([]Slice, 0, len(segments))
		for _, seg := range segments {
			slices = append(slices, Slice{
				Origin:        seg.Origin,
				Destination:   seg.Destination,
				DepartureDate: seg.Date,
			})
		}
		return slices
	case TripReturn:
		return []Slice{
			{Origin: raw.Origin, Destination: raw.Destination, DepartureDate: raw.DepartureDate},
			// The return slice is derived by mirroring the outbound, never
			// validated independently.
			{Origin: raw.Destination, Destination: raw.Origin, DepartureDate: raw.ReturnDate},
		}
	default:
		return []Slice{
			{Origin: raw.Origin, Destination: raw.Destination, DepartureDate: raw.DepartureDate},
		}
	}
}

// SearchPassengers synthesizes the count-based passenger records for the
// search request. These placeholders are never reused for order creation.
func (c *SearchCriteria) SearchPassengers() []airapi.PassengerCount {
	passengers := make([]airapi.PassengerCount, 0, 3)
	if c.Counts.Adults > 0 {
		passengers = append(passengers, airapi.PassengerCount{Type: "adult", Count: c.Counts.Adults})
	}
	if c.Counts.Children > 0 {
		passengers = append(passengers, airapi.PassengerCount{Type: "child", Count: c.Counts.Children})
	}
	if c.Counts.Infants > 0 {
		passengers = append(passengers, airapi.PassengerCount{Type: "infant_without_seat", Count: c.Counts.Infants})
	}
	return passengers
}

// APISlices converts derived slices into their wire form.
func (c *SearchCriteria) APISlices() []airapi.Slice {
	slices := make([]airapi.Slice, 0, len(c.Slices))
	for _, s := range c.Slices {
		slices = append(slices, airapi.Slice(s))
	}
	return slices
}
