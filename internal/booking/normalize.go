package booking

import (
	"strconv"

	"airbook/pkg/airapi"
)

// NormalizeOffer converts a wire offer into the domain snapshot. All nullable
// nested fields are resolved here, in one pass, so business logic downstream
// never checks for missing fields.
func NormalizeOffer(raw *airapi.Offer) *Offer {
	if raw == nil {
		return nil
	}

	offer := &Offer{
		ID:                        raw.ID,
		TotalAmount:               parseAmount(raw.TotalAmount),
		BaseAmount:                parseAmount(raw.BaseAmount),
		TaxAmount:                 parseAmount(raw.TaxAmount),
		Currency:                  raw.TotalCurrency,
		IdentityDocumentsRequired: raw.PassengerIdentityDocumentsRequired,
		Slices:                    make([]OfferSlice, 0, len(raw.Slices)),
	}
	if raw.Owner != nil {
		offer.Owner = raw.Owner.Name
	}

	for _, rawSlice := range raw.Slices {
		slice := OfferSlice{
			Origin:      normalizePlace(rawSlice.Origin),
			Destination: normalizePlace(rawSlice.Destination),
			Segments:    make([]Segment, 0, len(rawSlice.Segments)),
		}
		for _, rawSeg := range rawSlice.Segments {
			seg := Segment{
				ID:           rawSeg.ID,
				Origin:       normalizePlace(rawSeg.Origin),
				Destination:  normalizePlace(rawSeg.Destination),
				DepartingAt:  rawSeg.DepartingAt,
				ArrivingAt:   rawSeg.ArrivingAt,
				Duration:     rawSeg.Duration,
				FlightNumber: rawSeg.OperatingCarrierFlightNumber,
			}
			if rawSeg.OperatingCarrier != nil {
				seg.CarrierName = rawSeg.OperatingCarrier.Name
				seg.CarrierCode = rawSeg.OperatingCarrier.IATACode
			}
			slice.Segments = append(slice.Segments, seg)
		}
		offer.Slices = append(offer.Slices, slice)
	}

	return offer
}

func normalizePlace(p *airapi.Place) Airport {
	if p == nil {
		return Airport{}
	}
	return Airport{IATACode: p.IATACode, CityName: p.CityName}
}

// parseAmount treats a missing or unparseable amount as zero; the upstream
// sends decimal strings.
func parseAmount(raw string) float64 {
	if raw == "" {
		return 0
	}
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return amount
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
