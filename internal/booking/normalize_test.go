package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"airbook/pkg/airapi"
)

func TestNormalizeOffer_FullOffer(t *testing.T) {
	raw := &airapi.Offer{
		ID:            "off_1",
		TotalAmount:   "842.40",
		TotalCurrency: "USD",
		BaseAmount:    "700.00",
		TaxAmount:     "142.40",
		Owner:         &airapi.Carrier{IATACode: "BA", Name: "British Airways"},
		Slices: []airapi.OfferSlice{{
			Origin:      &airapi.Place{IATACode: "JFK", CityName: "New York"},
			Destination: &airapi.Place{IATACode: "LHR", CityName: "London"},
			Segments: []airapi.Segment{{
				ID:                           "seg_1",
				Origin:                       &airapi.Place{IATACode: "JFK", CityName: "New York"},
				Destination:                  &airapi.Place{IATACode: "LHR", CityName: "London"},
				DepartingAt:                  "2025-04-28T18:30:00",
				ArrivingAt:                   "2025-04-29T06:25:00",
				Duration:                     "PT6H55M",
				OperatingCarrier:             &airapi.Carrier{IATACode: "BA", Name: "British Airways"},
				OperatingCarrierFlightNumber: "112",
			}},
		}},
	}

	offer := NormalizeOffer(raw)

	assert.Equal(t, "off_1", offer.ID)
	assert.InDelta(t, 842.40, offer.TotalAmount, 0.001)
	assert.InDelta(t, 700.00, offer.BaseAmount, 0.001)
	assert.InDelta(t, 142.40, offer.TaxAmount, 0.001)
	assert.Equal(t, "USD", offer.Currency)
	assert.Equal(t, "British Airways", offer.Owner)

	require.Len(t, offer.Slices, 1)
	require.Len(t, offer.Slices[0].Segments, 1)
	seg := offer.Slices[0].Segments[0]
	assert.Equal(t, "JFK", seg.Origin.IATACode)
	assert.Equal(t, "New York", seg.Origin.CityName)
	assert.Equal(t, "BA", seg.CarrierCode)
	assert.Equal(t, "112", seg.FlightNumber)
}

func TestNormalizeOffer_MissingNestedFields(t *testing.T) {
	raw := &airapi.Offer{
		ID: "off_sparse",
		Slices: []airapi.OfferSlice{{
			Segments: []airapi.Segment{{ID: "seg_1"}},
		}},
	}

	offer := NormalizeOffer(raw)

	// All nullable fields resolved; downstream code never nil-checks.
	assert.Zero(t, offer.TotalAmount)
	assert.Empty(t, offer.Owner)
	seg := offer.Slices[0].Segments[0]
	assert.Equal(t, Airport{}, seg.Origin)
	assert.Equal(t, Airport{}, seg.Destination)
	assert.Empty(t, seg.CarrierName)
}

func TestNormalizeOffer_UnparseableAmountIsZero(t *testing.T) {
	offer := NormalizeOffer(&airapi.Offer{ID: "off_1", TotalAmount: "not-a-number"})
	assert.Zero(t, offer.TotalAmount)
}

func TestNormalizeOffer_Nil(t *testing.T) {
	assert.Nil(t, NormalizeOffer(nil))
}
