package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func offerWithRoute(segments ...[2]Airport) *Offer {
	slice := OfferSlice{}
	for _, pair := range segments {
		slice.Segments = append(slice.Segments, Segment{Origin: pair[0], Destination: pair[1]})
	}
	if len(slice.Segments) > 0 {
		slice.Origin = slice.Segments[0].Origin
		slice.Destination = slice.Segments[len(slice.Segments)-1].Destination
	}
	return &Offer{ID: "off_test", Slices: []OfferSlice{slice}}
}

func TestValidateRoundTrip_SameCityGroup(t *testing.T) {
	outbound := offerWithRoute([2]Airport{{IATACode: "JFK"}, {IATACode: "LHR"}})
	ret := offerWithRoute([2]Airport{{IATACode: "LGW"}, {IATACode: "JFK"}})

	// LHR and LGW are both in the LON group: no mismatch.
	assert.Nil(t, ValidateRoundTrip(outbound, ret))
}

func TestValidateRoundTrip_Mismatch(t *testing.T) {
	outbound := offerWithRoute([2]Airport{{IATACode: "JFK"}, {IATACode: "LHR"}})
	ret := offerWithRoute([2]Airport{{IATACode: "CDG"}, {IATACode: "JFK"}})

	mismatch := ValidateRoundTrip(outbound, ret)
	require.NotNil(t, mismatch)
	assert.Equal(t, "LHR", mismatch.OutboundDestination.IATACode)
	assert.Equal(t, "CDG", mismatch.ReturnOrigin.IATACode)
	assert.Contains(t, mismatch.Message(), "LHR")
	assert.Contains(t, mismatch.Message(), "CDG")
}

func TestValidateRoundTrip_UsesLastOutboundSegment(t *testing.T) {
	// Connection JFK->KEF->LHR: the final arrival is what matters.
	outbound := offerWithRoute(
		[2]Airport{{IATACode: "JFK"}, {IATACode: "KEF"}},
		[2]Airport{{IATACode: "KEF"}, {IATACode: "LHR"}},
	)
	ret := offerWithRoute([2]Airport{{IATACode: "LGW"}, {IATACode: "JFK"}})

	assert.Nil(t, ValidateRoundTrip(outbound, ret))
}

func TestValidateRoundTrip_SkippedForOneWay(t *testing.T) {
	outbound := offerWithRoute([2]Airport{{IATACode: "JFK"}, {IATACode: "LHR"}})
	assert.Nil(t, ValidateRoundTrip(outbound, nil))
}

func TestValidateRoundTrip_EmptySlicesTolerated(t *testing.T) {
	assert.Nil(t, ValidateRoundTrip(&Offer{}, &Offer{}))
}
