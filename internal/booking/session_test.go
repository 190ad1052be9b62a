package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionStores(t *testing.T) map[string]SessionStore {
	t.Helper()
	return map[string]SessionStore{
		"memory": NewMemorySessionStore(),
		"redis":  NewRedisSessionStore(newMemCache(), 30*time.Minute),
	}
}

func TestSessionStore_AbsentKeysReturnNil(t *testing.T) {
	for name, store := range sessionStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			info, err := store.GetFlightInfo(ctx, "missing")
			require.NoError(t, err)
			assert.Nil(t, info)

			counts, err := store.GetPassengerCounts(ctx, "missing")
			require.NoError(t, err)
			assert.Nil(t, counts)

			forms, err := store.GetPassengers(ctx, "missing")
			require.NoError(t, err)
			assert.Nil(t, forms)

			orderID, err := store.GetOrderID(ctx, "missing")
			require.NoError(t, err)
			assert.Empty(t, orderID)

			ref, err := store.GetBookingReference(ctx, "missing")
			require.NoError(t, err)
			assert.Empty(t, ref)
		})
	}
}

func TestSessionStore_FlightInfoSnapshotIsSelfConsistent(t *testing.T) {
	for name, store := range sessionStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			offer := &Offer{ID: "off_1", TotalAmount: 420, Currency: "USD"}

			err := store.SetFlightInfo(ctx, "sess_1", &FlightInfo{
				OutboundOfferID: "off_1",
				OutboundOffer:   offer,
				CabinClass:      "economy",
			})
			require.NoError(t, err)

			info, err := store.GetFlightInfo(ctx, "sess_1")
			require.NoError(t, err)
			require.NotNil(t, info)

			// An id is never observable without its offer body.
			assert.Equal(t, "off_1", info.OutboundOfferID)
			require.NotNil(t, info.OutboundOffer)
			assert.Equal(t, "off_1", info.OutboundOffer.ID)
		})
	}
}

func TestSessionStore_KeysAreIndependent(t *testing.T) {
	for name, store := range sessionStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			require.NoError(t, store.SetPassengerCounts(ctx, "sess_1", &PassengerCounts{Adults: 2}))
			require.NoError(t, store.SetOrderID(ctx, "sess_1", "ord_1"))

			counts, err := store.GetPassengerCounts(ctx, "sess_1")
			require.NoError(t, err)
			assert.Equal(t, 2, counts.Adults)

			orderID, err := store.GetOrderID(ctx, "sess_1")
			require.NoError(t, err)
			assert.Equal(t, "ord_1", orderID)

			// The flight key was never written and stays absent.
			info, err := store.GetFlightInfo(ctx, "sess_1")
			require.NoError(t, err)
			assert.Nil(t, info)
		})
	}
}

func TestSessionStore_LastWriteWins(t *testing.T) {
	for name, store := range sessionStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			seats := SeatSelections{"seg_1": {SeatID: "s1", Price: 10}}
			require.NoError(t, store.SetSeatSelections(ctx, "sess_1", seats))

			seats = SeatSelections{"seg_1": {SeatID: "s2", Price: 20}}
			require.NoError(t, store.SetSeatSelections(ctx, "sess_1", seats))

			got, err := store.GetSeatSelections(ctx, "sess_1")
			require.NoError(t, err)
			seat, ok := got.Get("seg_1")
			require.True(t, ok)
			assert.Equal(t, "s2", seat.SeatID)
		})
	}
}

func TestSessionStore_BookingReference(t *testing.T) {
	for name, store := range sessionStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			require.NoError(t, store.SetBookingData(ctx, "sess_1", &BookingData{
				OrderID:          "ord_1",
				BookingReference: "ABC123",
				TotalAmount:      420,
				Currency:         "USD",
			}))

			ref, err := store.GetBookingReference(ctx, "sess_1")
			require.NoError(t, err)
			assert.Equal(t, "ABC123", ref)
		})
	}
}

func TestSessionStore_SessionsAreIsolated(t *testing.T) {
	for name, store := range sessionStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			require.NoError(t, store.SetOrderID(ctx, "sess_1", "ord_1"))

			orderID, err := store.GetOrderID(ctx, "sess_2")
			require.NoError(t, err)
			assert.Empty(t, orderID)
		})
	}
}
