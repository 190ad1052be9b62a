package booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"airbook/pkg/airapi"
)

func newTestRouter(api AirClient) (*gin.Engine, SessionStore) {
	gin.SetMode(gin.TestMode)
	store := NewMemorySessionStore()
	svc := NewService(api, newMemCache(), store, nil, &stubGen{}, testMetrics, 30, testLogger())
	r := gin.New()
	NewBookingHandler(svc).RegisterRoutes(r)
	return r, store
}

func doRequest(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var parsed map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	}
	return w, parsed
}

func TestSearchHandler_ValidationErrorIs400(t *testing.T) {
	r, _ := newTestRouter(&fakeAirClient{})

	w, body := doRequest(t, r, http.MethodPost, "/v1/flights/search",
		`{"origin":"MCO","adults":1}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION", body["code"])
	assert.Contains(t, body["error"], "destination")
}

func TestSearchHandler_OK(t *testing.T) {
	api := &fakeAirClient{
		searchOffersFn: func(ctx context.Context, req airapi.OfferRequest) (*airapi.OfferCollection, error) {
			return &airapi.OfferCollection{ID: "orq_1", Offers: []airapi.Offer{{ID: "off_1", TotalAmount: "100.00"}}}, nil
		},
	}
	r, _ := newTestRouter(api)

	w, body := doRequest(t, r, http.MethodPost, "/v1/flights/search",
		`{"origin":"MCO","destination":"SFO","departure_date":"2026-09-10","adults":1}`)

	require.Equal(t, http.StatusOK, w.Code)
	offers := body["offers"].([]any)
	assert.Len(t, offers, 1)
}

func TestSubmitOrderHandler_ReconciliationStateInBody(t *testing.T) {
	api := &fakeAirClient{
		getOfferFn: func(ctx context.Context, id string) (*airapi.Offer, error) {
			return &airapi.Offer{ID: id, TotalAmount: "400.00", TotalCurrency: "USD"}, nil
		},
		createOrderFn: func(ctx context.Context, req airapi.OrderRequest) (*airapi.Order, error) {
			return nil, &airapi.UpstreamError{
				StatusCode:      500,
				Code:            "order_creation_failed",
				PaymentIntentID: "pit_1",
			}
		},
	}
	r, store := newTestRouter(api)

	w, body := doRequest(t, r, http.MethodPost, "/v1/sessions", `{"outbound_offer_id":"off_1"}`)
	require.Equal(t, http.StatusOK, w.Code)
	sessionID := body["session_id"].(string)

	require.NoError(t, store.SetPassengers(context.Background(), sessionID, []PassengerForm{
		{GivenName: "Ada", FamilyName: "Lovelace", Type: "adult"},
	}))

	w, body = doRequest(t, r, http.MethodPost, "/v1/sessions/"+sessionID+"/order", "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "RECONCILIATION_REQUIRED", body["state"])
	assert.Equal(t, "RECONCILIATION_REQUIRED", body["code"])
}

func TestLookupBookingHandler_NotFound(t *testing.T) {
	r, _ := newTestRouter(&fakeAirClient{})

	w, _ := doRequest(t, r, http.MethodGet, "/v1/orders/NOPE", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
