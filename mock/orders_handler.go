package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
)

type OrderRequestBody struct {
	Data struct {
		Type           string   `json:"type"`
		SelectedOffers []string `json:"selected_offers"`
		Passengers     []struct {
			GivenName  string `json:"given_name"`
			FamilyName string `json:"family_name"`
		} `json:"passengers"`
		Payments []struct {
			Type     string `json:"type"`
			Amount   string `json:"amount"`
			Currency string `json:"currency"`
		} `json:"payments"`
	} `json:"data"`
}

// OrderHandler creates orders. Failure paths are keyed off the primary
// passenger's family name so a client can exercise every outcome:
// "Declined" simulates a payment failure, "Orphaned" a paid order that was
// never created, "Flaky" an intermittent server error.
func OrderHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req OrderRequestBody
	json.NewDecoder(r.Body).Decode(&req)

	if len(req.Data.SelectedOffers) == 0 || len(req.Data.Passengers) == 0 {
		writeError(w, http.StatusUnprocessableEntity, "validation_required", "selected_offers and passengers are required", "")
		return
	}

	switch strings.ToLower(req.Data.Passengers[0].FamilyName) {
	case "declined":
		writeError(w, http.StatusPaymentRequired, "payment_declined", "The card was declined", "")
		return
	case "orphaned":
		writeError(w, http.StatusInternalServerError, "order_creation_failed",
			"Payment was captured but the order could not be created",
			fmt.Sprintf("pit_%06d", rand.Intn(1000000)))
		return
	case "flaky":
		if rand.Intn(2) == 0 {
			writeError(w, http.StatusBadGateway, "internal_server_error", "Temporarily unavailable", "")
			return
		}
	}

	amount := "0.00"
	currency := "USD"
	if len(req.Data.Payments) > 0 {
		amount = req.Data.Payments[0].Amount
		currency = req.Data.Payments[0].Currency
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"data": map[string]any{
			"id":                fmt.Sprintf("ord_%06d", rand.Intn(1000000)),
			"booking_reference": bookingReference(),
			"total_amount":      amount,
			"total_currency":    currency,
		},
	})
}

func OrderActionHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost || !strings.HasSuffix(r.URL.Path, "/actions/cancel") {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}

	id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/air/orders/"), "/actions/cancel")
	writeJSON(w, http.StatusOK, map[string]any{
		"data": map[string]any{
			"id":                id,
			"booking_reference": bookingReference(),
		},
	})
}

func bookingReference() string {
	const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	ref := make([]byte, 6)
	for i := range ref {
		ref[i] = alphabet[rand.Intn(len(alphabet))]
	}
	return string(ref)
}
