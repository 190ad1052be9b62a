package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
)

type SliceInput struct {
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureDate string `json:"departure_date"`
}

type OfferRequestBody struct {
	Data struct {
		Slices     []SliceInput `json:"slices"`
		Passengers []struct {
			Type  string `json:"type"`
			Count int    `json:"count"`
		} `json:"passengers"`
		CabinClass string `json:"cabin_class"`
	} `json:"data"`
}

type Place struct {
	IATACode string `json:"iata_code"`
	Name     string `json:"name"`
	CityName string `json:"city_name"`
}

type Carrier struct {
	IATACode string `json:"iata_code"`
	Name     string `json:"name"`
}

type Segment struct {
	ID                           string  `json:"id"`
	Origin                       Place   `json:"origin"`
	Destination                  Place   `json:"destination"`
	DepartingAt                  string  `json:"departing_at"`
	ArrivingAt                   string  `json:"arriving_at"`
	Duration                     string  `json:"duration"`
	OperatingCarrier             Carrier `json:"operating_carrier"`
	OperatingCarrierFlightNumber string  `json:"operating_carrier_flight_number"`
}

type OfferSlice struct {
	ID          string    `json:"id"`
	Origin      Place     `json:"origin"`
	Destination Place     `json:"destination"`
	Segments    []Segment `json:"segments"`
}

type Offer struct {
	ID                                 string       `json:"id"`
	TotalAmount                        string       `json:"total_amount"`
	TotalCurrency                      string       `json:"total_currency"`
	BaseAmount                         string       `json:"base_amount"`
	TaxAmount                          string       `json:"tax_amount"`
	Owner                              Carrier      `json:"owner"`
	PassengerIdentityDocumentsRequired bool         `json:"passenger_identity_documents_required"`
	Slices                             []OfferSlice `json:"slices"`
}

var carriers = []Carrier{
	{IATACode: "ZZ", Name: "Duffel Airways"},
	{IATACode: "BA", Name: "British Airways"},
	{IATACode: "AA", Name: "American Airlines"},
}

var places = map[string]Place{
	"JFK": {IATACode: "JFK", Name: "John F. Kennedy International", CityName: "New York"},
	"LGA": {IATACode: "LGA", Name: "LaGuardia", CityName: "New York"},
	"LHR": {IATACode: "LHR", Name: "Heathrow", CityName: "London"},
	"LGW": {IATACode: "LGW", Name: "Gatwick", CityName: "London"},
	"SFO": {IATACode: "SFO", Name: "San Francisco International", CityName: "San Francisco"},
	"MCO": {IATACode: "MCO", Name: "Orlando International", CityName: "Orlando"},
}

func placeFor(code string) Place {
	if p, ok := places[strings.ToUpper(code)]; ok {
		return p
	}
	return Place{IATACode: strings.ToUpper(code), Name: code, CityName: code}
}

func makeOffer(req OfferRequestBody, n int) Offer {
	carrier := carriers[n%len(carriers)]
	base := 100 + rand.Intn(700)
	tax := base / 5

	slices := make([]OfferSlice, 0, len(req.Data.Slices))
	for i, s := range req.Data.Slices {
		slices = append(slices, OfferSlice{
			ID:          fmt.Sprintf("sli_%d_%d", n, i),
			Origin:      placeFor(s.Origin),
			Destination: placeFor(s.Destination),
			Segments: []Segment{{
				ID:                           fmt.Sprintf("seg_%d_%d", n, i),
				Origin:                       placeFor(s.Origin),
				Destination:                  placeFor(s.Destination),
				DepartingAt:                  s.DepartureDate + "T08:00:00",
				ArrivingAt:                   s.DepartureDate + "T14:30:00",
				Duration:                     "PT6H30M",
				OperatingCarrier:             carrier,
				OperatingCarrierFlightNumber: fmt.Sprintf("%d", 100+n),
			}},
		})
	}

	return Offer{
		ID:                                 fmt.Sprintf("off_%04d", n),
		TotalAmount:                        fmt.Sprintf("%d.00", base+tax),
		TotalCurrency:                      "USD",
		BaseAmount:                         fmt.Sprintf("%d.00", base),
		TaxAmount:                          fmt.Sprintf("%d.00", tax),
		Owner:                              carrier,
		PassengerIdentityDocumentsRequired: n%3 == 0,
		Slices:                             slices,
	}
}

func OfferRequestHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req OfferRequestBody
	json.NewDecoder(r.Body).Decode(&req)

	offers := make([]Offer, 0, 5)
	for i := 0; i < 5; i++ {
		offers = append(offers, makeOffer(req, i))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data": map[string]any{
			"id":     fmt.Sprintf("orq_%06d", rand.Intn(1000000)),
			"offers": offers,
		},
	})
}

func OfferHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/air/offers/")
	if id == "off_expired" {
		writeError(w, http.StatusUnprocessableEntity, "offer_no_longer_available", "The offer has expired", "")
		return
	}
	if id == "off_flaky" && rand.Intn(2) == 0 {
		writeError(w, http.StatusServiceUnavailable, "internal_server_error", "Temporarily unavailable", "")
		return
	}

	var req OfferRequestBody
	req.Data.Slices = []SliceInput{{Origin: "MCO", Destination: "SFO", DepartureDate: "2026-09-10"}}

	offer := makeOffer(req, 1)
	offer.ID = id
	writeJSON(w, http.StatusOK, map[string]any{"data": offer})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, code, message, paymentIntentID string) {
	body := map[string]any{
		"errors": []map[string]string{{
			"code":    code,
			"title":   code,
			"message": message,
		}},
	}
	if paymentIntentID != "" {
		body["meta"] = map[string]string{"payment_intent_id": paymentIntentID}
	}
	writeJSON(w, status, body)
}
