package main

import (
	"net/http"
	"strings"
)

type Airport struct {
	IATACode string `json:"iata_code"`
	Name     string `json:"name"`
	CityName string `json:"city_name"`
}

var airports = []Airport{
	{IATACode: "JFK", Name: "John F. Kennedy International", CityName: "New York"},
	{IATACode: "LGA", Name: "LaGuardia", CityName: "New York"},
	{IATACode: "EWR", Name: "Newark Liberty International", CityName: "New York"},
	{IATACode: "LHR", Name: "Heathrow", CityName: "London"},
	{IATACode: "LGW", Name: "Gatwick", CityName: "London"},
	{IATACode: "SFO", Name: "San Francisco International", CityName: "San Francisco"},
	{IATACode: "OAK", Name: "Oakland International", CityName: "Oakland"},
	{IATACode: "MCO", Name: "Orlando International", CityName: "Orlando"},
	{IATACode: "CDG", Name: "Charles de Gaulle", CityName: "Paris"},
	{IATACode: "ORY", Name: "Orly", CityName: "Paris"},
}

func AirportHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := strings.ToLower(r.URL.Query().Get("query"))
	if len(query) < 2 {
		writeError(w, http.StatusUnprocessableEntity, "validation_required", "query must be at least 2 characters", "")
		return
	}

	matches := make([]Airport, 0)
	for _, a := range airports {
		if strings.Contains(strings.ToLower(a.IATACode), query) ||
			strings.Contains(strings.ToLower(a.Name), query) ||
			strings.Contains(strings.ToLower(a.CityName), query) {
			matches = append(matches, a)
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{"data": matches})
}
