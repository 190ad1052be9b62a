package main

import (
	"fmt"
	"net/http"
)

type SeatService struct {
	ID          string `json:"id"`
	TotalAmount string `json:"total_amount"`
	Currency    string `json:"total_currency"`
}

type SeatElement struct {
	Type              string        `json:"type"`
	Designator        string        `json:"designator"`
	AvailableServices []SeatService `json:"available_services"`
}

type SeatRow struct {
	Elements []*SeatElement `json:"elements"`
}

type CabinSection struct {
	CabinClass string    `json:"cabin_class"`
	Rows       []SeatRow `json:"rows"`
}

type SeatMap struct {
	ID        string         `json:"id"`
	SliceID   string         `json:"slice_id"`
	SegmentID string         `json:"segment_id"`
	Cabins    []CabinSection `json:"cabins"`
}

func SeatMapHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	offerID := r.URL.Query().Get("offer_id")
	if offerID == "" {
		writeError(w, http.StatusUnprocessableEntity, "validation_required", "offer_id is required", "")
		return
	}

	rows := make([]SeatRow, 0, 10)
	for rowNum := 1; rowNum <= 10; rowNum++ {
		row := SeatRow{}
		for _, letter := range []string{"A", "B", "C"} {
			seat := &SeatElement{
				Type:       "seat",
				Designator: fmt.Sprintf("%d%s", rowNum, letter),
			}
			// Window and aisle seats carry a paid service, middle seats are free.
			if letter != "B" {
				seat.AvailableServices = []SeatService{{
					ID:          fmt.Sprintf("ase_%d%s", rowNum, letter),
					TotalAmount: "25.00",
					Currency:    "USD",
				}}
			}
			row.Elements = append(row.Elements, seat)
		}
		// nil marks the aisle gap between seat blocks.
		row.Elements = append(row.Elements, nil)
		for _, letter := range []string{"D", "E", "F"} {
			row.Elements = append(row.Elements, &SeatElement{
				Type:       "seat",
				Designator: fmt.Sprintf("%d%s", rowNum, letter),
			})
		}
		rows = append(rows, row)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data": []SeatMap{{
			ID:        "sea_0001",
			SliceID:   "sli_1_0",
			SegmentID: "seg_1_0",
			Cabins: []CabinSection{{
				CabinClass: "economy",
				Rows:       rows,
			}},
		}},
	})
}
