package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
)

func newMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/air/offer_requests", OfferRequestHandler)
	mux.HandleFunc("/air/offers/", OfferHandler)
	mux.HandleFunc("/air/seat_maps", SeatMapHandler)
	mux.HandleFunc("/air/orders", OrderHandler)
	mux.HandleFunc("/air/orders/", OrderActionHandler)
	mux.HandleFunc("/air/airports", AirportHandler)
	return mux
}

func main() {
	// Default port
	port := "8082"

	// Check if port is provided as command line argument
	if len(os.Args) > 1 {
		port = os.Args[1]
	}

	addr := fmt.Sprintf(":%s", port)
	fmt.Printf("Air API Mock Server running on port %s...\n", port)
	if err := http.ListenAndServe(addr, newMux()); err != nil {
		log.Fatal(err)
	}
}
