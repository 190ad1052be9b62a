package airapi

// Wire types for the flight-distribution API. Every body travels inside a
// {"data": ...} envelope. Nullable nested fields are pointers; normalization
// into domain types happens in internal/booking, not here.

type Slice struct {
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureDate string `json:"departure_date"`
}

// PassengerCount is the count-based passenger record used only for offer
// search, distinct from the booking-time Passenger.
type PassengerCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

type OfferRequest struct {
	Slices     []Slice          `json:"slices"`
	Passengers []PassengerCount `json:"passengers"`
	CabinClass string           `json:"cabin_class"`
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
	ID                           string   `json:"id"`
	Origin                       *Place   `json:"origin"`
	Destination                  *Place   `json:"destination"`
	DepartingAt                  string   `json:"departing_at"`
	ArrivingAt                   string   `json:"arriving_at"`
	Duration                     string   `json:"duration"`
	OperatingCarrier             *Carrier `json:"operating_carrier"`
	OperatingCarrierFlightNumber string   `json:"operating_carrier_flight_number"`
}

type OfferSlice struct {
	ID          string    `json:"id"`
	Origin      *Place    `json:"origin"`
	Destination *Place    `json:"destination"`
	Segments    []Segment `json:"segments"`
}

type Offer struct {
	ID                                 string       `json:"id"`
	TotalAmount                        string       `json:"total_amount"`
	TotalCurrency                      string       `json:"total_currency"`
	BaseAmount                         string       `json:"base_amount"`
	TaxAmount                          string       `json:"tax_amount"`
	Owner                              *Carrier     `json:"owner"`
	PassengerIdentityDocumentsRequired bool         `json:"passenger_identity_documents_required"`
	Slices                             []OfferSlice `json:"slices"`
}

type Warning struct {
	Code    string `json:"code"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// OfferCollection is the result of one offer search, including upstream
// warnings so callers can surface partial-result diagnostics.
type OfferCollection struct {
	ID       string
	Offers   []Offer
	Warnings []Warning
}

type IdentityDocument struct {
	Type               string `json:"type"`
	UniqueIdentifier   string `json:"unique_identifier"`
	IssuingCountryCode string `json:"issuing_country_code"`
	ExpiresOn          string `json:"expires_on"`
}

// Passenger is the booking-time passenger record. Exactly one of Type or Age
// is present on the wire; both carry omitempty so the absent one is dropped.
type Passenger struct {
	Type              string             `json:"type,omitempty"`
	Age               *int               `json:"age,omitempty"`
	GivenName         string             `json:"given_name"`
	FamilyName        string             `json:"family_name"`
	BornOn            string             `json:"born_on,omitempty"`
	Email             string             `json:"email,omitempty"`
	PhoneNumber       string             `json:"phone_number,omitempty"`
	IdentityDocuments []IdentityDocument `json:"identity_documents,omitempty"`
}

type Payment struct {
	Type     string `json:"type"`
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

// SeatService is one selected seat attached to an order.
type SeatService struct {
	SegmentID  string `json:"segment_id"`
	SeatID     string `json:"seat_id"`
	Designator string `json:"designator"`
	Amount     string `json:"amount"`
}

type OrderRequest struct {
	Type           string        `json:"type"` // instant or hold
	SelectedOffers []string      `json:"selected_offers"`
	Passengers     []Passenger   `json:"passengers"`
	Payments       []Payment     `json:"payments"`
	Services       []SeatService `json:"services,omitempty"`
	IdempotencyKey string        `json:"idempotency_key,omitempty"`
}

type Order struct {
	ID               string `json:"id"`
	BookingReference string `json:"booking_reference"`
	TotalAmount      string `json:"total_amount"`
	TotalCurrency    string `json:"total_currency"`
}

// Seat map nesting mirrors the upstream shape: slices hold segments, segments
// hold cabin sections, rows hold seat-or-null elements (null marks an aisle gap).

type SeatElementService struct {
	ID          string `json:"id"`
	TotalAmount string `json:"total_amount"`
	Currency    string `json:"total_currency"`
}

type SeatElement struct {
	Type              string               `json:"type"`
	Designator        string               `json:"designator"`
	AvailableServices []SeatElementService `json:"available_services"`
}

type SeatRow struct {
	Elements []*SeatElement `json:"elements"` // nil element = aisle gap
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

type Airport struct {
	IATACode string `json:"iata_code"`
	Name     string `json:"name"`
	CityName string `json:"city_name"`
}
