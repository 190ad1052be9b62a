package booking

import "net/http"

type TripType string

const (
	TripOneWay    TripType = "one_way"
	TripReturn    TripType = "return"
	TripMultiCity TripType = "multi_city"
)

const maxPassengers = 9

// SearchInput is the raw, unvalidated search form. Multi-city segments arrive
// as repeated JSON-encoded fields exactly as the form posts them.
type SearchInput struct {
	Origin        string   `json:"origin"`
	Destination   string   `json:"destination"`
	DepartureDate string   `json:"departure_date"`
	ReturnDate    string   `json:"return_date"`
	TripType      TripType `json:"trip_type"`
	Adults        int      `json:"adults"`
	Children      int      `json:"children"`
	Infants       int      `json:"infants"`
	CabinClass    string   `json:"cabin_class"`
	RawSegments   []string `json:"segments"`
}

type MultiCitySegment struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Date        string `json:"date"`
}

// PassengerCounts is snapshotted when a search is submitted and read-only
// afterwards; later steps read the persisted copy, never live form state.
type PassengerCounts struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
	Infants  int `json:"infants"`
}

func (p PassengerCounts) Total() int {
	return p.Adults + p.Children + p.Infants
}

// Slice is one directional leg sent to the carrier.
type Slice struct {
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureDate string `json:"departure_date"`
}

// SearchCriteria is a validated search, slices already derived.
type SearchCriteria struct {
	TripType   TripType           `json:"trip_type"`
	Slices     []Slice            `json:"slices"`
	Counts     PassengerCounts    `json:"passenger_counts"`
	CabinClass string             `json:"cabin_class"`
	Segments   []MultiCitySegment `json:"segments,omitempty"`
}

// Airport is the pair the matcher works on.
type Airport struct {
	IATACode string `json:"iata_code"`
	CityName string `json:"city_name"`
}

// Segment is one physical flight within a slice.
type Segment struct {
	ID           string  `json:"id"`
	Origin       Airport `json:"origin"`
	Destination  Airport `json:"destination"`
	DepartingAt  string  `json:"departing_at"`
	ArrivingAt   string  `json:"arriving_at"`
	Duration     string  `json:"duration"`
	CarrierName  string  `json:"carrier_name"`
	CarrierCode  string  `json:"carrier_code"`
	FlightNumber string  `json:"flight_number"`
}

type OfferSlice struct {
	Origin      Airport   `json:"origin"`
	Destination Airport   `json:"destination"`
	Segments    []Segment `json:"segments"`
}

// Offer is a normalized, read-only snapshot of an upstream offer. All missing
// wire fields were resolved at the normalization boundary.
type Offer struct {
	ID                        string       `json:"id"`
	TotalAmount               float64      `json:"total_amount"`
	BaseAmount                float64      `json:"base_amount"`
	TaxAmount                 float64      `json:"tax_amount"`
	Currency                  string       `json:"currency"`
	Owner                     string       `json:"owner"`
	IdentityDocumentsRequired bool         `json:"identity_documents_required"`
	Slices                    []OfferSlice `json:"slices"`
}

// SeatSelection is one chosen seat for one segment.
type SeatSelection struct {
	SeatID       string  `json:"seat_id"`
	Designator   string  `json:"designator"`
	Price        float64 `json:"price"`
	ExitRow      bool    `json:"is_exit_row"`
	ExtraLegroom bool    `json:"extra_legroom"`
	CabinClass   string  `json:"cabin_class"`
}

// PassengerForm is the per-passenger booking form state.
type PassengerForm struct {
	GivenName        string `json:"given_name"`
	FamilyName       string `json:"family_name"`
	BornOn           string `json:"born_on"`
	Type             string `json:"type"`
	Age              *int   `json:"age"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	PassportNumber   string `json:"passport_number"`
	PassportCountry  string `json:"passport_country"`
	PassportExpiry   string `json:"passport_expiry"`
	ProvideDocuments bool   `json:"provide_documents"`
}

// FlightInfo is the self-consistent flight snapshot stored when an offer is
// selected: ids and offer bodies are always written together.
type FlightInfo struct {
	OutboundOfferID string `json:"outbound_offer_id"`
	OutboundOffer   *Offer `json:"outbound_offer"`
	ReturnOfferID   string `json:"return_offer_id,omitempty"`
	ReturnOffer     *Offer `json:"return_offer,omitempty"`
	CabinClass      string `json:"cabin_class"`
}

type PaymentInfo struct {
	Type string `json:"type"`
}

// BookingData is the post-confirmation summary.
type BookingData struct {
	OrderID          string  `json:"order_id"`
	BookingReference string  `json:"booking_reference"`
	TotalAmount      float64 `json:"total_amount"`
	Currency         string  `json:"currency"`
}

type OrderConfirmation struct {
	OrderID          string      `json:"order_id"`
	BookingReference string      `json:"booking_reference"`
	TotalAmount      float64     `json:"total_amount"`
	Currency         string      `json:"currency"`
	State            SubmitState `json:"state"`
}

// SubmitState is the explicit submission state machine. Only
// StateTransientFailure permits an automatic retry of the same request.
type SubmitState string

const (
	StateIdle                   SubmitState = "IDLE"
	StateSubmitting             SubmitState = "SUBMITTING"
	StateConfirmed              SubmitState = "CONFIRMED"
	StatePaymentFailed          SubmitState = "PAYMENT_FAILED"
	StateReconciliationRequired SubmitState = "RECONCILIATION_REQUIRED"
	StateTransientFailure       SubmitState = "TRANSIENT_FAILURE"
)

type ErrorCode string

const (
	ErrorCodeValidation             ErrorCode = "VALIDATION"
	ErrorCodeTransport              ErrorCode = "TRANSPORT"
	ErrorCodeUpstream               ErrorCode = "UPSTREAM"
	ErrorCodeDataConsistency        ErrorCode = "DATA_CONSISTENCY"
	ErrorCodePaymentFailed          ErrorCode = "PAYMENT_FAILED"
	ErrorCodeReconciliationRequired ErrorCode = "RECONCILIATION_REQUIRED"
	ErrorCodeInternalFailure        ErrorCode = "INTERNAL_FAILURE"
)

// AppError carries the HTTP status and machine code for the handler layer.
type AppError struct {
	Status  int
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func NewValidationError(message string) *AppError {
	return &AppError{Status: http.StatusBadRequest, Code: ErrorCodeValidation, Message: message}
}

func NewTransportError(message string, err error) *AppError {
	return &AppError{Status: http.StatusBadGateway, Code: ErrorCodeTransport, Message: message, Err: err}
}

func NewUpstreamError(message string, err error) *AppError {
	return &AppError{Status: http.StatusBadGateway, Code: ErrorCodeUpstream, Message: message, Err: err}
}
