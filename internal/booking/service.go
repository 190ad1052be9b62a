package booking

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"airbook/pkg/airapi"
	"airbook/pkg/cache"
	"airbook/pkg/idgen"
	"airbook/pkg/logger"
	"airbook/pkg/metrics"
)

// AirClient is the slice of the distribution API the booking engine uses.
type AirClient interface {
	SearchOffers(ctx context.Context, req airapi.OfferRequest) (*airapi.OfferCollection, error)
	GetOffer(ctx context.Context, id string) (*airapi.Offer, error)
	GetSeatMaps(ctx context.Context, offerID string) ([]airapi.SeatMap, error)
	CreateOrder(ctx context.Context, req airapi.OrderRequest) (*airapi.Order, error)
	CancelOrder(ctx context.Context, orderID string) (*airapi.Order, error)
	SearchAirports(ctx context.Context, query string) ([]airapi.Airport, error)
}

type Service struct {
	api         AirClient
	cache       cache.Cache
	store       SessionStore
	archive     *OrderArchive
	coordinator *Coordinator
	idgen       idgen.Generator
	ttl         time.Duration
	metrics     *metrics.Metrics
	logger      logger.Client
}

func NewService(api AirClient, c cache.Cache, store SessionStore, archive *OrderArchive,
	gen idgen.Generator, m *metrics.Metrics, ttlMinutes int, log logger.Client) *Service {
	var arch Archive
	if archive != nil {
		arch = archive
	}
	return &Service{
		api:         api,
		cache:       c,
		store:       store,
		archive:     archive,
		coordinator: NewCoordinator(api, store, arch, gen, m, log),
		idgen:       gen,
		ttl:         time.Duration(ttlMinutes) * time.Minute,
		metrics:     m,
		logger:      log,
	}
}

type SearchMetadata struct {
	OfferCount   int      `json:"offer_count"`
	Warnings     []string `json:"warnings,omitempty"`
	SearchTimeMs uint32   `json:"search_time_ms,omitempty"`
	CacheKey     string   `json:"cache_key,omitempty"`
	CacheHit     bool     `json:"cache_hit"`
}

type SearchResponse struct {
	Criteria *SearchCriteria `json:"criteria"`
	Metadata SearchMetadata  `json:"metadata"`
	Offers   []Offer         `json:"offers"`
}

// Search validates the raw input, compiles the itinerary request and fetches
// offers, serving repeated searches from cache. Search is never retried here;
// the caller owns that decision.
func (s *Service) Search(ctx context.Context, raw SearchInput) (*SearchResponse, error) {
	criteria, warnings, err := BuildSearchCriteria(raw)
	if err != nil {
		return nil, err
	}

	cacheKey := s.generateCacheKey(criteria)
	cached, cerr := s.cache.Get(ctx, cacheKey)
	if cerr == nil && cached != "" {
		var response SearchResponse
		if uerr := json.Unmarshal([]byte(cached), &response); uerr == nil {
			response.Metadata.CacheHit = true
			response.Metadata.CacheKey = cacheKey
			return &response, nil
		}
		s.logger.Error("failed to unmarshal cached search", logger.Field{Key: "cache_key", Value: cacheKey})
	}

	startTime := time.Now()
	s.metrics.SearchesTotal.Inc()

	coll, err := s.api.SearchOffers(ctx, airapi.OfferRequest{
		Slices:     criteria.APISlices(),
		Passengers: criteria.SearchPassengers(),
		CabinClass: criteria.CabinClass,
	})
	if err != nil {
		return nil, mapClientError("offer search failed", err)
	}

	offers := make([]Offer, 0, len(coll.Offers))
	for i := range coll.Offers {
		offers = append(offers, *NormalizeOffer(&coll.Offers[i]))
	}
	for _, w := range coll.Warnings {
		warnings = append(warnings, w.Message)
	}

	response := &SearchResponse{
		Criteria: criteria,
		Offers:   offers,
		Metadata: SearchMetadata{
			OfferCount:   len(offers),
			Warnings:     warnings,
			SearchTimeMs: uint32(time.Since(startTime).Milliseconds()),
			CacheKey:     cacheKey,
			CacheHit:     false,
		},
	}

	s.cacheSearch(ctx, cacheKey, response)
	return response, nil
}

// GetOffer fetches one offer with the client's retry policy and normalizes it.
func (s *Service) GetOffer(ctx context.Context, id string) (*Offer, error) {
	raw, err := s.api.GetOffer(ctx, id)
	if err != nil {
		return nil, mapClientError("offer fetch failed", err)
	}
	return NormalizeOffer(raw), nil
}

func (s *Service) GetSeatMaps(ctx context.Context, offerID string) ([]airapi.SeatMap, error) {
	maps, err := s.api.GetSeatMaps(ctx, offerID)
	if err != nil {
		return nil, mapClientError("seat map fetch failed", err)
	}
	return maps, nil
}

func (s *Service) SearchAirports(ctx context.Context, query string) ([]airapi.Airport, error) {
	airports, err := s.api.SearchAirports(ctx, query)
	if errors.Is(err, airapi.ErrQueryTooShort) {
		return nil, NewValidationError("query must be at least 2 characters")
	}
	if err != nil {
		return nil, mapClientError("airport lookup failed", err)
	}
	return airports, nil
}

// SelectFlightRequest carries the chosen offer ids for a new booking session.
type SelectFlightRequest struct {
	OutboundOfferID string `json:"outbound_offer_id"`
	ReturnOfferID   string `json:"return_offer_id,omitempty"`
	CabinClass      string `json:"cabin_class,omitempty"`
}

// SelectFlight creates a booking session around the chosen offers. The full
// offer bodies are fetched and stored with their ids in one snapshot. A
// round-trip city mismatch is returned as an advisory diagnostic, never an
// error.
func (s *Service) SelectFlight(ctx context.Context, req SelectFlightRequest) (string, *RoundTripMismatch, error) {
	if req.OutboundOfferID == "" {
		return "", nil, NewValidationError("outbound_offer_id is required")
	}

	outbound, err := s.GetOffer(ctx, req.OutboundOfferID)
	if err != nil {
		return "", nil, err
	}

	var ret *Offer
	if req.ReturnOfferID != "" {
		ret, err = s.GetOffer(ctx, req.ReturnOfferID)
		if err != nil {
			return "", nil, err
		}
	}

	sessionID := s.idgen.GenerateKey()
	info := &FlightInfo{
		OutboundOfferID: req.OutboundOfferID,
		OutboundOffer:   outbound,
		ReturnOfferID:   req.ReturnOfferID,
		ReturnOffer:     ret,
		CabinClass:      req.CabinClass,
	}
	if err := s.store.SetFlightInfo(ctx, sessionID, info); err != nil {
		return "", nil, NewTransportError("failed to store flight selection", err)
	}

	mismatch := ValidateRoundTrip(outbound, ret)
	if mismatch != nil {
		s.logger.Warn("round-trip airport mismatch",
			logger.Field{Key: "session_id", Value: sessionID},
			logger.Field{Key: "outbound_destination", Value: mismatch.OutboundDestination.IATACode},
			logger.Field{Key: "return_origin", Value: mismatch.ReturnOrigin.IATACode})
	}
	return sessionID, mismatch, nil
}

// SavePassengers snapshots the passenger counts and booking forms. Counts are
// read-only from here on; later steps read this snapshot, not live form state.
func (s *Service) SavePassengers(ctx context.Context, sessionID string, counts PassengerCounts, forms []PassengerForm) error {
	if counts.Total() > maxPassengers {
		return NewValidationError("total passengers cannot exceed 9")
	}
	if counts.Infants > counts.Adults {
		return NewValidationError("infants cannot exceed adults")
	}
	if len(forms) == 0 {
		return NewValidationError("at least one passenger is required")
	}

	if err := s.store.SetPassengerCounts(ctx, sessionID, &counts); err != nil {
		return NewTransportError("failed to store passenger counts", err)
	}
	if err := s.store.SetPassengers(ctx, sessionID, forms); err != nil {
		return NewTransportError("failed to store passengers", err)
	}
	return nil
}

// SetSeat stores a seat for a segment, replacing any prior selection. When the
// same seat is posted again the selection is removed; the toggle convention
// lives here at the caller level, not in the aggregator.
func (s *Service) SetSeat(ctx context.Context, sessionID, segmentID string, seat SeatSelection) (SeatSelections, error) {
	seats, err := s.store.GetSeatSelections(ctx, sessionID)
	if err != nil {
		return nil, NewTransportError("failed to read seat selections", err)
	}
	if seats == nil {
		seats = make(SeatSelections)
	}

	if current, ok := seats.Get(segmentID); ok && current.SeatID == seat.SeatID {
		seats.Remove(segmentID)
	} else {
		seats.Add(segmentID, seat)
	}

	if err := s.store.SetSeatSelections(ctx, sessionID, seats); err != nil {
		return nil, NewTransportError("failed to store seat selections", err)
	}
	return seats, nil
}

func (s *Service) RemoveSeat(ctx context.Context, sessionID, segmentID string) (SeatSelections, error) {
	seats, err := s.store.GetSeatSelections(ctx, sessionID)
	if err != nil {
		return nil, NewTransportError("failed to read seat selections", err)
	}
	if seats == nil {
		return make(SeatSelections), nil
	}
	seats.Remove(segmentID)
	if err := s.store.SetSeatSelections(ctx, sessionID, seats); err != nil {
		return nil, NewTransportError("failed to store seat selections", err)
	}
	return seats, nil
}

func (s *Service) SetPayment(ctx context.Context, sessionID string, payment PaymentInfo) error {
	if err := s.store.SetPayment(ctx, sessionID, &payment); err != nil {
		return NewTransportError("failed to store payment method", err)
	}
	return nil
}

// SessionView aggregates the session for read-back by later pages.
type SessionView struct {
	FlightInfo      *FlightInfo      `json:"flight_info,omitempty"`
	PassengerCounts *PassengerCounts `json:"passenger_counts,omitempty"`
	Passengers      []PassengerForm  `json:"passengers,omitempty"`
	SeatSelections  SeatSelections   `json:"seat_selections,omitempty"`
	SeatTotal       float64          `json:"seat_total"`
	OrderID         string           `json:"order_id,omitempty"`
	BookingData     *BookingData     `json:"booking_data,omitempty"`
}

func (s *Service) GetSession(ctx context.Context, sessionID string) (*SessionView, error) {
	view := &SessionView{}
	var err error

	if view.FlightInfo, err = s.store.GetFlightInfo(ctx, sessionID); err != nil {
		return nil, NewTransportError("failed to read session", err)
	}
	if view.PassengerCounts, err = s.store.GetPassengerCounts(ctx, sessionID); err != nil {
		return nil, NewTransportError("failed to read session", err)
	}
	if view.Passengers, err = s.store.GetPassengers(ctx, sessionID); err != nil {
		return nil, NewTransportError("failed to read session", err)
	}
	if view.SeatSelections, err = s.store.GetSeatSelections(ctx, sessionID); err != nil {
		return nil, NewTransportError("failed to read session", err)
	}
	if view.OrderID, err = s.store.GetOrderID(ctx, sessionID); err != nil {
		return nil, NewTransportError("failed to read session", err)
	}
	if view.BookingData, err = s.store.GetBookingData(ctx, sessionID); err != nil {
		return nil, NewTransportError("failed to read session", err)
	}
	view.SeatTotal = view.SeatSelections.TotalPrice()
	return view, nil
}

// SubmitOrder runs the order submission coordinator for the session.
func (s *Service) SubmitOrder(ctx context.Context, sessionID string) (*OrderConfirmation, error) {
	return s.coordinator.Submit(ctx, sessionID)
}

func (s *Service) CancelOrder(ctx context.Context, orderID string) (*airapi.Order, error) {
	order, err := s.api.CancelOrder(ctx, orderID)
	if err != nil {
		return nil, mapClientError("order cancel failed", err)
	}
	return order, nil
}

// LookupBooking reads the archived booking for a reference.
func (s *Service) LookupBooking(ctx context.Context, reference string) (*BookingData, error) {
	if s.archive == nil {
		return nil, nil
	}
	return s.archive.GetByReference(ctx, reference)
}

// generateCacheKey creates a deterministic key from the compiled criteria
func (s *Service) generateCacheKey(criteria *SearchCriteria) string {
	key := fmt.Sprintf("%s:%s:%d:%d:%d", criteria.TripType, criteria.CabinClass,
		criteria.Counts.Adults, criteria.Counts.Children, criteria.Counts.Infants)
	for _, slice := range criteria.Slices {
		key += fmt.Sprintf(":%s-%s-%s", slice.Origin, slice.Destination, slice.DepartureDate)
	}

	hash := sha256.Sum256([]byte(key))
	return fmt.Sprintf("booking:search:%x", hash[:16])
}

func (s *Service) cacheSearch(ctx context.Context, key string, response *SearchResponse) {
	raw, err := json.Marshal(response)
	if err != nil {
		s.logger.Error("failed to marshal search response", logger.Field{Key: "err", Value: err})
		return
	}
	if err := s.cache.Set(ctx, key, string(raw), s.ttl); err != nil {
		s.logger.Error("failed to cache search response", logger.Field{Key: "err", Value: err})
	}
}

// mapClientError converts client-layer failures to the user-facing taxonomy.
func mapClientError(message string, err error) error {
	var terr *airapi.TransportError
	if errors.As(err, &terr) {
		return NewTransportError(message, err)
	}
	if errors.Is(err, airapi.ErrMalformedResponse) {
		return NewUpstreamError(message+": malformed upstream response", err)
	}
	var uerr *airapi.UpstreamError
	if errors.As(err, &uerr) {
		return NewUpstreamError(message, err)
	}
	return &AppError{Status: 500, Code: ErrorCodeInternalFailure, Message: message, Err: err}
}
