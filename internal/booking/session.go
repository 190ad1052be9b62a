package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"airbook/pkg/cache"
)

// SessionStore holds the cross-page booking state. Each key is independently
// readable and writable; there is no transactional multi-key guarantee and no
// locking, since concurrent writers within one logical session are rare and
// last-write-wins is the documented semantics. Reads of absent keys return
// (nil, nil), never an error.
type SessionStore interface {
	SetFlightInfo(ctx context.Context, sessionID string, info *FlightInfo) error
	GetFlightInfo(ctx context.Context, sessionID string) (*FlightInfo, error)

	SetPassengerCounts(ctx context.Context, sessionID string, counts *PassengerCounts) error
	GetPassengerCounts(ctx context.Context, sessionID string) (*PassengerCounts, error)

	SetPassengers(ctx context.Context, sessionID string, forms []PassengerForm) error
	GetPassengers(ctx context.Context, sessionID string) ([]PassengerForm, error)

	SetSeatSelections(ctx context.Context, sessionID string, seats SeatSelections) error
	GetSeatSelections(ctx context.Context, sessionID string) (SeatSelections, error)

	SetPayment(ctx context.Context, sessionID string, payment *PaymentInfo) error
	GetPayment(ctx context.Context, sessionID string) (*PaymentInfo, error)

	SetOrderID(ctx context.Context, sessionID, orderID string) error
	GetOrderID(ctx context.Context, sessionID string) (string, error)

	SetBookingData(ctx context.Context, sessionID string, data *BookingData) error
	GetBookingData(ctx context.Context, sessionID string) (*BookingData, error)

	GetBookingReference(ctx context.Context, sessionID string) (string, error)
}

const (
	fieldFlightInfo      = "flight_info"
	fieldPassengerCounts = "passenger_counts"
	fieldPassengers      = "passengers"
	fieldSeatSelections  = "seat_selections"
	fieldPayment         = "payment"
	fieldOrderID         = "order_id"
	fieldBookingData     = "booking_data"
)

// redisSessionStore keeps one Redis hash per session. Sessions are not
// deleted after confirmation; the TTL refreshed on every write bounds their
// lifetime instead, so confirmation pages and support can still read them.
type redisSessionStore struct {
	cache cache.Cache
	ttl   time.Duration
}

func NewRedisSessionStore(c cache.Cache, ttl time.Duration) SessionStore {
	return &redisSessionStore{cache: c, ttl: ttl}
}

func sessionKey(sessionID string) string {
	return "booking:session:" + sessionID
}

func (s *redisSessionStore) setJSON(ctx context.Context, sessionID, field string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode session field %s: %w", field, err)
	}
	key := sessionKey(sessionID)
	if err := s.cache.HSet(ctx, key, field, string(raw)); err != nil {
		return fmt.Errorf("failed to write session field %s: %w", field, err)
	}
	return s.cache.Expire(ctx, key, s.ttl)
}

func (s *redisSessionStore) getJSON(ctx context.Context, sessionID, field string, out any) (bool, error) {
	raw, err := s.cache.HGet(ctx, sessionKey(sessionID), field)
	if errors.Is(err, cache.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read session field %s: %w", field, err)
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return false, fmt.Errorf("failed to decode session field %s: %w", field, err)
	}
	return true, nil
}

func (s *redisSessionStore) SetFlightInfo(ctx context.Context, sessionID string, info *FlightInfo) error {
	// Ids and offer bodies travel in one snapshot so a reader never sees an
	// id without its offer.
	return s.setJSON(ctx, sessionID, fieldFlightInfo, info)
}

func (s *redisSessionStore) GetFlightInfo(ctx context.Context, sessionID string) (*FlightInfo, error) {
	var info FlightInfo
	ok, err := s.getJSON(ctx, sessionID, fieldFlightInfo, &info)
	if !ok || err != nil {
		return nil, err
	}
	return &info, nil
}

func (s *redisSessionStore) SetPassengerCounts(ctx context.Context, sessionID string, counts *PassengerCounts) error {
	return s.setJSON(ctx, sessionID, fieldPassengerCounts, counts)
}

func (s *redisSessionStore) GetPassengerCounts(ctx context.Context, sessionID string) (*PassengerCounts, error) {
	var counts PassengerCounts
	ok, err := s.getJSON(ctx, sessionID, fieldPassengerCounts, &counts)
	if !ok || err != nil {
		return nil, err
	}
	return &counts, nil
}

func (s *redisSessionStore) SetPassengers(ctx context.Context, sessionID string, forms []PassengerForm) error {
	return s.setJSON(ctx, sessionID, fieldPassengers, forms)
}

func (s *redisSessionStore) GetPassengers(ctx context.Context, sessionID string) ([]PassengerForm, error) {
	var forms []PassengerForm
	ok, err := s.getJSON(ctx, sessionID, fieldPassengers, &forms)
	if !ok || err != nil {
		return nil, err
	}
	return forms, nil
}

func (s *redisSessionStore) SetSeatSelections(ctx context.Context, sessionID string, seats SeatSelections) error {
	return s.setJSON(ctx, sessionID, fieldSeatSelections, seats)
}

func (s *redisSessionStore) GetSeatSelections(ctx context.Context, sessionID string) (SeatSelections, error) {
	var seats SeatSelections
	ok, err := s.getJSON(ctx, sessionID, fieldSeatSelections, &seats)
	if !ok || err != nil {
		return nil, err
	}
	return seats, nil
}

func (s *redisSessionStore) SetPayment(ctx context.Context, sessionID string, payment *PaymentInfo) error {
	return s.setJSON(ctx, sessionID, fieldPayment, payment)
}

func (s *redisSessionStore) GetPayment(ctx context.Context, sessionID string) (*PaymentInfo, error) {
	var payment PaymentInfo
	ok, err := s.getJSON(ctx, sessionID, fieldPayment, &payment)
	if !ok || err != nil {
		return nil, err
	}
	return &payment, nil
}

func (s *redisSessionStore) SetOrderID(ctx context.Context, sessionID, orderID string) error {
	return s.setJSON(ctx, sessionID, fieldOrderID, orderID)
}

func (s *redisSessionStore) GetOrderID(ctx context.Context, sessionID string) (string, error) {
	var orderID string
	_, err := s.getJSON(ctx, sessionID, fieldOrderID, &orderID)
	return orderID, err
}

func (s *redisSessionStore) SetBookingData(ctx context.Context, sessionID string, data *BookingData) error {
	return s.setJSON(ctx, sessionID, fieldBookingData, data)
}

func (s *redisSessionStore) GetBookingData(ctx context.Context, sessionID string) (*BookingData, error) {
	var data BookingData
	ok, err := s.getJSON(ctx, sessionID, fieldBookingData, &data)
	if !ok || err != nil {
		return nil, err
	}
	return &data, nil
}

func (s *redisSessionStore) GetBookingReference(ctx context.Context, sessionID string) (string, error) {
	data, err := s.GetBookingData(ctx, sessionID)
	if err != nil || data == nil {
		return "", err
	}
	return data.BookingReference, nil
}

// memorySessionStore is the in-process implementation used by tests and the
// mock environment.
type memorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]map[string]string
}

func NewMemorySessionStore() SessionStore {
	return &memorySessionStore{sessions: make(map[string]map[string]string)}
}

func (m *memorySessionStore) set(sessionID, field string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sessions[sessionID] == nil {
		m.sessions[sessionID] = make(map[string]string)
	}
	m.sessions[sessionID][field] = string(raw)
	return nil
}

func (m *memorySessionStore) get(sessionID, field string, out any) (bool, error) {
	m.mu.RLock()
	raw, ok := m.sessions[sessionID][field]
	m.mu.RUnlock()
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal([]byte(raw), out)
}

func (m *memorySessionStore) SetFlightInfo(_ context.Context, sessionID string, info *FlightInfo) error {
	return m.set(sessionID, fieldFlightInfo, info)
}

func (m *memorySessionStore) GetFlightInfo(_ context.Context, sessionID string) (*FlightInfo, error) {
	var info FlightInfo
	ok, err := m.get(sessionID, fieldFlightInfo, &info)
	if !ok || err != nil {
		return nil, err
	}
	return &info, nil
}

func (m *memorySessionStore) SetPassengerCounts(_ context.Context, sessionID string, counts *PassengerCounts) error {
	return m.set(sessionID, fieldPassengerCounts, counts)
}

func (m *memorySessionStore) GetPassengerCounts(_ context.Context, sessionID string) (*PassengerCounts, error) {
	var counts PassengerCounts
	ok, err := m.get(sessionID, fieldPassengerCounts, &counts)
	if !ok || err != nil {
		return nil, err
	}
	return &counts, nil
}

func (m *memorySessionStore) SetPassengers(_ context.Context, sessionID string, forms []PassengerForm) error {
	return m.set(sessionID, fieldPassengers, forms)
}

func (m *memorySessionStore) GetPassengers(_ context.Context, sessionID string) ([]PassengerForm, error) {
	var forms []PassengerForm
	ok, err := m.get(sessionID, fieldPassengers, &forms)
	if !ok || err != nil {
		return nil, err
	}
	return forms, nil
}

func (m *memorySessionStore) SetSeatSelections(_ context.Context, sessionID string, seats SeatSelections) error {
	return m.set(sessionID, fieldSeatSelections, seats)
}

func (m *memorySessionStore) GetSeatSelections(_ context.Context, sessionID string) (SeatSelections, error) {
	var seats SeatSelections
	ok, err := m.get(sessionID, fieldSeatSelections, &seats)
	if !ok || err != nil {
		return nil, err
	}
	return seats, nil
}

func (m *memorySessionStore) SetPayment(_ context.Context, sessionID string, payment *PaymentInfo) error {
	return m.set(sessionID, fieldPayment, payment)
}

func (m *memorySessionStore) GetPayment(_ context.Context, sessionID string) (*PaymentInfo, error) {
	var payment PaymentInfo
	ok, err := m.get(sessionID, fieldPayment, &payment)
	if !ok || err != nil {
		return nil, err
	}
	return &payment, nil
}

func (m *memorySessionStore) SetOrderID(_ context.Context, sessionID, orderID string) error {
	return m.set(sessionID, fieldOrderID, orderID)
}

func (m *memorySessionStore) GetOrderID(_ context.Context, sessionID string) (string, error) {
	var orderID string
	_, err := m.get(sessionID, fieldOrderID, &orderID)
	return orderID, err
}

func (m *memorySessionStore) SetBookingData(_ context.Context, sessionID string, data *BookingData) error {
	return m.set(sessionID, fieldBookingData, data)
}

func (m *memorySessionStore) GetBookingData(_ context.Context, sessionID string) (*BookingData, error) {
	var data BookingData
	ok, err := m.get(sessionID, fieldBookingData, &data)
	if !ok || err != nil {
		return nil, err
	}
	return &data, nil
}

func (m *memorySessionStore) GetBookingReference(ctx context.Context, sessionID string) (string, error) {
	data, err := m.GetBookingData(ctx, sessionID)
	if err != nil || data == nil {
		return "", err
	}
	return data.BookingReference, nil
}
