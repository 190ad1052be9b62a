package booking

import (
	"context"
	"io"
	"sync"
	"time"

	"airbook/pkg/airapi"
	"airbook/pkg/cache"
	"airbook/pkg/logger"
	"airbook/pkg/metrics"
)

// One registry-backed metrics instance for the whole package; promauto
// panics on duplicate registration.
var testMetrics = metrics.New("booking_test")

func testLogger() logger.Client {
	return logger.NewWithWriter("production", io.Discard)
}

// memCache is an in-process cache.Cache for tests.
type memCache struct {
	mu     sync.Mutex
	values map[string]string
	hashes map[string]map[string]string
}

func newMemCache() *memCache {
	return &memCache{
		values: make(map[string]string),
		hashes: make(map[string]map[string]string),
	}
}

func (m *memCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *memCache) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.values[key]
	if !ok {
		return "", cache.ErrNotFound
	}
	return val, nil
}

func (m *memCache) Del(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func (m *memCache) HSet(_ context.Context, key, field, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.hashes[key] == nil {
		m.hashes[key] = make(map[string]string)
	}
	m.hashes[key][field] = value
	return nil
}

func (m *memCache) HGet(_ context.Context, key, field string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.hashes[key][field]
	if !ok {
		return "", cache.ErrNotFound
	}
	return val, nil
}

func (m *memCache) HGetAll(_ context.Context, key string) (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]string, len(m.hashes[key]))
	for k, v := range m.hashes[key] {
		out[k] = v
	}
	return out, nil
}

func (m *memCache) Expire(_ context.Context, _ string, _ time.Duration) error {
	return nil
}

// fakeAirClient implements AirClient with overridable function fields.
type fakeAirClient struct {
	searchOffersFn   func(ctx context.Context, req airapi.OfferRequest) (*airapi.OfferCollection, error)
	getOfferFn       func(ctx context.Context, id string) (*airapi.Offer, error)
	getSeatMapsFn    func(ctx context.Context, offerID string) ([]airapi.SeatMap, error)
	createOrderFn    func(ctx context.Context, req airapi.OrderRequest) (*airapi.Order, error)
	cancelOrderFn    func(ctx context.Context, orderID string) (*airapi.Order, error)
	searchAirportsFn func(ctx context.Context, query string) ([]airapi.Airport, error)
}

func (f *fakeAirClient) SearchOffers(ctx context.Context, req airapi.OfferRequest) (*airapi.OfferCollection, error) {
	return f.searchOffersFn(ctx, req)
}

func (f *fakeAirClient) GetOffer(ctx context.Context, id string) (*airapi.Offer, error) {
	return f.getOfferFn(ctx, id)
}

func (f *fakeAirClient) GetSeatMaps(ctx context.Context, offerID string) ([]airapi.SeatMap, error) {
	return f.getSeatMapsFn(ctx, offerID)
}

func (f *fakeAirClient) CreateOrder(ctx context.Context, req airapi.OrderRequest) (*airapi.Order, error) {
	return f.createOrderFn(ctx, req)
}

func (f *fakeAirClient) CancelOrder(ctx context.Context, orderID string) (*airapi.Order, error) {
	return f.cancelOrderFn(ctx, orderID)
}

func (f *fakeAirClient) SearchAirports(ctx context.Context, query string) ([]airapi.Airport, error) {
	return f.searchAirportsFn(ctx, query)
}

// fakeArchive records calls in memory.
type fakeArchive struct {
	mu            sync.Mutex
	confirmations []OrderConfirmation
	incidents     []string
}

func (f *fakeArchive) SaveConfirmation(_ context.Context, _ string, conf *OrderConfirmation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.confirmations = append(f.confirmations, *conf)
	return nil
}

func (f *fakeArchive) SaveIncident(_ context.Context, _, paymentIntentID, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.incidents = append(f.incidents, paymentIntentID)
	return nil
}

// stubGen yields deterministic ids.
type stubGen struct {
	n int64
}

func (g *stubGen) GenerateID() int64 {
	g.n++
	return g.n
}

func (g *stubGen) GenerateKey() string {
	g.n++
	return "key-" + string(rune('a'+g.n%26))
}
