package booking

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"airbook/pkg/airapi"
	"airbook/pkg/idgen"
	"airbook/pkg/logger"
	"airbook/pkg/metrics"
)

// Archive persists submission outcomes for support lookup. Reconciliation
// incidents in particular must survive the session.
type Archive interface {
	SaveConfirmation(ctx context.Context, sessionID string, conf *OrderConfirmation) error
	SaveIncident(ctx context.Context, sessionID, paymentIntentID, cause string) error
}

// SubmissionError is a failed submission with its terminal state. Only
// StateTransientFailure outcomes are safe to resubmit unchanged.
type SubmissionError struct {
	State SubmitState
	App   *AppError
}

func (e *SubmissionError) Error() string { return e.App.Error() }

func (e *SubmissionError) Unwrap() error { return e.App }

// Coordinator assembles the final order request from session state and
// interprets the result of submitting it.
type Coordinator struct {
	api     AirClient
	store   SessionStore
	archive Archive
	idgen   idgen.Generator
	logger  logger.Client
	metrics *metrics.Metrics

	backoff    airapi.BackoffPolicy
	sleep      airapi.SleepFunc
	maxRetries int
}

func NewCoordinator(api AirClient, store SessionStore, archive Archive, gen idgen.Generator,
	m *metrics.Metrics, log logger.Client) *Coordinator {
	return &Coordinator{
		api:        api,
		store:      store,
		archive:    archive,
		idgen:      gen,
		logger:     log,
		metrics:    m,
		backoff:    airapi.ExponentialBackoff(1 * time.Second),
		sleep:      defaultSleep,
		maxRetries: 2,
	}
}

func defaultSleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Submit builds the order request from the session and submits it. Transient
// failures are retried with the same idempotency key; payment failures and
// reconciliation-required failures are terminal.
func (c *Coordinator) Submit(ctx context.Context, sessionID string) (*OrderConfirmation, error) {
	req, total, currency, err := c.assemble(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	c.logger.Info("submitting order",
		logger.Field{Key: "session_id", Value: sessionID},
		logger.Field{Key: "state", Value: string(StateSubmitting)},
		logger.Field{Key: "offer_count", Value: len(req.SelectedOffers)})

	var lastSubErr *SubmissionError
	for attempt := 0; ; attempt++ {
		order, err := c.api.CreateOrder(ctx, *req)
		if err == nil {
			conf := &OrderConfirmation{
				OrderID:          order.ID,
				BookingReference: order.BookingReference,
				TotalAmount:      total,
				Currency:         currency,
				State:            StateConfirmed,
			}
			c.finalize(ctx, sessionID, conf)
			c.metrics.SubmissionsTotal.WithLabelValues("confirmed").Inc()
			c.metrics.SubmissionSeconds.Observe(time.Since(start).Seconds())
			return conf, nil
		}

		subErr := c.classify(ctx, sessionID, err)
		lastSubErr = subErr

		if subErr.State != StateTransientFailure || !isAutoRetryable(err) || attempt >= c.maxRetries {
			break
		}
		if serr := c.sleep(ctx, c.backoff(attempt)); serr != nil {
			return nil, serr
		}
		c.logger.Warn("retrying order submission",
			logger.Field{Key: "session_id", Value: sessionID},
			logger.Field{Key: "attempt", Value: attempt + 1})
	}

	c.metrics.SubmissionsTotal.WithLabelValues(strings.ToLower(string(lastSubErr.State))).Inc()
	return nil, lastSubErr
}

// assemble reads the session snapshot and builds the order-creation request.
// The search-time count placeholders are never used here; only the roster
// built from the booking forms goes on the wire.
func (c *Coordinator) assemble(ctx context.Context, sessionID string) (*airapi.OrderRequest, float64, string, error) {
	info, err := c.store.GetFlightInfo(ctx, sessionID)
	if err != nil {
		return nil, 0, "", NewTransportError("failed to read session", err)
	}
	if info == nil || info.OutboundOffer == nil {
		return nil, 0, "", NewValidationError("no flight selected for this session")
	}

	forms, err := c.store.GetPassengers(ctx, sessionID)
	if err != nil {
		return nil, 0, "", NewTransportError("failed to read session", err)
	}
	if len(forms) == 0 {
		return nil, 0, "", NewValidationError("no passengers captured for this session")
	}

	seats, err := c.store.GetSeatSelections(ctx, sessionID)
	if err != nil {
		return nil, 0, "", NewTransportError("failed to read session", err)
	}

	payment, err := c.store.GetPayment(ctx, sessionID)
	if err != nil {
		return nil, 0, "", NewTransportError("failed to read session", err)
	}
	paymentType := "balance"
	if payment != nil && payment.Type != "" {
		paymentType = payment.Type
	}

	docsRequired := info.OutboundOffer.IdentityDocumentsRequired
	offers := []string{info.OutboundOfferID}
	total := info.OutboundOffer.TotalAmount
	currency := info.OutboundOffer.Currency
	if info.ReturnOffer != nil {
		offers = append(offers, info.ReturnOfferID)
		total += info.ReturnOffer.TotalAmount
		docsRequired = docsRequired || info.ReturnOffer.IdentityDocumentsRequired
	}
	total += seats.TotalPrice()

	roster := BuildRoster(forms, RosterRequirements{IdentityDocumentsRequired: docsRequired})

	return &airapi.OrderRequest{
		Type:           "instant",
		SelectedOffers: offers,
		Passengers:     roster,
		Payments: []airapi.Payment{{
			Type:     paymentType,
			Amount:   formatAmount(total),
			Currency: currency,
		}},
		Services:       seats.Services(),
		IdempotencyKey: c.idgen.GenerateKey(),
	}, total, currency, nil
}

// classify maps a submission failure onto the state machine. The upstream
// machine code is authoritative: payment_* means the payment was declined and
// no order exists; order_creation_failed (or any payment-intent evidence on a
// server error) means money moved without an order and must never be retried.
func (c *Coordinator) classify(ctx context.Context, sessionID string, err error) *SubmissionError {
	var terr *airapi.TransportError
	if errors.As(err, &terr) {
		return &SubmissionError{
			State: StateTransientFailure,
			App: &AppError{
				Status:  http.StatusBadGateway,
				Code:    ErrorCodeTransport,
				Message: "order submission failed before completing; it is safe to try again",
				Err:     err,
			},
		}
	}

	var uerr *airapi.UpstreamError
	if errors.As(err, &uerr) {
		switch {
		case strings.HasPrefix(uerr.Code, "payment_"):
			return &SubmissionError{
				State: StatePaymentFailed,
				App: &AppError{
					Status:  http.StatusPaymentRequired,
					Code:    ErrorCodePaymentFailed,
					Message: "payment was not authorized; no order was created, try a different payment method",
					Err:     err,
				},
			}
		case uerr.Code == "order_creation_failed" || (uerr.PaymentIntentID != "" && uerr.StatusCode >= 500):
			c.recordIncident(ctx, sessionID, uerr)
			return &SubmissionError{
				State: StateReconciliationRequired,
				App: &AppError{
					Status:  http.StatusConflict,
					Code:    ErrorCodeReconciliationRequired,
					Message: "payment succeeded but the order could not be created; contact support, do not retry",
					Err:     err,
				},
			}
		case uerr.StatusCode >= 500:
			return &SubmissionError{
				State: StateTransientFailure,
				App: &AppError{
					Status:  http.StatusBadGateway,
					Code:    ErrorCodeUpstream,
					Message: "the carrier system is unavailable; it is safe to try again",
					Err:     err,
				},
			}
		default:
			// Rejected input (expired offer, invalid passenger data). No
			// payment was taken, so resubmission after correction is safe,
			// but nothing is retried automatically.
			return &SubmissionError{
				State: StateTransientFailure,
				App: &AppError{
					Status:  http.StatusUnprocessableEntity,
					Code:    ErrorCodeUpstream,
					Message: "the carrier rejected the order: " + uerr.Message,
					Err:     err,
				},
			}
		}
	}

	if errors.Is(err, airapi.ErrMalformedResponse) {
		// The request completed but the response was unreadable, so the order
		// may exist. Resubmitting with a fresh idempotency key could create a
		// duplicate; this needs manual verification, not a retry.
		c.logger.Error("order creation returned an unreadable response",
			logger.Field{Key: "session_id", Value: sessionID},
			logger.Field{Key: "err", Value: err})
		return &SubmissionError{
			State: StateReconciliationRequired,
			App: &AppError{
				Status:  http.StatusConflict,
				Code:    ErrorCodeDataConsistency,
				Message: "the order response could not be read and the order may already exist; contact support before retrying",
				Err:     err,
			},
		}
	}

	return &SubmissionError{
		State: StateTransientFailure,
		App: &AppError{
			Status:  http.StatusInternalServerError,
			Code:    ErrorCodeInternalFailure,
			Message: "order submission failed",
			Err:     err,
		},
	}
}

// isAutoRetryable limits automatic resubmission to failures where the request
// demonstrably did not complete: network errors and upstream 5xx with no
// payment evidence.
func isAutoRetryable(err error) bool {
	var terr *airapi.TransportError
	if errors.As(err, &terr) {
		return true
	}
	var uerr *airapi.UpstreamError
	if errors.As(err, &uerr) {
		return uerr.StatusCode >= 500 && uerr.PaymentIntentID == ""
	}
	return false
}

func (c *Coordinator) finalize(ctx context.Context, sessionID string, conf *OrderConfirmation) {
	if err := c.store.SetOrderID(ctx, sessionID, conf.OrderID); err != nil {
		c.logger.Error("failed to store order id",
			logger.Field{Key: "session_id", Value: sessionID},
			logger.Field{Key: "err", Value: err})
	}
	data := &BookingData{
		OrderID:          conf.OrderID,
		BookingReference: conf.BookingReference,
		TotalAmount:      conf.TotalAmount,
		Currency:         conf.Currency,
	}
	if err := c.store.SetBookingData(ctx, sessionID, data); err != nil {
		c.logger.Error("failed to store booking data",
			logger.Field{Key: "session_id", Value: sessionID},
			logger.Field{Key: "err", Value: err})
	}
	if c.archive != nil {
		if err := c.archive.SaveConfirmation(ctx, sessionID, conf); err != nil {
			c.logger.Error("failed to archive confirmation",
				logger.Field{Key: "booking_reference", Value: conf.BookingReference},
				logger.Field{Key: "err", Value: err})
		}
	}
}

func (c *Coordinator) recordIncident(ctx context.Context, sessionID string, uerr *airapi.UpstreamError) {
	c.logger.Error("payment captured without an order, reconciliation required",
		logger.Field{Key: "session_id", Value: sessionID},
		logger.Field{Key: "payment_intent_id", Value: uerr.PaymentIntentID},
		logger.Field{Key: "upstream_code", Value: uerr.Code})
	if c.archive == nil {
		return
	}
	if err := c.archive.SaveIncident(ctx, sessionID, uerr.PaymentIntentID, uerr.Raw); err != nil {
		c.logger.Error("failed to archive reconciliation incident",
			logger.Field{Key: "session_id", Value: sessionID},
			logger.Field{Key: "err", Value: err})
	}
}
