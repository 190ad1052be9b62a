package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"airbook/pkg/db"
)

// OrderArchive persists submission outcomes in SQL so support can look up a
// booking after the session expires, and so reconciliation incidents are
// never lost with the session.
type OrderArchive struct {
	sql db.SQLExecutor
}

func NewOrderArchive(executor db.SQLExecutor) *OrderArchive {
	return &OrderArchive{sql: executor}
}

func (a *OrderArchive) SaveConfirmation(ctx context.Context, sessionID string, conf *OrderConfirmation) error {
	query := `INSERT INTO order_archive
		(session_id, order_id, booking_reference, total_amount, currency, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := a.sql.ExecContext(ctx, query,
		sessionID, conf.OrderID, conf.BookingReference, conf.TotalAmount, conf.Currency,
		string(StateConfirmed), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to archive confirmation: %w", err)
	}
	return nil
}

func (a *OrderArchive) SaveIncident(ctx context.Context, sessionID, paymentIntentID, cause string) error {
	query := `INSERT INTO reconciliation_incidents
		(session_id, payment_intent_id, cause, created_at)
		VALUES (?, ?, ?, ?)`

	_, err := a.sql.ExecContext(ctx, query, sessionID, paymentIntentID, cause, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to archive reconciliation incident: %w", err)
	}
	return nil
}

// GetByReference returns the archived booking for a reference, or nil when no
// such booking exists.
func (a *OrderArchive) GetByReference(ctx context.Context, reference string) (*BookingData, error) {
	query := `SELECT order_id, booking_reference, total_amount, currency
		FROM order_archive WHERE booking_reference = ?`

	var data BookingData
	row := a.sql.QueryRowContext(ctx, query, reference)
	err := row.Scan(&data.OrderID, &data.BookingReference, &data.TotalAmount, &data.Currency)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read order archive: %w", err)
	}
	return &data, nil
}
