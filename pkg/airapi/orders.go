package airapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

type orderResponse struct {
	Data Order `json:"data"`
}

// CreateOrder submits the final order. No retry here: submission retry policy
// depends on failure classification, which is the coordinator's job.
func (c *Client) CreateOrder(ctx context.Context, req OrderRequest) (*Order, error) {
	var resp orderResponse
	if err := c.do(ctx, http.MethodPost, "/air/orders", req, &resp); err != nil {
		return nil, err
	}

	if resp.Data.ID == "" || resp.Data.BookingReference == "" {
		return nil, fmt.Errorf("%w: order response missing id or booking_reference", ErrMalformedResponse)
	}
	return &resp.Data, nil
}

// CancelOrder posts the action-style cancel endpoint for an order id.
func (c *Client) CancelOrder(ctx context.Context, orderID string) (*Order, error) {
	var resp orderResponse
	path := "/air/orders/" + url.PathEscape(orderID) + "/actions/cancel"
	if err := c.do(ctx, http.MethodPost, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}
