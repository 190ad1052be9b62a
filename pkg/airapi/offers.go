package airapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"airbook/pkg/logger"
)

type offerRequestResponse struct {
	Data struct {
		ID     string  `json:"id"`
		Offers []Offer `json:"offers"`
	} `json:"data"`
	Warnings []Warning `json:"warnings"`
}

// SearchOffers performs one offer search. It never retries: a search is
// user-cancelable and expensive, so the retry decision belongs to the caller.
func (c *Client) SearchOffers(ctx context.Context, req OfferRequest) (*OfferCollection, error) {
	var resp offerRequestResponse
	if err := c.do(ctx, http.MethodPost, "/air/offer_requests", req, &resp); err != nil {
		return nil, err
	}

	if resp.Data.ID == "" {
		return nil, fmt.Errorf("%w: offer request response missing data.id", ErrMalformedResponse)
	}

	c.logger.Info("offer search completed",
		logger.Field{Key: "offer_request_id", Value: resp.Data.ID},
		logger.Field{Key: "offer_count", Value: len(resp.Data.Offers)},
		logger.Field{Key: "warning_count", Value: len(resp.Warnings)})

	return &OfferCollection{
		ID:       resp.Data.ID,
		Offers:   resp.Data.Offers,
		Warnings: resp.Warnings,
	}, nil
}

type offerResponse struct {
	Data Offer `json:"data"`
}

// GetOffer fetches a single offer, retrying with exponential backoff (base 1s,
// doubling) up to maxAttempts retries after the initial try. The final error
// wraps the last cause and states the total attempt count.
func (c *Client) GetOffer(ctx context.Context, id string) (*Offer, error) {
	var lastErr error

	for attempt := 0; ; attempt++ {
		offer, err := c.fetchOffer(ctx, id)
		if err == nil {
			return offer, nil
		}
		lastErr = err

		if attempt >= c.maxAttempts {
			break
		}

		if c.onRetry != nil {
			c.onRetry()
		}

		delay := c.backoff(attempt)
		c.logger.Warn("offer fetch failed, retrying",
			logger.Field{Key: "offer_id", Value: id},
			logger.Field{Key: "attempt", Value: attempt + 1},
			logger.Field{Key: "delay_ms", Value: delay.Milliseconds()})

		if serr := c.sleep(ctx, delay); serr != nil {
			// Abandoned by the caller; the pending retry must not fire.
			return nil, serr
		}
	}

	return nil, fmt.Errorf("get offer %s failed after %d attempts: %w", id, c.maxAttempts+1, lastErr)
}

func (c *Client) fetchOffer(ctx context.Context, id string) (*Offer, error) {
	var resp offerResponse
	if err := c.do(ctx, http.MethodGet, "/air/offers/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, err
	}

	// Absence of data.id is a broken contract, not a missing offer.
	if resp.Data.ID == "" {
		return nil, fmt.Errorf("%w: offer response missing data.id", ErrMalformedResponse)
	}
	return &resp.Data, nil
}
