package airapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"airbook/pkg/logger"
)

const (
	defaultMaxAttempts = 3
	defaultBackoffBase = 1 * time.Second
	versionHeader      = "Air-Version"
)

// Client talks to the flight-distribution API. Every request carries the
// bearer credential and the fixed API-version header.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	token       string
	version     string
	limiter     *rate.Limiter
	backoff     BackoffPolicy
	sleep       SleepFunc
	maxAttempts int
	onRetry     func()
	logger      logger.Client
}

// OnRetry registers a callback fired once per offer-fetch retry, used to feed
// an external counter.
func (c *Client) OnRetry(fn func()) {
	c.onRetry = fn
}

func NewClient(httpClient *http.Client, baseURL, token, version string, logger logger.Client) (*Client, error) {
	if token == "" {
		return nil, errors.New("air api: missing bearer credential")
	}

	return &Client{
		httpClient:  httpClient,
		baseURL:     baseURL,
		token:       token,
		version:     version,
		limiter:     rate.NewLimiter(rate.Limit(10), 20),
		backoff:     ExponentialBackoff(defaultBackoffBase),
		sleep:       sleepWithContext,
		maxAttempts: defaultMaxAttempts,
		logger:      logger,
	}, nil
}

type apiErrorBody struct {
	Errors []struct {
		Code    string `json:"code"`
		Title   string `json:"title"`
		Message string `json:"message"`
	} `json:"errors"`
	Meta struct {
		PaymentIntentID string `json:"payment_intent_id"`
	} `json:"meta"`
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(map[string]any{"data": body})
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set(versionHeader, c.version)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.upstreamError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrMalformedResponse, path, err)
	}
	return nil
}

func (c *Client) upstreamError(resp *http.Response) error {
	raw, _ := io.ReadAll(resp.Body)

	uerr := &UpstreamError{
		StatusCode: resp.StatusCode,
		Raw:        string(raw),
	}

	var parsed apiErrorBody
	if err := json.Unmarshal(raw, &parsed); err == nil && len(parsed.Errors) > 0 {
		uerr.Code = parsed.Errors[0].Code
		uerr.Title = parsed.Errors[0].Title
		uerr.Message = parsed.Errors[0].Message
		uerr.PaymentIntentID = parsed.Meta.PaymentIntentID
	}

	c.logger.Warn("upstream error",
		logger.Field{Key: "status", Value: resp.StatusCode},
		logger.Field{Key: "code", Value: uerr.Code})
	return uerr
}
