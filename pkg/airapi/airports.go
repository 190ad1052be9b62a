package airapi

import (
	"context"
	"net/http"
	"net/url"
)

type airportResponse struct {
	Data []Airport `json:"data"`
}

// SearchAirports looks airports up by free-text query. Queries under two
// characters are rejected before any network call.
func (c *Client) SearchAirports(ctx context.Context, query string) ([]Airport, error) {
	if len(query) < 2 {
		return nil, ErrQueryTooShort
	}

	var resp airportResponse
	path := "/air/airports?query=" + url.QueryEscape(query)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}
