package airapi

import (
	"context"
	"net/http"
	"net/url"
)

type seatMapResponse struct {
	Data []SeatMap `json:"data"`
}

// GetSeatMaps fetches the seat maps for an offer. Rows contain nil elements
// where the upstream returned null (aisle gaps); callers must skip them.
func (c *Client) GetSeatMaps(ctx context.Context, offerID string) ([]SeatMap, error) {
	var resp seatMapResponse
	path := "/air/seat_maps?offer_id=" + url.QueryEscape(offerID)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}
