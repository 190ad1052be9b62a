package booking

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service *Service
}

func NewBookingHandler(s *Service) *BookingHandler {
	return &BookingHandler{
		service: s,
	}
}

func (h *BookingHandler) RegisterRoutes(router *gin.Engine) {
	router.POST("/v1/flights/search", h.SearchHandler)
	router.POST("/v1/flights/filter", h.FilterHandler)
	router.GET("/v1/offers/:id", h.GetOfferHandler)
	router.GET("/v1/offers/:id/seat_maps", h.SeatMapsHandler)
	router.GET("/v1/airports", h.AirportsHandler)

	router.POST("/v1/sessions", h.SelectFlightHandler)
	router.GET("/v1/sessions/:id", h.GetSessionHandler)
	router.PUT("/v1/sessions/:id/passengers", h.PassengersHandler)
	router.PUT("/v1/sessions/:id/seats/:segment_id", h.SetSeatHandler)
	router.DELETE("/v1/sessions/:id/seats/:segment_id", h.RemoveSeatHandler)
	router.PUT("/v1/sessions/:id/payment", h.PaymentHandler)
	router.POST("/v1/sessions/:id/order", h.SubmitOrderHandler)

	router.POST("/v1/orders/:id/cancel", h.CancelOrderHandler)
	router.GET("/v1/orders/:id", h.LookupBookingHandler)
}

// SearchHandler godoc
// @Summary      Search flight offers
// @Description  Validate search input, compile the itinerary request and fetch offers
// @Tags         flights
// @Accept       json
// @Produce      json
// @Param        request body SearchInput true "Search input"
// @Success      200 {object} SearchResponse
// @Failure      400 {object} map[string]string
// @Router       /v1/flights/search [post]
func (h *BookingHandler) SearchHandler(c *gin.Context) {
	var req SearchInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid JSON body",
			"code":  ErrorCodeValidation,
		})
		return
	}

	response, err := h.service.Search(c.Request.Context(), req)
	if err != nil {
		sendError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *BookingHandler) FilterHandler(c *gin.Context) {
	var req FilterOffersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid JSON body",
			"code":  ErrorCodeValidation,
		})
		return
	}

	response, err := h.service.FilterOffers(c.Request.Context(), req)
	if err != nil {
		sendError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *BookingHandler) GetOfferHandler(c *gin.Context) {
	offer, err := h.service.GetOffer(c.Request.Context(), c.Param("id"))
	if err != nil {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"offer": offer})
}

func (h *BookingHandler) SeatMapsHandler(c *gin.Context) {
	maps, err := h.service.GetSeatMaps(c.Request.Context(), c.Param("id"))
	if err != nil {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"seat_maps": maps})
}

func (h *BookingHandler) AirportsHandler(c *gin.Context) {
	airports, err := h.service.SearchAirports(c.Request.Context(), c.Query("query"))
	if err != nil {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"airports": airports})
}

func (h *BookingHandler) SelectFlightHandler(c *gin.Context) {
	var req SelectFlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid JSON body",
			"code":  ErrorCodeValidation,
		})
		return
	}

	sessionID, mismatch, err := h.service.SelectFlight(c.Request.Context(), req)
	if err != nil {
		sendError(c, err)
		return
	}

	body := gin.H{"session_id": sessionID}
	if mismatch != nil {
		// Advisory only: the caller may proceed or restart the search.
		body["mismatch"] = mismatch
		body["mismatch_message"] = mismatch.Message()
	}
	c.JSON(http.StatusOK, body)
}

func (h *BookingHandler) GetSessionHandler(c *gin.Context) {
	view, err := h.service.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

type passengersRequest struct {
	Counts     PassengerCounts `json:"counts"`
	Passengers []PassengerForm `json:"passengers"`
}

func (h *BookingHandler) PassengersHandler(c *gin.Context) {
	var req passengersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid JSON body",
			"code":  ErrorCodeValidation,
		})
		return
	}

	if err := h.service.SavePassengers(c.Request.Context(), c.Param("id"), req.Counts, req.Passengers); err != nil {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *BookingHandler) SetSeatHandler(c *gin.Context) {
	var seat SeatSelection
	if err := c.ShouldBindJSON(&seat); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid JSON body",
			"code":  ErrorCodeValidation,
		})
		return
	}

	seats, err := h.service.SetSeat(c.Request.Context(), c.Param("id"), c.Param("segment_id"), seat)
	if err != nil {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"seat_selections": seats, "total_price": seats.TotalPrice()})
}

func (h *BookingHandler) RemoveSeatHandler(c *gin.Context) {
	seats, err := h.service.RemoveSeat(c.Request.Context(), c.Param("id"), c.Param("segment_id"))
	if err != nil {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"seat_selections": seats, "total_price": seats.TotalPrice()})
}

func (h *BookingHandler) PaymentHandler(c *gin.Context) {
	var payment PaymentInfo
	if err := c.ShouldBindJSON(&payment); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid JSON body",
			"code":  ErrorCodeValidation,
		})
		return
	}

	if err := h.service.SetPayment(c.Request.Context(), c.Param("id"), payment); err != nil {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *BookingHandler) SubmitOrderHandler(c *gin.Context) {
	conf, err := h.service.SubmitOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, conf)
}

func (h *BookingHandler) CancelOrderHandler(c *gin.Context) {
	order, err := h.service.CancelOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

func (h *BookingHandler) LookupBookingHandler(c *gin.Context) {
	data, err := h.service.LookupBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		sendError(c, err)
		return
	}
	if data == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		return
	}
	c.JSON(http.StatusOK, data)
}

func sendError(c *gin.Context, err error) {
	var subErr *SubmissionError
	if errors.As(err, &subErr) {
		c.JSON(subErr.App.Status, gin.H{
			"error":   subErr.App.Message,
			"code":    subErr.App.Code,
			"state":   subErr.State,
			"details": subErr.App.Error(),
		})
		return
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Status, gin.H{
			"error": appErr.Message,
			"code":  appErr.Code,
		})
		return
	}

	// Default to 500 for unknown errors
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   "Internal Server Error",
		"code":    ErrorCodeInternalFailure,
		"details": err.Error(),
	})
}
