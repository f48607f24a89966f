package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"raffle/internal/models"
	"raffle/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/logger"
)

// callerHeader carries the caller's address on every request. The
// service only needs to know whether the caller is the designated
// operator; no further identity verification happens here.
const callerHeader = "X-Caller-Address"

// HTTPHandler exposes the campaign service over HTTP.
type HTTPHandler struct {
	service *services.CampaignService
}

// NewHTTPHandler creates a new HTTPHandler.
func NewHTTPHandler(service *services.CampaignService) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// RegisterRoutes registers all the application routes.
func (h *HTTPHandler) RegisterRoutes(router *gin.Engine) {
	router.POST("/tickets", h.BuyTicket)
	router.POST("/draws/manual", h.DrawTicketManual)
	router.POST("/draws/auto", h.DrawTicketAuto)
	router.DELETE("/campaign", h.CancelCampaign)
	router.GET("/campaign", h.ShowCampaign)
	router.GET("/winner", h.ShowWinner)
	router.GET("/tickets/:number/uri", h.ShowTicketURI)
	router.GET("/buyers/:address", h.ShowBuyer)
}

type buyTicketRequest struct {
	TicketNumber int    `json:"ticketNumber" binding:"required"`
	URI          string `json:"uri" binding:"required"`
}

type drawManualRequest struct {
	TicketNumber int `json:"ticketNumber" binding:"required"`
}

// statusForError maps the service's named rejections to HTTP statuses.
func statusForError(err error) int {
	switch {
	case errors.Is(err, models.ErrInvalidConfig):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrNotOwner),
		errors.Is(err, models.ErrManagerPurchase):
		return http.StatusForbidden
	case errors.Is(err, models.ErrTicketNotFound),
		errors.Is(err, models.ErrUnknownTicket),
		errors.Is(err, models.ErrNoWinner):
		return http.StatusNotFound
	case errors.Is(err, models.ErrSaleNotOpen),
		errors.Is(err, models.ErrCampaignFinished),
		errors.Is(err, models.ErrTicketTaken),
		errors.Is(err, models.ErrBuyLimitReached),
		errors.Is(err, models.ErrSoldOut),
		errors.Is(err, models.ErrSaleStillOpen),
		errors.Is(err, models.ErrNoTicketsSold),
		errors.Is(err, models.ErrTicketsSold),
		errors.Is(err, models.ErrSaleEnded):
		return http.StatusConflict
	case errors.Is(err, models.ErrDuplicateTicket),
		errors.Is(err, models.ErrRemovalOutOfRange):
		return http.StatusInternalServerError
	default:
		// Collaborator failures (minting) and anything unclassified.
		return http.StatusBadGateway
	}
}

func (h *HTTPHandler) rejectWith(c *gin.Context, err error) {
	status := statusForError(err)
	if status >= http.StatusInternalServerError {
		logger.Errorf("request %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// BuyTicket handles a purchase request for a specific ticket number.
func (h *HTTPHandler) BuyTicket(c *gin.Context) {
	var req buyTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	receipt, err := h.service.BuyTicket(c.GetHeader(callerHeader), req.TicketNumber, req.URI)
	if err != nil {
		h.rejectWith(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"ticketNumber": req.TicketNumber,
		"receiptId":    receipt,
	})
}

// DrawTicketManual handles an operator draw of a named ticket.
func (h *HTTPHandler) DrawTicketManual(c *gin.Context) {
	var req drawManualRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.service.DrawTicketManual(c.GetHeader(callerHeader), req.TicketNumber); err != nil {
		h.rejectWith(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ticketNumber": req.TicketNumber})
}

// DrawTicketAuto handles an operator draw of a pseudo-randomly selected
// ticket.
func (h *HTTPHandler) DrawTicketAuto(c *gin.Context) {
	ticket, err := h.service.DrawTicketAuto(c.GetHeader(callerHeader))
	if err != nil {
		h.rejectWith(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ticketNumber": ticket})
}

// CancelCampaign handles an operator cancellation.
func (h *HTTPHandler) CancelCampaign(c *gin.Context) {
	if err := h.service.Cancel(c.GetHeader(callerHeader)); err != nil {
		h.rejectWith(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"finished": true})
}

// ShowCampaign returns the campaign configuration and counters.
func (h *HTTPHandler) ShowCampaign(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Status())
}

// ShowWinner returns the most recently drawn ticket and its owner.
func (h *HTTPHandler) ShowWinner(c *gin.Context) {
	ticket, err := h.service.CurrentWinner()
	if err != nil {
		h.rejectWith(c, err)
		return
	}
	owner, err := h.service.CurrentWinnerOwner()
	if err != nil {
		h.rejectWith(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"ticketNumber": ticket,
		"owner":        owner,
	})
}

// ShowTicketURI returns the URI recorded for a ticket at purchase time.
func (h *HTTPHandler) ShowTicketURI(c *gin.Context) {
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ticket number"})
		return
	}

	uri, err := h.service.TicketURI(number)
	if err != nil {
		h.rejectWith(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"ticketNumber": number,
		"uri":          uri,
	})
}

// ShowBuyer returns a buyer's ticket count and cumulative spend.
func (h *HTTPHandler) ShowBuyer(c *gin.Context) {
	address := c.Param("address")
	c.JSON(http.StatusOK, models.BuyerStatus{
		Address:     address,
		TicketCount: h.service.BuyerTicketCount(address),
		TotalSpend:  h.service.BuyerSpend(address),
	})
}
