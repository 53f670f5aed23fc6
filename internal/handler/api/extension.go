package api

import (
	"net/http"

	reqdto "boxrent/internal/handler/dto/request"
	resdto "boxrent/internal/handler/dto/response"
	"boxrent/internal/pkg/errs"
	"boxrent/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ExtensionHandler struct {
	extensionCommands commands.ExtensionCommands
}

func NewExtensionHandler(extensionCommands commands.ExtensionCommands) *ExtensionHandler {
	return &ExtensionHandler{
		extensionCommands: extensionCommands,
	}
}

// @Summary Quote extension
// @Description Price a booking extension without creating anything
// @Tags extensions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.QuoteExtensionRequest true "Quote request"
// @Success 200 {object} resdto.ExtensionQuoteResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /bookings/{id}/extension/quote [post]
func (h *ExtensionHandler) QuoteExtension(c *gin.Context) {
	actorID, actorRole, bookingID, ok := h.extensionActor(c)
	if !ok {
		return
	}

	var req reqdto.QuoteExtensionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	quote, err := h.extensionCommands.Quote(c.Request.Context(), bookingID, actorID, actorRole, req.NewEnd)
	if err != nil {
		h.respondExtensionError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromExtensionQuote(quote))
}

// @Summary Initiate extension
// @Description Price the extension and open a payment intent for it
// @Tags extensions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.InitiateExtensionRequest true "Initiate request"
// @Success 200 {object} resdto.InitiateExtensionResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /bookings/{id}/extension/initiate [post]
func (h *ExtensionHandler) InitiateExtension(c *gin.Context) {
	actorID, actorRole, bookingID, ok := h.extensionActor(c)
	if !ok {
		return
	}

	var req reqdto.InitiateExtensionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.extensionCommands.Initiate(c.Request.Context(), bookingID, actorID, actorRole, req.NewEnd)
	if err != nil {
		h.respondExtensionError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromInitiateExtensionResult(result))
}

// @Summary Complete extension
// @Description Verify the settled payment intent and apply the extension, moving displaced bookings onto sibling boxes
// @Tags extensions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.CompleteExtensionRequest true "Complete request"
// @Success 200 {object} resdto.CompleteExtensionResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 402 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /bookings/{id}/extension/complete [post]
func (h *ExtensionHandler) CompleteExtension(c *gin.Context) {
	actorID, actorRole, bookingID, ok := h.extensionActor(c)
	if !ok {
		return
	}

	var req reqdto.CompleteExtensionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.extensionCommands.Complete(c.Request.Context(), bookingID, actorID, actorRole, req.PaymentIntentID)
	if err != nil {
		h.respondExtensionError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromExtensionResult(result))
}

func (h *ExtensionHandler) extensionActor(c *gin.Context) (uuid.UUID, string, uuid.UUID, bool) {
	actorID, actorRole, ok := actor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return uuid.Nil, "", uuid.Nil, false
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return uuid.Nil, "", uuid.Nil, false
	}

	return actorID, actorRole, bookingID, true
}

func (h *ExtensionHandler) respondExtensionError(c *gin.Context, err error) {
	switch {
	case errs.Is(err, commands.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Booking not found",
		})
	case errs.Is(err, commands.ErrBoxNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Box not found",
		})
	case errs.Is(err, commands.ErrBookingAccess):
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Access denied",
		})
	case errs.Is(err, commands.ErrInvalidExtensionWindow):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "New end must fall after the current end",
		})
	case errs.Is(err, commands.ErrExtensionNotAllowed):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Booking cannot be extended in its current state",
		})
	case errs.Is(err, commands.ErrInvalidExtensionAmount):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Extension could not be priced",
		})
	case errs.Is(err, commands.ErrNoReassignment):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Extension conflicts with bookings that cannot be reassigned",
		})
	case errs.Is(err, commands.ErrBookingConflict):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Extension conflicts with a concurrent booking",
		})
	case errs.Is(err, commands.ErrPaymentNotSettled):
		c.JSON(http.StatusPaymentRequired, gin.H{
			"error": "Payment has not settled",
		})
	case errs.Is(err, commands.ErrPaymentMismatch):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Payment does not match the quoted extension",
		})
	case errs.Is(err, commands.ErrPaymentGatewayFailed):
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Payment provider is unavailable",
		})
	case errs.Is(err, commands.ErrDomainValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Domain validation failed",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
