package api

import (
	"errors"
	"net/http"
	"time"

	resdto "boxrent/internal/handler/dto/response"
	"boxrent/internal/pkg/errs"
	"boxrent/internal/pkg/ptr"
	"boxrent/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CatalogHandler struct {
	catalogQueries      queries.CatalogQueries
	availabilityQueries queries.AvailabilityQueries
}

func NewCatalogHandler(catalogQueries queries.CatalogQueries, availabilityQueries queries.AvailabilityQueries) *CatalogHandler {
	return &CatalogHandler{
		catalogQueries:      catalogQueries,
		availabilityQueries: availabilityQueries,
	}
}

// @Summary List locations
// @Description List all rental locations
// @Tags catalog
// @Produce json
// @Success 200 {array} resdto.LocationResponse
// @Router /locations [get]
func (h *CatalogHandler) ListLocations(c *gin.Context) {
	locations, err := h.catalogQueries.ListLocations(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	response := make([]*resdto.LocationResponse, len(locations))
	for i, l := range locations {
		response[i] = resdto.FromLocationView(l)
	}
	c.JSON(http.StatusOK, response)
}

// @Summary Get location
// @Description Get location by ID
// @Tags catalog
// @Produce json
// @Param id path string true "Location ID"
// @Success 200 {object} resdto.LocationResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /locations/{id} [get]
func (h *CatalogHandler) GetLocation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid location ID format",
		})
		return
	}

	location, err := h.catalogQueries.GetLocation(c.Request.Context(), id)
	if err != nil {
		switch {
		case errs.Is(err, queries.ErrLocationNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Location not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromLocationView(location))
}

// @Summary List stands
// @Description List stands at a location with their active box counts
// @Tags catalog
// @Produce json
// @Param id path string true "Location ID"
// @Success 200 {array} resdto.StandResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /locations/{id}/stands [get]
func (h *CatalogHandler) ListStands(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid location ID format",
		})
		return
	}

	stands, err := h.catalogQueries.ListStands(c.Request.Context(), id)
	if err != nil {
		switch {
		case errs.Is(err, queries.ErrLocationNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Location not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	response := make([]*resdto.StandResponse, len(stands))
	for i, s := range stands {
		response[i] = resdto.FromStandView(s)
	}
	c.JSON(http.StatusOK, response)
}

// @Summary List boxes
// @Description List boxes at a location, optionally filtered by model
// @Tags catalog
// @Produce json
// @Param id path string true "Location ID"
// @Param model query string false "Box model filter"
// @Success 200 {array} resdto.BoxResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /locations/{id}/boxes [get]
func (h *CatalogHandler) ListBoxes(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid location ID format",
		})
		return
	}

	var model *string
	if m := c.Query("model"); m != "" {
		model = ptr.To(m)
	}

	boxes, err := h.catalogQueries.ListBoxes(c.Request.Context(), id, model)
	if err != nil {
		switch {
		case errs.Is(err, queries.ErrLocationNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Location not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	response := make([]*resdto.BoxResponse, len(boxes))
	for i, b := range boxes {
		response[i] = resdto.FromBoxView(b)
	}
	c.JSON(http.StatusOK, response)
}

// @Summary Get box
// @Description Get box by ID
// @Tags catalog
// @Produce json
// @Param id path string true "Box ID"
// @Success 200 {object} resdto.BoxResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /boxes/{id} [get]
func (h *CatalogHandler) GetBox(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid box ID format",
		})
		return
	}

	bx, err := h.catalogQueries.GetBox(c.Request.Context(), id)
	if err != nil {
		switch {
		case errs.Is(err, queries.ErrBoxNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Box not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromBoxView(bx))
}

// @Summary Check box availability
// @Description Report whether the box can take a new booking, optionally over a window
// @Tags catalog
// @Produce json
// @Param id path string true "Box ID"
// @Param from query string false "Window start (RFC3339)"
// @Param to query string false "Window end (RFC3339)"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /boxes/{id}/availability [get]
func (h *CatalogHandler) CheckBoxAvailability(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid box ID format",
		})
		return
	}

	window, err := parseWindow(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	view, err := h.availabilityQueries.CheckBoxAvailability(c.Request.Context(), id, window)
	if err != nil {
		switch {
		case errs.Is(err, queries.ErrBoxNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Box not found",
			})
		case errs.Is(err, queries.ErrInvalidWindow):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid availability window",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromAvailabilityView(view))
}

// @Summary Blocked ranges for a model
// @Description Merged busy date ranges across all rentable boxes of the model at the location
// @Tags catalog
// @Produce json
// @Param id path string true "Location ID"
// @Param model query string true "Box model"
// @Success 200 {object} resdto.BlockedRangesResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /locations/{id}/blocked-ranges [get]
func (h *CatalogHandler) BlockedRanges(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid location ID format",
		})
		return
	}

	model := c.Query("model")
	if model == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "model query parameter is required",
		})
		return
	}

	view, err := h.availabilityQueries.BlockedRangesForModel(c.Request.Context(), id, model)
	if err != nil {
		switch {
		case errs.Is(err, queries.ErrLocationNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Location not found",
			})
		case errs.Is(err, queries.ErrInvalidModel):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid box model",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromBlockedRangesView(view))
}

// parseWindow reads the optional from/to pair. Both or neither must be
// present.
func parseWindow(c *gin.Context) (*queries.DateRange, error) {
	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" && toStr == "" {
		return nil, nil
	}
	if fromStr == "" || toStr == "" {
		return nil, errors.New("from and to must be provided together")
	}

	from, err := time.Parse(time.RFC3339, fromStr)
	if err != nil {
		return nil, errors.New("invalid from timestamp")
	}
	to, err := time.Parse(time.RFC3339, toStr)
	if err != nil {
		return nil, errors.New("invalid to timestamp")
	}
	return &queries.DateRange{From: from, To: to}, nil
}
