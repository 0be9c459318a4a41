package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hotelier/internal/domain/stay"
	reqdto "hotelier/internal/handler/dto/request"
	resdto "hotelier/internal/handler/dto/response"
	"hotelier/internal/handler/httperr"
	"hotelier/internal/usecase/queries"
)

type AvailabilityHandler struct {
	availabilityQueries queries.AvailabilityQueries
}

func NewAvailabilityHandler(availabilityQueries queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{availabilityQueries: availabilityQueries}
}

// @Summary Check availability
// @Description Per-night availability for a room type over a date range
// @Tags availability
// @Produce json
// @Security BearerAuth
// @Param id path string true "Property ID"
// @Param room_type_id query string true "Room type ID"
// @Param from query string true "Check-in date (YYYY-MM-DD)"
// @Param to query string true "Check-out date (YYYY-MM-DD)"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /properties/{id}/availability [get]
func (h *AvailabilityHandler) Check(c *gin.Context) {
	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "VALIDATION", "Invalid property ID format", nil)
		return
	}

	var req reqdto.AvailabilityRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "VALIDATION", "Invalid query parameters", nil)
		return
	}

	from, err := stay.ParseDate(req.From)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "VALIDATION", "Invalid from date", nil)
		return
	}
	to, err := stay.ParseDate(req.To)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "VALIDATION", "Invalid to date", nil)
		return
	}

	days, err := h.availabilityQueries.Check(c.Request.Context(), propertyID, req.RoomTypeID, from, to)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromAvailability(days))
}
