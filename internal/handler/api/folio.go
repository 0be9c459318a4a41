package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	reqdto "hotelier/internal/handler/dto/request"
	resdto "hotelier/internal/handler/dto/response"
	"hotelier/internal/handler/httperr"
	"hotelier/internal/usecase/commands"
	"hotelier/internal/usecase/queries"
)

type FolioHandler struct {
	folioCommands commands.FolioCommands
	folioQueries  queries.FolioQueries
}

func NewFolioHandler(folioCommands commands.FolioCommands, folioQueries queries.FolioQueries) *FolioHandler {
	return &FolioHandler{
		folioCommands: folioCommands,
		folioQueries:  folioQueries,
	}
}

// @Summary Get reservation folio
// @Description Full posting history and derived balance for a reservation
// @Tags folios
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.FolioResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /reservations/{id}/folio [get]
func (h *FolioHandler) GetReservationFolio(c *gin.Context) {
	reservationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "VALIDATION", "Invalid reservation ID format", nil)
		return
	}

	view, err := h.folioQueries.GetByReservationID(c.Request.Context(), reservationID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromFolioView(view))
}

// @Summary Post folio item
// @Description Append a charge, payment or adjustment to an open folio
// @Tags folios
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Folio ID"
// @Param request body reqdto.PostFolioItemRequest true "Item to post"
// @Success 201 {object} resdto.PostFolioItemResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /folios/{id}/items [post]
func (h *FolioHandler) PostItem(c *gin.Context) {
	folioID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "VALIDATION", "Invalid folio ID format", nil)
		return
	}

	var req reqdto.PostFolioItemRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "VALIDATION", "Invalid request format", nil)
		return
	}

	itemID, err := h.folioCommands.PostItem(c.Request.Context(), folioID, commands.PostItemInput{
		Kind:        req.Kind,
		Description: req.Description,
		AmountCents: req.AmountCents,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.PostFolioItemResponse{ItemID: itemID})
}

// @Summary Void folio item
// @Description Tombstone an item; it stays in the history but leaves the balance
// @Tags folios
// @Produce json
// @Security BearerAuth
// @Param id path string true "Folio item ID"
// @Success 204
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /folio-items/{id}/void [post]
func (h *FolioHandler) VoidItem(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "VALIDATION", "Invalid item ID format", nil)
		return
	}

	if err := h.folioCommands.VoidItem(c.Request.Context(), itemID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Refund a payment
// @Description Post a refund against a payment item, bounded by its remaining refundable amount
// @Tags folios
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Payment item ID"
// @Param request body reqdto.RefundRequest true "Refund request"
// @Success 201 {object} resdto.PostFolioItemResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /folio-items/{id}/refund [post]
func (h *FolioHandler) Refund(c *gin.Context) {
	paymentItemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "VALIDATION", "Invalid item ID format", nil)
		return
	}

	var req reqdto.RefundRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "VALIDATION", "Invalid request format", nil)
		return
	}

	refundID, err := h.folioCommands.Refund(c.Request.Context(), paymentItemID, req.AmountCents, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.PostFolioItemResponse{ItemID: refundID})
}
