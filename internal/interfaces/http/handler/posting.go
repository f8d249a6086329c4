package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/stockledger/backend/internal/application/posting"
)

// PostingHandler exposes the stock posting commands
type PostingHandler struct {
	BaseHandler
	coordinator *posting.Coordinator
	validate    *validator.Validate
}

// NewPostingHandler creates a new posting handler
func NewPostingHandler(coordinator *posting.Coordinator) *PostingHandler {
	return &PostingHandler{
		coordinator: coordinator,
		validate:    validator.New(),
	}
}

// GoodsReceipt handles POST /postings/goods-receipts
func (h *PostingHandler) GoodsReceipt(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Tenant context is required")
		return
	}

	var cmd posting.GoodsReceiptCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	cmd.TenantID = tenantID
	if err := h.validate.Struct(cmd); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.coordinator.PostGoodsReceipt(c.Request.Context(), cmd)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// DeliveryNote handles POST /postings/delivery-notes
func (h *PostingHandler) DeliveryNote(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Tenant context is required")
		return
	}

	var cmd posting.DeliveryNoteCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	cmd.TenantID = tenantID
	if err := h.validate.Struct(cmd); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.coordinator.PostDeliveryNote(c.Request.Context(), cmd)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// Transfer handles POST /postings/transfers
func (h *PostingHandler) Transfer(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Tenant context is required")
		return
	}

	var cmd posting.TransferCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	cmd.TenantID = tenantID
	if err := h.validate.Struct(cmd); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.coordinator.PostTransfer(c.Request.Context(), cmd)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// Adjustment handles POST /postings/adjustments
func (h *PostingHandler) Adjustment(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Tenant context is required")
		return
	}

	var cmd posting.AdjustmentCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	cmd.TenantID = tenantID
	if err := h.validate.Struct(cmd); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.coordinator.PostAdjustment(c.Request.Context(), cmd)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}
