package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"resto_pos_backend/internal/billing"
	"resto_pos_backend/internal/models"
	"resto_pos_backend/internal/services"
	"resto_pos_backend/pkg/utils"
)

// PaymentHandler holds the payment service.
type PaymentHandler struct {
	paymentService services.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(ps services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: ps}
}

func respondBillingError(c *gin.Context, err error, logContext string) {
	switch {
	case errors.Is(err, services.ErrOrderNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Order not found.", ""))
	case errors.Is(err, services.ErrOrderAlreadySettled):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Order is already settled.", err.Error()))
	case errors.Is(err, services.ErrInvalidTender):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid payment method.", err.Error()))
	case errors.Is(err, services.ErrInsufficientCash):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Cash received is less than the amount due.", err.Error()))
	case errors.Is(err, services.ErrMissingWalletRef):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Wallet reference code is required for tng payments.", ""))
	case errors.Is(err, billing.ErrInvalidDiscount):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnprocessableEntity, utils.ErrCodeInvalidDiscount, "Discount rejected.", err.Error()))
	case errors.Is(err, services.ErrDiscountsDisabled):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnprocessableEntity, utils.ErrCodeInvalidDiscount, "Discounts are disabled.", ""))
	case errors.Is(err, services.ErrDiscountNotAllowed):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden, "You are not allowed to apply discounts.", ""))
	case errors.Is(err, services.ErrValidation):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid payment request.", err.Error()))
	default:
		utils.LogError(err, logContext)
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Payment processing failed.", ""))
	}
}

type previewBillRequest struct {
	Discount *services.DiscountDirective `json:"discount"`
}

// PreviewBill returns the totals object for an open order without
// settling it, including the optional discount effect.
func (h *PaymentHandler) PreviewBill(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	// Body is optional; absent means no discount.
	var req previewBillRequest
	_ = c.ShouldBindJSON(&req)

	totals, err := h.paymentService.PreviewBill(orderID, req.Discount, actor)
	if err != nil {
		respondBillingError(c, err, "PreviewBill: error from paymentService.PreviewBill")
		return
	}
	c.JSON(http.StatusOK, totals)
}

// SettleOrder records a payment against an order and completes it.
func (h *PaymentHandler) SettleOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	var req services.SettlePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	payment, err := h.paymentService.SettleOrder(orderID, req, actor)
	if err != nil {
		respondBillingError(c, err, "SettleOrder: error from paymentService.SettleOrder")
		return
	}
	c.JSON(http.StatusCreated, payment)
}

// GetPayment fetches one payment row by id.
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	payment, err := h.paymentService.GetPaymentByID(id)
	if err != nil {
		if errors.Is(err, services.ErrPaymentNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Payment not found.", ""))
		} else {
			utils.LogError(err, "GetPayment: error from paymentService.GetPaymentByID")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch payment.", ""))
		}
		return
	}
	c.JSON(http.StatusOK, payment)
}

// GetGroupedBills lists logical bills reconstructed from payment rows.
func (h *PaymentHandler) GetGroupedBills(c *gin.Context) {
	var filters models.PaymentFilters
	if raw := c.Query("table_number"); raw != "" {
		tableNumber, err := strconv.Atoi(raw)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid table_number format.", err.Error()))
			return
		}
		filters.TableNumber = &tableNumber
	}
	if method := c.Query("method"); method != "" {
		filters.Method = &method
	}
	if date := c.Query("date"); date != "" {
		filters.Date = &date
	}

	bills, err := h.paymentService.GetGroupedBills(filters)
	if err != nil {
		utils.LogError(err, "GetGroupedBills: error from paymentService.GetGroupedBills")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch bills.", ""))
		return
	}
	c.JSON(http.StatusOK, bills)
}

// GetReceipt returns the printable settlement record for a payment.
func (h *PaymentHandler) GetReceipt(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	receipt, err := h.paymentService.GetReceipt(id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPaymentNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Payment not found.", ""))
		case errors.Is(err, services.ErrOrderNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Order not found.", ""))
		default:
			utils.LogError(err, "GetReceipt: error from paymentService.GetReceipt")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to build receipt.", ""))
		}
		return
	}
	c.JSON(http.StatusOK, receipt)
}
