package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/GTDGit/store_api/internal/service"
	"github.com/GTDGit/store_api/internal/utils"
)

// OrderHandler handles order intake endpoints.
type OrderHandler struct {
	orderService *service.OrderService
}

// NewOrderHandler constructs an OrderHandler.
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// CreateOrder handles POST /api/orders/ and POST /api/create-order/
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req service.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		details := bindingDetails(err)
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			itemDetails, itemErr := h.orderService.ItemErrors(c.Request.Context(), &req)
			if itemErr != nil {
				respondError(c, itemErr)
				return
			}
			details.Merge(itemDetails)
		}
		utils.ValidationFailed(c, &utils.ValidationError{
			Message: service.OrderValidationMessage(details),
			Details: details,
		})
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, http.StatusCreated, "Order created", orderView(order))
}

// GetOrder handles GET /api/orders/:id/
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, utils.ErrOrderNotFound)
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Order retrieved", orderView(order))
}
