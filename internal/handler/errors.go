package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/GTDGit/store_api/internal/service"
	"github.com/GTDGit/store_api/internal/utils"
)

// respondError maps service errors onto the response envelope.
func respondError(c *gin.Context, err error) {
	var verr *utils.ValidationError
	switch {
	case errors.As(err, &verr):
		utils.ValidationFailed(c, verr)
	case errors.Is(err, utils.ErrProductNotFound):
		utils.Error(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found")
	case errors.Is(err, utils.ErrCategoryNotFound):
		utils.Error(c, http.StatusNotFound, "CATEGORY_NOT_FOUND", "Category not found")
	case errors.Is(err, utils.ErrOrderNotFound):
		utils.Error(c, http.StatusNotFound, "ORDER_NOT_FOUND", "Order not found")
	case errors.Is(err, utils.ErrForbidden):
		utils.Error(c, http.StatusForbidden, "FORBIDDEN", "You do not have permission to perform this action")
	case errors.Is(err, utils.ErrSlugConflict):
		utils.Error(c, http.StatusConflict, "SLUG_CONFLICT", "A product with this name is being created concurrently, please retry")
	case errors.Is(err, utils.ErrInvalidOrdering):
		utils.Error(c, http.StatusBadRequest, "INVALID_ORDERING", "Ordering must be one of price, created_at, name, optionally prefixed with '-'")
	case errors.Is(err, utils.ErrPageOutOfRange):
		utils.Error(c, http.StatusNotFound, "INVALID_PAGE", "Invalid page")
	case errors.Is(err, utils.ErrStorageDisabled):
		utils.Error(c, http.StatusServiceUnavailable, "STORAGE_DISABLED", "Image storage is not configured")
	case errors.Is(err, service.ErrUnsupportedImage):
		utils.Error(c, http.StatusBadRequest, "UNSUPPORTED_IMAGE", "Image must be PNG, JPEG or WebP")
	default:
		log.Error().Err(err).
			Str("request_id", c.GetString("request_id")).
			Str("path", c.Request.URL.Path).
			Msg("Request failed")
		utils.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
