package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/store_api/internal/middleware"
	"github.com/GTDGit/store_api/internal/service"
	"github.com/GTDGit/store_api/internal/utils"
)

// ProductManagementHandler handles authenticated product writes.
type ProductManagementHandler struct {
	productMgmtService *service.ProductManagementService
	media              MediaConfig
}

// NewProductManagementHandler constructs a ProductManagementHandler.
func NewProductManagementHandler(productMgmtService *service.ProductManagementService, media MediaConfig) *ProductManagementHandler {
	return &ProductManagementHandler{productMgmtService: productMgmtService, media: media}
}

// CreateProduct handles POST /api/products/create/
func (h *ProductManagementHandler) CreateProduct(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication credentials were not provided")
		return
	}

	var req service.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ValidationFailed(c, &utils.ValidationError{Message: "Validation failed", Details: bindingDetails(err)})
		return
	}

	product, err := h.productMgmtService.CreateProduct(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, http.StatusCreated, "Product created", h.media.productDetailView(c, product))
}

// UpdateProduct handles PUT and PATCH /api/products/:slug/update/
func (h *ProductManagementHandler) UpdateProduct(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication credentials were not provided")
		return
	}

	var req service.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ValidationFailed(c, &utils.ValidationError{Message: "Validation failed", Details: bindingDetails(err)})
		return
	}

	full := c.Request.Method == http.MethodPut
	product, err := h.productMgmtService.UpdateProduct(c.Request.Context(), userID, c.Param("slug"), &req, full)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Product updated", h.media.productDetailView(c, product))
}

// DeleteProduct handles DELETE /api/products/:slug/delete/
func (h *ProductManagementHandler) DeleteProduct(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication credentials were not provided")
		return
	}

	if err := h.productMgmtService.DeleteProduct(c.Request.Context(), userID, c.Param("slug")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UploadImage handles POST /api/products/:slug/image/ (multipart field "image").
func (h *ProductManagementHandler) UploadImage(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication credentials were not provided")
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, service.MaxImageSize+1<<20)
	fileHeader, err := c.FormFile("image")
	if err != nil {
		utils.ValidationFailed(c, utils.NewValidationError("Validation failed", "image", "No file was submitted."))
		return
	}
	if fileHeader.Size > service.MaxImageSize {
		utils.ValidationFailed(c, utils.NewValidationError("Validation failed", "image", "Image must not exceed 5 MB."))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, service.MaxImageSize+1))
	if err != nil {
		respondError(c, err)
		return
	}
	contentType := http.DetectContentType(data)
	if _, ok := service.ImageExtension(contentType); !ok {
		utils.ValidationFailed(c, utils.NewValidationError("Validation failed", "image", "Upload a valid PNG, JPEG or WebP image."))
		return
	}

	product, err := h.productMgmtService.UploadImage(c.Request.Context(), userID, c.Param("slug"), contentType, data)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Product image uploaded", h.media.productDetailView(c, product))
}
