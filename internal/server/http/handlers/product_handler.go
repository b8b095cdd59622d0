package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ordesk/backoffice/internal/server/http/dto"
)

// ProductHandler serves the per-market catalog.
type ProductHandler struct {
	facade ProductFacade
}

// NewProductHandler constructs ProductHandler.
func NewProductHandler(facade ProductFacade) *ProductHandler {
	return &ProductHandler{facade: facade}
}

// List handles GET /api/products.
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.facade.ListProducts(c.Request.Context(), CurrentMarket(c))
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		resp = append(resp, dto.NewProductResponse(&products[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// Create handles POST /api/admin/products.
func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	product := req.Product()
	if err := h.facade.CreateProduct(c.Request.Context(), CurrentMarket(c), product); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewProductResponse(product))
}

// Update handles PUT /api/admin/products/:id.
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	product := req.Product()
	product.ID = id
	if err := h.facade.UpdateProduct(c.Request.Context(), CurrentMarket(c), product); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewProductResponse(product))
}

// Delete handles DELETE /api/admin/products/:id.
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.DeleteProduct(c.Request.Context(), CurrentMarket(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
