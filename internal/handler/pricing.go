package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"checkout/internal/service"
)

// PricingHandler handles HTTP requests for the credit package catalog.
type PricingHandler struct {
	pricingService *service.PricingService
}

// NewPricingHandler creates a new PricingHandler.
func NewPricingHandler(pricingService *service.PricingService) *PricingHandler {
	return &PricingHandler{pricingService: pricingService}
}

// ListPackages handles GET /v1/packages
func (h *PricingHandler) ListPackages(c *gin.Context) {
	packages := h.pricingService.GetPackages(c.Request.Context())

	respondJSON(c, http.StatusOK, packages)
}
