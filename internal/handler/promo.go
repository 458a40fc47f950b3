package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"checkout/internal/domain"
	"checkout/internal/service"
)

// PromoHandler handles HTTP requests for promo codes.
type PromoHandler struct {
	promoService *service.PromoService
}

// NewPromoHandler creates a new PromoHandler.
func NewPromoHandler(promoService *service.PromoService) *PromoHandler {
	return &PromoHandler{promoService: promoService}
}

// ValidatePromoRequest is the HTTP request body for validating a promo code.
type ValidatePromoRequest struct {
	Code       string  `json:"code"`
	UserID     string  `json:"userId"`
	CartAmount float64 `json:"cartAmount"`
}

// ValidatePromoResponse mirrors the wire contract of the validation call.
type ValidatePromoResponse struct {
	Valid      bool     `json:"valid"`
	FinalPrice *float64 `json:"final_price,omitempty"`
	PromoID    string   `json:"promo_id,omitempty"`
	Message    string   `json:"message,omitempty"`
}

// Validate handles POST /v1/promos/validate
func (h *PromoHandler) Validate(c *gin.Context) {
	var req ValidatePromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.promoService.Validate(c.Request.Context(), req.Code, req.UserID, req.CartAmount)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := ValidatePromoResponse{
		Valid:   result.Valid,
		Message: result.Message,
	}
	if result.Valid {
		finalPrice := result.FinalPrice
		resp.FinalPrice = &finalPrice
		resp.PromoID = result.PromoID
	}

	respondJSON(c, http.StatusOK, resp)
}

// CreatePromoRequest is the HTTP request body for creating a promo code.
type CreatePromoRequest struct {
	Code          string     `json:"code"`
	DiscountType  string     `json:"discount_type"`
	DiscountValue float64    `json:"discount_value"`
	MaxUsage      *int       `json:"max_usage"`
	ExpiresAt     *time.Time `json:"expires_at"`
	IsActive      *bool      `json:"is_active"`
}

// PromoResponse is the HTTP response for promo code operations.
type PromoResponse struct {
	ID            string     `json:"id"`
	Code          string     `json:"code"`
	DiscountType  string     `json:"discount_type"`
	DiscountValue float64    `json:"discount_value"`
	MaxUsage      *int       `json:"max_usage"`
	CurrentUsage  int        `json:"current_usage"`
	ExpiresAt     *time.Time `json:"expires_at"`
	IsActive      bool       `json:"is_active"`
	CreatedAt     time.Time  `json:"created_at"`
}

func toPromoResponse(promo *domain.PromoCode) PromoResponse {
	return PromoResponse{
		ID:            promo.ID,
		Code:          promo.Code,
		DiscountType:  string(promo.DiscountType),
		DiscountValue: promo.DiscountValue,
		MaxUsage:      promo.MaxUsage,
		CurrentUsage:  promo.CurrentUsage,
		ExpiresAt:     promo.ExpiresAt,
		IsActive:      promo.IsActive,
		CreatedAt:     promo.CreatedAt,
	}
}

// Create handles POST /v1/promos
func (h *PromoHandler) Create(c *gin.Context) {
	var req CreatePromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	// New codes default to active, matching the operator surface.
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	promo, err := h.promoService.CreatePromo(c.Request.Context(), service.CreatePromoRequest{
		Code:          req.Code,
		DiscountType:  domain.DiscountType(req.DiscountType),
		DiscountValue: req.DiscountValue,
		MaxUsage:      req.MaxUsage,
		ExpiresAt:     req.ExpiresAt,
		IsActive:      isActive,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toPromoResponse(promo))
}

// List handles GET /v1/promos
func (h *PromoHandler) List(c *gin.Context) {
	promos, err := h.promoService.ListPromos(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]PromoResponse, 0, len(promos))
	for _, promo := range promos {
		resp = append(resp, toPromoResponse(promo))
	}

	respondJSON(c, http.StatusOK, resp)
}

// Activate handles POST /v1/promos/:id/activate
func (h *PromoHandler) Activate(c *gin.Context) {
	h.setActive(c, true)
}

// Deactivate handles POST /v1/promos/:id/deactivate
func (h *PromoHandler) Deactivate(c *gin.Context) {
	h.setActive(c, false)
}

func (h *PromoHandler) setActive(c *gin.Context, active bool) {
	if err := h.promoService.SetPromoActive(c.Request.Context(), c.Param("id"), active); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{"is_active": active})
}

// Redeem handles POST /v1/promos/:id/redeem
//
// Called by the settlement authority after confirmed payment success. The
// increment re-checks the usage cap atomically, so racing redemptions on the
// last remaining use cannot both succeed.
func (h *PromoHandler) Redeem(c *gin.Context) {
	promo, err := h.promoService.Redeem(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toPromoResponse(promo))
}

// Delete handles DELETE /v1/promos/:id
func (h *PromoHandler) Delete(c *gin.Context) {
	if err := h.promoService.DeletePromo(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
