package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"checkout/internal/domain"
	"checkout/internal/service"
)

// CheckoutHandler handles HTTP requests for checkout sessions.
type CheckoutHandler struct {
	checkoutService *service.CheckoutService
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(checkoutService *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// StartSessionRequest is the HTTP request body for starting a checkout.
type StartSessionRequest struct {
	UserID    string `json:"userId"`
	PackageID string `json:"packageId"`
}

// SessionResponse is the HTTP response for checkout session operations.
// FinalPrice is the single value displayed and charged.
type SessionResponse struct {
	ID            string                  `json:"id"`
	UserID        string                  `json:"user_id"`
	PackageID     string                  `json:"package_id"`
	PackageName   string                  `json:"package_name"`
	OriginalPrice float64                 `json:"original_price"`
	FinalPrice    float64                 `json:"final_price"`
	Currency      string                  `json:"currency"`
	State         string                  `json:"state"`
	Discount      *domain.AppliedDiscount `json:"discount,omitempty"`
	FailureReason string                  `json:"failure_reason,omitempty"`
}

func toSessionResponse(session *domain.CheckoutSession) SessionResponse {
	return SessionResponse{
		ID:            session.ID,
		UserID:        session.UserID,
		PackageID:     session.PackageID,
		PackageName:   session.PackageName,
		OriginalPrice: session.OriginalPrice,
		FinalPrice:    session.FinalPrice(),
		Currency:      session.Currency,
		State:         string(session.State),
		Discount:      session.Discount,
		FailureReason: session.FailureReason,
	}
}

// StartSession handles POST /v1/checkout/sessions
func (h *CheckoutHandler) StartSession(c *gin.Context) {
	var req StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	session, err := h.checkoutService.StartSession(c.Request.Context(), service.StartSessionRequest{
		UserID:    req.UserID,
		PackageID: req.PackageID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toSessionResponse(session))
}

// GetSession handles GET /v1/checkout/sessions/:id
func (h *CheckoutHandler) GetSession(c *gin.Context) {
	session, err := h.checkoutService.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toSessionResponse(session))
}

// ApplyPromoRequest is the HTTP request body for applying a promo code.
type ApplyPromoRequest struct {
	Code string `json:"code"`
}

// ApplyPromoResponse pairs the updated session with the validation verdict.
type ApplyPromoResponse struct {
	Session SessionResponse `json:"session"`
	Valid   bool            `json:"valid"`
	Message string          `json:"message,omitempty"`
}

// ApplyPromo handles POST /v1/checkout/sessions/:id/promo
func (h *CheckoutHandler) ApplyPromo(c *gin.Context) {
	var req ApplyPromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.checkoutService.ApplyPromo(c.Request.Context(), c.Param("id"), req.Code)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, ApplyPromoResponse{
		Session: toSessionResponse(result.Session),
		Valid:   result.Validation.Valid,
		Message: result.Validation.Message,
	})
}

// RemovePromo handles DELETE /v1/checkout/sessions/:id/promo
func (h *CheckoutHandler) RemovePromo(c *gin.Context) {
	session, err := h.checkoutService.RemovePromo(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toSessionResponse(session))
}

// ConfirmResponse is the HTTP response for a confirmed checkout.
type ConfirmResponse struct {
	Session     SessionResponse `json:"session"`
	RedirectURL string          `json:"redirect_url"`
}

// Confirm handles POST /v1/checkout/sessions/:id/confirm
func (h *CheckoutHandler) Confirm(c *gin.Context) {
	result, err := h.checkoutService.Confirm(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, ConfirmResponse{
		Session:     toSessionResponse(result.Session),
		RedirectURL: result.RedirectURL,
	})
}

// CancelSession handles DELETE /v1/checkout/sessions/:id
func (h *CheckoutHandler) CancelSession(c *gin.Context) {
	if err := h.checkoutService.CancelSession(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
