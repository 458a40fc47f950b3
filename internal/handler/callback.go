package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"checkout/internal/service"
)

// CallbackHandler handles the return leg of off-site payments.
type CallbackHandler struct {
	callbackService *service.CallbackService
}

// NewCallbackHandler creates a new CallbackHandler.
func NewCallbackHandler(callbackService *service.CallbackService) *CallbackHandler {
	return &CallbackHandler{callbackService: callbackService}
}

// HandleCallback handles GET /v1/payments/callback
//
// The provider has sent the identifier as either "paymentId" or "Id". The
// classification is the response payload; a failed payment is still a 200,
// the outcome lives in the body.
func (h *CallbackHandler) HandleCallback(c *gin.Context) {
	paymentID := c.Query("paymentId")
	if paymentID == "" {
		paymentID = c.Query("Id")
	}

	result := h.callbackService.Classify(c.Request.Context(), paymentID)

	respondJSON(c, http.StatusOK, result)
}
