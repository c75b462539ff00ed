package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	reqdto "clubcore/internal/handler/dto/request"
	"clubcore/internal/handler/httperr"
	"clubcore/internal/infra/gateway"
	"clubcore/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

const signatureHeader = "X-Gateway-Signature"

type WebhookHandler struct {
	paymentCommands PaymentCommands
	verifier        *gateway.SignatureVerifier
}

func NewWebhookHandler(paymentCommands PaymentCommands, verifier *gateway.SignatureVerifier) *WebhookHandler {
	return &WebhookHandler{
		paymentCommands: paymentCommands,
		verifier:        verifier,
	}
}

// @Summary Payment gateway callback
// @Description Receive signed settlement callbacks from the payment gateway
// @Tags payments
// @Accept json
// @Produce json
// @Param X-Gateway-Signature header string true "Hex HMAC-SHA256 of the raw body"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /payments/webhook [post]
func (h *WebhookHandler) HandleCallback(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Unable to read request body", nil)
		return
	}

	// Verify against the exact bytes received. Nothing below runs, and
	// nothing mutates, until the signature checks out.
	if !h.verifier.Verify(body, c.GetHeader(signatureHeader)) {
		slog.Warn("webhook signature verification failed", "client_ip", c.ClientIP())
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Invalid signature", nil)
		return
	}

	var event reqdto.GatewayEvent
	if err := json.Unmarshal(body, &event); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Malformed callback body", nil)
		return
	}

	input := commands.CallbackInput{
		Reference:             event.Data.Transaction.Reference,
		GatewayStatus:         event.Data.Transaction.Status,
		ExternalTransactionID: event.Data.Transaction.ID,
	}

	if err := h.paymentCommands.ProcessCallback(c.Request.Context(), input); err != nil {
		if errors.Is(err, commands.ErrUnknownTransaction) {
			// Permanently missing record: acknowledge so the gateway
			// stops retrying a callback that can never apply.
			slog.Warn("callback for unknown transaction reference",
				"reference", input.Reference, "gateway_status", input.GatewayStatus)
			c.JSON(http.StatusOK, gin.H{"status": "ignored"})
			return
		}

		slog.Error("callback processing failed",
			"reference", input.Reference, "error", err.Error())
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Callback processing failed", nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
