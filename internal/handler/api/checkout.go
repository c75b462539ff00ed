package api

import (
	"errors"
	"net/http"

	"clubcore/internal/domain/transaction"
	reqdto "clubcore/internal/handler/dto/request"
	resdto "clubcore/internal/handler/dto/response"
	"clubcore/internal/handler/httperr"
	"clubcore/internal/handler/middleware"
	"clubcore/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type CheckoutHandler struct {
	checkoutCommands CheckoutCommands
}

func NewCheckoutHandler(checkoutCommands CheckoutCommands) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutCommands: checkoutCommands,
	}
}

// @Summary Create checkout
// @Description Validate a cart and obtain a hosted payment link
// @Tags checkout
// @Accept json
// @Produce json
// @Param request body reqdto.CheckoutRequest true "Checkout request"
// @Success 201 {object} resdto.CheckoutResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /checkout [post]
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	var req reqdto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	var actor *commands.Actor
	if principal, ok := middleware.GetPrincipal(c); ok {
		actor = &commands.Actor{UserID: principal.UserID, Email: principal.Email}
	}

	input := commands.CheckoutInput{
		Kind:          req.Kind,
		DeclaredTotal: req.DeclaredTotal,
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, commands.CheckoutItemInput{
			ResourceID: item.ResourceID,
			UnitPrice:  item.UnitPrice,
			Quantity:   item.Quantity,
		})
	}
	if req.Guest != nil {
		input.Guest = &commands.GuestInput{
			Name:  req.Guest.Name,
			Email: req.Guest.Email,
			Phone: req.Guest.Phone,
		}
	}

	result, err := h.checkoutCommands.Checkout(c.Request.Context(), actor, input)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrResourceNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Resource not found", nil)
		case errors.Is(err, transaction.ErrPriceMismatch):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Declared price does not match current price", nil)
		case errors.Is(err, transaction.ErrTotalMismatch):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Declared total does not match computed total", nil)
		case errors.Is(err, transaction.ErrInsufficientStock):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Insufficient quantity available", nil)
		case errors.Is(err, transaction.ErrKindMismatch):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Resource kind does not match checkout kind", nil)
		case errors.Is(err, transaction.ErrMissingPayer),
			errors.Is(err, transaction.ErrAmbiguousPayer),
			errors.Is(err, transaction.ErrMissingContact),
			errors.Is(err, transaction.ErrNoLineItems),
			errors.Is(err, transaction.ErrInvalidQuantity),
			errors.Is(err, transaction.ErrInvalidKind):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid checkout request", nil)
		case errors.Is(err, commands.ErrGatewayUnavailable):
			httperr.AbortWithError(c, http.StatusBadGateway, err, "Payment gateway unavailable", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromCheckoutResult(result))
}
