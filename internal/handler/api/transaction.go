package api

import (
	"errors"
	"net/http"
	"strconv"

	"clubcore/internal/domain/transaction"
	"clubcore/internal/domain/user"
	resdto "clubcore/internal/handler/dto/response"
	"clubcore/internal/handler/httperr"
	"clubcore/internal/handler/middleware"
	"clubcore/internal/usecase/commands"
	"clubcore/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TransactionHandler struct {
	paymentCommands    PaymentCommands
	transactionQueries TransactionQueries
}

func NewTransactionHandler(paymentCommands PaymentCommands, transactionQueries TransactionQueries) *TransactionHandler {
	return &TransactionHandler{
		paymentCommands:    paymentCommands,
		transactionQueries: transactionQueries,
	}
}

// @Summary Poll transaction status
// @Description Public status for the post-payment confirmation page
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} resdto.TransactionStatusResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /transactions/{id}/status [get]
func (h *TransactionHandler) GetStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid transaction ID format", nil)
		return
	}

	view, err := h.transactionQueries.StatusByID(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrTransactionNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Transaction not found", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromTransactionStatusView(view))
}

// @Summary Get transaction
// @Description Full transaction detail for the owner or an operator
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Transaction ID"
// @Success 200 {object} resdto.TransactionResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /transactions/{id} [get]
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, nil, "Internal server error", nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid transaction ID format", nil)
		return
	}

	view, err := h.transactionQueries.FindByID(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrTransactionNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Transaction not found", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	if !canReadTransaction(principal, view) {
		httperr.AbortWithError(c, http.StatusForbidden, nil, "Insufficient permissions", nil)
		return
	}

	resp, err := resdto.FromTransactionView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary List transactions
// @Description Members see their own transactions; operators and admins
// @Description see all of them, optionally filtered by status and kind
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status (processing|confirmed|failed), operator only"
// @Param kind query string false "Filter by kind (order|registration), operator only"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} resdto.TransactionResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /transactions [get]
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, nil, "Internal server error", nil)
		return
	}

	limit := parseInt32Query(c, "limit")
	offset := parseInt32Query(c, "offset")

	var (
		views []queries.TransactionView
		err   error
	)
	if principal.Role == user.RoleOperator || principal.Role == user.RoleAdmin {
		filter, ok := buildTransactionFilter(c, limit, offset)
		if !ok {
			return
		}
		views, err = h.transactionQueries.List(c.Request.Context(), filter)
	} else {
		views, err = h.transactionQueries.ListByUser(c.Request.Context(), principal.UserID, limit, offset)
	}
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	response := make([]*resdto.TransactionResponse, 0, len(views))
	for i := range views {
		resp, err := resdto.FromTransactionView(&views[i])
		if err != nil {
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
			return
		}
		response = append(response, resp)
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Force-process transaction
// @Description Operator override: settle a pending transaction as approved
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Transaction ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /transactions/{id}/force-process [post]
func (h *TransactionHandler) ForceProcess(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid transaction ID format", nil)
		return
	}

	if err := h.paymentCommands.ForceApprove(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, commands.ErrTransactionNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Transaction not found", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// canReadTransaction: owners read their own rows, operators and admins
// read everything. Guest transactions have no owner account and are only
// reachable through the status endpoint.
func canReadTransaction(principal *queries.Principal, view *queries.TransactionView) bool {
	if principal.Role == user.RoleOperator || principal.Role == user.RoleAdmin {
		return true
	}
	return view.UserID != nil && *view.UserID == principal.UserID
}

// buildTransactionFilter translates the public query vocabulary into
// stored values. Aborts with 400 and reports false on unknown values.
func buildTransactionFilter(c *gin.Context, limit, offset int32) (queries.TransactionFilter, bool) {
	filter := queries.TransactionFilter{Limit: limit, Offset: offset}

	if status := c.Query("status"); status != "" {
		internal, ok := resdto.InternalStatus(status)
		if !ok {
			httperr.AbortWithError(c, http.StatusBadRequest, nil, "Invalid status filter", nil)
			return filter, false
		}
		filter.Status = &internal
	}

	if kindStr := c.Query("kind"); kindStr != "" {
		if _, err := transaction.NewKind(kindStr); err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid kind filter", nil)
			return filter, false
		}
		filter.Kind = &kindStr
	}

	return filter, true
}

func parseInt32Query(c *gin.Context, key string) int32 {
	v, err := strconv.ParseInt(c.Query(key), 10, 32)
	if err != nil {
		return 0
	}
	return int32(v)
}
