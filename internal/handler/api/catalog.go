package api

import (
	"errors"
	"net/http"

	"clubcore/internal/domain/catalog"
	reqdto "clubcore/internal/handler/dto/request"
	resdto "clubcore/internal/handler/dto/response"
	"clubcore/internal/handler/httperr"
	"clubcore/internal/usecase/commands"
	"clubcore/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CatalogHandler struct {
	catalogCommands CatalogCommands
	catalogQueries  CatalogQueries
}

func NewCatalogHandler(catalogCommands CatalogCommands, catalogQueries CatalogQueries) *CatalogHandler {
	return &CatalogHandler{
		catalogCommands: catalogCommands,
		catalogQueries:  catalogQueries,
	}
}

// @Summary List resources
// @Description Public catalog with current prices
// @Tags resources
// @Produce json
// @Param kind query string false "Filter by kind (event|product)"
// @Success 200 {array} resdto.ResourceResponse
// @Failure 400 {object} map[string]string
// @Router /resources [get]
func (h *CatalogHandler) ListResources(c *gin.Context) {
	var kind *catalog.Kind
	if kindStr := c.Query("kind"); kindStr != "" {
		k, err := catalog.NewKind(kindStr)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid resource kind", nil)
			return
		}
		kind = &k
	}

	views, err := h.catalogQueries.List(c.Request.Context(), kind)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	response := make([]*resdto.ResourceResponse, 0, len(views))
	for i := range views {
		resp, err := resdto.FromResourceView(&views[i])
		if err != nil {
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
			return
		}
		response = append(response, resp)
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Get resource
// @Description Single catalog resource with current price
// @Tags resources
// @Produce json
// @Param id path string true "Resource ID"
// @Success 200 {object} resdto.ResourceResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /resources/{id} [get]
func (h *CatalogHandler) GetResource(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid resource ID format", nil)
		return
	}

	view, err := h.catalogQueries.FindByID(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrResourceNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Resource not found", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	resp, err := resdto.FromResourceView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Create resource
// @Description Admin: add an event or product to the catalog
// @Tags resources
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ResourceRequest true "Resource"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /resources [post]
func (h *CatalogHandler) CreateResource(c *gin.Context) {
	var req reqdto.ResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	id, err := h.catalogCommands.CreateResource(c.Request.Context(), toResourceInput(req))
	if err != nil {
		handleCatalogCommandError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id.String()})
}

// @Summary Update resource
// @Description Admin: replace a catalog resource
// @Tags resources
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Param request body reqdto.ResourceRequest true "Resource"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /resources/{id} [put]
func (h *CatalogHandler) UpdateResource(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid resource ID format", nil)
		return
	}

	var req reqdto.ResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	if err := h.catalogCommands.UpdateResource(c.Request.Context(), id, toResourceInput(req)); err != nil {
		handleCatalogCommandError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Restock resource
// @Description Admin: set the absolute available quantity
// @Tags resources
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Param request body reqdto.QuantityRequest true "Quantity"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /resources/{id}/quantity [patch]
func (h *CatalogHandler) SetQuantity(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid resource ID format", nil)
		return
	}

	var req reqdto.QuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	if err := h.catalogCommands.SetQuantity(c.Request.Context(), id, *req.Quantity); err != nil {
		handleCatalogCommandError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Delete resource
// @Description Admin: remove a catalog resource
// @Tags resources
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /resources/{id} [delete]
func (h *CatalogHandler) DeleteResource(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid resource ID format", nil)
		return
	}

	if err := h.catalogCommands.DeleteResource(c.Request.Context(), id); err != nil {
		handleCatalogCommandError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func toResourceInput(req reqdto.ResourceRequest) commands.ResourceInput {
	schedule := make(catalog.PricingSchedule, 0, len(req.PricingSchedule))
	for _, w := range req.PricingSchedule {
		schedule = append(schedule, catalog.PricingWindow{
			Label: w.Label, Start: w.Start, End: w.End, Price: w.Price,
		})
	}

	return commands.ResourceInput{
		Kind:            req.Kind,
		Name:            req.Name,
		Description:     req.Description,
		BasePrice:       req.BasePrice,
		Quantity:        req.QuantityAvailable,
		PricingSchedule: schedule,
	}
}

func handleCatalogCommandError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrResourceNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Resource not found", nil)
	case errors.Is(err, catalog.ErrInvalidKind),
		errors.Is(err, catalog.ErrEmptyName),
		errors.Is(err, catalog.ErrNegativePrice),
		errors.Is(err, catalog.ErrNegativeQuantity):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid resource data", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
