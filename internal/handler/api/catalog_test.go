//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"clubcore/internal/domain/catalog"
	"clubcore/internal/handler/api"
	resdto "clubcore/internal/handler/dto/response"
	"clubcore/internal/usecase/commands"
	"clubcore/internal/usecase/queries"
	"clubcore/tests/common/builder"
	"clubcore/tests/common/httptest"
	"clubcore/tests/common/testutil"
	apimock "clubcore/tests/mock/api"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CatalogHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *apimock.MockCatalogCommands
	mockQueries  *apimock.MockCatalogQueries
	handler      *api.CatalogHandler
}

func (s *CatalogHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = apimock.NewMockCatalogCommands(s.mockCtrl)
	s.mockQueries = apimock.NewMockCatalogQueries(s.mockCtrl)
	s.handler = api.NewCatalogHandler(s.mockCommands, s.mockQueries)

	s.router.GET("/resources", s.handler.ListResources)
	s.router.GET("/resources/:id", s.handler.GetResource)
	s.router.POST("/resources", s.handler.CreateResource)
	s.router.PUT("/resources/:id", s.handler.UpdateResource)
	s.router.PATCH("/resources/:id/quantity", s.handler.SetQuantity)
	s.router.DELETE("/resources/:id", s.handler.DeleteResource)
}

func (s *CatalogHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCatalogHandlerSuite(t *testing.T) {
	suite.Run(t, new(CatalogHandlerTestSuite))
}

func (s *CatalogHandlerTestSuite) TestListResources() {
	s.Run("success: lists all resources", func() {
		views := []queries.ResourceView{
			*builder.NewResourceBuilder().BuildView(),
			*builder.NewResourceBuilder().AsEvent().BuildView(),
		}
		s.mockQueries.EXPECT().
			List(gomock.Any(), nil).
			Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/resources", nil, "")

		var response []resdto.ResourceResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 2)
	})

	s.Run("success: kind filter is forwarded", func() {
		kind := catalog.KindEvent
		s.mockQueries.EXPECT().
			List(gomock.Any(), &kind).
			Return(nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/resources?kind=event", nil, "")

		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 400 for unknown kind", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/resources?kind=subscription", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid resource kind")
	})
}

func (s *CatalogHandlerTestSuite) TestGetResource() {
	s.Run("success: returns resource with current price", func() {
		view := builder.NewResourceBuilder().BuildView()
		s.mockQueries.EXPECT().
			FindByID(gomock.Any(), view.ID).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/resources/"+view.ID.String(), nil, "")

		var response resdto.ResourceResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(view.Name, response.Name)
		s.Equal(view.CurrentPrice, response.CurrentPrice)
	})

	s.Run("error: 404 for unknown resource", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().
			FindByID(gomock.Any(), id).
			Return(nil, queries.ErrResourceNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/resources/"+id.String(), nil, "")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Resource not found")
	})
}

func (s *CatalogHandlerTestSuite) TestCreateResource() {
	url := "/resources"

	s.Run("success: returns 201 with new id", func() {
		reqBody := builder.NewResourceBuilder().BuildRequestDTO()
		id := uuid.New()

		s.mockCommands.EXPECT().
			CreateResource(gomock.Any(), gomock.Any()).
			Return(id, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response map[string]string
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(id.String(), response["id"])
	})

	s.Run("error: 400 on binding failures", func() {
		reqBody := builder.NewResourceBuilder().BuildRequestDTO()

		cases := []struct {
			name   string
			mutate func(map[string]any)
		}{
			{name: "missing kind", mutate: testutil.Field("kind", nil)},
			{name: "unknown kind", mutate: testutil.Field("kind", "subscription")},
			{name: "missing name", mutate: testutil.Field("name", nil)},
			{name: "negative base price", mutate: testutil.Field("base_price", -5)},
			{name: "negative quantity", mutate: testutil.Field("quantity_available", -1)},
		}

		for _, tc := range cases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})
}

func (s *CatalogHandlerTestSuite) TestUpdateResource() {
	s.Run("success: 204 on update", func() {
		id := uuid.New()
		reqBody := builder.NewResourceBuilder().BuildRequestDTO()

		s.mockCommands.EXPECT().
			UpdateResource(gomock.Any(), id, gomock.Any()).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut,
			"/resources/"+id.String(), reqBody, "")

		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 404 for unknown resource", func() {
		id := uuid.New()
		reqBody := builder.NewResourceBuilder().BuildRequestDTO()

		s.mockCommands.EXPECT().
			UpdateResource(gomock.Any(), id, gomock.Any()).
			Return(commands.ErrResourceNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut,
			"/resources/"+id.String(), reqBody, "")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Resource not found")
	})
}

func (s *CatalogHandlerTestSuite) TestSetQuantity() {
	s.Run("success: 204 on restock", func() {
		id := uuid.New()
		s.mockCommands.EXPECT().
			SetQuantity(gomock.Any(), id, int32(50)).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch,
			"/resources/"+id.String()+"/quantity", map[string]any{"quantity": 50}, "")

		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 400 when quantity missing", func() {
		id := uuid.New()
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch,
			"/resources/"+id.String()+"/quantity", map[string]any{}, "")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("error: 400 when quantity negative", func() {
		id := uuid.New()
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch,
			"/resources/"+id.String()+"/quantity", map[string]any{"quantity": -1}, "")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})
}

func (s *CatalogHandlerTestSuite) TestDeleteResource() {
	s.Run("success: 204 on delete", func() {
		id := uuid.New()
		s.mockCommands.EXPECT().
			DeleteResource(gomock.Any(), id).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete,
			"/resources/"+id.String(), nil, "")

		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 404 for unknown resource", func() {
		id := uuid.New()
		s.mockCommands.EXPECT().
			DeleteResource(gomock.Any(), id).
			Return(commands.ErrResourceNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete,
			"/resources/"+id.String(), nil, "")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Resource not found")
	})
}
