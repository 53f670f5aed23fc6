//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"net/url"
	"testing"
	"time"

	"boxrent/internal/handler/api"
	resdto "boxrent/internal/handler/dto/response"
	"boxrent/internal/pkg/errs"
	"boxrent/internal/usecase/queries"
	"boxrent/tests/common/httptest"
	queriesmock "boxrent/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CatalogHandlerTestSuite struct {
	suite.Suite
	router           *gin.Engine
	mockCtrl         *gomock.Controller
	mockCatalog      *queriesmock.MockCatalogQueries
	mockAvailability *queriesmock.MockAvailabilityQueries
	handler          *api.CatalogHandler
	locationID       uuid.UUID
	boxID            uuid.UUID
}

func (s *CatalogHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCatalog = queriesmock.NewMockCatalogQueries(s.mockCtrl)
	s.mockAvailability = queriesmock.NewMockAvailabilityQueries(s.mockCtrl)
	s.handler = api.NewCatalogHandler(s.mockCatalog, s.mockAvailability)
	s.locationID = uuid.New()
	s.boxID = uuid.New()

	s.router.GET("/locations", s.handler.ListLocations)
	s.router.GET("/locations/:id", s.handler.GetLocation)
	s.router.GET("/locations/:id/stands", s.handler.ListStands)
	s.router.GET("/locations/:id/boxes", s.handler.ListBoxes)
	s.router.GET("/locations/:id/blocked-ranges", s.handler.BlockedRanges)
	s.router.GET("/boxes/:id", s.handler.GetBox)
	s.router.GET("/boxes/:id/availability", s.handler.CheckBoxAvailability)
}

func (s *CatalogHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCatalogHandlerSuite(t *testing.T) {
	suite.Run(t, new(CatalogHandlerTestSuite))
}

func (s *CatalogHandlerTestSuite) TestListLocations() {
	s.Run("success", func() {
		views := []*queries.LocationView{
			{ID: s.locationID, Name: "Central"},
			{ID: uuid.New(), Name: "Harbor"},
		}
		s.mockCatalog.EXPECT().ListLocations(gomock.Any()).Return(views, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/locations", nil, "")

		var response []*resdto.LocationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Require().Len(response, 2)
		s.Equal("Central", response[0].Name)
	})

	s.Run("query failure", func() {
		s.mockCatalog.EXPECT().ListLocations(gomock.Any()).Return(nil, errors.New("db down"))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/locations", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}

func (s *CatalogHandlerTestSuite) TestGetLocation() {
	url := "/locations/" + s.locationID.String()

	s.Run("success", func() {
		s.mockCatalog.EXPECT().
			GetLocation(gomock.Any(), s.locationID).
			Return(&queries.LocationView{ID: s.locationID, Name: "Central"}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var response resdto.LocationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(s.locationID, response.ID)
	})

	s.Run("invalid id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/locations/not-a-uuid", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid location ID")
	})

	s.Run("not found", func() {
		s.mockCatalog.EXPECT().
			GetLocation(gomock.Any(), s.locationID).
			Return(nil, queries.ErrLocationNotFound)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Location not found")
	})
}

func (s *CatalogHandlerTestSuite) TestListStands() {
	url := "/locations/" + s.locationID.String() + "/stands"

	s.Run("success", func() {
		views := []*queries.StandView{
			{ID: uuid.New(), LocationID: s.locationID, Name: "Stand A", BoxCount: 3},
		}
		s.mockCatalog.EXPECT().ListStands(gomock.Any(), s.locationID).Return(views, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var response []*resdto.StandResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Require().Len(response, 1)
		s.Equal(int32(3), response[0].BoxCount)
	})

	s.Run("unknown location", func() {
		s.mockCatalog.EXPECT().ListStands(gomock.Any(), s.locationID).Return(nil, queries.ErrLocationNotFound)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Location not found")
	})
}

func (s *CatalogHandlerTestSuite) TestListBoxes() {
	url := "/locations/" + s.locationID.String() + "/boxes"

	s.Run("lists every box without a filter", func() {
		views := []*queries.BoxView{
			{ID: s.boxID, LocationID: s.locationID, Model: "classic-320", Status: "active", DailyRateCents: 12000},
		}
		s.mockCatalog.EXPECT().ListBoxes(gomock.Any(), s.locationID, nil).Return(views, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var response []*resdto.BoxResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Require().Len(response, 1)
		s.Equal("classic-320", response[0].Model)
	})

	s.Run("model filter is passed through", func() {
		s.mockCatalog.EXPECT().
			ListBoxes(gomock.Any(), s.locationID, gomock.Cond(func(m *string) bool {
				return m != nil && *m == "wide-510"
			})).
			Return([]*queries.BoxView{}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?model=wide-510", nil, "")

		var response []*resdto.BoxResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Empty(response)
	})
}

func (s *CatalogHandlerTestSuite) TestGetBox() {
	s.Run("success", func() {
		s.mockCatalog.EXPECT().
			GetBox(gomock.Any(), s.boxID).
			Return(&queries.BoxView{ID: s.boxID, Model: "classic-320", Score: 80}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/boxes/"+s.boxID.String(), nil, "")

		var response resdto.BoxResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(s.boxID, response.ID)
		s.Equal(int32(80), response.Score)
	})

	s.Run("not found", func() {
		s.mockCatalog.EXPECT().GetBox(gomock.Any(), s.boxID).Return(nil, queries.ErrBoxNotFound)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/boxes/"+s.boxID.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Box not found")
	})
}

func (s *CatalogHandlerTestSuite) TestCheckBoxAvailability() {
	baseURL := "/boxes/" + s.boxID.String() + "/availability"

	s.Run("open-ended check", func() {
		s.mockAvailability.EXPECT().
			CheckBoxAvailability(gomock.Any(), s.boxID, nil).
			Return(&queries.AvailabilityView{BoxID: s.boxID, Available: true}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, baseURL, nil, "")

		var response resdto.AvailabilityResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.True(response.Available)
		s.Nil(response.NextFreeAt)
	})

	s.Run("windowed check reports conflicts", func() {
		from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
		nextFree := time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC)
		s.mockAvailability.EXPECT().
			CheckBoxAvailability(gomock.Any(), s.boxID, &queries.DateRange{From: from, To: to}).
			Return(&queries.AvailabilityView{
				BoxID:         s.boxID,
				Available:     false,
				NextFreeAt:    &nextFree,
				ConflictCount: 2,
			}, nil)

		query := "?from=" + url.QueryEscape(from.Format(time.RFC3339)) +
			"&to=" + url.QueryEscape(to.Format(time.RFC3339))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, baseURL+query, nil, "")

		var response resdto.AvailabilityResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.False(response.Available)
		s.Equal(2, response.ConflictCount)
		s.Require().NotNil(response.NextFreeAt)
		s.True(nextFree.Equal(*response.NextFreeAt))
	})

	s.Run("from without to is rejected", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, baseURL+"?from=2025-06-01T00:00:00Z", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "from and to must be provided together")
	})

	s.Run("malformed timestamp is rejected", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, baseURL+"?from=yesterday&to=tomorrow", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "invalid from timestamp")
	})

	s.Run("inverted window maps to bad request", func() {
		s.mockAvailability.EXPECT().
			CheckBoxAvailability(gomock.Any(), s.boxID, gomock.Any()).
			Return(nil, queries.ErrInvalidWindow)

		query := "?from=2025-06-10T00:00:00Z&to=2025-06-01T00:00:00Z"
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, baseURL+query, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid availability window")
	})
}

func (s *CatalogHandlerTestSuite) TestBlockedRanges() {
	baseURL := "/locations/" + s.locationID.String() + "/blocked-ranges"

	s.Run("success", func() {
		view := &queries.BlockedRangesView{
			LocationID: s.locationID,
			Model:      "classic-320",
			Ranges: []queries.DateRange{
				{From: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), To: time.Date(2025, 6, 6, 0, 0, 0, 0, time.UTC)},
			},
		}
		s.mockAvailability.EXPECT().
			BlockedRangesForModel(gomock.Any(), s.locationID, "classic-320").
			Return(view, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, baseURL+"?model=classic-320", nil, "")

		var response resdto.BlockedRangesResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("classic-320", response.Model)
		s.Require().Len(response.Ranges, 1)
		s.True(view.Ranges[0].From.Equal(response.Ranges[0].From))
	})

	s.Run("missing model parameter", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, baseURL, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "model query parameter is required")
	})

	s.Run("unknown location", func() {
		s.mockAvailability.EXPECT().
			BlockedRangesForModel(gomock.Any(), s.locationID, "classic-320").
			Return(nil, queries.ErrLocationNotFound)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, baseURL+"?model=classic-320", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Location not found")
	})

	s.Run("unknown model", func() {
		// the query attaches this sentinel as a mark, not by wrapping
		s.mockAvailability.EXPECT().
			BlockedRangesForModel(gomock.Any(), s.locationID, "shoebox-1").
			Return(nil, errs.Mark(errs.New("unknown box model"), queries.ErrInvalidModel))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, baseURL+"?model=shoebox-1", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid box model")
	})
}
