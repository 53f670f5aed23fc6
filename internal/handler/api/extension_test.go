//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"boxrent/internal/domain/user"
	"boxrent/internal/handler/api"
	reqdto "boxrent/internal/handler/dto/request"
	resdto "boxrent/internal/handler/dto/response"
	"boxrent/internal/pkg/errs"
	"boxrent/internal/usecase/commands"
	"boxrent/tests/common/httptest"
	commandsmock "boxrent/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ExtensionHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockExtensionCommands
	handler      *api.ExtensionHandler
	userID       uuid.UUID
	bookingID    uuid.UUID
}

func (s *ExtensionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockExtensionCommands(s.mockCtrl)
	s.handler = api.NewExtensionHandler(s.mockCommands)
	s.userID = uuid.New()
	s.bookingID = uuid.New()

	// Stand-in for the auth middleware
	s.router.Use(func(c *gin.Context) {
		c.Set("user_id", s.userID)
		c.Set("user_role", user.RoleViewer)
		c.Next()
	})

	s.router.POST("/bookings/:id/extension/quote", s.handler.QuoteExtension)
	s.router.POST("/bookings/:id/extension/initiate", s.handler.InitiateExtension)
	s.router.POST("/bookings/:id/extension/complete", s.handler.CompleteExtension)
}

func (s *ExtensionHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestExtensionHandlerSuite(t *testing.T) {
	suite.Run(t, new(ExtensionHandlerTestSuite))
}

func (s *ExtensionHandlerTestSuite) quoteFixture(newEnd time.Time) *commands.ExtensionQuote {
	return &commands.ExtensionQuote{
		BookingID:      s.bookingID,
		CurrentEnd:     newEnd.AddDate(0, 0, -3),
		NewEnd:         newEnd,
		AdditionalDays: 3,
		AmountCents:    36000,
		Currency:       "usd",
	}
}

func (s *ExtensionHandlerTestSuite) TestQuoteExtension() {
	url := "/bookings/" + s.bookingID.String() + "/extension/quote"
	newEnd := time.Date(2025, 6, 8, 10, 0, 0, 0, time.UTC)
	reqBody := reqdto.QuoteExtensionRequest{NewEnd: newEnd}

	s.Run("success: returns the priced quote", func() {
		s.mockCommands.EXPECT().Quote(gomock.Any(), s.bookingID, s.userID, user.RoleViewer.String(), newEnd).
			Return(s.quoteFixture(newEnd), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response resdto.ExtensionQuoteResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(3, response.AdditionalDays)
		s.Equal(int64(36000), response.AmountCents)
	})

	s.Run("error: 400 on missing new_end", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("error: 400 on malformed booking id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings/nope/extension/quote", reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid booking ID")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "booking not found",
				commandsError:  commands.ErrBookingNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Booking not found",
			},
			{
				name:           "not the owner",
				commandsError:  commands.ErrBookingAccess,
				expectedStatus: http.StatusForbidden,
				expectedMsg:    "Access denied",
			},
			{
				name:           "new end not after current end",
				commandsError:  commands.ErrInvalidExtensionWindow,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "after the current end",
			},
			{
				// the command attaches this sentinel as a mark, not by wrapping
				name:           "terminal booking",
				commandsError:  errs.Mark(errs.New("booking is cancelled"), commands.ErrExtensionNotAllowed),
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    "cannot be extended",
			},
			{
				name:           "unpriceable extension",
				commandsError:  commands.ErrInvalidExtensionAmount,
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    "could not be priced",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Quote(gomock.Any(), s.bookingID, s.userID, user.RoleViewer.String(), newEnd).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

func (s *ExtensionHandlerTestSuite) TestInitiateExtension() {
	url := "/bookings/" + s.bookingID.String() + "/extension/initiate"
	newEnd := time.Date(2025, 6, 8, 10, 0, 0, 0, time.UTC)
	reqBody := reqdto.InitiateExtensionRequest{NewEnd: newEnd}

	s.Run("success: returns the intent handle with the quote", func() {
		s.mockCommands.EXPECT().Initiate(gomock.Any(), s.bookingID, s.userID, user.RoleViewer.String(), newEnd).
			Return(&commands.InitiateExtensionResult{
				Quote:           s.quoteFixture(newEnd),
				PaymentIntentID: "pi_123",
				ClientSecret:    "pi_123_secret",
			}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response resdto.InitiateExtensionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("pi_123", response.PaymentIntentID)
		s.Equal("pi_123_secret", response.ClientSecret)
		s.NotNil(response.Quote)
		s.Equal(int64(36000), response.Quote.AmountCents)
	})

	s.Run("error: 502 when the payment provider is down", func() {
		s.mockCommands.EXPECT().Initiate(gomock.Any(), s.bookingID, s.userID, user.RoleViewer.String(), newEnd).
			Return(nil, errs.Mark(errs.New("stripe: connection refused"), commands.ErrPaymentGatewayFailed)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadGateway, "Payment provider")
	})
}

func (s *ExtensionHandlerTestSuite) TestCompleteExtension() {
	url := "/bookings/" + s.bookingID.String() + "/extension/complete"
	reqBody := reqdto.CompleteExtensionRequest{PaymentIntentID: "pi_123"}
	newEnd := time.Date(2025, 6, 8, 10, 0, 0, 0, time.UTC)

	s.Run("success: returns the applied extension with reassignments", func() {
		moved := commands.BoxReassignment{
			BookingID: uuid.New(),
			FromBoxID: uuid.New(),
			ToBoxID:   uuid.New(),
			StartsAt:  newEnd.AddDate(0, 0, -2),
			EndsAt:    newEnd.AddDate(0, 0, 2),
		}
		s.mockCommands.EXPECT().Complete(gomock.Any(), s.bookingID, s.userID, user.RoleViewer.String(), "pi_123").
			Return(&commands.ExtensionResult{
				BookingID:     s.bookingID,
				NewEnd:        newEnd,
				AmountCents:   36000,
				PaymentID:     uuid.New(),
				Reassignments: []commands.BoxReassignment{moved},
				IsReplayed:    false,
			}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response resdto.CompleteExtensionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(s.bookingID, response.BookingID)
		s.Len(response.Reassignments, 1)
		s.Equal(moved.ToBoxID, response.Reassignments[0].ToBoxID)
		s.False(response.IsReplayed)
	})

	s.Run("success: replay returns the recorded outcome", func() {
		s.mockCommands.EXPECT().Complete(gomock.Any(), s.bookingID, s.userID, user.RoleViewer.String(), "pi_123").
			Return(&commands.ExtensionResult{
				BookingID:  s.bookingID,
				NewEnd:     newEnd,
				IsReplayed: true,
			}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response resdto.CompleteExtensionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.True(response.IsReplayed)
	})

	s.Run("error: 400 on missing payment_intent_id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "payment not settled",
				commandsError:  commands.ErrPaymentNotSettled,
				expectedStatus: http.StatusPaymentRequired,
				expectedMsg:    "not settled",
			},
			{
				name:           "payment mismatch",
				commandsError:  commands.ErrPaymentMismatch,
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    "does not match",
			},
			{
				name:           "no sibling box for displaced booking",
				commandsError:  commands.ErrNoReassignment,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "cannot be reassigned",
			},
			{
				name:           "concurrent booking conflict",
				commandsError:  commands.ErrBookingConflict,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "concurrent booking",
			},
			{
				name:           "gateway lookup failed",
				commandsError:  errs.Mark(errs.New("stripe: connection refused"), commands.ErrPaymentGatewayFailed),
				expectedStatus: http.StatusBadGateway,
				expectedMsg:    "Payment provider",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Complete(gomock.Any(), s.bookingID, s.userID, user.RoleViewer.String(), "pi_123").
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}
