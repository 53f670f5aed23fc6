//go:build e2e

package extension_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"boxrent/internal/domain/user"
	"boxrent/internal/handler/dto/request"
	"boxrent/internal/handler/dto/response"
	"boxrent/tests/common/dbtest"
	"boxrent/tests/common/helper"
	chttptest "boxrent/tests/common/httptest"
	"boxrent/tests/e2e"
	jwtHelper "boxrent/tests/e2e/common/helper"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const bookingsURL = "/api/bookings"

type extensionSuite struct {
	e2e.SharedSuite
	jwtHelper *jwtHelper.JWTTestHelper

	ownerToken string
	otherToken string

	// 専用のスタンド: メインの箱と同型の退避先1台
	boxMain   uuid.UUID
	boxSib    uuid.UUID
	bookingID uuid.UUID

	startsAt   time.Time
	currentEnd time.Time
	newEnd     time.Time
}

func TestExtensionSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(extensionSuite))
}

func (s *extensionSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.jwtHelper = jwtHelper.NewJWTTestHelper(s.DB, s.Config.JWT)
}

func (s *extensionSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
	t := s.T()

	s.ownerToken = s.jwtHelper.CreateAndLoginWithDB(t, s.DB, s.Router, "owner@example.com", string(user.RoleViewer))
	s.otherToken = s.jwtHelper.CreateAndLoginWithDB(t, s.DB, s.Router, "other@example.com", string(user.RoleViewer))

	locationID := dbtest.CreateTestLocation(t, s.DB, "Harbor")
	standID := dbtest.CreateTestStand(t, s.DB, locationID, "Stand H")
	s.boxMain = dbtest.CreateTestBox(t, s.DB, standID, "classic-320", 10, 12000)
	s.boxSib = dbtest.CreateTestBox(t, s.DB, standID, "classic-320", 5, 12000)

	base := time.Now().UTC().Truncate(time.Second)
	s.startsAt = base.AddDate(0, 0, 2)
	s.currentEnd = base.AddDate(0, 0, 5)
	s.newEnd = base.AddDate(0, 0, 8) // 3日分の延長 = 36000セント

	s.bookingID = s.createBooking(s.ownerToken, s.boxMain, s.startsAt, s.currentEnd)
}

func (s *extensionSuite) createBooking(token string, boxID uuid.UUID, start, end time.Time) uuid.UUID {
	t := s.T()
	reqBody := request.CreateBookingRequest{BoxID: boxID, StartsAt: start, EndsAt: end}
	headers := map[string]string{"Idempotency-Key": uuid.NewString()}

	w := chttptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, bookingsURL, reqBody, headers, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var res response.CreateBookingResponse
	require.NoError(t, helper.DecodeResponseBody(t, w.Body, &res))
	return res.BookingID
}

func (s *extensionSuite) quote(token string, bookingID uuid.UUID, newEnd time.Time) *httptest.ResponseRecorder {
	return helper.PerformRequest(s.T(), s.Router, http.MethodPost,
		fmt.Sprintf("%s/%s/extension/quote", bookingsURL, bookingID),
		request.QuoteExtensionRequest{NewEnd: newEnd}, token)
}

func (s *extensionSuite) initiate(token string, bookingID uuid.UUID, newEnd time.Time) response.InitiateExtensionResponse {
	t := s.T()
	w := helper.PerformRequest(t, s.Router, http.MethodPost,
		fmt.Sprintf("%s/%s/extension/initiate", bookingsURL, bookingID),
		request.InitiateExtensionRequest{NewEnd: newEnd}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res response.InitiateExtensionResponse
	require.NoError(t, helper.DecodeResponseBody(t, w.Body, &res))
	require.NotEmpty(t, res.PaymentIntentID)
	return res
}

func (s *extensionSuite) complete(token string, bookingID uuid.UUID, intentID string) *httptest.ResponseRecorder {
	return helper.PerformRequest(s.T(), s.Router, http.MethodPost,
		fmt.Sprintf("%s/%s/extension/complete", bookingsURL, bookingID),
		request.CompleteExtensionRequest{PaymentIntentID: intentID}, token)
}

func (s *extensionSuite) TestQuoteExtension() {
	s.Run("延長3日分の見積もり", func() {
		t := s.T()
		w := s.quote(s.ownerToken, s.bookingID, s.newEnd)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var res response.ExtensionQuoteResponse
		require.NoError(t, helper.DecodeResponseBody(t, w.Body, &res))
		require.Equal(t, s.bookingID, res.BookingID)
		require.Equal(t, 3, res.AdditionalDays)
		require.Equal(t, int64(36000), res.AmountCents)
		require.Equal(t, "usd", res.Currency)
	})

	s.Run("端数の日は切り上げ", func() {
		t := s.T()
		w := s.quote(s.ownerToken, s.bookingID, s.currentEnd.Add(25*time.Hour))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var res response.ExtensionQuoteResponse
		require.NoError(t, helper.DecodeResponseBody(t, w.Body, &res))
		require.Equal(t, 2, res.AdditionalDays)
		require.Equal(t, int64(24000), res.AmountCents)
	})

	s.Run("現終了以前への延長は拒否される", func() {
		t := s.T()
		w := s.quote(s.ownerToken, s.bookingID, s.currentEnd)
		require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	})

	s.Run("他人の予約は見積もれない", func() {
		t := s.T()
		w := s.quote(s.otherToken, s.bookingID, s.newEnd)
		require.Equal(t, http.StatusForbidden, w.Code)
	})

	s.Run("キャンセル済みの予約は延長できない", func() {
		t := s.T()
		cancel := helper.PerformRequest(t, s.Router, http.MethodPost,
			fmt.Sprintf("%s/%s/cancel", bookingsURL, s.bookingID), nil, s.ownerToken)
		require.Equal(t, http.StatusNoContent, cancel.Code)

		w := s.quote(s.ownerToken, s.bookingID, s.newEnd)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	})
}

func (s *extensionSuite) TestExtensionFlow() {
	s.Run("決済から延長適用までの一連の流れ", func() {
		t := s.T()
		initiated := s.initiate(s.ownerToken, s.bookingID, s.newEnd)

		// 決済完了をシミュレート
		s.Gateway.Settle(initiated.PaymentIntentID)

		w := s.complete(s.ownerToken, s.bookingID, initiated.PaymentIntentID)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var res response.CompleteExtensionResponse
		require.NoError(t, helper.DecodeResponseBody(t, w.Body, &res))
		require.Equal(t, s.bookingID, res.BookingID)
		require.Equal(t, int64(36000), res.AmountCents)
		require.False(t, res.IsReplayed)
		require.Empty(t, res.Reassignments)

		ctx := context.Background()
		var endsAt time.Time
		var extensionCount int32
		var extendedAmountCents int64
		err := s.DB.QueryRow(ctx,
			"SELECT ends_at, extension_count, extended_amount_cents FROM bookings WHERE id = $1",
			s.bookingID).Scan(&endsAt, &extensionCount, &extendedAmountCents)
		require.NoError(t, err)
		require.True(t, endsAt.Equal(s.newEnd), "ends_atが延長されていない")
		require.Equal(t, int32(1), extensionCount)
		require.Equal(t, int64(36000), extendedAmountCents)

		// 決済行がインテントIDに紐付いて1件だけ存在する
		var paymentCount int
		err = s.DB.QueryRow(ctx,
			"SELECT count(*) FROM payments WHERE provider_ref = $1 AND booking_id = $2",
			initiated.PaymentIntentID, s.bookingID).Scan(&paymentCount)
		require.NoError(t, err)
		require.Equal(t, 1, paymentCount)
	})

	s.Run("同じインテントでの再完了はリプレイされる", func() {
		t := s.T()
		initiated := s.initiate(s.ownerToken, s.bookingID, s.newEnd)
		s.Gateway.Settle(initiated.PaymentIntentID)

		first := s.complete(s.ownerToken, s.bookingID, initiated.PaymentIntentID)
		require.Equal(t, http.StatusOK, first.Code, first.Body.String())

		second := s.complete(s.ownerToken, s.bookingID, initiated.PaymentIntentID)
		require.Equal(t, http.StatusOK, second.Code, second.Body.String())

		var res response.CompleteExtensionResponse
		require.NoError(t, helper.DecodeResponseBody(t, second.Body, &res))
		require.True(t, res.IsReplayed)

		// 二重適用されていない
		var extensionCount int32
		err := s.DB.QueryRow(context.Background(),
			"SELECT extension_count FROM bookings WHERE id = $1", s.bookingID).Scan(&extensionCount)
		require.NoError(t, err)
		require.Equal(t, int32(1), extensionCount)
	})

	s.Run("未決済のインテントでは完了できない", func() {
		t := s.T()
		initiated := s.initiate(s.ownerToken, s.bookingID, s.newEnd)

		w := s.complete(s.ownerToken, s.bookingID, initiated.PaymentIntentID)
		require.Equal(t, http.StatusPaymentRequired, w.Code, w.Body.String())

		// 予約は変わっていない
		var endsAt time.Time
		err := s.DB.QueryRow(context.Background(),
			"SELECT ends_at FROM bookings WHERE id = $1", s.bookingID).Scan(&endsAt)
		require.NoError(t, err)
		require.True(t, endsAt.Equal(s.currentEnd))
	})

	s.Run("別の予約のインテントでは完了できない", func() {
		t := s.T()
		otherBooking := s.createBooking(s.otherToken, s.boxSib, s.startsAt, s.currentEnd)
		initiated := s.initiate(s.otherToken, otherBooking, s.newEnd)
		s.Gateway.Settle(initiated.PaymentIntentID)

		w := s.complete(s.ownerToken, s.bookingID, initiated.PaymentIntentID)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	})
}

func (s *extensionSuite) TestExtensionReassignment() {
	s.Run("衝突した予約は同型の空き箱へ退避される", func() {
		t := s.T()
		conflictStart := s.currentEnd.AddDate(0, 0, 1)
		conflictEnd := s.currentEnd.AddDate(0, 0, 5)
		conflictID := s.createBooking(s.otherToken, s.boxMain, conflictStart, conflictEnd)

		initiated := s.initiate(s.ownerToken, s.bookingID, s.newEnd)
		s.Gateway.Settle(initiated.PaymentIntentID)

		w := s.complete(s.ownerToken, s.bookingID, initiated.PaymentIntentID)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var res response.CompleteExtensionResponse
		require.NoError(t, helper.DecodeResponseBody(t, w.Body, &res))
		require.Len(t, res.Reassignments, 1)
		require.Equal(t, conflictID, res.Reassignments[0].BookingID)
		require.Equal(t, s.boxMain, res.Reassignments[0].FromBoxID)
		require.Equal(t, s.boxSib, res.Reassignments[0].ToBoxID)

		ctx := context.Background()
		var movedBoxID uuid.UUID
		err := s.DB.QueryRow(ctx, "SELECT box_id FROM bookings WHERE id = $1", conflictID).Scan(&movedBoxID)
		require.NoError(t, err)
		require.Equal(t, s.boxSib, movedBoxID)

		// 退避された予約の持ち主宛に通知ジョブが積まれる
		var jobCount int
		err = s.DB.QueryRow(ctx,
			"SELECT count(*) FROM notification_jobs WHERE kind = 'booking_reassigned'").Scan(&jobCount)
		require.NoError(t, err)
		require.Equal(t, 1, jobCount)
	})

	s.Run("退避先がなければ延長全体が失敗する", func() {
		t := s.T()
		conflictStart := s.currentEnd.AddDate(0, 0, 1)
		conflictEnd := s.currentEnd.AddDate(0, 0, 5)
		s.createBooking(s.otherToken, s.boxMain, conflictStart, conflictEnd)
		// 退避先の箱も同じ期間で埋める
		s.createBooking(s.otherToken, s.boxSib, conflictStart, conflictEnd)

		initiated := s.initiate(s.ownerToken, s.bookingID, s.newEnd)
		s.Gateway.Settle(initiated.PaymentIntentID)

		w := s.complete(s.ownerToken, s.bookingID, initiated.PaymentIntentID)
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())

		// 予約は元のまま
		var endsAt time.Time
		err := s.DB.QueryRow(context.Background(),
			"SELECT ends_at FROM bookings WHERE id = $1", s.bookingID).Scan(&endsAt)
		require.NoError(t, err)
		require.True(t, endsAt.Equal(s.currentEnd))
	})
}
