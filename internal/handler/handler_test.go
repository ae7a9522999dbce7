package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/libreserve/reservation-service/internal/errs"
	"github.com/libreserve/reservation-service/internal/handler"
	service_mocks "github.com/libreserve/reservation-service/internal/handler/mocks"
	"github.com/libreserve/reservation-service/internal/model"
	"github.com/libreserve/reservation-service/pkg/validate"
)

func TestHandler_Reserve(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockReservationService)

	reserveDate := time.Date(2024, 9, 1, 10, 0, 0, 0, time.UTC)

	var tests = []struct {
		name         string
		body         string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name: "ok",
			body: `{"login":"reader","email":"reader@mail.com","password":"secret","title":"Dune"}`,
			mockBehavior: func(r *service_mocks.MockReservationService) {
				r.EXPECT().
					Reserve(context.Background(), model.ReserveRequest{
						Login: "reader", Email: "reader@mail.com", Password: "secret", Title: "Dune",
					}).
					Return(model.Reservation{
						ReservationUid: "a0a37ba8-0d4f-4f45-8317-b4f2930e0f0f",
						Login:          "reader",
						BookTitle:      "Dune",
						ReserveDate:    reserveDate,
					}, nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"reservationUid":"a0a37ba8-0d4f-4f45-8317-b4f2930e0f0f","login":"reader","bookTitle":"Dune","reserveDate":"2024-09-01T10:00:00Z"}`,
			},
		},
		{
			name:         "err. email required",
			body:         `{"login":"reader","password":"secret","title":"Dune"}`,
			mockBehavior: func(r *service_mocks.MockReservationService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"Key: 'ReserveRequest.Email' Error:Field validation for 'Email' failed on the 'required' tag"}`,
			},
		},
		{
			name: "err. book not found",
			body: `{"login":"reader","email":"reader@mail.com","password":"secret","title":"Ghost"}`,
			mockBehavior: func(r *service_mocks.MockReservationService) {
				r.EXPECT().
					Reserve(context.Background(), gomock.Any()).
					Return(model.Reservation{}, errs.ErrNotFound)
			},
			response: response{
				expectedCode: http.StatusNotFound,
				expectedBody: `{"message":"not found"}`,
			},
		},
		{
			name: "err. book not available",
			body: `{"login":"reader","email":"reader@mail.com","password":"secret","title":"Dune"}`,
			mockBehavior: func(r *service_mocks.MockReservationService) {
				r.EXPECT().
					Reserve(context.Background(), gomock.Any()).
					Return(model.Reservation{}, errs.ErrBookNotAvailable)
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"book is not available"}`,
			},
		},
		{
			name: "err. wrong password",
			body: `{"login":"reader","email":"reader@mail.com","password":"nope","title":"Dune"}`,
			mockBehavior: func(r *service_mocks.MockReservationService) {
				r.EXPECT().
					Reserve(context.Background(), gomock.Any()).
					Return(model.Reservation{}, errs.ErrWrongPassword)
			},
			response: response{
				expectedCode: http.StatusForbidden,
				expectedBody: `{"message":"wrong password"}`,
			},
		},
		{
			name: "err. internal",
			body: `{"login":"reader","email":"reader@mail.com","password":"secret","title":"Dune"}`,
			mockBehavior: func(r *service_mocks.MockReservationService) {
				r.EXPECT().
					Reserve(context.Background(), gomock.Any()).
					Return(model.Reservation{}, errors.New("db internal"))
			},
			response: response{
				expectedCode: http.StatusInternalServerError,
				expectedBody: `{"message":"db internal"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockReservationService(c)
			tt.mockBehavior(svc)
			h := handler.New(svc, zap.NewExample().Named("test"))

			e := echo.New()
			e.Validator = validate.NewCustomValidator()
			e.POST("/reservations", h.Reserve)

			r := httptest.NewRequest(http.MethodPost, "/reservations", strings.NewReader(tt.body))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()

			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_ListReservations(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockReservationService)

	reserveDate := time.Date(2024, 9, 1, 10, 0, 0, 0, time.UTC)

	var tests = []struct {
		name         string
		body         string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name: "ok",
			body: `{"login":"reader","password":"secret"}`,
			mockBehavior: func(r *service_mocks.MockReservationService) {
				r.EXPECT().
					ListReservationsForUser(context.Background(), "reader", "secret").
					Return([]model.Reservation{
						{
							ReservationUid: "a0a37ba8-0d4f-4f45-8317-b4f2930e0f0f",
							Login:          "reader",
							BookTitle:      "Dune",
							ReserveDate:    reserveDate,
						},
					}, nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `[{"reservationUid":"a0a37ba8-0d4f-4f45-8317-b4f2930e0f0f","login":"reader","bookTitle":"Dune","reserveDate":"2024-09-01T10:00:00Z"}]`,
			},
		},
		{
			name: "err. no reservations yet",
			body: `{"login":"reader","password":"secret"}`,
			mockBehavior: func(r *service_mocks.MockReservationService) {
				r.EXPECT().
					ListReservationsForUser(context.Background(), "reader", "secret").
					Return(nil, errs.ErrNoReservations)
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"no reservations yet"}`,
			},
		},
		{
			name: "err. login not found",
			body: `{"login":"ghost","password":"secret"}`,
			mockBehavior: func(r *service_mocks.MockReservationService) {
				r.EXPECT().
					ListReservationsForUser(context.Background(), "ghost", "secret").
					Return(nil, errors.Wrap(errs.ErrNotFound, "login, check the field"))
			},
			response: response{
				expectedCode: http.StatusNotFound,
				expectedBody: `{"message":"login, check the field: not found"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockReservationService(c)
			tt.mockBehavior(svc)
			h := handler.New(svc, zap.NewExample().Named("test"))

			e := echo.New()
			e.Validator = validate.NewCustomValidator()
			e.POST("/reservations/list", h.ListReservations)

			r := httptest.NewRequest(http.MethodPost, "/reservations/list", strings.NewReader(tt.body))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()

			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_GetReservation(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()
	svc := service_mocks.NewMockReservationService(c)
	svc.EXPECT().
		GetReservation(context.Background(), "missing").
		Return(model.Reservation{}, errs.ErrNotFound)
	h := handler.New(svc, zap.NewExample().Named("test"))

	e := echo.New()
	e.Validator = validate.NewCustomValidator()
	e.GET("/reservations/:reservationUid", h.GetReservation)

	r := httptest.NewRequest(http.MethodGet, "/reservations/missing", http.NoBody)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)

	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, `{"message":"not found"}`, strings.Trim(w.Body.String(), "\n"))
}

func TestHandler_MostReservedBooks(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()
	svc := service_mocks.NewMockReservationService(c)
	svc.EXPECT().
		MostReservedBooks(context.Background()).
		Return([]model.Book{
			{Title: "Dune", Genre: "sci-fi", Author: "Herbert", Status: model.StatusReserved},
			{Title: "Solaris", Genre: "sci-fi", Author: "Lem", Status: model.StatusAvailable},
		}, nil)
	h := handler.New(svc, zap.NewExample().Named("test"))

	e := echo.New()
	e.GET("/books/most-reserved", h.MostReservedBooks)

	r := httptest.NewRequest(http.MethodGet, "/books/most-reserved", http.NoBody)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t,
		`[{"title":"Dune","genre":"sci-fi","author":"Herbert","reservationStatus":"RESERVED"},{"title":"Solaris","genre":"sci-fi","author":"Lem","reservationStatus":"AVAILABLE"}]`,
		strings.Trim(w.Body.String(), "\n"))
}
