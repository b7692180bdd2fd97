package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	resverrors "podquest/internal/reservations/errors"
	apperrors "podquest/pkg/errors"
	"podquest/pkg/logger"
	"podquest/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type mockSchedulerService struct {
	attemptBookingFunc   func(ctx context.Context, req *model.BookingRequest) (*model.Reservation, error)
	listReservationsFunc func(ctx context.Context, limit int, offset int64) ([]model.Reservation, int64, error)
}

func (m *mockSchedulerService) AttemptBooking(ctx context.Context, req *model.BookingRequest) (*model.Reservation, error) {
	return m.attemptBookingFunc(ctx, req)
}

func (m *mockSchedulerService) ListReservations(ctx context.Context, limit int, offset int64) ([]model.Reservation, int64, error) {
	return m.listReservationsFunc(ctx, limit, offset)
}

func testRouter(svc *mockSchedulerService) *httprouter.Router {
	h := NewReservationHandler(svc, logger.New(logger.Config{Level: "error", Service: "test"}))
	router := httprouter.New()
	h.RegisterRoutes(router)
	return router
}

func localTime(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.ParseInLocation("2006-01-02 15:04", value, time.Local)
	if err != nil {
		t.Fatal(err)
	}
	return ts
}

func TestCreateBooking_Success(t *testing.T) {
	svc := &mockSchedulerService{
		attemptBookingFunc: func(ctx context.Context, req *model.BookingRequest) (*model.Reservation, error) {
			return &model.Reservation{
				PodID: 1, PodName: "Single Pod 1", GuestCount: 1,
				StartTime: localTime(t, "2024-06-01 09:00"),
				EndTime:   localTime(t, "2024-06-01 10:10"),
				Email:     "a@x.com",
			}, nil
		},
	}

	body := `{"pod_name":"Single Pod 1","guest_count":1,"date":"2024-06-01","start_time":"09:00","email":"a@x.com"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	w := httptest.NewRecorder()
	testRouter(svc).ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusCreated, w.Body.String())
	}

	var resp struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	want := "Booking Confirmed for Single Pod 1 on 2024-06-01 at 09:00!"
	if resp.Message != want {
		t.Errorf("message = %q, want %q", resp.Message, want)
	}
}

func TestCreateBooking_MalformedBody(t *testing.T) {
	svc := &mockSchedulerService{
		attemptBookingFunc: func(ctx context.Context, req *model.BookingRequest) (*model.Reservation, error) {
			t.Fatal("service must not be called for a malformed body")
			return nil, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	testRouter(svc).ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestCreateBooking_ErrorStatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "time conflict",
			serviceErr: apperrors.Wrap(resverrors.ErrTimeConflict, apperrors.CodeConflict, "This pod is already booked during the requested time.", http.StatusConflict),
			wantStatus: http.StatusConflict,
			wantCode:   apperrors.CodeConflict,
		},
		{
			name:       "single guest big pod",
			serviceErr: apperrors.Wrap(resverrors.ErrSingleGuestBigPod, apperrors.CodeValidation, "Single guests cannot book Big Pods. Please choose a smaller pod.", http.StatusUnprocessableEntity),
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   apperrors.CodeValidation,
		},
		{
			name:       "unknown pod",
			serviceErr: apperrors.NotFoundWithName("pod", "Mega Pod"),
			wantStatus: http.StatusNotFound,
			wantCode:   apperrors.CodeNotFound,
		},
		{
			name:       "persistence failure",
			serviceErr: apperrors.Wrap(resverrors.ErrPersistence, apperrors.CodeInternal, "Could not record the booking. Please try again.", http.StatusInternalServerError),
			wantStatus: http.StatusInternalServerError,
			wantCode:   apperrors.CodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockSchedulerService{
				attemptBookingFunc: func(ctx context.Context, req *model.BookingRequest) (*model.Reservation, error) {
					return nil, tt.serviceErr
				},
			}

			body := `{"pod_name":"Single Pod 1","guest_count":1,"date":"2024-06-01","start_time":"09:00","email":"a@x.com"}`
			req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
			w := httptest.NewRecorder()
			testRouter(svc).ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}

			var resp struct {
				Code string `json:"code"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if resp.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", resp.Code, tt.wantCode)
			}
		})
	}
}

func TestListBookings(t *testing.T) {
	var gotLimit int
	var gotOffset int64
	svc := &mockSchedulerService{
		listReservationsFunc: func(ctx context.Context, limit int, offset int64) ([]model.Reservation, int64, error) {
			gotLimit, gotOffset = limit, offset
			return []model.Reservation{
				{PodID: 1, PodName: "Single Pod 1", GuestCount: 1,
					StartTime: localTime(t, "2024-06-01 09:00"),
					EndTime:   localTime(t, "2024-06-01 10:10"),
					Email:     "a@x.com"},
			}, 5, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings?limit=2&offset=3", nil)
	w := httptest.NewRecorder()
	testRouter(svc).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	if gotLimit != 2 || gotOffset != 3 {
		t.Errorf("service called with limit=%d offset=%d", gotLimit, gotOffset)
	}

	var resp struct {
		Data       []model.Reservation `json:"data"`
		TotalCount int64               `json:"total_count"`
		Limit      int                 `json:"limit"`
		Offset     int64               `json:"offset"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.TotalCount != 5 || len(resp.Data) != 1 {
		t.Errorf("total_count = %d, len(data) = %d", resp.TotalCount, len(resp.Data))
	}
}

func TestListBookings_InvalidLimit(t *testing.T) {
	svc := &mockSchedulerService{
		listReservationsFunc: func(ctx context.Context, limit int, offset int64) ([]model.Reservation, int64, error) {
			t.Fatal("service must not be called for an invalid limit")
			return nil, 0, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings?limit=abc", nil)
	w := httptest.NewRecorder()
	testRouter(svc).ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}
