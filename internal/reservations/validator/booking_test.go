package validator

import (
	"strings"
	"testing"

	"podquest/pkg/logger"
	"podquest/pkg/model"
)

func newTestValidator() *BookingValidator {
	return NewBookingValidator(logger.New(logger.Config{Level: "error", Service: "test"}))
}

func validRequest() model.BookingRequest {
	return model.BookingRequest{
		PodName:    "Single Pod 1",
		GuestCount: 1,
		Date:       "2024-06-01",
		StartTime:  "09:00",
		Email:      "a@x.com",
	}
}

func TestValidate_ValidRequest(t *testing.T) {
	v := newTestValidator()
	req := validRequest()
	if err := v.Validate(&req); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestValidate_EmptyEmailPasses(t *testing.T) {
	// Email presence is the scheduler's check, not the validator's. The
	// rejection ordering (capacity, then conflict, then email) depends on
	// the validator letting blank emails through.
	v := newTestValidator()
	req := validRequest()
	req.Email = ""
	if err := v.Validate(&req); err != nil {
		t.Errorf("Validate with empty email: %v", err)
	}
}

func TestValidate_InvalidRequests(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*model.BookingRequest)
		wantField string
	}{
		{"missing pod name", func(r *model.BookingRequest) { r.PodName = "" }, "PodName"},
		{"zero guests", func(r *model.BookingRequest) { r.GuestCount = 0 }, "GuestCount"},
		{"negative guests", func(r *model.BookingRequest) { r.GuestCount = -2 }, "GuestCount"},
		{"missing date", func(r *model.BookingRequest) { r.Date = "" }, "Date"},
		{"bad date format", func(r *model.BookingRequest) { r.Date = "01/06/2024" }, "Date"},
		{"bad time format", func(r *model.BookingRequest) { r.StartTime = "9am" }, "StartTime"},
		{"seconds in time", func(r *model.BookingRequest) { r.StartTime = "09:00:00" }, "StartTime"},
	}

	v := newTestValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			err := v.Validate(&req)
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantField) {
				t.Errorf("error %q does not mention field %s", err.Error(), tt.wantField)
			}
		})
	}
}
