package service

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"time"

	catalogsvc "podquest/internal/catalog/service"
	resverrors "podquest/internal/reservations/errors"
	"podquest/internal/reservations/events"
	"podquest/internal/reservations/repository"
	"podquest/internal/reservations/validator"
	"podquest/pkg/config"
	apperrors "podquest/pkg/errors"
	"podquest/pkg/model"
	"podquest/pkg/sanitizer"
)

// SchedulerService is the sole authority for reservation creation. It owns
// the in-memory ledger and its durable store, and serializes every
// attempt-and-commit behind one mutex; callers never coordinate writes
// themselves.
type SchedulerService interface {
	AttemptBooking(ctx context.Context, req *model.BookingRequest) (*model.Reservation, error)
	ListReservations(ctx context.Context, limit int, offset int64) ([]model.Reservation, int64, error)
}

type schedulerService struct {
	mu        sync.Mutex
	ledger    []model.Reservation
	store     repository.LedgerStore
	catalog   catalogsvc.CatalogService
	validator *validator.BookingValidator
	publisher events.Publisher
	cfg       *config.Config
}

// NewSchedulerService loads the full ledger from the store; a deployment
// with an unreadable ledger must not start taking bookings.
func NewSchedulerService(
	ctx context.Context,
	store repository.LedgerStore,
	catalog catalogsvc.CatalogService,
	bookingValidator *validator.BookingValidator,
	publisher events.Publisher,
	cfg *config.Config,
) (SchedulerService, error) {
	ledger, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load reservation ledger: %w", err)
	}

	return &schedulerService{
		ledger:    ledger,
		store:     store,
		catalog:   catalog,
		validator: bookingValidator,
		publisher: publisher,
		cfg:       cfg,
	}, nil
}

func (s *schedulerService) AttemptBooking(ctx context.Context, req *model.BookingRequest) (*model.Reservation, error) {
	s.sanitize(req)

	if err := s.validator.Validate(req); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return nil, apperrors.Validation("Invalid booking request", map[string]any{"error": err.Error()})
	}

	pod, err := s.catalog.FindByName(req.PodName)
	if err != nil {
		return nil, err
	}

	startTime, err := combineDateTime(req.Date, req.StartTime)
	if err != nil {
		// The validator already checked both formats; reaching this means
		// the formats drifted apart, which is a programming error.
		return nil, apperrors.Internal("Failed to combine booking date and time", err)
	}
	nominalEnd := startTime.Add(s.cfg.MeetingDuration)
	bufferedEnd := nominalEnd.Add(s.cfg.BufferDuration)

	s.mu.Lock()
	defer s.mu.Unlock()

	// Rejection order is fixed: capacity policy, then conflict, then
	// email. The caller always sees the same first reason for a given
	// request.
	if err := checkCapacityPolicy(pod, req.GuestCount); err != nil {
		s.cfg.Log.Info("Booking rejected by capacity policy",
			"pod", pod.Name,
			"capacity", pod.Capacity,
			"guest_count", req.GuestCount,
		)
		return nil, err
	}

	if conflict := s.findConflict(pod.ID, startTime, bufferedEnd); conflict != nil {
		s.cfg.Log.Info("Booking rejected by time conflict",
			"pod", pod.Name,
			"requested_start", startTime.Format(repository.TimeLayout),
			"conflict_start", conflict.StartTime.Format(repository.TimeLayout),
			"conflict_end", conflict.EndTime.Format(repository.TimeLayout),
		)
		return nil, apperrors.Wrap(resverrors.ErrTimeConflict, apperrors.CodeConflict,
			"This pod is already booked during that time. Please choose a different time or pod.",
			http.StatusConflict).WithDetails(map[string]any{
			"pod_name":       pod.Name,
			"conflict_start": conflict.StartTime.Format(repository.TimeLayout),
			"conflict_end":   conflict.EndTime.Format(repository.TimeLayout),
		})
	}

	if req.Email == "" {
		return nil, apperrors.Wrap(resverrors.ErrMissingEmail, apperrors.CodeValidation,
			"Please enter your email to confirm the booking.",
			http.StatusUnprocessableEntity)
	}

	reservation := model.Reservation{
		PodID:      pod.ID,
		PodName:    pod.Name,
		GuestCount: req.GuestCount,
		StartTime:  startTime,
		EndTime:    bufferedEnd,
		Email:      req.Email,
	}

	// Durable write first; the in-memory ledger only changes once the
	// store accepted the row, so a failed persist leaves no trace.
	if err := s.store.Append(ctx, &reservation); err != nil {
		s.cfg.Log.Error("Failed to persist reservation", "pod", pod.Name, "error", err)
		return nil, apperrors.Wrap(fmt.Errorf("%w: %v", resverrors.ErrPersistence, err),
			apperrors.CodeInternal, "Failed to save the booking, please try again.",
			http.StatusInternalServerError)
	}
	s.ledger = append(s.ledger, reservation)

	s.cfg.Log.Info("Reservation committed",
		"pod", pod.Name,
		"guest_count", reservation.GuestCount,
		"start_time", reservation.StartTime.Format(repository.TimeLayout),
		"end_time", reservation.EndTime.Format(repository.TimeLayout),
	)

	s.publish(ctx, &reservation)

	return &reservation, nil
}

// ListReservations returns committed reservations ordered by start time
// ascending. The total count covers the whole ledger regardless of the
// pagination window.
func (s *schedulerService) ListReservations(ctx context.Context, limit int, offset int64) ([]model.Reservation, int64, error) {
	s.mu.Lock()
	all := make([]model.Reservation, len(s.ledger))
	copy(all, s.ledger)
	s.mu.Unlock()

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].StartTime.Before(all[j].StartTime)
	})

	total := int64(len(all))
	if offset >= total {
		return []model.Reservation{}, total, nil
	}

	end := offset + int64(limit)
	if limit <= 0 || end > total {
		end = total
	}
	return all[offset:end], total, nil
}

// --- Helpers ---

func (s *schedulerService) sanitize(req *model.BookingRequest) {
	req.PodName = sanitizer.NormalizePodName(req.PodName)
	req.Email = sanitizer.NormalizeEmail(req.Email)
}

// checkCapacityPolicy stops a lone guest from occupying a pod sized for
// three or more people. Capacity-2 pods remain allowed for a single guest.
func checkCapacityPolicy(pod *model.Pod, guestCount int) error {
	if guestCount == 1 && pod.Capacity > 2 {
		return apperrors.Wrap(resverrors.ErrSingleGuestBigPod, apperrors.CodeValidation,
			"Single guests cannot book Big Pods. Please choose a smaller pod.",
			http.StatusUnprocessableEntity).WithDetails(map[string]any{
			"pod_name": pod.Name,
			"capacity": pod.Capacity,
		})
	}
	return nil
}

// findConflict scans the pod's reservations with the ledger's historical
// overlap test: the candidate conflicts when its start falls inside an
// existing span, or its buffered end does. A candidate that strictly
// encloses a shorter reservation trips neither inequality; see
// TestAttemptBooking_ContainmentGap before changing this.
func (s *schedulerService) findConflict(podID int, startTime, bufferedEnd time.Time) *model.Reservation {
	for i := range s.ledger {
		r := &s.ledger[i]
		if r.PodID != podID {
			continue
		}
		startsInside := !r.StartTime.After(startTime) && r.EndTime.After(startTime)
		endsInside := r.StartTime.Before(bufferedEnd) && !r.EndTime.Before(bufferedEnd)
		if startsInside || endsInside {
			return r
		}
	}
	return nil
}

func (s *schedulerService) publish(ctx context.Context, reservation *model.Reservation) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.ReservationCreated(ctx, reservation); err != nil {
		s.cfg.Log.Warn("Failed to publish reservation event",
			"pod", reservation.PodName,
			"error", err,
		)
	}
}

func combineDateTime(date, startTime string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", date+" "+startTime, time.Local)
}
