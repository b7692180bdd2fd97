package errors

import "errors"

var (
	// ErrSingleGuestBigPod rejects a lone guest booking a pod sized for
	// three or more people. Double pods stay allowed for one guest.
	ErrSingleGuestBigPod = errors.New("single guests cannot book big pods")

	ErrTimeConflict = errors.New("pod is already booked during the requested time")

	ErrMissingEmail = errors.New("email is required to confirm the booking")

	// ErrPersistence means the durable write failed; the in-memory ledger
	// is left exactly as it was before the attempt.
	ErrPersistence = errors.New("failed to persist reservation")
)
