package model

import "time"

// Reservation is a committed booking. EndTime already includes the
// turnover buffer appended after the nominal meeting end.
type Reservation struct {
	PodID      int       `json:"pod_id" bson:"pod_id"`
	PodName    string    `json:"pod_name" bson:"pod_name"`
	GuestCount int       `json:"guest_count" bson:"guest_count"`
	StartTime  time.Time `json:"start_time" bson:"start_time"`
	EndTime    time.Time `json:"end_time" bson:"end_time"`
	Email      string    `json:"email" bson:"email"`
}

// BookingRequest is the caller's booking form. Date and StartTime arrive as
// naive local strings and are combined by the scheduler. Email presence is
// deliberately not validated here: the scheduler checks it after the
// capacity and conflict checks so the caller sees rejections in a fixed
// order.
type BookingRequest struct {
	PodName    string `json:"pod_name" validate:"required,min=2,max=100"`
	GuestCount int    `json:"guest_count" validate:"required,min=1,max=200"`
	Date       string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime  string `json:"start_time" validate:"required,datetime=15:04"`
	Email      string `json:"email" validate:"omitempty,max=254"`
}
