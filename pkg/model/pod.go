package model

// Pod is a bookable workspace resource. The catalog defines pods once at
// startup; they are never mutated afterwards.
type Pod struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}
