package request_models

import "github.com/google/uuid"

type CreateContentRequest struct {
	TripID    uuid.UUID `json:"trip_id" binding:"required"`
	Title     string    `json:"title"`
	RawText   string    `json:"raw_text" binding:"required"`
	UserNotes string    `json:"user_notes"`
}
