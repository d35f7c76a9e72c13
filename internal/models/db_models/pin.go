package db_models

import "github.com/google/uuid"

// Pin is one resolved-or-unresolved location mention attached to a
// content item. PlaceRecordID stays nil for mentions that resolved to
// no concrete place (country-only captions and the like).
type Pin struct {
	BaseModel
	Name          string
	Category      string
	Description   string
	ContentID     uuid.UUID  `gorm:"type:uuid;index"`
	PlaceRecordID *uuid.UUID `gorm:"type:uuid"`

	PlaceRecord *PlaceRecord
}
