package db_models

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

// Content is one ingested piece of travel content. Each of the four
// embedding columns is an independent channel; a nil vector means that
// channel has not been computed yet. LastEmbeddingUpdate covers
// whichever channels were (re)computed in the same batch.
type Content struct {
	BaseModel
	TripID         uuid.UUID `gorm:"type:uuid;index"`
	UserID         uuid.UUID `gorm:"type:uuid;index"`
	Title          string
	RawText        string    `gorm:"type:text"`
	UserNotes      string    `gorm:"type:text"`
	ExtractionText string    `gorm:"type:text"`

	TitleEmbedding      *pgvector.Vector `gorm:"type:vector(1536)"`
	RawTextEmbedding    *pgvector.Vector `gorm:"type:vector(1536)"`
	NotesEmbedding      *pgvector.Vector `gorm:"type:vector(1536)"`
	ExtractionEmbedding *pgvector.Vector `gorm:"type:vector(1536)"`
	LastEmbeddingUpdate *time.Time

	Pins []Pin
}
