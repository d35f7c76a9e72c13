package repositories

import (
	"context"
	"errors"
	"time"

	"triplog/internal/models/db_models"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

// ChannelVectors carries freshly computed embedding channels. Nil
// fields were not computed in this batch and keep their stored value.
type ChannelVectors struct {
	Title      *pgvector.Vector
	RawText    *pgvector.Vector
	Notes      *pgvector.Vector
	Extraction *pgvector.Vector
}

type ContentRepository interface {
	CreateContent(ctx context.Context, content *db_models.Content) error
	GetByID(ctx context.Context, id uuid.UUID) (*db_models.Content, error)
	UpdateEmbeddings(ctx context.Context, id uuid.UUID, vectors ChannelVectors) error
	ListMissingEmbeddings(ctx context.Context, limit int) ([]db_models.Content, error)
}

type contentRepository struct {
	db *gorm.DB
}

func NewContentRepository(db *gorm.DB) ContentRepository {
	return &contentRepository{db: db}
}

func (r *contentRepository) CreateContent(ctx context.Context, content *db_models.Content) error {
	return r.db.WithContext(ctx).Create(content).Error
}

func (r *contentRepository) GetByID(ctx context.Context, id uuid.UUID) (*db_models.Content, error) {
	var content db_models.Content
	err := r.db.WithContext(ctx).
		First(&content, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &content, nil
}

func (r *contentRepository) UpdateEmbeddings(ctx context.Context, id uuid.UUID, vectors ChannelVectors) error {
	updates := map[string]interface{}{
		"last_embedding_update": time.Now().UTC(),
	}
	if vectors.Title != nil {
		updates["title_embedding"] = *vectors.Title
	}
	if vectors.RawText != nil {
		updates["raw_text_embedding"] = *vectors.RawText
	}
	if vectors.Notes != nil {
		updates["notes_embedding"] = *vectors.Notes
	}
	if vectors.Extraction != nil {
		updates["extraction_embedding"] = *vectors.Extraction
	}

	return r.db.WithContext(ctx).
		Model(&db_models.Content{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *contentRepository) ListMissingEmbeddings(ctx context.Context, limit int) ([]db_models.Content, error) {
	var contents []db_models.Content
	err := r.db.WithContext(ctx).
		Where("last_embedding_update IS NULL").
		Order("created_at ASC").
		Limit(limit).
		Find(&contents).Error
	if err != nil {
		return nil, err
	}
	return contents, nil
}
