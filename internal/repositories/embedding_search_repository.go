package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

// SemanticMatch is one content row scored by its best embedding channel.
type SemanticMatch struct {
	ContentID uuid.UUID `gorm:"column:content_id"`
	Score     float64   `gorm:"column:score"`
	CreatedAt int64     `gorm:"column:created_at"`
}

type SemanticSearchRepository interface {
	// SearchByVector keeps, per content row in scope, the maximum cosine
	// similarity across the four embedding channels. Rows with every
	// channel null are skipped entirely.
	SearchByVector(ctx context.Context, vector pgvector.Vector, scope SearchScope, limit int) ([]SemanticMatch, error)
}

type semanticSearchRepository struct {
	db *gorm.DB
}

func NewSemanticSearchRepository(db *gorm.DB) SemanticSearchRepository {
	return &semanticSearchRepository{db: db}
}

func (r *semanticSearchRepository) SearchByVector(ctx context.Context, vector pgvector.Vector, scope SearchScope, limit int) ([]SemanticMatch, error) {
	var results []SemanticMatch

	vecStr := vector.String()

	sql := `
        SELECT c.id AS content_id, c.created_at AS created_at,
               GREATEST(
                   COALESCE(1 - (c.title_embedding <=> ?::vector), 0),
                   COALESCE(1 - (c.raw_text_embedding <=> ?::vector), 0),
                   COALESCE(1 - (c.notes_embedding <=> ?::vector), 0),
                   COALESCE(1 - (c.extraction_embedding <=> ?::vector), 0)
               ) AS score
        FROM contents c
        WHERE c.deleted_at IS NULL
          AND (c.title_embedding IS NOT NULL
               OR c.raw_text_embedding IS NOT NULL
               OR c.notes_embedding IS NOT NULL
               OR c.extraction_embedding IS NOT NULL)
    `
	args := []interface{}{vecStr, vecStr, vecStr, vecStr}
	sql, args = appendScopeFilter(sql, args, scope)
	sql += " ORDER BY score DESC, c.created_at DESC LIMIT ?"
	args = append(args, limit)

	err := r.db.WithContext(ctx).Raw(sql, args...).Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
