package repositories

import (
	"context"
	"strings"

	"triplog/internal/models/db_models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SearchScope narrows search queries to one user and/or one trip. Nil
// fields mean no filter on that dimension.
type SearchScope struct {
	UserID *uuid.UUID
	TripID *uuid.UUID
}

// PinNameMatch is one lexical hit of the query against a pin name.
type PinNameMatch struct {
	ContentID uuid.UUID `gorm:"column:content_id"`
	PinName   string    `gorm:"column:pin_name"`
	Score     float64   `gorm:"column:score"`
	CreatedAt int64     `gorm:"column:created_at"`
}

type PinRepository interface {
	CreatePin(ctx context.Context, pin *db_models.Pin) error
	ListByContentID(ctx context.Context, contentID uuid.UUID) ([]db_models.Pin, error)

	// SearchNamesInScope combines substring containment (fixed 0.95
	// score) with pg_trgm similarity above 0.3. Errors when the pg_trgm
	// extension is missing; callers fall back to the ILIKE-only path.
	SearchNamesInScope(ctx context.Context, query string, scope SearchScope, limit int) ([]PinNameMatch, error)

	// SearchNamesInScopeFallback matches purely by case-insensitive
	// containment, ranked exact > prefix > substring, then recency.
	// The rank is encoded in the score (0.95/0.94/0.93) so it survives
	// the merge with the semantic arm.
	SearchNamesInScopeFallback(ctx context.Context, query string, scope SearchScope, limit int) ([]PinNameMatch, error)
}

type pinRepository struct {
	db *gorm.DB
}

func NewPinRepository(db *gorm.DB) PinRepository {
	return &pinRepository{db: db}
}

func (r *pinRepository) CreatePin(ctx context.Context, pin *db_models.Pin) error {
	return r.db.WithContext(ctx).Create(pin).Error
}

func (r *pinRepository) ListByContentID(ctx context.Context, contentID uuid.UUID) ([]db_models.Pin, error) {
	var pins []db_models.Pin
	err := r.db.WithContext(ctx).
		Preload("PlaceRecord").
		Where("content_id = ?", contentID).
		Find(&pins).Error
	if err != nil {
		return nil, err
	}
	return pins, nil
}

func (r *pinRepository) SearchNamesInScope(ctx context.Context, query string, scope SearchScope, limit int) ([]PinNameMatch, error) {
	var results []PinNameMatch

	escaped := escapeLikePattern(query)
	sql := `
        SELECT c.id AS content_id, p.name AS pin_name, c.created_at AS created_at,
               CASE WHEN LOWER(p.name) LIKE '%' || LOWER(?) || '%' THEN 0.95
                    ELSE similarity(p.name, ?) END AS score
        FROM pins p
        JOIN contents c ON c.id = p.content_id AND c.deleted_at IS NULL
        WHERE p.deleted_at IS NULL
          AND (LOWER(p.name) LIKE '%' || LOWER(?) || '%' OR similarity(p.name, ?) > 0.3)
    `
	args := []interface{}{escaped, query, escaped, query}
	sql, args = appendScopeFilter(sql, args, scope)
	sql += " ORDER BY score DESC, c.created_at DESC LIMIT ?"
	args = append(args, limit)

	err := r.db.WithContext(ctx).Raw(sql, args...).Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *pinRepository) SearchNamesInScopeFallback(ctx context.Context, query string, scope SearchScope, limit int) ([]PinNameMatch, error) {
	var results []PinNameMatch

	escaped := escapeLikePattern(query)
	sql := `
        SELECT c.id AS content_id, p.name AS pin_name, c.created_at AS created_at,
               CASE WHEN LOWER(p.name) = LOWER(?) THEN 0.95
                    WHEN LOWER(p.name) LIKE LOWER(?) || '%' THEN 0.94
                    ELSE 0.93 END AS score
        FROM pins p
        JOIN contents c ON c.id = p.content_id AND c.deleted_at IS NULL
        WHERE p.deleted_at IS NULL
          AND p.name ILIKE '%' || ? || '%'
    `
	args := []interface{}{query, escaped, escaped}
	sql, args = appendScopeFilter(sql, args, scope)
	sql += " ORDER BY score DESC, c.created_at DESC LIMIT ?"
	args = append(args, limit)

	err := r.db.WithContext(ctx).Raw(sql, args...).Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

// escapeLikePattern neutralizes LIKE metacharacters in user input so a
// query containing % or _ matches literally instead of everything.
// Backslash is the default LIKE escape character in Postgres.
var likePatternEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLikePattern(query string) string {
	return likePatternEscaper.Replace(query)
}

func appendScopeFilter(sql string, args []interface{}, scope SearchScope) (string, []interface{}) {
	var b strings.Builder
	b.WriteString(sql)
	if scope.UserID != nil {
		b.WriteString(" AND c.user_id = ?")
		args = append(args, *scope.UserID)
	}
	if scope.TripID != nil {
		b.WriteString(" AND c.trip_id = ?")
		args = append(args, *scope.TripID)
	}
	return b.String(), args
}
