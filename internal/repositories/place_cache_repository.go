package repositories

import (
	"context"
	"errors"
	"time"

	"triplog/internal/models/db_models"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type PlaceCacheRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*db_models.PlaceRecord, error)
	GetByGooglePlaceID(ctx context.Context, googlePlaceID string) (*db_models.PlaceRecord, error)

	// Create is a plain insert. The unique index on google_place_id is
	// the only guard against concurrent resolvers racing to the same
	// place; callers must re-read on gorm.ErrDuplicatedKey.
	Create(ctx context.Context, record *db_models.PlaceRecord) error

	ListStale(ctx context.Context, cutoff time.Time) ([]db_models.PlaceRecord, error)
	ReplaceImage(ctx context.Context, id uuid.UUID, imageURL string) error
}

type placeCacheRepository struct {
	db *gorm.DB
}

func NewPlaceCacheRepository(db *gorm.DB) PlaceCacheRepository {
	return &placeCacheRepository{db: db}
}

// ────────────────────────────────────────────────────────────────
// Read helpers return default value + nil error when no rows exist.
// ────────────────────────────────────────────────────────────────

func (r *placeCacheRepository) GetByID(ctx context.Context, id uuid.UUID) (*db_models.PlaceRecord, error) {
	var record db_models.PlaceRecord
	err := r.db.WithContext(ctx).
		First(&record, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *placeCacheRepository) GetByGooglePlaceID(ctx context.Context, googlePlaceID string) (*db_models.PlaceRecord, error) {
	var record db_models.PlaceRecord
	err := r.db.WithContext(ctx).
		First(&record, "google_place_id = ?", googlePlaceID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *placeCacheRepository) Create(ctx context.Context, record *db_models.PlaceRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *placeCacheRepository) ListStale(ctx context.Context, cutoff time.Time) ([]db_models.PlaceRecord, error) {
	var records []db_models.PlaceRecord
	err := r.db.WithContext(ctx).
		Where("last_cached_at < ?", cutoff).
		Where("images IS NOT NULL AND array_length(images, 1) > 0").
		Order("last_cached_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *placeCacheRepository) ReplaceImage(ctx context.Context, id uuid.UUID, imageURL string) error {
	return r.db.WithContext(ctx).
		Model(&db_models.PlaceRecord{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"images":         pq.StringArray{imageURL},
			"last_cached_at": time.Now().UTC(),
		}).Error
}
