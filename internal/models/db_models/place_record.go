package db_models

import (
	"time"

	"github.com/lib/pq"
)

// PlaceRecord is the deduplicated cache entry for one Google place id.
// The unique index on GooglePlaceID is the only synchronization point
// between concurrent resolutions of the same place.
type PlaceRecord struct {
	BaseModel
	GooglePlaceID    string         `gorm:"type:varchar(255);uniqueIndex"`
	Name             string
	Rating           *int           `gorm:"type:smallint"`
	UserRatingsTotal int
	MapsURL          string         `gorm:"type:text"`
	OpeningHours     string         `gorm:"type:jsonb"`
	Images           pq.StringArray `gorm:"type:text[]"`
	UTCOffsetMinutes int
	FormattedAddress string
	Latitude         float64
	Longitude        float64
	BusinessStatus   string         `gorm:"type:varchar(50)"`
	PriceLevel       *int           `gorm:"type:smallint"`
	Types            pq.StringArray `gorm:"type:text[]"`
	LastCachedAt     time.Time
}

// AlwaysOpenHours is the fixed opening-hours document stored on every
// cached place. The source does not expose real hours, so the cache
// deliberately synthesizes an always-open schedule instead.
func AlwaysOpenHours() string {
	return `{"open_now":true,"periods":[{"open":{"day":0,"time":"0000"}}],"weekday_text":[]}`
}
