package repository

import (
	"context"

	"tweetapp/internal/middleware"
	"tweetapp/internal/models"

	"gorm.io/gorm"
)

// SequenceRepository issues monotonically increasing identifiers from named
// counters. Next must never hand out the same value twice, even under
// concurrent callers for the same name.
type SequenceRepository interface {
	Next(ctx context.Context, name string) (uint, error)
}

type sequenceRepository struct {
	db *gorm.DB
}

// NewSequenceRepository returns a new SequenceRepository implementation.
func NewSequenceRepository(db *gorm.DB) SequenceRepository {
	return &sequenceRepository{db: db}
}

// Next increments the named counter and returns the freshly issued value.
// The upsert runs as one statement so the read-modify-write cannot be split
// by a concurrent caller; counters for different names live in different
// rows and do not serialize against each other.
func (r *sequenceRepository) Next(ctx context.Context, name string) (uint, error) {
	var value uint
	err := r.db.WithContext(ctx).Raw(
		`INSERT INTO sequence_counters (name, value) VALUES (?, 1)
		 ON CONFLICT (name) DO UPDATE SET value = sequence_counters.value + 1
		 RETURNING value`,
		name,
	).Scan(&value).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	middleware.SequenceIssued.WithLabelValues(name).Inc()
	return value, nil
}
