package repositories

import (
	"context"

	"packbill-backoffice/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// logRepository implements LogRepository interface
type logRepository struct {
	db *gorm.DB
}

// NewLogRepository creates a new audit log repository
func NewLogRepository(db *gorm.DB) LogRepository {
	return &logRepository{db: db}
}

// Create appends an audit log entry
func (r *logRepository) Create(ctx context.Context, entry *models.Log) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// List lists audit log entries matching the filter, newest first
func (r *logRepository) List(ctx context.Context, filter LogFilter) ([]*models.Log, int64, error) {
	var entries []*models.Log
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Log{})

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.
			Joins("LEFT JOIN users ON users.id = logs.user_id").
			Where("users.username LIKE ? OR logs.action LIKE ? OR logs.description LIKE ?", like, like, like)
	}
	if filter.StartDate != nil {
		query = query.Where("logs.created_at >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("logs.created_at <= ?", *filter.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("User").
		Order("logs.created_at DESC").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&entries).Error

	return entries, total, err
}
