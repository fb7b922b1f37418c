package services

import (
	"context"
	"log"

	"packbill-backoffice/internal/adapters/persistence/models"
	"packbill-backoffice/internal/adapters/persistence/repositories"
)

// Actor identifies who performs an operation. IsAdmin is derived from
// the access token's is_staff/is_superuser flags, nowhere else.
type Actor struct {
	ID       uint
	Username string
	IsAdmin  bool
}

// LogService records and lists the audit trail. Every mutation in the
// other services goes through Record, mirroring the write-once,
// backend-authoritative log contract.
type LogService struct {
	logRepo  repositories.LogRepository
	userRepo repositories.UserRepository
}

// NewLogService creates a new log service
func NewLogService(logRepo repositories.LogRepository, userRepo repositories.UserRepository) *LogService {
	return &LogService{
		logRepo:  logRepo,
		userRepo: userRepo,
	}
}

// Record appends an audit entry. Best-effort: a failed audit write is
// logged but never fails the mutation that triggered it.
func (s *LogService) Record(ctx context.Context, userID *uint, action, description string) {
	if userID == nil {
		// Fall back to the seeded system account
		if system, err := s.userRepo.GetByUsername(ctx, "system"); err == nil {
			userID = &system.ID
		}
	}

	entry := &models.Log{
		UserID:      userID,
		Action:      action,
		Description: description,
	}

	if err := s.logRepo.Create(ctx, entry); err != nil {
		log.Printf("⚠️ Failed to write audit log [%s]: %v", action, err)
	}
}

// ListLogsInput represents list logs input
type ListLogsInput struct {
	Filter repositories.LogFilter
}

// ListLogs lists audit entries matching the filter
func (s *LogService) ListLogs(ctx context.Context, input *ListLogsInput) ([]*models.LogResponse, int64, error) {
	entries, total, err := s.logRepo.List(ctx, input.Filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*models.LogResponse, len(entries))
	for i, entry := range entries {
		responses[i] = entry.ToResponse()
	}

	return responses, total, nil
}
