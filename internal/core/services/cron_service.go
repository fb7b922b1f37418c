package services

import (
	"context"
	"log"
	"time"

	"packbill-backoffice/internal/adapters/persistence/repositories"
	"packbill-backoffice/internal/pkg/timeseries"

	"github.com/robfig/cron/v3"
)

// CronService runs scheduled background jobs
type CronService struct {
	refreshTokenRepo repositories.RefreshTokenRepository
	paymentRepo      repositories.PaymentRepository
	cron             *cron.Cron
}

// NewCronService creates a new cron service
func NewCronService(
	refreshTokenRepo repositories.RefreshTokenRepository,
	paymentRepo repositories.PaymentRepository,
) *CronService {
	return &CronService{
		refreshTokenRepo: refreshTokenRepo,
		paymentRepo:      paymentRepo,
		cron:             cron.New(),
	}
}

// Start registers and launches all scheduled jobs
func (s *CronService) Start() {
	// Purge expired refresh tokens (03:00 daily)
	s.cron.AddFunc("0 3 * * *", s.purgeExpiredTokens)

	// Revenue summary of the previous day (08:30 daily)
	s.cron.AddFunc("30 8 * * *", s.logDailyRevenue)

	s.cron.Start()
	log.Println("🚀 CronService started")
}

// Stop gracefully stops the scheduler, waiting for running jobs
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("🛑 CronService stopped")
}

func (s *CronService) purgeExpiredTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	deleted, err := s.refreshTokenRepo.DeleteExpired(ctx)
	if err != nil {
		log.Printf("❌ Token purge error: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("🧹 Purged %d expired refresh tokens", deleted)
	}
}

func (s *CronService) logDailyRevenue() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -1)
	dayEnd := dayStart.AddDate(0, 0, 1).Add(-time.Nanosecond)

	payments, err := s.paymentRepo.ListWindow(ctx, dayStart, dayEnd, nil)
	if err != nil {
		log.Printf("❌ Revenue summary query error: %v", err)
		return
	}

	var total float64
	for _, p := range payments {
		total += p.Amount
	}

	log.Printf("💰 Revenue for %s: %s from %d payments",
		dayStart.Format("2006-01-02"), timeseries.FormatAmount(total), len(payments))
}
