package services

import (
	"context"
	"log"
	"time"

	"univ-biblio/internal/adapters/persistence/repositories"
	"univ-biblio/internal/pkg/clock"

	"github.com/robfig/cron/v3"
)

const (
	// overdueSchedule fires the sweep daily at 08:30
	overdueSchedule = "30 8 * * *"

	// cleanupSchedule purges expired refresh tokens nightly
	cleanupSchedule = "0 3 * * *"
)

// CronService runs the daily overdue-loan sweep and token cleanup
type CronService struct {
	cron          *cron.Cron
	loanRepo      repositories.LoanRepository
	tokenRepo     repositories.RefreshTokenRepository
	notifyService *NotificationService
	clock         clock.Clock
}

// NewCronService creates a new cron service
func NewCronService(
	loanRepo repositories.LoanRepository,
	tokenRepo repositories.RefreshTokenRepository,
	notifyService *NotificationService,
	clk clock.Clock,
) *CronService {
	return &CronService{
		cron:          cron.New(),
		loanRepo:      loanRepo,
		tokenRepo:     tokenRepo,
		notifyService: notifyService,
		clock:         clk,
	}
}

// Start schedules and launches the background jobs
func (s *CronService) Start() {
	if _, err := s.cron.AddFunc(overdueSchedule, s.SweepOverdueLoans); err != nil {
		log.Printf("❌ Failed to schedule overdue sweep: %v", err)
		return
	}
	if _, err := s.cron.AddFunc(cleanupSchedule, s.CleanupExpiredTokens); err != nil {
		log.Printf("❌ Failed to schedule token cleanup: %v", err)
		return
	}
	s.cron.Start()
	log.Println("🚀 Background jobs scheduled (overdue sweep 08:30, token cleanup 03:00)")
}

// Stop stops the scheduler and waits for a running job to finish
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("🛑 Cron service stopped")
}

// SweepOverdueLoans finds open loans past due and pushes reminders.
// Exported so the sweep can also be triggered manually.
func (s *CronService) SweepOverdueLoans() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	loans, err := s.loanRepo.ListOverdue(ctx, s.clock.Now())
	if err != nil {
		log.Printf("❌ Overdue sweep query error: %v", err)
		return
	}

	for _, loan := range loans {
		if err := s.notifyService.NotifyOverdueLoan(loan); err != nil {
			log.Printf("⚠️ Overdue reminder for loan %d failed: %v", loan.ID, err)
		}
	}

	if err := s.notifyService.NotifyOverdueSummary(len(loans)); err != nil {
		log.Printf("⚠️ Overdue summary failed: %v", err)
	}

	if len(loans) > 0 {
		log.Printf("📚 Overdue sweep: %d loan(s) past due", len(loans))
	}
}

// CleanupExpiredTokens drops refresh tokens past their expiry
func (s *CronService) CleanupExpiredTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.tokenRepo.DeleteExpired(ctx); err != nil {
		log.Printf("❌ Token cleanup error: %v", err)
	}
}
