package services

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"sena-biblioteca/internal/adapters/persistence/models"
	"sena-biblioteca/internal/adapters/persistence/repositories"
)

// ReminderService runs the daily reminder job: it scans active loans,
// asks the notification advisor which ones are overdue or about to
// expire, and records one notification per loan per day.
type ReminderService struct {
	loanRepo      *repositories.LoanRepository
	notifyRepo    *repositories.NotificationRepository
	notifyService *NotificationService
	cron          *cron.Cron
}

// NewReminderService creates a new reminder service
func NewReminderService(
	loanRepo *repositories.LoanRepository,
	notifyRepo *repositories.NotificationRepository,
	notifyService *NotificationService,
) *ReminderService {
	return &ReminderService{
		loanRepo:      loanRepo,
		notifyRepo:    notifyRepo,
		notifyService: notifyService,
		cron:          cron.New(),
	}
}

// Start schedules the daily run at 08:30 server time
func (s *ReminderService) Start() error {
	_, err := s.cron.AddFunc("30 8 * * *", func() {
		if err := s.Run(context.Background()); err != nil {
			log.Printf("❌ Reminder job failed: %v", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	log.Println("⏰ Reminder job scheduled (daily at 08:30)")
	return nil
}

// Stop stops the scheduler, waiting for a running job to finish
func (s *ReminderService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// Run executes one reminder sweep. Safe to call more than once per day;
// already-notified loans are skipped.
func (s *ReminderService) Run(ctx context.Context) error {
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	loans, err := s.loanRepo.ListActive(ctx)
	if err != nil {
		return err
	}

	sent := 0

	for _, loan := range s.notifyService.FindOverdue(loans, now) {
		ok, err := s.record(ctx, loan, models.NotificationOverdue,
			s.notifyService.OverdueMessage(loan, now), now, startOfDay)
		if err != nil {
			return err
		}
		if ok {
			sent++
		}
	}

	for _, loan := range s.notifyService.FindDueSoon(loans, now) {
		ok, err := s.record(ctx, loan, models.NotificationDueSoon,
			s.notifyService.DueSoonMessage(loan, now), now, startOfDay)
		if err != nil {
			return err
		}
		if ok {
			sent++
		}
	}

	log.Printf("📨 Reminder sweep done: %d active loans scanned, %d notifications sent", len(loans), sent)
	return nil
}

func (s *ReminderService) record(ctx context.Context, loan *models.Loan, kind, message string, now, since time.Time) (bool, error) {
	exists, err := s.notifyRepo.ExistsSince(ctx, loan.ID, kind, since)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	notification := &models.Notification{
		UserID:  loan.UserID,
		LoanID:  loan.ID,
		Kind:    kind,
		Message: message,
		SentAt:  now,
	}
	if err := s.notifyRepo.Create(ctx, notification); err != nil {
		return false, err
	}
	return true, nil
}
