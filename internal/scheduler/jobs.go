package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/segyhp/lending-engine/internal/domain"
	"github.com/segyhp/lending-engine/pkg/date"
)

// LendingService is the part of the service the jobs drive.
type LendingService interface {
	SyncLoanBalances(ctx context.Context) (*domain.ReconcileReport, error)
	GetUpcomingPayments(ctx context.Context, asOf date.Date, withinDays int) ([]*domain.UpcomingPayment, error)
}

type ReminderSender interface {
	SendPaymentReminder(to string, payment *domain.UpcomingPayment, asOf date.Date) error
}

type Jobs struct {
	service    LendingService
	sender     ReminderSender
	logger     *logrus.Logger
	windowDays int
	location   *time.Location
	timeout    time.Duration
	now        func() time.Time
}

// NewJobs builds the scheduled jobs. A nil sender disables reminders.
func NewJobs(service LendingService, sender ReminderSender, logger *logrus.Logger, windowDays int, location *time.Location) *Jobs {
	if location == nil {
		location = time.UTC
	}
	return &Jobs{
		service:    service,
		sender:     sender,
		logger:     logger,
		windowDays: windowDays,
		location:   location,
		timeout:    10 * time.Minute,
		now:        time.Now,
	}
}

// NewCron returns a seconds-precision cron that recovers panicking jobs and
// logs through logger.
func NewCron(logger *logrus.Logger, location *time.Location) *cron.Cron {
	cronLogger := cron.PrintfLogger(logger)
	return cron.New(
		cron.WithSeconds(),
		cron.WithLocation(location),
		cron.WithLogger(cronLogger),
		cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
	)
}

// Register schedules reconciliation and reminders on c.
func (j *Jobs) Register(c *cron.Cron, reconcileSpec, reminderSpec string) error {
	if _, err := c.AddFunc(reconcileSpec, j.run("reconcile balances", j.ReconcileBalances)); err != nil {
		return err
	}
	if _, err := c.AddFunc(reminderSpec, j.run("payment reminders", j.SendReminders)); err != nil {
		return err
	}

	j.logger.WithFields(logrus.Fields{
		"reconcile": reconcileSpec,
		"reminders": reminderSpec,
	}).Info("Cron jobs scheduled successfully")
	return nil
}

func (j *Jobs) run(name string, job func(ctx context.Context) error) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
		defer cancel()

		start := time.Now()
		entry := j.logger.WithField("job", name)
		entry.Info("job started")

		if err := job(ctx); err != nil {
			entry.WithError(err).Error("job failed")
			return
		}
		entry.WithField("duration", time.Since(start).String()).Info("job finished")
	}
}

// ReconcileBalances rewrites loan balances that drifted from their payments.
func (j *Jobs) ReconcileBalances(ctx context.Context) error {
	report, err := j.service.SyncLoanBalances(ctx)
	if err != nil {
		return err
	}
	if len(report.Corrected) > 0 {
		j.logger.WithField("corrected", len(report.Corrected)).Warn("loan balances corrected")
	}
	return nil
}

// SendReminders e-mails every borrower whose loan payment falls due within
// the reminder window, overdue ones included. Loans whose borrower has no
// e-mail address are skipped. One failed send does not stop the rest.
func (j *Jobs) SendReminders(ctx context.Context) error {
	if j.sender == nil {
		j.logger.Debug("smtp not configured, skipping payment reminders")
		return nil
	}

	today := date.FromTime(j.now().In(j.location))
	upcoming, err := j.service.GetUpcomingPayments(ctx, today, j.windowDays)
	if err != nil {
		return err
	}

	sent, failed := 0, 0
	for _, p := range upcoming {
		if p.Kind != domain.UpcomingKindLoan {
			continue
		}
		if p.BorrowerEmail == "" {
			j.logger.WithFields(logrus.Fields{
				"loan_id":  p.ID,
				"borrower": p.BorrowerName,
			}).Info("borrower has no e-mail, reminder skipped")
			continue
		}
		if err := j.sender.SendPaymentReminder(p.BorrowerEmail, p, today); err != nil {
			failed++
			continue
		}
		sent++
	}

	j.logger.WithFields(logrus.Fields{"sent": sent, "failed": failed}).Info("payment reminders processed")
	return nil
}
