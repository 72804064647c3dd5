package notify

import (
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"

	"github.com/segyhp/lending-engine/internal/config"
	"github.com/segyhp/lending-engine/internal/domain"
	"github.com/segyhp/lending-engine/pkg/date"
)

// Sender sends payment reminder e-mails over SMTP
type Sender struct {
	from   string
	addr   string
	auth   smtp.Auth
	logger *logrus.Logger
	send   func(e *email.Email, addr string, auth smtp.Auth) error
}

// NewSender creates a sender from the SMTP settings. Username may be empty
// for relays that accept unauthenticated mail.
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	var auth smtp.Auth
	if cfg.SMTP.Username != "" {
		auth = smtp.PlainAuth("", cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.Host)
	}

	return &Sender{
		from:   cfg.SMTP.Sender,
		addr:   fmt.Sprintf("%s:%s", cfg.SMTP.Host, cfg.SMTP.Port),
		auth:   auth,
		logger: logger,
		send: func(e *email.Email, addr string, auth smtp.Auth) error {
			return e.Send(addr, auth)
		},
	}
}

// SendPaymentReminder e-mails the borrower of an upcoming or overdue loan payment
func (s *Sender) SendPaymentReminder(to string, payment *domain.UpcomingPayment, asOf date.Date) error {
	e := s.reminder(to, payment, asOf)

	if err := s.send(e, s.addr, s.auth); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"to":      to,
			"loan_id": payment.ID,
		}).Error("failed to send payment reminder")
		return fmt.Errorf("failed to send payment reminder: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"to":       to,
		"loan_id":  payment.ID,
		"due_date": payment.DueDate.String(),
	}).Info(e.Subject)
	return nil
}

func (s *Sender) reminder(to string, payment *domain.UpcomingPayment, asOf date.Date) *email.Email {
	overdue := payment.DueDate.Before(asOf)

	e := email.NewEmail()
	e.From = s.from
	e.To = []string{to}
	if overdue {
		e.Subject = "Overdue Loan Payment Notification"
	} else {
		e.Subject = "Upcoming Loan Payment Reminder"
	}

	body := fmt.Sprintf("Dear %s,\n\n", payment.BorrowerName)
	if overdue {
		body += fmt.Sprintf(
			"Your %s loan payment was due on %s and is now %d day(s) overdue.\n"+
				"Interest due this period: %s\n",
			payment.AssetType, payment.DueDate, payment.DueDate.DaysUntil(asOf), payment.AccruedInterest.StringFixed(2),
		)
	} else {
		body += fmt.Sprintf(
			"This is a reminder that your %s loan payment is due on %s.\n"+
				"Interest due this period: %s\n",
			payment.AssetType, payment.DueDate, payment.AccruedInterest.StringFixed(2),
		)
	}
	body += fmt.Sprintf("Outstanding balance: %s\n", payment.CurrentBalance.StringFixed(2))
	body += "\nBest regards,\nLending Desk"
	e.Text = []byte(body)

	return e
}
