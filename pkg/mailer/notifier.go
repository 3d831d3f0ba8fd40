package mailer

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Notifier delivers a rendered message. Callers treat failures as non-fatal.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}

// JobPublisher is the part of helpers.RabbitPublisher the queue notifier needs.
type JobPublisher interface {
	PublishJSON(ctx context.Context, messageID string, body any) error
}

// QueueNotifier hands messages to the email worker through RabbitMQ.
type QueueNotifier struct {
	Pub JobPublisher
}

func NewQueueNotifier(pub JobPublisher) *QueueNotifier {
	return &QueueNotifier{Pub: pub}
}

func (q *QueueNotifier) Send(ctx context.Context, msg Message) error {
	if q.Pub == nil {
		return errors.New("queue notifier: publisher not configured")
	}
	job := EmailJob{
		ID:         uuid.NewString(),
		Message:    msg,
		EnqueuedAt: time.Now().UTC(),
	}
	return q.Pub.PublishJSON(ctx, job.ID, job)
}

// LogNotifier only records that a message would have been sent.
// Used when MAIL_SEND_ENABLED=false.
type LogNotifier struct {
	Logger *logrus.Logger
}

func (l LogNotifier) Send(_ context.Context, msg Message) error {
	if l.Logger == nil {
		return nil
	}
	domains := make([]string, 0, len(msg.To))
	for _, to := range msg.To {
		if i := strings.LastIndexByte(to, '@'); i >= 0 {
			domains = append(domains, to[i+1:])
		}
	}
	l.Logger.WithFields(logrus.Fields{
		"kind":              msg.Kind,
		"subject":           msg.Subject,
		"recipient_domains": domains,
	}).Info("email sending disabled; message dropped")
	return nil
}

var (
	_ Notifier = (*QueueNotifier)(nil)
	_ Notifier = LogNotifier{}
)
