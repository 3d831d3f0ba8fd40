package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

// Worker drains EmailJobs from the queue and hands them to a Notifier.
// A failed send is requeued once; a redelivered job that fails again is dropped.
type Worker struct {
	Sender  Notifier
	Logger  *logrus.Logger
	Timeout time.Duration
}

func NewWorker(sender Notifier, logger *logrus.Logger) *Worker {
	return &Worker{Sender: sender, Logger: logger, Timeout: 15 * time.Second}
}

var errEmptyJob = errors.New("email job has no recipients")

// Run consumes until deliveries is closed or ctx is done.
func (w *Worker) Run(ctx context.Context, deliveries <-chan amqp.Delivery) {
	for {
		select {
		case <-ctx.Done():
			return
		case d, ok := <-deliveries:
			if !ok {
				return
			}
			w.Handle(ctx, d)
		}
	}
}

// Handle processes one delivery and acknowledges it.
func (w *Worker) Handle(ctx context.Context, d amqp.Delivery) {
	var job EmailJob
	if err := json.Unmarshal(d.Body, &job); err != nil || len(job.Message.To) == 0 {
		if err == nil {
			err = errEmptyJob
		}
		w.Logger.WithField("message_id", d.MessageId).WithError(err).Warn("dropping malformed email job")
		_ = d.Nack(false, false)
		return
	}

	fields := logrus.Fields{"job_id": job.ID, "kind": job.Message.Kind, "redelivered": d.Redelivered}
	c, cancel := context.WithTimeout(ctx, w.Timeout)
	err := w.Sender.Send(c, job.Message)
	cancel()
	if err != nil {
		requeue := !d.Redelivered
		w.Logger.WithFields(fields).WithError(err).WithField("requeue", requeue).Error("email send failed")
		_ = d.Nack(false, requeue)
		return
	}
	w.Logger.WithFields(fields).Info("email sent")
	_ = d.Ack(false)
}
