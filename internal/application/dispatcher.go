package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/account-service/pkg/mailer"
)

const defaultDispatchTimeout = 15 * time.Second

// Dispatcher runs best-effort side effects (emails, search indexing) detached
// from the request that triggered them. Their outcome is only logged.
type Dispatcher struct {
	notifier mailer.Notifier
	logger   *logrus.Logger
	timeout  time.Duration
	wg       sync.WaitGroup
}

func NewDispatcher(notifier mailer.Notifier, logger *logrus.Logger, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = defaultDispatchTimeout
	}
	return &Dispatcher{notifier: notifier, logger: logger, timeout: timeout}
}

// Notify sends msg in the background.
func (d *Dispatcher) Notify(msg mailer.Message, fields logrus.Fields) {
	if d.notifier == nil {
		return
	}
	d.Go("notify:"+msg.Kind, func(ctx context.Context) error {
		if err := d.notifier.Send(ctx, msg); err != nil {
			notifyFailedTotal.Add(1)
			return err
		}
		return nil
	}, fields)
}

// Go runs fn on its own goroutine with a fresh timeout context. Errors and
// panics are logged and never reach the caller.
func (d *Dispatcher) Go(task string, fn func(ctx context.Context) error, fields logrus.Fields) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()
		defer func() {
			if r := recover(); r != nil {
				backgroundTaskPanic.Add(1)
				d.log(task, fields).WithField("panic", fmt.Sprint(r)).Error("background task panicked")
			}
		}()

		if err := fn(ctx); err != nil {
			d.log(task, fields).WithError(err).Warn("background task failed")
			return
		}
		d.log(task, fields).Debug("background task done")
	}()
}

// Wait blocks until all dispatched tasks finished or ctx is done.
func (d *Dispatcher) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) log(task string, fields logrus.Fields) *logrus.Entry {
	logger := d.logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return logger.WithFields(fields).WithField("task", task)
}
