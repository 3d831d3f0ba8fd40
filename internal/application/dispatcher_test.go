package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/account-service/pkg/helpers"
	"github.com/oksasatya/account-service/pkg/mailer"
)

func TestDispatcherSurvivesPanics(t *testing.T) {
	d := NewDispatcher(nil, helpers.NewDiscardLogger(), time.Second)
	d.Go("explode", func(context.Context) error { panic("kaboom") }, nil)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, d.Wait(ctx))
}

func TestDispatcherDetachesFromCaller(t *testing.T) {
	n := &recordingNotifier{}
	d := NewDispatcher(n, helpers.NewDiscardLogger(), time.Second)

	started := make(chan struct{})
	release := make(chan struct{})
	d.Go("slow", func(context.Context) error {
		close(started)
		<-release
		return nil
	}, nil)
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, d.Wait(ctx), context.DeadlineExceeded)

	close(release)
	require.NoError(t, d.Wait(context.Background()))
}

func TestDispatcherTaskContextHasTimeout(t *testing.T) {
	d := NewDispatcher(nil, helpers.NewDiscardLogger(), 10*time.Millisecond)
	errs := make(chan error, 1)
	d.Go("deadline", func(ctx context.Context) error {
		<-ctx.Done()
		errs <- ctx.Err()
		return ctx.Err()
	}, nil)

	require.NoError(t, d.Wait(context.Background()))
	assert.ErrorIs(t, <-errs, context.DeadlineExceeded)
}

func TestDispatcherNotifyWithoutNotifier(t *testing.T) {
	d := NewDispatcher(nil, helpers.NewDiscardLogger(), time.Second)
	d.Notify(mailer.Message{Kind: "x"}, nil)
	assert.NoError(t, d.Wait(context.Background()))
}
