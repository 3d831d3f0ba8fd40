package application

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/account-service/config"
	"github.com/oksasatya/account-service/internal/domain/entity"
	"github.com/oksasatya/account-service/internal/infrastructure/memory"
	"github.com/oksasatya/account-service/pkg/helpers"
	"github.com/oksasatya/account-service/pkg/mailer"
)

func TestMain(m *testing.M) {
	helpers.PasswordCost = bcrypt.MinCost
	os.Exit(m.Run())
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []mailer.Message
	err  error
}

func (r *recordingNotifier) Send(_ context.Context, msg mailer.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, msg)
	return r.err
}

func (r *recordingNotifier) messages() []mailer.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]mailer.Message, len(r.sent))
	copy(out, r.sent)
	return out
}

type recordingIndexer struct {
	mu    sync.Mutex
	users []entity.User
}

func (r *recordingIndexer) IndexUser(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = append(r.users, *u)
	return nil
}

type fixture struct {
	svc      *Service
	repo     *memory.UserRepository
	notifier *recordingNotifier
	indexer  *recordingIndexer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := helpers.NewDiscardLogger()
	repo := memory.NewUserRepository()
	notifier := &recordingNotifier{}
	indexer := &recordingIndexer{}
	cfg := &config.Config{AppName: "account-service", FrontendURL: "https://app.example.com", CompanyName: "Our Service"}
	dispatcher := NewDispatcher(notifier, logger, time.Second)
	svc := NewService(repo, nil, dispatcher, indexer, logger, cfg)
	return &fixture{svc: svc, repo: repo, notifier: notifier, indexer: indexer}
}

// drain waits for background notifications so assertions see them.
func (f *fixture) drain(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, f.svc.Dispatcher.Wait(ctx))
}

func validInput() RegisterInput {
	return RegisterInput{
		Name:         "Ada",
		Consent:      true,
		PhoneNumber:  "14155552671",
		EmailAddress: "ada@example.com",
		Password:     "Str0ngP@ss",
	}
}

var errBoom = errors.New("boom")
