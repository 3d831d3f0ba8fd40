package application

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/account-service/config"
	"github.com/oksasatya/account-service/internal/domain/entity"
	repo "github.com/oksasatya/account-service/internal/domain/repository"
	"github.com/oksasatya/account-service/pkg/helpers"
	"github.com/oksasatya/account-service/pkg/mailer"
	"github.com/oksasatya/account-service/pkg/phone"
	"github.com/oksasatya/account-service/pkg/validation"
)

// PhoneResolver normalizes a raw number and resolves its timezone.
type PhoneResolver interface {
	Resolve(raw string) (phone.Number, string, error)
}

// UserIndexer publishes the public projection of a user to a search index.
type UserIndexer interface {
	IndexUser(ctx context.Context, u *entity.User) error
}

// Service runs the account registration and confirmation workflows.
// Every collaborator is injected; nothing here reads the environment.
type Service struct {
	Repo       repo.UserRepository
	Phones     PhoneResolver
	Dispatcher *Dispatcher
	Indexer    UserIndexer
	Logger     *logrus.Logger
	Cfg        *config.Config
	Validate   *validator.Validate

	HashPassword func(plain string) (string, error)
	NewToken     func() (string, error)
	NewCode      func() (string, error)
	Now          func() time.Time
}

func NewService(repo repo.UserRepository, phones PhoneResolver, dispatcher *Dispatcher, indexer UserIndexer, logger *logrus.Logger, cfg *config.Config) *Service {
	if phones == nil {
		phones = phone.Resolver{}
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if dispatcher == nil {
		dispatcher = NewDispatcher(mailer.LogNotifier{Logger: logger}, logger, 0)
	}
	if cfg == nil {
		cfg = &config.Config{}
	}
	return &Service{
		Repo:         repo,
		Phones:       phones,
		Dispatcher:   dispatcher,
		Indexer:      indexer,
		Logger:       logger,
		Cfg:          cfg,
		Validate:     validation.New(),
		HashPassword: helpers.HashPassword,
		NewToken:     helpers.GenConfirmationToken,
		NewCode: func() (string, error) {
			return helpers.GenOTPCode(helpers.ConfirmationCodeLength)
		},
		Now: func() time.Time { return time.Now().UTC() },
	}
}

func userFields(u *entity.User) logrus.Fields {
	return logrus.Fields{
		"user_id":      u.ID,
		"email_domain": helpers.EmailDomain(u.EmailAddress),
	}
}

// index pushes the user to the search index in the background, if one is configured.
func (s *Service) index(u *entity.User) {
	if s.Indexer == nil {
		return
	}
	snapshot := *u
	s.Dispatcher.Go("index_user", func(ctx context.Context) error {
		return s.Indexer.IndexUser(ctx, &snapshot)
	}, userFields(u))
}
