package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/oksasatya/account-service/internal/domain/entity"
	repo "github.com/oksasatya/account-service/internal/domain/repository"
	tpl "github.com/oksasatya/account-service/pkg/mailer/templates"
)

// Confirm moves the account matching token and code to the confirmed state.
// A wrong token and a wrong code produce the same error.
func (s *Service) Confirm(ctx context.Context, token, code string) (*entity.User, error) {
	token = strings.TrimSpace(token)
	code = strings.TrimSpace(code)
	if token == "" || code == "" {
		return nil, ErrInvalidConfirmation
	}

	u, err := s.Repo.GetByConfirmation(ctx, token, code)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrInvalidConfirmation
		}
		return nil, fmt.Errorf("lookup confirmation: %w", err)
	}

	if !u.Confirm(s.Now()) {
		return nil, ErrAlreadyConfirmed
	}
	if err := s.Repo.Save(ctx, u); err != nil {
		if errors.Is(err, repo.ErrConfirmationConflict) {
			return nil, ErrAlreadyConfirmed
		}
		return nil, fmt.Errorf("save confirmation: %w", err)
	}
	confirmedTotal.Add(1)
	s.Logger.WithFields(userFields(u)).Info("account confirmed")

	s.sendConfirmedEmail(u)
	s.index(u)
	return u, nil
}

func (s *Service) sendConfirmedEmail(u *entity.User) {
	at := s.Now()
	if u.AccountConfirmation.Timestamp != nil {
		at = *u.AccountConfirmation.Timestamp
	}
	data := tpl.NewAccountConfirmedData(u.Name, u.EmailAddress,
		tpl.WithCompany(s.Cfg.CompanyName, s.Cfg.AppName),
		tpl.WithTime(at),
	)
	msg, err := tpl.Message(data)
	if err != nil {
		s.Logger.WithFields(userFields(u)).WithError(err).Error("render confirmed email failed")
		return
	}
	s.Dispatcher.Notify(msg, userFields(u))
}
