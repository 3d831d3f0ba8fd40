package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/account-service/internal/domain/entity"
	repo "github.com/oksasatya/account-service/internal/domain/repository"
	tpl "github.com/oksasatya/account-service/pkg/mailer/templates"
	"github.com/oksasatya/account-service/pkg/validation"
)

// RegisterInput is the raw registration payload.
// PhoneNumber carries the country code but no leading "+".
type RegisterInput struct {
	Name         string `json:"name" validate:"required,min=2,max=72"`
	Consent      bool   `json:"consent" validate:"accepted"`
	PhoneNumber  string `json:"phoneNumber" validate:"required,phonedigits"`
	EmailAddress string `json:"emailAddress" validate:"required,email,max=254"`
	Password     string `json:"password" validate:"required,strongpwd"`
}

func (in RegisterInput) normalize() RegisterInput {
	in.Name = strings.TrimSpace(in.Name)
	in.EmailAddress = strings.ToLower(strings.TrimSpace(in.EmailAddress))
	in.PhoneNumber = strings.TrimPrefix(strings.TrimSpace(in.PhoneNumber), "+")
	return in
}

// ValidateRegistration normalizes and validates raw input.
func (s *Service) ValidateRegistration(in RegisterInput) (RegisterInput, error) {
	in = in.normalize()
	if err := s.Validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return RegisterInput{}, &ValidationError{Details: validation.ToDetails(err)}
		}
		return RegisterInput{}, fmt.Errorf("validate registration: %w", err)
	}
	return in, nil
}

// Register creates an unconfirmed account and sends the confirmation email.
// Only the store decides success; email delivery is best effort.
func (s *Service) Register(ctx context.Context, raw RegisterInput) (*entity.User, error) {
	in, err := s.ValidateRegistration(raw)
	if err != nil {
		return nil, err
	}

	number, timezone, err := s.Phones.Resolve("+" + in.PhoneNumber)
	if err != nil || timezone == "" {
		return nil, ErrInvalidPhoneNumber
	}

	// Early exit only; Create enforces uniqueness.
	existing, err := s.Repo.GetByEmail(ctx, in.EmailAddress)
	switch {
	case err == nil && existing != nil:
		return nil, ErrDuplicateEntity
	case err != nil && !errors.Is(err, repo.ErrNotFound):
		return nil, fmt.Errorf("lookup user by email: %w", err)
	}

	hash, err := s.HashPassword(in.Password)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, &ValidationError{Details: map[string]string{"password": "must be at most 72 bytes long"}}
	}
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	token, err := s.NewToken()
	if err != nil {
		return nil, fmt.Errorf("generate confirmation token: %w", err)
	}
	code, err := s.NewCode()
	if err != nil {
		return nil, fmt.Errorf("generate confirmation code: %w", err)
	}

	u := &entity.User{
		Name:         in.Name,
		EmailAddress: in.EmailAddress,
		Password:     hash,
		PhoneNumber: entity.PhoneNumber{
			CountryCode:         number.CountryCode,
			ISOCode:             number.ISOCode,
			InternationalNumber: number.InternationalNumber,
		},
		Role:     entity.RoleUser,
		Timezone: timezone,
		Consent:  in.Consent,
		AccountConfirmation: entity.AccountConfirmation{
			Status: false,
			Token:  token,
			Code:   code,
		},
	}

	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, ErrDuplicateEntity
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	registeredTotal.Add(1)
	s.Logger.WithFields(userFields(u)).WithField("timezone", u.Timezone).Info("account registered")

	s.sendConfirmationEmail(u)
	s.index(u)
	return u, nil
}

func (s *Service) sendConfirmationEmail(u *entity.User) {
	link := s.Cfg.ConfirmationURL(u.AccountConfirmation.Token, u.AccountConfirmation.Code)
	data := tpl.NewConfirmAccountData(u.Name, u.EmailAddress, link, u.AccountConfirmation.Code,
		tpl.WithCompany(s.Cfg.CompanyName, s.Cfg.AppName),
		tpl.WithTime(s.Now()),
	)
	msg, err := tpl.Message(data)
	if err != nil {
		s.Logger.WithFields(userFields(u)).WithError(err).Error("render confirmation email failed")
		return
	}
	s.Dispatcher.Notify(msg, userFields(u))
}
