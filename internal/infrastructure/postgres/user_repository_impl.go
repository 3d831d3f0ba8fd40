package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/oksasatya/account-service/internal/domain/entity"
	"github.com/oksasatya/account-service/internal/domain/repository"
)

const (
	uniqueViolation  = "23505"
	emailUniqueIndex = "users_email_address_key"
)

var userColumns = []string{
	"id", "name", "email_address", "password_hash",
	"phone_country_code", "phone_iso_code", "phone_international_number",
	"role", "timezone", "consent",
	"account_confirmed", "confirmation_token", "confirmation_code", "confirmed_at",
	"password_reset_token", "password_reset_expiry", "password_reset_last_at",
	"last_login_at", "created_at", "updated_at",
}

// pgExecutor is satisfied by *pgxpool.Pool and by pgxmock pools in tests.
type pgExecutor interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

type UserRepository struct {
	exec    pgExecutor
	builder squirrel.StatementBuilderType
	now     func() time.Time
}

func NewUserRepository(exec pgExecutor) *UserRepository {
	return &UserRepository{
		exec:    exec,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	stmt, args, err := r.builder.Insert("users").
		Columns(
			"name", "email_address", "password_hash",
			"phone_country_code", "phone_iso_code", "phone_international_number",
			"role", "timezone", "consent",
			"account_confirmed", "confirmation_token", "confirmation_code", "confirmed_at",
			"password_reset_token", "password_reset_expiry", "password_reset_last_at",
			"last_login_at",
		).
		Values(
			u.Name, u.EmailAddress, u.Password,
			u.PhoneNumber.CountryCode, u.PhoneNumber.ISOCode, u.PhoneNumber.InternationalNumber,
			string(u.Role), u.Timezone, u.Consent,
			u.AccountConfirmation.Status, u.AccountConfirmation.Token, u.AccountConfirmation.Code, u.AccountConfirmation.Timestamp,
			u.PasswordReset.Token, u.PasswordReset.Expiry, u.PasswordReset.LastResetAt,
			u.LastLoginAt,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert user sql: %w", err)
	}

	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.ConstraintName == emailUniqueIndex {
			return repository.ErrDuplicateEmail
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getOne(ctx, r.builder.Select(userColumns...).From("users").
		Where(squirrel.Eq{"email_address": email}))
}

func (r *UserRepository) GetByConfirmation(ctx context.Context, token, code string) (*entity.User, error) {
	return r.getOne(ctx, r.builder.Select(userColumns...).From("users").
		Where(squirrel.Eq{"confirmation_token": token}).
		Where(squirrel.Eq{"confirmation_code": code}))
}

func (r *UserRepository) getOne(ctx context.Context, q squirrel.SelectBuilder) (*entity.User, error) {
	stmt, args, err := q.Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select user sql: %w", err)
	}
	return scanUser(r.exec.QueryRow(ctx, stmt, args...))
}

// Save updates the mutable columns. The confirmed_at guard keeps two racing
// confirmations from both succeeding.
func (r *UserRepository) Save(ctx context.Context, u *entity.User) error {
	now := r.now()
	stmt, args, err := r.builder.Update("users").
		Set("name", u.Name).
		Set("password_hash", u.Password).
		Set("role", string(u.Role)).
		Set("timezone", u.Timezone).
		Set("account_confirmed", u.AccountConfirmation.Status).
		Set("confirmed_at", u.AccountConfirmation.Timestamp).
		Set("password_reset_token", u.PasswordReset.Token).
		Set("password_reset_expiry", u.PasswordReset.Expiry).
		Set("password_reset_last_at", u.PasswordReset.LastResetAt).
		Set("last_login_at", u.LastLoginAt).
		Set("updated_at", now).
		Where(squirrel.Eq{"id": u.ID}).
		Where("(NOT account_confirmed OR confirmed_at IS NOT DISTINCT FROM ?)", u.AccountConfirmation.Timestamp).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update user sql: %w", err)
	}

	res, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if res.RowsAffected() == 1 {
		u.UpdatedAt = now
		return nil
	}

	stmt, args, err = r.builder.Select("1").From("users").Where(squirrel.Eq{"id": u.ID}).
		Prefix("SELECT EXISTS (").Suffix(")").ToSql()
	if err != nil {
		return fmt.Errorf("build user exists sql: %w", err)
	}
	var exists bool
	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(&exists); err != nil {
		return fmt.Errorf("check user: %w", err)
	}
	if !exists {
		return repository.ErrNotFound
	}
	return repository.ErrConfirmationConflict
}

func (r *UserRepository) Ping(ctx context.Context) error {
	return r.exec.Ping(ctx)
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	var role string
	err := row.Scan(
		&u.ID, &u.Name, &u.EmailAddress, &u.Password,
		&u.PhoneNumber.CountryCode, &u.PhoneNumber.ISOCode, &u.PhoneNumber.InternationalNumber,
		&role, &u.Timezone, &u.Consent,
		&u.AccountConfirmation.Status, &u.AccountConfirmation.Token, &u.AccountConfirmation.Code, &u.AccountConfirmation.Timestamp,
		&u.PasswordReset.Token, &u.PasswordReset.Expiry, &u.PasswordReset.LastResetAt,
		&u.LastLoginAt, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	u.Role = entity.Role(role)
	return u, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
