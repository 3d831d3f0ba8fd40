package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/account-service/internal/domain/entity"
	"github.com/oksasatya/account-service/internal/domain/repository"
)

func newMockRepo(t *testing.T) (pgxmock.PgxPoolIface, *UserRepository) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, NewUserRepository(mock)
}

func newUser() *entity.User {
	return &entity.User{
		Name:         "Ada",
		EmailAddress: "ada@example.com",
		Password:     "$2a$10$hash",
		PhoneNumber:  entity.PhoneNumber{CountryCode: "+1", ISOCode: "US", InternationalNumber: "+1 415-555-2671"},
		Role:         entity.RoleUser,
		Timezone:     "America/Los_Angeles",
		Consent:      true,
		AccountConfirmation: entity.AccountConfirmation{
			Token: "7c9e6679-7425-40de-944b-e07fc1f90ae7",
			Code:  "123456",
		},
	}
}

func userRow(confirmedAt *time.Time) *pgxmock.Rows {
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return pgxmock.NewRows(userColumns).AddRow(
		"0f8fad5b-d9cb-469f-a165-70867728950e", "Ada", "ada@example.com", "$2a$10$hash",
		"+1", "US", "+1 415-555-2671",
		"USER", "America/Los_Angeles", true,
		confirmedAt != nil, "7c9e6679-7425-40de-944b-e07fc1f90ae7", "123456", confirmedAt,
		nil, nil, nil,
		nil, created, created,
	)
}

func TestCreateReturnsGeneratedFields(t *testing.T) {
	mock, repo := newMockRepo(t)
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO users \(name,email_address,.*\) VALUES .* RETURNING id, created_at, updated_at`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow("0f8fad5b-d9cb-469f-a165-70867728950e", created, created))

	u := newUser()
	require.NoError(t, repo.Create(context.Background(), u))
	assert.Equal(t, "0f8fad5b-d9cb-469f-a165-70867728950e", u.ID)
	assert.Equal(t, created, u.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateMapsUniqueViolation(t *testing.T) {
	mock, repo := newMockRepo(t)
	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnError(&pgconn.PgError{Code: uniqueViolation, ConstraintName: emailUniqueIndex})

	err := repo.Create(context.Background(), newUser())
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOtherUniqueViolationIsStoreError(t *testing.T) {
	mock, repo := newMockRepo(t)
	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnError(&pgconn.PgError{Code: uniqueViolation, ConstraintName: "users_confirmation_token_key"})

	err := repo.Create(context.Background(), newUser())
	require.Error(t, err)
	assert.NotErrorIs(t, err, repository.ErrDuplicateEmail)
	var pgErr *pgconn.PgError
	assert.ErrorAs(t, err, &pgErr)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByConfirmationMatchesBothValues(t *testing.T) {
	mock, repo := newMockRepo(t)
	mock.ExpectQuery(`SELECT .* FROM users WHERE confirmation_token = \$1 AND confirmation_code = \$2 LIMIT 1`).
		WithArgs("7c9e6679-7425-40de-944b-e07fc1f90ae7", "123456").
		WillReturnRows(userRow(nil))

	u, err := repo.GetByConfirmation(context.Background(), "7c9e6679-7425-40de-944b-e07fc1f90ae7", "123456")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, u.Role)
	assert.False(t, u.AccountConfirmation.Status)
	assert.Nil(t, u.AccountConfirmation.Timestamp)
	assert.Equal(t, "US", u.PhoneNumber.ISOCode)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByEmailNotFound(t *testing.T) {
	mock, repo := newMockRepo(t)
	mock.ExpectQuery(`SELECT .* FROM users WHERE email_address = \$1`).
		WithArgs("nobody@example.com").
		WillReturnRows(pgxmock.NewRows(userColumns))

	_, err := repo.GetByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveUpdatesRow(t *testing.T) {
	mock, repo := newMockRepo(t)
	fixed := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return fixed }

	u := newUser()
	u.ID = "0f8fad5b-d9cb-469f-a165-70867728950e"
	u.Confirm(fixed)

	mock.ExpectExec(`UPDATE users SET .* WHERE id = \$12 AND \(NOT account_confirmed OR confirmed_at IS NOT DISTINCT FROM \$13\)`).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, repo.Save(context.Background(), u))
	assert.Equal(t, fixed, u.UpdatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveDetectsConfirmationConflict(t *testing.T) {
	mock, repo := newMockRepo(t)
	u := newUser()
	u.ID = "0f8fad5b-d9cb-469f-a165-70867728950e"
	u.Confirm(time.Now())

	mock.ExpectExec(`UPDATE users`).WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectQuery(`SELECT EXISTS \( SELECT 1 FROM users WHERE id = \$1 \)`).
		WithArgs(u.ID).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	assert.ErrorIs(t, repo.Save(context.Background(), u), repository.ErrConfirmationConflict)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveUnknownUser(t *testing.T) {
	mock, repo := newMockRepo(t)
	u := newUser()
	u.ID = "0f8fad5b-d9cb-469f-a165-70867728950e"

	mock.ExpectExec(`UPDATE users`).WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(u.ID).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

	assert.ErrorIs(t, repo.Save(context.Background(), u), repository.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
