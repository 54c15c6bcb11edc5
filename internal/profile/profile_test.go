package profile

import (
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"

	myErr "bazarlyq-main/internal/types/errors"
	types "bazarlyq-main/internal/types/profile"
)

var profileTestColumns = []string{
	"id", "name", "surname", "registration_date", "email",
	"phone_number", "password_hash", "city_code", "preferred_language", "preferred_currency",
}

func profileRow(id, email, hash string) *sqlmock.Rows {
	return sqlmock.NewRows(profileTestColumns).
		AddRow(id, "Aidar", "Bekov", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), email,
			"+77010000000", hash, "ALA", "ru", "KZT")
}

func TestProfileDBRepository_CreateProfile(t *testing.T) {
	t.Parallel()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewProfileDBRepository(db, zaptest.NewLogger(t).Sugar())

	cp := types.CreateProfile{
		Name:        "Aidar",
		Surname:     "Bekov",
		Email:       "aidar@example.com",
		PhoneNumber: "+77010000000",
		Password:    "securepass123",
		CityCode:    "ALA",
	}

	t.Run("successfully_create_profile", func(t *testing.T) {
		// 1. Поиск по почте — не найден
		mock.ExpectQuery(`SELECT .* FROM profile WHERE email = \$1`).
			WithArgs(cp.Email).
			WillReturnError(sql.ErrNoRows)

		// 2. INSERT INTO profile
		mock.ExpectExec(`INSERT INTO profile`).
			WithArgs(sqlmock.AnyArg(), cp.Name, cp.Surname, sqlmock.AnyArg(), cp.Email,
				cp.PhoneNumber, sqlmock.AnyArg(), cp.CityCode, "ru", "KZT").
			WillReturnResult(sqlmock.NewResult(1, 1))

		created, err := repo.CreateProfile(cp)
		require.NoError(t, err)
		require.NotNil(t, created)
		require.NotEmpty(t, created.ID)
		require.Equal(t, cp.Email, created.Email)
		require.Equal(t, "KZT", created.PreferredCurrency)
	})

	t.Run("profile_already_exists", func(t *testing.T) {
		hash, _ := bcrypt.GenerateFromPassword([]byte(cp.Password), bcrypt.DefaultCost) // nolint:errcheck

		mock.ExpectQuery(`SELECT .* FROM profile WHERE email = \$1`).
			WithArgs(cp.Email).
			WillReturnRows(profileRow("p-42", cp.Email, string(hash)))

		_, err := repo.CreateProfile(cp)
		require.ErrorIs(t, err, myErr.ErrAlreadyExists)
	})
}

func TestProfileDBRepository_CheckProfile(t *testing.T) {
	t.Parallel()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewProfileDBRepository(db, zaptest.NewLogger(t).Sugar())

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("correct_password"), bcrypt.DefaultCost) // nolint:errcheck

	tests := []struct {
		name     string
		email    string
		password string
		mock     func()
		wantErr  error
	}{
		{
			name:     "Success",
			email:    "aidar@example.com",
			password: "correct_password",
			mock: func() {
				mock.ExpectQuery(`SELECT .* FROM profile WHERE email = \$1`).
					WithArgs("aidar@example.com").
					WillReturnRows(profileRow("p-42", "aidar@example.com", string(hashedPassword)))
			},
			wantErr: nil,
		},
		{
			name:     "Wrong Password",
			email:    "aidar@example.com",
			password: "wrong_password",
			mock: func() {
				mock.ExpectQuery(`SELECT .* FROM profile WHERE email = \$1`).
					WithArgs("aidar@example.com").
					WillReturnRows(profileRow("p-42", "aidar@example.com", string(hashedPassword)))
			},
			wantErr: myErr.ErrBadPassword,
		},
		{
			name:     "Not Found",
			email:    "nobody@example.com",
			password: "whatever",
			mock: func() {
				mock.ExpectQuery(`SELECT .* FROM profile WHERE email = \$1`).
					WithArgs("nobody@example.com").
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: myErr.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mock()

			p, err := repo.CheckProfile(tt.email, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, p)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "p-42", p.ID)
			}
		})
	}
}

func TestProfileDBRepository_ChangeProfile(t *testing.T) {
	t.Parallel()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewProfileDBRepository(db, zaptest.NewLogger(t).Sugar())

	t.Run("updates_only_filled_fields", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE profile SET name = $1, preferred_currency = $2 WHERE id = $3`)).
			WithArgs("Nurlan", "USD", "p-42").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`SELECT .* FROM profile WHERE id = \$1`).
			WithArgs("p-42").
			WillReturnRows(profileRow("p-42", "aidar@example.com", "hash"))

		p, err := repo.ChangeProfile("p-42", types.ChangeProfile{Name: "Nurlan", PreferredCurrency: "USD"})
		require.NoError(t, err)
		require.Equal(t, "p-42", p.ID)
	})

	t.Run("empty_update_returns_current", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM profile WHERE id = \$1`).
			WithArgs("p-42").
			WillReturnRows(profileRow("p-42", "aidar@example.com", "hash"))

		p, err := repo.ChangeProfile("p-42", types.ChangeProfile{})
		require.NoError(t, err)
		require.Equal(t, "Aidar", p.Name)
	})

	t.Run("not_found", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE profile SET name = $1 WHERE id = $2`)).
			WithArgs("Nurlan", "p-99").
			WillReturnResult(sqlmock.NewResult(0, 0))

		_, err := repo.ChangeProfile("p-99", types.ChangeProfile{Name: "Nurlan"})
		require.ErrorIs(t, err, myErr.ErrNotFound)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}
