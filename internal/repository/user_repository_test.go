package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/electramart-api/internal/model"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func dup(key string) error {
	return &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'x' for key '" + key + "'"}
}

func TestUserRepoCreate(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)

	mock.ExpectExec("INSERT INTO users").
		WithArgs(sqlmock.AnyArg(), "Ada", "Lovelace", "ada", "ada@example.com", "hash", "buyer",
			"", "", "560001", "999", "street", nil, nil, []byte(`[]`), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	u := &model.User{
		Firstname: "Ada", Lastname: "Lovelace", Username: "ada", Email: "ada@example.com",
		Password: "hash", Usertype: "buyer", Pincode: "560001", Phone: "999", Address: "street",
		Products: []byte(`[]`),
	}
	require.NoError(t, repo.Create(context.Background(), u))
	assert.Len(t, u.ID, 36)
	assert.False(t, u.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepoCreateDuplicates(t *testing.T) {
	cases := []struct {
		key  string
		want error
	}{
		{"users.uq_users_username", ErrUsernameExists},
		{"users.uq_users_email", ErrEmailExists},
		{"users.PRIMARY", ErrConflict},
	}
	for _, tc := range cases {
		t.Run(tc.key, func(t *testing.T) {
			db, mock := newMock(t)
			mock.ExpectExec("INSERT INTO users").WillReturnError(dup(tc.key))

			err := NewUserRepo(db).Create(context.Background(), &model.User{Username: "ada"})
			assert.ErrorIs(t, err, tc.want)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepoCreatePassesOtherErrors(t *testing.T) {
	db, mock := newMock(t)
	boom := errors.New("connection reset")
	mock.ExpectExec("INSERT INTO users").WillReturnError(boom)

	err := NewUserRepo(db).Create(context.Background(), &model.User{})
	assert.ErrorIs(t, err, boom)
}

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "firstname", "lastname", "username", "email", "password", "usertype", "profile_pic",
		"status", "pincode", "phone", "address", "cart", "transaction_data", "products", "created_at", "updated_at",
	})
}

func TestUserRepoGetByUsername(t *testing.T) {
	db, mock := newMock(t)
	now := time.Now().UTC()
	mock.ExpectQuery("SELECT .* FROM users WHERE username=\\?").
		WithArgs("ada").
		WillReturnRows(userRows().AddRow("id-1", "Ada", "L", "ada", "ada@example.com", "hash", "buyer", "",
			"", "1", "2", "3", nil, nil, []byte(`["p1"]`), now, now))

	u, err := NewUserRepo(db).GetByUsername(context.Background(), "ada")
	require.NoError(t, err)
	assert.Equal(t, "id-1", u.ID)
	assert.Equal(t, "hash", u.Password)
	assert.Nil(t, u.Cart)
	assert.JSONEq(t, `["p1"]`, string(u.Products))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepoGetByEmailNotFound(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("SELECT .* FROM users WHERE email=\\?").
		WithArgs("ada@example.com").
		WillReturnRows(userRows())

	_, err := NewUserRepo(db).GetByEmail(context.Background(), "  ADA@example.com ")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepoUpdateProfile(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec("UPDATE users SET username=\\?, email=\\?, phone=\\?, address=\\?, updated_at=\\?, password=\\? WHERE id=\\?").
		WithArgs("ada2", "ada@example.com", "1", "2", sqlmock.AnyArg(), "newhash", "u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := NewUserRepo(db).UpdateProfile(context.Background(), "u-1", model.ProfileUpdate{
		Username: "ada2", Email: "ada@example.com", Phone: "1", Address: "2", Password: "newhash",
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepoUpdateProfileConflictAndMissing(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)

	mock.ExpectExec("UPDATE users SET").WillReturnError(dup("users.uq_users_email"))
	err := repo.UpdateProfile(context.Background(), "u-1", model.ProfileUpdate{Username: "ada"})
	assert.ErrorIs(t, err, ErrEmailExists)

	mock.ExpectExec("UPDATE users SET").WillReturnResult(sqlmock.NewResult(0, 0))
	err = repo.UpdateProfile(context.Background(), "u-404", model.ProfileUpdate{Username: "ghost"})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepoSetProfilePicByID(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec("UPDATE users SET profile_pic=\\?, updated_at=\\? WHERE id=\\?").
		WithArgs("https://cdn.example.com/ada.png", sqlmock.AnyArg(), "u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, NewUserRepo(db).SetProfilePic(context.Background(), "u-1", "https://cdn.example.com/ada.png"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepoUpdatePassword(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec("UPDATE users SET password=\\?, updated_at=\\? WHERE email=\\?").
		WithArgs("h", sqlmock.AnyArg(), "ada@example.com").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, NewUserRepo(db).UpdatePassword(context.Background(), "Ada@Example.com", "h"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
