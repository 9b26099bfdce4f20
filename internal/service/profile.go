package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/iliyamo/electramart-api/internal/model"
	"github.com/iliyamo/electramart-api/internal/repository"
	"github.com/iliyamo/electramart-api/internal/utils"
)

// ProfileService reads and edits user profiles.
type ProfileService struct {
	Users      repository.UserStore
	Log        *logrus.Logger
	BcryptCost int
}

func NewProfileService(st *repository.Store, bcryptCost int, log *logrus.Logger) *ProfileService {
	return &ProfileService{Users: st.Users, Log: log, BcryptCost: bcryptCost}
}

// ProfileInput is the profile edit form.  UserID is the caller's account
// id from the access token.  ActualName, when set, must be that account's
// current username.  Blank fields keep their current value.
type ProfileInput struct {
	UserID     string
	ActualName string
	Username   string
	Email      string
	Password   string
	Phone      string
	Address    string
}

// UpdateProfile applies in to the account with in.UserID.  A new password
// is hashed; a taken username or email is reported by the store.
func (s *ProfileService) UpdateProfile(ctx context.Context, in ProfileInput) error {
	cur, err := s.owned(ctx, in.UserID, in.ActualName)
	if err != nil {
		return err
	}

	upd := model.ProfileUpdate{
		Username: orDefault(strings.TrimSpace(in.Username), cur.Username),
		Email:    orDefault(normEmail(in.Email), cur.Email),
		Phone:    orDefault(in.Phone, cur.Phone),
		Address:  orDefault(in.Address, cur.Address),
	}
	if len(upd.Username) < MinUsernameLen {
		return ErrUsernameTooShort
	}
	if in.Password != "" {
		if upd.Password, err = utils.HashPassword(in.Password, s.BcryptCost); err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
	}

	switch err := s.Users.UpdateProfile(ctx, cur.ID, upd); {
	case err == nil:
	case errors.Is(err, repository.ErrNotFound):
		return ErrUserNotFound
	case errors.Is(err, repository.ErrUsernameExists), errors.Is(err, repository.ErrEmailExists):
		return err
	default:
		return fmt.Errorf("update profile: %w", err)
	}
	s.Log.WithFields(logrus.Fields{"user_id": cur.ID, "username": upd.Username}).Info("profile updated")
	return nil
}

// SetProfilePic stores the picture URL of the account with userID.  A
// non-empty username must be that account's current username.
func (s *ProfileService) SetProfilePic(ctx context.Context, userID, username, url string) error {
	cur, err := s.owned(ctx, userID, username)
	if err != nil {
		return err
	}
	err = s.Users.SetProfilePic(ctx, cur.ID, strings.TrimSpace(url))
	if errors.Is(err, repository.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}

// owned loads the caller's account and checks an explicitly named username
// against it.
func (s *ProfileService) owned(ctx context.Context, userID, username string) (*model.User, error) {
	cur, err := s.Users.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if username != "" && username != cur.Username {
		return nil, ErrNotOwner
	}
	return cur, nil
}

// ProfileDetails returns the account with email.
func (s *ProfileService) ProfileDetails(ctx context.Context, email string) (*model.User, error) {
	return s.lookup(s.Users.GetByEmail(ctx, email))
}

// GetUser returns the account with id.
func (s *ProfileService) GetUser(ctx context.Context, id string) (*model.User, error) {
	return s.lookup(s.Users.GetByID(ctx, id))
}

// ListUsers returns every account with its store identifier.
func (s *ProfileService) ListUsers(ctx context.Context) ([]*model.User, error) {
	users, err := s.Users.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		u.Password = ""
	}
	return users, nil
}

func (s *ProfileService) lookup(u *model.User, err error) (*model.User, error) {
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	u.Password = ""
	return u, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
