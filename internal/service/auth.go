package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/iliyamo/electramart-api/internal/config"
	"github.com/iliyamo/electramart-api/internal/mail"
	"github.com/iliyamo/electramart-api/internal/model"
	"github.com/iliyamo/electramart-api/internal/repository"
	"github.com/iliyamo/electramart-api/internal/utils"
)

// AuthService implements registration, login, password reset and admin
// login.  The signing secret and cost settings are copied from config at
// construction and never change afterwards.
type AuthService struct {
	Users  repository.UserStore
	Admins repository.AdminStore
	Resets repository.ResetStore
	Mail   mail.Sender
	Log    *logrus.Logger

	Secret       string
	AccessTTLMin int
	BcryptCost   int
	ResetTTL     time.Duration

	Now func() time.Time
}

func NewAuthService(cfg config.Config, st *repository.Store, sender mail.Sender, log *logrus.Logger) *AuthService {
	return &AuthService{
		Users:        st.Users,
		Admins:       st.Admins,
		Resets:       st.Resets,
		Mail:         sender,
		Log:          log,
		Secret:       cfg.JWTSecret,
		AccessTTLMin: cfg.AccessTTLMin,
		BcryptCost:   cfg.BcryptCost,
		ResetTTL:     time.Duration(cfg.ResetTTLMin) * time.Minute,
		Now:          time.Now,
	}
}

func (s *AuthService) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}

// RegisterInput is the registration form.
type RegisterInput struct {
	Firstname       string
	Lastname        string
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
	Usertype        string
	Pincode         string
	Phone           string
	Address         string
	Status          string
	Cart            json.RawMessage
	Transaction     json.RawMessage
	Products        json.RawMessage
}

// Register creates an account.  A taken username or email is reported by
// the store as ErrUsernameExists / ErrEmailExists and nothing is written.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	if in.ConfirmPassword != "" && in.ConfirmPassword != in.Password {
		return nil, ErrPasswordMismatch
	}
	hash, err := utils.HashPassword(in.Password, s.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &model.User{
		Firstname:   strings.TrimSpace(in.Firstname),
		Lastname:    strings.TrimSpace(in.Lastname),
		Username:    strings.TrimSpace(in.Username),
		Email:       normEmail(in.Email),
		Password:    hash,
		Usertype:    strings.TrimSpace(in.Usertype),
		Pincode:     in.Pincode,
		Phone:       in.Phone,
		Address:     in.Address,
		Status:      strings.TrimSpace(in.Status),
		Cart:        clientJSON(in.Cart),
		Transaction: clientJSON(in.Transaction),
		Products:    clientJSON(in.Products),
	}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrUsernameExists) || errors.Is(err, repository.ErrEmailExists) {
			return nil, err
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	s.Log.WithFields(logrus.Fields{"user_id": u.ID, "username": u.Username}).Info("user registered")
	u.Password = ""
	return u, nil
}

// LoginInput is the login form.  Usertype is accepted but not checked; the
// token carries the stored usertype.
type LoginInput struct {
	Username string
	Email    string
	Password string
	Usertype string
}

// Login fetches the account by username once, then requires the submitted
// email to be that same account's email and the password to match its
// hash.  On success it returns the account and a signed access token.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*model.User, utils.AccessToken, error) {
	u, err := s.Users.GetByUsername(ctx, strings.TrimSpace(in.Username))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, utils.AccessToken{}, ErrInvalidUsername
	}
	if err != nil {
		return nil, utils.AccessToken{}, fmt.Errorf("load user: %w", err)
	}
	if normEmail(in.Email) != normEmail(u.Email) {
		return nil, utils.AccessToken{}, ErrInvalidEmail
	}
	if !utils.VerifyPassword(u.Password, in.Password) {
		return nil, utils.AccessToken{}, ErrInvalidPassword
	}
	tok, err := utils.NewAccessToken(s.Secret, u.ID, u.Username, u.Email, u.Usertype, s.AccessTTLMin)
	if err != nil {
		return nil, utils.AccessToken{}, fmt.Errorf("issue token: %w", err)
	}
	u.Password = ""
	return u, tok, nil
}

// RequestPasswordReset mails a one-time reset code to email.  Older codes of
// the account are invalidated first.  An unknown email returns nil so the
// endpoint cannot be used to probe for accounts.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	email = normEmail(email)
	u, err := s.Users.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		s.Log.WithField("email", email).Debug("password reset for unknown email")
		return nil
	}
	if err != nil {
		return fmt.Errorf("load user: %w", err)
	}
	if err := s.Resets.InvalidateForUser(ctx, u.ID); err != nil {
		return fmt.Errorf("invalidate reset codes: %w", err)
	}
	code, err := utils.NewResetCode()
	if err != nil {
		return fmt.Errorf("reset code: %w", err)
	}
	expires := s.now().Add(s.ResetTTL)
	if err := s.Resets.Create(ctx, &model.PasswordReset{
		UserID:    u.ID,
		Email:     u.Email,
		TokenHash: utils.HashToken(code),
		ExpiresAt: expires,
	}); err != nil {
		return fmt.Errorf("store reset code: %w", err)
	}
	body := fmt.Sprintf("Hello %s,\n\nyour ElectraMart password reset code is %s.\nIt expires at %s.\n",
		u.Username, code, expires.Format(time.RFC1123))
	if err := s.Mail.Send(ctx, mail.Message{To: []string{u.Email}, Subject: "ElectraMart password reset", Body: body}); err != nil {
		return fmt.Errorf("send reset mail: %w", err)
	}
	return nil
}

// SetNewPassword overwrites the password of the account with email.  It
// requires an active reset code issued to that email; the code is consumed
// before the password changes so it can be redeemed only once.
func (s *AuthService) SetNewPassword(ctx context.Context, email, code, newPassword string) (*model.User, error) {
	email = normEmail(email)
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrInvalidResetCode
	}
	r, err := s.Resets.GetByHash(ctx, utils.HashToken(code))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidResetCode
	}
	if err != nil {
		return nil, fmt.Errorf("load reset code: %w", err)
	}
	if r.UsedAt != nil || normEmail(r.Email) != email || !s.now().Before(r.ExpiresAt) {
		return nil, ErrInvalidResetCode
	}
	if err := s.Resets.MarkUsed(ctx, r.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidResetCode
		}
		return nil, fmt.Errorf("consume reset code: %w", err)
	}

	hash, err := utils.HashPassword(newPassword, s.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	if err := s.Users.UpdatePassword(ctx, email, hash); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("update password: %w", err)
	}
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("reload user: %w", err)
	}
	s.Log.WithField("user_id", u.ID).Info("password reset")
	u.Password = ""
	return u, nil
}

// AdminLogin succeeds when password matches any stored admin hash.  There is
// no admin identity and no token.
func (s *AuthService) AdminLogin(ctx context.Context, password string) error {
	if password == "" {
		return ErrAdminPassword
	}
	hashes, err := s.Admins.ListHashes(ctx)
	if err != nil {
		return fmt.Errorf("load admin credentials: %w", err)
	}
	for _, h := range hashes {
		if utils.VerifyPassword(h, password) {
			return nil
		}
	}
	return ErrAdminPassword
}

// ReplaceAdminPassword drops every stored admin hash and stores the hash of
// password in their place.  Used by the seed command.
func (s *AuthService) ReplaceAdminPassword(ctx context.Context, password string) error {
	if password == "" {
		return ErrAdminPassword
	}
	hash, err := utils.HashPassword(password, s.BcryptCost)
	if err != nil {
		return err
	}
	if err := s.Admins.DeleteAll(ctx); err != nil {
		return fmt.Errorf("clear admin credentials: %w", err)
	}
	if err := s.Admins.Create(ctx, hash); err != nil {
		return fmt.Errorf("store admin credential: %w", err)
	}
	return nil
}

// PurgeExpiredResets deletes reset codes past their expiry.  Run by cron.
func (s *AuthService) PurgeExpiredResets(ctx context.Context) (int64, error) {
	n, err := s.Resets.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("purge reset codes: %w", err)
	}
	return n, nil
}

// clientJSON drops an absent or explicit null client value.
func clientJSON(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return raw
}

func normEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
