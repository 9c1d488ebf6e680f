package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oreoluwa212/movie-recommendation-api/config"
	"github.com/oreoluwa212/movie-recommendation-api/internal/domain/entity"
	repo "github.com/oreoluwa212/movie-recommendation-api/internal/domain/repository"
	"github.com/oreoluwa212/movie-recommendation-api/pkg/helpers"
	"github.com/oreoluwa212/movie-recommendation-api/pkg/mailer"
)

// EmailPublisher enqueues email jobs for the detached worker.
// *helpers.RabbitPublisher satisfies it.
type EmailPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// AuthService drives the account lifecycle: registration, email verification,
// login, and the password reset flow. Verification and reset codes live on the
// account document; issuing a fresh code overwrites (and so invalidates) the
// previous one for the same purpose.
type AuthService struct {
	Repo   repo.UserRepository
	JWT    *helpers.JWTManager
	Pub    EmailPublisher
	Logger *logrus.Logger
	Cfg    *config.Config
}

func NewAuthService(r repo.UserRepository, jwt *helpers.JWTManager, pub EmailPublisher, logger *logrus.Logger, cfg *config.Config) *AuthService {
	return &AuthService{Repo: r, JWT: jwt, Pub: pub, Logger: logger, Cfg: cfg}
}

// RegisterResult carries the provisional session token issued at registration.
type RegisterResult struct {
	User                      *entity.User
	Token                     string
	TokenExpiry               time.Time
	EmailVerificationRequired bool
}

// Register creates an account in pending-verification state. The verification
// email is best-effort: a publish failure is logged but never aborts the
// already-committed registration.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*RegisterResult, error) {
	username = strings.TrimSpace(username)
	email = normalizeEmail(email)

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}
	code, err := helpers.GenNumericCode()
	if err != nil {
		return nil, err
	}
	expiry := time.Now().UTC().Add(s.Cfg.CodeTTL)

	u := &entity.User{
		Username:                username,
		Email:                   email,
		Password:                hash,
		EmailVerificationToken:  &code,
		EmailVerificationExpiry: &expiry,
		Preferences:             entity.Preferences{Theme: "light", Genres: []int{}},
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrDuplicateAccount
		}
		return nil, err
	}

	token, exp, err := s.JWT.GenerateToken(u.ID.Hex())
	if err != nil {
		return nil, err
	}

	s.enqueueEmail(ctx, u, mailer.TemplateVerificationCode, code)

	return &RegisterResult{
		User:                      u,
		Token:                     token,
		TokenExpiry:               exp,
		EmailVerificationRequired: true,
	}, nil
}

// LoginResult carries the session token for a verified account.
type LoginResult struct {
	User        *entity.User
	Token       string
	TokenExpiry time.Time
}

// Login authenticates by email and password. Unknown account and wrong
// password return the same error so callers cannot probe for registered
// emails. A pending account fails with ErrEmailNotVerified and no token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	u, err := s.Repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	if !u.IsEmailVerified {
		return nil, ErrEmailNotVerified
	}
	token, exp, err := s.JWT.GenerateToken(u.ID.Hex())
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: u, Token: token, TokenExpiry: exp}, nil
}

// VerifyEmail consumes a verification code. On success the code and its expiry
// are cleared before the update commits, so the same code cannot be replayed.
func (s *AuthService) VerifyEmail(ctx context.Context, email, code string) (*entity.User, error) {
	u, err := s.Repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, ErrInvalidOrExpiredCode
	}
	if !codeMatches(u.EmailVerificationToken, u.EmailVerificationExpiry, code) {
		return nil, ErrInvalidOrExpiredCode
	}

	u.IsEmailVerified = true
	u.EmailVerificationToken = nil
	u.EmailVerificationExpiry = nil
	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, err
	}

	s.enqueueEmail(ctx, u, mailer.TemplateWelcome, "")
	return u, nil
}

// ResendVerification regenerates the verification code, invalidating the
// previous one. Unlike registration, a delivery failure here is surfaced.
func (s *AuthService) ResendVerification(ctx context.Context, email string) error {
	u, err := s.Repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return ErrNotFoundOrForbidden
	}
	if u.IsEmailVerified {
		return ErrAlreadyVerified
	}

	code, err := helpers.GenNumericCode()
	if err != nil {
		return err
	}
	expiry := time.Now().UTC().Add(s.Cfg.CodeTTL)
	u.EmailVerificationToken = &code
	u.EmailVerificationExpiry = &expiry
	if err := s.Repo.Update(ctx, u); err != nil {
		return err
	}

	if err := s.publish(ctx, u, mailer.TemplateVerificationCode, code); err != nil {
		s.Logger.WithError(err).WithField("email", u.Email).Error("resend verification publish failed")
		return ErrDeliveryFailed
	}
	return nil
}

// ForgotPassword always succeeds from the caller's perspective when the email
// is unknown, preventing account enumeration. When the account exists, a reset
// code is stored and delivery attempted; only the delivery failure is surfaced.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	u, err := s.Repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil
	}

	code, err := helpers.GenNumericCode()
	if err != nil {
		return err
	}
	expiry := time.Now().UTC().Add(s.Cfg.CodeTTL)
	u.PasswordResetToken = &code
	u.PasswordResetExpiry = &expiry
	if err := s.Repo.Update(ctx, u); err != nil {
		return err
	}

	if err := s.publish(ctx, u, mailer.TemplatePasswordReset, code); err != nil {
		s.Logger.WithError(err).WithField("email", u.Email).Error("password reset publish failed")
		return ErrDeliveryFailed
	}
	return nil
}

// ResetPassword replaces the password hash after validating the reset code.
// The code itself is the credential; no session is required.
func (s *AuthService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	u, err := s.Repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return ErrInvalidOrExpiredCode
	}
	if !codeMatches(u.PasswordResetToken, u.PasswordResetExpiry, code) {
		return ErrInvalidOrExpiredCode
	}

	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return err
	}
	u.Password = hash
	u.PasswordResetToken = nil
	u.PasswordResetExpiry = nil
	return s.Repo.Update(ctx, u)
}

// Me returns the account for an authenticated session.
func (s *AuthService) Me(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrNotFoundOrForbidden
	}
	return u, nil
}

func codeMatches(stored *string, expiry *time.Time, candidate string) bool {
	if stored == nil || expiry == nil {
		return false
	}
	if *stored != candidate {
		return false
	}
	return expiry.After(time.Now().UTC())
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// enqueueEmail publishes best-effort: failures are logged, never returned.
func (s *AuthService) enqueueEmail(ctx context.Context, u *entity.User, template, code string) {
	if err := s.publish(ctx, u, template, code); err != nil {
		s.Logger.WithError(err).WithFields(logrus.Fields{
			"email":    u.Email,
			"template": template,
		}).Warn("email enqueue failed")
	}
}

func (s *AuthService) publish(ctx context.Context, u *entity.User, template, code string) error {
	if s.Pub == nil || !s.Cfg.MailSendEnabled {
		return nil
	}
	data := map[string]any{"Name": u.Username, "Email": u.Email}
	if code != "" {
		data["Code"] = code
	}
	job := mailer.EmailJob{To: u.Email, Template: template, Data: data}
	return s.Pub.PublishJSON(ctx, job)
}
