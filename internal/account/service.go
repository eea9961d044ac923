package account

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/vireakbo/phoneauth/internal/auth"
	"github.com/vireakbo/phoneauth/internal/models"
	"github.com/vireakbo/phoneauth/internal/otp"
	"github.com/vireakbo/phoneauth/internal/sms"
	"github.com/vireakbo/phoneauth/internal/store"
	"github.com/vireakbo/phoneauth/pkg/crypto"
	apperrors "github.com/vireakbo/phoneauth/pkg/errors"
	"github.com/vireakbo/phoneauth/pkg/logger"
	"github.com/vireakbo/phoneauth/pkg/metrics"
)

// DefaultOTPTTL is how long a verification code stays redeemable.
const DefaultOTPTTL = 5 * time.Minute

// PasswordHasher abstracts the password hashing scheme so tests can swap in
// a cheap implementation.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(encoded, password string) bool
}

type argonHasher struct{}

func (argonHasher) Hash(password string) (string, error) { return crypto.HashPassword(password) }
func (argonHasher) Verify(encoded, password string) bool {
	return crypto.VerifyPassword(encoded, password)
}

// Service implements the account lifecycle: registration, phone verification,
// login, and the password flows. All multi-write operations run inside a
// single store transaction.
type Service struct {
	store  store.Store
	tokens *auth.JWTService
	sender sms.Sender

	hasher    PasswordHasher
	generator otp.Generator
	now       func() time.Time
	otpTTL    time.Duration

	countryPrefix string
	otpOnForgot   bool

	log *zap.Logger
}

// Option customises a Service.
type Option func(*Service)

// WithClock overrides the time source, primarily for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithOTPGenerator overrides the verification code generator.
func WithOTPGenerator(g otp.Generator) Option {
	return func(s *Service) {
		if g != nil {
			s.generator = g
		}
	}
}

// WithOTPTTL overrides the verification code lifetime.
func WithOTPTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.otpTTL = ttl
		}
	}
}

// WithHasher overrides the password hashing scheme.
func WithHasher(h PasswordHasher) Option {
	return func(s *Service) {
		if h != nil {
			s.hasher = h
		}
	}
}

// WithCountryPrefix sets the prefix applied when normalising local-format
// phone numbers.
func WithCountryPrefix(prefix string) Option {
	return func(s *Service) {
		if prefix != "" {
			s.countryPrefix = prefix
		}
	}
}

// WithForgotPasswordOTP controls whether ForgotPassword issues a fresh
// verification code in addition to logging the request.
func WithForgotPasswordOTP(enabled bool) Option {
	return func(s *Service) {
		s.otpOnForgot = enabled
	}
}

// NewService wires the account lifecycle engine.
func NewService(st store.Store, tokens *auth.JWTService, sender sms.Sender, opts ...Option) (*Service, error) {
	if st == nil {
		return nil, errors.New("account: store is required")
	}
	if tokens == nil {
		return nil, errors.New("account: token service is required")
	}
	if sender == nil {
		return nil, errors.New("account: sms sender is required")
	}

	s := &Service{
		store:         st,
		tokens:        tokens,
		sender:        sender,
		hasher:        argonHasher{},
		generator:     otp.NewGenerator(),
		now:           time.Now,
		otpTTL:        DefaultOTPTTL,
		countryPrefix: sms.DefaultCountryPrefix,
		log:           logger.WithModule("account"),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Register creates an unverified account, issues a verification code, and
// delivers it by SMS. SMS delivery failure is logged and never rolls back the
// registration.
func (s *Service) Register(ctx context.Context, fullName, phoneNumber, password string) (*models.User, error) {
	phone := sms.NormalizePhone(phoneNumber, s.countryPrefix)

	if _, err := s.store.Users().FindByPhone(ctx, phone); err == nil {
		return nil, apperrors.ErrPhoneTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, apperrors.Wrap(err, "failed to register user")
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to register user")
	}

	code, err := s.generator.Generate()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to register user")
	}

	now := s.now()
	user := &models.User{
		FullName:    fullName,
		PhoneNumber: phone,
		Password:    hash,
	}

	err = s.store.Transaction(ctx, func(tx store.Store) error {
		if err := tx.Users().Create(ctx, user); err != nil {
			return err
		}
		return tx.OTPs().Create(ctx, &models.OTP{
			PhoneNumber: phone,
			Code:        code,
			CreatedAt:   now,
			ExpiresAt:   now.Add(s.otpTTL),
		})
	})
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to register user")
	}

	s.sendCode(ctx, phone, code)

	s.log.Info("user registered",
		zap.Uint("user_id", user.ID),
		zap.String("phone", phone))

	return user, nil
}

// VerifyOTP redeems the newest live verification code for the phone number,
// marking the account verified and consuming the code in one transaction. A
// missing account is tolerated; the code is consumed regardless.
func (s *Service) VerifyOTP(ctx context.Context, phoneNumber, submittedCode string) error {
	phone := sms.NormalizePhone(phoneNumber, s.countryPrefix)
	now := s.now()

	err := s.store.Transaction(ctx, func(tx store.Store) error {
		record, err := tx.OTPs().LatestValid(ctx, phone, now)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return apperrors.ErrOTPInvalid
			}
			return err
		}

		if subtle.ConstantTimeCompare([]byte(record.Code), []byte(submittedCode)) != 1 {
			return apperrors.ErrOTPInvalid
		}

		// Consume first so a failure below can never leave the code redeemable.
		if err := tx.OTPs().Delete(ctx, record.ID); err != nil {
			return err
		}

		user, err := tx.Users().FindByPhone(ctx, phone)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil
			}
			return err
		}

		user.IsVerified = true
		return tx.Users().Update(ctx, user)
	})
	if err != nil {
		metrics.OTPVerifications.WithLabelValues("failure").Inc()
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return apperrors.Wrap(err, "failed to verify code")
	}

	metrics.OTPVerifications.WithLabelValues("success").Inc()
	s.log.Info("phone number verified", zap.String("phone", phone))
	return nil
}

// Authenticate checks the credentials and mints an access token. Unknown
// phone numbers and wrong passwords produce the same error.
func (s *Service) Authenticate(ctx context.Context, phoneNumber, password string) (*models.User, string, error) {
	phone := sms.NormalizePhone(phoneNumber, s.countryPrefix)

	user, err := s.store.Users().FindByPhone(ctx, phone)
	if err != nil {
		metrics.AuthAttempts.WithLabelValues("failure").Inc()
		if errors.Is(err, store.ErrNotFound) {
			return nil, "", apperrors.ErrInvalidCredentials
		}
		return nil, "", apperrors.Wrap(err, "failed to authenticate")
	}

	if !s.hasher.Verify(user.Password, password) {
		metrics.AuthAttempts.WithLabelValues("failure").Inc()
		return nil, "", apperrors.ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateAccessToken(auth.AccessTokenInput{
		UserID:      user.ID,
		PhoneNumber: user.PhoneNumber,
		FullName:    user.FullName,
	})
	if err != nil {
		metrics.AuthAttempts.WithLabelValues("failure").Inc()
		return nil, "", apperrors.Wrap(err, "failed to authenticate")
	}

	loginAt := s.now()
	user.LastLoginAt = &loginAt
	if err := s.store.Users().Update(ctx, user); err != nil {
		s.log.Warn("failed to record login time",
			zap.Uint("user_id", user.ID),
			zap.Error(err))
	}

	metrics.AuthAttempts.WithLabelValues("success").Inc()
	s.log.Info("user authenticated", zap.Uint("user_id", user.ID))
	return user, token, nil
}

// ForgotPassword records a password reset request. Issuing a fresh
// verification code on this path is a deployment policy, off unless enabled
// through WithForgotPasswordOTP.
func (s *Service) ForgotPassword(ctx context.Context, phoneNumber string) error {
	phone := sms.NormalizePhone(phoneNumber, s.countryPrefix)

	if _, err := s.store.Users().FindByPhone(ctx, phone); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.Wrap(err, "failed to process password reset request")
	}

	s.log.Info("password reset requested", zap.String("phone", phone))

	if !s.otpOnForgot {
		return nil
	}

	code, err := s.generator.Generate()
	if err != nil {
		return apperrors.Wrap(err, "failed to process password reset request")
	}

	now := s.now()
	err = s.store.OTPs().Create(ctx, &models.OTP{
		PhoneNumber: phone,
		Code:        code,
		CreatedAt:   now,
		ExpiresAt:   now.Add(s.otpTTL),
	})
	if err != nil {
		return apperrors.Wrap(err, "failed to process password reset request")
	}

	s.sendCode(ctx, phone, code)
	return nil
}

// ResetPassword replaces the password for the account registered under the
// phone number. It does not require proof of phone possession; deployments
// that need an OTP gate must enforce VerifyOTP ahead of this call.
func (s *Service) ResetPassword(ctx context.Context, phoneNumber, newPassword string) error {
	phone := sms.NormalizePhone(phoneNumber, s.countryPrefix)

	user, err := s.store.Users().FindByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.Wrap(err, "failed to reset password")
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return apperrors.Wrap(err, "failed to reset password")
	}

	user.Password = hash
	if err := s.store.Users().Update(ctx, user); err != nil {
		return apperrors.Wrap(err, "failed to reset password")
	}

	s.log.Info("password reset", zap.Uint("user_id", user.ID))
	return nil
}

// ChangePassword replaces the password after checking the current one.
func (s *Service) ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error {
	user, err := s.store.Users().FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.Wrap(err, "failed to change password")
	}

	if !s.hasher.Verify(user.Password, oldPassword) {
		return apperrors.ErrUnauthorized
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return apperrors.Wrap(err, "failed to change password")
	}

	user.Password = hash
	if err := s.store.Users().Update(ctx, user); err != nil {
		return apperrors.Wrap(err, "failed to change password")
	}

	s.log.Info("password changed", zap.Uint("user_id", user.ID))
	return nil
}

// Logout records the logout. Clearing the session cookie happens at the
// transport boundary; no server state changes here.
func (s *Service) Logout(ctx context.Context, user *models.User) error {
	if user == nil {
		return apperrors.ErrUnauthorized
	}

	s.log.Info("user logged out", zap.Uint("user_id", user.ID))
	return nil
}

// GetUser resolves an account by id.
func (s *Service) GetUser(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.store.Users().FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to load user")
	}
	return user, nil
}

func (s *Service) sendCode(ctx context.Context, phone, code string) {
	message := fmt.Sprintf("Your verification code is %s. It expires in %d minutes.",
		code, int(s.otpTTL.Minutes()))

	delivered, err := s.sender.Send(ctx, phone, message)
	switch {
	case errors.Is(err, sms.ErrDisabled):
		metrics.SMSDeliveries.WithLabelValues("disabled").Inc()
		s.log.Debug("sms delivery disabled, code not sent", zap.String("phone", phone))
	case err != nil:
		metrics.SMSDeliveries.WithLabelValues("failed").Inc()
		s.log.Error("failed to deliver verification code",
			zap.String("phone", phone),
			zap.Error(err))
	case !delivered:
		metrics.SMSDeliveries.WithLabelValues("failed").Inc()
		s.log.Warn("verification code not accepted by provider", zap.String("phone", phone))
	default:
		metrics.SMSDeliveries.WithLabelValues("delivered").Inc()
	}
}
