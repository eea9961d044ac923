package store

import (
	"context"
	"errors"
	"time"

	"github.com/vireakbo/phoneauth/internal/models"
)

// ErrNotFound indicates an empty result rather than a store failure. Callers
// distinguish it from hard errors with errors.Is.
var ErrNotFound = errors.New("store: record not found")

// UserStore owns persistence for account records.
type UserStore interface {
	FindByPhone(ctx context.Context, phone string) (*models.User, error)
	FindByID(ctx context.Context, id uint) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
}

// OTPStore owns persistence for verification codes.
type OTPStore interface {
	Create(ctx context.Context, otp *models.OTP) error
	// LatestValid returns the most recently created unused, unexpired code for
	// the phone number, or ErrNotFound when no live code exists.
	LatestValid(ctx context.Context, phone string, now time.Time) (*models.OTP, error)
	Delete(ctx context.Context, id uint) error
}

// Store aggregates the repositories behind a single transaction boundary.
type Store interface {
	Users() UserStore
	OTPs() OTPStore
	// Transaction runs fn against a store bound to one database transaction,
	// committing on nil return and rolling back otherwise.
	Transaction(ctx context.Context, fn func(Store) error) error
}
