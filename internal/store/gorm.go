package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/vireakbo/phoneauth/internal/models"
)

// New builds a GORM-backed Store.
func New(db *gorm.DB) (Store, error) {
	if db == nil {
		return nil, errors.New("store: db is required")
	}
	return &gormStore{db: db}, nil
}

type gormStore struct {
	db *gorm.DB
}

func (s *gormStore) Users() UserStore { return &gormUsers{db: s.db} }
func (s *gormStore) OTPs() OTPStore   { return &gormOTPs{db: s.db} }

func (s *gormStore) Transaction(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

type gormUsers struct {
	db *gorm.DB
}

func (r *gormUsers) FindByPhone(ctx context.Context, phone string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("phone_number = ?", phone).Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: find user by phone: %w", err)
	}
	return &user, nil
}

func (r *gormUsers) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Take(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: find user by id: %w", err)
	}
	return &user, nil
}

func (r *gormUsers) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("store: create user: %w", err)
	}
	return nil
}

func (r *gormUsers) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return fmt.Errorf("store: update user: %w", err)
	}
	return nil
}

type gormOTPs struct {
	db *gorm.DB
}

func (r *gormOTPs) Create(ctx context.Context, otp *models.OTP) error {
	if err := r.db.WithContext(ctx).Create(otp).Error; err != nil {
		return fmt.Errorf("store: create otp: %w", err)
	}
	return nil
}

func (r *gormOTPs) LatestValid(ctx context.Context, phone string, now time.Time) (*models.OTP, error) {
	var otp models.OTP
	err := r.db.WithContext(ctx).
		Where("phone_number = ? AND used = ? AND expires_at > ?", phone, false, now).
		Order("created_at DESC, id DESC").
		Take(&otp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: find valid otp: %w", err)
	}
	return &otp, nil
}

func (r *gormOTPs) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.OTP{}, id).Error; err != nil {
		return fmt.Errorf("store: delete otp: %w", err)
	}
	return nil
}
