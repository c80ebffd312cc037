package repo

import (
	"context"
	"time"

	"github.com/Skotchmaster/resto_pos/internal/models"
	"github.com/google/uuid"
)

const msgUserNotFound = "User not found"

func (r *GormRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, notFound(err, msgUserNotFound)
	}
	return &u, nil
}

func (r *GormRepo) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var u models.User
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, notFound(err, msgUserNotFound)
	}
	return &u, nil
}

// CreateUserIfNotExists reports false when a user with the same email is already stored.
func (r *GormRepo) CreateUserIfNotExists(ctx context.Context, u *models.User) (bool, error) {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&models.User{}).
		Where("email = ?", u.Email).
		Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	if err := r.DB.WithContext(ctx).Create(u).Error; err != nil {
		return false, err
	}
	return true, nil
}

func (r *GormRepo) CreateAccessToken(ctx context.Context, t *models.AccessToken) error {
	return r.DB.WithContext(ctx).Create(t).Error
}

// TokenActive reports whether jti was issued by us, is unexpired and not revoked.
func (r *GormRepo) TokenActive(ctx context.Context, jti string) (bool, error) {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&models.AccessToken{}).
		Where("jti = ? AND revoked = ? AND expires_at > ?", jti, false, time.Now().UTC()).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormRepo) RevokeUserTokens(ctx context.Context, userID uuid.UUID) error {
	return r.DB.WithContext(ctx).Model(&models.AccessToken{}).
		Where("user_id = ? AND revoked = ?", userID, false).
		Update("revoked", true).Error
}
