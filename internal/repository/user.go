// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"tweetapp/internal/cache"
	"tweetapp/internal/models"
	"tweetapp/internal/observability"

	"gorm.io/gorm"
)

// UserRepository defines persistence operations for users.
// Lookup methods return (nil, nil) when no user matches, so callers can
// distinguish "absent" from a storage fault.
type UserRepository interface {
	GetByLoginID(ctx context.Context, loginID string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	SearchByLoginID(ctx context.Context, fragment string) ([]models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
}

type userRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db, log: observability.NewRepoLogger("users")}
}

// cachedUser is the cache-side shape of a user record. The API model hides
// the password from serialization, but login reads credentials through this
// path, so the cached copy must carry every column verbatim.
type cachedUser struct {
	ID            uint      `json:"id"`
	LoginID       string    `json:"login_id"`
	Email         string    `json:"email"`
	Password      string    `json:"password"`
	ContactNumber string    `json:"contact_number"`
	DisplayName   string    `json:"display_name"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func newCachedUser(user *models.User) cachedUser {
	return cachedUser{
		ID:            user.ID,
		LoginID:       user.LoginID,
		Email:         user.Email,
		Password:      user.Password,
		ContactNumber: user.ContactNumber,
		DisplayName:   user.DisplayName,
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
	}
}

func (c cachedUser) toModel() models.User {
	return models.User{
		ID:            c.ID,
		LoginID:       c.LoginID,
		Email:         c.Email,
		Password:      c.Password,
		ContactNumber: c.ContactNumber,
		DisplayName:   c.DisplayName,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func (r *userRepository) GetByLoginID(ctx context.Context, loginID string) (*models.User, error) {
	key := cache.UserKey(loginID)

	var cached cachedUser
	if found, err := cache.GetJSON(ctx, key, &cached); err == nil && found {
		user := cached.toModel()
		return &user, nil
	}

	var user models.User
	if err := r.db.WithContext(ctx).Where("login_id = ?", loginID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}

	// Best-effort; misses are never cached.
	_ = cache.SetJSON(ctx, key, newCachedUser(&user), cache.UserTTL)
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

// SearchByLoginID matches login ids containing the fragment, case-insensitive.
// LOWER/LIKE instead of ILIKE keeps the query portable to the sqlite test driver.
func (r *userRepository) SearchByLoginID(ctx context.Context, fragment string) ([]models.User, error) {
	var users []models.User
	pattern := "%" + fragment + "%"
	if err := r.db.WithContext(ctx).
		Where("LOWER(login_id) LIKE LOWER(?)", pattern).
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *userRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Login id or email already in use")
		}
		r.log.LogError(ctx, err, "create")
		return models.NewInternalError(err)
	}
	r.log.LogWrite(ctx, "create", map[string]interface{}{"user_id": user.ID, "login_id": user.LoginID})
	return nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		r.log.LogError(ctx, err, "update")
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, user.LoginID)
	return nil
}

// isUniqueConstraintError checks if a DB error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	// PostgreSQL unique violation SQLSTATE 23505; sqlite says "unique constraint failed"
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}
