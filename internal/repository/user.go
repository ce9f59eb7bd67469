package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/aajetechnology/StudyBot/internal/apperror"
	"github.com/aajetechnology/StudyBot/internal/models"
)

func (r *implRepository) CreateUser(ctx context.Context, u *models.User) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	err := r.withTransaction(ctx, func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Count(&count).Error; err != nil {
			return err
		}
		u.IsAdmin = count == 0
		return tx.Create(u).Error
	})
	return apperror.FromDatabase(err, "user")
}

func (r *implRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&u).Error
	if err != nil {
		return nil, apperror.FromDatabase(err, "user")
	}
	return &u, nil
}

func (r *implRepository) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, apperror.FromDatabase(err, "user")
	}
	return &u, nil
}

func (r *implRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, apperror.FromDatabase(err, "user")
	}
	return users, nil
}
