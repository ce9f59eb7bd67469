package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/aajetechnology/StudyBot/internal/apperror"
	"github.com/aajetechnology/StudyBot/internal/models"
)

func (r *implRepository) CreateLecture(ctx context.Context, l *models.Lecture) error {
	if l.Timestamp.IsZero() {
		l.Timestamp = time.Now().UTC()
	}
	err := r.withTransaction(ctx, func(tx *gorm.DB) error {
		// The owner must exist; sqlite only enforces this with foreign keys on.
		var owner int64
		if err := tx.Model(&models.User{}).Where("id = ?", l.UserID).Count(&owner).Error; err != nil {
			return err
		}
		if owner == 0 {
			return apperror.NotFound("user")
		}
		return tx.Create(l).Error
	})
	if err != nil {
		r.logger.Error(ctx, "Lecture %q not saved, transaction rolled back: %v", l.Title, err)
		l.ID = 0
		return apperror.FromDatabase(err, "lecture")
	}
	return nil
}

func (r *implRepository) GetLecture(ctx context.Context, userID, id uint) (*models.Lecture, error) {
	var l models.Lecture
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&l).Error
	if err != nil {
		return nil, apperror.FromDatabase(err, "lecture")
	}
	return &l, nil
}

func (r *implRepository) ListLectures(ctx context.Context, userID uint) ([]models.Lecture, error) {
	var lectures []models.Lecture
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp DESC, id DESC").
		Find(&lectures).Error
	if err != nil {
		return nil, apperror.FromDatabase(err, "lecture")
	}
	return lectures, nil
}
