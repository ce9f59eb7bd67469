package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/aajetechnology/StudyBot/internal/apperror"
	"github.com/aajetechnology/StudyBot/internal/models"
)

func (r *implRepository) SaveQuizSession(ctx context.Context, s *models.QuizSession) error {
	return apperror.FromDatabase(r.db.WithContext(ctx).Create(s).Error, "quiz session")
}

func (r *implRepository) GetQuizSession(ctx context.Context, token string) (*models.QuizSession, error) {
	var s models.QuizSession
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&s).Error; err != nil {
		return nil, apperror.FromDatabase(err, "quiz session")
	}
	return &s, nil
}

func (r *implRepository) DeleteQuizSession(ctx context.Context, token string) error {
	err := r.db.WithContext(ctx).Where("token = ?", token).Delete(&models.QuizSession{}).Error
	return apperror.FromDatabase(err, "quiz session")
}

func (r *implRepository) CompleteQuiz(ctx context.Context, token string, q *models.Quiz) error {
	if q.Timestamp.IsZero() {
		q.Timestamp = time.Now().UTC()
	}
	err := r.withTransaction(ctx, func(tx *gorm.DB) error {
		res := tx.Where("token = ?", token).Delete(&models.QuizSession{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Already submitted by a concurrent request.
			return apperror.NotFound("quiz session")
		}
		return tx.Create(q).Error
	})
	if err != nil {
		q.ID = 0
	}
	return apperror.FromDatabase(err, "quiz")
}

func (r *implRepository) SaveClassroom(ctx context.Context, s *models.ClassroomSession) error {
	return apperror.FromDatabase(r.db.WithContext(ctx).Create(s).Error, "classroom session")
}

func (r *implRepository) GetClassroom(ctx context.Context, token string) (*models.ClassroomSession, error) {
	var s models.ClassroomSession
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&s).Error; err != nil {
		return nil, apperror.FromDatabase(err, "classroom session")
	}
	return &s, nil
}

func (r *implRepository) UpdateClassroomStep(ctx context.Context, token string, step int) error {
	res := r.db.WithContext(ctx).Model(&models.ClassroomSession{}).Where("token = ?", token).Update("step", step)
	if res.Error != nil {
		return apperror.FromDatabase(res.Error, "classroom session")
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("classroom session")
	}
	return nil
}

func (r *implRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	var purged int64
	err := r.withTransaction(ctx, func(tx *gorm.DB) error {
		res := tx.Where("expires_at <= ?", now).Delete(&models.QuizSession{})
		if res.Error != nil {
			return res.Error
		}
		purged += res.RowsAffected

		res = tx.Where("expires_at <= ?", now).Delete(&models.ClassroomSession{})
		if res.Error != nil {
			return res.Error
		}
		purged += res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, apperror.FromDatabase(err, "session")
	}
	return purged, nil
}
