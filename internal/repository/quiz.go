package repository

import (
	"context"

	"github.com/aajetechnology/StudyBot/internal/apperror"
	"github.com/aajetechnology/StudyBot/internal/models"
)

func (r *implRepository) GetQuiz(ctx context.Context, userID, id uint) (*models.Quiz, error) {
	var q models.Quiz
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&q).Error
	if err != nil {
		return nil, apperror.FromDatabase(err, "quiz")
	}
	return &q, nil
}

func (r *implRepository) ListQuizzes(ctx context.Context, userID uint) ([]models.Quiz, error) {
	var quizzes []models.Quiz
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp DESC, id DESC").
		Find(&quizzes).Error
	if err != nil {
		return nil, apperror.FromDatabase(err, "quiz")
	}
	return quizzes, nil
}
