// Package library summarizes a user's saved lectures and quiz history.
package library

import (
	"context"
	"math"

	"github.com/aajetechnology/StudyBot/internal/models"
)

type Store interface {
	ListLectures(ctx context.Context, userID uint) ([]models.Lecture, error)
	ListQuizzes(ctx context.Context, userID uint) ([]models.Quiz, error)
}

type Overview struct {
	Lectures     []models.Lecture `json:"lectures"`
	Quizzes      []models.Quiz    `json:"quizzes"`
	TotalQuizzes int              `json:"total_quizzes"`
	AverageScore int              `json:"avg_score"`
}

type Service interface {
	Overview(ctx context.Context, userID uint) (*Overview, error)
}

type implService struct {
	store Store
}

func New(store Store) Service {
	return &implService{store: store}
}

func (s *implService) Overview(ctx context.Context, userID uint) (*Overview, error) {
	lectures, err := s.store.ListLectures(ctx, userID)
	if err != nil {
		return nil, err
	}
	quizzes, err := s.store.ListQuizzes(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Overview{
		Lectures:     lectures,
		Quizzes:      quizzes,
		TotalQuizzes: len(quizzes),
		AverageScore: AverageScore(quizzes),
	}, nil
}

// AverageScore is total points over total possible points as a rounded
// percentage, or 0 when nothing was possible.
func AverageScore(quizzes []models.Quiz) int {
	var points, possible int
	for _, q := range quizzes {
		points += q.Score
		possible += q.TotalQuestions
	}
	if possible == 0 {
		return 0
	}
	return int(math.Round(float64(points) / float64(possible) * 100))
}
