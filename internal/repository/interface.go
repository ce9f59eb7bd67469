package repository

import (
	"context"
	"time"

	"github.com/aajetechnology/StudyBot/internal/models"
)

type UserRepository interface {
	// CreateUser inserts u; the first user ever created becomes an admin.
	CreateUser(ctx context.Context, u *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}

type LectureRepository interface {
	// CreateLecture inserts l in one transaction; nothing is kept on failure.
	CreateLecture(ctx context.Context, l *models.Lecture) error
	GetLecture(ctx context.Context, userID, id uint) (*models.Lecture, error)
	ListLectures(ctx context.Context, userID uint) ([]models.Lecture, error)
}

type QuizRepository interface {
	GetQuiz(ctx context.Context, userID, id uint) (*models.Quiz, error)
	ListQuizzes(ctx context.Context, userID uint) ([]models.Quiz, error)
}

type SessionRepository interface {
	SaveQuizSession(ctx context.Context, s *models.QuizSession) error
	GetQuizSession(ctx context.Context, token string) (*models.QuizSession, error)
	DeleteQuizSession(ctx context.Context, token string) error
	// CompleteQuiz consumes the session and stores the result atomically.
	CompleteQuiz(ctx context.Context, token string, q *models.Quiz) error

	SaveClassroom(ctx context.Context, s *models.ClassroomSession) error
	GetClassroom(ctx context.Context, token string) (*models.ClassroomSession, error)
	UpdateClassroomStep(ctx context.Context, token string, step int) error

	// PurgeExpired removes quiz and classroom sessions expired at now.
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

// Repository is the full storage layer.
type Repository interface {
	UserRepository
	LectureRepository
	QuizRepository
	SessionRepository

	Migrate() error
	Close() error
}
