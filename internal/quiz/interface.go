package quiz

import (
	"context"
	"time"

	"github.com/aajetechnology/StudyBot/internal/models"
)

const (
	TypeObjective = "objective"
	TypeTheory    = "theory"
)

// Question is one generated exam question. Ans is set for objective
// questions, Keywords for theory questions.
type Question struct {
	ID       int      `json:"id"`
	Type     string   `json:"type"`
	Q        string   `json:"q"`
	Options  []string `json:"options,omitempty"`
	Ans      string   `json:"ans,omitempty"`
	Keywords []string `json:"keywords,omitempty"`
}

func (q Question) IsObjective() bool { return q.Type == TypeObjective }

// Public strips the answer key.
func (q Question) Public() Question {
	q.Ans = ""
	q.Keywords = nil
	return q
}

// Exam is a started quiz as handed to the student.
type Exam struct {
	Token        string     `json:"token"`
	LectureID    uint       `json:"lecture_id"`
	Title        string     `json:"title"`
	Questions    []Question `json:"questions"`
	TimerSeconds int        `json:"timer_seconds"`
	ExpiresAt    time.Time  `json:"expires_at"`
}

// Detail is the graded view of one question.
type Detail struct {
	Question      string `json:"question"`
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer"`
	IsCorrect     bool   `json:"is_correct"`
}

type Result struct {
	Quiz    *models.Quiz `json:"quiz"`
	Details []Detail     `json:"details"`
}

// Service generates, grades and reports exams.
type Service interface {
	Start(ctx context.Context, userID, lectureID uint, count int) (*Exam, error)
	// Submit grades answers (keyed by question index) and consumes the session.
	Submit(ctx context.Context, userID uint, token string, answers map[int]string) (*models.Quiz, error)
	Results(ctx context.Context, userID, quizID uint) (*Result, error)
}
