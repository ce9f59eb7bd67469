// Package models holds the persisted entities.
package models

import "time"

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"size:120;uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"size:120;not null" json:"-"`
	IsAdmin   bool      `gorm:"not null;default:false" json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

type Lecture struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Title            string    `gorm:"size:100;not null" json:"title"`
	Timestamp        time.Time `gorm:"not null;index" json:"timestamp"`
	Transcript       string    `gorm:"type:text;not null" json:"transcript"`
	Summary          string    `gorm:"type:text;not null" json:"summary"`
	OriginalFilename string    `gorm:"size:255" json:"original_filename,omitempty"`
	OutputFormat     string    `gorm:"size:10" json:"output_format,omitempty"`
	UserID           uint      `gorm:"not null;index" json:"user_id"`
}

type Quiz struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	LectureID      *uint     `gorm:"index" json:"lecture_id,omitempty"`
	Title          string    `gorm:"size:200" json:"title"`
	QuestionsJSON  string    `gorm:"type:text" json:"-"`
	UserAnswers    string    `gorm:"type:text" json:"-"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	Feedback       string    `gorm:"type:text" json:"feedback"`
	UserID         uint      `gorm:"not null;index" json:"user_id"`
	Timestamp      time.Time `gorm:"not null;index" json:"timestamp"`
}

// QuizSession holds generated questions between quiz start and submission.
type QuizSession struct {
	Token         string    `gorm:"primaryKey;size:36" json:"token"`
	UserID        uint      `gorm:"not null;index" json:"-"`
	LectureID     uint      `gorm:"not null" json:"lecture_id"`
	QuestionsJSON string    `gorm:"type:text;not null" json:"-"`
	TimerSeconds  int       `json:"timer_seconds"`
	ExpiresAt     time.Time `gorm:"not null;index" json:"expires_at"`
	CreatedAt     time.Time `json:"created_at"`
}

// ClassroomSession tracks a student's progress through a lecture syllabus.
type ClassroomSession struct {
	Token       string    `gorm:"primaryKey;size:36" json:"token"`
	UserID      uint      `gorm:"not null;index" json:"-"`
	LectureID   uint      `gorm:"not null" json:"lecture_id"`
	ModulesJSON string    `gorm:"type:text;not null" json:"-"`
	Step        int       `gorm:"not null;default:0" json:"step"`
	ExpiresAt   time.Time `gorm:"not null;index" json:"expires_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// Expired reports whether the session is past its lifetime at now.
func (s *QuizSession) Expired(now time.Time) bool { return !now.Before(s.ExpiresAt) }

func (s *ClassroomSession) Expired(now time.Time) bool { return !now.Before(s.ExpiresAt) }

// All lists every model for migrations.
func All() []interface{} {
	return []interface{}{&User{}, &Lecture{}, &Quiz{}, &QuizSession{}, &ClassroomSession{}}
}
