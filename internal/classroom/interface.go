package classroom

import (
	"context"
	"time"
)

// Class is a started classroom session.
type Class struct {
	Token     string    `json:"token"`
	LectureID uint      `json:"lecture_id"`
	Title     string    `json:"title"`
	Modules   []string  `json:"modules"`
	Step      int       `json:"step"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Lesson is the explanation of the current module. Finished is set once
// every module has been taught.
type Lesson struct {
	ModuleTitle string `json:"module_title,omitempty"`
	Explanation string `json:"explanation,omitempty"`
	Step        int    `json:"step"`
	TotalSteps  int    `json:"total_steps"`
	Finished    bool   `json:"finished"`
}

// Service walks a student through a lecture module by module.
type Service interface {
	Start(ctx context.Context, userID, lectureID uint) (*Class, error)
	Teach(ctx context.Context, userID uint, token string) (*Lesson, error)
	Ask(ctx context.Context, userID uint, token, question string) (string, error)
	Next(ctx context.Context, userID uint, token string) (*Class, error)
	// Chat answers free-form questions, grounded on a lecture when lectureID is set.
	Chat(ctx context.Context, userID uint, lectureID *uint, message string) (string, error)
}
