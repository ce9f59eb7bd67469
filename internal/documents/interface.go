package documents

import (
	"context"

	"github.com/aajetechnology/StudyBot/internal/models"
)

// File is one uploaded study document.
type File struct {
	Name string
	Data []byte
}

// Service turns uploaded notes into text and lectures.
type Service interface {
	// Extract reads every file and returns their combined text.
	Extract(ctx context.Context, files []File) (string, error)
	// Import extracts files, summarizes the text and saves it as a lecture
	// owned by userID.
	Import(ctx context.Context, userID uint, files []File) (*models.Lecture, error)
}
