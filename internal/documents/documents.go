package documents

import (
	"context"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/aajetechnology/StudyBot/internal/apperror"
	"github.com/aajetechnology/StudyBot/internal/models"
	"github.com/aajetechnology/StudyBot/pkg/textutil"
)

const (
	minTextChars  = 20
	maxTitleChars = 50

	extractInstruction = "Extract all academic text from this file perfectly so I can teach a student from it."
)

var visionTypes = map[string]string{
	".pdf":  "application/pdf",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
}

// Supported reports whether name has an extension Extract can read.
func Supported(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	_, vision := visionTypes[ext]
	return vision || ext == ".txt" || ext == ".docx"
}

func (s *implService) Extract(ctx context.Context, files []File) (string, error) {
	if len(files) == 0 {
		return "", apperror.InvalidInput("please upload at least one PDF, document or photo of your notes")
	}

	var combined strings.Builder
	for _, f := range files {
		text := s.extractOne(ctx, f)
		if strings.TrimSpace(text) == "" {
			continue
		}
		combined.WriteString(strings.TrimSpace(text))
		combined.WriteString("\n")
	}

	text := combined.String()
	if textutil.NonSpaceLen(text) < minTextChars {
		return "", apperror.InvalidInput("could not read the notes, please make sure the photos are clear")
	}
	return text, nil
}

// extractOne never fails; unreadable files contribute no text.
func (s *implService) extractOne(ctx context.Context, f File) string {
	ext := strings.ToLower(filepath.Ext(f.Name))
	switch {
	case ext == ".txt":
		if !utf8.Valid(f.Data) {
			s.logger.Warn(ctx, "Skipping %s: not valid UTF-8", f.Name)
			return ""
		}
		return string(f.Data)
	case ext == ".docx":
		text, err := docxText(f.Data)
		if err != nil {
			s.logger.Warn(ctx, "Skipping %s: %v", f.Name, err)
			return ""
		}
		return text
	case visionTypes[ext] != "":
		text, err := s.llm.Extract(ctx, f.Data, visionTypes[ext], extractInstruction)
		if err != nil {
			s.logger.Error(ctx, "Vision extraction failed for %s: %v", f.Name, err)
			return ""
		}
		return text
	default:
		s.logger.Warn(ctx, "Skipping %s: unsupported file type", f.Name)
		return ""
	}
}

func (s *implService) Import(ctx context.Context, userID uint, files []File) (*models.Lecture, error) {
	text, err := s.Extract(ctx, files)
	if err != nil {
		return nil, err
	}

	summary, failed := s.summarizer.Summarize(ctx, text)
	if failed {
		s.logger.Warn(ctx, "Saving imported notes without an AI summary")
	}

	lecture := &models.Lecture{
		Title:            textutil.Prefix(files[0].Name, maxTitleChars),
		Transcript:       text,
		Summary:          summary,
		OriginalFilename: files[0].Name,
		UserID:           userID,
	}
	if err := s.store.CreateLecture(ctx, lecture); err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "Imported %d note files as lecture %d", len(files), lecture.ID)
	return lecture, nil
}
