package classroom

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/aajetechnology/StudyBot/internal/apperror"
	"github.com/aajetechnology/StudyBot/internal/llm"
	"github.com/aajetechnology/StudyBot/internal/models"
	"github.com/aajetechnology/StudyBot/pkg/textutil"
)

const (
	syllabusChars = 5000
	teachChars    = 8000
	askChars      = 4000
	chatChars     = 6000
	maxModules    = 6

	AskFallback  = "I'm sorry, I couldn't process that question right now."
	ChatFallback = "I'm currently reviewing some papers. Try again in a second!"
	generalScope = "General academic knowledge."
)

var fallbackModules = []string{"Introduction", "Core Concepts", "Summary"}

const syllabusPrompt = `You are an expert curriculum designer. Break the following lecture content into a logical sequence of 4 to 6 learning modules.
Return ONLY a JSON object with a 'modules' key containing a list of strings (titles).
Lecture Title: %s
Content: %s`

const teachPrompt = `You are a supportive and detailed AI Professor.
Explain the module: "%s" based on the lecture: "%s".

Guidelines:
1. Provide a detailed, easy-to-understand explanation of this specific part.
2. Use analogies if the concept is complex.
3. Suggest one relevant YouTube search term.
4. Recommend one book for further reading.
5. Ask the student if they understand or want a test.

Content context: %s`

const askPrompt = `The student is learning about "%s" from the lecture "%s".
They have a question: "%s".
Answer them clearly based on this context: %s`

const chatSystem = "You are 'Professor StudAI', a helpful, witty, and brilliant academic mentor. " +
	"Your tone is encouraging, clear, and professional. " +
	"Base your expertise on this context: %s"

func (s *implService) Start(ctx context.Context, userID, lectureID uint) (*Class, error) {
	lecture, err := s.store.GetLecture(ctx, userID, lectureID)
	if err != nil {
		return nil, err
	}

	modules := s.syllabus(ctx, lecture)
	raw, err := json.Marshal(modules)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	now := s.now()
	session := &models.ClassroomSession{
		Token:       uuid.NewString(),
		UserID:      userID,
		LectureID:   lecture.ID,
		ModulesJSON: string(raw),
		ExpiresAt:   now.Add(s.sessionTTL),
		CreatedAt:   now,
	}
	if err := s.store.SaveClassroom(ctx, session); err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "Classroom %s started for lecture %d with %d modules", session.Token, lecture.ID, len(modules))

	return &Class{
		Token:     session.Token,
		LectureID: lecture.ID,
		Title:     lecture.Title,
		Modules:   modules,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

// syllabus asks for module titles and falls back to a generic outline.
func (s *implService) syllabus(ctx context.Context, lecture *models.Lecture) []string {
	var payload struct {
		Modules []string `json:"modules"`
	}
	err := llm.GenerateJSON(ctx, s.llm, llm.Request{
		Prompt: fmt.Sprintf(syllabusPrompt, lecture.Title, textutil.Prefix(lecture.Transcript, syllabusChars)),
	}, &payload)
	if err != nil {
		s.logger.Warn(ctx, "Syllabus generation failed for lecture %d, using default outline: %v", lecture.ID, err)
		return append([]string(nil), fallbackModules...)
	}

	modules := make([]string, 0, len(payload.Modules))
	for _, m := range payload.Modules {
		if m = strings.TrimSpace(m); m != "" {
			modules = append(modules, m)
		}
	}
	if len(modules) == 0 {
		return append([]string(nil), fallbackModules...)
	}
	if len(modules) > maxModules {
		modules = modules[:maxModules]
	}
	return modules
}

type class struct {
	session *models.ClassroomSession
	lecture *models.Lecture
	modules []string
}

func (c *class) current() string {
	if c.session.Step < len(c.modules) {
		return c.modules[c.session.Step]
	}
	return c.modules[len(c.modules)-1]
}

// load resolves token to a live session owned by userID.
func (s *implService) load(ctx context.Context, userID uint, token string) (*class, error) {
	session, err := s.store.GetClassroom(ctx, token)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, apperror.NotFound("classroom session")
	}
	if session.Expired(s.now()) {
		return nil, apperror.Expired("classroom session")
	}

	var modules []string
	if err := json.Unmarshal([]byte(session.ModulesJSON), &modules); err != nil || len(modules) == 0 {
		modules = append([]string(nil), fallbackModules...)
	}
	lecture, err := s.store.GetLecture(ctx, userID, session.LectureID)
	if err != nil {
		return nil, err
	}
	return &class{session: session, lecture: lecture, modules: modules}, nil
}

func (s *implService) Teach(ctx context.Context, userID uint, token string) (*Lesson, error) {
	c, err := s.load(ctx, userID, token)
	if err != nil {
		return nil, err
	}
	if c.session.Step >= len(c.modules) {
		return &Lesson{Step: len(c.modules), TotalSteps: len(c.modules), Finished: true}, nil
	}

	title := c.modules[c.session.Step]
	explanation, err := s.llm.Generate(ctx, llm.Request{
		Prompt: fmt.Sprintf(teachPrompt, title, c.lecture.Title, textutil.Prefix(c.lecture.Transcript, teachChars)),
	})
	if err != nil {
		s.logger.Error(ctx, "Teaching module %q failed: %v", title, err)
		return nil, apperror.External("AI professor", err)
	}
	return &Lesson{
		ModuleTitle: title,
		Explanation: explanation,
		Step:        c.session.Step + 1,
		TotalSteps:  len(c.modules),
	}, nil
}

func (s *implService) Ask(ctx context.Context, userID uint, token, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", apperror.InvalidInput("question is required")
	}
	c, err := s.load(ctx, userID, token)
	if err != nil {
		return "", err
	}

	answer, err := s.llm.Generate(ctx, llm.Request{
		Prompt: fmt.Sprintf(askPrompt, c.current(), c.lecture.Title, question, textutil.Prefix(c.lecture.Transcript, askChars)),
	})
	if err != nil || strings.TrimSpace(answer) == "" {
		if err != nil {
			s.logger.Warn(ctx, "Tutor question failed: %v", err)
		}
		return AskFallback, nil
	}
	return answer, nil
}

func (s *implService) Next(ctx context.Context, userID uint, token string) (*Class, error) {
	c, err := s.load(ctx, userID, token)
	if err != nil {
		return nil, err
	}
	step := c.session.Step
	if step < len(c.modules) {
		step++
		if err := s.store.UpdateClassroomStep(ctx, token, step); err != nil {
			return nil, err
		}
	}
	return &Class{
		Token:     token,
		LectureID: c.lecture.ID,
		Title:     c.lecture.Title,
		Modules:   c.modules,
		Step:      step,
		ExpiresAt: c.session.ExpiresAt,
	}, nil
}

func (s *implService) Chat(ctx context.Context, userID uint, lectureID *uint, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", apperror.InvalidInput("message is required")
	}

	scope := generalScope
	if lectureID != nil {
		lecture, err := s.store.GetLecture(ctx, userID, *lectureID)
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(lecture.Transcript) != "" {
			scope = lecture.Transcript
		}
	}

	answer, err := s.llm.Generate(ctx, llm.Request{
		System: fmt.Sprintf(chatSystem, textutil.Prefix(scope, chatChars)),
		Prompt: message,
	})
	if err != nil {
		s.logger.Error(ctx, "Professor chat failed: %v", err)
		return ChatFallback, apperror.External("AI professor", err)
	}
	return answer, nil
}
