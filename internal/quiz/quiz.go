package quiz

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/aajetechnology/StudyBot/internal/apperror"
	"github.com/aajetechnology/StudyBot/internal/llm"
	"github.com/aajetechnology/StudyBot/internal/models"
	"github.com/aajetechnology/StudyBot/pkg/textutil"
)

const (
	MaxQuestions    = 50
	FallbackAdvice  = "Good job! Keep studying your notes."
	noAnswer        = "No Answer"
	maxFailedTopics = 2
)

const examPrompt = `Generate a quiz with exactly %d questions based on this text.
Mix multiple choice (objective) and 2-3 short theory questions.
Return ONLY a valid JSON object.
{
    "questions": [
        {"id": 1, "type": "objective", "q": "Question text", "options": ["Choice1", "Choice2", "Choice3", "Choice4"], "ans": "Choice1"},
        {"id": 2, "type": "theory", "q": "Theory question", "keywords": ["word1", "word2"]}
    ]
}
CRITICAL: For 'objective' questions, 'ans' must be the FULL TEXT of the correct option.
Text: %s`

const advicePrompt = "Student scored %d/%d. Failed topics: %s. Give a 2-sentence tip and a YouTube search term."

func (s *implService) Start(ctx context.Context, userID, lectureID uint, count int) (*Exam, error) {
	if count < 1 || count > MaxQuestions {
		return nil, apperror.InvalidInput(fmt.Sprintf("question count must be between 1 and %d", MaxQuestions))
	}

	lecture, err := s.store.GetLecture(ctx, userID, lectureID)
	if err != nil {
		return nil, err
	}
	text := lecture.Transcript
	if strings.TrimSpace(text) == "" {
		text = lecture.Summary
	}
	if strings.TrimSpace(text) == "" {
		return nil, apperror.InvalidInput("no content found to generate a quiz")
	}

	var payload struct {
		Questions []Question `json:"questions"`
	}
	err = llm.GenerateJSON(ctx, s.llm, llm.Request{
		Prompt: fmt.Sprintf(examPrompt, count, textutil.Prefix(text, s.contextChars)),
	}, &payload)
	if err != nil {
		s.logger.Error(ctx, "Quiz generation failed for lecture %d: %v", lectureID, err)
		return nil, apperror.External("AI quiz generator", err)
	}
	questions := normalizeQuestions(payload.Questions)
	if len(questions) == 0 {
		return nil, apperror.External("AI quiz generator", fmt.Errorf("model returned no usable questions"))
	}

	raw, err := json.Marshal(questions)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	now := s.now()
	session := &models.QuizSession{
		Token:         uuid.NewString(),
		UserID:        userID,
		LectureID:     lecture.ID,
		QuestionsJSON: string(raw),
		TimerSeconds:  TimerSeconds(text, count),
		ExpiresAt:     now.Add(s.sessionTTL),
		CreatedAt:     now,
	}
	if err := s.store.SaveQuizSession(ctx, session); err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "Started quiz %s for lecture %d: %d questions, %ds", session.Token, lecture.ID, len(questions), session.TimerSeconds)

	public := make([]Question, len(questions))
	for i, q := range questions {
		public[i] = q.Public()
	}
	return &Exam{
		Token:        session.Token,
		LectureID:    lecture.ID,
		Title:        lecture.Title,
		Questions:    public,
		TimerSeconds: session.TimerSeconds,
		ExpiresAt:    session.ExpiresAt,
	}, nil
}

// normalizeQuestions drops questions without text and fills ids and types.
func normalizeQuestions(in []Question) []Question {
	out := make([]Question, 0, len(in))
	for _, q := range in {
		if strings.TrimSpace(q.Q) == "" {
			continue
		}
		q.Type = strings.ToLower(strings.TrimSpace(q.Type))
		if q.Type != TypeObjective && q.Type != TypeTheory {
			if len(q.Options) > 0 {
				q.Type = TypeObjective
			} else {
				q.Type = TypeTheory
			}
		}
		q.ID = len(out) + 1
		out = append(out, q)
	}
	return out
}

func (s *implService) Submit(ctx context.Context, userID uint, token string, answers map[int]string) (*models.Quiz, error) {
	session, err := s.store.GetQuizSession(ctx, token)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, apperror.NotFound("quiz session")
	}
	if session.Expired(s.now()) {
		if err := s.store.DeleteQuizSession(ctx, token); err != nil {
			s.logger.Warn(ctx, "Failed to delete expired quiz session %s: %v", token, err)
		}
		return nil, apperror.Expired("quiz session")
	}

	var questions []Question
	if err := json.Unmarshal([]byte(session.QuestionsJSON), &questions); err != nil {
		return nil, apperror.Internal(fmt.Errorf("decode quiz session: %w", err))
	}

	score := 0
	var failed []string
	stored := make(map[string]string, len(questions))
	for i, q := range questions {
		answer := strings.ToLower(strings.TrimSpace(answers[i]))
		stored[strconv.Itoa(i)] = answer
		if Grade(q, answer) {
			score++
		} else {
			failed = append(failed, q.Q)
		}
	}
	answersJSON, err := json.Marshal(stored)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	lectureID := session.LectureID
	result := &models.Quiz{
		LectureID:      &lectureID,
		QuestionsJSON:  session.QuestionsJSON,
		UserAnswers:    string(answersJSON),
		Score:          score,
		TotalQuestions: len(questions),
		Feedback:       s.advice(ctx, score, len(questions), failed),
		UserID:         userID,
	}
	if lecture, err := s.store.GetLecture(ctx, userID, lectureID); err == nil {
		result.Title = lecture.Title
	}

	if err := s.store.CompleteQuiz(ctx, token, result); err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "Quiz %d graded: %d/%d", result.ID, score, len(questions))
	return result, nil
}

func (s *implService) advice(ctx context.Context, score, total int, failed []string) string {
	if len(failed) > maxFailedTopics {
		failed = failed[:maxFailedTopics]
	}
	topics, _ := json.Marshal(failed)
	text, err := s.llm.Generate(ctx, llm.Request{Prompt: fmt.Sprintf(advicePrompt, score, total, topics)})
	if err != nil || strings.TrimSpace(text) == "" {
		if err != nil {
			s.logger.Warn(ctx, "Quiz feedback generation failed: %v", err)
		}
		return FallbackAdvice
	}
	return strings.TrimSpace(text)
}

func (s *implService) Results(ctx context.Context, userID, quizID uint) (*Result, error) {
	q, err := s.store.GetQuiz(ctx, userID, quizID)
	if err != nil {
		return nil, err
	}

	var questions []Question
	if err := json.Unmarshal([]byte(q.QuestionsJSON), &questions); err != nil {
		return nil, apperror.Internal(fmt.Errorf("decode quiz %d questions: %w", q.ID, err))
	}
	answers := map[string]string{}
	if q.UserAnswers != "" {
		if err := json.Unmarshal([]byte(q.UserAnswers), &answers); err != nil {
			return nil, apperror.Internal(fmt.Errorf("decode quiz %d answers: %w", q.ID, err))
		}
	}

	details := make([]Detail, 0, len(questions))
	for i, question := range questions {
		answer, ok := answers[strconv.Itoa(i)]
		if !ok {
			answer = noAnswer
		}
		details = append(details, Detail{
			Question:      question.Q,
			UserAnswer:    answer,
			CorrectAnswer: CorrectDisplay(question),
			IsCorrect:     Grade(question, answer),
		})
	}
	return &Result{Quiz: q, Details: details}, nil
}
