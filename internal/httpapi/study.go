package httpapi

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/aajetechnology/StudyBot/internal/apperror"
	"github.com/aajetechnology/StudyBot/internal/documents"
)

type startQuizRequest struct {
	LectureID uint `json:"lecture_id" binding:"required"`
	Count     int  `json:"count" binding:"required"`
}

type submitQuizRequest struct {
	// Answers are keyed by question index.
	Answers map[string]string `json:"answers"`
}

type startClassRequest struct {
	LectureID uint `json:"lecture_id" binding:"required"`
}

type askRequest struct {
	Question string `json:"question" binding:"required"`
}

type chatRequest struct {
	Message   string `json:"message" binding:"required"`
	LectureID *uint  `json:"lecture_id"`
}

func (h *Handler) library(c *gin.Context) {
	overview, err := h.Library.Overview(c.Request.Context(), currentUser(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondOK(c, overview)
}

func (h *Handler) startQuiz(c *gin.Context) {
	var req startQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, bindError(err))
		return
	}
	exam, err := h.Quiz.Start(c.Request.Context(), currentUser(c), req.LectureID, req.Count)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondCreated(c, exam)
}

func (h *Handler) submitQuiz(c *gin.Context) {
	var req submitQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, bindError(err))
		return
	}
	answers := make(map[int]string, len(req.Answers))
	for k, v := range req.Answers {
		i, err := strconv.Atoi(k)
		if err != nil || i < 0 {
			h.respondError(c, apperror.InvalidInput("answer keys must be question indexes"))
			return
		}
		answers[i] = v
	}

	result, err := h.Quiz.Submit(c.Request.Context(), currentUser(c), c.Param("token"), answers)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondOK(c, result)
}

func (h *Handler) quizResults(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}
	result, err := h.Quiz.Results(c.Request.Context(), currentUser(c), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondOK(c, result)
}

func (h *Handler) startClass(c *gin.Context) {
	var req startClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, bindError(err))
		return
	}
	class, err := h.Classroom.Start(c.Request.Context(), currentUser(c), req.LectureID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondCreated(c, class)
}

func (h *Handler) teach(c *gin.Context) {
	lesson, err := h.Classroom.Teach(c.Request.Context(), currentUser(c), c.Param("token"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondOK(c, lesson)
}

func (h *Handler) askTutor(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, bindError(err))
		return
	}
	answer, err := h.Classroom.Ask(c.Request.Context(), currentUser(c), c.Param("token"), req.Question)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondOK(c, gin.H{"answer": answer})
}

func (h *Handler) nextModule(c *gin.Context) {
	class, err := h.Classroom.Next(c.Request.Context(), currentUser(c), c.Param("token"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondOK(c, class)
}

func (h *Handler) chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, bindError(err))
		return
	}
	answer, err := h.Classroom.Chat(c.Request.Context(), currentUser(c), req.LectureID, req.Message)
	if err != nil {
		if apperror.Is(err, apperror.CodeExternal) {
			// The fallback answer is still shown in the chat window.
			c.JSON(http.StatusBadGateway, dataResponse{Status: "error", Data: gin.H{"answer": answer}})
			return
		}
		h.respondError(c, err)
		return
	}
	respondOK(c, gin.H{"answer": answer})
}

func (h *Handler) importNotes(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		h.respondError(c, bindError(err))
		return
	}
	headers := form.File["doc_file"]
	if len(headers) == 0 || headers[0].Filename == "" {
		h.respondError(c, apperror.InvalidInput("please upload at least one PDF, document or photo of your notes"))
		return
	}

	files := make([]documents.File, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			h.respondError(c, apperror.Internal(err))
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			h.respondError(c, bindError(err))
			return
		}
		files = append(files, documents.File{Name: fh.Filename, Data: data})
	}

	lecture, err := h.Documents.Import(c.Request.Context(), currentUser(c), files)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondCreated(c, lecture)
}
