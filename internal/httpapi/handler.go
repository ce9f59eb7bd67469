package httpapi

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aajetechnology/StudyBot/internal/auth"
	"github.com/aajetechnology/StudyBot/internal/classroom"
	"github.com/aajetechnology/StudyBot/internal/config"
	"github.com/aajetechnology/StudyBot/internal/documents"
	"github.com/aajetechnology/StudyBot/internal/export"
	"github.com/aajetechnology/StudyBot/internal/library"
	"github.com/aajetechnology/StudyBot/internal/logger"
	"github.com/aajetechnology/StudyBot/internal/models"
	"github.com/aajetechnology/StudyBot/internal/pipeline"
	"github.com/aajetechnology/StudyBot/internal/quiz"
)

// Store is the storage the handlers read directly.
type Store interface {
	GetLecture(ctx context.Context, userID, id uint) (*models.Lecture, error)
	ListLectures(ctx context.Context, userID uint) ([]models.Lecture, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}

type Deps struct {
	Auth      auth.Service
	Store     Store
	Pipeline  pipeline.Orchestrator
	Exporter  export.Exporter
	Library   library.Service
	Quiz      quiz.Service
	Classroom classroom.Service
	Documents documents.Service
}

type Handler struct {
	cfg    *config.Config
	logger logger.Logger
	Deps
}

func New(cfg *config.Config, deps Deps, log logger.Logger) *Handler {
	return &Handler{cfg: cfg, logger: log, Deps: deps}
}

// Router builds the gin engine with every route registered.
func (h *Handler) Router() *gin.Engine {
	r := gin.New()
	r.MaxMultipartMemory = 32 << 20
	r.Use(requestID(), h.recovery(), h.requestLogger())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", h.register)
	authGroup.POST("/login", h.login)
	authGroup.POST("/logout", h.logout)

	private := api.Group("", h.authenticate())
	private.GET("/me", h.me)

	lectures := private.Group("/lectures")
	lectures.GET("", h.listLectures)
	lectures.POST("/upload", bodySizeLimit(h.cfg.MaxUploadBytes()), h.uploadLecture)
	lectures.GET("/process/:filename", h.processLecture)
	lectures.GET("/:id", h.getLecture)
	lectures.GET("/:id/download", h.downloadLecture)

	private.GET("/library", h.library)
	private.POST("/notes", bodySizeLimit(h.cfg.MaxUploadBytes()), h.importNotes)

	quizzes := private.Group("/quizzes")
	quizzes.POST("", h.startQuiz)
	quizzes.POST("/:token/submit", h.submitQuiz)
	private.GET("/results/:id", h.quizResults)

	class := private.Group("/classroom")
	class.POST("", h.startClass)
	class.GET("/:token/teach", h.teach)
	class.POST("/:token/ask", h.askTutor)
	class.POST("/:token/next", h.nextModule)
	private.POST("/chat", h.chat)

	admin := private.Group("/admin", h.requireAdmin())
	admin.GET("/users", h.listUsers)

	return r
}
