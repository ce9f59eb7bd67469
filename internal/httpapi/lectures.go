package httpapi

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/aajetechnology/StudyBot/internal/apperror"
	"github.com/aajetechnology/StudyBot/internal/export"
	"github.com/aajetechnology/StudyBot/internal/pipeline"
)

func (h *Handler) listLectures(c *gin.Context) {
	lectures, err := h.Store.ListLectures(c.Request.Context(), currentUser(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondOK(c, lectures)
}

func (h *Handler) getLecture(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}
	lecture, err := h.Store.GetLecture(c.Request.Context(), currentUser(c), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondOK(c, lecture)
}

// uploadLecture stores the file under a generated name; the client passes
// that name to the process stream.
func (h *Handler) uploadLecture(c *gin.Context) {
	ctx := c.Request.Context()
	file, err := c.FormFile("lecture_file")
	if err != nil {
		h.respondError(c, bindError(err))
		return
	}
	if file.Filename == "" {
		h.respondError(c, apperror.InvalidInput("no file selected"))
		return
	}
	if !pipeline.IsAudio(file.Filename) {
		h.respondError(c, apperror.InvalidInput("unsupported audio format"))
		return
	}

	if err := os.MkdirAll(h.cfg.Paths.Uploads, 0755); err != nil {
		h.respondError(c, apperror.Internal(err))
		return
	}
	name := uuid.NewString() + strings.ToLower(filepath.Ext(file.Filename))
	if err := c.SaveUploadedFile(file, filepath.Join(h.cfg.Paths.Uploads, name)); err != nil {
		h.respondError(c, apperror.Internal(err))
		return
	}

	h.logger.Info(ctx, "Stored upload %q as %s (%d bytes)", file.Filename, name, file.Size)
	respondOK(c, gin.H{"filename": name, "original_filename": file.Filename})
}

// processLecture runs the pipeline on an uploaded file and streams progress.
func (h *Handler) processLecture(c *gin.Context) {
	ctx := c.Request.Context()
	name := filepath.Base(c.Param("filename"))
	if name == "." || name == ".." || name == string(filepath.Separator) {
		h.respondError(c, apperror.InvalidInput("invalid file name"))
		return
	}
	path := filepath.Join(h.cfg.Paths.Uploads, name)
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		h.respondError(c, apperror.NotFound("upload"))
		return
	}

	original := name
	if q := filepath.Base(c.Query("original")); q != "." && q != string(filepath.Separator) {
		original = q
	}

	job := &pipeline.Job{
		ID:               uuid.NewString(),
		UserID:           currentUser(c),
		SourcePath:       path,
		OriginalFilename: original,
		Title:            c.Query("title"),
		Format:           c.DefaultQuery("format", export.FormatPDF),
	}
	h.streamEvents(c, h.Pipeline.Run(ctx, job))
	h.logger.Info(ctx, "Job %s finished with status %s (lecture %d)", job.ID, job.Status, job.LectureID)
}

func (h *Handler) downloadLecture(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}
	lecture, err := h.Store.GetLecture(c.Request.Context(), currentUser(c), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	format := export.NormalizeFormat(lecture.OutputFormat)
	path := h.Exporter.Path(lecture.ID, format)
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		h.respondError(c, apperror.NotFound("study notes file"))
		return
	}
	c.FileAttachment(path, lecture.Title+"."+format)
}

func idParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperror.InvalidInput("invalid " + name)
	}
	return uint(id), nil
}
