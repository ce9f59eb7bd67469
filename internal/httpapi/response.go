package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aajetechnology/StudyBot/internal/apperror"
)

type dataResponse struct {
	Status string `json:"status"`
	Data   any    `json:"data,omitempty"`
}

type errorBody struct {
	Code    apperror.Code `json:"code"`
	Message string        `json:"message"`
}

type errorResponse struct {
	Status string    `json:"status"`
	Error  errorBody `json:"error"`
}

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dataResponse{Status: "success", Data: data})
}

func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dataResponse{Status: "success", Data: data})
}

// respondError derives the status from an AppError; anything else is a 500.
func (h *Handler) respondError(c *gin.Context, err error) {
	appErr := apperror.From(err)
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		h.logger.Error(c.Request.Context(), "%s %s failed: %v", c.Request.Method, c.FullPath(), err)
	}
	c.AbortWithStatusJSON(appErr.HTTPStatus, errorResponse{
		Status: "error",
		Error:  errorBody{Code: appErr.Code, Message: appErr.Message},
	})
}

// bindError maps request decoding failures to 400, or 413 when the body
// exceeded the upload limit.
func bindError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return apperror.New(apperror.CodeInvalidInput, "upload is too large", http.StatusRequestEntityTooLarge)
	}
	return apperror.InvalidInput("malformed request: " + err.Error())
}
