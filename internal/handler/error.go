package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/aidar/team-users-service/internal/domain"
)

// ErrorResponse представляет конверт ответа с ошибкой
type ErrorResponse struct {
	Status    string      `json:"status"`
	Timestamp string      `json:"timestamp"`
	Path      string      `json:"path"`
	Error     ErrorDetail `json:"error"`
}

// ErrorDetail содержит код, описание ошибки и ошибки полей при валидации
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details []ValidationError `json:"details,omitempty"`
}

// RespondWithError отправляет ответ с ошибкой
func RespondWithError(w http.ResponseWriter, r *http.Request, statusCode int, code domain.ErrorCode, message string) {
	respondWithError(w, r, statusCode, ErrorDetail{
		Code:    string(code),
		Message: message,
	})
}

// RespondWithValidationError отправляет 400 с ошибками отдельных полей
func RespondWithValidationError(w http.ResponseWriter, r *http.Request, details []ValidationError) {
	respondWithError(w, r, http.StatusBadRequest, ErrorDetail{
		Code:    string(domain.CodeBadRequest),
		Message: "invalid request parameters",
		Details: details,
	})
}

func respondWithError(w http.ResponseWriter, r *http.Request, statusCode int, detail ErrorDetail) {
	render.Status(r, statusCode)
	render.JSON(w, r, ErrorResponse{
		Status:    StatusError,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Path:      r.URL.Path,
		Error:     detail,
	})
}

// HandleError преобразует доменные ошибки в HTTP ответы; неизвестные ошибки логируются
func HandleError(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error) {
	code := domain.MapErrorToCode(err)

	switch code {
	case domain.CodeBadRequest:
		RespondWithError(w, r, http.StatusBadRequest, code, err.Error())
	case domain.CodeUnauthorized:
		RespondWithError(w, r, http.StatusUnauthorized, code, "unauthorized")
	case domain.CodeForbidden:
		message := "insufficient team role"
		if errors.Is(err, domain.ErrUsersNotInTeam) {
			message = domain.ErrUsersNotInTeam.Error()
		}
		RespondWithError(w, r, http.StatusForbidden, code, message)
	case domain.CodeNotFound:
		message := "user not found"
		if errors.Is(err, domain.ErrTeamNotFound) {
			message = "team not found"
		}
		RespondWithError(w, r, http.StatusNotFound, code, message)
	default:
		log.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		RespondWithError(w, r, http.StatusInternalServerError, domain.CodeInternal, "internal server error")
	}
}
