package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/g2ix/basic-registration/internal/apperrors"
	"github.com/g2ix/basic-registration/internal/core/domain"
	"github.com/g2ix/basic-registration/internal/dto"
	"github.com/g2ix/basic-registration/internal/middleware"
	"github.com/gin-gonic/gin"
)

// journeyErrorStatus maps a journey rejection to its HTTP status.
func journeyErrorStatus(je *domain.JourneyError) int {
	switch je.Reason {
	case apperrors.ReasonNotEligible:
		return http.StatusBadRequest
	case apperrors.ReasonCheckoutDisabled:
		return http.StatusForbidden
	}
	return apperrors.StatusCode(je.Class)
}

// errorCode names the category of err for the response body.
func errorCode(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return "VALIDATION_ERROR"
	case errors.Is(err, apperrors.ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrDuplicate):
		return "CONFLICT"
	case errors.Is(err, apperrors.ErrPreconditionFailed):
		return "PRECONDITION_FAILED"
	}
	return "INTERNAL_ERROR"
}

// respondError writes the error body for err. Rejections log at Warn,
// anything mapped to 500 logs at Error and hides the cause behind fallback.
func respondError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var je *domain.JourneyError
	if errors.As(err, &je) {
		status := journeyErrorStatus(je)
		body := dto.ErrorResponse{
			Error:       je.Error(),
			Code:        string(je.Reason),
			Eligibility: string(je.Eligibility),
		}
		if je.Journey != nil {
			res := dto.ToJourneyResponse(je.Journey)
			body.Journey = &res
		}
		logger.Warn("Request rejected", slog.String("reason", string(je.Reason)), slog.Int("status", status))
		c.JSON(status, body)
		return
	}

	status := apperrors.StatusCode(err)
	if status >= http.StatusInternalServerError {
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(status, dto.ErrorResponse{Error: fallback, Code: errorCode(err)})
		return
	}
	logger.Warn("Request failed", slog.String("error", err.Error()), slog.Int("status", status))
	c.JSON(status, dto.ErrorResponse{Error: err.Error(), Code: errorCode(err)})
}

// respondBindError reports a malformed request body or query.
func respondBindError(c *gin.Context, err error, what string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Warn("Failed to bind request for "+what, slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error(), Code: "VALIDATION_ERROR"})
}

// actorOrAbort returns the authenticated staff member, or writes 401.
func actorOrAbort(c *gin.Context) (domain.Actor, bool) {
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Staff identity not found in context")
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized", Code: "UNAUTHORIZED"})
	}
	return actor, ok
}
