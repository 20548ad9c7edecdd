package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Keoroanthony/go-food-ordering/internal/apperr"
)

// statusFor maps a domain error to the HTTP status the API answers with.
func statusFor(err error) int {
	var (
		validation *apperr.ValidationError
		submission *apperr.SubmissionError
		fetch      *apperr.FetchError
	)
	switch {
	case errors.As(err, &validation), errors.Is(err, apperr.ErrInvalidStatus):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrUnauthenticated), errors.Is(err, apperr.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, apperr.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrNotCancellable),
		errors.Is(err, apperr.ErrInvalidTransition),
		errors.Is(err, apperr.ErrStatusChanged),
		errors.Is(err, apperr.ErrEmailTaken):
		return http.StatusConflict
	case errors.As(err, &submission), errors.As(err, &fetch):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.Printf("%s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id: " + c.Param("id")})
		return 0, false
	}
	return uint(id), true
}
