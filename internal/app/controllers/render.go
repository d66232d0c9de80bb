package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusgate/student-portal/internal/app/session"
	"github.com/campusgate/student-portal/internal/middleware"
	"github.com/campusgate/student-portal/internal/pkg/apperrors"
)

// pageData builds the base template payload every screen shares: the active
// nav item and, when logged in, the profile snapshot for the header.
func pageData(c *gin.Context, active string, extra gin.H) gin.H {
	data := gin.H{"Active": active}
	if s := middleware.SessionFrom(c); s != nil {
		data["Profile"] = s.Stores.Auth.Profile()
	}
	for k, v := range extra {
		data[k] = v
	}
	return data
}

// currentSession returns the request's session; RequireAuth guarantees it on
// guarded routes.
func currentSession(c *gin.Context) *session.Session {
	return middleware.SessionFrom(c)
}

// bindJSON decodes a JSON action body, folding gin's binding errors into the
// validation sentinel so they surface as 400s.
func bindJSON(c *gin.Context, out interface{}) error {
	if err := c.ShouldBindJSON(out); err != nil {
		return apperrors.NewValidationError("invalid request payload")
	}
	return nil
}

// jsonOK writes the portal's success envelope for JSON actions, mirroring the
// backend's {status, data, message} shape so the page scripts handle both.
func jsonOK(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, gin.H{"status": true, "data": data, "message": message})
}

// handleActionError maps a store error onto an HTTP status and the failure
// envelope. This is the single mapping point for JSON actions; page loads
// render errors inline from container state instead.
func handleActionError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	fallback := "something went wrong"

	switch {
	case errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrChangeRequestEmpty),
		errors.Is(err, apperrors.ErrChangeRequestIncomplete),
		errors.Is(err, apperrors.ErrDuplicateChangeField),
		errors.Is(err, apperrors.ErrUnknownProfileField):
		status = http.StatusBadRequest
		fallback = "please check the form and try again"
	case errors.Is(err, apperrors.ErrUnauthenticated), errors.Is(err, apperrors.ErrSessionExpired):
		status = http.StatusUnauthorized
		fallback = "session expired, please log in again"
	case errors.Is(err, apperrors.ErrNotFoundYet):
		status = http.StatusNotFound
		fallback = "record not found"
	case errors.Is(err, apperrors.ErrPaymentVerification):
		// The charge may have succeeded gateway-side; tell the student to
		// contact support instead of offering a retry.
		status = http.StatusBadGateway
		fallback = "payment verification failed, please contact the accounts office"
	case errors.Is(err, apperrors.ErrBackendUnavailable):
		status = http.StatusBadGateway
		fallback = "could not reach the university server"
	case errors.Is(err, apperrors.ErrBackendRejected):
		status = http.StatusBadGateway
		fallback = "the university server rejected the request"
	}

	c.JSON(status, gin.H{"status": false, "message": apperrors.MessageFor(err, fallback)})
}

// messageOf pulls the displayable message from an error for inline form
// rendering.
func messageOf(err error, fallback string) string {
	return apperrors.MessageFor(err, fallback)
}
