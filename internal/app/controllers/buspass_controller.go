package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/campusgate/student-portal/internal/app/stores"
)

// BusPassController handles the bus-pass screen.
type BusPassController struct {
	logger zerolog.Logger
}

// NewBusPassController creates a new bus-pass controller.
func NewBusPassController(logger zerolog.Logger) *BusPassController {
	return &BusPassController{logger: logger.With().Str("controller", "buspass").Logger()}
}

// Show renders the bus pass status or the application form. The form is
// disabled when the student wants or has hostel accommodation; the backend
// enforces the exclusivity, the flag only mirrors it for the UI.
func (ctl *BusPassController) Show(c *gin.Context) {
	s := currentSession(c)
	store := s.Stores.BusPass

	_ = store.Fetch(c.Request.Context())

	hostelBlocked := false
	if profile := s.Stores.Auth.Profile(); profile != nil {
		hostelBlocked = profile.WantsHostel
	}

	c.HTML(http.StatusOK, "buspass.html", pageData(c, "buspass", gin.H{
		"Pass":          store.Pass(),
		"Error":         store.Err(),
		"HostelBlocked": hostelBlocked,
		"Notice":        c.Query("notice"),
	}))
}

// Apply submits a bus pass application. Distance limits are checked in the
// store before any request reaches the backend.
func (ctl *BusPassController) Apply(c *gin.Context) {
	var app stores.BusPassApplication
	if err := bindJSON(c, &app); err != nil {
		handleActionError(c, err)
		return
	}

	s := currentSession(c)
	if err := s.Stores.BusPass.Apply(c.Request.Context(), app); err != nil {
		handleActionError(c, err)
		return
	}
	jsonOK(c, s.Stores.BusPass.Pass(), "bus pass application submitted")
}
