package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// DashboardController renders the landing screen after login.
type DashboardController struct {
	logger zerolog.Logger
}

// NewDashboardController creates a new dashboard controller.
func NewDashboardController(logger zerolog.Logger) *DashboardController {
	return &DashboardController{logger: logger.With().Str("controller", "dashboard").Logger()}
}

// Show renders the dashboard: profile summary, course card and quick links.
func (ctl *DashboardController) Show(c *gin.Context) {
	s := currentSession(c)

	_ = s.Stores.Course.Fetch(c.Request.Context())

	c.HTML(http.StatusOK, "dashboard.html", pageData(c, "dashboard", gin.H{
		"Course":      s.Stores.Course.Course(),
		"CourseError": s.Stores.Course.Err(),
		"FirstTime":   s.Stores.Auth.FirstTime(),
	}))
}
