package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// AcademicsController renders the read-only academic screens: attendance,
// marks and timetable.
type AcademicsController struct {
	logger zerolog.Logger
}

// NewAcademicsController creates a new academics controller.
func NewAcademicsController(logger zerolog.Logger) *AcademicsController {
	return &AcademicsController{logger: logger.With().Str("controller", "academics").Logger()}
}

// Attendance renders the semester-grouped attendance tables.
func (ctl *AcademicsController) Attendance(c *gin.Context) {
	s := currentSession(c)
	store := s.Stores.Attendance

	_ = store.Fetch(c.Request.Context())

	c.HTML(http.StatusOK, "attendance.html", pageData(c, "attendance", gin.H{
		"Semesters": store.Grouped(),
		"Error":     store.Err(),
	}))
}

// Marks renders the semester-grouped internal marks tables.
func (ctl *AcademicsController) Marks(c *gin.Context) {
	s := currentSession(c)
	store := s.Stores.Marks

	_ = store.Fetch(c.Request.Context())

	c.HTML(http.StatusOK, "marks.html", pageData(c, "marks", gin.H{
		"Semesters": store.Grouped(),
		"Error":     store.Err(),
	}))
}

// Timetable renders the weekly period grid.
func (ctl *AcademicsController) Timetable(c *gin.Context) {
	s := currentSession(c)
	store := s.Stores.Timetable

	_ = store.Fetch(c.Request.Context())

	c.HTML(http.StatusOK, "timetable.html", pageData(c, "timetable", gin.H{
		"Timetable": store.Timetable(),
		"Error":     store.Err(),
	}))
}
