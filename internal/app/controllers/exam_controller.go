package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/campusgate/student-portal/internal/app/stores"
)

// ExamController handles the exam-form screen.
type ExamController struct {
	logger zerolog.Logger
}

// NewExamController creates a new exam controller.
func NewExamController(logger zerolog.Logger) *ExamController {
	return &ExamController{logger: logger.With().Str("controller", "exam").Logger()}
}

// Show renders the open exam sessions and the student's submitted forms.
func (ctl *ExamController) Show(c *gin.Context) {
	s := currentSession(c)
	store := s.Stores.Exam

	_ = store.Fetch(c.Request.Context())

	c.HTML(http.StatusOK, "exams.html", pageData(c, "exams", gin.H{
		"Details": store.Details(),
		"Error":   store.Err(),
		"Notice":  c.Query("notice"),
	}))
}

// Submit registers an exam form for one open session.
func (ctl *ExamController) Submit(c *gin.Context) {
	var sub stores.ExamFormSubmission
	if err := bindJSON(c, &sub); err != nil {
		handleActionError(c, err)
		return
	}

	s := currentSession(c)
	if err := s.Stores.Exam.Submit(c.Request.Context(), sub); err != nil {
		handleActionError(c, err)
		return
	}
	jsonOK(c, s.Stores.Exam.Details(), "exam form submitted")
}
