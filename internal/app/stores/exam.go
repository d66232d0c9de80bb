package stores

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/campusgate/student-portal/internal/app/models"
	"github.com/campusgate/student-portal/internal/backend"
	"github.com/campusgate/student-portal/internal/pkg/apperrors"
)

// ExamFormSubmission identifies the exam window a form is submitted for.
type ExamFormSubmission struct {
	Semester int    `json:"semester" binding:"required" form:"semester"`
	Session  string `json:"session" binding:"required" form:"session"`
	ExamType string `json:"examType" binding:"required" form:"examType"`
	Month    string `json:"month" binding:"required" form:"month"`
}

// ExamStore holds the exam sessions open for registration and the student's
// submitted forms.
type ExamStore struct {
	container
	client *backend.Client
	logger zerolog.Logger

	details *models.ExamDetails
}

// NewExamStore creates the exam container.
func NewExamStore(client *backend.Client, logger zerolog.Logger) *ExamStore {
	return &ExamStore{
		client: client,
		logger: logger.With().Str("store", "exam").Logger(),
	}
}

// Fetch refreshes the exam details snapshot.
func (s *ExamStore) Fetch(ctx context.Context) error {
	s.begin()
	var details models.ExamDetails
	if err := s.client.Get(ctx, "/api/exam/details", &details); err != nil {
		s.mu.Lock()
		s.details = nil
		s.mu.Unlock()
		s.fail(err, "failed to fetch exam details")
		return err
	}
	s.mu.Lock()
	s.details = &details
	s.mu.Unlock()
	s.settle()
	return nil
}

// Submit registers an exam form. One form per (semester, session, type,
// month) tuple: a duplicate against the held snapshot is rejected before any
// request; the backend enforces the same uniqueness.
func (s *ExamStore) Submit(ctx context.Context, sub ExamFormSubmission) error {
	s.mu.Lock()
	if s.details != nil {
		for _, form := range s.details.Forms {
			if form.Semester == sub.Semester && form.Session == sub.Session &&
				form.ExamType == sub.ExamType && form.Month == sub.Month {
				s.mu.Unlock()
				return apperrors.NewValidationError("exam form already submitted for this session")
			}
		}
	}
	s.mu.Unlock()

	s.begin()
	var details models.ExamDetails
	if err := s.client.Post(ctx, "/api/exam/submit", sub, &details); err != nil {
		s.fail(err, "failed to submit exam form")
		return err
	}
	s.mu.Lock()
	s.details = &details
	s.mu.Unlock()
	s.settle()
	return nil
}

// Details returns the held exam details, nil before the first fetch.
func (s *ExamStore) Details() *models.ExamDetails {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.details
}
