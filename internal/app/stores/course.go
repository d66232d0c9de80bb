package stores

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/campusgate/student-portal/internal/app/models"
	"github.com/campusgate/student-portal/internal/backend"
)

// CourseStore holds the student's enrolled course.
type CourseStore struct {
	container
	client *backend.Client
	logger zerolog.Logger

	course *models.Course
}

// NewCourseStore creates the course container.
func NewCourseStore(client *backend.Client, logger zerolog.Logger) *CourseStore {
	return &CourseStore{
		client: client,
		logger: logger.With().Str("store", "course").Logger(),
	}
}

// Fetch refreshes the course snapshot.
func (s *CourseStore) Fetch(ctx context.Context) error {
	s.begin()
	var course models.Course
	if err := s.client.Get(ctx, "/api/course", &course); err != nil {
		s.mu.Lock()
		s.course = nil
		s.mu.Unlock()
		s.fail(err, "failed to fetch course details")
		return err
	}
	s.mu.Lock()
	s.course = &course
	s.mu.Unlock()
	s.settle()
	return nil
}

// Course returns the last-fetched course, nil before the first fetch.
func (s *CourseStore) Course() *models.Course {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.course
}
