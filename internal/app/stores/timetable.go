package stores

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/campusgate/student-portal/internal/app/models"
	"github.com/campusgate/student-portal/internal/backend"
)

// TimetableStore holds the weekly timetable grid for the student's course
// and semester.
type TimetableStore struct {
	container
	client *backend.Client
	logger zerolog.Logger

	timetable *models.Timetable
}

// NewTimetableStore creates the timetable container.
func NewTimetableStore(client *backend.Client, logger zerolog.Logger) *TimetableStore {
	return &TimetableStore{
		client: client,
		logger: logger.With().Str("store", "timetable").Logger(),
	}
}

// Fetch refreshes the timetable snapshot.
func (s *TimetableStore) Fetch(ctx context.Context) error {
	s.begin()
	var tt models.Timetable
	if err := s.client.Get(ctx, "/api/academics/timetable", &tt); err != nil {
		s.mu.Lock()
		s.timetable = nil
		s.mu.Unlock()
		s.fail(err, "failed to fetch timetable")
		return err
	}
	s.mu.Lock()
	s.timetable = &tt
	s.mu.Unlock()
	s.settle()
	return nil
}

// Timetable returns the held grid, nil before the first fetch.
func (s *TimetableStore) Timetable() *models.Timetable {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timetable
}
